package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/stampede-tools/stampede-cli/internal/core/domain"
	"github.com/stampede-tools/stampede-cli/internal/core/ports/driven"
	"github.com/stampede-tools/stampede-cli/internal/core/ports/driving"
	"github.com/stampede-tools/stampede-cli/internal/logger"
)

// Ensure CatalogService implements the interface.
var _ driving.CatalogService = (*CatalogService)(nil)

// CatalogService reads the remote store: container resolution, single
// container listings, and the exhaustive crawl.
type CatalogService struct {
	client   driven.DocumentStoreClient
	resolver *ContainerResolver
	settings domain.Settings
}

// NewCatalogService creates a catalog service.
func NewCatalogService(client driven.DocumentStoreClient, resolver *ContainerResolver, settings domain.Settings) *CatalogService {
	return &CatalogService{
		client:   client,
		resolver: resolver,
		settings: settings.Normalised(),
	}
}

// ListContainers returns all containers, following cursor pagination to
// exhaustion. Both an empty next cursor and an empty page terminate the
// loop; checking only one risks spinning forever on a store that returns
// an empty page without clearing the cursor.
func (s *CatalogService) ListContainers(ctx context.Context) ([]domain.Container, error) {
	var all []domain.Container
	cursor := ""

	for {
		page, err := s.client.ListContainers(ctx, cursor, s.settings.PageSize)
		if err != nil {
			return nil, fmt.Errorf("list containers: %w", err)
		}
		if len(page.Containers) == 0 {
			break
		}
		all = append(all, page.Containers...)
		if page.NextCursor == "" {
			break
		}
		cursor = page.NextCursor
	}

	return all, nil
}

// ResolveContainer maps a container key to its full metadata.
func (s *CatalogService) ResolveContainer(ctx context.Context, key string) (*domain.Container, error) {
	return s.resolver.Resolve(ctx, key)
}

// CrawlAll walks every container, then every document within each
// container, respecting the global maxDocuments cap. Per-container fetch
// failures are recorded and skipped; the crawl continues with whatever
// the remaining containers yield. A failure to list containers at all is
// reported through the result's Err field alongside the partial result,
// never as a thrown error past this boundary.
func (s *CatalogService) CrawlAll(ctx context.Context, maxDocuments int) *domain.CrawlResult {
	result := &domain.CrawlResult{}

	if maxDocuments <= 0 {
		return result
	}

	containers, err := s.crawlContainers(ctx, result)
	if err != nil {
		result.Err = fmt.Sprintf("list containers: %v", err)
		result.Truncated = true
		return result
	}
	result.Containers = containers

	for _, container := range containers {
		if len(result.Documents) >= maxDocuments {
			result.Truncated = true
			break
		}
		if err := s.crawlContainer(ctx, container, maxDocuments, result); err != nil {
			logger.Warn("crawl: container %s failed, continuing: %v", container.Key, err)
			result.Truncated = true
			continue
		}
		result.LoadedContainers++
	}

	result.TotalCount = len(result.Documents)
	logger.Info("crawl complete: %d documents from %d/%d containers",
		result.TotalCount, result.LoadedContainers, len(containers))
	return result
}

// crawlContainers lists all containers, accumulating into the partial
// result as pages arrive so a mid-pagination failure still leaves the
// pages collected so far.
func (s *CatalogService) crawlContainers(ctx context.Context, result *domain.CrawlResult) ([]domain.Container, error) {
	var all []domain.Container
	cursor := ""

	for {
		page, err := s.client.ListContainers(ctx, cursor, s.settings.PageSize)
		if err != nil {
			result.Containers = all
			return nil, err
		}
		if len(page.Containers) == 0 {
			break
		}
		all = append(all, page.Containers...)
		if page.NextCursor == "" {
			break
		}
		cursor = page.NextCursor
	}

	return all, nil
}

// crawlContainer lists one container's documents up to the global cap.
// Documents whose title exactly equals the container's name or key are
// the container's root/home document, not meaningful content instances,
// and are excluded.
func (s *CatalogService) crawlContainer(ctx context.Context, container domain.Container, maxDocuments int, result *domain.CrawlResult) error {
	cursor := ""

	for {
		if len(result.Documents) >= maxDocuments {
			result.Truncated = true
			return nil
		}

		page, err := s.client.ListDocuments(ctx, container.ID, cursor, s.settings.PageSize)
		if err != nil {
			return err
		}
		if len(page.Documents) == 0 {
			return nil
		}

		for _, doc := range page.Documents {
			if len(result.Documents) >= maxDocuments {
				result.Truncated = true
				return nil
			}
			if doc.Title == container.Name || doc.Title == container.Key {
				continue
			}
			doc.ContainerKey = container.Key
			doc.ContainerName = container.Name
			result.Documents = append(result.Documents, doc)
		}

		if page.NextCursor == "" {
			return nil
		}
		cursor = page.NextCursor
	}
}

// ResolveFromURL resolves a pasted store URL. If the URL names a single
// document, that document is returned in direct mode. If it only names a
// container, the container's top documents are listed instead.
func (s *CatalogService) ResolveFromURL(ctx context.Context, url string) (*domain.URLResolution, error) {
	if id, err := ParseDocumentURL(url); err == nil {
		doc, err := s.client.GetDocument(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("get document %s: %w", id, err)
		}
		containers, err := s.ListContainers(ctx)
		if err != nil {
			return nil, err
		}
		return &domain.URLResolution{
			TargetDocument: doc,
			Containers:     containers,
			DirectMode:     true,
		}, nil
	}

	key := parseContainerKey(url)
	if key == "" {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidReference, url)
	}

	container, err := s.resolver.Resolve(ctx, key)
	if err != nil {
		return nil, err
	}
	docs, err := s.client.ListTopDocuments(ctx, container.ID, domain.DefaultTopDocumentsLimit, "title")
	if err != nil {
		return nil, fmt.Errorf("list documents for %s: %w", key, err)
	}
	for i := range docs {
		docs[i].ContainerKey = container.Key
		docs[i].ContainerName = container.Name
	}

	return &domain.URLResolution{
		Documents:  docs,
		Containers: []domain.Container{*container},
		DirectMode: false,
	}, nil
}

// ListTopDocuments returns up to limit documents in a container sorted
// by title.
func (s *CatalogService) ListTopDocuments(ctx context.Context, containerKey string, limit int) ([]domain.Document, error) {
	if limit <= 0 {
		limit = domain.DefaultTopDocumentsLimit
	}

	container, err := s.resolver.Resolve(ctx, containerKey)
	if err != nil {
		return nil, err
	}

	docs, err := s.client.ListTopDocuments(ctx, container.ID, limit, "title")
	if err != nil {
		return nil, fmt.Errorf("list documents for %s: %w", containerKey, err)
	}
	for i := range docs {
		docs[i].ContainerKey = container.Key
		docs[i].ContainerName = container.Name
	}
	return docs, nil
}

// parseContainerKey extracts a container key from a store URL of the
// shape .../spaces/{KEY}[/...]. Returns empty string if the URL does not
// name a container.
func parseContainerKey(url string) string {
	const marker = "/spaces/"
	idx := strings.Index(url, marker)
	if idx < 0 {
		return ""
	}
	rest := strings.TrimPrefix(url[idx:], marker)
	if end := strings.IndexAny(rest, "/?#"); end >= 0 {
		rest = rest[:end]
	}
	return rest
}
