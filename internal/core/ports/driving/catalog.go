package driving

import (
	"context"

	"github.com/stampede-tools/stampede-cli/internal/core/domain"
)

// CatalogService reads the remote store: container resolution, listings,
// and the exhaustive crawl.
type CatalogService interface {
	// ListContainers returns all containers, following pagination to
	// exhaustion.
	ListContainers(ctx context.Context) ([]domain.Container, error)

	// ResolveContainer maps a container key to its full metadata,
	// including the store-internal numeric id.
	ResolveContainer(ctx context.Context, key string) (*domain.Container, error)

	// CrawlAll enumerates documents across all containers up to
	// maxDocuments. Per-container failures do not abort the crawl; a
	// failure to list containers at all is reported through the result's
	// Err field, never as a returned error, alongside whatever partial
	// result was collected.
	CrawlAll(ctx context.Context, maxDocuments int) *domain.CrawlResult

	// ResolveFromURL resolves a pasted store URL to either a single
	// document (direct mode) or a listing of the named container.
	ResolveFromURL(ctx context.Context, url string) (*domain.URLResolution, error)

	// ListTopDocuments returns up to limit documents in a container,
	// sorted by title.
	ListTopDocuments(ctx context.Context, containerKey string, limit int) ([]domain.Document, error)
}
