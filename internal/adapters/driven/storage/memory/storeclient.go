package memory

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"sync"

	"github.com/stampede-tools/stampede-cli/internal/core/domain"
	"github.com/stampede-tools/stampede-cli/internal/core/ports/driven"
)

// Ensure StoreClient implements the interface.
var _ driven.DocumentStoreClient = (*StoreClient)(nil)

// StoreClient is an in-memory implementation of driven.DocumentStoreClient
// serving canned paginated sequences. It is the seam that makes the
// failure-injection tests possible: individual calls can be made to fail
// per container or per title.
type StoreClient struct {
	mu sync.Mutex

	// Containers and Documents (keyed by container id) are the canned
	// catalog returned by list calls.
	Containers []domain.Container
	Documents  map[string][]domain.Document

	// Content maps document id to its raw body.
	Content map[string]*driven.DocumentContent

	// PageSize is the built-in pagination slice size. The limit argument
	// of list calls is honoured when smaller.
	PageSize int

	// StickyCursor makes the final page come back empty with the cursor
	// still set, imitating stores that do not clear it. Crawlers must
	// treat the empty page as termination.
	StickyCursor bool

	// Failure injection.
	FailListContainers bool
	FailDocumentsFor   map[string]bool
	FailCreateTitles   map[string]bool
	FailGetContent     bool

	// Call accounting for memoization tests.
	FindContainerCalls int
	ContainerListCalls int

	created []domain.Document
	nextID  int
}

// NewStoreClient creates an empty fake store client.
func NewStoreClient() *StoreClient {
	return &StoreClient{
		Documents:        make(map[string][]domain.Document),
		Content:          make(map[string]*driven.DocumentContent),
		FailDocumentsFor: make(map[string]bool),
		FailCreateTitles: make(map[string]bool),
		PageSize:         2,
		nextID:           1000,
	}
}

// FindContainerByKey scans the canned containers for an exact key match.
func (c *StoreClient) FindContainerByKey(_ context.Context, key string) (*domain.Container, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.FindContainerCalls++

	for i := range c.Containers {
		if c.Containers[i].Key == key {
			container := c.Containers[i]
			return &container, nil
		}
	}
	return nil, fmt.Errorf("container %q: %w", key, domain.ErrNotFound)
}

// ListContainers returns one page of canned containers.
func (c *StoreClient) ListContainers(_ context.Context, cursor string, limit int) (*driven.ContainerPage, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ContainerListCalls++

	if c.FailListContainers {
		return nil, fmt.Errorf("list containers: service unavailable")
	}

	start, size, err := c.window(cursor, limit, len(c.Containers))
	if err != nil {
		return nil, err
	}

	page := &driven.ContainerPage{
		Containers: c.Containers[start : start+size],
	}
	c.fillCursor(start+size, len(c.Containers), &page.NextCursor)
	return page, nil
}

// ListDocuments returns one page of a container's canned documents.
func (c *StoreClient) ListDocuments(_ context.Context, containerID, cursor string, limit int) (*driven.DocumentPage, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.FailDocumentsFor[containerID] {
		return nil, fmt.Errorf("list documents for %s: boom", containerID)
	}

	docs := c.Documents[containerID]
	start, size, err := c.window(cursor, limit, len(docs))
	if err != nil {
		return nil, err
	}

	page := &driven.DocumentPage{
		Documents: docs[start : start+size],
	}
	c.fillCursor(start+size, len(docs), &page.NextCursor)
	return page, nil
}

// ListTopDocuments returns up to limit documents sorted by title.
func (c *StoreClient) ListTopDocuments(_ context.Context, containerID string, limit int, _ string) ([]domain.Document, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.FailDocumentsFor[containerID] {
		return nil, fmt.Errorf("list documents for %s: boom", containerID)
	}

	docs := append([]domain.Document(nil), c.Documents[containerID]...)
	sort.Slice(docs, func(i, j int) bool { return docs[i].Title < docs[j].Title })
	if len(docs) > limit {
		docs = docs[:limit]
	}
	return docs, nil
}

// GetDocument finds a canned or created document by id.
func (c *StoreClient) GetDocument(_ context.Context, id string) (*domain.Document, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, docs := range c.Documents {
		for i := range docs {
			if docs[i].ID == id {
				doc := docs[i]
				return &doc, nil
			}
		}
	}
	for i := range c.created {
		if c.created[i].ID == id {
			doc := c.created[i]
			return &doc, nil
		}
	}
	return nil, fmt.Errorf("document %q: %w", id, domain.ErrNotFound)
}

// GetDocumentContent returns the canned body for a document.
func (c *StoreClient) GetDocumentContent(_ context.Context, id string) (*driven.DocumentContent, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.FailGetContent {
		return nil, fmt.Errorf("fetch content for %s: boom", id)
	}

	content, ok := c.Content[id]
	if !ok {
		return nil, fmt.Errorf("document %q: %w", id, domain.ErrNotFound)
	}
	out := *content
	return &out, nil
}

// CreateDocument records a create unless the title is marked to fail.
func (c *StoreClient) CreateDocument(_ context.Context, spec driven.CreateDocumentSpec) (*domain.Document, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.FailCreateTitles[spec.Title] {
		return nil, fmt.Errorf("create %q: service unavailable", spec.Title)
	}

	c.nextID++
	doc := domain.Document{
		ID:    strconv.Itoa(c.nextID),
		Title: spec.Title,
		URL:   fmt.Sprintf("https://store.example/pages/%d", c.nextID),
	}
	if spec.ParentID != "" {
		parent := spec.ParentID
		doc.ParentID = &parent
	}
	c.created = append(c.created, doc)
	return &doc, nil
}

// Created returns all documents created through this client, in order.
func (c *StoreClient) Created() []domain.Document {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]domain.Document(nil), c.created...)
}

// window turns a cursor and limit into a slice offset and size.
func (c *StoreClient) window(cursor string, limit, total int) (start, size int, err error) {
	if cursor != "" {
		start, err = strconv.Atoi(cursor)
		if err != nil || start < 0 {
			return 0, 0, fmt.Errorf("invalid cursor %q", cursor)
		}
	}
	if start > total {
		start = total
	}

	size = c.PageSize
	if limit > 0 && limit < size {
		size = limit
	}
	if start+size > total {
		size = total - start
	}
	return start, size, nil
}

// fillCursor sets the next cursor when more results remain, or when
// StickyCursor simulates a store that never clears it.
func (c *StoreClient) fillCursor(next, total int, cursor *string) {
	if next < total || c.StickyCursor {
		*cursor = strconv.Itoa(next)
	}
}
