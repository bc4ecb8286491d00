package driven

import (
	"context"

	"github.com/stampede-tools/stampede-cli/internal/core/domain"
)

// ContainerPage is one page of a container listing.
// An empty NextCursor means the listing is exhausted. Callers must also
// treat an empty Containers slice as a termination signal, since some
// stores return an empty page without clearing the cursor.
type ContainerPage struct {
	Containers []domain.Container
	NextCursor string
}

// DocumentPage is one page of a document listing.
type DocumentPage struct {
	Documents  []domain.Document
	NextCursor string
}

// DocumentContent is a document's body in its native serialised form.
// The body is an opaque blob, never parsed or transformed.
type DocumentContent struct {
	ID          string
	Title       string
	ContainerID string
	Body        []byte
}

// CreateDocumentSpec describes one document to create.
type CreateDocumentSpec struct {
	ContainerID string
	Title       string

	// ParentID is empty for top-level documents.
	ParentID string

	// Body is carried verbatim from the captured template.
	Body []byte
}

// DocumentStoreClient is the seam to the remote paginated document store.
// The production implementation talks to the real REST API; the in-memory
// double returns canned paginated sequences for failure-injection tests.
type DocumentStoreClient interface {
	// FindContainerByKey looks up a container by its stable key via an
	// exact-match filter query. Returns domain.ErrNotFound on no match.
	FindContainerByKey(ctx context.Context, key string) (*domain.Container, error)

	// ListContainers returns one page of containers.
	ListContainers(ctx context.Context, cursor string, limit int) (*ContainerPage, error)

	// ListDocuments returns one page of documents in a container.
	ListDocuments(ctx context.Context, containerID, cursor string, limit int) (*DocumentPage, error)

	// ListTopDocuments returns up to limit documents in a container,
	// sorted by the given field.
	ListTopDocuments(ctx context.Context, containerID string, limit int, sortBy string) ([]domain.Document, error)

	// GetDocument fetches a single document's metadata.
	GetDocument(ctx context.Context, id string) (*domain.Document, error)

	// GetDocumentContent fetches a document's full body in its native
	// serialised form.
	GetDocumentContent(ctx context.Context, id string) (*DocumentContent, error)

	// CreateDocument issues one document-create write and returns the
	// created document with its id and resolvable URL.
	CreateDocument(ctx context.Context, spec CreateDocumentSpec) (*domain.Document, error)
}
