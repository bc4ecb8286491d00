package driven

import (
	"context"

	"github.com/stampede-tools/stampede-cli/internal/core/domain"
)

// TemplateStore persists captured templates.
// Backed by SQLite for durable storage. Templates are write-once: each id
// is unique and never rewritten, so no locking is required around the
// read side.
type TemplateStore interface {
	// Save stores a template keyed by its id.
	Save(ctx context.Context, tpl *domain.Template) error

	// Get retrieves a template by id, including its content.
	// Returns domain.ErrNotFound if the id does not resolve.
	Get(ctx context.Context, id string) (*domain.Template, error)

	// List returns metadata for all stored templates, newest first.
	// Content is not loaded.
	List(ctx context.Context) ([]domain.TemplateInfo, error)

	// Delete removes a template.
	Delete(ctx context.Context, id string) error
}
