package driving

import (
	"context"

	"github.com/stampede-tools/stampede-cli/internal/core/domain"
)

// TemplateService captures and manages stored templates.
// Template content is never returned through this port; it is only
// consumed internally by the generation service.
type TemplateService interface {
	// Capture fetches the referenced document's content and persists it
	// as a new template. The reference is either a direct document id or
	// a store URL. Returns domain.ErrInvalidReference when a URL cannot
	// be parsed.
	Capture(ctx context.Context, ref domain.TemplateRef, name string) (*domain.TemplateInfo, error)

	// List returns metadata for all stored templates.
	List(ctx context.Context) ([]domain.TemplateInfo, error)

	// Get returns metadata for one template.
	Get(ctx context.Context, id string) (*domain.TemplateInfo, error)

	// Remove deletes a stored template. Template lifetime is
	// caller-managed; there is no expiry.
	Remove(ctx context.Context, id string) error
}
