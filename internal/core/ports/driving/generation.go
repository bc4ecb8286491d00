package driving

import (
	"context"

	"github.com/stampede-tools/stampede-cli/internal/core/domain"
)

// GenerationService runs bulk document creation from a stored template.
type GenerationService interface {
	// Run executes one bulk generation. Preconditions are validated
	// before any write; violating one fails the whole run with
	// domain.ErrInvalidInput and nothing created. Per-item create
	// failures are recorded in the report's Errors and do not fail the
	// call: partial success is the expected common case at scale.
	Run(ctx context.Context, req domain.GenerationRequest) (*domain.GenerationReport, error)

	// PreviewTitles expands a title spec into the exact ordered sequence
	// a run would use, without touching the remote store.
	PreviewTitles(spec domain.TitleSpec) ([]string, error)
}
