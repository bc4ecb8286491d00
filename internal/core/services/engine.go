package services

import (
	"context"
	"fmt"
	"time"

	"github.com/stampede-tools/stampede-cli/internal/core/domain"
	"github.com/stampede-tools/stampede-cli/internal/core/ports/driven"
	"github.com/stampede-tools/stampede-cli/internal/core/ports/driving"
	"github.com/stampede-tools/stampede-cli/internal/logger"
)

// Ensure BulkEngine implements the interface.
var _ driving.GenerationService = (*BulkEngine)(nil)

// BulkEngine creates N documents from a captured template: it resolves
// the destination, optionally materialises a new parent, expands and
// deduplicates the title sequence, then issues create writes in
// sequential bounded batches, isolating per-item failures into the
// report.
//
// Failed item-level writes are never retried automatically; only
// structural calls (container resolve, template fetch, parent creation)
// may fail the whole run. This is a deliberate policy, not an oversight:
// duplicated content is low stakes and a human reviews the report.
type BulkEngine struct {
	client    driven.DocumentStoreClient
	templates driven.TemplateStore
	resolver  *ContainerResolver
	settings  domain.Settings

	// sleep is swappable for tests.
	sleep func(ctx context.Context, d time.Duration) error
}

// NewBulkEngine creates a bulk creation engine.
func NewBulkEngine(client driven.DocumentStoreClient, templates driven.TemplateStore, resolver *ContainerResolver, settings domain.Settings) *BulkEngine {
	return &BulkEngine{
		client:    client,
		templates: templates,
		resolver:  resolver,
		settings:  settings.Normalised(),
		sleep:     sleepCtx,
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}

// PreviewTitles expands a title spec without touching the remote store.
func (e *BulkEngine) PreviewTitles(spec domain.TitleSpec) ([]string, error) {
	titles, err := ExpandTitles(spec)
	if err != nil {
		return nil, err
	}
	return DeduplicateTitles(titles), nil
}

// Run executes one bulk generation. All preconditions are validated
// before any write occurs; a violated precondition fails the run with
// nothing created. After the first create is issued there is no rollback:
// semantics are at-least-attempted, best-effort, no compensation.
func (e *BulkEngine) Run(ctx context.Context, req domain.GenerationRequest) (*domain.GenerationReport, error) {
	titles, err := e.resolveTitles(req)
	if err != nil {
		return nil, err
	}
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	tpl, err := e.templates.Get(ctx, req.TemplateID)
	if err != nil {
		return nil, fmt.Errorf("template %s: %w", req.TemplateID, err)
	}

	container, err := e.resolver.Resolve(ctx, req.ContainerKey)
	if err != nil {
		return nil, err
	}

	parentID, err := e.resolveParent(ctx, req, container)
	if err != nil {
		return nil, err
	}

	report := &domain.GenerationReport{
		TotalRequested: len(titles),
		ParentID:       parentID,
	}

	logger.Info("bulk run: %d titles into %s (batch size %d)", len(titles), container.Key, e.settings.BatchSize)

	e.createAll(ctx, titles, tpl, container, parentID, report)

	report.CreatedCount = len(report.Pages)
	return report, nil
}

// resolveTitles expands the title spec if no explicit list was given,
// then applies the deduplication pass.
func (e *BulkEngine) resolveTitles(req domain.GenerationRequest) ([]string, error) {
	titles := req.Titles
	if len(titles) == 0 {
		if req.TitleSpec == nil {
			return nil, fmt.Errorf("%w: titles or a title spec is required", domain.ErrInvalidInput)
		}
		var err error
		titles, err = ExpandTitles(*req.TitleSpec)
		if err != nil {
			return nil, err
		}
	}
	return DeduplicateTitles(titles), nil
}

func validateRequest(req domain.GenerationRequest) error {
	if req.TemplateID == "" {
		return fmt.Errorf("%w: template id is required", domain.ErrInvalidInput)
	}
	if req.ContainerKey == "" {
		return fmt.Errorf("%w: container key is required", domain.ErrInvalidInput)
	}
	if !req.Mode.IsValid() {
		return fmt.Errorf("%w: unknown organization mode %q", domain.ErrInvalidInput, req.Mode)
	}
	if req.Mode == domain.ModeAttachExisting && req.ParentDocumentID == "" {
		return fmt.Errorf("%w: parent document id is required for %s", domain.ErrInvalidInput, req.Mode)
	}
	if req.Mode == domain.ModeNewParent && req.NewParentTitle == "" {
		return fmt.Errorf("%w: new parent title is required for %s", domain.ErrInvalidInput, req.Mode)
	}
	return nil
}

// resolveParent determines the parent id for all child creates. For
// ModeNewParent this is itself a network write: its failure fails the
// whole run with no children created.
func (e *BulkEngine) resolveParent(ctx context.Context, req domain.GenerationRequest, container *domain.Container) (string, error) {
	switch req.Mode {
	case domain.ModeAttachExisting:
		return req.ParentDocumentID, nil
	case domain.ModeNewParent:
		parent, err := e.client.CreateDocument(ctx, driven.CreateDocumentSpec{
			ContainerID: container.ID,
			Title:       req.NewParentTitle,
			Body:        []byte{},
		})
		if err != nil {
			return "", fmt.Errorf("create parent %q: %w", req.NewParentTitle, err)
		}
		logger.Debug("created parent %s (%s)", parent.Title, parent.ID)
		return parent.ID, nil
	default:
		return "", nil
	}
}

// createAll processes titles in consecutive batches of BatchSize.
// Batches run in sequence, and within each batch creates are issued one
// at a time in list order, so consumers can number results by position.
// A per-item failure is recorded and the loop continues; a cancelled
// context stops issuing creates and records the remaining titles as
// failures so the report invariant holds.
func (e *BulkEngine) createAll(ctx context.Context, titles []string, tpl *domain.Template, container *domain.Container, parentID string, report *domain.GenerationReport) {
	for start := 0; start < len(titles); start += e.settings.BatchSize {
		end := start + e.settings.BatchSize
		if end > len(titles) {
			end = len(titles)
		}
		logger.Debug("batch %d..%d of %d", start, end-1, len(titles))

		for i := start; i < end; i++ {
			if err := ctx.Err(); err != nil {
				e.failRemaining(titles, i, err, report)
				return
			}

			doc, err := e.client.CreateDocument(ctx, driven.CreateDocumentSpec{
				ContainerID: container.ID,
				Title:       titles[i],
				ParentID:    parentID,
				Body:        tpl.Content,
			})
			if err != nil {
				logger.Warn("create %q failed: %v", titles[i], err)
				report.Errors = append(report.Errors, domain.PageError{
					Title: titles[i],
					Err:   err.Error(),
					Index: i,
				})
				continue
			}

			report.Pages = append(report.Pages, domain.CreatedPage{
				ID:    doc.ID,
				Title: doc.Title,
				URL:   doc.URL,
				Index: i,
			})

			if i < len(titles)-1 {
				if err := e.sleep(ctx, e.settings.CreateDelay); err != nil {
					e.failRemaining(titles, i+1, err, report)
					return
				}
			}
		}
	}
}

// failRemaining records every not-yet-attempted title as a failure,
// preserving the one-outcome-per-title invariant on early exit.
func (e *BulkEngine) failRemaining(titles []string, from int, err error, report *domain.GenerationReport) {
	for i := from; i < len(titles); i++ {
		report.Errors = append(report.Errors, domain.PageError{
			Title: titles[i],
			Err:   err.Error(),
			Index: i,
		})
	}
}
