package services

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/stampede-tools/stampede-cli/internal/core/domain"
	"github.com/stampede-tools/stampede-cli/internal/core/ports/driven"
	"github.com/stampede-tools/stampede-cli/internal/core/ports/driving"
	"github.com/stampede-tools/stampede-cli/internal/logger"
)

// Ensure TemplateCapture implements the interface.
var _ driving.TemplateService = (*TemplateCapture)(nil)

// URL shapes a document reference can arrive in, tried in priority
// order. First match wins.
var (
	// Direct view: /spaces/KEY/pages/12345/Optional-Title
	directViewPattern = regexp.MustCompile(`/spaces/[^/]+/pages/(\d+)`)

	// Editor: /pages/edit-v2/12345 or /pages/resumedraft.action?draftId=12345
	editorPattern = regexp.MustCompile(`/pages/edit-v2/(\d+)`)
	draftPattern  = regexp.MustCompile(`[?&]draftId=(\d+)`)

	// Legacy view: /pages/viewpage.action?pageId=12345
	legacyViewPattern = regexp.MustCompile(`/pages/viewpage\.action\?.*?pageId=(\d+)`)
)

// ParseDocumentURL extracts a document id from a store URL by trying the
// known URL shapes in fixed priority order: direct view, editor, legacy
// view, then a bare pageId query parameter. Returns
// domain.ErrInvalidReference when no shape matches.
func ParseDocumentURL(rawURL string) (string, error) {
	trimmed := strings.TrimSpace(rawURL)
	if trimmed == "" {
		return "", fmt.Errorf("%w: empty URL", domain.ErrInvalidReference)
	}

	for _, pattern := range []*regexp.Regexp{directViewPattern, editorPattern, draftPattern, legacyViewPattern} {
		if m := pattern.FindStringSubmatch(trimmed); m != nil {
			return m[1], nil
		}
	}

	// Bare query param: any URL carrying ?pageId=12345.
	if u, err := url.Parse(trimmed); err == nil {
		if id := u.Query().Get("pageId"); id != "" {
			return id, nil
		}
	}

	return "", fmt.Errorf("%w: %q", domain.ErrInvalidReference, rawURL)
}

// TemplateCapture fetches a document's raw content and persists it as a
// reusable template.
type TemplateCapture struct {
	client    driven.DocumentStoreClient
	templates driven.TemplateStore

	// now and newID are swappable for tests.
	now   func() time.Time
	newID func() string
}

// NewTemplateCapture creates a template capture service.
func NewTemplateCapture(client driven.DocumentStoreClient, templates driven.TemplateStore) *TemplateCapture {
	return &TemplateCapture{
		client:    client,
		templates: templates,
		now:       time.Now,
		newID:     newTemplateID,
	}
}

// newTemplateID generates a fresh template id. Time prefix plus a random
// suffix is sufficient; global uniqueness across concurrent captures is a
// soft requirement only.
func newTemplateID() string {
	return fmt.Sprintf("tpl-%d-%s", time.Now().UnixMilli(), uuid.NewString()[:8])
}

// Capture fetches the referenced document's full content in its native
// serialised form and persists it keyed by a generated template id. Only
// the non-bulky metadata subset is returned; content is consumed
// internally by the generation service.
func (s *TemplateCapture) Capture(ctx context.Context, ref domain.TemplateRef, name string) (*domain.TemplateInfo, error) {
	docID := ref.DocumentID
	if docID == "" {
		var err error
		docID, err = ParseDocumentURL(ref.URL)
		if err != nil {
			return nil, err
		}
	}

	content, err := s.client.GetDocumentContent(ctx, docID)
	if err != nil {
		return nil, fmt.Errorf("fetch document %s: %w", docID, err)
	}

	if name == "" {
		name = content.Title
	}

	tpl := &domain.Template{
		ID:                s.newID(),
		Name:              name,
		SourceDocumentID:  content.ID,
		SourceContainerID: content.ContainerID,
		SourceTitle:       content.Title,
		Content:           content.Body,
		CreatedAt:         s.now().UTC(),
	}

	if err := s.templates.Save(ctx, tpl); err != nil {
		return nil, fmt.Errorf("save template: %w", err)
	}

	logger.Info("captured template %s from document %s (%d bytes)", tpl.ID, docID, len(tpl.Content))

	info := tpl.Info()
	return &info, nil
}

// List returns metadata for all stored templates.
func (s *TemplateCapture) List(ctx context.Context) ([]domain.TemplateInfo, error) {
	return s.templates.List(ctx)
}

// Get returns metadata for one template.
func (s *TemplateCapture) Get(ctx context.Context, id string) (*domain.TemplateInfo, error) {
	tpl, err := s.templates.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	info := tpl.Info()
	return &info, nil
}

// Remove deletes a stored template.
func (s *TemplateCapture) Remove(ctx context.Context, id string) error {
	if _, err := s.templates.Get(ctx, id); err != nil {
		return err
	}
	return s.templates.Delete(ctx, id)
}
