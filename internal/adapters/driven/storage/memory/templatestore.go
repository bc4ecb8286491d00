package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/stampede-tools/stampede-cli/internal/core/domain"
	"github.com/stampede-tools/stampede-cli/internal/core/ports/driven"
)

// Ensure TemplateStore implements the interface.
var _ driven.TemplateStore = (*TemplateStore)(nil)

// TemplateStore is an in-memory implementation of driven.TemplateStore.
type TemplateStore struct {
	mu        sync.RWMutex
	templates map[string]domain.Template
}

// NewTemplateStore creates a new in-memory template store.
func NewTemplateStore() *TemplateStore {
	return &TemplateStore{
		templates: make(map[string]domain.Template),
	}
}

// Save stores a template keyed by its id.
func (s *TemplateStore) Save(_ context.Context, tpl *domain.Template) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.templates[tpl.ID] = *tpl
	return nil
}

// Get retrieves a template by id.
func (s *TemplateStore) Get(_ context.Context, id string) (*domain.Template, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	tpl, ok := s.templates[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &tpl, nil
}

// List returns metadata for all stored templates, newest first.
func (s *TemplateStore) List(_ context.Context) ([]domain.TemplateInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	infos := make([]domain.TemplateInfo, 0, len(s.templates))
	for id := range s.templates {
		tpl := s.templates[id]
		infos = append(infos, tpl.Info())
	}
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].CreatedAt.After(infos[j].CreatedAt)
	})
	return infos, nil
}

// Delete removes a template.
func (s *TemplateStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.templates, id)
	return nil
}
