package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stampede-tools/stampede-cli/internal/adapters/driven/storage/memory"
	"github.com/stampede-tools/stampede-cli/internal/core/domain"
)

func newEngineFixture(t *testing.T) (*BulkEngine, *memory.StoreClient) {
	t.Helper()

	client := memory.NewStoreClient()
	client.Containers = []domain.Container{
		{ID: "10", Key: "ENG", Name: "Engineering"},
	}
	client.Documents["10"] = []domain.Document{
		{ID: "500", Title: "Existing Parent"},
	}

	templates := memory.NewTemplateStore()
	err := templates.Save(context.Background(), &domain.Template{
		ID:          "tpl-1",
		Name:        "Weekly Notes",
		SourceTitle: "Weekly Notes",
		Content:     []byte("<p>body</p>"),
		CreatedAt:   time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	engine := NewBulkEngine(client, templates, NewContainerResolver(client), domain.DefaultSettings())
	engine.sleep = func(context.Context, time.Duration) error { return nil }
	return engine, client
}

func TestRunAllSucceed(t *testing.T) {
	engine, client := newEngineFixture(t)

	report, err := engine.Run(context.Background(), domain.GenerationRequest{
		TemplateID:   "tpl-1",
		ContainerKey: "ENG",
		Mode:         domain.ModeTopLevel,
		Titles:       []string{"One", "Two", "Three"},
	})
	require.NoError(t, err)

	assert.Equal(t, 3, report.TotalRequested)
	assert.Equal(t, 3, report.CreatedCount)
	assert.Empty(t, report.Errors)
	assert.Empty(t, report.ParentID)

	created := client.Created()
	require.Len(t, created, 3)
	assert.Equal(t, "One", created[0].Title)
	assert.Equal(t, "Three", created[2].Title)
	for _, doc := range created {
		assert.Nil(t, doc.ParentID)
	}
}

func TestRunPartialFailure(t *testing.T) {
	engine, client := newEngineFixture(t)
	client.FailCreateTitles["Two"] = true

	report, err := engine.Run(context.Background(), domain.GenerationRequest{
		TemplateID:   "tpl-1",
		ContainerKey: "ENG",
		Mode:         domain.ModeTopLevel,
		Titles:       []string{"One", "Two", "Three"},
	})
	require.NoError(t, err)

	assert.Equal(t, 3, report.TotalRequested)
	assert.Equal(t, 2, report.CreatedCount)
	require.Len(t, report.Errors, 1)
	assert.Equal(t, "Two", report.Errors[0].Title)
	assert.Equal(t, 1, report.Errors[0].Index)

	// Invariant: every requested title has exactly one outcome.
	assert.Equal(t, report.TotalRequested, report.CreatedCount+len(report.Errors))

	// The failure did not stop item three.
	created := client.Created()
	require.Len(t, created, 2)
	assert.Equal(t, "Three", created[1].Title)
}

func TestRunAllFail(t *testing.T) {
	engine, client := newEngineFixture(t)
	for _, title := range []string{"One", "Two", "Three"} {
		client.FailCreateTitles[title] = true
	}

	report, err := engine.Run(context.Background(), domain.GenerationRequest{
		TemplateID:   "tpl-1",
		ContainerKey: "ENG",
		Mode:         domain.ModeTopLevel,
		Titles:       []string{"One", "Two", "Three"},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, report.CreatedCount)
	assert.Len(t, report.Errors, 3)
	assert.Equal(t, report.TotalRequested, report.CreatedCount+len(report.Errors))
}

func TestRunPreservesIndexOrder(t *testing.T) {
	engine, client := newEngineFixture(t)
	client.FailCreateTitles["B"] = true

	report, err := engine.Run(context.Background(), domain.GenerationRequest{
		TemplateID:   "tpl-1",
		ContainerKey: "ENG",
		Mode:         domain.ModeTopLevel,
		Titles:       []string{"A", "B", "C", "D"},
	})
	require.NoError(t, err)

	require.Len(t, report.Pages, 3)
	assert.Equal(t, []int{0, 2, 3}, []int{report.Pages[0].Index, report.Pages[1].Index, report.Pages[2].Index})
	require.Len(t, report.Errors, 1)
	assert.Equal(t, 1, report.Errors[0].Index)
}

func TestRunNewParent(t *testing.T) {
	engine, client := newEngineFixture(t)

	report, err := engine.Run(context.Background(), domain.GenerationRequest{
		TemplateID:     "tpl-1",
		ContainerKey:   "ENG",
		Mode:           domain.ModeNewParent,
		NewParentTitle: "Retros 2026",
		Titles:         []string{"One", "Two"},
	})
	require.NoError(t, err)
	require.NotEmpty(t, report.ParentID)

	created := client.Created()
	require.Len(t, created, 3)
	assert.Equal(t, "Retros 2026", created[0].Title)
	for _, child := range created[1:] {
		require.NotNil(t, child.ParentID)
		assert.Equal(t, report.ParentID, *child.ParentID)
	}
}

func TestRunNewParentFailureFailsRun(t *testing.T) {
	engine, client := newEngineFixture(t)
	client.FailCreateTitles["Retros 2026"] = true

	_, err := engine.Run(context.Background(), domain.GenerationRequest{
		TemplateID:     "tpl-1",
		ContainerKey:   "ENG",
		Mode:           domain.ModeNewParent,
		NewParentTitle: "Retros 2026",
		Titles:         []string{"One", "Two"},
	})
	require.Error(t, err)
	assert.Empty(t, client.Created())
}

func TestRunAttachExisting(t *testing.T) {
	engine, client := newEngineFixture(t)

	report, err := engine.Run(context.Background(), domain.GenerationRequest{
		TemplateID:       "tpl-1",
		ContainerKey:     "ENG",
		Mode:             domain.ModeAttachExisting,
		ParentDocumentID: "500",
		Titles:           []string{"One"},
	})
	require.NoError(t, err)
	assert.Equal(t, "500", report.ParentID)

	created := client.Created()
	require.Len(t, created, 1)
	require.NotNil(t, created[0].ParentID)
	assert.Equal(t, "500", *created[0].ParentID)
}

func TestRunExpandsTitleSpec(t *testing.T) {
	engine, client := newEngineFixture(t)

	report, err := engine.Run(context.Background(), domain.GenerationRequest{
		TemplateID:   "tpl-1",
		ContainerKey: "ENG",
		Mode:         domain.ModeTopLevel,
		TitleSpec: &domain.TitleSpec{
			Mode:      domain.TitleNumbered,
			BaseTitle: "Sprint",
			Count:     3,
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, report.CreatedCount)

	created := client.Created()
	assert.Equal(t, "Sprint (1)", created[0].Title)
	assert.Equal(t, "Sprint (3)", created[2].Title)
}

func TestRunDeduplicatesExplicitTitles(t *testing.T) {
	engine, client := newEngineFixture(t)

	_, err := engine.Run(context.Background(), domain.GenerationRequest{
		TemplateID:   "tpl-1",
		ContainerKey: "ENG",
		Mode:         domain.ModeTopLevel,
		Titles:       []string{"Notes", "Notes"},
	})
	require.NoError(t, err)

	created := client.Created()
	require.Len(t, created, 2)
	assert.Equal(t, "Notes", created[0].Title)
	assert.Equal(t, "Notes (2)", created[1].Title)
}

func TestRunValidation(t *testing.T) {
	engine, client := newEngineFixture(t)

	tests := []struct {
		name string
		req  domain.GenerationRequest
	}{
		{
			name: "missing template id",
			req: domain.GenerationRequest{
				ContainerKey: "ENG", Mode: domain.ModeTopLevel, Titles: []string{"A"},
			},
		},
		{
			name: "missing container key",
			req: domain.GenerationRequest{
				TemplateID: "tpl-1", Mode: domain.ModeTopLevel, Titles: []string{"A"},
			},
		},
		{
			name: "unknown mode",
			req: domain.GenerationRequest{
				TemplateID: "tpl-1", ContainerKey: "ENG", Mode: "sideways", Titles: []string{"A"},
			},
		},
		{
			name: "attach-existing without parent id",
			req: domain.GenerationRequest{
				TemplateID: "tpl-1", ContainerKey: "ENG",
				Mode: domain.ModeAttachExisting, Titles: []string{"A"},
			},
		},
		{
			name: "new-parent without title",
			req: domain.GenerationRequest{
				TemplateID: "tpl-1", ContainerKey: "ENG",
				Mode: domain.ModeNewParent, Titles: []string{"A"},
			},
		},
		{
			name: "no titles and no spec",
			req: domain.GenerationRequest{
				TemplateID: "tpl-1", ContainerKey: "ENG", Mode: domain.ModeTopLevel,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := engine.Run(context.Background(), tt.req)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}

	// Validation failures never reach the store.
	assert.Empty(t, client.Created())
}

func TestRunUnknownTemplate(t *testing.T) {
	engine, client := newEngineFixture(t)

	_, err := engine.Run(context.Background(), domain.GenerationRequest{
		TemplateID:   "tpl-missing",
		ContainerKey: "ENG",
		Mode:         domain.ModeTopLevel,
		Titles:       []string{"A"},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, client.Created())
}

func TestRunUnknownContainer(t *testing.T) {
	engine, client := newEngineFixture(t)

	_, err := engine.Run(context.Background(), domain.GenerationRequest{
		TemplateID:   "tpl-1",
		ContainerKey: "NOPE",
		Mode:         domain.ModeTopLevel,
		Titles:       []string{"A"},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, client.Created())
}

func TestRunCancelledContextFailsRemaining(t *testing.T) {
	engine, _ := newEngineFixture(t)

	calls := 0
	engine.sleep = func(ctx context.Context, _ time.Duration) error {
		calls++
		if calls == 2 {
			return context.Canceled
		}
		return nil
	}

	report, err := engine.Run(context.Background(), domain.GenerationRequest{
		TemplateID:   "tpl-1",
		ContainerKey: "ENG",
		Mode:         domain.ModeTopLevel,
		Titles:       []string{"A", "B", "C", "D"},
	})
	require.NoError(t, err)

	// A and B created, C and D recorded as failures.
	assert.Equal(t, 2, report.CreatedCount)
	require.Len(t, report.Errors, 2)
	assert.Equal(t, 2, report.Errors[0].Index)
	assert.Equal(t, 3, report.Errors[1].Index)
	assert.Equal(t, report.TotalRequested, report.CreatedCount+len(report.Errors))
}

func TestPreviewTitles(t *testing.T) {
	engine, _ := newEngineFixture(t)

	titles, err := engine.PreviewTitles(domain.TitleSpec{
		Mode:      domain.TitleNumbered,
		BaseTitle: "Sprint",
		Count:     2,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Sprint (1)", "Sprint (2)"}, titles)
}
