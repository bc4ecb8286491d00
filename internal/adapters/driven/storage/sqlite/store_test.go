package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stampede-tools/stampede-cli/internal/core/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleTemplate(id string, createdAt time.Time) *domain.Template {
	return &domain.Template{
		ID:                id,
		Name:              "Weekly Notes",
		SourceDocumentID:  "123",
		SourceContainerID: "42",
		SourceTitle:       "Weekly Notes",
		Content:           []byte("<p>hello</p>"),
		CreatedAt:         createdAt,
	}
}

func TestStoreSaveAndGet(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, store.Save(ctx, sampleTemplate("tpl-1", created)))

	tpl, err := store.Get(ctx, "tpl-1")
	require.NoError(t, err)
	assert.Equal(t, "Weekly Notes", tpl.Name)
	assert.Equal(t, "123", tpl.SourceDocumentID)
	assert.Equal(t, "42", tpl.SourceContainerID)
	assert.Equal(t, []byte("<p>hello</p>"), tpl.Content)
	assert.True(t, tpl.CreatedAt.Equal(created))
}

func TestStoreGetMissing(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Get(context.Background(), "tpl-missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStoreListNewestFirst(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	older := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, store.Save(ctx, sampleTemplate("tpl-old", older)))
	require.NoError(t, store.Save(ctx, sampleTemplate("tpl-new", newer)))

	infos, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, infos, 2)
	assert.Equal(t, "tpl-new", infos[0].ID)
	assert.Equal(t, "tpl-old", infos[1].ID)
}

func TestStoreDelete(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, sampleTemplate("tpl-1", time.Now().UTC())))
	require.NoError(t, store.Delete(ctx, "tpl-1"))

	_, err := store.Get(ctx, "tpl-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Deleting a missing template is not an error.
	assert.NoError(t, store.Delete(ctx, "tpl-1"))
}

func TestStoreDuplicateIDRejected(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	tpl := sampleTemplate("tpl-1", time.Now().UTC())
	require.NoError(t, store.Save(ctx, tpl))
	assert.Error(t, store.Save(ctx, tpl))
}

func TestStoreMigrationsAreIdempotent(t *testing.T) {
	dir := t.TempDir()

	first, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, first.Save(context.Background(), sampleTemplate("tpl-1", time.Now().UTC())))
	require.NoError(t, first.Close())

	// Reopening the same file must not re-run applied migrations.
	second, err := NewStore(dir)
	require.NoError(t, err)
	defer second.Close()

	tpl, err := second.Get(context.Background(), "tpl-1")
	require.NoError(t, err)
	assert.Equal(t, "Weekly Notes", tpl.Name)
	assert.Equal(t, filepath.Join(dir, "templates.db"), second.Path())
}
