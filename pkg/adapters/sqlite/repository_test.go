package sqlite

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/docsense/pkg/core"
)

func openTestRepo(t *testing.T, path string) *Repository {
	t.Helper()
	repo, err := NewRepository(Config{
		Path: path,
		Now:  func() time.Time { return time.Date(2024, 7, 1, 8, 30, 0, 0, time.UTC) },
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	require.NoError(t, repo.Initialize(context.Background()))
	return repo
}

func TestRepository_AddGetList(t *testing.T) {
	ctx := context.Background()
	repo := openTestRepo(t, filepath.Join(t.TempDir(), DefaultFilename))

	first, err := repo.Add(ctx, core.NewDocument{Content: "Olá mundo bonito", Title: "Saudação"})
	require.NoError(t, err)
	assert.Equal(t, "doc_001", first.ID)
	assert.Equal(t, 3, first.WordCount)
	assert.Equal(t, "2024-07-01T08:30:00Z", first.CreatedDate)

	second, err := repo.Add(ctx, core.NewDocument{Content: "b"})
	require.NoError(t, err)
	assert.Equal(t, "doc_002", second.ID)
	assert.Equal(t, "Document doc_002", second.Title)

	got, err := repo.Get(ctx, "doc_001")
	require.NoError(t, err)
	assert.Equal(t, first, got)

	docs, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "doc_001", docs[0].ID)
	assert.Equal(t, "doc_002", docs[1].ID)

	content, err := repo.ReadContent(ctx, "doc_001")
	require.NoError(t, err)
	assert.Equal(t, "Olá mundo bonito", content)

	_, err = repo.Get(ctx, "doc_009")
	assert.ErrorIs(t, err, core.ErrNotFound)
	_, err = repo.ReadContent(ctx, "doc_009")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestRepository_Reopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", DefaultFilename)

	repo := openTestRepo(t, path)
	_, err := repo.Add(ctx, core.NewDocument{Content: "persisted"})
	require.NoError(t, err)
	require.NoError(t, repo.Close())

	reopened := openTestRepo(t, path)
	docs, err := reopened.List(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 1)

	next, err := reopened.Add(ctx, core.NewDocument{Content: "again"})
	require.NoError(t, err)
	assert.Equal(t, "doc_002", next.ID)
}

func TestRepository_InMemory(t *testing.T) {
	ctx := context.Background()
	repo := openTestRepo(t, ":memory:")

	docs, err := repo.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, docs)
	assert.Empty(t, docs)

	_, err = repo.Add(ctx, core.NewDocument{Content: "ephemeral"})
	require.NoError(t, err)

	state := repo.State().(RepositoryState)
	assert.Equal(t, 1, state.Documents)
	assert.Empty(t, state.Error)
}

func TestRepository_ConcurrentAdds(t *testing.T) {
	ctx := context.Background()
	repo := openTestRepo(t, filepath.Join(t.TempDir(), DefaultFilename))

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Add(ctx, core.NewDocument{Content: "parallel"})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	docs, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, docs, 10)
	assert.Equal(t, "doc_010", docs[9].ID)
}
