package fs

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/docsense/pkg/core"
)

var fixedClock = func() time.Time { return time.Date(2024, 3, 9, 10, 0, 0, 0, time.UTC) }

func newTestRepo(t *testing.T, dir string) *Repository {
	t.Helper()
	repo := NewRepository(Config{
		Path:   dir,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		Now:    fixedClock,
	})
	require.NoError(t, repo.Initialize(context.Background()))
	return repo
}

func TestRepository_Initialize(t *testing.T) {
	t.Run("Creates Layout", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "store")
		repo := newTestRepo(t, dir)

		info, err := os.Stat(filepath.Join(dir, DefaultContentDir))
		require.NoError(t, err)
		assert.True(t, info.IsDir())

		docs, err := repo.List(context.Background())
		require.NoError(t, err)
		assert.Empty(t, docs)

		_, err = os.Stat(filepath.Join(dir, DefaultIndexFile))
		assert.True(t, os.IsNotExist(err), "index is only written on the first add")
	})

	t.Run("MustExist", func(t *testing.T) {
		repo := NewRepository(Config{Path: filepath.Join(t.TempDir(), "missing"), MustExist: true})
		err := repo.Initialize(context.Background())
		assert.ErrorIs(t, err, core.ErrUnavailable)
	})

	t.Run("Corrupt Index", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultIndexFile), []byte("{not json"), 0644))

		repo := NewRepository(Config{Path: dir})
		err := repo.Initialize(context.Background())
		assert.ErrorIs(t, err, core.ErrUnavailable)
	})
}

func TestRepository_AddAndRead(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	repo := newTestRepo(t, dir)

	doc, err := repo.Add(ctx, core.NewDocument{Content: "Grüße aus Köln.\r\nZweite Zeile", Title: "Köln", Author: "Jo"})
	require.NoError(t, err)
	assert.Equal(t, "doc_001", doc.ID)
	assert.Equal(t, core.Metadata{
		Title:       "Köln",
		Author:      "Jo",
		Category:    "General",
		Filename:    "doc_001.txt",
		CreatedDate: "2024-03-09T10:00:00Z",
		WordCount:   5,
	}, doc.Metadata)

	content, err := repo.ReadContent(ctx, "doc_001")
	require.NoError(t, err)
	assert.Equal(t, "Grüße aus Köln.\r\nZweite Zeile", content)

	raw, err := os.ReadFile(filepath.Join(dir, DefaultContentDir, "doc_001.txt"))
	require.NoError(t, err)
	assert.Equal(t, content, string(raw))

	got, err := repo.Get(ctx, "doc_001")
	require.NoError(t, err)
	assert.Equal(t, doc, got)

	_, err = repo.Get(ctx, "doc_404")
	assert.ErrorIs(t, err, core.ErrNotFound)
	_, err = repo.ReadContent(ctx, "doc_404")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestRepository_Persistence(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	repo := newTestRepo(t, dir)

	for _, title := range []string{"one", "two", "three"} {
		_, err := repo.Add(ctx, core.NewDocument{Content: title + " body", Title: title})
		require.NoError(t, err)
	}

	reopened := newTestRepo(t, dir)
	docs, err := reopened.List(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 3)
	for i, want := range []string{"doc_001", "doc_002", "doc_003"} {
		assert.Equal(t, want, docs[i].ID)
	}

	content, err := reopened.ReadContent(ctx, "doc_002")
	require.NoError(t, err)
	assert.Equal(t, "two body", content)

	next, err := reopened.Add(ctx, core.NewDocument{Content: "four"})
	require.NoError(t, err)
	assert.Equal(t, "doc_004", next.ID)
}

func TestRepository_MissingContentFile(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	repo := newTestRepo(t, dir)

	_, err := repo.Add(ctx, core.NewDocument{Content: "soon gone"})
	require.NoError(t, err)
	require.NoError(t, os.Remove(filepath.Join(dir, DefaultContentDir, "doc_001.txt")))

	_, err = repo.Get(ctx, "doc_001")
	assert.NoError(t, err, "metadata stays readable")

	_, err = repo.ReadContent(ctx, "doc_001")
	assert.ErrorIs(t, err, core.ErrUnavailable)
	assert.False(t, errors.Is(err, core.ErrNotFound))
}

func TestRepository_RejectsEscapingFilename(t *testing.T) {
	dir := t.TempDir()
	index := `{"doc_001": {"title": "sneaky", "filename": "../../etc/passwd"}}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultIndexFile), []byte(index), 0644))

	repo := newTestRepo(t, dir)
	_, err := repo.ReadContent(context.Background(), "doc_001")
	assert.ErrorIs(t, err, core.ErrUnavailable)
}

func TestRepository_OrphanCleanupOnPersistFailure(t *testing.T) {
	if runtime.GOOS == "windows" || os.Getuid() == 0 {
		t.Skip("directory permissions are not enforced")
	}

	ctx := context.Background()
	dir := t.TempDir()
	repo := NewRepository(Config{
		Path:       dir,
		ContentDir: "bodies",
		Logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	require.NoError(t, repo.Initialize(ctx))

	// The store root becomes read-only; the content directory stays writable.
	require.NoError(t, os.Chmod(dir, 0555))
	t.Cleanup(func() { _ = os.Chmod(dir, 0755) })

	_, err := repo.Add(ctx, core.NewDocument{Content: "never indexed"})
	require.ErrorIs(t, err, core.ErrUnavailable)

	_, statErr := os.Stat(filepath.Join(dir, "bodies", "doc_001.txt"))
	assert.True(t, os.IsNotExist(statErr), "orphan content must be removed")

	docs, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, docs, "in-memory entry must be rolled back")
}

func TestRepository_ConcurrentAdds(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	repo := newTestRepo(t, dir)

	const n = 20
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := repo.Add(ctx, core.NewDocument{Content: "parallel"}); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Errorf("concurrent add failed: %v", err)
	}

	reopened := newTestRepo(t, dir)
	docs, err := reopened.List(ctx)
	require.NoError(t, err)
	require.Len(t, docs, n)

	seen := make(map[string]bool)
	for _, d := range docs {
		assert.False(t, seen[d.ID], "duplicate id %s", d.ID)
		seen[d.ID] = true
	}
}

func TestRepository_State(t *testing.T) {
	repo := newTestRepo(t, t.TempDir())
	_, err := repo.Add(context.Background(), core.NewDocument{Content: "x"})
	require.NoError(t, err)

	state, ok := repo.State().(RepositoryState)
	require.True(t, ok)
	assert.Equal(t, 1, state.Documents)
	assert.Equal(t, DefaultIndexFile, state.IndexFile)
	assert.False(t, state.WatcherActive)
	assert.Equal(t, "repository", repo.ComponentType())
}
