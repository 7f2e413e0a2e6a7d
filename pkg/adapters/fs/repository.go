// Package fs implements core.Repository on the local filesystem: a
// documents.json index mapping IDs to metadata, and one text file per
// document body under a content directory.
package fs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/aretw0/docsense/pkg/core"
)

// Default layout of a store directory.
const (
	DefaultIndexFile  = "documents.json"
	DefaultContentDir = "content"
)

// Repository implements core.Repository using the filesystem.
type Repository struct {
	Path   string
	config Config

	mu            sync.RWMutex
	index         *index
	watcherActive bool
	lastReload    *time.Time
}

// Config holds the configuration for the filesystem repository.
type Config struct {
	Path         string
	MustExist    bool
	Logger       *slog.Logger
	IndexFile    string           // e.g. "documents.json"
	ContentDir   string           // relative to Path, e.g. "content"
	ErrorHandler func(error)      // receives watcher failures; logged when nil
	Now          func() time.Time // clock for created_date
}

// NewRepository creates a new filesystem-backed repository.
func NewRepository(config Config) *Repository {
	if config.IndexFile == "" {
		config.IndexFile = DefaultIndexFile
	}
	if config.ContentDir == "" {
		config.ContentDir = DefaultContentDir
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	if config.Now == nil {
		config.Now = time.Now
	}
	return &Repository{
		Path:   config.Path,
		config: config,
		index:  newIndex(),
	}
}

// Initialize creates the store layout and loads the index if one exists.
func (r *Repository) Initialize(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if r.config.MustExist {
		info, err := os.Stat(r.Path)
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: store path does not exist: %s", core.ErrUnavailable, r.Path)
		}
		if err != nil {
			return fmt.Errorf("%w: failed to stat store path: %w", core.ErrUnavailable, err)
		}
		if !info.IsDir() {
			return fmt.Errorf("%w: store path is not a directory: %s", core.ErrUnavailable, r.Path)
		}
	}
	if err := os.MkdirAll(r.contentDir(), 0755); err != nil {
		return fmt.Errorf("%w: failed to create content directory: %w", core.ErrUnavailable, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load()
}

// Reload replaces the in-memory index with the one on disk. The watcher
// calls it when another process rewrites the index.
func (r *Repository) Reload(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.load(); err != nil {
		return err
	}
	now := time.Now()
	r.lastReload = &now
	r.config.Logger.Debug("index reloaded", "path", r.indexPath(), "documents", r.index.Len())
	return nil
}

// load must be called with r.mu held.
func (r *Repository) load() error {
	data, err := os.ReadFile(r.indexPath())
	if errors.Is(err, os.ErrNotExist) {
		r.index = newIndex()
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: failed to read %s: %w", core.ErrUnavailable, r.config.IndexFile, err)
	}

	ix, err := decodeIndex(data)
	if err != nil {
		return fmt.Errorf("%w: failed to parse %s: %w", core.ErrUnavailable, r.config.IndexFile, err)
	}
	r.index = ix
	return nil
}

// persist rewrites the whole index. Must be called with r.mu held.
func (r *Repository) persist() error {
	data, err := r.index.encode()
	if err != nil {
		return fmt.Errorf("%w: failed to encode index: %w", core.ErrUnavailable, err)
	}
	if err := writeFileAtomic(r.indexPath(), data, 0644); err != nil {
		return fmt.Errorf("%w: failed to write %s: %w", core.ErrUnavailable, r.config.IndexFile, err)
	}
	return nil
}

// Add writes the body to content/{id}.txt, records its metadata and
// rewrites the index. If the index cannot be written the body file is
// removed again and the in-memory entry rolled back.
func (r *Repository) Add(ctx context.Context, in core.NewDocument) (core.Document, error) {
	if err := ctx.Err(); err != nil {
		return core.Document{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	id := core.NextID(r.index.Len())
	meta := core.BuildMetadata(id, in, r.config.Now())
	contentPath := filepath.Join(r.contentDir(), meta.Filename)

	_, statErr := os.Stat(contentPath)
	hadContent := statErr == nil

	if err := writeFileAtomic(contentPath, []byte(in.Content), 0644); err != nil {
		return core.Document{}, fmt.Errorf("%w: failed to write content: %w", core.ErrUnavailable, err)
	}

	prev, existed := r.index.put(id, meta)
	if err := r.persist(); err != nil {
		r.index.undo(id, prev, existed)
		if !hadContent {
			if rmErr := os.Remove(contentPath); rmErr != nil {
				r.config.Logger.Warn("failed to remove orphan content", "path", contentPath, "error", rmErr)
			}
		}
		return core.Document{}, err
	}

	r.config.Logger.Debug("document stored", "document_id", id, "path", contentPath)
	return core.Document{ID: id, Metadata: meta}, nil
}

// Get retrieves the metadata of a document.
func (r *Repository) Get(ctx context.Context, id string) (core.Document, error) {
	if err := ctx.Err(); err != nil {
		return core.Document{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	meta, ok := r.index.get(id)
	if !ok {
		return core.Document{}, fmt.Errorf("%w: %s", core.ErrNotFound, id)
	}
	return core.Document{ID: id, Metadata: meta}, nil
}

// List returns every document in index order.
func (r *Repository) List(ctx context.Context) ([]core.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.index.documents(), nil
}

// ReadContent returns the body referenced by the document's filename.
// A missing body file is only detected here.
func (r *Repository) ReadContent(ctx context.Context, id string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	r.mu.RLock()
	meta, ok := r.index.get(id)
	r.mu.RUnlock()
	if !ok {
		return "", fmt.Errorf("%w: %s", core.ErrNotFound, id)
	}

	if !filepath.IsLocal(meta.Filename) {
		return "", fmt.Errorf("%w: document %s references a path outside the store: %q", core.ErrUnavailable, id, meta.Filename)
	}

	data, err := os.ReadFile(filepath.Join(r.contentDir(), meta.Filename))
	if err != nil {
		return "", fmt.Errorf("%w: failed to read content of %s: %w", core.ErrUnavailable, id, err)
	}
	return string(data), nil
}

func (r *Repository) indexPath() string {
	return filepath.Join(r.Path, r.config.IndexFile)
}

func (r *Repository) contentDir() string {
	return filepath.Join(r.Path, r.config.ContentDir)
}

var _ core.Repository = (*Repository)(nil)
