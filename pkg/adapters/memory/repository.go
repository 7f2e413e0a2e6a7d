// Package memory implements core.Repository without touching the
// filesystem. Documents live for as long as the Repository value.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/aretw0/introspection"

	"github.com/aretw0/docsense/pkg/core"
)

// Repository is an in-memory core.Repository.
type Repository struct {
	mu       sync.RWMutex
	order    []string
	docs     map[string]core.Metadata
	contents map[string]string
	now      func() time.Time
}

// Option configures a Repository.
type Option func(*Repository)

// WithClock sets the clock used for created_date.
func WithClock(now func() time.Time) Option {
	return func(r *Repository) {
		r.now = now
	}
}

// NewRepository creates an empty in-memory repository.
func NewRepository(opts ...Option) *Repository {
	r := &Repository{
		docs:     make(map[string]core.Metadata),
		contents: make(map[string]string),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Initialize implements core.Repository. There is nothing to prepare.
func (r *Repository) Initialize(ctx context.Context) error {
	return ctx.Err()
}

// Add implements core.Repository.
func (r *Repository) Add(ctx context.Context, in core.NewDocument) (core.Document, error) {
	if err := ctx.Err(); err != nil {
		return core.Document{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	id := core.NextID(len(r.docs))
	meta := core.BuildMetadata(id, in, r.now())
	if _, exists := r.docs[id]; !exists {
		r.order = append(r.order, id)
	}
	r.docs[id] = meta
	r.contents[id] = in.Content

	return core.Document{ID: id, Metadata: meta}, nil
}

// Get implements core.Repository.
func (r *Repository) Get(ctx context.Context, id string) (core.Document, error) {
	if err := ctx.Err(); err != nil {
		return core.Document{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	meta, ok := r.docs[id]
	if !ok {
		return core.Document{}, fmt.Errorf("%w: %s", core.ErrNotFound, id)
	}
	return core.Document{ID: id, Metadata: meta}, nil
}

// List implements core.Repository.
func (r *Repository) List(ctx context.Context) ([]core.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	docs := make([]core.Document, 0, len(r.order))
	for _, id := range r.order {
		docs = append(docs, core.Document{ID: id, Metadata: r.docs[id]})
	}
	return docs, nil
}

// ReadContent implements core.Repository.
func (r *Repository) ReadContent(ctx context.Context, id string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, ok := r.docs[id]; !ok {
		return "", fmt.Errorf("%w: %s", core.ErrNotFound, id)
	}
	return r.contents[id], nil
}

// RepositoryState exposes internal state for observability.
type RepositoryState struct {
	Documents int `json:"documents"`
}

// State implements introspection.Introspectable.
func (r *Repository) State() any {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return RepositoryState{Documents: len(r.docs)}
}

// ComponentType implements introspection.Component.
func (r *Repository) ComponentType() string {
	return "memory-repository"
}

var _ core.Repository = (*Repository)(nil)
var _ introspection.Introspectable = (*Repository)(nil)
var _ introspection.Component = (*Repository)(nil)
