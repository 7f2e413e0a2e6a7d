// Package sqlite implements core.Repository on a single SQLite database
// file using the pure Go modernc.org/sqlite driver. Bodies are stored
// inline; identifiers follow the same doc_NNN scheme as the filesystem
// store.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/aretw0/introspection"
	_ "modernc.org/sqlite"

	"github.com/aretw0/docsense/pkg/core"
)

// DefaultFilename is the database file created inside a store directory.
const DefaultFilename = "documents.db"

// Config holds the configuration for the SQLite repository.
type Config struct {
	Path   string // database file; ":memory:" for a private in-memory database
	Logger *slog.Logger
	Now    func() time.Time
}

// Repository implements core.Repository using SQLite.
type Repository struct {
	db     *sql.DB
	path   string
	logger *slog.Logger
	now    func() time.Time

	mu sync.Mutex // serializes Add: the id depends on the row count
}

// NewRepository opens (or creates) the database at config.Path. Call
// Initialize before use and Close when done.
func NewRepository(config Config) (*Repository, error) {
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "store")
	now := config.Now
	if now == nil {
		now = time.Now
	}

	if config.Path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(config.Path), 0755); err != nil {
			return nil, fmt.Errorf("%w: creating database directory: %w", core.ErrUnavailable, err)
		}
	}

	db, err := sql.Open("sqlite", config.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening database: %w", core.ErrUnavailable, err)
	}
	// One connection keeps ":memory:" databases shared and writes ordered.
	db.SetMaxOpenConns(1)

	return &Repository{
		db:     db,
		path:   config.Path,
		logger: logger,
		now:    now,
	}, nil
}

// Initialize enables WAL mode and creates the schema.
func (r *Repository) Initialize(ctx context.Context) error {
	if r.path != ":memory:" {
		if _, err := r.db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
			return fmt.Errorf("%w: enabling WAL mode: %w", core.ErrUnavailable, err)
		}
	}

	schema := `
		CREATE TABLE IF NOT EXISTS documents (
			seq          INTEGER PRIMARY KEY AUTOINCREMENT,
			id           TEXT NOT NULL UNIQUE,
			title        TEXT NOT NULL,
			author       TEXT NOT NULL,
			category     TEXT NOT NULL,
			filename     TEXT NOT NULL,
			created_date TEXT NOT NULL,
			word_count   INTEGER NOT NULL,
			content      TEXT NOT NULL
		);
	`
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("%w: creating schema: %w", core.ErrUnavailable, err)
	}

	r.logger.Info("SQLite store initialized", "path", r.path)
	return nil
}

// Close closes the database.
func (r *Repository) Close() error {
	return r.db.Close()
}

// Add inserts a document in a transaction.
func (r *Repository) Add(ctx context.Context, in core.NewDocument) (core.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return core.Document{}, fmt.Errorf("%w: beginning transaction: %w", core.ErrUnavailable, err)
	}
	defer tx.Rollback()

	var count int
	if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM documents").Scan(&count); err != nil {
		return core.Document{}, fmt.Errorf("%w: counting documents: %w", core.ErrUnavailable, err)
	}

	id := core.NextID(count)
	meta := core.BuildMetadata(id, in, r.now())

	_, err = tx.ExecContext(ctx, `
		INSERT INTO documents (id, title, author, category, filename, created_date, word_count, content)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, id, meta.Title, meta.Author, meta.Category, meta.Filename, meta.CreatedDate, meta.WordCount, in.Content)
	if err != nil {
		return core.Document{}, fmt.Errorf("%w: inserting document %s: %w", core.ErrUnavailable, id, err)
	}

	if err := tx.Commit(); err != nil {
		return core.Document{}, fmt.Errorf("%w: committing document %s: %w", core.ErrUnavailable, id, err)
	}

	r.logger.Debug("document stored", "document_id", id)
	return core.Document{ID: id, Metadata: meta}, nil
}

const selectMetadata = `SELECT id, title, author, category, filename, created_date, word_count FROM documents`

// Get retrieves the metadata of a document.
func (r *Repository) Get(ctx context.Context, id string) (core.Document, error) {
	row := r.db.QueryRowContext(ctx, selectMetadata+" WHERE id = ?", id)
	doc, err := scanDocument(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Document{}, fmt.Errorf("%w: %s", core.ErrNotFound, id)
	}
	if err != nil {
		return core.Document{}, fmt.Errorf("%w: reading document %s: %w", core.ErrUnavailable, id, err)
	}
	return doc, nil
}

// List returns every document in insertion order.
func (r *Repository) List(ctx context.Context) ([]core.Document, error) {
	rows, err := r.db.QueryContext(ctx, selectMetadata+" ORDER BY seq")
	if err != nil {
		return nil, fmt.Errorf("%w: listing documents: %w", core.ErrUnavailable, err)
	}
	defer rows.Close()

	docs := make([]core.Document, 0)
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanning document: %w", core.ErrUnavailable, err)
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating documents: %w", core.ErrUnavailable, err)
	}
	return docs, nil
}

// ReadContent returns the stored body of a document.
func (r *Repository) ReadContent(ctx context.Context, id string) (string, error) {
	var content string
	err := r.db.QueryRowContext(ctx, "SELECT content FROM documents WHERE id = ?", id).Scan(&content)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("%w: %s", core.ErrNotFound, id)
	}
	if err != nil {
		return "", fmt.Errorf("%w: reading content of %s: %w", core.ErrUnavailable, id, err)
	}
	return content, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanDocument(s scanner) (core.Document, error) {
	var d core.Document
	err := s.Scan(&d.ID, &d.Title, &d.Author, &d.Category, &d.Filename, &d.CreatedDate, &d.WordCount)
	return d, err
}

// RepositoryState exposes internal state for observability.
type RepositoryState struct {
	Path      string `json:"path"`
	Documents int    `json:"documents"`
	Error     string `json:"error,omitempty"`
}

// State implements introspection.Introspectable.
func (r *Repository) State() any {
	state := RepositoryState{Path: r.path}
	if err := r.db.QueryRow("SELECT COUNT(*) FROM documents").Scan(&state.Documents); err != nil {
		state.Error = err.Error()
	}
	return state
}

// ComponentType implements introspection.Component.
func (r *Repository) ComponentType() string {
	return "sqlite-repository"
}

var _ core.Repository = (*Repository)(nil)
var _ introspection.Introspectable = (*Repository)(nil)
var _ introspection.Component = (*Repository)(nil)
