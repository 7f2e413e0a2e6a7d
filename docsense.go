package docsense

import (
	"log/slog"

	"github.com/aretw0/docsense/internal/platform"
	"github.com/aretw0/docsense/pkg/analysis"
	"github.com/aretw0/docsense/pkg/core"
)

// --- Types ---

// Service is the document analyzer.
type Service = core.Service

// Document is a stored document.
type Document = core.Document

// NewDocument is the input of AddDocument.
type NewDocument = core.NewDocument

// Analysis is the full report of a stored document.
type Analysis = core.Analysis

// --- Configuration ---

// Option defines a functional option for configuring docsense.
type Option = platform.Option

// Storage adapter names.
const (
	AdapterFS     = platform.AdapterFS
	AdapterMemory = platform.AdapterMemory
	AdapterSQLite = platform.AdapterSQLite
)

// WithMustExist requires the store directory to exist already.
func WithMustExist(must bool) Option {
	return platform.WithMustExist(must)
}

// WithLogger sets the logger for the service.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithRepository allows injecting a custom storage adapter.
func WithRepository(repo core.Repository) Option {
	return platform.WithRepository(repo)
}

// WithAdapter selects the storage adapter by name.
func WithAdapter(name string) Option {
	return platform.WithAdapter(name)
}

// WithSentimentModel replaces the embedded sentiment lexicon.
func WithSentimentModel(m analysis.SentimentModel) Option {
	return platform.WithSentimentModel(m)
}

// WithWatcherErrorHandler registers a callback for store watcher failures.
func WithWatcherErrorHandler(fn func(error)) Option {
	return platform.WithWatcherErrorHandler(fn)
}

// --- Factory ---

// New creates a docsense Service over the store at path.
func New(path string, opts ...Option) (*Service, error) {
	return platform.New(path, opts...)
}

// Init initializes a repository explicitly.
func Init(path string, opts ...Option) (core.Repository, error) {
	return platform.Init(path, opts...)
}

// FindStoreRoot looks upwards from startDir for a directory holding a store.
func FindStoreRoot(startDir string) (string, error) {
	return platform.FindRoot(startDir)
}
