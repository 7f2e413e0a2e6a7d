package platform

import (
	"log/slog"

	"github.com/aretw0/docsense/pkg/analysis"
	"github.com/aretw0/docsense/pkg/core"
)

// Adapter names accepted by WithAdapter.
const (
	AdapterFS     = "fs"
	AdapterMemory = "memory"
	AdapterSQLite = "sqlite"
)

// options holds the internal configuration for a docsense service.
type options struct {
	repository   core.Repository
	logger       *slog.Logger
	adapter      string
	mustExist    bool
	model        analysis.SentimentModel
	errorHandler func(error)
}

// Option defines a functional option for configuring docsense.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		adapter: AdapterFS,
	}
}

func resolve(opts []Option) *options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	return o
}

// WithMustExist requires the store directory to exist already.
func WithMustExist(must bool) Option {
	return func(o *options) {
		o.mustExist = must
	}
}

// WithLogger sets the logger for the service and its storage adapter.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithRepository allows injecting a custom storage adapter.
// If provided, the adapter named by WithAdapter is ignored.
func WithRepository(repo core.Repository) Option {
	return func(o *options) {
		o.repository = repo
	}
}

// WithAdapter selects the storage adapter by name ("fs", "memory" or
// "sqlite"). Defaults to "fs".
func WithAdapter(name string) Option {
	return func(o *options) {
		o.adapter = name
	}
}

// WithSentimentModel replaces the embedded sentiment lexicon.
func WithSentimentModel(m analysis.SentimentModel) Option {
	return func(o *options) {
		o.model = m
	}
}

// WithWatcherErrorHandler registers a callback for failures of the store
// watcher, which are otherwise only logged.
func WithWatcherErrorHandler(fn func(error)) Option {
	return func(o *options) {
		o.errorHandler = fn
	}
}
