package platform

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/aretw0/docsense/pkg/adapters/fs"
	"github.com/aretw0/docsense/pkg/adapters/memory"
	"github.com/aretw0/docsense/pkg/adapters/sqlite"
	"github.com/aretw0/docsense/pkg/core"
)

// Init builds and initializes the storage adapter.
// The URI is the store directory; the sqlite adapter also accepts a path
// ending in .db.
func Init(uri string, opts ...Option) (core.Repository, error) {
	o := resolve(opts)

	repo := o.repository
	if repo == nil {
		var err error
		repo, err = newAdapter(uri, o)
		if err != nil {
			return nil, err
		}
	}

	if err := repo.Initialize(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to initialize %s store: %w", o.adapter, err)
	}
	return repo, nil
}

func newAdapter(uri string, o *options) (core.Repository, error) {
	switch o.adapter {
	case AdapterFS:
		return fs.NewRepository(fs.Config{
			Path:         uri,
			MustExist:    o.mustExist,
			Logger:       o.logger,
			ErrorHandler: o.errorHandler,
		}), nil
	case AdapterMemory:
		return memory.NewRepository(), nil
	case AdapterSQLite:
		path := uri
		if filepath.Ext(uri) != ".db" {
			path = filepath.Join(uri, sqlite.DefaultFilename)
		}
		return sqlite.NewRepository(sqlite.Config{Path: path, Logger: o.logger})
	default:
		return nil, fmt.Errorf("unknown storage adapter %q", o.adapter)
	}
}

// New creates a Service over a freshly initialized store.
//
//	svc, err := docsense.New("./documents", docsense.WithAdapter("sqlite"))
func New(uri string, opts ...Option) (*core.Service, error) {
	repo, err := Init(uri, opts...)
	if err != nil {
		return nil, err
	}

	o := resolve(opts)
	svcOpts := []core.ServiceOption{core.WithServiceLogger(o.logger)}
	if o.model != nil {
		svcOpts = append(svcOpts, core.WithSentimentModel(o.model))
	}
	return core.NewService(repo, svcOpts...), nil
}

// Watcher is implemented by stores that can follow external changes.
type Watcher interface {
	Watch(ctx context.Context) error
}

// StartWatch starts following external changes when the store supports it.
// It reports whether a watcher was started.
func StartWatch(ctx context.Context, repo core.Repository) (bool, error) {
	w, ok := repo.(Watcher)
	if !ok {
		return false, nil
	}
	if err := w.Watch(ctx); err != nil {
		return false, err
	}
	return true, nil
}

// Closer is implemented by stores holding resources such as a database.
type Closer interface {
	Close() error
}

// Close releases the store's resources, if it holds any.
func Close(repo core.Repository) error {
	if c, ok := repo.(Closer); ok {
		return c.Close()
	}
	return nil
}
