// Package ingest imports files from disk as documents. Markdown files are
// flattened to plain text; other files are stored verbatim.
package ingest

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/aretw0/docsense/pkg/core"
)

// Adder stores a document. *core.Service satisfies it.
type Adder interface {
	AddDocument(ctx context.Context, in core.NewDocument) (string, error)
}

// Result is the outcome of importing one file.
type Result struct {
	Path       string `json:"path"`
	DocumentID string `json:"document_id,omitempty"`
	Title      string `json:"title,omitempty"`
	Error      string `json:"error,omitempty"`
}

// Options tune how files become documents.
type Options struct {
	// Author is recorded on every imported document.
	Author string
	// Category overrides the category derived from the parent directory.
	Category string
	Logger   *slog.Logger
}

// Match returns the files under root matching a doublestar pattern such
// as "**/*.md", as slash separated paths relative to root, in lexical
// order.
func Match(root, pattern string) ([]string, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("%w: bad pattern %q", core.ErrInvalidInput, pattern)
	}
	fsys := os.DirFS(root)
	matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("failed to match %q: %w", pattern, err)
	}
	sort.Strings(matches)
	return matches, nil
}

// Load reads one file and turns it into a document. The title comes from
// the first Markdown heading, falling back to the file name; the category
// is the name of the parent directory, when there is one.
func Load(fsys fs.FS, name string) (core.NewDocument, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return core.NewDocument{}, fmt.Errorf("failed to read %s: %w", name, err)
	}

	doc := core.NewDocument{Content: string(data)}
	switch strings.ToLower(path.Ext(name)) {
	case ".md", ".markdown":
		doc.Title, doc.Content = MarkdownToText(data)
	}
	if doc.Title == "" {
		doc.Title = strings.TrimSuffix(path.Base(name), path.Ext(name))
	}
	if dir := path.Dir(name); dir != "." {
		doc.Category = path.Base(dir)
	}
	return doc, nil
}

// Import adds every file under root matching pattern. A file that fails
// is reported in its Result and does not stop the others.
func Import(ctx context.Context, api Adder, root, pattern string, opts Options) ([]Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	matches, err := Match(root, pattern)
	if err != nil {
		return nil, err
	}

	fsys := os.DirFS(root)
	results := make([]Result, 0, len(matches))
	for _, name := range matches {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		res := Result{Path: filepath.Join(root, filepath.FromSlash(name))}
		doc, err := Load(fsys, name)
		if err == nil {
			if opts.Author != "" {
				doc.Author = opts.Author
			}
			if opts.Category != "" {
				doc.Category = opts.Category
			}
			res.Title = doc.Title
			res.DocumentID, err = api.AddDocument(ctx, doc)
		}
		if err != nil {
			res.Error = err.Error()
			logger.Warn("import failed", "path", res.Path, "error", err)
		} else {
			logger.Debug("imported", "path", res.Path, "document_id", res.DocumentID)
		}
		results = append(results, res)
	}
	return results, nil
}
