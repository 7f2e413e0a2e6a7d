package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/aretw0/docsense"
	"github.com/aretw0/docsense/internal/config"
	"github.com/aretw0/docsense/internal/platform"
	"github.com/aretw0/docsense/pkg/analysis"
	"github.com/aretw0/docsense/pkg/core"
)

var (
	labelColor = color.New(color.FgCyan)
	idColor    = color.New(color.FgGreen)
	dimColor   = color.New(color.FgHiBlack)
	errColor   = color.New(color.FgRed)
)

// openService builds the service described by the loaded config. The
// returned func releases the store.
func openService() (*docsense.Service, func(), error) {
	opts := []docsense.Option{
		docsense.WithAdapter(cfg.Store.Adapter),
		docsense.WithLogger(slog.Default()),
	}

	if cfg.Analysis.Model == config.ModelLexicon {
		model, err := loadLexicon(cfg.Analysis.Lexicon)
		if err != nil {
			return nil, nil, err
		}
		opts = append(opts, docsense.WithSentimentModel(model))
	}

	svc, err := docsense.New(cfg.Store.Path, opts...)
	if err != nil {
		return nil, nil, err
	}

	closeFn := func() {
		if err := platform.Close(svc.Repository()); err != nil {
			slog.Warn("failed to close store", "error", err)
		}
	}
	return svc, closeFn, nil
}

// mustService is openService for commands that cannot continue without it.
func mustService() (*docsense.Service, func()) {
	svc, closeFn, err := openService()
	if err != nil {
		fatal("Error initializing docsense", err)
	}
	return svc, closeFn
}

// startWatch follows external store changes when the config asks for it.
func startWatch(ctx context.Context, svc *docsense.Service) {
	if !cfg.Store.Watch {
		return
	}
	started, err := platform.StartWatch(ctx, svc.Repository())
	if err != nil {
		fatal("Error starting store watcher", err)
	}
	if started {
		slog.Info("watching store for external changes", "path", cfg.Store.Path)
	}
}

// textInput joins args, or reads stdin when there are none or the only
// argument is "-".
func textInput(args []string) (string, error) {
	if len(args) == 0 || (len(args) == 1 && args[0] == "-") {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}
	return strings.Join(args, " "), nil
}

func printJSON(v any) {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(v); err != nil {
		fatal("Error encoding JSON", err)
	}
}

// loadLexicon parses the lexicon file at path, or returns the embedded
// lexicon when path is empty.
func loadLexicon(path string) (analysis.SentimentModel, error) {
	if path == "" {
		return analysis.EmbeddedLexicon(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read lexicon: %w", err)
	}
	model, err := analysis.ParseLexicon(data)
	if err != nil {
		return nil, fmt.Errorf("invalid lexicon %s: %w", path, err)
	}
	return model, nil
}

func printSentiment(s analysis.Sentiment) {
	c := color.New(color.FgYellow)
	switch s.Sentiment {
	case analysis.Positive:
		c = color.New(color.FgGreen)
	case analysis.Negative:
		c = color.New(color.FgRed)
	}
	fmt.Printf("%s %s ", labelColor.Sprint("sentiment:"), c.Sprint(s.Sentiment))
	dimColor.Printf("(polarity %.3f, subjectivity %.3f)\n", s.Polarity, s.Subjectivity)
}

func printKeywords(kws []analysis.Keyword) {
	if len(kws) == 0 {
		dimColor.Println("no keywords")
		return
	}
	for _, kw := range kws {
		fmt.Printf("%4d  %s\n", kw.Frequency, kw.Keyword)
	}
}

func printDocument(d core.Document) {
	fmt.Printf("%s  %s ", idColor.Sprint(d.ID), d.Title)
	dimColor.Printf("(%s, %s, %d words)\n", d.Author, d.Category, d.WordCount)
}
