package core

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/aretw0/docsense/pkg/analysis"
)

// Service handles the business logic for documents: it composes the
// Repository with the text metrics of package analysis.
type Service struct {
	repo   Repository
	model  analysis.SentimentModel
	logger *slog.Logger

	mu    sync.RWMutex
	calls map[string]int
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithSentimentModel replaces the default VADER sentiment model.
func WithSentimentModel(m analysis.SentimentModel) ServiceOption {
	return func(s *Service) {
		s.model = m
	}
}

// WithServiceLogger sets the logger used by the service.
func WithServiceLogger(l *slog.Logger) ServiceOption {
	return func(s *Service) {
		s.logger = l
	}
}

// NewService creates a new Service.
func NewService(repo Repository, opts ...ServiceOption) *Service {
	s := &Service{
		repo:  repo,
		calls: make(map[string]int),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.model == nil {
		s.model = analysis.DefaultModel()
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// Repository returns the underlying storage adapter.
func (s *Service) Repository() Repository {
	return s.repo
}

// AnalyzeDocument runs every metric over a stored document.
func (s *Service) AnalyzeDocument(ctx context.Context, id string) (Analysis, error) {
	s.track("analyze_document")
	if id == "" {
		return Analysis{}, fmt.Errorf("%w: document_id is required", ErrInvalidInput)
	}

	doc, err := s.repo.Get(ctx, id)
	if err != nil {
		return Analysis{}, err
	}
	content, err := s.repo.ReadContent(ctx, id)
	if err != nil {
		return Analysis{}, err
	}

	s.logger.Debug("analyzing document", "document_id", id, "bytes", len(content))

	return Analysis{
		DocumentID:  id,
		Metadata:    doc.Metadata,
		Sentiment:   analysis.AnalyzeSentiment(s.model, content),
		Keywords:    analysis.ExtractKeywords(content, analysis.DefaultKeywordLimit),
		Readability: analysis.CalculateReadability(content),
		Statistics:  analysis.BasicStats(content),
	}, nil
}

// GetSentiment classifies arbitrary text.
func (s *Service) GetSentiment(ctx context.Context, text string) (analysis.Sentiment, error) {
	s.track("get_sentiment")
	if text == "" {
		return analysis.Sentiment{}, fmt.Errorf("%w: text is required", ErrInvalidInput)
	}
	return analysis.AnalyzeSentiment(s.model, text), nil
}

// ExtractKeywords returns the most frequent keywords of arbitrary text.
func (s *Service) ExtractKeywords(ctx context.Context, text string, limit int, opts ...analysis.KeywordOption) ([]analysis.Keyword, error) {
	s.track("extract_keywords")
	if text == "" {
		return nil, fmt.Errorf("%w: text is required", ErrInvalidInput)
	}
	return analysis.ExtractKeywords(text, limit, opts...), nil
}

// AddDocument stores a new document and returns its identifier.
func (s *Service) AddDocument(ctx context.Context, in NewDocument) (string, error) {
	s.track("add_document")
	if in.Content == "" {
		return "", fmt.Errorf("%w: content is required", ErrInvalidInput)
	}

	doc, err := s.repo.Add(ctx, in)
	if err != nil {
		return "", err
	}
	s.logger.Info("document added", "document_id", doc.ID, "title", doc.Title, "words", doc.WordCount)
	return doc.ID, nil
}

// ListDocuments returns every stored document in creation order.
func (s *Service) ListDocuments(ctx context.Context) ([]Document, error) {
	s.track("list_documents")
	docs, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if docs == nil {
		docs = []Document{}
	}
	return docs, nil
}

func (s *Service) track(op string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls[op]++
}
