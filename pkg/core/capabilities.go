package core

import (
	"context"

	"github.com/aretw0/docsense/pkg/analysis"
)

// Analysis is the full report of a stored document.
type Analysis struct {
	DocumentID  string               `json:"document_id"`
	Metadata    Metadata             `json:"metadata"`
	Sentiment   analysis.Sentiment   `json:"sentiment"`
	Keywords    []analysis.Keyword   `json:"keywords"`
	Readability analysis.Readability `json:"readability"`
	Statistics  analysis.Statistics  `json:"statistics"`
}

// Capabilities is the operation set exposed to transports. Every
// transport serializes these calls; none adds behaviour of its own.
type Capabilities interface {
	AnalyzeDocument(ctx context.Context, id string) (Analysis, error)
	GetSentiment(ctx context.Context, text string) (analysis.Sentiment, error)
	ExtractKeywords(ctx context.Context, text string, limit int, opts ...analysis.KeywordOption) ([]analysis.Keyword, error)
	AddDocument(ctx context.Context, in NewDocument) (string, error)
	SearchDocuments(ctx context.Context, query string) ([]SearchResult, error)
	ListDocuments(ctx context.Context) ([]Document, error)
}

var _ Capabilities = (*Service)(nil)
