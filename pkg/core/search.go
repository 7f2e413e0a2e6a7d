package core

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/aretw0/docsense/pkg/analysis"
)

// Search weights.
const (
	TitleWeight      = 3.0
	AuthorWeight     = 2.0
	CategoryWeight   = 2.0
	ContentWeight    = 1.0
	OccurrenceWeight = 0.1
)

// SearchResult is a scored match.
type SearchResult struct {
	DocumentID     string  `json:"document_id"`
	RelevanceScore float64 `json:"relevance_score"`
	Title          string  `json:"title"`
	Author         string  `json:"author"`
	Category       string  `json:"category"`
}

// SearchDocuments scans every document and scores case-insensitive
// substring matches of query. Results are ordered by descending score;
// equal scores keep store order. A document whose content cannot be read
// is still scored on its metadata.
func (s *Service) SearchDocuments(ctx context.Context, query string) ([]SearchResult, error) {
	s.track("search_documents")
	if query == "" {
		return nil, fmt.Errorf("%w: query is required", ErrInvalidInput)
	}

	docs, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(query)
	results := make([]SearchResult, 0)
	for _, doc := range docs {
		score := scoreMetadata(q, doc.Metadata)

		content, err := s.repo.ReadContent(ctx, doc.ID)
		if err != nil {
			s.logger.Debug("skipping content match", "document_id", doc.ID, "error", err)
		} else {
			score = scoreContent(q, strings.ToLower(content), score)
		}

		if score > 0 {
			results = append(results, SearchResult{
				DocumentID:     doc.ID,
				RelevanceScore: analysis.Round(score, 2),
				Title:          doc.Title,
				Author:         doc.Author,
				Category:       doc.Category,
			})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].RelevanceScore > results[j].RelevanceScore
	})
	return results, nil
}

func scoreMetadata(q string, m Metadata) float64 {
	var score float64
	if strings.Contains(strings.ToLower(m.Title), q) {
		score += TitleWeight
	}
	if strings.Contains(strings.ToLower(m.Author), q) {
		score += AuthorWeight
	}
	if strings.Contains(strings.ToLower(m.Category), q) {
		score += CategoryWeight
	}
	return score
}

// scoreContent adds the content contribution to score: one point for a
// match plus a tenth per non-overlapping occurrence.
func scoreContent(q, content string, score float64) float64 {
	if !strings.Contains(content, q) {
		return score
	}
	score += ContentWeight
	score += float64(strings.Count(content, q)) * OccurrenceWeight
	return score
}
