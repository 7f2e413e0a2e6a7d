package analysis

import (
	"sync"

	"github.com/jonreiter/govader"
)

// VaderModel scores text with the VADER rule-based analyzer.
//
// Polarity is the normalized compound score. Subjectivity is the share of
// the text VADER rates as non-neutral, that is positive plus negative
// proportion, so a text with no sentiment-bearing words scores 0.
type VaderModel struct {
	sia *govader.SentimentIntensityAnalyzer
}

// NewVaderModel loads the VADER lexicon.
func NewVaderModel() *VaderModel {
	return &VaderModel{sia: govader.NewSentimentIntensityAnalyzer()}
}

// Score implements SentimentModel.
func (m *VaderModel) Score(text string) (float64, float64) {
	s := m.sia.PolarityScores(text)
	return clamp(s.Compound, -1, 1), clamp(s.Positive+s.Negative, 0, 1)
}

var (
	defaultModel     SentimentModel
	defaultModelOnce sync.Once
)

// DefaultModel returns the shared VADER model.
func DefaultModel() SentimentModel {
	defaultModelOnce.Do(func() {
		defaultModel = NewVaderModel()
	})
	return defaultModel
}
