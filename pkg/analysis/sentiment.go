package analysis

// Sentiment labels.
const (
	Positive = "positive"
	Negative = "negative"
	Neutral  = "neutral"
)

// Sentiment is the classified sentiment of a text.
type Sentiment struct {
	Sentiment    string  `json:"sentiment"`
	Polarity     float64 `json:"polarity"`
	Subjectivity float64 `json:"subjectivity"`
}

// SentimentModel scores a text. Polarity lies in [-1, 1] and subjectivity
// in [0, 1]. Implementations must be deterministic.
type SentimentModel interface {
	Score(text string) (polarity, subjectivity float64)
}

// Classify maps a polarity to its label. The thresholds are strict, so a
// polarity of exactly 0.1 is neutral.
func Classify(polarity float64) string {
	switch {
	case polarity > 0.1:
		return Positive
	case polarity < -0.1:
		return Negative
	default:
		return Neutral
	}
}

// AnalyzeSentiment scores text with model and rounds both scores to three
// decimals. A nil model falls back to DefaultModel.
func AnalyzeSentiment(model SentimentModel, text string) Sentiment {
	if model == nil {
		model = DefaultModel()
	}
	polarity, subjectivity := model.Score(text)
	return Sentiment{
		Sentiment:    Classify(polarity),
		Polarity:     Round(polarity, 3),
		Subjectivity: Round(subjectivity, 3),
	}
}
