package analysis

import (
	"sort"

	snowballeng "github.com/kljensen/snowball/english"
)

// DefaultKeywordLimit is the number of keywords returned when a caller
// does not ask for a specific amount.
const DefaultKeywordLimit = 10

// Keyword is a token and how often it occurs.
type Keyword struct {
	Keyword   string `json:"keyword"`
	Frequency int    `json:"frequency"`
}

var stopWords = map[string]struct{}{}

func init() {
	for _, w := range []string{
		"the", "and", "or", "but", "in", "on", "at", "to", "for", "of", "with",
		"by", "from", "up", "about", "into", "through", "during", "before",
		"after", "above", "below", "between", "among", "is", "was", "are",
		"were", "been", "be", "have", "has", "had", "do", "does", "did",
		"will", "would", "could", "should", "may", "might", "must", "can",
		"this", "that", "these", "those", "i", "you", "he", "she", "it",
		"we", "they", "me", "him", "her", "us", "them", "my", "your",
		"his", "its", "our", "their", "a", "an", "as", "if", "each",
		"how", "which", "who", "when", "where", "why", "what",
	} {
		stopWords[w] = struct{}{}
	}
}

// IsStopWord reports whether w is excluded from keyword extraction.
func IsStopWord(w string) bool {
	_, ok := stopWords[w]
	return ok
}

type keywordOptions struct {
	stem bool
}

// KeywordOption configures ExtractKeywords.
type KeywordOption func(*keywordOptions)

// WithStemming reduces tokens to their Snowball English stem after stop
// words are removed, so "running" and "runs" count together as "run".
func WithStemming() KeywordOption {
	return func(o *keywordOptions) {
		o.stem = true
	}
}

// ExtractKeywords returns the limit most frequent non stop-word tokens of
// text. Ties keep the order in which tokens first appear. The result is
// never nil; a limit of zero or less yields an empty slice.
func ExtractKeywords(text string, limit int, opts ...KeywordOption) []Keyword {
	var o keywordOptions
	for _, opt := range opts {
		opt(&o)
	}

	counts := make(map[string]int)
	var order []string
	for _, tok := range keywordTokens(text) {
		if IsStopWord(tok) {
			continue
		}
		if o.stem {
			tok = snowballeng.Stem(tok, false)
		}
		if counts[tok] == 0 {
			order = append(order, tok)
		}
		counts[tok]++
	}

	keywords := make([]Keyword, 0, len(order))
	for _, tok := range order {
		keywords = append(keywords, Keyword{Keyword: tok, Frequency: counts[tok]})
	}
	sort.SliceStable(keywords, func(i, j int) bool {
		return keywords[i].Frequency > keywords[j].Frequency
	})

	if limit <= 0 {
		return []Keyword{}
	}
	if limit < len(keywords) {
		keywords = keywords[:limit]
	}
	return keywords
}
