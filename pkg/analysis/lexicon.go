package analysis

import (
	_ "embed"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed lexicon.yaml
var defaultLexicon []byte

// LexiconEntry is the assessment of a single lexicon word.
type LexiconEntry struct {
	Polarity     float64
	Subjectivity float64
}

type lexiconFile struct {
	Negations    []string             `yaml:"negations"`
	Intensifiers map[string]float64   `yaml:"intensifiers"`
	Words        map[string][]float64 `yaml:"words"`
}

// LexiconModel averages the assessments of the lexicon words found in a
// text. An intensifier scales the next assessed word, a negation flips and
// halves its polarity, and sentence punctuation resets both.
type LexiconModel struct {
	words        map[string]LexiconEntry
	intensifiers map[string]float64
	negations    map[string]bool
}

var (
	embeddedLexicon     *LexiconModel
	embeddedLexiconOnce sync.Once
)

// EmbeddedLexicon returns the model built from the lexicon compiled into
// the binary. Its scores follow the adjective averaging of pattern-style
// analyzers rather than VADER.
func EmbeddedLexicon() *LexiconModel {
	embeddedLexiconOnce.Do(func() {
		m, err := ParseLexicon(defaultLexicon)
		if err != nil {
			panic(fmt.Sprintf("analysis: embedded lexicon is invalid: %v", err))
		}
		embeddedLexicon = m
	})
	return embeddedLexicon
}

// ParseLexicon builds a LexiconModel from YAML with the keys negations,
// intensifiers and words. Each word maps to [polarity, subjectivity].
func ParseLexicon(data []byte) (*LexiconModel, error) {
	var f lexiconFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse lexicon: %w", err)
	}

	m := &LexiconModel{
		words:        make(map[string]LexiconEntry, len(f.Words)),
		intensifiers: make(map[string]float64, len(f.Intensifiers)),
		negations:    make(map[string]bool, len(f.Negations)),
	}
	for word, v := range f.Words {
		if len(v) != 2 {
			return nil, fmt.Errorf("lexicon word %q: want [polarity, subjectivity], got %d values", word, len(v))
		}
		if v[0] < -1 || v[0] > 1 || v[1] < 0 || v[1] > 1 {
			return nil, fmt.Errorf("lexicon word %q: scores out of range", word)
		}
		m.words[strings.ToLower(word)] = LexiconEntry{Polarity: v[0], Subjectivity: v[1]}
	}
	for word, factor := range f.Intensifiers {
		if factor <= 0 {
			return nil, fmt.Errorf("lexicon intensifier %q: factor must be positive", word)
		}
		m.intensifiers[strings.ToLower(word)] = factor
	}
	for _, word := range f.Negations {
		m.negations[strings.ToLower(word)] = true
	}
	return m, nil
}

// Len reports the number of assessed words.
func (m *LexiconModel) Len() int {
	return len(m.words)
}

var lexiconToken = regexp.MustCompile(`[\p{L}']+|[.!?;:,]`)

// Score implements SentimentModel.
func (m *LexiconModel) Score(text string) (float64, float64) {
	var (
		polarity, subjectivity float64
		assessed               int
		factor                 = 1.0
		negated                bool
	)

	for _, tok := range lexiconToken.FindAllString(strings.ToLower(text), -1) {
		if strings.ContainsAny(tok, ".!?;:,") {
			factor, negated = 1.0, false
			continue
		}
		tok = strings.Trim(tok, "'")
		if m.negations[tok] || strings.HasSuffix(tok, "n't") {
			negated = true
			continue
		}
		if f, ok := m.intensifiers[tok]; ok {
			factor *= f
			continue
		}
		entry, ok := m.words[tok]
		if !ok {
			continue
		}

		p := entry.Polarity * factor
		if negated {
			p *= -0.5
		}
		polarity += clamp(p, -1, 1)
		subjectivity += clamp(entry.Subjectivity*factor, 0, 1)
		assessed++
		factor, negated = 1.0, false
	}

	if assessed == 0 {
		return 0, 0
	}
	return polarity / float64(assessed), subjectivity / float64(assessed)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

var _ SentimentModel = (*LexiconModel)(nil)
