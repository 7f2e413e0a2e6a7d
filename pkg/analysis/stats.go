package analysis

import (
	"strings"
	"unicode/utf8"
)

// Statistics are simple counts over a text.
type Statistics struct {
	CharacterCount         int     `json:"character_count"`
	CharacterCountNoSpaces int     `json:"character_count_no_spaces"`
	WordCount              int     `json:"word_count"`
	SentenceCount          int     `json:"sentence_count"`
	ParagraphCount         int     `json:"paragraph_count"`
	AvgWordsPerSentence    float64 `json:"avg_words_per_sentence"`
}

// BasicStats counts characters (as code points), words, sentences and
// paragraphs. Only U+0020 is removed for the no-spaces count; tabs and
// newlines still count.
func BasicStats(text string) Statistics {
	words := len(wordRuns(text))
	sentenceCount := len(sentences(text))

	var avg float64
	if sentenceCount > 0 {
		avg = Round(float64(words)/float64(sentenceCount), 2)
	}

	return Statistics{
		CharacterCount:         utf8.RuneCountInString(text),
		CharacterCountNoSpaces: utf8.RuneCountInString(strings.ReplaceAll(text, " ", "")),
		WordCount:              words,
		SentenceCount:          sentenceCount,
		ParagraphCount:         len(paragraphs(text)),
		AvgWordsPerSentence:    avg,
	}
}
