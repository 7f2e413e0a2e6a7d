package analysis

import (
	"regexp"
	"strings"
	"unicode"
)

var sentenceBreak = regexp.MustCompile(`[.!?]+`)

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsNumber(r) || r == '_'
}

// wordRuns returns the maximal runs of letters, digits and underscores.
func wordRuns(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool { return !isWordRune(r) })
}

// keywordTokens lowercases text and keeps the word runs made only of ASCII
// letters with at least three characters. A run such as "café" is dropped
// as a whole rather than yielding "caf".
func keywordTokens(text string) []string {
	runs := wordRuns(strings.ToLower(text))
	tokens := runs[:0]
	for _, run := range runs {
		if len(run) >= 3 && isASCIIWord(run) {
			tokens = append(tokens, run)
		}
	}
	return tokens
}

func isASCIIWord(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < 'a' || c > 'z') && (c < 'A' || c > 'Z') {
			return false
		}
	}
	return true
}

// sentences splits on runs of sentence terminators and drops blank pieces.
func sentences(text string) []string {
	var out []string
	for _, part := range sentenceBreak.Split(text, -1) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// paragraphs splits on blank lines and drops blank pieces.
func paragraphs(text string) []string {
	var out []string
	for _, part := range strings.Split(text, "\n\n") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// syllables approximates the syllable count of a word as its vowel count,
// never less than one.
func syllables(word string) int {
	n := 0
	for _, r := range strings.ToLower(word) {
		switch r {
		case 'a', 'e', 'i', 'o', 'u':
			n++
		}
	}
	if n == 0 {
		return 1
	}
	return n
}
