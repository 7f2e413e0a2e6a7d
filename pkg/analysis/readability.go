package analysis

// Reading levels, from easiest to hardest.
const (
	LevelVeryEasy        = "very easy"
	LevelEasy            = "easy"
	LevelFairlyEasy      = "fairly easy"
	LevelStandard        = "standard"
	LevelFairlyDifficult = "fairly difficult"
	LevelDifficult       = "difficult"
	LevelVeryDifficult   = "very difficult"
	LevelUnreadable      = "unreadable"
)

// Readability is the Flesch reading ease of a text.
type Readability struct {
	FleschScore         float64 `json:"flesch_score"`
	ReadingLevel        string  `json:"reading_level"`
	AvgSentenceLength   float64 `json:"avg_sentence_length"`
	AvgSyllablesPerWord float64 `json:"avg_syllables_per_word"`
}

// CalculateReadability computes the Flesch reading ease of text. Text with
// no sentence or no word is reported as unreadable with zero scores.
func CalculateReadability(text string) Readability {
	sentenceCount := len(sentences(text))
	words := wordRuns(text)
	if sentenceCount == 0 || len(words) == 0 {
		return Readability{ReadingLevel: LevelUnreadable}
	}

	total := 0
	for _, w := range words {
		total += syllables(w)
	}

	asl := float64(len(words)) / float64(sentenceCount)
	asw := float64(total) / float64(len(words))
	score := 206.835 - 1.015*asl - 84.6*asw

	return Readability{
		FleschScore:         Round(score, 2),
		ReadingLevel:        ReadingLevel(score),
		AvgSentenceLength:   Round(asl, 2),
		AvgSyllablesPerWord: Round(asw, 2),
	}
}

// ReadingLevel maps a Flesch score to its level label.
func ReadingLevel(score float64) string {
	switch {
	case score >= 90:
		return LevelVeryEasy
	case score >= 80:
		return LevelEasy
	case score >= 70:
		return LevelFairlyEasy
	case score >= 60:
		return LevelStandard
	case score >= 50:
		return LevelFairlyDifficult
	case score >= 30:
		return LevelDifficult
	default:
		return LevelVeryDifficult
	}
}
