package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <document_id>",
	Short: "Run the full analysis of a stored document",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		svc, closeFn := mustService()
		defer closeFn()

		a, err := svc.AnalyzeDocument(cmd.Context(), args[0])
		if err != nil {
			fatal("Error analyzing document", err)
		}

		if jsonOutput {
			printJSON(a)
			return
		}

		fmt.Printf("%s  %s\n", idColor.Sprint(a.DocumentID), a.Metadata.Title)
		dimColor.Printf("by %s in %s, created %s\n\n", a.Metadata.Author, a.Metadata.Category, a.Metadata.CreatedDate)

		printSentiment(a.Sentiment)

		r := a.Readability
		fmt.Printf("%s %.2f (%s) ", labelColor.Sprint("readability:"), r.FleschScore, r.ReadingLevel)
		dimColor.Printf("%.2f words/sentence, %.2f syllables/word\n", r.AvgSentenceLength, r.AvgSyllablesPerWord)

		s := a.Statistics
		fmt.Printf("%s %d words, %d sentences, %d paragraphs, %d characters\n",
			labelColor.Sprint("statistics:"), s.WordCount, s.SentenceCount, s.ParagraphCount, s.CharacterCount)

		fmt.Println(labelColor.Sprint("keywords:"))
		printKeywords(a.Keywords)
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}
