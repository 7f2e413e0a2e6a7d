package main

import (
	"github.com/spf13/cobra"
)

var sentimentCmd = &cobra.Command{
	Use:   "sentiment [text...]",
	Short: "Classify the sentiment of text (reads stdin without arguments)",
	Run: func(cmd *cobra.Command, args []string) {
		text, err := textInput(args)
		if err != nil {
			fatal("Error reading text", err)
		}

		svc, closeFn := mustService()
		defer closeFn()

		s, err := svc.GetSentiment(cmd.Context(), text)
		if err != nil {
			fatal("Error analyzing sentiment", err)
		}

		if jsonOutput {
			printJSON(s)
			return
		}
		printSentiment(s)
	},
}

func init() {
	rootCmd.AddCommand(sentimentCmd)
}
