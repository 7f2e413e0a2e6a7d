package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/docsense/pkg/analysis"
)

var (
	keywordLimit int
	keywordStem  bool
)

var keywordsCmd = &cobra.Command{
	Use:   "keywords [text...]",
	Short: "Extract the most frequent keywords (reads stdin without arguments)",
	Run: func(cmd *cobra.Command, args []string) {
		text, err := textInput(args)
		if err != nil {
			fatal("Error reading text", err)
		}

		limit := keywordLimit
		if !cmd.Flags().Changed("limit") {
			limit = cfg.Analysis.KeywordLimit
		}
		var opts []analysis.KeywordOption
		if keywordStem {
			opts = append(opts, analysis.WithStemming())
		}

		svc, closeFn := mustService()
		defer closeFn()

		kws, err := svc.ExtractKeywords(cmd.Context(), text, limit, opts...)
		if err != nil {
			fatal("Error extracting keywords", err)
		}

		if jsonOutput {
			printJSON(kws)
			return
		}
		printKeywords(kws)
	},
}

func init() {
	rootCmd.AddCommand(keywordsCmd)
	keywordsCmd.Flags().IntVarP(&keywordLimit, "limit", "n", analysis.DefaultKeywordLimit, "Maximum number of keywords")
	keywordsCmd.Flags().BoolVar(&keywordStem, "stem", false, "Group inflected forms under their English stem")
}
