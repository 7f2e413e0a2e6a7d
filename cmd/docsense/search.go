package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search documents by content or metadata",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		svc, closeFn := mustService()
		defer closeFn()

		results, err := svc.SearchDocuments(cmd.Context(), strings.Join(args, " "))
		if err != nil {
			fatal("Error searching documents", err)
		}

		if jsonOutput {
			printJSON(results)
			return
		}

		if len(results) == 0 {
			dimColor.Println("no matches")
			return
		}
		for _, r := range results {
			fmt.Printf("%6.2f  %s  %s ", r.RelevanceScore, idColor.Sprint(r.DocumentID), r.Title)
			dimColor.Printf("(%s, %s)\n", r.Author, r.Category)
		}
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
}
