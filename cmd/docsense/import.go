package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/aretw0/docsense/pkg/ingest"
)

var (
	importRoot     string
	importAuthor   string
	importCategory string
)

var importCmd = &cobra.Command{
	Use:   "import <pattern>",
	Short: "Import text and Markdown files matching a glob such as \"**/*.md\"",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		svc, closeFn := mustService()
		defer closeFn()

		results, err := ingest.Import(cmd.Context(), svc, importRoot, args[0], ingest.Options{
			Author:   importAuthor,
			Category: importCategory,
			Logger:   slog.Default(),
		})
		if err != nil {
			fatal("Error importing documents", err)
		}

		if jsonOutput {
			printJSON(results)
			return
		}

		failed := 0
		for _, r := range results {
			if r.Error != "" {
				failed++
				fmt.Printf("%s  %s: %s\n", errColor.Sprint("failed"), r.Path, r.Error)
				continue
			}
			fmt.Printf("%s  %s ", idColor.Sprint(r.DocumentID), r.Title)
			dimColor.Printf("(%s)\n", r.Path)
		}
		fmt.Printf("%d imported, %d failed\n", len(results)-failed, failed)
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
	importCmd.Flags().StringVar(&importRoot, "root", ".", "Directory the pattern is matched against")
	importCmd.Flags().StringVarP(&importAuthor, "author", "a", "", "Author recorded on every imported document")
	importCmd.Flags().StringVar(&importCategory, "category", "", "Category for every document (default: parent directory name)")
}
