package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/docsense"
)

var (
	addTitle    string
	addAuthor   string
	addCategory string
)

var addCmd = &cobra.Command{
	Use:   "add [file|-]",
	Short: "Add a document from a file or stdin",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var content string
		if len(args) == 1 && args[0] != "-" {
			data, err := os.ReadFile(args[0])
			if err != nil {
				fatal("Error reading file", err)
			}
			content = string(data)
		} else {
			text, err := textInput(nil)
			if err != nil {
				fatal("Error reading content", err)
			}
			content = text
		}

		svc, closeFn := mustService()
		defer closeFn()

		id, err := svc.AddDocument(cmd.Context(), docsense.NewDocument{
			Content:  content,
			Title:    addTitle,
			Author:   addAuthor,
			Category: addCategory,
		})
		if err != nil {
			fatal("Error adding document", err)
		}

		if jsonOutput {
			printJSON(map[string]string{
				"document_id": id,
				"message":     "Document added successfully",
			})
			return
		}
		fmt.Printf("Added %s\n", idColor.Sprint(id))
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
	addCmd.Flags().StringVarP(&addTitle, "title", "t", "", "Document title")
	addCmd.Flags().StringVarP(&addAuthor, "author", "a", "", "Document author")
	addCmd.Flags().StringVar(&addCategory, "category", "", "Document category")
}
