package main

import (
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all documents in the store",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		svc, closeFn := mustService()
		defer closeFn()

		docs, err := svc.ListDocuments(cmd.Context())
		if err != nil {
			fatal("Error listing documents", err)
		}

		if jsonOutput {
			printJSON(docs)
			return
		}
		for _, d := range docs {
			printDocument(d)
		}
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
