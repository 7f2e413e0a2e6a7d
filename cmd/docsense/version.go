package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/docsense"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of docsense",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("docsense version %s\n", strings.TrimSpace(docsense.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
