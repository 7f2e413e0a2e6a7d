package main

import (
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aretw0/docsense"
	"github.com/aretw0/docsense/pkg/transport/mcp"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the analysis tools over MCP on stdin/stdout",
	Long: `Serve speaks line-delimited JSON-RPC 2.0 (the Model Context Protocol) on
stdin and stdout. Logs go to stderr.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		svc, closeFn := mustService()
		defer closeFn()
		startWatch(ctx, svc)

		server := mcp.New(mcp.Config{
			API:     svc,
			Version: strings.TrimSpace(docsense.Version),
		})
		if err := server.Serve(ctx, os.Stdin, os.Stdout); err != nil {
			fatal("MCP server failed", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
