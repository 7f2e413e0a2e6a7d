package main

import (
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aretw0/docsense"
	"github.com/aretw0/docsense/pkg/transport/httpapi"
	"github.com/aretw0/docsense/pkg/transport/mcp"
)

var httpAddr string

var httpCmd = &cobra.Command{
	Use:   "http",
	Short: "Serve the analysis tools over HTTP",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		svc, closeFn := mustService()
		defer closeFn()
		startWatch(ctx, svc)

		handler, err := httpapi.New(httpapi.Config{
			MCP: mcp.New(mcp.Config{
				API:     svc,
				Version: strings.TrimSpace(docsense.Version),
			}),
			State:  svc,
			Logger: slog.Default(),
		})
		if err != nil {
			fatal("Error building HTTP handler", err)
		}

		addr := cfg.HTTP.Addr
		if httpAddr != "" {
			addr = httpAddr
		}
		if err := handler.ListenAndServe(ctx, addr); err != nil {
			fatal("HTTP server failed", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(httpCmd)
	httpCmd.Flags().StringVar(&httpAddr, "addr", "", "Listen address (default from config, localhost:8000)")
}
