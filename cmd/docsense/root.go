package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/docsense/internal/config"
	"github.com/aretw0/docsense/internal/platform"
)

var (
	verbose    bool
	jsonOutput bool
	ephemeral  bool
	configPath string
	storePath  string
	adapter    string

	cfg *config.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "docsense",
	Short: "Analyze documents: sentiment, keywords, readability and statistics",
	Long: `docsense keeps a small collection of text documents and analyzes them.
It serves the analysis tools over MCP (stdio) and HTTP, or runs them
directly from the command line.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path := configPath
		var storeRoot string
		if path == "" {
			if wd, err := os.Getwd(); err == nil {
				if root, err := platform.FindRoot(wd); err == nil {
					path = config.Discover(root)
					if path == "" {
						// Running inside a store directory.
						storeRoot = root
					}
				}
			}
		}

		loaded, err := config.Load(path)
		if err != nil {
			return err
		}
		if storeRoot != "" && loaded.Store.Adapter == platform.AdapterFS {
			loaded.Store.Path = storeRoot
		}
		if storePath != "" {
			loaded.Store.Path = storePath
		}
		if adapter != "" {
			loaded.Store.Adapter = adapter
		}
		if ephemeral {
			loaded.Store.Adapter = platform.AdapterMemory
			loaded.Store.Watch = false
		}
		if err := loaded.Validate(); err != nil {
			return fmt.Errorf("invalid flags: %w", err)
		}
		cfg = loaded

		level, _ := cfg.LogLevel()
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)

		if path != "" {
			slog.Debug("config loaded", "path", path)
		}
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	flags.BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	flags.BoolVar(&ephemeral, "ephemeral", false, "Use an in-memory store that is discarded on exit")
	flags.StringVarP(&configPath, "config", "c", "", "Config file (default: docsense.yaml or docsense.toml in the working directory)")
	flags.StringVarP(&storePath, "store", "s", "", "Store directory, or .db file for the sqlite adapter")
	flags.StringVar(&adapter, "adapter", "", "Storage adapter: fs, memory or sqlite")
}
