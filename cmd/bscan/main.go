package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/groblegark/beadscan/internal/config"
	"github.com/groblegark/beadscan/internal/model"
	"github.com/groblegark/beadscan/internal/ui"
)

var (
	rootDir    string
	jsonOutput bool
	noColor    bool
	verbose    bool

	cfg    *config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "bscan",
	Short: "Scan bead trackers for readiness, orphans, cycles, and stale claims",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
		slog.SetDefault(logger)

		if noColor || jsonOutput || !ui.ShouldUseColor() {
			ui.ForceNoColor()
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}
		return nil
	},
}

// resolveSources returns the sources to scan: the explicit sources file
// when one exists at the scan root, otherwise git submodule discovery.
func resolveSources() ([]model.Source, error) {
	root, err := filepath.Abs(rootDir)
	if err != nil {
		return nil, fmt.Errorf("resolve root: %w", err)
	}

	sourcesPath := filepath.Join(root, config.SourcesFileName)
	if _, err := os.Stat(sourcesPath); err == nil {
		return config.LoadSourcesFile(sourcesPath)
	}
	return config.DiscoverSources(root, logger)
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&rootDir, "root", "C", ".", "root directory to scan")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(fixCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(readyCmd)
	rootCmd.AddCommand(nextCmd)
	rootCmd.AddCommand(sourcesCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(historyCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
