package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	verbose     bool
	sourcesPath string
)

var rootCmd = &cobra.Command{
	Use:          "cardgen",
	Short:        "Render printable card images",
	Long:         `Render printable card images from card data, keyword tables and sprites.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output")
	rootCmd.PersistentFlags().StringVarP(&sourcesPath, "sources", "s", "sources", "Card data and keyword directory")
}
