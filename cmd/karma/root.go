package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/ramblinglizard/KarmaScanner/internal/config"
	"github.com/ramblinglizard/KarmaScanner/pkg/log"
)

var (
	debug bool
)

var rootCmd = &cobra.Command{
	Use:   "karma",
	Short: "KarmaScanner is an AI analyzer for Reddit user history",
	Long: `KarmaScanner downloads a Reddit user's posts and comments and answers
free-form questions about them with Google Gemini. Large histories are
analyzed in chunks and synthesized into a single answer.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Global flags available to all subcommands
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", config.IsDebug(), "enable debug logging")
}

func setupLogger(ctx context.Context) (context.Context, func()) {
	isDebug := debug || config.IsDebug()
	return log.NewContextWithLogger(ctx, isDebug)
}
