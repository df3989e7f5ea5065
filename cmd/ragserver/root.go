package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/admiralicic/starting-ragchatbot-codebase/internal/config"
	"github.com/admiralicic/starting-ragchatbot-codebase/pkg/log"
)

var (
	debug bool
)

var rootCmd = &cobra.Command{
	Use:   "ragserver",
	Short: "Course Materials Assistant",
	Long:  `A retrieval-augmented chatbot that answers questions about indexed course materials.`,
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
