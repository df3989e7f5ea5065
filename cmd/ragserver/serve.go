package main

import (
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/admiralicic/starting-ragchatbot-codebase/pkg/log"
	"github.com/admiralicic/starting-ragchatbot-codebase/pkg/srv"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the chat API server",
	Long:  `Opens the database, indexes any course documents found on disk, and serves the HTTP chat API.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		// logger setup
		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		logger := log.FromCtx(ctx)
		logger.Info().Msg("starting ragserver")

		// Define services using the setup.go logic
		services := NewServices(ctx)

		// Start services
		srv.StartServices(ctx, services)

		// Wait for shutdown signal
		srv.ShutdownServices(ctx, services)
		logger.Info().Msg("ragserver has been shut down gracefully")

		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
