package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/admiralicic/starting-ragchatbot-codebase/internal/config"
	"github.com/admiralicic/starting-ragchatbot-codebase/internal/storage/sqlite"
	"github.com/admiralicic/starting-ragchatbot-codebase/internal/transport/cli"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat with the course assistant from the terminal",
	Long:  `Starts an interactive prompt against the local index, no HTTP server involved.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		// logger setup
		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		if err := initEnv(ctx); err != nil {
			return err
		}
		cfg := config.NewAppConfig(ctx)

		db, err := sqlite.NewDB(ctx, cfg.DatabasePath)
		if err != nil {
			return fmt.Errorf("failed to initialize storage: %w", err)
		}
		defer db.Close()

		assistant, err := newAssistant(cfg, db)
		if err != nil {
			return fmt.Errorf("failed to initialize assistant: %w", err)
		}

		chat, err := cli.NewReadLine(assistant, cfg)
		if err != nil {
			return fmt.Errorf("failed to start chat: %w", err)
		}
		defer chat.Shutdown(ctx)

		if err := chat.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
}
