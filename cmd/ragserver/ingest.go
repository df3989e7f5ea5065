package main

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/admiralicic/starting-ragchatbot-codebase/internal/config"
	"github.com/admiralicic/starting-ragchatbot-codebase/internal/storage/sqlite"
	"github.com/admiralicic/starting-ragchatbot-codebase/pkg/log"
)

var (
	ingestDir   string
	ingestClear bool
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Index course documents",
	Long:  `Parses course scripts from a folder, chunks and embeds them, and writes the result to the database.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		// logger setup
		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		logger := log.FromCtx(ctx)

		if err := initEnv(ctx); err != nil {
			return err
		}
		cfg := config.NewAppConfig(ctx)

		dir := ingestDir
		if dir == "" {
			dir = cfg.DocsDir
		}

		db, err := sqlite.NewDB(ctx, cfg.DatabasePath)
		if err != nil {
			return fmt.Errorf("failed to initialize storage: %w", err)
		}
		defer db.Close()

		courses, chunks, err := newIngestor(cfg, db).AddCourseFolder(ctx, dir, ingestClear)
		if err != nil {
			return err
		}

		logger.Info().Int("courses", courses).Int("chunks", chunks).Msg("ingestion complete")
		return nil
	},
}

func init() {
	ingestCmd.Flags().StringVar(&ingestDir, "dir", "", "course documents folder (defaults to DOCS_DIR)")
	ingestCmd.Flags().BoolVar(&ingestClear, "clear", false, "drop the existing index before loading")
	rootCmd.AddCommand(ingestCmd)
}
