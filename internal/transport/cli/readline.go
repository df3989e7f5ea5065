package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"

	"github.com/admiralicic/starting-ragchatbot-codebase/internal/config"
	"github.com/admiralicic/starting-ragchatbot-codebase/internal/core"
	"github.com/admiralicic/starting-ragchatbot-codebase/pkg/log"
)

const defaultSessionID = "cli-local"

// Assistant answers chat queries with provenance.
type Assistant interface {
	Answer(ctx context.Context, query, sessionID string) (string, []core.Source, error)
}

type ReadLine struct {
	cfg       *config.AppConfig
	assistant Assistant
	rl        *readline.Instance
}

func NewReadLine(assistant Assistant, cfg *config.AppConfig) (*ReadLine, error) {
	// Keep the input history next to the database
	dataDir := filepath.Dir(cfg.DatabasePath)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          ">>> ",
		HistoryFile:     filepath.Join(dataDir, "input_history"),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, err
	}

	return &ReadLine{
		cfg:       cfg,
		assistant: assistant,
		rl:        rl,
	}, nil
}

func (r *ReadLine) Start(ctx context.Context) error {
	logger := log.FromCtx(ctx)
	logger.Info().Msg("chat started. Type 'exit' to quit.")

	for {
		// Check context before blocking read
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line, err := r.rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				if len(line) == 0 {
					return nil // Exit on Ctrl+C
				}
				continue
			} else if err == io.EOF {
				return nil
			}
			return err
		}

		line = strings.TrimSpace(line)
		if line == "exit" {
			return nil
		}
		if line == "" {
			continue
		}

		answer, sources, err := r.assistant.Answer(ctx, line, defaultSessionID)
		if err != nil {
			logger.Error().Err(err).Msg("query failed")
			fmt.Fprintf(r.rl.Stdout(), "Error: %v\n", err)
			continue
		}

		fmt.Fprintf(r.rl.Stdout(), "%s\n", answer)
		r.printSources(sources)
	}
}

func (r *ReadLine) printSources(sources []core.Source) {
	if len(sources) == 0 {
		return
	}

	fmt.Fprintf(r.rl.Stdout(), "\nSources:\n")
	for _, src := range sources {
		label := src.Course
		if src.Lesson != nil {
			label = fmt.Sprintf("%s - Lesson %d", src.Course, *src.Lesson)
		}
		if src.Link != "" {
			fmt.Fprintf(r.rl.Stdout(), "  - %s (%s)\n", label, src.Link)
		} else {
			fmt.Fprintf(r.rl.Stdout(), "  - %s\n", label)
		}
	}
}

func (r *ReadLine) Shutdown(ctx context.Context) error {
	if r.rl != nil {
		return r.rl.Close()
	}
	return nil
}
