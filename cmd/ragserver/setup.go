package main

import (
	"context"
	"database/sql"
	"os"

	"github.com/joho/godotenv"

	"github.com/admiralicic/starting-ragchatbot-codebase/internal/config"
	"github.com/admiralicic/starting-ragchatbot-codebase/internal/providers/anthropic"
	"github.com/admiralicic/starting-ragchatbot-codebase/internal/providers/ollama"
	"github.com/admiralicic/starting-ragchatbot-codebase/internal/service/ingest"
	"github.com/admiralicic/starting-ragchatbot-codebase/internal/service/orchestrator"
	"github.com/admiralicic/starting-ragchatbot-codebase/internal/service/rag"
	"github.com/admiralicic/starting-ragchatbot-codebase/internal/service/search"
	"github.com/admiralicic/starting-ragchatbot-codebase/internal/service/tools"
	"github.com/admiralicic/starting-ragchatbot-codebase/internal/storage/sqlite"
	httpapi "github.com/admiralicic/starting-ragchatbot-codebase/internal/transport/http"
	"github.com/admiralicic/starting-ragchatbot-codebase/pkg/log"
	"github.com/admiralicic/starting-ragchatbot-codebase/pkg/srv"
)

func NewServices(ctx context.Context) []srv.Service {
	logger := log.FromCtx(ctx)
	services := make([]srv.Service, 0)

	// init env
	if err := initEnv(ctx); err != nil {
		logger.Fatal().Err(err).Msg("failed to init env")
	}

	// 1. Configuration
	appCfg := config.NewAppConfig(ctx)

	// 2. Storage
	db, err := sqlite.NewDB(ctx, appCfg.DatabasePath)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize storage")
	}
	services = append(services, srv.NewCleanup(db.Close))

	// 3. Assistant (retrieval, tools, orchestration, sessions)
	assistant, err := newAssistant(appCfg, db)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize assistant")
	}

	// 4. Index course documents found on disk before serving traffic
	loadStartupDocuments(ctx, appCfg, db)

	// 5. Transport
	services = append(services, httpapi.NewServer(ctx, appCfg.HTTPAddr, assistant, debug))

	return services
}

// newAssistant wires retrieval and orchestration into the query surface the
// transports consume.
func newAssistant(cfg *config.AppConfig, db *sql.DB) (*rag.Service, error) {
	catalog := sqlite.NewCatalogRepo(db)
	content := sqlite.NewContentRepo(db)
	sessions := sqlite.NewSessionRepo(db, cfg.MaxHistory)

	embedder := ollama.NewEmbedder(cfg.OllamaBaseURL, cfg.EmbeddingModel)
	index := search.NewIndex(embedder, catalog, content, cfg.MaxResults)

	registry := tools.NewRegistry()
	if err := registry.Register(tools.NewSearchTool(index)); err != nil {
		return nil, err
	}
	if err := registry.Register(tools.NewOutlineTool(index)); err != nil {
		return nil, err
	}

	client := anthropic.NewClient(cfg.AnthropicBaseURL, cfg.AnthropicAPIKey, cfg.AnthropicModel, cfg.MaxTokens)
	orch := orchestrator.New(client, registry, cfg.MaxToolRounds)

	return rag.NewService(orch, sessions, index), nil
}

func newIngestor(cfg *config.AppConfig, db *sql.DB) *ingest.Ingestor {
	embedder := ollama.NewEmbedder(cfg.OllamaBaseURL, cfg.EmbeddingModel)
	chunkCfg := ingest.ChunkerConfig{
		MaxTokens:     cfg.ChunkSize,
		OverlapTokens: cfg.ChunkOverlap,
	}
	return ingest.NewIngestor(embedder, sqlite.NewCatalogRepo(db), sqlite.NewContentRepo(db), chunkCfg)
}

// loadStartupDocuments mirrors the ingest command on serve startup. A
// missing docs folder is not an error; a broken one must not keep the API
// from coming up.
func loadStartupDocuments(ctx context.Context, cfg *config.AppConfig, db *sql.DB) {
	logger := log.FromCtx(ctx)

	if cfg.DocsDir == "" {
		return
	}
	if _, err := os.Stat(cfg.DocsDir); os.IsNotExist(err) {
		logger.Info().Str("dir", cfg.DocsDir).Msg("docs folder not found, skipping startup indexing")
		return
	}

	courses, chunks, err := newIngestor(cfg, db).AddCourseFolder(ctx, cfg.DocsDir, false)
	if err != nil {
		logger.Error().Err(err).Msg("startup indexing failed")
		return
	}
	logger.Info().Int("courses", courses).Int("chunks", chunks).Msg("startup indexing complete")
}

func initEnv(ctx context.Context) error {
	logger := log.FromCtx(ctx)

	if _, err := os.Stat(".env"); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if err := godotenv.Load(); err != nil {
		logger.Warn().Err(err).Msg("failed to load .env file")
		return err
	}

	logger.Debug().Msg("loaded .env file")
	return nil
}
