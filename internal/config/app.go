package config

import (
	"context"

	"github.com/caarlos0/env/v11"

	"github.com/admiralicic/starting-ragchatbot-codebase/pkg/log"
)

type AppConfig struct {
	// Generative backend
	AnthropicAPIKey  string `env:"ANTHROPIC_API_KEY"`
	AnthropicModel   string `env:"ANTHROPIC_MODEL" envDefault:"claude-sonnet-4-20250514"`
	AnthropicBaseURL string `env:"ANTHROPIC_BASE_URL" envDefault:"https://api.anthropic.com"`
	MaxTokens        int    `env:"MAX_TOKENS" envDefault:"800"`
	MaxToolRounds    int    `env:"MAX_TOOL_ROUNDS" envDefault:"2"`

	// Embeddings
	OllamaBaseURL  string `env:"OLLAMA_BASE_URL" envDefault:"http://localhost:11434"`
	EmbeddingModel string `env:"EMBEDDING_MODEL" envDefault:"nomic-embed-text"`

	// Storage
	DatabasePath string `env:"DATABASE_PATH" envDefault:"./data/courses.db"`

	// Transport
	HTTPAddr string `env:"HTTP_ADDR" envDefault:":8000"`

	// Retrieval
	MaxResults int `env:"MAX_RESULTS" envDefault:"5"`
	MaxHistory int `env:"MAX_HISTORY" envDefault:"2"`

	// Ingestion. DocsDir is scanned on serve startup; empty disables that.
	DocsDir      string `env:"DOCS_DIR" envDefault:"./docs"`
	ChunkSize    int    `env:"CHUNK_SIZE" envDefault:"800"`
	ChunkOverlap int    `env:"CHUNK_OVERLAP" envDefault:"100"`
}

func NewAppConfig(ctx context.Context) *AppConfig {
	c := &AppConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse app config")
	}
	return c
}
