package core

import "context"

// GenerateRequest is one backend call. A nil Tools slice means the tools key
// is absent from the wire request entirely, which is what prevents a further
// tool_use stop condition on the forced final call.
type GenerateRequest struct {
	System   string
	Messages []Message
	Tools    []ToolSchema
}

type ModelClient interface {
	Generate(ctx context.Context, req GenerateRequest) (*ModelResponse, error)
}

type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}
