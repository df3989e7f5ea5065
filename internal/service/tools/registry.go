package tools

import (
	"context"
	"errors"
	"fmt"

	"github.com/admiralicic/starting-ragchatbot-codebase/internal/core"
	"github.com/admiralicic/starting-ragchatbot-codebase/pkg/log"
)

// ErrToolRegistered reports a duplicate tool name.
var ErrToolRegistered = errors.New("tool already registered")

// Tool is a capability the model can invoke by name with JSON arguments.
// Execute returns the text handed back to the model plus any provenance
// sources the call produced.
type Tool interface {
	Schema() core.ToolSchema
	Execute(ctx context.Context, args map[string]any) (string, []core.Source, error)
}

// Registry resolves tool calls by name. It holds no per-call state, so one
// registry serves concurrent conversations.
type Registry struct {
	tools map[string]Tool
	order []string
}

func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]Tool)}
}

func (r *Registry) Register(tool Tool) error {
	name := tool.Schema().Name
	if _, exists := r.tools[name]; exists {
		return fmt.Errorf("%w: %s", ErrToolRegistered, name)
	}
	r.tools[name] = tool
	r.order = append(r.order, name)
	return nil
}

// Schemas returns tool schemas in registration order.
func (r *Registry) Schemas() []core.ToolSchema {
	schemas := make([]core.ToolSchema, 0, len(r.order))
	for _, name := range r.order {
		schemas = append(schemas, r.tools[name].Schema())
	}
	return schemas
}

// Dispatch runs the named tool. Failures never escape as errors: the model
// sees them as result text and decides how to continue.
func (r *Registry) Dispatch(ctx context.Context, name string, args map[string]any) (string, []core.Source) {
	tool, ok := r.tools[name]
	if !ok {
		return fmt.Sprintf("Tool '%s' not found", name), nil
	}

	text, sources, err := tool.Execute(ctx, args)
	if err != nil {
		log.FromCtx(ctx).Error().Err(err).Str("tool", name).Msg("tool execution failed")
		return fmt.Sprintf("Error executing tool: %v", err), nil
	}
	return text, sources
}
