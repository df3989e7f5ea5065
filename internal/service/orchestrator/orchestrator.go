package orchestrator

import (
	"context"
	"fmt"

	"github.com/admiralicic/starting-ragchatbot-codebase/internal/core"
	"github.com/admiralicic/starting-ragchatbot-codebase/internal/service/tools"
	"github.com/admiralicic/starting-ragchatbot-codebase/pkg/log"
)

// Orchestrator drives one bounded tool-calling conversation per query: up to
// maxRounds rounds of tool dispatch, then a forced tool-free synthesis call.
// A nil registry degrades to plain single-shot generation.
type Orchestrator struct {
	client       core.ModelClient
	registry     *tools.Registry
	maxRounds    int
	instructions string
}

func New(client core.ModelClient, registry *tools.Registry, maxRounds int) *Orchestrator {
	return &Orchestrator{
		client:       client,
		registry:     registry,
		maxRounds:    maxRounds,
		instructions: systemPrompt,
	}
}

// Run answers one query. Returned sources are the ordered concatenation of
// every tool dispatch in the run; they carry nothing over from earlier runs.
// The backend is called at most maxRounds+1 times.
func (o *Orchestrator) Run(ctx context.Context, query, history string) (string, []core.Source, error) {
	logger := log.FromCtx(ctx)

	system := o.instructions
	if history != "" {
		system += "\n\nPrevious conversation:\n" + history
	}

	messages := []core.Message{core.UserText(query)}

	var schemas []core.ToolSchema
	if o.registry != nil {
		schemas = o.registry.Schemas()
	}

	var sources []core.Source

	for round := 0; round < o.maxRounds; round++ {
		resp, err := o.client.Generate(ctx, core.GenerateRequest{
			System:   system,
			Messages: messages,
			Tools:    schemas,
		})
		if err != nil {
			return "", nil, fmt.Errorf("model call: %w", err)
		}

		if resp.StopReason != core.StopToolUse {
			return resp.Text(), sources, nil
		}
		if o.registry == nil {
			// Tools were requested but nobody can run them; the text the
			// model produced is the best answer available.
			return resp.Text(), sources, nil
		}

		messages, sources = o.executeRound(ctx, resp, messages, sources)
	}

	logger.Debug().Int("rounds", o.maxRounds).Msg("tool round budget spent, forcing final answer")

	// Final call carries no tools at all, so the backend cannot stop on
	// tool_use again.
	resp, err := o.client.Generate(ctx, core.GenerateRequest{
		System:   system,
		Messages: messages,
	})
	if err != nil {
		return "", nil, fmt.Errorf("model call: %w", err)
	}
	return resp.Text(), sources, nil
}

// executeRound appends the assistant's blocks untouched, dispatches each
// tool_use block in emitted order and batches every result into a single
// user message keyed by tool_use id.
func (o *Orchestrator) executeRound(ctx context.Context, resp *core.ModelResponse, messages []core.Message, sources []core.Source) ([]core.Message, []core.Source) {
	logger := log.FromCtx(ctx)

	messages = append(messages, core.Message{Role: core.RoleAssistant, Content: resp.Content})

	var results []core.ContentBlock
	for _, block := range resp.Content {
		if block.Kind != core.BlockToolUse {
			continue
		}

		logger.Info().Str("tool", block.Name).Str("id", block.ID).Msg("executing tool")
		text, toolSources := o.registry.Dispatch(ctx, block.Name, block.Args)
		results = append(results, core.ToolResultBlock(block.ID, text))
		sources = append(sources, toolSources...)
	}

	if len(results) > 0 {
		messages = append(messages, core.Message{Role: core.RoleUser, Content: results})
	}
	return messages, sources
}
