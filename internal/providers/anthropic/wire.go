package anthropic

import (
	"encoding/json"
	"fmt"

	"github.com/admiralicic/starting-ragchatbot-codebase/internal/core"
)

// Wire shapes for the Messages API. Content blocks are a union discriminated
// by Type; Input rides as raw JSON so an empty argument object survives
// omitempty (the API rejects tool_use blocks without an input key).
type wireRequest struct {
	Model       string          `json:"model"`
	MaxTokens   int             `json:"max_tokens"`
	Temperature float64         `json:"temperature"`
	System      string          `json:"system,omitempty"`
	Messages    []wireMessage   `json:"messages"`
	Tools       []wireTool      `json:"tools,omitempty"`
	ToolChoice  *wireToolChoice `json:"tool_choice,omitempty"`
}

type wireMessage struct {
	Role    string      `json:"role"`
	Content []wireBlock `json:"content"`
}

type wireBlock struct {
	Type string `json:"type"`

	// type == "text"
	Text string `json:"text,omitempty"`

	// type == "tool_use"
	ID    string          `json:"id,omitempty"`
	Name  string          `json:"name,omitempty"`
	Input json.RawMessage `json:"input,omitempty"`

	// type == "tool_result"
	ToolUseID string `json:"tool_use_id,omitempty"`
	Content   string `json:"content,omitempty"`
}

type wireTool struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	InputSchema json.RawMessage `json:"input_schema"`
}

type wireToolChoice struct {
	Type string `json:"type"`
}

type wireResponse struct {
	ID         string      `json:"id"`
	StopReason string      `json:"stop_reason"`
	Content    []wireBlock `json:"content"`
}

func toWireMessages(messages []core.Message) ([]wireMessage, error) {
	out := make([]wireMessage, 0, len(messages))
	for _, m := range messages {
		wm := wireMessage{Role: m.Role, Content: make([]wireBlock, 0, len(m.Content))}
		for _, b := range m.Content {
			wb, err := toWireBlock(b)
			if err != nil {
				return nil, err
			}
			wm.Content = append(wm.Content, wb)
		}
		out = append(out, wm)
	}
	return out, nil
}

func toWireBlock(b core.ContentBlock) (wireBlock, error) {
	switch b.Kind {
	case core.BlockText:
		return wireBlock{Type: "text", Text: b.Text}, nil
	case core.BlockToolUse:
		args := b.Args
		if args == nil {
			args = map[string]any{}
		}
		input, err := json.Marshal(args)
		if err != nil {
			return wireBlock{}, fmt.Errorf("marshal tool input: %w", err)
		}
		return wireBlock{Type: "tool_use", ID: b.ID, Name: b.Name, Input: input}, nil
	case core.BlockToolResult:
		return wireBlock{Type: "tool_result", ToolUseID: b.ToolUseID, Content: b.Text}, nil
	default:
		return wireBlock{}, fmt.Errorf("unsupported block kind %q", b.Kind)
	}
}

// fromWireBlock maps a response block to the tagged variant. Unknown block
// types return ok=false and are dropped by the caller.
func fromWireBlock(b wireBlock) (core.ContentBlock, bool) {
	switch b.Type {
	case "text":
		return core.TextBlock(b.Text), true
	case "tool_use":
		var args map[string]any
		if len(b.Input) > 0 {
			if err := json.Unmarshal(b.Input, &args); err != nil {
				args = nil
			}
		}
		return core.ToolUseBlock(b.ID, b.Name, args), true
	default:
		return core.ContentBlock{}, false
	}
}

func toWireTools(tools []core.ToolSchema) []wireTool {
	out := make([]wireTool, 0, len(tools))
	for _, t := range tools {
		out = append(out, wireTool{
			Name:        t.Name,
			Description: t.Description,
			InputSchema: t.InputSchema,
		})
	}
	return out
}
