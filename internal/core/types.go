package core

import "encoding/json"

const (
	AppName    = "ragserver"
	AppVersion = "0.1.0"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Stop conditions reported by the generative backend. StopToolUse is the
// only one the orchestration loop branches on; everything else ends the run.
const (
	StopEndTurn = "end_turn"
	StopToolUse = "tool_use"
)

type BlockKind string

const (
	BlockText       BlockKind = "text"
	BlockToolUse    BlockKind = "tool_use"
	BlockToolResult BlockKind = "tool_result"
)

// ContentBlock is one element of a message body. Exactly one variant is
// populated, selected by Kind; consumers switch on Kind instead of probing
// fields.
type ContentBlock struct {
	Kind BlockKind

	// BlockText and BlockToolResult payload.
	Text string

	// BlockToolUse fields.
	ID   string
	Name string
	Args map[string]any

	// BlockToolResult: identifier of the tool_use block being answered.
	ToolUseID string
}

func TextBlock(text string) ContentBlock {
	return ContentBlock{Kind: BlockText, Text: text}
}

func ToolUseBlock(id, name string, args map[string]any) ContentBlock {
	return ContentBlock{Kind: BlockToolUse, ID: id, Name: name, Args: args}
}

func ToolResultBlock(toolUseID, text string) ContentBlock {
	return ContentBlock{Kind: BlockToolResult, ToolUseID: toolUseID, Text: text}
}

// Message is one transcript entry. Content order is significant and must be
// preserved end to end; the backend rejects reordered tool results.
type Message struct {
	Role    string
	Content []ContentBlock
}

func UserText(text string) Message {
	return Message{Role: RoleUser, Content: []ContentBlock{TextBlock(text)}}
}

// ModelResponse is the backend's reply: a stop condition plus ordered blocks.
type ModelResponse struct {
	StopReason string
	Content    []ContentBlock
}

// Text returns the first text block, or "" when the response carries none.
func (r *ModelResponse) Text() string {
	for _, b := range r.Content {
		if b.Kind == BlockText {
			return b.Text
		}
	}
	return ""
}

// ToolSchema describes one invocable tool to the backend.
type ToolSchema struct {
	Name        string
	Description string
	InputSchema json.RawMessage // JSON Schema
}

// Source is a display-ready provenance record for one retrieved fragment.
// Lesson is nil for course-level content.
type Source struct {
	Course string `json:"course"`
	Lesson *int   `json:"lesson"`
	Link   string `json:"link"`
}

type SearchHit struct {
	Content     string
	CourseTitle string
	Lesson      *int
	ChunkIndex  int
	Distance    float64
}

// SearchResult carries ranked hits or an index-level error string. Err
// supersedes Hits; the two are never both set.
type SearchResult struct {
	Hits []SearchHit
	Err  string
}

type Course struct {
	ID         int64
	Title      string
	Link       string
	Instructor string
	Lessons    []Lesson
}

type Lesson struct {
	Number int
	Title  string
	Link   string
}

// Chunk is one indexable fragment of a course document.
type Chunk struct {
	Content     string
	CourseTitle string
	Lesson      *int
	Index       int
}
