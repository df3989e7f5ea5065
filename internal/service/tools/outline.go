package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/admiralicic/starting-ragchatbot-codebase/internal/core"
)

const outlineSchema = `
{
  "type": "object",
  "properties": {
    "course_name": { "type": "string", "description": "Course title (partial matches work, e.g. 'MCP', 'Introduction')" }
  },
  "required": ["course_name"]
}
`

// OutlineProvider is the slice of the search index the outline tool consumes.
type OutlineProvider interface {
	Outline(ctx context.Context, courseName string) (*core.Course, error)
}

// OutlineTool returns a course's structure: title, link, instructor and the
// full lesson list.
type OutlineTool struct {
	index OutlineProvider
}

func NewOutlineTool(index OutlineProvider) *OutlineTool {
	return &OutlineTool{index: index}
}

func (t *OutlineTool) Schema() core.ToolSchema {
	return core.ToolSchema{
		Name:        "get_course_outline",
		Description: "Get the complete outline of a course including title, course link, and all lessons",
		InputSchema: json.RawMessage(outlineSchema),
	}
}

func (t *OutlineTool) Execute(ctx context.Context, args map[string]any) (string, []core.Source, error) {
	courseName, _ := args["course_name"].(string)

	course, err := t.index.Outline(ctx, courseName)
	if err != nil {
		return "", nil, err
	}
	if course == nil {
		return fmt.Sprintf("No course found matching '%s'", courseName), nil, nil
	}

	lines := []string{"Course: " + course.Title}
	if course.Link != "" {
		lines = append(lines, "Course Link: "+course.Link)
	}
	if course.Instructor != "" {
		lines = append(lines, "Instructor: "+course.Instructor)
	}
	if len(course.Lessons) > 0 {
		lines = append(lines, "")
		for _, lesson := range course.Lessons {
			lines = append(lines, fmt.Sprintf("Lesson %d: %s", lesson.Number, lesson.Title))
		}
	}

	source := core.Source{Course: course.Title, Link: course.Link}
	return strings.Join(lines, "\n"), []core.Source{source}, nil
}
