package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/admiralicic/starting-ragchatbot-codebase/internal/core"
	"github.com/admiralicic/starting-ragchatbot-codebase/pkg/log"
)

const searchSchema = `
{
  "type": "object",
  "properties": {
    "query": { "type": "string", "description": "What to search for in the course content" },
    "course_name": { "type": "string", "description": "Course title (partial matches work, e.g. 'MCP', 'Introduction')" },
    "lesson_number": { "type": "integer", "description": "Specific lesson number to search within (e.g. 1, 2, 3)" }
  },
  "required": ["query"]
}
`

// ContentSearcher is the slice of the search index the search tool consumes.
type ContentSearcher interface {
	Search(ctx context.Context, query, courseName string, lesson *int) (core.SearchResult, error)
	LessonLink(ctx context.Context, courseTitle string, lesson int) (string, error)
	CourseLink(ctx context.Context, courseTitle string) (string, error)
}

// SearchTool exposes semantic course content search to the model, with fuzzy
// course matching and optional lesson filtering.
type SearchTool struct {
	index ContentSearcher
}

func NewSearchTool(index ContentSearcher) *SearchTool {
	return &SearchTool{index: index}
}

func (t *SearchTool) Schema() core.ToolSchema {
	return core.ToolSchema{
		Name:        "search_course_content",
		Description: "Search course materials with smart course name matching and lesson filtering",
		InputSchema: json.RawMessage(searchSchema),
	}
}

func (t *SearchTool) Execute(ctx context.Context, args map[string]any) (string, []core.Source, error) {
	query, _ := args["query"].(string)
	courseName, _ := args["course_name"].(string)
	var lesson *int
	if n, ok := intArg(args, "lesson_number"); ok {
		lesson = &n
	}

	result, err := t.index.Search(ctx, query, courseName, lesson)
	if err != nil {
		return "", nil, err
	}
	if result.Err != "" {
		return result.Err, nil, nil
	}
	if len(result.Hits) == 0 {
		return emptyMessage(courseName, lesson), nil, nil
	}

	blocks := make([]string, 0, len(result.Hits))
	sources := make([]core.Source, 0, len(result.Hits))
	for _, hit := range result.Hits {
		header := "[" + hit.CourseTitle
		if hit.Lesson != nil {
			header += fmt.Sprintf(" - Lesson %d", *hit.Lesson)
		}
		header += "]"
		blocks = append(blocks, header+"\n"+hit.Content)
		sources = append(sources, core.Source{
			Course: hit.CourseTitle,
			Lesson: hit.Lesson,
			Link:   t.sourceLink(ctx, hit),
		})
	}
	return strings.Join(blocks, "\n\n"), sources, nil
}

// sourceLink looks up the lesson link, falling back to the course link for
// lesson-less fragments. Lookup failures leave the link empty rather than
// failing the search.
func (t *SearchTool) sourceLink(ctx context.Context, hit core.SearchHit) string {
	var (
		link string
		err  error
	)
	if hit.Lesson != nil {
		link, err = t.index.LessonLink(ctx, hit.CourseTitle, *hit.Lesson)
	} else {
		link, err = t.index.CourseLink(ctx, hit.CourseTitle)
	}
	if err != nil {
		log.FromCtx(ctx).Warn().Err(err).Str("course", hit.CourseTitle).Msg("source link lookup failed")
		return ""
	}
	return link
}

func emptyMessage(courseName string, lesson *int) string {
	var filter string
	if courseName != "" {
		filter += fmt.Sprintf(" in course '%s'", courseName)
	}
	if lesson != nil {
		filter += fmt.Sprintf(" in lesson %d", *lesson)
	}
	return "No relevant content found" + filter + "."
}

// intArg reads an integer argument that typically arrives as a JSON float64.
func intArg(args map[string]any, key string) (int, bool) {
	switch n := args[key].(type) {
	case float64:
		return int(n), true
	case int:
		return n, true
	}
	return 0, false
}
