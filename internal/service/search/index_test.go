package search

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/admiralicic/starting-ragchatbot-codebase/internal/core"
)

type fakeEmbedder struct {
	embedFunc func(text string) ([]float32, error)
	calls     []string
}

func (f *fakeEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	f.calls = append(f.calls, text)
	if f.embedFunc != nil {
		return f.embedFunc(text)
	}
	return []float32{1, 0, 0}, nil
}

func (f *fakeEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, 0, len(texts))
	for _, text := range texts {
		vec, err := f.Embed(ctx, text)
		if err != nil {
			return nil, err
		}
		out = append(out, vec)
	}
	return out, nil
}

type fakeCatalog struct {
	nearest   string
	nearestOK bool
	outline   *core.Course
}

func (f *fakeCatalog) NearestTitle(context.Context, []float32) (string, bool, error) {
	return f.nearest, f.nearestOK, nil
}
func (f *fakeCatalog) Count(context.Context) (int, error)        { return 0, nil }
func (f *fakeCatalog) Titles(context.Context) ([]string, error)  { return nil, nil }
func (f *fakeCatalog) CourseLink(context.Context, string) (string, error) {
	return "", nil
}
func (f *fakeCatalog) LessonLink(context.Context, string, int) (string, error) {
	return "", nil
}
func (f *fakeCatalog) Outline(context.Context, string) (*core.Course, error) {
	return f.outline, nil
}

type fakeContent struct {
	hits []core.SearchHit
	err  error

	gotLimit  int
	gotCourse string
	gotLesson *int
	calls     int
}

func (f *fakeContent) Search(_ context.Context, _ []float32, limit int, courseTitle string, lesson *int) ([]core.SearchHit, error) {
	f.calls++
	f.gotLimit = limit
	f.gotCourse = courseTitle
	f.gotLesson = lesson
	return f.hits, f.err
}

func TestIndex_Search_Unfiltered(t *testing.T) {
	content := &fakeContent{hits: []core.SearchHit{{Content: "fragment"}}}
	idx := NewIndex(&fakeEmbedder{}, &fakeCatalog{}, content, 5)

	result, err := idx.Search(context.Background(), "what is mcp", "", nil)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if result.Err != "" {
		t.Errorf("unexpected result error: %q", result.Err)
	}
	if len(result.Hits) != 1 || result.Hits[0].Content != "fragment" {
		t.Errorf("hits = %+v", result.Hits)
	}
	if content.gotLimit != 5 {
		t.Errorf("limit = %d, want 5", content.gotLimit)
	}
	if content.gotCourse != "" || content.gotLesson != nil {
		t.Errorf("unexpected filters: course=%q lesson=%v", content.gotCourse, content.gotLesson)
	}
}

func TestIndex_Search_ResolvesCourseName(t *testing.T) {
	embedder := &fakeEmbedder{}
	catalog := &fakeCatalog{nearest: "MCP Deep Dive", nearestOK: true}
	content := &fakeContent{}
	idx := NewIndex(embedder, catalog, content, 5)

	lesson := 2
	_, err := idx.Search(context.Background(), "what are servers", "mcp", &lesson)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if content.gotCourse != "MCP Deep Dive" {
		t.Errorf("content filter course = %q, want resolved title", content.gotCourse)
	}
	if content.gotLesson == nil || *content.gotLesson != 2 {
		t.Errorf("content filter lesson = %v, want 2", content.gotLesson)
	}
	// Both the course name and the query text get embedded.
	if len(embedder.calls) != 2 || embedder.calls[0] != "mcp" || embedder.calls[1] != "what are servers" {
		t.Errorf("embedder calls = %v", embedder.calls)
	}
}

func TestIndex_Search_UnknownCourse(t *testing.T) {
	content := &fakeContent{}
	idx := NewIndex(&fakeEmbedder{}, &fakeCatalog{nearestOK: false}, content, 5)

	result, err := idx.Search(context.Background(), "anything", "Nonexistent Course", nil)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if result.Err != "No course found matching 'Nonexistent Course'" {
		t.Errorf("result.Err = %q", result.Err)
	}
	if content.calls != 0 {
		t.Error("content search ran despite unresolved course")
	}
}

func TestIndex_Search_EmbedderFailure(t *testing.T) {
	embedder := &fakeEmbedder{embedFunc: func(string) ([]float32, error) {
		return nil, errors.New("connection refused")
	}}
	idx := NewIndex(embedder, &fakeCatalog{}, &fakeContent{}, 5)

	_, err := idx.Search(context.Background(), "query", "", nil)
	if err == nil {
		t.Fatal("expected error from failing embedder")
	}
	if !strings.Contains(err.Error(), "connection refused") {
		t.Errorf("error lost cause: %v", err)
	}
}

func TestIndex_Search_ContentFailure(t *testing.T) {
	content := &fakeContent{err: errors.New("database locked")}
	idx := NewIndex(&fakeEmbedder{}, &fakeCatalog{}, content, 5)

	_, err := idx.Search(context.Background(), "query", "", nil)
	if err == nil {
		t.Fatal("expected error from failing content store")
	}
}

func TestIndex_Outline(t *testing.T) {
	course := &core.Course{Title: "MCP Deep Dive", Lessons: []core.Lesson{{Number: 1, Title: "Servers"}}}
	catalog := &fakeCatalog{nearest: "MCP Deep Dive", nearestOK: true, outline: course}
	idx := NewIndex(&fakeEmbedder{}, catalog, &fakeContent{}, 5)

	got, err := idx.Outline(context.Background(), "mcp")
	if err != nil {
		t.Fatalf("Outline: %v", err)
	}
	if got == nil || got.Title != "MCP Deep Dive" {
		t.Errorf("Outline = %+v", got)
	}
}

func TestIndex_Outline_UnknownCourse(t *testing.T) {
	idx := NewIndex(&fakeEmbedder{}, &fakeCatalog{}, &fakeContent{}, 5)

	got, err := idx.Outline(context.Background(), "nothing")
	if err != nil {
		t.Fatalf("Outline: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil outline, got %+v", got)
	}
}
