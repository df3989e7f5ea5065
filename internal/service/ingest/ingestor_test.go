package ingest

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/admiralicic/starting-ragchatbot-codebase/internal/core"
	"github.com/admiralicic/starting-ragchatbot-codebase/pkg/retry"
)

type fakeEmbedder struct {
	failOn string
}

func (f *fakeEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	if f.failOn != "" && strings.Contains(text, f.failOn) {
		return nil, errors.New("embedding service unavailable")
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
	titles  []string
	courses []core.Course
	cleared bool
}

func (f *fakeCatalog) AddCourse(_ context.Context, course core.Course, _ []float32) error {
	f.courses = append(f.courses, course)
	f.titles = append(f.titles, course.Title)
	return nil
}

func (f *fakeCatalog) Titles(context.Context) ([]string, error) { return f.titles, nil }

func (f *fakeCatalog) DeleteAll(context.Context) error {
	f.cleared = true
	f.titles = nil
	f.courses = nil
	return nil
}

type fakeContent struct {
	chunks  []core.Chunk
	vectors [][]float32
	cleared bool
}

func (f *fakeContent) AddChunks(_ context.Context, chunks []core.Chunk, vectors [][]float32) error {
	f.chunks = append(f.chunks, chunks...)
	f.vectors = append(f.vectors, vectors...)
	return nil
}

func (f *fakeContent) DeleteAll(context.Context) error {
	f.cleared = true
	return nil
}

func fastRetry() *retry.Config {
	return &retry.Config{MaxRetries: 0, BackoffFactor: 1, InitialDelay: 0, MaxDelay: 0}
}

func newTestIngestor(catalog *fakeCatalog, content *fakeContent, embedder *fakeEmbedder) *Ingestor {
	return NewIngestorWithRetry(embedder, catalog, content, ChunkerConfig{MaxTokens: 50, OverlapTokens: 5}, fastRetry())
}

func writeDoc(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestAddCourseFolder_IndexesDocuments(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "python.txt", "Course Title: Python Basics\nCourse Instructor: Ada\n\nLesson 1: Variables\nVariables hold values.\n")
	writeDoc(t, dir, "mcp.txt", "Course Title: MCP Deep Dive\n\nLesson 1: Servers\nServers expose tools.\n")
	writeDoc(t, dir, "notes.json", `{"ignored": true}`)

	catalog := &fakeCatalog{}
	content := &fakeContent{}
	ing := newTestIngestor(catalog, content, &fakeEmbedder{})

	courses, chunks, err := ing.AddCourseFolder(context.Background(), dir, false)
	if err != nil {
		t.Fatalf("AddCourseFolder: %v", err)
	}
	if courses != 2 {
		t.Errorf("courses = %d, want 2", courses)
	}
	if chunks != len(content.chunks) {
		t.Errorf("reported %d chunks, stored %d", chunks, len(content.chunks))
	}
	if len(content.chunks) != len(content.vectors) {
		t.Errorf("chunks/vectors misaligned: %d vs %d", len(content.chunks), len(content.vectors))
	}
	if len(catalog.courses) != 2 {
		t.Fatalf("catalog courses = %+v", catalog.courses)
	}
	// os.ReadDir walks entries in name order, mcp.txt before python.txt.
	if catalog.courses[0].Title != "MCP Deep Dive" || catalog.courses[0].Instructor != "Unknown" {
		t.Errorf("first course = %+v", catalog.courses[0])
	}
	if catalog.courses[1].Title != "Python Basics" || catalog.courses[1].Instructor != "Ada" {
		t.Errorf("second course = %+v", catalog.courses[1])
	}
}

func TestAddCourseFolder_SkipsIndexedCourses(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "python.txt", "Course Title: Python Basics\n\nLesson 1: Variables\nContent.\n")

	catalog := &fakeCatalog{titles: []string{"Python Basics"}}
	content := &fakeContent{}
	ing := newTestIngestor(catalog, content, &fakeEmbedder{})

	courses, chunks, err := ing.AddCourseFolder(context.Background(), dir, false)
	if err != nil {
		t.Fatalf("AddCourseFolder: %v", err)
	}
	if courses != 0 || chunks != 0 {
		t.Errorf("added %d courses %d chunks, want none", courses, chunks)
	}
	if len(content.chunks) != 0 {
		t.Errorf("chunks stored for indexed course: %+v", content.chunks)
	}
}

func TestAddCourseFolder_ClearWipesIndexFirst(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "python.txt", "Course Title: Python Basics\n\nLesson 1: Variables\nContent.\n")

	catalog := &fakeCatalog{titles: []string{"Python Basics"}}
	content := &fakeContent{}
	ing := newTestIngestor(catalog, content, &fakeEmbedder{})

	courses, _, err := ing.AddCourseFolder(context.Background(), dir, true)
	if err != nil {
		t.Fatalf("AddCourseFolder: %v", err)
	}
	if !catalog.cleared || !content.cleared {
		t.Error("clear flag did not wipe the index")
	}
	// The previously indexed title no longer blocks re-ingestion.
	if courses != 1 {
		t.Errorf("courses = %d, want 1 after clear", courses)
	}
}

func TestAddCourseFolder_BrokenDocumentSkipped(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "bad.txt", "Course Title: Broken Course\n\nLesson 1: One\nContent.\n")
	writeDoc(t, dir, "good.txt", "Course Title: Good Course\n\nLesson 1: One\nContent.\n")

	catalog := &fakeCatalog{}
	content := &fakeContent{}
	ing := newTestIngestor(catalog, content, &fakeEmbedder{failOn: "Broken"})

	courses, _, err := ing.AddCourseFolder(context.Background(), dir, false)
	if err != nil {
		t.Fatalf("AddCourseFolder: %v", err)
	}
	if courses != 1 {
		t.Errorf("courses = %d, want 1", courses)
	}
	if len(catalog.courses) != 1 || catalog.courses[0].Title != "Good Course" {
		t.Errorf("catalog = %+v", catalog.courses)
	}
}

func TestAddCourseFile_LessonContextPrefix(t *testing.T) {
	dir := t.TempDir()
	doc := "Course Title: Prefix Course\n\n" +
		"Overview paragraph without a lesson.\n\n" +
		"Lesson 2: Deep Topic\nLesson body sentence.\n"
	writeDoc(t, dir, "prefix.txt", doc)

	catalog := &fakeCatalog{}
	content := &fakeContent{}
	ing := newTestIngestor(catalog, content, &fakeEmbedder{})

	added, n, err := ing.AddCourseFile(context.Background(), filepath.Join(dir, "prefix.txt"))
	if err != nil {
		t.Fatalf("AddCourseFile: %v", err)
	}
	if !added || n != 2 {
		t.Fatalf("added=%v n=%d, want true/2", added, n)
	}

	if content.chunks[0].Lesson != nil {
		t.Errorf("preamble chunk carries lesson %v", *content.chunks[0].Lesson)
	}
	if strings.HasPrefix(content.chunks[0].Content, "Lesson") {
		t.Errorf("preamble chunk gained a lesson prefix: %q", content.chunks[0].Content)
	}

	if content.chunks[1].Lesson == nil || *content.chunks[1].Lesson != 2 {
		t.Fatalf("lesson chunk = %+v", content.chunks[1])
	}
	if !strings.HasPrefix(content.chunks[1].Content, "Lesson 2 content: ") {
		t.Errorf("first lesson chunk missing context prefix: %q", content.chunks[1].Content)
	}

	// Chunk indices are sequential across the whole course.
	for i, chunk := range content.chunks {
		if chunk.Index != i {
			t.Errorf("chunk %d carries index %d", i, chunk.Index)
		}
	}
}

func TestAddCourseFile_AlreadyIndexed(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "python.txt", "Course Title: Python Basics\n\nLesson 1: Variables\nContent.\n")

	catalog := &fakeCatalog{titles: []string{"Python Basics"}}
	ing := newTestIngestor(catalog, &fakeContent{}, &fakeEmbedder{})

	added, n, err := ing.AddCourseFile(context.Background(), filepath.Join(dir, "python.txt"))
	if err != nil {
		t.Fatalf("AddCourseFile: %v", err)
	}
	if added || n != 0 {
		t.Errorf("added=%v n=%d, want false/0", added, n)
	}
}

func TestAddCourseFolder_MissingDirectory(t *testing.T) {
	ing := newTestIngestor(&fakeCatalog{}, &fakeContent{}, &fakeEmbedder{})

	_, _, err := ing.AddCourseFolder(context.Background(), "/nonexistent/docs", false)
	if err == nil {
		t.Fatal("expected error for missing directory")
	}
}
