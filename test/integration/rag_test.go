//go:build integration

package integration

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/admiralicic/starting-ragchatbot-codebase/internal/providers/anthropic"
	"github.com/admiralicic/starting-ragchatbot-codebase/internal/providers/ollama"
	"github.com/admiralicic/starting-ragchatbot-codebase/internal/service/ingest"
	"github.com/admiralicic/starting-ragchatbot-codebase/internal/service/orchestrator"
	"github.com/admiralicic/starting-ragchatbot-codebase/internal/service/rag"
	"github.com/admiralicic/starting-ragchatbot-codebase/internal/service/search"
	"github.com/admiralicic/starting-ragchatbot-codebase/internal/service/tools"
	"github.com/admiralicic/starting-ragchatbot-codebase/internal/storage/sqlite"
	"github.com/admiralicic/starting-ragchatbot-codebase/pkg/retry"
	"github.com/admiralicic/starting-ragchatbot-codebase/test"
)

const courseDoc = `Course Title: Integration Course
Course Link: https://example.com/course
Course Instructor: Ada

Lesson 0: Introduction
Lesson Link: https://example.com/lesson0
This course explains how vector search works end to end, from chunking
course scripts to ranking results by embedding distance.
`

// TestAssistantPipeline runs the whole stack against a live Ollama instance:
// ingestion, vector search, tool dispatch and the conversation loop. Only
// the generative backend is stubbed.
func TestAssistantPipeline(t *testing.T) {
	ctx := context.Background()

	baseURL := test.OllamaURL(t)
	embedder := ollama.NewEmbedder(baseURL, test.EmbeddingModel())

	probe, err := embedder.Embed(ctx, "dimension probe")
	if err != nil {
		t.Fatalf("probe embedding failed: %v", err)
	}
	if len(probe) != 768 {
		t.Skipf("embedding model yields %d dimensions, schema expects 768", len(probe))
	}

	db, err := sqlite.NewDB(ctx, ":memory:")
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	defer db.Close()

	catalog := sqlite.NewCatalogRepo(db)
	content := sqlite.NewContentRepo(db)
	sessions := sqlite.NewSessionRepo(db, 2)

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "course1.txt"), []byte(courseDoc), 0644); err != nil {
		t.Fatal(err)
	}

	ingestor := ingest.NewIngestorWithRetry(embedder, catalog, content,
		ingest.ChunkerConfig{MaxTokens: 100, OverlapTokens: 10},
		&retry.Config{MaxRetries: 1})
	courses, chunks, err := ingestor.AddCourseFolder(ctx, dir, false)
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}
	if courses != 1 || chunks == 0 {
		t.Fatalf("ingested %d courses / %d chunks", courses, chunks)
	}

	// One search round, then a final answer
	var calls int
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		if calls == 1 {
			fmt.Fprint(w, `{"id":"msg_1","stop_reason":"tool_use","content":[{"type":"tool_use","id":"toolu_1","name":"search_course_content","input":{"query":"vector search"}}]}`)
			return
		}
		fmt.Fprint(w, `{"id":"msg_2","stop_reason":"end_turn","content":[{"type":"text","text":"Vector search is covered in lesson 0."}]}`)
	}))
	defer backend.Close()

	index := search.NewIndex(embedder, catalog, content, 5)
	registry := tools.NewRegistry()
	if err := registry.Register(tools.NewSearchTool(index)); err != nil {
		t.Fatal(err)
	}
	if err := registry.Register(tools.NewOutlineTool(index)); err != nil {
		t.Fatal(err)
	}

	client := anthropic.NewClient(backend.URL, "test-key", "claude-sonnet-4-20250514", 800)
	svc := rag.NewService(orchestrator.New(client, registry, 2), sessions, index)

	sessionID, err := svc.CreateSession(ctx)
	if err != nil {
		t.Fatalf("create session: %v", err)
	}

	answer, sources, err := svc.Answer(ctx, "How does vector search work?", sessionID)
	if err != nil {
		t.Fatalf("answer: %v", err)
	}

	if answer != "Vector search is covered in lesson 0." {
		t.Errorf("answer = %q", answer)
	}
	if calls != 2 {
		t.Errorf("backend saw %d calls, want 2", calls)
	}
	if len(sources) == 0 {
		t.Fatal("no sources for a searched answer")
	}
	if sources[0].Course != "Integration Course" {
		t.Errorf("source course = %q", sources[0].Course)
	}

	stats, err := svc.Analytics(ctx)
	if err != nil {
		t.Fatalf("analytics: %v", err)
	}
	if stats.TotalCourses != 1 {
		t.Errorf("total courses = %d, want 1", stats.TotalCourses)
	}
}
