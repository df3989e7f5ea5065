package ingest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/admiralicic/starting-ragchatbot-codebase/internal/core"
	"github.com/admiralicic/starting-ragchatbot-codebase/pkg/log"
	"github.com/admiralicic/starting-ragchatbot-codebase/pkg/retry"
)

// CatalogWriter is the course metadata surface ingestion consumes.
type CatalogWriter interface {
	AddCourse(ctx context.Context, course core.Course, titleVec []float32) error
	Titles(ctx context.Context) ([]string, error)
	DeleteAll(ctx context.Context) error
}

// ContentWriter is the chunk store surface ingestion consumes.
type ContentWriter interface {
	AddChunks(ctx context.Context, chunks []core.Chunk, vectors [][]float32) error
	DeleteAll(ctx context.Context) error
}

// Ingestor turns course documents into catalog entries and embedded chunks.
// Embedding calls go through a retrier; the local embedding service tends to
// drop the first requests while the model loads.
type Ingestor struct {
	embedder core.Embedder
	catalog  CatalogWriter
	content  ContentWriter
	retrier  *retry.Retrier
	cfg      ChunkerConfig
}

func NewIngestor(embedder core.Embedder, catalog CatalogWriter, content ContentWriter, cfg ChunkerConfig) *Ingestor {
	return NewIngestorWithRetry(embedder, catalog, content, cfg, nil)
}

func NewIngestorWithRetry(embedder core.Embedder, catalog CatalogWriter, content ContentWriter, cfg ChunkerConfig, retryCfg *retry.Config) *Ingestor {
	if retryCfg == nil {
		retryCfg = retry.NewDefaultConfig()
	}
	return &Ingestor{
		embedder: embedder,
		catalog:  catalog,
		content:  content,
		retrier:  retry.NewRetrier(retryCfg),
		cfg:      cfg,
	}
}

// AddCourseFolder indexes every course document in dir, skipping courses
// whose title is already in the catalog. With clear set, the whole index is
// wiped first. Returns the number of courses and chunks added; a document
// that fails to index is logged and skipped, never fatal.
func (ing *Ingestor) AddCourseFolder(ctx context.Context, dir string, clear bool) (int, int, error) {
	logger := log.FromCtx(ctx)

	if clear {
		if err := ing.content.DeleteAll(ctx); err != nil {
			return 0, 0, fmt.Errorf("clear content: %w", err)
		}
		if err := ing.catalog.DeleteAll(ctx); err != nil {
			return 0, 0, fmt.Errorf("clear catalog: %w", err)
		}
		logger.Info().Msg("cleared existing index")
	}

	existing, err := ing.catalog.Titles(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("list indexed courses: %w", err)
	}
	known := make(map[string]bool, len(existing))
	for _, title := range existing {
		known[title] = true
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, 0, fmt.Errorf("read docs directory: %w", err)
	}

	var courses, chunks int
	for _, entry := range entries {
		if entry.IsDir() || !isCourseDocument(entry.Name()) {
			continue
		}

		added, n, err := ing.addFile(ctx, filepath.Join(dir, entry.Name()), known)
		if err != nil {
			logger.Error().Err(err).Str("file", entry.Name()).Msg("skipping document")
			continue
		}
		if added {
			courses++
			chunks += n
		}
	}

	return courses, chunks, nil
}

// AddCourseFile indexes a single document. Returns false when the course was
// already indexed.
func (ing *Ingestor) AddCourseFile(ctx context.Context, path string) (bool, int, error) {
	existing, err := ing.catalog.Titles(ctx)
	if err != nil {
		return false, 0, fmt.Errorf("list indexed courses: %w", err)
	}
	known := make(map[string]bool, len(existing))
	for _, title := range existing {
		known[title] = true
	}
	return ing.addFile(ctx, path, known)
}

func (ing *Ingestor) addFile(ctx context.Context, path string, known map[string]bool) (bool, int, error) {
	logger := log.FromCtx(ctx)

	data, err := os.ReadFile(path)
	if err != nil {
		return false, 0, fmt.Errorf("read document: %w", err)
	}

	text, err := Normalize(path, data)
	if err != nil {
		return false, 0, fmt.Errorf("normalize document: %w", err)
	}

	course, sections := ParseCourse(path, text)
	if known[course.Title] {
		logger.Debug().Str("course", course.Title).Msg("course already indexed")
		return false, 0, nil
	}

	chunks := buildChunks(course.Title, sections, ing.cfg)

	titleVec, err := ing.embedText(ctx, course.Title)
	if err != nil {
		return false, 0, fmt.Errorf("embed course title: %w", err)
	}

	var vectors [][]float32
	if len(chunks) > 0 {
		texts := make([]string, len(chunks))
		for i, chunk := range chunks {
			texts[i] = chunk.Content
		}
		if err := ing.retrier.Do(ctx, func(ctx context.Context) error {
			var err error
			vectors, err = ing.embedder.EmbedBatch(ctx, texts)
			return err
		}); err != nil {
			return false, 0, fmt.Errorf("embed chunks: %w", err)
		}
	}

	if err := ing.catalog.AddCourse(ctx, course, titleVec); err != nil {
		return false, 0, fmt.Errorf("store course: %w", err)
	}
	if len(chunks) > 0 {
		if err := ing.content.AddChunks(ctx, chunks, vectors); err != nil {
			return false, 0, fmt.Errorf("store chunks: %w", err)
		}
	}

	known[course.Title] = true
	logger.Info().
		Str("course", course.Title).
		Int("lessons", len(course.Lessons)).
		Int("chunks", len(chunks)).
		Msg("indexed course")

	return true, len(chunks), nil
}

func (ing *Ingestor) embedText(ctx context.Context, text string) ([]float32, error) {
	var vec []float32
	err := ing.retrier.Do(ctx, func(ctx context.Context) error {
		var err error
		vec, err = ing.embedder.Embed(ctx, text)
		return err
	})
	return vec, err
}

// buildChunks flattens sections into indexable chunks. The first chunk of
// every lesson carries a "Lesson <n> content: " prefix so its vector keeps
// lesson context that later chunks inherit through overlap.
func buildChunks(courseTitle string, sections []DocumentSection, cfg ChunkerConfig) []core.Chunk {
	var chunks []core.Chunk
	index := 0

	for _, section := range sections {
		for j, piece := range ChunkText(section.Content, cfg) {
			content := piece.Text
			if j == 0 && section.Lesson != nil {
				content = fmt.Sprintf("Lesson %d content: %s", *section.Lesson, content)
			}
			chunks = append(chunks, core.Chunk{
				Content:     content,
				CourseTitle: courseTitle,
				Lesson:      section.Lesson,
				Index:       index,
			})
			index++
		}
	}

	return chunks
}

func isCourseDocument(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".txt", ".md", ".markdown", ".html", ".htm":
		return true
	}
	return false
}
