package search

import (
	"context"
	"fmt"

	"github.com/admiralicic/starting-ragchatbot-codebase/internal/core"
)

// Catalog is the course metadata surface the index consumes.
type Catalog interface {
	NearestTitle(ctx context.Context, vec []float32) (string, bool, error)
	Count(ctx context.Context) (int, error)
	Titles(ctx context.Context) ([]string, error)
	CourseLink(ctx context.Context, title string) (string, error)
	LessonLink(ctx context.Context, courseTitle string, lesson int) (string, error)
	Outline(ctx context.Context, title string) (*core.Course, error)
}

// Content is the chunk store surface the index consumes.
type Content interface {
	Search(ctx context.Context, vec []float32, limit int, courseTitle string, lesson *int) ([]core.SearchHit, error)
}

// Index answers semantic queries over ingested course material. Course names
// are fuzzy: they resolve to the nearest catalog title by embedding distance,
// so partial or misspelled names still land on a course.
type Index struct {
	embedder   core.Embedder
	catalog    Catalog
	content    Content
	maxResults int
}

func NewIndex(embedder core.Embedder, catalog Catalog, content Content, maxResults int) *Index {
	return &Index{
		embedder:   embedder,
		catalog:    catalog,
		content:    content,
		maxResults: maxResults,
	}
}

// Search embeds the query and ranks the nearest content chunks, optionally
// scoped to a course and lesson. An unresolvable course name comes back in
// SearchResult.Err; the error return is reserved for infrastructure
// failures.
func (i *Index) Search(ctx context.Context, query, courseName string, lesson *int) (core.SearchResult, error) {
	var courseTitle string
	if courseName != "" {
		title, ok, err := i.resolveCourse(ctx, courseName)
		if err != nil {
			return core.SearchResult{}, err
		}
		if !ok {
			return core.SearchResult{Err: fmt.Sprintf("No course found matching '%s'", courseName)}, nil
		}
		courseTitle = title
	}

	vec, err := i.embedder.Embed(ctx, query)
	if err != nil {
		return core.SearchResult{}, fmt.Errorf("embed query: %w", err)
	}

	hits, err := i.content.Search(ctx, vec, i.maxResults, courseTitle, lesson)
	if err != nil {
		return core.SearchResult{}, fmt.Errorf("content search: %w", err)
	}
	return core.SearchResult{Hits: hits}, nil
}

// Outline resolves a course name and loads its lesson list. Returns nil when
// no course matches.
func (i *Index) Outline(ctx context.Context, courseName string) (*core.Course, error) {
	title, ok, err := i.resolveCourse(ctx, courseName)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return i.catalog.Outline(ctx, title)
}

// LessonLink returns "" when the lesson has no recorded link.
func (i *Index) LessonLink(ctx context.Context, courseTitle string, lesson int) (string, error) {
	return i.catalog.LessonLink(ctx, courseTitle, lesson)
}

// CourseLink returns "" when the course has no recorded link.
func (i *Index) CourseLink(ctx context.Context, courseTitle string) (string, error) {
	return i.catalog.CourseLink(ctx, courseTitle)
}

func (i *Index) CourseCount(ctx context.Context) (int, error) {
	return i.catalog.Count(ctx)
}

func (i *Index) CourseTitles(ctx context.Context) ([]string, error) {
	return i.catalog.Titles(ctx)
}

func (i *Index) resolveCourse(ctx context.Context, name string) (string, bool, error) {
	vec, err := i.embedder.Embed(ctx, name)
	if err != nil {
		return "", false, fmt.Errorf("embed course name: %w", err)
	}
	title, ok, err := i.catalog.NearestTitle(ctx, vec)
	if err != nil {
		return "", false, fmt.Errorf("resolve course name: %w", err)
	}
	return title, ok, nil
}
