package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/admiralicic/starting-ragchatbot-codebase/internal/core"
)

// CatalogRepo stores course metadata plus a title embedding per course used
// for fuzzy course-name resolution.
type CatalogRepo struct {
	db *sql.DB
}

func NewCatalogRepo(db *sql.DB) *CatalogRepo {
	return &CatalogRepo{db: db}
}

// AddCourse inserts the course, its lessons and its title vector in one
// transaction. The title vector lands in course_titles_vec under the course
// rowid.
func (r *CatalogRepo) AddCourse(ctx context.Context, course core.Course, titleVec []float32) error {
	vecBlob, err := serializeVector(titleVec)
	if err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO courses (title, link, instructor) VALUES (?, ?, ?)`,
		course.Title, course.Link, course.Instructor,
	)
	if err != nil {
		return fmt.Errorf("insert course: %w", err)
	}

	courseID, err := res.LastInsertId()
	if err != nil {
		return err
	}

	for _, lesson := range course.Lessons {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO lessons (course_id, number, title, link) VALUES (?, ?, ?, ?)`,
			courseID, lesson.Number, lesson.Title, lesson.Link,
		)
		if err != nil {
			return fmt.Errorf("insert lesson %d: %w", lesson.Number, err)
		}
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO course_titles_vec (rowid, embedding) VALUES (?, ?)`,
		courseID, vecBlob,
	)
	if err != nil {
		return fmt.Errorf("insert title vector: %w", err)
	}

	return tx.Commit()
}

// NearestTitle returns the catalog title closest to the given embedding.
// ok is false when the catalog is empty.
func (r *CatalogRepo) NearestTitle(ctx context.Context, vec []float32) (string, bool, error) {
	vecBlob, err := serializeVector(vec)
	if err != nil {
		return "", false, err
	}

	query := `
		SELECT c.title
		FROM course_titles_vec v
		JOIN courses c ON c.id = v.rowid
		WHERE v.embedding MATCH ? AND k = 1
		ORDER BY v.distance
	`
	var title string
	err = r.db.QueryRowContext(ctx, query, vecBlob).Scan(&title)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("title search: %w", err)
	}
	return title, true, nil
}

func (r *CatalogRepo) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM courses`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count courses: %w", err)
	}
	return count, nil
}

func (r *CatalogRepo) Titles(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT title FROM courses ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query titles: %w", err)
	}
	defer rows.Close()

	var titles []string
	for rows.Next() {
		var title string
		if err := rows.Scan(&title); err != nil {
			return nil, err
		}
		titles = append(titles, title)
	}
	return titles, rows.Err()
}

// CourseLink returns "" without error when the course or its link is absent.
func (r *CatalogRepo) CourseLink(ctx context.Context, title string) (string, error) {
	var link string
	err := r.db.QueryRowContext(ctx, `SELECT link FROM courses WHERE title = ?`, title).Scan(&link)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("query course link: %w", err)
	}
	return link, nil
}

// LessonLink returns "" without error when the lesson or its link is absent.
func (r *CatalogRepo) LessonLink(ctx context.Context, courseTitle string, lesson int) (string, error) {
	query := `
		SELECT l.link
		FROM lessons l
		JOIN courses c ON c.id = l.course_id
		WHERE c.title = ? AND l.number = ?
	`
	var link string
	err := r.db.QueryRowContext(ctx, query, courseTitle, lesson).Scan(&link)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("query lesson link: %w", err)
	}
	return link, nil
}

// Outline loads a course with its lessons in lesson order. Returns nil when
// the title is not in the catalog.
func (r *CatalogRepo) Outline(ctx context.Context, title string) (*core.Course, error) {
	course := &core.Course{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, title, link, instructor FROM courses WHERE title = ?`, title,
	).Scan(&course.ID, &course.Title, &course.Link, &course.Instructor)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query course: %w", err)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT number, title, link FROM lessons WHERE course_id = ? ORDER BY number`, course.ID)
	if err != nil {
		return nil, fmt.Errorf("query lessons: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var lesson core.Lesson
		if err := rows.Scan(&lesson.Number, &lesson.Title, &lesson.Link); err != nil {
			return nil, err
		}
		course.Lessons = append(course.Lessons, lesson)
	}
	return course, rows.Err()
}

// DeleteAll wipes the catalog including title vectors.
func (r *CatalogRepo) DeleteAll(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, stmt := range []string{
		`DELETE FROM course_titles_vec`,
		`DELETE FROM lessons`,
		`DELETE FROM courses`,
	} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("clear catalog: %w", err)
		}
	}
	return tx.Commit()
}
