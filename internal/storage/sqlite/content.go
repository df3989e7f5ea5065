package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/admiralicic/starting-ragchatbot-codebase/internal/core"
)

// Metadata value stored for chunks outside any lesson. Lesson filters are
// always >= 0 so this never matches one.
const noLesson = -1

// ContentRepo stores course fragments and their embeddings and serves the
// KNN content search.
type ContentRepo struct {
	db *sql.DB
}

func NewContentRepo(db *sql.DB) *ContentRepo {
	return &ContentRepo{db: db}
}

// AddChunks writes fragments and their vectors in one transaction, pairing
// each vector to its chunk via rowid. len(vectors) must equal len(chunks).
func (r *ContentRepo) AddChunks(ctx context.Context, chunks []core.Chunk, vectors [][]float32) error {
	if len(chunks) != len(vectors) {
		return fmt.Errorf("chunk/vector count mismatch: %d vs %d", len(chunks), len(vectors))
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for i, chunk := range chunks {
		lesson := sql.NullInt64{}
		vecLesson := int64(noLesson)
		if chunk.Lesson != nil {
			lesson = sql.NullInt64{Int64: int64(*chunk.Lesson), Valid: true}
			vecLesson = int64(*chunk.Lesson)
		}

		res, err := tx.ExecContext(ctx,
			`INSERT INTO chunks (course_title, lesson_number, chunk_index, content) VALUES (?, ?, ?, ?)`,
			chunk.CourseTitle, lesson, chunk.Index, chunk.Content,
		)
		if err != nil {
			return fmt.Errorf("insert chunk: %w", err)
		}

		id, err := res.LastInsertId()
		if err != nil {
			return err
		}

		vecBlob, err := serializeVector(vectors[i])
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO chunks_vec (rowid, embedding, course_title, lesson_number) VALUES (?, ?, ?, ?)`,
			id, vecBlob, chunk.CourseTitle, vecLesson,
		)
		if err != nil {
			return fmt.Errorf("insert chunk vector: %w", err)
		}
	}

	return tx.Commit()
}

// Search runs a KNN query over chunk embeddings, optionally constrained to a
// course title and lesson number, ranked by ascending distance.
func (r *ContentRepo) Search(ctx context.Context, vec []float32, limit int, courseTitle string, lesson *int) ([]core.SearchHit, error) {
	vecBlob, err := serializeVector(vec)
	if err != nil {
		return nil, err
	}

	var query strings.Builder
	query.WriteString(`
		SELECT c.content, c.course_title, c.lesson_number, c.chunk_index, v.distance
		FROM chunks_vec v
		JOIN chunks c ON c.id = v.rowid
		WHERE v.embedding MATCH ? AND k = ?`)
	args := []any{vecBlob, limit}

	if courseTitle != "" {
		query.WriteString(` AND v.course_title = ?`)
		args = append(args, courseTitle)
	}
	if lesson != nil {
		query.WriteString(` AND v.lesson_number = ?`)
		args = append(args, *lesson)
	}
	query.WriteString(` ORDER BY v.distance`)

	rows, err := r.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("content search: %w", err)
	}
	defer rows.Close()

	var hits []core.SearchHit
	for rows.Next() {
		var hit core.SearchHit
		var lessonNum sql.NullInt64
		if err := rows.Scan(&hit.Content, &hit.CourseTitle, &lessonNum, &hit.ChunkIndex, &hit.Distance); err != nil {
			return nil, err
		}
		if lessonNum.Valid {
			n := int(lessonNum.Int64)
			hit.Lesson = &n
		}
		hits = append(hits, hit)
	}
	return hits, rows.Err()
}

// DeleteAll wipes fragments and their vectors.
func (r *ContentRepo) DeleteAll(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, stmt := range []string{
		`DELETE FROM chunks_vec`,
		`DELETE FROM chunks`,
	} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("clear content: %w", err)
		}
	}
	return tx.Commit()
}
