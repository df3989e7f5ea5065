package sqlite

import (
	"context"
	"database/sql"
	"testing"
)

// Tests share one goose configuration, so none of them run in parallel.

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := NewDB(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// testVec returns an embedding with a single hot component, giving
// deterministic nearest-neighbor ordering.
func testVec(hot int) []float32 {
	v := make([]float32, 768)
	v[hot] = 1
	return v
}

func intPtr(n int) *int { return &n }

func TestNewDB_MigratesSchema(t *testing.T) {
	db := newTestDB(t)

	tables := []string{"courses", "lessons", "chunks", "chunks_vec", "course_titles_vec", "sessions", "session_turns"}
	for _, table := range tables {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		if err != nil {
			t.Errorf("table %s missing after migration: %v", table, err)
		}
	}
}
