package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/admiralicic/starting-ragchatbot-codebase/internal/core"
	"github.com/admiralicic/starting-ragchatbot-codebase/pkg/log"
)

// SessionRepo implements core.SessionStore on sqlite. One row per completed
// (user, assistant) pair; maxHistory caps the pairs kept per session, oldest
// evicted first.
type SessionRepo struct {
	db         *sql.DB
	maxHistory int
}

func NewSessionRepo(db *sql.DB, maxHistory int) *SessionRepo {
	return &SessionRepo{db: db, maxHistory: maxHistory}
}

func (r *SessionRepo) Create(ctx context.Context) (string, error) {
	res, err := r.db.ExecContext(ctx, `INSERT INTO sessions DEFAULT VALUES`)
	if err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("session_%d", id), nil
}

func (r *SessionRepo) AppendTurn(ctx context.Context, sessionID, userText, assistantText string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO session_turns (session_id, user_text, assistant_text) VALUES (?, ?, ?)`,
		sessionID, userText, assistantText,
	)
	if err != nil {
		return fmt.Errorf("insert turn: %w", err)
	}

	// FIFO eviction: keep only the newest maxHistory pairs.
	_, err = tx.ExecContext(ctx, `
		DELETE FROM session_turns
		WHERE session_id = ?
		  AND id NOT IN (
			SELECT id FROM session_turns
			WHERE session_id = ?
			ORDER BY id DESC
			LIMIT ?
		  )`,
		sessionID, sessionID, r.maxHistory,
	)
	if err != nil {
		return fmt.Errorf("trim turns: %w", err)
	}

	return tx.Commit()
}

func (r *SessionRepo) RenderContext(ctx context.Context, sessionID string) (string, bool, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT user_text, assistant_text FROM session_turns WHERE session_id = ? ORDER BY id`,
		sessionID,
	)
	if err != nil {
		return "", false, fmt.Errorf("query turns: %w", err)
	}
	defer rows.Close()

	var lines []string
	for rows.Next() {
		var userText, assistantText string
		if err := rows.Scan(&userText, &assistantText); err != nil {
			return "", false, err
		}
		lines = append(lines, "User: "+userText, "Assistant: "+assistantText)
	}
	if err := rows.Err(); err != nil {
		return "", false, err
	}

	if len(lines) == 0 {
		return "", false, nil
	}

	log.FromCtx(ctx).Debug().Str("session", sessionID).Int("pairs", len(lines)/2).Msg("loaded session context")
	return strings.Join(lines, "\n"), true, nil
}

func (r *SessionRepo) Clear(ctx context.Context, sessionID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM session_turns WHERE session_id = ?`, sessionID); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

var _ core.SessionStore = (*SessionRepo)(nil)
