package core

import "context"

// SessionStore keeps the bounded per-conversation transcript. Implementations
// truncate FIFO once the configured pair cap is exceeded.
type SessionStore interface {
	// Create allocates a new conversation identity.
	Create(ctx context.Context) (string, error)

	// AppendTurn records one completed (user, assistant) pair.
	AppendTurn(ctx context.Context, sessionID, userText, assistantText string) error

	// RenderContext returns the stored pairs as labeled lines in
	// chronological order. ok is false when the session is unknown or has
	// no history, so callers can tell "no context" from empty text.
	RenderContext(ctx context.Context, sessionID string) (text string, ok bool, err error)

	// Clear drops the session's history while keeping the identity valid.
	Clear(ctx context.Context, sessionID string) error
}
