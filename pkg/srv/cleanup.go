package srv

import "context"

// cleanupService wraps a resource close so it participates in the shutdown
// sequence without having a start phase.
type cleanupService struct {
	cleanup func() error
}

// NewCleanup returns a Service whose only job is running fn at shutdown.
func NewCleanup(fn func() error) Service {
	return &cleanupService{cleanup: fn}
}

func (c *cleanupService) Start(ctx context.Context) error {
	return nil
}

func (c *cleanupService) Shutdown(ctx context.Context) error {
	if c.cleanup == nil {
		return nil
	}
	return c.cleanup()
}
