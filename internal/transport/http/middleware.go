package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/admiralicic/starting-ragchatbot-codebase/pkg/log"
)

// requestLogger tags each request with an id, scopes the context logger to
// it, and writes one access log line when the handler returns.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := uuid.NewString()

		ctx := c.Request.Context()
		logger := log.FromCtx(ctx).With().Str("request_id", requestID).Logger()
		c.Request = c.Request.WithContext(logger.WithContext(ctx))
		c.Header("X-Request-ID", requestID)

		c.Next()

		logger.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("duration", time.Since(start)).
			Msg("request handled")
	}
}
