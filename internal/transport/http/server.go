package http

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/admiralicic/starting-ragchatbot-codebase/internal/core"
	"github.com/admiralicic/starting-ragchatbot-codebase/internal/service/rag"
	"github.com/admiralicic/starting-ragchatbot-codebase/pkg/log"
)

// Assistant is the query surface the API exposes.
type Assistant interface {
	Answer(ctx context.Context, query, sessionID string) (string, []core.Source, error)
	CreateSession(ctx context.Context) (string, error)
	ClearSession(ctx context.Context, sessionID string) error
	Analytics(ctx context.Context) (*rag.Analytics, error)
}

// Server exposes the assistant as a JSON API. It wraps a plain http.Server
// so Shutdown can drain in-flight requests.
type Server struct {
	srv *http.Server
}

func NewServer(ctx context.Context, addr string, assistant Assistant, debug bool) *Server {
	if debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(requestLogger(), gin.Recovery())
	registerRoutes(router, NewHandlers(assistant))

	return &Server{
		srv: &http.Server{
			Addr:    addr,
			Handler: router,
			// Request contexts inherit the app context so handlers see the
			// process logger and stop when the process stops.
			BaseContext: func(net.Listener) context.Context {
				return ctx
			},
		},
	}
}

func registerRoutes(router *gin.Engine, h *Handlers) {
	router.GET("/health", h.Health)

	api := router.Group("/api")
	api.POST("/query", h.Query)
	api.GET("/courses", h.Courses)
	api.DELETE("/sessions/:id", h.ClearSession)
}

func (s *Server) Start(ctx context.Context) error {
	log.FromCtx(ctx).Info().Str("addr", s.srv.Addr).Msg("starting http api")
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http api: %w", err)
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
