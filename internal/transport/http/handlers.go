package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/admiralicic/starting-ragchatbot-codebase/internal/core"
	"github.com/admiralicic/starting-ragchatbot-codebase/pkg/log"
)

type Handlers struct {
	assistant Assistant
}

func NewHandlers(assistant Assistant) *Handlers {
	return &Handlers{assistant: assistant}
}

type queryRequest struct {
	Query     string `json:"query" binding:"required"`
	SessionID string `json:"session_id"`
}

type queryResponse struct {
	Answer    string        `json:"answer"`
	Sources   []core.Source `json:"sources"`
	SessionID string        `json:"session_id"`
}

// Query answers one user question. A request without a session id gets a
// fresh session so the client can keep the conversation going.
func (h *Handlers) Query(c *gin.Context) {
	var req queryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	logger := log.FromCtx(ctx)

	sessionID := req.SessionID
	if sessionID == "" {
		id, err := h.assistant.CreateSession(ctx)
		if err != nil {
			logger.Error().Err(err).Msg("failed to create session")
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		sessionID = id
	}

	answer, sources, err := h.assistant.Answer(ctx, req.Query, sessionID)
	if err != nil {
		logger.Error().Err(err).Str("session", sessionID).Msg("query failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if sources == nil {
		sources = []core.Source{}
	}

	c.JSON(http.StatusOK, queryResponse{
		Answer:    answer,
		Sources:   sources,
		SessionID: sessionID,
	})
}

func (h *Handlers) Courses(c *gin.Context) {
	stats, err := h.assistant.Analytics(c.Request.Context())
	if err != nil {
		log.FromCtx(c.Request.Context()).Error().Err(err).Msg("failed to load course analytics")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *Handlers) ClearSession(c *gin.Context) {
	if err := h.assistant.ClearSession(c.Request.Context(), c.Param("id")); err != nil {
		log.FromCtx(c.Request.Context()).Error().Err(err).Msg("failed to clear session")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
