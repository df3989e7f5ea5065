package rag

import (
	"context"
	"fmt"

	"github.com/admiralicic/starting-ragchatbot-codebase/internal/core"
	"github.com/admiralicic/starting-ragchatbot-codebase/pkg/log"
)

const queryPreamble = "Answer this question about course materials: "

// Runner executes one orchestrated query against the model backend.
type Runner interface {
	Run(ctx context.Context, query, history string) (string, []core.Source, error)
}

// CourseAnalytics is the catalog summary surface the facade consumes.
type CourseAnalytics interface {
	CourseCount(ctx context.Context) (int, error)
	CourseTitles(ctx context.Context) ([]string, error)
}

// Analytics summarizes the indexed catalog.
type Analytics struct {
	TotalCourses int      `json:"total_courses"`
	CourseTitles []string `json:"course_titles"`
}

// Service ties session history, orchestration and catalog analytics into the
// single surface the transports talk to.
type Service struct {
	runner    Runner
	sessions  core.SessionStore
	analytics CourseAnalytics
}

func NewService(runner Runner, sessions core.SessionStore, analytics CourseAnalytics) *Service {
	return &Service{
		runner:    runner,
		sessions:  sessions,
		analytics: analytics,
	}
}

// Answer resolves one user query. The session, when given, contributes prior
// turns as context and records the new exchange afterwards; recording
// failures lose history but never the produced answer.
func (s *Service) Answer(ctx context.Context, query, sessionID string) (string, []core.Source, error) {
	logger := log.FromCtx(ctx)

	var history string
	if sessionID != "" {
		text, ok, err := s.sessions.RenderContext(ctx, sessionID)
		if err != nil {
			return "", nil, fmt.Errorf("load session context: %w", err)
		}
		if ok {
			history = text
		}
	}

	answer, sources, err := s.runner.Run(ctx, queryPreamble+query, history)
	if err != nil {
		return "", nil, err
	}

	if sessionID != "" {
		if err := s.sessions.AppendTurn(ctx, sessionID, query, answer); err != nil {
			logger.Error().Err(err).Str("session", sessionID).Msg("failed to record exchange")
		}
	}

	return answer, sources, nil
}

func (s *Service) CreateSession(ctx context.Context) (string, error) {
	return s.sessions.Create(ctx)
}

func (s *Service) ClearSession(ctx context.Context, sessionID string) error {
	return s.sessions.Clear(ctx, sessionID)
}

func (s *Service) Analytics(ctx context.Context) (*Analytics, error) {
	count, err := s.analytics.CourseCount(ctx)
	if err != nil {
		return nil, fmt.Errorf("course count: %w", err)
	}
	titles, err := s.analytics.CourseTitles(ctx)
	if err != nil {
		return nil, fmt.Errorf("course titles: %w", err)
	}
	if titles == nil {
		titles = []string{}
	}
	return &Analytics{TotalCourses: count, CourseTitles: titles}, nil
}
