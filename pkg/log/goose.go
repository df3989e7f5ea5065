package log

import (
	"context"

	"github.com/rs/zerolog"
)

// GooseLogger bridges goose's Logger interface onto zerolog so migration
// output lands in the same stream as everything else.
type GooseLogger struct {
	logger *zerolog.Logger
}

func NewGooseLoggerFromCtx(ctx context.Context) *GooseLogger {
	return &GooseLogger{logger: FromCtx(ctx)}
}

func (g *GooseLogger) Fatalf(format string, v ...interface{}) {
	g.logger.Fatal().Msgf(format, v...)
}

func (g *GooseLogger) Printf(format string, v ...interface{}) {
	g.logger.Info().Msgf(format, v...)
}
