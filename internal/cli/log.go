package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// =============================================================================
// Context Logger
// =============================================================================

type contextKey string

const loggerKey contextKey = "logger"

// WithLogger returns a context carrying the given logger.
func WithLogger(ctx context.Context, logger *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// LoggerFromContext extracts the logger from the context, falling back to the
// package default when none is present.
func LoggerFromContext(ctx context.Context) *log.Logger {
	if logger, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return logger
	}
	return log.Default()
}

// =============================================================================
// Progress Helper
// =============================================================================

// progress logs the start of an operation and returns a function that logs
// its completion with the elapsed duration.
//
//	done := progress(logger, "rendering diagram", "format", "svg")
//	defer done()
func progress(logger *log.Logger, msg string, keyvals ...any) func() {
	start := time.Now()
	logger.Info(msg, keyvals...)
	return func() {
		elapsed := time.Since(start).Round(time.Millisecond)
		logger.Info(msg+" done", append(keyvals, "elapsed", elapsed)...)
	}
}
