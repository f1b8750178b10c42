package cli

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestWithLogger(t *testing.T) {
	ctx := context.Background()
	logger := log.Default()

	ctxWithLogger := WithLogger(ctx, logger)

	retrieved := LoggerFromContext(ctxWithLogger)
	if retrieved != logger {
		t.Error("LoggerFromContext should return the same logger")
	}
}

func TestLoggerFromContextDefault(t *testing.T) {
	ctx := context.Background()

	// Without a logger in the context, should fall back to the default.
	logger := LoggerFromContext(ctx)
	if logger == nil {
		t.Error("LoggerFromContext should return default logger when none set")
	}
}

func TestLoggerFromContextWithValue(t *testing.T) {
	var buf bytes.Buffer
	custom := log.New(&buf)

	ctx := WithLogger(context.Background(), custom)
	retrieved := LoggerFromContext(ctx)

	if retrieved != custom {
		t.Error("LoggerFromContext should return the custom logger")
	}

	retrieved.Info("test")
	if buf.Len() == 0 {
		t.Error("retrieved logger should write to the custom buffer")
	}
}

func TestProgress(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf)

	done := progress(logger, "rendering diagram", "format", "svg")

	// Small delay to ensure a measurable duration.
	time.Sleep(10 * time.Millisecond)
	done()

	output := buf.String()
	if !bytes.Contains(buf.Bytes(), []byte("rendering diagram done")) {
		t.Errorf("progress completion message missing from output: %q", output)
	}
	if !bytes.Contains(buf.Bytes(), []byte("elapsed")) {
		t.Errorf("progress completion should report elapsed time: %q", output)
	}
}
