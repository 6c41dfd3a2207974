package testutil

import (
	"bytes"
	"io"
	"log/slog"
	"testing"
)

// Silence routes the default slog logger to a discard handler for the
// duration of the test. The engine logs every processed event at debug
// level; most tests don't want that on stderr.
func Silence(t *testing.T) {
	t.Helper()
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })
}

// CaptureLogs routes the default slog logger into a buffer at debug level
// and returns the buffer. Restored on test cleanup.
func CaptureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}
