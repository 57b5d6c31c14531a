package testutil

import (
	"bytes"
	"io"
	"log/slog"

	"github.com/horseradish/horseradish-server/internal/logger"
)

// MakeNoopLogger returns a logger that discards everything.
func MakeNoopLogger() *logger.Logger {
	return &logger.Logger{Logger: slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))}
}

// MakeBufferLogger returns a debug level logger writing to buf.
func MakeBufferLogger(buf *bytes.Buffer) *logger.Logger {
	return logger.NewWithWriter(buf, int(slog.LevelDebug))
}
