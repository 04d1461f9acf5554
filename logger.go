package balrain

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/go-logr/logr"
)

// NewLogger returns a logr.Logger writing text to stderr
// at the given verbosity, where 0 logs errors only.
func NewLogger(verbosity int) logr.Logger {
	return NewLoggerTo(os.Stderr, verbosity)
}

// NewLoggerTo is NewLogger writing to w.
func NewLoggerTo(w io.Writer, verbosity int) logr.Logger {
	return logr.FromSlogHandler(
		slog.NewTextHandler(w, &slog.HandlerOptions{
			Level: slog.Level(int(slog.LevelError) - 4*verbosity),
		}),
	)
}

func WithLogger(ctx context.Context, log logr.Logger) context.Context {
	return logr.NewContext(ctx, log)
}

// LoggerFrom returns the logger stored in ctx or one that discards.
func LoggerFrom(ctx context.Context) logr.Logger {
	return logr.FromContextOrDiscard(ctx)
}
