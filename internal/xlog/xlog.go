// Package xlog wraps slog with a tint console handler for library use: a
// Config logs its resolution steps at Debug (merge and validation are not
// logged) so embedding
// applications can opt in with a single handler swap, never forcing output
// by default.
package xlog

import (
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
)

// Logger wraps slog.Logger with the fields holoconf's resolution steps use.
type Logger struct {
	*slog.Logger
}

// Discard is the default logger: every call is a no-op. Config uses this
// unless WithLogger supplies one (spec §2 added-components: logging is
// wired through optional construction options, never mandatory).
var Discard = &Logger{Logger: slog.New(slog.NewTextHandler(discardWriter{}, &slog.HandlerOptions{Level: slog.LevelError + 1}))}

type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }

// New builds a console (tint) or JSON logger at the given level ("debug",
// "info", "warn", "error").
func New(level, format string) *Logger {
	logLevel := parseLevel(level)

	var handler slog.Handler
	switch format {
	case "json":
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	default:
		handler = tint.NewHandler(os.Stdout, &tint.Options{
			Level:      logLevel,
			TimeFormat: time.TimeOnly,
		})
	}
	return &Logger{Logger: slog.New(handler)}
}

// WithPath returns a logger annotated with the document path currently being
// resolved or validated.
func (l *Logger) WithPath(path string) *Logger {
	return &Logger{Logger: l.With("path", path)}
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
