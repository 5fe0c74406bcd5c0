// Package logging builds the process-wide slog.Logger.
package logging

import (
	"io"
	"log/slog"
)

// New returns a logger configured for env.
//
// dev (and anything unrecognised): human-readable text at DEBUG.
// staging: JSON at DEBUG.
// prod: JSON at INFO.
func New(env string, w io.Writer) *slog.Logger {
	switch env {
	case "prod":
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo}))
	case "staging":
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
	default:
		return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
}
