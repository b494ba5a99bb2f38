// Package logging builds the process logger from configuration.
package logging

import (
	"io"
	"log/slog"

	"github.com/kjkrol/glclock/internal/config"
)

// New returns a logger writing to w in the configured format and level.
// Invalid settings fall back to text at info.
func New(cfg config.LogConfig, w io.Writer) *slog.Logger {
	level, err := cfg.SlogLevel()
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}

	var h slog.Handler
	switch cfg.Format {
	case "json":
		h = slog.NewJSONHandler(w, opts)
	default:
		h = slog.NewTextHandler(w, opts)
	}
	return slog.New(h)
}
