package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// SlogLevel parses LogLevel. "warning" is accepted as an alias for "warn".
func (c Config) SlogLevel() (slog.Level, error) {
	raw := strings.ToLower(strings.TrimSpace(c.LogLevel))
	switch raw {
	case "":
		return slog.LevelInfo, nil
	case "warning":
		raw = "warn"
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(raw)); err != nil {
		return slog.LevelInfo, fmt.Errorf("%w: log_level %q", ErrInvalidConfig, c.LogLevel)
	}
	return level, nil
}

// Logger builds a text logger writing to w, or stderr when w is nil.
func (c Config) Logger(w io.Writer) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}
	level, err := c.SlogLevel()
	if err != nil {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
