package app

import (
	"io"
	"log/slog"

	"github.com/pkg/errors"
)

// ParseLevel resolves a level name ("debug", "info", "warn", "error",
// optionally with an offset such as "info+2") case-insensitively.
func ParseLevel(name string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return 0, errors.Errorf("[ParseLevel] unknown log level %q", name)
	}
	return level, nil
}

// NewLogger builds an isolated text or JSON logger writing to outW. It does
// not touch slog.Default.
func NewLogger(levelName, format string, outW io.Writer) (*slog.Logger, error) {
	level, err := ParseLevel(levelName)
	if err != nil {
		return nil, errors.Wrap(err, "[NewLogger]")
	}
	opts := &slog.HandlerOptions{Level: level}

	switch format {
	case "json":
		return slog.New(slog.NewJSONHandler(outW, opts)), nil
	case "text", "":
		return slog.New(slog.NewTextHandler(outW, opts)), nil
	default:
		return nil, errors.Errorf("[NewLogger] unknown log format %q", format)
	}
}
