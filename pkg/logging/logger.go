package logging

import (
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"
)

// Output formats understood by NewLogger.
const (
	FormatCLI  = "cli"
	FormatText = "text"
	FormatJSON = "json"
)

// Formats lists the supported output formats.
var Formats = []string{FormatCLI, FormatText, FormatJSON}

// NewLogger creates a logger writing to w in the given format.
// An empty format selects FormatCLI.
func NewLogger(w io.Writer, level slog.Leveler, format string) (*slog.Logger, error) {
	opts := &slog.HandlerOptions{Level: level}

	switch normalizeFormat(format) {
	case FormatCLI:
		return slog.New(NewCLIHandler(w, level)), nil
	case FormatText:
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case FormatJSON:
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("unsupported log format %q, expected one of: %s",
			format, strings.Join(Formats, ", "))
	}
}

// SetDefault installs a logger built by NewLogger as the slog default.
func SetDefault(w io.Writer, level, format string) error {
	l, err := NewLogger(w, ParseLogLevel(level), format)
	if err != nil {
		return err
	}
	slog.SetDefault(l)
	return nil
}

// ParseLogLevel converts a string log level to slog.Level.
// Defaults to slog.LevelInfo for unrecognized strings.
func ParseLogLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// IsFormat reports whether NewLogger accepts the format.
func IsFormat(format string) bool {
	return slices.Contains(Formats, normalizeFormat(format))
}

func normalizeFormat(format string) string {
	f := strings.ToLower(strings.TrimSpace(format))
	if f == "" {
		return FormatCLI
	}
	return f
}
