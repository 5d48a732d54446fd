package cli

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// NewLogger builds the CLI logger. Text output goes through charmbracelet/log
// for terminals, json through the standard JSON handler.
func NewLogger(w io.Writer, format, level string) (*slog.Logger, error) {
	var slogLevel slog.Level
	if err := slogLevel.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	switch strings.ToLower(format) {
	case "json":
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slogLevel})), nil
	case "text", "":
		handler := log.NewWithOptions(w, log.Options{
			Prefix:          "blockdrop",
			ReportTimestamp: true,
			TimeFormat:      time.DateTime,
			Level:           log.Level(slogLevel),
		})
		return slog.New(handler), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
}
