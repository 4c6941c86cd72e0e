package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Config holds the logger configuration.
type Config struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	// Output is stdout, stderr, or file:<path>. A bare "file" writes to bridge.log.
	Output string `mapstructure:"output"`
}

// NewLogger initializes a slog logger from cfg. When output is non-nil it takes
// precedence over cfg.Output.
func NewLogger(cfg Config, output io.Writer) *slog.Logger {
	if output == nil {
		output = resolveOutput(cfg.Output)
	}

	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}

	var handler slog.Handler
	switch strings.ToLower(cfg.Format) {
	case "json":
		handler = slog.NewJSONHandler(output, opts)
	default:
		handler = slog.NewTextHandler(output, opts)
	}
	return slog.New(handler)
}

// ParseLevel converts a level name to a slog.Level, falling back to info.
func ParseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return level
}

func resolveOutput(name string) io.Writer {
	switch {
	case name == "stderr":
		return os.Stderr
	case name == "file" || strings.HasPrefix(name, "file:"):
		path := strings.TrimPrefix(strings.TrimPrefix(name, "file"), ":")
		if path == "" {
			path = "bridge.log"
		}
		file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to open log file %s: %v\n", path, err)
			return os.Stdout
		}
		return file
	default:
		return os.Stdout
	}
}
