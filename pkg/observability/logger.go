// Package observability builds the structured logger shared by chipcmp commands.
package observability

import (
	"io"
	"log/slog"
	"os"
)

const (
	attrService = "service"
	attrVersion = "version"
	attrMode    = "mode"
)

// AppMode identifies how the binary was invoked.
type AppMode string

// ModeCLI is the interactive command-line mode.
const ModeCLI AppMode = "cli"

// Config holds logger settings.
type Config struct {
	// Output receives log records. Nil means os.Stderr.
	Output         io.Writer
	ServiceName    string
	ServiceVersion string
	Mode           AppMode
	LogLevel       slog.Level
	LogJSON        bool
}

// DefaultConfig returns the logger configuration used when nothing is set.
func DefaultConfig() Config {
	return Config{
		ServiceName: "chipcmp",
		Mode:        ModeCLI,
		LogLevel:    slog.LevelWarn,
	}
}

// NewLogger builds a text or JSON slog logger. Service attributes are
// pre-attached so they stay at the top level even when groups are used.
func NewLogger(cfg Config) *slog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}

	handlerOpts := &slog.HandlerOptions{Level: cfg.LogLevel}

	var inner slog.Handler
	if cfg.LogJSON {
		inner = slog.NewJSONHandler(out, handlerOpts)
	} else {
		inner = slog.NewTextHandler(out, handlerOpts)
	}

	attrs := []slog.Attr{
		slog.String(attrService, cfg.ServiceName),
		slog.String(attrMode, string(cfg.Mode)),
	}

	if cfg.ServiceVersion != "" {
		attrs = append(attrs, slog.String(attrVersion, cfg.ServiceVersion))
	}

	return slog.New(inner.WithAttrs(attrs))
}
