// Package config loads chipcmp settings from defaults, a YAML file and the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/project-chip/chipcmp/pkg/report"
)

// Config is the top-level configuration struct for chipcmp.
// Field tags use mapstructure for viper unmarshalling.
type Config struct {
	Compare CompareConfig `mapstructure:"compare"`
	Output  OutputConfig  `mapstructure:"output"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// CompareConfig holds the inputs of a comparison.
type CompareConfig struct {
	Reference   string `mapstructure:"reference"`
	Candidate   string `mapstructure:"candidate"`
	Delimiter   string `mapstructure:"delimiter"`
	MaxLineSize string `mapstructure:"max_line_size"`
}

// OutputConfig holds report settings.
type OutputConfig struct {
	Format string `mapstructure:"format"`
	Diff   bool   `mapstructure:"diff"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Sentinel errors for configuration validation.
var (
	// ErrEmptyPath indicates a reference or candidate path is empty.
	ErrEmptyPath = errors.New("compare.reference and compare.candidate must be set")
	// ErrEmptyDelimiter indicates the field delimiter is empty.
	ErrEmptyDelimiter = errors.New("compare.delimiter must not be empty")
	// ErrInvalidMaxLineSize indicates max_line_size is not a positive byte size.
	ErrInvalidMaxLineSize = errors.New("compare.max_line_size must be a positive byte size")
	// ErrInvalidFormat indicates an unsupported output format.
	ErrInvalidFormat = errors.New("output.format is not supported")
	// ErrInvalidLogLevel indicates an unknown log level.
	ErrInvalidLogLevel = errors.New("logging.level must be one of debug, info, warn, error")
	// ErrInvalidLogFormat indicates an unknown log format.
	ErrInvalidLogFormat = errors.New("logging.format must be text or json")
)

// Validate checks Config invariants and returns the first error found.
func (c *Config) Validate() error {
	compareErr := c.validateCompare()
	if compareErr != nil {
		return compareErr
	}

	if !slices.Contains(report.Formats(), strings.ToLower(c.Output.Format)) {
		return fmt.Errorf("%w: %q", ErrInvalidFormat, c.Output.Format)
	}

	_, levelErr := c.LogLevel()
	if levelErr != nil {
		return levelErr
	}

	switch strings.ToLower(c.Logging.Format) {
	case LogFormatText, LogFormatJSON:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogFormat, c.Logging.Format)
	}

	return nil
}

func (c *Config) validateCompare() error {
	if c.Compare.Reference == "" || c.Compare.Candidate == "" {
		return ErrEmptyPath
	}

	if c.Compare.Delimiter == "" {
		return ErrEmptyDelimiter
	}

	_, sizeErr := c.MaxLineSizeBytes()

	return sizeErr
}

// MaxLineSizeBytes parses Compare.MaxLineSize, e.g. "1MiB" or "512kB".
func (c *Config) MaxLineSizeBytes() (int, error) {
	size, err := humanize.ParseBytes(c.Compare.MaxLineSize)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidMaxLineSize, err)
	}

	if size == 0 || size > maxLineSizeLimit {
		return 0, fmt.Errorf("%w: %s", ErrInvalidMaxLineSize, c.Compare.MaxLineSize)
	}

	return int(size), nil
}

// maxLineSizeLimit caps max_line_size at 1 GiB.
const maxLineSizeLimit = 1 << 30

// LogLevel maps Logging.Level to an slog level.
func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level

	err := level.UnmarshalText([]byte(c.Logging.Level))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.Logging.Level)
	}

	return level, nil
}

// LogJSON reports whether logs should be emitted as JSON.
func (c *Config) LogJSON() bool {
	return strings.EqualFold(c.Logging.Format, LogFormatJSON)
}
