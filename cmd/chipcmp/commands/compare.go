// Package commands implements CLI command handlers for chipcmp.
package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/project-chip/chipcmp/internal/config"
	"github.com/project-chip/chipcmp/pkg/compare"
	"github.com/project-chip/chipcmp/pkg/observability"
	"github.com/project-chip/chipcmp/pkg/report"
	"github.com/project-chip/chipcmp/pkg/version"
)

// pathArgCount is the number of positional arguments naming both inputs.
const pathArgCount = 2

var (
	// ErrCheckFailed is returned when the candidate does not match the reference.
	// The failure has already been reported on stdout.
	ErrCheckFailed = errors.New("check failed")
	// ErrPathArgs indicates the positional arguments are neither empty nor a pair.
	ErrPathArgs = errors.New("expected no arguments or exactly two: <reference> <candidate>")
)

// GlobalOptions holds persistent flags shared by every command.
type GlobalOptions struct {
	ConfigPath string
	Verbose    bool
	Quiet      bool
}

// CompareCommand holds flag values for the compare action.
type CompareCommand struct {
	globals *GlobalOptions

	delimiter   string
	format      string
	maxLineSize string
	diff        bool
	forceColor  bool
	noColor     bool
}

// NewCompareCommand creates the compare subcommand.
func NewCompareCommand(globals *GlobalOptions) *cobra.Command {
	cc := &CompareCommand{globals: globals}

	cmd := &cobra.Command{
		Use:   "compare [reference candidate]",
		Short: "Compare a generated file against its reference solution",
		Long: `Compare a generated file against its reference solution line by line,
splitting every line on the delimiter and comparing fields in order.

The first difference is reported and the command exits with status 1.

Examples:
  chipcmp compare                                    # default paths
  chipcmp compare golden/chip_test.h tmp/chip_test.h
  chipcmp compare -d , --diff ref.csv out.csv.lz4`,
		Args: pathArgs,
		RunE: cc.run,
	}

	cc.registerFlags(cmd)

	return cmd
}

func pathArgs(_ *cobra.Command, args []string) error {
	if len(args) != 0 && len(args) != pathArgCount {
		return fmt.Errorf("%w, got %d", ErrPathArgs, len(args))
	}

	return nil
}

func (cc *CompareCommand) registerFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&cc.delimiter, "delimiter", "d", config.DefaultDelimiter, "Field delimiter")
	cmd.Flags().StringVarP(&cc.format, "format", "f", config.DefaultOutputFormat, "Output format: text, table, json, yaml")
	cmd.Flags().StringVar(&cc.maxLineSize, "max-line-size", config.DefaultMaxLineSize, "Longest accepted line (e.g., '64KiB', '4MiB')")
	cmd.Flags().BoolVar(&cc.diff, "diff", config.DefaultOutputDiff, "Show an inline diff of the first mismatched line")
	cmd.Flags().BoolVar(&cc.forceColor, "color", false, "Force colored output")
	cmd.Flags().BoolVar(&cc.noColor, "no-color", false, "Disable colored output")
}

func (cc *CompareCommand) run(cmd *cobra.Command, args []string) error {
	cfg, err := cc.resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	logger := cc.buildLogger(cmd, cfg)

	maxLine, err := cfg.MaxLineSizeBytes()
	if err != nil {
		return err
	}

	renderer, err := report.New(report.Options{
		Format: cfg.Output.Format,
		Color:  cc.useColor(),
		Diff:   cfg.Output.Diff,
	})
	if err != nil {
		return fmt.Errorf("build renderer: %w", err)
	}

	comparator := compare.New(cfg.Compare.Delimiter)
	comparator.Read.MaxLineSize = maxLine

	logger.Debug("comparing files",
		"reference", cfg.Compare.Reference,
		"reference_size", fileSize(cfg.Compare.Reference),
		"candidate", cfg.Compare.Candidate,
		"candidate_size", fileSize(cfg.Compare.Candidate),
		"delimiter", cfg.Compare.Delimiter,
		"max_line_size", humanize.IBytes(uint64(maxLine)),
	)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	outcome := comparator.CompareFiles(ctx, cfg.Compare.Reference, cfg.Compare.Candidate)

	logger.Debug("comparison finished",
		"expected_lines", outcome.ExpectedLines,
		"actual_lines", outcome.ActualLines,
		"fields_compared", outcome.FieldsCompared,
	)

	renderErr := renderer.Render(cmd.OutOrStdout(), outcome)
	if renderErr != nil {
		return fmt.Errorf("render report: %w", renderErr)
	}

	if !outcome.OK() {
		logger.Info("comparison failed", "error", outcome.Err)

		return fmt.Errorf("%w: %w", ErrCheckFailed, outcome.Err)
	}

	return nil
}

// resolveConfig layers explicitly set flags and positional paths over the
// file and env configuration, then validates the merged result once so a flag
// can replace a bad value from a lower layer.
func (cc *CompareCommand) resolveConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg, err := config.Load(cc.globals.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	flags := cmd.Flags()

	if flags.Changed("delimiter") {
		cfg.Compare.Delimiter = cc.delimiter
	}

	if flags.Changed("format") {
		cfg.Output.Format = cc.format
	}

	if flags.Changed("max-line-size") {
		cfg.Compare.MaxLineSize = cc.maxLineSize
	}

	if flags.Changed("diff") {
		cfg.Output.Diff = cc.diff
	}

	if len(args) == pathArgCount {
		cfg.Compare.Reference = args[0]
		cfg.Compare.Candidate = args[1]
	}

	validateErr := cfg.Validate()
	if validateErr != nil {
		return nil, fmt.Errorf("invalid options: %w", validateErr)
	}

	return cfg, nil
}

func (cc *CompareCommand) buildLogger(cmd *cobra.Command, cfg *config.Config) *slog.Logger {
	logCfg := observability.DefaultConfig()
	logCfg.Output = cmd.ErrOrStderr()
	logCfg.ServiceVersion = version.Version
	logCfg.LogJSON = cfg.LogJSON()

	// Validate has already accepted the level.
	logCfg.LogLevel, _ = cfg.LogLevel()

	switch {
	case cc.globals.Verbose:
		logCfg.LogLevel = slog.LevelDebug
	case cc.globals.Quiet:
		logCfg.LogLevel = slog.LevelError
	}

	return observability.NewLogger(logCfg)
}

func (cc *CompareCommand) useColor() bool {
	switch {
	case cc.noColor:
		return false
	case cc.forceColor:
		return true
	default:
		return !color.NoColor
	}
}

// fileSize returns a humanized size for logging, or "n/a" when stat fails.
func fileSize(path string) string {
	info, err := os.Stat(path)
	if err != nil {
		return "n/a"
	}

	return humanize.IBytes(uint64(info.Size()))
}
