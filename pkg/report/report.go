// Package report renders comparison outcomes for humans and machines.
package report

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/project-chip/chipcmp/pkg/compare"
)

// Output formats.
const (
	FormatText  = "text"
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// Outcome statuses.
const (
	StatusOK     = "ok"
	StatusFailed = "failed"
)

// Failure kinds.
const (
	KindFileAccess    = "file_access"
	KindLineCount     = "line_count"
	KindFieldMismatch = "field_mismatch"
	KindOther         = "error"
)

// missingField stands in for a field absent on one side.
const missingField = "<missing>"

// ErrUnknownFormat is returned for an unsupported output format.
var ErrUnknownFormat = errors.New("unknown output format")

// Formats lists the supported output formats.
func Formats() []string {
	return []string{FormatText, FormatTable, FormatJSON, FormatYAML}
}

// Options controls rendering.
type Options struct {
	Format string
	Color  bool
	Diff   bool
}

// Renderer writes an outcome to w.
type Renderer interface {
	Render(w io.Writer, outcome *compare.Outcome) error
}

// New returns the renderer for opts.Format. An empty format means text.
func New(opts Options) (Renderer, error) {
	switch strings.ToLower(opts.Format) {
	case "", FormatText:
		return &TextRenderer{Color: opts.Color, Diff: opts.Diff}, nil
	case FormatTable:
		return &TableRenderer{}, nil
	case FormatJSON:
		return &JSONRenderer{}, nil
	case FormatYAML:
		return &YAMLRenderer{}, nil
	default:
		return nil, fmt.Errorf("%w: %s (supported: %s)", ErrUnknownFormat, opts.Format, strings.Join(Formats(), ", "))
	}
}

// Message returns the plain-text diagnostic for an outcome.
func Message(outcome *compare.Outcome) string {
	if outcome.OK() {
		return "All good!"
	}

	var (
		accessErr *compare.FileAccessError
		countErr  *compare.LineCountError
		fieldErr  *compare.FieldMismatchError
	)

	switch {
	case errors.As(outcome.Err, &accessErr):
		if accessErr.Role == compare.RoleReference {
			return "Failed to open solution file"
		}

		return "Failed to open test file"
	case errors.As(outcome.Err, &countErr):
		return fmt.Sprintf("Wrong number of lines in test file. Expected %d, got %d", countErr.Expected, countErr.Actual)
	case errors.As(outcome.Err, &fieldErr):
		return fmt.Sprintf("!!!!!!!Mismatch found!!!!!!\n Expected \"%s\" got \"%s\"\n at line : %d",
			displayField(fieldErr.Expected, fieldErr.ExpectedMissing),
			displayField(fieldErr.Actual, fieldErr.ActualMissing),
			fieldErr.Line)
	default:
		return outcome.Err.Error()
	}
}

func displayField(value string, missing bool) string {
	if missing {
		return missingField
	}

	return value
}
