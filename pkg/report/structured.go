package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"gopkg.in/yaml.v3"

	"github.com/project-chip/chipcmp/pkg/compare"
)

// Document is the machine-readable form of an outcome.
type Document struct {
	Failure        *Failure `json:"failure,omitempty" yaml:"failure,omitempty"`
	Status         string   `json:"status" yaml:"status"`
	Reference      string   `json:"reference" yaml:"reference"`
	Candidate      string   `json:"candidate" yaml:"candidate"`
	Delimiter      string   `json:"delimiter" yaml:"delimiter"`
	ExpectedLines  int      `json:"expected_lines" yaml:"expected_lines"`
	ActualLines    int      `json:"actual_lines" yaml:"actual_lines"`
	FieldsCompared int      `json:"fields_compared" yaml:"fields_compared"`
}

// Failure describes why a comparison failed.
type Failure struct {
	Line            *int    `json:"line,omitempty" yaml:"line,omitempty"`
	Field           *int    `json:"field,omitempty" yaml:"field,omitempty"`
	Kind            string  `json:"kind" yaml:"kind"`
	Message         string  `json:"message" yaml:"message"`
	Role            string  `json:"role,omitempty" yaml:"role,omitempty"`
	Path            string  `json:"path,omitempty" yaml:"path,omitempty"`
	Cause           string  `json:"cause,omitempty" yaml:"cause,omitempty"`
	Expected        *string `json:"expected,omitempty" yaml:"expected,omitempty"`
	Actual          *string `json:"actual,omitempty" yaml:"actual,omitempty"`
	ExpectedMissing bool    `json:"expected_missing,omitempty" yaml:"expected_missing,omitempty"`
	ActualMissing   bool    `json:"actual_missing,omitempty" yaml:"actual_missing,omitempty"`
}

// NewDocument converts an outcome into its machine-readable form.
func NewDocument(outcome *compare.Outcome) Document {
	doc := Document{
		Status:         StatusOK,
		Reference:      outcome.Reference,
		Candidate:      outcome.Candidate,
		Delimiter:      outcome.Delimiter,
		ExpectedLines:  outcome.ExpectedLines,
		ActualLines:    outcome.ActualLines,
		FieldsCompared: outcome.FieldsCompared,
	}

	if outcome.OK() {
		return doc
	}

	doc.Status = StatusFailed
	doc.Failure = newFailure(outcome)

	return doc
}

func newFailure(outcome *compare.Outcome) *Failure {
	failure := &Failure{Kind: KindOther, Message: Message(outcome)}

	var (
		accessErr *compare.FileAccessError
		countErr  *compare.LineCountError
		fieldErr  *compare.FieldMismatchError
	)

	switch {
	case errors.As(outcome.Err, &accessErr):
		failure.Kind = KindFileAccess
		failure.Role = string(accessErr.Role)
		failure.Path = accessErr.Path
		failure.Cause = accessErr.Err.Error()
	case errors.As(outcome.Err, &countErr):
		failure.Kind = KindLineCount
		failure.Expected = ptr(strconv.Itoa(countErr.Expected))
		failure.Actual = ptr(strconv.Itoa(countErr.Actual))
	case errors.As(outcome.Err, &fieldErr):
		failure.Kind = KindFieldMismatch
		failure.Line = &fieldErr.Line
		failure.Field = &fieldErr.Field

		if !fieldErr.ExpectedMissing {
			failure.Expected = ptr(fieldErr.Expected)
		}

		if !fieldErr.ActualMissing {
			failure.Actual = ptr(fieldErr.Actual)
		}

		failure.ExpectedMissing = fieldErr.ExpectedMissing
		failure.ActualMissing = fieldErr.ActualMissing
	}

	return failure
}

func ptr(s string) *string {
	return &s
}

// value renders an optional field for the table, marking absent ones.
func value(s *string) string {
	if s == nil {
		return missingField
	}

	return *s
}

// JSONRenderer writes the outcome as an indented JSON document.
type JSONRenderer struct{}

// Render writes outcome as JSON.
func (JSONRenderer) Render(w io.Writer, outcome *compare.Outcome) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	err := enc.Encode(NewDocument(outcome))
	if err != nil {
		return fmt.Errorf("encode json: %w", err)
	}

	return nil
}

// YAMLRenderer writes the outcome as a YAML document.
type YAMLRenderer struct{}

// Render writes outcome as YAML.
func (YAMLRenderer) Render(w io.Writer, outcome *compare.Outcome) error {
	enc := yaml.NewEncoder(w)

	err := enc.Encode(NewDocument(outcome))
	if err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}

	err = enc.Close()
	if err != nil {
		return fmt.Errorf("close yaml encoder: %w", err)
	}

	return nil
}

// TableRenderer writes a summary table.
type TableRenderer struct{}

// Render writes outcome as a go-pretty table.
func (TableRenderer) Render(w io.Writer, outcome *compare.Outcome) error {
	doc := NewDocument(outcome)

	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.AppendHeader(table.Row{"Check", "Value"})
	tbl.AppendRows([]table.Row{
		{"Reference", doc.Reference},
		{"Candidate", doc.Candidate},
		{"Delimiter", doc.Delimiter},
		{"Expected lines", doc.ExpectedLines},
		{"Actual lines", doc.ActualLines},
		{"Fields compared", doc.FieldsCompared},
	})

	if doc.Failure != nil {
		tbl.AppendSeparator()
		tbl.AppendRow(table.Row{"Failure", doc.Failure.Kind})

		if doc.Failure.Path != "" {
			tbl.AppendRow(table.Row{"Path", doc.Failure.Path})
			tbl.AppendRow(table.Row{"Cause", doc.Failure.Cause})
		}

		if doc.Failure.Line != nil {
			tbl.AppendRow(table.Row{"Line", *doc.Failure.Line})
			tbl.AppendRow(table.Row{"Field", *doc.Failure.Field})
			tbl.AppendRow(table.Row{"Expected", value(doc.Failure.Expected)})
			tbl.AppendRow(table.Row{"Actual", value(doc.Failure.Actual)})
		}
	}

	tbl.AppendFooter(table.Row{"Status", doc.Status})

	_, err := fmt.Fprintln(w, tbl.Render())
	if err != nil {
		return fmt.Errorf("write table: %w", err)
	}

	return nil
}
