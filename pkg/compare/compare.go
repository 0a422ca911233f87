// Package compare checks a generated output file against a known-good
// reference, line by line and field by field.
package compare

import (
	"context"
	"strings"
)

// DefaultDelimiter separates fields within a line.
const DefaultDelimiter = "+"

// Default input locations, relative to the working directory.
const (
	DefaultReferencePath = "./test/resource/chip/chip_test.h"
	DefaultCandidatePath = "./tmp/chip_test.h"
)

// Comparator compares a reference file with a candidate file.
type Comparator struct {
	Delimiter string
	Read      ReadOptions
}

// New creates a Comparator splitting on delimiter. An empty delimiter falls
// back to DefaultDelimiter.
func New(delimiter string) *Comparator {
	if delimiter == "" {
		delimiter = DefaultDelimiter
	}

	return &Comparator{Delimiter: delimiter}
}

// Outcome summarizes a comparison run. Err is nil when the files match.
type Outcome struct {
	Err            error
	Reference      string
	Candidate      string
	Delimiter      string
	ExpectedLines  int
	ActualLines    int
	FieldsCompared int
}

// OK reports whether the comparison succeeded.
func (o *Outcome) OK() bool {
	return o.Err == nil
}

// CompareFiles reads both files and compares them. The returned Outcome is
// always non-nil; its Err carries the first failure.
func (c *Comparator) CompareFiles(ctx context.Context, referencePath, candidatePath string) *Outcome {
	outcome := &Outcome{
		Reference: referencePath,
		Candidate: candidatePath,
		Delimiter: c.Delimiter,
	}

	expected, err := ReadLines(ctx, referencePath, c.Read)
	if err != nil {
		outcome.Err = &FileAccessError{Role: RoleReference, Path: referencePath, Err: err}

		return outcome
	}

	actual, err := ReadLines(ctx, candidatePath, c.Read)
	if err != nil {
		outcome.Err = &FileAccessError{Role: RoleCandidate, Path: candidatePath, Err: err}

		return outcome
	}

	outcome.ExpectedLines = len(expected)
	outcome.ActualLines = len(actual)
	outcome.FieldsCompared, outcome.Err = c.CompareLines(expected, actual)

	return outcome
}

// CompareLines compares two line sequences and returns the number of fields
// compared before stopping. The error is a *LineCountError or a
// *FieldMismatchError, or nil when everything matches.
func (c *Comparator) CompareLines(expected, actual []string) (int, error) {
	if len(expected) != len(actual) {
		return 0, &LineCountError{Expected: len(expected), Actual: len(actual)}
	}

	compared := 0

	for idx := range expected {
		if expected[idx] == actual[idx] {
			compared += strings.Count(expected[idx], c.Delimiter) + 1

			continue
		}

		n, mismatch := c.compareFields(idx, expected[idx], actual[idx])
		compared += n

		if mismatch != nil {
			return compared, mismatch
		}
	}

	return compared, nil
}

// compareFields walks both field lists to the longer length so that a field
// present on only one side is a mismatch rather than an out-of-range read.
func (c *Comparator) compareFields(lineIdx int, expectedLine, actualLine string) (int, *FieldMismatchError) {
	expectedFields := strings.Split(expectedLine, c.Delimiter)
	actualFields := strings.Split(actualLine, c.Delimiter)

	width := max(len(expectedFields), len(actualFields))

	for fieldIdx := 0; fieldIdx < width; fieldIdx++ {
		want, wantOK := fieldAt(expectedFields, fieldIdx)
		got, gotOK := fieldAt(actualFields, fieldIdx)

		if wantOK && gotOK && want == got {
			continue
		}

		return fieldIdx + 1, &FieldMismatchError{
			Line:            lineIdx,
			Field:           fieldIdx,
			Expected:        want,
			Actual:          got,
			ExpectedMissing: !wantOK,
			ActualMissing:   !gotOK,
			ExpectedLine:    expectedLine,
			ActualLine:      actualLine,
		}
	}

	// Equal field lists imply equal lines.
	return width, nil
}

func fieldAt(fields []string, idx int) (string, bool) {
	if idx >= len(fields) {
		return "", false
	}

	return fields[idx], true
}
