package compare

import (
	"errors"
	"fmt"
)

// Sentinel errors for comparison failures.
var (
	ErrFileAccess        = errors.New("file access failed")
	ErrLineCountMismatch = errors.New("line count mismatch")
	ErrFieldMismatch     = errors.New("field mismatch")
)

// Role identifies which side of the comparison a file belongs to.
type Role string

// Comparison roles.
const (
	RoleReference Role = "reference"
	RoleCandidate Role = "candidate"
)

// FileAccessError reports that an input file could not be opened or read.
type FileAccessError struct {
	Err  error
	Role Role
	Path string
}

func (e *FileAccessError) Error() string {
	return fmt.Sprintf("%s file %s: %v", e.Role, e.Path, e.Err)
}

// Unwrap returns the underlying cause.
func (e *FileAccessError) Unwrap() error {
	return e.Err
}

// Is matches ErrFileAccess.
func (e *FileAccessError) Is(target error) bool {
	return target == ErrFileAccess
}

// LineCountError reports that the candidate has a different number of lines.
type LineCountError struct {
	Expected int
	Actual   int
}

func (e *LineCountError) Error() string {
	return fmt.Sprintf("%v: expected %d, got %d", ErrLineCountMismatch, e.Expected, e.Actual)
}

// Is matches ErrLineCountMismatch.
func (e *LineCountError) Is(target error) bool {
	return target == ErrLineCountMismatch
}

// FieldMismatchError reports the first field that differs. Line and Field are 0-based.
// A side that has no field at the position is flagged as missing and its value is empty.
type FieldMismatchError struct {
	Expected        string
	Actual          string
	ExpectedLine    string
	ActualLine      string
	Line            int
	Field           int
	ExpectedMissing bool
	ActualMissing   bool
}

func (e *FieldMismatchError) Error() string {
	return fmt.Sprintf("%v: line %d field %d: expected %q, got %q",
		ErrFieldMismatch, e.Line, e.Field, e.Expected, e.Actual)
}

// Is matches ErrFieldMismatch.
func (e *FieldMismatchError) Is(target error) bool {
	return target == ErrFieldMismatch
}
