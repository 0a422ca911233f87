package compare

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pierrec/lz4/v4"
)

// lz4Suffix marks inputs stored as lz4 frames.
const lz4Suffix = ".lz4"

// DefaultMaxLineSize is the longest line ReadLines accepts unless told otherwise.
const DefaultMaxLineSize = 1 << 20 // 1 MiB.

// initialLineBuffer is the scanner's starting buffer size.
const initialLineBuffer = 64 * 1024

// crlfLen is the longest line terminator.
const crlfLen = 2

// ErrLineTooLong is returned when a line exceeds the configured maximum size.
var ErrLineTooLong = errors.New("line exceeds maximum size")

// ReadOptions tunes how input files are read.
type ReadOptions struct {
	// MaxLineSize bounds a single line in bytes. Zero means DefaultMaxLineSize.
	MaxLineSize int
}

// ReadLines reads the file at path as ordered lines with terminators removed.
// Files ending in .lz4 are decompressed first.
func ReadLines(ctx context.Context, path string, opts ReadOptions) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}

	defer file.Close()

	var src io.Reader = file
	if strings.HasSuffix(path, lz4Suffix) {
		src = lz4.NewReader(file)
	}

	return ScanLines(ctx, src, opts)
}

// ScanLines splits r into lines. Both "\n" and "\r\n" terminate a line and a
// trailing partial line is kept.
func ScanLines(ctx context.Context, r io.Reader, opts ReadOptions) ([]string, error) {
	maxLine := opts.MaxLineSize
	if maxLine <= 0 {
		maxLine = DefaultMaxLineSize
	}

	// The scanner buffer must also hold a "\r\n" terminator, so the bound on
	// the line itself is enforced below.
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, min(initialLineBuffer, maxLine+crlfLen)), maxLine+crlfLen)

	var lines []string

	for scanner.Scan() {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}

		if len(scanner.Bytes()) > maxLine {
			return nil, lineTooLong(len(lines), maxLine)
		}

		lines = append(lines, scanner.Text())
	}

	scanErr := scanner.Err()
	if errors.Is(scanErr, bufio.ErrTooLong) {
		return nil, lineTooLong(len(lines), maxLine)
	}

	if scanErr != nil {
		return nil, fmt.Errorf("read: %w", scanErr)
	}

	return lines, nil
}

func lineTooLong(line, maxLine int) error {
	return fmt.Errorf("%w: line %d is longer than %d bytes", ErrLineTooLong, line, maxLine)
}
