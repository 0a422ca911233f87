package compare_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/pierrec/lz4/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/project-chip/chipcmp/pkg/compare"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestCompareFiles_Identical_OK(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	ref := writeFile(t, dir, "ref.h", "x+y+z\n")
	cand := writeFile(t, dir, "cand.h", "x+y+z\n")

	outcome := compare.New("+").CompareFiles(context.Background(), ref, cand)

	require.True(t, outcome.OK())
	assert.Equal(t, 1, outcome.ExpectedLines)
	assert.Equal(t, 1, outcome.ActualLines)
	assert.Equal(t, 3, outcome.FieldsCompared)
}

func TestCompareFiles_FieldMismatch_ReportsLineAndValues(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	ref := writeFile(t, dir, "ref.h", "a+b+c\n")
	cand := writeFile(t, dir, "cand.h", "a+b+d\n")

	outcome := compare.New("+").CompareFiles(context.Background(), ref, cand)
	require.ErrorIs(t, outcome.Err, compare.ErrFieldMismatch)

	var mismatch *compare.FieldMismatchError
	require.ErrorAs(t, outcome.Err, &mismatch)
	assert.Equal(t, "c", mismatch.Expected)
	assert.Equal(t, "d", mismatch.Actual)
	assert.Equal(t, 0, mismatch.Line)
	assert.Equal(t, 2, mismatch.Field)
	assert.Equal(t, "a+b+c", mismatch.ExpectedLine)
	assert.Equal(t, "a+b+d", mismatch.ActualLine)
}

func TestCompareFiles_LineCount_ReportsCounts(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	ref := writeFile(t, dir, "ref.h", "a+b\nc+d\n")
	cand := writeFile(t, dir, "cand.h", "a+b\n")

	outcome := compare.New("+").CompareFiles(context.Background(), ref, cand)
	require.ErrorIs(t, outcome.Err, compare.ErrLineCountMismatch)

	var countErr *compare.LineCountError
	require.ErrorAs(t, outcome.Err, &countErr)
	assert.Equal(t, 2, countErr.Expected)
	assert.Equal(t, 1, countErr.Actual)
	assert.Equal(t, 2, outcome.ExpectedLines)
	assert.Equal(t, 1, outcome.ActualLines)
}

func TestCompareFiles_MissingReference_FileAccess(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cand := writeFile(t, dir, "cand.h", "a\n")

	outcome := compare.New("+").CompareFiles(context.Background(), filepath.Join(dir, "nope.h"), cand)
	require.ErrorIs(t, outcome.Err, compare.ErrFileAccess)
	require.ErrorIs(t, outcome.Err, os.ErrNotExist)

	var accessErr *compare.FileAccessError
	require.ErrorAs(t, outcome.Err, &accessErr)
	assert.Equal(t, compare.RoleReference, accessErr.Role)
}

func TestCompareFiles_MissingCandidate_FileAccess(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	ref := writeFile(t, dir, "ref.h", "a\n")

	outcome := compare.New("+").CompareFiles(context.Background(), ref, filepath.Join(dir, "nope.h"))

	var accessErr *compare.FileAccessError
	require.ErrorAs(t, outcome.Err, &accessErr)
	assert.Equal(t, compare.RoleCandidate, accessErr.Role)
}

func TestCompareFiles_LZ4Candidate_Decompressed(t *testing.T) {
	t.Parallel()

	const content = "a+b\nc+d\n"

	var buf bytes.Buffer

	zw := lz4.NewWriter(&buf)
	_, err := zw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	dir := t.TempDir()
	ref := writeFile(t, dir, "ref.h", content)
	cand := writeFile(t, dir, "cand.h.lz4", buf.String())

	outcome := compare.New("+").CompareFiles(context.Background(), ref, cand)
	require.NoError(t, outcome.Err)
	assert.Equal(t, 2, outcome.ActualLines)
}

func TestCompareLines_CandidateFewerFields_Missing(t *testing.T) {
	t.Parallel()

	_, err := compare.New("+").CompareLines([]string{"a+b+c"}, []string{"a+b"})

	var mismatch *compare.FieldMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, 2, mismatch.Field)
	assert.Equal(t, "c", mismatch.Expected)
	assert.Empty(t, mismatch.Actual)
	assert.True(t, mismatch.ActualMissing)
	assert.False(t, mismatch.ExpectedMissing)
}

func TestCompareLines_CandidateExtraFields_Missing(t *testing.T) {
	t.Parallel()

	_, err := compare.New("+").CompareLines([]string{"a+b"}, []string{"a+b+c"})

	var mismatch *compare.FieldMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, 2, mismatch.Field)
	assert.True(t, mismatch.ExpectedMissing)
	assert.Equal(t, "c", mismatch.Actual)
}

func TestCompareLines_FirstMismatchWins(t *testing.T) {
	t.Parallel()

	expected := []string{"a+b", "c+d", "e+f"}
	actual := []string{"a+b", "c+X", "e+Y"}

	compared, err := compare.New("+").CompareLines(expected, actual)

	var mismatch *compare.FieldMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, 1, mismatch.Line)
	assert.Equal(t, 1, mismatch.Field)
	assert.Equal(t, 4, compared)
}

func TestCompareLines_Empty_OK(t *testing.T) {
	t.Parallel()

	compared, err := compare.New("+").CompareLines(nil, nil)
	require.NoError(t, err)
	assert.Zero(t, compared)
}

func TestCompareLines_CustomDelimiter(t *testing.T) {
	t.Parallel()

	_, err := compare.New(",").CompareLines([]string{"a,b+c"}, []string{"a,b+d"})

	var mismatch *compare.FieldMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, "b+c", mismatch.Expected)
	assert.Equal(t, "b+d", mismatch.Actual)
}

func TestNew_EmptyDelimiter_Default(t *testing.T) {
	t.Parallel()

	assert.Equal(t, compare.DefaultDelimiter, compare.New("").Delimiter)
}
