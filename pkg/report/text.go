package report

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/project-chip/chipcmp/pkg/compare"
)

// TextRenderer prints the classic diagnostics, optionally coloured and
// followed by an inline diff of the mismatched lines.
type TextRenderer struct {
	Color bool
	Diff  bool
}

// Render writes the diagnostic for outcome.
func (r *TextRenderer) Render(w io.Writer, outcome *compare.Outcome) error {
	painter := r.painter(outcome.OK())

	_, err := painter.Fprintln(w, Message(outcome))
	if err != nil {
		return fmt.Errorf("write message: %w", err)
	}

	var fieldErr *compare.FieldMismatchError
	if !r.Diff || !errors.As(outcome.Err, &fieldErr) {
		return nil
	}

	_, err = fmt.Fprintf(w, "\n diff : %s\n", r.lineDiff(fieldErr.ExpectedLine, fieldErr.ActualLine))
	if err != nil {
		return fmt.Errorf("write diff: %w", err)
	}

	return nil
}

func (r *TextRenderer) painter(ok bool) *color.Color {
	attr := color.FgRed
	if ok {
		attr = color.FgGreen
	}

	painter := color.New(attr)
	if r.Color {
		painter.EnableColor()
	} else {
		painter.DisableColor()
	}

	return painter
}

// lineDiff renders a character-level diff. Plain output marks deletions as
// [-text-] and insertions as {+text+}.
func (r *TextRenderer) lineDiff(expected, actual string) string {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffCleanupSemantic(dmp.DiffMain(expected, actual, false))

	if r.Color {
		return dmp.DiffPrettyText(diffs)
	}

	var sb strings.Builder

	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			sb.WriteString("[-" + d.Text + "-]")
		case diffmatchpatch.DiffInsert:
			sb.WriteString("{+" + d.Text + "+}")
		case diffmatchpatch.DiffEqual:
			sb.WriteString(d.Text)
		}
	}

	return sb.String()
}
