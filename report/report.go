// Package report renders parse errors and pass diagnostics as
// human-readable, position-annotated messages.
package report

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/docfix/go-docfix/ir"
	"github.com/docfix/go-docfix/parse"
	"github.com/docfix/go-docfix/token"
)

// ContextLines is the number of raw-text lines shown around an error
// position.
const ContextLines = 2

// StructuredError is one reportable finding: a parse error or a
// document diagnostic, tied to a position in the raw input.
type StructuredError struct {
	Severity   ir.Severity
	Message    string
	Offset     int
	Line       int // 1-based
	Column     int // 0-based
	Snippet    string
	Suggestion string
}

// Reporter accumulates structured errors for one document. It only
// reads positions, never takes tree ownership.
type Reporter struct {
	pos    *token.PosDoc
	raw    []byte
	Errors []StructuredError
	color  bool
}

func NewReporter(raw []byte) *Reporter {
	return &Reporter{
		pos:   token.NewPosDoc(raw),
		raw:   raw,
		color: isatty.IsTerminal(os.Stderr.Fd()),
	}
}

// Colors forces colored output on or off. The default follows whether
// stderr is a terminal.
func (r *Reporter) Colors(on bool) *Reporter {
	r.color = on
	return r
}

// Add records an error or diagnostic at a byte offset.
func (r *Reporter) Add(sev ir.Severity, off int, msg, suggestion string) {
	line, col := r.pos.LineCol(off)
	r.Errors = append(r.Errors, StructuredError{
		Severity:   sev,
		Message:    msg,
		Offset:     off,
		Line:       line + 1,
		Column:     col,
		Snippet:    r.snippet(off),
		Suggestion: suggestion,
	})
}

// AddParseError records a *parse.Error; other errors are recorded at
// offset 0.
func (r *Reporter) AddParseError(err error) {
	var pe *parse.Error
	if errors.As(err, &pe) {
		r.Add(ir.Error, pe.Offset, pe.Msg, "")
		return
	}
	r.Add(ir.Error, 0, err.Error(), "")
}

// AddDiags copies a document's diagnostics into the reporter.
func (r *Reporter) AddDiags(doc *ir.Document) {
	for _, d := range doc.Diags {
		r.Add(d.Severity, d.Offset, d.Message, "")
	}
}

// snippet renders ContextLines lines around off with a column pointer
// under the offending byte.
func (r *Reporter) snippet(off int) string {
	if off > len(r.raw) {
		off = len(r.raw)
	}
	line, col := r.pos.LineCol(off)
	lines := strings.Split(string(r.raw), "\n")
	from := max(0, line-ContextLines)
	to := min(len(lines), line+ContextLines+1)
	var b strings.Builder
	for i := from; i < to; i++ {
		fmt.Fprintf(&b, "%4d | %s\n", i+1, lines[i])
		if i == line {
			b.WriteString("     | " + strings.Repeat(" ", col) + "^\n")
		}
	}
	return b.String()
}

// Format renders one structured error.
func (r *Reporter) Format(e *StructuredError) string {
	sev := e.Severity.String()
	if r.color {
		switch e.Severity {
		case ir.Error:
			sev = color.RedString(sev)
		case ir.Warning:
			sev = color.YellowString(sev)
		default:
			sev = color.BlueString(sev)
		}
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s (line %d, col %d)\n", sev, e.Message, e.Line, e.Column)
	b.WriteString(e.Snippet)
	if e.Suggestion != "" {
		fmt.Fprintf(&b, "suggestion: %s\n", e.Suggestion)
	}
	return b.String()
}

// FormatAll renders every accumulated error in order.
func (r *Reporter) FormatAll() string {
	var b strings.Builder
	for i := range r.Errors {
		b.WriteString(r.Format(&r.Errors[i]))
	}
	return b.String()
}
