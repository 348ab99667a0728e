// Package docfix is the parse → transform → reconstruct engine for
// structured-markup documents.
//
// The typical flow:
//
//	doc, err := docfix.Parse(text, dialect.LaTeX)
//	fixes, err := docfix.RunPasses(doc, pass.Default()...)
//	out := docfix.Reconstruct(doc)
//
// With zero passes applied, Reconstruct(Parse(text)) equals text
// byte-for-byte for every dialect. Process wraps the flow with the
// degraded textual fallback for inputs that fail to parse.
package docfix

import (
	"errors"

	"github.com/docfix/go-docfix/dialect"
	"github.com/docfix/go-docfix/fallback"
	"github.com/docfix/go-docfix/ir"
	"github.com/docfix/go-docfix/parse"
	"github.com/docfix/go-docfix/pass"
	"github.com/docfix/go-docfix/reconstruct"
	"github.com/docfix/go-docfix/report"
)

// Outcome classifies how a document was processed.
type Outcome int

const (
	Success Outcome = iota
	DegradedFallback
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Success:
		return "success"
	case DegradedFallback:
		return "degraded-fallback"
	case Failed:
		return "failed"
	default:
		return "<err: bad outcome>"
	}
}

// Result is the per-document outcome batch callers consume.
type Result struct {
	Outcome  Outcome
	Output   string
	Fixes    []pass.Fix
	Warnings []string
	Err      error
}

// Parse parses text under the given dialect.
func Parse(text string, d dialect.Dialect) (*ir.Document, error) {
	return parse.Parse([]byte(text), parse.ParseDialect(d))
}

// RunPasses applies the named passes in order and returns the fix log.
func RunPasses(doc *ir.Document, ids ...pass.ID) ([]pass.Fix, error) {
	return pass.Run(doc, ids...)
}

// Reconstruct regenerates source text from the (possibly rewritten)
// document.
func Reconstruct(doc *ir.Document) string {
	return reconstruct.Reconstruct(doc)
}

// Process runs the whole engine on one document. On a parse error it
// degrades to the textual fallback cleanup instead of failing, so the
// caller always gets usable output unless the pass list itself is
// invalid. The default pipeline runs when ids is empty.
func Process(text string, d dialect.Dialect, ids ...pass.ID) Result {
	if len(ids) == 0 {
		ids = pass.Default()
	}
	doc, err := Parse(text, d)
	if err != nil {
		if errors.Is(err, parse.ErrParse) {
			out, fixes := fallback.Clean(text)
			return Result{
				Outcome:  DegradedFallback,
				Output:   out,
				Fixes:    fixes,
				Warnings: []string{err.Error()},
			}
		}
		return Result{Outcome: Failed, Err: err}
	}
	fixes, err := RunPasses(doc, ids...)
	if err != nil {
		return Result{Outcome: Failed, Err: err}
	}
	rep := report.NewReporter(doc.Raw).Colors(false)
	out := Reconstruct(doc)
	rep.AddDiags(doc)
	var warnings []string
	for i := range rep.Errors {
		warnings = append(warnings, rep.Format(&rep.Errors[i]))
	}
	return Result{
		Outcome:  Success,
		Output:   out,
		Fixes:    fixes,
		Warnings: warnings,
	}
}
