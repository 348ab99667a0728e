package reconstruct

import (
	"io"
	"strings"

	"github.com/docfix/go-docfix/debug"
	"github.com/docfix/go-docfix/ir"
	"github.com/docfix/go-docfix/token"
)

// Reconstruct regenerates the document's source text.
func Reconstruct(doc *ir.Document) string {
	var b strings.Builder
	Write(doc, &b)
	return b.String()
}

// Write streams the regenerated source text to w. The only returned
// errors are writer errors; reconstruction itself cannot fail.
func Write(doc *ir.Document, w io.Writer) error {
	cursor := 0
	for _, n := range doc.Nodes {
		if err := emitNode(doc, w, n, &cursor); err != nil {
			return err
		}
	}
	// trailing bytes after the last node
	if cursor < len(doc.Raw) {
		if err := writeBytes(w, doc.Raw[cursor:]); err != nil {
			return err
		}
	}
	return nil
}

func emitNode(doc *ir.Document, w io.Writer, n *ir.Node, cursor *int) error {
	if *cursor > n.StartPos {
		// cursor already passed this node's start: position
		// bookkeeping conflict. Emit the node's verbatim span rather
		// than drop content, and record the conflict.
		doc.Diag(ir.Warning, n.StartPos, ErrInconsistent.Error())
		if debug.Recon() {
			debug.Logf("recon: cursor %d past node start %d (%s)\n", *cursor, n.StartPos, n.Kind)
		}
		if err := writeBytes(w, doc.Slice(n)); err != nil {
			return err
		}
		if n.EndPos > *cursor {
			*cursor = n.EndPos
		}
		return nil
	}
	// gap between siblings: whitespace and punctuation outside any node
	if *cursor < n.StartPos {
		if err := writeBytes(w, doc.Raw[*cursor:n.StartPos]); err != nil {
			return err
		}
		*cursor = n.StartPos
	}
	if !n.Touched() {
		if err := writeBytes(w, doc.Slice(n)); err != nil {
			return err
		}
		*cursor = n.EndPos
		return nil
	}
	if err := writeString(w, Synthesize(doc, n)); err != nil {
		return err
	}
	if debug.Recon() {
		checkSpanEnd(doc, n)
	}
	*cursor = n.EndPos
	return nil
}

// checkSpanEnd cross-checks a rewritten macro's recorded end against a
// balanced re-scan of the raw buffer. Arguments are attached to their
// macro at parse time, so the recorded end already covers them; the
// re-scan exists to surface bookkeeping drift during debugging.
func checkSpanEnd(doc *ir.Document, n *ir.Node) {
	if n.StartPos >= len(doc.Raw) || doc.Raw[n.StartPos] != '\\' {
		return
	}
	end, err := token.ScanMacro(doc.Raw, n.StartPos)
	if err != nil || end == n.EndPos {
		return
	}
	debug.Logf("recon: %s at %d recorded end %d, balanced scan says %d\n",
		n.Kind, n.StartPos, n.EndPos, end)
}

func writeBytes(w io.Writer, d []byte) error {
	_, err := w.Write(d)
	return err
}

func writeString(w io.Writer, s string) error {
	_, err := io.WriteString(w, s)
	return err
}
