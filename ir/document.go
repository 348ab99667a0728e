package ir

import (
	"github.com/docfix/go-docfix/dialect"
	"github.com/docfix/go-docfix/token"
)

// Document metadata keys.
const (
	MetaContainsMath      = "contains-math"
	MetaContainsCitations = "contains-citations"
	MetaEntryCount        = "entry-count"
)

// Severity classifies a diagnostic.
type Severity int

const (
	Info Severity = iota
	Warning
	Error
)

func (s Severity) String() string {
	switch s {
	case Info:
		return "info"
	case Warning:
		return "warning"
	case Error:
		return "error"
	default:
		return "<err: bad severity>"
	}
}

// Diagnostic is a non-fatal finding attached to a document during parsing
// or rewriting. Offset is a byte offset into Raw.
type Diagnostic struct {
	Severity Severity
	Message  string
	Offset   int
}

// Document owns the immutable raw input, its parsed top-level node list
// and document-wide metadata. Raw is never mutated, only referenced by
// node spans.
type Document struct {
	Raw     []byte
	Dialect dialect.Dialect
	Nodes   []*Node
	Meta    map[string]string
	Pos     *token.PosDoc
	Diags   []Diagnostic
}

func NewDocument(raw []byte, d dialect.Dialect) *Document {
	return &Document{
		Raw:     raw,
		Dialect: d,
		Meta:    map[string]string{},
		Pos:     token.NewPosDoc(raw),
	}
}

// Slice returns the verbatim raw bytes spanned by n.
func (d *Document) Slice(n *Node) []byte {
	if n.StartPos < 0 || n.EndPos > len(d.Raw) || n.StartPos > n.EndPos {
		return nil
	}
	return d.Raw[n.StartPos:n.EndPos]
}

// Append adds a top-level node.
func (d *Document) Append(n *Node) {
	n.Parent = nil
	n.ParentIndex = len(d.Nodes)
	d.Nodes = append(d.Nodes, n)
}

// RemoveNode deletes the top-level node at index i and renumbers the
// rest.
func (d *Document) RemoveNode(i int) {
	if i < 0 || i >= len(d.Nodes) {
		return
	}
	d.Nodes = append(d.Nodes[:i], d.Nodes[i+1:]...)
	for j := i; j < len(d.Nodes); j++ {
		d.Nodes[j].ParentIndex = j
	}
}

// Diag records a non-fatal diagnostic.
func (d *Document) Diag(sev Severity, off int, msg string) {
	d.Diags = append(d.Diags, Diagnostic{Severity: sev, Message: msg, Offset: off})
}

// Visit walks every top-level node in order.
func (d *Document) Visit(f func(n *Node, isPost bool) (bool, error)) error {
	for _, n := range d.Nodes {
		if err := n.Visit(f); err != nil {
			return err
		}
	}
	return nil
}

// SetPositions derives Line and Column for every node in the document
// from its start offset. 1-based line, 0-based column.
func (d *Document) SetPositions() {
	d.Visit(func(n *Node, isPost bool) (bool, error) {
		if isPost {
			return true, nil
		}
		line, col := d.Pos.LineCol(n.StartPos)
		n.Line = line + 1
		n.Column = col
		return true, nil
	})
}
