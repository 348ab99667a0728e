// Package query provides read-only lookups over parsed documents for
// external collaborators: extraction of citations and headings, kind
// filtering, and expression-based node matching.
package query

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/expr-lang/expr"

	"github.com/docfix/go-docfix/ir"
)

// CitationRecord is one citation occurrence.
type CitationRecord struct {
	Macro  string
	Keys   []string
	Offset int
	Line   int
}

// HeadingRecord is one heading occurrence.
type HeadingRecord struct {
	Title  string
	Level  int
	Offset int
	Line   int
}

// ByKind returns all nodes of the given kind in document order.
func ByKind(doc *ir.Document, kind ir.Kind) []*ir.Node {
	var res []*ir.Node
	doc.Visit(func(n *ir.Node, isPost bool) (bool, error) {
		if !isPost && n.Kind == kind {
			res = append(res, n)
		}
		return true, nil
	})
	return res
}

// Citations extracts every citation in document order.
func Citations(doc *ir.Document) []CitationRecord {
	var res []CitationRecord
	for _, n := range ByKind(doc, ir.CitationKind) {
		res = append(res, CitationRecord{
			Macro:  n.Content,
			Keys:   append([]string(nil), n.AttrList(ir.AttrKeys)...),
			Offset: n.StartPos,
			Line:   n.Line,
		})
	}
	return res
}

// Headings extracts every heading in document order.
func Headings(doc *ir.Document) []HeadingRecord {
	var res []HeadingRecord
	for _, n := range ByKind(doc, ir.HeadingKind) {
		level, _ := n.Attr(ir.AttrLevel)
		v, err := strconv.Atoi(level)
		if err != nil {
			v = 1
		}
		res = append(res, HeadingRecord{
			Title:  headingTitle(doc, n),
			Level:  v,
			Offset: n.StartPos,
			Line:   n.Line,
		})
	}
	return res
}

func headingTitle(doc *ir.Document, n *ir.Node) string {
	if n.Content != "" && len(n.Children) == 0 {
		return n.Content
	}
	// LaTeX sectioning macro: the braced title argument
	for _, c := range n.Children {
		if c.Kind == ir.GroupKind {
			inner := doc.Slice(c)
			if len(inner) >= 2 {
				return strings.TrimSpace(string(inner[1 : len(inner)-1]))
			}
		}
	}
	return n.Content
}

// Match evaluates an expression against every node and returns those
// for which it yields true. The expression sees kind, content, attrs,
// depth and modified, e.g.
//
//	kind == "macro" && content == "emph"
//	attrs["url"] contains "doi.org"
func Match(doc *ir.Document, expression string) ([]*ir.Node, error) {
	program, err := expr.Compile(expression)
	if err != nil {
		return nil, fmt.Errorf("match expression: %w", err)
	}
	var res []*ir.Node
	depth := 0
	err = doc.Visit(func(n *ir.Node, isPost bool) (bool, error) {
		if isPost {
			depth--
			return true, nil
		}
		out, err := expr.Run(program, nodeEnv(n, depth))
		if err != nil {
			return false, fmt.Errorf("match expression: %w", err)
		}
		if b, ok := out.(bool); ok && b {
			res = append(res, n)
		}
		depth++
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func nodeEnv(n *ir.Node, depth int) map[string]any {
	attrs := map[string]any{}
	for _, a := range n.Attrs {
		if a.List != nil {
			attrs[a.Key] = a.List
			continue
		}
		attrs[a.Key] = a.Val
	}
	return map[string]any{
		"kind":     n.Kind.String(),
		"content":  n.Content,
		"attrs":    attrs,
		"depth":    depth,
		"modified": n.Modified,
		"line":     n.Line,
	}
}
