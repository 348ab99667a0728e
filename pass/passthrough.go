package pass

import (
	"github.com/docfix/go-docfix/ir"
	"github.com/docfix/go-docfix/reconstruct"
)

// inline-verbatim shorthands normalized to \texttt
var verbatimShorthands = map[string]bool{
	"lstinline": true,
	"verb":      true,
	"Verb":      true,
}

// passthroughPass rewrites \passthrough{\lstinline!x!} (and \verb
// variants) to the canonical \texttt{x}. The argument group is kept and
// its verbatim payload lifted into it, so no orphaned empty group
// remains.
type passthroughPass struct{}

func (p *passthroughPass) ID() ID {
	return FixPassthrough
}

func (p *passthroughPass) Apply(doc *ir.Document) []Fix {
	var matches []*ir.Node
	doc.Visit(func(n *ir.Node, isPost bool) (bool, error) {
		if isPost {
			return true, nil
		}
		if n.Kind == ir.MacroKind && n.Content == "passthrough" && verbatimPayload(n) != nil {
			matches = append(matches, n)
			return false, nil
		}
		return true, nil
	})
	var fixes []Fix
	for _, n := range matches {
		before := string(doc.Slice(n))
		payload := verbatimPayload(n)
		group := n.Children[0]
		group.Children = nil
		group.AppendChild(payload)
		group.Modified = true
		n.Content = "texttt"
		n.MarkModified("Fixed passthrough command")
		fixes = append(fixes, makeFix(FixPassthrough, n,
			"Fixed passthrough command", before, reconstruct.Synthesize(doc, n)))
	}
	return fixes
}

// verbatimPayload returns the text node carried by the shorthand macro
// inside the passthrough argument group, or nil when the shape does not
// match.
func verbatimPayload(n *ir.Node) *ir.Node {
	if len(n.Children) != 1 || n.Children[0].Kind != ir.GroupKind {
		return nil
	}
	group := n.Children[0]
	if len(group.Children) != 1 {
		return nil
	}
	inner := group.Children[0]
	if inner.Kind != ir.MacroKind || !verbatimShorthands[inner.Content] {
		return nil
	}
	if len(inner.Children) != 1 || inner.Children[0].Kind != ir.TextKind {
		return nil
	}
	return inner.Children[0]
}
