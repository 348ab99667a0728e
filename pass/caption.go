package pass

import (
	"strings"

	"github.com/docfix/go-docfix/ir"
	"github.com/docfix/go-docfix/reconstruct"
)

// captionPass elides \caption macros whose argument is empty or
// whitespace-only. The macro becomes a comment node so the output
// documents the removal; the orphaned argument group is deleted.
type captionPass struct{}

func (p *captionPass) ID() ID {
	return ElideEmptyCaption
}

func (p *captionPass) Apply(doc *ir.Document) []Fix {
	var matches []*ir.Node
	doc.Visit(func(n *ir.Node, isPost bool) (bool, error) {
		if isPost {
			return true, nil
		}
		if n.Kind == ir.MacroKind && n.Content == "caption" && emptyArgument(n) {
			matches = append(matches, n)
			return false, nil
		}
		return true, nil
	})
	var fixes []Fix
	for _, n := range matches {
		before := string(doc.Slice(n))
		n.Kind = ir.CommentKind
		n.Content = " Empty caption removed"
		n.Children = nil
		n.DelAttr(ir.AttrOpt)
		n.MarkModified("Removed empty caption")
		fixes = append(fixes, makeFix(ElideEmptyCaption, n,
			"Removed empty caption", before, reconstruct.Synthesize(doc, n)))
	}
	return fixes
}

func emptyArgument(n *ir.Node) bool {
	if len(n.Children) != 1 || n.Children[0].Kind != ir.GroupKind {
		return false
	}
	group := n.Children[0]
	for _, c := range group.Children {
		if c.Kind != ir.TextKind || strings.TrimSpace(c.Content) != "" {
			return false
		}
	}
	return true
}
