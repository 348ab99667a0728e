package pass

import (
	"github.com/docfix/go-docfix/ir"
	"github.com/docfix/go-docfix/reconstruct"
)

// emphasisPass demotes emphasis macros nested inside another emphasis
// macro's argument to plain groups, leaving exactly one active wrapper.
type emphasisPass struct{}

func (p *emphasisPass) ID() ID {
	return FlattenEmphasis
}

func (p *emphasisPass) Apply(doc *ir.Document) []Fix {
	var outers []*ir.Node
	doc.Visit(func(n *ir.Node, isPost bool) (bool, error) {
		if isPost {
			return true, nil
		}
		if isEmph(n) && hasInnerEmph(n) {
			outers = append(outers, n)
			return false, nil
		}
		return true, nil
	})
	var fixes []Fix
	for _, outer := range outers {
		before := string(doc.Slice(outer))
		demoted := 0
		for _, arg := range outer.Children {
			demoted += demoteEmph(arg)
		}
		if demoted == 0 {
			continue
		}
		outer.MarkModified("Flattened nested emphasis")
		fixes = append(fixes, makeFix(FlattenEmphasis, outer,
			"Flattened nested emphasis", before, reconstruct.Synthesize(doc, outer)))
	}
	return fixes
}

func isEmph(n *ir.Node) bool {
	return n.Kind == ir.MacroKind && n.Content == "emph"
}

func hasInnerEmph(n *ir.Node) bool {
	found := false
	for _, arg := range n.Children {
		arg.Visit(func(c *ir.Node, isPost bool) (bool, error) {
			if !isPost && isEmph(c) {
				found = true
				return false, nil
			}
			return true, nil
		})
	}
	return found
}

// demoteEmph replaces every emphasis macro in the subtree with its own
// argument group, which renders as an unstyled braced group. Bare
// \emph macros without an argument are left alone.
func demoteEmph(n *ir.Node) int {
	count := 0
	for i, c := range n.Children {
		if isEmph(c) && len(c.Children) == 1 && c.Children[0].Kind == ir.GroupKind {
			group := c.Children[0]
			count += demoteEmph(group)
			n.ReplaceChild(i, group)
			// both the demoted group and the node whose child list
			// changed must synthesize from structure now
			group.Modified = true
			n.Modified = true
			count++
			continue
		}
		count += demoteEmph(c)
	}
	return count
}
