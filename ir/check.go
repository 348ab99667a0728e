package ir

import "fmt"

// validAttrs lists the attribute keys permitted per kind. EntryKind is
// absent: bibliographic entries carry arbitrary field names next to the
// reserved "key" and "type" keys, so any key is allowed there.
var validAttrs = map[Kind]map[string]bool{
	TextKind:        {AttrReason: true},
	MacroKind:       {AttrArgs: true, AttrOpt: true, AttrDelim: true, AttrReason: true},
	CitationKind:    {AttrKeys: true, AttrOpt: true, AttrReason: true},
	EnvironmentKind: {AttrOpt: true, AttrReason: true},
	MathKind:        {AttrDelim: true, AttrReason: true},
	CommentKind:     {AttrReason: true},
	GroupKind:       {AttrDelim: true, AttrReason: true},
	HeadingKind:     {AttrLevel: true, AttrReason: true},
	LinkKind:        {AttrURL: true, AttrText: true, AttrReason: true},
	ImageKind:       {AttrURL: true, AttrText: true, AttrOpt: true, AttrReason: true},
	ListKind:        {AttrOrdered: true, AttrReason: true},
	ListItemKind:    {AttrReason: true},
	TableKind:       {AttrReason: true},
	CodeBlockKind:   {AttrLang: true, AttrDelim: true, AttrReason: true},
	ParagraphKind:   {AttrReason: true},
}

// CheckDocument verifies the position and attribute invariants over the
// whole tree. It is called by tests after every pass; parsing and passes
// must keep it passing.
func CheckDocument(d *Document) error {
	if err := checkSiblings(d, d.Nodes, nil); err != nil {
		return err
	}
	for _, n := range d.Nodes {
		if err := checkNode(d, n); err != nil {
			return err
		}
	}
	return nil
}

func checkNode(d *Document, n *Node) error {
	if n.StartPos < 0 || n.StartPos > n.EndPos || n.EndPos > len(d.Raw) {
		return fmt.Errorf("%w: %s span [%d,%d) outside [0,%d)",
			ErrInvariant, n.Kind, n.StartPos, n.EndPos, len(d.Raw))
	}
	if allowed, ok := validAttrs[n.Kind]; ok {
		for i := range n.Attrs {
			if !allowed[n.Attrs[i].Key] {
				return fmt.Errorf("%w: attribute %q not valid for kind %s",
					ErrInvariant, n.Attrs[i].Key, n.Kind)
			}
		}
	}
	if err := checkSiblings(d, n.Children, n); err != nil {
		return err
	}
	for i, c := range n.Children {
		if c.Parent != n || c.ParentIndex != i {
			return fmt.Errorf("%w: broken parent link under %s at %d",
				errInternal, n.Kind, n.StartPos)
		}
		if c.StartPos < n.StartPos || c.EndPos > n.EndPos {
			return fmt.Errorf("%w: child %s [%d,%d) escapes parent %s [%d,%d)",
				ErrInvariant, c.Kind, c.StartPos, c.EndPos, n.Kind, n.StartPos, n.EndPos)
		}
		if err := checkNode(d, c); err != nil {
			return err
		}
	}
	return nil
}

func checkSiblings(d *Document, ns []*Node, parent *Node) error {
	last := -1
	for _, n := range ns {
		if n.StartPos < last {
			return fmt.Errorf("%w: sibling %s at %d overlaps previous span ending %d",
				ErrInvariant, n.Kind, n.StartPos, last)
		}
		last = n.EndPos
	}
	return nil
}
