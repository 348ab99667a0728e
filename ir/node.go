package ir

// Attribute keys. Permitted keys depend on the node kind, see validAttrs.
const (
	AttrArgs    = "args"       // macro argument list (raw text per argument)
	AttrOpt     = "opt"        // optional bracket argument
	AttrKeys    = "keys"       // citation keys
	AttrURL     = "url"        // link or image target
	AttrText    = "text"       // link anchor text
	AttrLevel   = "level"      // heading level, "1".."6"
	AttrDelim   = "delim"      // verbatim shorthand delimiter, e.g. "!"
	AttrLang    = "lang"       // code block language
	AttrOrdered = "ordered"    // list orderedness, "true"/"false"
	AttrKey     = "entry-key"  // bibliographic entry key
	AttrType    = "entry-type" // bibliographic entry type
	AttrReason  = "reason"     // why a pass rewrote this node
)

// Attr is one attribute of a node. Either Val or List is set, not both.
type Attr struct {
	Key  string
	Val  string
	List []string
}

// Node is one typed element of the parsed tree. Kind discriminates the
// variant; Content holds the semantic string (macro name, literal text,
// block type name). StartPos/EndPos are byte offsets into the raw input;
// Line is 1-based and Column is 0-based from the preceding newline.
type Node struct {
	Kind        Kind
	Content     string
	StartPos    int
	EndPos      int
	Line        int
	Column      int
	Parent      *Node
	ParentIndex int
	Attrs       []Attr
	Children    []*Node

	// Modified marks a node rewritten by a pass. Reconstruction emits the
	// verbatim raw span only when a node and its whole subtree are
	// unmodified.
	Modified bool
}

func New(kind Kind, content string) *Node {
	return &Node{Kind: kind, Content: content}
}

func (n *Node) Attr(key string) (string, bool) {
	for i := range n.Attrs {
		if n.Attrs[i].Key == key {
			return n.Attrs[i].Val, true
		}
	}
	return "", false
}

func (n *Node) AttrList(key string) []string {
	for i := range n.Attrs {
		if n.Attrs[i].Key == key {
			return n.Attrs[i].List
		}
	}
	return nil
}

func (n *Node) SetAttr(key, val string) *Node {
	for i := range n.Attrs {
		if n.Attrs[i].Key == key {
			n.Attrs[i].Val = val
			n.Attrs[i].List = nil
			return n
		}
	}
	n.Attrs = append(n.Attrs, Attr{Key: key, Val: val})
	return n
}

func (n *Node) SetAttrList(key string, list []string) *Node {
	for i := range n.Attrs {
		if n.Attrs[i].Key == key {
			n.Attrs[i].List = list
			n.Attrs[i].Val = ""
			return n
		}
	}
	n.Attrs = append(n.Attrs, Attr{Key: key, List: list})
	return n
}

func (n *Node) DelAttr(key string) {
	for i := range n.Attrs {
		if n.Attrs[i].Key == key {
			n.Attrs = append(n.Attrs[:i], n.Attrs[i+1:]...)
			return
		}
	}
}

// AppendChild takes ownership of c.
func (n *Node) AppendChild(c *Node) *Node {
	c.Parent = n
	c.ParentIndex = len(n.Children)
	n.Children = append(n.Children, c)
	return n
}

// RemoveChild deletes the child at index i and renumbers the remaining
// siblings.
func (n *Node) RemoveChild(i int) {
	if i < 0 || i >= len(n.Children) {
		return
	}
	n.Children = append(n.Children[:i], n.Children[i+1:]...)
	for j := i; j < len(n.Children); j++ {
		n.Children[j].ParentIndex = j
	}
}

// ReplaceChild swaps the child at index i for c, preserving position in
// the sibling order.
func (n *Node) ReplaceChild(i int, c *Node) {
	if i < 0 || i >= len(n.Children) {
		return
	}
	c.Parent = n
	c.ParentIndex = i
	n.Children[i] = c
}

// MarkModified flags the node for synthesized reconstruction and records
// the reason in its attributes.
func (n *Node) MarkModified(reason string) {
	n.Modified = true
	if reason != "" {
		n.SetAttr(AttrReason, reason)
	}
}

// Touched reports whether the node or any descendant was modified.
func (n *Node) Touched() bool {
	if n.Modified {
		return true
	}
	for _, c := range n.Children {
		if c.Touched() {
			return true
		}
	}
	return false
}

func (n *Node) Root() *Node {
	res := n
	for res.Parent != nil {
		res = res.Parent
	}
	return res
}

// Visit walks the subtree rooted at n. f is called before children with
// isPost false and after with isPost true; returning false from the pre
// call skips the children.
func (n *Node) Visit(f func(n *Node, isPost bool) (bool, error)) error {
	dive, err := f(n, false)
	if err != nil {
		return err
	}
	if dive {
		for _, c := range n.Children {
			if err := c.Visit(f); err != nil {
				return err
			}
		}
	}
	if _, err := f(n, true); err != nil {
		return err
	}
	return nil
}

func (n *Node) Clone() *Node {
	res := &Node{}
	return n.CloneTo(res)
}

func (n *Node) CloneTo(dst *Node) *Node {
	dst.Kind = n.Kind
	dst.Content = n.Content
	dst.StartPos = n.StartPos
	dst.EndPos = n.EndPos
	dst.Line = n.Line
	dst.Column = n.Column
	dst.Parent = n.Parent
	dst.ParentIndex = n.ParentIndex
	dst.Modified = n.Modified
	dst.Attrs = make([]Attr, len(n.Attrs))
	for i, a := range n.Attrs {
		dst.Attrs[i] = Attr{Key: a.Key, Val: a.Val}
		if a.List != nil {
			dst.Attrs[i].List = append([]string(nil), a.List...)
		}
	}
	dst.Children = make([]*Node, len(n.Children))
	for i, c := range n.Children {
		cc := &Node{}
		c.CloneTo(cc)
		cc.Parent = dst
		cc.ParentIndex = i
		dst.Children[i] = cc
	}
	return dst
}
