package reconstruct

import (
	"strconv"
	"strings"

	"github.com/docfix/go-docfix/ir"
)

// Synthesize renders a node from its structured form. Untouched nodes
// (and untouched subtrees of touched ones) still come out as verbatim
// slices of the raw input; only rewritten structure is regenerated.
func Synthesize(doc *ir.Document, n *ir.Node) string {
	if !n.Touched() {
		return string(doc.Slice(n))
	}
	var b strings.Builder
	synth(doc, &b, n)
	return b.String()
}

func synth(doc *ir.Document, b *strings.Builder, n *ir.Node) {
	if !n.Touched() {
		b.Write(doc.Slice(n))
		return
	}
	switch n.Kind {
	case ir.TextKind:
		b.WriteString(n.Content)
	case ir.CommentKind:
		b.WriteByte('%')
		b.WriteString(n.Content)
	case ir.MacroKind:
		synthMacro(doc, b, n)
	case ir.GroupKind:
		b.WriteByte('{')
		synthChildren(doc, b, n)
		b.WriteByte('}')
	case ir.EnvironmentKind:
		b.WriteString(`\begin{` + n.Content + `}`)
		if opt, ok := n.Attr(ir.AttrOpt); ok {
			b.WriteString("[" + opt + "]")
		}
		synthChildren(doc, b, n)
		b.WriteString(`\end{` + n.Content + `}`)
	case ir.CitationKind:
		b.WriteString(`\` + n.Content)
		if opt, ok := n.Attr(ir.AttrOpt); ok {
			b.WriteString("[" + opt + "]")
		}
		b.WriteString("{" + strings.Join(n.AttrList(ir.AttrKeys), ",") + "}")
	case ir.MathKind:
		delim, _ := n.Attr(ir.AttrDelim)
		b.WriteString(delim + n.Content + closingMathDelim(delim))
	case ir.LinkKind:
		synthLink(b, n)
	case ir.ImageKind:
		synthImage(b, n)
	case ir.HeadingKind:
		synthHeading(doc, b, n)
	case ir.ListKind:
		synthList(doc, b, n)
	case ir.ListItemKind:
		b.WriteString("- " + n.Content)
	case ir.TableKind, ir.ParagraphKind:
		synthChildren(doc, b, n)
	case ir.CodeBlockKind:
		lang, _ := n.Attr(ir.AttrLang)
		b.WriteString("```" + lang + "\n" + n.Content + "\n```")
	case ir.EntryKind:
		synthEntry(b, n)
	}
}

// synthChildren concatenates child renditions. Parsers keep sibling
// spans contiguous inside any container, so structural concatenation
// loses nothing for untouched children.
func synthChildren(doc *ir.Document, b *strings.Builder, n *ir.Node) {
	for _, c := range n.Children {
		synth(doc, b, c)
	}
}

func synthMacro(doc *ir.Document, b *strings.Builder, n *ir.Node) {
	b.WriteString(`\` + n.Content)
	if opt, ok := n.Attr(ir.AttrOpt); ok {
		b.WriteString("[" + opt + "]")
	}
	if delim, ok := n.Attr(ir.AttrDelim); ok && len(n.Children) == 1 && n.Children[0].Kind == ir.TextKind {
		close := delim
		if delim == "{" {
			close = "}"
		}
		b.WriteString(delim + n.Children[0].Content + close)
		return
	}
	synthChildren(doc, b, n)
}

func synthLink(b *strings.Builder, n *ir.Node) {
	url, _ := n.Attr(ir.AttrURL)
	text, _ := n.Attr(ir.AttrText)
	switch n.Content {
	case "href":
		b.WriteString(`\href{` + url + `}{` + text + `}`)
	case "url":
		b.WriteString(`\url{` + url + `}`)
	default:
		b.WriteString("[" + text + "](" + url + ")")
	}
}

func synthImage(b *strings.Builder, n *ir.Node) {
	url, _ := n.Attr(ir.AttrURL)
	if n.Content == "includegraphics" {
		b.WriteString(`\includegraphics`)
		if opt, ok := n.Attr(ir.AttrOpt); ok {
			b.WriteString("[" + opt + "]")
		}
		b.WriteString("{" + url + "}")
		return
	}
	text, _ := n.Attr(ir.AttrText)
	b.WriteString("![" + text + "](" + url + ")")
}

func synthHeading(doc *ir.Document, b *strings.Builder, n *ir.Node) {
	if len(n.Children) > 0 {
		// LaTeX sectioning macro with a braced title argument
		b.WriteString(`\` + n.Content)
		synthChildren(doc, b, n)
		return
	}
	level, _ := n.Attr(ir.AttrLevel)
	v, err := strconv.Atoi(level)
	if err != nil || v < 1 {
		v = 1
	}
	b.WriteString(strings.Repeat("#", v) + " " + n.Content)
}

func synthList(doc *ir.Document, b *strings.Builder, n *ir.Node) {
	ordered, _ := n.Attr(ir.AttrOrdered)
	for i, c := range n.Children {
		if i > 0 {
			b.WriteByte('\n')
		}
		if !c.Touched() || c.Kind != ir.ListItemKind {
			synth(doc, b, c)
			continue
		}
		if ordered == "true" {
			b.WriteString(strconv.Itoa(i+1) + ". " + c.Content)
		} else {
			b.WriteString("- " + c.Content)
		}
	}
}

func synthEntry(b *strings.Builder, n *ir.Node) {
	typ, _ := n.Attr(ir.AttrType)
	key, _ := n.Attr(ir.AttrKey)
	b.WriteString("@" + typ + "{" + key + ",\n")
	for _, a := range n.Attrs {
		if a.Key == ir.AttrType || a.Key == ir.AttrKey {
			continue
		}
		b.WriteString("  " + a.Key + " = {" + a.Val + "},\n")
	}
	b.WriteString("}")
}

func closingMathDelim(open string) string {
	switch open {
	case `\[`:
		return `\]`
	case `\(`:
		return `\)`
	default:
		return open
	}
}
