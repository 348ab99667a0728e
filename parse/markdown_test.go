package parse

import (
	"testing"

	"github.com/docfix/go-docfix/ir"
)

const mdSample = `# Title

A paragraph with a [link](https://example.org) and
an image ![alt](img.png) inline.

- one
- two

1. first
2. second

` + "```go\nfmt.Println()\n```\n"

func TestParseMarkdownBlocks(t *testing.T) {
	doc, err := Parse([]byte(mdSample), ParseMarkdown())
	if err != nil {
		t.Fatal(err)
	}
	if err := ir.CheckDocument(doc); err != nil {
		t.Fatal(err)
	}
	kinds := []ir.Kind{}
	for _, n := range doc.Nodes {
		kinds = append(kinds, n.Kind)
	}
	want := []ir.Kind{
		ir.HeadingKind,
		ir.ParagraphKind,
		ir.ListKind,
		ir.ListKind,
		ir.CodeBlockKind,
	}
	if len(kinds) != len(want) {
		t.Fatalf("kinds = %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("kinds[%d] = %s, want %s", i, kinds[i], want[i])
		}
	}
}

func TestParseMarkdownHeading(t *testing.T) {
	doc, err := Parse([]byte("### Deep"), ParseMarkdown())
	if err != nil {
		t.Fatal(err)
	}
	h := doc.Nodes[0]
	if h.Content != "Deep" {
		t.Errorf("title = %q", h.Content)
	}
	if lvl, _ := h.Attr(ir.AttrLevel); lvl != "3" {
		t.Errorf("level = %q", lvl)
	}
}

func TestParseMarkdownInlines(t *testing.T) {
	doc, err := Parse([]byte("see [a](http://x) mid ![b](y.png) end"), ParseMarkdown())
	if err != nil {
		t.Fatal(err)
	}
	par := doc.Nodes[0]
	if par.Kind != ir.ParagraphKind {
		t.Fatalf("kind = %s", par.Kind)
	}
	var links, images int
	for _, c := range par.Children {
		switch c.Kind {
		case ir.LinkKind:
			links++
			if u, _ := c.Attr(ir.AttrURL); u != "http://x" {
				t.Errorf("url = %q", u)
			}
		case ir.ImageKind:
			images++
		}
	}
	if links != 1 || images != 1 {
		t.Errorf("links/images = %d/%d, want 1/1", links, images)
	}
}

func TestParseMarkdownLists(t *testing.T) {
	doc, err := Parse([]byte("- a\n- b\n"), ParseMarkdown())
	if err != nil {
		t.Fatal(err)
	}
	list := doc.Nodes[0]
	if o, _ := list.Attr(ir.AttrOrdered); o != "false" {
		t.Errorf("ordered = %q", o)
	}
	if len(list.Children) != 2 || list.Children[1].Content != "b" {
		t.Fatalf("items not parsed: %+v", list.Children)
	}
}

func TestParseMarkdownUnterminatedFence(t *testing.T) {
	doc, err := Parse([]byte("```py\nx = 1\n"), ParseMarkdown())
	if err != nil {
		t.Fatal(err)
	}
	if len(doc.Diags) == 0 {
		t.Fatal("expected a diagnostic for the unterminated fence")
	}
	cb := doc.Nodes[0]
	if cb.Kind != ir.CodeBlockKind || cb.EndPos != len(doc.Raw) {
		t.Errorf("block = %s [%d,%d)", cb.Kind, cb.StartPos, cb.EndPos)
	}
}
