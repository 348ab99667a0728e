package query

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/docfix/go-docfix/ir"
	"github.com/docfix/go-docfix/parse"
)

const texSample = "\\section{Intro}\n" +
	"Some text \\cite{a,b} here.\n" +
	"\\subsection{Details}\n" +
	"More \\citep[p. 3]{c} and \\emph{style}.\n"

func mustParse(t *testing.T, in string, opts ...parse.ParseOption) *ir.Document {
	t.Helper()
	doc, err := parse.Parse([]byte(in), opts...)
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

func TestByKind(t *testing.T) {
	doc := mustParse(t, texSample)
	if got := len(ByKind(doc, ir.CitationKind)); got != 2 {
		t.Errorf("citations = %d, want 2", got)
	}
	if got := len(ByKind(doc, ir.HeadingKind)); got != 2 {
		t.Errorf("headings = %d, want 2", got)
	}
	if got := len(ByKind(doc, ir.TableKind)); got != 0 {
		t.Errorf("tables = %d, want 0", got)
	}
}

func TestCitations(t *testing.T) {
	doc := mustParse(t, texSample)
	got := Citations(doc)
	want := []CitationRecord{
		{Macro: "cite", Keys: []string{"a", "b"}, Offset: 26, Line: 2},
		{Macro: "citep", Keys: []string{"c"}, Offset: 69, Line: 4},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("citations mismatch (-want +got):\n%s", diff)
	}
}

func TestHeadings(t *testing.T) {
	doc := mustParse(t, texSample)
	got := Headings(doc)
	if len(got) != 2 {
		t.Fatalf("headings = %d, want 2", len(got))
	}
	if got[0].Title != "Intro" || got[0].Level != 1 {
		t.Errorf("first = %+v", got[0])
	}
	if got[1].Title != "Details" || got[1].Level != 2 {
		t.Errorf("second = %+v", got[1])
	}
}

func TestHeadingsMarkdown(t *testing.T) {
	doc := mustParse(t, "## Setup\n\ntext\n", parse.ParseMarkdown())
	got := Headings(doc)
	if len(got) != 1 || got[0].Title != "Setup" || got[0].Level != 2 {
		t.Errorf("headings = %+v", got)
	}
}

func TestMatch(t *testing.T) {
	doc := mustParse(t, texSample+`\href{https://doi.org/10.1/x}{Smith 2020}`)
	tests := []struct {
		expr string
		want int
	}{
		{`kind == "citation"`, 2},
		{`kind == "macro" && content == "emph"`, 1},
		{`kind == "link" && attrs["url"] contains "doi.org"`, 1},
		{`kind == "heading" && depth == 0`, 2},
		{`modified`, 0},
	}
	for _, tt := range tests {
		got, err := Match(doc, tt.expr)
		if err != nil {
			t.Errorf("Match(%q): %v", tt.expr, err)
			continue
		}
		if len(got) != tt.want {
			t.Errorf("Match(%q) = %d nodes, want %d", tt.expr, len(got), tt.want)
		}
	}
}

func TestMatchBadExpression(t *testing.T) {
	doc := mustParse(t, "x")
	if _, err := Match(doc, "kind =="); err == nil {
		t.Error("expected a compile error")
	}
}
