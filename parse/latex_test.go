package parse

import (
	"errors"
	"testing"

	"github.com/docfix/go-docfix/ir"
)

func TestParseLaTeXOK(t *testing.T) {
	ins := []string{
		``,
		`hello world`,
		`\emph{a b}`,
		`\emph{\emph{inner} outer}`,
		`{group {nested}}`,
		`$x^2$ and $$y$$`,
		`\[display\] and \(inline\)`,
		`% just a comment`,
		"line one\n% comment\nline two",
		`\passthrough{\lstinline!some_code!}`,
		`\verb|x|`,
		`\lstinline{braced}`,
		`\cite{a,b} and \citep[p. 3]{k}`,
		`\href{https://doi.org/10.1/x}{Smith 2020}`,
		`\url{https://example.org}`,
		`\includegraphics[width=2cm]{fig.png}`,
		`\section{Intro} text \subsection{Sub}`,
		`\begin{figure}[h]\caption{x}\end{figure}`,
		`\begin{itemize}\item one \item two\end{itemize}`,
		`\begin{outer}\begin{inner}x\end{inner}\end{outer}`,
		`\% \{ \} \\`,
		`\frac{a}{b}`,
		`unicode: café — naïve`,
	}
	for _, in := range ins {
		doc, err := Parse([]byte(in))
		if err != nil {
			t.Errorf("Parse(%q): %v", in, err)
			continue
		}
		if err := ir.CheckDocument(doc); err != nil {
			t.Errorf("Parse(%q): %v", in, err)
		}
	}
}

func TestParseLaTeXErrors(t *testing.T) {
	tests := []struct {
		in  string
		off int
	}{
		{in: `{unclosed`, off: 0},
		{in: `ab{unclosed`, off: 2},
		{in: `}`, off: 0},
		{in: `$x`, off: 0},
		{in: `text $$x`, off: 5},
		{in: `\[x`, off: 0},
		{in: `\begin{x} y`, off: 0},
		{in: `a\end{x}`, off: 1},
		{in: `\verb|x`, off: 5},
	}
	for _, tt := range tests {
		_, err := Parse([]byte(tt.in))
		if err == nil {
			t.Errorf("Parse(%q): expected error", tt.in)
			continue
		}
		if !errors.Is(err, ErrParse) {
			t.Errorf("Parse(%q): err = %v, want ErrParse", tt.in, err)
			continue
		}
		var pe *Error
		if !errors.As(err, &pe) {
			t.Errorf("Parse(%q): err is not *Error", tt.in)
			continue
		}
		if pe.Offset != tt.off {
			t.Errorf("Parse(%q): offset = %d, want %d", tt.in, pe.Offset, tt.off)
		}
	}
}

func TestParseLaTeXShapes(t *testing.T) {
	doc, err := Parse([]byte(`\passthrough{\lstinline!some_code!}`))
	if err != nil {
		t.Fatal(err)
	}
	if len(doc.Nodes) != 1 {
		t.Fatalf("top-level nodes = %d, want 1", len(doc.Nodes))
	}
	n := doc.Nodes[0]
	if n.Kind != ir.MacroKind || n.Content != "passthrough" {
		t.Fatalf("node = %s %q", n.Kind, n.Content)
	}
	if len(n.Children) != 1 || n.Children[0].Kind != ir.GroupKind {
		t.Fatalf("argument group not attached")
	}
	inner := n.Children[0].Children[0]
	if inner.Kind != ir.MacroKind || inner.Content != "lstinline" {
		t.Fatalf("inner = %s %q", inner.Kind, inner.Content)
	}
	if d, _ := inner.Attr(ir.AttrDelim); d != "!" {
		t.Errorf("delim = %q, want %q", d, "!")
	}
	if inner.Children[0].Content != "some_code" {
		t.Errorf("payload = %q", inner.Children[0].Content)
	}
}

func TestParseCitationKeys(t *testing.T) {
	doc, err := Parse([]byte(`\cite{a, b,c}`))
	if err != nil {
		t.Fatal(err)
	}
	n := doc.Nodes[0]
	if n.Kind != ir.CitationKind {
		t.Fatalf("kind = %s", n.Kind)
	}
	keys := n.AttrList(ir.AttrKeys)
	want := []string{"a", "b", "c"}
	if len(keys) != len(want) {
		t.Fatalf("keys = %v", keys)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("keys[%d] = %q, want %q", i, keys[i], want[i])
		}
	}
	if doc.Meta[ir.MetaContainsCitations] != "true" {
		t.Error("contains-citations metadata not set")
	}
}

func TestParseEnvironment(t *testing.T) {
	doc, err := Parse([]byte(`\begin{figure}[h]\caption{x}\end{figure}`))
	if err != nil {
		t.Fatal(err)
	}
	env := doc.Nodes[0]
	if env.Kind != ir.EnvironmentKind || env.Content != "figure" {
		t.Fatalf("env = %s %q", env.Kind, env.Content)
	}
	if opt, _ := env.Attr(ir.AttrOpt); opt != "h" {
		t.Errorf("opt = %q", opt)
	}
	if len(env.Children) != 1 || env.Children[0].Content != "caption" {
		t.Fatalf("body not parsed")
	}
	if env.EndPos != len(doc.Raw) {
		t.Errorf("env end = %d, want %d", env.EndPos, len(doc.Raw))
	}
}

func TestParsePositions(t *testing.T) {
	doc, err := Parse([]byte("text\n\\emph{x}"))
	if err != nil {
		t.Fatal(err)
	}
	emph := doc.Nodes[1]
	if emph.Line != 2 || emph.Column != 0 {
		t.Errorf("line/col = %d/%d, want 2/0", emph.Line, emph.Column)
	}
}
