package pass

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/docfix/go-docfix/ir"
	"github.com/docfix/go-docfix/parse"
	"github.com/docfix/go-docfix/reconstruct"
)

func mustParse(t *testing.T, in string) *ir.Document {
	t.Helper()
	doc, err := parse.Parse([]byte(in))
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

func runOne(t *testing.T, in string, id ID) (string, []Fix) {
	t.Helper()
	doc := mustParse(t, in)
	fixes, err := Run(doc, id)
	if err != nil {
		t.Fatal(err)
	}
	if err := ir.CheckDocument(doc); err != nil {
		t.Fatalf("after %s: %v", id, err)
	}
	return reconstruct.Reconstruct(doc), fixes
}

func TestFixPassthrough(t *testing.T) {
	in := `pre \passthrough{\lstinline!some_code!} post`
	out, fixes := runOne(t, in, FixPassthrough)
	if want := `pre \texttt{some_code} post`; out != want {
		t.Errorf("out = %q, want %q", out, want)
	}
	if len(fixes) != 1 {
		t.Fatalf("fixes = %d, want 1", len(fixes))
	}
	f := fixes[0]
	if f.Message != "Fixed passthrough command" {
		t.Errorf("message = %q", f.Message)
	}
	if f.Offset != 4 {
		t.Errorf("offset = %d, want 4", f.Offset)
	}
	if f.Patch == "" {
		t.Error("empty patch")
	}
}

func TestFixPassthroughVerbDelim(t *testing.T) {
	out, fixes := runOne(t, `\passthrough{\verb|a_b|}`, FixPassthrough)
	if want := `\texttt{a_b}`; out != want {
		t.Errorf("out = %q, want %q", out, want)
	}
	if len(fixes) != 1 {
		t.Errorf("fixes = %d, want 1", len(fixes))
	}
}

func TestFlattenEmphasis(t *testing.T) {
	out, fixes := runOne(t, `\emph{\emph{inner} outer}`, FlattenEmphasis)
	if want := `\emph{{inner} outer}`; out != want {
		t.Errorf("out = %q, want %q", out, want)
	}
	if len(fixes) != 1 {
		t.Fatalf("fixes = %d, want 1", len(fixes))
	}
	if n := strings.Count(out, `\emph{`); n != 1 {
		t.Errorf("emph wrappers = %d, want 1", n)
	}
}

func TestFlattenEmphasisDeep(t *testing.T) {
	out, _ := runOne(t, `\emph{a \emph{b \emph{c}} d}`, FlattenEmphasis)
	if n := strings.Count(out, `\emph{`); n != 1 {
		t.Errorf("emph wrappers = %d in %q, want 1", n, out)
	}
	for _, frag := range []string{"a ", "{b ", "{c}", " d"} {
		if !strings.Contains(out, frag) {
			t.Errorf("output %q lost %q", out, frag)
		}
	}
}

func TestElideEmptyCaption(t *testing.T) {
	in := "\\begin{figure}\n\\caption{}\n\\end{figure}"
	out, fixes := runOne(t, in, ElideEmptyCaption)
	want := "\\begin{figure}\n% Empty caption removed\n\\end{figure}"
	if out != want {
		t.Errorf("out = %q, want %q", out, want)
	}
	if len(fixes) != 1 || fixes[0].Message != "Removed empty caption" {
		t.Errorf("fixes = %+v", fixes)
	}
}

func TestElideEmptyCaptionKeepsNonEmpty(t *testing.T) {
	ins := []string{
		`\caption{Real title}`,
		`\caption{ x }`,
		`\caption{}{trailing}`, // second group is not part of the match
	}
	for _, in := range ins {
		out, fixes := runOne(t, in, ElideEmptyCaption)
		if len(fixes) != 0 {
			t.Errorf("%q: fixes = %d, want 0", in, len(fixes))
		}
		if out != in {
			t.Errorf("%q: out = %q, want input unchanged", in, out)
		}
	}
}

func TestPromoteLinkCitation(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{
			in:   `see \href{https://doi.org/10.1/x}{Smith 2020}.`,
			want: `see \citep{Smith2020}.`,
		},
		{
			in:   `\href{https://dl.acm.org/doi/10.1145/1}{Jones et al. 1999}`,
			want: `\citep{Jones1999}`,
		},
		{
			in:   `\href{https://arxiv.org/abs/1234.5}{the 2020 report}`,
			want: `\citep{unknown}`,
		},
		{
			// non-publisher host stays a link
			in:   `\href{https://example.org/x}{Smith 2020}`,
			want: `\href{https://example.org/x}{Smith 2020}`,
		},
		{
			// no year, no promotion
			in:   `\href{https://doi.org/10.1/x}{click here}`,
			want: `\href{https://doi.org/10.1/x}{click here}`,
		},
	}
	for _, tt := range tests {
		out, _ := runOne(t, tt.in, PromoteLinkCitation)
		if out != tt.want {
			t.Errorf("%q: out = %q, want %q", tt.in, out, tt.want)
		}
	}
}

func TestParseAnchor(t *testing.T) {
	tests := []struct {
		in      string
		surname string
		year    string
		ok      bool
	}{
		{"Smith 2020", "Smith", "2020", true},
		{"Jones et al. (1999)", "Jones", "1999", true},
		{"see MÜLLER 2001", "", "2001", true}, // all-caps word is not a surname
		{"the 2020 report", "", "2020", true},
		{"no year here", "", "", false},
		{"3000 AD", "", "", false}, // out of the plausible range
	}
	for _, tt := range tests {
		surname, year, ok := parseAnchor(tt.in)
		if surname != tt.surname || year != tt.year || ok != tt.ok {
			t.Errorf("parseAnchor(%q) = (%q,%q,%v), want (%q,%q,%v)",
				tt.in, surname, year, ok, tt.surname, tt.year, tt.ok)
		}
	}
}

func TestDefaultPipeline(t *testing.T) {
	in := strings.Join([]string{
		`\passthrough{\lstinline!x!}`,
		`\emph{\emph{a} b}`,
		`\begin{figure}`,
		`\caption{}`,
		`\end{figure}`,
		`\href{https://doi.org/1}{Doe 2019}`,
	}, "\n")
	doc := mustParse(t, in)
	fixes, err := Run(doc, Default()...)
	if err != nil {
		t.Fatal(err)
	}
	if len(fixes) != 4 {
		t.Fatalf("fixes = %d, want 4", len(fixes))
	}
	if err := ir.CheckDocument(doc); err != nil {
		t.Fatal(err)
	}
	out := reconstruct.Reconstruct(doc)
	for _, frag := range []string{
		`\texttt{x}`,
		`\emph{{a} b}`,
		"% Empty caption removed",
		`\citep{Doe2019}`,
	} {
		if !strings.Contains(out, frag) {
			t.Errorf("output missing %q:\n%s", frag, out)
		}
	}

	// second run over the already-fixed tree is a no-op
	again, err := Run(doc, Default()...)
	if err != nil {
		t.Fatal(err)
	}
	if len(again) != 0 {
		t.Errorf("second run made %d fixes, want 0", len(again))
	}
}

func TestRunUnknownPass(t *testing.T) {
	doc := mustParse(t, "x")
	_, err := Run(doc, ID("nope"))
	if !errors.Is(err, ErrUnknownPass) {
		t.Errorf("err = %v, want ErrUnknownPass", err)
	}
}

func TestLoadPipeline(t *testing.T) {
	cfg := []byte("passes:\n  - fix-passthrough\npublisherDomains:\n  - press.example.edu\n")
	p, err := LoadPipeline(cfg)
	if err != nil {
		t.Fatal(err)
	}
	want := &Pipeline{
		Passes:           []ID{FixPassthrough},
		PublisherDomains: []string{"press.example.edu"},
	}
	if diff := cmp.Diff(want, p); diff != "" {
		t.Errorf("pipeline mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadPipelineDefaults(t *testing.T) {
	p, err := LoadPipeline([]byte("{}"))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(Default(), p.Passes); diff != "" {
		t.Errorf("passes mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadPipelineBadID(t *testing.T) {
	_, err := LoadPipeline([]byte("passes:\n  - no-such-pass\n"))
	if !errors.Is(err, ErrUnknownPass) {
		t.Errorf("err = %v, want ErrUnknownPass", err)
	}
}

func TestPipelineExtraDomains(t *testing.T) {
	p := &Pipeline{
		Passes:           []ID{PromoteLinkCitation},
		PublisherDomains: []string{"press.example.edu"},
	}
	doc := mustParse(t, `\href{https://press.example.edu/x}{Doe 2019}`)
	fixes, err := p.Run(doc)
	if err != nil {
		t.Fatal(err)
	}
	if len(fixes) != 1 {
		t.Fatalf("fixes = %d, want 1", len(fixes))
	}
	if out := reconstruct.Reconstruct(doc); out != `\citep{Doe2019}` {
		t.Errorf("out = %q", out)
	}
}
