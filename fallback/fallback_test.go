package fallback

import (
	"testing"

	"github.com/docfix/go-docfix/pass"
)

func TestCleanDegraded(t *testing.T) {
	// unbalanced input that tree parsing would reject
	in := `{unclosed \passthrough{\lstinline!some_code!} and \caption{ }`
	out, fixes := Clean(in)
	want := `{unclosed \texttt{some_code} and % Empty caption removed`
	if out != want {
		t.Errorf("out = %q, want %q", out, want)
	}
	if len(fixes) != 2 {
		t.Fatalf("fixes = %d, want 2", len(fixes))
	}
	if fixes[0].Pass != pass.FixPassthrough || fixes[1].Pass != pass.ElideEmptyCaption {
		t.Errorf("fix passes = %s, %s", fixes[0].Pass, fixes[1].Pass)
	}
	if fixes[0].Patch == "" {
		t.Error("empty patch")
	}
}

func TestCleanNoop(t *testing.T) {
	in := "plain text with \\emph{markup} but nothing to fix"
	out, fixes := Clean(in)
	if out != in {
		t.Errorf("out = %q, want input unchanged", out)
	}
	if len(fixes) != 0 {
		t.Errorf("fixes = %d, want 0", len(fixes))
	}
}

func TestCleanPassthroughDelims(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`\passthrough{\lstinline!a_b!}`, `\texttt{a_b}`},
		{`\passthrough{\verb|a|}`, `\texttt{a}`},
		{`\passthrough{\Verb+x+}`, `\texttt{x}`},
		{`\passthrough{\lstinline{braced}}`, `\texttt{braced}`},
		// unknown inner macro is left alone
		{`\passthrough{\mystery!x!}`, `\passthrough{\mystery!x!}`},
		// truncated form is left alone rather than guessed at
		{`\passthrough{\lstinline!x`, `\passthrough{\lstinline!x`},
	}
	for _, tt := range tests {
		out, _ := cleanPassthrough(tt.in)
		if out != tt.want {
			t.Errorf("cleanPassthrough(%q) = %q, want %q", tt.in, out, tt.want)
		}
	}
}

func TestCleanEmptyCaptions(t *testing.T) {
	in := "\\caption{}\nkeep \\caption{real}\n\\caption{  \t}\n"
	out, fixes := cleanEmptyCaptions(in)
	want := "% Empty caption removed\nkeep \\caption{real}\n% Empty caption removed\n"
	if out != want {
		t.Errorf("out = %q, want %q", out, want)
	}
	if len(fixes) != 2 {
		t.Errorf("fixes = %d, want 2", len(fixes))
	}
}
