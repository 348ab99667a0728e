// Package fallback is the degraded mode used when tree parsing fails.
//
// Clean performs a reduced subset of the rewrite passes with plain
// string search instead of tree rewriting. It is total: it never fails
// and returns its input unchanged when no safe fix is found.
package fallback

import (
	"regexp"
	"strings"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"

	"github.com/docfix/go-docfix/pass"
)

var emptyCaptionRE = regexp.MustCompile(`\\caption\{\s*\}`)

const emptyCaptionComment = "% Empty caption removed"

// Clean applies the textual fixes to text and reports what changed.
func Clean(text string) (string, []pass.Fix) {
	var fixes []pass.Fix
	out, fs := cleanPassthrough(text)
	fixes = append(fixes, fs...)
	out, fs = cleanEmptyCaptions(out)
	fixes = append(fixes, fs...)
	return out, fixes
}

// cleanPassthrough rewrites \passthrough{\lstinline<d>code<d>} to
// \texttt{code} for any single-byte delimiter <d>. A manual scan is
// used because the delimiter is self-referential, which regular
// expressions here cannot express.
func cleanPassthrough(text string) (string, []pass.Fix) {
	var fixes []pass.Fix
	var b strings.Builder
	i := 0
	for {
		j := indexPassthrough(text, i)
		if j < 0 {
			b.WriteString(text[i:])
			break
		}
		code, end, ok := scanPassthrough(text, j)
		if !ok {
			b.WriteString(text[i : j+1])
			i = j + 1
			continue
		}
		b.WriteString(text[i:j])
		after := `\texttt{` + code + `}`
		b.WriteString(after)
		fixes = append(fixes, textFix(pass.FixPassthrough,
			"Fixed passthrough command", j, text[j:end], after))
		i = end
	}
	return b.String(), fixes
}

func indexPassthrough(text string, from int) int {
	k := strings.Index(text[from:], `\passthrough{\`)
	if k < 0 {
		return -1
	}
	return from + k
}

// scanPassthrough reads \passthrough{\NAME<d>code<d>} at j and returns
// the verbatim payload and the end offset.
func scanPassthrough(text string, j int) (string, int, bool) {
	i := j + len(`\passthrough{\`)
	nameStart := i
	for i < len(text) && isLetter(text[i]) {
		i++
	}
	switch text[nameStart:i] {
	case "lstinline", "verb", "Verb":
	default:
		return "", 0, false
	}
	if i >= len(text) {
		return "", 0, false
	}
	delim := text[i]
	var close byte = delim
	if delim == '{' {
		close = '}'
	}
	i++
	codeStart := i
	for i < len(text) && text[i] != close {
		i++
	}
	if i >= len(text) {
		return "", 0, false
	}
	code := text[codeStart:i]
	i++
	if i >= len(text) || text[i] != '}' {
		return "", 0, false
	}
	return code, i + 1, true
}

func cleanEmptyCaptions(text string) (string, []pass.Fix) {
	var fixes []pass.Fix
	locs := emptyCaptionRE.FindAllStringIndex(text, -1)
	if locs == nil {
		return text, nil
	}
	var b strings.Builder
	prev := 0
	for _, loc := range locs {
		b.WriteString(text[prev:loc[0]])
		b.WriteString(emptyCaptionComment)
		fixes = append(fixes, textFix(pass.ElideEmptyCaption,
			"Removed empty caption", loc[0], text[loc[0]:loc[1]], emptyCaptionComment))
		prev = loc[1]
	}
	b.WriteString(text[prev:])
	return b.String(), fixes
}

func textFix(id pass.ID, msg string, off int, before, after string) pass.Fix {
	dmp := diffpatch.New()
	return pass.Fix{
		Pass:    id,
		Message: msg,
		Offset:  off,
		Before:  before,
		After:   after,
		Patch:   dmp.PatchToText(dmp.PatchMake(before, after)),
	}
}

func isLetter(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z'
}
