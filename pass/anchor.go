package pass

import (
	"strconv"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// anchorGrammar tokenizes link anchor text into words and 4-digit
// numbers so a citation key can be derived from an author surname and a
// publication year.
//
//nolint:govet // participle grammar tags are not standard struct tags
type anchorGrammar struct {
	Parts []anchorPart `@@*`
}

//nolint:govet // participle grammar tags are not standard struct tags
type anchorPart struct {
	Year  *string `  @Year`
	Word  *string `| @Word`
	Other *string `| @Number | @Punct`
}

var anchorLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Year", Pattern: `\d{4}\b`},
	{Name: "Number", Pattern: `\d+`},
	{Name: "Word", Pattern: `[A-Za-z]+`},
	{Name: "Punct", Pattern: `[^\sA-Za-z0-9]+`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var anchorParser = participle.MustBuild[anchorGrammar](
	participle.Lexer(anchorLexer),
	participle.Elide("Whitespace"),
)

// parseAnchor extracts the publication year in [1900,2099] and the
// surname candidate from anchor text. The surname is the first
// capitalized, lowercase-tailed word; empty when no word qualifies.
func parseAnchor(text string) (surname string, year string, ok bool) {
	g, err := anchorParser.ParseString("", text)
	if err != nil {
		return "", "", false
	}
	haveSurname := false
	for _, part := range g.Parts {
		switch {
		case part.Year != nil && year == "":
			v, _ := strconv.Atoi(*part.Year)
			if v >= 1900 && v <= 2099 {
				year = *part.Year
			}
		case part.Word != nil && !haveSurname:
			if isSurname(*part.Word) {
				surname = *part.Word
				haveSurname = true
			}
		}
	}
	if year == "" {
		return "", "", false
	}
	return surname, year, true
}

func isSurname(w string) bool {
	if len(w) < 2 {
		return false
	}
	if w[0] < 'A' || w[0] > 'Z' {
		return false
	}
	for i := 1; i < len(w); i++ {
		if w[i] < 'a' || w[i] > 'z' {
			return false
		}
	}
	return true
}
