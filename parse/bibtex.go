package parse

import (
	"strings"

	"github.com/docfix/go-docfix/ir"
	"github.com/docfix/go-docfix/token"
)

// special entry types that carry no citation key
var keylessEntryTypes = map[string]bool{
	"comment":  true,
	"string":   true,
	"preamble": true,
}

// parseBibTeX turns each @type{key, field = value, ...} record into one
// entry node. Text between records is left to gap filling at
// reconstruction time. Field-completeness validation lives in the bib
// package; the parser stays total over well-delimited records.
func parseBibTeX(doc *ir.Document) error {
	d := doc.Raw
	i := 0
	for i < len(d) {
		if d[i] != '@' {
			i++
			continue
		}
		n, next, err := parseEntry(doc, i)
		if err != nil {
			return err
		}
		if n != nil {
			doc.Append(n)
		}
		i = next
	}
	return nil
}

func parseEntry(doc *ir.Document, at int) (*ir.Node, int, error) {
	d := doc.Raw
	j := at + 1
	for j < len(d) && isBibLetter(d[j]) {
		j++
	}
	entryType := strings.ToLower(string(d[at+1 : j]))
	if entryType == "" {
		// stray '@', not a record
		return nil, at + 1, nil
	}
	for j < len(d) && (d[j] == ' ' || d[j] == '\t') {
		j++
	}
	if j >= len(d) || (d[j] != '{' && d[j] != '(') {
		doc.Diag(ir.Warning, at, "entry @"+entryType+" has no body")
		return nil, j, nil
	}
	if d[j] == '(' {
		// parenthesized records are rare enough to reject outright
		return nil, 0, errAt(doc.Pos, j, "parenthesized @%s record not supported", entryType)
	}
	end, err := token.ScanGroupPlain(d, j)
	if err != nil {
		return nil, 0, errAt(doc.Pos, j, "unbalanced %q in @%s record", "{", entryType)
	}
	n := ir.New(ir.EntryKind, entryType)
	n.StartPos, n.EndPos = at, end
	n.SetAttr(ir.AttrType, entryType)
	inner := d[j+1 : end-1]
	if keylessEntryTypes[entryType] {
		return n, end, nil
	}
	parseEntryBody(doc, n, inner, j+1)
	return n, end, nil
}

// parseEntryBody fills the key and field attributes from the record
// body. Malformed fields degrade to diagnostics so one bad field cannot
// lose the rest of the record.
func parseEntryBody(doc *ir.Document, n *ir.Node, body []byte, base int) {
	i := 0
	// citation key runs to the first comma
	comma := indexTopLevel(body, ',')
	if comma < 0 {
		n.SetAttr(ir.AttrKey, strings.TrimSpace(string(body)))
		return
	}
	n.SetAttr(ir.AttrKey, strings.TrimSpace(string(body[:comma])))
	i = comma + 1
	for i < len(body) {
		for i < len(body) && isBibSpace(body[i]) {
			i++
		}
		if i >= len(body) || body[i] == ',' {
			i++
			continue
		}
		nameStart := i
		for i < len(body) && (isBibLetter(body[i]) || body[i] == '-' || body[i] == '_' || isDigit(body[i])) {
			i++
		}
		name := strings.ToLower(string(body[nameStart:i]))
		for i < len(body) && isBibSpace(body[i]) {
			i++
		}
		if name == "" || i >= len(body) || body[i] != '=' {
			doc.Diag(ir.Warning, base+nameStart, "malformed field in @"+n.Content+" record")
			// resync at the next top-level comma
			rest := indexTopLevel(body[i:], ',')
			if rest < 0 {
				return
			}
			i += rest + 1
			continue
		}
		i++
		for i < len(body) && isBibSpace(body[i]) {
			i++
		}
		val, next, ok := scanFieldValue(body, i)
		if !ok {
			doc.Diag(ir.Warning, base+i, "unterminated value for field "+name)
			return
		}
		n.SetAttr(name, val)
		i = next
	}
}

func scanFieldValue(body []byte, i int) (string, int, bool) {
	if i >= len(body) {
		return "", 0, false
	}
	switch body[i] {
	case '{':
		end, err := token.ScanGroupPlain(body, i)
		if err != nil {
			return "", 0, false
		}
		return string(body[i+1 : end-1]), end, true
	case '"':
		for j := i + 1; j < len(body); j++ {
			if body[j] == '\\' {
				j++
				continue
			}
			if body[j] == '"' {
				return string(body[i+1 : j]), j + 1, true
			}
		}
		return "", 0, false
	default:
		j := i
		for j < len(body) && body[j] != ',' && body[j] != '}' {
			j++
		}
		return strings.TrimSpace(string(body[i:j])), j, true
	}
}

// indexTopLevel finds c outside braces and quotes.
func indexTopLevel(body []byte, c byte) int {
	depth := 0
	quoted := false
	for i := 0; i < len(body); i++ {
		switch body[i] {
		case '\\':
			i++
		case '{':
			if !quoted {
				depth++
			}
		case '}':
			if !quoted {
				depth--
			}
		case '"':
			quoted = !quoted
		case c:
			if depth == 0 && !quoted {
				return i
			}
		}
	}
	return -1
}

func isBibLetter(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z'
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isBibSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}
