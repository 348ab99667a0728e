// Package bib checks bibliographic records for field completeness.
//
// Validation is a pure function over the parsed tree and deliberately
// separate from parsing, which stays total: a record with missing
// fields still parses, it just validates with findings.
package bib

import (
	"fmt"

	"github.com/docfix/go-docfix/ir"
	"github.com/docfix/go-docfix/parse"
)

// requiredFields per entry type. Types not listed validate with no
// required fields beyond the citation key.
var requiredFields = map[string][]string{
	"article":       {"author", "title", "journal", "year"},
	"book":          {"author", "title", "publisher", "year"},
	"inproceedings": {"author", "title", "booktitle", "year"},
	"incollection":  {"author", "title", "booktitle", "year"},
	"phdthesis":     {"author", "title", "school", "year"},
	"mastersthesis": {"author", "title", "school", "year"},
	"techreport":    {"author", "title", "institution", "year"},
	"misc":          {"title"},
}

// entry types that need no key or fields at all
var exemptTypes = map[string]bool{
	"comment":  true,
	"string":   true,
	"preamble": true,
}

// Validate parses text as bibliographic records and returns one message
// per completeness defect. A parse failure yields its message as the
// single finding; Validate itself never fails.
func Validate(text string) []string {
	doc, err := parse.Parse([]byte(text), parse.ParseBibTeX())
	if err != nil {
		return []string{err.Error()}
	}
	return ValidateDocument(doc)
}

// ValidateDocument checks an already parsed document.
func ValidateDocument(doc *ir.Document) []string {
	var msgs []string
	for _, n := range doc.Nodes {
		if n.Kind != ir.EntryKind {
			continue
		}
		typ, _ := n.Attr(ir.AttrType)
		if exemptTypes[typ] {
			continue
		}
		key, _ := n.Attr(ir.AttrKey)
		if key == "" {
			msgs = append(msgs, fmt.Sprintf("@%s record at line %d: missing citation key", typ, n.Line))
			key = "?"
		}
		for _, field := range requiredFields[typ] {
			if v, ok := n.Attr(field); !ok || v == "" {
				msgs = append(msgs, fmt.Sprintf("entry %q (@%s): missing required field %q", key, typ, field))
			}
		}
	}
	return msgs
}
