package parse

import (
	"strconv"

	"github.com/docfix/go-docfix/debug"
	"github.com/docfix/go-docfix/dialect"
	"github.com/docfix/go-docfix/ir"
)

type parseOpts struct {
	dialect dialect.Dialect
}

type ParseOption func(*parseOpts)

func ParseLaTeX() ParseOption {
	return ParseDialect(dialect.LaTeX)
}
func ParseMarkdown() ParseOption {
	return ParseDialect(dialect.Markdown)
}
func ParseBibTeX() ParseOption {
	return ParseDialect(dialect.BibTeX)
}
func ParseDialect(d dialect.Dialect) ParseOption {
	return func(o *parseOpts) { o.dialect = d }
}

// Parse parses d under the configured dialect (LaTeX when none is
// given). The returned document satisfies ir.CheckDocument; non-fatal
// findings are attached to Document.Diags.
func Parse(d []byte, opts ...ParseOption) (*ir.Document, error) {
	pOpts := &parseOpts{dialect: dialect.LaTeX}
	for _, f := range opts {
		f(pOpts)
	}
	doc := ir.NewDocument(d, pOpts.dialect)
	var err error
	switch pOpts.dialect {
	case dialect.LaTeX:
		err = parseLaTeX(doc)
	case dialect.Markdown:
		err = parseMarkdown(doc)
	case dialect.BibTeX:
		err = parseBibTeX(doc)
	}
	if err != nil {
		return nil, err
	}
	doc.SetPositions()
	setMeta(doc)
	if debug.Parse() {
		debug.Logf("parse: %s, %d top-level nodes, %d diagnostics\n",
			doc.Dialect, len(doc.Nodes), len(doc.Diags))
	}
	return doc, nil
}

func setMeta(doc *ir.Document) {
	entries := 0
	doc.Visit(func(n *ir.Node, isPost bool) (bool, error) {
		if isPost {
			return true, nil
		}
		switch n.Kind {
		case ir.MathKind:
			doc.Meta[ir.MetaContainsMath] = "true"
		case ir.CitationKind:
			doc.Meta[ir.MetaContainsCitations] = "true"
		case ir.EntryKind:
			entries++
		}
		return true, nil
	})
	if entries > 0 {
		doc.Meta[ir.MetaEntryCount] = strconv.Itoa(entries)
	}
}
