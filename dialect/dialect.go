// Package dialect names the input dialects the parsers understand.
package dialect

import (
	"errors"
	"fmt"
)

type Dialect int

const (
	LaTeX Dialect = iota
	Markdown
	BibTeX
)

var ErrBadDialect = errors.New("bad dialect")

func ParseDialect(v string) (Dialect, error) {
	d, ok := map[string]Dialect{
		"tex":      LaTeX,
		"latex":    LaTeX,
		"md":       Markdown,
		"markdown": Markdown,
		"bib":      BibTeX,
		"bibtex":   BibTeX,
	}[v]
	if ok {
		return d, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrBadDialect, v)
}

func (d Dialect) String() string {
	b, err := d.MarshalText()
	if err != nil {
		return err.Error()
	}
	return string(b)
}

func (d Dialect) MarshalText() ([]byte, error) {
	switch d {
	case LaTeX:
		return []byte("latex"), nil
	case Markdown:
		return []byte("markdown"), nil
	case BibTeX:
		return []byte("bibtex"), nil
	default:
		return nil, fmt.Errorf("<err: %d is not a dialect>", d)
	}
}

func (d *Dialect) UnmarshalText(b []byte) error {
	v, err := ParseDialect(string(b))
	if err != nil {
		return err
	}
	*d = v
	return nil
}
