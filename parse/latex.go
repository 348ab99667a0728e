package parse

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/docfix/go-docfix/ir"
	"github.com/docfix/go-docfix/token"
)

var citationMacros = map[string]bool{
	"cite":       true,
	"citep":      true,
	"citet":      true,
	"autocite":   true,
	"textcite":   true,
	"parencite":  true,
	"citeauthor": true,
	"citeyear":   true,
}

var verbatimMacros = map[string]bool{
	"verb":      true,
	"Verb":      true,
	"lstinline": true,
}

var headingLevels = map[string]int{
	"part":          1,
	"chapter":       1,
	"title":         1,
	"section":       1,
	"subsection":    2,
	"subsubsection": 3,
	"paragraph":     4,
	"subparagraph":  5,
}

type texParser struct {
	doc *ir.Document
	d   []byte
	i   int
}

func parseLaTeX(doc *ir.Document) error {
	p := &texParser{doc: doc, d: doc.Raw}
	nodes, err := p.sequence(false, "", 0)
	if err != nil {
		return err
	}
	for _, n := range nodes {
		doc.Append(n)
	}
	return nil
}

// sequence parses elements until EOF, or until an unconsumed '}' when
// stopBrace is set, or until an unconsumed \end{env} when env is
// non-empty. openOff is the offset of the opener being balanced, used
// for error reporting.
func (p *texParser) sequence(stopBrace bool, env string, openOff int) ([]*ir.Node, error) {
	var nodes []*ir.Node
	for p.i < len(p.d) {
		c := p.d[p.i]
		if stopBrace && c == '}' {
			return nodes, nil
		}
		if env != "" && c == '\\' && p.atEnvEnd(env) {
			return nodes, nil
		}
		n, err := p.element()
		if err != nil {
			return nil, err
		}
		if n != nil {
			nodes = append(nodes, n)
		}
	}
	if stopBrace {
		return nil, errAt(p.doc.Pos, openOff, "unbalanced %q", "{")
	}
	if env != "" {
		return nil, errAt(p.doc.Pos, openOff, "unclosed environment %q", env)
	}
	return nodes, nil
}

func (p *texParser) atEnvEnd(env string) bool {
	return bytes.HasPrefix(p.d[p.i:], []byte(`\end{`+env+`}`))
}

func (p *texParser) element() (*ir.Node, error) {
	switch p.d[p.i] {
	case '\\':
		return p.macro()
	case '{':
		return p.group()
	case '}':
		return nil, errAt(p.doc.Pos, p.i, "unbalanced %q", "}")
	case '$':
		return p.math()
	case '%':
		return p.comment(), nil
	default:
		return p.text(), nil
	}
}

func (p *texParser) text() *ir.Node {
	start := p.i
	for p.i < len(p.d) {
		switch p.d[p.i] {
		case '\\', '{', '}', '$', '%':
			goto done
		}
		p.i++
	}
done:
	n := ir.New(ir.TextKind, string(p.d[start:p.i]))
	n.StartPos, n.EndPos = start, p.i
	return n
}

// comment spans from '%' to the end of line, newline excluded. Content
// holds everything after the '%'.
func (p *texParser) comment() *ir.Node {
	start := p.i
	for p.i < len(p.d) && p.d[p.i] != '\n' {
		p.i++
	}
	n := ir.New(ir.CommentKind, string(p.d[start+1:p.i]))
	n.StartPos, n.EndPos = start, p.i
	return n
}

func (p *texParser) math() (*ir.Node, error) {
	start := p.i
	delim := "$"
	if bytes.HasPrefix(p.d[p.i:], []byte("$$")) {
		delim = "$$"
	}
	inner, end, ok := p.scanTo(start+len(delim), delim)
	if !ok {
		return nil, errAt(p.doc.Pos, start, "unterminated math span")
	}
	p.i = end
	n := ir.New(ir.MathKind, inner)
	n.SetAttr(ir.AttrDelim, delim)
	n.StartPos, n.EndPos = start, p.i
	return n, nil
}

// scanTo finds the next unescaped occurrence of close at or after from.
// Returns the intervening text and the offset one past the close.
func (p *texParser) scanTo(from int, close string) (string, int, bool) {
	j := from
	for j < len(p.d) {
		if bytes.HasPrefix(p.d[j:], []byte(close)) {
			return string(p.d[from:j]), j + len(close), true
		}
		if p.d[j] == '\\' {
			j += 2
			continue
		}
		j++
	}
	return "", 0, false
}

func (p *texParser) macro() (*ir.Node, error) {
	start := p.i
	j := p.i + 1
	if j >= len(p.d) {
		p.i = j
		n := ir.New(ir.TextKind, `\`)
		n.StartPos, n.EndPos = start, j
		return n, nil
	}
	switch p.d[j] {
	case '[':
		inner, end, ok := p.scanTo(j+1, `\]`)
		if !ok {
			return nil, errAt(p.doc.Pos, start, "unterminated math span")
		}
		p.i = end
		n := ir.New(ir.MathKind, inner)
		n.SetAttr(ir.AttrDelim, `\[`)
		n.StartPos, n.EndPos = start, p.i
		return n, nil
	case '(':
		inner, end, ok := p.scanTo(j+1, `\)`)
		if !ok {
			return nil, errAt(p.doc.Pos, start, "unterminated math span")
		}
		p.i = end
		n := ir.New(ir.MathKind, inner)
		n.SetAttr(ir.AttrDelim, `\(`)
		n.StartPos, n.EndPos = start, p.i
		return n, nil
	}
	if !isTexLetter(p.d[j]) {
		// single-char control sequence, e.g. \% \{ \\
		p.i = j + 1
		n := ir.New(ir.MacroKind, string(p.d[j]))
		n.StartPos, n.EndPos = start, p.i
		return n, nil
	}
	for j < len(p.d) && isTexLetter(p.d[j]) {
		j++
	}
	name := string(p.d[start+1 : j])
	p.i = j
	switch {
	case name == "begin":
		return p.environment(start)
	case name == "end":
		return nil, errAt(p.doc.Pos, start, `unexpected \end`)
	case verbatimMacros[name]:
		return p.verbatim(start, name)
	case citationMacros[name]:
		return p.citation(start, name)
	case name == "href":
		return p.href(start)
	case name == "url":
		return p.urlMacro(start)
	case name == "includegraphics":
		return p.image(start)
	}
	if _, ok := headingLevels[name]; ok && p.i < len(p.d) && p.d[p.i] == '{' {
		return p.heading(start, name)
	}
	return p.genericMacro(start, name)
}

func (p *texParser) group() (*ir.Node, error) {
	open := p.i
	p.i++
	children, err := p.sequence(true, "", open)
	if err != nil {
		return nil, err
	}
	// sequence stopped on '}'
	p.i++
	n := ir.New(ir.GroupKind, "")
	n.StartPos, n.EndPos = open, p.i
	for _, c := range children {
		n.AppendChild(c)
	}
	return n, nil
}

// rawGroup returns the inner text of the balanced group at p.i without
// building nodes. Used for arguments treated as opaque, like URLs.
func (p *texParser) rawGroup() (string, error) {
	end, err := token.ScanGroup(p.d, p.i)
	if err != nil {
		return "", errAt(p.doc.Pos, p.i, "unbalanced %q", string(p.d[p.i]))
	}
	inner := string(p.d[p.i+1 : end-1])
	p.i = end
	return inner, nil
}

func (p *texParser) environment(start int) (*ir.Node, error) {
	if p.i >= len(p.d) || p.d[p.i] != '{' {
		return nil, errAt(p.doc.Pos, start, `malformed \begin`)
	}
	envName, err := p.rawGroup()
	if err != nil {
		return nil, err
	}
	envName = strings.TrimSpace(envName)
	n := ir.New(ir.EnvironmentKind, envName)
	if p.i < len(p.d) && p.d[p.i] == '[' {
		opt, err := p.rawGroup()
		if err != nil {
			return nil, err
		}
		n.SetAttr(ir.AttrOpt, opt)
	}
	body, err := p.sequence(false, envName, start)
	if err != nil {
		return nil, err
	}
	// sequence stopped on \end{envName}
	p.i += len(`\end{` + envName + `}`)
	n.StartPos, n.EndPos = start, p.i
	for _, c := range body {
		n.AppendChild(c)
	}
	return n, nil
}

// verbatim handles \verb|..| and \lstinline!..! style macros whose
// argument is bounded by an arbitrary delimiter byte, or by a balanced
// group when the delimiter is '{'. The argument is kept as a text child
// so rewrites can lift it out.
func (p *texParser) verbatim(start int, name string) (*ir.Node, error) {
	if p.i >= len(p.d) {
		return nil, errAt(p.doc.Pos, start, `missing delimiter after \%s`, name)
	}
	delim := p.d[p.i]
	var innerStart, innerEnd, end int
	if delim == '{' {
		e, err := token.ScanGroup(p.d, p.i)
		if err != nil {
			return nil, errAt(p.doc.Pos, p.i, "unbalanced %q", "{")
		}
		innerStart, innerEnd, end = p.i+1, e-1, e
	} else {
		j := bytes.IndexByte(p.d[p.i+1:], delim)
		if j < 0 {
			return nil, errAt(p.doc.Pos, p.i, `unterminated \%s`, name)
		}
		innerStart, innerEnd, end = p.i+1, p.i+1+j, p.i+1+j+1
	}
	n := ir.New(ir.MacroKind, name)
	n.SetAttr(ir.AttrDelim, string(delim))
	n.StartPos, n.EndPos = start, end
	arg := ir.New(ir.TextKind, string(p.d[innerStart:innerEnd]))
	arg.StartPos, arg.EndPos = innerStart, innerEnd
	n.AppendChild(arg)
	p.i = end
	return n, nil
}

func (p *texParser) citation(start int, name string) (*ir.Node, error) {
	var opt string
	hasOpt := false
	if p.i < len(p.d) && p.d[p.i] == '[' {
		v, err := p.rawGroup()
		if err != nil {
			return nil, err
		}
		opt, hasOpt = v, true
	}
	if p.i >= len(p.d) || p.d[p.i] != '{' {
		return p.genericMacro(start, name)
	}
	raw, err := p.rawGroup()
	if err != nil {
		return nil, err
	}
	keys := strings.Split(raw, ",")
	for i := range keys {
		keys[i] = strings.TrimSpace(keys[i])
	}
	n := ir.New(ir.CitationKind, name)
	n.SetAttrList(ir.AttrKeys, keys)
	if hasOpt {
		// the pre-note, e.g. \citep[see]{key}; kept raw
		n.SetAttr(ir.AttrOpt, opt)
	}
	n.StartPos, n.EndPos = start, p.i
	return n, nil
}

func (p *texParser) href(start int) (*ir.Node, error) {
	if p.i >= len(p.d) || p.d[p.i] != '{' {
		return p.genericMacro(start, "href")
	}
	url, err := p.rawGroup()
	if err != nil {
		return nil, err
	}
	if p.i >= len(p.d) || p.d[p.i] != '{' {
		return nil, errAt(p.doc.Pos, start, `\href missing anchor argument`)
	}
	text, err := p.rawGroup()
	if err != nil {
		return nil, err
	}
	n := ir.New(ir.LinkKind, "href")
	n.SetAttr(ir.AttrURL, url)
	n.SetAttr(ir.AttrText, text)
	n.StartPos, n.EndPos = start, p.i
	return n, nil
}

func (p *texParser) urlMacro(start int) (*ir.Node, error) {
	if p.i >= len(p.d) || p.d[p.i] != '{' {
		return p.genericMacro(start, "url")
	}
	url, err := p.rawGroup()
	if err != nil {
		return nil, err
	}
	n := ir.New(ir.LinkKind, "url")
	n.SetAttr(ir.AttrURL, url)
	n.StartPos, n.EndPos = start, p.i
	return n, nil
}

func (p *texParser) image(start int) (*ir.Node, error) {
	n := ir.New(ir.ImageKind, "includegraphics")
	if p.i < len(p.d) && p.d[p.i] == '[' {
		opt, err := p.rawGroup()
		if err != nil {
			return nil, err
		}
		n.SetAttr(ir.AttrOpt, opt)
	}
	if p.i >= len(p.d) || p.d[p.i] != '{' {
		return p.genericMacro(start, "includegraphics")
	}
	path, err := p.rawGroup()
	if err != nil {
		return nil, err
	}
	n.SetAttr(ir.AttrURL, path)
	n.StartPos, n.EndPos = start, p.i
	return n, nil
}

func (p *texParser) heading(start int, name string) (*ir.Node, error) {
	n := ir.New(ir.HeadingKind, name)
	n.SetAttr(ir.AttrLevel, strconv.Itoa(headingLevels[name]))
	title, err := p.group()
	if err != nil {
		return nil, err
	}
	n.StartPos, n.EndPos = start, p.i
	n.AppendChild(title)
	return n, nil
}

// genericMacro attaches an optional bracket argument and any directly
// following balanced brace groups as argument children. Arguments are
// bound at parse time so passes need no sibling lookahead.
func (p *texParser) genericMacro(start int, name string) (*ir.Node, error) {
	n := ir.New(ir.MacroKind, name)
	if p.i < len(p.d) && p.d[p.i] == '[' {
		opt, err := p.rawGroup()
		if err != nil {
			return nil, err
		}
		n.SetAttr(ir.AttrOpt, opt)
	}
	for {
		k := p.i
		for k < len(p.d) && (p.d[k] == ' ' || p.d[k] == '\t') {
			k++
		}
		if k >= len(p.d) || p.d[k] != '{' {
			break
		}
		p.i = k
		arg, err := p.group()
		if err != nil {
			return nil, err
		}
		n.AppendChild(arg)
	}
	n.StartPos, n.EndPos = start, p.i
	return n, nil
}

func isTexLetter(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z'
}
