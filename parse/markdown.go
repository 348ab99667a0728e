package parse

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/docfix/go-docfix/ir"
)

// parseMarkdown builds a block-level tree: headings, fenced code blocks,
// lists and paragraphs. Inline links and images are parsed within
// paragraphs; emphasis spans stay inside text runs. The markdown parser
// is total: defects degrade to diagnostics, never to errors.
func parseMarkdown(doc *ir.Document) error {
	p := &mdParser{doc: doc, d: doc.Raw}
	p.splitLines()
	for p.ln < len(p.lines) {
		line := p.lines[p.ln]
		switch {
		case len(bytes.TrimSpace(line.text)) == 0:
			p.ln++
		case isHeading(line.text):
			doc.Append(p.heading())
		case bytes.HasPrefix(line.text, []byte("```")):
			doc.Append(p.codeBlock())
		case isListItem(line.text):
			doc.Append(p.list())
		default:
			doc.Append(p.paragraph())
		}
	}
	return nil
}

type mdLine struct {
	start int
	text  []byte // excludes the trailing newline
}

func (l mdLine) end() int {
	return l.start + len(l.text)
}

type mdParser struct {
	doc   *ir.Document
	d     []byte
	lines []mdLine
	ln    int
}

func (p *mdParser) splitLines() {
	start := 0
	for i, b := range p.d {
		if b == '\n' {
			p.lines = append(p.lines, mdLine{start: start, text: p.d[start:i]})
			start = i + 1
		}
	}
	if start < len(p.d) {
		p.lines = append(p.lines, mdLine{start: start, text: p.d[start:]})
	}
}

func isHeading(line []byte) bool {
	i := 0
	for i < len(line) && line[i] == '#' {
		i++
	}
	return i >= 1 && i <= 6 && i < len(line) && line[i] == ' '
}

func isListItem(line []byte) bool {
	t := line
	if len(t) >= 2 && (t[0] == '-' || t[0] == '*' || t[0] == '+') && t[1] == ' ' {
		return true
	}
	i := 0
	for i < len(t) && t[i] >= '0' && t[i] <= '9' {
		i++
	}
	return i > 0 && i+1 < len(t) && t[i] == '.' && t[i+1] == ' '
}

func (p *mdParser) heading() *ir.Node {
	line := p.lines[p.ln]
	p.ln++
	level := 0
	for level < len(line.text) && line.text[level] == '#' {
		level++
	}
	title := strings.TrimSpace(string(line.text[level:]))
	n := ir.New(ir.HeadingKind, title)
	n.SetAttr(ir.AttrLevel, strconv.Itoa(level))
	n.StartPos, n.EndPos = line.start, line.end()
	return n
}

func (p *mdParser) codeBlock() *ir.Node {
	open := p.lines[p.ln]
	lang := strings.TrimSpace(string(open.text[3:]))
	p.ln++
	bodyStart := p.ln
	for p.ln < len(p.lines) {
		if bytes.HasPrefix(bytes.TrimSpace(p.lines[p.ln].text), []byte("```")) {
			break
		}
		p.ln++
	}
	n := ir.New(ir.CodeBlockKind, "")
	if lang != "" {
		n.SetAttr(ir.AttrLang, lang)
	}
	var body []string
	for i := bodyStart; i < p.ln; i++ {
		body = append(body, string(p.lines[i].text))
	}
	n.Content = strings.Join(body, "\n")
	if p.ln >= len(p.lines) {
		// unterminated fence, take everything to EOF
		p.doc.Diag(ir.Warning, open.start, "unterminated code fence")
		n.StartPos, n.EndPos = open.start, len(p.d)
		return n
	}
	close := p.lines[p.ln]
	p.ln++
	n.StartPos, n.EndPos = open.start, close.end()
	return n
}

func (p *mdParser) list() *ir.Node {
	first := p.lines[p.ln]
	ordered := first.text[0] >= '0' && first.text[0] <= '9'
	n := ir.New(ir.ListKind, "")
	n.SetAttr(ir.AttrOrdered, strconv.FormatBool(ordered))
	for p.ln < len(p.lines) && isListItem(p.lines[p.ln].text) {
		line := p.lines[p.ln]
		p.ln++
		item := ir.New(ir.ListItemKind, itemText(line.text))
		item.StartPos, item.EndPos = line.start, line.end()
		n.AppendChild(item)
	}
	n.StartPos = first.start
	n.EndPos = n.Children[len(n.Children)-1].EndPos
	return n
}

func itemText(line []byte) string {
	if line[0] == '-' || line[0] == '*' || line[0] == '+' {
		return strings.TrimSpace(string(line[1:]))
	}
	i := 0
	for i < len(line) && line[i] >= '0' && line[i] <= '9' {
		i++
	}
	return strings.TrimSpace(string(line[i+1:]))
}

func (p *mdParser) paragraph() *ir.Node {
	first := p.lines[p.ln]
	last := first
	for p.ln < len(p.lines) {
		line := p.lines[p.ln]
		if len(bytes.TrimSpace(line.text)) == 0 ||
			isHeading(line.text) ||
			isListItem(line.text) ||
			bytes.HasPrefix(line.text, []byte("```")) {
			break
		}
		last = line
		p.ln++
	}
	n := ir.New(ir.ParagraphKind, "")
	n.StartPos, n.EndPos = first.start, last.end()
	p.inlines(n)
	return n
}

// inlines splits a paragraph span into text runs and [text](url) links
// or ![alt](url) images.
func (p *mdParser) inlines(par *ir.Node) {
	seg := p.d[par.StartPos:par.EndPos]
	base := par.StartPos
	cur := 0
	for {
		start, isImage, ok := nextInlineStart(seg, cur)
		if !ok {
			break
		}
		textEnd := bytes.IndexByte(seg[start:], ']')
		if textEnd < 0 || start+textEnd+1 >= len(seg) || seg[start+textEnd+1] != '(' {
			cur = start + 1
			continue
		}
		urlEnd := bytes.IndexByte(seg[start+textEnd+1:], ')')
		if urlEnd < 0 {
			cur = start + 1
			continue
		}
		open := start
		if isImage {
			open = start - 1
		}
		if open > 0 {
			par.AppendChild(textRun(base, seg, 0, open))
		}
		end := start + textEnd + 1 + urlEnd + 1
		kind := ir.LinkKind
		if isImage {
			kind = ir.ImageKind
		}
		n := ir.New(kind, "")
		n.SetAttr(ir.AttrText, string(seg[start+1:start+textEnd]))
		n.SetAttr(ir.AttrURL, string(seg[start+textEnd+2:start+textEnd+1+urlEnd]))
		n.StartPos, n.EndPos = base+open, base+end
		par.AppendChild(n)
		base += end
		seg = seg[end:]
		cur = 0
	}
	if len(par.Children) == 0 {
		return
	}
	if base < par.EndPos {
		par.AppendChild(textRun(base, seg, 0, len(seg)))
	}
}

func textRun(base int, seg []byte, from, to int) *ir.Node {
	n := ir.New(ir.TextKind, string(seg[from:to]))
	n.StartPos, n.EndPos = base+from, base+to
	return n
}

// nextInlineStart finds the next '[' at or after cur, reporting whether
// it is preceded by '!' (an image). The returned offset points at '['.
func nextInlineStart(seg []byte, cur int) (int, bool, bool) {
	for i := cur; i < len(seg); i++ {
		if seg[i] == '[' {
			return i, i > 0 && seg[i-1] == '!', true
		}
	}
	return 0, false, false
}
