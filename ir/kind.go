package ir

import "fmt"

// Kind discriminates what a Node means. The set is closed per dialect;
// attribute keys are only valid for the kinds listed in validAttrs.
type Kind int

const (
	TextKind Kind = iota
	MacroKind
	CitationKind
	EnvironmentKind
	MathKind
	CommentKind
	GroupKind
	HeadingKind
	LinkKind
	ImageKind
	ListKind
	ListItemKind
	TableKind
	CodeBlockKind
	ParagraphKind
	EntryKind
)

var kindNames = map[Kind]string{
	TextKind:        "text",
	MacroKind:       "macro",
	CitationKind:    "citation",
	EnvironmentKind: "environment",
	MathKind:        "math",
	CommentKind:     "comment",
	GroupKind:       "group",
	HeadingKind:     "heading",
	LinkKind:        "link",
	ImageKind:       "image",
	ListKind:        "list",
	ListItemKind:    "listitem",
	TableKind:       "table",
	CodeBlockKind:   "codeblock",
	ParagraphKind:   "paragraph",
	EntryKind:       "entry",
}

func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return fmt.Sprintf("<err: %d is not a kind>", int(k))
}

func Kinds() []Kind {
	res := make([]Kind, 0, len(kindNames))
	for k := TextKind; k <= EntryKind; k++ {
		res = append(res, k)
	}
	return res
}

func ParseKind(v string) (Kind, error) {
	for k, n := range kindNames {
		if n == v {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrBadKind, v)
}
