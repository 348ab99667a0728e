package pass

import (
	"errors"
	"fmt"

	"github.com/docfix/go-docfix/debug"
	"github.com/docfix/go-docfix/ir"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

var ErrUnknownPass = errors.New("unknown pass")

// ID names a registered pass.
type ID string

const (
	FixPassthrough      ID = "fix-passthrough"
	FlattenEmphasis     ID = "flatten-emphasis"
	ElideEmptyCaption   ID = "elide-empty-caption"
	PromoteLinkCitation ID = "promote-link-citation"
)

// Fix records one rewrite for audit. Patch is a textual patch of the
// rewritten region in diff-match-patch format.
type Fix struct {
	Pass    ID
	Message string
	Offset  int
	Line    int
	Before  string
	After   string
	Patch   string
}

// Pass is one rewrite rule. Apply mutates doc in place and returns the
// fixes made; it never fails. Applying a pass to its own output yields
// no fixes.
type Pass interface {
	ID() ID
	Apply(doc *ir.Document) []Fix
}

var registry = map[ID]Pass{}

func Register(p Pass) {
	registry[p.ID()] = p
}

func Lookup(id ID) Pass {
	return registry[id]
}

func init() {
	Register(&passthroughPass{})
	Register(&emphasisPass{})
	Register(&captionPass{})
	Register(newLinkCitationPass(nil))
}

// Default returns the stock pipeline order.
func Default() []ID {
	return []ID{
		FixPassthrough,
		FlattenEmphasis,
		ElideEmptyCaption,
		PromoteLinkCitation,
	}
}

// Run applies the named passes in order, threading the fix log through
// explicitly. Unknown ids abort before any pass has run.
func Run(doc *ir.Document, ids ...ID) ([]Fix, error) {
	passes := make([]Pass, 0, len(ids))
	for _, id := range ids {
		p := Lookup(id)
		if p == nil {
			return nil, fmt.Errorf("%w: %q", ErrUnknownPass, id)
		}
		passes = append(passes, p)
	}
	var fixes []Fix
	for _, p := range passes {
		fs := p.Apply(doc)
		if debug.Pass() {
			debug.Logf("pass %s: %d fixes\n", p.ID(), len(fs))
		}
		fixes = append(fixes, fs...)
	}
	return fixes, nil
}

func makeFix(id ID, n *ir.Node, msg, before, after string) Fix {
	dmp := diffpatch.New()
	patches := dmp.PatchMake(before, after)
	return Fix{
		Pass:    id,
		Message: msg,
		Offset:  n.StartPos,
		Line:    n.Line,
		Before:  before,
		After:   after,
		Patch:   dmp.PatchToText(patches),
	}
}
