package pass

import (
	"strings"

	"github.com/docfix/go-docfix/ir"
	"github.com/docfix/go-docfix/reconstruct"
)

// academic publisher hosts whose links get promoted to citations
var publisherDomains = []string{
	"doi.org",
	"dl.acm.org",
	"acm.org",
	"ieee.org",
	"ieeexplore.ieee.org",
	"springer.com",
	"link.springer.com",
	"sciencedirect.com",
	"wiley.com",
	"onlinelibrary.wiley.com",
	"nature.com",
	"arxiv.org",
	"jstor.org",
	"tandfonline.com",
	"academic.oup.com",
	"journals.sagepub.com",
	"pubmed.ncbi.nlm.nih.gov",
}

// linkCitationPass promotes \href links pointing at academic publishers
// to \citep citations. The citation key is SurnameYear derived from the
// anchor text; the literal key "unknown" is used when no surname
// candidate exists, so the pass never fails on odd anchors.
type linkCitationPass struct {
	domains []string
}

func newLinkCitationPass(extraDomains []string) *linkCitationPass {
	return &linkCitationPass{
		domains: append(append([]string(nil), publisherDomains...), extraDomains...),
	}
}

func (p *linkCitationPass) ID() ID {
	return PromoteLinkCitation
}

func (p *linkCitationPass) Apply(doc *ir.Document) []Fix {
	type match struct {
		n   *ir.Node
		key string
	}
	var matches []match
	doc.Visit(func(n *ir.Node, isPost bool) (bool, error) {
		if isPost {
			return true, nil
		}
		if n.Kind != ir.LinkKind || n.Content != "href" {
			return true, nil
		}
		url, _ := n.Attr(ir.AttrURL)
		if !p.academicHost(url) {
			return true, nil
		}
		text, _ := n.Attr(ir.AttrText)
		surname, year, ok := parseAnchor(text)
		if !ok {
			return true, nil
		}
		key := surname + year
		if surname == "" {
			key = "unknown"
		}
		matches = append(matches, match{n: n, key: key})
		return false, nil
	})
	var fixes []Fix
	for _, m := range matches {
		n := m.n
		before := string(doc.Slice(n))
		n.Kind = ir.CitationKind
		n.Content = "citep"
		n.DelAttr(ir.AttrURL)
		n.DelAttr(ir.AttrText)
		n.SetAttrList(ir.AttrKeys, []string{m.key})
		n.MarkModified("Promoted hyperlink to citation")
		fixes = append(fixes, makeFix(PromoteLinkCitation, n,
			"Promoted hyperlink to citation", before, reconstruct.Synthesize(doc, n)))
	}
	return fixes
}

// academicHost reports whether the URL's host is one of the known
// publisher domains or a subdomain of one.
func (p *linkCitationPass) academicHost(url string) bool {
	host := url
	if i := strings.Index(host, "://"); i >= 0 {
		host = host[i+3:]
	}
	if i := strings.IndexAny(host, "/?#"); i >= 0 {
		host = host[:i]
	}
	host = strings.ToLower(host)
	host = strings.TrimPrefix(host, "www.")
	for _, d := range p.domains {
		if host == d || strings.HasSuffix(host, "."+d) {
			return true
		}
	}
	return false
}
