package pass

import (
	"fmt"

	"github.com/goccy/go-yaml"

	"github.com/docfix/go-docfix/ir"
)

// Pipeline is a declarative pass pipeline. It is what batch callers
// load from configuration instead of hardcoding pass order.
type Pipeline struct {
	// Passes run in the listed order. Empty means the default order.
	Passes []ID `yaml:"passes"`
	// PublisherDomains extends the academic-publisher set used by
	// promote-link-citation.
	PublisherDomains []string `yaml:"publisherDomains"`
}

// LoadPipeline decodes a YAML pipeline description and resolves every
// pass id up front, so a bad config fails before any document is
// processed.
func LoadPipeline(d []byte) (*Pipeline, error) {
	p := &Pipeline{}
	if err := yaml.Unmarshal(d, p); err != nil {
		return nil, fmt.Errorf("pipeline config: %w", err)
	}
	if len(p.Passes) == 0 {
		p.Passes = Default()
	}
	for _, id := range p.Passes {
		if Lookup(id) == nil {
			return nil, fmt.Errorf("%w: %q", ErrUnknownPass, id)
		}
	}
	return p, nil
}

// Run applies the pipeline to doc.
func (p *Pipeline) Run(doc *ir.Document) ([]Fix, error) {
	var fixes []Fix
	for _, id := range p.Passes {
		pass := Lookup(id)
		if pass == nil {
			return fixes, fmt.Errorf("%w: %q", ErrUnknownPass, id)
		}
		if id == PromoteLinkCitation && len(p.PublisherDomains) > 0 {
			pass = newLinkCitationPass(p.PublisherDomains)
		}
		fixes = append(fixes, pass.Apply(doc)...)
	}
	return fixes, nil
}
