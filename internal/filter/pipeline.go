package filter

import (
	"github.com/dukhtravel-jpg/dukh-bot/internal/matcher"
	"github.com/dukhtravel-jpg/dukh-bot/internal/models"
)

// Pipeline turns user text and the (dish-gated) catalog into an ordered
// candidate list. Two implementations exist for A/B comparison; both run
// after the same dish gate.
type Pipeline interface {
	Name() string
	Run(userText string, entries []*models.CatalogEntry) []*models.CatalogEntry
}

// OldPipeline is the original looser logic: plain-substring matching
// through the type, context and menu filters in sequence.
type OldPipeline struct {
	typeFilter    *TypeFilter
	contextFilter *ContextFilter
	menuFilter    *MenuFilter
}

func NewOldPipeline() *OldPipeline {
	opts := matcher.Default()
	opts.Enabled = false // legacy behaviour: plain substring matching
	m := matcher.New(opts)
	return &OldPipeline{
		typeFilter:    NewTypeFilter(m, false),
		contextFilter: NewContextFilter(m),
		menuFilter:    NewMenuFilter(m),
	}
}

func (p *OldPipeline) Name() string { return "old" }

func (p *OldPipeline) Run(userText string, entries []*models.CatalogEntry) []*models.CatalogEntry {
	out := p.typeFilter.Apply(userText, entries)
	out = p.contextFilter.Apply(userText, out)
	return p.menuFilter.Apply(userText, out)
}

// NewPipeline is the enhanced logic: weighted type detection with the
// full matcher, then the comprehensive multi-column analyzer. When the
// analyzer finds nothing the old pipeline is the safety net, so the new
// logic can only ever narrow better, never answer worse.
type NewPipeline struct {
	typeFilter *TypeFilter
	analyzer   *Analyzer
	fallback   *OldPipeline
}

func NewNewPipeline(m *matcher.Matcher, band float64) *NewPipeline {
	return &NewPipeline{
		typeFilter: NewTypeFilter(m, true),
		analyzer:   NewAnalyzer(m, band),
		fallback:   NewOldPipeline(),
	}
}

func (p *NewPipeline) Name() string { return "new" }

func (p *NewPipeline) Run(userText string, entries []*models.CatalogEntry) []*models.CatalogEntry {
	narrowed := p.typeFilter.Apply(userText, entries)

	found, scored, _ := p.analyzer.Analyze(userText, narrowed)
	if !found {
		return p.fallback.Run(userText, entries)
	}

	out := make([]*models.CatalogEntry, len(scored))
	for i, se := range scored {
		out[i] = se.Entry
	}
	return out
}
