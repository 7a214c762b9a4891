// Package filter narrows and reorders catalog entries based on what the
// user asked for. Every filter here is opportunistic: when narrowing
// would leave nothing, the unfiltered input is returned instead, so a
// single stage can never dead-end the pipeline. The one exception is the
// dish gate, which enforces a hard user requirement.
package filter

import (
	"strings"

	"github.com/dukhtravel-jpg/dukh-bot/internal/keywords"
	"github.com/dukhtravel-jpg/dukh-bot/internal/matcher"
	"github.com/dukhtravel-jpg/dukh-bot/internal/models"
)

// TypeFilter maps user text onto a closed set of establishment types and
// keeps only entries of the detected type. The weighted variant used by
// the new pipeline picks the best-weighted detected type instead of the
// first one found.
type TypeFilter struct {
	m        *matcher.Matcher
	weighted bool
}

func NewTypeFilter(m *matcher.Matcher, weighted bool) *TypeFilter {
	return &TypeFilter{m: m, weighted: weighted}
}

// DetectType returns the establishment type the text asks for, if any.
// In weighted mode every type is tested and the best-weighted match wins;
// weights override, they do not accumulate.
func (f *TypeFilter) DetectType(userText string) (string, bool) {
	best := ""
	bestScore := 0.0
	for _, label := range keywords.TypeOrder {
		res := f.m.Match(userText, keywords.TypeKeywords[label])
		if !res.Matched {
			continue
		}
		score := res.Confidence
		if f.weighted {
			score *= keywords.TypeWeights[label]
		}
		if score > bestScore {
			best = label
			bestScore = score
		}
	}
	return best, best != ""
}

// Apply narrows entries to the detected type. No detected type or an
// emptied result both leave the input unchanged.
func (f *TypeFilter) Apply(userText string, entries []*models.CatalogEntry) []*models.CatalogEntry {
	label, ok := f.DetectType(userText)
	if !ok {
		return entries
	}

	var filtered []*models.CatalogEntry
	for _, e := range entries {
		if strings.Contains(e.Column("type"), label) {
			filtered = append(filtered, e)
		}
	}
	if len(filtered) == 0 {
		return entries
	}
	return filtered
}
