package filter

import (
	"sort"
	"strings"

	"github.com/dukhtravel-jpg/dukh-bot/internal/keywords"
	"github.com/dukhtravel-jpg/dukh-bot/internal/matcher"
	"github.com/dukhtravel-jpg/dukh-bot/internal/models"
)

// ContextFilter detects context categories (romantic, family, business,
// friends, celebration, quick) in the user text and reorders entries by
// how many of those categories their descriptive fields mention. It
// reorders more than it removes: every entry is kept, zero-score ones at
// the tail.
type ContextFilter struct {
	m *matcher.Matcher
}

func NewContextFilter(m *matcher.Matcher) *ContextFilter {
	return &ContextFilter{m: m}
}

// DetectCategories returns every context category the text triggers.
func (f *ContextFilter) DetectCategories(userText string) []string {
	var detected []string
	for _, category := range contextOrder {
		if f.m.Match(userText, keywords.ContextKeywords[category]).Matched {
			detected = append(detected, category)
		}
	}
	return detected
}

// Apply sorts entries descending by context score. With no detected
// categories the input is returned unchanged.
func (f *ContextFilter) Apply(userText string, entries []*models.CatalogEntry) []*models.CatalogEntry {
	categories := f.DetectCategories(userText)
	if len(categories) == 0 {
		return entries
	}

	scored := make([]models.ScoredEntry, len(entries))
	for i, e := range entries {
		scored[i] = models.ScoredEntry{Entry: e, Score: float64(f.entryScore(e, categories))}
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	out := make([]*models.CatalogEntry, len(scored))
	for i, s := range scored {
		out[i] = s.Entry
	}
	return out
}

// entryScore counts the detected categories whose keywords appear in the
// entry's descriptive fields.
func (f *ContextFilter) entryScore(e *models.CatalogEntry, categories []string) int {
	text := e.ContextText()
	score := 0
	for _, category := range categories {
		for _, kw := range keywords.ContextKeywords[category] {
			if strings.Contains(text, strings.ToLower(kw)) {
				score++
				break
			}
		}
	}
	return score
}

// contextOrder keeps category detection deterministic; map iteration
// order would make evidence and tie-breaks flap between runs.
var contextOrder = []string{"романтика", "сім'я", "бізнес", "друзі", "святкування", "швидкий візит"}
