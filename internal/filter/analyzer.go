package filter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dukhtravel-jpg/dukh-bot/internal/keywords"
	"github.com/dukhtravel-jpg/dukh-bot/internal/matcher"
	"github.com/dukhtravel-jpg/dukh-bot/internal/models"
)

// Analyzer is the comprehensive multi-column scoring pass. Unlike the
// single-criterion filters it does not hard-filter on one detected
// category: every criterion triggered by the user text adds weight to
// every entry whose designated columns mention it, and the top band of
// the resulting ranking survives. Additive scoring captures requests
// that touch several independent signals at once (a drink, a purpose
// and a cuisine) better than sequential hard filtering does.
type Analyzer struct {
	m    *matcher.Matcher
	band float64 // entries within band×topScore of the best are kept
}

const columnBonus = 0.2 // per distinct matching column, on top of the criterion weight

func NewAnalyzer(m *matcher.Matcher, band float64) *Analyzer {
	if band <= 0 || band > 1 {
		band = 0.7
	}
	return &Analyzer{m: m, band: band}
}

// Analyze scores every entry against the criteria the user text
// triggers and returns the top-band entries sorted descending by score.
// found is false when no entry scored at all.
func (a *Analyzer) Analyze(userText string, entries []*models.CatalogEntry) (bool, []models.ScoredEntry, string) {
	var triggered []keywords.Criterion
	for _, c := range keywords.Criteria {
		if a.m.Match(userText, c.Words).Matched {
			triggered = append(triggered, c)
		}
	}
	if len(triggered) == 0 {
		return false, nil, "запит не зачепив жодного критерію"
	}

	scored := make([]models.ScoredEntry, 0, len(entries))
	for _, e := range entries {
		se := models.ScoredEntry{Entry: e}
		for _, c := range triggered {
			cols := a.matchingColumns(e, c)
			if cols == 0 {
				continue
			}
			se.Score += c.Weight + columnBonus*float64(cols)
			se.MatchedCriteria = append(se.MatchedCriteria, c.Name)
		}
		scored = append(scored, se)
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if len(scored) == 0 || scored[0].Score == 0 {
		return false, nil, "жоден заклад не відповідає критеріям"
	}

	threshold := scored[0].Score * a.band
	var relevant []models.ScoredEntry
	for _, se := range scored {
		if se.Score >= threshold {
			relevant = append(relevant, se)
		}
	}

	names := make([]string, 0, len(triggered))
	for _, c := range triggered {
		names = append(names, c.Name)
	}
	explanation := fmt.Sprintf("критерії: %s; поріг %.2f", strings.Join(names, ", "), threshold)
	return true, relevant, explanation
}

// matchingColumns counts the distinct entry columns a criterion's
// keywords appear in.
func (a *Analyzer) matchingColumns(e *models.CatalogEntry, c keywords.Criterion) int {
	count := 0
	for _, col := range c.Columns {
		text := e.Column(col)
		if text == "" {
			continue
		}
		for _, kw := range c.Words {
			if strings.Contains(text, strings.ToLower(kw)) {
				count++
				break
			}
		}
	}
	return count
}
