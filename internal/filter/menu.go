package filter

import (
	"strings"

	"github.com/dukhtravel-jpg/dukh-bot/internal/keywords"
	"github.com/dukhtravel-jpg/dukh-bot/internal/matcher"
	"github.com/dukhtravel-jpg/dukh-bot/internal/models"
)

// MenuFilter narrows entries to those whose menu mentions a dish the
// user asked about. It works off the coarse dish list, not the strict
// dish gate table: a miss here only skips a narrowing step, so recall
// beats precision.
type MenuFilter struct {
	m *matcher.Matcher
}

func NewMenuFilter(m *matcher.Matcher) *MenuFilter {
	return &MenuFilter{m: m}
}

// DetectDishes returns the coarse dish keywords the text mentions.
func (f *MenuFilter) DetectDishes(userText string) []string {
	var detected []string
	for _, kw := range keywords.MenuKeywords {
		if f.m.Match(userText, []string{kw}).Matched {
			detected = append(detected, kw)
		}
	}
	return detected
}

// Apply keeps entries whose menu contains one of the detected dish
// keywords, falling back to the unfiltered input when nothing survives.
func (f *MenuFilter) Apply(userText string, entries []*models.CatalogEntry) []*models.CatalogEntry {
	dishes := f.DetectDishes(userText)
	if len(dishes) == 0 {
		return entries
	}

	var filtered []*models.CatalogEntry
	for _, e := range entries {
		menu := e.Column("menu")
		for _, dish := range dishes {
			if strings.Contains(menu, strings.ToLower(dish)) {
				filtered = append(filtered, e)
				break
			}
		}
	}
	if len(filtered) == 0 {
		return entries
	}
	return filtered
}
