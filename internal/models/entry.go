package models

import "strings"

// CatalogEntry is one recommendable venue. Entries are normalized once at
// load time and never mutated afterwards; every field except Name defaults
// to the empty string so downstream string operations never hit a nil.
type CatalogEntry struct {
	Name              string `json:"name"`
	Address           string `json:"address"`
	Socials           string `json:"socials"`
	MenuURL           string `json:"menu_url"`
	PhotoURL          string `json:"photo_url"`
	EstablishmentType string `json:"establishment_type"`
	Vibe              string `json:"vibe"`
	Aim               string `json:"aim"`
	Cuisine           string `json:"cuisine"`
	Menu              string `json:"menu"`
}

// Column returns the named descriptive column of the entry, lowercased.
// Unknown column names yield the empty string.
func (e *CatalogEntry) Column(name string) string {
	switch name {
	case "name":
		return strings.ToLower(e.Name)
	case "type":
		return strings.ToLower(e.EstablishmentType)
	case "vibe":
		return strings.ToLower(e.Vibe)
	case "aim":
		return strings.ToLower(e.Aim)
	case "cuisine":
		return strings.ToLower(e.Cuisine)
	case "menu":
		return strings.ToLower(e.Menu)
	default:
		return ""
	}
}

// ContextText is the concatenation of the descriptive fields the context
// filter scores against.
func (e *CatalogEntry) ContextText() string {
	return strings.ToLower(e.Vibe + " " + e.Aim + " " + e.Cuisine + " " + e.Name)
}

// ScoredEntry pairs an entry with its accumulated relevance score.
// Transient, produced per request by the analyzer and filters.
type ScoredEntry struct {
	Entry           *CatalogEntry
	Score           float64
	MatchedCriteria []string
}

// MatchResult is the outcome of one keyword-set match against user text.
type MatchResult struct {
	Matched    bool
	Confidence float64
	Evidence   []string
}

// RecommendationResult is the assembler's answer: one or two candidates,
// one of them marked as the priority, plus the oracle's (or fallback's)
// explanation. Candidates is never empty and PriorityIndex always indexes
// into it.
type RecommendationResult struct {
	Candidates          []*CatalogEntry
	PriorityIndex       int
	PriorityExplanation string
}

// Priority returns the candidate marked as the primary recommendation.
func (r *RecommendationResult) Priority() *CatalogEntry {
	return r.Candidates[r.PriorityIndex]
}

// DishNotFound reports that the user asked for specific dishes that no
// catalog entry serves. It is a first-class outcome, distinct from a
// generic empty result.
type DishNotFound struct {
	MissingDishes []string
	Message       string
}
