// Package matcher decides whether free-form user text mentions any of a
// set of keywords, combining word-boundary matching, edit-distance fuzzy
// matching, synonym expansion and negation suppression into a single
// confidence-scored answer.
package matcher

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/antzucaro/matchr"

	"github.com/dukhtravel-jpg/dukh-bot/internal/keywords"
	"github.com/dukhtravel-jpg/dukh-bot/internal/models"
)

const (
	negationWindow = 5    // tokens inspected either side of a keyword hit
	negationRatio  = 85.0 // fuzzy ratio above which a token counts as the keyword or a negation

	exactConfidence     = 1.0
	substringConfidence = 0.9 // boundary checking disabled
	fuzzyDiscount       = 0.8
	synonymDiscount     = 0.7
)

// Options control which matching rules are active and how strict the
// fuzzy rule is. The zero value disables everything; use FromConfig or
// Default for a working setup.
type Options struct {
	Enabled         bool // false degrades to plain substring matching
	FuzzyEnabled    bool
	FuzzyThreshold  float64
	NegationEnabled bool
	SynonymsEnabled bool
	BoundaryEnabled bool
}

// FromConfig builds matcher options from the runtime configuration.
func FromConfig(cfg *models.Config) Options {
	return Options{
		Enabled:         cfg.MatcherEnabled,
		FuzzyEnabled:    cfg.FuzzyEnabled,
		FuzzyThreshold:  cfg.FuzzyThreshold,
		NegationEnabled: cfg.NegationEnabled,
		SynonymsEnabled: cfg.SynonymsEnabled,
		BoundaryEnabled: cfg.BoundaryEnabled,
	}
}

// Default returns the options the production pipeline runs with.
func Default() Options {
	return Options{
		Enabled:         true,
		FuzzyEnabled:    true,
		FuzzyThreshold:  80,
		NegationEnabled: true,
		SynonymsEnabled: true,
		BoundaryEnabled: true,
	}
}

type Matcher struct {
	opts Options
}

func New(opts Options) *Matcher {
	return &Matcher{opts: opts}
}

// WithThreshold returns a copy of the matcher with a different fuzzy
// threshold. The dish gate uses this for its stricter vocabulary.
func (m *Matcher) WithThreshold(threshold float64) *Matcher {
	opts := m.opts
	opts.FuzzyThreshold = threshold
	return &Matcher{opts: opts}
}

// Match reports whether text mentions any of the keywords. Empty text or
// an empty keyword set never match and never fail. A negation word found
// near any keyword occurrence suppresses the whole match.
func (m *Matcher) Match(text string, kws []string) models.MatchResult {
	if strings.TrimSpace(text) == "" || len(kws) == 0 {
		return models.MatchResult{}
	}

	lower := strings.ToLower(text)

	if !m.opts.Enabled {
		return m.matchPlain(lower, kws)
	}

	tokens := Tokenize(lower)

	if m.opts.NegationEnabled && m.negated(tokens, kws) {
		return models.MatchResult{}
	}

	result := models.MatchResult{}
	for _, kw := range kws {
		kw = strings.ToLower(kw)
		if kw == "" {
			continue
		}
		if conf, ev := m.matchDirect(lower, tokens, kw); conf > 0 {
			result.Matched = true
			result.Evidence = append(result.Evidence, ev...)
			if conf > result.Confidence {
				result.Confidence = conf
			}
		}
		if !m.opts.SynonymsEnabled {
			continue
		}
		for _, syn := range keywords.SynonymsFor(kw) {
			conf, _ := m.matchDirect(lower, tokens, strings.ToLower(syn))
			if conf <= 0 {
				continue
			}
			conf *= synonymDiscount
			result.Matched = true
			result.Evidence = append(result.Evidence, fmt.Sprintf("synonym:%s→%s", syn, kw))
			if conf > result.Confidence {
				result.Confidence = conf
			}
		}
	}
	return result
}

// matchPlain is the legacy behaviour kept for the old pipeline and for
// old-vs-new comparisons: case-insensitive substring, all or nothing.
func (m *Matcher) matchPlain(lower string, kws []string) models.MatchResult {
	for _, kw := range kws {
		kw = strings.ToLower(kw)
		if kw != "" && strings.Contains(lower, kw) {
			return models.MatchResult{
				Matched:    true,
				Confidence: exactConfidence,
				Evidence:   []string{"substring:" + kw},
			}
		}
	}
	return models.MatchResult{}
}

// matchDirect applies the exact and fuzzy rules for one keyword against
// pre-lowercased text and its tokens.
func (m *Matcher) matchDirect(lower string, tokens []string, kw string) (float64, []string) {
	var conf float64
	var evidence []string

	if m.opts.BoundaryEnabled {
		if containsWord(lower, kw) {
			conf = exactConfidence
			evidence = append(evidence, "exact:"+kw)
		}
	} else if strings.Contains(lower, kw) {
		conf = substringConfidence
		evidence = append(evidence, "substring:"+kw)
	}

	if conf == 0 && m.opts.FuzzyEnabled && runeLen(kw) > 2 {
		for _, tok := range tokens {
			if runeLen(tok) <= 2 {
				continue
			}
			r := Ratio(tok, kw)
			if r >= m.opts.FuzzyThreshold {
				c := r / 100 * fuzzyDiscount
				if c > conf {
					conf = c
				}
				evidence = append(evidence, fmt.Sprintf("fuzzy:%s~%s:%.0f", tok, kw, r))
			}
		}
	}

	return conf, evidence
}

// negated reports whether any keyword occurrence in the token stream has
// a negation word within the negation window around it.
func (m *Matcher) negated(tokens []string, kws []string) bool {
	for i, tok := range tokens {
		if !resemblesAny(tok, kws) {
			continue
		}
		lo := i - negationWindow
		if lo < 0 {
			lo = 0
		}
		hi := i + negationWindow
		if hi >= len(tokens) {
			hi = len(tokens) - 1
		}
		for j := lo; j <= hi; j++ {
			if j != i && resemblesAny(tokens[j], keywords.Negations) {
				return true
			}
		}
	}
	return false
}

func resemblesAny(tok string, words []string) bool {
	for _, w := range words {
		w = strings.ToLower(w)
		if tok == w {
			return true
		}
		// Stem keywords: the token "піцу" counts as a hit for "піц".
		if runeLen(w) > 2 && strings.HasPrefix(tok, w) {
			return true
		}
		if runeLen(tok) > 2 && runeLen(w) > 2 && Ratio(tok, w) > negationRatio {
			return true
		}
	}
	return false
}

// Ratio is the normalized Levenshtein similarity of two strings, 0–100.
func Ratio(a, b string) float64 {
	if a == b {
		return 100
	}
	la, lb := runeLen(a), runeLen(b)
	max := la
	if lb > max {
		max = lb
	}
	if max == 0 {
		return 100
	}
	dist := matchr.Levenshtein(a, b)
	return (1 - float64(dist)/float64(max)) * 100
}

// Tokenize splits lowercased text into letter/digit runs.
func Tokenize(lower string) []string {
	return strings.FieldsFunc(lower, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}

// containsWord reports a word-start occurrence of kw. The keyword tables
// hold stems ("романт" for "романтичний"), so the occurrence may continue
// into the word, but it must not begin mid-word: "кав" never fires inside
// "декавітамінований".
func containsWord(text, kw string) bool {
	for start := 0; ; {
		idx := strings.Index(text[start:], kw)
		if idx < 0 {
			return false
		}
		idx += start
		if boundaryBefore(text, idx) {
			return true
		}
		start = idx + len(kw)
	}
}

func boundaryBefore(text string, idx int) bool {
	if idx == 0 {
		return true
	}
	r := lastRune(text[:idx])
	return !unicode.IsLetter(r) && !unicode.IsNumber(r)
}

func lastRune(s string) rune {
	var last rune
	for _, r := range s {
		last = r
	}
	return last
}

func runeLen(s string) int {
	return len([]rune(s))
}
