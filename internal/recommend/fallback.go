package recommend

import (
	"math/rand"
	"sort"
	"strings"
	"sync"

	"github.com/dukhtravel-jpg/dukh-bot/internal/keywords"
	"github.com/dukhtravel-jpg/dukh-bot/internal/models"
)

// Fallback is the local selector used when the oracle times out, errors
// or returns unparseable text. It is total: any non-empty candidate list
// yields a result. Scoring is deterministic context-category overlap,
// with a small seeded random perturbation so near-ties do not always
// resolve to the same venue. One Fallback serves every concurrent
// request, so the generator sits behind a mutex.
type Fallback struct {
	mu  sync.Mutex
	rng *rand.Rand
}

const perturbation = 0.05

func NewFallback(seed int64) *Fallback {
	return &Fallback{rng: rand.New(rand.NewSource(seed))}
}

// perturbations draws n noise values under the lock, so concurrent
// Select calls never touch the generator state simultaneously.
func (f *Fallback) perturbations(n int) []float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]float64, n)
	for i := range out {
		out[i] = f.rng.Float64() * perturbation
	}
	return out
}

// Select picks the top one or two candidates for the request. Candidates
// must be non-empty; the two selected entries are always distinct.
func (f *Fallback) Select(userText string, candidates []*models.CatalogEntry) *models.RecommendationResult {
	if len(candidates) == 0 {
		return nil
	}
	if len(candidates) == 1 {
		return &models.RecommendationResult{
			Candidates:          candidates[:1],
			PriorityIndex:       0,
			PriorityExplanation: "єдиний заклад, що відповідає запиту",
		}
	}

	requested := requestCategories(userText)
	noise := f.perturbations(len(candidates))

	type scored struct {
		entry *models.CatalogEntry
		score float64
	}
	ranked := make([]scored, len(candidates))
	for i, e := range candidates {
		ranked[i] = scored{
			entry: e,
			score: overlapScore(e, requested) + noise[i],
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	return &models.RecommendationResult{
		Candidates:          []*models.CatalogEntry{ranked[0].entry, ranked[1].entry},
		PriorityIndex:       0,
		PriorityExplanation: "найкраще збігається з описаним контекстом",
	}
}

// requestCategories lists the context categories the request text
// mentions, by plain substring over the category keywords.
func requestCategories(userText string) []string {
	lower := strings.ToLower(userText)
	var out []string
	for category, kws := range keywords.ContextKeywords {
		for _, kw := range kws {
			if strings.Contains(lower, strings.ToLower(kw)) {
				out = append(out, category)
				break
			}
		}
	}
	return out
}

// overlapScore counts the requested categories the entry's vibe and aim
// fields also mention.
func overlapScore(e *models.CatalogEntry, requested []string) float64 {
	text := strings.ToLower(e.Vibe + " " + e.Aim)
	score := 0.0
	for _, category := range requested {
		for _, kw := range keywords.ContextKeywords[category] {
			if strings.Contains(text, strings.ToLower(kw)) {
				score++
				break
			}
		}
	}
	return score
}
