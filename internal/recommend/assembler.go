// Package recommend orchestrates a single recommendation request: dish
// gate, A/B-selected filter pipeline, oracle ranking, reply parsing and
// the local fallback when the oracle lets us down.
package recommend

import (
	"context"
	"log"

	"github.com/dukhtravel-jpg/dukh-bot/internal/filter"
	"github.com/dukhtravel-jpg/dukh-bot/internal/matcher"
	"github.com/dukhtravel-jpg/dukh-bot/internal/models"
	"github.com/dukhtravel-jpg/dukh-bot/internal/oracle"
	"github.com/dukhtravel-jpg/dukh-bot/internal/strategy"
)

// Outcome is the assembler's answer for one request: exactly one of
// Result and NotFound is set, or neither when the catalog gave the
// pipeline nothing to recommend.
type Outcome struct {
	Result       *models.RecommendationResult
	NotFound     *models.DishNotFound
	Strategy     strategy.Strategy
	UsedFallback bool
}

type Assembler struct {
	cfg       *models.Config
	gate      *filter.DishGate
	selector  *strategy.Selector
	pipelines map[strategy.Strategy]filter.Pipeline
	ranker    oracle.Ranker
	fallback  *Fallback
}

// NewAssembler wires the full request pipeline from configuration. The
// ranker is injected so the oracle-dependent path can run against a
// scripted fake in tests.
func NewAssembler(cfg *models.Config, ranker oracle.Ranker) *Assembler {
	m := matcher.New(matcher.FromConfig(cfg))
	return &Assembler{
		cfg:      cfg,
		gate:     filter.NewDishGate(m, cfg.DishThreshold, cfg.ExtraDishes),
		selector: strategy.NewSelector(cfg.ABSplitPercent, cfg.ForcedStrategy),
		pipelines: map[strategy.Strategy]filter.Pipeline{
			strategy.Old: filter.NewOldPipeline(),
			strategy.New: filter.NewNewPipeline(m, cfg.AnalyzerTopBand),
		},
		ranker:   ranker,
		fallback: NewFallback(cfg.Seed),
	}
}

// Recommend processes one user turn end to end. A nil-Result, nil-NotFound
// outcome means "no recommendation possible" (empty catalog); oracle
// faults never surface here, they fall through to the local selector.
func (a *Assembler) Recommend(ctx context.Context, userID, userText string, entries []*models.CatalogEntry) Outcome {
	strat := a.selector.Select(userID)
	outcome := Outcome{Strategy: strat}

	if len(entries) == 0 {
		return outcome
	}

	gateOutcome, dishes, survivors := a.gate.Check(userText, entries)
	switch gateOutcome {
	case filter.GateNotFound:
		outcome.NotFound = a.gate.NotFoundResult(dishes)
		return outcome
	case filter.GateFiltered:
		entries = survivors
	}

	candidates := a.pipelines[strat].Run(userText, entries)
	if len(candidates) > a.cfg.MaxCandidates && a.cfg.MaxCandidates > 0 {
		candidates = candidates[:a.cfg.MaxCandidates]
	}
	if len(candidates) == 0 {
		// Opportunistic filters never empty the set, so this only
		// happens when the gate survivors were consumed upstream.
		return outcome
	}

	outcome.Result = a.rank(ctx, userText, candidates, &outcome.UsedFallback)
	return outcome
}

// rank asks the oracle once, with the configured timeout, and falls back
// to the local selector on any fault. No retries: a degraded oracle
// should not amplify latency.
func (a *Assembler) rank(ctx context.Context, userText string, candidates []*models.CatalogEntry, usedFallback *bool) *models.RecommendationResult {
	prompt := BuildPrompt(userText, candidates)

	reply, err := a.ranker.Rank(ctx, prompt)
	if err != nil {
		log.Printf("oracle failed, using local fallback: %v", err)
		*usedFallback = true
		return a.fallback.Select(userText, candidates)
	}

	parsed, ok := ParseReply(reply, len(candidates))
	if !ok {
		log.Printf("oracle reply unparseable, using local fallback: %q", reply)
		*usedFallback = true
		return a.fallback.Select(userText, candidates)
	}

	selected := make([]*models.CatalogEntry, len(parsed.Indices))
	priorityIndex := 0
	for i, idx := range parsed.Indices {
		selected[i] = candidates[idx]
		if idx == parsed.PriorityIndex {
			priorityIndex = i
		}
	}
	return &models.RecommendationResult{
		Candidates:          selected,
		PriorityIndex:       priorityIndex,
		PriorityExplanation: parsed.Explanation,
	}
}
