package recommend

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dukhtravel-jpg/dukh-bot/internal/models"
	"github.com/dukhtravel-jpg/dukh-bot/internal/strategy"
)

// scriptedRanker plays the oracle from a canned reply or error and
// records the prompt it was asked to rank.
type scriptedRanker struct {
	reply  string
	err    error
	called bool
	prompt string
}

func (r *scriptedRanker) Rank(_ context.Context, prompt string) (string, error) {
	r.called = true
	r.prompt = prompt
	if r.err != nil {
		return "", r.err
	}
	return r.reply, nil
}

func testAssemblerConfig() *models.Config {
	return &models.Config{
		MatcherEnabled:  true,
		FuzzyEnabled:    true,
		FuzzyThreshold:  80,
		DishThreshold:   85,
		NegationEnabled: true,
		SynonymsEnabled: true,
		BoundaryEnabled: true,
		AnalyzerTopBand: 0.7,
		ABSplitPercent:  50,
		MaxCandidates:   10,
		Seed:            42,
	}
}

func assemblerEntries() []*models.CatalogEntry {
	return []*models.CatalogEntry{
		{
			Name:              "Канапа",
			EstablishmentType: "ресторан",
			Vibe:              "Інтимна атмосфера",
			Aim:               "Для побачень",
			Cuisine:           "Європейська",
			Menu:              "стейк, риба, десерти",
		},
		{
			Name:              "Кавова Хата",
			EstablishmentType: "кав'ярня",
			Vibe:              "Робоча атмосфера",
			Aim:               "Для швидкого перекусу",
			Cuisine:           "Десерти",
			Menu:              "кава, капучино, чізкейк",
		},
	}
}

func TestRecommendHappyPath(t *testing.T) {
	for _, forced := range []string{"old", "new"} {
		cfg := testAssemblerConfig()
		cfg.ForcedStrategy = forced
		ranker := &scriptedRanker{reply: "Варіанти: [1]\nПріоритет: 1 - ідеально для побачення"}
		a := NewAssembler(cfg, ranker)

		out := a.Recommend(context.Background(), "user-1", "романтичний ресторан", assemblerEntries())

		require.NotNil(t, out.Result, "strategy %s", forced)
		assert.Nil(t, out.NotFound)
		assert.False(t, out.UsedFallback)
		assert.Equal(t, strategy.Strategy(forced), out.Strategy)
		assert.Equal(t, "Канапа", out.Result.Candidates[out.Result.PriorityIndex].Name)
		assert.Equal(t, "ідеально для побачення", out.Result.PriorityExplanation)
		assert.True(t, ranker.called)
		assert.Contains(t, ranker.prompt, "романтичний ресторан")
		assert.Contains(t, ranker.prompt, "Канапа")
	}
}

func TestRecommendTwoCandidatesWithPriority(t *testing.T) {
	cfg := testAssemblerConfig()
	cfg.ForcedStrategy = "old"
	ranker := &scriptedRanker{reply: "Варіанти: [1, 2]\nПріоритет: 2 - тихіше місце"}
	a := NewAssembler(cfg, ranker)

	// Nothing in the request triggers a filter, so both entries reach
	// the oracle and its two-venue answer maps back one to one.
	out := a.Recommend(context.Background(), "user-1", "що порадиш", assemblerEntries())

	require.NotNil(t, out.Result)
	require.Len(t, out.Result.Candidates, 2)
	assert.Equal(t, "Кавова Хата", out.Result.Candidates[out.Result.PriorityIndex].Name)
	assert.Equal(t, "тихіше місце", out.Result.PriorityExplanation)
}

func TestRecommendOracleErrorFallsBack(t *testing.T) {
	cfg := testAssemblerConfig()
	cfg.ForcedStrategy = "old"
	ranker := &scriptedRanker{err: errors.New("oracle down")}
	a := NewAssembler(cfg, ranker)

	out := a.Recommend(context.Background(), "user-1", "романтичний ресторан", assemblerEntries())

	require.NotNil(t, out.Result)
	assert.True(t, out.UsedFallback)
	assert.NotEmpty(t, out.Result.Candidates)
}

func TestRecommendUnparseableReplyFallsBack(t *testing.T) {
	cfg := testAssemblerConfig()
	cfg.ForcedStrategy = "old"
	ranker := &scriptedRanker{reply: "вибач, не можу обрати"}
	a := NewAssembler(cfg, ranker)

	out := a.Recommend(context.Background(), "user-1", "романтичний ресторан", assemblerEntries())

	require.NotNil(t, out.Result)
	assert.True(t, out.UsedFallback)
}

func TestRecommendDishNotFoundShortCircuits(t *testing.T) {
	cfg := testAssemblerConfig()
	cfg.ForcedStrategy = "old"
	ranker := &scriptedRanker{reply: "Варіанти: [1]"}
	a := NewAssembler(cfg, ranker)

	out := a.Recommend(context.Background(), "user-1", "хочу суші", assemblerEntries())

	require.NotNil(t, out.NotFound)
	assert.Nil(t, out.Result)
	assert.Contains(t, out.NotFound.MissingDishes, "суші")
	assert.Contains(t, out.NotFound.Message, "суші")
	assert.False(t, ranker.called)
}

func TestRecommendDishGateNarrowsCandidates(t *testing.T) {
	cfg := testAssemblerConfig()
	cfg.ForcedStrategy = "old"
	ranker := &scriptedRanker{reply: "Варіанти: [1]\nПріоритет: 1 - найкраща кава поруч"}
	a := NewAssembler(cfg, ranker)

	out := a.Recommend(context.Background(), "user-1", "хочу каву", assemblerEntries())

	require.NotNil(t, out.Result)
	assert.Equal(t, "Кавова Хата", out.Result.Candidates[out.Result.PriorityIndex].Name)
	assert.NotContains(t, ranker.prompt, "Канапа")
}

func TestRecommendEmptyCatalog(t *testing.T) {
	cfg := testAssemblerConfig()
	ranker := &scriptedRanker{reply: "Варіанти: [1]"}
	a := NewAssembler(cfg, ranker)

	out := a.Recommend(context.Background(), "user-1", "будь-що", nil)

	assert.Nil(t, out.Result)
	assert.Nil(t, out.NotFound)
	assert.False(t, ranker.called)
}

func TestRecommendCapsCandidateCount(t *testing.T) {
	cfg := testAssemblerConfig()
	cfg.ForcedStrategy = "old"
	cfg.MaxCandidates = 2
	ranker := &scriptedRanker{reply: "Варіанти: [1, 2]\nПріоритет: 1 - перший"}
	a := NewAssembler(cfg, ranker)

	entries := assemblerEntries()
	entries = append(entries, &models.CatalogEntry{Name: "Третій заклад"})

	out := a.Recommend(context.Background(), "user-1", "що порадиш", entries)

	require.NotNil(t, out.Result)
	assert.NotContains(t, ranker.prompt, "Третій заклад")
	assert.Contains(t, ranker.prompt, "1. ")
	assert.Contains(t, ranker.prompt, "2. ")
}
