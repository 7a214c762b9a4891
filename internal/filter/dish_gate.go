package filter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dukhtravel-jpg/dukh-bot/internal/keywords"
	"github.com/dukhtravel-jpg/dukh-bot/internal/matcher"
	"github.com/dukhtravel-jpg/dukh-bot/internal/models"
)

// GateOutcome is what the dish gate decided about a request.
type GateOutcome int

const (
	// GateNone: no specific dish requested, run the normal pipeline.
	GateNone GateOutcome = iota
	// GateFiltered: requested dishes exist somewhere; only entries
	// serving them survive. The one exclusionary filter in the system.
	GateFiltered
	// GateNotFound: requested dishes exist nowhere in the catalog.
	GateNotFound
)

// DishGate detects requests for a specific dish and turns them into a
// hard requirement: either only venues serving the dish survive, or the
// whole request short-circuits into an explicit not-found answer. Its
// vocabulary is stricter than the menu filter's because a false positive
// here produces a wrong, user-visible message.
type DishGate struct {
	m      *matcher.Matcher
	dishes map[string][]string
}

// NewDishGate builds the gate from the built-in dish table plus any
// externally configured extra dishes.
func NewDishGate(m *matcher.Matcher, threshold float64, extra []models.DishEntry) *DishGate {
	dishes := make(map[string][]string, len(keywords.Dishes)+len(extra))
	for name, syns := range keywords.Dishes {
		dishes[name] = append([]string(nil), syns...)
	}
	for _, d := range extra {
		if d.Name == "" || len(d.Synonyms) == 0 {
			continue
		}
		dishes[strings.ToLower(d.Name)] = append(dishes[strings.ToLower(d.Name)], d.Synonyms...)
	}
	return &DishGate{m: m.WithThreshold(threshold), dishes: dishes}
}

// Detect returns the dish names the user text explicitly asks for.
func (g *DishGate) Detect(userText string) []string {
	var requested []string
	for _, name := range sortedDishNames(g.dishes) {
		if g.m.Match(userText, g.dishes[name]).Matched {
			requested = append(requested, name)
		}
	}
	return requested
}

// Check runs the gate against the catalog. For GateFiltered the returned
// entries are the survivors; for GateNotFound the returned names are the
// dishes nobody serves; for GateNone both are nil.
func (g *DishGate) Check(userText string, entries []*models.CatalogEntry) (GateOutcome, []string, []*models.CatalogEntry) {
	requested := g.Detect(userText)
	if len(requested) == 0 {
		return GateNone, nil, nil
	}

	var survivors []*models.CatalogEntry
	for _, e := range entries {
		if g.serves(e, requested) {
			survivors = append(survivors, e)
		}
	}
	if len(survivors) == 0 {
		return GateNotFound, requested, nil
	}
	return GateFiltered, requested, survivors
}

// NotFoundResult builds the user-visible outcome for dishes the catalog
// does not have.
func (g *DishGate) NotFoundResult(missing []string) *models.DishNotFound {
	return &models.DishNotFound{
		MissingDishes: missing,
		Message: fmt.Sprintf(
			"На жаль, у наших закладах немає: %s. Спробуйте описати побажання інакше!",
			strings.Join(missing, ", ")),
	}
}

// serves reports whether the entry's menu mentions any synonym of any
// requested dish.
func (g *DishGate) serves(e *models.CatalogEntry, requested []string) bool {
	menu := e.Column("menu")
	for _, name := range requested {
		for _, syn := range g.dishes[name] {
			if strings.Contains(menu, strings.ToLower(syn)) {
				return true
			}
		}
	}
	return false
}

// sortedDishNames keeps detection order stable across runs; map
// iteration order would make the reported dish list flap.
func sortedDishNames(dishes map[string][]string) []string {
	names := make([]string, 0, len(dishes))
	for name := range dishes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
