// Package keywords holds the static domain vocabulary the filtering
// pipeline matches against: establishment types, context categories,
// dish names, synonym groups and negation words. Ukrainian first,
// English duplicated where users mix languages.
package keywords

// Negations suppress a whole keyword match when one appears within the
// negation window around the keyword ("не хочу піцу").
var Negations = []string{
	"не", "ні", "без", "нема", "немає", "крім", "окрім",
	"no", "not", "without", "dont", "don't", "except",
}

// TypeKeywords maps each establishment-type label to its trigger words.
// Keywords are stems where Ukrainian inflects ("вечер" covers "вечеря",
// "вечерю", "повечеряти"); the matcher anchors them to word starts. The
// weighted variant used by the new pipeline lives in TypeWeights.
var TypeKeywords = map[string][]string{
	"ресторан": {"ресторан", "restaurant", "вечер", "повечерят", "обід"},
	"кав'ярня": {"кав'ярн", "кава", "кави", "каву", "кафе", "coffee", "капучино", "лате", "еспресо", "десерт"},
	"бар":      {"бар", "паб", "пиво", "пива", "коктейл", "випити", "bar", "pub", "beer", "cocktail"},
	"піцерія":  {"піц", "pizza", "pizzeria"},
}

// TypeOrder fixes detection order: most specific first, so unweighted
// ties resolve the same way on every run.
var TypeOrder = []string{"піцерія", "кав'ярня", "бар", "ресторан"}

// TypeWeights orders type detection for the weighted variant: the
// best-weighted match wins outright instead of types accumulating.
// Specific venue kinds outrank the generic "ресторан" triggers.
var TypeWeights = map[string]float64{
	"піцерія":  3,
	"бар":      2,
	"кав'ярня": 2,
	"ресторан": 1,
}

// ContextKeywords maps each context category to its trigger words. The
// context filter scores entries by how many detected categories their
// descriptive fields mention.
var ContextKeywords = map[string][]string{
	"романтика":     {"романт", "побачення", "побач", "двох", "інтим", "date", "romantic"},
	"сім'я":         {"сім", "діт", "родин", "дитя", "family", "kids"},
	"бізнес":        {"бізнес", "ділов", "зустріч", "перемовини", "робоч", "business", "meeting"},
	"друзі":         {"друз", "компані", "тусовка", "friends", "company"},
	"святкування":   {"свят", "день народження", "ювілей", "святкув", "birthday", "celebration"},
	"швидкий візит": {"швидк", "перекус", "забігти", "на ходу", "quick", "fast"},
}

// MenuKeywords is the coarse dish table for the opportunistic menu filter.
// Looser than the dish gate table: recall over precision, because a miss
// here only skips a narrowing step.
var MenuKeywords = []string{
	"борщ", "вареник", "піц", "паст", "суші", "рол", "стейк",
	"салат", "десерт", "кава", "кави", "каву", "бургер", "риб", "м'яс",
	"pizza", "pasta", "sushi", "steak", "salad", "burger", "coffee",
}

// Dishes is the strict, curated dish-to-synonym table for the dish
// availability gate. Precision over recall: a false positive here
// produces a wrong, user-visible "not found" answer.
var Dishes = map[string][]string{
	"борщ":     {"борщ", "borscht"},
	"вареники": {"вареник", "varenyky"},
	"піца":     {"піц", "pizza"},
	"паста":    {"паста", "пасту", "пасти", "спагеті", "pasta", "spaghetti"},
	"суші":     {"суші", "роли", "ролів", "sushi", "rolls"},
	"стейк":    {"стейк", "steak"},
	"бургер":   {"бургер", "burger"},
	"кава":     {"кава", "кави", "каву", "капучино", "лате", "еспресо", "coffee", "cappuccino", "latte", "espresso"},
}

// SynonymGroups expands matcher keywords: when a keyword belongs to a
// group, any other member appearing in the text counts as a discounted
// match.
var SynonymGroups = [][]string{
	{"ресторан", "заклад", "ресторанчик", "restaurant"},
	{"кава", "капучино", "лате", "еспресо", "coffee"},
	{"піца", "піцца", "pizza"},
	{"суші", "роли", "sushi"},
	{"романтика", "побачення", "date"},
	{"швидко", "перекус", "quick"},
	{"друзі", "компанія", "friends"},
}

// SynonymsFor returns the other members of the keyword's synonym group,
// or nil when the keyword belongs to none.
func SynonymsFor(keyword string) []string {
	for _, group := range SynonymGroups {
		for _, member := range group {
			if member == keyword {
				out := make([]string, 0, len(group)-1)
				for _, other := range group {
					if other != keyword {
						out = append(out, other)
					}
				}
				return out
			}
		}
	}
	return nil
}

// Criterion is one row of the comprehensive analyzer table: when any of
// its keywords appear in the user text, entries whose target columns
// mention one of the keywords earn the criterion's weight.
type Criterion struct {
	Name    string
	Words   []string
	Columns []string
	Weight  float64
}

// Criteria is the fixed table the comprehensive analyzer scores against.
var Criteria = []Criterion{
	{Name: "тип:ресторан", Words: TypeKeywords["ресторан"], Columns: []string{"type", "name"}, Weight: 2.0},
	{Name: "тип:кав'ярня", Words: TypeKeywords["кав'ярня"], Columns: []string{"type", "name", "menu"}, Weight: 2.0},
	{Name: "тип:бар", Words: TypeKeywords["бар"], Columns: []string{"type", "name"}, Weight: 2.0},
	{Name: "тип:піцерія", Words: TypeKeywords["піцерія"], Columns: []string{"type", "name", "menu"}, Weight: 2.0},
	{Name: "контекст:романтика", Words: ContextKeywords["романтика"], Columns: []string{"vibe", "aim"}, Weight: 1.5},
	{Name: "контекст:сім'я", Words: ContextKeywords["сім'я"], Columns: []string{"vibe", "aim"}, Weight: 1.5},
	{Name: "контекст:бізнес", Words: ContextKeywords["бізнес"], Columns: []string{"vibe", "aim"}, Weight: 1.5},
	{Name: "контекст:друзі", Words: ContextKeywords["друзі"], Columns: []string{"vibe", "aim"}, Weight: 1.5},
	{Name: "контекст:святкування", Words: ContextKeywords["святкування"], Columns: []string{"vibe", "aim"}, Weight: 1.5},
	{Name: "кухня:українська", Words: []string{"україн", "борщ", "вареник", "ukrainian"}, Columns: []string{"cuisine", "menu"}, Weight: 1.2},
	{Name: "кухня:італійська", Words: []string{"італій", "піц", "паст", "italian"}, Columns: []string{"cuisine", "menu"}, Weight: 1.2},
	{Name: "кухня:японська", Words: []string{"япон", "суші", "рол", "japanese"}, Columns: []string{"cuisine", "menu"}, Weight: 1.2},
	{Name: "кухня:європейська", Words: []string{"європей", "стейк", "european"}, Columns: []string{"cuisine", "menu"}, Weight: 1.2},
	{Name: "страва", Words: MenuKeywords, Columns: []string{"menu"}, Weight: 1.0},
}
