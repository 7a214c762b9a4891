package recommend

import (
	"fmt"
	"strings"

	"github.com/dukhtravel-jpg/dukh-bot/internal/models"
)

// BuildPrompt renders the candidate list and the selection instructions
// the oracle reply parser expects. Candidates are numbered from 1; the
// oracle answers with those numbers.
func BuildPrompt(userText string, candidates []*models.CatalogEntry) string {
	var b strings.Builder
	b.WriteString("Користувач шукає заклад: \"")
	b.WriteString(userText)
	b.WriteString("\"\n\nДоступні заклади:\n")

	for i, e := range candidates {
		b.WriteString(fmt.Sprintf("%d. %s", i+1, e.Name))
		if e.EstablishmentType != "" {
			b.WriteString(" (" + e.EstablishmentType + ")")
		}
		b.WriteString("\n")
		writeField(&b, "Атмосфера", e.Vibe)
		writeField(&b, "Призначення", e.Aim)
		writeField(&b, "Кухня", e.Cuisine)
		writeField(&b, "Меню", e.Menu)
	}

	b.WriteString("\nОбери один або два найкращі варіанти для цього запиту.\n")
	b.WriteString("Відповідай строго у форматі:\n")
	b.WriteString("Варіанти: [номери через кому]\n")
	b.WriteString("Пріоритет: номер - коротке пояснення чому\n")
	return b.String()
}

func writeField(b *strings.Builder, label, value string) {
	if value != "" {
		b.WriteString("   " + label + ": " + value + "\n")
	}
}
