package bot

import (
	"fmt"
	"log"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/dukhtravel-jpg/dukh-bot/internal/models"
)

// sendRecommendation renders the result as an HTML card, with the photo
// attached when the venue has one. A failed photo send degrades to a
// text-only message rather than losing the recommendation.
func (b *Bot) sendRecommendation(chatID int64, result *models.RecommendationResult) {
	entry := result.Priority()
	text := renderEntry(entry)

	if result.PriorityExplanation != "" {
		text += "\n\n💡 " + result.PriorityExplanation
	}
	if alt := alternative(result); alt != nil {
		text += fmt.Sprintf("\n\n🔄 <b>Альтернатива:</b> %s", alt.Name)
		if alt.Address != "" {
			text += ", " + alt.Address
		}
	}

	if strings.HasPrefix(entry.PhotoURL, "http") {
		photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileURL(entry.PhotoURL))
		photo.Caption = text
		photo.ParseMode = tgbotapi.ModeHTML
		if _, err := b.api.Send(photo); err == nil {
			return
		}
		log.Printf("photo send failed for %s, falling back to text", entry.Name)
	}

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("failed to send recommendation: %v", err)
	}
}

func renderEntry(e *models.CatalogEntry) string {
	var b strings.Builder
	b.WriteString("<b>" + e.Name + "</b>")
	if e.Address != "" {
		b.WriteString("\n\n📍 <b>Адреса:</b> " + e.Address)
	}
	if e.Socials != "" {
		b.WriteString("\n\n📱 <b>Соц-мережі:</b> " + e.Socials)
	}
	if e.Vibe != "" {
		b.WriteString("\n\n✨ <b>Атмосфера:</b> " + e.Vibe)
	}
	if e.Cuisine != "" {
		b.WriteString("\n\n🍽 <b>Кухня:</b> " + e.Cuisine)
	}
	if strings.HasPrefix(e.MenuURL, "http") {
		b.WriteString(fmt.Sprintf("\n\n📋 <a href='%s'>Переглянути меню</a>", e.MenuURL))
	}
	return b.String()
}

func alternative(result *models.RecommendationResult) *models.CatalogEntry {
	for i, c := range result.Candidates {
		if i != result.PriorityIndex {
			return c
		}
	}
	return nil
}
