package catalog

import "github.com/dukhtravel-jpg/dukh-bot/internal/models"

// SeedEntries is the embedded fallback catalog used when no external
// source is configured or the configured one is failing. Three venues
// are enough to keep every pipeline branch alive.
func SeedEntries() []*models.CatalogEntry {
	return []*models.CatalogEntry{
		{
			Name:              "Пузата Хата",
			Address:           "вул. Хрещатик, 15",
			Socials:           "@puzatahata",
			EstablishmentType: "ресторан",
			Vibe:              "Домашня атмосфера",
			Aim:               "Для сім'ї",
			Cuisine:           "Українська",
			Menu:              "борщ, вареники, котлети",
		},
		{
			Name:              "Pizza Celentano",
			Address:           "вул. Саксаганського, 121",
			Socials:           "@celentano_ua",
			EstablishmentType: "піцерія",
			Vibe:              "Casual",
			Aim:               "Для друзів",
			Cuisine:           "Італійська",
			Menu:              "піца, паста, салати",
		},
		{
			Name:              "Канапа",
			Address:           "вул. Городецького, 6",
			Socials:           "@kanapa_kyiv",
			EstablishmentType: "ресторан",
			Vibe:              "Інтимна атмосфера",
			Aim:               "Для побачень",
			Cuisine:           "Європейська",
			Menu:              "стейк, риба, десерти",
		},
	}
}
