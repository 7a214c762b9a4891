// Package factories generates synthetic catalog entries for seeding and
// tests.
package factories

import (
	"math/rand"
	"strings"

	"github.com/jaswdr/faker"

	"github.com/dukhtravel-jpg/dukh-bot/internal/models"
)

var fake = faker.New()

var (
	venueTypes = []string{"ресторан", "кав'ярня", "бар", "піцерія"}

	vibesByType = map[string][]string{
		"ресторан": {"Інтимна атмосфера", "Домашня атмосфера", "Класичний інтер'єр", "Панорамний вид"},
		"кав'ярня": {"Затишна атмосфера", "Робоча атмосфера", "Мінімалізм"},
		"бар":      {"Гучна музика", "Камерна атмосфера", "Крафтовий інтер'єр"},
		"піцерія":  {"Casual", "Сімейна атмосфера"},
	}

	aims = []string{"Для побачень", "Для сім'ї", "Для друзів", "Для ділових зустрічей", "Для святкувань", "Для швидкого перекусу"}

	cuisinesByType = map[string][]string{
		"ресторан": {"Українська", "Європейська", "Японська"},
		"кав'ярня": {"Десерти", "Європейська"},
		"бар":      {"Європейська", "Американська"},
		"піцерія":  {"Італійська"},
	}

	menusByCuisine = map[string][]string{
		"Українська":   {"борщ", "вареники", "котлети", "деруни"},
		"Європейська":  {"стейк", "риба", "салати", "десерти"},
		"Японська":     {"суші", "роли", "місо"},
		"Італійська":   {"піца", "паста", "салати"},
		"Десерти":      {"кава", "капучино", "чізкейк", "круасани"},
		"Американська": {"бургер", "картопля фрі", "коктейлі"},
	}
)

type VenueFactory struct{}

// CreateVenue builds one synthetic, internally consistent venue: its
// menu matches its cuisine and its cuisine matches its type, so seeded
// catalogs exercise every filter branch realistically.
func (vf *VenueFactory) CreateVenue(rng *rand.Rand) *models.CatalogEntry {
	venueType := venueTypes[rng.Intn(len(venueTypes))]
	vibes := vibesByType[venueType]
	cuisines := cuisinesByType[venueType]
	cuisine := cuisines[rng.Intn(len(cuisines))]

	return &models.CatalogEntry{
		Name:              fake.Company().Name(),
		Address:           fake.Address().StreetAddress(),
		Socials:           "@" + strings.ToLower(fake.Internet().User()),
		MenuURL:           fake.Internet().URL(),
		EstablishmentType: venueType,
		Vibe:              vibes[rng.Intn(len(vibes))],
		Aim:               aims[rng.Intn(len(aims))],
		Cuisine:           cuisine,
		Menu:              strings.Join(menusByCuisine[cuisine], ", "),
	}
}

// CreateVenues builds a batch of n synthetic venues.
func (vf *VenueFactory) CreateVenues(n int, rng *rand.Rand) []*models.CatalogEntry {
	entries := make([]*models.CatalogEntry, n)
	for i := range entries {
		entries[i] = vf.CreateVenue(rng)
	}
	return entries
}
