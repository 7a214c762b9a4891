// Package catalog loads and normalizes the venue catalog. All source
// field-name variants are resolved here, once, at load time; downstream
// components rely on a single canonical CatalogEntry shape and never
// see a missing field.
package catalog

import (
	"context"
	"log"
	"regexp"
	"strings"
	"sync"

	"github.com/dukhtravel-jpg/dukh-bot/internal/models"
)

// Source is anything that can produce raw catalog entries: a Google
// Sheet, a Postgres table, or the embedded seed data.
type Source interface {
	Load(ctx context.Context) ([]*models.CatalogEntry, error)
}

// Catalog is the in-memory, reloadable view of the venue list the
// filtering pipeline works on. Entries are immutable between reloads.
type Catalog struct {
	source Source

	mu      sync.RWMutex
	entries []*models.CatalogEntry
}

func New(source Source) *Catalog {
	return &Catalog{source: source}
}

// Reload pulls fresh entries from the source. A failing or empty source
// degrades to the embedded seed catalog with a warning; the bot keeps
// answering either way.
func (c *Catalog) Reload(ctx context.Context) {
	entries, err := c.load(ctx)
	if err != nil {
		log.Printf("catalog load failed, using seed data: %v", err)
		entries = SeedEntries()
	}
	if len(entries) == 0 {
		log.Printf("catalog source is empty, using seed data")
		entries = SeedEntries()
	}

	c.mu.Lock()
	c.entries = entries
	c.mu.Unlock()
	log.Printf("catalog loaded: %d entries", len(entries))
}

func (c *Catalog) load(ctx context.Context) ([]*models.CatalogEntry, error) {
	if c.source == nil {
		return SeedEntries(), nil
	}
	return c.source.Load(ctx)
}

// Entries returns the current snapshot. The slice is shared; callers
// must not mutate it.
func (c *Catalog) Entries() []*models.CatalogEntry {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.entries
}

// typeColumns lists the source column names an establishment type may
// arrive under, oldest sheet era first.
var typeColumns = []string{"type", "тип", "заклад"}

// FromRecord normalizes one raw source record into a CatalogEntry.
// Records without a name are invalid and dropped by the caller.
func FromRecord(rec map[string]string) (*models.CatalogEntry, bool) {
	get := func(keys ...string) string {
		for _, k := range keys {
			if v, ok := rec[k]; ok && strings.TrimSpace(v) != "" {
				return strings.TrimSpace(v)
			}
		}
		return ""
	}

	name := get("name", "назва")
	if name == "" {
		return nil, false
	}

	return &models.CatalogEntry{
		Name:              name,
		Address:           get("address", "адреса"),
		Socials:           get("socials", "соцмережі"),
		MenuURL:           get("menu_url", "меню_посилання"),
		PhotoURL:          ConvertDriveURL(get("photo", "photo_url", "фото")),
		EstablishmentType: strings.ToLower(get(typeColumns...)),
		Vibe:              get("vibe", "атмосфера"),
		Aim:               get("aim", "призначення"),
		Cuisine:           get("cuisine", "кухня"),
		Menu:              get("menu", "меню"),
	}, true
}

var driveFileRe = regexp.MustCompile(`/file/d/([a-zA-Z0-9-_]+)`)

// ConvertDriveURL rewrites a Google Drive share link into a direct image
// URL the chat transport can embed. Non-Drive URLs pass through as is.
func ConvertDriveURL(url string) string {
	if url == "" || !strings.Contains(url, "drive.google.com") {
		return url
	}
	if m := driveFileRe.FindStringSubmatch(url); m != nil {
		return "https://drive.google.com/uc?export=view&id=" + m[1]
	}
	return url
}
