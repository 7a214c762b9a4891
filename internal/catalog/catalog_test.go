package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dukhtravel-jpg/dukh-bot/internal/models"
)

func TestFromRecordCanonicalFields(t *testing.T) {
	entry, ok := FromRecord(map[string]string{
		"name":    "Канапа",
		"address": "Андріївський узвіз 19",
		"type":    "Ресторан",
		"vibe":    "Інтимна атмосфера",
		"aim":     "Для побачень",
		"cuisine": "Українська",
		"menu":    "борщ, вареники",
	})

	require.True(t, ok)
	assert.Equal(t, "Канапа", entry.Name)
	assert.Equal(t, "ресторан", entry.EstablishmentType)
	assert.Equal(t, "Українська", entry.Cuisine)
}

func TestFromRecordUkrainianHeaders(t *testing.T) {
	entry, ok := FromRecord(map[string]string{
		"назва":       "Пузата Хата",
		"адреса":      "вул. Басейна 1/2",
		"тип":         "ресторан",
		"атмосфера":   "Домашня",
		"призначення": "Для сім'ї",
		"кухня":       "Українська",
		"меню":        "борщ, вареники, котлети",
	})

	require.True(t, ok)
	assert.Equal(t, "Пузата Хата", entry.Name)
	assert.Equal(t, "вул. Басейна 1/2", entry.Address)
	assert.Equal(t, "Домашня", entry.Vibe)
	assert.Equal(t, "ресторан", entry.EstablishmentType)
}

func TestFromRecordTrimsWhitespace(t *testing.T) {
	entry, ok := FromRecord(map[string]string{
		"name": "  Канапа  ",
		"тип":  " Ресторан ",
	})

	require.True(t, ok)
	assert.Equal(t, "Канапа", entry.Name)
	assert.Equal(t, "ресторан", entry.EstablishmentType)
}

func TestFromRecordLegacyTypeColumn(t *testing.T) {
	entry, ok := FromRecord(map[string]string{
		"name":   "Старий запис",
		"заклад": "кав'ярня",
	})

	require.True(t, ok)
	assert.Equal(t, "кав'ярня", entry.EstablishmentType)
}

func TestFromRecordWithoutNameDropped(t *testing.T) {
	_, ok := FromRecord(map[string]string{"type": "ресторан"})
	assert.False(t, ok)

	_, ok = FromRecord(map[string]string{"name": "   "})
	assert.False(t, ok)
}

func TestFromRecordRewritesPhotoURL(t *testing.T) {
	entry, ok := FromRecord(map[string]string{
		"name":  "Канапа",
		"photo": "https://drive.google.com/file/d/1AbC-dEf_9/view?usp=sharing",
	})

	require.True(t, ok)
	assert.Equal(t, "https://drive.google.com/uc?export=view&id=1AbC-dEf_9", entry.PhotoURL)
}

func TestConvertDriveURL(t *testing.T) {
	assert.Equal(t,
		"https://drive.google.com/uc?export=view&id=xyz123",
		ConvertDriveURL("https://drive.google.com/file/d/xyz123/view"))

	// Non-Drive URLs and already-direct links pass through untouched.
	assert.Equal(t, "https://example.com/photo.jpg", ConvertDriveURL("https://example.com/photo.jpg"))
	direct := "https://drive.google.com/uc?export=view&id=xyz123"
	assert.Equal(t, direct, ConvertDriveURL(direct))
	assert.Equal(t, "", ConvertDriveURL(""))
}

type stubSource struct {
	entries []*models.CatalogEntry
	err     error
}

func (s *stubSource) Load(context.Context) ([]*models.CatalogEntry, error) {
	return s.entries, s.err
}

func TestReloadUsesSourceEntries(t *testing.T) {
	want := []*models.CatalogEntry{{Name: "Канапа"}}
	c := New(&stubSource{entries: want})

	c.Reload(context.Background())

	assert.Equal(t, want, c.Entries())
}

func TestReloadFallsBackToSeedOnError(t *testing.T) {
	c := New(&stubSource{err: errors.New("sheet unavailable")})

	c.Reload(context.Background())

	entries := c.Entries()
	require.NotEmpty(t, entries)
	assert.Equal(t, len(SeedEntries()), len(entries))
}

func TestReloadFallsBackToSeedWhenEmpty(t *testing.T) {
	c := New(&stubSource{})

	c.Reload(context.Background())

	assert.NotEmpty(t, c.Entries())
}

func TestNilSourceServesSeed(t *testing.T) {
	c := New(nil)

	c.Reload(context.Background())

	assert.NotEmpty(t, c.Entries())
}

func TestSeedEntriesAreUsable(t *testing.T) {
	for _, e := range SeedEntries() {
		assert.NotEmpty(t, e.Name)
		assert.NotEmpty(t, e.EstablishmentType)
		assert.NotEmpty(t, e.Menu)
	}
}
