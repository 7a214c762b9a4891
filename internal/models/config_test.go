package models

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadExtraDishData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dishes.tsv")
	content := "dish\tsynonyms\n" +
		"хінкалі\tхінкалі, khinkali\n" +
		"шаурма\tшаурма, шаверма\n" +
		"\t\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	var cfg Config
	require.NoError(t, cfg.LoadExtraDishData(path))

	require.Len(t, cfg.ExtraDishes, 2)
	assert.Equal(t, "хінкалі", cfg.ExtraDishes[0].Name)
	assert.Equal(t, []string{"хінкалі", "khinkali"}, cfg.ExtraDishes[0].Synonyms)
	assert.Equal(t, []string{"шаурма", "шаверма"}, cfg.ExtraDishes[1].Synonyms)
}

func TestLoadExtraDishDataMissingFile(t *testing.T) {
	var cfg Config
	assert.Error(t, cfg.LoadExtraDishData("/nonexistent/dishes.tsv"))
}
