package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"doordeck/internal/card"
	"doordeck/internal/imagefetch"
	"doordeck/internal/scrape"
)

func TestLoadResidents(t *testing.T) {
	dir := t.TempDir()
	residents := filepath.Join(dir, "residents.csv")
	require.NoError(t, os.WriteFile(residents, []byte("Name,Room\nAnkha,101\nBob,102\nCeleste,103\n"), 0644))

	urls := filepath.Join(dir, "villager_image_urls.json")
	require.NoError(t, scrape.WriteURLs(urls, []string{"https://img/a.png", "https://img/b.png"}))

	paths := filepath.Join(dir, "image_paths.csv")
	require.NoError(t, imagefetch.WritePaths(paths, []imagefetch.Result{
		{Name: "Ankha", Path: "images/Ankha.jpg"},
	}))

	rows, err := Load(Source{Residents: residents, URLsFile: urls, PathsFile: paths})
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, Row{Name: "Ankha", Caption: "101", ImageURL: "https://img/a.png", ImagePath: "images/Ankha.jpg"}, rows[0])
	assert.Equal(t, "https://img/b.png", rows[1].ImageURL)
	assert.Empty(t, rows[1].ImagePath)
	assert.Empty(t, rows[2].ImageURL)
}

func TestLoadMissingOptionalFilesAreIgnored(t *testing.T) {
	dir := t.TempDir()
	residents := filepath.Join(dir, "residents.csv")
	require.NoError(t, os.WriteFile(residents, []byte("Name,Room\nAnkha,101\n"), 0644))

	rows, err := Load(Source{
		Residents: residents,
		URLsFile:  filepath.Join(dir, "nope.json"),
		PathsFile: filepath.Join(dir, "nope.csv"),
	})
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestLoadCards(t *testing.T) {
	cardsFile := filepath.Join(t.TempDir(), "cards.json")
	require.NoError(t, card.WriteCards(cardsFile, []card.Card{
		{Name: "Mega_Knight", ImageURL: "https://img/mk.png", Rarity: card.RarityLegendary},
	}))

	rows, err := Load(Source{Cards: true, CardsFile: cardsFile})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Mega Knight", rows[0].Name)
	assert.Equal(t, "Legendary", rows[0].Caption)
	assert.Equal(t, card.RarityLegendary, rows[0].Rarity)
}
