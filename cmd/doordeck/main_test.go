package main

import (
	"bytes"
	"context"
	"fmt"
	"image/color"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"doordeck/internal/card"
	"doordeck/internal/config"
	"doordeck/internal/imagefetch"
	"doordeck/internal/scrape"
)

// setupWorkspace points every hand-off file into a temp dir and resets the
// command flags.
func setupWorkspace(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	cfg = config.DefaultConfig()
	cfg.Scrape.CardsFile = filepath.Join(dir, "clash_royale_card_data.json")
	cfg.Scrape.URLsFile = filepath.Join(dir, "villager_image_urls.json")
	cfg.Scrape.Delay = 0
	cfg.Fetch.ImageDir = filepath.Join(dir, "images")
	cfg.Fetch.PathsFile = filepath.Join(dir, "image_paths.csv")
	cfg.Fetch.Delay = 0
	cfg.Deck.ResidentsFile = filepath.Join(dir, "residents.csv")
	cfg.Deck.Output = filepath.Join(dir, "deck.pptx")
	cfg.Deck.PreviewDir = filepath.Join(dir, "previews")
	logger = zaptest.NewLogger(t)

	cardNamesFile, scrapeOutput, villagerURL = "", "", ""
	fetchCards = false
	deckLayout, deckOutput, deckPreviews = "", "", false
	t.Cleanup(func() { logger = zap.NewNop() })
	return dir
}

func newCmd() (*cobra.Command, *bytes.Buffer) {
	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	return cmd, out
}

func newCardWiki(t *testing.T) *httptest.Server {
	t.Helper()
	var png bytes.Buffer
	require.NoError(t, imaging.Encode(&png, imaging.New(12, 12, color.NRGBA{R: 255, A: 128}), imaging.PNG))

	pages := map[string]string{
		"/wiki/Knight": `<html><body><img alt="Knight Card" src="/img/KnightCard.png">
			<table class="infobox"><tr><th>Rarity</th><td>Common</td></tr></table></body></html>`,
		"/wiki/Monk": `<html><body><img alt="Monk Card" src="/img/MonkCard.png">
			<table class="infobox"><tr><th>Rarity</th><td>Champion</td></tr></table></body></html>`,
		"/wiki/Arena": `<html><body><p>no image</p></body></html>`,
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/img/") {
			w.Write(png.Bytes())
			return
		}
		body, ok := pages[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, body)
	}))
	t.Cleanup(server.Close)
	return server
}

func TestCardPipeline(t *testing.T) {
	dir := setupWorkspace(t)
	server := newCardWiki(t)
	cfg.Scrape.BaseURL = server.URL

	cardNamesFile = filepath.Join(dir, "names.yaml")
	require.NoError(t, os.WriteFile(cardNamesFile, []byte("cards:\n  - Knight\n  - Arena\n  - Monk\n"), 0644))

	cmd, _ := newCmd()
	require.NoError(t, runScrapeCards(cmd, nil))

	cards, err := card.ReadCards(cfg.Scrape.CardsFile)
	require.NoError(t, err)
	require.Len(t, cards, 2)
	assert.Equal(t, "Knight", cards[0].Name)
	assert.Equal(t, card.RarityChampion, cards[1].Rarity)

	fetchCards = true
	require.NoError(t, runFetch(cmd, nil))
	paths, err := imagefetch.ReadPaths(cfg.Fetch.PathsFile)
	require.NoError(t, err)
	assert.Len(t, paths, 2)
	assert.FileExists(t, filepath.Join(cfg.Fetch.ImageDir, "Monk.jpg"))

	deckLayout = "cards"
	deckPreviews = true
	require.NoError(t, runDeck(cmd, nil))
	assert.FileExists(t, cfg.Deck.Output)
	assert.FileExists(t, filepath.Join(cfg.Deck.PreviewDir, "slide-1.png"))
	assert.FileExists(t, filepath.Join(cfg.Deck.PreviewDir, "contact-sheet.png"))
}

func TestScrapeVillagers(t *testing.T) {
	dir := setupWorkspace(t)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<table class="sortable"><tr><td><img data-src="https://static.test/Ankha.png"></td></tr></table>`)
	}))
	defer server.Close()

	villagerURL = server.URL + "/wiki/Villager_list"
	scrapeOutput = filepath.Join(dir, "out.json")

	cmd, _ := newCmd()
	require.NoError(t, runScrapeVillagers(cmd, nil))

	urls, err := scrape.ReadURLs(scrapeOutput)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://static.test/Ankha.png"}, urls)
}

func TestDeckFromResidents(t *testing.T) {
	setupWorkspace(t)
	require.NoError(t, os.WriteFile(cfg.Deck.ResidentsFile, []byte("Room,Name\n101,Ankha\n102,Bob\n103,Celeste\n104,Dom\n"), 0644))

	deckLayout = "classic"
	cmd, _ := newCmd()
	require.NoError(t, runDeck(cmd, nil))
	assert.FileExists(t, cfg.Deck.Output)
	assert.NoDirExists(t, cfg.Deck.PreviewDir)
}

func TestInfo(t *testing.T) {
	dir := setupWorkspace(t)

	require.NoError(t, card.WriteCards(cfg.Scrape.CardsFile, []card.Card{
		{Name: "Mini_P.E.K.K.A.", ImageURL: "https://img/mp.png", Rarity: card.RarityRare},
		{Name: "Monk", ImageURL: "https://img/monk.png", Rarity: card.RarityChampion},
	}))

	cmd, out := newCmd()
	require.NoError(t, runInfo(cmd, nil))
	text := out.String()
	assert.Contains(t, text, "Mini P.E.K.K.A.")
	assert.Contains(t, text, "Champion")
	assert.Contains(t, strings.ToUpper(text), "TOTAL")

	urlsFile := filepath.Join(dir, "urls.json")
	require.NoError(t, scrape.WriteURLs(urlsFile, []string{"https://img/a.png", "https://img/b.png"}))
	cmd, out = newCmd()
	require.NoError(t, runInfo(cmd, []string{urlsFile}))
	assert.Contains(t, out.String(), "https://img/b.png")

	cmd, _ = newCmd()
	assert.Error(t, runInfo(cmd, []string{filepath.Join(dir, "missing.json")}))
}

func TestRootLoadsConfig(t *testing.T) {
	dir := setupWorkspace(t)
	cfgFile := filepath.Join(dir, "doordeck.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("deck:\n  layout: classic\nlog:\n  level: warn\n"), 0644))

	configPath = cfgFile
	defer func() { configPath = "" }()

	require.NoError(t, rootCmd.PersistentPreRunE(rootCmd, nil))
	assert.Equal(t, "classic", cfg.Deck.Layout)
	assert.NotNil(t, logger)
}
