package scrape

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"doordeck/internal/card"
)

const base = "https://clashroyale.fandom.com"

func parse(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestExtractCardImageCascade(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{
			name: "alt match wins over later selectors",
			html: `<div class="infobox"><img src="https://static.wikia.test/other/InfoboxCard.png"></div>
				<img alt="Knight Card" src="https://static.wikia.test/KnightCard.png/revision/latest/scale-to-width-down/100">`,
			want: "https://static.wikia.test/KnightCard.png/revision/latest/scale-to-width-down/500",
		},
		{
			name: "src attribute match",
			html: `<img alt="icon" src="//static.wikia.test/ZapCard.png">`,
			want: "https://static.wikia.test/ZapCard.png",
		},
		{
			name: "data-src used when src is missing",
			html: `<img alt="Miner Card" data-src="/images/MinerCard.png/scale-to-width-down/150">`,
			want: base + "/images/MinerCard.png/scale-to-width-down/500",
		},
		{
			name: "data-src used when src is empty",
			html: `<img alt="Miner Card" src="" data-src="//static.wikia.test/MinerCard.png">`,
			want: "https://static.wikia.test/MinerCard.png",
		},
		{
			name: "image class fallback",
			html: `<figure class="image"><img src="https://static.wikia.test/MonkCard.png"></figure>`,
			want: "https://static.wikia.test/MonkCard.png",
		},
		{
			name: "infobox fallback",
			html: `<aside class="infobox"><img src="https://static.wikia.test/Fisherman_Card.png?cb=1"></aside>`,
			want: "https://static.wikia.test/Fisherman_Card.png?cb=1",
		},
		{
			name: "alt match without Card.png keeps looking",
			html: `<img alt="Card back" src="https://static.wikia.test/back.jpg">
				<img src="https://static.wikia.test/ArchersCard.png">`,
			want: "https://static.wikia.test/ArchersCard.png",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, ok := ExtractCard(parse(t, tt.html), "Knight", base, nil)
			require.True(t, ok)
			assert.Equal(t, tt.want, c.ImageURL)
			assert.Equal(t, "Knight", c.Name)
		})
	}
}

func TestExtractCardPlaceholderSrcIsRejected(t *testing.T) {
	doc := parse(t, `<img alt="Miner Card" src="data:image/gif;base64,R0lGODlhAQABAIAAAAAAAP" data-src="/images/MinerCard.png">`)
	_, ok := ExtractCard(doc, "Unlisted", base, nil)
	assert.False(t, ok)
}

func TestExtractCardNoImage(t *testing.T) {
	doc := parse(t, `<div class="infobox"><img src="https://static.wikia.test/Arena.jpg"></div>`)
	_, ok := ExtractCard(doc, "Knight", base, card.DefaultOverrides())
	assert.False(t, ok)
}

func TestExtractCardRarity(t *testing.T) {
	image := `<img alt="X Card" src="https://static.wikia.test/XCard.png">`
	tests := []struct {
		name      string
		cardName  string
		html      string
		overrides card.OverrideTable
		want      card.Rarity
	}{
		{
			name:     "infobox rarity row",
			cardName: "Unlisted",
			html:     `<table class="infobox"><tr><th>Rarity</th><td>Epic</td></tr></table>`,
			want:     card.RarityEpic,
		},
		{
			name:     "common keeps scanning later selectors",
			cardName: "Unlisted",
			html: `<table class="infobox"><tr><th>Rarity</th><td>Common</td></tr></table>
				<table><tr><td>Legendary</td></tr></table>`,
			want: card.RarityLegendary,
		},
		{
			name:     "no rarity text defaults to common",
			cardName: "Unlisted",
			html:     `<p>Elixir 3</p>`,
			want:     card.RarityCommon,
		},
		{
			name:      "override wins over page text",
			cardName:  "Knight",
			html:      `<table class="infobox"><tr><th>Rarity</th><td>Legendary</td></tr></table>`,
			overrides: card.OverrideTable{"Knight": card.RarityCommon},
			want:      card.RarityCommon,
		},
		{
			name:      "embedded table",
			cardName:  "Little_Prince",
			html:      ``,
			overrides: card.DefaultOverrides(),
			want:      card.RarityChampion,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, ok := ExtractCard(parse(t, image+tt.html), tt.cardName, base, tt.overrides)
			require.True(t, ok)
			assert.Equal(t, tt.want, c.Rarity)
		})
	}
}

func TestUpscaleThumbnail(t *testing.T) {
	tests := map[string]string{
		"https://x.test/a.png/revision/latest/scale-to-width-down/100?cb=1": "https://x.test/a.png/revision/latest/scale-to-width-down/500?cb=1",
		"https://x.test/a.png/revision/latest/scale-to-width-down/150":       "https://x.test/a.png/revision/latest/scale-to-width-down/500",
		"https://x.test/a.png/revision/latest/scale-to-width-down/250":       "https://x.test/a.png/revision/latest/scale-to-width-down/250",
		"https://x.test/100/a.png":                                           "https://x.test/100/a.png",
	}
	for in, want := range tests {
		assert.Equal(t, want, UpscaleThumbnail(in), in)
	}

	// Every occurrence is rewritten
	assert.Equal(t, "https://x.test/scale-to-width-down/500/b/scale-to-width-down/500",
		UpscaleThumbnail("https://x.test/scale-to-width-down/100/b/scale-to-width-down/150"))
}

func TestUpscaleListThumbnail(t *testing.T) {
	assert.Equal(t, "https://x.test/a.png/scale-to-width-down/500", UpscaleListThumbnail("https://x.test/a.png/scale-to-width-down/100"))
	assert.Equal(t, "https://x.test/a.png/scale-to-width-down/150", UpscaleListThumbnail("https://x.test/a.png/scale-to-width-down/150"))
}

func TestResolveURL(t *testing.T) {
	assert.Equal(t, "https://cdn.test/a.png", ResolveURL("//cdn.test/a.png", base))
	assert.Equal(t, base+"/images/a.png", ResolveURL("/images/a.png", base+"/"))
	assert.Equal(t, "https://cdn.test/a.png", ResolveURL("https://cdn.test/a.png", base))
}
