package card

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRarity(t *testing.T) {
	tests := []struct {
		input   string
		want    Rarity
		wantErr bool
	}{
		{"common", RarityCommon, false},
		{"  Legendary ", RarityLegendary, false},
		{"CHAMPION", RarityChampion, false},
		{"mythic", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseRarity(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownRarity)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInferRarity(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		want   Rarity
		wantOK bool
	}{
		{"plain epic", "Epic", RarityEpic, true},
		{"champion wins over common", "Champion (upgraded from Common)", RarityChampion, true},
		{"legendary wins over rare", "Rare? no, Legendary", RarityLegendary, true},
		{"rare", "  rare card  ", RarityRare, true},
		{"common", "Common", RarityCommon, true},
		{"nothing", "Elixir cost 4", RarityCommon, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := InferRarity(tt.text)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

func TestRarityColorDistinct(t *testing.T) {
	seen := map[[3]uint8]Rarity{}
	for _, r := range inferenceOrder {
		c := r.Color()
		key := [3]uint8{c.R, c.G, c.B}
		if other, exists := seen[key]; exists {
			t.Errorf("%s and %s share a color", r, other)
		}
		seen[key] = r
		assert.Equal(t, uint8(255), c.A)
	}
}

func TestRarityTitle(t *testing.T) {
	assert.Equal(t, "Legendary", RarityLegendary.Title())
	assert.Equal(t, "", Rarity("").Title())
}

func TestDisplayName(t *testing.T) {
	c := Card{Name: "Mini_P.E.K.K.A."}
	assert.Equal(t, "Mini P.E.K.K.A.", c.DisplayName())
}

func TestDefaultOverrides(t *testing.T) {
	table := DefaultOverrides()
	assert.Len(t, table, 60)

	tests := map[string]Rarity{
		"P.E.K.K.A.":      RarityEpic,
		"Miner":           RarityLegendary,
		"Monk":            RarityChampion,
		"Mini_P.E.K.K.A.": RarityRare,
		"Archers":         RarityCommon,
	}
	for name, want := range tests {
		got, ok := table.Lookup(name)
		assert.True(t, ok, name)
		assert.Equal(t, want, got, name)
	}

	_, ok := table.Lookup("Goblin_Giant")
	assert.False(t, ok)
}

func TestDefaultCardNamesCoveredByOverrides(t *testing.T) {
	names := DefaultCardNames()
	require.Len(t, names, 60)
	assert.Equal(t, "P.E.K.K.A.", names[0])
	assert.Equal(t, "Musketeer", names[len(names)-1])

	table := DefaultOverrides()
	for _, name := range names {
		_, ok := table.Lookup(name)
		assert.True(t, ok, "no override for %s", name)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Run("invalid rarity", func(t *testing.T) {
		_, err := LoadOverrides([]byte("overrides:\n  Knight: mythic\n"))
		assert.ErrorIs(t, err, ErrUnknownRarity)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := LoadOverrides([]byte("overrides: {}\n"))
		assert.ErrorIs(t, err, ErrEmptyTable)
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := LoadOverrides([]byte("overrides: [\n"))
		assert.Error(t, err)
	})

	t.Run("from file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "rarities.yaml")
		require.NoError(t, writeFile(path, "overrides:\n  Knight: Epic\n"))

		table, err := ReadOverrides(path)
		require.NoError(t, err)
		r, ok := table.Lookup("Knight")
		assert.True(t, ok)
		assert.Equal(t, RarityEpic, r)

		_, err = ReadOverrides(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.Error(t, err)
	})
}

func TestCardsRoundTripThroughFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cards.json")
	cards := []Card{
		{Name: "Knight", ImageURL: "https://example.test/KnightCard.png", Rarity: RarityCommon},
		{Name: "Monk", ImageURL: "https://example.test/MonkCard.png", Rarity: RarityChampion},
	}

	require.NoError(t, WriteCards(path, cards))
	got, err := ReadCards(path)
	require.NoError(t, err)
	assert.Equal(t, cards, got)
}

func TestReadCardsDefaultsMissingRarity(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cards.json")
	require.NoError(t, writeFile(path, `[{"name": "Zap", "image_url": "https://example.test/ZapCard.png"}]`))

	got, err := ReadCards(path)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, RarityCommon, got[0].Rarity)
}

func TestRaritiesAreValid(t *testing.T) {
	rarities := Rarities()
	assert.Len(t, rarities, 5)
	for _, r := range rarities {
		assert.True(t, r.Valid(), r)
	}
	assert.Equal(t, RarityCommon, rarities[0])
	assert.Equal(t, RarityChampion, rarities[4])
}
