package card

import (
	"fmt"
	"image/color"
	"strings"
)

// Rarity is the categorical label attached to a scraped card image
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
	RarityChampion  Rarity = "champion"
)

// Highest rarity first: text naming several labels resolves to the rarest.
var inferenceOrder = []Rarity{
	RarityChampion,
	RarityLegendary,
	RarityEpic,
	RarityRare,
	RarityCommon,
}

// Card is a scraped card: its wiki page name, image URL and rarity
type Card struct {
	Name     string `json:"name"`
	ImageURL string `json:"image_url"`
	Rarity   Rarity `json:"rarity"`
}

// ParseRarity parses a rarity label, ignoring case and surrounding space
func ParseRarity(s string) (Rarity, error) {
	r := Rarity(strings.ToLower(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownRarity, s)
	}
	return r, nil
}

// Rarities lists every rarity from most to least common
func Rarities() []Rarity {
	return []Rarity{RarityCommon, RarityRare, RarityEpic, RarityLegendary, RarityChampion}
}

// Valid reports whether r is one of the known labels
func (r Rarity) Valid() bool {
	switch r {
	case RarityCommon, RarityRare, RarityEpic, RarityLegendary, RarityChampion:
		return true
	}
	return false
}

// InferRarity scans free text for a rarity keyword. ok is false when the
// text names no rarity at all.
func InferRarity(text string) (r Rarity, ok bool) {
	text = strings.ToLower(text)
	for _, candidate := range inferenceOrder {
		if strings.Contains(text, string(candidate)) {
			return candidate, true
		}
	}
	return RarityCommon, false
}

// Title returns the label as shown on a slide
func (r Rarity) Title() string {
	if r == "" {
		return ""
	}
	return strings.ToUpper(string(r[:1])) + string(r[1:])
}

// Color returns the fill color used for cards of this rarity
func (r Rarity) Color() color.RGBA {
	switch r {
	case RarityRare:
		return color.RGBA{R: 245, G: 166, B: 35, A: 255}
	case RarityEpic:
		return color.RGBA{R: 170, G: 110, B: 200, A: 255}
	case RarityLegendary:
		return color.RGBA{R: 90, G: 210, B: 200, A: 255}
	case RarityChampion:
		return color.RGBA{R: 250, G: 210, B: 60, A: 255}
	default:
		return color.RGBA{R: 200, G: 200, B: 200, A: 255}
	}
}

// DisplayName turns a wiki page name into a human readable title
func (c *Card) DisplayName() string {
	return strings.ReplaceAll(c.Name, "_", " ")
}
