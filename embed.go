package doordeck

import (
	_ "embed"
)

// Name -> rarity overrides applied after page-text inference
//
//go:embed static/rarities.yaml
var RarityOverridesYAML []byte

// Ordered list of card wiki page names scraped by default
//
//go:embed static/cards.yaml
var CardNamesYAML []byte
