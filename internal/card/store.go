package card

import (
	"encoding/json"
	"fmt"
	"os"
)

// ReadCards loads a card data file written by WriteCards
func ReadCards(path string) ([]Card, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var cards []Card
	if err := json.Unmarshal(data, &cards); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	for i := range cards {
		if cards[i].Rarity == "" {
			cards[i].Rarity = RarityCommon
		}
	}
	return cards, nil
}

// WriteCards saves cards as an indented JSON array
func WriteCards(path string, cards []Card) error {
	if cards == nil {
		cards = []Card{}
	}
	data, err := json.MarshalIndent(cards, "", "    ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
