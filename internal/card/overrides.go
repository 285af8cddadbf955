package card

import (
	"fmt"
	"os"

	"doordeck"

	"gopkg.in/yaml.v3"
)

// OverrideTable maps a card page name to its known rarity
type OverrideTable map[string]Rarity

type overridesFile struct {
	Overrides map[string]string `yaml:"overrides"`
}

type cardNamesFile struct {
	Cards []string `yaml:"cards"`
}

// LoadOverrides parses a YAML override table. Every value must be a known
// rarity.
func LoadOverrides(data []byte) (OverrideTable, error) {
	var file overridesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse override table: %w", err)
	}
	if len(file.Overrides) == 0 {
		return nil, ErrEmptyTable
	}

	table := make(OverrideTable, len(file.Overrides))
	for name, raw := range file.Overrides {
		r, err := ParseRarity(raw)
		if err != nil {
			return nil, fmt.Errorf("card %s: %w", name, err)
		}
		table[name] = r
	}
	return table, nil
}

// ReadOverrides loads an override table from a YAML file
func ReadOverrides(path string) (OverrideTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return LoadOverrides(data)
}

// DefaultOverrides returns the embedded override table
func DefaultOverrides() OverrideTable {
	table, err := LoadOverrides(doordeck.RarityOverridesYAML)
	if err != nil {
		// The embedded table is covered by tests
		panic(err)
	}
	return table
}

// Lookup returns the override for name, if any
func (t OverrideTable) Lookup(name string) (Rarity, bool) {
	r, ok := t[name]
	return r, ok
}

// LoadCardNames parses a YAML list of card page names
func LoadCardNames(data []byte) ([]string, error) {
	var file cardNamesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse card names: %w", err)
	}
	return file.Cards, nil
}

// DefaultCardNames returns the embedded, ordered list of card page names
func DefaultCardNames() []string {
	names, err := LoadCardNames(doordeck.CardNamesYAML)
	if err != nil {
		panic(err)
	}
	return names
}
