package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"doordeck/internal/card"
)

var ErrMissingColumn = errors.New("missing column")

// Resident is one row of the residents sheet
type Resident struct {
	Name string
	Room string
}

// Row is one decorative card in the deck
type Row struct {
	Name      string
	Caption   string // room number or rarity label
	ImageURL  string
	ImagePath string
	Rarity    card.Rarity
}

// ReadResidents reads a CSV with Name and Room columns, located by header.
// Rows without a name are skipped.
func ReadResidents(path string) ([]Resident, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	residents, err := ParseResidents(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return residents, nil
}

// ParseResidents is ReadResidents over any reader
func ParseResidents(r io.Reader) ([]Resident, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	nameCol, roomCol := -1, -1
	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))) {
		case "name":
			nameCol = i
		case "room":
			roomCol = i
		}
	}
	if nameCol < 0 {
		return nil, fmt.Errorf("%w: Name", ErrMissingColumn)
	}
	if roomCol < 0 {
		return nil, fmt.Errorf("%w: Room", ErrMissingColumn)
	}

	var residents []Resident
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		name := field(record, nameCol)
		if name == "" {
			continue
		}
		residents = append(residents, Resident{Name: name, Room: field(record, roomCol)})
	}
	return residents, nil
}

func field(record []string, i int) string {
	if i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

// JoinResidents pairs resident i with image URL i. Residents past the end of
// urls get no image.
func JoinResidents(residents []Resident, urls []string) []Row {
	rows := make([]Row, len(residents))
	for i, r := range residents {
		rows[i] = Row{Name: r.Name, Caption: r.Room}
		if i < len(urls) {
			rows[i].ImageURL = urls[i]
		}
	}
	return rows
}

// CardRows turns scraped cards into deck rows captioned with their rarity
func CardRows(cards []card.Card) []Row {
	rows := make([]Row, len(cards))
	for i, c := range cards {
		rows[i] = Row{
			Name:     c.DisplayName(),
			Caption:  c.Rarity.Title(),
			ImageURL: c.ImageURL,
			Rarity:   c.Rarity,
		}
	}
	return rows
}

func isNotExist(err error) bool {
	return errors.Is(err, os.ErrNotExist)
}
