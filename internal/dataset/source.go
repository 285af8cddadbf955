package dataset

import (
	"fmt"

	"doordeck/internal/card"
	"doordeck/internal/imagefetch"
	"doordeck/internal/scrape"
)

// Source names the hand-off files a deck is built from
type Source struct {
	Cards     bool // build from scraped cards instead of residents
	CardsFile string
	Residents string
	URLsFile  string
	PathsFile string // optional image_paths.csv from a previous fetch
}

// Load reads the rows for a deck. A missing URLsFile leaves every row without
// an image URL. Local image paths from PathsFile, when it exists, are
// attached by name.
func Load(src Source) ([]Row, error) {
	var rows []Row
	if src.Cards {
		cards, err := card.ReadCards(src.CardsFile)
		if err != nil {
			return nil, err
		}
		rows = CardRows(cards)
	} else {
		residents, err := ReadResidents(src.Residents)
		if err != nil {
			return nil, err
		}
		var urls []string
		if src.URLsFile != "" {
			urls, err = scrape.ReadURLs(src.URLsFile)
			if err != nil && !isNotExist(err) {
				return nil, err
			}
		}
		rows = JoinResidents(residents, urls)
	}

	if src.PathsFile != "" {
		paths, err := imagefetch.ReadPaths(src.PathsFile)
		if err == nil {
			AttachPaths(rows, paths)
		} else if !isNotExist(err) {
			return nil, fmt.Errorf("failed to load image paths: %w", err)
		}
	}
	return rows, nil
}

// AttachPaths fills in ImagePath for rows that have a fetched image
func AttachPaths(rows []Row, paths map[string]string) {
	for i := range rows {
		if p, ok := paths[rows[i].Name]; ok && rows[i].ImagePath == "" {
			rows[i].ImagePath = p
		}
	}
}
