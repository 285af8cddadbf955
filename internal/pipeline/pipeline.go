// Package pipeline wires configuration into the scrape, fetch and deck
// stages shared by the command line tool and the preview server.
package pipeline

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"doordeck/internal/card"
	"doordeck/internal/config"
	"doordeck/internal/dataset"
	"doordeck/internal/deck"
	"doordeck/internal/imagefetch"
	"doordeck/internal/throttle"
)

// Source maps the configured hand-off files onto a dataset source
func Source(cfg *config.Config) dataset.Source {
	return dataset.Source{
		Cards:     cfg.Deck.Layout == "cards",
		CardsFile: cfg.Scrape.CardsFile,
		Residents: cfg.Deck.ResidentsFile,
		URLsFile:  cfg.Scrape.URLsFile,
		PathsFile: cfg.Fetch.PathsFile,
	}
}

// NewImageFetcher creates the image fetcher described by cfg
func NewImageFetcher(cfg *config.Config, logger *zap.Logger) *imagefetch.Fetcher {
	return imagefetch.New(imagefetch.Options{
		UserAgent:   cfg.Scrape.UserAgent,
		Timeout:     cfg.Scrape.Timeout,
		JPEGQuality: cfg.Fetch.JPEGQuality,
		Overwrite:   cfg.Fetch.Overwrite,
	}, throttle.New(cfg.Fetch.Delay), logger.Named("fetch"))
}

// Overrides returns the rarity override table, from the configured file or
// the embedded default
func Overrides(cfg *config.Config) (card.OverrideTable, error) {
	if cfg.Scrape.OverridesFile == "" {
		return card.DefaultOverrides(), nil
	}
	return card.ReadOverrides(cfg.Scrape.OverridesFile)
}

// FetchItems lists the images to download for rows
func FetchItems(cfg *config.Config, rows []dataset.Row) []imagefetch.Item {
	items := make([]imagefetch.Item, 0, len(rows))
	for _, row := range rows {
		items = append(items, imagefetch.Item{
			Name: row.Name,
			URL:  row.ImageURL,
			Path: imagefetch.FileName(cfg.Fetch.ImageDir, row.Name, cfg.Fetch.FilePrefix),
		})
	}
	return items
}

// NewBuilder creates the deck builder for the configured layout. Rows that
// have no local image yet are downloaded while building.
func NewBuilder(cfg *config.Config, logger *zap.Logger) (*deck.Builder, error) {
	layout, err := deck.NewLayout(cfg.Deck.Layout, deck.LayoutOptions{
		FontFace:  cfg.Deck.FontFace,
		BellsIcon: cfg.Deck.BellsIcon,
	})
	if err != nil {
		return nil, err
	}

	b := deck.NewBuilder(layout, logger.Named("deck"))
	b.PerSlide = cfg.Deck.PerSlide
	b.Images = NewImageFetcher(cfg, logger)
	b.ImageDir = cfg.Fetch.ImageDir
	b.ImagePrefix = cfg.Fetch.FilePrefix
	if layout.Name() == "cards" {
		b.Title = "Cards"
	}
	return b, nil
}

// BuildDeck loads the configured rows and lays them out
func BuildDeck(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*deck.Deck, []dataset.Row, error) {
	rows, err := dataset.Load(Source(cfg))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load rows: %w", err)
	}

	b, err := NewBuilder(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	d, err := b.Build(ctx, rows)
	if err != nil {
		return nil, nil, err
	}
	return d, rows, nil
}
