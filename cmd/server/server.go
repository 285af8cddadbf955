package main

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"

	"go.uber.org/zap"

	"doordeck/internal/config"
	"doordeck/internal/deck"
	"doordeck/internal/handlers"
	"doordeck/internal/pipeline"
)

// SetupServer builds the configured deck and returns the preview router
func SetupServer(ctx context.Context, cfg *config.Config, logger *zap.Logger) (http.Handler, error) {
	d, rows, err := pipeline.BuildDeck(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to build deck: %w", err)
	}

	httpLogger := logger.Named("http")
	h := handlers.New(d, rows, handlers.Options{
		Layout:       cfg.Deck.Layout,
		PerSlide:     cfg.Deck.PerSlide,
		PreviewDir:   cfg.Deck.PreviewDir,
		PreviewWidth: deck.PreviewWidth,
		FileName:     filepath.Base(cfg.Deck.Output),
	}, httpLogger)

	return handlers.SetupRouter(h, cfg, &handlers.RouterOptions{Logger: httpLogger}), nil
}
