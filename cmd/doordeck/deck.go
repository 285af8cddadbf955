package main

import (
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"doordeck/internal/deck"
	"doordeck/internal/pipeline"
)

var (
	deckLayout   string
	deckOutput   string
	deckPreviews bool
)

var deckCmd = &cobra.Command{
	Use:   "deck",
	Short: "Build the slide deck",
	RunE:  runDeck,
}

func init() {
	deckCmd.Flags().StringVarP(&deckLayout, "layout", "l", "", "layout: "+strings.Join(deck.LayoutNames(), "|")+" (default: deck.layout)")
	deckCmd.Flags().StringVarP(&deckOutput, "out", "o", "", "output .pptx (default: deck.output)")
	deckCmd.Flags().BoolVar(&deckPreviews, "previews", false, "also render PNG previews and a contact sheet to deck.previewDir")
	rootCmd.AddCommand(deckCmd)
}

func runDeck(cmd *cobra.Command, args []string) error {
	if deckLayout != "" {
		cfg.Deck.Layout = deckLayout
	}
	out := orDefault(deckOutput, cfg.Deck.Output)

	d, rows, err := pipeline.BuildDeck(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}
	if err := d.Save(out); err != nil {
		return err
	}
	logger.Info("saved deck", zap.String("path", out), zap.Int("rows", len(rows)), zap.Int("slides", len(d.Slides)))

	if !deckPreviews {
		return nil
	}

	paths, err := deck.SavePreviews(d, cfg.Deck.PreviewDir, deck.PreviewWidth)
	if err != nil {
		return err
	}
	sheet, err := deck.ContactSheet(paths, 3)
	if err != nil {
		return err
	}
	sheetPath := filepath.Join(cfg.Deck.PreviewDir, "contact-sheet.png")
	if err := imaging.Save(sheet, sheetPath); err != nil {
		return err
	}
	logger.Info("saved previews", zap.Int("slides", len(paths)), zap.String("sheet", sheetPath))
	return nil
}
