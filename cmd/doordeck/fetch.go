package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"doordeck/internal/dataset"
	"doordeck/internal/imagefetch"
	"doordeck/internal/pipeline"
)

var fetchCards bool

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download every image of the dataset as an RGB JPEG",
	Long: `fetch downloads the image of every row: scraped cards with --cards, otherwise
residents joined with the villager URL list. Images already on disk are kept
unless fetch.overwrite is set. The Name,Path index is written to fetch.pathsFile.`,
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().BoolVar(&fetchCards, "cards", false, "fetch scraped card images instead of villager images")
	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	src := pipeline.Source(cfg)
	src.Cards = src.Cards || fetchCards
	src.PathsFile = ""

	rows, err := dataset.Load(src)
	if err != nil {
		return err
	}

	fetcher := pipeline.NewImageFetcher(cfg, logger)
	results, err := fetcher.FetchAll(cmd.Context(), pipeline.FetchItems(cfg, rows))
	if err != nil {
		return err
	}

	if err := imagefetch.WritePaths(cfg.Fetch.PathsFile, results); err != nil {
		return err
	}

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	logger.Info("fetched images",
		zap.Int("saved", len(results)-failed),
		zap.Int("failed", failed),
		zap.String("index", cfg.Fetch.PathsFile))
	return nil
}
