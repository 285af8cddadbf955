package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"doordeck/internal/card"
	"doordeck/internal/pipeline"
	"doordeck/internal/scrape"
	"doordeck/internal/throttle"
)

var (
	cardNamesFile string
	scrapeOutput  string
	villagerURL   string
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Collect image URLs from wiki pages",
}

var scrapeCardsCmd = &cobra.Command{
	Use:   "cards",
	Short: "Scrape card images and rarities, one wiki page per card",
	RunE:  runScrapeCards,
}

var scrapeVillagersCmd = &cobra.Command{
	Use:   "villagers",
	Short: "Scrape villager image URLs from the villager list page",
	RunE:  runScrapeVillagers,
}

func init() {
	scrapeCardsCmd.Flags().StringVar(&cardNamesFile, "names", "", "YAML file with a cards: list of page names (default: built-in list)")
	scrapeCardsCmd.Flags().StringVarP(&scrapeOutput, "out", "o", "", "output JSON file (default: scrape.cardsFile)")
	scrapeVillagersCmd.Flags().StringVar(&villagerURL, "url", "", "villager list page (default: scrape.villagerListURL)")
	scrapeVillagersCmd.Flags().StringVarP(&scrapeOutput, "out", "o", "", "output JSON file (default: scrape.urlsFile)")

	scrapeCmd.AddCommand(scrapeCardsCmd, scrapeVillagersCmd)
	rootCmd.AddCommand(scrapeCmd)
}

func runScrapeCards(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	names := card.DefaultCardNames()
	if cardNamesFile != "" {
		data, err := os.ReadFile(cardNamesFile)
		if err != nil {
			return fmt.Errorf("failed to read card names: %w", err)
		}
		if names, err = card.LoadCardNames(data); err != nil {
			return err
		}
	}

	overrides, err := pipeline.Overrides(cfg)
	if err != nil {
		return err
	}

	var fetcher scrape.Fetcher = scrape.NewHTTPFetcher(cfg.Scrape.UserAgent, cfg.Scrape.Timeout)
	if cfg.Scrape.Browser {
		bf, err := scrape.NewBrowserFetcher(ctx, cfg.Scrape.Timeout)
		if err != nil {
			return err
		}
		defer bf.Close()
		fetcher = bf
	}

	scraper := scrape.NewCardScraper(fetcher, cfg.Scrape.BaseURL, overrides,
		throttle.New(cfg.Scrape.Delay), logger.Named("scrape"))
	cards, err := scraper.Scrape(ctx, names)
	if err != nil {
		return err
	}

	out := orDefault(scrapeOutput, cfg.Scrape.CardsFile)
	if err := card.WriteCards(out, cards); err != nil {
		return err
	}
	logger.Info("wrote card data",
		zap.String("path", out),
		zap.Int("cards", len(cards)),
		zap.Int("skipped", len(names)-len(cards)))
	return nil
}

func runScrapeVillagers(cmd *cobra.Command, args []string) error {
	scraper := scrape.NewVillagerScraper(cfg.Scrape.UserAgent, cfg.Scrape.Timeout, logger.Named("scrape"))
	urls, err := scraper.Scrape(cmd.Context(), orDefault(villagerURL, cfg.Scrape.VillagerListURL))
	if err != nil {
		return err
	}

	out := orDefault(scrapeOutput, cfg.Scrape.URLsFile)
	if err := scrape.WriteURLs(out, urls); err != nil {
		return err
	}
	logger.Info("wrote villager image URLs", zap.String("path", out), zap.Int("urls", len(urls)))
	return nil
}

func orDefault(v, def string) string {
	if v != "" {
		return v
	}
	return def
}
