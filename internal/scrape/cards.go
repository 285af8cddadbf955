package scrape

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"doordeck/internal/card"
	"doordeck/internal/throttle"
)

// CardScraper visits one wiki page per card name
type CardScraper struct {
	fetcher   Fetcher
	baseURL   string
	overrides card.OverrideTable
	limiter   *rate.Limiter
	logger    *zap.Logger
}

// NewCardScraper creates a card scraper. limiter spaces out page requests.
func NewCardScraper(fetcher Fetcher, baseURL string, overrides card.OverrideTable, limiter *rate.Limiter, logger *zap.Logger) *CardScraper {
	if logger == nil {
		logger = zap.NewNop()
	}
	if limiter == nil {
		limiter = throttle.New(0)
	}
	if overrides == nil {
		overrides = card.OverrideTable{}
	}
	return &CardScraper{
		fetcher:   fetcher,
		baseURL:   strings.TrimRight(baseURL, "/"),
		overrides: overrides,
		limiter:   limiter,
		logger:    logger,
	}
}

// PageURL returns the wiki page URL for a card name
func (s *CardScraper) PageURL(name string) string {
	return fmt.Sprintf("%s/wiki/%s", s.baseURL, url.PathEscape(name))
}

// Scrape returns the cards that had an image, in the order of names. A card
// whose page fails to load or has no image is logged and skipped. Only a
// cancelled context aborts the run.
func (s *CardScraper) Scrape(ctx context.Context, names []string) ([]card.Card, error) {
	cards := make([]card.Card, 0, len(names))
	for _, name := range names {
		if err := s.limiter.Wait(ctx); err != nil {
			return cards, err
		}

		c, err := s.scrapeOne(ctx, name)
		if err != nil {
			if ctx.Err() != nil {
				return cards, ctx.Err()
			}
			s.logger.Warn("skipping card", zap.String("card", name), zap.Error(err))
			continue
		}

		s.logger.Info("found card",
			zap.String("card", name),
			zap.String("rarity", string(c.Rarity)),
			zap.String("image", c.ImageURL))
		cards = append(cards, c)
	}
	return cards, nil
}

func (s *CardScraper) scrapeOne(ctx context.Context, name string) (card.Card, error) {
	pageURL := s.PageURL(name)
	s.logger.Debug("fetching card page", zap.String("card", name), zap.String("url", pageURL))

	doc, err := s.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return card.Card{}, err
	}

	c, ok := ExtractCard(doc, name, s.baseURL, s.overrides)
	if !ok {
		return card.Card{}, ErrNoImage
	}
	return c, nil
}
