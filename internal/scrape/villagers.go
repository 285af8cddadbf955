package scrape

import (
	"context"
	"strings"
	"time"

	"github.com/gocolly/colly"
	"go.uber.org/zap"
)

// VillagerScraper collects the avatar images of the first sortable table on
// a wiki list page
type VillagerScraper struct {
	userAgent string
	timeout   time.Duration
	logger    *zap.Logger
}

// NewVillagerScraper creates a list page scraper
func NewVillagerScraper(userAgent string, timeout time.Duration, logger *zap.Logger) *VillagerScraper {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &VillagerScraper{userAgent: userAgent, timeout: timeout, logger: logger}
}

// Scrape returns the https image URLs in table order, thumbnails upscaled
func (s *VillagerScraper) Scrape(ctx context.Context, pageURL string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c := colly.NewCollector()
	if s.userAgent != "" {
		c.UserAgent = s.userAgent
	}
	if s.timeout > 0 {
		c.SetRequestTimeout(s.timeout)
	}

	var (
		urls      []string
		seenTable bool
		visitErr  error
	)

	c.OnHTML("table.sortable", func(e *colly.HTMLElement) {
		if seenTable {
			return
		}
		seenTable = true

		e.ForEach("img", func(_ int, img *colly.HTMLElement) {
			src := img.Attr("data-src")
			if src == "" {
				src = img.Attr("src")
			}
			if !strings.HasPrefix(src, "https://") {
				s.logger.Debug("ignoring image", zap.String("src", src))
				return
			}
			urls = append(urls, UpscaleListThumbnail(src))
		})
	})

	c.OnError(func(r *colly.Response, err error) {
		s.logger.Warn("villager list request failed",
			zap.String("url", pageURL),
			zap.Int("status", r.StatusCode),
			zap.Error(err))
		visitErr = err
	})

	if err := c.Visit(pageURL); err != nil && visitErr == nil {
		visitErr = err
	}
	if visitErr != nil {
		return nil, visitErr
	}
	if !seenTable {
		return nil, ErrNoTable
	}

	s.logger.Info("collected villager images", zap.Int("count", len(urls)))
	return urls, nil
}
