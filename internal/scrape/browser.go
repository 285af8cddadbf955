package scrape

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// BrowserFetcher renders pages in headless Chrome before parsing them, for
// wiki skins that only fill in image attributes from script.
type BrowserFetcher struct {
	browser *rod.Browser
	timeout time.Duration
}

// NewBrowserFetcher launches a headless browser, preferring a system Chrome
// over rod's downloaded one. The caller must Close it.
func NewBrowserFetcher(ctx context.Context, timeout time.Duration) (*BrowserFetcher, error) {
	l := launcher.New().Headless(true)
	if path, ok := launcher.LookPath(); ok {
		l = l.Bin(path)
	}
	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launch chrome: %w", err)
	}

	browser := rod.New().ControlURL(controlURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("connect to chrome: %w", err)
	}

	return &BrowserFetcher{browser: browser, timeout: timeout}, nil
}

// Fetch implements Fetcher
func (f *BrowserFetcher) Fetch(ctx context.Context, url string) (*goquery.Document, error) {
	page, err := f.browser.Context(ctx).Page(proto.TargetCreateTarget{URL: url})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", url, err)
	}
	defer page.Close()

	page = page.Timeout(f.timeout)
	if err := page.WaitLoad(); err != nil {
		return nil, fmt.Errorf("load %s: %w", url, err)
	}

	html, err := page.HTML()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", url, err)
	}
	return goquery.NewDocumentFromReader(strings.NewReader(html))
}

// Close shuts the browser down
func (f *BrowserFetcher) Close() error {
	return f.browser.Close()
}
