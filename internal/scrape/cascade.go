package scrape

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"doordeck/internal/card"
)

// imageSelectors are tried in order; the first img whose URL names a card
// image wins.
var imageSelectors = []string{
	`img[alt*="Card"]`,
	`img[src*="Card.png"]`,
	`img[data-src*="Card.png"]`,
	`.image img`,
	`.infobox img`,
}

var raritySelectors = []string{
	`.infobox tr:contains("Rarity") td`,
	`.infobox-data`,
	`td:contains("Common")`,
	`td:contains("Rare")`,
	`td:contains("Epic")`,
	`td:contains("Legendary")`,
	`td:contains("Champion")`,
}

const cardImageMarker = "Card.png"

// thumbnailScales are the wiki thumbnail widths rewritten to fullSize
var thumbnailScales = []string{listThumbnail, "scale-to-width-down/150"}

// listThumbnail is the only width used by list page tables
const listThumbnail = "scale-to-width-down/100"

const fullSize = "scale-to-width-down/500"

// ExtractCard finds the card image and rarity on a card's wiki page. The
// override table wins over anything inferred from the page. ok is false when
// the page has no card image.
func ExtractCard(doc *goquery.Document, name, baseURL string, overrides card.OverrideTable) (c card.Card, ok bool) {
	imageURL := findCardImage(doc, baseURL)
	if imageURL == "" {
		return card.Card{}, false
	}

	rarity := inferPageRarity(doc)
	if known, found := overrides.Lookup(name); found {
		rarity = known
	}

	return card.Card{Name: name, ImageURL: imageURL, Rarity: rarity}, true
}

func findCardImage(doc *goquery.Document, baseURL string) string {
	for _, selector := range imageSelectors {
		var found string
		doc.Find(selector).EachWithBreak(func(_ int, img *goquery.Selection) bool {
			src, exists := img.Attr("src")
			if !exists || src == "" {
				src, _ = img.Attr("data-src")
			}
			if !strings.Contains(src, cardImageMarker) {
				return true
			}
			found = UpscaleThumbnail(ResolveURL(src, baseURL))
			return false
		})
		if found != "" {
			return found
		}
	}
	return ""
}

// inferPageRarity scans the rarity selectors in order, stopping at the first
// selector that yields something rarer than common.
func inferPageRarity(doc *goquery.Document) card.Rarity {
	rarity := card.RarityCommon
	for _, selector := range raritySelectors {
		doc.Find(selector).EachWithBreak(func(_ int, el *goquery.Selection) bool {
			r, ok := card.InferRarity(strings.TrimSpace(el.Text()))
			if !ok {
				return true
			}
			rarity = r
			return false
		})
		if rarity != card.RarityCommon {
			break
		}
	}
	return rarity
}

// ResolveURL makes protocol-relative and root-relative image URLs absolute
func ResolveURL(src, baseURL string) string {
	switch {
	case strings.HasPrefix(src, "//"):
		return "https:" + src
	case strings.HasPrefix(src, "/"):
		return strings.TrimRight(baseURL, "/") + src
	default:
		return src
	}
}

// UpscaleThumbnail rewrites a wiki thumbnail URL to request the 500px
// rendition. Other URLs are returned unchanged.
func UpscaleThumbnail(src string) string {
	if !strings.Contains(src, "scale-to-width-down") {
		return src
	}
	for _, scale := range thumbnailScales {
		src = strings.ReplaceAll(src, scale, fullSize)
	}
	return src
}

// UpscaleListThumbnail rewrites the 100px thumbnails of a list page table
func UpscaleListThumbnail(src string) string {
	return strings.ReplaceAll(src, listThumbnail, fullSize)
}
