package deck

import (
	"context"
	"os"

	"go.uber.org/zap"

	"doordeck/internal/dataset"
	"doordeck/internal/imagefetch"
)

// ImageFetcher downloads a remote image to a local path
type ImageFetcher interface {
	Fetch(ctx context.Context, url, dst string) (string, error)
}

// Builder turns dataset rows into a deck, PerSlide rows per slide
type Builder struct {
	Layout      Layout
	PerSlide    int
	Title       string
	Images      ImageFetcher // optional; rows with only a URL are downloaded
	ImageDir    string
	ImagePrefix string
	logger      *zap.Logger
}

// NewBuilder creates a builder with the default of three rows per slide
func NewBuilder(layout Layout, logger *zap.Logger) *Builder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Builder{Layout: layout, PerSlide: 3, Title: "Residents", logger: logger}
}

// Build lays out every row. A row whose image cannot be found still gets its
// card; only the picture is left out.
func (b *Builder) Build(ctx context.Context, rows []dataset.Row) (*Deck, error) {
	if len(rows) == 0 {
		return nil, ErrNoRows
	}
	perSlide := b.PerSlide
	if perSlide <= 0 {
		perSlide = 3
	}

	d := NewDeck(b.Title)
	var slide *Slide
	for i, row := range rows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		slot := i % perSlide
		if slot == 0 {
			slide = d.AddSlide()
			b.Layout.Begin(slide)
		}

		image, err := b.resolveImage(ctx, row)
		if err != nil {
			b.logger.Warn("leaving out picture", zap.String("name", row.Name), zap.Error(err))
		}
		b.Layout.Place(slide, slot, row, image)
	}
	b.dropMissingPictures(d)

	b.logger.Info("built deck",
		zap.String("layout", b.Layout.Name()),
		zap.Int("rows", len(rows)),
		zap.Int("slides", len(d.Slides)))
	return d, nil
}

func (b *Builder) resolveImage(ctx context.Context, row dataset.Row) (string, error) {
	if row.ImagePath != "" {
		if _, err := os.Stat(row.ImagePath); err == nil {
			return row.ImagePath, nil
		}
	}
	if row.ImageURL == "" || b.Images == nil {
		return "", ErrMissingImage
	}

	dst := imagefetch.FileName(b.ImageDir, row.Name, b.ImagePrefix)
	return b.Images.Fetch(ctx, row.ImageURL, dst)
}

// dropMissingPictures leaves out pictures whose files are gone, such as a
// misconfigured bells icon
func (b *Builder) dropMissingPictures(d *Deck) {
	missing := make(map[string]bool)
	for _, slide := range d.Slides {
		kept := slide.Elements[:0]
		for _, el := range slide.Elements {
			pic, ok := el.(*Picture)
			if !ok {
				kept = append(kept, el)
				continue
			}
			gone, seen := missing[pic.Path]
			if !seen {
				_, err := os.Stat(pic.Path)
				gone = err != nil
				missing[pic.Path] = gone
				if gone {
					b.logger.Warn("leaving out picture", zap.String("path", pic.Path), zap.Error(err))
				}
			}
			if !gone {
				kept = append(kept, el)
			}
		}
		slide.Elements = kept
	}
}

// SlideCount is the number of slides n rows need
func SlideCount(n, perSlide int) int {
	if perSlide <= 0 {
		perSlide = 3
	}
	return (n + perSlide - 1) / perSlide
}
