package deck

import (
	"fmt"
	"image"
	"math"
	"os"
	"path/filepath"
	"sync"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	gim "github.com/ozankasikci/go-image-merge"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
)

// PreviewWidth is the default raster width of a slide preview in pixels
const PreviewWidth = 960

var (
	fontsOnce sync.Once
	fonts     map[[2]bool]*truetype.Font
	fontsErr  error
)

// loadFonts parses the Go font family once. Previews do not have access to
// the deck's own typeface, so every face renders as Go.
func loadFonts() error {
	fontsOnce.Do(func() {
		fonts = map[[2]bool]*truetype.Font{}
		for key, ttf := range map[[2]bool][]byte{
			{false, false}: goregular.TTF,
			{true, false}:  gobold.TTF,
			{false, true}:  goitalic.TTF,
			{true, true}:   gobolditalic.TTF,
		} {
			f, err := truetype.Parse(ttf)
			if err != nil {
				fontsErr = fmt.Errorf("failed to parse font: %w", err)
				return
			}
			fonts[key] = f
		}
	})
	return fontsErr
}

func fontFace(f Font, scale float64) font.Face {
	size := f.Size
	if size <= 0 {
		size = 18
	}
	return truetype.NewFace(fonts[[2]bool{f.Bold, f.Italic}], &truetype.Options{
		Size:    size * emuPerPoint * scale,
		Hinting: font.HintingFull,
	})
}

// RenderPreview rasterises a slide. width is the output width in pixels;
// the height follows the deck's aspect ratio.
func RenderPreview(d *Deck, s *Slide, width int) (image.Image, error) {
	if err := loadFonts(); err != nil {
		return nil, err
	}
	if width <= 0 {
		width = PreviewWidth
	}
	scale := float64(width) / float64(d.Width)
	height := int(math.Round(float64(d.Height) * scale))

	dc := gg.NewContext(width, height)
	dc.SetColor(White)
	dc.Clear()

	px := func(v EMU) float64 { return float64(v) * scale }

	for _, el := range s.Elements {
		r := el.Bounds()
		x, y, w, h := px(r.X), px(r.Y), px(r.W), px(r.H)

		switch el := el.(type) {
		case *Shape:
			if el.Geometry == GeomEllipse {
				dc.DrawEllipse(x+w/2, y+h/2, w/2, h/2)
			} else {
				dc.DrawRectangle(x, y, w, h)
			}
			dc.SetColor(el.Fill)
			if el.LineWidth > 0 {
				dc.FillPreserve()
				dc.SetColor(el.Line)
				dc.SetLineWidth(math.Max(1, px(el.LineWidth)))
				dc.Stroke()
			} else {
				dc.Fill()
			}

		case *Picture:
			img, err := imaging.Open(el.Path)
			if err != nil {
				return nil, fmt.Errorf("failed to open %s: %w", el.Path, err)
			}
			img = imaging.Resize(img, int(math.Max(1, w)), int(math.Max(1, h)), imaging.Lanczos)
			dc.DrawImage(img, int(x), int(y))

		case *TextBox:
			cursor := y
			for _, p := range el.Paragraphs {
				dc.SetFontFace(fontFace(p.Font, scale))
				dc.SetColor(p.Font.Color)
				cursor += p.SpaceBefore * emuPerPoint * scale

				ax, tx := 0.0, x
				if p.Align == AlignCenter {
					ax, tx = 0.5, x+w/2
				}
				for _, line := range dc.WordWrap(p.Text, w) {
					dc.DrawStringAnchored(line, tx, cursor, ax, 1)
					cursor += dc.FontHeight() * 1.2
				}
			}
		}
	}

	return dc.Image(), nil
}

// SavePreviews renders every slide to dir as slide-N.png and returns the paths
func SavePreviews(d *Deck, dir string, width int) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create preview directory: %w", err)
	}

	paths := make([]string, 0, len(d.Slides))
	for i, s := range d.Slides {
		img, err := RenderPreview(d, s, width)
		if err != nil {
			return nil, fmt.Errorf("slide %d: %w", i+1, err)
		}
		path := filepath.Join(dir, fmt.Sprintf("slide-%d.png", i+1))
		if err := imaging.Save(img, path); err != nil {
			return nil, fmt.Errorf("failed to save %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// ContactSheet tiles preview images into one image, cols per row
func ContactSheet(paths []string, cols int) (*image.RGBA, error) {
	if len(paths) == 0 {
		return nil, ErrNoRows
	}
	if cols <= 0 || cols > len(paths) {
		cols = len(paths)
	}
	rows := (len(paths) + cols - 1) / cols

	grids := make([]*gim.Grid, len(paths))
	for i, p := range paths {
		grids[i] = &gim.Grid{ImageFilePath: p}
	}
	sheet, err := gim.New(grids, cols, rows).Merge()
	if err != nil {
		return nil, fmt.Errorf("failed to merge previews: %w", err)
	}
	return sheet, nil
}
