package deck

import (
	"fmt"
	"image/color"
	"sort"

	"doordeck/internal/dataset"
)

// Layout places rows onto a slide. Begin is called once per slide and
// Place once per row, with slot counting from 0 within the slide.
// image is the local picture path, or empty when no picture is available.
type Layout interface {
	Name() string
	Begin(s *Slide)
	Place(s *Slide, slot int, row dataset.Row, image string)
}

// LayoutOptions are the knobs shared by all layouts
type LayoutOptions struct {
	FontFace  string
	BellsIcon string
}

var layouts = map[string]func(LayoutOptions) Layout{
	"classic":  func(o LayoutOptions) Layout { return Classic{} },
	"adjusted": func(o LayoutOptions) Layout { return Adjusted{opts: o} },
	"cards":    func(o LayoutOptions) Layout { return Cards{Adjusted{opts: o}} },
}

// LayoutNames lists the registered layouts
func LayoutNames() []string {
	names := make([]string, 0, len(layouts))
	for name := range layouts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewLayout looks a layout up by name
func NewLayout(name string, opts LayoutOptions) (Layout, error) {
	ctor, ok := layouts[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLayout, name)
	}
	if opts.FontFace == "" {
		opts.FontFace = "Perpetua"
	}
	return ctor(opts), nil
}

// Classic is the first villager layout: a white frame with three gray cards,
// a small picture and a two-line caption.
type Classic struct{}

func (Classic) Name() string { return "classic" }

func (Classic) Begin(s *Slide) {
	s.AddShape(GeomRect, R(0.5, 0.5, 9, 6.5), White, Black, Pt(0.75))
}

func (Classic) Place(s *Slide, slot int, row dataset.Row, image string) {
	left, top := 1+3*float64(slot), 1.0
	s.AddShape(GeomRect, R(left, top, 2.5, 5.5), Gray, Black, Pt(0.75))
	if image != "" {
		s.AddPicture(R(left+0.25, top+0.25, 2, 2), image, row.Name)
	}

	font := Font{Size: 14, Color: Black}
	s.AddTextBox(R(left, top+4.5, 2.5, 1),
		Paragraph{Text: row.Name, Font: font, Align: AlignLeft},
		Paragraph{Text: "Room: " + row.Caption, Font: font, Align: AlignLeft},
	)
}

// Adjusted is the tall door-card layout: name plate, framed picture, oval
// room badge and an optional bells icon.
type Adjusted struct {
	opts LayoutOptions
}

func (Adjusted) Name() string { return "adjusted" }

func (Adjusted) Begin(*Slide) {}

func (a Adjusted) Place(s *Slide, slot int, row dataset.Row, image string) {
	a.place(s, slot, row, image, Gray, Cream, 66, 66)
}

func (a Adjusted) place(s *Slide, slot int, row dataset.Row, image string, cardFill, plateFill color.RGBA, nameSize, captionSize float64) {
	left, top := 0.15+3.3*float64(slot), 0.15

	s.AddShape(GeomRect, R(left, top, 3.04, 7.1), cardFill, Black, Pt(4))

	if image != "" {
		frame := R(left+0.275, top+0.5, 2.5, 2.5)
		s.AddShape(GeomRect, frame, Gray, Black, Pt(4))
		s.AddPicture(frame, image, row.Name)
	}

	plate := R(left+0.15, top+3.2, 2.74, 1)
	s.AddShape(GeomRect, plate, plateFill, Black, Pt(3))
	s.AddTextBox(plate, Paragraph{
		Text:  row.Name,
		Font:  a.font(nameSize),
		Align: AlignCenter,
	})

	s.AddShape(GeomEllipse, R(left+0.1, top+5, 2.8, 2), Cream, Black, 0)
	s.AddTextBox(R(left+0.2, 5.64, 2.8, 2), Paragraph{
		Text:        row.Caption,
		Font:        a.font(captionSize),
		Align:       AlignCenter,
		SpaceBefore: 20,
	})

	if a.opts.BellsIcon != "" {
		s.AddPicture(R(left-0.05, top+3.9, 2.04, 2.04), a.opts.BellsIcon, "bells")
	}
}

func (a Adjusted) font(size float64) Font {
	return Font{Face: a.opts.FontFace, Size: size, Bold: true, Italic: true, Color: Black}
}

// Cards reuses the adjusted geometry for scraped cards, colored by rarity and
// captioned with the rarity label.
type Cards struct {
	Adjusted
}

func (Cards) Name() string { return "cards" }

func (c Cards) Place(s *Slide, slot int, row dataset.Row, image string) {
	fill := row.Rarity.Color()
	c.place(s, slot, row, image, fill, fill, 28, 36)
}
