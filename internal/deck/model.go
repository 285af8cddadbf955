package deck

import "image/color"

// Geometry is a preset shape outline
type Geometry string

const (
	GeomRect    Geometry = "rect"
	GeomEllipse Geometry = "ellipse"
)

// Align is a paragraph alignment
type Align string

const (
	AlignLeft   Align = "l"
	AlignCenter Align = "ctr"
)

var (
	Black = color.RGBA{A: 255}
	White = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Gray  = color.RGBA{R: 200, G: 200, B: 200, A: 255}
	Cream = color.RGBA{R: 249, G: 245, B: 223, A: 255}
)

// Element is anything placed on a slide. Elements are drawn in order, so
// later ones sit on top.
type Element interface {
	Bounds() Rect
}

// Shape is a filled, outlined preset shape
type Shape struct {
	Rect
	Geometry  Geometry
	Fill      color.RGBA
	Line      color.RGBA
	LineWidth EMU
}

// Font describes a text run
type Font struct {
	Face   string
	Size   float64 // points
	Bold   bool
	Italic bool
	Color  color.RGBA
}

// Paragraph is one line of text in a text box
type Paragraph struct {
	Text        string
	Font        Font
	Align       Align
	SpaceBefore float64 // points
}

// TextBox is an unfilled rectangle holding paragraphs
type TextBox struct {
	Rect
	Paragraphs []Paragraph
}

// Picture is a local image stretched to fill its rectangle
type Picture struct {
	Rect
	Path  string
	Descr string
}

func (r Rect) Bounds() Rect { return r }

// Slide is an ordered list of elements
type Slide struct {
	Elements []Element
}

// AddShape appends a shape and returns it for further styling
func (s *Slide) AddShape(geom Geometry, r Rect, fill, line color.RGBA, lineWidth EMU) *Shape {
	shape := &Shape{Rect: r, Geometry: geom, Fill: fill, Line: line, LineWidth: lineWidth}
	s.Elements = append(s.Elements, shape)
	return shape
}

// AddTextBox appends a text box
func (s *Slide) AddTextBox(r Rect, paragraphs ...Paragraph) *TextBox {
	tb := &TextBox{Rect: r, Paragraphs: paragraphs}
	s.Elements = append(s.Elements, tb)
	return tb
}

// AddPicture appends a picture
func (s *Slide) AddPicture(r Rect, path, descr string) *Picture {
	pic := &Picture{Rect: r, Path: path, Descr: descr}
	s.Elements = append(s.Elements, pic)
	return pic
}

// Pictures returns the slide's pictures in drawing order
func (s *Slide) Pictures() []*Picture {
	var pics []*Picture
	for _, el := range s.Elements {
		if p, ok := el.(*Picture); ok {
			pics = append(pics, p)
		}
	}
	return pics
}

// Deck is the generated presentation
type Deck struct {
	Title  string
	Width  EMU
	Height EMU
	Slides []*Slide
}

// NewDeck creates an empty deck with the default slide size
func NewDeck(title string) *Deck {
	return &Deck{Title: title, Width: SlideWidth, Height: SlideHeight}
}

// AddSlide appends a blank slide
func (d *Deck) AddSlide() *Slide {
	s := &Slide{}
	d.Slides = append(d.Slides, s)
	return s
}
