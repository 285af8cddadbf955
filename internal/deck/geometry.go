package deck

import "math"

// EMU is the Office drawing unit: 914400 per inch, 12700 per point
type EMU int64

const (
	emuPerInch  = 914400
	emuPerPoint = 12700
)

// Default 4:3 slide
var (
	SlideWidth  = Inches(10)
	SlideHeight = Inches(7.5)
)

// Inches converts inches to EMU
func Inches(v float64) EMU {
	return EMU(math.Round(v * emuPerInch))
}

// Pt converts points to EMU
func Pt(v float64) EMU {
	return EMU(math.Round(v * emuPerPoint))
}

// Inches converts back to inches
func (e EMU) Inches() float64 {
	return float64(e) / emuPerInch
}

// Rect is a position and size on the slide
type Rect struct {
	X, Y, W, H EMU
}

// R builds a Rect from inch values
func R(x, y, w, h float64) Rect {
	return Rect{X: Inches(x), Y: Inches(y), W: Inches(w), H: Inches(h)}
}
