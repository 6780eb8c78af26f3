package pills

import (
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// Measurer reports the rendered width of a pill label
type Measurer interface {
	Width(label string) int
}

// FontMeasurer measures labels with a fixed bitmap font face plus padding
type FontMeasurer struct {
	face    font.Face
	padding int
}

// NewFontMeasurer creates a measurer using the 7x13 basic face. padding is
// added to every label to account for the pill's horizontal chrome.
func NewFontMeasurer(padding int) *FontMeasurer {
	if padding < 0 {
		padding = 0
	}
	return &FontMeasurer{
		face:    basicfont.Face7x13,
		padding: padding,
	}
}

// Width returns the label advance rounded up, plus padding
func (m *FontMeasurer) Width(label string) int {
	return font.MeasureString(m.face, label).Ceil() + m.padding
}

// MeasureFunc adapts a function to the Measurer interface
type MeasureFunc func(label string) int

// Width calls f(label)
func (f MeasureFunc) Width(label string) int {
	return f(label)
}
