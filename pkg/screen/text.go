package screen

import (
	"image"
	"image/color"

	"github.com/pkg/errors"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

func ParseAlign(s string) (Align, error) {
	switch s {
	case "left":
		return AlignLeft, nil
	case "center":
		return AlignCenter, nil
	case "right":
		return AlignRight, nil
	}
	return AlignLeft, errors.Errorf("unknown alignment %q", s)
}

// Segment is a run of text in one color.
type Segment struct {
	Text  string
	Color color.Color
}

// RenderText lays the segments left to right on a black panel-sized canvas.
// The panel is shorter than the font, glyphs are clipped to the middle rows.
func RenderText(segments []Segment, align Align) (image.Image, error) {
	if len(segments) == 0 {
		return nil, ErrEmptyInput
	}

	face := basicfont.Face7x13

	var total int
	for _, s := range segments {
		total += font.MeasureString(face, s.Text).Ceil()
	}
	if total == 0 {
		return nil, ErrEmptyInput
	}

	var x int
	switch align {
	case AlignCenter:
		x = (Width - total) / 2
	case AlignRight:
		x = Width - total
	}

	canvas := image.NewRGBA(image.Rect(0, 0, Width, Height))
	for _, s := range segments {
		d := &font.Drawer{
			Dst:  canvas,
			Src:  image.NewUniform(s.Color),
			Face: face,
			Dot:  fixed.P(x, Height-1),
		}
		d.DrawString(s.Text)
		x += font.MeasureString(face, s.Text).Ceil()
	}

	return canvas, nil
}
