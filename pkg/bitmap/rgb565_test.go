package bitmap

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

var knownColors = []struct {
	name string
	in   color.RGBA
	hi   byte
	lo   byte
}{
	{"black", color.RGBA{A: 0xFF}, 0x00, 0x00},
	{"white", color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}, 0xFF, 0xFF},
	{"red", color.RGBA{R: 0xFF, A: 0xFF}, 0xF8, 0x00},
	{"green", color.RGBA{G: 0xFF, A: 0xFF}, 0x07, 0xE0},
	{"blue", color.RGBA{B: 0xFF, A: 0xFF}, 0x00, 0x1F},
}

func TestEncodeKnownColors(t *testing.T) {
	for _, tc := range knownColors {
		t.Run(tc.name, func(t *testing.T) {
			img := image.NewRGBA(image.Rect(0, 0, 1, 1))
			img.Set(0, 0, tc.in)

			bs := Encode(img)
			assert.Equal(t, []byte{tc.hi, tc.lo}, bs)
		})
	}
}

func TestEncodeRowMajor(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 0xFF, A: 0xFF})
	img.Set(1, 0, color.RGBA{G: 0xFF, A: 0xFF})
	img.Set(0, 1, color.RGBA{B: 0xFF, A: 0xFF})
	img.Set(1, 1, color.RGBA{A: 0xFF})

	bs := Encode(img)
	assert.Equal(t, []byte{
		0xF8, 0x00, 0x07, 0xE0,
		0x00, 0x1F, 0x00, 0x00,
	}, bs)
}

func TestSetAtRoundTrip(t *testing.T) {
	d := NewRGB565(image.Rect(0, 0, 4, 4))
	d.Set(2, 3, color.RGBA{R: 0xFF, G: 0x80, A: 0xFF})

	r, g, b, a := d.At(2, 3).RGBA()
	assert.Equal(t, uint32(0xFFFF), r)
	assert.Equal(t, uint32(0xFFFF), a)
	assert.InDelta(t, 0x8000, int(g), 0x800)
	assert.Equal(t, uint32(0), b)
}

func TestAtOutOfBounds(t *testing.T) {
	d := NewRGB565(image.Rect(0, 0, 2, 2))
	r, g, b, _ := d.At(5, 5).RGBA()
	assert.Zero(t, r)
	assert.Zero(t, g)
	assert.Zero(t, b)
}
