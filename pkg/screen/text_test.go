package screen

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func inkBounds(t *testing.T, img image.Image) (minX, maxX int) {
	t.Helper()
	minX, maxX = -1, -1
	b := img.Bounds()
	for x := b.Min.X; x < b.Max.X; x++ {
		for y := b.Min.Y; y < b.Max.Y; y++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			if r|g|bl != 0 {
				if minX == -1 {
					minX = x
				}
				maxX = x
			}
		}
	}
	require.NotEqual(t, -1, minX, "expected some glyph pixels")
	return minX, maxX
}

func TestParseAlign(t *testing.T) {
	for name, want := range map[string]Align{
		"left":   AlignLeft,
		"center": AlignCenter,
		"right":  AlignRight,
	} {
		got, err := ParseAlign(name)
		assert.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseAlign("justified")
	assert.Error(t, err)
}

func TestRenderTextAlignment(t *testing.T) {
	white := color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	seg := []Segment{{Text: "W", Color: white}}

	left, err := RenderText(seg, AlignLeft)
	require.NoError(t, err)
	right, err := RenderText(seg, AlignRight)
	require.NoError(t, err)

	lMin, _ := inkBounds(t, left)
	_, rMax := inkBounds(t, right)

	assert.Less(t, lMin, Width/2)
	assert.Greater(t, rMax, Width/2)
}

func TestRenderTextCanvasSize(t *testing.T) {
	img, err := RenderText([]Segment{{Text: "hi", Color: color.White}}, AlignCenter)
	require.NoError(t, err)

	assert.Equal(t, Width, img.Bounds().Dx())
	assert.Equal(t, Height, img.Bounds().Dy())
}

func TestRenderTextSegmentColors(t *testing.T) {
	img, err := RenderText([]Segment{
		{Text: "A", Color: color.RGBA{R: 0xFF, A: 0xFF}},
		{Text: "B", Color: color.RGBA{G: 0xFF, A: 0xFF}},
	}, AlignLeft)
	require.NoError(t, err)

	var sawRed, sawGreen bool
	b := img.Bounds()
	for x := b.Min.X; x < b.Max.X; x++ {
		for y := b.Min.Y; y < b.Max.Y; y++ {
			r, g, _, _ := img.At(x, y).RGBA()
			if r > 0 && g == 0 {
				sawRed = true
			}
			if g > 0 && r == 0 {
				sawGreen = true
			}
		}
	}
	assert.True(t, sawRed)
	assert.True(t, sawGreen)
}

func TestRenderTextEmpty(t *testing.T) {
	_, err := RenderText(nil, AlignLeft)
	assert.ErrorIs(t, err, ErrEmptyInput)

	_, err = RenderText([]Segment{{Text: "", Color: color.White}}, AlignLeft)
	assert.ErrorIs(t, err, ErrEmptyInput)
}
