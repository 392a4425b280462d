package screen

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solid(w, h int, c color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	return img
}

func TestNormalizeBlackFrame(t *testing.T) {
	buf, err := Normalize(solid(Width, Height, color.Black))
	require.NoError(t, err)

	assert.Equal(t, 540, buf.Pixels())
	assert.Equal(t, Width*Height*BytesPerPixel, buf.Len())
	for _, b := range buf.Bytes() {
		assert.Zero(t, b)
	}
}

func TestNormalizeResizesToPanel(t *testing.T) {
	red := color.RGBA{R: 0xFF, A: 0xFF}
	buf, err := Normalize(solid(240, 36, red))
	require.NoError(t, err)

	require.Equal(t, Width*Height*BytesPerPixel, buf.Len())
	bs := buf.Bytes()
	for i := 0; i < len(bs); i += 2 {
		assert.Equal(t, byte(0xF8), bs[i])
		assert.Equal(t, byte(0x00), bs[i+1])
	}
}

func TestNormalizeEmptyInput(t *testing.T) {
	_, err := Normalize(nil)
	assert.ErrorIs(t, err, ErrEmptyInput)

	_, err = Normalize(image.NewRGBA(image.Rect(0, 0, 0, 0)))
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestDecodeUnsupportedFormat(t *testing.T) {
	_, err := Decode(bytes.NewReader([]byte("definitely not an image")))
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
}

func TestDecodeEmptyInput(t *testing.T) {
	_, err := Decode(bytes.NewReader(nil))
	assert.ErrorIs(t, err, ErrEmptyInput)
}
