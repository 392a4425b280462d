// Package screen turns arbitrary images and text into frames for the 60x9
// pixel panel embedded in the keyboard.
package screen

import (
	"bytes"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"

	"kbscreen/pkg/bitmap"
)

// Panel geometry. The firmware rejects frames of any other size.
const (
	Width  = 60
	Height = 9

	// BytesPerPixel is fixed by the panel's RGB565 format.
	BytesPerPixel = 2
)

var (
	ErrUnsupportedFormat = errors.New("unsupported image format")
	ErrEmptyInput        = errors.New("empty input")
)

// PixelBuffer is one full frame: Width x Height pixels, RGB565 big-endian,
// row-major. It is only ever created at the exact panel size.
type PixelBuffer struct {
	pix []byte
}

// Bytes returns the raw frame, ready for packetizing.
func (b *PixelBuffer) Bytes() []byte {
	return b.pix
}

func (b *PixelBuffer) Len() int {
	return len(b.pix)
}

func (b *PixelBuffer) Pixels() int {
	return len(b.pix) / BytesPerPixel
}

// Decode reads and decodes one image. Undecodable data maps to
// ErrUnsupportedFormat, zero-length input to ErrEmptyInput.
func Decode(r io.Reader) (image.Image, error) {
	bs, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "read image")
	}
	if len(bs) == 0 {
		return nil, ErrEmptyInput
	}

	img, _, err := image.Decode(bytes.NewReader(bs))
	if err != nil {
		return nil, errors.Wrapf(ErrUnsupportedFormat, "decode: %v", err)
	}
	return img, nil
}

// Normalize fits img onto the panel and converts it to the wire format.
// Aspect policy is crop-to-fill: scale so the short side covers the panel,
// then crop around the center (Lanczos resampling).
func Normalize(img image.Image) (*PixelBuffer, error) {
	if img == nil || img.Bounds().Dx() == 0 || img.Bounds().Dy() == 0 {
		return nil, ErrEmptyInput
	}

	filled := imaging.Fill(img, Width, Height, imaging.Center, imaging.Lanczos)
	return &PixelBuffer{pix: bitmap.Encode(filled)}, nil
}
