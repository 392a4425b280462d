package bitmap

import (
	"image"
	"image/color"
)

func NewRGB565(r image.Rectangle) *RGB565 {
	return &RGB565{
		pixels: make([]byte, 2*r.Dx()*r.Dy()),
		stride: 2 * r.Dx(),
		bounds: r,
	}
}

// RGB565 is a frame held in the panel's native pixel format. It implements
// the draw.Image interface.
type RGB565 struct {
	pixels []byte
	stride int
	bounds image.Rectangle
}

func (d *RGB565) Bounds() image.Rectangle {
	return d.bounds
}

func (d *RGB565) ColorModel() color.Model {
	return color.ModelFunc(func(c color.Color) color.Color {
		r, g, b, _ := c.RGBA()
		return toRGB565(r, g, b)
	})
}

func (d *RGB565) At(x, y int) color.Color {
	if x < d.bounds.Min.X || x >= d.bounds.Max.X ||
		y < d.bounds.Min.Y || y >= d.bounds.Max.Y {
		return rgb565(0)
	}
	i := y*d.stride + 2*x
	return rgb565(d.pixels[i])<<8 | rgb565(d.pixels[i+1])
}

// Set stores the pixel with the high byte first, which is the order the
// keyboard firmware reads 16-bit values in.
func (d *RGB565) Set(x, y int, c color.Color) {
	if x >= 0 && x < d.bounds.Max.X &&
		y >= 0 && y < d.bounds.Max.Y {
		r, g, b, a := c.RGBA()
		if a > 0 {
			rgb := toRGB565(r, g, b)
			i := y*d.stride + 2*x
			d.pixels[i] = byte(rgb >> 8)
			d.pixels[i+1] = byte(rgb & 0xFF)
		}
	}
}

// Pix exposes the raw pixel bytes in row-major order.
func (d *RGB565) Pix() []byte {
	return d.pixels
}

// toRGB565 keeps the highest 5 or 6 bits of each 16-bit channel.
//
//	bit 76543210  76543210
//	    RRRRRGGG  GGGBBBBB
//	   high byte  low byte
func toRGB565(r, g, b uint32) rgb565 {
	return rgb565((r & 0xF800) +
		((g & 0xFC00) >> 5) +
		((b & 0xF800) >> 11))
}

// rgb565 implements the color.Color interface.
type rgb565 uint16

// RGBA widens each channel back to 16 bits by repeating its bit pattern, so
// the 5/6-bit minimum and maximum map to the 16-bit minimum and maximum.
// There is no alpha channel, the panel is always opaque.
func (c rgb565) RGBA() (r, g, b, a uint32) {
	rBits := uint32(c & 0xF800) // RRRRR00000000000
	gBits := uint32(c & 0x7E0)  // 00000GGGGGG00000
	bBits := uint32(c & 0x1F)   // 00000000000BBBBB
	r = rBits | rBits>>5 | rBits>>10 | rBits>>15
	g = gBits<<5 | gBits>>1 | gBits>>7
	b = bBits<<11 | bBits<<6 | bBits<<1 | bBits>>4
	a = 0xFFFF
	return
}
