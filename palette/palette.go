// Package palette maps cell values to colours shared by every frontend.
package palette

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/plus3/blockfall/tetris"
)

var (
	Background = color.RGBA{R: 0x10, G: 0x12, B: 0x1a, A: 0xff}
	Border     = color.RGBA{R: 0x3a, G: 0x3f, B: 0x4f, A: 0xff}
	Text       = color.RGBA{R: 0xe8, G: 0xe8, B: 0xe8, A: 0xff}
)

var black = colorful.Color{}

// hue spreads the seven catalog kinds evenly round the colour wheel.
func hue(v tetris.Cell) float64 {
	n := len(tetris.Kinds())
	return float64((int(v)-1)%n) * 360 / float64(n)
}

func base(v tetris.Cell) colorful.Color {
	return colorful.Hsl(hue(v), 0.75, 0.55)
}

// Cell returns the fill colour of a cell value. Empty cells get the
// background.
func Cell(v tetris.Cell) color.RGBA {
	if v <= tetris.Empty {
		return Background
	}
	return toRGBA(base(v))
}

// Shade darkens the colour of v by t in [0,1], blending in Lab space.
func Shade(v tetris.Cell, t float64) color.RGBA {
	if v <= tetris.Empty {
		return Background
	}
	return toRGBA(base(v).BlendLab(black, min(max(t, 0), 1)).Clamped())
}

func toRGBA(c colorful.Color) color.RGBA {
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}
