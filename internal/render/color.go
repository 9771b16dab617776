package render

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// HSBA is a colour in the hue/saturation/brightness/alpha model the
// sketches are written in: hue 0-360, the other channels 0-100.
type HSBA struct {
	H, S, B, A float64
}

// HSB returns an opaque colour.
func HSB(h, s, b float64) HSBA {
	return HSBA{H: h, S: s, B: b, A: 100}
}

// NRGBA converts c to a straight-alpha RGBA colour.
func (c HSBA) NRGBA() color.NRGBA {
	h := math.Mod(c.H, 360)
	if h < 0 {
		h += 360
	}
	if math.IsNaN(h) {
		h = 0
	}
	r, g, b := colorful.Hsv(h, clamp01(c.S/100), clamp01(c.B/100)).RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(clamp01(c.A/100)*255 + 0.5)}
}

// RGBA implements color.Color.
func (c HSBA) RGBA() (r, g, b, a uint32) {
	return c.NRGBA().RGBA()
}

// Black is the canvas background.
var Black = HSBA{A: 100}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
