package pixel

import (
	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/floats/scalar"
)

// grayTolerance is the per-channel tolerance for the achromatic test,
// expressed in the [0, 1] color range.
const grayTolerance = 1e-6

// IsGrayscalePalette reports whether the palette entries in the
// half-open index range [lo, hi) are all achromatic (R, G and B equal
// within tolerance).
//
// Entries outside [lo, hi) hold undefined values on partially populated
// palettes and are excluded from the test. An empty range is vacuously
// grayscale.
func IsGrayscalePalette(palette [][3]uint8, lo, hi int) bool {
	if lo < 0 {
		lo = 0
	}
	if hi > len(palette) {
		hi = len(palette)
	}
	for i := lo; i < hi; i++ {
		c := paletteColor(palette[i])
		if !scalar.EqualWithinAbs(c.R, c.G, grayTolerance) ||
			!scalar.EqualWithinAbs(c.G, c.B, grayTolerance) {
			return false
		}
	}
	return true
}

// paletteColor lifts an 8-bit palette triple into [0, 1] color space.
func paletteColor(p [3]uint8) colorful.Color {
	return colorful.Color{
		R: float64(p[0]) / 255,
		G: float64(p[1]) / 255,
		B: float64(p[2]) / 255,
	}
}

// luminance converts an RGB triple to 8-bit luminance using the
// ITU-R 601-2 weights.
func luminance(p [3]uint8) uint8 {
	l := (299*int(p[0]) + 587*int(p[1]) + 114*int(p[2]) + 500) / 1000
	if l > 255 {
		l = 255
	}
	return uint8(l)
}
