package pixel

import (
	"fmt"

	"github.com/pixelforge/imgarray/internal/array"
)

// modeRule is one row of the mode-selection decision table: when match
// returns true the rule prepares the array for packing and names the
// pixel mode to pack it into.
type modeRule struct {
	match func(a *array.Array) bool
	apply func(a *array.Array) (*array.Array, Mode)
}

// modeRules is evaluated in order; the first matching rule wins. The
// ordering is load-bearing: a 2-D float array always takes the 16-bit
// path even when its scaled values would fit in 8 bits.
var modeRules = []modeRule{
	{
		// Color arrays rescale to 8-bit and keep their channel count.
		match: func(a *array.Array) bool { return a.Rank() == 3 },
		apply: func(a *array.Array) (*array.Array, Mode) {
			if a.Shape[2] == 4 {
				return array.ToUint8(a), ModeRGBA
			}
			return array.ToUint8(a), ModeRGB
		},
	},
	{
		// Floating grayscale widens to the full 16-bit range.
		match: func(a *array.Array) bool { return a.Kind == array.Float64 },
		apply: func(a *array.Array) (*array.Array, Mode) {
			return array.ToUint16(a), ModeU16
		},
	},
	{
		// Integer grayscale that fits a byte stays 8-bit luminance.
		match: func(a *array.Array) bool { return a.Min() >= 0 && a.Max() < 256 },
		apply: func(a *array.Array) (*array.Array, Mode) {
			return array.Cast(a, array.Uint8), ModeGray
		},
	},
	{
		// Integer grayscale that fits 16 bits stores as unsigned short.
		match: func(a *array.Array) bool { return a.Min() >= 0 && a.Max() < 65536 },
		apply: func(a *array.Array) (*array.Array, Mode) {
			return array.Cast(a, array.Uint16), ModeU16
		},
	},
	{
		// Everything else (negative or wide values) falls back to
		// signed 32-bit storage.
		match: func(a *array.Array) bool { return true },
		apply: func(a *array.Array) (*array.Array, Mode) {
			return array.ToInt32(a), ModeI32
		},
	},
}

// FromArray converts a numeric array into a tagged image, returning the
// image together with the pixel mode that was selected for it.
//
// Trailing length-1 dimensions are squeezed away first. The array must
// then be 2-D, or 3-D with 3 or 4 channels; anything else fails with
// ErrInvalidShape and no output.
//
// formatHint names a destination container for the caller's benefit; it
// does not influence mode selection.
func FromArray(arr *array.Array, formatHint string) (*TaggedImage, Mode, error) {
	a := arr.SqueezeTrailing()

	if a.Rank() != 2 && a.Rank() != 3 {
		return nil, Mode{}, fmt.Errorf("%w: image array must be 2-D or 3-D, got shape %v", ErrInvalidShape, a.Shape)
	}
	if a.Rank() == 3 && a.Shape[2] != 3 && a.Shape[2] != 4 {
		return nil, Mode{}, fmt.Errorf("%w: image array must have 3 or 4 channels, got %d", ErrInvalidShape, a.Shape[2])
	}

	// A multi-page container hint ("tiff") is accepted here but does
	// not take part in mode selection.
	_ = formatHint

	for _, rule := range modeRules {
		if !rule.match(a) {
			continue
		}
		conv, mode := rule.apply(a)
		return pack(conv, mode), mode, nil
	}
	// Unreachable: the last rule always matches.
	return nil, Mode{}, fmt.Errorf("%w: no pixel mode for shape %v", ErrInvalidShape, a.Shape)
}

// pack serializes a prepared array into a fresh tagged image of the
// given mode. The image size is the reversed array shape: shape
// (height, width) becomes size (width, height), with the bytes laid out
// row-major.
func pack(a *array.Array, mode Mode) *TaggedImage {
	im := New(mode, a.Shape[1], a.Shape[0])
	switch {
	case mode.Is16Bit():
		order := mode.ByteOrder()
		for i, v := range a.Data {
			order.PutUint16(im.pix[2*i:], uint16(v))
		}
	case mode == ModeI32:
		order := mode.ByteOrder()
		for i, v := range a.Data {
			order.PutUint32(im.pix[4*i:], uint32(int32(v)))
		}
	default:
		for i, v := range a.Data {
			im.pix[i] = uint8(v)
		}
	}
	return im
}
