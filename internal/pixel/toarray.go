package pixel

import (
	"fmt"
	"math"

	"github.com/pixelforge/imgarray/internal/array"
)

// ToArray converts a tagged image into a numeric array.
//
// The mode-normalization rules apply in priority order before pixels
// are extracted:
//
//  1. Palette images reinterpret as 8-bit luminance when the used part
//     of the palette is achromatic, otherwise expand to 3-channel RGB.
//  2. 1-bit bilevel images reinterpret as 8-bit luminance.
//  3. 16-bit integer images read their raw bytes in the mode's declared
//     byte order; the caller's kind request does not apply.
//  4. Any alpha-bearing mode expands to 4-channel RGBA.
//  5. Everything else extracts at the mode's natural kind, then
//     converts to the requested kind if one was given.
//
// The resulting shape is (height, width) or (height, width, channels),
// inverted from the image's stored (width, height) size.
//
// If the image holds an open file handle it is closed on every exit
// path, success or failure. Failure to produce pixel data surfaces as
// ErrUnreadableSource; no partial output is ever returned.
func ToArray(im *TaggedImage, kind array.Kind) (*array.Array, error) {
	defer im.Close()

	pix, err := im.Bytes()
	if err != nil {
		return nil, fmt.Errorf("cannot extract pixel data: %w (check that the file is intact and its format is supported)", err)
	}
	h, w := im.Height, im.Width

	var out *array.Array
	switch {
	case im.Mode == ModePalette:
		out = expandPalette(im, pix)

	case im.Mode == ModeMono:
		// Bilevel bytes are already 0 or 255; relabel as luminance.
		out = array.New(array.Uint8, h, w)
		for i, b := range pix {
			out.Data[i] = float64(b)
		}

	case im.Mode.Is16Bit():
		order := im.Mode.ByteOrder()
		out = array.New(array.Uint16, h, w)
		for i := range out.Data {
			out.Data[i] = float64(order.Uint16(pix[2*i:]))
		}
		// The byte order fixed the kind; ignore any override.
		return out, nil

	case im.Mode.HasAlpha():
		out = expandAlpha(im, pix)

	case im.Mode == ModeGray:
		out = array.New(array.Uint8, h, w)
		for i, b := range pix {
			out.Data[i] = float64(b)
		}

	case im.Mode == ModeRGB:
		out = array.New(array.Uint8, h, w, 3)
		for i, b := range pix {
			out.Data[i] = float64(b)
		}

	case im.Mode == ModeI32:
		order := im.Mode.ByteOrder()
		out = array.New(array.Int32, h, w)
		for i := range out.Data {
			out.Data[i] = float64(int32(order.Uint32(pix[4*i:])))
		}

	case im.Mode == ModeFloat:
		order := im.Mode.ByteOrder()
		out = array.New(array.Float64, h, w)
		for i := range out.Data {
			out.Data[i] = float64(math.Float32frombits(order.Uint32(pix[4*i:])))
		}

	default:
		return nil, fmt.Errorf("%w: unsupported pixel mode %q", ErrUnreadableSource, im.Mode)
	}

	if kind != array.Auto && kind != out.Kind {
		out = array.Convert(out, kind)
	}
	return out, nil
}

// expandPalette resolves palette indices through the color table,
// producing either a grayscale or an RGB array depending on whether the
// used palette entries are achromatic.
func expandPalette(im *TaggedImage, pix []byte) *array.Array {
	h, w := im.Height, im.Width
	if IsGrayscalePalette(im.Palette, im.Extrema[0], im.Extrema[1]) {
		out := array.New(array.Uint8, h, w)
		for i, idx := range pix {
			out.Data[i] = float64(luminance(im.paletteEntry(idx)))
		}
		return out
	}
	out := array.New(array.Uint8, h, w, 3)
	for i, idx := range pix {
		p := im.paletteEntry(idx)
		out.Data[3*i+0] = float64(p[0])
		out.Data[3*i+1] = float64(p[1])
		out.Data[3*i+2] = float64(p[2])
	}
	return out
}

// paletteEntry returns the color table entry for an index, tolerating
// short palettes.
func (im *TaggedImage) paletteEntry(idx uint8) [3]uint8 {
	if int(idx) >= len(im.Palette) {
		return [3]uint8{}
	}
	return im.Palette[idx]
}

// expandAlpha widens any alpha-bearing layout to 4-channel RGBA.
func expandAlpha(im *TaggedImage, pix []byte) *array.Array {
	h, w := im.Height, im.Width
	out := array.New(array.Uint8, h, w, 4)
	switch im.Mode {
	case ModeGrayAlpha:
		for i := 0; i < h*w; i++ {
			l, a := float64(pix[2*i]), float64(pix[2*i+1])
			out.Data[4*i+0] = l
			out.Data[4*i+1] = l
			out.Data[4*i+2] = l
			out.Data[4*i+3] = a
		}
	default: // ModeRGBA
		for i, b := range pix {
			out.Data[i] = float64(b)
		}
	}
	return out
}
