package codec

import (
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"

	"github.com/anthonynsimon/bild/clone"
	_ "golang.org/x/image/bmp"  // Register BMP format decoder
	_ "golang.org/x/image/tiff" // Register TIFF format decoder
	_ "golang.org/x/image/webp" // Register WebP format decoder

	"github.com/pixelforge/imgarray/internal/pixel"
)

// Open decodes an image file into a tagged image.
//
// The decoded color model selects the pixel mode:
//   - paletted images keep their index bytes, color table, and the
//     used-index extrema
//   - 8-bit grayscale maps to "L", 16-bit grayscale to "I;16B" (the
//     decoder stores big-endian samples)
//   - images with an alpha channel map to "RGBA"
//   - everything else flattens to 8-bit "RGB"
//
// The open file handle stays attached to the returned image; conversion
// closes it once pixel data has been extracted.
//
// Failures to open or decode surface as pixel.ErrUnreadableSource.
func Open(path string) (*pixel.TaggedImage, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: could not open %q: %v", pixel.ErrUnreadableSource, path, err)
	}

	src, _, err := image.Decode(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: could not decode %q: %v (supported formats: PNG, JPEG, GIF, TIFF, BMP, WebP)",
			pixel.ErrUnreadableSource, path, err)
	}

	im := fromGoImage(src)
	im.SetCloser(f)
	return im, nil
}

// fromGoImage maps a decoded image onto a tagged image, copying pixel
// bytes out of the decoder's buffer.
func fromGoImage(src image.Image) *pixel.TaggedImage {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()

	switch img := src.(type) {
	case *image.Paletted:
		return fromPaletted(img)

	case *image.Gray:
		im := pixel.New(pixel.ModeGray, w, h)
		im.SetBytes(copyRows(img.Pix, img.Stride, b, 1))
		return im

	case *image.Gray16:
		im := pixel.New(pixel.ModeU16BE, w, h)
		im.SetBytes(copyRows(img.Pix, img.Stride, b, 2))
		return im

	case *image.NRGBA:
		im := pixel.New(pixel.ModeRGBA, w, h)
		im.SetBytes(copyRows(img.Pix, img.Stride, b, 4))
		return im

	default:
		// Premultiplied, YCbCr, CMYK and deep color models all flatten
		// through an 8-bit RGBA clone.
		rgba := clone.AsRGBA(src)
		if hasAlpha(rgba) {
			// The clone is alpha-premultiplied; the RGBA tag stores
			// straight alpha, so draw through NRGBA to divide it out.
			nrgba := image.NewNRGBA(image.Rect(0, 0, w, h))
			draw.Draw(nrgba, nrgba.Bounds(), src, b.Min, draw.Src)
			im := pixel.New(pixel.ModeRGBA, w, h)
			im.SetBytes(copyRows(nrgba.Pix, nrgba.Stride, nrgba.Bounds(), 4))
			return im
		}
		im := pixel.New(pixel.ModeRGB, w, h)
		pix := make([]byte, 0, w*h*3)
		for y := 0; y < h; y++ {
			row := rgba.Pix[y*rgba.Stride : y*rgba.Stride+w*4]
			for x := 0; x < w; x++ {
				pix = append(pix, row[x*4], row[x*4+1], row[x*4+2])
			}
		}
		im.SetBytes(pix)
		return im
	}
}

// fromPaletted keeps a paletted image in index form, padding the color
// table to 256 entries and recording the half-open range of indices the
// pixel data actually uses.
func fromPaletted(img *image.Paletted) *pixel.TaggedImage {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	im := pixel.New(pixel.ModePalette, w, h)
	pix := copyRows(img.Pix, img.Stride, b, 1)
	im.SetBytes(pix)

	palette := make([][3]uint8, 256)
	for i, c := range img.Palette {
		if i >= 256 {
			break
		}
		r, g, bl, _ := c.RGBA()
		palette[i] = [3]uint8{uint8(r >> 8), uint8(g >> 8), uint8(bl >> 8)}
	}
	im.Palette = palette

	if len(pix) > 0 {
		lo, hi := int(pix[0]), int(pix[0])
		for _, idx := range pix {
			if int(idx) < lo {
				lo = int(idx)
			}
			if int(idx) > hi {
				hi = int(idx)
			}
		}
		im.Extrema = [2]int{lo, hi + 1}
	}
	return im
}

// copyRows extracts a contiguous pixel buffer from a possibly strided
// decoder buffer.
func copyRows(src []byte, stride int, b image.Rectangle, bpp int) []byte {
	w, h := b.Dx(), b.Dy()
	out := make([]byte, 0, w*h*bpp)
	for y := 0; y < h; y++ {
		off := y * stride
		out = append(out, src[off:off+w*bpp]...)
	}
	return out
}

// hasAlpha reports whether any pixel of an RGBA buffer is not fully
// opaque.
func hasAlpha(img *image.RGBA) bool {
	b := img.Bounds()
	for y := 0; y < b.Dy(); y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+b.Dx()*4]
		for x := 3; x < len(row); x += 4 {
			if row[x] != 0xFF {
				return true
			}
		}
	}
	return false
}
