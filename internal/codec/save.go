package codec

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"golang.org/x/image/tiff"

	"github.com/pixelforge/imgarray/internal/pixel"
)

// Save encodes a tagged image to a destination.
//
// dest may be a path string or an io.Writer. The output format comes
// from formatHint when given ("png", "jpeg", "gif", "tiff", "bmp"),
// otherwise from the path's extension; writer destinations without a
// hint default to lossless PNG.
//
// 16-bit and 32-bit integer modes keep their depth only in PNG and TIFF
// output; other containers are 8-bit and the samples are scaled down.
func Save(im *pixel.TaggedImage, dest any, formatHint string) error {
	var (
		w      io.Writer
		format imaging.Format
		err    error
	)

	switch d := dest.(type) {
	case string:
		hint := formatHint
		if hint == "" {
			hint = filepath.Ext(d)
		}
		format, err = imaging.FormatFromExtension(hint)
		if err != nil {
			return fmt.Errorf("cannot determine output format for %q: %w", d, err)
		}
		f, cerr := os.Create(d)
		if cerr != nil {
			return fmt.Errorf("failed to create %q: %w", d, cerr)
		}
		defer f.Close()
		w = f

	case io.Writer:
		if formatHint == "" {
			formatHint = "png"
		}
		format, err = imaging.FormatFromExtension(formatHint)
		if err != nil {
			return fmt.Errorf("cannot determine output format from hint %q: %w", formatHint, err)
		}
		w = d

	default:
		return fmt.Errorf("unsupported destination type %T (want path string or io.Writer)", dest)
	}

	goImg, err := toGoImage(im, format)
	if err != nil {
		return err
	}

	// TIFF goes through the x/image encoder directly so the output is
	// deflate-compressed; imaging would emit it uncompressed.
	if format == imaging.TIFF {
		if err := tiff.Encode(w, goImg, &tiff.Options{Compression: tiff.Deflate}); err != nil {
			return fmt.Errorf("failed to encode TIFF image: %w", err)
		}
		return nil
	}
	if err := imaging.Encode(w, goImg, format); err != nil {
		return fmt.Errorf("failed to encode %s image: %w", formatName(format), err)
	}
	return nil
}

// toGoImage rebuilds a standard image from the tagged pixel buffer so
// the ecosystem encoders can consume it.
func toGoImage(im *pixel.TaggedImage, format imaging.Format) (image.Image, error) {
	pix, err := im.Bytes()
	if err != nil {
		return nil, err
	}
	w, h := im.Size()
	rect := image.Rect(0, 0, w, h)

	switch {
	case im.Mode == pixel.ModeGray || im.Mode == pixel.ModeMono:
		out := image.NewGray(rect)
		copy(out.Pix, pix)
		return out, nil

	case im.Mode == pixel.ModePalette:
		out := image.NewPaletted(rect, paletteColors(im.Palette))
		copy(out.Pix, pix)
		return out, nil

	case im.Mode.Is16Bit():
		out := image.NewGray16(rect)
		order := im.Mode.ByteOrder()
		for i := 0; i < w*h; i++ {
			v := order.Uint16(pix[2*i:])
			out.Pix[2*i] = uint8(v >> 8) // Gray16 stores big-endian
			out.Pix[2*i+1] = uint8(v)
		}
		if !supports16Bit(format) {
			return flattenGray16(out), nil
		}
		return out, nil

	case im.Mode == pixel.ModeI32:
		// No encoder in the stack stores 32 bits; clamp into 16.
		out := image.NewGray16(rect)
		order := im.Mode.ByteOrder()
		for i := 0; i < w*h; i++ {
			v := int32(order.Uint32(pix[4*i:]))
			if v < 0 {
				v = 0
			} else if v > 0xFFFF {
				v = 0xFFFF
			}
			out.Pix[2*i] = uint8(v >> 8)
			out.Pix[2*i+1] = uint8(v)
		}
		if !supports16Bit(format) {
			return flattenGray16(out), nil
		}
		return out, nil

	case im.Mode == pixel.ModeRGB:
		out := image.NewNRGBA(rect)
		for i := 0; i < w*h; i++ {
			out.Pix[4*i+0] = pix[3*i+0]
			out.Pix[4*i+1] = pix[3*i+1]
			out.Pix[4*i+2] = pix[3*i+2]
			out.Pix[4*i+3] = 0xFF
		}
		return out, nil

	case im.Mode == pixel.ModeRGBA:
		out := image.NewNRGBA(rect)
		copy(out.Pix, pix)
		return out, nil

	case im.Mode == pixel.ModeGrayAlpha:
		out := image.NewNRGBA(rect)
		for i := 0; i < w*h; i++ {
			l, a := pix[2*i], pix[2*i+1]
			out.Pix[4*i+0] = l
			out.Pix[4*i+1] = l
			out.Pix[4*i+2] = l
			out.Pix[4*i+3] = a
		}
		return out, nil

	default:
		return nil, fmt.Errorf("cannot encode pixel mode %q", im.Mode)
	}
}

// supports16Bit reports whether the container keeps 16-bit grayscale
// samples.
func supports16Bit(format imaging.Format) bool {
	return format == imaging.PNG || format == imaging.TIFF
}

// flattenGray16 scales 16-bit samples down to an 8-bit grayscale image.
func flattenGray16(src *image.Gray16) *image.Gray {
	b := src.Bounds()
	out := image.NewGray(b)
	for i := 0; i < len(out.Pix); i++ {
		out.Pix[i] = src.Pix[2*i] // high byte
	}
	return out
}

// paletteColors converts palette triples to the color table form the
// standard library expects.
func paletteColors(palette [][3]uint8) color.Palette {
	out := make(color.Palette, len(palette))
	for i, p := range palette {
		out[i] = color.NRGBA{R: p[0], G: p[1], B: p[2], A: 0xFF}
	}
	return out
}

func formatName(f imaging.Format) string {
	switch f {
	case imaging.JPEG:
		return "JPEG"
	case imaging.PNG:
		return "PNG"
	case imaging.GIF:
		return "GIF"
	case imaging.TIFF:
		return "TIFF"
	case imaging.BMP:
		return "BMP"
	}
	return "image"
}
