package pixel

import (
	"encoding/binary"
	"strings"

	"github.com/pixelforge/imgarray/internal/array"
)

// Mode tags how raw bytes map to pixel values.
//
// Storage names the byte layout ("I;16B" is big-endian 16-bit); Base
// names the logical sample type it stores ("I" for integer). For most
// modes the two coincide.
type Mode struct {
	Storage string
	Base    string
}

// The supported pixel modes.
var (
	ModeMono      = Mode{"1", "1"}       // 1-bit bilevel, stored one byte per pixel (0 or 255)
	ModeGray      = Mode{"L", "L"}       // 8-bit luminance
	ModePalette   = Mode{"P", "P"}       // 8-bit index into a color table
	ModeGrayAlpha = Mode{"LA", "LA"}     // 8-bit luminance with alpha
	ModeRGB       = Mode{"RGB", "RGB"}   // 3x8-bit interleaved color
	ModeRGBA      = Mode{"RGBA", "RGBA"} // 4x8-bit interleaved color with alpha
	ModeU16       = Mode{"I;16", "I"}    // 16-bit unsigned integer, little-endian
	ModeU16BE     = Mode{"I;16B", "I"}   // 16-bit unsigned integer, big-endian
	ModeU16LE     = Mode{"I;16L", "I"}   // 16-bit unsigned integer, little-endian (explicit)
	ModeI32       = Mode{"I", "I"}       // 32-bit signed integer, little-endian
	ModeFloat     = Mode{"F", "F"}       // 32-bit float, little-endian
)

// String returns the storage tag.
func (m Mode) String() string { return m.Storage }

// HasAlpha reports whether the mode carries an alpha channel.
func (m Mode) HasAlpha() bool { return strings.Contains(m.Storage, "A") }

// Is16Bit reports whether the mode stores multi-byte 16-bit samples.
func (m Mode) Is16Bit() bool { return strings.HasPrefix(m.Storage, "I;16") }

// ByteOrder returns the byte order of multi-byte samples. Only "I;16B"
// is big-endian; every other multi-byte layout is little-endian.
func (m Mode) ByteOrder() binary.ByteOrder {
	if strings.HasSuffix(m.Storage, "B") && m.Is16Bit() {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// Channels returns the number of interleaved samples per pixel.
func (m Mode) Channels() int {
	switch m.Storage {
	case "RGB":
		return 3
	case "RGBA":
		return 4
	case "LA":
		return 2
	default:
		return 1
	}
}

// BytesPerPixel returns the storage width of one pixel in bytes.
func (m Mode) BytesPerPixel() int {
	switch {
	case m.Is16Bit():
		return 2
	case m.Storage == "I" || m.Storage == "F":
		return 4
	default:
		return m.Channels()
	}
}

// NaturalKind returns the element kind that represents this mode's
// samples without loss.
func (m Mode) NaturalKind() array.Kind {
	switch {
	case m.Is16Bit():
		return array.Uint16
	case m.Storage == "I":
		return array.Int32
	case m.Storage == "F":
		return array.Float64
	default:
		return array.Uint8
	}
}
