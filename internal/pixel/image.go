package pixel

import (
	"errors"
	"fmt"
	"io"
)

// Error kinds surfaced by the conversions. Callers test them with
// errors.Is; the wrapped messages carry the user-facing detail.
var (
	// ErrUnreadableSource means the source image cannot produce pixel
	// data (corrupt file, missing decoder, truncated buffer).
	ErrUnreadableSource = errors.New("unreadable image source")

	// ErrInvalidShape means an array's rank or channel count cannot
	// represent an image.
	ErrInvalidShape = errors.New("invalid image array shape")
)

// TaggedImage is a raster image carrying an explicit pixel-format tag
// plus raw bytes.
//
// Palette and Extrema are meaningful only in ModePalette; Extrema is
// the half-open [lo, hi) range of palette indices actually used by the
// pixel data. Entries outside that range hold junk values.
type TaggedImage struct {
	Mode    Mode
	Width   int
	Height  int
	Palette [][3]uint8 // up to 256 RGB triples; ModePalette only
	Extrema [2]int     // used palette index range [lo, hi); ModePalette only

	pix    []byte
	closer io.Closer
}

// New allocates a zero-filled tagged image of the given mode and size.
func New(mode Mode, width, height int) *TaggedImage {
	return &TaggedImage{
		Mode:   mode,
		Width:  width,
		Height: height,
		pix:    make([]byte, width*height*mode.BytesPerPixel()),
	}
}

// Size returns the stored (width, height).
func (im *TaggedImage) Size() (w, h int) { return im.Width, im.Height }

// Bytes materializes the raw pixel buffer.
//
// The returned slice is the image's backing store; callers must copy it
// before mutating. Fails with ErrUnreadableSource when no pixel data is
// available or the buffer does not match the declared mode and size.
func (im *TaggedImage) Bytes() ([]byte, error) {
	if im.pix == nil {
		return nil, fmt.Errorf("%w: no pixel data", ErrUnreadableSource)
	}
	if want := im.Width * im.Height * im.Mode.BytesPerPixel(); len(im.pix) != want {
		return nil, fmt.Errorf("%w: pixel buffer holds %d bytes, mode %s at %dx%d needs %d",
			ErrUnreadableSource, len(im.pix), im.Mode, im.Width, im.Height, want)
	}
	return im.pix, nil
}

// SetBytes replaces the raw pixel buffer. The slice is retained, not
// copied.
func (im *TaggedImage) SetBytes(pix []byte) { im.pix = pix }

// SetCloser attaches the underlying file handle so that conversion can
// release it when pixel data has been extracted.
func (im *TaggedImage) SetCloser(c io.Closer) { im.closer = c }

// Close releases the underlying file handle, if any. Safe to call more
// than once.
func (im *TaggedImage) Close() error {
	if im.closer == nil {
		return nil
	}
	c := im.closer
	im.closer = nil
	return c.Close()
}
