package imgio

import (
	"github.com/pixelforge/imgarray/internal/array"
	"github.com/pixelforge/imgarray/internal/codec"
	"github.com/pixelforge/imgarray/internal/pixel"
)

// LoadImage reads an image file into a numeric array.
//
// kind selects the element kind of the result; array.Auto keeps the
// kind natural for the source's pixel mode. Failures to open or decode
// the file surface as pixel.ErrUnreadableSource.
func LoadImage(path string, kind array.Kind) (*array.Array, error) {
	im, err := codec.Open(path)
	if err != nil {
		return nil, err
	}
	return pixel.ToArray(im, kind)
}

// SaveImage writes a numeric array to an image destination.
//
// dest may be a path string or an io.Writer; for writers an empty
// formatHint defaults to lossless PNG. The pixel mode is inferred from
// the array's kind and value range.
func SaveImage(dest any, arr *array.Array, formatHint string) error {
	if _, isPath := dest.(string); !isPath && formatHint == "" {
		formatHint = "png"
	}
	im, _, err := pixel.FromArray(arr, formatHint)
	if err != nil {
		return err
	}
	return codec.Save(im, dest, formatHint)
}

// PreviewImage shows an array in the platform's image viewer.
//
// The array is first converted through the 8-bit byte policy, so float
// arrays are assumed to be in [0, 1] and integer arrays in their native
// range.
func PreviewImage(arr *array.Array) error {
	im, _, err := pixel.FromArray(array.ToUint8(arr), "")
	if err != nil {
		return err
	}
	return codec.Display(im)
}
