// Package codec adapts the image decoding and encoding ecosystem to the
// tagged-image type used by the conversion core.
//
// Open decodes a file (PNG, JPEG, GIF, TIFF, BMP, or WebP) into a
// TaggedImage, mapping each decoded color model onto a pixel mode and
// keeping the file handle attached so conversion can release it. Save
// does the reverse, choosing an encoder from the format hint or the
// destination's extension. Display hands an image to the platform
// viewer.
//
// The core treats this package as an opaque collaborator: decode
// failures of any sort surface as a single ErrUnreadableSource
// condition, and no error is retried.
package codec
