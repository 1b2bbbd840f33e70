// Package pixel implements the format negotiation between tagged images
// and numeric arrays.
//
// A TaggedImage pairs raw pixel bytes with a Mode tag that fully
// determines their layout (PIL-style tags: "L", "P", "RGB", "I;16B",
// ...). The two conversions are:
//
//   - ToArray: TaggedImage -> Array, normalizing palette, monochrome,
//     multi-byte and alpha-bearing modes before extraction.
//   - FromArray: Array -> TaggedImage, selecting the pixel mode from an
//     ordered decision table and packing the bytes accordingly.
//
// Both conversions are total and non-aliasing: they produce fresh
// outputs and never mutate their inputs. Neither retains state between
// calls, so independent images may be converted concurrently.
//
// # Size Convention
//
// TaggedImage sizes are (width, height); array shapes are
// (height, width[, channels]). The conversions flip between the two
// conventions, so a 640x480 image becomes a (480, 640) array.
//
// # Errors
//
// ErrUnreadableSource wraps any failure to materialize pixel data;
// ErrInvalidShape rejects arrays that cannot represent an image. Both
// are surfaced immediately and never retried.
package pixel
