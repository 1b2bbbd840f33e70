// Package array provides the numeric pixel array type shared by the
// conversion pipeline, plus the range-conversion policies that rescale
// values between element kinds.
//
// An Array is a rectangular buffer with an explicit shape and element
// kind. 2-D arrays are grayscale images; 3-D arrays carry 3 (RGB) or
// 4 (RGBA) channels in the last dimension. Values are stored row-major
// in a flat float64 slice regardless of kind: float64 represents every
// supported integer range exactly, so no precision is lost and all
// numeric helpers operate on one storage type.
//
// # Element Kinds
//
// The Kind tag, not the storage type, defines the canonical value range:
//   - Uint8: [0, 255]
//   - Uint16: [0, 65535]
//   - Int32: [-2147483648, 2147483647]
//   - Float64: [0, 1]
//
// # Range Policies
//
// ToUint8, ToUint16, ToInt32 and ToFloat64 rescale an array into the
// target kind's canonical range. Floating-point inputs are treated as
// already being in [0, 1]; integer inputs as already being in their
// native range. Out-of-range values are clamped, never wrapped.
package array
