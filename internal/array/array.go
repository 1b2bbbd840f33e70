package array

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// Kind identifies the element kind of an Array.
//
// Auto is only meaningful as a conversion target: it requests whatever
// kind is natural for the source and is never the kind of a concrete
// Array.
type Kind int

const (
	Auto Kind = iota
	Uint8
	Uint16
	Int32
	Float64
)

// String returns the lowercase name of the kind ("uint8", "uint16",
// "int32", "float64", or "auto").
func (k Kind) String() string {
	switch k {
	case Uint8:
		return "uint8"
	case Uint16:
		return "uint16"
	case Int32:
		return "int32"
	case Float64:
		return "float64"
	default:
		return "auto"
	}
}

// ParseKind converts a kind name (as produced by Kind.String) back to a
// Kind. An empty string parses as Auto.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(s) {
	case "", "auto":
		return Auto, nil
	case "uint8":
		return Uint8, nil
	case "uint16":
		return Uint16, nil
	case "int32":
		return Int32, nil
	case "float64":
		return Float64, nil
	}
	return Auto, fmt.Errorf("unknown element kind: %q", s)
}

// ByteWidth returns the serialized width of one element in bytes.
func (k Kind) ByteWidth() int {
	switch k {
	case Uint8:
		return 1
	case Uint16:
		return 2
	case Int32:
		return 4
	default:
		return 8
	}
}

// Array is a rectangular numeric buffer with a shape and element kind.
//
// Data is stored row-major: for a 2-D array the element at (row, col)
// lives at index row*Shape[1]+col; 3-D arrays interleave channels in
// the last dimension.
type Array struct {
	Shape []int     // Dimension sizes, outermost first
	Kind  Kind      // Element kind (defines the canonical value range)
	Data  []float64 // Flat row-major values
}

// New allocates a zero-filled array with the given kind and shape.
func New(kind Kind, shape ...int) *Array {
	n := 1
	for _, d := range shape {
		n *= d
	}
	return &Array{
		Shape: append([]int(nil), shape...),
		Kind:  kind,
		Data:  make([]float64, n),
	}
}

// FromValues builds an array around the given values.
//
// Returns an error if the value count does not match the shape product.
// The values slice is copied, not retained.
func FromValues(kind Kind, shape []int, values []float64) (*Array, error) {
	a := New(kind, shape...)
	if len(values) != len(a.Data) {
		return nil, fmt.Errorf("value count %d does not match shape %v", len(values), shape)
	}
	copy(a.Data, values)
	return a, nil
}

// Rank returns the number of dimensions.
func (a *Array) Rank() int { return len(a.Shape) }

// Len returns the total number of elements.
func (a *Array) Len() int { return len(a.Data) }

// Channels returns the channel count of a 3-D array, or 1 for a
// 2-D array.
func (a *Array) Channels() int {
	if len(a.Shape) == 3 {
		return a.Shape[2]
	}
	return 1
}

// At returns the element at the given indices. The index count must
// match the rank.
func (a *Array) At(idx ...int) float64 {
	return a.Data[a.offset(idx)]
}

// Set stores v at the given indices. The index count must match the
// rank.
func (a *Array) Set(v float64, idx ...int) {
	a.Data[a.offset(idx)] = v
}

func (a *Array) offset(idx []int) int {
	if len(idx) != len(a.Shape) {
		panic(fmt.Sprintf("array: %d indices for rank-%d array", len(idx), len(a.Shape)))
	}
	off := 0
	for i, ix := range idx {
		if ix < 0 || ix >= a.Shape[i] {
			panic(fmt.Sprintf("array: index %d out of range [0,%d) in dimension %d", ix, a.Shape[i], i))
		}
		off = off*a.Shape[i] + ix
	}
	return off
}

// SqueezeTrailing returns a view of the array with trailing length-1
// dimensions removed, keeping at least one dimension. The returned
// array shares the underlying data.
func (a *Array) SqueezeTrailing() *Array {
	shape := append([]int(nil), a.Shape...)
	for len(shape) > 1 && shape[len(shape)-1] == 1 {
		shape = shape[:len(shape)-1]
	}
	return &Array{Shape: shape, Kind: a.Kind, Data: a.Data}
}

// Min returns the smallest element value, or 0 for an empty array.
func (a *Array) Min() float64 {
	if len(a.Data) == 0 {
		return 0
	}
	return floats.Min(a.Data)
}

// Max returns the largest element value, or 0 for an empty array.
func (a *Array) Max() float64 {
	if len(a.Data) == 0 {
		return 0
	}
	return floats.Max(a.Data)
}

// Clone returns a deep copy of the array.
func (a *Array) Clone() *Array {
	c := New(a.Kind, a.Shape...)
	copy(c.Data, a.Data)
	return c
}

// Equal reports whether two arrays have the same kind, shape and
// element values.
func (a *Array) Equal(b *Array) bool {
	if a.Kind != b.Kind || len(a.Shape) != len(b.Shape) {
		return false
	}
	for i := range a.Shape {
		if a.Shape[i] != b.Shape[i] {
			return false
		}
	}
	return floats.Equal(a.Data, b.Data)
}
