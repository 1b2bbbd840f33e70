package array

import "math"

const (
	maxUint8  = 255
	maxUint16 = 65535
	maxInt32  = math.MaxInt32
)

// Convert rescales an array into the canonical range of the requested
// kind. Auto returns the input unchanged.
func Convert(a *Array, kind Kind) *Array {
	switch kind {
	case Uint8:
		return ToUint8(a)
	case Uint16:
		return ToUint16(a)
	case Int32:
		return ToInt32(a)
	case Float64:
		return ToFloat64(a)
	default:
		return a
	}
}

// ToUint8 rescales values into [0, 255].
//
// Floating-point inputs are assumed to lie in [0, 1] and are scaled by
// 255; unsigned integer inputs are scaled down from their native range;
// values outside the assumed source range are clamped.
func ToUint8(a *Array) *Array {
	return remap(a, Uint8, func(v float64) float64 {
		switch a.Kind {
		case Uint8:
			return clamp(v, 0, maxUint8)
		case Uint16:
			return math.Round(clamp(v, 0, maxUint16) * maxUint8 / maxUint16)
		case Int32:
			return math.Round(clamp(v, 0, maxInt32) * maxUint8 / maxInt32)
		default:
			return math.Round(clamp(v, 0, 1) * maxUint8)
		}
	})
}

// ToUint16 rescales values into [0, 65535].
func ToUint16(a *Array) *Array {
	return remap(a, Uint16, func(v float64) float64 {
		switch a.Kind {
		case Uint8:
			// 257 maps 255 exactly onto 65535.
			return clamp(v, 0, maxUint8) * 257
		case Uint16:
			return clamp(v, 0, maxUint16)
		case Int32:
			return math.Round(clamp(v, 0, maxInt32) * maxUint16 / maxInt32)
		default:
			return math.Round(clamp(v, 0, 1) * maxUint16)
		}
	})
}

// ToInt32 rescales values into the signed 32-bit range.
//
// Integer inputs pass through (clamped at the int32 bounds); floating
// inputs in [0, 1] are scaled up to [0, 2^31-1].
func ToInt32(a *Array) *Array {
	return remap(a, Int32, func(v float64) float64 {
		switch a.Kind {
		case Uint8, Uint16, Int32:
			return clamp(math.Trunc(v), math.MinInt32, maxInt32)
		default:
			return math.Round(clamp(v, 0, 1) * maxInt32)
		}
	})
}

// ToFloat64 rescales values into [0, 1]. Negative integer input maps
// to 0.
func ToFloat64(a *Array) *Array {
	return remap(a, Float64, func(v float64) float64 {
		switch a.Kind {
		case Uint8:
			return clamp(v, 0, maxUint8) / maxUint8
		case Uint16:
			return clamp(v, 0, maxUint16) / maxUint16
		case Int32:
			return clamp(v, 0, maxInt32) / maxInt32
		default:
			return clamp(v, 0, 1)
		}
	})
}

// Cast relabels integer values as the given kind without rescaling.
//
// Unlike the To* policies, Cast preserves values: it only truncates any
// fractional part and clamps at the target kind's bounds. Callers are
// expected to have checked that the values already fit.
func Cast(a *Array, kind Kind) *Array {
	lo, hi := 0.0, 0.0
	switch kind {
	case Uint8:
		hi = maxUint8
	case Uint16:
		hi = maxUint16
	case Int32:
		lo, hi = math.MinInt32, maxInt32
	default:
		c := a.Clone()
		if kind == Float64 {
			c.Kind = Float64
		}
		return c
	}
	return remap(a, kind, func(v float64) float64 {
		return clamp(math.Trunc(v), lo, hi)
	})
}

// remap applies f to every element, producing a fresh array of the
// given kind with the same shape.
func remap(a *Array, kind Kind, f func(float64) float64) *Array {
	out := New(kind, a.Shape...)
	for i, v := range a.Data {
		out.Data[i] = f(v)
	}
	return out
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
