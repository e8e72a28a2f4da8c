package phtree

import "math"

// Key is an unsigned value whose bitwise order matches the numeric order of
// the native value it was encoded from. Only the low Width bits of a key are
// meaningful; the encoders below keep everything above the configured width
// zero.
type Key uint64

const (
	// widths a tree can be configured with
	Width8  = 8
	Width16 = 16
	Width32 = 32
	Width64 = 64
)

// keyMask returns a mask of the low width bits.
func keyMask(width int) Key {
	return ^Key(0) >> (64 - width)
}

// IntToKey encodes a signed integer as an order-preserving key of the given
// width. Two's complement already orders the magnitude bits correctly, so
// flipping the sign bit is enough:
//
//	 1 = 0001 -> 1001
//	 0 = 0000 -> 1000
//	-1 = 1111 -> 0111
//	-2 = 1110 -> 0110
//
// Values outside the width's signed range are a configuration error, not a
// runtime one - the high bits are simply masked off.
func IntToKey(value int64, width int) Key {
	return (Key(value) ^ Key(1)<<(width-1)) & keyMask(width)
}

// KeyToInt decodes a key produced by IntToKey back to the original value.
func KeyToInt(key Key, width int) int64 {
	key ^= Key(1) << (width - 1)

	// sign-extend from the configured width
	return int64(key<<(64-width)) >> (64 - width)
}

// Float32ToKey encodes a float32 as an order-preserving 32-bit key.
//
// The raw IEEE bits of a non-negative float are already ordered, they only
// sort below the negatives; setting the sign bit moves them above. Negative
// floats grow in raw-bit value as they grow in magnitude, so they are negated
// in two's complement to reverse that, which also collapses negative zero:
// Float32ToKey(-0) decodes to +0.
//
// +Inf sorts above all finite values, -Inf below, and NaNs beyond the
// infinities on their respective sides.
func Float32ToKey(value float32) Key {
	const sign = uint32(1) << 31

	bits := math.Float32bits(value)

	if bits&sign != 0 {
		bits = -bits & (sign - 1)
	} else {
		bits |= sign
	}

	return Key(bits)
}

// KeyToFloat32 decodes a key produced by Float32ToKey.
func KeyToFloat32(key Key) float32 {
	const sign = uint32(1) << 31

	bits := uint32(key)

	if bits&sign != 0 {
		bits &^= sign
	} else {
		bits = -bits
	}

	return math.Float32frombits(bits)
}

// Float64ToKey encodes a float64 as an order-preserving 64-bit key.
// See Float32ToKey for the transform.
func Float64ToKey(value float64) Key {
	const sign = uint64(1) << 63

	bits := math.Float64bits(value)

	if bits&sign != 0 {
		bits = -bits & (sign - 1)
	} else {
		bits |= sign
	}

	return Key(bits)
}

// KeyToFloat64 decodes a key produced by Float64ToKey.
func KeyToFloat64(key Key) float64 {
	const sign = uint64(1) << 63

	bits := uint64(key)

	if bits&sign != 0 {
		bits &^= sign
	} else {
		bits = -bits
	}

	return math.Float64frombits(bits)
}
