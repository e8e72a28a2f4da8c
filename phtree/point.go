package phtree

import "math/bits"

// Point is an ordered tuple of keys, one per dimension. Points are compared
// per-dimension, never as a single concatenated integer. A point handed to
// the tree must not be mutated afterwards.
type Point []Key

// Equal reports whether both points hold the same keys.
func (p Point) Equal(other Point) bool {
	for d := range p {
		if p[d] != other[d] {
			return false
		}
	}
	return true
}

// GreaterEqual reports whether every dimension of p is >= the same dimension
// of other.
func (p Point) GreaterEqual(other Point) bool {
	for d := range p {
		if p[d] < other[d] {
			return false
		}
	}
	return true
}

// LessEqual reports whether every dimension of p is <= the same dimension
// of other.
func (p Point) LessEqual(other Point) bool {
	for d := range p {
		if p[d] > other[d] {
			return false
		}
	}
	return true
}

// clone returns a private copy of the point.
func (p Point) clone() Point {
	return append(Point(nil), p...)
}

// prefixEqual compares only the bits above postfixLen of every dimension.
func prefixEqual(a, b Point, postfixLen int) bool {
	for d := range a {
		if a[d]>>(postfixLen+1) != b[d]>>(postfixLen+1) {
			return false
		}
	}
	return true
}

// prefixGreaterEqual compares only the bits above postfixLen: a >= b at that
// granularity. Used to prune subtrees in window queries.
func prefixGreaterEqual(a, b Point, postfixLen int) bool {
	for d := range a {
		if a[d]>>(postfixLen+1) < b[d]>>(postfixLen+1) {
			return false
		}
	}
	return true
}

// prefixLessEqual compares only the bits above postfixLen: a <= b at that
// granularity.
func prefixLessEqual(a, b Point, postfixLen int) bool {
	for d := range a {
		if a[d]>>(postfixLen+1) > b[d]>>(postfixLen+1) {
			return false
		}
	}
	return true
}

// divergingBits returns the position just above the highest bit at which the
// two points differ in any dimension, i.e. the number of trailing bit-levels
// the points do NOT share. Zero means the points are identical.
//
// The count is always taken against a full 64-bit word, regardless of the
// tree's configured width - a width-relative count would bias the split
// depth.
func divergingBits(a, b Point) int {
	var diff uint64

	for d := range a {
		diff |= uint64(a[d] ^ b[d])
	}

	return 64 - bits.LeadingZeros64(diff)
}
