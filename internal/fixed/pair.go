package fixed

import "golang.org/x/exp/constraints"

// Pair holds two values.
type Pair[A, B any] struct {
	A A
	B B
}

// MakePair returns a Pair of a and b.
func MakePair[A, B any](a A, b B) Pair[A, B] {
	return Pair[A, B]{A: a, B: b}
}

// Fst returns the first element.
func (p Pair[A, B]) Fst() A { return p.A }

// Snd returns the second element.
func (p Pair[A, B]) Snd() B { return p.B }

// MapRange linearly maps x from the range [a1, a2] onto [b1, b2].
func MapRange(x, a1, a2, b1, b2 float64) float64 {
	return b1 + (x-a1)*(b2-b1)/(a2-a1)
}

// Clamp limits x to [lo, hi].
func Clamp[T constraints.Ordered](x, lo, hi T) T {
	if lo > x {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// Sign returns -1, 0 or 1 according to the sign of n.
func Sign[T constraints.Signed | constraints.Float](n T) int8 {
	switch {
	case n == 0:
		return 0
	case n > 0:
		return 1
	default:
		return -1
	}
}
