package signal

import "fmt"

// Maybe is an optional value.
type Maybe[T any] struct {
	value T
	ok    bool
}

// Just returns a Maybe holding v.
func Just[T any](v T) Maybe[T] {
	return Maybe[T]{value: v, ok: true}
}

// Nothing returns an empty Maybe.
func Nothing[T any]() Maybe[T] {
	return Maybe[T]{}
}

// IsJust reports whether m holds a value.
func (m Maybe[T]) IsJust() bool { return m.ok }

// IsNothing reports whether m is empty.
func (m Maybe[T]) IsNothing() bool { return !m.ok }

// Value returns the held value and whether it is present.
func (m Maybe[T]) Value() (T, bool) { return m.value, m.ok }

// Get returns the held value. It panics if m is empty.
func (m Maybe[T]) Get() T {
	if !m.ok {
		panic("signal: Get on Nothing")
	}
	return m.value
}

// GetOr returns the held value, or def if m is empty.
func (m Maybe[T]) GetOr(def T) T {
	if !m.ok {
		return def
	}
	return m.value
}

func (m Maybe[T]) String() string {
	if !m.ok {
		return "Nothing"
	}
	return fmt.Sprintf("Just(%v)", m.value)
}

// MapMaybe applies f to the value held by m, if any.
func MapMaybe[A, B any](f func(A) B, m Maybe[A]) Maybe[B] {
	if v, ok := m.Value(); ok {
		return Just(f(v))
	}
	return Nothing[B]()
}

// Either holds exactly one of a left or a right value.
type Either[A, B any] struct {
	left    A
	right   B
	isRight bool
}

// Left returns an Either holding a.
func Left[A, B any](a A) Either[A, B] {
	return Either[A, B]{left: a}
}

// Right returns an Either holding b.
func Right[A, B any](b B) Either[A, B] {
	return Either[A, B]{right: b, isRight: true}
}

// IsLeft reports whether e holds a left value.
func (e Either[A, B]) IsLeft() bool { return !e.isRight }

// IsRight reports whether e holds a right value.
func (e Either[A, B]) IsRight() bool { return e.isRight }

// LeftValue returns the left value and whether e holds one.
func (e Either[A, B]) LeftValue() (A, bool) { return e.left, !e.isRight }

// RightValue returns the right value and whether e holds one.
func (e Either[A, B]) RightValue() (B, bool) { return e.right, e.isRight }
