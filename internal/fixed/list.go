// Package fixed provides statically sized containers for the cube's control
// loop. Storage is allocated once at construction and never grows; every
// index and capacity check that fails panics, since the device has no way to
// recover from corrupted state.
package fixed

import (
	"fmt"

	"golang.org/x/exp/constraints"
)

// List is a bounded sequence with a fixed capacity. Elements are stored in a
// ring so that PushOffFront can discard the oldest element without shifting.
// Not safe for concurrent use.
type List[T any] struct {
	buf   []T
	start int // physical index of element 0
	count int
}

// New returns an empty List that can hold up to capacity elements.
func New[T any](capacity int) *List[T] {
	if capacity <= 0 {
		panic(fmt.Sprintf("fixed: invalid capacity %d", capacity))
	}
	return &List[T]{buf: make([]T, capacity)}
}

// Of returns a List of the given capacity holding elems.
func Of[T any](capacity int, elems ...T) *List[T] {
	l := New[T](capacity)
	for _, e := range elems {
		l.PushBack(e)
	}
	return l
}

// Replicate returns a List of the given capacity holding n copies of v.
func Replicate[T any](capacity, n int, v T) *List[T] {
	l := New[T](capacity)
	for i := 0; i < n; i++ {
		l.PushBack(v)
	}
	return l
}

// Len returns the number of elements.
func (l *List[T]) Len() int { return l.count }

// Cap returns the fixed capacity.
func (l *List[T]) Cap() int { return len(l.buf) }

func (l *List[T]) index(i int) int {
	if i < 0 || i >= l.count {
		panic(fmt.Sprintf("fixed: index %d out of range [0,%d)", i, l.count))
	}
	return (l.start + i) % len(l.buf)
}

// Nth returns the element at logical index i.
func (l *List[T]) Nth(i int) T {
	return l.buf[l.index(i)]
}

// SetNth replaces the element at logical index i.
func (l *List[T]) SetNth(i int, v T) {
	l.buf[l.index(i)] = v
}

// Last returns the most recently pushed element.
func (l *List[T]) Last() T {
	return l.Nth(l.count - 1)
}

// PushBack appends v. It panics if the list is full.
func (l *List[T]) PushBack(v T) {
	if l.count == len(l.buf) {
		panic(fmt.Sprintf("fixed: push onto full list (capacity %d)", len(l.buf)))
	}
	l.buf[(l.start+l.count)%len(l.buf)] = v
	l.count++
}

// PushOffFront appends v, discarding the oldest element if the list is full.
func (l *List[T]) PushOffFront(v T) {
	if l.count < len(l.buf) {
		l.PushBack(v)
		return
	}
	// Full: start points at the oldest element, overwrite it and advance.
	l.buf[l.start] = v
	l.start = (l.start + 1) % len(l.buf)
}

// DropLast removes the most recently pushed element.
func (l *List[T]) DropLast() {
	if l.count == 0 {
		panic("fixed: drop from empty list")
	}
	var zero T
	l.buf[l.index(l.count-1)] = zero
	l.count--
}

// Clear removes every element, keeping the storage.
func (l *List[T]) Clear() {
	var zero T
	for i := range l.buf {
		l.buf[i] = zero
	}
	l.start = 0
	l.count = 0
}

// Values appends the elements, oldest first, to dst and returns it.
func (l *List[T]) Values(dst []T) []T {
	for i := 0; i < l.count; i++ {
		dst = append(dst, l.Nth(i))
	}
	return dst
}

// Each calls f for every element, oldest first.
func (l *List[T]) Each(f func(T)) {
	for i := 0; i < l.count; i++ {
		f(l.Nth(i))
	}
}

// Map returns a new List with the same capacity holding f applied to every
// element of l.
func Map[T, U any](l *List[T], f func(T) U) *List[U] {
	out := New[U](l.Cap())
	for i := 0; i < l.count; i++ {
		out.PushBack(f(l.Nth(i)))
	}
	return out
}

// Foldl folds l from the oldest element.
func Foldl[T, S any](f func(T, S) S, init S, l *List[T]) S {
	s := init
	for i := 0; i < l.count; i++ {
		s = f(l.Nth(i), s)
	}
	return s
}

// Foldr folds l from the newest element.
func Foldr[T, S any](f func(T, S) S, init S, l *List[T]) S {
	s := init
	for i := l.count - 1; i >= 0; i-- {
		s = f(l.Nth(i), s)
	}
	return s
}

// All reports whether pred holds for every element.
func All[T any](pred func(T) bool, l *List[T]) bool {
	for i := 0; i < l.count; i++ {
		if !pred(l.Nth(i)) {
			return false
		}
	}
	return true
}

// Any reports whether pred holds for at least one element.
func Any[T any](pred func(T) bool, l *List[T]) bool {
	for i := 0; i < l.count; i++ {
		if pred(l.Nth(i)) {
			return true
		}
	}
	return false
}

// Member reports whether v is in l.
func Member[T comparable](v T, l *List[T]) bool {
	return Any(func(e T) bool { return e == v }, l)
}

// Zip pairs up the elements of a and b. Both lists must have the same length.
func Zip[A, B any](a *List[A], b *List[B]) *List[Pair[A, B]] {
	if a.Len() != b.Len() {
		panic(fmt.Sprintf("fixed: zip length mismatch %d != %d", a.Len(), b.Len()))
	}
	out := New[Pair[A, B]](a.Cap())
	for i := 0; i < a.Len(); i++ {
		out.PushBack(Pair[A, B]{A: a.Nth(i), B: b.Nth(i)})
	}
	return out
}

// Unzip splits a list of pairs into two lists.
func Unzip[A, B any](l *List[Pair[A, B]]) (*List[A], *List[B]) {
	as := New[A](l.Cap())
	bs := New[B](l.Cap())
	for i := 0; i < l.Len(); i++ {
		p := l.Nth(i)
		as.PushBack(p.A)
		bs.PushBack(p.B)
	}
	return as, bs
}

// Max returns the largest element. It panics on an empty list.
func Max[T constraints.Ordered](l *List[T]) T {
	m := l.Nth(0)
	for i := 1; i < l.count; i++ {
		if v := l.Nth(i); v > m {
			m = v
		}
	}
	return m
}

// Min returns the smallest element. It panics on an empty list.
func Min[T constraints.Ordered](l *List[T]) T {
	m := l.Nth(0)
	for i := 1; i < l.count; i++ {
		if v := l.Nth(i); v < m {
			m = v
		}
	}
	return m
}
