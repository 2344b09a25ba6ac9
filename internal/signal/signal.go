// Package signal is a discrete-time reactive core. A Signal carries a value
// only on the tick in which something happened; it is rebuilt from fresh
// samples on every iteration of the control loop and never queues.
//
// Stateful combinators do not capture hidden state. Each takes a pointer to
// a cell owned by the caller, and exactly one combinator instance may write
// a given cell. The value in a cell before tick n is that combinator's output
// after tick n-1.
package signal

import "github.com/sweeney/timer-cube/internal/fixed"

// Unit is the payload of signals that only mark that something happened.
type Unit struct{}

// Signal is a value that may or may not have occurred during this tick.
type Signal[T any] struct {
	m Maybe[T]
}

// Of returns a signal carrying v.
func Of[T any](v T) Signal[T] {
	return Signal[T]{m: Just(v)}
}

// Empty returns a signal carrying nothing.
func Empty[T any]() Signal[T] {
	return Signal[T]{}
}

// FromMaybe returns a signal that fires when m holds a value.
func FromMaybe[T any](m Maybe[T]) Signal[T] {
	return Signal[T]{m: m}
}

// Value returns the carried value and whether the signal fired.
func (s Signal[T]) Value() (T, bool) { return s.m.Value() }

// HasValue reports whether the signal fired this tick.
func (s Signal[T]) HasValue() bool { return s.m.IsJust() }

// Get returns the carried value. It panics if the signal is empty.
func (s Signal[T]) Get() T { return s.m.Get() }

// Maybe returns the signal's payload as a Maybe.
func (s Signal[T]) Maybe() Maybe[T] { return s.m }

// Constant returns a signal that always fires with v.
func Constant[T any](v T) Signal[T] {
	return Of(v)
}

// Map applies f to the carried value, if any.
func Map[A, B any](f func(A) B, s Signal[A]) Signal[B] {
	if v, ok := s.Value(); ok {
		return Of(f(v))
	}
	return Empty[B]()
}

// Sink calls f with the carried value, if any.
func Sink[T any](f func(T), s Signal[T]) {
	if v, ok := s.Value(); ok {
		f(v)
	}
}

// Filter drops the carried value when pred returns true. Note the polarity:
// pred says what to filter out, not what to keep. The edge detectors and
// DropRepeats depend on it.
func Filter[T any](pred func(T) bool, s Signal[T]) Signal[T] {
	if v, ok := s.Value(); ok {
		if pred(v) {
			return Empty[T]()
		}
		return s
	}
	return Empty[T]()
}

// Merge returns a if it fired, otherwise b.
func Merge[T any](a, b Signal[T]) Signal[T] {
	if a.HasValue() {
		return a
	}
	return b
}

// MergeMany returns the first signal in sigs that fired.
func MergeMany[T any](sigs ...Signal[T]) Signal[T] {
	for _, s := range sigs {
		if s.HasValue() {
			return s
		}
	}
	return Empty[T]()
}

// Join combines two signals of different types, preferring a.
func Join[A, B any](a Signal[A], b Signal[B]) Signal[Either[A, B]] {
	if v, ok := a.Value(); ok {
		return Of(Left[A, B](v))
	}
	if v, ok := b.Value(); ok {
		return Of(Right[A, B](v))
	}
	return Empty[Either[A, B]]()
}

// ToUnit discards the carried value.
func ToUnit[T any](s Signal[T]) Signal[Unit] {
	return Map(func(T) Unit { return Unit{} }, s)
}

// Meta turns s into a signal that always fires, carrying whether s fired.
func Meta[T any](s Signal[T]) Signal[Maybe[T]] {
	return Constant(s.Maybe())
}

// FoldP folds each carried value into the state held in cell and emits the
// new state. On empty ticks cell is left untouched and nothing is emitted.
func FoldP[A, S any](f func(A, S) S, cell *S, s Signal[A]) Signal[S] {
	v, ok := s.Value()
	if !ok {
		return Empty[S]()
	}
	next := f(v, *cell)
	*cell = next
	return Of(next)
}

// DropRepeats suppresses values equal to the last one let through. An empty
// cell never suppresses.
func DropRepeats[T comparable](s Signal[T], cell *Maybe[T]) Signal[T] {
	return Filter(func(v T) bool {
		prev, ok := cell.Value()
		filtered := ok && prev == v
		if !filtered {
			*cell = Just(v)
		}
		return filtered
	}, s)
}

// Latch stores each carried value in cell and, on empty ticks, fires with
// the last stored value instead.
func Latch[T any](s Signal[T], cell *T) Signal[T] {
	if v, ok := s.Value(); ok {
		*cell = v
		return s
	}
	return Of(*cell)
}

// Map2 fires whenever either input fires, combining the new value with the
// most recent value of the other input. cell holds the last known pair.
func Map2[A, B, C any](f func(A, B) C, a Signal[A], b Signal[B], cell *fixed.Pair[A, B]) Signal[C] {
	va, okA := a.Value()
	if !okA {
		va = cell.A
	}
	vb, okB := b.Value()
	if !okB {
		vb = cell.B
	}
	*cell = fixed.MakePair(va, vb)
	if !okA && !okB {
		return Empty[C]()
	}
	return Of(f(va, vb))
}

// Record appends each carried value to history, discarding the oldest entry
// once it is full, and emits the updated history.
func Record[T any](s Signal[T], history *fixed.List[T]) Signal[*fixed.List[T]] {
	return FoldP(func(v T, h *fixed.List[T]) *fixed.List[T] {
		h.PushOffFront(v)
		return h
	}, &history, s)
}
