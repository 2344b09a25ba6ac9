package fixed

import (
	"testing"
)

func expectPanic(t *testing.T, name string, f func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Errorf("%s: expected panic", name)
		}
	}()
	f()
}

func TestListPushAndNth(t *testing.T) {
	l := New[int](4)
	for i := 0; i < 4; i++ {
		l.PushBack(i * 10)
	}
	if l.Len() != 4 {
		t.Fatalf("expected len 4, got %d", l.Len())
	}
	for i := 0; i < 4; i++ {
		if got := l.Nth(i); got != i*10 {
			t.Errorf("Nth(%d): got %d, want %d", i, got, i*10)
		}
	}
	if l.Last() != 30 {
		t.Errorf("Last: got %d, want 30", l.Last())
	}
}

func TestListPushBackFullPanics(t *testing.T) {
	l := Of(2, 1, 2)
	expectPanic(t, "PushBack on full list", func() { l.PushBack(3) })
}

func TestListOutOfRangePanics(t *testing.T) {
	l := Of(3, 1, 2)
	expectPanic(t, "Nth(2)", func() { l.Nth(2) })
	expectPanic(t, "Nth(-1)", func() { l.Nth(-1) })
	expectPanic(t, "SetNth(5)", func() { l.SetNth(5, 0) })
	expectPanic(t, "Last on empty", func() { New[int](1).Last() })
	expectPanic(t, "DropLast on empty", func() { New[int](1).DropLast() })
	expectPanic(t, "zero capacity", func() { New[int](0) })
}

func TestListPushOffFrontKeepsNewest(t *testing.T) {
	l := New[int](3)
	// Push 0..5, list should keep 3, 4, 5
	for i := 0; i < 6; i++ {
		l.PushOffFront(i)
	}
	got := l.Values(nil)
	want := []int{3, 4, 5}
	if len(got) != len(want) {
		t.Fatalf("expected %d items, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("item %d: got %d, want %d", i, got[i], want[i])
		}
	}
}

func TestListSetNthAfterWrap(t *testing.T) {
	l := New[string](2)
	l.PushOffFront("a")
	l.PushOffFront("b")
	l.PushOffFront("c")
	l.SetNth(0, "B")
	if l.Nth(0) != "B" || l.Nth(1) != "c" {
		t.Errorf("got [%s %s], want [B c]", l.Nth(0), l.Nth(1))
	}
}

func TestListDropLastAndClear(t *testing.T) {
	l := Of(4, 1, 2, 3)
	l.DropLast()
	if l.Len() != 2 || l.Last() != 2 {
		t.Errorf("after DropLast: len=%d last=%d, want len=2 last=2", l.Len(), l.Last())
	}
	l.Clear()
	if l.Len() != 0 {
		t.Errorf("after Clear: len=%d, want 0", l.Len())
	}
	if l.Cap() != 4 {
		t.Errorf("Clear changed capacity to %d", l.Cap())
	}
}

func TestReplicate(t *testing.T) {
	l := Replicate(5, 3, 'x')
	if l.Len() != 3 || l.Cap() != 5 {
		t.Fatalf("got len=%d cap=%d, want len=3 cap=5", l.Len(), l.Cap())
	}
	if !All(func(r rune) bool { return r == 'x' }, l) {
		t.Error("expected every element to be 'x'")
	}
}

func TestMapAndFold(t *testing.T) {
	l := Of(4, 1, 2, 3)
	doubled := Map(l, func(v int) int { return v * 2 })
	if doubled.Cap() != 4 {
		t.Errorf("Map capacity: got %d, want 4", doubled.Cap())
	}
	sum := Foldl(func(v, s int) int { return s + v }, 0, doubled)
	if sum != 12 {
		t.Errorf("sum: got %d, want 12", sum)
	}

	// Foldl and Foldr visit in opposite orders.
	left := Foldl(func(v int, s string) string { return s + string(rune('0'+v)) }, "", l)
	right := Foldr(func(v int, s string) string { return s + string(rune('0'+v)) }, "", l)
	if left != "123" {
		t.Errorf("Foldl: got %q, want 123", left)
	}
	if right != "321" {
		t.Errorf("Foldr: got %q, want 321", right)
	}
}

func TestAnyMemberMaxMin(t *testing.T) {
	l := Of(5, 4, -2, 9, 0)
	if !Member(9, l) {
		t.Error("expected 9 to be a member")
	}
	if Member(7, l) {
		t.Error("did not expect 7 to be a member")
	}
	if Any(func(v int) bool { return v > 10 }, l) {
		t.Error("Any(>10) should be false")
	}
	if Max(l) != 9 {
		t.Errorf("Max: got %d, want 9", Max(l))
	}
	if Min(l) != -2 {
		t.Errorf("Min: got %d, want -2", Min(l))
	}
}

func TestZipUnzip(t *testing.T) {
	a := Of(3, 1, 2, 3)
	b := Of(3, "one", "two", "three")
	z := Zip(a, b)
	if z.Len() != 3 {
		t.Fatalf("Zip len: got %d, want 3", z.Len())
	}
	if p := z.Nth(1); p.Fst() != 2 || p.Snd() != "two" {
		t.Errorf("Zip[1]: got %v, want {2 two}", p)
	}

	as, bs := Unzip(z)
	if as.Nth(2) != 3 || bs.Nth(0) != "one" {
		t.Errorf("Unzip: got %d %q", as.Nth(2), bs.Nth(0))
	}

	expectPanic(t, "Zip mismatch", func() { Zip(a, Of(3, "x")) })
}

func TestMapRangeClampSign(t *testing.T) {
	if got := MapRange(508, 404, 612, -1000, 1000); got != 0 {
		t.Errorf("MapRange midpoint: got %v, want 0", got)
	}
	if got := MapRange(612, 404, 612, -1000, 1000); got != 1000 {
		t.Errorf("MapRange top: got %v, want 1000", got)
	}
	if got := Clamp(40, 0, 32); got != 32 {
		t.Errorf("Clamp high: got %d, want 32", got)
	}
	if got := Clamp(-3, 0, 32); got != 0 {
		t.Errorf("Clamp low: got %d, want 0", got)
	}
	if Sign(-5) != -1 || Sign(0) != 0 || Sign(2.5) != 1 {
		t.Error("Sign returned an unexpected value")
	}
}
