package telemetry

import (
	"reflect"
	"testing"
)

func TestHistoryBasic(t *testing.T) {
	h := NewHistory[int](5)

	if h.Len() != 0 {
		t.Fatalf("expected len 0, got %d", h.Len())
	}
	if data := h.Data(); data != nil {
		t.Fatalf("expected nil data, got %v", data)
	}

	h.Push(1)
	h.Push(2)
	h.Push(3)

	if h.Len() != 3 {
		t.Fatalf("expected len 3, got %d", h.Len())
	}

	want := []int{1, 2, 3}
	if got := h.Data(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Data() = %v, want %v", got, want)
	}
}

func TestHistoryEviction(t *testing.T) {
	h := NewHistory[int](3)

	for i := 1; i <= 5; i++ {
		h.Push(i)
	}

	if h.Len() != 3 {
		t.Fatalf("expected len 3, got %d", h.Len())
	}
	if h.Len() > h.Cap() {
		t.Fatalf("len %d exceeds cap %d", h.Len(), h.Cap())
	}

	// Oldest evicted first: only the last 3 remain, in order.
	want := []int{3, 4, 5}
	if got := h.Data(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Data() = %v, want %v", got, want)
	}
}

func TestHistoryLatest(t *testing.T) {
	h := NewHistory[float64](3)

	if _, ok := h.Latest(); ok {
		t.Fatal("Latest() on empty history should return false")
	}

	h.Push(1.5)
	if v, ok := h.Latest(); !ok || v != 1.5 {
		t.Fatalf("Latest() = (%v, %v), want (1.5, true)", v, ok)
	}

	h.Push(2.5)
	h.Push(3.5)
	h.Push(4.5) // evicts 1.5
	if v, ok := h.Latest(); !ok || v != 4.5 {
		t.Fatalf("Latest() after eviction = (%v, %v), want (4.5, true)", v, ok)
	}
}

func TestHistorySingleSlot(t *testing.T) {
	h := NewHistory[int](1)
	h.Push(1)
	h.Push(2)
	h.Push(3)

	want := []int{3}
	if got := h.Data(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Data() = %v, want %v", got, want)
	}
}
