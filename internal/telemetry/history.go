package telemetry

// History is a fixed-capacity sample queue. One sample is appended per
// refresh tick; once full, the oldest sample is evicted.
type History[T any] struct {
	buf   []T
	cap   int
	head  int // next write position
	count int
}

// NewHistory creates a history with the given capacity.
func NewHistory[T any](capacity int) *History[T] {
	return &History[T]{
		buf: make([]T, capacity),
		cap: capacity,
	}
}

// Push appends a sample, evicting the oldest if at capacity.
func (h *History[T]) Push(v T) {
	h.buf[h.head] = v
	h.head = (h.head + 1) % h.cap
	if h.count < h.cap {
		h.count++
	}
}

// Data returns all stored samples in insertion order (oldest first).
func (h *History[T]) Data() []T {
	if h.count == 0 {
		return nil
	}
	out := make([]T, h.count)
	start := (h.head - h.count + h.cap) % h.cap
	for i := 0; i < h.count; i++ {
		out[i] = h.buf[(start+i)%h.cap]
	}
	return out
}

// Latest returns the newest sample, or false if the history is empty.
func (h *History[T]) Latest() (T, bool) {
	if h.count == 0 {
		var zero T
		return zero, false
	}
	idx := (h.head - 1 + h.cap) % h.cap
	return h.buf[idx], true
}

// Len returns the number of stored samples.
func (h *History[T]) Len() int {
	return h.count
}

// Cap returns the capacity.
func (h *History[T]) Cap() int {
	return h.cap
}
