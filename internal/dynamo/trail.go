package dynamo

// Trail is a fixed-capacity ring buffer holding the most recent positions in
// insertion order. Pushing into a full trail evicts the oldest entry.
type Trail[T any] struct {
	buf  []T
	head int // index of the oldest entry
	n    int
}

// NewTrail creates an empty trail. A capacity below one yields a trail that
// never retains anything.
func NewTrail[T any](capacity int) *Trail[T] {
	if capacity < 0 {
		capacity = 0
	}
	return &Trail[T]{buf: make([]T, capacity)}
}

func (t *Trail[T]) Len() int { return t.n }
func (t *Trail[T]) Cap() int { return len(t.buf) }

// Push appends v, dropping the oldest entry once the trail is full.
func (t *Trail[T]) Push(v T) {
	c := len(t.buf)
	if c == 0 {
		return
	}
	if t.n < c {
		t.buf[(t.head+t.n)%c] = v
		t.n++
		return
	}
	t.buf[t.head] = v
	t.head = (t.head + 1) % c
}

// At returns the i-th entry, oldest first.
func (t *Trail[T]) At(i int) T {
	return t.buf[(t.head+i)%len(t.buf)]
}

// Last returns the newest entry and whether one exists.
func (t *Trail[T]) Last() (T, bool) {
	var zero T
	if t.n == 0 {
		return zero, false
	}
	return t.At(t.n - 1), true
}

// Points copies the contents out, oldest first.
func (t *Trail[T]) Points() []T {
	out := make([]T, t.n)
	for i := range out {
		out[i] = t.At(i)
	}
	return out
}

// Recent copies the newest n entries, oldest first.
func (t *Trail[T]) Recent(n int) []T {
	if n > t.n {
		n = t.n
	}
	if n <= 0 {
		return []T{}
	}
	out := make([]T, n)
	skip := t.n - n
	for i := range out {
		out[i] = t.At(skip + i)
	}
	return out
}

// Truncate keeps only the newest max entries. Capacity is unchanged.
func (t *Trail[T]) Truncate(max int) {
	if max < 0 {
		max = 0
	}
	if t.n <= max {
		return
	}
	drop := t.n - max
	var zero T
	for i := 0; i < drop; i++ {
		t.buf[(t.head+i)%len(t.buf)] = zero
	}
	if len(t.buf) > 0 {
		t.head = (t.head + drop) % len(t.buf)
	}
	t.n = max
}

// Resize changes the capacity, keeping the newest entries that still fit.
func (t *Trail[T]) Resize(capacity int) {
	if capacity < 0 {
		capacity = 0
	}
	if capacity == len(t.buf) {
		return
	}
	kept := t.Recent(capacity)
	t.buf = make([]T, capacity)
	copy(t.buf, kept)
	t.head = 0
	t.n = len(kept)
}

func (t *Trail[T]) Clear() {
	var zero T
	for i := range t.buf {
		t.buf[i] = zero
	}
	t.head = 0
	t.n = 0
}
