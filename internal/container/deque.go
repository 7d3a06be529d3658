// Package container provides the dense, growable element storage
// ArrayObject is built on (spec.md §3.6). It is a thin wrapper over a Go
// slice rather than a true ring-buffer deque: ECMAScript array operations
// are overwhelmingly tail-biased (push/pop dominate; shift/unshift are
// rare), so a plain slice with amortized-doubling append — the growth
// discipline the teacher's internal/interp/runtime/array.go already
// relies on for its dynamic arrays — is the right tool, generalized here
// to also support head operations for shift/unshift/splice.
package container

// Deque is a double-ended sequence of value.Value, generalized from the
// teacher's single-ended dynamic ArrayValue.
type Deque[T any] struct {
	items []T
}

// NewDeque creates an empty deque.
func NewDeque[T any]() *Deque[T] { return &Deque[T]{} }

// Len returns the number of elements.
func (d *Deque[T]) Len() int { return len(d.items) }

// At returns the element at i. Panics if i is out of range; callers are
// expected to bounds-check against Len() first (the JS-visible bounds
// checking and hole-filling lives in package object).
func (d *Deque[T]) At(i int) T { return d.items[i] }

// Set assigns the element at i, growing the backing slice (not filling
// holes — callers fill holes explicitly) if necessary.
func (d *Deque[T]) Set(i int, v T) {
	for i >= len(d.items) {
		var zero T
		d.items = append(d.items, zero)
	}
	d.items[i] = v
}

// PushBack appends v to the end.
func (d *Deque[T]) PushBack(v T) { d.items = append(d.items, v) }

// PopBack removes and returns the last element.
func (d *Deque[T]) PopBack() (T, bool) {
	var zero T
	if len(d.items) == 0 {
		return zero, false
	}
	v := d.items[len(d.items)-1]
	d.items = d.items[:len(d.items)-1]
	return v, true
}

// PushFront prepends v to the beginning.
func (d *Deque[T]) PushFront(v T) {
	d.items = append(d.items, *new(T))
	copy(d.items[1:], d.items)
	d.items[0] = v
}

// PopFront removes and returns the first element.
func (d *Deque[T]) PopFront() (T, bool) {
	var zero T
	if len(d.items) == 0 {
		return zero, false
	}
	v := d.items[0]
	d.items = d.items[1:]
	return v, true
}

// Truncate shrinks the deque to n elements, or grows it to n elements
// filled with zero values if n > Len().
func (d *Deque[T]) Truncate(n int) {
	for len(d.items) < n {
		var zero T
		d.items = append(d.items, zero)
	}
	d.items = d.items[:n]
}

// Splice removes deleteCount elements starting at start and inserts
// items in their place, returning the removed elements.
func (d *Deque[T]) Splice(start, deleteCount int, items []T) []T {
	end := start + deleteCount
	removed := append([]T(nil), d.items[start:end]...)

	tail := append([]T(nil), d.items[end:]...)
	d.items = append(d.items[:start], items...)
	d.items = append(d.items, tail...)
	return removed
}

// Slice returns the live backing slice. Callers must not retain it across
// further mutation of the Deque.
func (d *Deque[T]) Slice() []T { return d.items }
