package object

import (
	"sort"

	"github.com/cwbudde/qjscore/internal/container"
	"github.com/cwbudde/qjscore/proptable"
	"github.com/cwbudde/qjscore/value"
)

// ArrayObject wraps a dense, deque-backed indexed sequence (spec.md §3.6).
type ArrayObject struct {
	Base
	elements *container.Deque[value.Value]
}

func NewArrayObject(prototype Object) *ArrayObject {
	b := NewBase(KindArray, prototype, value.NewString("Array"))
	return &ArrayObject{Base: b, elements: container.NewDeque[value.Value]()}
}

// Size returns the current element count.
func (a *ArrayObject) Size() int { return a.elements.Len() }

// At returns the element at index i, or undefined if out of range.
func (a *ArrayObject) At(i int) value.Value {
	if i < 0 || i >= a.elements.Len() {
		return value.Undefined()
	}
	return a.elements.At(i)
}

// Assign sets index i to v, growing the storage and filling holes with
// undefined when i >= Size() (spec.md §3.6, §8.3).
func (a *ArrayObject) Assign(i int, v value.Value) {
	if i < 0 {
		return
	}
	if i > a.elements.Len() {
		for a.elements.Len() < i {
			a.elements.PushBack(value.Undefined())
		}
	}
	if i == a.elements.Len() {
		a.elements.PushBack(v)
		return
	}
	a.elements.Set(i, v)
}

// Push appends v and returns the new length.
func (a *ArrayObject) Push(v value.Value) int {
	a.elements.PushBack(v)
	return a.elements.Len()
}

// Pop removes and returns the last element, or undefined if empty.
func (a *ArrayObject) Pop() value.Value {
	v, ok := a.elements.PopBack()
	if !ok {
		return value.Undefined()
	}
	return v
}

// SetLength truncates or extends (with undefined holes) to match the
// ECMAScript `.length =` assignment contract.
func (a *ArrayObject) SetLength(n int) {
	if n < 0 {
		n = 0
	}
	a.elements.Truncate(n)
}

// Concat appends other's elements after a copy of a's own, implementing
// standard ECMAScript concat — NOT the reference implementation's
// undefined-skipping quirk (DESIGN.md Open Question 2).
func (a *ArrayObject) Concat(prototype Object, other *ArrayObject) *ArrayObject {
	result := NewArrayObject(prototype)
	for i := 0; i < a.Size(); i++ {
		result.Push(a.At(i))
	}
	if other != nil {
		for i := 0; i < other.Size(); i++ {
			result.Push(other.At(i))
		}
	}
	return result
}

// CompareFn is a strict-weak-ordering less-than predicate, the contract
// Sort's comparator argument follows (spec.md §3.6).
type CompareFn func(a, b value.Value) bool

// Sort orders elements in place. With compare == nil, falls back to
// lexicographic ToString ordering (stringFn converts a Value to its
// ECMAScript string form; callers supply it since that conversion lives
// in package runtime, not here).
func (a *ArrayObject) Sort(compare CompareFn, stringFn func(value.Value) string) {
	items := a.elements.Slice()
	var less func(i, j int) bool
	if compare != nil {
		less = func(i, j int) bool { return compare(items[i], items[j]) }
	} else {
		less = func(i, j int) bool { return stringFn(items[i]) < stringFn(items[j]) }
	}
	sort.SliceStable(items, less)
}

// Splice implements spec.md §3.6/§8.3's clamped splice: negative start is
// counted from the end and clamped to [0, length]; deleteCount is clamped
// to length-start; items are inserted at start after removal.
func (a *ArrayObject) Splice(start, deleteCount int, items []value.Value) []value.Value {
	n := a.elements.Len()
	if start < 0 {
		start += n
		if start < 0 {
			start = 0
		}
	}
	if start > n {
		start = n
	}
	if deleteCount < 0 {
		deleteCount = 0
	}
	if deleteCount > n-start {
		deleteCount = n - start
	}
	return a.elements.Splice(start, deleteCount, items)
}

// --- Object interface, with the "length" override of spec.md §4.2 ---

func (a *ArrayObject) GetProperty(name *value.String) value.Value {
	if name.Go() == "length" {
		return value.FromInt32(int32(a.Size()))
	}
	if idx, ok := arrayIndex(name); ok {
		return a.At(idx)
	}
	return DefaultGetProperty(a, name)
}

func (a *ArrayObject) SetProperty(name *value.String, v value.Value) {
	if name.Go() == "length" {
		a.SetLength(int(v.ToInt32()))
		return
	}
	if idx, ok := arrayIndex(name); ok {
		a.Assign(idx, v)
		return
	}
	DefaultSetProperty(a, name, v)
}

func (a *ArrayObject) HasProperty(name *value.String) bool {
	if name.Go() == "length" {
		return true
	}
	if idx, ok := arrayIndex(name); ok {
		return idx < a.Size()
	}
	return DefaultHasProperty(a, name)
}

func (a *ArrayObject) GetOwnProperty(name *value.String) *proptable.Descriptor {
	return DefaultGetOwnProperty(a, name)
}
func (a *ArrayObject) GetPropertyDescriptor(name *value.String) *proptable.Descriptor {
	return DefaultGetPropertyDescriptor(a, name)
}
func (a *ArrayObject) CanSetProperty(name *value.String) bool { return DefaultCanSetProperty(a, name) }
func (a *ArrayObject) DeleteProperty(name *value.String) bool { return DefaultDeleteProperty(a, name) }
func (a *ArrayObject) DefineOwnProperty(name *value.String, desc *proptable.Descriptor) bool {
	return DefaultDefineOwnProperty(a, name, desc)
}

// arrayIndex reports whether name is a canonical array index string
// ("0", "1", ... with no leading zero except "0" itself).
func arrayIndex(name *value.String) (int, bool) {
	s := name.Go()
	if s == "" {
		return 0, false
	}
	if s == "0" {
		return 0, true
	}
	if s[0] == '0' {
		return 0, false
	}
	n := 0
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
	}
	return n, true
}
