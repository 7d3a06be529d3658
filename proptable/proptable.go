// Package proptable implements the insertion-ordered property table
// (spec.md §3.4, §4.1) shared by every Object variant.
package proptable

import "github.com/cwbudde/qjscore/value"

// Tri is the three-state attribute lattice spec.md §3.3 requires so that
// a partial descriptor can leave an attribute untouched.
type Tri int

const (
	TriUnspecified Tri = iota // not mentioned by this descriptor fragment
	TriUnset
	TriSet
)

// Kind discriminates the three descriptor shapes of spec.md §3.3.
type Kind int

const (
	KindGeneric Kind = iota
	KindData
	KindAccessor
)

// Accessible is the minimal surface a property getter/setter needs;
// satisfied by *object.FunctionObject without proptable importing
// package object (which itself imports proptable) — the same
// interface-to-avoid-circular-import trick the teacher's
// internal/interp/runtime package documents for IClassInfo.
type Accessible interface {
	Call(args []value.Value, this value.Value) (value.Value, error)
}

// Descriptor is one property's metadata: either a Data descriptor
// carrying a Value, an Accessor descriptor carrying a get/set pair (each
// optionally nil), or a bare Generic descriptor with only attribute bits
// set.
type Descriptor struct {
	Kind Kind

	Value Value // valid when Kind == KindData

	Get, Set Accessible // valid when Kind == KindAccessor; either may be nil

	Writable     Tri
	Enumerable   Tri
	Configurable Tri
}

// Value is a re-export alias kept local so proptable's public API doesn't
// force every caller to also import package value for this one field type.
type Value = value.Value

// entry is one slab slot. A tombstoned entry has descriptor == nil and
// sits on the free list.
type entry struct {
	name *value.String
	desc *Descriptor
}

const initialBucketCount = 11

// Table is the ordered, hash-indexed property map of spec.md §3.4.
type Table struct {
	entries []entry // slab; index is the stable handle a slab position never changes once assigned
	free    []int   // indices into entries available for reuse
	buckets [][]int // hash bucket -> slab indices, indexed by hash % len(buckets)
	count   int     // number of live (non-tombstoned) entries

	// order holds slab indices in current enumeration order — the actual
	// insertion order, distinct from slab position. A reused (tombstoned)
	// slab slot gets a fresh order entry appended at the end, so deleting a
	// property and reinserting it moves it to the end of enumeration order
	// (spec.md §4.1) even though its slab index is unchanged. Kept exactly
	// in sync with the live entry set: Insert appends, Remove splices out.
	order []int
}

// New creates an empty property table.
func New() *Table {
	return &Table{buckets: make([][]int, initialBucketCount)}
}

func (t *Table) bucketFor(h uint64) int { return int(h % uint64(len(t.buckets))) }

// Find returns the descriptor for name, or nil if absent. O(1) expected,
// does not allocate.
func (t *Table) Find(name *value.String) *Descriptor {
	if idx, ok := t.findIndex(name); ok {
		return t.entries[idx].desc
	}
	return nil
}

func (t *Table) findIndex(name *value.String) (int, bool) {
	if len(t.buckets) == 0 {
		return 0, false
	}
	b := t.bucketFor(name.Hash())
	for _, idx := range t.buckets[b] {
		e := &t.entries[idx]
		if e.desc != nil && e.name.Equal(name) {
			return idx, true
		}
	}
	return 0, false
}

// Insert returns the existing descriptor for name if present, otherwise
// creates and returns a new zero-value Descriptor at the next insertion
// index, rehashing first if the load factor would exceed 2/3.
func (t *Table) Insert(name *value.String) *Descriptor {
	if idx, ok := t.findIndex(name); ok {
		return t.entries[idx].desc
	}

	if (t.count+1)*3 > len(t.buckets)*2 {
		t.rehash()
	}

	desc := &Descriptor{}
	var idx int
	if n := len(t.free); n > 0 {
		idx = t.free[n-1]
		t.free = t.free[:n-1]
		t.entries[idx] = entry{name: name, desc: desc}
	} else {
		idx = len(t.entries)
		t.entries = append(t.entries, entry{name: name, desc: desc})
	}
	t.count++
	t.order = append(t.order, idx)

	b := t.bucketFor(name.Hash())
	t.buckets[b] = append(t.buckets[b], idx)
	return desc
}

// Remove unlinks name's entry and pushes its slab slot onto the free
// list. Returns true even when name was absent, matching the JS `delete`
// operator's unconditional-true contract (spec.md §4.1).
func (t *Table) Remove(name *value.String) bool {
	idx, ok := t.findIndex(name)
	if !ok {
		return true
	}
	b := t.bucketFor(t.entries[idx].name.Hash())
	bucket := t.buckets[b]
	for i, v := range bucket {
		if v == idx {
			t.buckets[b] = append(bucket[:i], bucket[i+1:]...)
			break
		}
	}
	t.entries[idx] = entry{}
	t.free = append(t.free, idx)
	t.count--
	for i, v := range t.order {
		if v == idx {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
	return true
}

// rehash doubles the bucket count and re-links every live entry; slab
// indices, and therefore t.order, are untouched.
func (t *Table) rehash() {
	newBuckets := make([][]int, len(t.buckets)*2)
	for i := range t.entries {
		if t.entries[i].desc == nil {
			continue
		}
		h := t.entries[i].name.Hash()
		b := int(h % uint64(len(newBuckets)))
		newBuckets[b] = append(newBuckets[b], i)
	}
	t.buckets = newBuckets
}

// Len returns the number of live (non-tombstoned) entries.
func (t *Table) Len() int { return t.count }

// Entry is one (name, descriptor) pair yielded by iteration.
type Entry struct {
	Name *value.String
	Desc *Descriptor
}

// Each calls fn for every live entry in insertion order — the order a
// property was last (re)inserted in, not its slab position (spec.md §3.4,
// §4.1: reinserting a deleted property moves it to the end). fn returning
// false stops iteration.
func (t *Table) Each(fn func(Entry) bool) {
	for _, idx := range t.order {
		e := &t.entries[idx]
		if e.desc == nil {
			continue // should not happen; order is kept in sync with Remove
		}
		if !fn(Entry{Name: e.name, Desc: e.desc}) {
			return
		}
	}
}

// Names returns every live entry's name in insertion order.
func (t *Table) Names() []*value.String {
	out := make([]*value.String, 0, t.count)
	t.Each(func(e Entry) bool {
		out = append(out, e.Name)
		return true
	})
	return out
}
