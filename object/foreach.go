package object

import (
	"github.com/cwbudde/qjscore/proptable"
	"github.com/cwbudde/qjscore/value"
)

// ForEachIteratorObject implements `for-in` enumeration (spec.md §4.4.9):
// it walks the original object's own table, then its prototype's, and so
// on, skipping tombstones, non-enumerable descriptors and names already
// yielded by a descendant (the shadowing rule).
type ForEachIteratorObject struct {
	Base

	original Object
	current  Object
	names    []*value.String // snapshot of current.Members in insertion order
	cursor   int
	yielded  map[string]bool
}

// NewForEachIteratorObject creates an iterator over obj's enumerable
// properties, own table first.
func NewForEachIteratorObject(prototype Object, obj Object) *ForEachIteratorObject {
	b := NewBase(KindForEachIterator, prototype, value.NewString("ForEachIterator"))
	it := &ForEachIteratorObject{Base: b, original: obj, current: obj, yielded: make(map[string]bool)}
	it.loadNamesFromCurrent()
	return it
}

func (it *ForEachIteratorObject) loadNamesFromCurrent() {
	it.names = nil
	it.cursor = 0
	if it.current == nil || it.current.Base().Members == nil {
		return
	}
	it.current.Base().Members.Each(func(e proptable.Entry) bool {
		it.names = append(it.names, e.Name)
		return true
	})
}

// NextPropertyName advances the cursor and returns the next enumerable,
// not-yet-shadowed name, or nil at exhaustion (spec.md §4.4.9).
func (it *ForEachIteratorObject) NextPropertyName() *value.String {
	for {
		if it.current == nil {
			return nil
		}
		for it.cursor < len(it.names) {
			name := it.names[it.cursor]
			it.cursor++
			if it.yielded[name.Go()] {
				continue
			}
			d := it.current.Base().Members.Find(name)
			if d == nil || !IsEnumerable(d) {
				continue
			}
			it.yielded[name.Go()] = true
			return name
		}
		it.current = it.current.Base().Prototype
		it.loadNamesFromCurrent()
	}
}

func (it *ForEachIteratorObject) GetProperty(name *value.String) value.Value {
	return DefaultGetProperty(it, name)
}
func (it *ForEachIteratorObject) GetOwnProperty(name *value.String) *proptable.Descriptor {
	return DefaultGetOwnProperty(it, name)
}
func (it *ForEachIteratorObject) GetPropertyDescriptor(name *value.String) *proptable.Descriptor {
	return DefaultGetPropertyDescriptor(it, name)
}
func (it *ForEachIteratorObject) SetProperty(name *value.String, v value.Value) {
	DefaultSetProperty(it, name, v)
}
func (it *ForEachIteratorObject) CanSetProperty(name *value.String) bool {
	return DefaultCanSetProperty(it, name)
}
func (it *ForEachIteratorObject) HasProperty(name *value.String) bool {
	return DefaultHasProperty(it, name)
}
func (it *ForEachIteratorObject) DeleteProperty(name *value.String) bool {
	return DefaultDeleteProperty(it, name)
}
func (it *ForEachIteratorObject) DefineOwnProperty(name *value.String, desc *proptable.Descriptor) bool {
	return DefaultDefineOwnProperty(it, name, desc)
}
