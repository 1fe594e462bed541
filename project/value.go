package project

import "github.com/javerous/SMXcode/container"

// Value is any value that can appear in the graph: a Literal, an ordered
// Dictionary, an ordered Array, an Object, or a Sections container (§3).
// The interface is sealed to this package's types via the unexported
// isValue method, the same pattern the teacher uses implicitly by keeping
// its SliceMap's stored values as an untyped interface{} but only ever
// populating it from a closed set of constructors.
type Value interface {
	isValue()
}

// DictEntry is one key/value pair of a Dictionary, used for ordered
// iteration when callers need both the key and its position together.
type DictEntry struct {
	Key Literal
	Val Value
}

// Dictionary is an ordered map from Literal keys to Values. Keys are
// compared and looked up by Literal.Key() (the underlying string/id), not
// by Go equality, since a ref and a plain string with the same text must
// collide (property 8). Re-Setting an existing key replaces both the
// stored key and value in place, preserving position — this matters because
// the linker re-Sets keys in place to attach resolved ref targets without
// disturbing on-disk ordering.
type Dictionary struct {
	index   map[string]int
	entries []DictEntry
}

// NewDictionary returns an empty Dictionary.
func NewDictionary() *Dictionary {
	return &Dictionary{index: make(map[string]int)}
}

func (*Dictionary) isValue() {}

// Len returns the number of entries.
func (d *Dictionary) Len() int {
	return len(d.entries)
}

// Get returns the value stored under the given key text, and whether it
// was present.
func (d *Dictionary) Get(key string) (Value, bool) {
	i, ok := d.index[key]
	if !ok {
		return nil, false
	}
	return d.entries[i].Val, true
}

// GetKey returns the Literal actually stored for key text, which may be a
// ref with target/silent information the caller needs (e.g. to render a
// comment attached to a dictionary key).
func (d *Dictionary) GetKey(key string) (Literal, bool) {
	i, ok := d.index[key]
	if !ok {
		return Literal{}, false
	}
	return d.entries[i].Key, true
}

// Has reports whether key is present.
func (d *Dictionary) Has(key string) bool {
	_, ok := d.index[key]
	return ok
}

// Set inserts key/val, or updates the entry in place (both key and value)
// if a key with the same text is already present.
func (d *Dictionary) Set(key Literal, val Value) {
	if i, ok := d.index[key.Key()]; ok {
		d.entries[i] = DictEntry{Key: key, Val: val}
		return
	}
	d.index[key.Key()] = len(d.entries)
	d.entries = append(d.entries, DictEntry{Key: key, Val: val})
}

// SetString is shorthand for Set(String(key), val).
func (d *Dictionary) SetString(key string, val Value) {
	d.Set(String(key), val)
}

// Delete removes the entry for key, if present.
func (d *Dictionary) Delete(key string) {
	i, ok := d.index[key]
	if !ok {
		return
	}
	d.entries = append(d.entries[:i], d.entries[i+1:]...)
	delete(d.index, key)
	for j := i; j < len(d.entries); j++ {
		d.index[d.entries[j].Key.Key()] = j
	}
}

// Entries returns a snapshot of key/value pairs in insertion order. The
// snapshot lets callers delete from d while iterating over the result
// (§4.6's "collect positions, then mutate" rule).
func (d *Dictionary) Entries() []DictEntry {
	out := make([]DictEntry, len(d.entries))
	copy(out, d.entries)
	return out
}

// ForEach walks entries in order. fn may return container.Break to stop
// early; it may safely delete from d mid-walk.
func (d *Dictionary) ForEach(fn func(key Literal, val Value) container.IterateAction) {
	for _, e := range d.Entries() {
		if !d.Has(e.Key.Key()) {
			continue
		}
		if fn(e.Key, e.Val) == container.Break {
			return
		}
	}
}

// GetString is a convenience accessor returning the text of a plain-string
// or ref Literal stored at key, or "" if absent or not a Literal.
func (d *Dictionary) GetString(key string) string {
	v, ok := d.Get(key)
	if !ok {
		return ""
	}
	lit, ok := v.(Literal)
	if !ok {
		return ""
	}
	return lit.Text()
}

// GetDictionary is a convenience accessor returning the *Dictionary stored
// at key, or nil if absent or a different kind.
func (d *Dictionary) GetDictionary(key string) *Dictionary {
	v, ok := d.Get(key)
	if !ok {
		return nil
	}
	sub, _ := v.(*Dictionary)
	return sub
}

// GetArray is a convenience accessor returning the *Array stored at key, or
// nil if absent or a different kind.
func (d *Dictionary) GetArray(key string) *Array {
	v, ok := d.Get(key)
	if !ok {
		return nil
	}
	arr, _ := v.(*Array)
	return arr
}

// Array is an ordered, insertion-position list of Values.
type Array struct {
	seq *container.Seq[Value]
}

// NewArray returns an Array containing items, in order.
func NewArray(items ...Value) *Array {
	return &Array{seq: container.NewSeq(items...)}
}

func (*Array) isValue() {}

// Len returns the number of elements.
func (a *Array) Len() int {
	return a.seq.Len()
}

// Items returns the elements in order. Callers must not retain the slice
// across a mutating call.
func (a *Array) Items() []Value {
	return a.seq.Items()
}

// Append adds v to the end.
func (a *Array) Append(v Value) {
	a.seq.Append(v)
}

// Insert places v at index i (clamped to [0, Len()]).
func (a *Array) Insert(v Value, i int) {
	a.seq.Insert(v, i)
}

// SetAt replaces the element at index i in place, if in range. Used by the
// linker to rewrite an unresolved Literal array element into a resolved
// ref without disturbing its position.
func (a *Array) SetAt(i int, v Value) {
	a.seq.SetAt(i, v)
}

// RemoveFunc deletes every element for which match returns true, or only
// the first if all is false.
func (a *Array) RemoveFunc(match func(Value) bool, all bool) {
	a.seq.RemoveFunc(match, all)
}
