package project

import "github.com/javerous/SMXcode/container"

// Section is the ordered map from Literal key (the object's id) to Object
// for all records sharing one isa (§3).
type Section struct {
	dict *Dictionary
}

func newSection() *Section {
	return &Section{dict: NewDictionary()}
}

// Len returns the number of objects in the section.
func (s *Section) Len() int {
	return s.dict.Len()
}

// Get returns the object stored under id, if any.
func (s *Section) Get(id string) (*Object, bool) {
	v, ok := s.dict.Get(id)
	if !ok {
		return nil, false
	}
	obj, ok := v.(*Object)
	return obj, ok
}

// Set inserts or replaces the object stored under its own id.
func (s *Section) Set(obj *Object) {
	s.dict.Set(String(obj.ID()), obj)
}

// Delete removes the object stored under id.
func (s *Section) Delete(id string) {
	s.dict.Delete(id)
}

// Objects returns the section's objects in insertion order.
func (s *Section) Objects() []*Object {
	entries := s.dict.Entries()
	out := make([]*Object, 0, len(entries))
	for _, e := range entries {
		if obj, ok := e.Val.(*Object); ok {
			out = append(out, obj)
		}
	}
	return out
}

// Sections is the root "objects" dictionary's runtime form: an ordered map
// from isa name to Section, preserving the insertion order of both the
// sections themselves and the objects within each (§3, §4.3's "bucketing"
// step).
type Sections struct {
	byISA *container.OrderedMap[string, *Section]
}

// NewSections returns an empty Sections container.
func NewSections() *Sections {
	return &Sections{byISA: container.NewOrderedMap[string, *Section]()}
}

func (*Sections) isValue() {}

// Section returns the named section, creating it if absent and create is
// true.
func (s *Sections) Section(isa string, create bool) (*Section, bool) {
	if sec, ok := s.byISA.Get(isa); ok {
		return sec, true
	}
	if !create {
		return nil, false
	}
	sec := newSection()
	s.byISA.Set(isa, sec)
	return sec, true
}

// ISAs returns the section names in insertion order.
func (s *Sections) ISAs() []string {
	return s.byISA.Keys()
}

// Add inserts obj into the section matching its own isa, creating the
// section if it doesn't yet exist.
func (s *Sections) Add(obj *Object) {
	sec, _ := s.Section(obj.isa, true)
	sec.Set(obj)
}

// Find searches every section for id, optionally restricted to a single
// isa. It returns the object and its section's isa.
func (s *Sections) Find(id string, isa string) (*Object, string, bool) {
	if isa != "" {
		sec, ok := s.Section(isa, false)
		if !ok {
			return nil, "", false
		}
		obj, ok := sec.Get(id)
		return obj, isa, ok
	}
	var found *Object
	var foundISA string
	s.byISA.ForEach(func(name string, sec *Section) container.IterateAction {
		if obj, ok := sec.Get(id); ok {
			found, foundISA = obj, name
			return container.Break
		}
		return container.Continue
	})
	return found, foundISA, found != nil
}

// Remove deletes the object with id from whichever section holds it,
// dropping the section entirely if it becomes empty (§4.6 step 1).
func (s *Sections) Remove(id string) {
	s.byISA.ForEach(func(name string, sec *Section) container.IterateAction {
		if _, ok := sec.Get(id); ok {
			sec.Delete(id)
			if sec.Len() == 0 {
				s.byISA.Delete(name)
			}
			return container.Break
		}
		return container.Continue
	})
}

// All returns every object across every section, grouped by section but
// flattened into one slice, in section-then-object order. Used by Load to
// build the project's id index and by tests checking property 7 (section
// bucketing).
func (s *Sections) All() []*Object {
	var out []*Object
	s.byISA.ForEach(func(_ string, sec *Section) container.IterateAction {
		out = append(out, sec.Objects()...)
		return container.Continue
	})
	return out
}
