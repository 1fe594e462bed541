package project

// Link resolves a freshly parsed root dictionary into an object graph:
// every embedded id string becomes a resolved reference Literal, every
// object's back-reference set is populated, and the top-level "objects"
// dictionary is replaced with a Sections container bucketed by isa (§4.3).
//
// Link mutates root in place and also returns the resulting Sections for
// convenience.
func Link(root *Dictionary) (*Sections, error) {
	objectsRaw := root.GetDictionary("objects")
	if objectsRaw == nil {
		return nil, &LinkError{Reason: "missing \"objects\" entry"}
	}

	ids := make(map[string]*Object, objectsRaw.Len())
	for _, e := range objectsRaw.Entries() {
		content, ok := e.Val.(*Dictionary)
		if !ok {
			return nil, &LinkError{Reason: "non-dictionary value in objects for id " + e.Key.Key()}
		}
		obj, err := CreateObject(e.Key.Key(), content)
		if err != nil {
			return nil, &LinkError{Reason: "object " + e.Key.Key() + ": " + err.Error()}
		}
		ids[e.Key.Key()] = obj
		// Replace the raw content dictionary with the typed Object in
		// place, preserving insertion order, so the general walk below
		// sees "objects" as a dictionary of Objects rather than raw
		// dictionaries.
		objectsRaw.Set(e.Key, obj)
	}

	l := &linker{ids: ids}
	l.walk(root, nil, false)

	sections := NewSections()
	for _, e := range objectsRaw.Entries() {
		if obj, ok := e.Val.(*Object); ok {
			sections.Add(obj)
		}
	}
	root.SetString("objects", sections)
	return sections, nil
}

type linker struct {
	ids map[string]*Object
}

// walk implements §4.3's per-container-kind recursion. silent is the flag
// a resolved ref Literal found directly inside v should carry; it is
// computed fresh for each dictionary entry's value (rule b: the
// remoteGlobalIDString key forces its value's ref silent) and passed
// through unchanged into array elements (§9's resolution of the
// "silentLiterals" open question: arrays inherit the caller's flag rather
// than recomputing one).
func (l *linker) walk(v Value, containing *Object, silent bool) {
	switch val := v.(type) {
	case *Dictionary:
		for _, e := range val.Entries() {
			key := e.Key
			if target, ok := l.ids[key.Key()]; ok {
				_, valIsPlainDict := e.Val.(*Dictionary)
				key = Ref(key.Key(), target, valIsPlainDict)
				target.addReference(containing)
			}
			valueSilent := e.Key.Key() == "remoteGlobalIDString"
			child := l.resolveValue(e.Val, containing, valueSilent)
			val.Set(key, child)
		}
	case *Array:
		for i, elem := range val.Items() {
			val.SetAt(i, l.resolveValue(elem, containing, silent))
		}
	case *Object:
		l.walk(val.content, val, false)
	}
}

// resolveValue handles one Value appearing as a dictionary's value or an
// array's element (§4.3's "Literal (ref-candidate)" and container-
// recursion bullets). Container values (*Dictionary, *Array, *Object) are
// mutated in place and returned unchanged by identity; Literal values are
// immutable, so a resolved one is returned as a new Literal for the caller
// to store back into the container.
func (l *linker) resolveValue(v Value, containing *Object, silent bool) Value {
	switch val := v.(type) {
	case Literal:
		if val.IsRef() {
			return val
		}
		target, ok := l.ids[val.Key()]
		if !ok {
			return val
		}
		target.addReference(containing)
		return Ref(val.Key(), target, silent)
	case *Dictionary, *Array, *Object:
		l.walk(val, containing, silent)
		return val
	default:
		return val
	}
}
