package project

// RemoveObject deletes t from sections and unwinds every reference
// touching it (§4.6): t's own section entry, every occurrence of a ref to
// t inside a current referrer's content, and every occurrence of a ref to
// something else inside t's own content (so those objects stop listing t
// as a referrer). Removal is idempotent: calling it again on an
// already-removed t is a no-op, since by then nothing still points at or
// from it.
func RemoveObject(sections *Sections, t *Object) {
	sections.Remove(t.ID())

	referencesT := func(l Literal) bool {
		return l.IsRef() && l.Target() == t
	}
	for _, p := range t.ReferencedBy() {
		sweepValue(p.content, referencesT, func(Literal) {
			t.removeReference(p)
		})
	}

	isRef := func(l Literal) bool {
		return l.IsRef() && l.Target() != nil
	}
	sweepValue(t.content, isRef, func(l Literal) {
		l.Target().removeReference(t)
	})
}

// sweepValue dispatches a reference sweep over v: a *Dictionary or *Array
// is walked and mutated; any other kind (bare Literal, *Object) is not a
// container to sweep and is ignored.
func sweepValue(v Value, match func(Literal) bool, onMatch func(Literal)) {
	switch val := v.(type) {
	case *Dictionary:
		sweepDict(val, match, onMatch)
	case *Array:
		sweepArray(val, match, onMatch)
	}
}

// sweepDict strips every entry whose key or value literal matches
// (§4.6's "as a dict key, as a dict value literal" occurrences), and
// recurses into entries whose value is itself a container. Positions are
// collected before any entry is deleted, so the walk never mutates the
// dictionary it is iterating.
func sweepDict(d *Dictionary, match func(Literal) bool, onMatch func(Literal)) {
	entries := d.Entries()
	var toDelete []string

	for _, e := range entries {
		keyMatched := match(e.Key)
		if keyMatched {
			toDelete = append(toDelete, e.Key.Key())
			onMatch(e.Key)
		}

		// The entry's value is swept regardless of whether the key matched:
		// a discarded entry can still hold, as its value, a ref to (or a
		// container nesting refs to) some other object entirely, and that
		// object's back-reference must be cleared too (§4.6, §8 property 6).
		if lit, ok := e.Val.(Literal); ok {
			if match(lit) {
				if !keyMatched {
					toDelete = append(toDelete, e.Key.Key())
				}
				onMatch(lit)
			}
		} else {
			sweepValue(e.Val, match, onMatch)
		}
	}

	for _, k := range toDelete {
		d.Delete(k)
	}
}

// sweepArray strips every element literal that matches (§4.6's "as an
// array element" occurrence), and recurses into elements that are
// themselves containers. The match scan runs over a snapshot taken before
// any removal, per the same collect-then-mutate rule.
func sweepArray(a *Array, match func(Literal) bool, onMatch func(Literal)) {
	items := append([]Value(nil), a.Items()...)
	for _, v := range items {
		if lit, ok := v.(Literal); ok {
			if match(lit) {
				onMatch(lit)
			}
			continue
		}
		sweepValue(v, match, onMatch)
	}
	a.RemoveFunc(func(v Value) bool {
		lit, ok := v.(Literal)
		return ok && match(lit)
	}, true)
}
