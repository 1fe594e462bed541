package project

// Hooks specializes the four behaviors a record subtype (keyed by isa) can
// override: how it renders its inline `/* comment */`, whether it renders
// its whole content dictionary on a single line, and how it reacts to
// gaining or losing a back-reference. Dispatch from isa to a Hooks value
// happens in the object factory (factory.go); unknown isas get noopHooks,
// which no-ops every hook (§4.4, design note "typed subtypes specializing
// behavior").
type Hooks interface {
	RenderComment(o *Object) string
	RenderSingleLine(o *Object) bool
	OnAddedReference(o, referrer *Object)
	OnRemovedReference(o, referrer *Object)
}

// Object is a record in the objects graph: an immutable isa and id, and a
// mutable content Dictionary whose first entry must be "isa" (§3). Objects
// track their own back-references (referencedBy) for O(1) reverse lookup
// during removal (§4.6) and symmetry checking (§8 property 6).
type Object struct {
	isa     string
	id      string
	content *Dictionary
	hooks   Hooks

	// referencedBy holds every object currently embedding a ref to this
	// one. It is a plain map, not a container.OrderedMap: order doesn't
	// matter for back-references, only membership. Per §5, a snapshot of
	// still-live referrers must be used for iteration, since an entry can
	// go stale between a target's deallocation and the next mutation.
	referencedBy map[string]*Object

	// parent and owningBuildPhase are weak caches some hooks populate in
	// OnAddedReference/OnRemovedReference (§3: "a build-file caches its
	// parent build phase; a group's child caches its parent group").
	// They are plain fields rather than per-subtype state because only
	// one object can plausibly hold each role at a time.
	parent           *Object
	owningBuildPhase *Object
}

func (*Object) isValue() {}

// NewObject constructs an Object directly; used by the factory and by
// tests. Production code should go through Project.Create instead so the
// id is registered and uniqueness-checked.
func NewObject(isa, id string, content *Dictionary, hooks Hooks) *Object {
	if hooks == nil {
		hooks = noopHooks{}
	}
	return &Object{
		isa:          isa,
		id:           id,
		content:      content,
		hooks:        hooks,
		referencedBy: make(map[string]*Object),
	}
}

// ISA returns the immutable record-type tag.
func (o *Object) ISA() string {
	return o.isa
}

// ID returns the immutable 24-hex-digit identifier.
func (o *Object) ID() string {
	return o.id
}

// Content returns the mutable content dictionary.
func (o *Object) Content() *Dictionary {
	return o.content
}

// RenderComment returns the subtype's computed inline-comment text.
func (o *Object) RenderComment() string {
	return o.hooks.RenderComment(o)
}

// RenderSingleLine reports whether this object's content renders on one
// line.
func (o *Object) RenderSingleLine() bool {
	return o.hooks.RenderSingleLine(o)
}

// Parent returns the object that last added this one as a reference and
// whose hooks chose to cache the relationship (e.g. a PBXGroup caching
// itself on a child it just gained). It may be nil.
func (o *Object) Parent() *Object {
	return o.parent
}

// OwningBuildPhase returns the build phase that last added this object
// (typically a PBXBuildFile) as a reference, if its hooks cached the
// relationship. It may be nil.
func (o *Object) OwningBuildPhase() *Object {
	return o.owningBuildPhase
}

// ReferencedBy returns a snapshot of objects currently holding a live
// reference to this one (§8 property 6). The snapshot may be iterated
// safely even if the graph is mutated concurrently with the iteration by
// the same goroutine (e.g. removing referrers one at a time).
func (o *Object) ReferencedBy() []*Object {
	out := make([]*Object, 0, len(o.referencedBy))
	for _, p := range o.referencedBy {
		out = append(out, p)
	}
	return out
}

// addReference registers referrer as holding a reference to o, and invokes
// o's OnAddedReference hook so subtypes can cache a parent/owner pointer.
func (o *Object) addReference(referrer *Object) {
	if referrer == nil {
		return
	}
	o.referencedBy[referrer.id] = referrer
	o.hooks.OnAddedReference(o, referrer)
}

// removeReference unregisters referrer and invokes o's OnRemovedReference
// hook.
func (o *Object) removeReference(referrer *Object) {
	if referrer == nil {
		return
	}
	delete(o.referencedBy, referrer.id)
	o.hooks.OnRemovedReference(o, referrer)
}
