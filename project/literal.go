package project

// Literal is the atomic value in the property-list dialect: either a plain
// string, or a reference to an object identified by a 24-hex-digit id.
// Equality and hashing use only the string/id (property 8 in spec.md §8):
// Literal.String("X") compares equal to Literal.Ref("X", ..., false) for
// every lookup purpose. The Go type is a value type (not a pointer) so that
// dictionary keys and array elements can carry it by value the way the
// on-disk grammar treats a token as interchangeable with what it names.
type Literal struct {
	ref     bool
	text    string
	target  *Object
	silent  bool
}

// String returns a plain-string Literal.
func String(s string) Literal {
	return Literal{text: s}
}

// Ref returns a reference Literal for id, resolved against target (nil if
// the id did not resolve to a live object at the time of construction).
// silent suppresses comment emission for this particular occurrence when
// rendered (§3, §4.3).
func Ref(id string, target *Object, silent bool) Literal {
	return Literal{ref: true, text: id, target: target, silent: silent}
}

// IsRef reports whether this Literal is a reference variant.
func (l Literal) IsRef() bool {
	return l.ref
}

// Text returns the underlying string: the plain string, or the referenced
// id for a ref variant.
func (l Literal) Text() string {
	return l.text
}

// Key returns the value used for equality and dictionary lookup. Per
// property 8, a ref and a plain string with the same text are
// interchangeable for lookup purposes.
func (l Literal) Key() string {
	return l.text
}

// Target returns the object a ref Literal resolves to, or nil if this is a
// plain string or the reference target has since been removed from the
// graph. Dereferencing a stale weak handle must fail gracefully, never
// panic (§3 "Ownership").
func (l Literal) Target() *Object {
	return l.target
}

// Silent reports whether rendering should suppress this ref's inline
// comment.
func (l Literal) Silent() bool {
	return l.silent
}

// WithTarget returns a copy of l re-resolved against target. Used by the
// linker and by object removal to re-point or detach a ref in place without
// losing its silent flag.
func (l Literal) WithTarget(target *Object) Literal {
	l.target = target
	return l
}

func (Literal) isValue() {}
