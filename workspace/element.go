// Package workspace implements round-tripping of contents.xcworkspacedata,
// the UTF-8 XML manifest an IDE workspace uses to list the projects (and
// groups of projects) it contains (§4.7, §6 "Workspace file").
package workspace

// Attr is one XML attribute, kept in source order (attribute order matters
// for a byte-stable round-trip the same way dictionary key order does for
// the property-list side).
type Attr struct {
	Name  string
	Value string
}

// Element is one XML element in the workspace tree: a name, its ordered
// attributes, and its ordered children. Unlike encoding/xml's struct
// tag-based unmarshaling (which would lose attribute order and any element
// this library doesn't know the shape of), Element is a generic tree so an
// unrecognized child element round-trips unchanged even though only
// FileRef/Group carry domain meaning (§4.7: "Other children are ignored"
// for reference-cache purposes, but they are not dropped from the tree).
type Element struct {
	Name     string
	Attrs    []Attr
	Children []*Element
}

// NewElement returns an empty element named name.
func NewElement(name string) *Element {
	return &Element{Name: name}
}

// Attr returns the value of the named attribute, and whether it was
// present.
func (e *Element) Attr(name string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// SetAttr inserts or replaces the named attribute, preserving its position
// if already present.
func (e *Element) SetAttr(name, value string) {
	for i, a := range e.Attrs {
		if a.Name == name {
			e.Attrs[i].Value = value
			return
		}
	}
	e.Attrs = append(e.Attrs, Attr{Name: name, Value: value})
}

// AppendChild adds child as the last child.
func (e *Element) AppendChild(child *Element) {
	e.Children = append(e.Children, child)
}

// InsertChild inserts child at index i, clamped to [0, len(Children)].
func (e *Element) InsertChild(child *Element, i int) {
	if i < 0 {
		i = 0
	}
	if i > len(e.Children) {
		i = len(e.Children)
	}
	e.Children = append(e.Children, nil)
	copy(e.Children[i+1:], e.Children[i:])
	e.Children[i] = child
}

// RemoveChild detaches child by identity, if present.
func (e *Element) RemoveChild(child *Element) {
	for i, c := range e.Children {
		if c == child {
			e.Children = append(e.Children[:i], e.Children[i+1:]...)
			return
		}
	}
}
