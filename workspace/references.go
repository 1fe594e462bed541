package workspace

import "strings"

// ProjectReference names one child .xcodeproj this workspace includes,
// wherever in the Group nesting its FileRef node lives (§4.7).
type ProjectReference struct {
	Node     *Element
	Location string
	URL      string
}

// splitPrefix splits a location attribute into its anchor prefix
// (group/container/absolute) and the remainder, per §4.7's prefix table.
// An unrecognized or missing prefix reports ok=false; its node is ignored
// for reference-cache purposes but stays in the tree untouched.
func splitPrefix(location string) (prefix, rest string, ok bool) {
	for _, p := range []string{"group:", "container:", "absolute:"} {
		if strings.HasPrefix(location, p) {
			return strings.TrimSuffix(p, ":"), location[len(p):], true
		}
	}
	return "", "", false
}

func joinPath(base, rest string) string {
	switch {
	case base == "":
		return rest
	case rest == "":
		return base
	default:
		return strings.TrimSuffix(base, "/") + "/" + strings.TrimPrefix(rest, "/")
	}
}

// rebuildReferences recomputes the ProjectReference cache from scratch by
// recursively descending the tree under Root, per §4.7's prefix table.
func (w *Workspace) rebuildReferences() {
	w.refs = nil
	w.refsByURL = make(map[string]*ProjectReference)
	if w.Root == nil {
		return
	}
	w.descend(w.Root, "", w.Directory())
}

func (w *Workspace) descend(parent *Element, parentLocation, parentDir string) {
	for _, child := range parent.Children {
		loc, hasLoc := child.Attr("location")
		if !hasLoc {
			continue
		}
		prefix, rest, ok := splitPrefix(loc)
		if !ok {
			continue
		}

		var location, url string
		switch prefix {
		case "group":
			location = joinPath(parentLocation, rest)
			url = joinPath(parentDir, rest)
		case "container":
			location = rest
			url = joinPath(w.Directory(), rest)
		case "absolute":
			location = rest
			url = rest
		}

		switch child.Name {
		case "FileRef":
			if strings.HasSuffix(url, ".xcodeproj") {
				ref := &ProjectReference{Node: child, Location: location, URL: url}
				w.refs = append(w.refs, ref)
				w.refsByURL[url] = ref
			}
		case "Group":
			w.descend(child, location, url)
		}
	}
}

// ProjectReferences returns every cached child-project reference, in
// discovery (depth-first, document) order.
func (w *Workspace) ProjectReferences() []*ProjectReference {
	out := make([]*ProjectReference, len(w.refs))
	copy(out, w.refs)
	return out
}

// Insert constructs a new top-level FileRef node for url and inserts it
// into Root's children at index at (clamped), creating a Workspace root if
// absent, then rebuilds the reference cache (§4.7). url is interpreted as
// absolute (the "absolute:" prefix, used as-is) or as relative to the
// workspace's own directory (the "container:" prefix) depending on
// absolute.
func (w *Workspace) Insert(url string, absolute bool, at int) *ProjectReference {
	if w.Root == nil {
		w.Root = NewElement("Workspace")
		w.Root.SetAttr("version", "1.0")
	}
	location := "container:" + url
	if absolute {
		location = "absolute:" + url
	}
	node := NewElement("FileRef")
	node.SetAttr("location", location)
	w.Root.InsertChild(node, at)

	w.rebuildReferences()
	for _, ref := range w.refs {
		if ref.Node == node {
			return ref
		}
	}
	return nil
}

// Append is Insert at the end of Root's children.
func (w *Workspace) Append(url string, absolute bool) *ProjectReference {
	at := 0
	if w.Root != nil {
		at = len(w.Root.Children)
	}
	return w.Insert(url, absolute, at)
}

// Remove detaches the FileRef node whose resolved URL is url and evicts it
// from the cache. It reports whether a matching reference was found.
func (w *Workspace) Remove(url string) bool {
	ref, ok := w.refsByURL[url]
	if !ok {
		return false
	}
	return w.RemoveReference(ref)
}

// RemoveReference detaches ref's node from wherever it lives in the tree
// and evicts it from the cache.
func (w *Workspace) RemoveReference(ref *ProjectReference) bool {
	if w.Root == nil || !detachNode(w.Root, ref.Node) {
		return false
	}
	delete(w.refsByURL, ref.URL)
	for i, r := range w.refs {
		if r == ref {
			w.refs = append(w.refs[:i], w.refs[i+1:]...)
			break
		}
	}
	return true
}

func detachNode(parent, target *Element) bool {
	for _, child := range parent.Children {
		if child == target {
			parent.RemoveChild(target)
			return true
		}
		if detachNode(child, target) {
			return true
		}
	}
	return false
}
