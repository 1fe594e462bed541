package project

import (
	"fmt"
	"path/filepath"
	"strings"
)

// resolveFrom implements §4.8's walk: starting from a path/sourceTree pair
// (a group's or file reference's own fields) and its parent group, it
// either terminates at a special-anchor sourceTree or keeps prepending
// ancestor path components until it reaches a group with no parent.
// resolved reports whether an absolute URL could be computed at all
// (false for the three anchors the table marks "unresolved").
func (p *Project) resolveFrom(seedPath, seedSourceTree string, parent *Object) (location, absolute string, resolved bool) {
	var components []string
	if seedPath != "" {
		components = append(components, seedPath)
	}
	sourceTree := seedSourceTree
	node := parent

	for {
		switch sourceTree {
		case "BUILT_PRODUCTS_DIR":
			return "$(BUILT_PRODUCTS_DIR)/" + strings.Join(components, "/"), "", false
		case "SDKROOT":
			return "/" + strings.Join(components, "/"), "", false
		case "DEVELOPER_DIR":
			return "$(DEVELOPER_DIR)/" + strings.Join(components, "/"), "", false
		case "SOURCE_ROOT":
			loc := strings.Join(components, "/")
			return loc, p.canonicalJoin(loc), true
		case "<absolute>":
			loc := "/" + strings.Join(components, "/")
			return loc, loc, true
		default:
			// "<group>", empty, or any unrecognized sourceTree: pass
			// through to the parent group, per §4.8's anchor table.
			if node == nil {
				loc := strings.Join(components, "/")
				return loc, p.canonicalJoin(loc), true
			}
			if pp := node.content.GetString("path"); pp != "" {
				components = append([]string{pp}, components...)
			}
			sourceTree = node.content.GetString("sourceTree")
			node = node.Parent()
		}
	}
}

// ResolveGroupPath implements resolve-group-path(G): location and absolute
// URL for a PBXGroup, walking its own fields then its ancestors.
func (p *Project) ResolveGroupPath(g *Object) (location, absolute string, resolved bool) {
	return p.resolveFrom(g.content.GetString("path"), g.content.GetString("sourceTree"), g.Parent())
}

// ResolveFileReferencePath implements resolve-file-reference-path(F): the
// same algorithm seeded with F's own path/sourceTree, continuing into its
// parent group if one is cached.
func (p *Project) ResolveFileReferencePath(f *Object) (location, absolute string, resolved bool) {
	return p.resolveFrom(f.content.GetString("path"), f.content.GetString("sourceTree"), f.Parent())
}

// canonicalJoin joins the project directory with a project-relative
// location and canonicalizes the result.
func (p *Project) canonicalJoin(location string) string {
	return canonicalize(filepath.Join(p.Directory(), location))
}

// canonicalize resolves symlinks, falling back to textual resolution of
// "." and ".." when the path doesn't exist or isn't resolvable (§4.8).
func canonicalize(path string) string {
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		return resolved
	}
	return filepath.Clean(path)
}

// RelativePath derives the relative path from base to target: both are
// canonicalized, their common prefix of components is dropped, and ".."
// is emitted for each remaining base component before target's own
// remaining components (§4.8).
func RelativePath(base, target string) string {
	baseComponents := splitPath(canonicalize(base))
	targetComponents := splitPath(canonicalize(target))

	i := 0
	for i < len(baseComponents) && i < len(targetComponents) && baseComponents[i] == targetComponents[i] {
		i++
	}

	out := make([]string, 0, len(baseComponents)-i+len(targetComponents)-i)
	for j := i; j < len(baseComponents); j++ {
		out = append(out, "..")
	}
	out = append(out, targetComponents[i:]...)
	return strings.Join(out, "/")
}

func splitPath(path string) []string {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}

// GroupFor implements group-for(directory, create-intermediates): it
// searches every PBXGroup for the one whose resolved absolute URL is the
// longest prefix of directory. An exact match is returned as-is.
// Otherwise, if createIntermediates, the missing path components are
// created as a chain of new PBXGroup children (sourceTree "<group>") off
// the best match (or the main group, if none matched at all) and the
// deepest new group is returned.
func (p *Project) GroupFor(directory string, createIntermediates bool) (*Object, error) {
	directory = canonicalize(directory)

	var best *Object
	var bestURL string
	for _, g := range p.groupSection() {
		_, url, resolved := p.ResolveGroupPath(g)
		if !resolved {
			continue
		}
		if url == directory {
			return g, nil
		}
		if isPathPrefix(url, directory) && len(url) > len(bestURL) {
			best, bestURL = g, url
		}
	}

	if !createIntermediates {
		return nil, fmt.Errorf("project: no group found for %s", directory)
	}

	anchor := best
	anchorURL := bestURL
	if anchor == nil {
		anchor = p.MainGroup()
		if anchor == nil {
			return nil, fmt.Errorf("project: project has no mainGroup")
		}
		_, url, _ := p.ResolveGroupPath(anchor)
		anchorURL = url
	}

	rel := strings.TrimPrefix(strings.TrimPrefix(directory, anchorURL), "/")
	for _, component := range splitPath(rel) {
		child, err := p.Create("PBXGroup")
		if err != nil {
			return nil, err
		}
		child.content.SetString("path", String(component))
		child.content.SetString("sourceTree", String("<group>"))
		p.appendChild(anchor, child)
		anchor = child
	}
	return anchor, nil
}

func (p *Project) groupSection() []*Object {
	sec, ok := p.Sections.Section("PBXGroup", false)
	if !ok {
		return nil
	}
	return sec.Objects()
}

func (p *Project) appendChild(parent, child *Object) {
	children := parent.content.GetArray("children")
	if children == nil {
		children = NewArray()
		parent.content.SetString("children", children)
	}
	p.AppendReference(children, parent, child, false)
}

func isPathPrefix(prefix, path string) bool {
	if prefix == "" {
		return true
	}
	if prefix == path {
		return true
	}
	return strings.HasPrefix(path, strings.TrimSuffix(prefix, "/")+"/")
}

// SearchGroup returns the PBXGroup whose resolved absolute URL equals
// directory, if any.
func (p *Project) SearchGroup(directory string) (*Object, bool) {
	directory = canonicalize(directory)
	for _, g := range p.groupSection() {
		if _, url, resolved := p.ResolveGroupPath(g); resolved && url == directory {
			return g, true
		}
	}
	return nil, false
}

// SearchFileReference returns the PBXFileReference whose resolved
// absolute URL equals path, if any.
func (p *Project) SearchFileReference(path string) (*Object, bool) {
	path = canonicalize(path)
	sec, ok := p.Sections.Section("PBXFileReference", false)
	if !ok {
		return nil, false
	}
	for _, f := range sec.Objects() {
		if _, url, resolved := p.ResolveFileReferencePath(f); resolved && url == path {
			return f, true
		}
	}
	return nil, false
}
