package project

import (
	"fmt"
	"path"
	"strings"
)

// CreateFileReference builds a new PBXFileReference for filePath, filling
// in lastKnownFileType (from the extension table), sourceTree (defaulting
// to DefaultSourceTree), and path (set to filePath as given; no separate
// name entry is written). It does not attach the reference to any group.
func (p *Project) CreateFileReference(filePath, sourceTree string) (*Object, error) {
	if sourceTree == "" {
		sourceTree = DefaultSourceTree
	}
	obj, err := p.Create("PBXFileReference")
	if err != nil {
		return nil, err
	}
	ext := strings.TrimPrefix(path.Ext(filePath), ".")
	content := obj.Content()
	content.SetString("lastKnownFileType", String(filetypeForExtension(ext)))
	content.SetString("path", String(filePath))
	content.SetString("sourceTree", String(sourceTree))
	return obj, nil
}

// CreateGroup builds a new PBXGroup with the given name/path/sourceTree
// (any of which may be empty) and an empty children array. It does not
// attach the group to any parent.
func (p *Project) CreateGroup(name, groupPath, sourceTree string) (*Object, error) {
	if sourceTree == "" {
		sourceTree = DefaultSourceTree
	}
	obj, err := p.Create("PBXGroup")
	if err != nil {
		return nil, err
	}
	content := obj.Content()
	if name != "" {
		content.SetString("name", String(name))
	}
	if groupPath != "" {
		content.SetString("path", String(groupPath))
	}
	content.SetString("sourceTree", String(sourceTree))
	content.SetString("children", NewArray())
	return obj, nil
}

// AddChild appends child as a reference inside parent's children array,
// creating the array if absent.
func (p *Project) AddChild(parent, child *Object) {
	p.appendChild(parent, child)
}

// createBuildFile builds a new PBXBuildFile referencing fileRef.
func (p *Project) createBuildFile(fileRef *Object) (*Object, error) {
	obj, err := p.Create("PBXBuildFile")
	if err != nil {
		return nil, err
	}
	p.SetReference(obj.Content(), "fileRef", obj, fileRef, false)
	return obj, nil
}

// BuildPhase returns target's build phase of the given isa, creating and
// attaching one (with an empty "files" array) if absent.
func (p *Project) BuildPhase(isa string, target *Object) (*Object, error) {
	phases := target.Content().GetArray("buildPhases")
	if phases == nil {
		phases = NewArray()
		target.Content().SetString("buildPhases", phases)
	}
	for _, v := range phases.Items() {
		if lit, ok := v.(Literal); ok && lit.Target() != nil && lit.Target().ISA() == isa {
			return lit.Target(), nil
		}
	}
	phase, err := p.Create(isa)
	if err != nil {
		return nil, err
	}
	phase.Content().SetString("files", NewArray())
	p.AppendReference(phases, target, phase, false)
	return phase, nil
}

// addToBuildPhase wires a build file into a build phase's files array.
func (p *Project) addToBuildPhase(phase, buildFile *Object) {
	files := phase.Content().GetArray("files")
	if files == nil {
		files = NewArray()
		phase.Content().SetString("files", files)
	}
	p.AppendReference(files, phase, buildFile, true)
}

// addFileUnderPhase is the shared tail of AddSourceFile/AddHeaderFile/
// AddResourceFile: create a file reference, file it under group, wrap it
// in a build file, and add that build file to target's build phase of
// phaseISA.
func (p *Project) addFileUnderPhase(group, target *Object, filePath, sourceTree, phaseISA string) (*Object, error) {
	fileRef, err := p.CreateFileReference(filePath, sourceTree)
	if err != nil {
		return nil, err
	}
	p.AddChild(group, fileRef)

	buildFile, err := p.createBuildFile(fileRef)
	if err != nil {
		return nil, err
	}
	phase, err := p.BuildPhase(phaseISA, target)
	if err != nil {
		return nil, err
	}
	p.addToBuildPhase(phase, buildFile)
	return fileRef, nil
}

// AddSourceFile creates a file reference for filePath, files it under
// group, and adds it to target's PBXSourcesBuildPhase (creating the phase
// if target has none yet).
func (p *Project) AddSourceFile(group, target *Object, filePath string) (*Object, error) {
	return p.addFileUnderPhase(group, target, filePath, "", "PBXSourcesBuildPhase")
}

// AddResourceFile creates a file reference for filePath, files it under
// group, and adds it to target's PBXResourcesBuildPhase.
func (p *Project) AddResourceFile(group, target *Object, filePath string) (*Object, error) {
	return p.addFileUnderPhase(group, target, filePath, "", "PBXResourcesBuildPhase")
}

// AddHeaderFile creates a file reference for filePath and files it under
// group. If target already has a PBXHeadersBuildPhase, the header is also
// added there (most application targets don't have one; library targets
// publishing headers do).
func (p *Project) AddHeaderFile(group, target *Object, filePath string) (*Object, error) {
	fileRef, err := p.CreateFileReference(filePath, "")
	if err != nil {
		return nil, err
	}
	p.AddChild(group, fileRef)

	if phase := p.existingBuildPhase(target, "PBXHeadersBuildPhase"); phase != nil {
		buildFile, err := p.createBuildFile(fileRef)
		if err != nil {
			return nil, err
		}
		p.addToBuildPhase(phase, buildFile)
	}
	return fileRef, nil
}

// existingBuildPhase returns target's build phase of the given isa
// without creating one if absent.
func (p *Project) existingBuildPhase(target *Object, isa string) *Object {
	phases := target.Content().GetArray("buildPhases")
	if phases == nil {
		return nil
	}
	for _, v := range phases.Items() {
		if lit, ok := v.(Literal); ok && lit.Target() != nil && lit.Target().ISA() == isa {
			return lit.Target()
		}
	}
	return nil
}

// AddFramework creates a file reference for a system framework named
// name (e.g. "Foundation" for Foundation.framework), files it under a
// top-level "Frameworks" group (creating that group under the main group
// if absent), and adds it to target's PBXFrameworksBuildPhase.
func (p *Project) AddFramework(target *Object, name string) (*Object, error) {
	frameworksGroup, err := p.frameworksGroup()
	if err != nil {
		return nil, err
	}
	filePath := name + ".framework"
	return p.addFileUnderPhase(frameworksGroup, target, filePath, "SDKROOT", "PBXFrameworksBuildPhase")
}

func (p *Project) frameworksGroup() (*Object, error) {
	mainGroup := p.MainGroup()
	if mainGroup == nil {
		return nil, fmt.Errorf("project: project has no mainGroup")
	}
	if children := mainGroup.Content().GetArray("children"); children != nil {
		for _, v := range children.Items() {
			lit, ok := v.(Literal)
			if !ok || lit.Target() == nil {
				continue
			}
			if lit.Target().ISA() == "PBXGroup" && lit.Target().Content().GetString("name") == "Frameworks" {
				return lit.Target(), nil
			}
		}
	}
	group, err := p.CreateGroup("Frameworks", "", "<group>")
	if err != nil {
		return nil, err
	}
	p.AddChild(mainGroup, group)
	return group, nil
}

// EnumerateOptions controls EnumerateChildProjects. Deep and Once are
// given distinct bits (the source this library was ported from assigned
// both the same bit, almost certainly a bug; each is independently
// selectable here).
type EnumerateOptions uint8

const (
	// EnumerateDeep recurses into each child project's own
	// projectReferences, not just the direct ones.
	EnumerateDeep EnumerateOptions = 1 << 0
	// EnumerateOnce deduplicates visits by canonical file URL.
	EnumerateOnce EnumerateOptions = 1 << 1
)

// EnumerateChildProjects walks the PBXFileReference of every project
// referenced in the root object's projectReferences, calling fn with each.
// fn returns false to stop enumeration early. With EnumerateDeep, a child
// project that fails to load (missing file, parse error) is reported to
// onLoadError (if non-nil) instead of being silently dropped — per §7's
// error exit policy, the only undocumented silent-recovery paths are
// `#include?` and `.once`, so a failed deep load must surface somewhere.
// onLoadError may be nil, in which case the failure is skipped and
// enumeration continues with that child's siblings.
func (p *Project) EnumerateChildProjects(opts EnumerateOptions, fn func(*Object) bool, onLoadError func(url string, err error)) {
	visited := make(map[string]bool)
	p.enumerateChildProjects(opts, visited, fn, onLoadError)
}

func (p *Project) enumerateChildProjects(opts EnumerateOptions, visited map[string]bool, fn func(*Object) bool, onLoadError func(url string, err error)) bool {
	root := p.RootObject()
	if root == nil {
		return true
	}
	refs := root.Content().GetArray("projectReferences")
	if refs == nil {
		return true
	}
	for _, v := range refs.Items() {
		entry, ok := v.(*Dictionary)
		if !ok {
			continue
		}
		projectRef, ok := entry.Get("ProjectRef")
		if !ok {
			continue
		}
		lit, ok := projectRef.(Literal)
		if !ok || lit.Target() == nil {
			continue
		}
		fileRef := lit.Target()

		_, url, resolved := p.ResolveFileReferencePath(fileRef)
		if opts&EnumerateOnce != 0 && resolved {
			if visited[url] {
				continue
			}
			visited[url] = true
		}

		if !fn(fileRef) {
			return false
		}

		if opts&EnumerateDeep != 0 && resolved && strings.HasSuffix(url, ".xcodeproj") {
			child, err := LoadFile(url)
			if err != nil {
				if onLoadError != nil {
					onLoadError(url, err)
				}
				continue
			}
			if !child.enumerateChildProjects(opts, visited, fn, onLoadError) {
				return false
			}
		}
	}
	return true
}
