package project

// noopHooks is the fallback for any isa not registered in the factory
// (§4.4: "unknown isas fall back to generic object that no-ops every
// hook").
type noopHooks struct{}

func (noopHooks) RenderComment(*Object) string            { return "" }
func (noopHooks) RenderSingleLine(*Object) bool           { return false }
func (noopHooks) OnAddedReference(*Object, *Object)       {}
func (noopHooks) OnRemovedReference(*Object, *Object)     {}

// projectRecordHooks specializes PBXProject: its on-disk comment is always
// the fixed string "Project object", matching every real project.pbxproj.
type projectRecordHooks struct{}

func (projectRecordHooks) RenderComment(*Object) string { return "Project object" }
func (projectRecordHooks) RenderSingleLine(*Object) bool { return false }
func (projectRecordHooks) OnAddedReference(*Object, *Object) {}
func (projectRecordHooks) OnRemovedReference(*Object, *Object) {}

// fileReferenceHooks specializes PBXFileReference: it renders on a single
// line (teacher's writeSection special-cases exactly this isa for inline
// rendering) and comments itself with its basename (name, falling back to
// path). It also caches whichever group most recently added it, used by
// path resolution's parent walk (§4.8).
type fileReferenceHooks struct{}

func (fileReferenceHooks) RenderComment(o *Object) string {
	if name := o.content.GetString("name"); name != "" {
		return basenameOf(name)
	}
	return basenameOf(o.content.GetString("path"))
}

func (fileReferenceHooks) RenderSingleLine(*Object) bool { return true }

func (fileReferenceHooks) OnAddedReference(o, referrer *Object) {
	if referrer == nil {
		return
	}
	switch referrer.ISA() {
	case "PBXGroup", "PBXVariantGroup", "XCVersionGroup":
		o.parent = referrer
	}
}

func (fileReferenceHooks) OnRemovedReference(o, referrer *Object) {
	if o.parent == referrer {
		o.parent = nil
	}
}

// buildFileHooks specializes PBXBuildFile: single-line rendering, and its
// comment names the file it builds, suffixed with " in <name>" when the
// build phase it lives in (cached once that back-reference lands, §3: "a
// build-file caches its parent build phase") has a "name" entry; phases
// without one add no suffix.
type buildFileHooks struct{}

func (buildFileHooks) RenderComment(o *Object) string {
	fileComment := ""
	if fileRef, ok := o.content.Get("fileRef"); ok {
		if lit, ok := fileRef.(Literal); ok && lit.Target() != nil {
			fileComment = lit.Target().RenderComment()
		}
	}
	if fileComment == "" {
		return ""
	}
	if o.owningBuildPhase != nil {
		if name := o.owningBuildPhase.Content().GetString("name"); name != "" {
			return fileComment + " in " + name
		}
	}
	return fileComment
}

func (buildFileHooks) RenderSingleLine(*Object) bool { return true }

func (buildFileHooks) OnAddedReference(o, referrer *Object) {
	if referrer == nil {
		return
	}
	if isBuildPhase(referrer.ISA()) {
		o.owningBuildPhase = referrer
	}
}

func (buildFileHooks) OnRemovedReference(o, referrer *Object) {
	if o.owningBuildPhase == referrer {
		o.owningBuildPhase = nil
	}
}

// groupHooks specializes PBXGroup/PBXVariantGroup/XCVersionGroup: its
// comment is its name, falling back to its path, and it caches the group
// that most recently added it as a child (groups nest).
type groupHooks struct{}

func (groupHooks) RenderComment(o *Object) string {
	if name := o.content.GetString("name"); name != "" {
		return name
	}
	return o.content.GetString("path")
}

func (groupHooks) RenderSingleLine(*Object) bool { return false }

func (groupHooks) OnAddedReference(o, referrer *Object) {
	if referrer != nil && referrer.ISA() == "PBXGroup" {
		o.parent = referrer
	}
}

func (groupHooks) OnRemovedReference(o, referrer *Object) {
	if o.parent == referrer {
		o.parent = nil
	}
}

// namedHooks covers record types whose comment is simply their "name"
// field: native/aggregate/legacy targets and build configurations.
type namedHooks struct{}

func (namedHooks) RenderComment(o *Object) string        { return o.content.GetString("name") }
func (namedHooks) RenderSingleLine(*Object) bool          { return false }
func (namedHooks) OnAddedReference(*Object, *Object)       {}
func (namedHooks) OnRemovedReference(*Object, *Object)     {}

// buildPhaseHooks covers the various *BuildPhase isas: their comment is
// their own "name" if set (shell-script phases usually have one; the
// standard sources/resources/frameworks phases usually don't).
type buildPhaseHooks struct{}

func (buildPhaseHooks) RenderComment(o *Object) string    { return o.content.GetString("name") }
func (buildPhaseHooks) RenderSingleLine(*Object) bool      { return false }
func (buildPhaseHooks) OnAddedReference(*Object, *Object)   {}
func (buildPhaseHooks) OnRemovedReference(*Object, *Object) {}

func isBuildPhase(isa string) bool {
	switch isa {
	case "PBXSourcesBuildPhase", "PBXResourcesBuildPhase", "PBXFrameworksBuildPhase",
		"PBXCopyFilesBuildPhase", "PBXHeadersBuildPhase", "PBXShellScriptBuildPhase",
		"PBXRezBuildPhase":
		return true
	}
	return false
}

func basenameOf(path string) string {
	if path == "" {
		return ""
	}
	i := len(path) - 1
	for i >= 0 && path[i] != '/' {
		i--
	}
	return path[i+1:]
}
