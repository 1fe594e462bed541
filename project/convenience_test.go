package project

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCreateGroupSetsOptionalFieldsOnlyWhenNonEmpty(t *testing.T) {
	p := loadSampleProject(t)

	g, err := p.CreateGroup("", "", "")
	if err != nil {
		t.Fatal(err)
	}
	if g.Content().Has("name") || g.Content().Has("path") {
		t.Errorf("empty name/path should be omitted, content = %#v", g.Content())
	}
	if got := g.Content().GetString("sourceTree"); got != DefaultSourceTree {
		t.Errorf("sourceTree = %q, want default %q", got, DefaultSourceTree)
	}

	g2, err := p.CreateGroup("Frameworks", "Frameworks", "SOURCE_ROOT")
	if err != nil {
		t.Fatal(err)
	}
	if got := g2.Content().GetString("name"); got != "Frameworks" {
		t.Errorf("name = %q", got)
	}
	if got := g2.Content().GetString("path"); got != "Frameworks" {
		t.Errorf("path = %q", got)
	}
	if got := g2.Content().GetString("sourceTree"); got != "SOURCE_ROOT" {
		t.Errorf("sourceTree = %q", got)
	}
	if children := g2.Content().GetArray("children"); children == nil || children.Len() != 0 {
		t.Errorf("children = %#v, want empty array", children)
	}
}

func TestAddSourceFileFilesUnderGroupAndBuildPhase(t *testing.T) {
	p := loadSampleProject(t)
	group := p.MainGroup()
	target := p.ids["TARG"]

	fileRef, err := p.AddSourceFile(group, target, "foo.m")
	if err != nil {
		t.Fatal(err)
	}
	if got := fileRef.Content().GetString("lastKnownFileType"); got != "sourcecode.c.objc" {
		t.Errorf("lastKnownFileType = %q", got)
	}

	children := group.Content().GetArray("children")
	if children == nil || children.Len() != 1 {
		t.Fatalf("group children = %#v", children)
	}
	if lit, ok := children.Items()[0].(Literal); !ok || lit.Target() != fileRef {
		t.Errorf("children[0] does not reference the new file")
	}

	phase := p.existingBuildPhase(target, "PBXSourcesBuildPhase")
	if phase == nil {
		t.Fatal("PBXSourcesBuildPhase was not created")
	}
	files := phase.Content().GetArray("files")
	if files == nil || files.Len() != 1 {
		t.Fatalf("build phase files = %#v", files)
	}
	buildFile, ok := files.Items()[0].(Literal)
	if !ok || buildFile.Target() == nil {
		t.Fatal("build phase's file entry is not a resolved build file")
	}
	ref, _ := buildFile.Target().Content().Get("fileRef")
	if lit, ok := ref.(Literal); !ok || lit.Target() != fileRef {
		t.Error("build file's fileRef does not point at the new file reference")
	}
}

func TestAddResourceFileUsesResourcesBuildPhase(t *testing.T) {
	p := loadSampleProject(t)
	group := p.MainGroup()
	target := p.ids["TARG"]

	if _, err := p.AddResourceFile(group, target, "img.png"); err != nil {
		t.Fatal(err)
	}
	if phase := p.existingBuildPhase(target, "PBXResourcesBuildPhase"); phase == nil {
		t.Fatal("PBXResourcesBuildPhase was not created")
	}
	if phase := p.existingBuildPhase(target, "PBXSourcesBuildPhase"); phase != nil {
		t.Error("AddResourceFile should not create a sources build phase")
	}
}

func TestAddHeaderFileWithoutExistingHeadersPhaseOnlyFilesReference(t *testing.T) {
	p := loadSampleProject(t)
	group := p.MainGroup()
	target := p.ids["TARG"]

	fileRef, err := p.AddHeaderFile(group, target, "foo.h")
	if err != nil {
		t.Fatal(err)
	}
	if got := fileRef.Content().GetString("lastKnownFileType"); got != "sourcecode.c.h" {
		t.Errorf("lastKnownFileType = %q", got)
	}
	children := group.Content().GetArray("children")
	if children == nil || children.Len() != 1 {
		t.Fatalf("group children = %#v", children)
	}
	if phase := p.existingBuildPhase(target, "PBXHeadersBuildPhase"); phase != nil {
		t.Error("no PBXHeadersBuildPhase should be created when the target has none")
	}
}

func TestAddHeaderFileWithExistingHeadersPhaseAlsoAddsBuildFile(t *testing.T) {
	p := loadSampleProject(t)
	group := p.MainGroup()
	target := p.ids["TARG"]

	// Give the target a headers phase up front, as a library target would.
	phase, err := p.BuildPhase("PBXHeadersBuildPhase", target)
	if err != nil {
		t.Fatal(err)
	}

	fileRef, err := p.AddHeaderFile(group, target, "foo.h")
	if err != nil {
		t.Fatal(err)
	}
	files := phase.Content().GetArray("files")
	if files == nil || files.Len() != 1 {
		t.Fatalf("headers phase files = %#v", files)
	}
	buildFile, ok := files.Items()[0].(Literal)
	if !ok || buildFile.Target() == nil {
		t.Fatal("headers phase's file entry is not a resolved build file")
	}
	ref, _ := buildFile.Target().Content().Get("fileRef")
	if lit, ok := ref.(Literal); !ok || lit.Target() != fileRef {
		t.Error("build file's fileRef does not point at the new header")
	}
}

func TestAddFrameworkCreatesSharedFrameworksGroup(t *testing.T) {
	p := loadSampleProject(t)
	target := p.ids["TARG"]

	fileRef1, err := p.AddFramework(target, "Foundation")
	if err != nil {
		t.Fatal(err)
	}
	if got := fileRef1.Content().GetString("path"); got != "Foundation.framework" {
		t.Errorf("path = %q", got)
	}
	if got := fileRef1.Content().GetString("sourceTree"); got != "SDKROOT" {
		t.Errorf("sourceTree = %q, want SDKROOT", got)
	}

	if _, err := p.AddFramework(target, "UIKit"); err != nil {
		t.Fatal(err)
	}

	mainGroup := p.MainGroup()
	children := mainGroup.Content().GetArray("children")
	var frameworksGroups int
	for _, v := range children.Items() {
		lit, ok := v.(Literal)
		if ok && lit.Target() != nil && lit.Target().ISA() == "PBXGroup" && lit.Target().Content().GetString("name") == "Frameworks" {
			frameworksGroups++
		}
	}
	if frameworksGroups != 1 {
		t.Errorf("found %d Frameworks groups under mainGroup, want exactly 1 (shared across calls)", frameworksGroups)
	}

	phase := p.existingBuildPhase(target, "PBXFrameworksBuildPhase")
	if phase == nil || phase.Content().GetArray("files").Len() != 2 {
		t.Fatalf("frameworks build phase = %#v", phase)
	}
}

// writeLeafProject writes a minimal valid .xcodeproj bundle at dir, with no
// projectReferences of its own.
func writeLeafProject(t *testing.T, dir string) {
	t.Helper()
	if err := os.Mkdir(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	src := `{ objects = {
		LPROJ = { isa = PBXProject; mainGroup = LMAIN; targets = ( ); };
		LMAIN = { isa = PBXGroup; children = ( ); sourceTree = "<group>"; };
	}; rootObject = LPROJ; }`
	if err := os.WriteFile(filepath.Join(dir, "project.pbxproj"), []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
}

// buildProjectWithChildReference writes a child .xcodeproj to disk (with no
// further children of its own unless grandchildURL is non-empty, in which
// case the child references that URL too — the caller is responsible for
// that grandchild directory existing on disk if deep enumeration will try
// to load it) and returns a root Project whose PBXProject has a single
// projectReferences entry pointing at the child.
func buildProjectWithChildReference(t *testing.T, dir, childName, grandchildURL string) (*Project, string) {
	t.Helper()
	childDir := filepath.Join(dir, childName+".xcodeproj")
	if err := os.Mkdir(childDir, 0o755); err != nil {
		t.Fatal(err)
	}
	var childSrc string
	if grandchildURL != "" {
		childSrc = fmt.Sprintf(`{ objects = {
			CPROJ = { isa = PBXProject; mainGroup = CMAIN; targets = ( ); projectReferences = ( { ProjectRef = GRAND; }, ); };
			CMAIN = { isa = PBXGroup; children = ( ); sourceTree = "<group>"; };
			GRAND = { isa = PBXFileReference; path = %q; sourceTree = "<absolute>"; };
		}; rootObject = CPROJ; }`, strings.TrimPrefix(grandchildURL, "/"))
	} else {
		childSrc = `{ objects = {
			CPROJ = { isa = PBXProject; mainGroup = CMAIN; targets = ( ); };
			CMAIN = { isa = PBXGroup; children = ( ); sourceTree = "<group>"; };
		}; rootObject = CPROJ; }`
	}
	childPath := filepath.Join(childDir, "project.pbxproj")
	if err := os.WriteFile(childPath, []byte(childSrc), 0o644); err != nil {
		t.Fatal(err)
	}

	rootSrc := fmt.Sprintf(`{ objects = {
		PROJ = { isa = PBXProject; mainGroup = MAIN; targets = ( ); projectReferences = ( { ProjectRef = CHILDREF; }, ); };
		MAIN = { isa = PBXGroup; children = ( ); sourceTree = "<group>"; };
		CHILDREF = { isa = PBXFileReference; path = %q; sourceTree = "<absolute>"; };
	}; rootObject = PROJ; }`, strings.TrimPrefix(childDir, "/"))

	p, err := Load([]byte(rootSrc), filepath.Join(dir, "Root.xcodeproj", "project.pbxproj"))
	if err != nil {
		t.Fatal(err)
	}
	return p, childDir
}

func TestEnumerateChildProjectsDeepVisitsGrandchildren(t *testing.T) {
	dir := t.TempDir()
	grandDir := filepath.Join(dir, "Grand.xcodeproj")
	writeLeafProject(t, grandDir)
	p, childDir := buildProjectWithChildReference(t, dir, "Child", grandDir)

	var visited []string
	p.EnumerateChildProjects(EnumerateDeep, func(ref *Object) bool {
		visited = append(visited, ref.Content().GetString("path"))
		return true
	}, func(url string, err error) {
		t.Errorf("unexpected load error for %s: %v", url, err)
	})

	if len(visited) != 2 {
		t.Fatalf("visited = %v, want 2 entries (child and grandchild)", visited)
	}
	if got, want := visited[0], strings.TrimPrefix(childDir, "/"); got != want {
		t.Errorf("visited[0] = %q, want %q", got, want)
	}
}

func TestEnumerateChildProjectsWithoutDeepStopsAtDirectChildren(t *testing.T) {
	dir := t.TempDir()
	grandDir := filepath.Join(dir, "Grand.xcodeproj")
	p, _ := buildProjectWithChildReference(t, dir, "Child", grandDir)

	var visited int
	p.EnumerateChildProjects(0, func(ref *Object) bool {
		visited++
		return true
	}, nil)

	if visited != 1 {
		t.Errorf("visited = %d, want 1 (no recursion without EnumerateDeep)", visited)
	}
}

func TestEnumerateChildProjectsOnceDeduplicatesByResolvedURL(t *testing.T) {
	dir := t.TempDir()
	p, childDir := buildProjectWithChildReference(t, dir, "Child", "")

	// Add a second projectReferences entry pointing at the very same
	// resolved absolute URL as CHILDREF, via a distinct file reference.
	root := p.RootObject()
	refs := root.Content().GetArray("projectReferences")
	dup, err := p.Create("PBXFileReference")
	if err != nil {
		t.Fatal(err)
	}
	dup.Content().SetString("path", String(strings.TrimPrefix(childDir, "/")))
	dup.Content().SetString("sourceTree", String("<absolute>"))
	entry := NewDictionary()
	p.SetReference(entry, "ProjectRef", root, dup, false)
	refs.Append(entry)

	var withOnce, withoutOnce int
	p.EnumerateChildProjects(EnumerateOnce, func(ref *Object) bool {
		withOnce++
		return true
	}, nil)
	p.EnumerateChildProjects(0, func(ref *Object) bool {
		withoutOnce++
		return true
	}, nil)

	if withOnce != 1 {
		t.Errorf("EnumerateOnce visited = %d, want 1", withOnce)
	}
	if withoutOnce != 2 {
		t.Errorf("without EnumerateOnce visited = %d, want 2", withoutOnce)
	}
}

func TestEnumerateChildProjectsReportsDeepLoadFailure(t *testing.T) {
	dir := t.TempDir()
	missingDir := filepath.Join(dir, "Missing.xcodeproj")
	rootSrc := fmt.Sprintf(`{ objects = {
		PROJ = { isa = PBXProject; mainGroup = MAIN; targets = ( ); projectReferences = ( { ProjectRef = CHILDREF; }, ); };
		MAIN = { isa = PBXGroup; children = ( ); sourceTree = "<group>"; };
		CHILDREF = { isa = PBXFileReference; path = %q; sourceTree = "<absolute>"; };
	}; rootObject = PROJ; }`, strings.TrimPrefix(missingDir, "/"))
	p, err := Load([]byte(rootSrc), filepath.Join(dir, "Root.xcodeproj", "project.pbxproj"))
	if err != nil {
		t.Fatal(err)
	}

	var loadErrs int
	p.EnumerateChildProjects(EnumerateDeep, func(ref *Object) bool {
		return true
	}, func(url string, err error) {
		loadErrs++
		if err == nil {
			t.Error("onLoadError called with a nil error")
		}
	})

	if loadErrs != 1 {
		t.Errorf("loadErrs = %d, want 1", loadErrs)
	}
}
