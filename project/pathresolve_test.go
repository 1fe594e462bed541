package project

import "testing"

// buildPathProject constructs a Project with a main group (sourceTree
// "<group>", no path) and a subgroup "Sources" (sourceTree "<group>")
// nested under it, both registered so ResolveGroupPath's ancestor walk has
// something to climb. Path resolution is exercised against /tmp, which
// Project.Directory derives from the given pbxproj path.
func buildPathProject(t *testing.T) (p *Project, mainGroup, subGroup *Object) {
	t.Helper()
	p, err := Load([]byte(`{ objects = {
		PROJ = { isa = PBXProject; mainGroup = MAIN; };
		MAIN = { isa = PBXGroup; children = ( SUB, ); sourceTree = "<group>"; };
		SUB  = { isa = PBXGroup; children = ( ); path = "Sources"; sourceTree = "<group>"; };
	}; rootObject = PROJ; }`), "/tmp/Sample.xcodeproj/project.pbxproj")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	mainGroup = p.MainGroup()
	sub, _ := p.Object("SUB", "PBXGroup")
	return p, mainGroup, sub
}

func TestResolveGroupPathWalksUpToMainGroup(t *testing.T) {
	p, _, sub := buildPathProject(t)

	location, absolute, resolved := p.ResolveGroupPath(sub)
	if !resolved {
		t.Fatal("expected resolved")
	}
	if location != "Sources" {
		t.Errorf("location = %q, want %q", location, "Sources")
	}
	if absolute != "/tmp/Sources" {
		t.Errorf("absolute = %q, want %q", absolute, "/tmp/Sources")
	}
}

func TestResolveFileReferencePathUnderSourceTreeAnchors(t *testing.T) {
	p, mainGroup, _ := buildPathProject(t)

	fileRef, err := p.Create("PBXFileReference")
	if err != nil {
		t.Fatal(err)
	}
	fileRef.Content().SetString("path", String("Foo.h"))
	fileRef.Content().SetString("sourceTree", String("SDKROOT"))
	p.AddChild(mainGroup, fileRef)

	location, _, resolved := p.ResolveFileReferencePath(fileRef)
	if resolved {
		t.Error("SDKROOT-anchored paths are not resolved to a filesystem absolute")
	}
	if location != "/Foo.h" {
		t.Errorf("location = %q, want %q", location, "/Foo.h")
	}
}

func TestResolveFileReferencePathInheritsParentGroupPath(t *testing.T) {
	p, _, sub := buildPathProject(t)

	fileRef, err := p.Create("PBXFileReference")
	if err != nil {
		t.Fatal(err)
	}
	fileRef.Content().SetString("path", String("Foo.swift"))
	fileRef.Content().SetString("sourceTree", String("<group>"))
	p.AddChild(sub, fileRef)

	location, absolute, resolved := p.ResolveFileReferencePath(fileRef)
	if !resolved {
		t.Fatal("expected resolved")
	}
	if location != "Sources/Foo.swift" {
		t.Errorf("location = %q, want %q", location, "Sources/Foo.swift")
	}
	if absolute != "/tmp/Sources/Foo.swift" {
		t.Errorf("absolute = %q, want %q", absolute, "/tmp/Sources/Foo.swift")
	}
}

func TestRelativePathDropsCommonPrefixAndWalksUp(t *testing.T) {
	got := RelativePath("/tmp/a/b", "/tmp/a/c/d")
	if want := "../c/d"; got != want {
		t.Errorf("RelativePath = %q, want %q", got, want)
	}
}

func TestRelativePathSameDirectory(t *testing.T) {
	if got := RelativePath("/tmp/a", "/tmp/a"); got != "" {
		t.Errorf("RelativePath = %q, want empty", got)
	}
}

func TestGroupForExactMatch(t *testing.T) {
	p, _, sub := buildPathProject(t)
	got, err := p.GroupFor("/tmp/Sources", false)
	if err != nil {
		t.Fatal(err)
	}
	if got != sub {
		t.Errorf("GroupFor returned %v, want the Sources group", got)
	}
}

func TestGroupForCreatesIntermediateGroupsUnderBestMatch(t *testing.T) {
	p, _, sub := buildPathProject(t)

	created, err := p.GroupFor("/tmp/Sources/Nested/Deeper", true)
	if err != nil {
		t.Fatal(err)
	}
	if created == sub {
		t.Fatal("GroupFor should have created a new descendant group, not returned Sources itself")
	}
	_, absolute, resolved := p.ResolveGroupPath(created)
	if !resolved || absolute != "/tmp/Sources/Nested/Deeper" {
		t.Errorf("created group resolves to %q (resolved=%v), want /tmp/Sources/Nested/Deeper", absolute, resolved)
	}
	if created.Parent() == nil || created.Parent().content.GetString("path") != "Nested" {
		t.Errorf("created group's parent = %v, want the intermediate \"Nested\" group", created.Parent())
	}
}

func TestGroupForWithoutCreateIntermediatesErrorsWhenNoGroupMatches(t *testing.T) {
	p, _, _ := buildPathProject(t)
	if _, err := p.GroupFor("/tmp/Elsewhere", false); err == nil {
		t.Error("expected error when no group resolves under the directory and createIntermediates is false")
	}
}

func TestSearchGroupFindsByResolvedURL(t *testing.T) {
	p, _, sub := buildPathProject(t)
	got, ok := p.SearchGroup("/tmp/Sources")
	if !ok || got != sub {
		t.Errorf("SearchGroup = %v, %v, want the Sources group", got, ok)
	}
	if _, ok := p.SearchGroup("/tmp/Nope"); ok {
		t.Error("SearchGroup matched a URL that shouldn't resolve to anything")
	}
}

func TestSearchFileReferenceFindsByResolvedURL(t *testing.T) {
	p, _, sub := buildPathProject(t)
	fileRef, err := p.Create("PBXFileReference")
	if err != nil {
		t.Fatal(err)
	}
	fileRef.Content().SetString("path", String("Foo.swift"))
	fileRef.Content().SetString("sourceTree", String("<group>"))
	p.AddChild(sub, fileRef)

	got, ok := p.SearchFileReference("/tmp/Sources/Foo.swift")
	if !ok || got != fileRef {
		t.Errorf("SearchFileReference = %v, %v, want fileRef", got, ok)
	}
}
