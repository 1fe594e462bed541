package workspace

import "testing"

// TestLoadScenarioS4 covers §8 scenario S4: a FileRef nested inside a
// container:-anchored Group resolves its project URL relative to the
// group's own resolved directory, not the workspace directory directly.
func TestLoadScenarioS4(t *testing.T) {
	src := `<?xml version="1.0" encoding="UTF-8"?>
<Workspace version = "1.0">
   <Group location = "container:sub">
      <FileRef location = "group:a/b.xcodeproj">
      </FileRef>
   </Group>
</Workspace>`

	w, err := Load([]byte(src), "/tmp/MyWorkspace.xcworkspace/contents.xcworkspacedata")
	if err != nil {
		t.Fatal(err)
	}

	refs := w.ProjectReferences()
	if len(refs) != 1 {
		t.Fatalf("refs = %#v, want 1", refs)
	}
	want := "/tmp/sub/a/b.xcodeproj"
	if refs[0].URL != want {
		t.Errorf("URL = %q, want %q", refs[0].URL, want)
	}
}

func TestLoadIgnoresFileRefWithoutXcodeprojExtension(t *testing.T) {
	src := `<?xml version="1.0" encoding="UTF-8"?>
<Workspace version = "1.0">
   <FileRef location = "group:README.md">
   </FileRef>
</Workspace>`

	w, err := Load([]byte(src), "/tmp/W.xcworkspace/contents.xcworkspacedata")
	if err != nil {
		t.Fatal(err)
	}
	if refs := w.ProjectReferences(); len(refs) != 0 {
		t.Errorf("refs = %#v, want none", refs)
	}
}

func TestLoadAbsolutePrefixUsesRestVerbatim(t *testing.T) {
	src := `<?xml version="1.0" encoding="UTF-8"?>
<Workspace version = "1.0">
   <FileRef location = "absolute:/elsewhere/Other.xcodeproj">
   </FileRef>
</Workspace>`

	w, err := Load([]byte(src), "/tmp/W.xcworkspace/contents.xcworkspacedata")
	if err != nil {
		t.Fatal(err)
	}
	refs := w.ProjectReferences()
	if len(refs) != 1 || refs[0].URL != "/elsewhere/Other.xcodeproj" {
		t.Fatalf("refs = %#v", refs)
	}
}

// TestRoundTripWithoutMutation covers §8 property 2.
func TestRoundTripWithoutMutation(t *testing.T) {
	src := "<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n" +
		"<Workspace version = \"1.0\">\n" +
		"   <FileRef location = \"group:App.xcodeproj\">\n" +
		"   </FileRef>\n" +
		"</Workspace>\n"

	w, err := Load([]byte(src), "/tmp/W.xcworkspace/contents.xcworkspacedata")
	if err != nil {
		t.Fatal(err)
	}
	got, err := w.Content()
	if err != nil {
		t.Fatal(err)
	}
	if got != src {
		t.Errorf("got:\n%q\nwant:\n%q", got, src)
	}
}

func TestAppendCreatesFileRefAndUpdatesCache(t *testing.T) {
	w := &Workspace{Path: "/tmp/W.xcworkspace/contents.xcworkspacedata"}

	ref := w.Append("New.xcodeproj", false)
	if ref == nil {
		t.Fatal("Append returned nil")
	}
	if want := "/tmp/New.xcodeproj"; ref.URL != want {
		t.Errorf("URL = %q, want %q", ref.URL, want)
	}
	if len(w.Root.Children) != 1 {
		t.Fatalf("Root.Children = %#v", w.Root.Children)
	}
}

func TestRemoveByURLDetachesNodeAndEvictsCache(t *testing.T) {
	w := &Workspace{Path: "/tmp/W.xcworkspace/contents.xcworkspacedata"}
	ref := w.Append("Gone.xcodeproj", false)

	if !w.Remove(ref.URL) {
		t.Fatal("Remove reported no match")
	}
	if len(w.ProjectReferences()) != 0 {
		t.Error("reference still cached after Remove")
	}
	if len(w.Root.Children) != 0 {
		t.Error("node still attached after Remove")
	}
}
