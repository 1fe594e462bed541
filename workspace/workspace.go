package workspace

import (
	"os"
	"path/filepath"
)

// Workspace owns the parsed element tree of one contents.xcworkspacedata
// file, its source path, and the derived ProjectReference cache (§4.7,
// §6 "Workspace file"). Construct one with Load or LoadFile; Content/Write
// render it back out.
type Workspace struct {
	Root *Element
	Path string

	refs      []*ProjectReference
	refsByURL map[string]*ProjectReference
}

// Load parses data as a contents.xcworkspacedata document and builds its
// ProjectReference cache. path is recorded as the source location (used by
// Write's default target and by the container:/group: URL anchors) but is
// not read.
func Load(data []byte, path string) (*Workspace, error) {
	root, err := Parse(data)
	if err != nil {
		return nil, err
	}
	w := &Workspace{Root: root, Path: path}
	w.rebuildReferences()
	return w, nil
}

// LoadFile reads path (a contents.xcworkspacedata file, or a .xcworkspace
// bundle directory containing one) and loads it.
func LoadFile(path string) (*Workspace, error) {
	dataPath := path
	if filepath.Ext(path) == ".xcworkspace" {
		dataPath = filepath.Join(path, "contents.xcworkspacedata")
	}
	data, err := os.ReadFile(dataPath)
	if err != nil {
		return nil, err
	}
	return Load(data, dataPath)
}

// Directory returns the directory containing the workspace's .xcworkspace
// bundle: the anchor the "container:" prefix resolves against (§4.7).
func (w *Workspace) Directory() string {
	return filepath.Dir(filepath.Dir(w.Path))
}

// Content renders the current tree back into the workspace XML dialect.
func (w *Workspace) Content() (string, error) {
	return Render(w.Root)
}

// Write renders the workspace and atomically replaces the file at to (the
// workspace's own Path if to is empty), the same temp-then-rename sequence
// Project.Write uses so a reader never observes a partially written file.
func (w *Workspace) Write(to string) error {
	if to == "" {
		to = w.Path
	}
	content, err := w.Content()
	if err != nil {
		return err
	}
	dir := filepath.Dir(to)
	tmp, err := os.CreateTemp(dir, ".xcworkspacedata-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	_, writeErr := tmp.WriteString(content)
	closeErr := tmp.Close()
	if writeErr != nil {
		os.Remove(tmpPath)
		return writeErr
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return closeErr
	}
	if err := os.Rename(tmpPath, to); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return nil
}
