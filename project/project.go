package project

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/uuid"
)

// Project owns the parsed-and-linked object graph for one project.pbxproj
// file, its source path, and the derived paths mutation helpers need (§3
// "Project"). Construct one with Load or LoadFile; Content/Write render it
// back out.
type Project struct {
	Root      *Dictionary
	Sections  *Sections
	Path      string
	HasHeader bool

	ids map[string]*Object
}

// Load parses and links data as a project.pbxproj document. path is
// recorded as the project's source location (used by Write's default
// target and by path resolution) but is not read.
func Load(data []byte, path string) (*Project, error) {
	root, hasHeader, err := Parse(data)
	if err != nil {
		return nil, err
	}
	sections, err := Link(root)
	if err != nil {
		return nil, err
	}
	p := &Project{Root: root, Sections: sections, Path: path, HasHeader: hasHeader, ids: make(map[string]*Object)}
	for _, o := range sections.All() {
		p.ids[o.ID()] = o
	}
	return p, nil
}

// LoadFile reads path (a project.pbxproj file, or a .xcodeproj bundle
// directory containing one) and loads it.
func LoadFile(path string) (*Project, error) {
	pbxprojPath := path
	if filepath.Ext(path) == ".xcodeproj" {
		pbxprojPath = filepath.Join(path, "project.pbxproj")
	}
	data, err := os.ReadFile(pbxprojPath)
	if err != nil {
		return nil, err
	}
	return Load(data, pbxprojPath)
}

// Directory returns the directory containing the project's .xcodeproj
// bundle, i.e. the parent of the parent of the pbxproj file's own
// directory (project.pbxproj lives at <name>.xcodeproj/project.pbxproj).
func (p *Project) Directory() string {
	return filepath.Dir(filepath.Dir(p.Path))
}

// Content renders the current graph back into the ASCII property-list
// dialect.
func (p *Project) Content() (string, error) {
	return Render(p.Root, p.HasHeader)
}

// Write renders the project and atomically replaces the file at to (the
// project's own Path if to is empty): the rendered bytes are written to a
// temporary file in the same directory, then renamed over the target, so a
// reader never observes a partially written file.
func (p *Project) Write(to string) error {
	if to == "" {
		to = p.Path
	}
	content, err := p.Content()
	if err != nil {
		return err
	}
	dir := filepath.Dir(to)
	tmp, err := os.CreateTemp(dir, ".pbxproj-*")
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

// Object looks up an object by id, optionally restricted to isa (pass ""
// to match any isa).
func (p *Project) Object(id string, isa string) (*Object, bool) {
	o, ok := p.ids[id]
	if !ok {
		return nil, false
	}
	if isa != "" && o.ISA() != isa {
		return nil, false
	}
	return o, true
}

// RootObject returns the PBXProject record named by the root dictionary's
// "rootObject" entry, if resolved.
func (p *Project) RootObject() *Object {
	v, ok := p.Root.Get("rootObject")
	if !ok {
		return nil
	}
	lit, ok := v.(Literal)
	if !ok {
		return nil
	}
	return lit.Target()
}

// MainGroup returns the PBXProject's mainGroup, if resolved.
func (p *Project) MainGroup() *Object {
	root := p.RootObject()
	if root == nil {
		return nil
	}
	v, ok := root.Content().Get("mainGroup")
	if !ok {
		return nil
	}
	lit, ok := v.(Literal)
	if !ok {
		return nil
	}
	return lit.Target()
}

// generateID returns 24 uppercase hex digits taken from the first 12 bytes
// of a random (version 4) gofrs/uuid value, retrying on the vanishingly
// unlikely collision with an id already in use. Those 12 bytes include the
// UUID's version and variant bits, so the 13th digit is always '4' and the
// 17th is always one of 8, 9, A or B; the other 22 digits are random.
// Grounded in the teacher's own generateUuid, which truncates and
// uppercases a v4 UUID the same way.
func (p *Project) generateID() string {
	u, err := uuid.NewV4()
	if err != nil {
		panic("project: failed to generate random id: " + err.Error())
	}
	id := strings.ToUpper(strings.ReplaceAll(u.String(), "-", "")[:24])
	if _, taken := p.ids[id]; taken {
		return p.generateID()
	}
	return id
}

// Create builds a new Object of the given isa with a freshly generated id
// and a content dictionary containing only "isa", registers it in
// Sections and the project's id index, and returns it. It does not attach
// the object to anything; callers use AddReference/AppendReference (or a
// convenience helper) to link it into the graph.
func (p *Project) Create(isa string) (*Object, error) {
	id := p.generateID()
	content := NewDictionary()
	content.SetString("isa", String(isa))
	obj, err := CreateObject(id, content)
	if err != nil {
		return nil, err
	}
	p.ids[id] = obj
	p.Sections.Add(obj)
	return obj, nil
}

// SetReference stores a ref to target under key in dict, replacing
// whatever was there, and registers containing as a referrer of target.
// silent suppresses the target's inline comment when this occurrence is
// rendered.
func (p *Project) SetReference(dict *Dictionary, key string, containing, target *Object, silent bool) {
	dict.SetString(key, Ref(target.ID(), target, silent))
	target.addReference(containing)
}

// AppendReference appends a ref to target onto arr, and registers
// containing as a referrer of target.
func (p *Project) AppendReference(arr *Array, containing, target *Object, silent bool) {
	arr.Append(Ref(target.ID(), target, silent))
	target.addReference(containing)
}

// RemoveObject deletes id from the project: its section entry and every
// reference to or from it anywhere in the graph (§4.6).
func (p *Project) RemoveObject(id string) error {
	obj, ok := p.ids[id]
	if !ok {
		return fmt.Errorf("project: no object with id %s", id)
	}
	RemoveObject(p.Sections, obj)
	delete(p.ids, id)
	return nil
}
