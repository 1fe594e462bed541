package xcconfig

import (
	"os"
	"path/filepath"
)

// Configuration owns one .xcconfig file's line list, its derived lookup
// tree, and the weak set of Configurations that include it (§3, §6
// "Configuration file").
type Configuration struct {
	SourceURL string
	Lines     []Line

	tree       *ConfigTree
	downstream map[*Configuration]struct{}
}

// Load parses data as one .xcconfig file. sourceURL is recorded for
// relative #include resolution and as Write's default target; it is not
// read. When resolveIncludes is false, #include directives are recorded
// but never followed (every IncludeLine.Loaded stays nil).
func Load(data []byte, sourceURL string, resolveIncludes bool) (*Configuration, error) {
	return load(data, sourceURL, resolveIncludes, map[string]bool{})
}

// LoadFile reads and loads path.
func LoadFile(path string, resolveIncludes bool) (*Configuration, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Load(data, path, resolveIncludes)
}

// load threads an includes-bucket across the whole recursive load: once a
// canonical URL enters it, it is never removed, so a repeat encounter -
// whether a true cycle or a diamond re-include - is recognized and not
// re-parsed (§4.10, §8 property 10). A non-optional repeat or load failure
// propagates as an error; an optional one is swallowed, leaving the
// IncludeLine's Loaded pointer nil.
func load(data []byte, sourceURL string, resolveIncludes bool, bucket map[string]bool) (*Configuration, error) {
	lines, err := ParseLines(data)
	if err != nil {
		return nil, err
	}
	cfg := &Configuration{SourceURL: sourceURL, Lines: lines, downstream: map[*Configuration]struct{}{}}

	if resolveIncludes {
		bucket[canonicalize(sourceURL)] = true
		dir := filepath.Dir(sourceURL)
		for _, l := range lines {
			inc, ok := l.(*IncludeLine)
			if !ok {
				continue
			}
			if err := cfg.resolveInclude(inc, dir, bucket); err != nil {
				if !inc.Optional {
					return nil, err
				}
			}
		}
	}

	cfg.UpdateConfigurationTree()
	return cfg, nil
}

func (cfg *Configuration) resolveInclude(inc *IncludeLine, dir string, bucket map[string]bool) error {
	resolved := filepath.Join(dir, inc.Path)
	inc.ResolvedURL = resolved
	canon := canonicalize(resolved)

	if bucket[canon] {
		return &IncludeError{Path: inc.Path, Cause: errAlreadyIncluded}
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		return &IncludeError{Path: inc.Path, Cause: err}
	}
	child, err := load(data, resolved, true, bucket)
	if err != nil {
		return &IncludeError{Path: inc.Path, Cause: err}
	}
	inc.Loaded = child
	child.downstream[cfg] = struct{}{}
	return nil
}

func canonicalize(path string) string {
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		return resolved
	}
	return filepath.Clean(path)
}

// Downstream returns a snapshot of the Configurations that currently
// include this one, tolerating the weak-reference staleness §5 allows.
func (cfg *Configuration) Downstream() []*Configuration {
	out := make([]*Configuration, 0, len(cfg.downstream))
	for d := range cfg.downstream {
		out = append(out, d)
	}
	return out
}

// UpdateConfigurationTree rebuilds this Configuration's tree from its own
// line list and every successfully-loaded include's tree, in source line
// order, then broadcasts the same rebuild to every live downstream (§4.10,
// §8 property 9, property 11).
func (cfg *Configuration) UpdateConfigurationTree() {
	tree := newConfigTree()
	for _, l := range cfg.Lines {
		switch line := l.(type) {
		case *ConfigLine:
			tree.insert(line.Conditionals, line.Key, Content{Source: cfg, Values: line.Values})
		case *IncludeLine:
			if line.Loaded == nil {
				continue
			}
			for _, e := range line.Loaded.tree.entries() {
				tree.insert(conditionalsFor(e.Config, e.SDK, e.Arch), e.Key, e.Content)
			}
		}
	}
	cfg.tree = tree

	for d := range cfg.downstream {
		d.UpdateConfigurationTree()
	}
}

func conditionalsFor(config, sdk, arch string) Conditionals {
	var c Conditionals
	c.Set("config", config)
	c.Set("sdk", sdk)
	c.Set("arch", arch)
	return c
}

// ValueForKey looks up (key, config, sdk, arch) in the current tree. Each
// dimension is matched literally: "*" is not a wildcard and matches only
// entries whose line carried no conditional for that dimension.
func (cfg *Configuration) ValueForKey(key, config, sdk, arch string) ([]string, bool) {
	c, ok := cfg.tree.Lookup(key, config, sdk, arch)
	if !ok {
		return nil, false
	}
	return c.Values, true
}

// AppendLine adds line to the end of the line list and rebuilds the tree,
// propagating to every downstream (§8 property 11).
func (cfg *Configuration) AppendLine(line Line) {
	cfg.Lines = append(cfg.Lines, line)
	cfg.UpdateConfigurationTree()
}

// Content renders the current line list back to .xcconfig text.
func (cfg *Configuration) Content() string {
	return Render(cfg.Lines)
}

// Write renders the configuration and atomically replaces the file at to
// (SourceURL if to is empty), the same temp-then-rename sequence used by
// Project.Write and Workspace.Write.
func (cfg *Configuration) Write(to string) error {
	if to == "" {
		to = cfg.SourceURL
	}
	content := cfg.Content()
	dir := filepath.Dir(to)
	tmp, err := os.CreateTemp(dir, ".xcconfig-*")
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
