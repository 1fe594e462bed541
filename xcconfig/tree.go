package xcconfig

// Content is the value stored at one (config, sdk, arch, key) coordinate of
// a ConfigTree: the values assigned there and which Configuration's line
// list produced them (§4.10).
type Content struct {
	Source *Configuration
	Values []string
}

type treeEntry struct {
	Config, SDK, Arch, Key string
	Content                Content
}

// ConfigTree is the four-level (config × sdk × arch × key) lookup index
// derived from a Configuration's line list and include overlay (§3, §4.10).
// It is always a derived, rebuild-from-scratch structure; callers never
// mutate it directly.
type ConfigTree struct {
	byConfig map[string]map[string]map[string]map[string]Content
}

func newConfigTree() *ConfigTree {
	return &ConfigTree{byConfig: map[string]map[string]map[string]map[string]Content{}}
}

func (t *ConfigTree) insert(conds Conditionals, key string, content Content) {
	config, sdk, arch := conds.Config(), conds.SDK(), conds.Arch()
	bySDK, ok := t.byConfig[config]
	if !ok {
		bySDK = map[string]map[string]map[string]Content{}
		t.byConfig[config] = bySDK
	}
	byArch, ok := bySDK[sdk]
	if !ok {
		byArch = map[string]map[string]Content{}
		bySDK[sdk] = byArch
	}
	byKey, ok := byArch[arch]
	if !ok {
		byKey = map[string]Content{}
		byArch[arch] = byKey
	}
	byKey[key] = content
}

// remove cascades: deleting the key, then the arch layer if it emptied,
// then the sdk layer, then the config layer (§4.10).
func (t *ConfigTree) remove(config, sdk, arch, key string) {
	bySDK, ok := t.byConfig[config]
	if !ok {
		return
	}
	byArch, ok := bySDK[sdk]
	if !ok {
		return
	}
	byKey, ok := byArch[arch]
	if !ok {
		return
	}
	delete(byKey, key)
	if len(byKey) > 0 {
		return
	}
	delete(byArch, arch)
	if len(byArch) > 0 {
		return
	}
	delete(bySDK, sdk)
	if len(bySDK) > 0 {
		return
	}
	delete(t.byConfig, config)
}

// Lookup resolves (key, config, sdk, arch) against the tree. Every
// dimension is a literal coordinate, not a wildcard: callers pass "*" for
// an unspecified dimension, matching only entries stored under "*" (§4.10).
func (t *ConfigTree) Lookup(key, config, sdk, arch string) (Content, bool) {
	bySDK, ok := t.byConfig[config]
	if !ok {
		return Content{}, false
	}
	byArch, ok := bySDK[sdk]
	if !ok {
		return Content{}, false
	}
	byKey, ok := byArch[arch]
	if !ok {
		return Content{}, false
	}
	c, ok := byKey[key]
	return c, ok
}

// entries walks the whole tree in an unspecified order, for overlaying one
// tree's contents into another's.
func (t *ConfigTree) entries() []treeEntry {
	var out []treeEntry
	for config, bySDK := range t.byConfig {
		for sdk, byArch := range bySDK {
			for arch, byKey := range byArch {
				for key, content := range byKey {
					out = append(out, treeEntry{Config: config, SDK: sdk, Arch: arch, Key: key, Content: content})
				}
			}
		}
	}
	return out
}
