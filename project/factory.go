package project

import "fmt"

// ErrMissingISA is returned when Create is asked to build an object from
// content that has no "isa" entry (§4.4, §7 "Create" error kind).
var ErrMissingISA = fmt.Errorf("project: content has no %q entry", "isa")

// factory maps an isa string to the Hooks implementation that specializes
// its rendering and reference-reaction behavior. It mirrors the teacher's
// per-isa section fields (pbxBuildFileSection, pbxFileReferenceSection,
// ...), generalized into one registry keyed by isa instead of one struct
// field per known isa.
var factory = map[string]Hooks{
	"PBXProject":             projectRecordHooks{},
	"PBXFileReference":       fileReferenceHooks{},
	"PBXBuildFile":           buildFileHooks{},
	"PBXGroup":               groupHooks{},
	"PBXVariantGroup":        groupHooks{},
	"PBXNativeTarget":        namedHooks{},
	"PBXAggregateTarget":     namedHooks{},
	"PBXLegacyTarget":        namedHooks{},
	"XCBuildConfiguration":   namedHooks{},
	"XCConfigurationList":    noopHooks{},
	"PBXContainerItemProxy":  noopHooks{},
	"PBXTargetDependency":    noopHooks{},
	"PBXSourcesBuildPhase":   buildPhaseHooks{},
	"PBXResourcesBuildPhase": buildPhaseHooks{},
	"PBXFrameworksBuildPhase": buildPhaseHooks{},
	"PBXCopyFilesBuildPhase": buildPhaseHooks{},
	"PBXHeadersBuildPhase":   buildPhaseHooks{},
	"PBXShellScriptBuildPhase": buildPhaseHooks{},
	"XCVersionGroup":         groupHooks{},
}

// RegisterHooks installs hooks for isa, overriding any existing
// registration. It lets callers extend the factory with project-specific
// record types without modifying this package.
func RegisterHooks(isa string, hooks Hooks) {
	factory[isa] = hooks
}

func hooksFor(isa string) Hooks {
	if h, ok := factory[isa]; ok {
		return h
	}
	return noopHooks{}
}

// CreateObject builds an Object of the right specialized subtype from id
// and content, looking up content's "isa" entry in the factory. It fails
// if content has no isa (§4.4).
func CreateObject(id string, content *Dictionary) (*Object, error) {
	isaVal, ok := content.Get("isa")
	if !ok {
		return nil, ErrMissingISA
	}
	isaLit, ok := isaVal.(Literal)
	if !ok {
		return nil, ErrMissingISA
	}
	isa := isaLit.Text()
	return NewObject(isa, id, content, hooksFor(isa)), nil
}
