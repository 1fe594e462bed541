// Package xcconfig implements round-tripping of .xcconfig build-setting
// files: the conditional key-value syntax, #include directives, and the
// layered (configuration × SDK × architecture) lookup tree built from a
// file and everything it transitively includes (§4.9, §4.10, §6
// "Configuration file").
package xcconfig

// Line is one logical line of a .xcconfig file: blank, a standalone
// comment, an include directive, or a conditional key/value assignment
// (§3 "Configuration").
type Line interface {
	isLine()
}

// EmptyLine is a blank (whitespace-only) line.
type EmptyLine struct{}

func (EmptyLine) isLine() {}

// CommentLine is a standalone "// text" line. Text has had exactly one
// leading space stripped, if present, matching how the renderer puts it
// back (§8 property 3: comment spacing is normalized, not preserved
// byte-for-byte).
type CommentLine struct {
	Text string
}

func (CommentLine) isLine() {}

// IncludeLine is a "#include "path"" or "#include? "path"" directive.
// ResolvedURL and Loaded are populated by Load when it resolves includes;
// Loaded is nil if the include was optional and failed, or hasn't been
// resolved yet.
type IncludeLine struct {
	Path         string
	Optional     bool
	ResolvedURL  string
	Loaded       *Configuration
}

func (*IncludeLine) isLine() {}

// ConfigLine is a "KEY[cond=val]... = v1 v2 ... // trailing" assignment.
type ConfigLine struct {
	Key          string
	Conditionals Conditionals
	Values       []string
	Comment      string
	HasComment   bool
}

func (*ConfigLine) isLine() {}

// condEntry is one bracketed conditional as it appeared in the source,
// preserved in order for rendering.
type condEntry struct {
	Name  string
	Value string
}

// Conditionals is the ordered set of conditionals a ConfigLine carries.
// Only conditionals actually present in the source are stored; Value
// reports "*" for any dimension not present, the default every lookup
// coordinate is matched against (§3, §4.9 step 2, §4.10).
type Conditionals struct {
	entries []condEntry
}

// Set records name=value, replacing any existing entry for name and
// preserving its original position, or appending if new.
func (c *Conditionals) Set(name, value string) {
	for i, e := range c.entries {
		if e.Name == name {
			c.entries[i].Value = value
			return
		}
	}
	c.entries = append(c.entries, condEntry{Name: name, Value: value})
}

// Value returns the stored value for name, or "*" if name was not among
// the conditionals present on this line.
func (c Conditionals) Value(name string) string {
	for _, e := range c.entries {
		if e.Name == name {
			return e.Value
		}
	}
	return "*"
}

// Config, SDK, and Arch are convenience accessors for the three recognized
// conditional dimensions (§4.9 step 2).
func (c Conditionals) Config() string { return c.Value("config") }
func (c Conditionals) SDK() string    { return c.Value("sdk") }
func (c Conditionals) Arch() string   { return c.Value("arch") }

// Entries returns the conditionals in source order, for rendering.
func (c Conditionals) Entries() []condEntry {
	out := make([]condEntry, len(c.entries))
	copy(out, c.entries)
	return out
}
