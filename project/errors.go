package project

import "fmt"

// ParseError reports a failure while parsing the ASCII property-list
// dialect (§4.2, §7 "Parse (project)"). It carries the byte offset,
// a description of what was expected, and up to 20 characters of actual
// context, matching spec.md's stated error-reporting contract.
type ParseError struct {
	Offset   int
	Expected string
	Context  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("project: parse error at offset %d: expected %s, got %q", e.Offset, e.Expected, e.Context)
}

// LinkError reports a structural failure discovered while linking the
// parsed tree into an object graph (missing/malformed "objects", a
// non-string or non-dictionary entry where one was required).
type LinkError struct {
	Reason string
}

func (e *LinkError) Error() string {
	return "project: link error: " + e.Reason
}

// RenderError reports an unknown Value kind encountered by the renderer.
// It should never occur for values produced by this package's own parser
// and mutation API; it exists to catch a caller-constructed Value that
// does not implement one of the five kinds §3 defines.
type RenderError struct {
	Kind string
}

func (e *RenderError) Error() string {
	return "project: render error: unknown value kind " + e.Kind
}
