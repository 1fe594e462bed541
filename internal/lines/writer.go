// Package lines implements a small buffered, indented text emitter shared
// by the property-list and workspace-XML renderers. It generalizes the
// teacher's ad hoc indent()/write() string-formatting helpers
// (pbxproj/pbxWriter.go) into an explicit state machine: an indent depth, a
// counting "single-line" mode, and a one-shot "append on the same line as
// the previous token" flag. Those three pieces of mutable state are enough
// to express every formatting special case the renderers need, without
// threading style parameters through the tree walk.
package lines

import "strings"

// Unit is the string emitted once per indent level. The IDE's own project
// files indent with a single tab.
const Unit = "\t"

// Writer accumulates output line by line.
type Writer struct {
	indent     int
	unit       string
	current    strings.Builder
	done       []string
	singleLine int
	sameLine   bool
}

// New returns a Writer that indents with unit (Unit if unit is "").
func New(unit string) *Writer {
	if unit == "" {
		unit = Unit
	}
	return &Writer{unit: unit}
}

// IncreaseIndent increases the indent depth by one.
func (w *Writer) IncreaseIndent() {
	w.indent++
}

// DecreaseIndent decreases the indent depth by one. Decreasing below zero
// is a contract violation: it indicates the renderer's tree walk is
// unbalanced, so it panics rather than silently clamping.
func (w *Writer) DecreaseIndent() {
	if w.indent == 0 {
		panic("lines: DecreaseIndent below zero")
	}
	w.indent--
}

// PushSingleLine enters single-line mode: subsequent Append calls continue
// the current line instead of starting a new one. The counter is balanced
// against PopSingleLine, so nested pushes compose correctly.
func (w *Writer) PushSingleLine() {
	w.singleLine++
}

// PopSingleLine balances a prior PushSingleLine. Popping below zero is a
// contract violation.
func (w *Writer) PopSingleLine() {
	if w.singleLine == 0 {
		panic("lines: PopSingleLine below zero")
	}
	w.singleLine--
}

// InSingleLineMode reports whether single-line mode is currently active.
func (w *Writer) InSingleLineMode() bool {
	return w.singleLine > 0
}

// SameLineNext sets the one-shot flag causing the next Append to continue
// the current line even outside single-line mode. It is cleared by the
// Append it affects.
func (w *Writer) SameLineNext() {
	w.sameLine = true
}

// Append writes s. In multi-line mode (and without a pending SameLineNext),
// it flushes the current partial line and starts a new one indented to the
// current depth before writing s. In single-line mode, or when the one-shot
// flag is set, s is appended to the current line without flushing, and the
// one-shot flag is cleared.
func (w *Writer) Append(s string) {
	if w.InSingleLineMode() || w.sameLine {
		w.sameLine = false
		w.current.WriteString(s)
		return
	}
	w.flush()
	w.current.WriteString(strings.Repeat(w.unit, w.indent))
	w.current.WriteString(s)
}

// AppendRaw flushes the current partial line, then emits s verbatim as its
// own line with no indent. This is used for section banners
// (/* Begin ... section */) which are never indented regardless of depth.
func (w *Writer) AppendRaw(s string) {
	w.flush()
	w.done = append(w.done, s)
}

func (w *Writer) flush() {
	if w.current.Len() > 0 {
		w.done = append(w.done, w.current.String())
		w.current.Reset()
	}
}

// Lines returns the completed lines plus the current partial line, if
// non-empty.
func (w *Writer) Lines() []string {
	out := make([]string, len(w.done))
	copy(out, w.done)
	if w.current.Len() > 0 {
		out = append(out, w.current.String())
	}
	return out
}

// String joins Lines with "\n", followed by a trailing newline if there is
// any content at all.
func (w *Writer) String() string {
	ls := w.Lines()
	if len(ls) == 0 {
		return ""
	}
	return strings.Join(ls, "\n") + "\n"
}
