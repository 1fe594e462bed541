// Package scan implements a minimal cursor over UTF-8 text, shared by the
// property-list parser (§4.2) and the configuration-file parser (§4.9).
// Both dialects are otherwise unrelated, but both need the same primitive
// moves: peek/consume a single byte, consume a run of a character class,
// and scan up to (but not past) a delimiter.
package scan

import "strings"

// Cursor walks a byte offset through a string without copying it.
type Cursor struct {
	src string
	pos int
}

// New returns a Cursor positioned at the start of src.
func New(src string) *Cursor {
	return &Cursor{src: src}
}

// Pos returns the current byte offset.
func (c *Cursor) Pos() int {
	return c.pos
}

// Len returns the number of bytes remaining.
func (c *Cursor) Len() int {
	return len(c.src) - c.pos
}

// Eof reports whether the cursor is at the end of input.
func (c *Cursor) Eof() bool {
	return c.pos >= len(c.src)
}

// Peek returns the byte at the cursor without consuming it, and whether one
// was available.
func (c *Cursor) Peek() (byte, bool) {
	if c.Eof() {
		return 0, false
	}
	return c.src[c.pos], true
}

// PeekAt returns the byte offset bytes ahead of the cursor without
// consuming anything.
func (c *Cursor) PeekAt(offset int) (byte, bool) {
	i := c.pos + offset
	if i < 0 || i >= len(c.src) {
		return 0, false
	}
	return c.src[i], true
}

// Advance consumes n bytes unconditionally, clamped to the remaining input.
func (c *Cursor) Advance(n int) {
	c.pos += n
	if c.pos > len(c.src) {
		c.pos = len(c.src)
	}
}

// ConsumeByte consumes and returns the next byte, if any.
func (c *Cursor) ConsumeByte() (byte, bool) {
	b, ok := c.Peek()
	if ok {
		c.pos++
	}
	return b, ok
}

// TryConsume consumes b if it is the next byte, reporting success.
func (c *Cursor) TryConsume(b byte) bool {
	if got, ok := c.Peek(); ok && got == b {
		c.pos++
		return true
	}
	return false
}

// ScanString consumes and returns s if it appears at the cursor, reporting
// success. It does not consume anything on failure.
func (c *Cursor) ScanString(s string) bool {
	if strings.HasPrefix(c.src[c.pos:], s) {
		c.pos += len(s)
		return true
	}
	return false
}

// ScanRun consumes the longest run of bytes satisfying class, starting at
// the cursor, and returns it. It may return an empty string.
func (c *Cursor) ScanRun(class func(byte) bool) string {
	start := c.pos
	for !c.Eof() {
		b, _ := c.Peek()
		if !class(b) {
			break
		}
		c.pos++
	}
	return c.src[start:c.pos]
}

// ScanUpTo consumes and returns all bytes up to (but not including) the
// first occurrence of any of the stop bytes, or to the end of input if none
// occurs. It reports whether a stop byte was found.
func (c *Cursor) ScanUpTo(stop string) (text string, found bool) {
	start := c.pos
	for !c.Eof() {
		b, _ := c.Peek()
		if strings.IndexByte(stop, b) >= 0 {
			return c.src[start:c.pos], true
		}
		c.pos++
	}
	return c.src[start:c.pos], false
}

// Context returns up to n bytes of text starting at the cursor, for use in
// error messages that show "up to N characters of actual context" (§4.2).
func (c *Cursor) Context(n int) string {
	end := c.pos + n
	if end > len(c.src) {
		end = len(c.src)
	}
	return c.src[c.pos:end]
}

// Rest returns all remaining input without consuming it.
func (c *Cursor) Rest() string {
	return c.src[c.pos:]
}
