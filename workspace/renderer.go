package workspace

import (
	"fmt"
	"strings"

	"github.com/javerous/SMXcode/internal/lines"
)

// prologue is the fixed XML declaration every contents.xcworkspacedata file
// opens with (§4.7).
const prologue = `<?xml version="1.0" encoding="UTF-8"?>`

// indentUnit is three spaces, per §4.7 "contents indented by three spaces".
const indentUnit = "   "

// Render serializes root back into the workspace XML dialect: the fixed
// prologue, then root's element tree with three-space indentation. Each
// element opens on one line as "<name attr = "val" ...>"; children are
// indented one level further; the closer "</name>" is always emitted, even
// for a childless element — real workspace files never self-close.
func Render(root *Element) (string, error) {
	w := lines.New(indentUnit)
	w.AppendRaw(prologue)
	renderElement(w, root)
	return w.String(), nil
}

func renderElement(w *lines.Writer, e *Element) {
	var b strings.Builder
	b.WriteByte('<')
	b.WriteString(e.Name)
	for _, a := range e.Attrs {
		b.WriteByte(' ')
		b.WriteString(a.Name)
		b.WriteString(` = "`)
		b.WriteString(escapeAttrValue(a.Value))
		b.WriteByte('"')
	}
	b.WriteByte('>')
	w.Append(b.String())

	if len(e.Children) > 0 {
		w.IncreaseIndent()
		for _, child := range e.Children {
			renderElement(w, child)
		}
		w.DecreaseIndent()
	}
	w.Append("</" + e.Name + ">")
}

// escapeAttrValue escapes & < > ' " as named entities and any non-ASCII
// rune as a &#xHHH; hex entity, the same convention the property-list
// renderer uses for non-ASCII text (§4.7, §6).
func escapeAttrValue(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '&':
			b.WriteString("&amp;")
		case '<':
			b.WriteString("&lt;")
		case '>':
			b.WriteString("&gt;")
		case '\'':
			b.WriteString("&apos;")
		case '"':
			b.WriteString("&quot;")
		default:
			if r < 0x80 {
				b.WriteRune(r)
			} else {
				fmt.Fprintf(&b, "&#x%X;", r)
			}
		}
	}
	return b.String()
}
