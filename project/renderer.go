package project

import (
	"fmt"
	"strings"

	"github.com/javerous/SMXcode/internal/lines"
)

// Render serializes root back into the ASCII property-list dialect (§4.5).
// root is expected to be the Dictionary produced by Parse/Link, whose
// "objects" entry has been re-bucketed into a *Sections, but Render makes
// no such assumption itself: it dispatches purely on each Value's dynamic
// kind, so it renders an unlinked tree (still holding a raw *Dictionary
// under "objects") just as well. withHeader controls whether the optional
// UTF-8 header line is emitted; pass through whatever Parse reported for
// the source so a headerless document stays headerless (§8 property 1).
func Render(root *Dictionary, withHeader bool) (string, error) {
	w := lines.New("")
	if withHeader {
		w.AppendRaw(header)
	}
	if err := renderValue(w, root); err != nil {
		return "", err
	}
	return w.String(), nil
}

// renderValue dispatches on v's dynamic kind and writes it to w. Every
// continuation token — anything that must stay on the line a prior Append
// started — is preceded by a SameLineNext call; every token that begins a
// new logical entry is left to flush naturally, except while single-line
// mode forces every Append onto one physical line regardless.
func renderValue(w *lines.Writer, v Value) error {
	switch val := v.(type) {
	case Literal:
		w.Append(formatLiteral(val))
		return nil
	case *Dictionary:
		return renderDict(w, val)
	case *Array:
		return renderArray(w, val)
	case *Object:
		return renderObject(w, val)
	case *Sections:
		return renderSections(w, val)
	default:
		return &RenderError{Kind: fmt.Sprintf("%T", v)}
	}
}

func renderDict(w *lines.Writer, d *Dictionary) error {
	w.Append("{")
	w.IncreaseIndent()
	for _, e := range d.Entries() {
		if err := renderDictEntry(w, e.Key, e.Val); err != nil {
			return err
		}
	}
	w.DecreaseIndent()
	w.Append("}")
	return nil
}

func renderDictEntry(w *lines.Writer, key Literal, val Value) error {
	w.Append(formatLiteral(key))
	w.SameLineNext()
	w.Append(" = ")
	w.SameLineNext()
	if err := renderValue(w, val); err != nil {
		return err
	}
	w.SameLineNext()
	w.Append(";")
	if w.InSingleLineMode() {
		w.SameLineNext()
		w.Append(" ")
	}
	return nil
}

func renderArray(w *lines.Writer, a *Array) error {
	w.Append("(")
	w.IncreaseIndent()
	for _, elem := range a.Items() {
		if err := renderValue(w, elem); err != nil {
			return err
		}
		w.SameLineNext()
		w.Append(",")
		if w.InSingleLineMode() {
			w.SameLineNext()
			w.Append(" ")
		}
	}
	w.DecreaseIndent()
	w.Append(")")
	return nil
}

func renderObject(w *lines.Writer, o *Object) error {
	single := o.RenderSingleLine()
	if single {
		w.PushSingleLine()
	}
	err := renderDict(w, o.content)
	if single {
		w.PopSingleLine()
	}
	return err
}

// renderSections renders the top-level objects map, grouped into
// /* Begin ... section */ ... /* End ... section */ banners per isa,
// preserving section and within-section insertion order (§4.5).
func renderSections(w *lines.Writer, s *Sections) error {
	w.Append("{")
	w.IncreaseIndent()
	for _, isa := range s.ISAs() {
		sec, _ := s.Section(isa, false)
		if sec.Len() == 0 {
			continue
		}
		w.AppendRaw("")
		w.AppendRaw("/* Begin " + isa + " section */")
		for _, obj := range sec.Objects() {
			if err := renderSectionEntry(w, obj); err != nil {
				return err
			}
		}
		w.AppendRaw("/* End " + isa + " section */")
	}
	w.DecreaseIndent()
	w.Append("}")
	return nil
}

func renderSectionEntry(w *lines.Writer, o *Object) error {
	key := o.ID()
	if c := o.RenderComment(); c != "" {
		key += " /* " + c + " */"
	}
	w.Append(key)
	w.SameLineNext()
	w.Append(" = ")
	w.SameLineNext()
	if err := renderObject(w, o); err != nil {
		return err
	}
	w.SameLineNext()
	w.Append(";")
	if w.InSingleLineMode() {
		w.SameLineNext()
		w.Append(" ")
	}
	return nil
}

// formatLiteral renders a single Literal per §4.5: an unquoted run of
// [A-Za-z0-9._/] if non-empty and entirely composed of such bytes,
// otherwise a double-quoted, escaped string; a ref variant additionally
// gains an inline /* comment */ when its weak target is alive, has a
// non-empty RenderComment, and the ref itself isn't silent.
func formatLiteral(l Literal) string {
	text := encodeLiteralText(l.Text())
	if !l.IsRef() || l.Silent() {
		return text
	}
	target := l.Target()
	if target == nil {
		return text
	}
	comment := target.RenderComment()
	if comment == "" {
		return text
	}
	return text + " /* " + comment + " */"
}

func encodeLiteralText(s string) string {
	if s != "" && isAllUnquotedBytes(s) {
		return s
	}
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		default:
			if r < 0x80 {
				b.WriteRune(r)
			} else {
				fmt.Fprintf(&b, "&#x%X;", r)
			}
		}
	}
	b.WriteByte('"')
	return b.String()
}

func isAllUnquotedBytes(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isUnquotedValueByte(s[i]) {
			return false
		}
	}
	return true
}
