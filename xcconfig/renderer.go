package xcconfig

import "strings"

// Render serializes lines back into .xcconfig text (§4.9, §8 property 3).
// Comment spacing is normalized to exactly one leading space regardless of
// how the source was spaced. Assignment lines are re-emitted in one fixed
// form: no leading indentation, " = " between key and values, values
// separated by single spaces, a single space before a trailing comment,
// and a value quoted only when renderValue needs to quote it. Other source
// spacing and quoting on assignment lines is not preserved.
func Render(lines []Line) string {
	var b strings.Builder
	for _, line := range lines {
		renderLine(&b, line)
		b.WriteByte('\n')
	}
	return b.String()
}

func renderLine(b *strings.Builder, line Line) {
	switch l := line.(type) {
	case EmptyLine:
		// nothing between the newlines
	case CommentLine:
		b.WriteString("// ")
		b.WriteString(l.Text)
	case *IncludeLine:
		b.WriteString("#include")
		if l.Optional {
			b.WriteByte('?')
		}
		b.WriteString(` "`)
		b.WriteString(l.Path)
		b.WriteByte('"')
	case *ConfigLine:
		renderConfigLine(b, l)
	}
}

func renderConfigLine(b *strings.Builder, l *ConfigLine) {
	b.WriteString(l.Key)
	for _, e := range l.Conditionals.Entries() {
		b.WriteByte('[')
		b.WriteString(e.Name)
		b.WriteByte('=')
		b.WriteString(e.Value)
		b.WriteByte(']')
	}
	b.WriteString(" = ")
	for i, v := range l.Values {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(renderValue(v))
	}
	if l.HasComment {
		if len(l.Values) > 0 {
			b.WriteByte(' ')
		}
		b.WriteString("// ")
		b.WriteString(l.Comment)
	}
}

// renderValue quotes v if it needs it (contains whitespace, a quote, a
// backslash, or would otherwise be ambiguous with the unquoted grammar), and
// always quotes the empty string, since an unquoted empty value isn't
// representable.
func renderValue(v string) string {
	if v != "" && !needsQuoting(v) {
		return v
	}
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range v {
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
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

func needsQuoting(v string) bool {
	if strings.ContainsAny(v, " \t\n\"\\") {
		return true
	}
	return strings.Contains(v, "//")
}
