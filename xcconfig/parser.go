package xcconfig

import (
	"strings"

	"github.com/javerous/SMXcode/internal/scan"
)

func isSpace(b byte) bool {
	return b == ' ' || b == '\t'
}

func isKeyByte(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9') || b == '_'
}

// ParseLines splits data into logical lines (§4.9) and parses each in
// isolation. A line ending is "\n"; a lone trailing newline at the very end
// of data does not produce a phantom extra EmptyLine, so Render's own
// always-trailing-newline convention round-trips cleanly.
func ParseLines(data []byte) ([]Line, error) {
	raw := splitRawLines(string(data))
	lines := make([]Line, 0, len(raw))
	for i, text := range raw {
		text = strings.TrimSuffix(text, "\r")
		line, err := parseLine(i+1, text)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, nil
}

func splitRawLines(data string) []string {
	if data == "" {
		return nil
	}
	lines := strings.Split(data, "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	return lines
}

func parseLine(lineNum int, text string) (Line, error) {
	trimmed := strings.TrimSpace(text)
	switch {
	case trimmed == "":
		return EmptyLine{}, nil
	case strings.HasPrefix(trimmed, "//"):
		return CommentLine{Text: stripOneLeadingSpace(trimmed[2:])}, nil
	case strings.HasPrefix(trimmed, "#include"):
		return parseInclude(lineNum, trimmed)
	default:
		return parseConfig(lineNum, trimmed)
	}
}

func stripOneLeadingSpace(s string) string {
	return strings.TrimPrefix(s, " ")
}

func parseInclude(lineNum int, text string) (Line, error) {
	rest := strings.TrimPrefix(text, "#include")
	optional := false
	if strings.HasPrefix(rest, "?") {
		optional = true
		rest = rest[1:]
	}
	rest = strings.TrimLeft(rest, " \t")
	c := scan.New(rest)
	if !c.TryConsume('"') {
		return nil, &ParseError{Line: lineNum, Reason: "missing opening '\"' in include"}
	}
	path, found := c.ScanUpTo("\"")
	if !found {
		return nil, &ParseError{Line: lineNum, Reason: "missing closing '\"' in include"}
	}
	c.Advance(1) // closing quote
	if strings.TrimSpace(c.Rest()) != "" {
		return nil, &ParseError{Line: lineNum, Reason: "unexpected characters after include path"}
	}
	return &IncludeLine{Path: path, Optional: optional}, nil
}

func parseConfig(lineNum int, text string) (Line, error) {
	c := scan.New(text)

	key := c.ScanRun(isKeyByte)
	if key == "" {
		return nil, &ParseError{Line: lineNum, Reason: "missing key"}
	}

	var conds Conditionals
	for {
		if b, ok := c.Peek(); !ok || b != '[' {
			break
		}
		if next, ok := c.PeekAt(1); ok && next == ']' {
			c.Advance(2)
			break
		}
		c.Advance(1) // '['
		name, found := c.ScanUpTo("=]")
		if !found {
			return nil, &ParseError{Line: lineNum, Reason: "unterminated conditional", Expected: "']'"}
		}
		b, _ := c.Peek()
		if b != '=' {
			return nil, &ParseError{Line: lineNum, Reason: "conditional " + name, Expected: "'='"}
		}
		c.Advance(1) // '='
		value, found := c.ScanUpTo("]")
		if !found {
			return nil, &ParseError{Line: lineNum, Reason: "conditional " + name, Expected: "']'"}
		}
		c.Advance(1) // ']'
		if name != "config" && name != "sdk" && name != "arch" {
			return nil, &ParseError{Line: lineNum, Reason: "invalid conditional name " + name}
		}
		conds.Set(name, value)
	}

	c.ScanRun(isSpace)
	if !c.TryConsume('=') {
		return nil, &ParseError{Line: lineNum, Reason: "missing '=' in assignment"}
	}
	c.ScanRun(isSpace)

	values, err := scanValueCluster(lineNum, c)
	if err != nil {
		return nil, err
	}

	line := &ConfigLine{Key: key, Conditionals: conds, Values: values}

	c.ScanRun(isSpace)
	if c.ScanString("//") {
		line.HasComment = true
		line.Comment = stripOneLeadingSpace(c.Rest())
	}

	return line, nil
}

func scanValueCluster(lineNum int, c *scan.Cursor) ([]string, error) {
	var values []string
	for {
		c.ScanRun(isSpace)
		b, ok := c.Peek()
		if !ok || (b == '/' && peekIs(c, 1, '/')) {
			return values, nil
		}
		if b == '"' {
			tok, err := scanQuotedValue(lineNum, c)
			if err != nil {
				return nil, err
			}
			values = append(values, tok)
			continue
		}
		values = append(values, scanUnquotedValue(c))
	}
}

func peekIs(c *scan.Cursor, offset int, want byte) bool {
	got, ok := c.PeekAt(offset)
	return ok && got == want
}

func scanUnquotedValue(c *scan.Cursor) string {
	var b strings.Builder
	for {
		ch, ok := c.Peek()
		if !ok || isSpace(ch) || (ch == '/' && peekIs(c, 1, '/')) {
			break
		}
		c.Advance(1)
		b.WriteByte(ch)
	}
	return b.String()
}

func scanQuotedValue(lineNum int, c *scan.Cursor) (string, error) {
	c.Advance(1) // opening '"'
	var b strings.Builder
	for {
		ch, ok := c.ConsumeByte()
		if !ok {
			return "", &ParseError{Line: lineNum, Reason: "missing closing '\"' in value"}
		}
		switch ch {
		case '"':
			return b.String(), nil
		case '\\':
			esc, ok := c.ConsumeByte()
			if !ok {
				return "", &ParseError{Line: lineNum, Reason: "dangling escape"}
			}
			switch esc {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case '"':
				b.WriteByte('"')
			case '\\':
				b.WriteByte('\\')
			default:
				return "", &ParseError{Line: lineNum, Reason: "unknown escape"}
			}
		default:
			b.WriteByte(ch)
		}
	}
}
