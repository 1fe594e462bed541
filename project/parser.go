package project

import (
	"strconv"
	"strings"

	"github.com/javerous/SMXcode/internal/scan"
)

// header is the optional UTF-8 marker every project.pbxproj begins with.
const header = "// !$*UTF8*$!"

const contextChars = 20

func isUnquotedKeyByte(b byte) bool {
	return isAlnum(b) || b == '_' || b == '.'
}

func isUnquotedValueByte(b byte) bool {
	return isAlnum(b) || b == '_' || b == '.' || b == '/'
}

func isAlnum(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r':
		return true
	}
	return false
}

// parser is a recursive-descent parser over the ASCII property-list
// dialect (§4.2). It never backtracks across tokens boundaries: each
// production consumes exactly the input its grammar rule describes.
type parser struct {
	c *scan.Cursor
}

// Parse reads the ASCII property-list dialect from data and returns its
// root dictionary, plus whether the optional UTF-8 header (§4.2) was
// present in data. Render uses that flag so a headerless source round-trips
// without one being injected (§8 property 1). The root element must be a
// dictionary; an empty or entirely-whitespace input is also an error, per
// the same rule.
func Parse(data []byte) (*Dictionary, bool, error) {
	p := &parser{c: scan.New(string(data))}
	p.skipTrivia()
	hadHeader := p.c.ScanString(header)
	p.skipTrivia()
	b, ok := p.c.Peek()
	if !ok || b != '{' {
		return nil, false, p.errorf("root dictionary")
	}
	dict, err := p.parseDict()
	if err != nil {
		return nil, false, err
	}
	return dict, hadHeader, nil
}

func (p *parser) errorf(expected string) error {
	return &ParseError{
		Offset:   p.c.Pos(),
		Expected: expected,
		Context:  p.c.Context(contextChars),
	}
}

// skipTrivia consumes whitespace and /* ... */ comments, which may appear
// between any two tokens (§4.2).
func (p *parser) skipTrivia() {
	for {
		p.c.ScanRun(isSpace)
		if !p.c.ScanString("/*") {
			break
		}
		if i := strings.Index(p.c.Rest(), "*/"); i >= 0 {
			p.c.Advance(i + 2)
		} else {
			p.c.Advance(p.c.Len())
		}
	}
}

func (p *parser) parseDict() (*Dictionary, error) {
	p.c.Advance(1) // consume '{'
	dict := NewDictionary()
	for {
		p.skipTrivia()
		if p.c.TryConsume('}') {
			return dict, nil
		}
		key, err := p.parseKey()
		if err != nil {
			return nil, err
		}
		p.skipTrivia()
		if !p.c.TryConsume('=') {
			return nil, p.errorf("'='")
		}
		p.skipTrivia()
		val, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		p.skipTrivia()
		if !p.c.TryConsume(';') {
			return nil, p.errorf("';'")
		}
		dict.Set(String(key), val)
	}
}

func (p *parser) parseArray() (*Array, error) {
	p.c.Advance(1) // consume '('
	arr := NewArray()
	for {
		p.skipTrivia()
		if p.c.TryConsume(')') {
			return arr, nil
		}
		val, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		p.skipTrivia()
		if !p.c.TryConsume(',') {
			return nil, p.errorf("','")
		}
		arr.Append(val)
	}
}

func (p *parser) parseKey() (string, error) {
	p.skipTrivia()
	b, ok := p.c.Peek()
	if !ok {
		return "", p.errorf("key")
	}
	if b == '"' {
		return p.parseQuoted()
	}
	key := p.c.ScanRun(isUnquotedKeyByte)
	if key == "" {
		return "", p.errorf("key")
	}
	return key, nil
}

func (p *parser) parseValue() (Value, error) {
	p.skipTrivia()
	b, ok := p.c.Peek()
	if !ok {
		return nil, p.errorf("value")
	}
	switch {
	case b == '{':
		return p.parseDict()
	case b == '(':
		return p.parseArray()
	case b == '"':
		s, err := p.parseQuoted()
		if err != nil {
			return nil, err
		}
		return String(s), nil
	default:
		s := p.c.ScanRun(isUnquotedValueByte)
		if s == "" {
			return nil, p.errorf("value")
		}
		return String(s), nil
	}
}

func (p *parser) parseQuoted() (string, error) {
	p.c.Advance(1) // consume opening '"'
	var b strings.Builder
	for {
		ch, ok := p.c.ConsumeByte()
		if !ok {
			return "", p.errorf("closing '\"'")
		}
		switch ch {
		case '"':
			return b.String(), nil
		case '\\':
			esc, ok := p.c.ConsumeByte()
			if !ok {
				return "", p.errorf("escape character")
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
				return "", p.errorf("known escape (\\n, \\t, \\\", \\\\)")
			}
		case '&':
			r, ok := p.tryParseHexEntity()
			if ok {
				b.WriteRune(r)
			} else {
				b.WriteByte('&')
			}
		default:
			b.WriteByte(ch)
		}
	}
}

// tryParseHexEntity recognizes a "#x<hex>;" run right after an already-
// consumed '&', the inverse of encodeLiteralText's "&#x%X;" non-ASCII
// encoding (§4.5). It only advances the cursor on success, peeking ahead
// first so a lone '&' (or a malformed entity) is left untouched and falls
// back to being emitted as a literal byte.
func (p *parser) tryParseHexEntity() (rune, bool) {
	b0, ok := p.c.PeekAt(0)
	if !ok || b0 != '#' {
		return 0, false
	}
	b1, ok := p.c.PeekAt(1)
	if !ok || (b1 != 'x' && b1 != 'X') {
		return 0, false
	}

	i := 2
	for {
		b, ok := p.c.PeekAt(i)
		if !ok {
			return 0, false
		}
		if b == ';' {
			break
		}
		if !isHexDigitByte(b) {
			return 0, false
		}
		i++
	}
	if i == 2 {
		return 0, false // "&#x;" has no digits
	}

	entity := p.c.Context(i + 1)
	val, err := strconv.ParseUint(entity[2:i], 16, 32)
	if err != nil {
		return 0, false
	}
	p.c.Advance(i + 1)
	return rune(val), true
}

func isHexDigitByte(b byte) bool {
	return (b >= '0' && b <= '9') || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}
