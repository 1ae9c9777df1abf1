// Package manifest parses Odoo module manifests.
//
// A manifest is a single Python literal expression (almost always a dict).
// The parser accepts the literal subset only: dicts, lists, tuples,
// strings, numbers, True, False and None. Nothing is ever executed, so an
// untrusted manifest can at worst fail to parse.
package manifest

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Parse reads a single Python literal expression and returns it as the
// corresponding Go value: map[string]any for dicts, []any for lists and
// tuples, string, int, float64, bool, or nil for None.
func Parse(data []byte) (any, error) {
	p := &parser{input: string(data)}

	p.skipSpace()

	value, err := p.parseValue()
	if err != nil {
		return nil, err
	}

	p.skipSpace()

	if p.pos < len(p.input) {
		return nil, p.errorf("unexpected trailing content")
	}

	return value, nil
}

// ParseDict parses a manifest and requires the top-level literal to be a
// dict, which is what every well-formed Odoo manifest contains.
func ParseDict(data []byte) (map[string]any, error) {
	value, err := Parse(data)
	if err != nil {
		return nil, err
	}

	dict, ok := value.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("manifest top-level literal is %T, expected a dict", value)
	}

	return dict, nil
}

type parser struct {
	input string
	pos   int
}

func (p *parser) errorf(format string, args ...any) error {
	line := 1 + strings.Count(p.input[:p.pos], "\n")

	return fmt.Errorf("manifest: line %d: %s", line, fmt.Sprintf(format, args...))
}

// skipSpace consumes whitespace and # comments.
func (p *parser) skipSpace() {
	for p.pos < len(p.input) {
		c := p.input[p.pos]

		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			p.pos++
		case c == '#':
			for p.pos < len(p.input) && p.input[p.pos] != '\n' {
				p.pos++
			}
		case c == '\\' && p.pos+1 < len(p.input) && p.input[p.pos+1] == '\n':
			// Line continuation.
			p.pos += 2
		default:
			return
		}
	}
}

func (p *parser) parseValue() (any, error) {
	if p.pos >= len(p.input) {
		return nil, p.errorf("unexpected end of input")
	}

	switch c := p.input[p.pos]; {
	case c == '{':
		return p.parseDict()
	case c == '[':
		return p.parseSequence('[', ']')
	case c == '(':
		return p.parseSequence('(', ')')
	case c == '\'' || c == '"' || isStringPrefix(p.input, p.pos):
		return p.parseString()
	case c == '-' || c == '+' || c == '.' || (c >= '0' && c <= '9'):
		return p.parseNumber()
	case isIdentStart(rune(c)):
		return p.parseKeyword()
	default:
		return nil, p.errorf("unexpected character %q", c)
	}
}

func (p *parser) parseDict() (map[string]any, error) {
	p.pos++ // consume '{'
	dict := map[string]any{}

	for {
		p.skipSpace()

		if p.pos >= len(p.input) {
			return nil, p.errorf("unterminated dict")
		}

		if p.input[p.pos] == '}' {
			p.pos++
			return dict, nil
		}

		key, err := p.parseValue()
		if err != nil {
			return nil, err
		}

		keyStr, ok := key.(string)
		if !ok {
			return nil, p.errorf("dict key is %T, expected a string", key)
		}

		p.skipSpace()

		if p.pos >= len(p.input) || p.input[p.pos] != ':' {
			return nil, p.errorf("expected ':' after dict key %q", keyStr)
		}

		p.pos++
		p.skipSpace()

		value, err := p.parseValue()
		if err != nil {
			return nil, err
		}

		dict[keyStr] = value

		p.skipSpace()

		if p.pos < len(p.input) && p.input[p.pos] == ',' {
			p.pos++
			continue
		}

		if p.pos < len(p.input) && p.input[p.pos] == '}' {
			p.pos++
			return dict, nil
		}

		return nil, p.errorf("expected ',' or '}' in dict")
	}
}

func (p *parser) parseSequence(open, close byte) ([]any, error) {
	p.pos++ // consume open bracket
	items := []any{}

	for {
		p.skipSpace()

		if p.pos >= len(p.input) {
			return nil, p.errorf("unterminated sequence")
		}

		if p.input[p.pos] == close {
			p.pos++
			return items, nil
		}

		value, err := p.parseValue()
		if err != nil {
			return nil, err
		}

		items = append(items, value)

		p.skipSpace()

		if p.pos < len(p.input) && p.input[p.pos] == ',' {
			p.pos++
			continue
		}

		if p.pos < len(p.input) && p.input[p.pos] == close {
			p.pos++
			return items, nil
		}

		return nil, p.errorf("expected ',' or %q in sequence", close)
	}
}

// isStringPrefix reports whether input[pos] starts a prefixed string
// literal such as u'...', r"..." or b'...'.
func isStringPrefix(input string, pos int) bool {
	c := input[pos]
	if c != 'u' && c != 'U' && c != 'r' && c != 'R' && c != 'b' && c != 'B' {
		return false
	}

	if pos+1 >= len(input) {
		return false
	}

	next := input[pos+1]

	return next == '\'' || next == '"'
}

// parseString parses one string literal, then keeps concatenating adjacent
// string literals the way Python does ('a' 'b' == 'ab').
func (p *parser) parseString() (string, error) {
	var b strings.Builder

	for {
		part, err := p.parseSingleString()
		if err != nil {
			return "", err
		}

		b.WriteString(part)

		mark := p.pos

		p.skipSpace()

		if p.pos < len(p.input) && (p.input[p.pos] == '\'' || p.input[p.pos] == '"' || isStringPrefix(p.input, p.pos)) {
			continue
		}

		p.pos = mark

		return b.String(), nil
	}
}

func (p *parser) parseSingleString() (string, error) {
	raw := false

	for p.pos < len(p.input) && isStringPrefix(p.input, p.pos) {
		c := p.input[p.pos]
		if c == 'r' || c == 'R' {
			raw = true
		}

		p.pos++
	}

	if p.pos >= len(p.input) {
		return "", p.errorf("unexpected end of input in string")
	}

	quote := p.input[p.pos]
	if quote != '\'' && quote != '"' {
		return "", p.errorf("expected string quote, got %q", quote)
	}

	triple := strings.HasPrefix(p.input[p.pos:], strings.Repeat(string(quote), 3))

	var terminator string
	if triple {
		terminator = strings.Repeat(string(quote), 3)
		p.pos += 3
	} else {
		terminator = string(quote)
		p.pos++
	}

	var b strings.Builder

	for {
		if p.pos >= len(p.input) {
			return "", p.errorf("unterminated string")
		}

		if strings.HasPrefix(p.input[p.pos:], terminator) {
			p.pos += len(terminator)
			return b.String(), nil
		}

		c := p.input[p.pos]

		if !triple && (c == '\n' || c == '\r') {
			return "", p.errorf("newline in single-quoted string")
		}

		if c == '\\' && !raw {
			if err := p.parseEscape(&b); err != nil {
				return "", err
			}

			continue
		}

		r, size := utf8.DecodeRuneInString(p.input[p.pos:])
		b.WriteRune(r)
		p.pos += size
	}
}

func (p *parser) parseEscape(b *strings.Builder) error {
	p.pos++ // consume backslash

	if p.pos >= len(p.input) {
		return p.errorf("unterminated escape sequence")
	}

	c := p.input[p.pos]
	p.pos++

	switch c {
	case 'n':
		b.WriteByte('\n')
	case 't':
		b.WriteByte('\t')
	case 'r':
		b.WriteByte('\r')
	case '0':
		b.WriteByte(0)
	case '\\', '\'', '"':
		b.WriteByte(c)
	case '\n':
		// Escaped newline continues the string.
	case 'x':
		return p.parseHexEscape(b, 2)
	case 'u':
		return p.parseHexEscape(b, 4)
	case 'U':
		return p.parseHexEscape(b, 8)
	default:
		// Python leaves unknown escapes intact.
		b.WriteByte('\\')
		b.WriteByte(c)
	}

	return nil
}

func (p *parser) parseHexEscape(b *strings.Builder, digits int) error {
	if p.pos+digits > len(p.input) {
		return p.errorf("truncated hex escape")
	}

	value, err := strconv.ParseUint(p.input[p.pos:p.pos+digits], 16, 32)
	if err != nil {
		return p.errorf("invalid hex escape: %v", err)
	}

	p.pos += digits

	b.WriteRune(rune(value))

	return nil
}

func (p *parser) parseNumber() (any, error) {
	start := p.pos

	if p.pos < len(p.input) && (p.input[p.pos] == '-' || p.input[p.pos] == '+') {
		p.pos++
	}

	isFloat := false

	for p.pos < len(p.input) {
		c := p.input[p.pos]

		switch {
		case c >= '0' && c <= '9' || c == '_':
			p.pos++
		case c == '.':
			isFloat = true
			p.pos++
		case c == 'e' || c == 'E':
			isFloat = true
			p.pos++

			if p.pos < len(p.input) && (p.input[p.pos] == '-' || p.input[p.pos] == '+') {
				p.pos++
			}
		default:
			goto done
		}
	}

done:
	text := strings.ReplaceAll(p.input[start:p.pos], "_", "")

	if isFloat {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, p.errorf("invalid float literal %q", text)
		}

		return f, nil
	}

	n, err := strconv.Atoi(text)
	if err != nil {
		return nil, p.errorf("invalid integer literal %q", text)
	}

	return n, nil
}

func (p *parser) parseKeyword() (any, error) {
	start := p.pos

	for p.pos < len(p.input) && isIdentPart(rune(p.input[p.pos])) {
		p.pos++
	}

	switch word := p.input[start:p.pos]; word {
	case "True":
		return true, nil
	case "False":
		return false, nil
	case "None":
		return nil, nil
	default:
		return nil, p.errorf("unexpected identifier %q (only True, False and None are allowed)", word)
	}
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r)
}
