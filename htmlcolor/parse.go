// Package htmlcolor implements the HTML rules for parsing a legacy colour
// value, the lenient algorithm browsers apply to presentational attributes
// such as bgcolor and <font color>.
//
// Apart from the empty string and the keyword "transparent", every input is
// coerced into a colour; nothing else is rejected.
//
// https://html.spec.whatwg.org/multipage/common-microsyntaxes.html#rules-for-parsing-a-legacy-colour-value
package htmlcolor

import (
	"strings"
	"sync"
)

// maxValueLength bounds the number of code points considered after
// astral characters have been widened.
const maxValueLength = 128

// maxComponentLength is the number of trailing digits kept per component
// before leading zeros are trimmed.
const maxComponentLength = 8

// Parser applies the legacy colour rules against an injected keyword table.
// The zero value has an empty table.
type Parser struct {
	names *NameTable
}

// NewParser returns a parser that resolves keywords through names. A nil
// table disables keyword lookup.
func NewParser(names *NameTable) *Parser {
	return &Parser{names: names}
}

var defaultParser = sync.OnceValue(func() *Parser {
	return NewParser(DefaultNames())
})

// Parse runs the legacy colour rules with the default keyword table.
func Parse(input string) (Color, error) {
	return defaultParser().Parse(input)
}

// Parse coerces input into a colour. The only failures are *ParseError
// values wrapping ErrEmptyInput or ErrTransparent.
func (p *Parser) Parse(input string) (Color, error) {
	if len(input) == 0 {
		return Color{}, &ParseError{Input: input, Err: ErrEmptyInput}
	}
	value := strings.TrimSpace(input)
	if strings.ToLower(value) == "transparent" {
		return Color{}, &ParseError{Input: input, Err: ErrTransparent}
	}
	// Keyword lookup is case-sensitive: "RED" falls through to the digit rules.
	if c, ok := p.names.Lookup(value); ok {
		return c, nil
	}
	if c, ok := parseShortHex(value); ok {
		return c, nil
	}
	return parseLenient(value), nil
}

// parseShortHex handles the exact "#rgb" form.
func parseShortHex(value string) (Color, bool) {
	if len(value) != 4 || value[0] != '#' {
		return Color{}, false
	}
	var ch [3]uint8
	for i := range ch {
		r := rune(value[i+1])
		if !isHexDigit(r) {
			return Color{}, false
		}
		ch[i] = hexValue(r) * 17
	}
	return Color{R: ch[0], G: ch[1], B: ch[2]}, true
}

func parseLenient(value string) Color {
	digits := make([]rune, 0, len(value))
	for _, r := range value {
		if r > 0xFFFF {
			digits = append(digits, '0', '0')
			continue
		}
		digits = append(digits, r)
	}
	if len(digits) > maxValueLength {
		digits = digits[:maxValueLength]
	}
	if len(digits) > 0 && digits[0] == '#' {
		digits = digits[1:]
	}
	for i, r := range digits {
		if !isHexDigit(r) {
			digits[i] = '0'
		}
	}
	for len(digits) == 0 || len(digits)%3 != 0 {
		digits = append(digits, '0')
	}

	// The three components are equal-width windows over digits:
	// component i spans digits[i*width+start : i*width+start+length].
	width := len(digits) / 3
	start, length := 0, width
	if length > maxComponentLength {
		start, length = width-maxComponentLength, maxComponentLength
	}
	for length > 2 &&
		digits[start] == '0' &&
		digits[width+start] == '0' &&
		digits[2*width+start] == '0' {
		start++
		length--
	}
	if length > 2 {
		length = 2
	}

	component := func(i int) uint8 {
		var v uint8
		off := i*width + start
		for _, r := range digits[off : off+length] {
			v = v<<4 | hexValue(r)
		}
		return v
	}
	return Color{R: component(0), G: component(1), B: component(2)}
}

// isHexLetter only recognises the letter digits a-f.
func isHexLetter(r rune) bool {
	return (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

func isHexDigit(r rune) bool {
	return (r >= '0' && r <= '9') || isHexLetter(r)
}

// hexValue assumes isHexDigit(r).
func hexValue(r rune) uint8 {
	switch {
	case r >= '0' && r <= '9':
		return uint8(r - '0')
	case r >= 'a' && r <= 'f':
		return uint8(r-'a') + 10
	case r >= 'A' && r <= 'F':
		return uint8(r-'A') + 10
	}
	return 0
}
