// Package replace compiles and applies Lua-style gsub replacement
// templates against a matched pattern.Matcher.
package replace

import "fmt"

// itemKind distinguishes a compiled template item.
type itemKind int

const (
	itemLiteral itemKind = iota
	itemCapture
)

type item struct {
	kind    itemKind
	literal []byte // valid when kind == itemLiteral
	capture int    // valid when kind == itemCapture; 0 means the whole match
}

// Template is a compiled replacement program: an ordered sequence of
// literal byte runs and capture references, built once from a template
// string and reusable across matches.
type Template struct {
	items []item
}

// Compile parses template into a Template. Literal runs are copied once;
// "%%" becomes a literal '%'; "%n" for n in 0-9 becomes a capture
// reference. Any other "%X" is rejected — unlike Lua's C implementation,
// which silently treats it as undefined behavior, this implementation
// requires every escape to be meaningful.
func Compile(template []byte) (*Template, error) {
	var items []item
	var lit []byte

	flushLiteral := func() {
		if len(lit) > 0 {
			items = append(items, item{kind: itemLiteral, literal: lit})
			lit = nil
		}
	}

	i := 0
	for i < len(template) {
		c := template[i]
		if c != '%' {
			lit = append(lit, c)
			i++
			continue
		}
		if i+1 >= len(template) {
			return nil, fmt.Errorf("replace: invalid escape '%%' at end of template")
		}
		next := template[i+1]
		switch {
		case next == '%':
			lit = append(lit, '%')
			i += 2
		case next >= '0' && next <= '9':
			flushLiteral()
			items = append(items, item{kind: itemCapture, capture: int(next - '0')})
			i += 2
		default:
			return nil, fmt.Errorf("replace: invalid escape '%%%c'", next)
		}
	}
	flushLiteral()

	return &Template{items: items}, nil
}
