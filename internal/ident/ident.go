// Package ident represents SQL identifiers and qualified references and
// parses their dotted textual form.
package ident

import (
	"fmt"
	"strings"

	"github.com/polyquery/polyquery/internal/dialect"
)

// Identifier is a single name component together with a flag recording
// whether its source form was quoted. Quoted identifiers compare byte for
// byte after delimiter stripping; unquoted identifiers are case-folded by
// the dialect before comparison.
type Identifier struct {
	Name   string
	Quoted bool
}

// New constructs an identifier.
func New(name string, quoted bool) Identifier {
	return Identifier{Name: name, Quoted: quoted}
}

// String renders the identifier in its source form, re-attaching double
// quotes when the identifier was quoted.
func (id Identifier) String() string {
	if id.Quoted {
		return `"` + strings.ReplaceAll(id.Name, `"`, `""`) + `"`
	}
	return id.Name
}

// Reference is an ordered list of identifiers, most significant first:
// [catalog.][database.]table or [database.][table.]column depending on
// context.
type Reference []Identifier

// String renders the reference in dotted source form.
func (r Reference) String() string {
	parts := make([]string, len(r))
	for i, id := range r {
		parts[i] = id.String()
	}
	return strings.Join(parts, ".")
}

// Normalized returns the reference's stored name parts under the dialect.
func (r Reference) Normalized(d dialect.Dialect) []string {
	parts := make([]string, len(r))
	for i, id := range r {
		parts[i] = d.Normalize(id.Name, id.Quoted)
	}
	return parts
}

// ParseError reports a malformed dotted reference.
type ParseError struct {
	Text    string
	Message string
}

// Error implements the error interface.
func (e ParseError) Error() string {
	return fmt.Sprintf("malformed reference %q: %s", e.Text, e.Message)
}

// Parse splits a dotted textual reference into identifiers, honoring the
// dialect's quoting delimiters. Doubled closing delimiters inside a quoted
// identifier unescape to a single character.
func Parse(text string, d dialect.Dialect) (Reference, error) {
	rule := d.Rule()
	ref := make(Reference, 0, 3)

	i := 0
	for {
		id, next, err := scanPart(text, i, rule)
		if err != nil {
			return nil, err
		}
		ref = append(ref, id)
		if next >= len(text) {
			return ref, nil
		}
		if text[next] != '.' {
			return nil, ParseError{Text: text, Message: fmt.Sprintf("unexpected %q", text[next])}
		}
		i = next + 1
	}
}

// ParseOne parses a single identifier, rejecting dotted input.
func ParseOne(text string, d dialect.Dialect) (Identifier, error) {
	ref, err := Parse(text, d)
	if err != nil {
		return Identifier{}, err
	}
	if len(ref) != 1 {
		return Identifier{}, ParseError{Text: text, Message: "expected a single identifier"}
	}
	return ref[0], nil
}

func scanPart(text string, start int, rule dialect.Rule) (Identifier, int, error) {
	i := start
	for i < len(text) && text[i] == ' ' {
		i++
	}
	if i >= len(text) {
		return Identifier{}, 0, ParseError{Text: text, Message: "empty identifier"}
	}

	if open, closing := delimiterAt(text[i], rule); open {
		name, next, err := scanQuoted(text, i+1, closing)
		if err != nil {
			return Identifier{}, 0, err
		}
		return Identifier{Name: name, Quoted: true}, skipSpaces(text, next), nil
	}

	j := i
	for j < len(text) && text[j] != '.' {
		j++
	}
	name := strings.TrimRight(text[i:j], " ")
	if name == "" {
		return Identifier{}, 0, ParseError{Text: text, Message: "empty identifier"}
	}
	return Identifier{Name: name}, j, nil
}

// delimiterAt reports whether c opens a quoted identifier and which byte
// closes it.
func delimiterAt(c byte, rule dialect.Rule) (bool, byte) {
	switch {
	case c == '"':
		return true, '"'
	case c == '`' && rule.Backticks:
		return true, '`'
	case c == '[' && rule.Brackets:
		return true, ']'
	default:
		return false, 0
	}
}

func scanQuoted(text string, start int, closing byte) (string, int, error) {
	var b strings.Builder
	i := start
	for i < len(text) {
		c := text[i]
		if c != closing {
			b.WriteByte(c)
			i++
			continue
		}
		// A doubled closing delimiter is an escaped literal character.
		if closing != ']' && i+1 < len(text) && text[i+1] == closing {
			b.WriteByte(closing)
			i += 2
			continue
		}
		if b.Len() == 0 {
			return "", 0, ParseError{Text: text, Message: "empty quoted identifier"}
		}
		return b.String(), i + 1, nil
	}
	return "", 0, ParseError{Text: text, Message: "unterminated quoted identifier"}
}

func skipSpaces(text string, i int) int {
	for i < len(text) && text[i] == ' ' {
		i++
	}
	return i
}
