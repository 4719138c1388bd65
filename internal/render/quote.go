package render

import (
	"strings"

	"github.com/wlkit/lswt/internal/snapshot"
)

// nullText stands in for a text attribute the server never sent.
const nullText = "<NULL>"

// needsQuoting reports whether a value would be ambiguous unquoted in human
// output: whitespace, quote characters, or non-ASCII bytes.
func needsQuoting(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case ' ', '\t', '\n', '\v', '\f', '\r', '"', '\'':
			return true
		}
		if c >= 0x80 {
			return true
		}
	}
	return false
}

// quote wraps a value in double quotes, backslash-escaping embedded quotes.
func quote(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		if s[i] == '"' {
			b.WriteByte('\\')
		}
		b.WriteByte(s[i])
	}
	b.WriteByte('"')
	return b.String()
}

// humanText formats a text attribute for human output: absent values get a
// sentinel, awkward values get quoted, everything else is raw.
func humanText(t snapshot.Text) string {
	if !t.Set {
		return nullText
	}
	if needsQuoting(t.Value) {
		return quote(t.Value)
	}
	return t.Value
}
