package maud

import (
	"strconv"
	"strings"
)

// EscapeString escapes s for use inside a double-quoted Rust string literal.
// Tab, carriage return, newline, backslash and both quote characters get
// their backslash forms, printable ASCII is kept, and every other rune is
// written as \u{hex}.
func EscapeString(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	for _, r := range s {
		switch {
		case r == '\t':
			b.WriteString(`\t`)
		case r == '\r':
			b.WriteString(`\r`)
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\\':
			b.WriteString(`\\`)
		case r == '\'':
			b.WriteString(`\'`)
		case r == '"':
			b.WriteString(`\"`)
		case r >= 0x20 && r <= 0x7e:
			b.WriteRune(r)
		default:
			b.WriteString(`\u{`)
			b.WriteString(strconv.FormatInt(int64(r), 16))
			b.WriteByte('}')
		}
	}

	return b.String()
}
