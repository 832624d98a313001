package stdfmt

import (
	"strconv"
	"unicode"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

func (r *renderer) writeText(s string) error {
	spec := r.spec
	if spec.Type == '?' {
		s = quote(s, '"')
	}
	if spec.Precision >= 0 && runewidth.StringWidth(s) > spec.Precision {
		s = runewidth.Truncate(s, spec.Precision, "")
	}
	r.ctx.WriteAligned(s, spec, AlignLeft)
	return nil
}

// quote renders s as an escaped literal delimited by q. Printable runes are
// kept, the usual control escapes are used where they exist and everything
// else becomes \u{hex}; bytes that are not UTF-8 become \x{hex}.
func quote(s string, q byte) string {
	b := make([]byte, 0, len(s)+2)
	b = append(b, q)
	for i := 0; i < len(s); {
		r, n := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && n == 1 {
			b = append(b, `\x{`...)
			b = strconv.AppendUint(b, uint64(s[i]), 16)
			b = append(b, '}')
			i++
			continue
		}
		switch {
		case r == '\t':
			b = append(b, `\t`...)
		case r == '\n':
			b = append(b, `\n`...)
		case r == '\r':
			b = append(b, `\r`...)
		case r == '\\':
			b = append(b, `\\`...)
		case r == rune(q):
			b = append(b, '\\', q)
		case unicode.IsPrint(r) || r == ' ':
			b = append(b, s[i:i+n]...)
		default:
			b = append(b, `\u{`...)
			b = strconv.AppendUint(b, uint64(r), 16)
			b = append(b, '}')
		}
		i += n
	}
	return string(append(b, q))
}
