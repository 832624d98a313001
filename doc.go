// Package stdfmt renders text from format strings with replacement fields.
//
// A format string mixes literal text with fields in braces. Each field names
// an argument, automatically ("{}") or by index ("{1}"), and may carry a
// format-spec after a colon:
//
//	[[fill]align][sign][#][0][width][.precision][L][type]
//
// The central entry points are [Format], [Append], [FormatTo], [FormatToN]
// and [FormattedSize]. They all run the same traversal and differ only in
// where the text goes:
//
//	s, err := stdfmt.Format("{:>8.3f}|{:#x}", 3.14159, 255)
//	n, size, err := stdfmt.FormatToN(buf[:16], "{} items", count)
//
// # Arguments
//
// Arguments are stored behind a closed set of tags (see [Tag]). Go values map
// to tags by type: signed and unsigned integers of every width, [Int128] and
// [Uint128], float32 and float64, *big.Float for extended precision, string
// and fmt.Stringer, []byte read up to the first NUL, uintptr and
// unsafe.Pointer, and [Char] for characters. A plain rune is an int32 and
// formats as a number.
//
// Types implementing [Formattable] bring their own [Formatter], which parses
// its part of the format-spec and renders the value. Package chrono is built
// this way.
//
// # Locales
//
// The package functions use the classic locale. A [Printer] binds a
// [*Locale] derived from a language tag; the "L" option then selects the
// locale's decimal point, digit grouping and calendar names:
//
//	p := stdfmt.NewPrinter(stdfmt.NewLocale(language.German))
//	s, _ := p.Format("{:L}", 1234567.5) // "1.234.567,5"
//
// # Validation ahead of time
//
// [Check] validates a format string against argument types without values,
// using the same parser the renderer uses. [MustCompile] does the same once
// at package initialization and returns a [Template]:
//
//	var row = stdfmt.MustCompile("{:<20}{:>8}", stdfmt.TypeOf[string](), stdfmt.TypeOf[int]())
//
// The fmtcheck command runs the same validation over the literal format
// strings of a Go source tree.
//
// # Errors
//
// Every error is a [*FormatError] that unwraps to one of the sentinels:
//
//   - [ErrSyntax]: malformed field or spec
//   - [ErrIndex]: argument index out of range
//   - [ErrType]: option or presentation not valid for the argument
//   - [ErrValue]: bad value, such as a negative dynamic width
//   - [ErrResource]: a field would need an unreasonable amount of memory
package stdfmt
