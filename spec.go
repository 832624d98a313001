package stdfmt

import (
	"unicode/utf8"
)

// maxWidth bounds literal widths and precisions.
const maxWidth = 1<<31 - 1

// Align controls where a value sits inside its field width.
type Align uint8

const (
	AlignDefault Align = iota
	AlignLeft
	AlignRight
	AlignCenter
)

// Sign controls how the sign of a number is written.
type Sign uint8

const (
	SignDefault Sign = iota
	SignMinus        // '-': only negative numbers
	SignPlus         // '+': always
	SignSpace        // ' ': space for non-negative numbers
)

// Fields selects which options of the standard format-spec a parser accepts.
type Fields uint16

const (
	FieldFillAlign Fields = 1 << iota
	FieldSign
	FieldAlt
	FieldZero
	FieldWidth
	FieldPrecision
	FieldLocale
	FieldType

	// FieldsStd is the complete standard format-spec.
	FieldsStd = FieldFillAlign | FieldSign | FieldAlt | FieldZero | FieldWidth | FieldPrecision | FieldLocale | FieldType
	// FieldsChrono is the prefix accepted before calendrical directives.
	FieldsChrono = FieldFillAlign | FieldWidth | FieldPrecision | FieldLocale
)

// Spec is a parsed format-spec. WidthArg and PrecisionArg hold the argument
// id a dynamic value is read from, or -1. Precision is -1 when absent.
type Spec struct {
	Fill         rune
	Align        Align
	Sign         Sign
	Alt          bool
	Zero         bool
	Width        int
	WidthArg     int
	Precision    int
	PrecisionArg int
	Localized    bool
	Type         byte
}

// NewSpec returns a spec with no options set.
func NewSpec() Spec {
	return Spec{Fill: ' ', WidthArg: -1, Precision: -1, PrecisionArg: -1}
}

// HasPrecision reports whether a literal or dynamic precision was given.
func (s Spec) HasPrecision() bool { return s.Precision >= 0 || s.PrecisionArg >= 0 }

func isAlign(r rune) (Align, bool) {
	switch r {
	case '<':
		return AlignLeft, true
	case '>':
		return AlignRight, true
	case '^':
		return AlignCenter, true
	}
	return AlignDefault, false
}

// ParseSpec parses the standard options selected by fields at the cursor and
// leaves the cursor on the first byte it did not consume.
func (pc *ParseContext) ParseSpec(fields Fields) (Spec, error) {
	spec := NewSpec()
	if fields&FieldFillAlign != 0 {
		if err := pc.parseFillAlign(&spec); err != nil {
			return spec, err
		}
	}
	if fields&FieldSign != 0 {
		if c, ok := pc.peek(); ok {
			switch c {
			case '+':
				spec.Sign = SignPlus
				pc.pos++
			case '-':
				spec.Sign = SignMinus
				pc.pos++
			case ' ':
				spec.Sign = SignSpace
				pc.pos++
			}
		}
	}
	if fields&FieldAlt != 0 {
		if c, ok := pc.peek(); ok && c == '#' {
			spec.Alt = true
			pc.pos++
		}
	}
	if fields&FieldZero != 0 {
		if c, ok := pc.peek(); ok && c == '0' {
			spec.Zero = true
			pc.pos++
		}
	}
	if fields&FieldWidth != 0 {
		w, arg, err := pc.parseCount("width", false)
		if err != nil {
			return spec, err
		}
		if w == 0 && arg < 0 {
			if c, ok := pc.peek(); ok && c == '0' {
				return spec, pc.Errorf(ErrSyntax, "width must not start with '0'")
			}
		}
		spec.Width, spec.WidthArg = w, arg
	}
	if fields&FieldPrecision != 0 {
		if c, ok := pc.peek(); ok && c == '.' {
			pc.pos++
			c, ok := pc.peek()
			if !ok || (!isDigit(c) && c != '{') {
				return spec, pc.Errorf(ErrSyntax, "precision option does not contain a value or an argument index")
			}
			p, arg, err := pc.parseCount("precision", true)
			if err != nil {
				return spec, err
			}
			if arg < 0 {
				spec.Precision = p
			}
			spec.PrecisionArg = arg
		}
	}
	if fields&FieldLocale != 0 {
		if c, ok := pc.peek(); ok && c == 'L' {
			spec.Localized = true
			pc.pos++
		}
	}
	if fields&FieldType != 0 {
		if c, ok := pc.peek(); ok && c != '}' {
			spec.Type = c
			pc.pos++
		}
	}
	return spec, nil
}

func (pc *ParseContext) parseFillAlign(spec *Spec) error {
	rest := pc.Remaining()
	if rest == "" {
		return nil
	}
	fill, n := utf8.DecodeRuneInString(rest)
	if len(rest) > n {
		next, _ := utf8.DecodeRuneInString(rest[n:])
		if a, ok := isAlign(next); ok {
			if fill == '{' || fill == '}' {
				return pc.Errorf(ErrSyntax, "fill character %q is not allowed", fill)
			}
			if fill == utf8.RuneError && n == 1 {
				return pc.Errorf(ErrSyntax, "fill character is not valid UTF-8")
			}
			spec.Fill, spec.Align = fill, a
			pc.pos += n + 1
			return nil
		}
	}
	if a, ok := isAlign(fill); ok {
		spec.Align = a
		pc.pos++
	}
	return nil
}

// parseCount reads a literal count or a nested "{id}" reference. It returns
// the literal value and -1, or zero and the argument id.
func (pc *ParseContext) parseCount(what string, leadingZero bool) (int, int, error) {
	c, ok := pc.peek()
	if !ok {
		return 0, -1, nil
	}
	if c == '{' {
		pc.pos++
		id, err := pc.parseArgID()
		if err != nil {
			return 0, -1, err
		}
		if c, ok := pc.peek(); !ok || c != '}' {
			return 0, -1, pc.Errorf(ErrSyntax, "%s argument index is not terminated by '}'", what)
		}
		pc.pos++
		if err := pc.CheckDynamicSpec(id); err != nil {
			return 0, -1, err
		}
		return 0, id, nil
	}
	if !isDigit(c) || (c == '0' && !leadingZero) {
		return 0, -1, nil
	}
	v := 0
	for pc.pos < len(pc.format) && isDigit(pc.format[pc.pos]) {
		v = v*10 + int(pc.format[pc.pos]-'0')
		if v > maxWidth {
			return 0, -1, pc.Errorf(ErrSyntax, "%s is too large", what)
		}
		pc.pos++
	}
	return v, -1, nil
}
