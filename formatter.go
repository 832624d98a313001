package stdfmt

import (
	"bytes"
	"math/big"
	"strconv"
	"strings"
)

// formatterFor returns the formatter registered for an argument's tag. Handles
// bring their own; every other tag uses the built-in formatter.
func formatterFor(a Arg) Formatter {
	if a.tag == TagHandle {
		return a.ref.(Formattable).Formatter()
	}
	return &stdFormatter{arg: a}
}

// stdFormatter formats every built-in tag.
type stdFormatter struct {
	arg  Arg
	spec Spec
}

func (f *stdFormatter) Parse(pc *ParseContext) error {
	start := pc.Pos()
	spec, err := pc.ParseSpec(FieldsStd)
	if err != nil {
		return err
	}
	if err := validateSpec(f.arg.tag, spec); err != nil {
		if fe, ok := err.(*FormatError); ok {
			fe.Pos = start
		}
		return err
	}
	f.spec = spec
	return nil
}

func (f *stdFormatter) Format(ctx *Context) error {
	spec := f.spec
	if err := ctx.ResolveSpec(&spec); err != nil {
		return err
	}
	return f.arg.Visit(&renderer{ctx: ctx, spec: spec})
}

// presentation groups the type letters by how they render.
type presentation uint8

const (
	presText presentation = iota
	presInteger
	presChar
	presFloat
	presPointer
	presDebug
)

// classify resolves the presentation of a type letter for tag, reporting
// false when the letter is not valid for it.
func classify(tag Tag, t byte) (presentation, bool) {
	switch {
	case tag == TagBool:
		switch t {
		case 0, 's':
			return presText, true
		case 'b', 'B', 'd', 'o', 'x', 'X':
			return presInteger, true
		}
	case tag == TagChar:
		switch t {
		case 0, 'c':
			return presChar, true
		case '?':
			return presDebug, true
		case 'b', 'B', 'd', 'o', 'x', 'X':
			return presInteger, true
		}
	case tag.IsInteger():
		switch t {
		case 0, 'b', 'B', 'd', 'o', 'x', 'X':
			return presInteger, true
		case 'c':
			return presChar, true
		}
	case tag == TagFloat80:
		switch t {
		case 0, 'e', 'E', 'f', 'F', 'g', 'G':
			return presFloat, true
		}
	case tag.IsFloat():
		switch t {
		case 0, 'a', 'A', 'e', 'E', 'f', 'F', 'g', 'G':
			return presFloat, true
		}
	case tag.IsString():
		switch t {
		case 0, 's':
			return presText, true
		case '?':
			return presDebug, true
		}
	case tag == TagPointer:
		switch t {
		case 0, 'p', 'P':
			return presPointer, true
		}
	}
	return 0, false
}

// validateSpec rejects options the argument's tag cannot honour.
func validateSpec(tag Tag, spec Spec) error {
	pres, ok := classify(tag, spec.Type)
	if !ok {
		return errorf(ErrType, -1, "presentation type %q is not valid for a %s argument", spec.Type, tag)
	}
	reject := func(option string) error {
		return errorf(ErrType, -1, "the %s option is not allowed for a %s argument", option, tag)
	}
	if spec.HasPrecision() && pres != presFloat && !tag.IsString() {
		return reject("precision")
	}
	switch pres {
	case presText, presChar, presDebug:
		if spec.Sign != SignDefault {
			return reject("sign")
		}
		if spec.Alt {
			return reject("alternate form")
		}
		if spec.Zero {
			return reject("zero-padding")
		}
		if spec.Localized && tag.IsString() {
			return reject("locale-specific form")
		}
	case presPointer:
		if spec.Sign != SignDefault {
			return reject("sign")
		}
		if spec.Alt {
			return reject("alternate form")
		}
		if spec.Localized {
			return reject("locale-specific form")
		}
	}
	return nil
}

// renderer writes one built-in argument according to its spec.
type renderer struct {
	ctx  *Context
	spec Spec
}

func (r *renderer) locale() *Locale {
	if r.spec.Localized {
		return r.ctx.loc
	}
	return Classic
}

func (r *renderer) VisitBool(v bool) error {
	if pres, _ := classify(TagBool, r.spec.Type); pres == presInteger {
		var n uint64
		if v {
			n = 1
		}
		return r.VisitUint(n)
	}
	s := "false"
	if v {
		s = "true"
	}
	r.ctx.WriteAligned(s, r.spec, AlignLeft)
	return nil
}

func (r *renderer) VisitChar(v rune) error {
	switch pres, _ := classify(TagChar, r.spec.Type); pres {
	case presInteger:
		return r.VisitInt(int64(v))
	case presDebug:
		r.ctx.WriteAligned(quote(string(v), '\''), r.spec, AlignLeft)
		return nil
	}
	return r.writeChar(v)
}

func (r *renderer) VisitInt(v int64) error {
	if v < 0 {
		return r.writeInteger(true, uint64(-v), nil)
	}
	return r.writeInteger(false, uint64(v), nil)
}

func (r *renderer) VisitUint(v uint64) error { return r.writeInteger(false, v, nil) }

func (r *renderer) VisitInt128(v Int128) error {
	b := v.Big()
	neg := b.Sign() < 0
	return r.writeInteger(neg, 0, b.Abs(b))
}

func (r *renderer) VisitUint128(v Uint128) error { return r.writeInteger(false, 0, v.Big()) }

func (r *renderer) VisitFloat(v float64, bitSize int) error {
	return r.writeFloat(float64Digits(v, bitSize))
}

func (r *renderer) VisitBigFloat(v *big.Float) error {
	return r.writeFloat(bigFloatDigits(v))
}

func (r *renderer) VisitBytes(v []byte) error {
	if i := bytes.IndexByte(v, 0); i >= 0 {
		v = v[:i]
	}
	return r.writeText(string(v))
}

func (r *renderer) VisitString(v string) error { return r.writeText(v) }

func (r *renderer) VisitPointer(v uintptr) error {
	digits := strconv.FormatUint(uint64(v), 16)
	prefix := "0x"
	if r.spec.Type == 'P' {
		prefix, digits = "0X", strings.ToUpper(digits)
	}
	r.ctx.writeNumber(prefix, digits, r.spec)
	return nil
}

func (r *renderer) VisitHandle(Formattable) error {
	// Handles are dispatched to their own formatter by formatterFor.
	return errorf(ErrType, -1, "handle argument reached the built-in formatter")
}
