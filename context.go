package stdfmt

import (
	"math/big"
	"strings"
	"unicode/utf8"

	"fortio.org/safecast"
	"github.com/mattn/go-runewidth"
)

// Context is the destination of one formatting call. It owns the output for
// the duration of the call and shares the arguments and the locale read-only.
type Context struct {
	out  sink
	loc  *Locale
	args Args
}

// Locale returns the locale of the call.
func (c *Context) Locale() *Locale { return c.loc }

// Args returns the arguments of the call.
func (c *Context) Args() Args { return c.args }

// WriteString emits s unchanged.
func (c *Context) WriteString(s string) (int, error) {
	c.out.emit(s)
	return len(s), nil
}

// Write emits p unchanged. It makes a Context usable as an io.Writer.
func (c *Context) Write(p []byte) (int, error) {
	c.out.emit(string(p))
	return len(p), nil
}

// ResolveSpec replaces dynamic width and precision references with the
// values of the referenced arguments.
func (c *Context) ResolveSpec(spec *Spec) error {
	if spec.WidthArg >= 0 {
		w, err := c.dynamicCount(spec.WidthArg, "width")
		if err != nil {
			return err
		}
		if w == 0 {
			return errorf(ErrValue, -1, "width argument %d must be positive", spec.WidthArg)
		}
		spec.Width, spec.WidthArg = w, -1
	}
	if spec.PrecisionArg >= 0 {
		p, err := c.dynamicCount(spec.PrecisionArg, "precision")
		if err != nil {
			return err
		}
		spec.Precision, spec.PrecisionArg = p, -1
	}
	return nil
}

func (c *Context) dynamicCount(id int, what string) (int, error) {
	v := countVisitor{what: what, id: id}
	if err := c.args.Visit(id, &v); err != nil {
		return 0, err
	}
	return v.n, nil
}

// countVisitor reads a width or precision out of an integer argument.
type countVisitor struct {
	rejectVisitor
	what string
	id   int
	n    int
}

func (v *countVisitor) VisitInt(x int64) error {
	if x < 0 {
		return errorf(ErrValue, -1, "%s argument %d is negative (%d)", v.what, v.id, x)
	}
	return v.VisitUint(uint64(x))
}

func (v *countVisitor) VisitUint(x uint64) error {
	n, err := safecast.Conv[int32](x)
	if err != nil {
		return errorf(ErrValue, -1, "%s argument %d is too large (%d)", v.what, v.id, x)
	}
	v.n = int(n)
	return nil
}

func (v *countVisitor) VisitInt128(x Int128) error { return v.visitBig(x.Big()) }

func (v *countVisitor) VisitUint128(x Uint128) error { return v.visitBig(x.Big()) }

func (v *countVisitor) visitBig(b *big.Int) error {
	if b.Sign() < 0 {
		return errorf(ErrValue, -1, "%s argument %d is negative (%s)", v.what, v.id, b)
	}
	if !b.IsUint64() {
		return errorf(ErrValue, -1, "%s argument %d is too large (%s)", v.what, v.id, b)
	}
	return v.VisitUint(b.Uint64())
}

// rejectVisitor fails every visit. Embedders override what they accept.
type rejectVisitor struct{}

func (rejectVisitor) reject(kind string) error {
	return errorf(ErrValue, -1, "a %s value cannot be used here", kind)
}

func (r rejectVisitor) VisitBool(bool) error           { return r.reject("bool") }
func (r rejectVisitor) VisitChar(rune) error           { return r.reject("char") }
func (r rejectVisitor) VisitInt(int64) error           { return r.reject("int") }
func (r rejectVisitor) VisitInt128(Int128) error       { return r.reject("int128") }
func (r rejectVisitor) VisitUint(uint64) error         { return r.reject("uint") }
func (r rejectVisitor) VisitUint128(Uint128) error     { return r.reject("uint128") }
func (r rejectVisitor) VisitFloat(float64, int) error  { return r.reject("floating-point") }
func (r rejectVisitor) VisitBigFloat(*big.Float) error { return r.reject("floating-point") }
func (r rejectVisitor) VisitBytes([]byte) error        { return r.reject("c_string") }
func (r rejectVisitor) VisitString(string) error       { return r.reject("string") }
func (r rejectVisitor) VisitPointer(uintptr) error     { return r.reject("pointer") }
func (r rejectVisitor) VisitHandle(Formattable) error  { return r.reject("handle") }

// WriteAligned emits s padded to spec.Width display columns with the spec's
// fill character. def is the alignment used when the spec names none.
func (c *Context) WriteAligned(s string, spec Spec, def Align) {
	pad := spec.Width - runewidth.StringWidth(s)
	if pad <= 0 {
		c.out.emit(s)
		return
	}
	align := spec.Align
	if align == AlignDefault {
		align = def
	}
	switch align {
	case AlignRight:
		c.fill(spec.Fill, pad)
		c.out.emit(s)
	case AlignCenter:
		left := pad / 2
		c.fill(spec.Fill, left)
		c.out.emit(s)
		c.fill(spec.Fill, pad-left)
	default:
		c.out.emit(s)
		c.fill(spec.Fill, pad)
	}
}

// writeNumber emits prefix (sign and base prefix) and digits. Zero padding
// sits between the two and only applies when no alignment was requested.
func (c *Context) writeNumber(prefix, digits string, spec Spec) {
	if spec.Zero && spec.Align == AlignDefault {
		c.out.emit(prefix)
		c.fill('0', spec.Width-len(prefix)-runewidth.StringWidth(digits))
		c.out.emit(digits)
		return
	}
	c.WriteAligned(prefix+digits, spec, AlignRight)
}

// fillChunk bounds the scratch string used for padding; wide fields are
// emitted in several pieces.
const fillChunk = 64

func (c *Context) fill(r rune, n int) {
	if n <= 0 {
		return
	}
	if r == 0 {
		r = ' '
	}
	unit := string(r)
	if utf8.RuneLen(r) < 0 {
		unit = " "
	}
	chunk := strings.Repeat(unit, min(n, fillChunk))
	for n > 0 {
		k := min(n, fillChunk)
		c.out.emit(chunk[:k*len(unit)])
		n -= k
	}
}
