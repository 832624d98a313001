package stdfmt

import (
	"fmt"
	"math"
	"math/big"
	"reflect"
	"unsafe"
)

// Tag identifies the concrete kind of value an argument slot holds.
type Tag uint8

const (
	TagNone Tag = iota // no such argument
	TagBool
	TagChar
	TagInt    // int8, int16, int32
	TagInt64  // int, int64
	TagInt128 // Int128
	TagUint   // uint8, uint16, uint32
	TagUint64 // uint, uint64
	TagUint128
	TagFloat32
	TagFloat64
	TagFloat80 // *big.Float
	TagCString // []byte, read up to the first NUL
	TagStringView
	TagPointer
	TagHandle // Formattable
)

var tagNames = [...]string{
	TagNone:       "none",
	TagBool:       "bool",
	TagChar:       "char",
	TagInt:        "int",
	TagInt64:      "int64",
	TagInt128:     "int128",
	TagUint:       "uint",
	TagUint64:     "uint64",
	TagUint128:    "uint128",
	TagFloat32:    "float32",
	TagFloat64:    "float64",
	TagFloat80:    "float80",
	TagCString:    "c_string",
	TagStringView: "string_view",
	TagPointer:    "pointer",
	TagHandle:     "handle",
}

// String returns the tag name.
func (t Tag) String() string {
	if int(t) < len(tagNames) {
		return tagNames[t]
	}
	return fmt.Sprintf("Tag(%d)", uint8(t))
}

// IsInteger reports whether t is one of the integer tags.
func (t Tag) IsInteger() bool { return t >= TagInt && t <= TagUint128 }

// IsFloat reports whether t is one of the floating-point tags.
func (t Tag) IsFloat() bool { return t >= TagFloat32 && t <= TagFloat80 }

// IsString reports whether t holds text.
func (t Tag) IsString() bool { return t == TagCString || t == TagStringView }

// Char marks a rune argument as a character. Plain rune values are int32 and
// format as integers.
type Char rune

// Int128 is a signed 128-bit integer in two's complement.
type Int128 struct {
	Hi int64
	Lo uint64
}

// Int128From sign-extends v.
func Int128From(v int64) Int128 {
	if v < 0 {
		return Int128{Hi: -1, Lo: uint64(v)}
	}
	return Int128{Lo: uint64(v)}
}

// Big returns x as a big.Int.
func (x Int128) Big() *big.Int {
	b := new(big.Int).SetInt64(x.Hi)
	b.Lsh(b, 64)
	return b.Add(b, new(big.Int).SetUint64(x.Lo))
}

// Uint128 is an unsigned 128-bit integer.
type Uint128 struct {
	Hi uint64
	Lo uint64
}

// Big returns x as a big.Int.
func (x Uint128) Big() *big.Int {
	b := new(big.Int).SetUint64(x.Hi)
	b.Lsh(b, 64)
	return b.Add(b, new(big.Int).SetUint64(x.Lo))
}

// Formattable is implemented by types that take part in formatting through
// their own formatter. Formatter must not depend on the receiver's value for
// parsing, because static validation calls it on the zero value.
type Formattable interface {
	Formatter() Formatter
}

// Formatter parses one field's format-spec and renders the value it was
// created from.
type Formatter interface {
	// Parse consumes the formatter's portion of the format-spec, stopping at
	// the closing '}' of the replacement field.
	Parse(pc *ParseContext) error
	// Format writes the value through ctx.
	Format(ctx *Context) error
}

// Arg is one type-erased argument. Scalars are stored inline.
type Arg struct {
	tag  Tag
	bits uint64
	hi   uint64
	str  string
	ref  any
}

// Tag returns the argument's tag.
func (a Arg) Tag() Tag { return a.tag }

// MakeArg stores v behind its tag. Unsupported types fail with ErrType.
func MakeArg(v any) (Arg, error) {
	switch x := v.(type) {
	case Arg:
		return x, nil
	case bool:
		var b uint64
		if x {
			b = 1
		}
		return Arg{tag: TagBool, bits: b}, nil
	case Char:
		return Arg{tag: TagChar, bits: uint64(x)}, nil
	case int8:
		return Arg{tag: TagInt, bits: uint64(int64(x))}, nil
	case int16:
		return Arg{tag: TagInt, bits: uint64(int64(x))}, nil
	case int32:
		return Arg{tag: TagInt, bits: uint64(int64(x))}, nil
	case int:
		return Arg{tag: TagInt64, bits: uint64(int64(x))}, nil
	case int64:
		return Arg{tag: TagInt64, bits: uint64(x)}, nil
	case Int128:
		return Arg{tag: TagInt128, bits: x.Lo, hi: uint64(x.Hi)}, nil
	case uint8:
		return Arg{tag: TagUint, bits: uint64(x)}, nil
	case uint16:
		return Arg{tag: TagUint, bits: uint64(x)}, nil
	case uint32:
		return Arg{tag: TagUint, bits: uint64(x)}, nil
	case uint:
		return Arg{tag: TagUint64, bits: uint64(x)}, nil
	case uint64:
		return Arg{tag: TagUint64, bits: x}, nil
	case Uint128:
		return Arg{tag: TagUint128, bits: x.Lo, hi: x.Hi}, nil
	case float32:
		return Arg{tag: TagFloat32, bits: uint64(math.Float32bits(x))}, nil
	case float64:
		return Arg{tag: TagFloat64, bits: math.Float64bits(x)}, nil
	case *big.Float:
		if x == nil {
			x = new(big.Float)
		}
		return Arg{tag: TagFloat80, ref: x}, nil
	case []byte:
		return Arg{tag: TagCString, ref: x}, nil
	case string:
		return Arg{tag: TagStringView, str: x}, nil
	case uintptr:
		return Arg{tag: TagPointer, bits: uint64(x)}, nil
	case unsafe.Pointer:
		return Arg{tag: TagPointer, bits: uint64(uintptr(x))}, nil
	case Formattable:
		if isNilPointer(x) {
			return Arg{}, errorf(ErrValue, -1, "nil %T cannot be formatted", v)
		}
		return Arg{tag: TagHandle, ref: x}, nil
	case fmt.Stringer:
		if isNilPointer(x) {
			return Arg{}, errorf(ErrValue, -1, "nil %T cannot be formatted", v)
		}
		return Arg{tag: TagStringView, str: x.String()}, nil
	case error:
		if isNilPointer(x) {
			return Arg{}, errorf(ErrValue, -1, "nil %T cannot be formatted", v)
		}
		return Arg{tag: TagStringView, str: x.Error()}, nil
	default:
		return Arg{}, fmt.Errorf("%w: type %T is not formattable", ErrType, v)
	}
}

// isNilPointer reports whether v holds a nil pointer. Methods reached through
// it may dereference the pointer.
func isNilPointer(v any) bool {
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}

// Args is the argument store of one formatting call. It is never mutated
// after construction.
type Args []Arg

// NewArgs builds the store from the caller's values.
func NewArgs(values ...any) (Args, error) {
	args := make(Args, len(values))
	for i, v := range values {
		a, err := MakeArg(v)
		if err != nil {
			return nil, &FormatError{Kind: ErrType, Pos: -1, Msg: fmt.Sprintf("argument %d: type %T is not formattable", i, v)}
		}
		args[i] = a
	}
	return args, nil
}

// Len returns the number of arguments.
func (a Args) Len() int { return len(a) }

// Tag returns the tag at index i, or TagNone when i is out of range.
func (a Args) Tag(i int) Tag {
	if i < 0 || i >= len(a) {
		return TagNone
	}
	return a[i].tag
}

func (a Args) tagAt(i int) (Tag, bool) { return a.Tag(i), true }

// Visit calls the visitor method matching the tag at index i. The index must
// be valid; the parser bounds-checks every id before a field is rendered.
func (a Args) Visit(i int, v Visitor) error { return a[i].Visit(v) }

// Visitor receives an argument's concrete value.
type Visitor interface {
	VisitBool(v bool) error
	VisitChar(v rune) error
	VisitInt(v int64) error
	VisitInt128(v Int128) error
	VisitUint(v uint64) error
	VisitUint128(v Uint128) error
	VisitFloat(v float64, bitSize int) error
	VisitBigFloat(v *big.Float) error
	VisitBytes(v []byte) error
	VisitString(v string) error
	VisitPointer(v uintptr) error
	VisitHandle(v Formattable) error
}

// Visit is the single place the tag switch happens.
func (a Arg) Visit(v Visitor) error {
	switch a.tag {
	case TagBool:
		return v.VisitBool(a.bits != 0)
	case TagChar:
		return v.VisitChar(rune(a.bits))
	case TagInt, TagInt64:
		return v.VisitInt(int64(a.bits))
	case TagInt128:
		return v.VisitInt128(Int128{Hi: int64(a.hi), Lo: a.bits})
	case TagUint, TagUint64:
		return v.VisitUint(a.bits)
	case TagUint128:
		return v.VisitUint128(Uint128{Hi: a.hi, Lo: a.bits})
	case TagFloat32:
		return v.VisitFloat(float64(math.Float32frombits(uint32(a.bits))), 32)
	case TagFloat64:
		return v.VisitFloat(math.Float64frombits(a.bits), 64)
	case TagFloat80:
		return v.VisitBigFloat(a.ref.(*big.Float))
	case TagCString:
		return v.VisitBytes(a.ref.([]byte))
	case TagStringView:
		return v.VisitString(a.str)
	case TagPointer:
		return v.VisitPointer(uintptr(a.bits))
	case TagHandle:
		return v.VisitHandle(a.ref.(Formattable))
	default:
		panic(fmt.Sprintf("stdfmt: visiting argument with tag %s", a.tag))
	}
}
