package stdfmt

import (
	"fmt"
	"io"
	"reflect"
)

// ArgType describes an argument by its type alone, which is all the static
// validator needs.
type ArgType struct {
	tag     Tag
	name    string
	unknown bool
	err     error
	handle  func() Formatter
}

// Unknown stands for an argument whose type is not known. It takes part in
// index checks only.
var Unknown = ArgType{unknown: true, name: "unknown"}

// TypeOf describes T. For handle types the zero value's formatter supplies
// the parse step; pointer types use a pointer to a zero element instead.
func TypeOf[T any]() ArgType {
	var v any = *new(T)
	if rt := reflect.TypeFor[T](); rt.Kind() == reflect.Pointer {
		v = reflect.New(rt.Elem()).Interface()
	}
	t := TypeOfValue(v)
	t.name = fmt.Sprintf("%T", v)
	if t.name == "<nil>" {
		return Unknown
	}
	return t
}

// TypeOfValue describes the dynamic type of v.
func TypeOfValue(v any) ArgType {
	a, err := MakeArg(v)
	if err != nil {
		return ArgType{tag: TagNone, name: fmt.Sprintf("%T", v), err: err}
	}
	t := ArgType{tag: a.tag, name: fmt.Sprintf("%T", v)}
	if a.tag == TagHandle {
		h := a.ref.(Formattable)
		t.handle = h.Formatter
	}
	return t
}

// TypeOfTag describes a built-in argument by tag. It cannot describe handles.
func TypeOfTag(tag Tag) ArgType {
	return ArgType{tag: tag, name: tag.String()}
}

// Tag returns the described tag, TagNone for unknown types.
func (t ArgType) Tag() Tag { return t.tag }

// String returns the Go type name the description was built from.
func (t ArgType) String() string { return t.name }

func (t ArgType) formatter() Formatter {
	if t.handle != nil {
		return t.handle()
	}
	return &stdFormatter{arg: Arg{tag: t.tag}}
}

type typeList []ArgType

func (l typeList) Len() int { return len(l) }

func (l typeList) tagAt(i int) (Tag, bool) {
	if i < 0 || i >= len(l) {
		return TagNone, true
	}
	return l[i].tag, !l[i].unknown
}

// Check validates format against argument types without rendering anything.
// It runs the same traversal and the same spec parsers as formatting does,
// so a format string that passes Check fails at render time only on values:
// negative dynamic widths or calendrical values out of range.
func Check(format string, types ...ArgType) error {
	for i, t := range types {
		if t.err != nil {
			return &FormatError{Kind: ErrType, Pos: -1, Msg: fmt.Sprintf("argument %d: type %s is not formattable", i, t.name)}
		}
	}
	return walk(format, typeList(types), &checkHandler{types: types})
}

// checkHandler is the validator's side of the traversal: parse only, no
// output.
type checkHandler struct {
	types []ArgType
}

func (h *checkHandler) literal(string) {}

func (h *checkHandler) parseField(pc *ParseContext, id int) error {
	t := h.types[id]
	if t.unknown {
		return skipSpec(pc)
	}
	return t.formatter().Parse(pc)
}

func (h *checkHandler) formatField() error { return nil }

// skipSpec consumes a format-spec of unknown type, keeping nested argument
// references subject to the indexing rules.
func skipSpec(pc *ParseContext) error {
	for {
		c, ok := pc.peek()
		if !ok || c == '}' {
			return nil
		}
		if c != '{' {
			pc.pos++
			continue
		}
		pc.pos++
		id, err := pc.parseArgID()
		if err != nil {
			return err
		}
		if c, ok := pc.peek(); !ok || c != '}' {
			return pc.Errorf(ErrSyntax, "nested argument index is not terminated by '}'")
		}
		pc.pos++
		if err := pc.CheckDynamicSpec(id); err != nil {
			return err
		}
	}
}

// Template is a format string validated once against argument types.
type Template struct {
	format string
	types  []ArgType
}

// Compile validates format against types and returns the template.
func Compile(format string, types ...ArgType) (*Template, error) {
	if err := Check(format, types...); err != nil {
		return nil, err
	}
	return &Template{format: format, types: append([]ArgType(nil), types...)}, nil
}

// MustCompile is like [Compile] but panics on error. Use it for package-level
// templates so a malformed format string stops the program at start-up.
func MustCompile(format string, types ...ArgType) *Template {
	t, err := Compile(format, types...)
	if err != nil {
		panic(fmt.Sprintf("stdfmt: Compile(%q): %v", format, err))
	}
	return t
}

// String returns the template's format string.
func (t *Template) String() string { return t.format }

// args checks that the call matches the compiled argument types.
func (t *Template) args(values []any) (Args, error) {
	a, err := NewArgs(values...)
	if err != nil {
		return nil, err
	}
	if len(a) != len(t.types) {
		return nil, &FormatError{Kind: ErrIndex, Pos: -1, Msg: fmt.Sprintf("template compiled for %d arguments, got %d", len(t.types), len(a))}
	}
	for i, want := range t.types {
		if !want.unknown && a[i].tag != want.tag {
			return nil, &FormatError{Kind: ErrType, Pos: -1, Msg: fmt.Sprintf("argument %d: template compiled for %s, got %s", i, want.tag, a[i].tag)}
		}
	}
	return a, nil
}

// Append renders the template with the classic locale, appending to dst.
func (t *Template) Append(dst []byte, args ...any) ([]byte, error) {
	return t.AppendWith(classic, dst, args...)
}

// AppendWith is like Append with the locale of p.
func (t *Template) AppendWith(p *Printer, dst []byte, args ...any) ([]byte, error) {
	a, err := t.args(args)
	if err != nil {
		return dst, err
	}
	s := &appendSink{buf: dst}
	err = p.vformat(s, t.format, a)
	return s.buf, err
}

// Format renders the template with the classic locale.
func (t *Template) Format(args ...any) (string, error) {
	return t.FormatWith(classic, args...)
}

// FormatWith is like Format with the locale of p.
func (t *Template) FormatWith(p *Printer, args ...any) (string, error) {
	b, err := t.AppendWith(p, nil, args...)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// FormatTo renders the template into w with the classic locale.
func (t *Template) FormatTo(w io.Writer, args ...any) (int, error) {
	return t.FormatToWith(classic, w, args...)
}

// FormatToWith is like FormatTo with the locale of p.
func (t *Template) FormatToWith(p *Printer, w io.Writer, args ...any) (int, error) {
	a, err := t.args(args)
	if err != nil {
		return 0, err
	}
	s := &writerSink{w: w}
	if err := p.vformat(s, t.format, a); err != nil {
		return s.n, err
	}
	return s.n, s.err
}

// FormatToN renders at most len(dst) bytes of the template into dst with the
// classic locale.
func (t *Template) FormatToN(dst []byte, args ...any) (n, size int, err error) {
	return t.FormatToNWith(classic, dst, args...)
}

// FormatToNWith is like FormatToN with the locale of p.
func (t *Template) FormatToNWith(p *Printer, dst []byte, args ...any) (n, size int, err error) {
	a, err := t.args(args)
	if err != nil {
		return 0, 0, err
	}
	s := &boundedSink{dst: dst}
	err = p.vformat(s, t.format, a)
	return s.n, s.size, err
}

// Size returns the length of the template rendered with the classic locale.
func (t *Template) Size(args ...any) (int, error) {
	return t.SizeWith(classic, args...)
}

// SizeWith is like Size with the locale of p.
func (t *Template) SizeWith(p *Printer, args ...any) (int, error) {
	a, err := t.args(args)
	if err != nil {
		return 0, err
	}
	s := &countSink{}
	if err := p.vformat(s, t.format, a); err != nil {
		return 0, err
	}
	return s.size, nil
}
