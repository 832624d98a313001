package stdfmt

import (
	"io"
)

// Printer formats with a fixed locale. A Printer is immutable and may be
// used from several goroutines at once.
type Printer struct {
	loc *Locale
}

// NewPrinter returns a Printer for loc. A nil loc selects [Classic].
func NewPrinter(loc *Locale) *Printer {
	if loc == nil {
		loc = Classic
	}
	return &Printer{loc: loc}
}

// Locale returns the printer's locale.
func (p *Printer) Locale() *Locale { return p.loc }

// Format renders args according to format and returns the result.
func (p *Printer) Format(format string, args ...any) (string, error) {
	b, err := p.Append(nil, format, args...)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Append renders args according to format and appends the result to dst.
func (p *Printer) Append(dst []byte, format string, args ...any) ([]byte, error) {
	a, err := NewArgs(args...)
	if err != nil {
		return dst, err
	}
	s := &appendSink{buf: dst}
	if err := p.vformat(s, format, a); err != nil {
		return s.buf, err
	}
	return s.buf, nil
}

// FormatTo renders args according to format into w and returns the number of
// bytes written.
func (p *Printer) FormatTo(w io.Writer, format string, args ...any) (int, error) {
	a, err := NewArgs(args...)
	if err != nil {
		return 0, err
	}
	s := &writerSink{w: w}
	if err := p.vformat(s, format, a); err != nil {
		return s.n, err
	}
	return s.n, s.err
}

// FormatToN renders at most len(dst) bytes into dst and reports the size of
// the complete output. Truncation is not an error.
func (p *Printer) FormatToN(dst []byte, format string, args ...any) (n, size int, err error) {
	a, err := NewArgs(args...)
	if err != nil {
		return 0, 0, err
	}
	s := &boundedSink{dst: dst}
	err = p.vformat(s, format, a)
	return s.n, s.size, err
}

// FormattedSize returns the length of the rendered output in bytes.
func (p *Printer) FormattedSize(format string, args ...any) (int, error) {
	a, err := NewArgs(args...)
	if err != nil {
		return 0, err
	}
	s := &countSink{}
	if err := p.vformat(s, format, a); err != nil {
		return 0, err
	}
	return s.size, nil
}

// vformat is the one formatting algorithm behind every sink.
func (p *Printer) vformat(out sink, format string, args Args) error {
	return walk(format, args, &renderHandler{ctx: &Context{out: out, loc: p.loc, args: args}})
}

// renderHandler parses each field with its argument's formatter and renders
// it once the field is known to be terminated.
type renderHandler struct {
	ctx     *Context
	current Formatter
}

func (h *renderHandler) literal(s string) { h.ctx.out.emit(s) }

func (h *renderHandler) parseField(pc *ParseContext, id int) error {
	h.current = formatterFor(h.ctx.args[id])
	return h.current.Parse(pc)
}

func (h *renderHandler) formatField() error {
	return h.current.Format(h.ctx)
}
