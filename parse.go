package stdfmt

import (
	"strings"
)

// maxArgID bounds argument ids so that digit scanning cannot overflow.
const maxArgID = 1 << 20

type indexing uint8

const (
	indexingUnset indexing = iota
	indexingAuto
	indexingManual
)

// argTypes is what the parser knows about the arguments: their count and,
// when known, their tags. Both the real argument store and the static
// validator's type list satisfy it.
type argTypes interface {
	Len() int
	tagAt(i int) (tag Tag, known bool)
}

// ParseContext is the cursor over a format string shared by the replacement
// field parser and the per-type spec parsers.
type ParseContext struct {
	format string
	pos    int
	args   argTypes
	mode   indexing
	next   int
}

func newParseContext(format string, args argTypes) *ParseContext {
	return &ParseContext{format: format, args: args}
}

// Remaining returns the unconsumed part of the format string.
func (pc *ParseContext) Remaining() string { return pc.format[pc.pos:] }

// Pos returns the cursor's byte offset.
func (pc *ParseContext) Pos() int { return pc.pos }

// Advance moves the cursor forward by n bytes.
func (pc *ParseContext) Advance(n int) {
	pc.pos = min(pc.pos+n, len(pc.format))
}

// NumArgs returns the number of arguments of the call being parsed.
func (pc *ParseContext) NumArgs() int { return pc.args.Len() }

// Errorf builds a [*FormatError] positioned at the cursor.
func (pc *ParseContext) Errorf(kind error, format string, args ...any) error {
	return errorf(kind, pc.pos, format, args...)
}

func (pc *ParseContext) peek() (byte, bool) {
	if pc.pos >= len(pc.format) {
		return 0, false
	}
	return pc.format[pc.pos], true
}

// NextArgID returns the next automatic argument id.
func (pc *ParseContext) NextArgID() (int, error) {
	if pc.mode == indexingManual {
		return 0, pc.Errorf(ErrSyntax, "cannot switch from manual to automatic argument indexing")
	}
	pc.mode = indexingAuto
	id := pc.next
	pc.next++
	if id >= pc.args.Len() {
		return 0, pc.Errorf(ErrIndex, "argument %d requested but only %d given", id, pc.args.Len())
	}
	return id, nil
}

// CheckArgID validates a manual argument id.
func (pc *ParseContext) CheckArgID(id int) error {
	if pc.mode == indexingAuto {
		return pc.Errorf(ErrSyntax, "cannot switch from automatic to manual argument indexing")
	}
	pc.mode = indexingManual
	if id >= pc.args.Len() {
		return pc.Errorf(ErrIndex, "argument %d requested but only %d given", id, pc.args.Len())
	}
	return nil
}

// CheckDynamicSpec validates that argument id can supply a width or a
// precision. Unknown argument types pass.
func (pc *ParseContext) CheckDynamicSpec(id int) error {
	tag, known := pc.args.tagAt(id)
	if known && !tag.IsInteger() {
		return pc.Errorf(ErrType, "width or precision argument %d must be an integer, not %s", id, tag)
	}
	return nil
}

// parseArgID reads an optional decimal argument id at the cursor. An absent
// id selects automatic indexing.
func (pc *ParseContext) parseArgID() (int, error) {
	c, ok := pc.peek()
	if !ok {
		return 0, pc.Errorf(ErrSyntax, "unterminated replacement field")
	}
	if c == '}' || c == ':' {
		return pc.NextArgID()
	}
	if !isDigit(c) {
		return 0, pc.Errorf(ErrSyntax, "invalid argument index %q", c)
	}
	start := pc.pos
	id := 0
	if c == '0' {
		pc.pos++
	} else {
		for pc.pos < len(pc.format) && isDigit(pc.format[pc.pos]) {
			id = id*10 + int(pc.format[pc.pos]-'0')
			if id > maxArgID {
				return 0, errorf(ErrSyntax, start, "argument index is too large")
			}
			pc.pos++
		}
	}
	if err := pc.CheckArgID(id); err != nil {
		return 0, err
	}
	return id, nil
}

// fieldHandler receives the events of one traversal. The renderer and the
// static validator are the two implementations.
type fieldHandler interface {
	literal(s string)
	parseField(pc *ParseContext, id int) error
	formatField() error
}

// walk is the single traversal over a format string.
func walk(format string, args argTypes, h fieldHandler) error {
	pc := newParseContext(format, args)
	for pc.pos < len(format) {
		i := strings.IndexAny(format[pc.pos:], "{}")
		if i < 0 {
			h.literal(format[pc.pos:])
			return nil
		}
		if i > 0 {
			h.literal(format[pc.pos : pc.pos+i])
			pc.pos += i
		}
		if format[pc.pos] == '}' {
			if pc.pos+1 < len(format) && format[pc.pos+1] == '}' {
				h.literal("}")
				pc.pos += 2
				continue
			}
			return pc.Errorf(ErrSyntax, "unmatched '}' in format string")
		}
		pc.pos++
		if c, ok := pc.peek(); ok && c == '{' {
			h.literal("{")
			pc.pos++
			continue
		}
		if err := replacementField(pc, h); err != nil {
			return err
		}
	}
	return nil
}

func replacementField(pc *ParseContext, h fieldHandler) error {
	id, err := pc.parseArgID()
	if err != nil {
		return err
	}
	c, ok := pc.peek()
	switch {
	case !ok:
		return pc.Errorf(ErrSyntax, "unterminated replacement field")
	case c == ':':
		pc.pos++
	case c != '}':
		return pc.Errorf(ErrSyntax, "expected ':' or '}' after argument index, found %q", c)
	}
	if err := h.parseField(pc, id); err != nil {
		return err
	}
	if c, ok := pc.peek(); !ok || c != '}' {
		return pc.Errorf(ErrSyntax, "replacement field misses a terminating '}'")
	}
	pc.pos++
	return h.formatField()
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
