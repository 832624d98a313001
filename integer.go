package stdfmt

import (
	"math/big"
	"strconv"
	"strings"
	"unicode/utf8"
)

// writeInteger renders a magnitude and its sign. Magnitudes wider than 64
// bits arrive in wide and leave mag unused.
func (r *renderer) writeInteger(neg bool, mag uint64, wide *big.Int) error {
	spec := r.spec
	if spec.Type == 'c' {
		if neg || (wide != nil && !wide.IsInt64()) {
			return errorf(ErrValue, -1, "integral value is outside the range of a character")
		}
		if wide != nil {
			mag = wide.Uint64()
		}
		if mag > utf8.MaxRune {
			return errorf(ErrValue, -1, "integral value %d is outside the range of a character", mag)
		}
		return r.writeChar(rune(mag))
	}

	base, prefix := 10, ""
	switch spec.Type {
	case 'b':
		base, prefix = 2, "0b"
	case 'B':
		base, prefix = 2, "0B"
	case 'o':
		base, prefix = 8, "0"
	case 'x':
		base, prefix = 16, "0x"
	case 'X':
		base, prefix = 16, "0X"
	}
	var digits string
	if wide != nil {
		digits = wide.Text(base)
	} else {
		digits = strconv.FormatUint(mag, base)
	}
	if spec.Type == 'X' {
		digits = strings.ToUpper(digits)
	}
	if !spec.Alt || (base == 8 && digits == "0") {
		prefix = ""
	}
	if spec.Localized {
		digits = r.locale().groupDigits(digits)
	}
	r.ctx.writeNumber(signOf(neg, spec.Sign)+prefix, digits, spec)
	return nil
}

func signOf(neg bool, sign Sign) string {
	switch {
	case neg:
		return "-"
	case sign == SignPlus:
		return "+"
	case sign == SignSpace:
		return " "
	}
	return ""
}

func (r *renderer) writeChar(v rune) error {
	if !utf8.ValidRune(v) {
		return errorf(ErrValue, -1, "%#x is not a valid Unicode code point", v)
	}
	r.ctx.WriteAligned(string(v), r.spec, AlignLeft)
	return nil
}
