package stdfmt

import (
	"math"
	"math/big"
	"strconv"
	"strings"
)

// maxScratch bounds the scratch text a single numeric field may need.
const maxScratch = 1 << 24

// floatSource renders the magnitude of a floating-point value with one of
// the strconv verbs ('e', 'f', 'x') so both float64 and big.Float share the
// presentation logic.
type floatSource struct {
	neg  bool
	inf  bool
	nan  bool
	text func(verb byte, prec int) string
}

func float64Digits(v float64, bitSize int) floatSource {
	abs := math.Abs(v)
	return floatSource{
		neg: math.Signbit(v),
		inf: math.IsInf(v, 0),
		nan: math.IsNaN(v),
		text: func(verb byte, prec int) string {
			return strconv.FormatFloat(abs, verb, prec, bitSize)
		},
	}
}

func bigFloatDigits(v *big.Float) floatSource {
	abs := new(big.Float).Abs(v)
	return floatSource{
		neg: v.Signbit(),
		inf: v.IsInf(),
		text: func(verb byte, prec int) string {
			return abs.Text(verb, prec)
		},
	}
}

func (r *renderer) writeFloat(fs floatSource) error {
	spec := r.spec
	upper := spec.Type == 'A' || spec.Type == 'E' || spec.Type == 'F' || spec.Type == 'G'
	sign := signOf(fs.neg, spec.Sign)
	if fs.inf || fs.nan {
		body := "inf"
		if fs.nan {
			body = "nan"
		}
		if upper {
			body = strings.ToUpper(body)
		}
		spec.Zero = false
		r.ctx.WriteAligned(sign+body, spec, AlignRight)
		return nil
	}
	prec := spec.Precision
	if prec > maxScratch {
		return errorf(ErrResource, -1, "precision %d exceeds the scratch limit of %d", prec, maxScratch)
	}

	var body string
	switch spec.Type {
	case 0:
		if prec < 0 {
			body = shortestFloat(fs)
			if spec.Alt {
				body = withPoint(body, 'e')
			}
		} else {
			body = generalFloat(fs, prec, spec.Alt)
		}
	case 'a', 'A':
		body = hexFloat(fs, prec, spec.Alt)
	case 'e', 'E':
		if prec < 0 {
			prec = 6
		}
		body = fs.text('e', prec)
		if spec.Alt {
			body = withPoint(body, 'e')
		}
	case 'f', 'F':
		if prec < 0 {
			prec = 6
		}
		body = fs.text('f', prec)
		if spec.Alt {
			body = withPoint(body, 'e')
		}
	case 'g', 'G':
		if prec < 0 {
			prec = 6
		}
		body = generalFloat(fs, prec, spec.Alt)
	}
	if upper {
		body = strings.ToUpper(body)
	}
	if spec.Localized {
		body = localizeFloat(body, r.locale(), spec.Type == 'a' || spec.Type == 'A')
	}
	r.ctx.writeNumber(sign, body, spec)
	return nil
}

// shortestFloat picks the shorter of the round-trip fixed and scientific
// forms, preferring fixed on a tie.
func shortestFloat(fs floatSource) string {
	f := fs.text('f', -1)
	e := fs.text('e', -1)
	if len(e) < len(f) {
		return e
	}
	return f
}

// generalFloat implements the %g rules: scientific when the exponent is
// below -4 or not below the precision, fixed otherwise.
func generalFloat(fs floatSource, prec int, alt bool) string {
	if prec == 0 {
		prec = 1
	}
	e := fs.text('e', prec-1)
	x := 0
	if i := strings.IndexByte(e, 'e'); i >= 0 {
		x, _ = strconv.Atoi(e[i+1:])
	}
	s := e
	if x < prec && x >= -4 {
		s = fs.text('f', prec-1-x)
	}
	if alt {
		return withPoint(s, 'e')
	}
	return trimZeros(s)
}

// hexFloat renders the hexadecimal form without the "0x" prefix and with
// the shortest exponent.
func hexFloat(fs floatSource, prec int, alt bool) string {
	s := strings.TrimPrefix(fs.text('x', prec), "0x")
	if i := strings.IndexByte(s, 'p'); i >= 0 && i+2 < len(s) {
		exp := strings.TrimLeft(s[i+2:], "0")
		if exp == "" {
			exp = "0"
		}
		s = s[:i+2] + exp
	}
	if alt {
		s = withPoint(s, 'p')
	}
	return s
}

// withPoint makes sure the mantissa contains a decimal point.
func withPoint(s string, exp byte) string {
	if strings.IndexByte(s, '.') >= 0 {
		return s
	}
	if i := strings.IndexByte(s, exp); i >= 0 {
		return s[:i] + "." + s[i:]
	}
	return s + "."
}

func trimZeros(s string) string {
	mant, exp := s, ""
	if i := strings.IndexByte(s, 'e'); i >= 0 {
		mant, exp = s[:i], s[i:]
	}
	if strings.IndexByte(mant, '.') >= 0 {
		mant = strings.TrimRight(mant, "0")
		mant = strings.TrimSuffix(mant, ".")
	}
	return mant + exp
}

// localizeFloat swaps in the locale's decimal point and groups the integer
// digits of decimal forms.
func localizeFloat(s string, loc *Locale, hex bool) string {
	end := strings.IndexAny(s, ".eEpP")
	if end < 0 {
		end = len(s)
	}
	intPart, rest := s[:end], s[end:]
	if !hex {
		intPart = loc.groupDigits(intPart)
	}
	if strings.HasPrefix(rest, ".") {
		rest = loc.decimal + rest[1:]
	}
	return intPart + rest
}
