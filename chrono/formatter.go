package chrono

import (
	"fmt"
	"math/big"

	"github.com/bjaus/stdfmt"
)

var (
	twoDigits  = stdfmt.MustCompile("{:02}", stdfmt.TypeOf[int64]())
	fourDigits = stdfmt.MustCompile("{:04}", stdfmt.TypeOf[int64]())
	monthDay   = stdfmt.MustCompile("-{:02}-{:02}", stdfmt.TypeOf[int](), stdfmt.TypeOf[int]())
	fraction   = stdfmt.MustCompile("{:0{}}", stdfmt.TypeOf[uint64](), stdfmt.TypeOf[int]())
	floatFrac  = stdfmt.MustCompile("{:0{}.0f}", stdfmt.TypeOf[float64](), stdfmt.TypeOf[int]())
	badMonth   = stdfmt.MustCompile("{} is not a valid month", stdfmt.TypeOf[uint8]())
	badWeekday = stdfmt.MustCompile("{} is not a valid weekday", stdfmt.TypeOf[uint8]())
	wholeDays  = stdfmt.MustCompile("{}", stdfmt.TypeOf[stdfmt.Int128]())
)

// Counts are formatted per call because their type follows the duration's
// representation.
const (
	plainCount     = "{}"
	fixedCount     = "{:.{}f}"
	localizedCount = "{:L}"
	localizedFixed = "{:.{}Lf}"
)

// state is a value broken down for rendering. Validity flags default to true
// and are cleared by the value kinds they concern.
type state struct {
	tm Tm

	valid     bool
	weekdayOK bool
	monthOK   bool
	dateOK    bool

	// Durations and time points.
	finite   bool
	floating bool
	period   Ratio
	frac     *big.Rat // sub-second part, in [0, 1)
	coarse   bool     // time point with whole-day ticks

	// Durations only.
	neg      bool
	count    any      // signed count
	absCount any      // |count|
	days     *big.Int // whole days of |duration|
}

func newState() *state {
	return &state{valid: true, weekdayOK: true, monthOK: true, dateOK: true}
}

func valueError(format string, args ...any) error {
	return &stdfmt.FormatError{Kind: stdfmt.ErrValue, Pos: -1, Msg: fmt.Sprintf(format, args...)}
}

// formatter renders every value kind of the package. It is created per
// replacement field by the value's Formatter method.
type formatter struct {
	kind     kind
	floating bool
	state    func() (*state, error)

	spec  stdfmt.Spec
	specs string
	need  flags
}

func (f *formatter) Parse(pc *stdfmt.ParseContext) error {
	start := pc.Pos()
	spec, err := pc.ParseSpec(stdfmt.FieldsChrono)
	if err != nil {
		return err
	}
	if spec.HasPrecision() && (f.kind != kindDuration || !f.floating) {
		return &stdfmt.FormatError{Kind: stdfmt.ErrType, Pos: start, Msg: fmt.Sprintf("precision is only allowed for a floating-point duration, not a %s", f.kind)}
	}
	specs, need, err := parseChronoSpecs(pc, f.kind)
	if err != nil {
		return err
	}
	f.spec, f.specs, f.need = spec, specs, need
	return nil
}

func (f *formatter) Format(ctx *stdfmt.Context) error {
	spec := f.spec
	if err := ctx.ResolveSpec(&spec); err != nil {
		return err
	}
	st, err := f.state()
	if err != nil {
		return err
	}
	if err := f.validate(st); err != nil {
		return err
	}
	r := &chronoRenderer{st: st, kind: f.kind, names: &stdfmt.ClassicNames, point: ".", prec: spec.Precision}
	if spec.Localized {
		r.names = ctx.Locale().Names()
		r.point = ctx.Locale().DecimalPoint()
		r.counts = stdfmt.NewPrinter(ctx.Locale())
		r.localized = true
	}
	var b []byte
	if f.specs == "" {
		b, err = r.appendDefault(nil)
	} else {
		if st.neg {
			b = append(b, '-')
		}
		b, err = r.appendSpecs(b, f.specs)
	}
	if err != nil {
		return err
	}
	ctx.WriteAligned(string(b), spec, stdfmt.AlignLeft)
	return nil
}

// validate applies the value checks the parsed directives asked for.
func (f *formatter) validate(st *state) error {
	switch {
	case f.specs != "" && f.kind == kindDuration && !st.finite:
		return valueError("a duration that is not finite has no calendar fields")
	case f.need&needWeekdayName != 0 && !st.weekdayOK:
		return valueError("formatting a weekday name needs a valid weekday")
	case f.need&needWeekday != 0 && !st.weekdayOK:
		return valueError("formatting a weekday needs a valid weekday")
	case f.need&needDayOfYear != 0 && !st.dateOK:
		return valueError("formatting a day of year needs a valid date")
	case f.need&needWeekOfYear != 0 && !st.dateOK:
		return valueError("formatting a week of year needs a valid date")
	case f.need&needMonthName != 0 && !st.monthOK:
		return valueError("formatting a month name from an invalid month number")
	}
	return nil
}

type chronoRenderer struct {
	st    *state
	kind  kind
	names *stdfmt.Names
	point string
	prec  int

	// counts is the printer for tick counts; localized counts are grouped
	// per its locale.
	counts    *stdfmt.Printer
	localized bool
}

// appendCount writes a tick count, in fixed notation when a precision was
// given.
func (r *chronoRenderer) appendCount(b []byte, count any) ([]byte, error) {
	switch {
	case r.localized && r.prec >= 0:
		return r.counts.Append(b, localizedFixed, count, r.prec)
	case r.localized:
		return r.counts.Append(b, localizedCount, count)
	case r.prec >= 0:
		return stdfmt.Append(b, fixedCount, count, r.prec)
	}
	return stdfmt.Append(b, plainCount, count)
}

// appendDefault renders a value without chrono-specs.
func (r *chronoRenderer) appendDefault(b []byte) ([]byte, error) {
	st := r.st
	switch r.kind {
	case kindDuration:
		b, err := r.appendCount(b, st.count)
		return append(b, st.period.suffix()...), err
	case kindMonth:
		if !st.valid {
			return badMonth.Append(b, uint8(st.tm.Month))
		}
		return r.appendSpecs(b, "%b")
	case kindWeekday:
		if !st.valid {
			return badWeekday.Append(b, uint8(st.tm.Weekday))
		}
		return r.appendSpecs(b, "%a")
	case kindTimePoint:
		if st.coarse {
			return r.appendSpecs(b, "%F")
		}
		return r.appendSpecs(b, "%F %T")
	}
	var pattern, invalid string
	switch r.kind {
	case kindDay:
		pattern, invalid = "%d", " is not a valid day"
	case kindYear:
		pattern, invalid = "%Y", " is not a valid year"
	default:
		pattern, invalid = "%F", " is not a valid date"
	}
	b, err := r.appendSpecs(b, pattern)
	if err == nil && !st.valid {
		b = append(b, invalid...)
	}
	return b, err
}

// appendSpecs runs the directive state machine over validated chrono-specs.
func (r *chronoRenderer) appendSpecs(b []byte, specs string) ([]byte, error) {
	tm := &r.st.tm
	var err error
	for i := 0; i < len(specs); i++ {
		c := specs[i]
		if c != '%' {
			b = append(b, c)
			continue
		}
		i++
		var mod byte
		if specs[i] == 'E' || specs[i] == 'O' {
			mod = specs[i]
			i++
		}
		verb := specs[i]
		switch {
		case verb == 'C' && (tm.Year < 1000 || tm.Year > 9999):
			b, err = twoDigits.Append(b, floorDiv(int64(tm.Year), 100))
		case verb == 'Y' && tm.Year < 1000:
			b, err = r.appendYear(b)
		case verb == 'F' && tm.Year < 1000:
			if b, err = r.appendYear(b); err == nil {
				b, err = monthDay.Append(b, tm.Month, tm.Day)
			}
		case verb == 'j' && r.kind == kindDuration:
			b, err = wholeDays.Append(b, int128Of(r.st.days))
		case verb == 'q' && r.kind == kindDuration:
			b = append(b, r.st.period.suffix()...)
		case verb == 'Q' && r.kind == kindDuration:
			b, err = r.appendCount(b, r.st.absCount)
		case verb == 'S' || verb == 'T':
			b = AppendStrftime(b, r.names, tm, mod, verb)
			b, err = r.appendSubSeconds(b)
		default:
			b = AppendStrftime(b, r.names, tm, mod, verb)
		}
		if err != nil {
			return b, err
		}
	}
	return b, nil
}

// appendYear writes the year with an explicit sign and at least four digits.
func (r *chronoRenderer) appendYear(b []byte) ([]byte, error) {
	y := int64(r.st.tm.Year)
	if y < 0 {
		b = append(b, '-')
		y = -y
	}
	return fourDigits.Append(b, y)
}

// appendSubSeconds writes the decimal point and the fraction of a second for
// values whose ticks are shorter than a second.
func (r *chronoRenderer) appendSubSeconds(b []byte) ([]byte, error) {
	st := r.st
	if st.frac == nil {
		return b, nil
	}
	width := st.period.fractionalWidth()
	if width == 0 {
		return b, nil
	}
	b = append(b, r.point...)
	scaled := new(big.Rat).Mul(st.frac, new(big.Rat).SetInt(new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(width)), nil)))
	if st.floating {
		v, _ := scaled.Float64()
		return floatFrac.Append(b, v, width)
	}
	q := new(big.Int).Quo(scaled.Num(), scaled.Denom())
	return fraction.Append(b, q.Uint64(), width)
}

// int128Of narrows a day count that fits in 128 bits.
func int128Of(v *big.Int) stdfmt.Int128 {
	if v == nil {
		return stdfmt.Int128{}
	}
	lo := new(big.Int).And(v, new(big.Int).SetUint64(^uint64(0)))
	hi := new(big.Int).Rsh(v, 64)
	return stdfmt.Int128{Hi: hi.Int64(), Lo: lo.Uint64()}
}
