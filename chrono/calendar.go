package chrono

import (
	"math/big"
	"time"

	"github.com/bjaus/stdfmt"
)

// Day is a day of a month. Values outside 1..31 can be held and formatted
// but are not Ok.
type Day uint8

// Ok reports whether d is in 1..31.
func (d Day) Ok() bool { return d >= 1 && d <= 31 }

// Formatter implements [stdfmt.Formattable]. The default rendering is %d.
func (d Day) Formatter() stdfmt.Formatter {
	return &formatter{kind: kindDay, state: func() (*state, error) {
		st := newState()
		st.tm.Day = int(d)
		st.valid = d.Ok()
		return st, nil
	}}
}

// Month is a month of a year, January = 1.
type Month uint8

const (
	January Month = iota + 1
	February
	March
	April
	May
	June
	July
	August
	September
	October
	November
	December
)

// Ok reports whether m is in 1..12.
func (m Month) Ok() bool { return m >= 1 && m <= 12 }

// Formatter implements [stdfmt.Formattable]. The default rendering is %b.
func (m Month) Formatter() stdfmt.Formatter {
	return &formatter{kind: kindMonth, state: func() (*state, error) {
		st := newState()
		st.tm.Month = int(m)
		st.monthOK = m.Ok()
		st.valid = m.Ok()
		return st, nil
	}}
}

// Year is a proleptic Gregorian year. Ok years lie in -32767..32767.
type Year int32

const (
	MinYear Year = -32767
	MaxYear Year = 32767
)

// Ok reports whether y is in MinYear..MaxYear.
func (y Year) Ok() bool { return y >= MinYear && y <= MaxYear }

// IsLeap reports whether y is a Gregorian leap year.
func (y Year) IsLeap() bool { return isLeap(int64(y)) }

// Formatter implements [stdfmt.Formattable]. The default rendering is %Y.
func (y Year) Formatter() stdfmt.Formatter {
	return &formatter{kind: kindYear, state: func() (*state, error) {
		st := newState()
		st.tm.Year = int(y)
		st.valid = y.Ok()
		return st, nil
	}}
}

// Weekday is a day of the week, Sunday = 0. Values above 6 can be held but
// are not Ok.
type Weekday uint8

const (
	Sunday Weekday = iota
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

// NewWeekday returns the weekday encoded by n, accepting both 0 and 7 for
// Sunday.
func NewWeekday(n uint) Weekday {
	if n == 7 {
		return Sunday
	}
	return Weekday(n)
}

// Ok reports whether w is in 0..6.
func (w Weekday) Ok() bool { return w <= Saturday }

// Formatter implements [stdfmt.Formattable]. The default rendering is %a.
func (w Weekday) Formatter() stdfmt.Formatter {
	return &formatter{kind: kindWeekday, state: func() (*state, error) {
		st := newState()
		st.tm.Weekday = int(w)
		st.weekdayOK = w.Ok()
		st.valid = w.Ok()
		return st, nil
	}}
}

// YearMonthDay is a civil date in the proleptic Gregorian calendar.
type YearMonthDay struct {
	Year  Year
	Month Month
	Day   Day
}

// Date returns the civil date y-m-d.
func Date(y Year, m Month, d Day) YearMonthDay {
	return YearMonthDay{Year: y, Month: m, Day: d}
}

// Ok reports whether all three fields are valid and the day exists in that
// month.
func (d YearMonthDay) Ok() bool {
	if !d.Year.Ok() || !d.Month.Ok() || d.Day < 1 {
		return false
	}
	return int(d.Day) <= daysInMonth(int64(d.Year), int(d.Month))
}

// Formatter implements [stdfmt.Formattable]. The default rendering is %F.
func (d YearMonthDay) Formatter() stdfmt.Formatter {
	return &formatter{kind: kindDate, state: func() (*state, error) {
		st := newState()
		st.tm.Year, st.tm.Month, st.tm.Day = int(d.Year), int(d.Month), int(d.Day)
		ok := d.Ok()
		st.valid, st.dateOK, st.weekdayOK = ok, ok, ok
		st.monthOK = d.Month.Ok()
		if ok {
			days := daysFromCivil(int64(d.Year), int(d.Month), int(d.Day))
			st.tm.Weekday = weekdayFromDays(days)
			st.tm.YearDay = int(days - daysFromCivil(int64(d.Year), 1, 1))
		}
		return st, nil
	}}
}

// SysTime is a point in time measured from the Unix epoch, in UTC.
type SysTime[R Rep] struct {
	Since Duration[R]
}

// FromTime converts t to nanosecond ticks since the epoch. Times outside the
// years 1678..2261 do not fit.
func FromTime(t time.Time) SysTime[int64] {
	return SysTime[int64]{Since: Duration[int64]{Count: t.UnixNano(), Period: Nano}}
}

// Formatter implements [stdfmt.Formattable]. The default rendering is
// %F %T, or %F for ticks of a day or longer.
func (t SysTime[R]) Formatter() stdfmt.Formatter {
	return &formatter{kind: kindTimePoint, floating: isFloat[R](), state: t.state}
}

func (t SysTime[R]) state() (*state, error) {
	st := newState()
	st.period = t.Since.Period
	st.floating = isFloat[R]()
	secs, ok := t.Since.seconds()
	if !ok {
		return nil, valueError("time point is not finite")
	}
	st.finite = true
	whole, frac := splitSeconds(secs)
	st.frac = frac

	days, rem := new(big.Int), new(big.Int)
	days.DivMod(whole, big.NewInt(86400), rem)
	if !days.IsInt64() || abs64(days.Int64()) > maxCivilDays {
		return nil, valueError("time point is outside the representable calendar range")
	}
	z := days.Int64()
	y, m, d := civilFromDays(z)
	s := int(rem.Int64())
	st.tm = Tm{
		Year:    int(y),
		Month:   m,
		Day:     d,
		Hour:    s / 3600,
		Min:     s / 60 % 60,
		Sec:     s % 60,
		Weekday: weekdayFromDays(z),
		YearDay: int(z - daysFromCivil(y, 1, 1)),
		Zone:    "UTC",
	}
	r := t.Since.Period.Reduced()
	st.coarse = r.Den == 1 && r.Num%86400 == 0
	return st, nil
}

// maxCivilDays keeps the civil conversion well inside int64 arithmetic.
const maxCivilDays = 1 << 40

func isLeap(y int64) bool { return y%4 == 0 && (y%100 != 0 || y%400 == 0) }

func daysInMonth(y int64, m int) int {
	switch m {
	case 2:
		if isLeap(y) {
			return 29
		}
		return 28
	case 4, 6, 9, 11:
		return 30
	}
	return 31
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorMod(a, b int64) int64 { return a - floorDiv(a, b)*b }

// daysFromCivil returns the number of days from 1970-01-01 to y-m-d.
func daysFromCivil(y int64, m, d int) int64 {
	if m <= 2 {
		y--
	}
	era := floorDiv(y, 400)
	yoe := y - era*400
	mp := int64((m + 9) % 12)
	doy := (153*mp+2)/5 + int64(d) - 1
	doe := yoe*365 + yoe/4 - yoe/100 + doy
	return era*146097 + doe - 719468
}

// civilFromDays is the inverse of daysFromCivil.
func civilFromDays(z int64) (y int64, m, d int) {
	z += 719468
	era := floorDiv(z, 146097)
	doe := z - era*146097
	yoe := (doe - doe/1460 + doe/36524 - doe/146096) / 365
	doy := doe - (365*yoe + yoe/4 - yoe/100)
	mp := (5*doy + 2) / 153
	d = int(doy - (153*mp+2)/5 + 1)
	if mp < 10 {
		m = int(mp + 3)
	} else {
		m = int(mp - 9)
	}
	y = yoe + era*400
	if m <= 2 {
		y++
	}
	return y, m, d
}

func weekdayFromDays(z int64) int { return int(floorMod(z+4, 7)) }
