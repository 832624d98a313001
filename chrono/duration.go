package chrono

import (
	"math"
	"math/big"
	"time"
	"unsafe"

	"github.com/bjaus/stdfmt"
)

// Rep is the set of types a duration can count ticks in.
type Rep interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Duration is a tick count and the length of one tick in seconds.
type Duration[R Rep] struct {
	Count  R
	Period Ratio
}

// NewDuration returns count ticks of period.
func NewDuration[R Rep](count R, period Ratio) Duration[R] {
	return Duration[R]{Count: count, Period: period}
}

// Nanoseconds returns n nanoseconds.
func Nanoseconds(n int64) Duration[int64] { return Duration[int64]{n, Nano} }

// Microseconds returns n microseconds.
func Microseconds(n int64) Duration[int64] { return Duration[int64]{n, Micro} }

// Milliseconds returns n milliseconds.
func Milliseconds(n int64) Duration[int64] { return Duration[int64]{n, Milli} }

// Seconds returns n seconds.
func Seconds(n int64) Duration[int64] { return Duration[int64]{n, Unit} }

// Minutes returns n minutes.
func Minutes(n int64) Duration[int64] { return Duration[int64]{n, MinutePeriod} }

// Hours returns n hours.
func Hours(n int64) Duration[int64] { return Duration[int64]{n, HourPeriod} }

// Days returns n days.
func Days(n int64) Duration[int64] { return Duration[int64]{n, DayPeriod} }

// Weeks returns n weeks.
func Weeks(n int64) Duration[int64] { return Duration[int64]{n, WeekPeriod} }

// Months returns n months of 2629746 s.
func Months(n int64) Duration[int64] { return Duration[int64]{n, MonthPeriod} }

// Years returns n years of 31556952 s.
func Years(n int64) Duration[int64] { return Duration[int64]{n, YearPeriod} }

// FromStd converts a time.Duration to nanosecond ticks.
func FromStd(d time.Duration) Duration[int64] {
	return Duration[int64]{Count: int64(d), Period: Nano}
}

// Formatter implements [stdfmt.Formattable].
func (d Duration[R]) Formatter() stdfmt.Formatter {
	return &formatter{kind: kindDuration, floating: isFloat[R](), state: d.state}
}

func isFloat[R Rep]() bool { return R(1)/R(2) != 0 }

func isSigned[R Rep]() bool {
	var zero R
	return zero-1 < zero
}

// countArg returns v as a value stdfmt has a tag for.
func countArg[R Rep](v R) any {
	switch {
	case isFloat[R]():
		if unsafe.Sizeof(v) == 4 {
			return float32(v)
		}
		return float64(v)
	case isSigned[R]():
		return int64(v)
	}
	return uint64(v)
}

// absCountArg returns |v| as a value stdfmt has a tag for.
func absCountArg[R Rep](v R) any {
	switch {
	case isFloat[R]():
		if unsafe.Sizeof(v) == 4 {
			return float32(math.Abs(float64(v)))
		}
		return math.Abs(float64(v))
	case isSigned[R]() && int64(v) < 0:
		return uint64(-int64(v))
	case isSigned[R]():
		return uint64(int64(v))
	}
	return uint64(v)
}

// seconds returns the exact length of d in seconds, or false when the count
// is not finite.
func (d Duration[R]) seconds() (*big.Rat, bool) {
	var r big.Rat
	switch {
	case isFloat[R]():
		f := float64(d.Count)
		if math.IsInf(f, 0) || math.IsNaN(f) {
			return nil, false
		}
		r.SetFloat64(f)
	case isSigned[R]():
		r.SetInt64(int64(d.Count))
	default:
		r.SetFrac(new(big.Int).SetUint64(uint64(d.Count)), big.NewInt(1))
	}
	return r.Mul(&r, d.Period.rat()), true
}

func (d Duration[R]) state() (*state, error) {
	st := newState()
	st.period = d.Period
	st.floating = isFloat[R]()
	st.count = countArg(d.Count)
	st.absCount = absCountArg(d.Count)
	secs, ok := d.seconds()
	if !ok {
		return st, nil
	}
	st.finite = true
	if secs.Sign() < 0 {
		st.neg = true
		secs.Neg(secs)
	}
	whole, frac := splitSeconds(secs)
	st.frac = frac

	s := new(big.Int).Set(whole)
	var rem big.Int
	s.QuoRem(s, big.NewInt(60), &rem)
	st.tm.Sec = int(rem.Int64())
	s.QuoRem(s, big.NewInt(60), &rem)
	st.tm.Min = int(rem.Int64())
	days := new(big.Int)
	days.QuoRem(s, big.NewInt(24), &rem)
	st.tm.Hour = int(rem.Int64())
	st.days = days
	return st, nil
}

// splitSeconds returns floor(secs) and the remaining fraction in [0, 1).
func splitSeconds(secs *big.Rat) (*big.Int, *big.Rat) {
	whole := new(big.Int)
	var rem big.Int
	whole.DivMod(secs.Num(), secs.Denom(), &rem)
	frac := new(big.Rat).SetFrac(&rem, secs.Denom())
	return whole, frac
}
