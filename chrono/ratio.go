package chrono

import (
	"fmt"
	"math/big"
)

// Ratio is the tick period of a duration in seconds, Num/Den. The zero Ratio
// means one second.
type Ratio struct {
	Num int64
	Den int64
}

// SI periods.
var (
	Atto  = Ratio{1, 1_000_000_000_000_000_000}
	Femto = Ratio{1, 1_000_000_000_000_000}
	Pico  = Ratio{1, 1_000_000_000_000}
	Nano  = Ratio{1, 1_000_000_000}
	Micro = Ratio{1, 1_000_000}
	Milli = Ratio{1, 1_000}
	Centi = Ratio{1, 100}
	Deci  = Ratio{1, 10}
	Unit  = Ratio{1, 1}
	Deca  = Ratio{10, 1}
	Hecto = Ratio{100, 1}
	Kilo  = Ratio{1_000, 1}
	Mega  = Ratio{1_000_000, 1}
	Giga  = Ratio{1_000_000_000, 1}
	Tera  = Ratio{1_000_000_000_000, 1}
	Peta  = Ratio{1_000_000_000_000_000, 1}
	Exa   = Ratio{1_000_000_000_000_000_000, 1}
)

// Calendar periods. Months and years are the average Gregorian lengths.
var (
	MinutePeriod = Ratio{60, 1}
	HourPeriod   = Ratio{3600, 1}
	DayPeriod    = Ratio{86400, 1}
	WeekPeriod   = Ratio{604800, 1}
	MonthPeriod  = Ratio{2629746, 1}
	YearPeriod   = Ratio{31556952, 1}
)

// Reduced returns r in lowest terms with a positive denominator.
func (r Ratio) Reduced() Ratio {
	if r.Num == 0 || r.Den == 0 {
		return Unit
	}
	if r.Den < 0 {
		r.Num, r.Den = -r.Num, -r.Den
	}
	g := gcd(abs64(r.Num), r.Den)
	return Ratio{r.Num / g, r.Den / g}
}

// String renders the ratio as num/den.
func (r Ratio) String() string {
	r = r.Reduced()
	return fmt.Sprintf("%d/%d", r.Num, r.Den)
}

func (r Ratio) rat() *big.Rat {
	r = r.Reduced()
	return big.NewRat(r.Num, r.Den)
}

// suffix is the unit written by %q and by the default duration rendering.
func (r Ratio) suffix() string {
	r = r.Reduced()
	switch r {
	case Atto:
		return "as"
	case Femto:
		return "fs"
	case Pico:
		return "ps"
	case Nano:
		return "ns"
	case Micro:
		return "µs"
	case Milli:
		return "ms"
	case Centi:
		return "cs"
	case Deci:
		return "ds"
	case Unit:
		return "s"
	case Deca:
		return "das"
	case Hecto:
		return "hs"
	case Kilo:
		return "ks"
	case Mega:
		return "Ms"
	case Giga:
		return "Gs"
	case Tera:
		return "Ts"
	case Peta:
		return "Ps"
	case Exa:
		return "Es"
	case MinutePeriod:
		return "min"
	case HourPeriod:
		return "h"
	case DayPeriod:
		return "d"
	}
	if r.Den == 1 {
		return fmt.Sprintf("[%d]s", r.Num)
	}
	return fmt.Sprintf("[%d/%d]s", r.Num, r.Den)
}

// fractionalWidth is the number of decimal digits needed to show one tick
// exactly: the smallest n up to 18 such that 10^n is a multiple of the
// denominator, or 6 when there is none.
func (r Ratio) fractionalWidth() int {
	den := r.Reduced().Den
	p := int64(1)
	for n := 0; n <= 18; n++ {
		if p%den == 0 {
			return n
		}
		p *= 10
	}
	return 6
}

func gcd(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
