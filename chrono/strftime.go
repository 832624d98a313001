package chrono

import (
	"strconv"

	"github.com/bjaus/stdfmt"
)

// Tm is a broken-down calendar time. Year is the full proleptic Gregorian
// year and Month counts from 1. Fields a value does not carry are zero.
type Tm struct {
	Year    int
	Month   int
	Day     int
	Hour    int
	Min     int
	Sec     int
	Weekday int // days since Sunday
	YearDay int // days since January 1
	Zone    string
}

// AppendStrftime appends the rendering of one strftime conversion to dst.
// mod is 0, 'E' or 'O'; the alternative forms render like the plain ones
// with the names given. Composite conversions (%c, %x, %X, %r) expand the
// patterns carried by names. Unknown conversions are appended verbatim.
func AppendStrftime(dst []byte, names *stdfmt.Names, tm *Tm, mod, verb byte) []byte {
	switch verb {
	case 'a':
		return append(dst, nameAt(names.ShortWeekdays[:], tm.Weekday)...)
	case 'A':
		return append(dst, nameAt(names.Weekdays[:], tm.Weekday)...)
	case 'b', 'h':
		return append(dst, nameAt(names.ShortMonths[:], tm.Month-1)...)
	case 'B':
		return append(dst, nameAt(names.Months[:], tm.Month-1)...)
	case 'c':
		return appendPattern(dst, names, tm, names.DateTime)
	case 'C':
		return appendPadded(dst, floorDiv(int64(tm.Year), 100), 2, '0')
	case 'd':
		return appendPadded(dst, int64(tm.Day), 2, '0')
	case 'D':
		return appendPattern(dst, names, tm, "%m/%d/%y")
	case 'e':
		return appendPadded(dst, int64(tm.Day), 2, ' ')
	case 'F':
		dst = appendPadded(dst, int64(tm.Year), 4, '0')
		return appendPattern(dst, names, tm, "-%m-%d")
	case 'g':
		y, _ := isoWeek(tm)
		return appendPadded(dst, floorMod(y, 100), 2, '0')
	case 'G':
		y, _ := isoWeek(tm)
		return strconv.AppendInt(dst, y, 10)
	case 'H':
		return appendPadded(dst, int64(tm.Hour), 2, '0')
	case 'I':
		return appendPadded(dst, int64(hour12(tm.Hour)), 2, '0')
	case 'j':
		return appendPadded(dst, int64(tm.YearDay+1), 3, '0')
	case 'm':
		return appendPadded(dst, int64(tm.Month), 2, '0')
	case 'M':
		return appendPadded(dst, int64(tm.Min), 2, '0')
	case 'n':
		return append(dst, '\n')
	case 'p':
		if tm.Hour < 12 {
			return append(dst, names.AM...)
		}
		return append(dst, names.PM...)
	case 'r':
		return appendPattern(dst, names, tm, names.Time12)
	case 'R':
		return appendPattern(dst, names, tm, "%H:%M")
	case 'S':
		return appendPadded(dst, int64(tm.Sec), 2, '0')
	case 't':
		return append(dst, '\t')
	case 'T':
		return appendPattern(dst, names, tm, "%H:%M:%S")
	case 'u':
		if tm.Weekday == 0 {
			return append(dst, '7')
		}
		return strconv.AppendInt(dst, int64(tm.Weekday), 10)
	case 'U':
		return appendPadded(dst, int64((tm.YearDay-tm.Weekday+7)/7), 2, '0')
	case 'V':
		_, w := isoWeek(tm)
		return appendPadded(dst, int64(w), 2, '0')
	case 'w':
		return strconv.AppendInt(dst, int64(tm.Weekday), 10)
	case 'W':
		return appendPadded(dst, int64((tm.YearDay-(tm.Weekday+6)%7+7)/7), 2, '0')
	case 'x':
		return appendPattern(dst, names, tm, names.Date)
	case 'X':
		return appendPattern(dst, names, tm, names.Time)
	case 'y':
		return appendPadded(dst, floorMod(int64(tm.Year), 100), 2, '0')
	case 'Y':
		return strconv.AppendInt(dst, int64(tm.Year), 10)
	case 'z':
		if mod != 0 {
			return append(dst, "+00:00"...)
		}
		return append(dst, "+0000"...)
	case 'Z':
		if tm.Zone == "" {
			return append(dst, "UTC"...)
		}
		return append(dst, tm.Zone...)
	case '%':
		return append(dst, '%')
	}
	dst = append(dst, '%')
	if mod != 0 {
		dst = append(dst, mod)
	}
	return append(dst, verb)
}

func appendPattern(dst []byte, names *stdfmt.Names, tm *Tm, pattern string) []byte {
	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		if c != '%' || i+1 == len(pattern) {
			dst = append(dst, c)
			continue
		}
		i++
		var mod byte
		if (pattern[i] == 'E' || pattern[i] == 'O') && i+1 < len(pattern) {
			mod = pattern[i]
			i++
		}
		dst = AppendStrftime(dst, names, tm, mod, pattern[i])
	}
	return dst
}

// appendPadded writes v with at least width digits, padding with pad. The
// sign of negative values precedes zero padding.
func appendPadded(dst []byte, v int64, width int, pad byte) []byte {
	if v < 0 {
		dst = append(dst, '-')
		width--
		v = -v
	}
	digits := strconv.FormatInt(v, 10)
	for n := len(digits); n < width; n++ {
		dst = append(dst, pad)
	}
	return append(dst, digits...)
}

func nameAt(names []string, i int) string {
	if i < 0 || i >= len(names) {
		return "?"
	}
	return names[i]
}

func hour12(h int) int {
	h %= 12
	if h == 0 {
		return 12
	}
	return h
}

// isoWeek returns the ISO 8601 week-based year and week number of tm.
func isoWeek(tm *Tm) (year int64, week int) {
	year = int64(tm.Year)
	days := isoWeekDays(tm.YearDay, tm.Weekday)
	if days < 0 {
		year--
		days = isoWeekDays(tm.YearDay+daysInYear(year), tm.Weekday)
	} else if d := isoWeekDays(tm.YearDay-daysInYear(year), tm.Weekday); d >= 0 {
		year++
		days = d
	}
	return year, days/7 + 1
}

// isoWeekDays returns the number of days from the first day of the first ISO
// week of the year containing yday to yday itself.
func isoWeekDays(yday, wday int) int {
	const bigEnoughMultipleOf7 = (366/7 + 2) * 7
	return yday - (yday-wday+4+bigEnoughMultipleOf7)%7 + 3
}

func daysInYear(y int64) int {
	if isLeap(y) {
		return 366
	}
	return 365
}
