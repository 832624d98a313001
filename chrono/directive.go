package chrono

import (
	"github.com/bjaus/stdfmt"
)

type kind uint8

const (
	kindDuration kind = iota
	kindDay
	kindMonth
	kindYear
	kindWeekday
	kindDate
	kindTimePoint
)

var kindNames = [...]string{
	kindDuration:  "duration",
	kindDay:       "day",
	kindMonth:     "month",
	kindYear:      "year",
	kindWeekday:   "weekday",
	kindDate:      "year_month_day",
	kindTimePoint: "sys_time",
}

func (k kind) String() string { return kindNames[k] }

// caps is the set of calendar components a value can supply.
type caps uint16

const (
	capDay caps = 1 << iota
	capMonth
	capYear
	capWeekday
	capDate     // a complete civil date: day of year, weeks, %D %F %x
	capClock    // time of day
	capCount    // tick count and unit
	capZone     // time zone
	capDateTime // date and time together: %c
)

const capCalendar = capDay | capMonth | capYear | capWeekday | capDate

func (k kind) caps() caps {
	switch k {
	case kindDuration:
		return capClock | capCount
	case kindDay:
		return capDay
	case kindMonth:
		return capMonth
	case kindYear:
		return capYear
	case kindWeekday:
		return capWeekday
	case kindDate:
		return capCalendar
	}
	return capCalendar | capClock | capZone | capDateTime
}

// flags record what a parsed chrono-spec will need from the value at render
// time.
type flags uint8

const (
	needWeekdayName flags = 1 << iota
	needWeekday
	needDayOfYear
	needWeekOfYear
	needMonthName
)

type directive struct {
	needs caps // any one of these suffices
	flags flags
}

// directives maps an optional modifier and a conversion letter to what the
// conversion needs. %n, %t and %% are handled by the parser directly.
var directives = map[string]directive{
	"a": {capWeekday, needWeekdayName},
	"A": {capWeekday, needWeekdayName},
	"b": {capMonth, needMonthName},
	"B": {capMonth, needMonthName},
	"h": {capMonth, needMonthName},
	"c": {capDateTime, needWeekdayName | needMonthName},
	"C": {capYear, 0},
	"d": {capDay, 0},
	"D": {capDate, 0},
	"e": {capDay, 0},
	"F": {capDate, 0},
	"g": {capDate, needWeekOfYear},
	"G": {capDate, needWeekOfYear},
	"H": {capClock, 0},
	"I": {capClock, 0},
	"j": {capDate | capCount, needDayOfYear},
	"m": {capMonth, 0},
	"M": {capClock, 0},
	"p": {capClock, 0},
	"q": {capCount, 0},
	"Q": {capCount, 0},
	"r": {capClock, 0},
	"R": {capClock, 0},
	"S": {capClock, 0},
	"T": {capClock, 0},
	"u": {capWeekday, needWeekday},
	"U": {capDate, needWeekOfYear},
	"V": {capDate, needWeekOfYear},
	"w": {capWeekday, needWeekday},
	"W": {capDate, needWeekOfYear},
	"x": {capDate, 0},
	"X": {capClock, 0},
	"y": {capYear, 0},
	"Y": {capYear, 0},
	"z": {capZone, 0},
	"Z": {capZone, 0},

	"Ec": {capDateTime, needWeekdayName | needMonthName},
	"EC": {capYear, 0},
	"Ex": {capDate, 0},
	"EX": {capClock, 0},
	"Ey": {capYear, 0},
	"EY": {capYear, 0},
	"Ez": {capZone, 0},

	"Od": {capDay, 0},
	"Oe": {capDay, 0},
	"OH": {capClock, 0},
	"OI": {capClock, 0},
	"Om": {capMonth, 0},
	"OM": {capClock, 0},
	"OS": {capClock, 0},
	"Ou": {capWeekday, needWeekday},
	"OU": {capDate, needWeekOfYear},
	"OV": {capDate, needWeekOfYear},
	"Ow": {capWeekday, needWeekday},
	"OW": {capDate, needWeekOfYear},
	"Oy": {capYear, 0},
	"Oz": {capZone, 0},
}

// parseChronoSpecs scans the chrono-specs at the cursor up to the closing
// '}' and returns them together with the render-time checks they require.
func parseChronoSpecs(pc *stdfmt.ParseContext, k kind) (string, flags, error) {
	rest := pc.Remaining()
	if rest == "" || rest[0] == '}' {
		return "", 0, nil
	}
	if rest[0] != '%' {
		return "", 0, pc.Errorf(stdfmt.ErrSyntax, "chrono format-spec must start with '%%' or '}', found %q", rest[0])
	}
	var need flags
	i := 0
	for i < len(rest) && rest[i] != '}' {
		switch rest[i] {
		case '{':
			pc.Advance(i)
			return "", 0, pc.Errorf(stdfmt.ErrSyntax, "'{' is not allowed in a chrono format-spec")
		case '%':
			n, f, err := parseConversion(rest[i+1:], k)
			if err != nil {
				pc.Advance(i)
				return "", 0, pc.Errorf(err.kind, "%s", err.msg)
			}
			need |= f
			i += 1 + n
		default:
			i++
		}
	}
	pc.Advance(i)
	return rest[:i], need, nil
}

type conversionError struct {
	kind error
	msg  string
}

// parseConversion reads the modifier and letter following a '%'.
func parseConversion(s string, k kind) (int, flags, *conversionError) {
	if s == "" || s[0] == '}' {
		return 0, 0, &conversionError{stdfmt.ErrSyntax, "'%' is not followed by a conversion specifier"}
	}
	switch s[0] {
	case 'n', 't', '%':
		return 1, 0, nil
	}
	key := s[:1]
	if s[0] == 'E' || s[0] == 'O' {
		if len(s) < 2 || s[1] == '}' {
			return 0, 0, &conversionError{stdfmt.ErrSyntax, "'%" + s[:1] + "' is not followed by a conversion specifier"}
		}
		key = s[:2]
	}
	d, ok := directives[key]
	if !ok {
		return 0, 0, &conversionError{stdfmt.ErrSyntax, "'%" + key + "' is not a valid conversion specifier"}
	}
	if k.caps()&d.needs == 0 {
		return 0, 0, &conversionError{stdfmt.ErrType, "'%" + key + "' cannot be used with a " + k.String() + " value"}
	}
	f := d.flags
	if k == kindDuration {
		f &^= needDayOfYear
	}
	return len(key), f, nil
}
