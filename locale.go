package stdfmt

import (
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Names is the calendar vocabulary of a locale together with the patterns
// used for the composite date/time directives.
type Names struct {
	Weekdays      [7]string
	ShortWeekdays [7]string
	Months        [12]string
	ShortMonths   [12]string
	AM, PM        string

	DateTime string // %c
	Date     string // %x
	Time     string // %X
	Time12   string // %r
}

// ClassicNames is the vocabulary of the classic "C" locale.
var ClassicNames = Names{
	Weekdays:      [7]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"},
	ShortWeekdays: [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"},
	Months: [12]string{"January", "February", "March", "April", "May", "June",
		"July", "August", "September", "October", "November", "December"},
	ShortMonths: [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"},
	AM:          "AM",
	PM:          "PM",
	DateTime:    "%a %b %e %H:%M:%S %Y",
	Date:        "%m/%d/%y",
	Time:        "%H:%M:%S",
	Time12:      "%I:%M:%S %p",
}

// Locale carries the locale-dependent pieces of formatting. A Locale is
// immutable once built and may be shared between goroutines.
type Locale struct {
	tag      language.Tag
	decimal  string
	group    string
	grouping int
	names    *Names
}

// Classic is the "C" locale: '.' as decimal point and no digit grouping.
var Classic = &Locale{tag: language.Und, decimal: ".", names: &ClassicNames}

// NewLocale derives the numeric punctuation of tag from CLDR data. Calendar
// names default to [ClassicNames]; use [Locale.WithNames] to replace them.
func NewLocale(tag language.Tag) *Locale {
	decimal, group := numberSymbols(tag)
	return &Locale{tag: tag, decimal: decimal, group: group, grouping: 3, names: &ClassicNames}
}

// WithNames returns a copy of l using names for calendar rendering.
func (l *Locale) WithNames(names Names) *Locale {
	c := *l
	c.names = &names
	return &c
}

// WithPunctuation returns a copy of l with the given decimal point and
// grouping separator. An empty group disables digit grouping.
func (l *Locale) WithPunctuation(decimal, group string) *Locale {
	c := *l
	c.decimal, c.group = decimal, group
	if c.grouping == 0 {
		c.grouping = 3
	}
	return &c
}

// Tag returns the language tag of the locale.
func (l *Locale) Tag() language.Tag { return l.tag }

// DecimalPoint returns the decimal separator.
func (l *Locale) DecimalPoint() string { return l.decimal }

// GroupSeparator returns the digit grouping separator, empty when the locale
// does not group digits.
func (l *Locale) GroupSeparator() string { return l.group }

// Names returns the calendar vocabulary of the locale.
func (l *Locale) Names() *Names { return l.names }

// groupDigits inserts the grouping separator into a run of digits.
func (l *Locale) groupDigits(digits string) string {
	if l.group == "" || l.grouping <= 0 || len(digits) <= l.grouping {
		return digits
	}
	first := len(digits) % l.grouping
	if first == 0 {
		first = l.grouping
	}
	b := make([]byte, 0, len(digits)+len(l.group)*(len(digits)/l.grouping))
	b = append(b, digits[:first]...)
	for i := first; i < len(digits); i += l.grouping {
		b = append(b, l.group...)
		b = append(b, digits[i:i+l.grouping]...)
	}
	return string(b)
}

// numberSymbols renders a probe number with the locale's printer and reads
// the separators back out of it.
func numberSymbols(tag language.Tag) (decimal, group string) {
	p := message.NewPrinter(tag)
	s := p.Sprint(number.Decimal(1234567.5, number.MaxFractionDigits(1)))
	var runs []string
	start := -1
	for i, r := range s {
		if unicode.IsDigit(r) {
			if start >= 0 {
				runs = append(runs, s[start:i])
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	switch len(runs) {
	case 0:
		return ".", ""
	case 1:
		// No grouping: the only separator is the decimal point.
		return runs[0], ""
	default:
		last := runs[len(runs)-1]
		if !utf8.ValidString(last) {
			return ".", ""
		}
		return last, runs[0]
	}
}
