package chrono_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/stdfmt"
	"github.com/bjaus/stdfmt/chrono"
)

func TestDurationFormat(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		format string
		args   []any
		want   string
	}{
		{"fraction of a second", "{:%S}", []any{chrono.Milliseconds(1500)}, "01.500"},
		{"time of day", "{:%H:%M:%S}", []any{chrono.Seconds(3723)}, "01:02:03"},
		{"time with fraction", "{:%T}", []any{chrono.Milliseconds(3723500)}, "01:02:03.500"},
		{"O modifier keeps fraction", "{:%OS}", []any{chrono.Milliseconds(2250)}, "02.250"},
		{"negative", "{:%S}", []any{chrono.Milliseconds(-1500)}, "-01.500"},
		{"microseconds", "{:%S}", []any{chrono.Microseconds(1)}, "00.000001"},
		{"period without decimal width", "{:%S}", []any{chrono.NewDuration(int64(1), chrono.Ratio{Num: 1, Den: 3})}, "00.333333"},
		{"float seconds have no fraction", "{:%S}", []any{chrono.NewDuration(1.5, chrono.Unit)}, "01"},
		{"float milliseconds", "{:%S}", []any{chrono.NewDuration(1500.0, chrono.Milli)}, "01.500"},
		{"hours wrap at a day", "{:%H}", []any{chrono.Hours(25)}, "01"},
		{"day count", "{:%j}", []any{chrono.Hours(25)}, "1"},
		{"day count is not padded", "{:%j}", []any{chrono.Days(3)}, "3"},
		{"twelve hour clock", "{:%I %p}", []any{chrono.Hours(13)}, "01 PM"},
		{"hour minute", "{:%R}", []any{chrono.Minutes(61)}, "01:01"},
		{"count and unit", "{:%Q%q}", []any{chrono.Minutes(90)}, "90min"},
		{"negative count", "{:%Q}", []any{chrono.Seconds(-5)}, "-5"},
		{"micro suffix", "{:%q}", []any{chrono.Microseconds(1)}, "µs"},
		{"custom integral period", "{:%q}", []any{chrono.NewDuration(int64(5), chrono.Ratio{Num: 3, Den: 1})}, "[3]s"},
		{"custom fractional period", "{:%q}", []any{chrono.NewDuration(int64(5), chrono.Ratio{Num: 2, Den: 6})}, "[1/3]s"},
		{"literals", "{:%H%n%t%%}", []any{chrono.Seconds(0)}, "00\n\t%"},
		{"text between directives", "{:%S seconds}", []any{chrono.Seconds(7)}, "07 seconds"},

		{"default", "{}", []any{chrono.Milliseconds(1500)}, "1500ms"},
		{"default negative", "{}", []any{chrono.Milliseconds(-1500)}, "-1500ms"},
		{"default float", "{}", []any{chrono.NewDuration(2.5, chrono.Unit)}, "2.5s"},
		{"default float precision", "{:.3}", []any{chrono.NewDuration(1.5, chrono.Unit)}, "1.500s"},
		{"dynamic precision", "{:.{}}", []any{chrono.NewDuration(1.5, chrono.Unit), 2}, "1.50s"},
		{"from time.Duration", "{}", []any{chrono.FromStd(2 * time.Microsecond)}, "2000ns"},
		{"unsigned count", "{}", []any{chrono.NewDuration(uint8(200), chrono.Unit)}, "200s"},

		{"width", "{:>8}", []any{chrono.Seconds(5)}, "      5s"},
		{"default alignment is left", "{:6}|", []any{chrono.Seconds(5)}, "5s    |"},
		{"fill before specs", "{:*<6%S}", []any{chrono.Seconds(5)}, "05****"},
		{"dynamic width", "{:>{}%S}", []any{chrono.Seconds(5), 4}, "  05"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := stdfmt.Format(tt.format, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCalendarFormat(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		format string
		arg    any
		want   string
	}{
		{"year", "{:%Y %C %y}", chrono.Year(2024), "2024 20 24"},
		{"negative year", "{:%Y}", chrono.Year(-5), "-0005"},
		{"three digit year", "{:%Y}", chrono.Year(999), "0999"},
		{"year zero", "{:%Y}", chrono.Year(0), "0000"},
		{"five digit year", "{:%Y}", chrono.Year(12345), "12345"},
		{"negative century", "{:%C}", chrono.Year(-5), "-1"},
		{"wide century", "{:%C}", chrono.Year(12345), "123"},
		{"two digit negative year", "{:%y}", chrono.Year(-5), "95"},
		{"alternative year", "{:%EY %Ey %Oy}", chrono.Year(1999), "1999 99 99"},
		{"year default", "{}", chrono.Year(2024), "2024"},
		{"invalid year default", "{}", chrono.Year(-32768), "-32768 is not a valid year"},

		{"month default", "{}", chrono.March, "Mar"},
		{"month names", "{:%B %m %Om}", chrono.March, "March 03 03"},
		{"invalid month number", "{:%m}", chrono.Month(13), "13"},
		{"invalid month default", "{}", chrono.Month(13), "13 is not a valid month"},

		{"day default", "{}", chrono.Day(5), "05"},
		{"day space padded", "{:%e}", chrono.Day(5), " 5"},
		{"invalid day default", "{}", chrono.Day(0), "00 is not a valid day"},

		{"weekday default", "{}", chrono.Monday, "Mon"},
		{"weekday numbers", "{:%A %u %w}", chrono.Sunday, "Sunday 7 0"},
		{"seven is sunday", "{:%a}", chrono.NewWeekday(7), "Sun"},
		{"invalid weekday default", "{}", chrono.Weekday(9), "9 is not a valid weekday"},

		{"date default", "{}", chrono.Date(2024, chrono.January, 31), "2024-01-31"},
		{"negative year date", "{:%F}", chrono.Date(-5, chrono.March, 1), "-0005-03-01"},
		{"invalid date default", "{}", chrono.Date(2024, chrono.February, 30), "2024-02-30 is not a valid date"},
		{"leap day", "{:%a %j}", chrono.Date(2024, chrono.February, 29), "Thu 060"},
		{"weeks", "{:%a %j %U %W %V %G %g}", chrono.Date(2024, chrono.January, 1), "Mon 001 00 01 01 2024 24"},
		{"iso week of previous year", "{:%V %G}", chrono.Date(2021, chrono.January, 1), "53 2020"},
		{"iso week of next year", "{:%V %G}", chrono.Date(2024, chrono.December, 30), "01 2025"},
		{"short date", "{:%D}", chrono.Date(2024, chrono.July, 4), "07/04/24"},
		{"locale date", "{:%x}", chrono.Date(2024, chrono.July, 4), "07/04/24"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := stdfmt.Format(tt.format, tt.arg)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSysTimeFormat(t *testing.T) {
	t.Parallel()
	at := chrono.FromTime(time.Date(2024, time.January, 31, 13, 45, 30, 250_000_000, time.UTC))
	tests := []struct {
		name   string
		format string
		arg    any
		want   string
	}{
		{"default", "{}", at, "2024-01-31 13:45:30.250000000"},
		{"date time", "{:%c}", at, "Wed Jan 31 13:45:30 2024"},
		{"zone", "{:%z %Ez %Z}", at, "+0000 +00:00 UTC"},
		{"twelve hour", "{:%r}", at, "01:45:30 PM"},
		{"whole days", "{}", chrono.SysTime[int64]{Since: chrono.Days(1)}, "1970-01-02"},
		{"before the epoch", "{}", chrono.SysTime[int64]{Since: chrono.Seconds(-1)}, "1969-12-31 23:59:59"},
		{"fraction before the epoch", "{:%T}", chrono.SysTime[int64]{Since: chrono.Milliseconds(-1)}, "23:59:59.999"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := stdfmt.Format(tt.format, tt.arg)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestChronoErrors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		format string
		arg    any
		kind   error
	}{
		{"spec must start with percent", "{:x}", chrono.Seconds(1), stdfmt.ErrSyntax},
		{"percent at end", "{:%}", chrono.Seconds(1), stdfmt.ErrSyntax},
		{"unknown conversion", "{:%K}", chrono.Seconds(1), stdfmt.ErrSyntax},
		{"unknown modifier pair", "{:%Ek}", chrono.Seconds(1), stdfmt.ErrSyntax},
		{"modifier at end", "{:%E}", chrono.Seconds(1), stdfmt.ErrSyntax},
		{"brace in specs", "{:%S{}", chrono.Seconds(1), stdfmt.ErrSyntax},
		{"unterminated", "{:%S", chrono.Seconds(1), stdfmt.ErrSyntax},

		{"year of a duration", "{:%Y}", chrono.Seconds(1), stdfmt.ErrType},
		{"unit of a date", "{:%q}", chrono.Date(2024, 1, 1), stdfmt.ErrType},
		{"day of a month", "{:%d}", chrono.March, stdfmt.ErrType},
		{"date time of a date", "{:%c}", chrono.Date(2024, 1, 1), stdfmt.ErrType},
		{"precision on integral duration", "{:.2%S}", chrono.Seconds(1), stdfmt.ErrType},
		{"precision on year", "{:.2}", chrono.Year(1), stdfmt.ErrType},

		{"weekday name out of range", "{:%a}", chrono.Weekday(9), stdfmt.ErrValue},
		{"weekday number out of range", "{:%w}", chrono.Weekday(9), stdfmt.ErrValue},
		{"month name out of range", "{:%b}", chrono.Month(13), stdfmt.ErrValue},
		{"day of year of invalid date", "{:%j}", chrono.Date(2023, chrono.February, 29), stdfmt.ErrValue},
		{"week of invalid date", "{:%V}", chrono.Date(2023, chrono.February, 29), stdfmt.ErrValue},
		{"weekday of invalid date", "{:%A}", chrono.Date(2023, chrono.April, 31), stdfmt.ErrValue},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := stdfmt.Format(tt.format, tt.arg)
			assert.ErrorIs(t, err, tt.kind)
		})
	}
}

// Value checks belong to rendering: a weekday out of range passes static
// validation and fails only when formatted.
func TestInvalidWeekdayFailsOnlyAtRender(t *testing.T) {
	t.Parallel()
	require.NoError(t, stdfmt.Check("{:%a}", stdfmt.TypeOf[chrono.Weekday]()))
	tmpl := stdfmt.MustCompile("{:%a}", stdfmt.TypeOf[chrono.Weekday]())

	s, err := tmpl.Format(chrono.Tuesday)
	require.NoError(t, err)
	assert.Equal(t, "Tue", s)

	_, err = tmpl.Format(chrono.Weekday(9))
	assert.ErrorIs(t, err, stdfmt.ErrValue)
}

func TestNilPointerValues(t *testing.T) {
	t.Parallel()
	wd := stdfmt.TypeOf[*chrono.Weekday]()
	require.NoError(t, stdfmt.Check("{:%a}", wd))
	assert.ErrorIs(t, stdfmt.Check("{:%Y}", wd), stdfmt.ErrType)

	_, err := stdfmt.Format("{}", (*chrono.Weekday)(nil))
	assert.ErrorIs(t, err, stdfmt.ErrValue)

	d := chrono.Friday
	s, err := stdfmt.Format("{:%A}", &d)
	require.NoError(t, err)
	assert.Equal(t, "Friday", s)
}

func TestCheckChronoTypes(t *testing.T) {
	t.Parallel()
	dur := stdfmt.TypeOf[chrono.Duration[int64]]()
	fdur := stdfmt.TypeOf[chrono.Duration[float64]]()

	assert.NoError(t, stdfmt.Check("{:%H:%M:%S}", dur))
	assert.ErrorIs(t, stdfmt.Check("{:%Y}", dur), stdfmt.ErrType)
	assert.ErrorIs(t, stdfmt.Check("{:.3}", dur), stdfmt.ErrType)
	assert.NoError(t, stdfmt.Check("{:.3}", fdur))
	assert.NoError(t, stdfmt.Check("{:%F %T}", stdfmt.TypeOf[chrono.SysTime[int64]]()))
	assert.ErrorIs(t, stdfmt.Check("{:%H}", stdfmt.TypeOf[chrono.YearMonthDay]()), stdfmt.ErrType)
}

func TestLocalizedChrono(t *testing.T) {
	t.Parallel()
	names := stdfmt.ClassicNames
	names.Weekdays[1] = "Montag"
	loc := stdfmt.Classic.WithPunctuation(",", ".").WithNames(names)
	p := stdfmt.NewPrinter(loc)

	s, err := p.Format("{:L%S} {:%S}", chrono.Milliseconds(1500), chrono.Milliseconds(1500))
	require.NoError(t, err)
	assert.Equal(t, "01,500 01.500", s)

	s, err = p.Format("{:L%A} {:%A}", chrono.Monday, chrono.Monday)
	require.NoError(t, err)
	assert.Equal(t, "Montag Monday", s)

	ms := chrono.Milliseconds(1234567)
	s, err = p.Format("{:L} {:L%Q} {}", ms, ms, ms)
	require.NoError(t, err)
	assert.Equal(t, "1.234.567ms 1.234.567 1234567ms", s)
}

func TestAppendStrftime(t *testing.T) {
	t.Parallel()
	tm := &chrono.Tm{Year: 2024, Month: 7, Day: 4, Hour: 0, Min: 5, Sec: 9, Weekday: 4, YearDay: 185}
	got := chrono.AppendStrftime(nil, &stdfmt.ClassicNames, tm, 0, 'I')
	assert.Equal(t, "12", string(got))

	got = chrono.AppendStrftime([]byte("x"), &stdfmt.ClassicNames, tm, 'O', 'k')
	assert.Equal(t, "x%Ok", string(got))
}
