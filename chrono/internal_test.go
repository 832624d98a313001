package chrono

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCivilRoundTrip(t *testing.T) {
	t.Parallel()
	for _, z := range []int64{-719468, -1, 0, 1, 19753, 2932896, -2932897} {
		y, m, d := civilFromDays(z)
		assert.Equal(t, z, daysFromCivil(y, m, d), "day %d", z)
	}
	y, m, d := civilFromDays(0)
	assert.Equal(t, []int64{1970, 1, 1}, []int64{y, int64(m), int64(d)})
	assert.Equal(t, int64(19753), daysFromCivil(2024, 1, 31))
	assert.Equal(t, 4, weekdayFromDays(0))
	assert.Equal(t, 3, weekdayFromDays(-1))
}

func TestFloorDiv(t *testing.T) {
	t.Parallel()
	assert.Equal(t, int64(-1), floorDiv(-5, 100))
	assert.Equal(t, int64(0), floorDiv(5, 100))
	assert.Equal(t, int64(-2), floorDiv(-200, 100))
	assert.Equal(t, int64(95), floorMod(-5, 100))
}

func TestFractionalWidth(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 0, Unit.fractionalWidth())
	assert.Equal(t, 0, HourPeriod.fractionalWidth())
	assert.Equal(t, 3, Milli.fractionalWidth())
	assert.Equal(t, 9, Nano.fractionalWidth())
	assert.Equal(t, 18, Atto.fractionalWidth())
	assert.Equal(t, 1, Ratio{Num: 1, Den: 2}.fractionalWidth())
	assert.Equal(t, 2, Ratio{Num: 1, Den: 4}.fractionalWidth())
	assert.Equal(t, 6, Ratio{Num: 1, Den: 3}.fractionalWidth())
}

func TestRatio(t *testing.T) {
	t.Parallel()
	assert.Equal(t, Unit, Ratio{}.Reduced())
	assert.Equal(t, Milli, Ratio{Num: 2, Den: 2000}.Reduced())
	assert.Equal(t, Ratio{Num: -1, Den: 2}, Ratio{Num: 1, Den: -2}.Reduced())
	assert.Equal(t, "1/1000", Milli.String())
	assert.Equal(t, "s", Ratio{}.suffix())
	assert.Equal(t, "d", DayPeriod.suffix())
	assert.Equal(t, "[604800]s", WeekPeriod.suffix())
}

func TestIsoWeek(t *testing.T) {
	t.Parallel()
	// 2026-01-01 is a Thursday: ISO week 1 of 2026.
	y, w := isoWeek(&Tm{Year: 2026, YearDay: 0, Weekday: 4})
	assert.Equal(t, int64(2026), y)
	assert.Equal(t, 1, w)

	// 2027-01-01 is a Friday: ISO week 53 of 2026.
	y, w = isoWeek(&Tm{Year: 2027, YearDay: 0, Weekday: 5})
	assert.Equal(t, int64(2026), y)
	assert.Equal(t, 53, w)
}

func TestDirectiveCapabilities(t *testing.T) {
	t.Parallel()
	n, f, err := parseConversion("a}", kindWeekday)
	assert.Nil(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, needWeekdayName, f)

	n, f, err = parseConversion("j}", kindDuration)
	assert.Nil(t, err)
	assert.Equal(t, 1, n)
	assert.Zero(t, f)

	_, f, err = parseConversion("j}", kindDate)
	assert.Nil(t, err)
	assert.Equal(t, needDayOfYear, f)

	n, _, err = parseConversion("OS}", kindDuration)
	assert.Nil(t, err)
	assert.Equal(t, 2, n)

	_, _, err = parseConversion("Y}", kindDuration)
	if assert.NotNil(t, err) {
		assert.Contains(t, err.msg, "duration")
	}
}
