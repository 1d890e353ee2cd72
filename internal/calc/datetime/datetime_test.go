package datetime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/abacus/internal/calc"
)

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := calc.ParseDate("date", s)
	require.NoError(t, err)
	return d
}

func TestAge(t *testing.T) {
	res, err := Age(date(t, "1990-05-15"), date(t, "2025-03-10"))
	require.NoError(t, err)
	assert.Equal(t, Span{Years: 34, Months: 9, Days: 23}, res.Span)
	assert.Equal(t, 12718, res.TotalDays)
	assert.Equal(t, 1816, res.TotalWeeks)
	assert.Equal(t, "2025-05-15", res.NextBirthday)
	assert.Equal(t, 66, res.DaysUntilBirthday)

	_, err = Age(date(t, "2030-01-01"), date(t, "2025-01-01"))
	assert.Equal(t, "birth_date", calc.FieldOf(err))
}

func TestAgeOnBirthday(t *testing.T) {
	res, err := Age(date(t, "2000-03-10"), date(t, "2025-03-10"))
	require.NoError(t, err)
	assert.Equal(t, 25, res.Years)
	assert.Equal(t, "2025-03-10", res.NextBirthday)
	assert.Equal(t, 0, res.DaysUntilBirthday)
}

func TestDateDiff(t *testing.T) {
	res := DateDiff(date(t, "2025-06-30"), date(t, "2025-06-02"), false)
	assert.True(t, res.Negative)
	assert.Equal(t, 28, res.TotalDays)
	assert.Equal(t, 4.0, res.TotalWeeks)
	assert.Equal(t, 20, res.BusinessDays)

	inclusive := DateDiff(date(t, "2025-06-02"), date(t, "2025-06-30"), true)
	assert.Equal(t, 29, inclusive.TotalDays)
	assert.Equal(t, 21, inclusive.BusinessDays)
}

func TestBetweenMonthEnds(t *testing.T) {
	tests := []struct {
		from, to string
		want     Span
	}{
		{"2023-01-31", "2023-03-01", Span{Months: 1, Days: 1}},
		{"2024-01-31", "2024-03-01", Span{Months: 1, Days: 1}},
		{"2024-01-30", "2024-03-01", Span{Months: 1, Days: 1}},
		{"2023-01-29", "2023-03-01", Span{Months: 1, Days: 1}},
		{"2025-03-31", "2025-05-01", Span{Months: 1, Days: 1}},
		{"2025-05-31", "2025-07-01", Span{Months: 1, Days: 1}},
		{"2025-01-31", "2025-02-28", Span{Days: 28}},
		{"2025-01-31", "2025-03-31", Span{Months: 2}},
		{"2024-12-31", "2026-03-01", Span{Years: 1, Months: 2, Days: 1}},
		{"2025-06-15", "2025-06-15", Span{}},
	}
	for _, tt := range tests {
		t.Run(tt.from+"_"+tt.to, func(t *testing.T) {
			got := Between(date(t, tt.from), date(t, tt.to))
			assert.Equal(t, tt.want, got)
			assert.GreaterOrEqual(t, got.Days, 0)
		})
	}
}

func TestAgeAcrossFebruary(t *testing.T) {
	res, err := Age(date(t, "2023-01-31"), date(t, "2023-03-01"))
	require.NoError(t, err)
	assert.Equal(t, Span{Months: 1, Days: 1}, res.Span)
	assert.Equal(t, 29, res.TotalDays)
	assert.Equal(t, 1, res.TotalMonths)

	diff := DateDiff(date(t, "2024-01-30"), date(t, "2024-03-01"), false)
	assert.Equal(t, Span{Months: 1, Days: 1}, diff.Span)
	assert.Equal(t, 31, diff.TotalDays)
}

func TestDateAdd(t *testing.T) {
	assert.Equal(t, "2025-02-28", DateAdd(date(t, "2025-01-31"), 0, 1, 0, 0, false).Date)
	assert.Equal(t, "2024-02-29", DateAdd(date(t, "2024-01-31"), 0, 1, 0, 0, false).Date)
	assert.Equal(t, "2024-12-31", DateAdd(date(t, "2025-01-31"), 0, -1, 0, 0, false).Date)
	assert.Equal(t, "2025-03-24", DateAdd(date(t, "2025-03-10"), 0, 0, 2, 0, false).Date)

	res := DateAdd(date(t, "2025-03-07"), 0, 0, 0, 1, true)
	assert.Equal(t, "2025-03-10", res.Date)
	assert.Equal(t, "Monday", res.Weekday)
	assert.Equal(t, "2025-03-07", DateAdd(date(t, "2025-03-10"), 0, 0, 0, -1, true).Date)
}

func TestBusinessDays(t *testing.T) {
	holidays := []time.Time{
		date(t, "2025-06-19"),
		date(t, "2025-06-19"), // duplicate
		date(t, "2025-06-21"), // Saturday
		date(t, "2025-07-04"), // out of range
	}
	res, err := BusinessDays(date(t, "2025-06-02"), date(t, "2025-06-30"), holidays)
	require.NoError(t, err)
	assert.Equal(t, 20, res.BusinessDays)
	assert.Equal(t, 1, res.HolidaysExcluded)
	assert.Equal(t, 8, res.WeekendDays)
	assert.Equal(t, 29, res.CalendarDays)

	_, err = BusinessDays(date(t, "2025-06-30"), date(t, "2025-06-02"), nil)
	assert.True(t, calc.IsInvalidInput(err))
}

func TestWeekNumber(t *testing.T) {
	res := WeekNumber(date(t, "2021-01-03"))
	assert.Equal(t, 2020, res.ISOYear)
	assert.Equal(t, 53, res.ISOWeek)
	assert.Equal(t, "Sunday", res.Weekday)
	assert.Equal(t, "2020-12-28", res.WeekStarted)

	res = WeekNumber(date(t, "2024-12-31"))
	assert.True(t, res.IsLeapYear)
	assert.Equal(t, 366, res.DayOfYear)
	assert.Equal(t, 4, res.Quarter)
	assert.Equal(t, 0, res.DaysLeft)
}

func TestConvertZone(t *testing.T) {
	ny, err := LoadZone("from", "America/New_York")
	require.NoError(t, err)
	london, err := LoadZone("to", "Europe/London")
	require.NoError(t, err)

	in, err := ParseDateTime("datetime", "2025-01-15T12:00", ny)
	require.NoError(t, err)
	res := ConvertZone(in, ny, london)
	assert.Equal(t, "2025-01-15 17:00:00 Wed", res.To.Local)
	assert.Equal(t, 5.0, res.DifferenceHrs)
	assert.Equal(t, "-05:00", res.From.UTCOffset)

	_, err = LoadZone("to", "Mars/Olympus")
	assert.Equal(t, "to", calc.FieldOf(err))
	_, err = ParseDateTime("datetime", "noon", ny)
	assert.True(t, calc.IsInvalidInput(err))
}

func TestZones(t *testing.T) {
	zones := Zones(time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC))
	require.Len(t, zones, len(CommonZones))
	assert.Equal(t, "Pacific/Honolulu", zones[0].Zone)
	assert.Equal(t, "Pacific/Auckland", zones[len(zones)-1].Zone)
}

func TestUnixTimestamp(t *testing.T) {
	res, err := FromUnix(0, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, "1970-01-01T00:00:00Z", res.RFC3339)

	res, err = FromUnix(1700000000000, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, int64(1700000000), res.Unix)

	back := ToUnix(time.Date(2023, 11, 14, 22, 13, 20, 0, time.UTC), time.UTC)
	assert.Equal(t, int64(1700000000), back.Unix)
}

func TestTimeDuration(t *testing.T) {
	start, err := ParseClock("start_time", "22:00")
	require.NoError(t, err)
	end, err := ParseClock("end_time", "06:30")
	require.NoError(t, err)

	res, err := TimeDuration(start, end, 30)
	require.NoError(t, err)
	assert.True(t, res.Overnight)
	assert.Equal(t, 8, res.Hours)
	assert.Equal(t, 0, res.Minutes)
	assert.Equal(t, 8.0, res.DecimalHours)

	_, err = ParseClock("start_time", "25:00")
	assert.True(t, calc.IsInvalidInput(err))
	_, err = TimeDuration(0, 60, 5)
	assert.Equal(t, "break_minutes", calc.FieldOf(err))
}

func TestCountdown(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	res := Countdown(now.Add(49*time.Hour+90*time.Second), now)
	assert.False(t, res.Passed)
	assert.Equal(t, 2, res.Days)
	assert.Equal(t, 1, res.Hours)
	assert.Equal(t, 1, res.Minutes)
	assert.Equal(t, 30, res.Seconds)

	assert.True(t, Countdown(now.Add(-time.Hour), now).Passed)
}
