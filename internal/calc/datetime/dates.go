// Package datetime implements the date and time calculators. Every date is a
// calendar date in UTC; clock times are handled by the timezone tools.
package datetime

import (
	"time"

	"github.com/bobmcallan/abacus/internal/calc"
)

const day = 24 * time.Hour

// Span is a calendar difference broken into whole years, months and days.
type Span struct {
	Years  int `json:"years"`
	Months int `json:"months"`
	Days   int `json:"days"`
}

// Between returns the calendar span from a to b (a <= b). Whole months are
// counted from a, clamped to month end, and the remaining days from there,
// so Days is never negative.
func Between(a, b time.Time) Span {
	a, b = truncate(a), truncate(b)
	months := (b.Year()-a.Year())*12 + int(b.Month()) - int(a.Month())
	if b.Day() < a.Day() {
		months--
	}
	return Span{Years: months / 12, Months: months % 12, Days: Days(addMonths(a, months), b)}
}

// Days returns whole days from a to b (negative when b is before a).
func Days(a, b time.Time) int {
	return int(truncate(b).Sub(truncate(a)) / day)
}

func truncate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// AgeResult is the output of the age calculator.
type AgeResult struct {
	Span
	TotalMonths       int    `json:"total_months"`
	TotalWeeks        int    `json:"total_weeks"`
	TotalDays         int    `json:"total_days"`
	NextBirthday      string `json:"next_birthday"`
	DaysUntilBirthday int    `json:"days_until_birthday"`
	BornOn            string `json:"born_on"`
}

// Age computes exact age on asOf. A 29 February birthday falls on 1 March in
// common years.
func Age(birth, asOf time.Time) (*AgeResult, error) {
	birth, asOf = truncate(birth), truncate(asOf)
	if birth.After(asOf) {
		return nil, calc.Invalid("birth_date", "must not be after the comparison date")
	}
	span := Between(birth, asOf)
	total := Days(birth, asOf)

	next := anniversary(birth, asOf.Year())
	if next.Before(asOf) {
		next = anniversary(birth, asOf.Year()+1)
	}
	return &AgeResult{
		Span:              span,
		TotalMonths:       span.Years*12 + span.Months,
		TotalWeeks:        total / 7,
		TotalDays:         total,
		NextBirthday:      next.Format(calc.DateLayout),
		DaysUntilBirthday: Days(asOf, next),
		BornOn:            birth.Weekday().String(),
	}, nil
}

func anniversary(birth time.Time, year int) time.Time {
	return time.Date(year, birth.Month(), birth.Day(), 0, 0, 0, 0, time.UTC)
}

// DiffResult is the output of the date difference calculator.
type DiffResult struct {
	Span
	TotalDays    int     `json:"total_days"`
	TotalWeeks   float64 `json:"total_weeks"`
	BusinessDays int     `json:"business_days"`
	Negative     bool    `json:"negative"`
}

// DateDiff measures the distance between two dates. includeEnd counts the end
// date itself (inclusive ranges).
func DateDiff(start, end time.Time, includeEnd bool) *DiffResult {
	start, end = truncate(start), truncate(end)
	res := &DiffResult{}
	if end.Before(start) {
		start, end = end, start
		res.Negative = true
	}
	res.Span = Between(start, end)
	res.TotalDays = Days(start, end)
	if includeEnd {
		res.TotalDays++
	}
	res.TotalWeeks = float64(res.TotalDays) / 7
	res.BusinessDays = countBusiness(start, end, includeEnd, nil)
	return res
}

// AddResult is the output of the date add/subtract calculator.
type AddResult struct {
	Date    string `json:"date"`
	Weekday string `json:"weekday"`
}

// DateAdd shifts start by the given amounts (which may be negative). Month
// arithmetic clamps to the end of the month (31 Jan + 1 month = 28/29 Feb).
// When business is true, days counts working days and skips weekends.
func DateAdd(start time.Time, years, months, weeks, days int, business bool) *AddResult {
	t := addMonths(truncate(start), years*12+months).AddDate(0, 0, weeks*7)
	if business {
		t = addBusinessDays(t, days)
	} else {
		t = t.AddDate(0, 0, days)
	}
	return &AddResult{Date: t.Format(calc.DateLayout), Weekday: t.Weekday().String()}
}

func addMonths(t time.Time, n int) time.Time {
	first := time.Date(t.Year(), t.Month()+time.Month(n), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1).Day()
	return first.AddDate(0, 0, min(t.Day(), last)-1)
}

func isWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

func addBusinessDays(t time.Time, n int) time.Time {
	step := 1
	if n < 0 {
		step, n = -1, -n
	}
	for n > 0 {
		t = t.AddDate(0, 0, step)
		if !isWeekend(t) {
			n--
		}
	}
	return t
}

func countBusiness(start, end time.Time, includeEnd bool, holidays map[string]bool) int {
	n := 0
	for t := start; t.Before(end) || (includeEnd && t.Equal(end)); t = t.AddDate(0, 0, 1) {
		if !isWeekend(t) && !holidays[t.Format(calc.DateLayout)] {
			n++
		}
	}
	return n
}

// BusinessDaysResult is the output of the business day counter.
type BusinessDaysResult struct {
	BusinessDays     int `json:"business_days"`
	WeekendDays      int `json:"weekend_days"`
	HolidaysExcluded int `json:"holidays_excluded"`
	CalendarDays     int `json:"calendar_days"`
}

// BusinessDays counts Monday-Friday dates in [start, end] that are not holidays.
func BusinessDays(start, end time.Time, holidays []time.Time) (*BusinessDaysResult, error) {
	start, end = truncate(start), truncate(end)
	if end.Before(start) {
		return nil, calc.Invalid("end_date", "must not be before start_date")
	}
	if Days(start, end) > 365*100 {
		return nil, calc.Invalid("end_date", "must be within 100 years of start_date")
	}
	hs := make(map[string]bool, len(holidays))
	res := &BusinessDaysResult{CalendarDays: Days(start, end) + 1}
	for _, h := range holidays {
		h = truncate(h)
		key := h.Format(calc.DateLayout)
		if hs[key] || h.Before(start) || h.After(end) || isWeekend(h) {
			continue
		}
		hs[key] = true
		res.HolidaysExcluded++
	}
	res.BusinessDays = countBusiness(start, end, true, hs)
	res.WeekendDays = res.CalendarDays - res.BusinessDays - res.HolidaysExcluded
	return res, nil
}

// WeekResult is the output of the week number calculator.
type WeekResult struct {
	ISOYear     int    `json:"iso_year"`
	ISOWeek     int    `json:"iso_week"`
	Weekday     string `json:"weekday"`
	DayOfYear   int    `json:"day_of_year"`
	DaysInYear  int    `json:"days_in_year"`
	Quarter     int    `json:"quarter"`
	IsLeapYear  bool   `json:"is_leap_year"`
	DaysLeft    int    `json:"days_left_in_year"`
	WeekStarted string `json:"week_started"`
}

// WeekNumber reports the ISO-8601 week and related calendar facts for t.
func WeekNumber(t time.Time) *WeekResult {
	t = truncate(t)
	y, w := t.ISOWeek()
	leap := isLeap(t.Year())
	daysInYear := 365
	if leap {
		daysInYear = 366
	}
	offset := (int(t.Weekday()) + 6) % 7 // Monday = 0
	return &WeekResult{
		ISOYear:     y,
		ISOWeek:     w,
		Weekday:     t.Weekday().String(),
		DayOfYear:   t.YearDay(),
		DaysInYear:  daysInYear,
		Quarter:     (int(t.Month())-1)/3 + 1,
		IsLeapYear:  leap,
		DaysLeft:    daysInYear - t.YearDay(),
		WeekStarted: t.AddDate(0, 0, -offset).Format(calc.DateLayout),
	}
}

func isLeap(y int) bool {
	return y%4 == 0 && (y%100 != 0 || y%400 == 0)
}
