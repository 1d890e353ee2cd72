package calc

import (
	"math"
	"strings"
	"time"
)

// MonthsPerYear is used by every periodic-rate formula.
const MonthsPerYear = 12

// Round rounds v to the given number of decimal places, half away from zero.
func Round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

// MonthlyRate converts an annual percentage (6 = 6%) to a monthly decimal rate.
func MonthlyRate(annualPercent float64) float64 {
	return annualPercent / 100 / MonthsPerYear
}

// ApproxEqual reports whether a and b differ by at most tol.
func ApproxEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

// DateLayout is the ISO calendar date format used for every date input.
const DateLayout = "2006-01-02"

// ParseDate parses an ISO date (YYYY-MM-DD) as UTC midnight.
func ParseDate(field, s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, Invalid(field, "must be a date in YYYY-MM-DD form")
	}
	return t, nil
}
