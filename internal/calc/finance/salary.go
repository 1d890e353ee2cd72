package finance

import (
	"github.com/bobmcallan/abacus/internal/calc"
)

// SalaryInput is the input of the salary calculator.
type SalaryInput struct {
	Amount       float64
	Period       string // hourly, daily, weekly, biweekly, semimonthly, monthly, yearly
	HoursPerWeek float64
	DaysPerWeek  float64
	WeeksPerYear float64
}

// SalaryResult expresses the same pay across every period.
type SalaryResult struct {
	Hourly      float64 `json:"hourly"`
	Daily       float64 `json:"daily"`
	Weekly      float64 `json:"weekly"`
	Biweekly    float64 `json:"biweekly"`
	Semimonthly float64 `json:"semimonthly"`
	Monthly     float64 `json:"monthly"`
	Yearly      float64 `json:"yearly"`
}

// SalaryPeriods lists the accepted period names.
var SalaryPeriods = []string{"hourly", "daily", "weekly", "biweekly", "semimonthly", "monthly", "yearly"}

// Salary annualises the amount for its period, then divides back out.
func Salary(in SalaryInput) (*SalaryResult, error) {
	if err := calc.First(
		calc.Positive("amount", in.Amount),
		calc.InRange("hours_per_week", in.HoursPerWeek, 1, 168),
		calc.InRange("days_per_week", in.DaysPerWeek, 1, 7),
		calc.InRange("weeks_per_year", in.WeeksPerYear, 1, 52),
	); err != nil {
		return nil, err
	}

	perYear := map[string]float64{
		"hourly":      in.HoursPerWeek * in.WeeksPerYear,
		"daily":       in.DaysPerWeek * in.WeeksPerYear,
		"weekly":      in.WeeksPerYear,
		"biweekly":    in.WeeksPerYear / 2,
		"semimonthly": 24,
		"monthly":     12,
		"yearly":      1,
	}
	n, ok := perYear[in.Period]
	if !ok {
		return nil, calc.Invalid("period", "must be one of hourly, daily, weekly, biweekly, semimonthly, monthly, yearly")
	}
	yearly := in.Amount * n
	return &SalaryResult{
		Hourly:      yearly / perYear["hourly"],
		Daily:       yearly / perYear["daily"],
		Weekly:      yearly / perYear["weekly"],
		Biweekly:    yearly / perYear["biweekly"],
		Semimonthly: yearly / 24,
		Monthly:     yearly / 12,
		Yearly:      yearly,
	}, nil
}
