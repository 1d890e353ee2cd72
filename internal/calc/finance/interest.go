package finance

import (
	"math"

	"github.com/bobmcallan/abacus/internal/calc"
	"github.com/bobmcallan/abacus/internal/models"
)

// YearRow is one year of a growth breakdown.
type YearRow struct {
	Year          int     `json:"year"`
	Contributions float64 `json:"contributions"`
	Interest      float64 `json:"interest"`
	Balance       float64 `json:"balance"`
}

// CompoundInput is the input of the compound interest calculator.
type CompoundInput struct {
	Principal           float64
	AnnualRate          float64
	Years               float64
	CompoundsPerYear    int
	MonthlyContribution float64
}

// CompoundResult is the output of the compound interest calculator.
type CompoundResult struct {
	FutureValue        float64   `json:"future_value"`
	TotalContributions float64   `json:"total_contributions"`
	InterestEarned     float64   `json:"interest_earned"`
	EffectiveRate      float64   `json:"effective_annual_rate"`
	Yearly             []YearRow `json:"yearly"`
}

// CompoundInterest grows the principal at the periodic rate and adds
// end-of-month contributions at the equivalent monthly rate.
func CompoundInterest(in CompoundInput) (*CompoundResult, error) {
	if err := calc.First(
		calc.NonNegative("principal", in.Principal),
		calc.InRange("annual_rate", in.AnnualRate, 0, 100),
		calc.InRange("years", in.Years, 0, 100),
		calc.NonNegative("monthly_contribution", in.MonthlyContribution),
	); err != nil {
		return nil, err
	}
	if in.Years == 0 {
		return nil, calc.Invalid("years", "must be greater than 0")
	}
	if in.CompoundsPerYear <= 0 || in.CompoundsPerYear > 365 {
		return nil, calc.Invalid("compounds_per_year", "must be between 1 and 365")
	}
	if in.Principal == 0 && in.MonthlyContribution == 0 {
		return nil, calc.Invalid("principal", "or monthly_contribution must be greater than 0")
	}

	n := float64(in.CompoundsPerYear)
	r := in.AnnualRate / 100
	monthly := math.Pow(1+r/n, n/calc.MonthsPerYear) - 1

	valueAt := func(t float64) (balance, contributed float64) {
		balance = in.Principal * math.Pow(1+r/n, n*t)
		months := t * calc.MonthsPerYear
		contributed = in.MonthlyContribution * months
		if monthly == 0 {
			balance += contributed
		} else {
			balance += in.MonthlyContribution * (math.Pow(1+monthly, months) - 1) / monthly
		}
		return balance, contributed
	}

	res := &CompoundResult{EffectiveRate: (math.Pow(1+r/n, n) - 1) * 100}
	for y := 1; float64(y-1) < in.Years; y++ {
		t := math.Min(float64(y), in.Years)
		bal, contrib := valueAt(t)
		res.Yearly = append(res.Yearly, YearRow{
			Year:          y,
			Contributions: in.Principal + contrib,
			Interest:      bal - in.Principal - contrib,
			Balance:       bal,
		})
	}
	fv, contrib := valueAt(in.Years)
	res.FutureValue = fv
	res.TotalContributions = in.Principal + contrib
	res.InterestEarned = fv - res.TotalContributions
	return res, nil
}

// Chart draws balance against contributions by year.
func (r *CompoundResult) Chart() *models.Chart {
	return growthChart("Compound Growth", r.Yearly)
}

func growthChart(title string, rows []YearRow) *models.Chart {
	if len(rows) < 2 {
		return nil
	}
	x := make([]float64, len(rows))
	bal := make([]float64, len(rows))
	contrib := make([]float64, len(rows))
	for i, row := range rows {
		x[i] = float64(row.Year)
		bal[i] = row.Balance
		contrib[i] = row.Contributions
	}
	return &models.Chart{
		Title:  title,
		XLabel: "Year",
		YLabel: "Value",
		Money:  true,
		Series: []models.ChartSeries{
			{Name: "Balance", X: x, Y: bal},
			{Name: "Contributions", X: x, Y: contrib},
		},
	}
}

// SimpleInterestResult is the output of the simple interest calculator.
type SimpleInterestResult struct {
	Interest float64 `json:"interest"`
	Total    float64 `json:"total"`
}

// SimpleInterest computes I = P·r·t.
func SimpleInterest(principal, annualRate, years float64) (*SimpleInterestResult, error) {
	if err := calc.First(
		calc.Positive("principal", principal),
		calc.InRange("annual_rate", annualRate, 0, 100),
		calc.Positive("years", years),
	); err != nil {
		return nil, err
	}
	interest := principal * annualRate / 100 * years
	return &SimpleInterestResult{Interest: interest, Total: principal + interest}, nil
}

// SIPResult is the output of the SIP calculator.
type SIPResult struct {
	FutureValue float64   `json:"future_value"`
	Invested    float64   `json:"invested"`
	Returns     float64   `json:"returns"`
	Yearly      []YearRow `json:"yearly"`
}

// sipValue is the future value of n start-of-month installments.
func sipValue(monthly, i float64, n int) float64 {
	if i == 0 {
		return monthly * float64(n)
	}
	return monthly * (math.Pow(1+i, float64(n)) - 1) / i * (1 + i)
}

// SIP values a systematic investment plan: P·((1+i)^n − 1)/i·(1+i).
func SIP(monthlyInvestment, annualReturn float64, years int) (*SIPResult, error) {
	if err := calc.First(
		calc.Positive("monthly_investment", monthlyInvestment),
		calc.InRange("annual_return", annualReturn, 0, 100),
	); err != nil {
		return nil, err
	}
	if years <= 0 || years > 100 {
		return nil, calc.Invalid("years", "must be between 1 and 100")
	}
	i := calc.MonthlyRate(annualReturn)
	res := &SIPResult{}
	for y := 1; y <= years; y++ {
		months := y * calc.MonthsPerYear
		bal := sipValue(monthlyInvestment, i, months)
		invested := monthlyInvestment * float64(months)
		res.Yearly = append(res.Yearly, YearRow{Year: y, Contributions: invested, Interest: bal - invested, Balance: bal})
	}
	last := res.Yearly[len(res.Yearly)-1]
	res.FutureValue = last.Balance
	res.Invested = last.Contributions
	res.Returns = last.Interest
	return res, nil
}

// Chart draws the SIP value against the amount invested.
func (r *SIPResult) Chart() *models.Chart {
	return growthChart("SIP Growth", r.Yearly)
}

// InflationResult is the output of the inflation calculator.
type InflationResult struct {
	FutureCost      float64 `json:"future_cost"`
	PurchasingPower float64 `json:"purchasing_power"`
	TotalInflation  float64 `json:"total_inflation_percent"`
}

// Inflation projects a price forward and today's money's purchasing power.
func Inflation(amount, annualRate, years float64) (*InflationResult, error) {
	if err := calc.First(
		calc.Positive("amount", amount),
		calc.InRange("annual_rate", annualRate, -50, 100),
		calc.InRange("years", years, 0, 200),
	); err != nil {
		return nil, err
	}
	growth := math.Pow(1+annualRate/100, years)
	return &InflationResult{
		FutureCost:      amount * growth,
		PurchasingPower: amount / growth,
		TotalInflation:  (growth - 1) * 100,
	}, nil
}

// SavingsGoalResult is the output of the savings goal calculator.
type SavingsGoalResult struct {
	MonthlyContribution float64 `json:"monthly_contribution"`
	ProjectedSavings    float64 `json:"projected_current_savings"`
	TotalContributions  float64 `json:"total_contributions"`
	InterestEarned      float64 `json:"interest_earned"`
	OnTrack             bool    `json:"on_track"`
}

// SavingsGoal finds the monthly deposit that reaches goal in the given years,
// after growing existing savings at the same rate.
func SavingsGoal(goal, current, annualRate, years float64) (*SavingsGoalResult, error) {
	if err := calc.First(
		calc.Positive("goal", goal),
		calc.NonNegative("current_savings", current),
		calc.InRange("annual_rate", annualRate, 0, 100),
		calc.InRange("years", years, 0, 100),
	); err != nil {
		return nil, err
	}
	if years == 0 {
		return nil, calc.Invalid("years", "must be greater than 0")
	}
	i := calc.MonthlyRate(annualRate)
	n := years * calc.MonthsPerYear
	grown := current * math.Pow(1+i, n)
	res := &SavingsGoalResult{ProjectedSavings: grown}
	need := goal - grown
	if need <= 0 {
		res.OnTrack = true
		res.InterestEarned = grown - current
		return res, nil
	}
	if i == 0 {
		res.MonthlyContribution = need / n
	} else {
		res.MonthlyContribution = need * i / (math.Pow(1+i, n) - 1)
	}
	res.TotalContributions = res.MonthlyContribution*n + current
	res.InterestEarned = goal - res.TotalContributions
	return res, nil
}

// RetirementInput is the input of the retirement calculator.
type RetirementInput struct {
	CurrentAge          int
	RetirementAge       int
	CurrentSavings      float64
	MonthlyContribution float64
	AnnualReturn        float64
	WithdrawalRate      float64
}

// RetirementResult is the output of the retirement calculator.
type RetirementResult struct {
	YearsToRetirement  int       `json:"years_to_retirement"`
	NestEgg            float64   `json:"nest_egg"`
	TotalContributions float64   `json:"total_contributions"`
	Growth             float64   `json:"growth"`
	AnnualIncome       float64   `json:"annual_income"`
	MonthlyIncome      float64   `json:"monthly_income"`
	Yearly             []YearRow `json:"yearly"`
}

// Retirement projects savings to retirement age and applies a withdrawal rate.
func Retirement(in RetirementInput) (*RetirementResult, error) {
	if in.CurrentAge < 0 || in.CurrentAge > 120 {
		return nil, calc.Invalid("current_age", "must be between 0 and 120")
	}
	if in.RetirementAge <= in.CurrentAge || in.RetirementAge > 120 {
		return nil, calc.Invalid("retirement_age", "must be after current_age and at most 120")
	}
	if err := calc.First(
		calc.NonNegative("current_savings", in.CurrentSavings),
		calc.NonNegative("monthly_contribution", in.MonthlyContribution),
		calc.InRange("annual_return", in.AnnualReturn, 0, 100),
		calc.InRange("withdrawal_rate", in.WithdrawalRate, 0, 100),
	); err != nil {
		return nil, err
	}

	i := calc.MonthlyRate(in.AnnualReturn)
	years := in.RetirementAge - in.CurrentAge
	res := &RetirementResult{YearsToRetirement: years}
	for y := 1; y <= years; y++ {
		months := y * calc.MonthsPerYear
		bal := in.CurrentSavings * math.Pow(1+i, float64(months))
		if i == 0 {
			bal += in.MonthlyContribution * float64(months)
		} else {
			bal += in.MonthlyContribution * (math.Pow(1+i, float64(months)) - 1) / i
		}
		contrib := in.CurrentSavings + in.MonthlyContribution*float64(months)
		res.Yearly = append(res.Yearly, YearRow{Year: y, Contributions: contrib, Interest: bal - contrib, Balance: bal})
	}
	last := res.Yearly[len(res.Yearly)-1]
	res.NestEgg = last.Balance
	res.TotalContributions = last.Contributions
	res.Growth = last.Interest
	res.AnnualIncome = res.NestEgg * in.WithdrawalRate / 100
	res.MonthlyIncome = res.AnnualIncome / calc.MonthsPerYear
	return res, nil
}

// Chart draws the projected nest egg.
func (r *RetirementResult) Chart() *models.Chart {
	return growthChart("Retirement Savings", r.Yearly)
}
