package finance

import (
	"github.com/bobmcallan/abacus/internal/calc"
)

// CreditCardResult is the output of the credit card payoff calculator.
type CreditCardResult struct {
	Months        int     `json:"months"`
	TotalInterest float64 `json:"total_interest"`
	TotalPaid     float64 `json:"total_paid"`
	FinalPayment  float64 `json:"final_payment"`
}

// CreditCardPayoff simulates fixed monthly payments against a revolving balance.
func CreditCardPayoff(balance, apr, monthlyPayment float64) (*CreditCardResult, error) {
	if err := calc.First(
		calc.Positive("balance", balance),
		calc.InRange("apr", apr, 0, 100),
		calc.Positive("monthly_payment", monthlyPayment),
	); err != nil {
		return nil, err
	}
	r := calc.MonthlyRate(apr)
	if monthlyPayment <= balance*r {
		return nil, calc.Invalid("monthly_payment", "must exceed the first month's interest of %.2f", balance*r)
	}

	res := &CreditCardResult{}
	for balance > 1e-9 {
		if res.Months >= maxMonths {
			return nil, calc.Invalid("monthly_payment", "is too small to clear the balance within %d months", maxMonths)
		}
		interest := balance * r
		balance += interest
		pay := monthlyPayment
		if pay > balance {
			pay = balance
		}
		balance -= pay
		res.Months++
		res.TotalInterest += interest
		res.TotalPaid += pay
		res.FinalPayment = pay
	}
	return res, nil
}

// DTIResult is the output of the debt-to-income calculator.
type DTIResult struct {
	RatioPercent float64 `json:"ratio_percent"`
	Rating       string  `json:"rating"`
}

// DebtToIncome rates monthly debt service against gross monthly income.
func DebtToIncome(monthlyDebt, monthlyIncome float64) (*DTIResult, error) {
	if err := calc.First(
		calc.NonNegative("monthly_debt", monthlyDebt),
		calc.Positive("monthly_income", monthlyIncome),
	); err != nil {
		return nil, err
	}
	ratio := monthlyDebt / monthlyIncome * 100
	rating := "healthy"
	switch {
	case ratio >= 50:
		rating = "high"
	case ratio > 35:
		rating = "manageable"
	}
	return &DTIResult{RatioPercent: ratio, Rating: rating}, nil
}
