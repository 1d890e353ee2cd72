package finance

import (
	"math"
	"sort"
	"time"

	"github.com/bobmcallan/abacus/internal/calc"
)

// CashFlow is one dated amount. Negative = money out (invested), positive = money in.
type CashFlow struct {
	Date   string  `json:"date"`
	Amount float64 `json:"amount"`
}

type datedFlow struct {
	date   time.Time
	amount float64
}

// XIRRResult is the output of the XIRR calculator.
type XIRRResult struct {
	RatePercent   float64 `json:"rate_percent"`
	TotalInvested float64 `json:"total_invested"`
	TotalReturned float64 `json:"total_returned"`
	NetGain       float64 `json:"net_gain"`
	Days          int     `json:"days"`
}

// XIRR computes the annualised internal rate of return of irregular cash
// flows using Newton-Raphson, falling back to bisection.
func XIRR(cashFlows []CashFlow) (*XIRRResult, error) {
	if len(cashFlows) < 2 {
		return nil, calc.Invalid("cash_flows", "needs at least two entries")
	}

	flows := make([]datedFlow, 0, len(cashFlows))
	for _, cf := range cashFlows {
		d, err := time.Parse("2006-01-02", cf.Date)
		if err != nil {
			return nil, calc.Invalid("cash_flows", "date %q must be YYYY-MM-DD", cf.Date)
		}
		if err := calc.Finite("cash_flows", cf.Amount); err != nil {
			return nil, err
		}
		flows = append(flows, datedFlow{date: d, amount: cf.Amount})
	}

	sort.SliceStable(flows, func(i, j int) bool {
		return flows[i].date.Before(flows[j].date)
	})

	res := &XIRRResult{}
	for _, f := range flows {
		if f.amount < 0 {
			res.TotalInvested -= f.amount
		} else {
			res.TotalReturned += f.amount
		}
	}
	// Need at least one negative and one positive flow
	if res.TotalInvested == 0 || res.TotalReturned == 0 {
		return nil, calc.Invalid("cash_flows", "needs at least one negative and one positive amount")
	}
	res.NetGain = res.TotalReturned - res.TotalInvested
	res.Days = int(flows[len(flows)-1].date.Sub(flows[0].date).Hours() / 24)
	if res.Days == 0 {
		return nil, calc.Invalid("cash_flows", "must span more than one day")
	}

	rate := solveXIRR(flows, res.TotalInvested, res.TotalReturned)
	if math.IsNaN(rate) || math.IsInf(rate, 0) {
		return nil, calc.Invalid("cash_flows", "have no solvable rate of return")
	}
	res.RatePercent = rate * 100
	return res, nil
}

// solveXIRR finds r such that NPV(r) = 0, where
// NPV(r) = Σ amount_i / (1 + r)^(days_i / 365).
// Returns the rate as a decimal (0.12 for 12%).
func solveXIRR(flows []datedFlow, invested, returned float64) float64 {
	const (
		maxIter = 100
		tol     = 1e-7
		minRate = -0.999
	)

	baseDate := flows[0].date
	years := make([]float64, len(flows))
	for i, f := range flows {
		years[i] = f.date.Sub(baseDate).Hours() / 24 / 365
	}

	rate := 0.1
	if simple := returned/invested - 1; simple > -0.9 && simple < 10 {
		rate = simple
	}

	for iter := 0; iter < maxIter; iter++ {
		npv, dnpv := 0.0, 0.0
		base := 1 + rate
		for i, f := range flows {
			discount := math.Pow(base, years[i])
			npv += f.amount / discount
			if years[i] != 0 {
				dnpv -= years[i] * f.amount / (discount * base)
			}
		}

		if math.Abs(npv) < tol {
			return rate
		}
		if dnpv == 0 {
			break
		}

		next := rate - npv/dnpv
		if next < minRate {
			next = minRate
		}
		if next > 100 {
			next = 100
		}
		rate = next
	}

	return bisectXIRR(flows, years)
}

// bisectXIRR is the fallback solver when Newton-Raphson does not converge.
func bisectXIRR(flows []datedFlow, years []float64) float64 {
	const (
		maxIter = 200
		tol     = 1e-6
	)

	npvAt := func(rate float64) float64 {
		sum := 0.0
		for i, f := range flows {
			sum += f.amount / math.Pow(1+rate, years[i])
		}
		return sum
	}

	lo, hi := -0.99, 10.0
	npvLo, npvHi := npvAt(lo), npvAt(hi)
	if npvLo*npvHi > 0 {
		return math.NaN()
	}

	for iter := 0; iter < maxIter; iter++ {
		mid := (lo + hi) / 2
		npvMid := npvAt(mid)
		if math.Abs(npvMid) < tol {
			return mid
		}
		if npvMid*npvLo < 0 {
			hi = mid
		} else {
			lo = mid
			npvLo = npvMid
		}
	}
	return (lo + hi) / 2
}
