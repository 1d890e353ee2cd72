package finance

import (
	"github.com/bobmcallan/abacus/internal/calc"
)

// DiscountResult is the output of the discount calculator.
type DiscountResult struct {
	OriginalPrice float64 `json:"original_price"`
	Savings       float64 `json:"savings"`
	FinalPrice    float64 `json:"final_price"`
}

// Discount applies a percentage discount. FinalPrice + Savings == OriginalPrice.
func Discount(originalPrice, percent float64) (*DiscountResult, error) {
	if err := calc.First(
		calc.NonNegative("original_price", originalPrice),
		calc.InRange("discount_percent", percent, 0, 100),
	); err != nil {
		return nil, err
	}
	savings := originalPrice * percent / 100
	return &DiscountResult{
		OriginalPrice: originalPrice,
		Savings:       savings,
		FinalPrice:    originalPrice - savings,
	}, nil
}

// TipResult is the output of the tip calculator.
type TipResult struct {
	Tip            float64 `json:"tip"`
	Total          float64 `json:"total"`
	TipPerPerson   float64 `json:"tip_per_person"`
	TotalPerPerson float64 `json:"total_per_person"`
}

// Tip splits a bill plus tip between people.
func Tip(bill, percent float64, people int) (*TipResult, error) {
	if err := calc.First(
		calc.Positive("bill", bill),
		calc.InRange("tip_percent", percent, 0, 100),
	); err != nil {
		return nil, err
	}
	if people < 1 {
		return nil, calc.Invalid("people", "must be at least 1")
	}
	tip := bill * percent / 100
	total := bill + tip
	return &TipResult{
		Tip:            tip,
		Total:          total,
		TipPerPerson:   tip / float64(people),
		TotalPerPerson: total / float64(people),
	}, nil
}

// TaxResult is the output of the sales tax and VAT calculators.
type TaxResult struct {
	Net   float64 `json:"net"`
	Tax   float64 `json:"tax"`
	Gross float64 `json:"gross"`
	Rate  float64 `json:"rate"`
}

// ApplyTax adds tax to a net amount, or when inclusive extracts it from a gross amount.
func ApplyTax(field string, amount, rate float64, inclusive bool) (*TaxResult, error) {
	if err := calc.First(
		calc.NonNegative(field, amount),
		calc.InRange("rate", rate, 0, 100),
	); err != nil {
		return nil, err
	}
	if inclusive {
		net := amount / (1 + rate/100)
		return &TaxResult{Net: net, Tax: amount - net, Gross: amount, Rate: rate}, nil
	}
	tax := amount * rate / 100
	return &TaxResult{Net: amount, Tax: tax, Gross: amount + tax, Rate: rate}, nil
}

// ProfitMarginResult is the output of the profit margin calculator.
type ProfitMarginResult struct {
	Profit        float64 `json:"profit"`
	MarginPercent float64 `json:"margin_percent"`
	MarkupPercent float64 `json:"markup_percent"`
}

// ProfitMargin relates profit to revenue (margin) and to cost (markup).
func ProfitMargin(cost, revenue float64) (*ProfitMarginResult, error) {
	if err := calc.First(
		calc.Positive("cost", cost),
		calc.Positive("revenue", revenue),
	); err != nil {
		return nil, err
	}
	profit := revenue - cost
	return &ProfitMarginResult{
		Profit:        profit,
		MarginPercent: profit / revenue * 100,
		MarkupPercent: profit / cost * 100,
	}, nil
}

// BreakEvenResult is the output of the break-even calculator.
type BreakEvenResult struct {
	ContributionMargin float64 `json:"contribution_margin"`
	Units              float64 `json:"units"`
	Revenue            float64 `json:"revenue"`
}

// BreakEven finds the volume where contribution covers fixed costs.
func BreakEven(fixedCosts, price, variableCost float64) (*BreakEvenResult, error) {
	if err := calc.First(
		calc.NonNegative("fixed_costs", fixedCosts),
		calc.Positive("price_per_unit", price),
		calc.NonNegative("variable_cost_per_unit", variableCost),
	); err != nil {
		return nil, err
	}
	margin := price - variableCost
	if margin <= 0 {
		return nil, calc.Invalid("price_per_unit", "must exceed variable_cost_per_unit")
	}
	units := fixedCosts / margin
	return &BreakEvenResult{ContributionMargin: margin, Units: units, Revenue: units * price}, nil
}
