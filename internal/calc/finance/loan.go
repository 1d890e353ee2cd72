// Package finance implements the loan, interest, pricing and return calculators.
package finance

import (
	"math"

	"github.com/bobmcallan/abacus/internal/calc"
	"github.com/bobmcallan/abacus/internal/models"
)

// maxMonths caps loan terms at 100 years.
const maxMonths = 1200

// ScheduleRow is one month of an amortization schedule.
type ScheduleRow struct {
	Month              int     `json:"month"`
	Payment            float64 `json:"payment"`
	Principal          float64 `json:"principal"`
	Interest           float64 `json:"interest"`
	Balance            float64 `json:"balance"`
	CumulativeInterest float64 `json:"cumulative_interest"`
}

// MonthlyPayment returns the level payment M = P·r(1+r)^n / ((1+r)^n − 1),
// or P/n when the rate is zero.
func MonthlyPayment(principal, annualRate float64, months int) float64 {
	r := calc.MonthlyRate(annualRate)
	n := float64(months)
	if r == 0 {
		return principal / n
	}
	f := math.Pow(1+r, n)
	return principal * r * f / (f - 1)
}

// BuildSchedule walks the loan month by month. extra is added to every
// payment; the loop stops early once the balance is repaid.
func BuildSchedule(principal, annualRate float64, months int, extra float64) []ScheduleRow {
	r := calc.MonthlyRate(annualRate)
	payment := MonthlyPayment(principal, annualRate, months)
	balance := principal
	cumulative := 0.0

	rows := make([]ScheduleRow, 0, months)
	for m := 1; m <= months && balance > 1e-9; m++ {
		interest := balance * r
		toPrincipal := payment - interest + extra
		if toPrincipal > balance || m == months {
			toPrincipal = balance
		}
		balance -= toPrincipal
		if math.Abs(balance) < 1e-6 {
			balance = 0
		}
		cumulative += interest
		rows = append(rows, ScheduleRow{
			Month:              m,
			Payment:            toPrincipal + interest,
			Principal:          toPrincipal,
			Interest:           interest,
			Balance:            balance,
			CumulativeInterest: cumulative,
		})
	}
	return rows
}

func validateLoan(principal, annualRate float64, months int) error {
	if err := calc.Positive("principal", principal); err != nil {
		return err
	}
	if err := calc.InRange("annual_rate", annualRate, 0, 100); err != nil {
		return err
	}
	if months <= 0 || months > maxMonths {
		return calc.Invalid("months", "must be between 1 and %d", maxMonths)
	}
	return nil
}

// LoanInput is the input of the loan and emi calculators.
type LoanInput struct {
	Principal       float64
	AnnualRate      float64
	Months          int
	IncludeSchedule bool
}

// LoanResult is the output of the loan and emi calculators.
type LoanResult struct {
	MonthlyPayment float64       `json:"monthly_payment"`
	TotalPayment   float64       `json:"total_payment"`
	TotalInterest  float64       `json:"total_interest"`
	Months         int           `json:"months"`
	Schedule       []ScheduleRow `json:"schedule,omitempty"`
}

// Loan computes the level monthly payment for a fully amortizing loan.
func Loan(in LoanInput) (*LoanResult, error) {
	if err := validateLoan(in.Principal, in.AnnualRate, in.Months); err != nil {
		return nil, err
	}
	payment := MonthlyPayment(in.Principal, in.AnnualRate, in.Months)
	total := payment * float64(in.Months)
	res := &LoanResult{
		MonthlyPayment: payment,
		TotalPayment:   total,
		TotalInterest:  total - in.Principal,
		Months:         in.Months,
	}
	if in.IncludeSchedule {
		res.Schedule = BuildSchedule(in.Principal, in.AnnualRate, in.Months, 0)
	}
	return res, nil
}

// Chart draws the remaining balance and cumulative interest.
func (r *LoanResult) Chart() *models.Chart {
	return scheduleChart("Loan Amortization", r.Schedule)
}

// AmortizationInput is the input of the amortization calculator.
type AmortizationInput struct {
	Principal    float64
	AnnualRate   float64
	Months       int
	ExtraPayment float64
}

// AmortizationResult compares the scheduled payoff with the extra-payment payoff.
type AmortizationResult struct {
	MonthlyPayment float64       `json:"monthly_payment"`
	TotalInterest  float64       `json:"total_interest"`
	TotalPaid      float64       `json:"total_paid"`
	PayoffMonths   int           `json:"payoff_months"`
	MonthsSaved    int           `json:"months_saved"`
	InterestSaved  float64       `json:"interest_saved"`
	Schedule       []ScheduleRow `json:"schedule"`
}

// Amortization builds the month-by-month schedule, applying any extra payment.
func Amortization(in AmortizationInput) (*AmortizationResult, error) {
	if err := validateLoan(in.Principal, in.AnnualRate, in.Months); err != nil {
		return nil, err
	}
	if err := calc.NonNegative("extra_payment", in.ExtraPayment); err != nil {
		return nil, err
	}

	payment := MonthlyPayment(in.Principal, in.AnnualRate, in.Months)
	baseline := payment*float64(in.Months) - in.Principal

	rows := BuildSchedule(in.Principal, in.AnnualRate, in.Months, in.ExtraPayment)
	res := &AmortizationResult{
		MonthlyPayment: payment,
		PayoffMonths:   len(rows),
		MonthsSaved:    in.Months - len(rows),
		Schedule:       rows,
	}
	for _, row := range rows {
		res.TotalPaid += row.Payment
	}
	if len(rows) > 0 {
		res.TotalInterest = rows[len(rows)-1].CumulativeInterest
	}
	res.InterestSaved = math.Max(0, baseline-res.TotalInterest)
	return res, nil
}

// Chart draws the remaining balance and cumulative interest.
func (r *AmortizationResult) Chart() *models.Chart {
	return scheduleChart("Amortization Schedule", r.Schedule)
}

func scheduleChart(title string, rows []ScheduleRow) *models.Chart {
	if len(rows) < 2 {
		return nil
	}
	x := make([]float64, len(rows))
	balance := make([]float64, len(rows))
	interest := make([]float64, len(rows))
	for i, row := range rows {
		x[i] = float64(row.Month)
		balance[i] = row.Balance
		interest[i] = row.CumulativeInterest
	}
	return &models.Chart{
		Title:  title,
		XLabel: "Month",
		YLabel: "Amount",
		Money:  true,
		Series: []models.ChartSeries{
			{Name: "Balance", X: x, Y: balance},
			{Name: "Cumulative Interest", X: x, Y: interest},
		},
	}
}

// MortgageInput is the input of the mortgage calculator. Taxes and insurance
// are annual amounts; HOA is monthly.
type MortgageInput struct {
	HomePrice       float64
	DownPayment     float64
	AnnualRate      float64
	Years           int
	PropertyTax     float64
	Insurance       float64
	HOA             float64
	PMIRate         float64
	IncludeSchedule bool
}

// MortgageResult breaks the monthly housing payment into its parts.
type MortgageResult struct {
	LoanAmount           float64       `json:"loan_amount"`
	DownPaymentPercent   float64       `json:"down_payment_percent"`
	PrincipalAndInterest float64       `json:"principal_and_interest"`
	MonthlyPropertyTax   float64       `json:"monthly_property_tax"`
	MonthlyInsurance     float64       `json:"monthly_insurance"`
	MonthlyPMI           float64       `json:"monthly_pmi"`
	MonthlyHOA           float64       `json:"monthly_hoa"`
	TotalMonthly         float64       `json:"total_monthly"`
	TotalInterest        float64       `json:"total_interest"`
	TotalCost            float64       `json:"total_cost"`
	Schedule             []ScheduleRow `json:"schedule,omitempty"`
}

// Mortgage computes principal and interest plus escrowed costs. PMI applies
// while the down payment is under 20% of the price.
func Mortgage(in MortgageInput) (*MortgageResult, error) {
	if err := calc.First(
		calc.Positive("home_price", in.HomePrice),
		calc.NonNegative("down_payment", in.DownPayment),
		calc.NonNegative("property_tax", in.PropertyTax),
		calc.NonNegative("insurance", in.Insurance),
		calc.NonNegative("hoa", in.HOA),
		calc.InRange("pmi_rate", in.PMIRate, 0, 10),
	); err != nil {
		return nil, err
	}
	if in.DownPayment >= in.HomePrice {
		return nil, calc.Invalid("down_payment", "must be less than home_price")
	}
	loan := in.HomePrice - in.DownPayment
	months := in.Years * calc.MonthsPerYear
	if err := validateLoan(loan, in.AnnualRate, months); err != nil {
		if calc.FieldOf(err) == "months" {
			return nil, calc.Invalid("years", "must be between 1 and %d", maxMonths/calc.MonthsPerYear)
		}
		return nil, err
	}

	pi := MonthlyPayment(loan, in.AnnualRate, months)
	res := &MortgageResult{
		LoanAmount:           loan,
		DownPaymentPercent:   in.DownPayment / in.HomePrice * 100,
		PrincipalAndInterest: pi,
		MonthlyPropertyTax:   in.PropertyTax / calc.MonthsPerYear,
		MonthlyInsurance:     in.Insurance / calc.MonthsPerYear,
		MonthlyHOA:           in.HOA,
		TotalInterest:        pi*float64(months) - loan,
	}
	if res.DownPaymentPercent < 20 {
		res.MonthlyPMI = loan * in.PMIRate / 100 / calc.MonthsPerYear
	}
	res.TotalMonthly = pi + res.MonthlyPropertyTax + res.MonthlyInsurance + res.MonthlyPMI + res.MonthlyHOA
	res.TotalCost = res.TotalMonthly*float64(months) + in.DownPayment
	if in.IncludeSchedule {
		res.Schedule = BuildSchedule(loan, in.AnnualRate, months, 0)
	}
	return res, nil
}

// Chart draws the remaining balance and cumulative interest.
func (r *MortgageResult) Chart() *models.Chart {
	return scheduleChart("Mortgage Amortization", r.Schedule)
}

// AutoLoanInput is the input of the auto loan calculator.
type AutoLoanInput struct {
	VehiclePrice float64
	DownPayment  float64
	TradeIn      float64
	SalesTaxRate float64
	AnnualRate   float64
	Months       int
}

// AutoLoanResult is the output of the auto loan calculator.
type AutoLoanResult struct {
	SalesTax       float64 `json:"sales_tax"`
	AmountFinanced float64 `json:"amount_financed"`
	MonthlyPayment float64 `json:"monthly_payment"`
	TotalInterest  float64 `json:"total_interest"`
	TotalCost      float64 `json:"total_cost"`
}

// AutoLoan taxes the price net of trade-in, then finances what the down
// payment and trade-in do not cover.
func AutoLoan(in AutoLoanInput) (*AutoLoanResult, error) {
	if err := calc.First(
		calc.Positive("vehicle_price", in.VehiclePrice),
		calc.NonNegative("down_payment", in.DownPayment),
		calc.NonNegative("trade_in", in.TradeIn),
		calc.InRange("sales_tax_rate", in.SalesTaxRate, 0, 100),
	); err != nil {
		return nil, err
	}
	taxable := math.Max(0, in.VehiclePrice-in.TradeIn)
	tax := taxable * in.SalesTaxRate / 100
	financed := in.VehiclePrice + tax - in.DownPayment - in.TradeIn
	if financed <= 0 {
		return nil, calc.Invalid("down_payment", "and trade_in cover the full price; nothing to finance")
	}
	if err := validateLoan(financed, in.AnnualRate, in.Months); err != nil {
		return nil, err
	}
	payment := MonthlyPayment(financed, in.AnnualRate, in.Months)
	interest := payment*float64(in.Months) - financed
	return &AutoLoanResult{
		SalesTax:       tax,
		AmountFinanced: financed,
		MonthlyPayment: payment,
		TotalInterest:  interest,
		TotalCost:      in.VehiclePrice + tax + interest,
	}, nil
}

// APRInput is the input of the APR calculator.
type APRInput struct {
	LoanAmount float64
	Fees       float64
	AnnualRate float64
	Months     int
}

// APRResult is the output of the APR calculator.
type APRResult struct {
	APR            float64 `json:"apr"`
	MonthlyPayment float64 `json:"monthly_payment"`
	AmountReceived float64 `json:"amount_received"`
	TotalInterest  float64 `json:"total_interest"`
	TotalCost      float64 `json:"total_cost"`
}

// maxAPRMonthlyRate bounds the APR search (1200% a year).
const maxAPRMonthlyRate = 1.0

// APR finds the annual rate at which the scheduled payments discount back to
// the amount actually received (loan minus upfront fees).
func APR(in APRInput) (*APRResult, error) {
	if err := validateLoan(in.LoanAmount, in.AnnualRate, in.Months); err != nil {
		return nil, err
	}
	if err := calc.NonNegative("fees", in.Fees); err != nil {
		return nil, err
	}
	if in.Fees >= in.LoanAmount {
		return nil, calc.Invalid("fees", "must be less than loan_amount")
	}

	payment := MonthlyPayment(in.LoanAmount, in.AnnualRate, in.Months)
	received := in.LoanAmount - in.Fees
	n := float64(in.Months)

	res := &APRResult{
		MonthlyPayment: payment,
		AmountReceived: received,
		TotalInterest:  payment*n - in.LoanAmount,
		TotalCost:      payment*n - in.LoanAmount + in.Fees,
	}
	if in.Fees == 0 {
		res.APR = in.AnnualRate
		return res, nil
	}

	presentValue := func(i float64) float64 {
		if i == 0 {
			return payment * n
		}
		return payment * (1 - math.Pow(1+i, -n)) / i
	}

	// monthly rate bracket; present value falls as the rate rises
	lo, hi := 0.0, maxAPRMonthlyRate
	if presentValue(hi) > received {
		return nil, calc.Invalid("fees", "imply an APR above %g%%", hi*calc.MonthsPerYear*100)
	}
	for iter := 0; iter < 200; iter++ {
		mid := (lo + hi) / 2
		if presentValue(mid) > received {
			lo = mid
		} else {
			hi = mid
		}
		if hi-lo < 1e-12 {
			break
		}
	}
	res.APR = (lo + hi) / 2 * calc.MonthsPerYear * 100
	return res, nil
}
