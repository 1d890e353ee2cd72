package catalog

import (
	"context"
	"math"

	"github.com/bobmcallan/abacus/internal/calc"
	"github.com/bobmcallan/abacus/internal/calc/finance"
	"github.com/bobmcallan/abacus/internal/models"
)

// term resolves a loan term given either months or years.
func term(a Args) (int, error) {
	if m := a.Int("months"); m != 0 {
		return m, nil
	}
	if y := a.Float("years"); y != 0 {
		return int(math.Round(y * calc.MonthsPerYear)), nil
	}
	return 0, calc.Invalid("years", "years or months is required")
}

func (r *Registry) registerFinance() {
	fin := models.CategoryFinance
	rate := func(desc string) models.ParamDefinition { return required(num("annual_rate", desc)) }

	r.add(models.CalculatorDefinition{
		Name:        "loan",
		Title:       "Loan Calculator",
		Category:    fin,
		Description: "Monthly payment, total payment and total interest of a fully amortizing loan.",
		Formula:     "M = P·r(1+r)^n / ((1+r)^n − 1), r = annual_rate/12/100",
		Chart:       true,
		Params: []models.ParamDefinition{
			required(num("principal", "Amount borrowed")),
			rate("Annual interest rate in percent"),
			num("years", "Term in years (or use months)"),
			integer("months", "Term in months; overrides years"),
			def(boolean("include_schedule", "Include the month-by-month schedule"), false),
		},
	}, Args{"principal": 300000, "annual_rate": 6, "years": 30}, func(_ context.Context, a Args) (interface{}, error) {
		months, err := term(a)
		if err != nil {
			return nil, err
		}
		return finance.Loan(finance.LoanInput{
			Principal:       a.Float("principal"),
			AnnualRate:      a.Float("annual_rate"),
			Months:          months,
			IncludeSchedule: a.Bool("include_schedule"),
		})
	})

	r.add(models.CalculatorDefinition{
		Name:        "emi",
		Title:       "EMI Calculator",
		Category:    fin,
		Description: "Equated monthly instalment for a loan tenure in months.",
		Formula:     "EMI = P·r(1+r)^n / ((1+r)^n − 1)",
		Chart:       true,
		Params: []models.ParamDefinition{
			required(num("principal", "Loan amount")),
			rate("Annual interest rate in percent"),
			required(integer("tenure_months", "Tenure in months")),
			def(boolean("include_schedule", "Include the month-by-month schedule"), false),
		},
	}, Args{"principal": 500000, "annual_rate": 8.5, "tenure_months": 60}, func(_ context.Context, a Args) (interface{}, error) {
		return finance.Loan(finance.LoanInput{
			Principal:       a.Float("principal"),
			AnnualRate:      a.Float("annual_rate"),
			Months:          a.Int("tenure_months"),
			IncludeSchedule: a.Bool("include_schedule"),
		})
	})

	r.add(models.CalculatorDefinition{
		Name:        "mortgage",
		Title:       "Mortgage Calculator",
		Category:    fin,
		Description: "Monthly housing payment: principal and interest plus property tax, insurance, HOA and PMI (below 20% down).",
		Formula:     "total = P&I + tax/12 + insurance/12 + HOA + PMI",
		Chart:       true,
		Params: []models.ParamDefinition{
			required(num("home_price", "Purchase price")),
			def(num("down_payment", "Down payment amount"), 0),
			rate("Annual interest rate in percent"),
			def(integer("years", "Loan term in years"), 30),
			def(num("property_tax", "Annual property tax"), 0),
			def(num("insurance", "Annual homeowners insurance"), 0),
			def(num("hoa", "Monthly HOA dues"), 0),
			def(num("pmi_rate", "Annual PMI rate in percent of the loan"), 0.5),
			def(boolean("include_schedule", "Include the month-by-month schedule"), false),
		},
	}, Args{"home_price": 400000, "down_payment": 80000, "annual_rate": 6.5, "years": 30, "property_tax": 4800, "insurance": 1200}, func(_ context.Context, a Args) (interface{}, error) {
		return finance.Mortgage(finance.MortgageInput{
			HomePrice:       a.Float("home_price"),
			DownPayment:     a.Float("down_payment"),
			AnnualRate:      a.Float("annual_rate"),
			Years:           a.Int("years"),
			PropertyTax:     a.Float("property_tax"),
			Insurance:       a.Float("insurance"),
			HOA:             a.Float("hoa"),
			PMIRate:         a.Float("pmi_rate"),
			IncludeSchedule: a.Bool("include_schedule"),
		})
	})

	r.add(models.CalculatorDefinition{
		Name:        "amortization",
		Title:       "Amortization Schedule",
		Category:    fin,
		Description: "Month-by-month schedule with optional extra principal payments, showing months and interest saved.",
		Formula:     "interest_k = balance_(k−1)·r; principal_k = payment − interest_k + extra",
		Chart:       true,
		Params: []models.ParamDefinition{
			required(num("principal", "Amount borrowed")),
			rate("Annual interest rate in percent"),
			num("years", "Term in years (or use months)"),
			integer("months", "Term in months; overrides years"),
			def(num("extra_payment", "Extra principal paid each month"), 0),
		},
	}, Args{"principal": 200000, "annual_rate": 5, "years": 15, "extra_payment": 200}, func(_ context.Context, a Args) (interface{}, error) {
		months, err := term(a)
		if err != nil {
			return nil, err
		}
		return finance.Amortization(finance.AmortizationInput{
			Principal:    a.Float("principal"),
			AnnualRate:   a.Float("annual_rate"),
			Months:       months,
			ExtraPayment: a.Float("extra_payment"),
		})
	})

	r.add(models.CalculatorDefinition{
		Name:        "auto_loan",
		Title:       "Auto Loan Calculator",
		Category:    fin,
		Description: "Amount financed and monthly payment for a vehicle, including sales tax, down payment and trade-in.",
		Formula:     "financed = price + price·tax − down − trade_in",
		Params: []models.ParamDefinition{
			required(num("vehicle_price", "Vehicle price")),
			def(num("down_payment", "Cash down payment"), 0),
			def(num("trade_in", "Trade-in value"), 0),
			def(num("sales_tax_rate", "Sales tax in percent"), 0),
			rate("Annual interest rate in percent"),
			def(integer("months", "Loan term in months"), 60),
		},
	}, Args{"vehicle_price": 35000, "down_payment": 5000, "sales_tax_rate": 7, "annual_rate": 6.9, "months": 60}, func(_ context.Context, a Args) (interface{}, error) {
		return finance.AutoLoan(finance.AutoLoanInput{
			VehiclePrice: a.Float("vehicle_price"),
			DownPayment:  a.Float("down_payment"),
			TradeIn:      a.Float("trade_in"),
			SalesTaxRate: a.Float("sales_tax_rate"),
			AnnualRate:   a.Float("annual_rate"),
			Months:       a.Int("months"),
		})
	})

	r.add(models.CalculatorDefinition{
		Name:        "apr",
		Title:       "APR Calculator",
		Category:    fin,
		Description: "Effective annual percentage rate once up-front fees are deducted from the amount received.",
		Formula:     "solve PV(payment, apr/12, n) = amount − fees",
		Params: []models.ParamDefinition{
			required(num("loan_amount", "Amount borrowed")),
			def(num("fees", "Up-front fees and charges"), 0),
			rate("Nominal annual interest rate in percent"),
			required(integer("months", "Loan term in months")),
		},
	}, Args{"loan_amount": 20000, "fees": 500, "annual_rate": 7, "months": 60}, func(_ context.Context, a Args) (interface{}, error) {
		return finance.APR(finance.APRInput{
			LoanAmount: a.Float("loan_amount"),
			Fees:       a.Float("fees"),
			AnnualRate: a.Float("annual_rate"),
			Months:     a.Int("months"),
		})
	})

	r.add(models.CalculatorDefinition{
		Name:        "compound_interest",
		Title:       "Compound Interest Calculator",
		Category:    fin,
		Description: "Future value of a lump sum with optional monthly contributions, with a yearly breakdown.",
		Formula:     "A = P(1 + r/n)^(nt) + contributions compounded",
		Chart:       true,
		Params: []models.ParamDefinition{
			required(num("principal", "Initial deposit")),
			rate("Annual interest rate in percent"),
			required(num("years", "Investment period in years")),
			def(integer("compounds_per_year", "Compounding periods per year (1, 4, 12, 365)"), 12),
			def(num("monthly_contribution", "Amount added each month"), 0),
		},
	}, Args{"principal": 10000, "annual_rate": 7, "years": 10, "compounds_per_year": 12, "monthly_contribution": 100}, func(_ context.Context, a Args) (interface{}, error) {
		return finance.CompoundInterest(finance.CompoundInput{
			Principal:           a.Float("principal"),
			AnnualRate:          a.Float("annual_rate"),
			Years:               a.Float("years"),
			CompoundsPerYear:    a.Int("compounds_per_year"),
			MonthlyContribution: a.Float("monthly_contribution"),
		})
	})

	r.add(models.CalculatorDefinition{
		Name:        "simple_interest",
		Title:       "Simple Interest Calculator",
		Category:    fin,
		Description: "Interest on the principal only.",
		Formula:     "I = P·r·t",
		Params: []models.ParamDefinition{
			required(num("principal", "Principal")),
			rate("Annual interest rate in percent"),
			required(num("years", "Period in years")),
		},
	}, Args{"principal": 5000, "annual_rate": 4, "years": 3}, func(_ context.Context, a Args) (interface{}, error) {
		return finance.SimpleInterest(a.Float("principal"), a.Float("annual_rate"), a.Float("years"))
	})

	r.add(models.CalculatorDefinition{
		Name:        "sip",
		Title:       "SIP Calculator",
		Category:    fin,
		Description: "Maturity value of a systematic investment plan with monthly contributions at the start of each month.",
		Formula:     "FV = P·((1+i)^n − 1)/i·(1+i), i = annual_return/12/100",
		Chart:       true,
		Params: []models.ParamDefinition{
			required(num("monthly_investment", "Amount invested each month")),
			required(num("annual_return", "Expected annual return in percent")),
			required(integer("years", "Investment period in years")),
		},
	}, Args{"monthly_investment": 5000, "annual_return": 12, "years": 10}, func(_ context.Context, a Args) (interface{}, error) {
		return finance.SIP(a.Float("monthly_investment"), a.Float("annual_return"), a.Int("years"))
	})

	r.add(models.CalculatorDefinition{
		Name:        "discount",
		Title:       "Discount Calculator",
		Category:    fin,
		Description: "Savings and final price after a percentage discount.",
		Formula:     "savings = price·pct/100; final = price − savings",
		Params: []models.ParamDefinition{
			required(num("original_price", "Price before discount")),
			required(num("discount_percent", "Discount from 0 to 100")),
		},
	}, Args{"original_price": 99.99, "discount_percent": 20}, func(_ context.Context, a Args) (interface{}, error) {
		return finance.Discount(a.Float("original_price"), a.Float("discount_percent"))
	})

	r.add(models.CalculatorDefinition{
		Name:        "tip",
		Title:       "Tip Calculator",
		Category:    fin,
		Description: "Tip and total, optionally split between people.",
		Formula:     "tip = bill·pct/100; per person = (bill + tip)/people",
		Params: []models.ParamDefinition{
			required(num("bill", "Bill amount")),
			def(num("tip_percent", "Tip percentage"), 15),
			def(integer("people", "Number of people splitting"), 1),
		},
	}, Args{"bill": 84.5, "tip_percent": 18, "people": 3}, func(_ context.Context, a Args) (interface{}, error) {
		return finance.Tip(a.Float("bill"), a.Float("tip_percent"), a.Int("people"))
	})

	r.add(models.CalculatorDefinition{
		Name:        "sales_tax",
		Title:       "Sales Tax Calculator",
		Category:    fin,
		Description: "Adds sales tax to a price, or extracts it from a tax-inclusive price.",
		Formula:     "gross = net·(1 + rate/100)",
		Params: []models.ParamDefinition{
			required(num("price", "Price")),
			required(num("tax_rate", "Tax rate in percent")),
			def(boolean("inclusive", "Price already includes tax"), false),
		},
	}, Args{"price": 250, "tax_rate": 8.25}, func(_ context.Context, a Args) (interface{}, error) {
		return finance.ApplyTax("price", a.Float("price"), a.Float("tax_rate"), a.Bool("inclusive"))
	})

	r.add(models.CalculatorDefinition{
		Name:        "vat",
		Title:       "VAT Calculator",
		Category:    fin,
		Description: "Adds VAT to a net amount or removes it from a gross amount.",
		Formula:     "add: gross = net·(1 + rate/100); remove: net = gross/(1 + rate/100)",
		Params: []models.ParamDefinition{
			required(num("amount", "Amount")),
			def(num("rate", "VAT rate in percent"), 20),
			def(oneOf(str("mode", "add or remove VAT"), "add", "remove"), "add"),
		},
	}, Args{"amount": 120, "rate": 20, "mode": "remove"}, func(_ context.Context, a Args) (interface{}, error) {
		return finance.ApplyTax("amount", a.Float("amount"), a.Float("rate"), a.String("mode") == "remove")
	})

	r.add(models.CalculatorDefinition{
		Name:        "roi",
		Title:       "ROI Calculator",
		Category:    fin,
		Description: "Return on investment, annualized when a holding period is given.",
		Formula:     "ROI = (final − initial)/initial·100",
		Params: []models.ParamDefinition{
			required(num("initial_investment", "Amount invested")),
			required(num("final_value", "Value at the end")),
			num("years", "Holding period in years"),
		},
	}, Args{"initial_investment": 10000, "final_value": 15000, "years": 3}, func(_ context.Context, a Args) (interface{}, error) {
		return finance.ROI(a.Float("initial_investment"), a.Float("final_value"), a.Float("years"))
	})

	r.add(models.CalculatorDefinition{
		Name:        "cagr",
		Title:       "CAGR Calculator",
		Category:    fin,
		Description: "Compound annual growth rate between two values.",
		Formula:     "CAGR = (end/start)^(1/years) − 1",
		Params: []models.ParamDefinition{
			required(num("start_value", "Starting value")),
			required(num("end_value", "Ending value")),
			required(num("years", "Number of years")),
		},
	}, Args{"start_value": 10000, "end_value": 20000, "years": 5}, func(_ context.Context, a Args) (interface{}, error) {
		return finance.CAGR(a.Float("start_value"), a.Float("end_value"), a.Float("years"))
	})

	r.add(models.CalculatorDefinition{
		Name:        "inflation",
		Title:       "Inflation Calculator",
		Category:    fin,
		Description: "Future cost of today's amount and the purchasing power it retains.",
		Formula:     "future = amount·(1 + rate/100)^years",
		Params: []models.ParamDefinition{
			required(num("amount", "Amount today")),
			def(num("annual_rate", "Annual inflation in percent"), 3),
			required(num("years", "Number of years")),
		},
	}, Args{"amount": 1000, "annual_rate": 3, "years": 10}, func(_ context.Context, a Args) (interface{}, error) {
		return finance.Inflation(a.Float("amount"), a.Float("annual_rate"), a.Float("years"))
	})

	r.add(models.CalculatorDefinition{
		Name:        "savings_goal",
		Title:       "Savings Goal Calculator",
		Category:    fin,
		Description: "Monthly saving needed to reach a goal by a deadline.",
		Formula:     "PMT = (goal − current·(1+i)^n)·i/((1+i)^n − 1)",
		Params: []models.ParamDefinition{
			required(num("goal", "Target amount")),
			def(num("current_savings", "Amount already saved"), 0),
			def(num("annual_rate", "Annual return in percent"), 0),
			required(num("years", "Years to the goal")),
		},
	}, Args{"goal": 50000, "current_savings": 5000, "annual_rate": 4, "years": 5}, func(_ context.Context, a Args) (interface{}, error) {
		return finance.SavingsGoal(a.Float("goal"), a.Float("current_savings"), a.Float("annual_rate"), a.Float("years"))
	})

	r.add(models.CalculatorDefinition{
		Name:        "retirement",
		Title:       "Retirement Calculator",
		Category:    fin,
		Description: "Projected nest egg at retirement and the annual income it supports at a withdrawal rate.",
		Formula:     "nest_egg = FV(savings) + FV(contributions); income = nest_egg·withdrawal_rate",
		Chart:       true,
		Params: []models.ParamDefinition{
			required(integer("current_age", "Current age")),
			def(integer("retirement_age", "Planned retirement age"), 65),
			def(num("current_savings", "Current retirement savings"), 0),
			def(num("monthly_contribution", "Monthly contribution"), 0),
			def(num("annual_return", "Expected annual return in percent"), 7),
			def(num("withdrawal_rate", "Safe withdrawal rate in percent"), 4),
		},
	}, Args{"current_age": 35, "retirement_age": 65, "current_savings": 50000, "monthly_contribution": 500}, func(_ context.Context, a Args) (interface{}, error) {
		return finance.Retirement(finance.RetirementInput{
			CurrentAge:          a.Int("current_age"),
			RetirementAge:       a.Int("retirement_age"),
			CurrentSavings:      a.Float("current_savings"),
			MonthlyContribution: a.Float("monthly_contribution"),
			AnnualReturn:        a.Float("annual_return"),
			WithdrawalRate:      a.Float("withdrawal_rate"),
		})
	})

	r.add(models.CalculatorDefinition{
		Name:        "credit_card_payoff",
		Title:       "Credit Card Payoff Calculator",
		Category:    fin,
		Description: "Months to clear a card balance with a fixed payment, and the interest paid.",
		Formula:     "balance_k = balance_(k−1)·(1 + apr/1200) − payment",
		Params: []models.ParamDefinition{
			required(num("balance", "Current balance")),
			required(num("apr", "Card APR in percent")),
			required(num("monthly_payment", "Fixed monthly payment")),
		},
	}, Args{"balance": 5000, "apr": 22.9, "monthly_payment": 200}, func(_ context.Context, a Args) (interface{}, error) {
		return finance.CreditCardPayoff(a.Float("balance"), a.Float("apr"), a.Float("monthly_payment"))
	})

	r.add(models.CalculatorDefinition{
		Name:        "break_even",
		Title:       "Break-Even Calculator",
		Category:    fin,
		Description: "Units and revenue needed to cover fixed costs.",
		Formula:     "units = fixed/(price − variable)",
		Params: []models.ParamDefinition{
			required(num("fixed_costs", "Total fixed costs")),
			required(num("price_per_unit", "Selling price per unit")),
			required(num("variable_cost_per_unit", "Variable cost per unit")),
		},
	}, Args{"fixed_costs": 10000, "price_per_unit": 50, "variable_cost_per_unit": 30}, func(_ context.Context, a Args) (interface{}, error) {
		return finance.BreakEven(a.Float("fixed_costs"), a.Float("price_per_unit"), a.Float("variable_cost_per_unit"))
	})

	r.add(models.CalculatorDefinition{
		Name:        "profit_margin",
		Title:       "Profit Margin Calculator",
		Category:    fin,
		Description: "Profit, margin and markup from cost and revenue.",
		Formula:     "margin = (revenue − cost)/revenue; markup = (revenue − cost)/cost",
		Params: []models.ParamDefinition{
			required(num("cost", "Cost")),
			required(num("revenue", "Revenue or selling price")),
		},
	}, Args{"cost": 60, "revenue": 100}, func(_ context.Context, a Args) (interface{}, error) {
		return finance.ProfitMargin(a.Float("cost"), a.Float("revenue"))
	})

	r.add(models.CalculatorDefinition{
		Name:        "salary",
		Title:       "Salary Converter",
		Category:    fin,
		Description: "Converts pay between hourly, daily, weekly, biweekly, semimonthly, monthly and yearly.",
		Formula:     "yearly = amount × periods per year",
		Params: []models.ParamDefinition{
			required(num("amount", "Pay amount")),
			def(oneOf(str("period", "Pay period of amount"), finance.SalaryPeriods...), "yearly"),
			def(num("hours_per_week", "Working hours per week"), 40),
			def(num("days_per_week", "Working days per week"), 5),
			def(num("weeks_per_year", "Paid weeks per year"), 52),
		},
	}, Args{"amount": 75000, "period": "yearly"}, func(_ context.Context, a Args) (interface{}, error) {
		return finance.Salary(finance.SalaryInput{
			Amount:       a.Float("amount"),
			Period:       a.String("period"),
			HoursPerWeek: a.Float("hours_per_week"),
			DaysPerWeek:  a.Float("days_per_week"),
			WeeksPerYear: a.Float("weeks_per_year"),
		})
	})

	r.add(models.CalculatorDefinition{
		Name:        "debt_to_income",
		Title:       "Debt-to-Income Ratio",
		Category:    fin,
		Description: "Monthly debt payments as a share of gross monthly income.",
		Formula:     "DTI = debt/income·100",
		Params: []models.ParamDefinition{
			required(num("monthly_debt", "Total monthly debt payments")),
			required(num("monthly_income", "Gross monthly income")),
		},
	}, Args{"monthly_debt": 2000, "monthly_income": 6000}, func(_ context.Context, a Args) (interface{}, error) {
		return finance.DebtToIncome(a.Float("monthly_debt"), a.Float("monthly_income"))
	})

	r.add(models.CalculatorDefinition{
		Name:        "xirr",
		Title:       "XIRR Calculator",
		Category:    fin,
		Description: "Annualized internal rate of return of dated, irregular cash flows (negative = invested).",
		Formula:     "solve Σ amount_i/(1+rate)^((d_i − d_0)/365) = 0",
		Params: []models.ParamDefinition{
			required(array("cash_flows", `Cash flows as [{"date":"YYYY-MM-DD","amount":-1000}, ...]`)),
		},
	}, Args{"cash_flows": []interface{}{
		map[string]interface{}{"date": "2023-01-01", "amount": -10000},
		map[string]interface{}{"date": "2023-07-01", "amount": -5000},
		map[string]interface{}{"date": "2024-12-31", "amount": 17500},
	}}, func(_ context.Context, a Args) (interface{}, error) {
		var flows []finance.CashFlow
		if err := a.Decode("cash_flows", &flows); err != nil {
			return nil, err
		}
		return finance.XIRR(flows)
	})

	if r.currency == nil {
		return
	}
	r.add(models.CalculatorDefinition{
		Name:        "currency",
		Title:       "Currency Converter",
		Category:    fin,
		Description: "Converts between currencies at live rates, falling back to a built-in table when the rate service is unreachable.",
		Formula:     "converted = amount × rate(from→to)",
		Params: []models.ParamDefinition{
			required(num("amount", "Amount to convert")),
			required(str("from", "ISO 4217 source currency, e.g. USD")),
			required(str("to", "ISO 4217 target currency, e.g. EUR")),
		},
	}, Args{"amount": 100, "from": "USD", "to": "EUR"}, func(ctx context.Context, a Args) (interface{}, error) {
		return r.currency.Convert(ctx, a.Float("amount"), a.String("from"), a.String("to"))
	})
}
