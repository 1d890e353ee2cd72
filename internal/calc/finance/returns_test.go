package finance

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/abacus/internal/calc"
)

func TestROIAndCAGR(t *testing.T) {
	roi, err := ROI(1000, 1500, 2)
	require.NoError(t, err)
	assert.InDelta(t, 50, roi.ROIPercent, 1e-9)
	require.NotNil(t, roi.AnnualizedPercent)
	assert.InDelta(t, (math.Sqrt(1.5)-1)*100, *roi.AnnualizedPercent, 1e-9)

	noPeriod, err := ROI(1000, 900, 0)
	require.NoError(t, err)
	assert.InDelta(t, -10, noPeriod.ROIPercent, 1e-9)
	assert.Nil(t, noPeriod.AnnualizedPercent)

	cagr, err := CAGR(100, 200, 5)
	require.NoError(t, err)
	assert.InDelta(t, 14.87, cagr.CAGRPercent, 0.01)
}

func TestXIRR_OneYearTenPercent(t *testing.T) {
	res, err := XIRR([]CashFlow{
		{Date: "2023-01-01", Amount: -10000},
		{Date: "2024-01-01", Amount: 11000},
	})
	require.NoError(t, err)
	assert.InDelta(t, 10.0, res.RatePercent, 0.01)
	assert.Equal(t, 365, res.Days)
	assert.InDelta(t, 1000, res.NetGain, 1e-9)
}

func TestXIRR_Loss(t *testing.T) {
	res, err := XIRR([]CashFlow{
		{Date: "2023-01-01", Amount: -10000},
		{Date: "2024-01-01", Amount: 8000},
	})
	require.NoError(t, err)
	assert.InDelta(t, -20.0, res.RatePercent, 0.01)
}

func TestXIRR_UnsortedMultipleFlows(t *testing.T) {
	res, err := XIRR([]CashFlow{
		{Date: "2024-01-01", Amount: 2300},
		{Date: "2023-01-01", Amount: -1000},
		{Date: "2023-07-02", Amount: -1000},
	})
	require.NoError(t, err)
	assert.Greater(t, res.RatePercent, 15.0)
	assert.Less(t, res.RatePercent, 25.0)
}

func TestXIRR_Invalid(t *testing.T) {
	_, err := XIRR([]CashFlow{{Date: "2023-01-01", Amount: -1}})
	assert.True(t, calc.IsInvalidInput(err))

	_, err = XIRR([]CashFlow{{Date: "2023-01-01", Amount: -1}, {Date: "2024-01-01", Amount: -2}})
	assert.True(t, calc.IsInvalidInput(err))

	_, err = XIRR([]CashFlow{{Date: "01/01/2023", Amount: -1}, {Date: "2024-01-01", Amount: 2}})
	assert.True(t, calc.IsInvalidInput(err))
}

func TestCreditCardPayoff(t *testing.T) {
	res, err := CreditCardPayoff(1000, 0, 100)
	require.NoError(t, err)
	assert.Equal(t, 10, res.Months)
	assert.Equal(t, 0.0, res.TotalInterest)

	withInterest, err := CreditCardPayoff(5000, 18, 200)
	require.NoError(t, err)
	assert.Greater(t, withInterest.Months, 25)
	assert.InDelta(t, 5000+withInterest.TotalInterest, withInterest.TotalPaid, 1e-6)

	_, err = CreditCardPayoff(1000, 18, 15)
	assert.Equal(t, "monthly_payment", calc.FieldOf(err))
}

func TestDebtToIncome(t *testing.T) {
	res, err := DebtToIncome(1500, 5000)
	require.NoError(t, err)
	assert.InDelta(t, 30, res.RatioPercent, 1e-9)
	assert.Equal(t, "healthy", res.Rating)

	res, err = DebtToIncome(2000, 5000)
	require.NoError(t, err)
	assert.Equal(t, "manageable", res.Rating)

	res, err = DebtToIncome(3000, 5000)
	require.NoError(t, err)
	assert.Equal(t, "high", res.Rating)
}

func TestSalary(t *testing.T) {
	res, err := Salary(SalaryInput{Amount: 52000, Period: "yearly", HoursPerWeek: 40, DaysPerWeek: 5, WeeksPerYear: 52})
	require.NoError(t, err)
	assert.InDelta(t, 25, res.Hourly, 1e-9)
	assert.InDelta(t, 1000, res.Weekly, 1e-9)
	assert.InDelta(t, 200, res.Daily, 1e-9)

	back, err := Salary(SalaryInput{Amount: 25, Period: "hourly", HoursPerWeek: 40, DaysPerWeek: 5, WeeksPerYear: 52})
	require.NoError(t, err)
	assert.InDelta(t, 52000, back.Yearly, 1e-9)

	_, err = Salary(SalaryInput{Amount: 1, Period: "fortnightly", HoursPerWeek: 40, DaysPerWeek: 5, WeeksPerYear: 52})
	assert.Equal(t, "period", calc.FieldOf(err))
}
