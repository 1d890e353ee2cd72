package chart

import (
	"bytes"
	"errors"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/abacus/internal/calc/finance"
	"github.com/bobmcallan/abacus/internal/models"
)

func TestRenderResult_Loan(t *testing.T) {
	res, err := finance.Loan(finance.LoanInput{Principal: 300000, AnnualRate: 6, Months: 360, IncludeSchedule: true})
	require.NoError(t, err)

	data, err := RenderResult(res)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, Width, img.Bounds().Dx())
	assert.Equal(t, Height, img.Bounds().Dy())
}

func TestRenderResult_NotChartable(t *testing.T) {
	_, err := RenderResult(struct{}{})
	assert.True(t, errors.Is(err, ErrNoChart))
}

func TestRender_Validation(t *testing.T) {
	_, err := Render(&models.Chart{Series: []models.ChartSeries{{Name: "a", X: []float64{1, 2}, Y: []float64{1}}}})
	assert.Error(t, err)

	_, err = Render(&models.Chart{Series: []models.ChartSeries{{Name: "a", X: []float64{1}, Y: []float64{1}}}})
	assert.True(t, errors.Is(err, ErrNoChart))
}

func TestMoneyTick(t *testing.T) {
	assert.Equal(t, "$1.5m", moneyTick(1.5e6))
	assert.Equal(t, "$250k", moneyTick(250000))
	assert.Equal(t, "$40", moneyTick(40))
}

func TestRenderResult_LoanWithoutSchedule(t *testing.T) {
	res, err := finance.Loan(finance.LoanInput{Principal: 1000, AnnualRate: 5, Months: 12})
	require.NoError(t, err)
	_, err = RenderResult(res)
	assert.True(t, errors.Is(err, ErrNoChart))
}
