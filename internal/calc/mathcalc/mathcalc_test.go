package mathcalc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/abacus/internal/calc"
)

func TestPercentage(t *testing.T) {
	tests := []struct {
		mode string
		x, y float64
		want float64
	}{
		{PercentOf, 20, 150, 30},
		{WhatPercent, 30, 150, 20},
		{PercentChange, 50, 75, 50},
		{PercentChange, 80, 60, -25},
	}
	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			res, err := Percentage(tt.mode, tt.x, tt.y)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, res.Result, 1e-9)
		})
	}

	_, err := Percentage(WhatPercent, 1, 0)
	assert.True(t, calc.IsInvalidInput(err))
	_, err = Percentage("bogus", 1, 1)
	assert.True(t, calc.IsInvalidInput(err))
}

func TestFractionOp(t *testing.T) {
	f, err := FractionOp(1, 2, "+", 1, 3)
	require.NoError(t, err)
	assert.Equal(t, "5/6", f.Text)

	f, err = FractionOp(3, 4, "/", 3, 8)
	require.NoError(t, err)
	assert.Equal(t, "2", f.Text)

	f, err = FractionOp(7, -2, "*", 1, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(-7), f.Numerator)
	assert.Equal(t, int64(2), f.Denominator)
	assert.Equal(t, "-3 1/2", f.Mixed)

	_, err = FractionOp(1, 0, "+", 1, 2)
	assert.Equal(t, "denominator1", calc.FieldOf(err))
	_, err = FractionOp(1, 2, "/", 0, 2)
	assert.True(t, calc.IsInvalidInput(err))
}

func TestGCDLCM(t *testing.T) {
	res, err := GCDLCM([]int64{12, 18, 30})
	require.NoError(t, err)
	assert.Equal(t, int64(6), res.GCD)
	assert.Equal(t, int64(180), res.LCM)

	_, err = GCDLCM([]int64{4})
	assert.True(t, calc.IsInvalidInput(err))
	_, err = GCDLCM([]int64{4, 0})
	assert.True(t, calc.IsInvalidInput(err))
}

func TestQuadratic(t *testing.T) {
	res, err := Quadratic(1, -3, 2)
	require.NoError(t, err)
	assert.Equal(t, "two_real", res.RootType)
	assert.ElementsMatch(t, []float64{1, 2}, res.RealRoots)

	res, err = Quadratic(1, 2, 1)
	require.NoError(t, err)
	assert.Equal(t, "one_real", res.RootType)
	assert.Equal(t, []float64{-1}, res.RealRoots)

	res, err = Quadratic(1, 2, 5)
	require.NoError(t, err)
	assert.Equal(t, "complex", res.RootType)
	assert.Equal(t, []string{"-1 + 2i", "-1 - 2i"}, res.Roots)

	_, err = Quadratic(0, 1, 1)
	assert.Equal(t, "a", calc.FieldOf(err))
}

func TestStatistics(t *testing.T) {
	res, err := Statistics([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	require.NoError(t, err)
	assert.Equal(t, 8, res.Count)
	assert.InDelta(t, 5, res.Mean, 1e-12)
	assert.InDelta(t, 4.5, res.Median, 1e-12)
	assert.Equal(t, []float64{4}, res.Modes)
	assert.InDelta(t, 2, res.PopulationStdDev, 1e-12)
	require.NotNil(t, res.SampleStdDev)
	assert.InDelta(t, 2.138, *res.SampleStdDev, 1e-3)

	single, err := Statistics([]float64{3})
	require.NoError(t, err)
	assert.Nil(t, single.SampleVar)
	assert.Empty(t, single.Modes)

	_, err = Statistics(nil)
	assert.True(t, calc.IsInvalidInput(err))
}

func TestGPA(t *testing.T) {
	// A (4 credits) + B (3 credits) = (16 + 9) / 7
	res, err := GPA([]Course{{Grade: "A", Credits: 4}, {Grade: "B", Credits: 3}})
	require.NoError(t, err)
	assert.Equal(t, 3.57, res.GPA)
	assert.Equal(t, 7.0, res.TotalCredits)

	// A (3 credits) + B (4 credits) = (12 + 12) / 7
	res, err = GPA([]Course{{Grade: "a", Credits: 3}, {Grade: "B", Credits: 4}})
	require.NoError(t, err)
	assert.Equal(t, 3.43, res.GPA)

	_, err = GPA([]Course{{Grade: "Q", Credits: 3}})
	assert.Equal(t, "grade", calc.FieldOf(err))
	_, err = GPA([]Course{{Grade: "A", Credits: 0}})
	assert.Equal(t, "credits", calc.FieldOf(err))
}

func TestGrade(t *testing.T) {
	res, err := Grade(45, 50)
	require.NoError(t, err)
	assert.Equal(t, "A-", res.Letter)
	assert.InDelta(t, 90, res.Percent, 1e-9)

	res, err = Grade(10, 50)
	require.NoError(t, err)
	assert.Equal(t, "F", res.Letter)

	_, err = Grade(60, 50)
	assert.True(t, calc.IsInvalidInput(err))
}

func TestPrimeAndFactorial(t *testing.T) {
	p, err := Prime(97)
	require.NoError(t, err)
	assert.True(t, p.IsPrime)

	p, err = Prime(360)
	require.NoError(t, err)
	assert.False(t, p.IsPrime)
	assert.Equal(t, []int64{2, 2, 2, 3, 3, 5}, p.Factors)

	f, err := Factorial(20)
	require.NoError(t, err)
	assert.Equal(t, "2432902008176640000", f.Value)

	f, err = Factorial(0)
	require.NoError(t, err)
	assert.Equal(t, "1", f.Value)

	_, err = Factorial(-1)
	assert.True(t, calc.IsInvalidInput(err))
}

func TestScientificNotation(t *testing.T) {
	res, err := ScientificNotation(123456, 3)
	require.NoError(t, err)
	assert.Equal(t, 1.23, res.Mantissa)
	assert.Equal(t, 5, res.Exponent)
	assert.Equal(t, "1.23e+05", res.ENotation)
}

func TestRoundValue(t *testing.T) {
	tests := []struct {
		v      float64
		places int
		mode   string
		want   float64
	}{
		{1.005, 2, RoundHalfUp, 1.01},
		{2.5, 0, RoundHalfEven, 2},
		{3.5, 0, RoundHalfEven, 4},
		{-2.5, 0, RoundHalfUp, -3},
		{1.21, 1, RoundUp, 1.3},
		{-1.21, 1, RoundUp, -1.2},
		{-1.21, 1, RoundDown, -1.3},
		{1.29, 1, RoundDown, 1.2},
	}
	for _, tt := range tests {
		got, err := RoundValue(tt.v, tt.places, tt.mode)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "%v %d %s", tt.v, tt.places, tt.mode)
	}
}

func TestNumberBase(t *testing.T) {
	res, err := NumberBase("0xff", 16, 2)
	require.NoError(t, err)
	assert.Equal(t, "11111111", res.Result)
	assert.Equal(t, "255", res.Decimal)

	res, err = NumberBase("z", 36, 10)
	require.NoError(t, err)
	assert.Equal(t, "35", res.Result)

	_, err = NumberBase("102", 2, 10)
	assert.Equal(t, "value", calc.FieldOf(err))
}

func TestGeometry(t *testing.T) {
	p, err := Pythagorean(3, 4, 0)
	require.NoError(t, err)
	assert.InDelta(t, 5, p.C, 1e-12)

	p, err = Pythagorean(0, 12, 13)
	require.NoError(t, err)
	assert.InDelta(t, 5, p.A, 1e-12)

	_, err = Pythagorean(3, 4, 5)
	assert.True(t, calc.IsInvalidInput(err))

	a, err := Area("rectangle", 3, 4, 0)
	require.NoError(t, err)
	assert.Equal(t, 12.0, a.Area)
	require.NotNil(t, a.Perimeter)
	assert.Equal(t, 14.0, *a.Perimeter)

	a, err = Area("trapezoid", 3, 5, 2)
	require.NoError(t, err)
	assert.Equal(t, 8.0, a.Area)

	_, err = Area("hexagon", 1, 0, 0)
	assert.Equal(t, "shape", calc.FieldOf(err))

	r, err := Ratio(12, 18, 4)
	require.NoError(t, err)
	assert.Equal(t, "2:3", r.Simplified)
	assert.Equal(t, 6.0, r.ScaledB)
}

func TestRandomNumbers(t *testing.T) {
	res, err := RandomNumbers(1, 10, 10, true)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, res.Numbers)

	_, err = RandomNumbers(1, 5, 6, true)
	assert.True(t, calc.IsInvalidInput(err))
	_, err = RandomNumbers(5, 1, 1, false)
	assert.Equal(t, "max", calc.FieldOf(err))
}
