// Package mathcalc implements the general math calculators.
package mathcalc

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/bobmcallan/abacus/internal/calc"
)

// Percentage modes.
const (
	PercentOf     = "percent_of"   // X% of Y
	WhatPercent   = "what_percent" // X is what % of Y
	PercentChange = "change"       // change from X to Y
)

// PercentageResult is the output of the percentage calculator.
type PercentageResult struct {
	Mode   string  `json:"mode"`
	Result float64 `json:"result"`
	Label  string  `json:"label"`
}

// Percentage answers the three common percentage questions.
func Percentage(mode string, x, y float64) (*PercentageResult, error) {
	if err := calc.First(calc.Finite("x", x), calc.Finite("y", y)); err != nil {
		return nil, err
	}
	switch mode {
	case PercentOf:
		r := x / 100 * y
		return &PercentageResult{Mode: mode, Result: r, Label: fmt.Sprintf("%g%% of %g is %g", x, y, r)}, nil
	case WhatPercent:
		if y == 0 {
			return nil, calc.Invalid("y", "must not be zero")
		}
		r := x / y * 100
		return &PercentageResult{Mode: mode, Result: r, Label: fmt.Sprintf("%g is %g%% of %g", x, r, y)}, nil
	case PercentChange:
		if x == 0 {
			return nil, calc.Invalid("x", "must not be zero")
		}
		r := (y - x) / math.Abs(x) * 100
		dir := "increase"
		if r < 0 {
			dir = "decrease"
		}
		return &PercentageResult{Mode: mode, Result: r, Label: fmt.Sprintf("%g%% %s", math.Abs(r), dir)}, nil
	}
	return nil, calc.Invalid("mode", "must be percent_of, what_percent or change")
}

// GCD returns the greatest common divisor of a and b (non-negative).
func GCD(a, b int64) int64 {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// GCDLCMResult is the output of the GCD/LCM calculator.
type GCDLCMResult struct {
	GCD int64 `json:"gcd"`
	LCM int64 `json:"lcm"`
}

// GCDLCM folds GCD and LCM over at least two positive integers.
func GCDLCM(values []int64) (*GCDLCMResult, error) {
	if len(values) < 2 {
		return nil, calc.Invalid("numbers", "needs at least two values")
	}
	g, l := values[0], values[0]
	for _, v := range values {
		if v <= 0 {
			return nil, calc.Invalid("numbers", "must all be positive integers")
		}
	}
	for _, v := range values[1:] {
		g = GCD(g, v)
		step := l / GCD(l, v)
		if step > math.MaxInt64/v {
			return nil, calc.Invalid("numbers", "have an LCM that overflows")
		}
		l = step * v
	}
	return &GCDLCMResult{GCD: g, LCM: l}, nil
}

// FactorialResult is the output of the factorial calculator.
type FactorialResult struct {
	N      int    `json:"n"`
	Value  string `json:"value"`
	Digits int    `json:"digits"`
}

// Factorial computes n! exactly with math/big.
func Factorial(n int) (*FactorialResult, error) {
	if n < 0 || n > 5000 {
		return nil, calc.Invalid("n", "must be between 0 and 5000")
	}
	v := new(big.Int).MulRange(1, int64(n))
	if n == 0 {
		v.SetInt64(1)
	}
	s := v.String()
	return &FactorialResult{N: n, Value: s, Digits: len(s)}, nil
}

// PrimeResult is the output of the prime calculator.
type PrimeResult struct {
	N       int64   `json:"n"`
	IsPrime bool    `json:"is_prime"`
	Factors []int64 `json:"factors"`
}

// Prime tests primality and returns the prime factorization by trial division.
func Prime(n int64) (*PrimeResult, error) {
	if n < 2 || n > 1e15 {
		return nil, calc.Invalid("n", "must be between 2 and 1e15")
	}
	res := &PrimeResult{N: n}
	rest := n
	for p := int64(2); p*p <= rest; p++ {
		for rest%p == 0 {
			res.Factors = append(res.Factors, p)
			rest /= p
		}
	}
	if rest > 1 {
		res.Factors = append(res.Factors, rest)
	}
	res.IsPrime = len(res.Factors) == 1
	return res, nil
}

// ScientificResult is the output of the scientific notation calculator.
type ScientificResult struct {
	Mantissa   float64 `json:"mantissa"`
	Exponent   int     `json:"exponent"`
	ENotation  string  `json:"e_notation"`
	Scientific string  `json:"scientific"`
	Decimal    string  `json:"decimal"`
}

// ScientificNotation splits v into mantissa × 10^exponent.
func ScientificNotation(v float64, sigFigs int) (*ScientificResult, error) {
	if err := calc.Finite("value", v); err != nil {
		return nil, err
	}
	if sigFigs < 1 || sigFigs > 17 {
		return nil, calc.Invalid("significant_figures", "must be between 1 and 17")
	}
	e := strconv.FormatFloat(v, 'e', sigFigs-1, 64)
	mant, exp, _ := strings.Cut(e, "e")
	m, _ := strconv.ParseFloat(mant, 64)
	x, _ := strconv.Atoi(exp)
	return &ScientificResult{
		Mantissa:   m,
		Exponent:   x,
		ENotation:  e,
		Scientific: fmt.Sprintf("%s × 10^%d", mant, x),
		Decimal:    strconv.FormatFloat(v, 'f', -1, 64),
	}, nil
}

// Rounding modes.
const (
	RoundHalfUp   = "half_up"
	RoundHalfEven = "half_even"
	RoundUp       = "up"
	RoundDown     = "down"
)

// RoundValue rounds v to places decimals in the given mode. Rounding is done
// on the shortest decimal representation to avoid binary artefacts (1.005 → 1.01).
func RoundValue(v float64, places int, mode string) (float64, error) {
	if err := calc.Finite("value", v); err != nil {
		return 0, err
	}
	if places < 0 || places > 15 {
		return 0, calc.Invalid("decimals", "must be between 0 and 15")
	}
	r, ok := new(big.Rat).SetString(strconv.FormatFloat(v, 'f', -1, 64))
	if !ok {
		return 0, calc.Invalid("value", "is not a decimal number")
	}
	scale := new(big.Rat).SetInt(new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(places)), nil))
	r.Mul(r, scale)

	num, den := r.Num(), r.Denom()
	q, m := new(big.Int).QuoRem(num, den, new(big.Int)) // truncates toward zero
	neg := num.Sign() < 0
	twice := new(big.Int).Abs(m)
	twice.Mul(twice, big.NewInt(2))
	cmpHalf := twice.Cmp(den)

	away := false
	switch mode {
	case "", RoundHalfUp:
		away = cmpHalf >= 0
	case RoundHalfEven:
		away = cmpHalf > 0 || (cmpHalf == 0 && q.Bit(0) == 1)
	case RoundUp:
		away = m.Sign() != 0 && !neg
	case RoundDown:
		away = m.Sign() != 0 && neg
	default:
		return 0, calc.Invalid("mode", "must be half_up, half_even, up or down")
	}
	if away {
		if neg {
			q.Sub(q, big.NewInt(1))
		} else {
			q.Add(q, big.NewInt(1))
		}
	}
	out, _ := new(big.Rat).SetFrac(q, scale.Num()).Float64()
	return out, nil
}

// NumberBaseResult is the output of the number base converter.
type NumberBaseResult struct {
	Input   string `json:"input"`
	Result  string `json:"result"`
	Decimal string `json:"decimal"`
	Binary  string `json:"binary"`
	Octal   string `json:"octal"`
	Hex     string `json:"hex"`
}

// NumberBase converts an integer literal between bases 2..36.
func NumberBase(value string, from, to int) (*NumberBaseResult, error) {
	if from < 2 || from > 36 {
		return nil, calc.Invalid("from_base", "must be between 2 and 36")
	}
	if to < 2 || to > 36 {
		return nil, calc.Invalid("to_base", "must be between 2 and 36")
	}
	clean := strings.TrimSpace(value)
	switch from {
	case 16:
		clean = strings.TrimPrefix(strings.TrimPrefix(clean, "0x"), "0X")
	case 2:
		clean = strings.TrimPrefix(strings.TrimPrefix(clean, "0b"), "0B")
	case 8:
		clean = strings.TrimPrefix(strings.TrimPrefix(clean, "0o"), "0O")
	}
	n, ok := new(big.Int).SetString(clean, from)
	if !ok {
		return nil, calc.Invalid("value", "is not a valid base-%d integer", from)
	}
	return &NumberBaseResult{
		Input:   value,
		Result:  n.Text(to),
		Decimal: n.Text(10),
		Binary:  n.Text(2),
		Octal:   n.Text(8),
		Hex:     n.Text(16),
	}, nil
}
