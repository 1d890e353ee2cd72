package catalog

import (
	"context"

	"github.com/bobmcallan/abacus/internal/calc"
	"github.com/bobmcallan/abacus/internal/calc/mathcalc"
	"github.com/bobmcallan/abacus/internal/models"
)

type roundingResult struct {
	Value    float64 `json:"value"`
	Result   float64 `json:"result"`
	Decimals int     `json:"decimals"`
	Mode     string  `json:"mode"`
}

func (r *Registry) registerMath() {
	m := models.CategoryMath

	r.add(models.CalculatorDefinition{
		Name:        "percentage",
		Title:       "Percentage Calculator",
		Category:    m,
		Description: "What is X% of Y, X is what percent of Y, and the percent change from X to Y.",
		Formula:     "of: x/100·y; what_percent: x/y·100; change: (y − x)/|x|·100",
		Params: []models.ParamDefinition{
			def(oneOf(str("mode", "Question to answer"), mathcalc.PercentOf, mathcalc.WhatPercent, mathcalc.PercentChange), mathcalc.PercentOf),
			required(num("x", "First value")),
			required(num("y", "Second value")),
		},
	}, Args{"mode": mathcalc.PercentOf, "x": 15, "y": 80}, func(_ context.Context, a Args) (interface{}, error) {
		return mathcalc.Percentage(a.String("mode"), a.Float("x"), a.Float("y"))
	})

	r.add(models.CalculatorDefinition{
		Name:        "fraction",
		Title:       "Fraction Calculator",
		Category:    m,
		Description: "Adds, subtracts, multiplies or divides two fractions and reduces the result.",
		Formula:     "a/b + c/d = (ad + cb)/bd, reduced by gcd",
		Params: []models.ParamDefinition{
			required(integer("numerator1", "First numerator")),
			def(integer("denominator1", "First denominator"), 1),
			def(oneOf(str("operation", "Operation"), "+", "-", "*", "/"), "+"),
			required(integer("numerator2", "Second numerator")),
			def(integer("denominator2", "Second denominator"), 1),
		},
	}, Args{"numerator1": 1, "denominator1": 2, "operation": "+", "numerator2": 1, "denominator2": 3}, func(_ context.Context, a Args) (interface{}, error) {
		return mathcalc.FractionOp(int64(a.Int("numerator1")), int64(a.Int("denominator1")), a.String("operation"),
			int64(a.Int("numerator2")), int64(a.Int("denominator2")))
	})

	r.add(models.CalculatorDefinition{
		Name:        "gcd_lcm",
		Title:       "GCD and LCM Calculator",
		Category:    m,
		Description: "Greatest common divisor and least common multiple of two or more positive integers.",
		Formula:     "gcd by Euclid; lcm(a, b) = a/gcd(a, b)·b",
		Params: []models.ParamDefinition{
			required(array("numbers", "Positive integers, e.g. [12, 18, 30]")),
		},
	}, Args{"numbers": []interface{}{12, 18, 30}}, func(_ context.Context, a Args) (interface{}, error) {
		nums, err := integers(a, "numbers")
		if err != nil {
			return nil, err
		}
		return mathcalc.GCDLCM(nums)
	})

	r.add(models.CalculatorDefinition{
		Name:        "quadratic",
		Title:       "Quadratic Equation Solver",
		Category:    m,
		Description: "Real or complex roots of ax² + bx + c = 0 and the vertex of the parabola.",
		Formula:     "x = (−b ± √(b² − 4ac)) / 2a",
		Params: []models.ParamDefinition{
			required(num("a", "Coefficient of x²")),
			required(num("b", "Coefficient of x")),
			required(num("c", "Constant term")),
		},
	}, Args{"a": 1, "b": -3, "c": 2}, func(_ context.Context, a Args) (interface{}, error) {
		return mathcalc.Quadratic(a.Float("a"), a.Float("b"), a.Float("c"))
	})

	r.add(models.CalculatorDefinition{
		Name:        "statistics",
		Title:       "Statistics Calculator",
		Category:    m,
		Description: "Mean, median, modes, range, and population and sample variance and standard deviation.",
		Formula:     "σ = √(Σ(x − μ)²/N); s = √(Σ(x − x̄)²/(n − 1))",
		Params: []models.ParamDefinition{
			required(array("values", "Numbers, e.g. [2, 4, 4, 5]")),
		},
	}, Args{"values": []interface{}{2, 4, 4, 4, 5, 5, 7, 9}}, func(_ context.Context, a Args) (interface{}, error) {
		vals, err := floats(a, "values")
		if err != nil {
			return nil, err
		}
		return mathcalc.Statistics(vals)
	})

	r.add(models.CalculatorDefinition{
		Name:        "gpa",
		Title:       "GPA Calculator",
		Category:    m,
		Description: "Credit-weighted grade point average on the 4.0 scale, rounded to two decimals.",
		Formula:     "GPA = Σ(points × credits) / Σcredits",
		Params: []models.ParamDefinition{
			required(array("courses", `Courses as [{"grade":"A","credits":4}, ...]`)),
		},
	}, Args{"courses": []interface{}{
		map[string]interface{}{"grade": "A", "credits": 4},
		map[string]interface{}{"grade": "B", "credits": 3},
	}}, func(_ context.Context, a Args) (interface{}, error) {
		var courses []mathcalc.Course
		if err := a.Decode("courses", &courses); err != nil {
			return nil, err
		}
		return mathcalc.GPA(courses)
	})

	r.add(models.CalculatorDefinition{
		Name:        "grade",
		Title:       "Grade Calculator",
		Category:    m,
		Description: "Percentage and letter grade for a score.",
		Formula:     "percent = score/total·100",
		Params: []models.ParamDefinition{
			required(num("score", "Points earned")),
			def(num("total", "Points possible"), 100),
		},
	}, Args{"score": 43, "total": 50}, func(_ context.Context, a Args) (interface{}, error) {
		return mathcalc.Grade(a.Float("score"), a.Float("total"))
	})

	r.add(models.CalculatorDefinition{
		Name:        "prime",
		Title:       "Prime Number Checker",
		Category:    m,
		Description: "Tests primality and gives the prime factorization.",
		Formula:     "trial division up to √n",
		Params: []models.ParamDefinition{
			required(num("n", "Integer from 2 to 10^15")),
		},
	}, Args{"n": 360}, func(_ context.Context, a Args) (interface{}, error) {
		n := a.Float("n")
		if n != float64(int64(n)) {
			return nil, calc.Invalid("n", "must be a whole number")
		}
		return mathcalc.Prime(int64(n))
	})

	r.add(models.CalculatorDefinition{
		Name:        "factorial",
		Title:       "Factorial Calculator",
		Category:    m,
		Description: "Exact n! for n up to 5000.",
		Formula:     "n! = 1 × 2 × … × n",
		Params: []models.ParamDefinition{
			required(integer("n", "Non-negative integer")),
		},
	}, Args{"n": 20}, func(_ context.Context, a Args) (interface{}, error) {
		return mathcalc.Factorial(a.Int("n"))
	})

	r.add(models.CalculatorDefinition{
		Name:        "scientific_notation",
		Title:       "Scientific Notation Converter",
		Category:    m,
		Description: "Expresses a number as mantissa × 10^exponent.",
		Formula:     "x = m × 10^e, 1 ≤ |m| < 10",
		Params: []models.ParamDefinition{
			required(num("value", "Number to convert")),
			def(integer("significant_figures", "Significant figures"), 6),
		},
	}, Args{"value": 123456789, "significant_figures": 4}, func(_ context.Context, a Args) (interface{}, error) {
		return mathcalc.ScientificNotation(a.Float("value"), a.Int("significant_figures"))
	})

	r.add(models.CalculatorDefinition{
		Name:        "rounding",
		Title:       "Rounding Calculator",
		Category:    m,
		Description: "Rounds a number to a number of decimals: half up, half even (banker's), up or down.",
		Formula:     "round(x·10^d)/10^d",
		Params: []models.ParamDefinition{
			required(num("value", "Number to round")),
			def(integer("decimals", "Decimal places"), 2),
			def(oneOf(str("mode", "Rounding mode"), mathcalc.RoundHalfUp, mathcalc.RoundHalfEven, mathcalc.RoundUp, mathcalc.RoundDown), mathcalc.RoundHalfUp),
		},
	}, Args{"value": 2.345, "decimals": 2, "mode": mathcalc.RoundHalfEven}, func(_ context.Context, a Args) (interface{}, error) {
		v, err := mathcalc.RoundValue(a.Float("value"), a.Int("decimals"), a.String("mode"))
		if err != nil {
			return nil, err
		}
		return &roundingResult{Value: a.Float("value"), Result: v, Decimals: a.Int("decimals"), Mode: a.String("mode")}, nil
	})

	r.add(models.CalculatorDefinition{
		Name:        "ratio",
		Title:       "Ratio Calculator",
		Category:    m,
		Description: "Simplifies a ratio and scales it to a new first term.",
		Formula:     "a:b = (a/g):(b/g); scaled b = b·k/a",
		Params: []models.ParamDefinition{
			required(num("a", "First term")),
			required(num("b", "Second term")),
			def(num("scale_to", "New first term (0 to skip)"), 0),
		},
	}, Args{"a": 16, "b": 9, "scale_to": 1920}, func(_ context.Context, a Args) (interface{}, error) {
		return mathcalc.Ratio(a.Float("a"), a.Float("b"), a.Float("scale_to"))
	})

	r.add(models.CalculatorDefinition{
		Name:        "pythagorean",
		Title:       "Pythagorean Theorem Calculator",
		Category:    m,
		Description: "Finds the missing side of a right triangle; leave exactly one side at 0.",
		Formula:     "a² + b² = c²",
		Params: []models.ParamDefinition{
			def(num("a", "Leg a"), 0),
			def(num("b", "Leg b"), 0),
			def(num("c", "Hypotenuse c"), 0),
		},
	}, Args{"a": 3, "b": 4}, func(_ context.Context, a Args) (interface{}, error) {
		return mathcalc.Pythagorean(a.Float("a"), a.Float("b"), a.Float("c"))
	})

	r.add(models.CalculatorDefinition{
		Name:        "area",
		Title:       "Area Calculator",
		Category:    m,
		Description: "Area (and perimeter where closed-form) of common shapes.",
		Formula:     "circle πr²; rectangle wh; triangle bh/2; trapezoid (a+b)h/2; ellipse πab",
		Params: []models.ParamDefinition{
			required(oneOf(str("shape", "Shape"), mathcalc.Shapes...)),
			required(num("a", "Radius, width, side, base or first parallel side")),
			def(num("b", "Height, second side or semi-axis"), 0),
			def(num("c", "Trapezoid height"), 0),
		},
	}, Args{"shape": "circle", "a": 5}, func(_ context.Context, a Args) (interface{}, error) {
		return mathcalc.Area(a.String("shape"), a.Float("a"), a.Float("b"), a.Float("c"))
	})

	r.add(models.CalculatorDefinition{
		Name:        "random_number",
		Title:       "Random Number Generator",
		Category:    m,
		Description: "Random integers in an inclusive range, optionally without repeats.",
		Formula:     "uniform on [min, max]",
		Params: []models.ParamDefinition{
			def(num("min", "Lowest value"), 1),
			def(num("max", "Highest value"), 100),
			def(integer("count", "How many numbers"), 1),
			def(boolean("unique", "No repeated values"), false),
		},
	}, nil, func(_ context.Context, a Args) (interface{}, error) {
		return mathcalc.RandomNumbers(int64(a.Float("min")), int64(a.Float("max")), a.Int("count"), a.Bool("unique"))
	})

	r.add(models.CalculatorDefinition{
		Name:        "number_base",
		Title:       "Number Base Converter",
		Category:    m,
		Description: "Converts integers between bases 2 to 36 (binary, octal, decimal, hex, …).",
		Formula:     "positional notation Σ dᵢ·baseⁱ",
		Params: []models.ParamDefinition{
			required(str("value", "Integer in the source base")),
			def(integer("from_base", "Source base"), 10),
			def(integer("to_base", "Target base"), 2),
		},
	}, Args{"value": "255", "from_base": 10, "to_base": 16}, func(_ context.Context, a Args) (interface{}, error) {
		return mathcalc.NumberBase(a.String("value"), a.Int("from_base"), a.Int("to_base"))
	})
}
