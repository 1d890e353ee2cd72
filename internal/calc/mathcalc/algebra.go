package mathcalc

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/bobmcallan/abacus/internal/calc"
)

// Fraction is a reduced rational number with a positive denominator.
type Fraction struct {
	Numerator   int64   `json:"numerator"`
	Denominator int64   `json:"denominator"`
	Decimal     float64 `json:"decimal"`
	Text        string  `json:"text"`
	Mixed       string  `json:"mixed,omitempty"`
}

func newFraction(n, d int64) Fraction {
	if d < 0 {
		n, d = -n, -d
	}
	if g := GCD(n, d); g > 1 {
		n, d = n/g, d/g
	}
	f := Fraction{Numerator: n, Denominator: d, Decimal: float64(n) / float64(d)}
	f.Text = fmt.Sprintf("%d/%d", n, d)
	if d == 1 {
		f.Text = fmt.Sprintf("%d", n)
	}
	if whole := n / d; whole != 0 && n%d != 0 {
		rem := n % d
		if rem < 0 {
			rem = -rem
		}
		f.Mixed = fmt.Sprintf("%d %d/%d", whole, rem, d)
	}
	return f
}

// FractionOp applies +, -, * or / to two fractions and returns the reduced result.
func FractionOp(n1, d1 int64, op string, n2, d2 int64) (*Fraction, error) {
	if d1 == 0 {
		return nil, calc.Invalid("denominator1", "must not be zero")
	}
	if d2 == 0 {
		return nil, calc.Invalid("denominator2", "must not be zero")
	}
	var n, d int64
	switch op {
	case "+", "add":
		n, d = n1*d2+n2*d1, d1*d2
	case "-", "subtract":
		n, d = n1*d2-n2*d1, d1*d2
	case "*", "x", "multiply":
		n, d = n1*n2, d1*d2
	case "/", "divide":
		if n2 == 0 {
			return nil, calc.Invalid("numerator2", "must not be zero when dividing")
		}
		n, d = n1*d2, d1*n2
	default:
		return nil, calc.Invalid("operation", "must be one of + - * /")
	}
	f := newFraction(n, d)
	return &f, nil
}

// QuadraticResult holds the roots of ax² + bx + c = 0.
type QuadraticResult struct {
	Discriminant float64   `json:"discriminant"`
	RootType     string    `json:"root_type"`
	Roots        []string  `json:"roots"`
	RealRoots    []float64 `json:"real_roots,omitempty"`
	VertexX      float64   `json:"vertex_x"`
	VertexY      float64   `json:"vertex_y"`
}

// Quadratic solves ax² + bx + c = 0, returning complex roots when the
// discriminant is negative.
func Quadratic(a, b, c float64) (*QuadraticResult, error) {
	if err := calc.First(calc.Finite("a", a), calc.Finite("b", b), calc.Finite("c", c)); err != nil {
		return nil, err
	}
	if a == 0 {
		return nil, calc.Invalid("a", "must not be zero")
	}
	disc := b*b - 4*a*c
	res := &QuadraticResult{
		Discriminant: disc,
		VertexX:      -b / (2 * a),
	}
	res.VertexY = a*res.VertexX*res.VertexX + b*res.VertexX + c
	switch {
	case disc > 0:
		sq := math.Sqrt(disc)
		r1, r2 := (-b+sq)/(2*a), (-b-sq)/(2*a)
		res.RootType = "two_real"
		res.RealRoots = []float64{r1, r2}
		res.Roots = []string{fmt.Sprintf("%g", r1), fmt.Sprintf("%g", r2)}
	case disc == 0:
		r := -b / (2 * a)
		res.RootType = "one_real"
		res.RealRoots = []float64{r}
		res.Roots = []string{fmt.Sprintf("%g", r)}
	default:
		sq := cmplx.Sqrt(complex(disc, 0))
		r1 := (complex(-b, 0) + sq) / complex(2*a, 0)
		r2 := (complex(-b, 0) - sq) / complex(2*a, 0)
		res.RootType = "complex"
		res.Roots = []string{formatComplex(r1), formatComplex(r2)}
	}
	return res, nil
}

func formatComplex(z complex128) string {
	re, im := real(z), imag(z)
	if im < 0 {
		return fmt.Sprintf("%g - %gi", re, -im)
	}
	return fmt.Sprintf("%g + %gi", re, im)
}

// RatioResult is the output of the ratio calculator.
type RatioResult struct {
	A          float64 `json:"a"`
	B          float64 `json:"b"`
	Simplified string  `json:"simplified"`
	Decimal    float64 `json:"decimal"`
	ScaledA    float64 `json:"scaled_a,omitempty"`
	ScaledB    float64 `json:"scaled_b,omitempty"`
}

// Ratio simplifies a:b and, when scaleTo is positive, scales it so that the
// first term equals scaleTo.
func Ratio(a, b, scaleTo float64) (*RatioResult, error) {
	if err := calc.First(calc.Positive("a", a), calc.Positive("b", b), calc.NonNegative("scale_to", scaleTo)); err != nil {
		return nil, err
	}
	res := &RatioResult{A: a, B: b, Decimal: a / b}
	if a == math.Trunc(a) && b == math.Trunc(b) && a < 1e15 && b < 1e15 {
		g := GCD(int64(a), int64(b))
		res.Simplified = fmt.Sprintf("%d:%d", int64(a)/g, int64(b)/g)
	} else {
		res.Simplified = fmt.Sprintf("1:%g", b/a)
	}
	if scaleTo > 0 {
		res.ScaledA = scaleTo
		res.ScaledB = b * scaleTo / a
	}
	return res, nil
}

// PythagoreanResult holds all three sides of a right triangle.
type PythagoreanResult struct {
	A         float64 `json:"a"`
	B         float64 `json:"b"`
	C         float64 `json:"c"`
	Area      float64 `json:"area"`
	Perimeter float64 `json:"perimeter"`
}

// Pythagorean solves for the missing side; exactly one of a, b, c must be zero.
func Pythagorean(a, b, c float64) (*PythagoreanResult, error) {
	if err := calc.First(calc.NonNegative("a", a), calc.NonNegative("b", b), calc.NonNegative("c", c)); err != nil {
		return nil, err
	}
	missing := 0
	for _, v := range []float64{a, b, c} {
		if v == 0 {
			missing++
		}
	}
	if missing != 1 {
		return nil, calc.Invalid("sides", "exactly one of a, b, c must be omitted")
	}
	switch {
	case c == 0:
		c = math.Hypot(a, b)
	case a == 0:
		if b >= c {
			return nil, calc.Invalid("c", "must be longer than b")
		}
		a = math.Sqrt(c*c - b*b)
	default:
		if a >= c {
			return nil, calc.Invalid("c", "must be longer than a")
		}
		b = math.Sqrt(c*c - a*a)
	}
	return &PythagoreanResult{A: a, B: b, C: c, Area: a * b / 2, Perimeter: a + b + c}, nil
}

// Shapes supported by Area.
var Shapes = []string{"circle", "rectangle", "square", "triangle", "trapezoid", "ellipse", "parallelogram"}

// AreaResult is the output of the area calculator.
type AreaResult struct {
	Shape     string   `json:"shape"`
	Area      float64  `json:"area"`
	Perimeter *float64 `json:"perimeter,omitempty"`
}

// Area computes the area (and perimeter where closed-form) of a 2D shape.
// Dimension meaning per shape: circle(a=radius), rectangle(a=width,b=height),
// square(a=side), triangle(a=base,b=height), trapezoid(a,b parallel sides,
// c=height), ellipse(a,b semi-axes), parallelogram(a=base,b=height).
func Area(shape string, a, b, c float64) (*AreaResult, error) {
	pos := func(names ...string) error {
		vals := map[string]float64{"a": a, "b": b, "c": c}
		for _, n := range names {
			if err := calc.Positive(n, vals[n]); err != nil {
				return err
			}
		}
		return nil
	}
	per := func(v float64) *float64 { return &v }
	res := &AreaResult{Shape: shape}
	switch shape {
	case "circle":
		if err := pos("a"); err != nil {
			return nil, err
		}
		res.Area, res.Perimeter = math.Pi*a*a, per(2*math.Pi*a)
	case "rectangle":
		if err := pos("a", "b"); err != nil {
			return nil, err
		}
		res.Area, res.Perimeter = a*b, per(2*(a+b))
	case "square":
		if err := pos("a"); err != nil {
			return nil, err
		}
		res.Area, res.Perimeter = a*a, per(4*a)
	case "triangle":
		if err := pos("a", "b"); err != nil {
			return nil, err
		}
		res.Area = a * b / 2
	case "trapezoid":
		if err := pos("a", "b", "c"); err != nil {
			return nil, err
		}
		res.Area = (a + b) / 2 * c
	case "ellipse":
		if err := pos("a", "b"); err != nil {
			return nil, err
		}
		// Ramanujan's approximation
		h := (a - b) * (a - b) / ((a + b) * (a + b))
		res.Area = math.Pi * a * b
		res.Perimeter = per(math.Pi * (a + b) * (1 + 3*h/(10+math.Sqrt(4-3*h))))
	case "parallelogram":
		if err := pos("a", "b"); err != nil {
			return nil, err
		}
		res.Area = a * b
	default:
		return nil, calc.Invalid("shape", "must be one of %v", Shapes)
	}
	return res, nil
}
