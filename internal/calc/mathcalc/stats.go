package mathcalc

import (
	"math"
	"math/rand/v2"
	"slices"
	"strings"

	"github.com/bobmcallan/abacus/internal/calc"
)

// StatisticsResult is the descriptive summary of a data set.
type StatisticsResult struct {
	Count             int       `json:"count"`
	Sum               float64   `json:"sum"`
	Mean              float64   `json:"mean"`
	Median            float64   `json:"median"`
	Modes             []float64 `json:"modes"`
	Min               float64   `json:"min"`
	Max               float64   `json:"max"`
	Range             float64   `json:"range"`
	PopulationVar     float64   `json:"population_variance"`
	PopulationStdDev  float64   `json:"population_std_dev"`
	SampleVar         *float64  `json:"sample_variance,omitempty"`
	SampleStdDev      *float64  `json:"sample_std_dev,omitempty"`
	StandardErrorMean *float64  `json:"standard_error_mean,omitempty"`
}

// Statistics summarises a non-empty list of numbers. Modes is empty when every
// value occurs once.
func Statistics(values []float64) (*StatisticsResult, error) {
	if len(values) == 0 {
		return nil, calc.Invalid("values", "must contain at least one number")
	}
	for _, v := range values {
		if err := calc.Finite("values", v); err != nil {
			return nil, err
		}
	}
	sorted := slices.Clone(values)
	slices.Sort(sorted)
	n := len(sorted)

	res := &StatisticsResult{Count: n, Min: sorted[0], Max: sorted[n-1], Modes: []float64{}}
	for _, v := range sorted {
		res.Sum += v
	}
	res.Mean = res.Sum / float64(n)
	res.Range = res.Max - res.Min
	if n%2 == 1 {
		res.Median = sorted[n/2]
	} else {
		res.Median = (sorted[n/2-1] + sorted[n/2]) / 2
	}

	counts := make(map[float64]int, n)
	best := 1
	for _, v := range sorted {
		counts[v]++
		best = max(best, counts[v])
	}
	if best > 1 {
		for _, v := range slices.Compact(slices.Clone(sorted)) {
			if counts[v] == best {
				res.Modes = append(res.Modes, v)
			}
		}
	}

	var ss float64
	for _, v := range sorted {
		d := v - res.Mean
		ss += d * d
	}
	res.PopulationVar = ss / float64(n)
	res.PopulationStdDev = math.Sqrt(res.PopulationVar)
	if n > 1 {
		sv := ss / float64(n-1)
		sd := math.Sqrt(sv)
		sem := sd / math.Sqrt(float64(n))
		res.SampleVar, res.SampleStdDev, res.StandardErrorMean = &sv, &sd, &sem
	}
	return res, nil
}

// GradePoints maps letter grades to the 4.0 scale.
var GradePoints = map[string]float64{
	"A+": 4.0, "A": 4.0, "A-": 3.7,
	"B+": 3.3, "B": 3.0, "B-": 2.7,
	"C+": 2.3, "C": 2.0, "C-": 1.7,
	"D+": 1.3, "D": 1.0, "D-": 0.7,
	"F": 0,
}

// Course is one row of a GPA calculation.
type Course struct {
	Name    string  `json:"name,omitempty"`
	Grade   string  `json:"grade"`
	Credits float64 `json:"credits"`
}

// GPAResult is the credit-weighted grade point average.
type GPAResult struct {
	GPA           float64 `json:"gpa"`
	TotalCredits  float64 `json:"total_credits"`
	QualityPoints float64 `json:"quality_points"`
}

// GPA returns Σ(points×credits)/Σcredits rounded to two decimals.
func GPA(courses []Course) (*GPAResult, error) {
	if len(courses) == 0 {
		return nil, calc.Invalid("courses", "must contain at least one course")
	}
	res := &GPAResult{}
	for _, c := range courses {
		pts, ok := GradePoints[strings.ToUpper(strings.TrimSpace(c.Grade))]
		if !ok {
			return nil, calc.Invalid("grade", "%q is not a letter grade", c.Grade)
		}
		if err := calc.Positive("credits", c.Credits); err != nil {
			return nil, err
		}
		res.TotalCredits += c.Credits
		res.QualityPoints += pts * c.Credits
	}
	res.GPA = calc.Round(res.QualityPoints/res.TotalCredits, 2)
	return res, nil
}

// GradeResult is a score mapped onto the letter scale.
type GradeResult struct {
	Percent float64 `json:"percent"`
	Letter  string  `json:"letter"`
	Points  float64 `json:"points"`
}

var gradeCutoffs = []struct {
	min    float64
	letter string
}{
	{97, "A+"}, {93, "A"}, {90, "A-"},
	{87, "B+"}, {83, "B"}, {80, "B-"},
	{77, "C+"}, {73, "C"}, {70, "C-"},
	{67, "D+"}, {63, "D"}, {60, "D-"},
	{0, "F"},
}

// Grade converts score/total to a percentage and letter grade.
func Grade(score, total float64) (*GradeResult, error) {
	if err := calc.First(calc.NonNegative("score", score), calc.Positive("total", total)); err != nil {
		return nil, err
	}
	if score > total {
		return nil, calc.Invalid("score", "must not exceed total")
	}
	pct := score / total * 100
	for _, c := range gradeCutoffs {
		if pct >= c.min {
			return &GradeResult{Percent: pct, Letter: c.letter, Points: GradePoints[c.letter]}, nil
		}
	}
	return &GradeResult{Percent: pct, Letter: "F"}, nil
}

// RandomResult is the output of the random number generator.
type RandomResult struct {
	Numbers []int64 `json:"numbers"`
}

// RandomNumbers draws count integers in [lo, hi]; unique draws without replacement.
func RandomNumbers(lo, hi int64, count int, unique bool) (*RandomResult, error) {
	if hi < lo {
		return nil, calc.Invalid("max", "must be at least min")
	}
	if count < 1 || count > 1000 {
		return nil, calc.Invalid("count", "must be between 1 and 1000")
	}
	span := uint64(hi-lo) + 1
	if unique && span < uint64(count) {
		return nil, calc.Invalid("count", "exceeds the number of distinct values in range")
	}
	res := &RandomResult{Numbers: make([]int64, 0, count)}
	seen := make(map[int64]struct{}, count)
	for len(res.Numbers) < count {
		var v int64
		if span == 0 { // full int64 range
			v = int64(rand.Uint64())
		} else {
			v = lo + int64(rand.Uint64N(span))
		}
		if unique {
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
		}
		res.Numbers = append(res.Numbers, v)
	}
	return res, nil
}
