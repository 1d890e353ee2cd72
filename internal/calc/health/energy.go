package health

import (
	"math"
	"sort"
	"strings"

	"github.com/bobmcallan/abacus/internal/calc"
)

// BMR formulas.
const (
	FormulaMifflin = "mifflin"
	FormulaHarris  = "harris"
)

// BMRInput is shared by the BMR and TDEE calculators.
type BMRInput struct {
	Sex      Sex
	WeightKg float64
	HeightCm float64
	Age      int
	Formula  string
}

// BMR returns basal metabolic rate in kcal/day. Mifflin-St Jeor is the
// default; "harris" selects the revised Harris-Benedict equation.
func BMR(in BMRInput) (float64, error) {
	if err := validateBody(in.WeightKg, in.HeightCm); err != nil {
		return 0, err
	}
	if in.Age < 1 || in.Age > 120 {
		return 0, calc.Invalid("age", "must be between 1 and 120")
	}
	w, h, a := in.WeightKg, in.HeightCm, float64(in.Age)

	switch strings.ToLower(in.Formula) {
	case "", FormulaMifflin:
		bmr := 10*w + 6.25*h - 5*a
		if in.Sex == Male {
			return bmr + 5, nil
		}
		return bmr - 161, nil
	case FormulaHarris:
		if in.Sex == Male {
			return 88.362 + 13.397*w + 4.799*h - 5.677*a, nil
		}
		return 447.593 + 9.247*w + 3.098*h - 4.330*a, nil
	}
	return 0, calc.Invalid("formula", "must be mifflin or harris")
}

// ActivityMultipliers scale BMR to total daily energy expenditure.
var ActivityMultipliers = map[string]float64{
	"sedentary":   1.2,
	"light":       1.375,
	"moderate":    1.55,
	"active":      1.725,
	"very_active": 1.9,
}

// ActivityLevels returns the multiplier keys in ascending order.
func ActivityLevels() []string {
	levels := make([]string, 0, len(ActivityMultipliers))
	for k := range ActivityMultipliers {
		levels = append(levels, k)
	}
	sort.Slice(levels, func(i, j int) bool {
		return ActivityMultipliers[levels[i]] < ActivityMultipliers[levels[j]]
	})
	return levels
}

// TDEEResult is the output of the TDEE calculator.
type TDEEResult struct {
	BMR         float64 `json:"bmr"`
	TDEE        float64 `json:"tdee"`
	Multiplier  float64 `json:"multiplier"`
	WeightLoss  float64 `json:"weight_loss"`
	WeightGain  float64 `json:"weight_gain"`
	ExtremeLoss float64 `json:"extreme_loss"`
}

// TDEE multiplies BMR by the activity factor. Loss and gain targets are
// ±500 kcal; extreme loss is −1000 kcal, floored at 1200 kcal.
func TDEE(in BMRInput, activity string) (*TDEEResult, error) {
	bmr, err := BMR(in)
	if err != nil {
		return nil, err
	}
	mult, ok := ActivityMultipliers[activity]
	if !ok {
		return nil, calc.Invalid("activity_level", "must be one of %s", strings.Join(ActivityLevels(), ", "))
	}
	tdee := bmr * mult
	return &TDEEResult{
		BMR:         bmr,
		TDEE:        tdee,
		Multiplier:  mult,
		WeightLoss:  tdee - 500,
		WeightGain:  tdee + 500,
		ExtremeLoss: math.Max(1200, tdee-1000),
	}, nil
}

// MacroResult splits a calorie target into grams.
type MacroResult struct {
	Calories     float64 `json:"calories"`
	ProteinGrams float64 `json:"protein_grams"`
	CarbGrams    float64 `json:"carb_grams"`
	FatGrams     float64 `json:"fat_grams"`
}

// Energy density in kcal per gram.
const (
	kcalPerGramProtein = 4
	kcalPerGramCarb    = 4
	kcalPerGramFat     = 9
)

// MacroGoals adjusts maintenance calories by goal.
var MacroGoals = map[string]float64{
	"lose":     -500,
	"maintain": 0,
	"gain":     500,
}

// Macros converts a maintenance calorie figure, adjusted for goal, into
// protein/carb/fat grams. The percentages must sum to 100.
func Macros(calories float64, goal string, proteinPct, carbPct, fatPct float64) (*MacroResult, error) {
	if err := calc.First(
		calc.InRange("calories", calories, 500, 20000),
		calc.InRange("protein_percent", proteinPct, 0, 100),
		calc.InRange("carb_percent", carbPct, 0, 100),
		calc.InRange("fat_percent", fatPct, 0, 100),
	); err != nil {
		return nil, err
	}
	adj, ok := MacroGoals[goal]
	if !ok {
		return nil, calc.Invalid("goal", "must be lose, maintain or gain")
	}
	if !calc.ApproxEqual(proteinPct+carbPct+fatPct, 100, 0.01) {
		return nil, calc.Invalid("protein_percent", "carb_percent and fat_percent must add up to 100")
	}
	target := calories + adj
	return &MacroResult{
		Calories:     target,
		ProteinGrams: target * proteinPct / 100 / kcalPerGramProtein,
		CarbGrams:    target * carbPct / 100 / kcalPerGramCarb,
		FatGrams:     target * fatPct / 100 / kcalPerGramFat,
	}, nil
}

// ActivityMET holds metabolic equivalents for common activities.
var ActivityMET = map[string]float64{
	"walking":       3.5,
	"brisk_walking": 4.3,
	"running":       9.8,
	"cycling":       7.5,
	"swimming":      8.0,
	"yoga":          2.5,
	"weightlifting": 6.0,
	"hiking":        6.0,
	"dancing":       5.0,
	"rowing":        7.0,
}

// CaloriesBurnedResult is the output of the calories burned calculator.
type CaloriesBurnedResult struct {
	MET      float64 `json:"met"`
	Calories float64 `json:"calories"`
}

// CaloriesBurned is MET × kg × hours. A known activity overrides met.
func CaloriesBurned(activity string, met, weightKg, minutes float64) (*CaloriesBurnedResult, error) {
	if activity != "" {
		v, ok := ActivityMET[activity]
		if !ok {
			return nil, calc.Invalid("activity", "is not a known activity")
		}
		met = v
	}
	if err := calc.First(
		calc.InRange("met", met, 0.5, 25),
		calc.InRange("weight", weightKg, 1, 700),
		calc.InRange("minutes", minutes, 0, 1440),
	); err != nil {
		return nil, err
	}
	return &CaloriesBurnedResult{MET: met, Calories: met * weightKg * minutes / 60}, nil
}
