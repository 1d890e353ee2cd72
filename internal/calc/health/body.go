// Package health implements body-measurement, energy and fitness calculators.
// All inputs are metric; imperial inputs are converted by the caller.
package health

import (
	"math"
	"strings"

	"github.com/bobmcallan/abacus/internal/calc"
)

// Conversion constants for imperial inputs.
const (
	KgPerPound = 0.45359237
	CmPerInch  = 2.54
)

// Sex selects the sex-specific coefficients of a formula.
type Sex string

const (
	Male   Sex = "male"
	Female Sex = "female"
)

// ParseSex accepts male/female (and m/f) case-insensitively.
func ParseSex(s string) (Sex, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "male", "m":
		return Male, nil
	case "female", "f":
		return Female, nil
	}
	return "", calc.Invalid("sex", "must be male or female")
}

func validateBody(weightKg, heightCm float64) error {
	return calc.First(
		calc.InRange("weight", weightKg, 1, 700),
		calc.InRange("height", heightCm, 30, 300),
	)
}

// BMIResult is the output of the BMI calculator.
type BMIResult struct {
	BMI              float64 `json:"bmi"`
	Category         string  `json:"category"`
	HealthyWeightMin float64 `json:"healthy_weight_min_kg"`
	HealthyWeightMax float64 `json:"healthy_weight_max_kg"`
}

// BMI is weight / height², classified with the WHO adult bands.
func BMI(weightKg, heightCm float64) (*BMIResult, error) {
	if err := validateBody(weightKg, heightCm); err != nil {
		return nil, err
	}
	m := heightCm / 100
	bmi := weightKg / (m * m)
	return &BMIResult{
		BMI:              bmi,
		Category:         BMICategory(bmi),
		HealthyWeightMin: 18.5 * m * m,
		HealthyWeightMax: 24.9 * m * m,
	}, nil
}

// BMICategory maps a BMI value to its WHO band.
func BMICategory(bmi float64) string {
	switch {
	case bmi < 18.5:
		return "underweight"
	case bmi < 25:
		return "normal"
	case bmi < 30:
		return "overweight"
	default:
		return "obese"
	}
}

// IdealWeightResult holds the four common ideal body weight formulas, in kg.
type IdealWeightResult struct {
	Devine   float64 `json:"devine"`
	Robinson float64 `json:"robinson"`
	Miller   float64 `json:"miller"`
	Hamwi    float64 `json:"hamwi"`
	Average  float64 `json:"average"`
}

// IdealWeight applies the Devine, Robinson, Miller and Hamwi formulas, each
// a base weight plus a per-inch increment above five feet.
func IdealWeight(heightCm float64, sex Sex) (*IdealWeightResult, error) {
	if err := calc.InRange("height", heightCm, 100, 300); err != nil {
		return nil, err
	}
	over := math.Max(0, heightCm/CmPerInch-60)
	var res IdealWeightResult
	if sex == Male {
		res = IdealWeightResult{
			Devine:   50 + 2.3*over,
			Robinson: 52 + 1.9*over,
			Miller:   56.2 + 1.41*over,
			Hamwi:    48 + 2.7*over,
		}
	} else {
		res = IdealWeightResult{
			Devine:   45.5 + 2.3*over,
			Robinson: 49 + 1.7*over,
			Miller:   53.1 + 1.36*over,
			Hamwi:    45.5 + 2.2*over,
		}
	}
	res.Average = (res.Devine + res.Robinson + res.Miller + res.Hamwi) / 4
	return &res, nil
}

// BodyFatResult is the output of the body fat calculator.
type BodyFatResult struct {
	BodyFatPercent float64 `json:"body_fat_percent"`
	Category       string  `json:"category"`
	FatMassKg      float64 `json:"fat_mass_kg,omitempty"`
	LeanMassKg     float64 `json:"lean_mass_kg,omitempty"`
}

// BodyFatInput holds circumferences in centimetres. Hip is used for women only;
// weight is optional and enables the mass split.
type BodyFatInput struct {
	Sex      Sex
	HeightCm float64
	NeckCm   float64
	WaistCm  float64
	HipCm    float64
	WeightKg float64
}

// BodyFat applies the U.S. Navy circumference method.
func BodyFat(in BodyFatInput) (*BodyFatResult, error) {
	if err := calc.First(
		calc.InRange("height", in.HeightCm, 30, 300),
		calc.Positive("neck", in.NeckCm),
		calc.Positive("waist", in.WaistCm),
		calc.NonNegative("weight", in.WeightKg),
	); err != nil {
		return nil, err
	}

	var pct float64
	if in.Sex == Male {
		if in.WaistCm <= in.NeckCm {
			return nil, calc.Invalid("waist", "must be larger than neck")
		}
		pct = 495/(1.0324-0.19077*math.Log10(in.WaistCm-in.NeckCm)+0.15456*math.Log10(in.HeightCm)) - 450
	} else {
		if err := calc.Positive("hip", in.HipCm); err != nil {
			return nil, err
		}
		if in.WaistCm+in.HipCm <= in.NeckCm {
			return nil, calc.Invalid("waist", "plus hip must be larger than neck")
		}
		pct = 495/(1.29579-0.35004*math.Log10(in.WaistCm+in.HipCm-in.NeckCm)+0.22100*math.Log10(in.HeightCm)) - 450
	}
	if pct <= 0 || pct >= 75 {
		return nil, calc.Invalid("waist", "measurements give an implausible result")
	}

	res := &BodyFatResult{BodyFatPercent: pct, Category: bodyFatCategory(in.Sex, pct)}
	if in.WeightKg > 0 {
		res.FatMassKg = in.WeightKg * pct / 100
		res.LeanMassKg = in.WeightKg - res.FatMassKg
	}
	return res, nil
}

// bodyFatCategory uses the American Council on Exercise bands.
func bodyFatCategory(sex Sex, pct float64) string {
	bands := []float64{6, 14, 18, 25} // male
	if sex == Female {
		bands = []float64{14, 21, 25, 32}
	}
	switch {
	case pct < bands[0]:
		return "essential"
	case pct < bands[1]:
		return "athletes"
	case pct < bands[2]:
		return "fitness"
	case pct < bands[3]:
		return "average"
	default:
		return "obese"
	}
}

// WaterIntakeResult is the output of the water intake calculator.
type WaterIntakeResult struct {
	Liters  float64 `json:"liters"`
	Ounces  float64 `json:"ounces"`
	Glasses int     `json:"glasses"`
}

// WaterIntake recommends 33 ml per kg plus 350 ml per 30 minutes of exercise.
func WaterIntake(weightKg, exerciseMinutes float64) (*WaterIntakeResult, error) {
	if err := calc.First(
		calc.InRange("weight", weightKg, 1, 700),
		calc.InRange("exercise_minutes", exerciseMinutes, 0, 1440),
	); err != nil {
		return nil, err
	}
	liters := weightKg*0.033 + exerciseMinutes/30*0.35
	return &WaterIntakeResult{
		Liters:  liters,
		Ounces:  liters * 33.814,
		Glasses: int(math.Ceil(liters / 0.25)),
	}, nil
}
