package catalog

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/bobmcallan/abacus/internal/calc"
	"github.com/bobmcallan/abacus/internal/calc/health"
	"github.com/bobmcallan/abacus/internal/models"
)

const (
	metric   = "metric"
	imperial = "imperial"
)

// body reads weight (kg|lb) and height (cm|in) according to unit_system and
// returns metric values.
func body(a Args) (weightKg, heightCm float64) {
	w, h := a.Float("weight"), a.Float("height")
	if a.String("unit_system") == imperial {
		return w * health.KgPerPound, h * health.CmPerInch
	}
	return w, h
}

// length reads a circumference or height parameter in cm, or inches when imperial.
func length(a Args, name string) float64 {
	if a.String("unit_system") == imperial {
		return a.Float(name) * health.CmPerInch
	}
	return a.Float(name)
}

func unitSystem() models.ParamDefinition {
	return def(oneOf(str("unit_system", "metric (kg, cm) or imperial (lb, in)"), metric, imperial), metric)
}

func sexParam() models.ParamDefinition {
	return required(oneOf(str("sex", "male or female"), string(health.Male), string(health.Female)))
}

func bmrInput(a Args) (health.BMRInput, error) {
	sex, err := health.ParseSex(a.String("sex"))
	if err != nil {
		return health.BMRInput{}, err
	}
	w, h := body(a)
	return health.BMRInput{Sex: sex, WeightKg: w, HeightCm: h, Age: a.Int("age"), Formula: a.String("formula")}, nil
}

// bmrResult is the output of the BMR calculator.
type bmrResult struct {
	BMR       float64 `json:"bmr"`
	Kilojoule float64 `json:"kilojoules"`
	Formula   string  `json:"formula"`
}

// parseElapsed reads h:mm:ss, mm:ss or a plain number of seconds.
func parseElapsed(field, s string) (float64, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) > 3 {
		return 0, calc.Invalid(field, "must look like h:mm:ss")
	}
	var total float64
	for _, p := range parts {
		var v float64
		if _, err := fmt.Sscanf(p, "%g", &v); err != nil || v < 0 {
			return 0, calc.Invalid(field, "must look like h:mm:ss")
		}
		total = total*60 + v
	}
	return total, nil
}

func (r *Registry) registerHealth() {
	hl := models.CategoryHealth
	weight := required(num("weight", "Body weight (kg, or lb when imperial)"))
	height := required(num("height", "Height (cm, or inches when imperial)"))

	r.add(models.CalculatorDefinition{
		Name:        "bmi",
		Title:       "BMI Calculator",
		Category:    hl,
		Description: "Body mass index with the WHO adult category and the healthy weight range for the height.",
		Formula:     "BMI = kg / m²",
		Params:      []models.ParamDefinition{weight, height, unitSystem()},
	}, Args{"weight": 70, "height": 175}, func(_ context.Context, a Args) (interface{}, error) {
		w, h := body(a)
		return health.BMI(w, h)
	})

	bmrParams := []models.ParamDefinition{
		sexParam(), weight, height,
		required(integer("age", "Age in years")),
		unitSystem(),
		def(oneOf(str("formula", "mifflin (Mifflin-St Jeor) or harris (revised Harris-Benedict)"), health.FormulaMifflin, health.FormulaHarris), health.FormulaMifflin),
	}
	r.add(models.CalculatorDefinition{
		Name:        "bmr",
		Title:       "BMR Calculator",
		Category:    hl,
		Description: "Basal metabolic rate: calories burned at rest.",
		Formula:     "Mifflin-St Jeor: 10·kg + 6.25·cm − 5·age + 5 (male) / − 161 (female)",
		Params:      bmrParams,
	}, Args{"sex": "male", "weight": 80, "height": 180, "age": 30}, func(_ context.Context, a Args) (interface{}, error) {
		in, err := bmrInput(a)
		if err != nil {
			return nil, err
		}
		bmr, err := health.BMR(in)
		if err != nil {
			return nil, err
		}
		return &bmrResult{BMR: bmr, Kilojoule: bmr * 4.184, Formula: in.Formula}, nil
	})

	r.add(models.CalculatorDefinition{
		Name:        "tdee",
		Title:       "TDEE Calculator",
		Category:    hl,
		Description: "Total daily energy expenditure with calorie targets for weight loss and gain.",
		Formula:     "TDEE = BMR × activity multiplier (1.2 – 1.9)",
		Params: append(slices.Clone(bmrParams),
			def(oneOf(str("activity_level", "Activity level"), health.ActivityLevels()...), "moderate")),
	}, Args{"sex": "female", "weight": 65, "height": 165, "age": 35, "activity_level": "light"}, func(_ context.Context, a Args) (interface{}, error) {
		in, err := bmrInput(a)
		if err != nil {
			return nil, err
		}
		return health.TDEE(in, a.String("activity_level"))
	})

	r.add(models.CalculatorDefinition{
		Name:        "macros",
		Title:       "Macro Calculator",
		Category:    hl,
		Description: "Daily protein, carbohydrate and fat grams for a calorie goal.",
		Formula:     "grams = calories × share / (4 kcal/g protein & carbs, 9 kcal/g fat)",
		Params: []models.ParamDefinition{
			required(num("calories", "Maintenance calories (TDEE)")),
			def(oneOf(str("goal", "Weight goal"), "lose", "maintain", "gain"), "maintain"),
			def(num("protein_percent", "Share of calories from protein"), 30),
			def(num("carb_percent", "Share of calories from carbohydrates"), 40),
			def(num("fat_percent", "Share of calories from fat"), 30),
		},
	}, Args{"calories": 2400, "goal": "lose"}, func(_ context.Context, a Args) (interface{}, error) {
		return health.Macros(a.Float("calories"), a.String("goal"), a.Float("protein_percent"), a.Float("carb_percent"), a.Float("fat_percent"))
	})

	r.add(models.CalculatorDefinition{
		Name:        "ideal_weight",
		Title:       "Ideal Weight Calculator",
		Category:    hl,
		Description: "Ideal body weight by the Devine, Robinson, Miller and Hamwi formulas.",
		Formula:     "Devine: 50 kg (male) / 45.5 kg (female) + 2.3 kg per inch over 5 ft",
		Params:      []models.ParamDefinition{sexParam(), height, unitSystem()},
	}, Args{"sex": "male", "height": 180}, func(_ context.Context, a Args) (interface{}, error) {
		sex, err := health.ParseSex(a.String("sex"))
		if err != nil {
			return nil, err
		}
		return health.IdealWeight(length(a, "height"), sex)
	})

	r.add(models.CalculatorDefinition{
		Name:        "body_fat",
		Title:       "Body Fat Calculator",
		Category:    hl,
		Description: "Body fat percentage by the U.S. Navy circumference method.",
		Formula:     "male: 495/(1.0324 − 0.19077·log10(waist − neck) + 0.15456·log10(height)) − 450",
		Params: []models.ParamDefinition{
			sexParam(), height,
			required(num("neck", "Neck circumference")),
			required(num("waist", "Waist circumference")),
			num("hip", "Hip circumference (required for women)"),
			num("weight", "Body weight, enables the fat/lean mass split"),
			unitSystem(),
		},
	}, Args{"sex": "male", "height": 178, "neck": 38, "waist": 86, "weight": 80}, func(_ context.Context, a Args) (interface{}, error) {
		sex, err := health.ParseSex(a.String("sex"))
		if err != nil {
			return nil, err
		}
		w, _ := body(a)
		return health.BodyFat(health.BodyFatInput{
			Sex:      sex,
			HeightCm: length(a, "height"),
			NeckCm:   length(a, "neck"),
			WaistCm:  length(a, "waist"),
			HipCm:    length(a, "hip"),
			WeightKg: w,
		})
	})

	r.add(models.CalculatorDefinition{
		Name:        "water_intake",
		Title:       "Water Intake Calculator",
		Category:    hl,
		Description: "Recommended daily water intake from body weight and exercise.",
		Formula:     "litres = 0.033·kg + 0.35 per 30 min exercise",
		Params: []models.ParamDefinition{
			weight,
			def(num("exercise_minutes", "Daily exercise in minutes"), 0),
			unitSystem(),
		},
	}, Args{"weight": 70, "exercise_minutes": 30}, func(_ context.Context, a Args) (interface{}, error) {
		w, _ := body(a)
		return health.WaterIntake(w, a.Float("exercise_minutes"))
	})

	activities := make([]string, 0, len(health.ActivityMET))
	for k := range health.ActivityMET {
		activities = append(activities, k)
	}
	slices.Sort(activities)
	r.add(models.CalculatorDefinition{
		Name:        "calories_burned",
		Title:       "Calories Burned Calculator",
		Category:    hl,
		Description: "Energy burned by an activity from its MET value, body weight and duration.",
		Formula:     "kcal = MET × kg × hours",
		Params: []models.ParamDefinition{
			oneOf(str("activity", "Known activity; overrides met"), activities...),
			def(num("met", "Metabolic equivalent of the activity"), 0),
			weight,
			required(num("minutes", "Duration in minutes")),
			unitSystem(),
		},
	}, Args{"activity": "running", "weight": 70, "minutes": 30}, func(_ context.Context, a Args) (interface{}, error) {
		w, _ := body(a)
		return health.CaloriesBurned(a.String("activity"), a.Float("met"), w, a.Float("minutes"))
	})

	r.add(models.CalculatorDefinition{
		Name:        "due_date",
		Title:       "Pregnancy Due Date Calculator",
		Category:    hl,
		Description: "Estimated due date by Naegele's rule, adjusted for cycle length, with current progress.",
		Formula:     "due = LMP + 280 days + (cycle − 28)",
		Params: []models.ParamDefinition{
			required(str("last_period", "First day of the last menstrual period (YYYY-MM-DD)")),
			def(integer("cycle_length", "Average cycle length in days"), 28),
		},
	}, nil, func(_ context.Context, a Args) (interface{}, error) {
		lmp, err := calc.ParseDate("last_period", a.String("last_period"))
		if err != nil {
			return nil, err
		}
		return health.DueDate(lmp, a.Int("cycle_length"), r.today())
	})

	r.add(models.CalculatorDefinition{
		Name:        "ovulation",
		Title:       "Ovulation Calculator",
		Category:    hl,
		Description: "Estimated ovulation day and fertile window.",
		Formula:     "ovulation = LMP + cycle − 14; window = ovulation −5 … +1 days",
		Params: []models.ParamDefinition{
			required(str("last_period", "First day of the last period (YYYY-MM-DD)")),
			def(integer("cycle_length", "Average cycle length in days"), 28),
		},
	}, Args{"last_period": "2025-01-01", "cycle_length": 28}, func(_ context.Context, a Args) (interface{}, error) {
		lmp, err := calc.ParseDate("last_period", a.String("last_period"))
		if err != nil {
			return nil, err
		}
		return health.Ovulation(lmp, a.Int("cycle_length"))
	})

	r.add(models.CalculatorDefinition{
		Name:        "heart_rate_zones",
		Title:       "Heart Rate Zone Calculator",
		Category:    hl,
		Description: "Five training zones from maximum heart rate, using heart rate reserve (Karvonen) when a resting rate is given.",
		Formula:     "max = 220 − age; Karvonen: target = rest + (max − rest)·intensity",
		Params: []models.ParamDefinition{
			required(integer("age", "Age in years")),
			def(integer("resting_heart_rate", "Resting heart rate in bpm (0 to skip)"), 0),
		},
	}, Args{"age": 40, "resting_heart_rate": 60}, func(_ context.Context, a Args) (interface{}, error) {
		return health.HeartRateZones(a.Int("age"), a.Int("resting_heart_rate"))
	})

	r.add(models.CalculatorDefinition{
		Name:        "pace",
		Title:       "Pace Calculator",
		Category:    hl,
		Description: "Running pace per km and per mile, and speed, from distance and time.",
		Formula:     "pace = time / distance",
		Params: []models.ParamDefinition{
			required(num("distance", "Distance covered")),
			def(oneOf(str("distance_unit", "km or mi"), "km", "mi"), "km"),
			required(str("time", "Elapsed time as h:mm:ss, mm:ss or seconds")),
		},
	}, Args{"distance": 10, "distance_unit": "km", "time": "50:00"}, func(_ context.Context, a Args) (interface{}, error) {
		secs, err := parseElapsed("time", a.String("time"))
		if err != nil {
			return nil, err
		}
		d := a.Float("distance")
		if a.String("distance_unit") == "mi" {
			d *= kmPerMile
		}
		return health.Pace(d, secs)
	})
}

const kmPerMile = 1.609344
