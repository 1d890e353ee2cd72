package catalog

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/bobmcallan/abacus/internal/calc"
	"github.com/bobmcallan/abacus/internal/models"
)

// Args holds calculator arguments. Registry.Run normalises every declared
// parameter to its Go type (float64, int, string, bool) before a handler sees
// them, so the getters below never fail; absent optional values read as zero.
type Args map[string]interface{}

// Has reports whether name was supplied or defaulted.
func (a Args) Has(name string) bool {
	_, ok := a[name]
	return ok
}

// Float returns a number parameter.
func (a Args) Float(name string) float64 {
	v, _ := a[name].(float64)
	return v
}

// Int returns an integer parameter.
func (a Args) Int(name string) int {
	v, _ := a[name].(int)
	return v
}

// String returns a string parameter.
func (a Args) String(name string) string {
	v, _ := a[name].(string)
	return v
}

// Bool returns a boolean parameter.
func (a Args) Bool(name string) bool {
	v, _ := a[name].(bool)
	return v
}

// Decode unmarshals an array or object parameter into dst.
func (a Args) Decode(name string, dst interface{}) error {
	v, ok := a[name]
	if !ok {
		return calc.Invalid(name, "is required")
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return calc.Invalid(name, "is malformed")
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return calc.Invalid(name, "has the wrong shape: %v", err)
	}
	return nil
}

// normalize converts v to the Go type of a parameter type. Strings are
// accepted for scalars so CLI flags and query strings work unchanged.
func normalize(p models.ParamDefinition, v interface{}) (interface{}, error) {
	switch p.Type {
	case models.ParamNumber:
		f, err := toFloat(v)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, calc.Invalid(p.Name, "must be a number")
		}
		return f, nil
	case models.ParamInteger:
		f, err := toFloat(v)
		if err != nil || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
			return nil, calc.Invalid(p.Name, "must be a whole number")
		}
		return int(f), nil
	case models.ParamBoolean:
		switch b := v.(type) {
		case bool:
			return b, nil
		case string:
			parsed, err := strconv.ParseBool(strings.TrimSpace(b))
			if err != nil {
				return nil, calc.Invalid(p.Name, "must be true or false")
			}
			return parsed, nil
		}
		return nil, calc.Invalid(p.Name, "must be true or false")
	case models.ParamString:
		switch s := v.(type) {
		case string:
			return s, nil
		case float64, int, json.Number:
			return fmt.Sprint(s), nil
		}
		return nil, calc.Invalid(p.Name, "must be a string")
	case models.ParamArray:
		if s, ok := v.(string); ok {
			// CLI form: a JSON array, or comma-separated scalars
			var arr []interface{}
			if err := json.Unmarshal([]byte(s), &arr); err == nil {
				return arr, nil
			}
			var out []interface{}
			for _, part := range strings.Split(s, ",") {
				if part = strings.TrimSpace(part); part != "" {
					out = append(out, part)
				}
			}
			return out, nil
		}
		if _, ok := v.([]interface{}); !ok {
			return nil, calc.Invalid(p.Name, "must be an array")
		}
		return v, nil
	}
	return v, nil
}

func toFloat(v interface{}) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case json.Number:
		return n.Float64()
	case string:
		s := strings.ReplaceAll(strings.TrimSpace(n), ",", "")
		return strconv.ParseFloat(s, 64)
	}
	return 0, fmt.Errorf("not a number: %T", v)
}

// floats decodes a number array parameter, accepting numeric strings.
func floats(a Args, name string) ([]float64, error) {
	raw, _ := a[name].([]interface{})
	out := make([]float64, 0, len(raw))
	for _, v := range raw {
		f, err := toFloat(v)
		if err != nil {
			return nil, calc.Invalid(name, "must contain only numbers")
		}
		out = append(out, f)
	}
	return out, nil
}

// integers decodes an integer array parameter.
func integers(a Args, name string) ([]int64, error) {
	fs, err := floats(a, name)
	if err != nil {
		return nil, err
	}
	out := make([]int64, len(fs))
	for i, f := range fs {
		if f != math.Trunc(f) || math.Abs(f) > 1<<53 {
			return nil, calc.Invalid(name, "must contain only whole numbers")
		}
		out[i] = int64(f)
	}
	return out, nil
}
