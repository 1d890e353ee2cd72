// Package models defines data structures for Abacus
package models

// Category groups calculators on the index page and in the catalog.
type Category string

const (
	CategoryFinance  Category = "finance"
	CategoryHealth   Category = "health"
	CategoryMath     Category = "math"
	CategoryDateTime Category = "datetime"
	CategoryUnits    Category = "units"
	CategoryDevTools Category = "devtools"
)

// Categories lists every category in display order.
func Categories() []Category {
	return []Category{
		CategoryFinance,
		CategoryHealth,
		CategoryMath,
		CategoryDateTime,
		CategoryUnits,
		CategoryDevTools,
	}
}

// Parameter types accepted by ParamDefinition.Type.
const (
	ParamNumber  = "number"
	ParamInteger = "integer"
	ParamString  = "string"
	ParamBoolean = "boolean"
	ParamArray   = "array"
)

// CalculatorDefinition describes a calculator and its inputs. It is served by
// GET /api/calculators and used to build MCP tool schemas.
type CalculatorDefinition struct {
	Name        string            `json:"name"`
	Title       string            `json:"title"`
	Category    Category          `json:"category"`
	Description string            `json:"description"`
	Formula     string            `json:"formula,omitempty"`
	Params      []ParamDefinition `json:"params,omitempty"`
	Chart       bool              `json:"chart,omitempty"` // result can be rendered via /chart
}

// ParamDefinition describes one calculator input.
type ParamDefinition struct {
	Name        string      `json:"name"`
	Type        string      `json:"type"`
	Description string      `json:"description"`
	Required    bool        `json:"required,omitempty"`
	Default     interface{} `json:"default,omitempty"`
	Enum        []string    `json:"enum,omitempty"`
}

// Param returns the named parameter definition, if declared.
func (d *CalculatorDefinition) Param(name string) (ParamDefinition, bool) {
	for _, p := range d.Params {
		if p.Name == name {
			return p, true
		}
	}
	return ParamDefinition{}, false
}

// CategorySummary is one entry of GET /api/categories.
type CategorySummary struct {
	Category    Category `json:"category"`
	Calculators int      `json:"calculators"`
}
