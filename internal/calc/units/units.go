// Package units converts between units of measure using static factor tables.
// Every linear quantity stores the size of one unit in the quantity's base unit;
// temperature is affine and handled separately.
package units

import (
	"slices"
	"strings"

	"github.com/bobmcallan/abacus/internal/calc"
)

// Unit is one entry of a quantity's factor table.
type Unit struct {
	Symbol string  `json:"symbol"`
	Name   string  `json:"name"`
	Factor float64 `json:"factor,omitempty"`
}

// Quantity groups the units that convert into each other.
type Quantity struct {
	Name  string `json:"name"`
	Base  string `json:"base"`
	Units []Unit `json:"units"`
}

// Temperature is the one non-linear quantity.
const Temperature = "temperature"

var quantities = []Quantity{
	{Name: "length", Base: "m", Units: []Unit{
		{"mm", "millimetre", 0.001},
		{"cm", "centimetre", 0.01},
		{"m", "metre", 1},
		{"km", "kilometre", 1000},
		{"in", "inch", 0.0254},
		{"ft", "foot", 0.3048},
		{"yd", "yard", 0.9144},
		{"mi", "mile", 1609.344},
		{"nmi", "nautical mile", 1852},
	}},
	{Name: "mass", Base: "kg", Units: []Unit{
		{"mg", "milligram", 1e-6},
		{"g", "gram", 0.001},
		{"kg", "kilogram", 1},
		{"t", "tonne", 1000},
		{"oz", "ounce", 0.028349523125},
		{"lb", "pound", 0.45359237},
		{"st", "stone", 6.35029318},
		{"ton_us", "short ton", 907.18474},
	}},
	{Name: "volume", Base: "l", Units: []Unit{
		{"ml", "millilitre", 0.001},
		{"l", "litre", 1},
		{"m3", "cubic metre", 1000},
		{"tsp", "teaspoon (US)", 0.00492892159375},
		{"tbsp", "tablespoon (US)", 0.01478676478125},
		{"floz", "fluid ounce (US)", 0.0295735295625},
		{"cup", "cup (US)", 0.2365882365},
		{"pt", "pint (US)", 0.473176473},
		{"qt", "quart (US)", 0.946352946},
		{"gal", "gallon (US)", 3.785411784},
		{"gal_uk", "gallon (imperial)", 4.54609},
	}},
	{Name: "area", Base: "m2", Units: []Unit{
		{"cm2", "square centimetre", 1e-4},
		{"m2", "square metre", 1},
		{"ha", "hectare", 1e4},
		{"km2", "square kilometre", 1e6},
		{"in2", "square inch", 0.00064516},
		{"ft2", "square foot", 0.09290304},
		{"yd2", "square yard", 0.83612736},
		{"acre", "acre", 4046.8564224},
		{"mi2", "square mile", 2589988.110336},
	}},
	{Name: "speed", Base: "m/s", Units: []Unit{
		{"m/s", "metre per second", 1},
		{"km/h", "kilometre per hour", 1000.0 / 3600},
		{"mph", "mile per hour", 0.44704},
		{"kn", "knot", 1852.0 / 3600},
		{"ft/s", "foot per second", 0.3048},
	}},
	{Name: "data", Base: "B", Units: []Unit{
		{"bit", "bit", 0.125},
		{"B", "byte", 1},
		{"KB", "kilobyte", 1e3},
		{"MB", "megabyte", 1e6},
		{"GB", "gigabyte", 1e9},
		{"TB", "terabyte", 1e12},
		{"KiB", "kibibyte", 1024},
		{"MiB", "mebibyte", 1 << 20},
		{"GiB", "gibibyte", 1 << 30},
		{"TiB", "tebibyte", 1 << 40},
	}},
	{Name: "time", Base: "s", Units: []Unit{
		{"ms", "millisecond", 0.001},
		{"s", "second", 1},
		{"min", "minute", 60},
		{"h", "hour", 3600},
		{"d", "day", 86400},
		{"wk", "week", 604800},
		{"yr", "year (365.25 d)", 31557600},
	}},
	{Name: "pressure", Base: "Pa", Units: []Unit{
		{"Pa", "pascal", 1},
		{"kPa", "kilopascal", 1000},
		{"bar", "bar", 1e5},
		{"atm", "atmosphere", 101325},
		{"psi", "pound per square inch", 6894.757293168},
		{"mmHg", "millimetre of mercury", 133.322387415},
	}},
	{Name: "energy", Base: "J", Units: []Unit{
		{"J", "joule", 1},
		{"kJ", "kilojoule", 1000},
		{"cal", "calorie", 4.184},
		{"kcal", "kilocalorie", 4184},
		{"Wh", "watt hour", 3600},
		{"kWh", "kilowatt hour", 3.6e6},
		{"BTU", "British thermal unit", 1055.05585262},
	}},
	{Name: Temperature, Base: "C", Units: []Unit{
		{Symbol: "C", Name: "Celsius"},
		{Symbol: "F", Name: "Fahrenheit"},
		{Symbol: "K", Name: "Kelvin"},
		{Symbol: "R", Name: "Rankine"},
	}},
}

// Quantities returns the supported quantities and their unit tables.
func Quantities() []Quantity {
	return slices.Clone(quantities)
}

// QuantityNames lists the quantity names in table order.
func QuantityNames() []string {
	names := make([]string, len(quantities))
	for i, q := range quantities {
		names[i] = q.Name
	}
	return names
}

func lookup(name string) (*Quantity, bool) {
	for i := range quantities {
		if quantities[i].Name == name {
			return &quantities[i], true
		}
	}
	return nil, false
}

func (q *Quantity) unit(symbol string) (Unit, bool) {
	for _, u := range q.Units {
		if u.Symbol == symbol {
			return u, true
		}
	}
	// fall back to case-insensitive symbol or name match
	for _, u := range q.Units {
		if strings.EqualFold(u.Symbol, symbol) || strings.EqualFold(u.Name, symbol) {
			return u, true
		}
	}
	return Unit{}, false
}

// Conversion is the output of Convert.
type Conversion struct {
	Quantity string  `json:"quantity"`
	Value    float64 `json:"value"`
	From     string  `json:"from"`
	To       string  `json:"to"`
	Result   float64 `json:"result"`
	Formula  string  `json:"formula,omitempty"`
}

// Convert converts value from one unit of quantity to another.
func Convert(quantity string, value float64, from, to string) (*Conversion, error) {
	if err := calc.Finite("value", value); err != nil {
		return nil, err
	}
	q, ok := lookup(strings.ToLower(strings.TrimSpace(quantity)))
	if !ok {
		return nil, calc.Invalid("quantity", "must be one of %s", strings.Join(QuantityNames(), ", "))
	}
	fu, ok := q.unit(from)
	if !ok {
		return nil, calc.Invalid("from", "%q is not a %s unit", from, q.Name)
	}
	tu, ok := q.unit(to)
	if !ok {
		return nil, calc.Invalid("to", "%q is not a %s unit", to, q.Name)
	}
	res := &Conversion{Quantity: q.Name, Value: value, From: fu.Symbol, To: tu.Symbol}
	if q.Name == Temperature {
		k, err := toKelvin(value, fu.Symbol)
		if err != nil {
			return nil, err
		}
		res.Result = fromKelvin(k, tu.Symbol)
		return res, nil
	}
	res.Result = value * fu.Factor / tu.Factor
	res.Formula = formula(fu, tu)
	return res, nil
}

func formula(from, to Unit) string {
	return "1 " + from.Symbol + " = " + fmtFloat(from.Factor/to.Factor) + " " + to.Symbol
}
