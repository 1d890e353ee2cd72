package catalog

import (
	"context"

	"github.com/bobmcallan/abacus/internal/calc/units"
	"github.com/bobmcallan/abacus/internal/models"
)

func (r *Registry) registerUnits() {
	r.add(models.CalculatorDefinition{
		Name:        "unit_convert",
		Title:       "Unit Converter",
		Category:    models.CategoryUnits,
		Description: "Converts length, mass, volume, area, speed, data, time, pressure, energy and temperature units.",
		Formula:     "result = value × factor(from) / factor(to); temperature via kelvin",
		Params: []models.ParamDefinition{
			required(oneOf(str("quantity", "What is measured"), units.QuantityNames()...)),
			required(num("value", "Value to convert")),
			required(str("from", "Source unit symbol or name, e.g. km")),
			required(str("to", "Target unit symbol or name, e.g. mi")),
		},
	}, Args{"quantity": "length", "value": 10, "from": "km", "to": "mi"}, func(_ context.Context, a Args) (interface{}, error) {
		return units.Convert(a.String("quantity"), a.Float("value"), a.String("from"), a.String("to"))
	})

	r.add(models.CalculatorDefinition{
		Name:        "unit_list",
		Title:       "Unit Tables",
		Category:    models.CategoryUnits,
		Description: "Lists the supported quantities and their units.",
		Params: []models.ParamDefinition{
			oneOf(str("quantity", "Only this quantity"), units.QuantityNames()...),
		},
	}, nil, func(_ context.Context, a Args) (interface{}, error) {
		all := units.Quantities()
		q := a.String("quantity")
		if q == "" {
			return all, nil
		}
		for _, x := range all {
			if x.Name == q {
				return []units.Quantity{x}, nil
			}
		}
		return []units.Quantity{}, nil
	})
}
