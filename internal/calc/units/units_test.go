package units

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/abacus/internal/calc"
)

func TestConvert(t *testing.T) {
	tests := []struct {
		quantity string
		value    float64
		from, to string
		want     float64
	}{
		{"length", 1, "mi", "km", 1.609344},
		{"length", 12, "in", "ft", 1},
		{"mass", 1, "kg", "lb", 2.2046226218},
		{"volume", 1, "gal", "l", 3.785411784},
		{"area", 1, "acre", "ft2", 43560},
		{"speed", 100, "km/h", "mph", 62.1371192237},
		{"data", 1, "GiB", "MB", 1073.741824},
		{"time", 2, "h", "min", 120},
		{"pressure", 1, "atm", "psi", 14.6959487755},
		{"energy", 1, "kWh", "kcal", 860.4206501},
		{"temperature", 100, "C", "F", 212},
		{"temperature", 32, "F", "C", 0},
		{"temperature", 0, "K", "C", -273.15},
		{"temperature", 491.67, "R", "F", 32},
	}
	for _, tt := range tests {
		t.Run(tt.quantity+"/"+tt.from+"-"+tt.to, func(t *testing.T) {
			res, err := Convert(tt.quantity, tt.value, tt.from, tt.to)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, res.Result, 1e-6)
		})
	}
}

func TestConvertRoundTrip(t *testing.T) {
	for _, q := range Quantities() {
		for _, from := range q.Units {
			for _, to := range q.Units {
				there, err := Convert(q.Name, 37.5, from.Symbol, to.Symbol)
				require.NoError(t, err)
				back, err := Convert(q.Name, there.Result, to.Symbol, from.Symbol)
				require.NoError(t, err)
				assert.InDelta(t, 37.5, back.Result, 1e-9, "%s %s->%s", q.Name, from.Symbol, to.Symbol)
			}
		}
	}
}

func TestConvertLookup(t *testing.T) {
	res, err := Convert("Length", 1, "metre", "CM")
	require.NoError(t, err)
	assert.Equal(t, "m", res.From)
	assert.Equal(t, "cm", res.To)
	assert.InDelta(t, 100, res.Result, 1e-9)
	assert.Equal(t, "1 m = 100 cm", res.Formula)

	_, err = Convert("length", 1, "m", "kg")
	assert.Equal(t, "to", calc.FieldOf(err))
	_, err = Convert("flavour", 1, "m", "cm")
	assert.Equal(t, "quantity", calc.FieldOf(err))
	_, err = Convert("temperature", -10, "K", "C")
	assert.Equal(t, "value", calc.FieldOf(err))
}

func TestQuantityNames(t *testing.T) {
	assert.Contains(t, QuantityNames(), Temperature)
	assert.Len(t, QuantityNames(), 10)
}
