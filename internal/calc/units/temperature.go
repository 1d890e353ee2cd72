package units

import (
	"strconv"

	"github.com/bobmcallan/abacus/internal/calc"
)

const celsiusOffset = 273.15

func toKelvin(v float64, unit string) (float64, error) {
	var k float64
	switch unit {
	case "C":
		k = v + celsiusOffset
	case "F":
		k = (v-32)*5/9 + celsiusOffset
	case "K":
		k = v
	case "R":
		k = v * 5 / 9
	}
	if k < -1e-9 {
		return 0, calc.Invalid("value", "is below absolute zero")
	}
	return k, nil
}

func fromKelvin(k float64, unit string) float64 {
	switch unit {
	case "C":
		return k - celsiusOffset
	case "F":
		return (k-celsiusOffset)*9/5 + 32
	case "R":
		return k * 9 / 5
	}
	return k
}

func fmtFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', 10, 64)
}
