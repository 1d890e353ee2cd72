package common

import (
	"math"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// FormatNumber renders v with thousands separators and the given decimals.
func FormatNumber(v float64, decimals int) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return printer.Sprint(v)
	}
	return printer.Sprintf("%.*f", decimals, v)
}

// FormatMoney renders an amount with its ISO 4217 symbol, e.g. "$ 1,798.65".
// Unknown codes fall back to "CODE 1,798.65".
func FormatMoney(amount float64, code string) string {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return code + " " + FormatNumber(amount, 2)
	}
	return printer.Sprint(currency.Symbol(unit.Amount(amount)))
}

// CurrencySymbol returns the English display symbol of an ISO 4217 code,
// or the code itself when it has none.
func CurrencySymbol(code string) string {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return code
	}
	return printer.Sprint(currency.Symbol(unit))
}
