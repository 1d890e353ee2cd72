package currency

// fallbackRates are approximate units per US dollar, used whenever live
// rates cannot be fetched.
var fallbackRates = map[string]float64{
	"USD": 1,
	"EUR": 0.92,
	"GBP": 0.79,
	"JPY": 150.0,
	"CHF": 0.88,
	"CAD": 1.36,
	"AUD": 1.52,
	"NZD": 1.65,
	"CNY": 7.24,
	"HKD": 7.82,
	"SGD": 1.34,
	"INR": 83.3,
	"KRW": 1330,
	"SEK": 10.4,
	"NOK": 10.6,
	"DKK": 6.87,
	"PLN": 3.95,
	"CZK": 23.2,
	"HUF": 360,
	"TRY": 32.0,
	"ZAR": 18.6,
	"BRL": 5.05,
	"MXN": 17.0,
	"ARS": 870,
	"CLP": 950,
	"COP": 3900,
	"AED": 3.6725,
	"SAR": 3.75,
	"ILS": 3.65,
	"THB": 36.0,
	"MYR": 4.7,
	"IDR": 15700,
	"PHP": 56.0,
	"VND": 24800,
	"PKR": 278,
	"EGP": 47.0,
	"NGN": 1500,
	"KES": 130,
	"RUB": 92.0,
	"UAH": 39.0,
}
