package models

import "time"

// Rate sources reported with every conversion.
const (
	RateSourceLive     = "live"
	RateSourceCache    = "cache"
	RateSourceFallback = "fallback"
)

// ExchangeRates is a table of rates quoted against Base (1 Base = Rates[code]).
type ExchangeRates struct {
	Base   string             `json:"base"`
	Rates  map[string]float64 `json:"rates"`
	AsOf   time.Time          `json:"as_of"`
	Source string             `json:"source"`
}

// CurrencyConversion is the result of the currency calculator.
type CurrencyConversion struct {
	Amount     float64   `json:"amount"`
	From       string    `json:"from"`
	To         string    `json:"to"`
	Rate       float64   `json:"rate"`
	Converted  float64   `json:"converted"`
	FromSymbol string    `json:"from_symbol"`
	ToSymbol   string    `json:"to_symbol"`
	Source     string    `json:"source"`
	AsOf       time.Time `json:"as_of"`
}
