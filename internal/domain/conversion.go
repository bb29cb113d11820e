package domain

import "github.com/shopspring/decimal"

// ConversionRequest carries one conversion ask. Date is optional and, when
// present, holds a YYYY-MM-DD calendar date.
type ConversionRequest struct {
	From   string
	To     string
	Amount decimal.Decimal
	Date   string
}

// ConversionResult is the per-request value returned to the caller. DateUsed
// is the date the effective rate actually corresponds to and may differ from
// the requested date when the provider substituted the nearest available one.
type ConversionResult struct {
	From      string  `json:"from"`
	To        string  `json:"to"`
	Amount    float64 `json:"amount"`
	Rate      float64 `json:"rate"`
	Converted float64 `json:"converted"`
	DateUsed  string  `json:"dateUsed"`
}
