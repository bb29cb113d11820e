package domain

// CurrencySummary is one entry of the provider's currency catalog.
type CurrencySummary struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Symbol string `json:"symbol,omitempty"`
}
