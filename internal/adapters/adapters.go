package adapters

import (
	"context"

	"currconv/internal/domain"
)

// RateProvider is the outbound port to the third-party rate API. Every
// implementation attaches the provider credential and a bounded timeout, and
// reports failures without classifying them.
type RateProvider interface {
	FetchCurrencies(ctx context.Context) (map[string]domain.CurrencySummary, error)
	FetchLatest(ctx context.Context, base string, currencies []string) (domain.RateSnapshot, error)
	FetchHistorical(ctx context.Context, base string, currencies []string, date string) (domain.RateSnapshot, error)
}

// HistoryRepository is one tier of conversion-history persistence.
type HistoryRepository interface {
	GetAll(ctx context.Context) ([]domain.ConversionRecord, error)
	Add(ctx context.Context, record domain.ConversionRecord) error
}

// CatalogCache holds the most recently normalized currency catalog.
type CatalogCache interface {
	Get() ([]domain.CurrencySummary, bool)
	Set(currencies []domain.CurrencySummary)
}
