package catalog

import (
	"context"
	"slices"
	"strings"

	"currconv/internal/adapters"
	"currconv/internal/domain"
)

type Service struct {
	provider adapters.RateProvider
	cache    adapters.CatalogCache
}

func NewService(provider adapters.RateProvider, cache adapters.CatalogCache) *Service {
	return &Service{provider: provider, cache: cache}
}

// GetCurrencies returns the supported currency catalog sorted ascending by
// code. Catalog snapshots are cached for a bounded TTL; rates themselves are
// never cached.
func (s *Service) GetCurrencies(ctx context.Context) ([]domain.CurrencySummary, error) {
	if cached, ok := s.cache.Get(); ok {
		return cached, nil
	}
	return s.Refresh(ctx)
}

// Refresh fetches the catalog from the provider, normalizes it and replaces
// the cached copy. Failures share the conversion taxonomy.
func (s *Service) Refresh(ctx context.Context) ([]domain.CurrencySummary, error) {
	payload, err := s.provider.FetchCurrencies(ctx)
	if err != nil {
		return nil, domain.ClassifyProviderError(err)
	}

	// codes are unique within a snapshot because the provider keys by code
	currencies := make([]domain.CurrencySummary, 0, len(payload))
	for _, c := range payload {
		currencies = append(currencies, c)
	}
	slices.SortFunc(currencies, func(a, b domain.CurrencySummary) int {
		return strings.Compare(a.Code, b.Code)
	})

	s.cache.Set(currencies)
	return currencies, nil
}
