package conversion

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"currconv/internal/adapters"
	"currconv/internal/domain"
)

type Service struct {
	provider adapters.RateProvider
	now      func() time.Time
}

func NewService(provider adapters.RateProvider) *Service {
	return &Service{provider: provider, now: time.Now}
}

// Convert resolves the effective rate for the requested pair and computes the
// converted amount rounded to six decimal places, half away from zero. Every
// provider failure is classified into the user-facing taxonomy here; nothing
// is retried.
func (s *Service) Convert(ctx context.Context, req domain.ConversionRequest) (domain.ConversionResult, error) {
	from, err := NormalizeCode(req.From)
	if err != nil {
		return domain.ConversionResult{}, err
	}
	to, err := NormalizeCode(req.To)
	if err != nil {
		return domain.ConversionResult{}, err
	}
	if err = validateAmount(req.Amount); err != nil {
		return domain.ConversionResult{}, err
	}

	today := s.now().UTC()
	date, err := ValidateDate(req.Date, today)
	if err != nil {
		return domain.ConversionResult{}, err
	}

	var snapshot domain.RateSnapshot
	if date != "" {
		snapshot, err = s.provider.FetchHistorical(ctx, from, []string{to}, date)
	} else {
		snapshot, err = s.provider.FetchLatest(ctx, from, []string{to})
	}
	if err != nil {
		return domain.ConversionResult{}, domain.ClassifyProviderError(err)
	}

	rate, dateUsed, ok := ResolveRate(snapshot, to, date, today.Format(dateLayout))
	if !ok {
		return domain.ConversionResult{}, domain.NewConversionError(domain.FailureRateUnavailable, domain.MsgRateUnavailable)
	}

	converted := req.Amount.Mul(decimal.NewFromFloat(rate)).Round(6)

	return domain.ConversionResult{
		From:      from,
		To:        to,
		Amount:    req.Amount.InexactFloat64(),
		Rate:      rate,
		Converted: converted.InexactFloat64(),
		DateUsed:  dateUsed,
	}, nil
}
