package conversion

import (
	"context"
	"errors"
	"testing"
	"time"

	"currconv/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Testify mocks ---

type MockRateProvider struct{ mock.Mock }

func (m *MockRateProvider) FetchCurrencies(ctx context.Context) (map[string]domain.CurrencySummary, error) {
	args := m.Called(ctx)
	currencies, _ := args.Get(0).(map[string]domain.CurrencySummary)
	return currencies, args.Error(1)
}

func (m *MockRateProvider) FetchLatest(ctx context.Context, base string, currencies []string) (domain.RateSnapshot, error) {
	args := m.Called(ctx, base, currencies)
	snapshot, _ := args.Get(0).(domain.RateSnapshot)
	return snapshot, args.Error(1)
}

func (m *MockRateProvider) FetchHistorical(ctx context.Context, base string, currencies []string, date string) (domain.RateSnapshot, error) {
	args := m.Called(ctx, base, currencies, date)
	snapshot, _ := args.Get(0).(domain.RateSnapshot)
	return snapshot, args.Error(1)
}

func newTestService(provider *MockRateProvider) *Service {
	svc := NewService(provider)
	svc.now = func() time.Time {
		return time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	}
	return svc
}

func requireFailureKind(t *testing.T, err error, kind domain.FailureKind) *domain.ConversionError {
	t.Helper()
	var convErr *domain.ConversionError
	require.ErrorAs(t, err, &convErr)
	require.Equal(t, kind, convErr.Kind)
	return convErr
}

func amount(raw string) decimal.Decimal {
	return decimal.RequireFromString(raw)
}

// --- Convert ---

func TestService_Convert_Latest(t *testing.T) {
	provider := new(MockRateProvider)
	svc := newTestService(provider)

	snapshot := domain.RateSnapshot{
		Kind:   domain.SnapshotLatest,
		Latest: map[string]float64{"EUR": 0.92},
	}
	provider.On("FetchLatest", mock.Anything, "USD", []string{"EUR"}).Return(snapshot, nil).Once()

	result, err := svc.Convert(context.Background(), domain.ConversionRequest{
		From:   "usd",
		To:     " eur ",
		Amount: amount("10"),
	})

	require.NoError(t, err)
	require.Equal(t, "USD", result.From)
	require.Equal(t, "EUR", result.To)
	require.InDelta(t, 10.0, result.Amount, 1e-9)
	require.InDelta(t, 0.92, result.Rate, 1e-9)
	require.InDelta(t, 9.2, result.Converted, 1e-9)
	require.Equal(t, "2024-03-15", result.DateUsed)
	provider.AssertExpectations(t)
	provider.AssertNotCalled(t, "FetchHistorical", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Convert_Historical(t *testing.T) {
	provider := new(MockRateProvider)
	svc := newTestService(provider)

	snapshot := domain.RateSnapshot{
		Kind:       domain.SnapshotHistorical,
		Dates:      []string{"2024-01-01"},
		Historical: map[string]map[string]float64{"2024-01-01": {"EUR": 0.95}},
	}
	provider.On("FetchHistorical", mock.Anything, "USD", []string{"EUR"}, "2024-01-01").Return(snapshot, nil).Once()

	result, err := svc.Convert(context.Background(), domain.ConversionRequest{
		From:   "USD",
		To:     "EUR",
		Amount: amount("100"),
		Date:   "2024-01-01",
	})

	require.NoError(t, err)
	require.InDelta(t, 95.0, result.Converted, 1e-9)
	require.Equal(t, "2024-01-01", result.DateUsed)
	provider.AssertExpectations(t)
	provider.AssertNotCalled(t, "FetchLatest", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Convert_DateSubstitutionStaysVisible(t *testing.T) {
	provider := new(MockRateProvider)
	svc := newTestService(provider)

	// the provider answered with the nearest available date
	snapshot := domain.RateSnapshot{
		Kind:       domain.SnapshotHistorical,
		Dates:      []string{"2024-01-02"},
		Historical: map[string]map[string]float64{"2024-01-02": {"EUR": 0.93}},
	}
	provider.On("FetchHistorical", mock.Anything, "USD", []string{"EUR"}, "2024-01-01").Return(snapshot, nil).Once()

	result, err := svc.Convert(context.Background(), domain.ConversionRequest{
		From:   "USD",
		To:     "EUR",
		Amount: amount("10"),
		Date:   "2024-01-01",
	})

	require.NoError(t, err)
	require.Equal(t, "2024-01-02", result.DateUsed)
	provider.AssertExpectations(t)
}

func TestService_Convert_Rounding(t *testing.T) {
	provider := new(MockRateProvider)
	svc := newTestService(provider)

	snapshot := domain.RateSnapshot{
		Kind:   domain.SnapshotLatest,
		Latest: map[string]float64{"EUR": 0.123456789},
	}
	provider.On("FetchLatest", mock.Anything, "USD", []string{"EUR"}).Return(snapshot, nil)

	result, err := svc.Convert(context.Background(), domain.ConversionRequest{
		From:   "USD",
		To:     "EUR",
		Amount: amount("1"),
	})

	require.NoError(t, err)
	// six decimal places, half away from zero
	require.InDelta(t, 0.123457, result.Converted, 1e-12)
}

func TestService_Convert_Idempotent(t *testing.T) {
	provider := new(MockRateProvider)
	svc := newTestService(provider)

	snapshot := domain.RateSnapshot{
		Kind:   domain.SnapshotLatest,
		Latest: map[string]float64{"EUR": 0.92},
	}
	provider.On("FetchLatest", mock.Anything, "USD", []string{"EUR"}).Return(snapshot, nil).Twice()

	req := domain.ConversionRequest{From: "USD", To: "EUR", Amount: amount("10.123456")}

	first, err := svc.Convert(context.Background(), req)
	require.NoError(t, err)
	second, err := svc.Convert(context.Background(), req)
	require.NoError(t, err)

	require.Equal(t, first, second)
	provider.AssertExpectations(t)
}

func TestService_Convert_InvalidInput(t *testing.T) {
	provider := new(MockRateProvider)
	svc := newTestService(provider)

	cases := []struct {
		name string
		req  domain.ConversionRequest
	}{
		{name: "bad from code", req: domain.ConversionRequest{From: "US", To: "EUR", Amount: amount("10")}},
		{name: "bad to code", req: domain.ConversionRequest{From: "USD", To: "EURO", Amount: amount("10")}},
		{name: "amount below minimum", req: domain.ConversionRequest{From: "USD", To: "EUR", Amount: amount("0.001")}},
		{name: "nonexistent date", req: domain.ConversionRequest{From: "USD", To: "EUR", Amount: amount("10"), Date: "2024-02-30"}},
		{name: "future date", req: domain.ConversionRequest{From: "USD", To: "EUR", Amount: amount("10"), Date: "2024-03-16"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Convert(context.Background(), tc.req)
			requireFailureKind(t, err, domain.FailureInvalidInput)
		})
	}

	provider.AssertNotCalled(t, "FetchLatest", mock.Anything, mock.Anything, mock.Anything)
	provider.AssertNotCalled(t, "FetchHistorical", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Convert_TodayIsValidDate(t *testing.T) {
	provider := new(MockRateProvider)
	svc := newTestService(provider)

	snapshot := domain.RateSnapshot{
		Kind:       domain.SnapshotHistorical,
		Dates:      []string{"2024-03-15"},
		Historical: map[string]map[string]float64{"2024-03-15": {"EUR": 0.92}},
	}
	provider.On("FetchHistorical", mock.Anything, "USD", []string{"EUR"}, "2024-03-15").Return(snapshot, nil).Once()

	result, err := svc.Convert(context.Background(), domain.ConversionRequest{
		From:   "USD",
		To:     "EUR",
		Amount: amount("10"),
		Date:   "2024-03-15",
	})

	require.NoError(t, err)
	require.Equal(t, "2024-03-15", result.DateUsed)
	provider.AssertExpectations(t)
}

func TestService_Convert_RateUnavailable(t *testing.T) {
	provider := new(MockRateProvider)
	svc := newTestService(provider)

	snapshot := domain.RateSnapshot{
		Kind:   domain.SnapshotLatest,
		Latest: map[string]float64{"JPY": 150.0},
	}
	provider.On("FetchLatest", mock.Anything, "USD", []string{"EUR"}).Return(snapshot, nil).Once()

	_, err := svc.Convert(context.Background(), domain.ConversionRequest{
		From:   "USD",
		To:     "EUR",
		Amount: amount("10"),
	})

	convErr := requireFailureKind(t, err, domain.FailureRateUnavailable)
	require.Equal(t, domain.MsgRateUnavailable, convErr.Message)
}

func TestService_Convert_ProviderFailureClassification(t *testing.T) {
	cases := []struct {
		name        string
		providerErr error
		wantKind    domain.FailureKind
		wantMsg     string
	}{
		{
			name:        "quota exhausted with provider message",
			providerErr: &domain.ProviderStatusError{StatusCode: 429, ProviderMessage: "quota exceeded"},
			wantKind:    domain.FailureRateLimited,
			wantMsg:     "quota exceeded",
		},
		{
			name:        "quota exhausted without message",
			providerErr: &domain.ProviderStatusError{StatusCode: 429},
			wantKind:    domain.FailureRateLimited,
			wantMsg:     domain.MsgQuotaExceeded,
		},
		{
			name:        "other 4xx",
			providerErr: &domain.ProviderStatusError{StatusCode: 422, ProviderMessage: "base_currency is invalid"},
			wantKind:    domain.FailureUpstreamRejected,
			wantMsg:     "base_currency is invalid",
		},
		{
			name:        "5xx with message",
			providerErr: &domain.ProviderStatusError{StatusCode: 500, ProviderMessage: "upstream exploded"},
			wantKind:    domain.FailureUpstreamUnavailable,
			wantMsg:     "upstream exploded",
		},
		{
			name:        "5xx without message",
			providerErr: &domain.ProviderStatusError{StatusCode: 503},
			wantKind:    domain.FailureUpstreamUnavailable,
			wantMsg:     domain.MsgUpstreamFailure,
		},
		{
			name:        "transport failure",
			providerErr: errors.New("dial tcp: connection refused"),
			wantKind:    domain.FailureUpstreamUnavailable,
			wantMsg:     domain.MsgUpstreamFailure,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			provider := new(MockRateProvider)
			svc := newTestService(provider)
			provider.On("FetchLatest", mock.Anything, "USD", []string{"EUR"}).Return(domain.RateSnapshot{}, tc.providerErr).Once()

			_, err := svc.Convert(context.Background(), domain.ConversionRequest{
				From:   "USD",
				To:     "EUR",
				Amount: amount("10"),
			})

			convErr := requireFailureKind(t, err, tc.wantKind)
			require.Equal(t, tc.wantMsg, convErr.Message)
			provider.AssertExpectations(t)
		})
	}
}
