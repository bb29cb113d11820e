package conversion

import (
	"testing"
	"time"

	"currconv/internal/domain"

	"github.com/stretchr/testify/require"
)

func requireInvalidInput(t *testing.T, err error) {
	t.Helper()
	var convErr *domain.ConversionError
	require.ErrorAs(t, err, &convErr)
	require.Equal(t, domain.FailureInvalidInput, convErr.Kind)
}

func TestNormalizeCode(t *testing.T) {
	code, err := NormalizeCode(" usd ")
	require.NoError(t, err)
	require.Equal(t, "USD", code)

	for _, raw := range []string{"", "US", "USDT", "12A", "usd1", "U S"} {
		_, err = NormalizeCode(raw)
		requireInvalidInput(t, err)
	}
}

func TestParseAmount(t *testing.T) {
	amount, err := ParseAmount("10.5")
	require.NoError(t, err)
	require.Equal(t, "10.5", amount.String())

	amount, err = ParseAmount("0.01")
	require.NoError(t, err)
	require.Equal(t, "0.01", amount.String())

	amount, err = ParseAmount("123.123456")
	require.NoError(t, err)
	require.Equal(t, "123.123456", amount.String())

	cases := []struct {
		name string
		raw  string
	}{
		{name: "not a number", raw: "abc"},
		{name: "empty", raw: ""},
		{name: "zero", raw: "0"},
		{name: "below minimum", raw: "0.009"},
		{name: "negative", raw: "-1"},
		{name: "too many decimals", raw: "1.1234567"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, parseErr := ParseAmount(tc.raw)
			requireInvalidInput(t, parseErr)
		})
	}
}

func TestValidateDate(t *testing.T) {
	today := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)

	date, err := ValidateDate("2024-01-01", today)
	require.NoError(t, err)
	require.Equal(t, "2024-01-01", date)

	// leap day is a real date
	date, err = ValidateDate("2024-02-29", today)
	require.NoError(t, err)
	require.Equal(t, "2024-02-29", date)

	// today itself is allowed
	date, err = ValidateDate("2024-03-15", today)
	require.NoError(t, err)
	require.Equal(t, "2024-03-15", date)

	// absent date is not an error
	date, err = ValidateDate("  ", today)
	require.NoError(t, err)
	require.Empty(t, date)
}

func TestValidateDate_Invalid(t *testing.T) {
	today := time.Date(2024, 3, 15, 23, 59, 59, 0, time.UTC)

	cases := []struct {
		name string
		raw  string
	}{
		{name: "nonexistent day", raw: "2024-02-30"},
		{name: "nonexistent month", raw: "2024-13-01"},
		{name: "non-leap feb 29", raw: "2023-02-29"},
		{name: "wrong format", raw: "01-01-2024"},
		{name: "garbage", raw: "yesterday"},
		{name: "tomorrow", raw: "2024-03-16"},
		{name: "far future", raw: "2999-01-01"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ValidateDate(tc.raw, today)
			requireInvalidInput(t, err)
		})
	}
}
