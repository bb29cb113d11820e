package conversion

import (
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"currconv/internal/domain"
)

const dateLayout = "2006-01-02"

var (
	codePattern = regexp.MustCompile(`^[A-Z]{3}$`)
	datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

	minAmount = decimal.NewFromFloat(0.01)
)

// NormalizeCode trims and upper-cases a currency code and checks the
// three-letter form.
func NormalizeCode(raw string) (string, error) {
	code := strings.ToUpper(strings.TrimSpace(raw))
	if !codePattern.MatchString(code) {
		return "", domain.InvalidInput("Currency code must be three letters.")
	}
	return code, nil
}

// ParseAmount parses a decimal amount of at least 0.01 with at most six
// fractional digits.
func ParseAmount(raw string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, domain.InvalidInput("Amount must be a number.")
	}
	if err = validateAmount(amount); err != nil {
		return decimal.Zero, err
	}
	return amount, nil
}

func validateAmount(amount decimal.Decimal) error {
	if amount.Exponent() < -6 {
		return domain.InvalidInput("Amount supports at most six decimal places.")
	}
	if amount.LessThan(minAmount) {
		return domain.InvalidInput("Amount must be at least 0.01.")
	}
	return nil
}

// ValidateDate checks an optional requested date: it must decompose into a
// real calendar day and must not be after today in UTC. The returned string
// is empty when no date was requested.
func ValidateDate(raw string, today time.Time) (string, error) {
	date := strings.TrimSpace(raw)
	if date == "" {
		return "", nil
	}

	if !datePattern.MatchString(date) {
		return "", domain.InvalidInput("Invalid date format.")
	}
	parsed, err := time.ParseInLocation(dateLayout, date, time.UTC)
	if err != nil {
		return "", domain.InvalidInput("Invalid date format.")
	}

	limit := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	if parsed.After(limit) {
		return "", domain.InvalidInput("Date cannot be in the future.")
	}
	return date, nil
}
