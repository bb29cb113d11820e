package domain

import (
	"errors"
	"fmt"
)

// FailureKind classifies every user-facing failure of the conversion and
// catalog operations.
type FailureKind int

const (
	FailureInvalidInput FailureKind = iota + 1
	FailureRateLimited
	FailureUpstreamRejected
	FailureUpstreamUnavailable
	FailureRateUnavailable
)

// Default user-facing messages, used when the provider did not supply one.
const (
	MsgQuotaExceeded   = "API quota exceeded. Please try again later."
	MsgInvalidRequest  = "Invalid request to currency API."
	MsgUpstreamFailure = "Failed to fetch data from currency API."
	MsgRateUnavailable = "Rate unavailable for the selected date."
)

// ConversionError is the single externally observable failure shape. The
// message is safe to show to users; the kind decides the HTTP status.
type ConversionError struct {
	Kind    FailureKind
	Message string
}

func (e *ConversionError) Error() string { return e.Message }

func NewConversionError(kind FailureKind, message string) *ConversionError {
	return &ConversionError{Kind: kind, Message: message}
}

func InvalidInput(message string) *ConversionError {
	return NewConversionError(FailureInvalidInput, message)
}

// ProviderStatusError reports a non-2xx provider response: the raw status
// code plus the provider's own message field when one could be extracted.
// The provider client never classifies; callers turn this into a
// ConversionError via ClassifyProviderError.
type ProviderStatusError struct {
	StatusCode      int
	ProviderMessage string
}

func (e *ProviderStatusError) Error() string {
	if e.ProviderMessage != "" {
		return fmt.Sprintf("provider returned status %d: %s", e.StatusCode, e.ProviderMessage)
	}
	return fmt.Sprintf("provider returned status %d", e.StatusCode)
}

// ClassifyProviderError maps a provider client failure onto the user-facing
// taxonomy: 429 means the quota is exhausted, any other 4xx reflects a
// malformed outbound request, and 5xx or transport-level failures (no status
// at all) surface as an unavailable upstream.
func ClassifyProviderError(err error) *ConversionError {
	var statusErr *ProviderStatusError
	if !errors.As(err, &statusErr) {
		return NewConversionError(FailureUpstreamUnavailable, MsgUpstreamFailure)
	}

	msg := statusErr.ProviderMessage
	switch {
	case statusErr.StatusCode == 429:
		if msg == "" {
			msg = MsgQuotaExceeded
		}
		return NewConversionError(FailureRateLimited, msg)
	case statusErr.StatusCode >= 400 && statusErr.StatusCode < 500:
		if msg == "" {
			msg = MsgInvalidRequest
		}
		return NewConversionError(FailureUpstreamRejected, msg)
	default:
		if msg == "" {
			msg = MsgUpstreamFailure
		}
		return NewConversionError(FailureUpstreamUnavailable, msg)
	}
}
