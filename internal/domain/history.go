package domain

import "time"

// ConversionRecord is a persisted, immutable log entry of one completed
// conversion. DateSelected is the date the user originally asked for, which
// may differ from DateUsed after a fallback substitution.
type ConversionRecord struct {
	ConversionResult
	ID           string    `json:"id"`
	DateSelected string    `json:"dateSelected,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
}
