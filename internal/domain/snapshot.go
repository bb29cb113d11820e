package domain

// SnapshotKind discriminates the two payload shapes the rate provider can
// return. The provider client sets it based on which endpoint it called, so
// nothing downstream needs to probe the payload shape at runtime.
type SnapshotKind int

const (
	SnapshotLatest SnapshotKind = iota + 1
	SnapshotHistorical
)

// RateSnapshot is a single upstream response describing rates relative to one
// base currency. Latest is populated for SnapshotLatest; Dates and Historical
// for SnapshotHistorical. Dates keeps the payload's own key order because the
// resolver's last fallback tier picks the first date the provider sent.
type RateSnapshot struct {
	Kind       SnapshotKind
	Latest     map[string]float64
	Dates      []string
	Historical map[string]map[string]float64
}
