package conversion

import "currconv/internal/domain"

// ResolveRate turns a raw snapshot into one effective rate and the date it
// corresponds to. Tiers, in order:
//
//  1. a historical snapshot with an entry for exactly the requested date
//  2. a latest snapshot when no date was requested
//  3. the first date key the provider sent, absorbing upstream
//     "nearest available date" substitutions
//
// A latest snapshot never resolves through date keys and a historical
// snapshot never falls back to today. The bool is false when no tier
// produced a numeric rate.
func ResolveRate(snapshot domain.RateSnapshot, to, requestedDate, today string) (float64, string, bool) {
	if requestedDate != "" && snapshot.Kind == domain.SnapshotHistorical {
		if rate, ok := snapshot.Historical[requestedDate][to]; ok {
			return rate, requestedDate, true
		}
	}

	if requestedDate == "" && snapshot.Kind == domain.SnapshotLatest {
		if rate, ok := snapshot.Latest[to]; ok {
			return rate, today, true
		}
	}

	if snapshot.Kind == domain.SnapshotHistorical && len(snapshot.Dates) > 0 {
		first := snapshot.Dates[0]
		if rate, ok := snapshot.Historical[first][to]; ok {
			return rate, first, true
		}
	}

	return 0, "", false
}
