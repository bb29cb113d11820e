package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"currconv/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	store := NewTieredStore(nil, NewFileStore(filepath.Join(t.TempDir(), "history.json")))
	return NewService(store)
}

func TestService_NewRecordStampsIdentityAndTimestamp(t *testing.T) {
	svc := newTestService(t)
	svc.now = func() time.Time {
		return time.Date(2024, 3, 15, 12, 0, 0, 0, time.FixedZone("CET", 3600))
	}

	result := domain.ConversionResult{From: "USD", To: "EUR", Amount: 10, Rate: 0.92, Converted: 9.2, DateUsed: "2024-01-02"}
	rec := svc.NewRecord(result, "2024-01-01")

	require.Equal(t, result, rec.ConversionResult)
	require.Equal(t, "2024-01-01", rec.DateSelected)
	_, err := uuid.Parse(rec.ID)
	require.NoError(t, err)
	require.Equal(t, time.UTC, rec.Timestamp.Location())
	require.Equal(t, 11, rec.Timestamp.Hour())
}

func TestService_NewRecordIDsAreUnique(t *testing.T) {
	svc := newTestService(t)
	result := domain.ConversionResult{From: "USD", To: "EUR", Amount: 10, Rate: 0.92, Converted: 9.2, DateUsed: "2024-01-01"}

	seen := make(map[string]struct{})
	for range 100 {
		rec := svc.NewRecord(result, "")
		_, dup := seen[rec.ID]
		require.False(t, dup)
		seen[rec.ID] = struct{}{}
	}
}

func TestService_ListNewestFirst(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	base := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

	// insertion order deliberately differs from timestamp order
	require.NoError(t, svc.Add(ctx, testRecord("middle", base.Add(time.Minute))))
	require.NoError(t, svc.Add(ctx, testRecord("oldest", base)))
	require.NoError(t, svc.Add(ctx, testRecord("newest", base.Add(2*time.Minute))))

	records, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 3)
	require.Equal(t, "newest", records[0].ID)
	require.Equal(t, "middle", records[1].ID)
	require.Equal(t, "oldest", records[2].ID)
}
