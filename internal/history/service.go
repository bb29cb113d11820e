package history

import (
	"context"
	"slices"
	"time"

	"github.com/google/uuid"

	"currconv/internal/domain"
)

// Service layers record creation and ordering on top of the tiered store.
type Service struct {
	store *TieredStore
	now   func() time.Time
}

func NewService(store *TieredStore) *Service {
	return &Service{store: store, now: time.Now}
}

// NewRecord stamps a conversion result into an immutable history record with
// a process-unique identifier and a UTC creation instant.
func (s *Service) NewRecord(result domain.ConversionResult, dateSelected string) domain.ConversionRecord {
	return domain.ConversionRecord{
		ConversionResult: result,
		ID:               uuid.NewString(),
		DateSelected:     dateSelected,
		Timestamp:        s.now().UTC(),
	}
}

func (s *Service) Add(ctx context.Context, record domain.ConversionRecord) error {
	return s.store.Add(ctx, record)
}

// List returns all records newest-first. The store itself carries no order
// contract; ordering happens here.
func (s *Service) List(ctx context.Context) ([]domain.ConversionRecord, error) {
	records, err := s.store.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(records, func(a, b domain.ConversionRecord) int {
		return b.Timestamp.Compare(a.Timestamp)
	})
	return records, nil
}
