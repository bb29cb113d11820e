package history

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"currconv/internal/adapters"
	"currconv/internal/domain"
)

// OpenPrimaryFunc lazily opens the structured primary tier. A nil
// OpenPrimaryFunc means the capability is absent and every operation goes
// straight to the fallback tier.
type OpenPrimaryFunc func(ctx context.Context) (adapters.HistoryRepository, error)

// TieredStore is the dual-tier conversion-history store: a structured keyed
// primary opened on first use, and a flat file fallback. A primary that
// cannot be opened, or a read or write that fails against it, falls through
// to the fallback tier; a record committed to either tier is never dropped
// by a later failed read.
type TieredStore struct {
	openPrimary OpenPrimaryFunc
	fallback    *FileStore

	once    sync.Once
	primary adapters.HistoryRepository
}

func NewTieredStore(openPrimary OpenPrimaryFunc, fallback *FileStore) *TieredStore {
	return &TieredStore{openPrimary: openPrimary, fallback: fallback}
}

func (s *TieredStore) GetAll(ctx context.Context) ([]domain.ConversionRecord, error) {
	primary := s.open(ctx)
	if primary == nil {
		return s.fallback.GetAll(ctx)
	}

	records, err := primary.GetAll(ctx)
	if err != nil {
		logrus.WithError(err).Warn("Primary history read failed, using fallback tier")
		return s.fallback.GetAll(ctx)
	}
	return records, nil
}

func (s *TieredStore) Add(ctx context.Context, record domain.ConversionRecord) error {
	primary := s.open(ctx)
	if primary == nil {
		return s.fallback.Add(ctx, record)
	}

	if err := primary.Add(ctx, record); err != nil {
		logrus.WithError(err).Warn("Primary history write failed, using fallback tier")
		return s.fallback.Add(ctx, record)
	}
	return nil
}

// open attempts the primary tier exactly once per process lifetime; an open
// failure is cached the same way a successful open is.
func (s *TieredStore) open(ctx context.Context) adapters.HistoryRepository {
	if s.openPrimary == nil {
		return nil
	}
	s.once.Do(func() {
		primary, err := s.openPrimary(ctx)
		if err != nil {
			logrus.WithError(err).Warn("Primary history store unavailable, falling back to flat storage")
			return
		}
		s.primary = primary
	})
	return s.primary
}
