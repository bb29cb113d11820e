package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/sirupsen/logrus"

	"currconv/internal/domain"
)

// FileStore is the flat fallback tier: one JSON-serialized array of records
// in a single file. An absent or corrupt file reads as empty, never as an
// error. Add prepends the new record and rewrites the whole list.
type FileStore struct {
	path string
	mu   sync.Mutex
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) GetAll(_ context.Context) ([]domain.ConversionRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read(), nil
}

func (s *FileStore) Add(_ context.Context, record domain.ConversionRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := append([]domain.ConversionRecord{record}, s.read()...)
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to serialize history records: %w", err)
	}
	if err = os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write history fallback file: %w", err)
	}
	return nil
}

func (s *FileStore) read() []domain.ConversionRecord {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			logrus.WithError(err).Warn("Failed to read history fallback file")
		}
		return nil
	}

	var records []domain.ConversionRecord
	if err = json.Unmarshal(data, &records); err != nil {
		logrus.WithError(err).Warn("History fallback file is corrupt, treating it as empty")
		return nil
	}
	return records
}
