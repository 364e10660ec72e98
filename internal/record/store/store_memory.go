package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/elsaedy55/Revo-backend/internal/record"
	"github.com/elsaedy55/Revo-backend/pkg/platform/sentinel"
)

// InMemoryStore keeps rows in a map for tests and local development. It
// intentionally favors clarity over performance.
type InMemoryStore struct {
	mu   sync.RWMutex
	rows map[string]record.StorageRow
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{rows: make(map[string]record.StorageRow)}
}

func (s *InMemoryStore) Create(_ context.Context, row record.StorageRow) (record.StorageRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if row.ID == "" {
		row.ID = uuid.NewString()
	}
	now := time.Now()
	row.CreatedAt = now
	row.UpdatedAt = now
	s.rows[row.ID] = row
	return row, nil
}

func (s *InMemoryStore) Update(_ context.Context, id string, row record.StorageRow) (record.StorageRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.rows[id]
	if !ok {
		return record.StorageRow{}, sentinel.ErrNotFound
	}

	row.ID = existing.ID
	row.OwnerID = existing.OwnerID
	row.CreatedAt = existing.CreatedAt
	row.UpdatedAt = time.Now()
	s.rows[id] = row
	return row, nil
}

func (s *InMemoryStore) Delete(_ context.Context, id string) (record.StorageRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.rows[id]
	if !ok {
		return record.StorageRow{}, sentinel.ErrNotFound
	}
	delete(s.rows, id)
	return row, nil
}

func (s *InMemoryStore) FindByID(_ context.Context, id string) (record.StorageRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row, ok := s.rows[id]
	if !ok {
		return record.StorageRow{}, sentinel.ErrNotFound
	}
	return row, nil
}

func (s *InMemoryStore) FindByOwner(_ context.Context, ownerID string) ([]record.StorageRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var rows []record.StorageRow
	for _, row := range s.rows {
		if row.OwnerID == ownerID {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

func (s *InMemoryStore) GetOwner(_ context.Context, id string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row, ok := s.rows[id]
	if !ok {
		return "", sentinel.ErrNotFound
	}
	return row.OwnerID, nil
}
