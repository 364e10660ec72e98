package user

import (
	"context"
	"strings"
	"sync"

	"github.com/elsaedy55/Revo-backend/pkg/platform/sentinel"
)

// Store persists user accounts. Implementations return sentinel.ErrNotFound
// for missing users and sentinel.ErrConflict for duplicate emails.
type Store interface {
	Save(ctx context.Context, u User) error
	FindByEmail(ctx context.Context, email string) (User, error)
	FindByID(ctx context.Context, id string) (User, error)
}

// InMemoryStore keeps users in a map for tests and local development.
type InMemoryStore struct {
	mu      sync.RWMutex
	byID    map[string]User
	byEmail map[string]User
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		byID:    make(map[string]User),
		byEmail: make(map[string]User),
	}
}

func (s *InMemoryStore) Save(_ context.Context, u User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.ToLower(u.Email)
	if existing, ok := s.byEmail[key]; ok && existing.ID != u.ID {
		return sentinel.ErrConflict
	}
	s.byID[u.ID] = u
	s.byEmail[key] = u
	return nil
}

func (s *InMemoryStore) FindByEmail(_ context.Context, email string) (User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if u, ok := s.byEmail[strings.ToLower(email)]; ok {
		return u, nil
	}
	return User{}, sentinel.ErrNotFound
}

func (s *InMemoryStore) FindByID(_ context.Context, id string) (User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if u, ok := s.byID[id]; ok {
		return u, nil
	}
	return User{}, sentinel.ErrNotFound
}
