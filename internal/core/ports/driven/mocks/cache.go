package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/custodia-labs/counsel-core/internal/core/domain"
)

// MockAnswerCache is an in-memory AnswerCache for testing. TTLs are
// recorded but never expire.
type MockAnswerCache struct {
	mu      sync.RWMutex
	answers map[string]*domain.Answer
	TTLs    map[string]time.Duration
}

// NewMockAnswerCache creates a new MockAnswerCache
func NewMockAnswerCache() *MockAnswerCache {
	return &MockAnswerCache{
		answers: make(map[string]*domain.Answer),
		TTLs:    make(map[string]time.Duration),
	}
}

func (m *MockAnswerCache) Get(ctx context.Context, key string) (*domain.Answer, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	answer, ok := m.answers[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return answer, nil
}

func (m *MockAnswerCache) Set(ctx context.Context, key string, answer *domain.Answer, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.answers[key] = answer
	m.TTLs[key] = ttl
	return nil
}

func (m *MockAnswerCache) Invalidate(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.answers = make(map[string]*domain.Answer)
	m.TTLs = make(map[string]time.Duration)
	return nil
}

func (m *MockAnswerCache) Close() error {
	return nil
}

// Len reports the number of cached answers
func (m *MockAnswerCache) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.answers)
}
