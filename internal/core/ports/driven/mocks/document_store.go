package mocks

import (
	"context"
	"sync"

	"github.com/custodia-labs/counsel-core/internal/core/domain"
)

// MockDocumentStore is a mock implementation of DocumentStore for testing
type MockDocumentStore struct {
	mu        sync.RWMutex
	documents map[string]*domain.KnowledgeDocument
	order     []string // insertion order, newest appended last
	failNext  bool
}

// NewMockDocumentStore creates a new MockDocumentStore
func NewMockDocumentStore() *MockDocumentStore {
	return &MockDocumentStore{
		documents: make(map[string]*domain.KnowledgeDocument),
	}
}

func (m *MockDocumentStore) Save(ctx context.Context, doc *domain.KnowledgeDocument) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failNext {
		m.failNext = false
		return context.DeadlineExceeded
	}
	if _, exists := m.documents[doc.ID]; exists {
		return domain.ErrAlreadyExists
	}
	m.documents[doc.ID] = doc
	m.order = append(m.order, doc.ID)
	return nil
}

func (m *MockDocumentStore) Get(ctx context.Context, id string) (*domain.KnowledgeDocument, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	doc, ok := m.documents[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return doc, nil
}

func (m *MockDocumentStore) List(ctx context.Context, limit, offset int) ([]*domain.KnowledgeDocument, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	// Newest first
	var docs []*domain.KnowledgeDocument
	for i := len(m.order) - 1; i >= 0; i-- {
		docs = append(docs, m.documents[m.order[i]])
	}

	if offset >= len(docs) {
		return nil, nil
	}
	docs = docs[offset:]
	if limit > 0 && limit < len(docs) {
		docs = docs[:limit]
	}
	return docs, nil
}

func (m *MockDocumentStore) UpdateChunkCount(ctx context.Context, id string, count int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	doc, ok := m.documents[id]
	if !ok {
		return domain.ErrNotFound
	}
	doc.ChunkCount = count
	return nil
}

func (m *MockDocumentStore) SetActive(ctx context.Context, id string, active bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	doc, ok := m.documents[id]
	if !ok {
		return domain.ErrNotFound
	}
	doc.Active = active
	return nil
}

func (m *MockDocumentStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.documents[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.documents, id)
	for i, docID := range m.order {
		if docID == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

func (m *MockDocumentStore) Count(ctx context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.documents), nil
}

// Helper methods for testing

func (m *MockDocumentStore) SetFailNext(fail bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failNext = fail
}
