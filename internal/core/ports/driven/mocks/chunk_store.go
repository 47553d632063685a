package mocks

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/counsel-core/internal/core/domain"
)

// MockChunkStore is a mock implementation of ChunkStore for testing.
// It resolves parent documents through a MockDocumentStore so
// ListActive can honor active flags and category filters.
type MockChunkStore struct {
	mu         sync.RWMutex
	byDocument map[string][]*domain.DocumentChunk
	docs       *MockDocumentStore
	failNext   bool
}

// NewMockChunkStore creates a new MockChunkStore backed by the given
// document store
func NewMockChunkStore(docs *MockDocumentStore) *MockChunkStore {
	return &MockChunkStore{
		byDocument: make(map[string][]*domain.DocumentChunk),
		docs:       docs,
	}
}

func (m *MockChunkStore) SaveBatch(ctx context.Context, chunks []*domain.DocumentChunk) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failNext {
		m.failNext = false
		return context.DeadlineExceeded
	}
	for _, chunk := range chunks {
		m.byDocument[chunk.DocumentID] = append(m.byDocument[chunk.DocumentID], chunk)
	}
	return nil
}

func (m *MockChunkStore) GetByDocument(ctx context.Context, documentID string) ([]*domain.DocumentChunk, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	chunks := append([]*domain.DocumentChunk(nil), m.byDocument[documentID]...)
	sort.Slice(chunks, func(i, j int) bool {
		return chunks[i].Index < chunks[j].Index
	})
	return chunks, nil
}

func (m *MockChunkStore) ListActive(ctx context.Context, categories []string) ([]*domain.ActiveChunk, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	allowed := make(map[string]bool, len(categories))
	for _, c := range categories {
		allowed[c] = true
	}

	var active []*domain.ActiveChunk
	for docID, chunks := range m.byDocument {
		doc, err := m.docs.Get(ctx, docID)
		if err != nil || !doc.Active {
			continue
		}
		if len(allowed) > 0 && !allowed[doc.Category] {
			continue
		}
		for _, chunk := range chunks {
			active = append(active, &domain.ActiveChunk{Chunk: chunk, Document: doc})
		}
	}
	return active, nil
}

func (m *MockChunkStore) DeleteByDocument(ctx context.Context, documentID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.byDocument, documentID)
	return nil
}

func (m *MockChunkStore) CountByDocument(ctx context.Context, documentID string) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.byDocument[documentID]), nil
}

// Helper methods for testing

func (m *MockChunkStore) SetFailNext(fail bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failNext = fail
}
