package driven

import (
	"context"

	"github.com/custodia-labs/counsel-core/internal/core/domain"
)

// DocumentStore handles knowledge document persistence (PostgreSQL)
type DocumentStore interface {
	// Save creates a document record
	Save(ctx context.Context, doc *domain.KnowledgeDocument) error

	// Get retrieves a document by ID
	Get(ctx context.Context, id string) (*domain.KnowledgeDocument, error)

	// List retrieves documents with pagination, newest first
	List(ctx context.Context, limit, offset int) ([]*domain.KnowledgeDocument, error)

	// UpdateChunkCount records the number of chunks persisted for a document.
	// Left at 0 after a failed or incomplete ingestion.
	UpdateChunkCount(ctx context.Context, id string, count int) error

	// SetActive toggles whether a document's chunks are visible to retrieval
	SetActive(ctx context.Context, id string, active bool) error

	// Delete deletes a document; its chunks cascade
	Delete(ctx context.Context, id string) error

	// Count returns total document count
	Count(ctx context.Context) (int, error)
}

// ChunkStore handles chunk persistence (PostgreSQL)
type ChunkStore interface {
	// SaveBatch saves a batch of chunks in a single transaction.
	// All-or-nothing: a failure persists none of the batch.
	SaveBatch(ctx context.Context, chunks []*domain.DocumentChunk) error

	// GetByDocument retrieves all chunks for a document, ordered by chunk index
	GetByDocument(ctx context.Context, documentID string) ([]*domain.DocumentChunk, error)

	// ListActive retrieves every chunk belonging to an active document,
	// with embeddings and parent metadata. An empty categories slice
	// means no category restriction.
	ListActive(ctx context.Context, categories []string) ([]*domain.ActiveChunk, error)

	// DeleteByDocument deletes all chunks for a document
	DeleteByDocument(ctx context.Context, documentID string) error

	// CountByDocument returns the persisted chunk count for a document
	CountByDocument(ctx context.Context, documentID string) (int, error)
}
