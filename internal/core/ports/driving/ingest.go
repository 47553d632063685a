package driving

import (
	"context"

	"github.com/custodia-labs/counsel-core/internal/core/domain"
)

// IngestionService handles knowledge document intake and lifecycle
type IngestionService interface {
	// Ingest chunks, embeds, and persists a document. The returned
	// document carries the assigned ID and the persisted chunk count.
	Ingest(ctx context.Context, doc *domain.KnowledgeDocument) (*domain.KnowledgeDocument, error)

	// Get retrieves a document by ID
	Get(ctx context.Context, id string) (*domain.KnowledgeDocument, error)

	// GetWithChunks retrieves a document together with its chunks
	GetWithChunks(ctx context.Context, id string) (*domain.DocumentWithChunks, error)

	// List retrieves documents with pagination, newest first
	List(ctx context.Context, limit, offset int) ([]*domain.KnowledgeDocument, error)

	// Count returns the total number of stored documents, for
	// pagination over List
	Count(ctx context.Context) (int, error)

	// Deactivate hides a document's chunks from retrieval without deleting them
	Deactivate(ctx context.Context, id string) error

	// Delete removes a document and all of its chunks
	Delete(ctx context.Context, id string) error
}
