package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/counsel-core/internal/chunker"
	"github.com/custodia-labs/counsel-core/internal/core/domain"
	"github.com/custodia-labs/counsel-core/internal/core/ports/driven"
	"github.com/custodia-labs/counsel-core/internal/core/ports/driving"
	"github.com/custodia-labs/counsel-core/internal/runtime"
)

// DefaultEmbedBatchSize bounds how many chunks are embedded and
// persisted per batch during ingestion
const DefaultEmbedBatchSize = 20

// Ensure ingestionService implements IngestionService
var _ driving.IngestionService = (*ingestionService)(nil)

// ingestionService implements the IngestionService interface
type ingestionService struct {
	documentStore driven.DocumentStore
	chunkStore    driven.ChunkStore
	chunker       *chunker.Chunker
	services      *runtime.Services // Dynamic AI services
	cache         driven.AnswerCache
	batchSize     int
	logger        *slog.Logger
}

// IngestionConfig configures the ingestion service
type IngestionConfig struct {
	DocumentStore driven.DocumentStore
	ChunkStore    driven.ChunkStore
	Chunker       *chunker.Chunker
	Services      *runtime.Services
	Cache         driven.AnswerCache // optional
	BatchSize     int                // 0 means DefaultEmbedBatchSize
	Logger        *slog.Logger
}

// NewIngestionService creates a new IngestionService
func NewIngestionService(cfg IngestionConfig) driving.IngestionService {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = DefaultEmbedBatchSize
	}
	ch := cfg.Chunker
	if ch == nil {
		ch = chunker.New(chunker.DefaultConfig())
	}
	return &ingestionService{
		documentStore: cfg.DocumentStore,
		chunkStore:    cfg.ChunkStore,
		chunker:       ch,
		services:      cfg.Services,
		cache:         cfg.Cache,
		batchSize:     batchSize,
		logger:        logger,
	}
}

// Ingest chunks, embeds, and persists a document.
// Chunks are embedded and written batch by batch; each batch commits
// atomically. On a mid-ingestion failure the already committed batches
// stay, the document's chunk count stays 0 to mark the ingestion
// incomplete, and the returned error is a *domain.IngestError carrying
// how many chunks had committed before the failure.
func (s *ingestionService) Ingest(ctx context.Context, doc *domain.KnowledgeDocument) (*domain.KnowledgeDocument, error) {
	if err := validateDocument(doc); err != nil {
		return nil, err
	}

	embedder := s.services.EmbeddingService()
	if embedder == nil {
		return nil, fmt.Errorf("%w: no embedding service configured", domain.ErrServiceUnavailable)
	}

	doc.ID = uuid.NewString()
	doc.Active = true
	doc.ChunkCount = 0
	doc.CreatedAt = time.Now().UTC()

	if err := s.documentStore.Save(ctx, doc); err != nil {
		return nil, fmt.Errorf("save document: %w", err)
	}

	normalized := chunker.Normalize(doc.Content)
	pieces := s.chunker.Split(doc.Content)

	s.logger.Info("ingesting document",
		"document_id", doc.ID,
		"title", doc.Title,
		"chunks", len(pieces))

	chunks := make([]*domain.DocumentChunk, len(pieces))
	for i, piece := range pieces {
		chunks[i] = &domain.DocumentChunk{
			ID:         uuid.NewString(),
			DocumentID: doc.ID,
			Index:      piece.Index,
			Content:    piece.Content,
			CharCount:  len(piece.Content),
			WordCount:  chunker.WordCount(piece.Content),
			Section:    chunker.Section(normalized, piece.StartChar),
			PageHint:   chunker.PageEstimate(piece.StartChar),
			CreatedAt:  doc.CreatedAt,
		}
	}

	persisted := 0
	for start := 0; start < len(chunks); start += s.batchSize {
		end := start + s.batchSize
		if end > len(chunks) {
			end = len(chunks)
		}
		batch := chunks[start:end]

		texts := make([]string, len(batch))
		for i, chunk := range batch {
			texts[i] = chunk.Content
		}

		embeddings, err := embedder.Embed(ctx, texts)
		if err != nil {
			s.logger.Error("embedding batch failed",
				"document_id", doc.ID,
				"batch_start", start,
				"persisted", persisted,
				"error", err)
			return doc, &domain.IngestError{
				DocumentID: doc.ID,
				Committed:  persisted,
				Err:        fmt.Errorf("%w: embed batch: %v", domain.ErrServiceUnavailable, err),
			}
		}
		if len(embeddings) != len(batch) {
			return doc, &domain.IngestError{
				DocumentID: doc.ID,
				Committed:  persisted,
				Err: fmt.Errorf("%w: embedding count mismatch: got %d for %d texts",
					domain.ErrServiceUnavailable, len(embeddings), len(batch)),
			}
		}
		for i, chunk := range batch {
			chunk.Embedding = embeddings[i]
		}

		if err := s.chunkStore.SaveBatch(ctx, batch); err != nil {
			s.logger.Error("chunk batch write failed",
				"document_id", doc.ID,
				"batch_start", start,
				"persisted", persisted,
				"error", err)
			return doc, &domain.IngestError{
				DocumentID: doc.ID,
				Committed:  persisted,
				Err:        fmt.Errorf("save chunk batch: %w", err),
			}
		}
		persisted += len(batch)
	}

	// Record the count the store actually holds, not the loop counter
	committed, err := s.chunkStore.CountByDocument(ctx, doc.ID)
	if err != nil {
		return doc, &domain.IngestError{DocumentID: doc.ID, Committed: persisted,
			Err: fmt.Errorf("count chunks: %w", err)}
	}
	if err := s.documentStore.UpdateChunkCount(ctx, doc.ID, committed); err != nil {
		return doc, &domain.IngestError{DocumentID: doc.ID, Committed: committed,
			Err: fmt.Errorf("update chunk count: %w", err)}
	}
	doc.ChunkCount = committed

	s.invalidateCache(ctx)

	s.logger.Info("document ingested", "document_id", doc.ID, "chunk_count", committed)
	return doc, nil
}

// Get retrieves a document by ID
func (s *ingestionService) Get(ctx context.Context, id string) (*domain.KnowledgeDocument, error) {
	return s.documentStore.Get(ctx, id)
}

// Count returns the total number of stored documents
func (s *ingestionService) Count(ctx context.Context) (int, error) {
	return s.documentStore.Count(ctx)
}

// GetWithChunks retrieves a document with its chunks
func (s *ingestionService) GetWithChunks(ctx context.Context, id string) (*domain.DocumentWithChunks, error) {
	doc, err := s.documentStore.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	chunks, err := s.chunkStore.GetByDocument(ctx, id)
	if err != nil {
		return nil, err
	}

	return &domain.DocumentWithChunks{
		Document: doc,
		Chunks:   chunks,
	}, nil
}

// List retrieves documents with pagination, newest first
func (s *ingestionService) List(ctx context.Context, limit, offset int) ([]*domain.KnowledgeDocument, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return s.documentStore.List(ctx, limit, offset)
}

// Deactivate hides a document's chunks from retrieval
func (s *ingestionService) Deactivate(ctx context.Context, id string) error {
	if err := s.documentStore.SetActive(ctx, id, false); err != nil {
		return err
	}
	s.invalidateCache(ctx)
	s.logger.Info("document deactivated", "document_id", id)
	return nil
}

// Delete removes a document and its chunks
func (s *ingestionService) Delete(ctx context.Context, id string) error {
	if err := s.chunkStore.DeleteByDocument(ctx, id); err != nil {
		return fmt.Errorf("delete chunks: %w", err)
	}
	if err := s.documentStore.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateCache(ctx)
	s.logger.Info("document deleted", "document_id", id)
	return nil
}

// invalidateCache drops cached answers after the corpus changes.
// Cache failures are logged, never surfaced.
func (s *ingestionService) invalidateCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn("answer cache invalidation failed", "error", err)
	}
}

func validateDocument(doc *domain.KnowledgeDocument) error {
	if doc == nil {
		return fmt.Errorf("%w: document is nil", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(doc.Title) == "" {
		return fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(doc.Category) == "" {
		return fmt.Errorf("%w: category is required", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(doc.Content) == "" {
		return fmt.Errorf("%w: content is required", domain.ErrInvalidInput)
	}
	return nil
}
