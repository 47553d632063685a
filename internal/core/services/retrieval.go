package services

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"

	"github.com/custodia-labs/counsel-core/internal/core/domain"
	"github.com/custodia-labs/counsel-core/internal/core/ports/driven"
	"github.com/custodia-labs/counsel-core/internal/core/ports/driving"
	"github.com/custodia-labs/counsel-core/internal/runtime"
)

// Ensure retrievalService implements RetrievalService
var _ driving.RetrievalService = (*retrievalService)(nil)

// retrievalService implements the RetrievalService interface.
// Retrieval is an exact linear scan over all active chunks; no index
// structure is kept. That trade keeps results exact and the store
// simple while chunk volume stays in the low tens of thousands.
type retrievalService struct {
	chunkStore driven.ChunkStore
	services   *runtime.Services // Dynamic AI services
	logger     *slog.Logger
}

// NewRetrievalService creates a new RetrievalService
func NewRetrievalService(chunkStore driven.ChunkStore, services *runtime.Services, logger *slog.Logger) driving.RetrievalService {
	if logger == nil {
		logger = slog.Default()
	}
	return &retrievalService{
		chunkStore: chunkStore,
		services:   services,
		logger:     logger,
	}
}

// Retrieve embeds the query and scans all active chunks for the
// most similar ones
func (s *retrievalService) Retrieve(ctx context.Context, query string, opts domain.RetrieveOptions) ([]*domain.RetrievedChunk, error) {
	// Apply defaults
	if opts.TopK <= 0 {
		opts.TopK = domain.DefaultTopK
	}
	if opts.TopK > 50 {
		opts.TopK = 50
	}
	if opts.Threshold <= 0 {
		opts.Threshold = domain.DefaultSimilarityThreshold
	}

	embedder := s.services.EmbeddingService()
	if embedder == nil {
		return nil, fmt.Errorf("%w: no embedding service configured", domain.ErrServiceUnavailable)
	}

	queryVec, err := embedder.EmbedQuery(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: embed query: %v", domain.ErrServiceUnavailable, err)
	}

	candidates, err := s.chunkStore.ListActive(ctx, opts.Categories)
	if err != nil {
		return nil, fmt.Errorf("list active chunks: %w", err)
	}

	var results []*domain.RetrievedChunk
	for _, candidate := range candidates {
		sim := cosineSimilarity(queryVec, candidate.Chunk.Embedding)
		if sim < opts.Threshold {
			continue
		}
		results = append(results, &domain.RetrievedChunk{
			Chunk:      candidate.Chunk,
			Document:   candidate.Document,
			Similarity: sim,
		})
	}

	// Highest similarity first; ties broken by ascending document then
	// chunk index so identical scores always order the same way.
	sort.Slice(results, func(i, j int) bool {
		if results[i].Similarity != results[j].Similarity {
			return results[i].Similarity > results[j].Similarity
		}
		if results[i].Chunk.DocumentID != results[j].Chunk.DocumentID {
			return results[i].Chunk.DocumentID < results[j].Chunk.DocumentID
		}
		return results[i].Chunk.Index < results[j].Chunk.Index
	})

	if len(results) > opts.TopK {
		results = results[:opts.TopK]
	}

	s.logger.Debug("retrieval complete",
		"scanned", len(candidates),
		"returned", len(results),
		"threshold", opts.Threshold)

	return results, nil
}

// cosineSimilarity computes sim(a,b) = (a·b)/(‖a‖·‖b‖).
// Mismatched lengths or a zero-magnitude vector yield 0.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, magA, magB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		magA += float64(a[i]) * float64(a[i])
		magB += float64(b[i]) * float64(b[i])
	}
	if magA == 0 || magB == 0 {
		return 0
	}
	return dot / (math.Sqrt(magA) * math.Sqrt(magB))
}
