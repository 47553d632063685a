package services

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/custodia-labs/counsel-core/internal/core/domain"
	"github.com/custodia-labs/counsel-core/internal/core/ports/driven/mocks"
	"github.com/custodia-labs/counsel-core/internal/runtime"
)

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
		want float64
	}{
		{"identical", []float32{1, 2, 3}, []float32{1, 2, 3}, 1},
		{"scalar multiple", []float32{1, 0, 2}, []float32{3, 0, 6}, 1},
		{"orthogonal", []float32{1, 0}, []float32{0, 1}, 0},
		{"opposite", []float32{1, 0}, []float32{-1, 0}, -1},
		{"zero vector", []float32{0, 0}, []float32{1, 1}, 0},
		{"both zero", []float32{0, 0}, []float32{0, 0}, 0},
		{"length mismatch", []float32{1, 2}, []float32{1, 2, 3}, 0},
		{"empty", nil, nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cosineSimilarity(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("cosineSimilarity = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCosineSimilarityRange(t *testing.T) {
	vectors := [][]float32{
		{0.1, 0.9, 0.4},
		{0.7, 0.2, 0.5},
		{-0.3, 0.8, -0.1},
	}
	for _, a := range vectors {
		for _, b := range vectors {
			sim := cosineSimilarity(a, b)
			if sim < -1.0000001 || sim > 1.0000001 {
				t.Errorf("similarity %v out of [-1, 1]", sim)
			}
			if math.Abs(sim-cosineSimilarity(b, a)) > 1e-9 {
				t.Error("similarity is not symmetric")
			}
		}
	}
}

type retrievalFixture struct {
	documentStore *mocks.MockDocumentStore
	chunkStore    *mocks.MockChunkStore
	embedding     *mocks.MockEmbeddingService
	svc           *retrievalService
}

func newRetrievalFixture(t *testing.T) *retrievalFixture {
	t.Helper()

	documentStore := mocks.NewMockDocumentStore()
	chunkStore := mocks.NewMockChunkStore(documentStore)
	embedding := mocks.NewMockEmbeddingService()

	services := runtime.NewServices()
	services.SetEmbeddingService(embedding)

	svc := NewRetrievalService(chunkStore, services, nil)

	return &retrievalFixture{
		documentStore: documentStore,
		chunkStore:    chunkStore,
		embedding:     embedding,
		svc:           svc.(*retrievalService),
	}
}

// seedChunk stores a chunk with a pinned embedding under the given document
func (f *retrievalFixture) seedChunk(t *testing.T, docID, category string, index int, embedding []float32) {
	t.Helper()
	ctx := context.Background()

	if _, err := f.documentStore.Get(ctx, docID); err != nil {
		doc := &domain.KnowledgeDocument{
			ID:       docID,
			Title:    "Doc " + docID,
			Category: category,
			Active:   true,
		}
		if err := f.documentStore.Save(ctx, doc); err != nil {
			t.Fatalf("seed document: %v", err)
		}
	}

	err := f.chunkStore.SaveBatch(ctx, []*domain.DocumentChunk{{
		ID:         docID + "-chunk",
		DocumentID: docID,
		Index:      index,
		Content:    "chunk content",
		Embedding:  embedding,
	}})
	if err != nil {
		t.Fatalf("seed chunk: %v", err)
	}
}

func TestRetrievalService_Retrieve(t *testing.T) {
	f := newRetrievalFixture(t)
	f.embedding.SetVector("what is the waiting period?", []float32{1, 0})

	f.seedChunk(t, "doc-a", "process", 0, []float32{1, 0})      // sim 1.0
	f.seedChunk(t, "doc-b", "process", 0, []float32{0.8, 0.6})  // sim 0.8
	f.seedChunk(t, "doc-c", "process", 0, []float32{0, 1})      // sim 0.0, dropped

	results, err := f.svc.Retrieve(context.Background(), "what is the waiting period?", domain.RetrieveOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Chunk.DocumentID != "doc-a" {
		t.Errorf("expected doc-a first, got %s", results[0].Chunk.DocumentID)
	}
	if math.Abs(results[0].Similarity-1.0) > 1e-6 {
		t.Errorf("expected similarity 1.0, got %v", results[0].Similarity)
	}
	if results[1].Chunk.DocumentID != "doc-b" {
		t.Errorf("expected doc-b second, got %s", results[1].Chunk.DocumentID)
	}
	if results[0].Document == nil || results[0].Document.Title == "" {
		t.Error("expected document metadata attached to results")
	}
}

func TestRetrievalService_Retrieve_ThresholdFilter(t *testing.T) {
	f := newRetrievalFixture(t)
	f.embedding.SetVector("q", []float32{1, 0})

	f.seedChunk(t, "doc-a", "process", 0, []float32{1, 0})
	f.seedChunk(t, "doc-b", "process", 0, []float32{0.8, 0.6})

	results, err := f.svc.Retrieve(context.Background(), "q", domain.RetrieveOptions{Threshold: 0.9})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result above 0.9, got %d", len(results))
	}
	if results[0].Chunk.DocumentID != "doc-a" {
		t.Errorf("expected doc-a, got %s", results[0].Chunk.DocumentID)
	}
}

func TestRetrievalService_Retrieve_ThresholdMonotonicity(t *testing.T) {
	f := newRetrievalFixture(t)
	f.embedding.SetVector("q", []float32{1, 0})

	f.seedChunk(t, "doc-a", "process", 0, []float32{1, 0})
	f.seedChunk(t, "doc-b", "process", 0, []float32{0.9, 0.436})
	f.seedChunk(t, "doc-c", "process", 0, []float32{0.8, 0.6})
	f.seedChunk(t, "doc-d", "process", 0, []float32{0.5, 0.866})

	// Result count never grows as the threshold rises
	prev := math.MaxInt
	for _, threshold := range []float64{0.1, 0.5, 0.75, 0.85, 0.95, 1.1} {
		results, err := f.svc.Retrieve(context.Background(), "q", domain.RetrieveOptions{Threshold: threshold})
		if err != nil {
			t.Fatalf("unexpected error at threshold %v: %v", threshold, err)
		}
		if len(results) > prev {
			t.Errorf("result count grew from %d to %d at threshold %v", prev, len(results), threshold)
		}
		prev = len(results)
	}
	if prev != 0 {
		t.Errorf("expected no results above threshold 1.1, got %d", prev)
	}
}

func TestRetrievalService_Retrieve_TieBreakDeterministic(t *testing.T) {
	f := newRetrievalFixture(t)
	f.embedding.SetVector("q", []float32{1, 0})

	// Identical similarity across documents; ascending document ID wins
	f.seedChunk(t, "doc-b", "process", 3, []float32{1, 0})
	f.seedChunk(t, "doc-a", "process", 7, []float32{1, 0})
	f.seedChunk(t, "doc-c", "process", 1, []float32{1, 0})

	for range 5 {
		results, err := f.svc.Retrieve(context.Background(), "q", domain.RetrieveOptions{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(results) != 3 {
			t.Fatalf("expected 3 results, got %d", len(results))
		}
		order := []string{results[0].Chunk.DocumentID, results[1].Chunk.DocumentID, results[2].Chunk.DocumentID}
		if order[0] != "doc-a" || order[1] != "doc-b" || order[2] != "doc-c" {
			t.Fatalf("unstable tie-break order: %v", order)
		}
	}
}

func TestRetrievalService_Retrieve_TopKTruncation(t *testing.T) {
	f := newRetrievalFixture(t)
	f.embedding.SetVector("q", []float32{1, 0})

	for _, id := range []string{"doc-a", "doc-b", "doc-c", "doc-d"} {
		f.seedChunk(t, id, "process", 0, []float32{1, 0})
	}

	results, err := f.svc.Retrieve(context.Background(), "q", domain.RetrieveOptions{TopK: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 2 {
		t.Errorf("expected top_k=2 results, got %d", len(results))
	}
}

func TestRetrievalService_Retrieve_CategoryFilter(t *testing.T) {
	f := newRetrievalFixture(t)
	f.embedding.SetVector("q", []float32{1, 0})

	f.seedChunk(t, "doc-a", "process", 0, []float32{1, 0})
	f.seedChunk(t, "doc-b", "benefits", 0, []float32{1, 0})

	results, err := f.svc.Retrieve(context.Background(), "q", domain.RetrieveOptions{Categories: []string{"benefits"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Document.Category != "benefits" {
		t.Errorf("expected benefits category, got %s", results[0].Document.Category)
	}
}

func TestRetrievalService_Retrieve_ExcludesInactive(t *testing.T) {
	f := newRetrievalFixture(t)
	f.embedding.SetVector("q", []float32{1, 0})

	f.seedChunk(t, "doc-a", "process", 0, []float32{1, 0})
	if err := f.documentStore.SetActive(context.Background(), "doc-a", false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	results, err := f.svc.Retrieve(context.Background(), "q", domain.RetrieveOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("inactive documents must not be retrieved, got %d results", len(results))
	}
}

func TestRetrievalService_Retrieve_EmptyIsNotAnError(t *testing.T) {
	f := newRetrievalFixture(t)

	results, err := f.svc.Retrieve(context.Background(), "anything", domain.RetrieveOptions{})
	if err != nil {
		t.Fatalf("empty retrieval must not error: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected no results, got %d", len(results))
	}
}

func TestRetrievalService_Retrieve_NoEmbedder(t *testing.T) {
	f := newRetrievalFixture(t)
	f.svc.services.SetEmbeddingService(nil)

	_, err := f.svc.Retrieve(context.Background(), "q", domain.RetrieveOptions{})
	if !errors.Is(err, domain.ErrServiceUnavailable) {
		t.Errorf("expected ErrServiceUnavailable, got %v", err)
	}
}

func TestRetrievalService_Retrieve_EmbedFailure(t *testing.T) {
	f := newRetrievalFixture(t)
	f.embedding.SetFailNext(true)

	_, err := f.svc.Retrieve(context.Background(), "q", domain.RetrieveOptions{})
	if !errors.Is(err, domain.ErrServiceUnavailable) {
		t.Errorf("expected ErrServiceUnavailable, got %v", err)
	}
}
