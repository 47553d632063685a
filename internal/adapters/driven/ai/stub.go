package ai

import (
	"context"
	"hash/fnv"
	"strings"

	"github.com/custodia-labs/counsel-core/internal/core/ports/driven"
)

// Stub services let the system run end to end without external AI
// providers: local development, demos, acceptance tests. Embeddings
// are deterministic hashes, answers are composed from the context.

// Ensure stubs implement the service ports
var (
	_ driven.EmbeddingService  = (*StubEmbedding)(nil)
	_ driven.GenerationService = (*StubGeneration)(nil)
)

// StubEmbedding produces deterministic hash-derived embeddings
type StubEmbedding struct {
	dimensions int
}

// NewStubEmbedding creates a new StubEmbedding
func NewStubEmbedding() *StubEmbedding {
	return &StubEmbedding{dimensions: 384}
}

func (s *StubEmbedding) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	result := make([][]float32, len(texts))
	for i, text := range texts {
		result[i] = s.embed(text)
	}
	return result, nil
}

func (s *StubEmbedding) EmbedQuery(ctx context.Context, query string) ([]float32, error) {
	return s.embed(query), nil
}

func (s *StubEmbedding) Dimensions() int { return s.dimensions }

func (s *StubEmbedding) Model() string { return "stub-embedding" }

func (s *StubEmbedding) HealthCheck(ctx context.Context) error { return nil }

func (s *StubEmbedding) Close() error { return nil }

// embed hashes word tokens into a fixed-size vector so texts sharing
// vocabulary land near each other, which makes local retrieval behave
// plausibly instead of randomly.
func (s *StubEmbedding) embed(text string) []float32 {
	vec := make([]float32, s.dimensions)
	for _, word := range strings.Fields(strings.ToLower(text)) {
		h := fnv.New32a()
		h.Write([]byte(word))
		vec[h.Sum32()%uint32(s.dimensions)] += 1
	}
	return vec
}

// StubGeneration composes an answer directly from the retrieved context
type StubGeneration struct{}

// NewStubGeneration creates a new StubGeneration
func NewStubGeneration() *StubGeneration {
	return &StubGeneration{}
}

func (s *StubGeneration) Generate(ctx context.Context, systemPrompt, contextBlock, query string) (string, error) {
	if strings.TrimSpace(contextBlock) == "" {
		return "I could not find anything in the knowledge base about that. " +
			"Please contact the claims office for help with this question.", nil
	}

	// Answer with the first context entry's body
	lines := strings.Split(contextBlock, "\n")
	var body []string
	for _, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			break
		}
		body = append(body, line)
	}
	if len(body) == 0 {
		body = lines[:1]
	}
	return "Based on the knowledge base: " + strings.Join(body, " "), nil
}

func (s *StubGeneration) Model() string { return "stub-generation" }

func (s *StubGeneration) Ping(ctx context.Context) error { return nil }

func (s *StubGeneration) Close() error { return nil }
