package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/custodia-labs/counsel-core/internal/core/domain"
	"github.com/custodia-labs/counsel-core/internal/core/ports/driven/mocks"
	"github.com/custodia-labs/counsel-core/internal/guardrail"
	"github.com/custodia-labs/counsel-core/internal/runtime"
)

type answerFixture struct {
	documentStore *mocks.MockDocumentStore
	chunkStore    *mocks.MockChunkStore
	embedding     *mocks.MockEmbeddingService
	generation    *mocks.MockGenerationService
	cache         *mocks.MockAnswerCache
	svc           *answerService
}

func newAnswerFixture(t *testing.T) *answerFixture {
	t.Helper()

	documentStore := mocks.NewMockDocumentStore()
	chunkStore := mocks.NewMockChunkStore(documentStore)
	embedding := mocks.NewMockEmbeddingService()
	generation := mocks.NewMockGenerationService()
	cache := mocks.NewMockAnswerCache()

	services := runtime.NewServices()
	services.SetEmbeddingService(embedding)
	services.SetGenerationService(generation)

	filter, err := guardrail.NewFilter(guardrail.DefaultTable())
	if err != nil {
		t.Fatalf("build filter: %v", err)
	}

	svc, err := NewAnswerService(AnswerConfig{
		Retrieval: NewRetrievalService(chunkStore, services, nil),
		Services:  services,
		Filter:    filter,
		Scanner:   guardrail.NewScanner(),
		Cache:     cache,
	})
	if err != nil {
		t.Fatalf("build answer service: %v", err)
	}

	return &answerFixture{
		documentStore: documentStore,
		chunkStore:    chunkStore,
		embedding:     embedding,
		generation:    generation,
		cache:         cache,
		svc:           svc.(*answerService),
	}
}

// seedKnowledge stores one active document with one chunk whose
// embedding matches the pinned query vector
func (f *answerFixture) seedKnowledge(t *testing.T, query string, similarity []float32) {
	t.Helper()
	ctx := context.Background()

	f.embedding.SetVector(query, []float32{1, 0})

	doc := &domain.KnowledgeDocument{
		ID:       "doc-1",
		Title:    "UIF Claim Basics",
		Category: "process",
		Active:   true,
	}
	if err := f.documentStore.Save(ctx, doc); err != nil {
		t.Fatalf("seed document: %v", err)
	}
	err := f.chunkStore.SaveBatch(ctx, []*domain.DocumentChunk{{
		ID:         "chunk-1",
		DocumentID: "doc-1",
		Index:      0,
		Content:    "Claims must be submitted within twelve months of becoming unemployed.",
		Embedding:  similarity,
	}})
	if err != nil {
		t.Fatalf("seed chunk: %v", err)
	}
}

func TestAnswerService_Ask_Refusal(t *testing.T) {
	f := newAnswerFixture(t)

	answer, err := f.svc.Ask(context.Background(), domain.AskRequest{
		Query: "What's a loophole to maximize my claim?",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !answer.GuardrailTriggered {
		t.Error("expected guardrail_triggered=true")
	}
	if answer.Answer == "" {
		t.Error("expected a refusal message")
	}
	if len(answer.Sources) != 0 {
		t.Errorf("refusal must carry no sources, got %d", len(answer.Sources))
	}
	if len(answer.Suggestions) == 0 {
		t.Error("expected redirect suggestions")
	}
	if f.generation.Calls != 0 {
		t.Error("generation must never run for a refused query")
	}
}

func TestAnswerService_Ask_Validation(t *testing.T) {
	f := newAnswerFixture(t)

	_, err := f.svc.Ask(context.Background(), domain.AskRequest{Query: "   "})
	if !errors.Is(err, domain.ErrEmptyQuery) {
		t.Errorf("expected ErrEmptyQuery, got %v", err)
	}

	_, err = f.svc.Ask(context.Background(), domain.AskRequest{Query: strings.Repeat("x", 1001)})
	if !errors.Is(err, domain.ErrQueryTooLong) {
		t.Errorf("expected ErrQueryTooLong, got %v", err)
	}
}

func TestAnswerService_Ask_HappyPath(t *testing.T) {
	f := newAnswerFixture(t)
	query := "When must I submit my claim?"
	f.seedKnowledge(t, query, []float32{1, 0})
	f.generation.SetResponse("Claims must be submitted within twelve months.")

	answer, err := f.svc.Ask(context.Background(), domain.AskRequest{Query: query})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if answer.GuardrailTriggered {
		t.Error("clean query must not trigger the guardrail")
	}
	if answer.Answer != "Claims must be submitted within twelve months." {
		t.Errorf("unexpected answer text: %q", answer.Answer)
	}
	if answer.Confidence != domain.ConfidenceHigh {
		t.Errorf("expected high confidence, got %s", answer.Confidence)
	}
	if len(answer.Sources) != 1 {
		t.Fatalf("expected 1 source, got %d", len(answer.Sources))
	}
	if answer.Sources[0].Title != "UIF Claim Basics" {
		t.Errorf("unexpected source title %q", answer.Sources[0].Title)
	}
	if answer.Sources[0].SimilarityPercent != 100 {
		t.Errorf("expected similarity 100%%, got %d", answer.Sources[0].SimilarityPercent)
	}
	if len(answer.Suggestions) == 0 {
		t.Error("expected follow-up suggestions")
	}

	if f.generation.LastQuery != query {
		t.Errorf("generator saw query %q", f.generation.LastQuery)
	}
	if !strings.Contains(f.generation.LastContext, "twelve months") {
		t.Error("generator context should contain the retrieved chunk")
	}
	if f.generation.LastSystemPrompt == "" {
		t.Error("generator should receive a system prompt")
	}
}

func TestAnswerService_Ask_SanitizesResponse(t *testing.T) {
	f := newAnswerFixture(t)
	query := "How much will I get?"
	f.seedKnowledge(t, query, []float32{1, 0})
	f.generation.SetResponse("You will save R 15,000")

	answer, err := f.svc.Ask(context.Background(), domain.AskRequest{
		Query:              query,
		IncludeDiagnostics: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if answer.Answer != "You will save [amount]" {
		t.Errorf("expected sanitized answer, got %q", answer.Answer)
	}
	if answer.Diagnostics == nil {
		t.Fatal("expected diagnostics")
	}
	if !answer.Diagnostics.Sanitized {
		t.Error("diagnostics should record sanitization")
	}
	if answer.Diagnostics.Report.Severity != domain.SeverityHigh {
		t.Errorf("expected high severity, got %s", answer.Diagnostics.Report.Severity)
	}
}

func TestAnswerService_Ask_NoDiagnosticsByDefault(t *testing.T) {
	f := newAnswerFixture(t)
	query := "How much will I get?"
	f.seedKnowledge(t, query, []float32{1, 0})
	f.generation.SetResponse("You will save R 15,000")

	answer, err := f.svc.Ask(context.Background(), domain.AskRequest{Query: query})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if answer.Answer != "You will save [amount]" {
		t.Errorf("sanitization must happen regardless of diagnostics, got %q", answer.Answer)
	}
	if answer.Diagnostics != nil {
		t.Error("diagnostics must be absent unless requested")
	}
}

func TestAnswerService_Ask_EmptyRetrieval(t *testing.T) {
	f := newAnswerFixture(t)
	f.generation.SetResponse("The knowledge base does not cover that; contact the claims office.")

	answer, err := f.svc.Ask(context.Background(), domain.AskRequest{Query: "Something entirely unrelated"})
	if err != nil {
		t.Fatalf("empty retrieval must not fail the pipeline: %v", err)
	}
	if answer.Confidence != domain.ConfidenceLow {
		t.Errorf("expected low confidence, got %s", answer.Confidence)
	}
	if len(answer.Sources) != 0 {
		t.Errorf("expected no sources, got %d", len(answer.Sources))
	}
	if f.generation.Calls != 1 {
		t.Error("generation should still run with empty context")
	}
	if f.generation.LastContext != "" {
		t.Errorf("expected empty context block, got %q", f.generation.LastContext)
	}
}

func TestAnswerService_Ask_CacheHit(t *testing.T) {
	f := newAnswerFixture(t)
	query := "When must I submit my claim?"
	f.seedKnowledge(t, query, []float32{1, 0})

	if _, err := f.svc.Ask(context.Background(), domain.AskRequest{Query: query}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := f.svc.Ask(context.Background(), domain.AskRequest{Query: query}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if f.generation.Calls != 1 {
		t.Errorf("second identical query should be served from cache, generation ran %d times", f.generation.Calls)
	}
}

func TestAnswerService_Ask_DiagnosticsBypassCache(t *testing.T) {
	f := newAnswerFixture(t)
	query := "When must I submit my claim?"
	f.seedKnowledge(t, query, []float32{1, 0})

	if _, err := f.svc.Ask(context.Background(), domain.AskRequest{Query: query}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := f.svc.Ask(context.Background(), domain.AskRequest{Query: query, IncludeDiagnostics: true}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if f.generation.Calls != 2 {
		t.Errorf("diagnostics request must bypass the cache, generation ran %d times", f.generation.Calls)
	}
}

func TestAnswerService_Ask_GenerationFailure(t *testing.T) {
	f := newAnswerFixture(t)
	f.generation.SetFailNext(true)

	_, err := f.svc.Ask(context.Background(), domain.AskRequest{Query: "How do I claim?"})
	if !errors.Is(err, domain.ErrServiceUnavailable) {
		t.Errorf("expected ErrServiceUnavailable, got %v", err)
	}
}

func TestAnswerService_Ask_NoGenerator(t *testing.T) {
	f := newAnswerFixture(t)
	f.svc.services.SetGenerationService(nil)

	_, err := f.svc.Ask(context.Background(), domain.AskRequest{Query: "How do I claim?"})
	if !errors.Is(err, domain.ErrServiceUnavailable) {
		t.Errorf("expected ErrServiceUnavailable, got %v", err)
	}
}

func TestNewAnswerService_FailsClosed(t *testing.T) {
	_, err := NewAnswerService(AnswerConfig{Scanner: guardrail.NewScanner()})
	if !errors.Is(err, domain.ErrGuardrailUnavailable) {
		t.Errorf("expected ErrGuardrailUnavailable without a filter, got %v", err)
	}

	filter, _ := guardrail.NewFilter(guardrail.DefaultTable())
	_, err = NewAnswerService(AnswerConfig{Filter: filter})
	if !errors.Is(err, domain.ErrGuardrailUnavailable) {
		t.Errorf("expected ErrGuardrailUnavailable without a scanner, got %v", err)
	}
}
