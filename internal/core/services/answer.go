package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/custodia-labs/counsel-core/internal/core/domain"
	"github.com/custodia-labs/counsel-core/internal/core/ports/driven"
	"github.com/custodia-labs/counsel-core/internal/core/ports/driving"
	"github.com/custodia-labs/counsel-core/internal/guardrail"
	"github.com/custodia-labs/counsel-core/internal/runtime"
)

// DefaultAnswerCacheTTL bounds how long a composed answer may be
// served without re-running the pipeline
const DefaultAnswerCacheTTL = 15 * time.Minute

const systemPrompt = `You are a careful assistant answering questions about South African ` +
	`employee claims and benefits. Answer only from the provided context. If the context ` +
	`does not cover the question, say so and suggest contacting the claims office. Never ` +
	`promise outcomes, amounts, or timelines that the context does not state.`

// excerptLength bounds source excerpts shown to callers
const excerptLength = 200

// Ensure answerService implements AskService
var _ driving.AskService = (*answerService)(nil)

// answerService composes answers through the guarded pipeline:
// validate, screen, retrieve, generate, scan, deliver. The order is
// fixed: generation never runs before screening, and no generated text
// is delivered without a scan.
type answerService struct {
	retrieval driving.RetrievalService
	services  *runtime.Services // Dynamic AI services
	filter    *guardrail.Filter
	scanner   *guardrail.Scanner
	cache     driven.AnswerCache
	maxQuery  int
	cacheTTL  time.Duration
	logger    *slog.Logger
}

// AnswerConfig configures the ask pipeline
type AnswerConfig struct {
	Retrieval driving.RetrievalService
	Services  *runtime.Services
	Filter    *guardrail.Filter
	Scanner   *guardrail.Scanner
	Cache     driven.AnswerCache // optional
	MaxQuery  int                // 0 means domain.DefaultMaxQueryLength
	CacheTTL  time.Duration      // 0 means DefaultAnswerCacheTTL
	Logger    *slog.Logger
}

// NewAnswerService creates a new AskService. The guardrail filter and
// scanner are required; construction is the caller's fail-closed gate.
func NewAnswerService(cfg AnswerConfig) (driving.AskService, error) {
	if cfg.Filter == nil || cfg.Scanner == nil {
		return nil, domain.ErrGuardrailUnavailable
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	maxQuery := cfg.MaxQuery
	if maxQuery <= 0 {
		maxQuery = domain.DefaultMaxQueryLength
	}
	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = DefaultAnswerCacheTTL
	}
	return &answerService{
		retrieval: cfg.Retrieval,
		services:  cfg.Services,
		filter:    cfg.Filter,
		scanner:   cfg.Scanner,
		cache:     cfg.Cache,
		maxQuery:  maxQuery,
		cacheTTL:  ttl,
		logger:    logger,
	}, nil
}

// Ask runs the full pipeline for one question
func (s *answerService) Ask(ctx context.Context, req domain.AskRequest) (*domain.Answer, error) {
	query := strings.TrimSpace(req.Query)
	if query == "" {
		return nil, domain.ErrEmptyQuery
	}
	if len(query) > s.maxQuery {
		return nil, domain.ErrQueryTooLong
	}
	s.logger.Debug("query received", "length", len(query))

	// Pre-query screen. A hit is terminal: canned refusal, no
	// retrieval, no generation. The refusal text is known-clean, so
	// it skips the post-response scan.
	if screen := s.filter.Screen(query); screen.Forbidden {
		s.logger.Info("query refused",
			"category", screen.Category,
			"matched_term", screen.MatchedTerm)
		return &domain.Answer{
			Answer:             screen.Refusal,
			Sources:            []domain.Source{},
			Confidence:         domain.ConfidenceHigh,
			Suggestions:        screen.Suggestions,
			GuardrailTriggered: true,
		}, nil
	}

	// Cached answers were screened and scanned before being stored.
	// Diagnostics requests bypass the cache so the report is fresh.
	key := cacheKey(query, req.TopK, req.Categories)
	if s.cache != nil && !req.IncludeDiagnostics {
		if cached, err := s.cache.Get(ctx, key); err == nil {
			s.logger.Debug("answer served from cache")
			return cached, nil
		}
	}

	retrieved, err := s.retrieval.Retrieve(ctx, query, domain.RetrieveOptions{
		TopK:       req.TopK,
		Categories: req.Categories,
	})
	if err != nil {
		return nil, fmt.Errorf("retrieve context: %w", err)
	}
	s.logger.Debug("context retrieved", "chunks", len(retrieved))

	generator := s.services.GenerationService()
	if generator == nil {
		return nil, fmt.Errorf("%w: no generation service configured", domain.ErrServiceUnavailable)
	}

	text, err := generator.Generate(ctx, systemPrompt, contextBlock(retrieved), query)
	if err != nil {
		return nil, fmt.Errorf("%w: generate answer: %v", domain.ErrServiceUnavailable, err)
	}

	report := s.scanner.Scan(text)
	if report.Violated {
		s.logger.Warn("response sanitized",
			"severity", report.Severity,
			"violations", len(report.Violations))
		text = s.scanner.Sanitize(text)
	}

	answer := &domain.Answer{
		Answer:      text,
		Sources:     buildSources(retrieved),
		Confidence:  answerConfidence(retrieved),
		Suggestions: followUpSuggestions(retrieved),
	}

	if s.cache != nil && !req.IncludeDiagnostics {
		if err := s.cache.Set(ctx, key, answer, s.cacheTTL); err != nil {
			s.logger.Warn("answer cache write failed", "error", err)
		}
	}

	if req.IncludeDiagnostics {
		answer.Diagnostics = &domain.AnswerDiagnostic{
			Sanitized: report.Violated,
			Report:    report,
		}
	}

	s.logger.Info("answer delivered",
		"confidence", answer.Confidence,
		"sources", len(answer.Sources),
		"sanitized", report.Violated)

	return answer, nil
}

// contextBlock formats retrieved chunks as a numbered context listing
// for the generation prompt. Empty retrieval yields an empty block.
func contextBlock(retrieved []*domain.RetrievedChunk) string {
	if len(retrieved) == 0 {
		return ""
	}

	var b strings.Builder
	for i, rc := range retrieved {
		fmt.Fprintf(&b, "[%d] %s", i+1, rc.Document.Title)
		if rc.Chunk.Section != "" {
			fmt.Fprintf(&b, " — %s", rc.Chunk.Section)
		}
		b.WriteString("\n")
		b.WriteString(rc.Chunk.Content)
		b.WriteString("\n\n")
	}
	return strings.TrimSpace(b.String())
}

// buildSources maps retrieved chunks to caller-facing citations
func buildSources(retrieved []*domain.RetrievedChunk) []domain.Source {
	sources := make([]domain.Source, 0, len(retrieved))
	for _, rc := range retrieved {
		sources = append(sources, domain.Source{
			Title:             rc.Document.Title,
			Category:          rc.Document.Category,
			Excerpt:           excerpt(rc.Chunk.Content),
			SimilarityPercent: int(rc.Similarity*100 + 0.5),
		})
	}
	return sources
}

// answerConfidence derives the label from the best similarity.
// No retrieved context means the answer is at best a guess: low.
func answerConfidence(retrieved []*domain.RetrievedChunk) domain.Confidence {
	if len(retrieved) == 0 {
		return domain.ConfidenceLow
	}
	return domain.ConfidenceFromScore(retrieved[0].Similarity)
}

// followUpSuggestions picks follow-up questions by the dominant
// category of the retrieved context
func followUpSuggestions(retrieved []*domain.RetrievedChunk) []string {
	category := ""
	if len(retrieved) > 0 {
		category = retrieved[0].Document.Category
	}

	switch category {
	case "process":
		return []string{
			"What documents do I need to submit?",
			"How do I check the status of my claim?",
		}
	case "eligibility":
		return []string{
			"What benefits am I eligible for?",
			"What are common reasons claims get declined?",
		}
	case "benefits":
		return []string{
			"How is my benefit amount calculated?",
			"How long are benefits paid for?",
		}
	default:
		return []string{
			"How do I submit a claim?",
			"What benefits am I eligible for?",
		}
	}
}

func excerpt(content string) string {
	runes := []rune(content)
	if len(runes) <= excerptLength {
		return content
	}
	return strings.TrimSpace(string(runes[:excerptLength])) + "..."
}

// cacheKey derives a stable key from the query and retrieval options
func cacheKey(query string, topK int, categories []string) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s|%d|%s", strings.ToLower(query), topK, strings.Join(categories, ","))
	return "answer:" + hex.EncodeToString(h.Sum(nil))[:32]
}
