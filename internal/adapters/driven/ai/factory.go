package ai

import (
	"fmt"

	"github.com/custodia-labs/counsel-core/internal/core/domain"
	"github.com/custodia-labs/counsel-core/internal/core/ports/driven"
)

// Supported provider names
const (
	ProviderOpenAI = "openai"
	ProviderStub   = "stub"
)

// Ensure Factory implements AIServiceFactory
var _ driven.AIServiceFactory = (*Factory)(nil)

// Factory creates AI services based on configuration
type Factory struct{}

// NewFactory creates a new AI service factory
func NewFactory() *Factory {
	return &Factory{}
}

// CreateEmbeddingService creates an embedding service for a provider
func (f *Factory) CreateEmbeddingService(provider, apiKey, model string) (driven.EmbeddingService, error) {
	switch provider {
	case ProviderOpenAI:
		return NewOpenAIEmbedding(apiKey, model, "")
	case ProviderStub:
		return NewStubEmbedding(), nil
	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidProvider, provider)
	}
}

// CreateGenerationService creates a generation service for a provider
func (f *Factory) CreateGenerationService(provider, apiKey, model string) (driven.GenerationService, error) {
	switch provider {
	case ProviderOpenAI:
		return NewOpenAIGeneration(apiKey, model, "")
	case ProviderStub:
		return NewStubGeneration(), nil
	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidProvider, provider)
	}
}
