package driven

// AIServiceFactory creates AI services based on configuration
type AIServiceFactory interface {
	// CreateEmbeddingService creates an embedding service for a provider.
	// Returns domain.ErrInvalidProvider for an unknown provider name.
	CreateEmbeddingService(provider, apiKey, model string) (EmbeddingService, error)

	// CreateGenerationService creates a generation service for a provider.
	// Returns domain.ErrInvalidProvider for an unknown provider name.
	CreateGenerationService(provider, apiKey, model string) (GenerationService, error)
}
