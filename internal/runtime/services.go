package runtime

import (
	"sync"

	"github.com/custodia-labs/counsel-core/internal/core/ports/driven"
)

// Services holds references to the configurable AI services.
// Either may be nil when unconfigured. Thread-safe for concurrent access.
type Services struct {
	mu sync.RWMutex

	embeddingService  driven.EmbeddingService
	generationService driven.GenerationService
}

// NewServices creates a new Services registry
func NewServices() *Services {
	return &Services{}
}

// EmbeddingService returns the current embedding service (may be nil)
func (s *Services) EmbeddingService() driven.EmbeddingService {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.embeddingService
}

// GenerationService returns the current generation service (may be nil)
func (s *Services) GenerationService() driven.GenerationService {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generationService
}

// SetEmbeddingService updates the embedding service.
// Closes the old service if present.
func (s *Services) SetEmbeddingService(svc driven.EmbeddingService) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.embeddingService != nil {
		_ = s.embeddingService.Close()
	}
	s.embeddingService = svc
}

// SetGenerationService updates the generation service.
// Closes the old service if present.
func (s *Services) SetGenerationService(svc driven.GenerationService) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.generationService != nil {
		_ = s.generationService.Close()
	}
	s.generationService = svc
}

// Ready reports whether both AI services are configured
func (s *Services) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.embeddingService != nil && s.generationService != nil
}

// Close releases both services
func (s *Services) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.embeddingService != nil {
		_ = s.embeddingService.Close()
		s.embeddingService = nil
	}
	if s.generationService != nil {
		_ = s.generationService.Close()
		s.generationService = nil
	}
}
