package driven

import (
	"context"
)

// GenerationService produces answer text from retrieved context.
// Stateless per call: no tool use, no multi-turn state.
type GenerationService interface {
	// Generate returns plain answer text for the query, grounded on the
	// supplied context block. contextBlock may be empty when retrieval
	// found nothing relevant.
	Generate(ctx context.Context, systemPrompt, contextBlock, query string) (string, error)

	// Model returns the model name being used
	Model() string

	// Ping verifies the generation service is available
	Ping(ctx context.Context) error

	// Close releases resources held by the generation service
	Close() error
}
