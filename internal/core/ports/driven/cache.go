package driven

import (
	"context"
	"time"

	"github.com/custodia-labs/counsel-core/internal/core/domain"
)

// AnswerCache stores composed answers for repeated clean queries (Redis).
// The cache is an optimization only: a miss or a cache failure must
// never fail the request.
type AnswerCache interface {
	// Get returns the cached answer for a key, or domain.ErrNotFound
	Get(ctx context.Context, key string) (*domain.Answer, error)

	// Set stores an answer under a key with a TTL
	Set(ctx context.Context, key string, answer *domain.Answer, ttl time.Duration) error

	// Invalidate drops every cached answer, used after ingestion changes
	Invalidate(ctx context.Context) error

	// Close releases the underlying connection
	Close() error
}
