package driving

import (
	"context"

	"github.com/custodia-labs/counsel-core/internal/core/domain"
)

// RetrievalService finds the chunks most similar to a query
type RetrievalService interface {
	// Retrieve embeds the query and returns the matching chunks,
	// highest similarity first. An empty result is a normal outcome,
	// not an error.
	Retrieve(ctx context.Context, query string, opts domain.RetrieveOptions) ([]*domain.RetrievedChunk, error)
}
