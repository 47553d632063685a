package domain

// Retrieval defaults, used when a caller leaves the option zero-valued
const (
	DefaultTopK                = 5
	DefaultSimilarityThreshold = 0.7
	DefaultMaxQueryLength      = 1000
)

// RetrieveOptions tunes a single retrieval pass.
// Zero values fall back to the process defaults.
type RetrieveOptions struct {
	TopK       int      `json:"top_k,omitempty"`
	Threshold  float64  `json:"threshold,omitempty"`
	Categories []string `json:"categories,omitempty"`
}

// ActiveChunk is a chunk eligible for retrieval, paired with its
// parent document's metadata so results can cite title and category
// without a second lookup.
type ActiveChunk struct {
	Chunk    *DocumentChunk
	Document *KnowledgeDocument
}
