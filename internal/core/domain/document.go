package domain

import "time"

// KnowledgeDocument represents a source text in the knowledge base.
// Content is immutable once chunked; re-ingestion creates a new document.
type KnowledgeDocument struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Category   string    `json:"category"`
	SourceRef  string    `json:"source_ref,omitempty"` // Origin reference (URL, file name)
	Content    string    `json:"content,omitempty"`
	Active     bool      `json:"active"`
	ChunkCount int       `json:"chunk_count"` // 0 after a failed or incomplete ingestion
	CreatedAt  time.Time `json:"created_at"`
}

// DocumentChunk is one retrievable segment of a document.
// Chunks are written once per ingestion batch and never mutated;
// they are deleted only when the parent document is deleted.
type DocumentChunk struct {
	ID         string    `json:"id"`
	DocumentID string    `json:"document_id"`
	Index      int       `json:"chunk_index"` // Zero-based, unique within a document
	Content    string    `json:"content"`
	Embedding  []float32 `json:"embedding,omitempty"`
	CharCount  int       `json:"char_count"`
	WordCount  int       `json:"word_count"`
	Section    string    `json:"section,omitempty"`       // Nearest preceding heading, best effort
	PageHint   int       `json:"page_estimate,omitempty"` // Estimated from character offset
	CreatedAt  time.Time `json:"created_at"`
}

// RetrievedChunk pairs a chunk with its similarity score for one query.
// It exists only for the duration of a single request and is never persisted.
type RetrievedChunk struct {
	Chunk      *DocumentChunk     `json:"chunk"`
	Document   *KnowledgeDocument `json:"document,omitempty"`
	Similarity float64            `json:"similarity"` // Cosine similarity in [-1, 1]
}

// DocumentWithChunks combines a document with its chunks
type DocumentWithChunks struct {
	Document *KnowledgeDocument `json:"document"`
	Chunks   []*DocumentChunk   `json:"chunks"`
}
