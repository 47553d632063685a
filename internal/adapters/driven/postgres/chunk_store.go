package postgres

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	"github.com/custodia-labs/counsel-core/internal/core/domain"
	"github.com/custodia-labs/counsel-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.ChunkStore = (*ChunkStore)(nil)

// ChunkStore implements driven.ChunkStore using PostgreSQL.
// Embeddings live alongside the chunk text as a real[] column;
// similarity scoring happens in the retrieval service, not in SQL.
type ChunkStore struct {
	db *DB
}

// NewChunkStore creates a new ChunkStore
func NewChunkStore(db *DB) *ChunkStore {
	return &ChunkStore{db: db}
}

// SaveBatch writes a batch of chunks in one transaction. Chunks are
// immutable, so this is a plain INSERT: the UNIQUE(document_id,
// chunk_index) constraint rejects accidental double writes.
func (s *ChunkStore) SaveBatch(ctx context.Context, chunks []*domain.DocumentChunk) error {
	if len(chunks) == 0 {
		return nil
	}

	return s.db.Transaction(ctx, func(tx *sql.Tx) error {
		query := `
			INSERT INTO document_chunks (id, document_id, chunk_index, content, embedding, char_count, word_count, section, page_estimate, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		`

		stmt, err := tx.PrepareContext(ctx, query)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, chunk := range chunks {
			_, err = stmt.ExecContext(ctx,
				chunk.ID,
				chunk.DocumentID,
				chunk.Index,
				chunk.Content,
				pq.Float32Array(chunk.Embedding),
				chunk.CharCount,
				chunk.WordCount,
				chunk.Section,
				chunk.PageHint,
				chunk.CreatedAt,
			)
			if err != nil {
				return err
			}
		}

		return nil
	})
}

// GetByDocument retrieves all chunks for a document, ordered by index
func (s *ChunkStore) GetByDocument(ctx context.Context, documentID string) ([]*domain.DocumentChunk, error) {
	query := `
		SELECT id, document_id, chunk_index, content, embedding, char_count, word_count, section, page_estimate, created_at
		FROM document_chunks
		WHERE document_id = $1
		ORDER BY chunk_index ASC
	`

	rows, err := s.db.QueryContext(ctx, query, documentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var chunks []*domain.DocumentChunk
	for rows.Next() {
		chunk, err := scanChunk(rows)
		if err != nil {
			return nil, err
		}
		chunks = append(chunks, chunk)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return chunks, nil
}

// ListActive retrieves every chunk of every active document together
// with the parent document metadata. An empty categories slice means
// no category restriction.
func (s *ChunkStore) ListActive(ctx context.Context, categories []string) ([]*domain.ActiveChunk, error) {
	query := `
		SELECT c.id, c.document_id, c.chunk_index, c.content, c.embedding, c.char_count, c.word_count, c.section, c.page_estimate, c.created_at,
		       d.id, d.title, d.category, d.source_ref, d.active, d.chunk_count, d.created_at
		FROM document_chunks c
		JOIN knowledge_documents d ON d.id = c.document_id
		WHERE d.active = TRUE
	`

	var args []interface{}
	if len(categories) > 0 {
		query += ` AND d.category = ANY($1)`
		args = append(args, pq.Array(categories))
	}
	query += ` ORDER BY c.document_id, c.chunk_index`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var active []*domain.ActiveChunk
	for rows.Next() {
		var chunk domain.DocumentChunk
		var doc domain.KnowledgeDocument
		var embedding pq.Float32Array

		err := rows.Scan(
			&chunk.ID,
			&chunk.DocumentID,
			&chunk.Index,
			&chunk.Content,
			&embedding,
			&chunk.CharCount,
			&chunk.WordCount,
			&chunk.Section,
			&chunk.PageHint,
			&chunk.CreatedAt,
			&doc.ID,
			&doc.Title,
			&doc.Category,
			&doc.SourceRef,
			&doc.Active,
			&doc.ChunkCount,
			&doc.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		chunk.Embedding = []float32(embedding)
		active = append(active, &domain.ActiveChunk{Chunk: &chunk, Document: &doc})
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return active, nil
}

// DeleteByDocument deletes all chunks for a document
func (s *ChunkStore) DeleteByDocument(ctx context.Context, documentID string) error {
	query := `DELETE FROM document_chunks WHERE document_id = $1`
	_, err := s.db.ExecContext(ctx, query, documentID)
	return err
}

// CountByDocument returns the persisted chunk count for a document
func (s *ChunkStore) CountByDocument(ctx context.Context, documentID string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM document_chunks WHERE document_id = $1`, documentID).Scan(&count)
	return count, err
}

func scanChunk(rows *sql.Rows) (*domain.DocumentChunk, error) {
	var chunk domain.DocumentChunk
	var embedding pq.Float32Array

	err := rows.Scan(
		&chunk.ID,
		&chunk.DocumentID,
		&chunk.Index,
		&chunk.Content,
		&embedding,
		&chunk.CharCount,
		&chunk.WordCount,
		&chunk.Section,
		&chunk.PageHint,
		&chunk.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	chunk.Embedding = []float32(embedding)
	return &chunk, nil
}
