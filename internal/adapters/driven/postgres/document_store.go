package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/custodia-labs/counsel-core/internal/core/domain"
	"github.com/custodia-labs/counsel-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.DocumentStore = (*DocumentStore)(nil)

// DocumentStore implements driven.DocumentStore using PostgreSQL
type DocumentStore struct {
	db *DB
}

// NewDocumentStore creates a new DocumentStore
func NewDocumentStore(db *DB) *DocumentStore {
	return &DocumentStore{db: db}
}

// Save creates a document record. Documents are insert-only: content
// never changes after ingestion, so there is no upsert path.
func (s *DocumentStore) Save(ctx context.Context, doc *domain.KnowledgeDocument) error {
	query := `
		INSERT INTO knowledge_documents (id, title, category, source_ref, content, active, chunk_count, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := s.db.ExecContext(ctx, query,
		doc.ID,
		doc.Title,
		doc.Category,
		doc.SourceRef,
		doc.Content,
		doc.Active,
		doc.ChunkCount,
		doc.CreatedAt,
	)
	if isUniqueViolation(err) {
		return domain.ErrAlreadyExists
	}
	return err
}

// Get retrieves a document by ID
func (s *DocumentStore) Get(ctx context.Context, id string) (*domain.KnowledgeDocument, error) {
	query := `
		SELECT id, title, category, source_ref, content, active, chunk_count, created_at
		FROM knowledge_documents
		WHERE id = $1
	`

	var doc domain.KnowledgeDocument
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&doc.ID,
		&doc.Title,
		&doc.Category,
		&doc.SourceRef,
		&doc.Content,
		&doc.Active,
		&doc.ChunkCount,
		&doc.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// List retrieves documents with pagination, newest first.
// Content is omitted to keep listings light.
func (s *DocumentStore) List(ctx context.Context, limit, offset int) ([]*domain.KnowledgeDocument, error) {
	query := `
		SELECT id, title, category, source_ref, active, chunk_count, created_at
		FROM knowledge_documents
		ORDER BY created_at DESC, id
		LIMIT $1 OFFSET $2
	`

	rows, err := s.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []*domain.KnowledgeDocument
	for rows.Next() {
		var doc domain.KnowledgeDocument
		err := rows.Scan(
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
		docs = append(docs, &doc)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return docs, nil
}

// UpdateChunkCount records the persisted chunk count for a document
func (s *DocumentStore) UpdateChunkCount(ctx context.Context, id string, count int) error {
	query := `UPDATE knowledge_documents SET chunk_count = $2 WHERE id = $1`
	result, err := s.db.ExecContext(ctx, query, id, count)
	if err != nil {
		return err
	}
	return requireRow(result)
}

// SetActive toggles a document's retrieval visibility
func (s *DocumentStore) SetActive(ctx context.Context, id string, active bool) error {
	query := `UPDATE knowledge_documents SET active = $2 WHERE id = $1`
	result, err := s.db.ExecContext(ctx, query, id, active)
	if err != nil {
		return err
	}
	return requireRow(result)
}

// Delete deletes a document; chunks cascade via the FK
func (s *DocumentStore) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM knowledge_documents WHERE id = $1`
	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	return requireRow(result)
}

// Count returns total document count
func (s *DocumentStore) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM knowledge_documents`).Scan(&count)
	return count, err
}

// requireRow maps a zero-row update/delete to ErrNotFound
func requireRow(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// isUniqueViolation reports whether err is a Postgres unique_violation
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
