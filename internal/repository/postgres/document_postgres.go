package postgres

import (
	"context"
	"database/sql"

	"evault/internal/model"
	"evault/internal/repository"
)

// DocumentPostgres is a PostgreSQL implementation of repository.DocumentRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type DocumentPostgres struct {
	db *sql.DB
}

// NewDocumentPostgres creates a new DocumentPostgres repository.
func NewDocumentPostgres(db *sql.DB) *DocumentPostgres {
	return &DocumentPostgres{db: db}
}

var _ repository.DocumentRepository = (*DocumentPostgres)(nil)

// Create inserts a new document row and returns the stored record.
func (r *DocumentPostgres) Create(ctx context.Context, doc *model.Document) (*model.Document, error) {
	const q = `
		INSERT INTO documents (id, filename, storage_key, content_hash, owner, metadata, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, filename, storage_key, content_hash, owner, metadata, created_at
	`
	row := r.db.QueryRowContext(ctx, q,
		doc.ID,
		doc.Filename,
		doc.StorageKey,
		doc.ContentHash,
		doc.Owner,
		doc.Metadata,
		doc.CreatedAt,
	)
	var out model.Document
	if err := row.Scan(
		&out.ID,
		&out.Filename,
		&out.StorageKey,
		&out.ContentHash,
		&out.Owner,
		&out.Metadata,
		&out.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &out, nil
}

// FindByID fetches a single document by its ID.
// A missing row surfaces as sql.ErrNoRows for the service layer to translate.
func (r *DocumentPostgres) FindByID(ctx context.Context, id string) (*model.Document, error) {
	const q = `
		SELECT id, filename, storage_key, content_hash, owner, metadata, created_at
		FROM documents
		WHERE id = $1
	`
	row := r.db.QueryRowContext(ctx, q, id)
	var d model.Document
	if err := row.Scan(
		&d.ID,
		&d.Filename,
		&d.StorageKey,
		&d.ContentHash,
		&d.Owner,
		&d.Metadata,
		&d.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &d, nil
}
