package postgres

import (
	"context"
	"database/sql"

	"evault/internal/model"
	"evault/internal/repository"
)

// AuditLogPostgres is a PostgreSQL implementation of repository.AuditLogRepository.
// Rows are insert-only; there is no update or delete path.
type AuditLogPostgres struct {
	db *sql.DB
}

// NewAuditLogPostgres creates a new AuditLogPostgres repository.
func NewAuditLogPostgres(db *sql.DB) *AuditLogPostgres {
	return &AuditLogPostgres{db: db}
}

var _ repository.AuditLogRepository = (*AuditLogPostgres)(nil)

// Append inserts one audit row; the sequence ID comes back from the DB.
func (r *AuditLogPostgres) Append(ctx context.Context, entry *model.AuditEntry) (*model.AuditEntry, error) {
	const q = `
		INSERT INTO audit_logs (document_id, action, actor, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, document_id, action, actor, created_at
	`
	row := r.db.QueryRowContext(ctx, q,
		entry.DocumentID,
		entry.Action,
		entry.Actor,
		entry.CreatedAt,
	)
	var out model.AuditEntry
	if err := row.Scan(
		&out.ID,
		&out.DocumentID,
		&out.Action,
		&out.Actor,
		&out.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListByDocument returns all entries for one document, newest first.
func (r *AuditLogPostgres) ListByDocument(ctx context.Context, documentID string) ([]model.AuditEntry, error) {
	const q = `
		SELECT id, document_id, action, actor, created_at
		FROM audit_logs
		WHERE document_id = $1
		ORDER BY created_at DESC, id DESC
	`
	rows, err := r.db.QueryContext(ctx, q, documentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEntries(rows)
}

// Scan reads up to limit rows with no ORDER BY: when the table holds more rows
// than limit, which subset comes back is up to the database.
func (r *AuditLogPostgres) Scan(ctx context.Context, limit int) ([]model.AuditEntry, error) {
	const q = `
		SELECT id, document_id, action, actor, created_at
		FROM audit_logs
		LIMIT $1
	`
	rows, err := r.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEntries(rows)
}

func scanEntries(rows *sql.Rows) ([]model.AuditEntry, error) {
	entries := make([]model.AuditEntry, 0)
	for rows.Next() {
		var e model.AuditEntry
		if err := rows.Scan(
			&e.ID,
			&e.DocumentID,
			&e.Action,
			&e.Actor,
			&e.CreatedAt,
		); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}
