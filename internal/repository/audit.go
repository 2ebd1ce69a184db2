package repository

import (
	"context"

	"evault/internal/model"
)

// AuditLogRepository defines data access for the append-only audit trail.
type AuditLogRepository interface {
	// Append inserts one audit row and returns it with the DB-assigned sequence ID.
	Append(ctx context.Context, entry *model.AuditEntry) (*model.AuditEntry, error)

	// ListByDocument returns every entry for the given document ID, newest first
	// (created_at descending, sequence ID breaking same-second ties).
	// A document with no entries yields an empty slice, not an error.
	ListByDocument(ctx context.Context, documentID string) ([]model.AuditEntry, error)

	// Scan reads up to limit rows across all documents with no ordering applied.
	// Which rows are returned when the table holds more than limit is unspecified;
	// callers that need ordering sort the returned subset themselves.
	Scan(ctx context.Context, limit int) ([]model.AuditEntry, error)
}
