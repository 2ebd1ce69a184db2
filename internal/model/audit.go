package model

import "time"

// AuditEntry is one append-only row in the audit trail.
//
// ID is a database-assigned monotonic sequence that keeps entries unique and
// totally ordered even when two events for the same document land in the same
// second. DocumentID is not a foreign key: an entry may reference a document
// that was never committed (e.g. a failed upload).
type AuditEntry struct {
	ID         int64     `json:"id"`
	DocumentID string    `json:"document_id"`
	Action     Action    `json:"action"`
	Actor      string    `json:"actor"`
	CreatedAt  time.Time `json:"created_at"`
}
