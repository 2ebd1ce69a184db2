package service

import (
	"context"
	"sort"

	"evault/internal/model"
	"evault/internal/repository"
)

// AuditService exposes read access to the audit trail.
type AuditService interface {
	// ForDocument returns every entry for one document, newest first.
	// A document with no entries (or that does not exist) yields an empty slice.
	ForDocument(ctx context.Context, documentID string) ([]model.AuditEntry, error)

	// All returns up to limit entries across all documents, sorted newest first.
	// The underlying scan truncates before sorting, so when the table holds more
	// than limit rows the result is an arbitrary subset in descending order, not
	// necessarily the latest entries. It is exact when total rows <= limit.
	All(ctx context.Context, limit int) ([]model.AuditEntry, error)
}

type auditService struct {
	logs         repository.AuditLogRepository
	defaultLimit int
}

// NewAuditService constructs a new AuditService. defaultLimit is used when the
// caller gives no usable limit.
func NewAuditService(logs repository.AuditLogRepository, defaultLimit int) AuditService {
	if defaultLimit <= 0 {
		defaultLimit = 100
	}
	return &auditService{logs: logs, defaultLimit: defaultLimit}
}

func (s *auditService) ForDocument(ctx context.Context, documentID string) ([]model.AuditEntry, error) {
	if documentID == "" {
		return nil, ErrIDRequired
	}
	return s.logs.ListByDocument(ctx, documentID)
}

func (s *auditService) All(ctx context.Context, limit int) ([]model.AuditEntry, error) {
	if limit <= 0 {
		limit = s.defaultLimit
	}
	entries, err := s.logs.Scan(ctx, limit)
	if err != nil {
		return nil, err
	}
	// Client-side sort of the scanned subset; sequence ID breaks same-second ties.
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].CreatedAt.Equal(entries[j].CreatedAt) {
			return entries[i].ID > entries[j].ID
		}
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})
	return entries, nil
}
