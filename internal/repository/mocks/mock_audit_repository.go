package mocks

import (
	"context"

	"evault/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockAuditLogRepository struct {
	mock.Mock
}

func (m *MockAuditLogRepository) Append(ctx context.Context, entry *model.AuditEntry) (*model.AuditEntry, error) {
	args := m.Called(ctx, entry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AuditEntry), args.Error(1)
}

func (m *MockAuditLogRepository) ListByDocument(ctx context.Context, documentID string) ([]model.AuditEntry, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.AuditEntry), args.Error(1)
}

func (m *MockAuditLogRepository) Scan(ctx context.Context, limit int) ([]model.AuditEntry, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.AuditEntry), args.Error(1)
}
