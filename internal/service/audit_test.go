package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"evault/internal/model"
	repoMocks "evault/internal/repository/mocks"

	"github.com/stretchr/testify/assert"
)

func TestAuditService_ForDocument(t *testing.T) {
	ctx := context.Background()

	t.Run("returns entries newest first as stored", func(t *testing.T) {
		t2 := time.Date(2026, 8, 30, 10, 0, 5, 0, time.UTC)
		t1 := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)

		mRepo := new(repoMocks.MockAuditLogRepository)
		mRepo.On("ListByDocument", ctx, "doc-1").Return([]model.AuditEntry{
			{ID: 2, DocumentID: "doc-1", Action: model.ActionDownload, CreatedAt: t2},
			{ID: 1, DocumentID: "doc-1", Action: model.ActionUpload, CreatedAt: t1},
		}, nil)

		svc := NewAuditService(mRepo, 100)
		entries, err := svc.ForDocument(ctx, "doc-1")

		assert.NoError(t, err)
		assert.Len(t, entries, 2)
		for i := 1; i < len(entries); i++ {
			assert.False(t, entries[i-1].CreatedAt.Before(entries[i].CreatedAt))
		}
		mRepo.AssertExpectations(t)
	})

	t.Run("unknown document yields empty slice, not an error", func(t *testing.T) {
		mRepo := new(repoMocks.MockAuditLogRepository)
		mRepo.On("ListByDocument", ctx, "ghost").Return([]model.AuditEntry{}, nil)

		svc := NewAuditService(mRepo, 100)
		entries, err := svc.ForDocument(ctx, "ghost")

		assert.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("empty id", func(t *testing.T) {
		svc := NewAuditService(new(repoMocks.MockAuditLogRepository), 100)
		entries, err := svc.ForDocument(ctx, "")

		assert.ErrorIs(t, err, ErrIDRequired)
		assert.Nil(t, entries)
	})
}

func TestAuditService_All(t *testing.T) {
	ctx := context.Background()

	t.Run("sorts scanned subset descending", func(t *testing.T) {
		// Three entries at T1 < T2 < T3 with limit 2: the scan examined T2 and
		// T3, so the result must be exactly [T3, T2].
		t2 := time.Date(2026, 8, 30, 9, 0, 1, 0, time.UTC)
		t3 := time.Date(2026, 8, 30, 9, 0, 2, 0, time.UTC)

		mRepo := new(repoMocks.MockAuditLogRepository)
		mRepo.On("Scan", ctx, 2).Return([]model.AuditEntry{
			{ID: 2, CreatedAt: t2},
			{ID: 3, CreatedAt: t3},
		}, nil)

		svc := NewAuditService(mRepo, 100)
		entries, err := svc.All(ctx, 2)

		assert.NoError(t, err)
		assert.Len(t, entries, 2)
		assert.Equal(t, int64(3), entries[0].ID)
		assert.Equal(t, int64(2), entries[1].ID)
	})

	t.Run("same-second entries break ties by sequence", func(t *testing.T) {
		ts := time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)

		mRepo := new(repoMocks.MockAuditLogRepository)
		mRepo.On("Scan", ctx, 3).Return([]model.AuditEntry{
			{ID: 5, CreatedAt: ts},
			{ID: 9, CreatedAt: ts},
			{ID: 7, CreatedAt: ts},
		}, nil)

		svc := NewAuditService(mRepo, 100)
		entries, err := svc.All(ctx, 3)

		assert.NoError(t, err)
		assert.Equal(t, int64(9), entries[0].ID)
		assert.Equal(t, int64(7), entries[1].ID)
		assert.Equal(t, int64(5), entries[2].ID)
	})

	t.Run("zero limit falls back to default", func(t *testing.T) {
		mRepo := new(repoMocks.MockAuditLogRepository)
		mRepo.On("Scan", ctx, 100).Return([]model.AuditEntry{}, nil)

		svc := NewAuditService(mRepo, 100)
		entries, err := svc.All(ctx, 0)

		assert.NoError(t, err)
		assert.Empty(t, entries)
		mRepo.AssertExpectations(t)
	})

	t.Run("repository error", func(t *testing.T) {
		mRepo := new(repoMocks.MockAuditLogRepository)
		mRepo.On("Scan", ctx, 10).Return(nil, errors.New("db fail"))

		svc := NewAuditService(mRepo, 100)
		entries, err := svc.All(ctx, 10)

		assert.Error(t, err)
		assert.Nil(t, entries)
	})
}
