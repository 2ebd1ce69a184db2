package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"evault/internal/model"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

var auditColumns = []string{"id", "document_id", "action", "actor", "created_at"}

func TestAuditLogPostgres_Append(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewAuditLogPostgres(db)
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Second)
	entry := &model.AuditEntry{
		DocumentID: "doc-1",
		Action:     model.ActionUpload,
		Actor:      "alice",
		CreatedAt:  now,
	}

	rows := sqlmock.NewRows(auditColumns).
		AddRow(int64(7), entry.DocumentID, string(entry.Action), entry.Actor, entry.CreatedAt)

	mock.ExpectQuery("INSERT INTO audit_logs").
		WithArgs(entry.DocumentID, entry.Action, entry.Actor, entry.CreatedAt).
		WillReturnRows(rows)

	stored, err := repo.Append(ctx, entry)

	assert.NoError(t, err)
	assert.NotNil(t, stored)
	assert.Equal(t, int64(7), stored.ID)
	assert.Equal(t, model.ActionUpload, stored.Action)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuditLogPostgres_ListByDocument(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewAuditLogPostgres(db)
	ctx := context.Background()

	t.Run("rows come back in query order", func(t *testing.T) {
		t2 := time.Date(2026, 8, 30, 12, 0, 1, 0, time.UTC)
		t1 := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

		rows := sqlmock.NewRows(auditColumns).
			AddRow(int64(2), "doc-1", "DOWNLOAD", "viewer", t2).
			AddRow(int64(1), "doc-1", "UPLOAD", "alice", t1)

		mock.ExpectQuery("SELECT (.+) FROM audit_logs WHERE document_id = (.+) ORDER BY created_at DESC, id DESC").
			WithArgs("doc-1").
			WillReturnRows(rows)

		entries, err := repo.ListByDocument(ctx, "doc-1")

		assert.NoError(t, err)
		assert.Len(t, entries, 2)
		assert.Equal(t, model.ActionDownload, entries[0].Action)
		assert.Equal(t, model.ActionUpload, entries[1].Action)
	})

	t.Run("no entries yields empty slice", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM audit_logs WHERE document_id = (.+)").
			WithArgs("ghost").
			WillReturnRows(sqlmock.NewRows(auditColumns))

		entries, err := repo.ListByDocument(ctx, "ghost")

		assert.NoError(t, err)
		assert.NotNil(t, entries)
		assert.Empty(t, entries)
	})
}

func TestAuditLogPostgres_Scan(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewAuditLogPostgres(db)
	ctx := context.Background()

	t.Run("returns at most limit rows", func(t *testing.T) {
		rows := sqlmock.NewRows(auditColumns).
			AddRow(int64(1), "doc-1", "UPLOAD", "alice", time.Now()).
			AddRow(int64(2), "doc-2", "UPLOAD", "bob", time.Now())

		mock.ExpectQuery("SELECT (.+) FROM audit_logs LIMIT").
			WithArgs(2).
			WillReturnRows(rows)

		entries, err := repo.Scan(ctx, 2)

		assert.NoError(t, err)
		assert.Len(t, entries, 2)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("query error propagates", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM audit_logs LIMIT").
			WithArgs(5).
			WillReturnError(errors.New("db down"))

		entries, err := repo.Scan(ctx, 5)

		assert.Error(t, err)
		assert.Nil(t, entries)
	})
}
