package service

import (
	"bytes"
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"evault/internal/model"
	"evault/internal/repository"
	"evault/internal/storage"
)

var (
	ErrFileRequired = errors.New("file is required")
	ErrIDRequired   = errors.New("id is required")
	ErrNotFound     = errors.New("document not found")
)

// downloadActor is recorded on DOWNLOAD entries; the download endpoint does not
// capture the caller's identity.
const downloadActor = "viewer"

// DownloadResult carries the minted access URL and the stored content hash so
// the caller can verify integrity after fetching the blob independently.
type DownloadResult struct {
	AccessURL   string `json:"access_url"`
	ContentHash string `json:"content_hash"`
}

// DocumentService defines the custody use cases for documents.
type DocumentService interface {
	// Upload stores the content in the object store with at-rest encryption,
	// writes the document row and an UPLOAD audit entry sharing one timestamp,
	// and returns the new custody record.
	Upload(ctx context.Context, r io.Reader, originalFilename, contentType, owner, metadata string) (*model.Document, error)

	// Download looks up a document and mints a time-limited access URL for its
	// blob, appending a DOWNLOAD audit entry at link-issuance time. The URL may
	// never be used; the entry is written regardless.
	Download(ctx context.Context, id string) (*DownloadResult, error)
}

// documentService is a concrete implementation of DocumentService.
type documentService struct {
	store      storage.Storage
	docs       repository.DocumentRepository
	audit      repository.AuditLogRepository
	presignTTL time.Duration
}

// NewDocumentService constructs a new DocumentService. presignTTL bounds the
// lifetime of minted download URLs.
func NewDocumentService(store storage.Storage, docs repository.DocumentRepository, audit repository.AuditLogRepository, presignTTL time.Duration) DocumentService {
	return &documentService{store: store, docs: docs, audit: audit, presignTTL: presignTTL}
}

func (s *documentService) Upload(ctx context.Context, r io.Reader, originalFilename, contentType, owner, metadata string) (*model.Document, error) {
	if r == nil {
		return nil, ErrFileRequired
	}

	// The whole payload is read up front: the content hash must cover the exact
	// bytes persisted, and empty files are legal.
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	sum := sha256.Sum256(data)
	contentHash := hex.EncodeToString(sum[:])

	name := filepath.Base(originalFilename)
	if name == "." || name == "/" || name == "" {
		name = "unnamed"
	}
	key := filepath.ToSlash(filepath.Join("documents", uuid.NewString()+"_"+name))

	if _, err := s.store.Put(ctx, key, bytes.NewReader(data), storage.PutObjectOptions{
		Size:        int64(len(data)),
		ContentType: contentType,
		Encrypt:     true,
		Metadata: map[string]string{
			"original-filename": name,
		},
	}); err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	// One timestamp covers both rows so the document and its UPLOAD entry agree.
	now := time.Now().UTC().Truncate(time.Second)
	doc := &model.Document{
		ID:          uuid.NewString(),
		Filename:    name,
		StorageKey:  key,
		ContentHash: contentHash,
		Owner:       owner,
		Metadata:    metadata,
		CreatedAt:   now,
	}
	stored, err := s.docs.Create(ctx, doc)
	if err != nil {
		// Rollback: delete the object from storage
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			return nil, fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("db save failed: %w", err)
	}

	// No compensation past this point: a failed audit append leaves the document
	// committed and surfaces as an error.
	if _, err := s.audit.Append(ctx, &model.AuditEntry{
		DocumentID: stored.ID,
		Action:     model.ActionUpload,
		Actor:      owner,
		CreatedAt:  now,
	}); err != nil {
		return nil, fmt.Errorf("audit append failed: %w", err)
	}

	return stored, nil
}

func (s *documentService) Download(ctx context.Context, id string) (*DownloadResult, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	doc, err := s.docs.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	url, err := s.store.PresignGet(ctx, doc.StorageKey, s.presignTTL)
	if err != nil {
		return nil, fmt.Errorf("presign url: %w", err)
	}

	if _, err := s.audit.Append(ctx, &model.AuditEntry{
		DocumentID: doc.ID,
		Action:     model.ActionDownload,
		Actor:      downloadActor,
		CreatedAt:  time.Now().UTC().Truncate(time.Second),
	}); err != nil {
		return nil, fmt.Errorf("audit append failed: %w", err)
	}

	return &DownloadResult{AccessURL: url, ContentHash: doc.ContentHash}, nil
}
