package model

import "time"

// Document is the custody record for one stored file.
// This is a pure domain model with no database-specific dependencies or tags.
// It can be used across layers (HTTP, service, storage) without coupling to persistence.
//
// A document is written exactly once at upload and never mutated or deleted;
// ContentHash is the hex SHA-256 of the exact bytes persisted under StorageKey.
type Document struct {
	ID          string    `json:"id"`
	Filename    string    `json:"filename"`
	StorageKey  string    `json:"storage_key"`
	ContentHash string    `json:"content_hash"`
	Owner       string    `json:"owner"`
	Metadata    string    `json:"metadata"`
	CreatedAt   time.Time `json:"created_at"`
}
