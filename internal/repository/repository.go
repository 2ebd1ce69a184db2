package repository

// Package repository contains data access layer abstractions.
// Implementations can live in subpackages (e.g., postgres) inside this directory.
// Both tables are write-once: documents are never updated and audit rows are
// append-only, so no Update operations exist here.
