package model

// Package model contains domain models/data structures.
// Keep it free of persistence and transport concerns; no business logic here.

// Action is the kind of event recorded in the audit log.
// The set is open for extension as new document operations are added.
type Action string

const (
	ActionUpload   Action = "UPLOAD"
	ActionDownload Action = "DOWNLOAD"
)
