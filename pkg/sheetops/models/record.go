package models

import "time"

// Outcome is the terminal status of a top-level operation.
type Outcome string

const (
	// OutcomeSuccess indicates the operation completed.
	OutcomeSuccess Outcome = "Success"
	// OutcomeSkipped indicates the operation had nothing to do.
	OutcomeSkipped Outcome = "Skipped"
	// OutcomeError indicates the operation failed.
	OutcomeError Outcome = "Error"
)

// AuditRecord is one logged outcome of a top-level operation.
type AuditRecord struct {
	// ID uniquely identifies the record.
	ID string `json:"id"`
	// Timestamp is when the record was appended.
	Timestamp time.Time `json:"timestamp"`
	// Action labels the operation (e.g. "Export CSV", "Archive").
	Action string `json:"action"`
	// Outcome is the terminal status of the operation.
	Outcome Outcome `json:"outcome"`
	// Detail carries the output path, row count, or error text.
	Detail string `json:"detail,omitempty"`
}

// ArchiveResult summarizes one archive run.
type ArchiveResult struct {
	// Outcome is the terminal status of the run.
	Outcome Outcome `json:"outcome"`
	// RowsMoved is the number of data rows appended to the archive.
	RowsMoved int `json:"rows_moved"`
	// Timestamp is the batch timestamp shared by every moved row.
	Timestamp time.Time `json:"timestamp"`
	// Message is a human-readable summary.
	Message string `json:"message,omitempty"`
}
