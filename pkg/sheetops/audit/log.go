// Package audit implements the append-only operation log. Every top-level
// operation produces exactly one record; records are never mutated,
// reordered, or deleted for the lifetime of the workbook.
package audit

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/sheetops/sheetops-go/pkg/sheetops/clock"
	"github.com/sheetops/sheetops-go/pkg/sheetops/models"
	"go.uber.org/zap"
)

// TimeFormat is the timestamp layout used in persisted log lines.
const TimeFormat = "2006-01-02 15:04:05"

// Sink persists formatted audit lines. The Log's ordering guarantee holds
// regardless of the sink; a sink failure never drops the in-memory record.
type Sink interface {
	WriteLine(line string) error
}

// Log is a process-wide, append-only audit log. Appends from concurrent
// producers are serialized; two records never interleave.
type Log struct {
	mu      sync.Mutex
	clock   clock.Clock
	logger  *zap.Logger
	sink    Sink
	records []models.AuditRecord
}

// New creates a Log. sink may be nil for an in-memory-only log; logger may
// be nil.
func New(c clock.Clock, sink Sink, logger *zap.Logger) *Log {
	if c == nil {
		c = clock.System{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Log{clock: c, logger: logger, sink: sink}
}

// Append builds a record for the operation outcome and appends it.
func (l *Log) Append(action string, outcome models.Outcome, detail string) models.AuditRecord {
	rec := models.AuditRecord{
		ID:        uuid.NewString(),
		Timestamp: l.clock.Now(),
		Action:    action,
		Outcome:   outcome,
		Detail:    detail,
	}
	if err := l.Record(rec); err != nil {
		l.logger.Warn("audit sink write failed", zap.String("action", action), zap.Error(err))
	}
	return rec
}

// Record appends an already-built record. The record is retained in memory
// even when the sink fails; the sink error is returned for the caller to
// surface.
func (l *Log) Record(rec models.AuditRecord) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.records = append(l.records, rec)
	if l.sink == nil {
		return nil
	}
	return l.sink.WriteLine(FormatLine(rec))
}

// All returns the records in append order.
func (l *Log) All() []models.AuditRecord {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]models.AuditRecord, len(l.records))
	copy(out, l.records)
	return out
}

// FormatLine renders one record as a persisted log line:
//
//	YYYY-MM-DD hh:mm:ss - <action> - <detail>
//
// The outcome stands in for an empty detail.
func FormatLine(rec models.AuditRecord) string {
	detail := rec.Detail
	if detail == "" {
		detail = string(rec.Outcome)
	}
	return fmt.Sprintf("%s - %s - %s", rec.Timestamp.Format(TimeFormat), rec.Action, detail)
}
