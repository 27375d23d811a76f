// Package sheetops automates recurring operations on a tabular workbook:
// delimited-text export, paginated-document export, row archival with an
// audit trail, and dynamically derived dropdown validation lists.
package sheetops

import (
	"github.com/sheetops/sheetops-go/pkg/sheetops/audit"
	"github.com/sheetops/sheetops-go/pkg/sheetops/clock"
	"github.com/sheetops/sheetops-go/pkg/sheetops/export"
	"github.com/sheetops/sheetops-go/pkg/sheetops/grid"
	"github.com/sheetops/sheetops-go/pkg/sheetops/validation"
	"go.uber.org/zap"
)

// Options configures a Workbook.
type Options struct {
	// Delimiter separates fields in delimited export. Defaults to ','.
	Delimiter rune
	// Terminator joins rows in delimited export. Defaults to export.CRLF.
	Terminator string
	// ListSuffix is appended to header labels to name validation lists.
	// Defaults to validation.DefaultSuffix.
	ListSuffix string
	// Clock supplies operation timestamps. Defaults to the system clock.
	Clock clock.Clock
	// Logger receives operational logging. Defaults to a no-op logger.
	Logger *zap.Logger
	// AuditSink persists audit lines. nil keeps the audit log in memory.
	AuditSink audit.Sink
	// Renderer is the paginated-document engine. nil defaults to a
	// LibreOffice renderer over the opened workbook.
	Renderer grid.Renderer
}

// DefaultOptions returns the defaults used by the CLI.
func DefaultOptions() Options {
	return Options{
		Delimiter:  ',',
		Terminator: export.CRLF,
		ListSuffix: validation.DefaultSuffix,
		Clock:      clock.System{},
	}
}

func (o Options) normalized() Options {
	def := DefaultOptions()
	if o.Delimiter == 0 {
		o.Delimiter = def.Delimiter
	}
	if o.Terminator == "" {
		o.Terminator = def.Terminator
	}
	if o.ListSuffix == "" {
		o.ListSuffix = def.ListSuffix
	}
	if o.Clock == nil {
		o.Clock = def.Clock
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o
}
