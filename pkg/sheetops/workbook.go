package sheetops

import (
	"errors"
	"fmt"

	"github.com/sheetops/sheetops-go/pkg/sheetops/archive"
	"github.com/sheetops/sheetops-go/pkg/sheetops/audit"
	"github.com/sheetops/sheetops-go/pkg/sheetops/export"
	"github.com/sheetops/sheetops-go/pkg/sheetops/grid"
	"github.com/sheetops/sheetops-go/pkg/sheetops/models"
	"github.com/sheetops/sheetops-go/pkg/sheetops/validation"
	"go.uber.org/zap"
)

// Workbook orchestrates the export, archive, and validation operations over
// one opened workbook. Operations are synchronous and must not be invoked
// concurrently on the same workbook.
type Workbook struct {
	host     *grid.Excel
	opts     Options
	audit    *audit.Log
	mover    *archive.Mover
	builder  *validation.Builder
	renderer grid.Renderer
}

// Open opens the workbook at path and wires the operation components.
func Open(path string, opts Options) (*Workbook, error) {
	host, err := grid.OpenWorkbook(path)
	if err != nil {
		return nil, err
	}
	return newWorkbook(host, opts), nil
}

// Wrap builds a Workbook over an already-open host. Intended for callers
// that construct workbooks in memory.
func Wrap(host *grid.Excel, opts Options) *Workbook {
	return newWorkbook(host, opts)
}

func newWorkbook(host *grid.Excel, opts Options) *Workbook {
	opts = opts.normalized()

	log := audit.New(opts.Clock, opts.AuditSink, opts.Logger)
	renderer := opts.Renderer
	if renderer == nil {
		renderer = &grid.SofficeRenderer{Workbook: host}
	}

	builder := validation.NewBuilder(host, log, opts.Logger)
	builder.Suffix = opts.ListSuffix

	return &Workbook{
		host:     host,
		opts:     opts,
		audit:    log,
		mover:    archive.NewMover(host, opts.Clock, log, opts.Logger),
		builder:  builder,
		renderer: renderer,
	}
}

// Host exposes the underlying grid host.
func (w *Workbook) Host() *grid.Excel {
	return w.host
}

// Audit exposes the workbook's audit log.
func (w *Workbook) Audit() *audit.Log {
	return w.audit
}

// ExportDelimited serializes the region to a delimited text file at path.
// An empty region is audited as Skipped and reported as ErrEmptyRegion.
func (w *Workbook) ExportDelimited(region models.Region, path string) error {
	defer grid.Quiet(w.host)()

	snap, err := grid.Capture(w.host, region)
	if err != nil {
		w.audit.Append("Export CSV", models.OutcomeError, err.Error())
		return err
	}

	d := export.Delimited{Delimiter: w.opts.Delimiter, Terminator: w.opts.Terminator}
	if err := d.WriteFile(snap, path); err != nil {
		if errors.Is(err, export.ErrEmptyRegion) {
			w.audit.Append("Export CSV", models.OutcomeSkipped, "No data to export")
			return err
		}
		w.audit.Append("Export CSV", models.OutcomeError, err.Error())
		return err
	}

	w.audit.Append("Export CSV", models.OutcomeSuccess, path)
	w.opts.Logger.Info("exported delimited text",
		zap.String("sheet", region.Sheet), zap.String("path", path))
	return nil
}

// ExportPaginated renders the sheet to a fixed-layout document at path,
// applying the layout for the duration of the render only.
func (w *Workbook) ExportPaginated(sheet, path string, layout models.Layout) error {
	defer grid.Quiet(w.host)()

	p := export.Paginated{Renderer: w.renderer, Logger: w.opts.Logger}
	if err := p.Export(w.host, sheet, path, layout); err != nil {
		w.audit.Append("Export PDF", models.OutcomeError, err.Error())
		return err
	}
	w.audit.Append("Export PDF", models.OutcomeSuccess, path)
	return nil
}

// Archive moves the live region's data rows into the archive region. The
// mover writes its own audit record.
func (w *Workbook) Archive(live, arch models.Region) (models.ArchiveResult, error) {
	return w.mover.Archive(live, arch)
}

// ApplyValidations rebuilds the lookup region's validation lists and binds
// them to the target region's columns. The builder writes its own audit
// record.
func (w *Workbook) ApplyValidations(lookup, target models.Region) ([]models.Binding, error) {
	lists, err := w.builder.Build(lookup)
	if err != nil {
		w.audit.Append("Apply Validations", models.OutcomeError, err.Error())
		return nil, err
	}
	w.opts.Logger.Debug("built validation lists", zap.Int("count", len(lists)))
	return w.builder.Apply(target, lists)
}

// Save persists workbook mutations (archive, validation bindings) back to
// the file the workbook was opened from.
func (w *Workbook) Save() error {
	if err := w.host.Save(); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

// Close releases the workbook without saving.
func (w *Workbook) Close() error {
	return w.host.Close()
}
