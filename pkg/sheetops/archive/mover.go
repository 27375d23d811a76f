// Package archive moves rows from a live region into an append-only archive
// region, stamping each batch with one timestamp and reporting the outcome
// through the audit log.
package archive

import (
	"fmt"

	"github.com/sheetops/sheetops-go/pkg/sheetops/audit"
	"github.com/sheetops/sheetops-go/pkg/sheetops/clock"
	"github.com/sheetops/sheetops-go/pkg/sheetops/grid"
	"github.com/sheetops/sheetops-go/pkg/sheetops/models"
	"go.uber.org/zap"
)

// DateColumn is the header label of the timestamp column prepended to
// archived rows.
const DateColumn = "Date Archived"

// ArchiveError indicates the batch copy failed partway through. Copied
// reports how many rows reached the archive; the live region is left
// uncleared so no row is lost.
type ArchiveError struct {
	Copied int
	Total  int
	Err    error
}

func (e *ArchiveError) Error() string {
	return fmt.Sprintf("archive copy failed after %d of %d rows (source left intact): %v",
		e.Copied, e.Total, e.Err)
}

func (e *ArchiveError) Unwrap() error {
	return e.Err
}

// Mover archives live rows. The host grid is a single shared resource; the
// caller must not run two operations on the same workbook concurrently.
type Mover struct {
	Grid   grid.Host
	Clock  clock.Clock
	Audit  *audit.Log
	Logger *zap.Logger
}

// NewMover wires a Mover; clock and logger may be nil.
func NewMover(g grid.Host, c clock.Clock, log *audit.Log, logger *zap.Logger) *Mover {
	if c == nil {
		c = clock.System{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Mover{Grid: g, Clock: c, Audit: log, Logger: logger}
}

// Archive moves every data row of live beneath its header into the archive
// region, in original order, each prefixed with the batch timestamp. Source
// data rows are cleared only after the whole batch has been copied; a
// mid-batch failure leaves the live region untouched and returns an
// ArchiveError. Exactly one audit record is emitted per run.
func (m *Mover) Archive(live, arch models.Region) (models.ArchiveResult, error) {
	defer grid.Quiet(m.Grid)()

	snap, err := grid.Capture(m.Grid, live)
	if err != nil {
		return m.fail(0, 0, err)
	}
	if snap.DataRows() == 0 {
		result := models.ArchiveResult{
			Outcome: models.OutcomeSkipped,
			Message: "No data to archive",
		}
		m.Audit.Append("Archive", models.OutcomeSkipped, result.Message)
		m.Logger.Info("archive skipped", zap.String("sheet", live.Sheet))
		return result, nil
	}

	ts := m.Clock.Now()
	total := snap.DataRows()
	cols := snap.Cols()

	insertRow, err := m.prepareArchive(arch, snap.Header())
	if err != nil {
		return m.fail(0, total, err)
	}

	copied := 0
	for i := 0; i < total; i++ {
		liveRow := snap.Bounds().R1 + 1 + i
		destRow := insertRow + i
		if err := m.Grid.SetCell(arch.Sheet, destRow, arch.Col, ts.Format(audit.TimeFormat)); err != nil {
			return m.fail(copied, total, err)
		}
		for j := 0; j < cols; j++ {
			v, err := m.Grid.CellValue(live.Sheet, liveRow, live.Col+j)
			if err != nil {
				return m.fail(copied, total, err)
			}
			if v.Kind == models.KindEmpty {
				continue
			}
			if err := m.Grid.SetCell(arch.Sheet, destRow, arch.Col+1+j, v.Native()); err != nil {
				return m.fail(copied, total, err)
			}
		}
		copied++
	}

	dataBounds := snap.Bounds()
	dataBounds.R1++ // keep the header
	if err := m.Grid.ClearRows(live.Sheet, dataBounds); err != nil {
		return m.fail(copied, total, err)
	}

	result := models.ArchiveResult{
		Outcome:   models.OutcomeSuccess,
		RowsMoved: total,
		Timestamp: ts,
		Message:   fmt.Sprintf("Archived %d rows", total),
	}
	m.Audit.Append("Archive", models.OutcomeSuccess, result.Message)
	m.Logger.Info("archive complete",
		zap.String("live", live.Sheet),
		zap.String("archive", arch.Sheet),
		zap.Int("rows", total))
	return result, nil
}

// prepareArchive writes the archive header on first use and returns the
// strict-append insertion row: the first empty row at or after the region's
// last used row. Gaps above it are never reused.
func (m *Mover) prepareArchive(arch models.Region, liveHeader []string) (int, error) {
	used, err := m.Grid.UsedBounds(arch.Sheet)
	if err != nil {
		return 0, err
	}

	headerCell, err := m.Grid.CellText(arch.Sheet, arch.Row, arch.Col)
	if err != nil {
		return 0, err
	}
	if headerCell == "" {
		header := append([]string{DateColumn}, liveHeader...)
		for j, label := range header {
			if err := m.Grid.SetCell(arch.Sheet, arch.Row, arch.Col+j, label); err != nil {
				return 0, err
			}
		}
		used.R2 = arch.Row
	}

	insert := used.R2 + 1
	if insert <= arch.Row {
		insert = arch.Row + 1
	}
	return insert, nil
}

func (m *Mover) fail(copied, total int, err error) (models.ArchiveResult, error) {
	archErr := &ArchiveError{Copied: copied, Total: total, Err: err}
	result := models.ArchiveResult{
		Outcome: models.OutcomeError,
		Message: archErr.Error(),
	}
	m.Audit.Append("Archive", models.OutcomeError, archErr.Error())
	m.Logger.Error("archive failed", zap.Int("copied", copied), zap.Error(err))
	return result, archErr
}
