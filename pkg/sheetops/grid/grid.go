// Package grid is the boundary to the host spreadsheet application. It
// defines the narrow read/write/render interfaces the operation packages
// depend on, an excelize-backed implementation, and immutable snapshots of
// rectangular cell regions.
package grid

import (
	"errors"
	"fmt"

	"github.com/sheetops/sheetops-go/pkg/sheetops/models"
)

// ErrSheetNotFound indicates the named sheet does not exist in the workbook.
var ErrSheetNotFound = errors.New("sheet not found")

// IOError indicates a filesystem collaborator failed.
type IOError struct {
	Op   string // "create", "write", "append"
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// RenderError indicates the paginated-document rendering engine failed.
// The target sheet's page layout is restored before this error is returned.
type RenderError struct {
	Sheet string
	Path  string
	Err   error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render sheet %q to %s: %v", e.Sheet, e.Path, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

// Reader is the host grid read interface.
type Reader interface {
	// UsedBounds returns the sheet's used range: the rectangle from A1 to
	// the last non-empty row and column. Empty bounds mean a blank sheet.
	UsedBounds(sheet string) (models.Bounds, error)
	// CellText returns the cell's displayed text, with the host's number
	// formatting applied.
	CellText(sheet string, row, col int) (string, error)
	// CellValue returns the cell's typed scalar value.
	CellValue(sheet string, row, col int) (models.Value, error)
}

// Writer is the host grid write interface.
type Writer interface {
	// SetCell writes a scalar value to a cell. nil clears the cell.
	SetCell(sheet string, row, col int, value interface{}) error
	// ClearRows clears cell contents within the bounds without shifting
	// surrounding rows.
	ClearRows(sheet string, b models.Bounds) error
	// DefineName registers a workbook-scoped defined name, replacing any
	// existing registration under the same name.
	DefineName(name, refersTo string) error
	// SetColumnValidation replaces the dropdown constraint on the given
	// column rows. An empty listName removes the constraint without
	// installing a replacement.
	SetColumnValidation(sheet string, col, firstRow, lastRow int, listName string) error
}

// Host combines grid read and write access.
type Host interface {
	Reader
	Writer
}

// LayoutConfigurer reads and writes a sheet's page setup.
type LayoutConfigurer interface {
	PageLayout(sheet string) (models.Layout, error)
	SetPageLayout(sheet string, layout models.Layout) error
}

// Renderer delegates paginated fixed-format output to the host's rendering
// engine. The sheet's page layout has already been applied when RenderFixed
// is called; layout is passed through for engines that take it directly.
type Renderer interface {
	RenderFixed(sheet, path string, layout models.Layout) error
}
