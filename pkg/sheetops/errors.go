package sheetops

import (
	"github.com/sheetops/sheetops-go/pkg/sheetops/archive"
	"github.com/sheetops/sheetops-go/pkg/sheetops/export"
	"github.com/sheetops/sheetops-go/pkg/sheetops/grid"
	"github.com/sheetops/sheetops-go/pkg/sheetops/validation"
)

// Error kinds re-exported from the operation packages so callers can match
// them without importing each package.
var (
	// ErrEmptyRegion indicates a region has no cells to serialize or
	// archive, as opposed to a successful empty-body export.
	ErrEmptyRegion = export.ErrEmptyRegion
	// ErrSheetNotFound indicates the named sheet does not exist.
	ErrSheetNotFound = grid.ErrSheetNotFound
)

type (
	// RenderError indicates the paginated-document collaborator failed.
	RenderError = grid.RenderError
	// IOError indicates a filesystem operation failed.
	IOError = grid.IOError
	// ArchiveError indicates an archive batch failed mid-copy; the live
	// region is left uncleared.
	ArchiveError = archive.ArchiveError
	// BindingError indicates a single validation binding failed.
	BindingError = validation.BindingError
)
