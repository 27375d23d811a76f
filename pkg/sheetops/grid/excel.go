package grid

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sheetops/sheetops-go/pkg/sheetops/models"
	"github.com/xuri/excelize/v2"
)

// Excel is a Host backed by an excelize workbook.
type Excel struct {
	f    *excelize.File
	path string
}

// OpenWorkbook opens an xlsx workbook from disk.
func OpenWorkbook(path string) (*Excel, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	return &Excel{f: f, path: path}, nil
}

// NewWorkbook wraps an already-open excelize file.
func NewWorkbook(f *excelize.File) *Excel {
	return &Excel{f: f}
}

// File exposes the underlying excelize file.
func (e *Excel) File() *excelize.File {
	return e.f
}

// Path returns the path the workbook was opened from, if any.
func (e *Excel) Path() string {
	return e.path
}

// Save writes the workbook back to the path it was opened from.
func (e *Excel) Save() error {
	return e.f.Save()
}

// SaveAs writes the workbook to a new path.
func (e *Excel) SaveAs(path string) error {
	return e.f.SaveAs(path)
}

// Close releases the underlying file.
func (e *Excel) Close() error {
	return e.f.Close()
}

func (e *Excel) checkSheet(sheet string) error {
	idx, err := e.f.GetSheetIndex(sheet)
	if err != nil {
		return err
	}
	if idx < 0 {
		return fmt.Errorf("%w: %q", ErrSheetNotFound, sheet)
	}
	return nil
}

// UsedBounds scans the sheet for its last non-empty row and column.
func (e *Excel) UsedBounds(sheet string) (models.Bounds, error) {
	if err := e.checkSheet(sheet); err != nil {
		return models.Bounds{}, err
	}
	rows, err := e.f.GetRows(sheet)
	if err != nil {
		return models.Bounds{}, err
	}

	lastRow, lastCol := 0, 0
	for rowIdx, row := range rows {
		for colIdx, cell := range row {
			if cell != "" {
				if rowIdx+1 > lastRow {
					lastRow = rowIdx + 1
				}
				if colIdx+1 > lastCol {
					lastCol = colIdx + 1
				}
			}
		}
	}
	if lastRow == 0 {
		return models.Bounds{R1: 1, C1: 1, R2: 0, C2: 0}, nil
	}
	return models.Bounds{R1: 1, C1: 1, R2: lastRow, C2: lastCol}, nil
}

// CellText returns the formatted display text of a cell.
func (e *Excel) CellText(sheet string, row, col int) (string, error) {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return "", err
	}
	return e.f.GetCellValue(sheet, cell)
}

// CellValue returns the typed scalar value of a cell. Booleans are detected
// from the cell type; everything else that parses as a number is a number.
func (e *Excel) CellValue(sheet string, row, col int) (models.Value, error) {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return models.Value{}, err
	}
	text, err := e.f.GetCellValue(sheet, cell)
	if err != nil {
		return models.Value{}, err
	}
	if text == "" {
		return models.Value{Kind: models.KindEmpty}, nil
	}

	typ, err := e.f.GetCellType(sheet, cell)
	if err != nil {
		return models.Value{}, err
	}
	if typ == excelize.CellTypeBool {
		return models.Value{Kind: models.KindBool, Text: text, Bool: text == "TRUE"}, nil
	}
	if n, err := strconv.ParseFloat(text, 64); err == nil {
		return models.Value{Kind: models.KindNumber, Text: text, Number: n}, nil
	}
	return models.Value{Kind: models.KindText, Text: text}, nil
}

// SetCell writes a scalar value to a cell. nil clears the cell.
func (e *Excel) SetCell(sheet string, row, col int, value interface{}) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	return e.f.SetCellValue(sheet, cell, value)
}

// ClearRows clears cell contents within the bounds. Rows are not removed or
// shifted; only values are blanked.
func (e *Excel) ClearRows(sheet string, b models.Bounds) error {
	for row := b.R1; row <= b.R2; row++ {
		for col := b.C1; col <= b.C2; col++ {
			if err := e.SetCell(sheet, row, col, nil); err != nil {
				return err
			}
		}
	}
	return nil
}

// DefineName registers a workbook-scoped defined name. An existing name is
// dropped first so re-registration behaves as last write wins.
func (e *Excel) DefineName(name, refersTo string) error {
	dn := excelize.DefinedName{Name: name, RefersTo: refersTo, Scope: "Workbook"}
	// Ignore the delete error: the name may not exist yet.
	_ = e.f.DeleteDefinedName(&dn)
	return e.f.SetDefinedName(&dn)
}

// SetColumnValidation replaces the dropdown constraint on the given column
// rows. An empty listName removes the constraint without a replacement.
func (e *Excel) SetColumnValidation(sheet string, col, firstRow, lastRow int, listName string) error {
	first, err := excelize.CoordinatesToCellName(col, firstRow)
	if err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(col, lastRow)
	if err != nil {
		return err
	}
	sqref := first + ":" + last

	if err := e.f.DeleteDataValidation(sheet, sqref); err != nil {
		return err
	}
	if listName == "" {
		return nil
	}

	dv := excelize.NewDataValidation(true)
	dv.Sqref = sqref
	dv.SetSqrefDropList(listName)
	return e.f.AddDataValidation(sheet, dv)
}

// PageLayout reads the sheet's current page setup, normalized so that a
// later SetPageLayout with the returned value restores the sheet exactly.
// Unset host values map to portrait, Letter paper, and no fit.
func (e *Excel) PageLayout(sheet string) (models.Layout, error) {
	opts, err := e.f.GetPageLayout(sheet)
	if err != nil {
		return models.Layout{}, err
	}
	layout := models.Layout{Orientation: models.Portrait, PaperSize: models.PaperLetter}
	if opts.Orientation != nil && *opts.Orientation != "" {
		layout.Orientation = models.Orientation(*opts.Orientation)
	}
	if opts.Size != nil && *opts.Size != 0 {
		layout.PaperSize = *opts.Size
	}
	if opts.FitToWidth != nil {
		layout.FitToWidth = *opts.FitToWidth
	}
	if opts.FitToHeight != nil {
		layout.FitToHeight = *opts.FitToHeight
	}
	return layout, nil
}

// SetPageLayout applies page setup to the sheet. Every layout field is
// written explicitly so that applying a previously read layout is a true
// restore; zero-valued fields fall back to the host defaults.
func (e *Excel) SetPageLayout(sheet string, layout models.Layout) error {
	orientation := string(layout.Orientation)
	if orientation == "" {
		orientation = string(models.Portrait)
	}
	size := layout.PaperSize
	if size == 0 {
		size = models.PaperLetter
	}
	w := layout.FitToWidth
	h := layout.FitToHeight
	return e.f.SetPageLayout(sheet, &excelize.PageLayoutOptions{
		Orientation: &orientation,
		Size:        &size,
		FitToWidth:  &w,
		FitToHeight: &h,
	})
}

// RangeRef builds an absolute range reference for bounds on a sheet, e.g.
// "Lookup!$A$2:$A$4". Sheet names containing spaces are quoted.
func RangeRef(sheet string, b models.Bounds) (string, error) {
	first, err := excelize.CoordinatesToCellName(b.C1, b.R1, true)
	if err != nil {
		return "", err
	}
	last, err := excelize.CoordinatesToCellName(b.C2, b.R2, true)
	if err != nil {
		return "", err
	}
	if strings.ContainsAny(sheet, " '") {
		sheet = "'" + strings.ReplaceAll(sheet, "'", "''") + "'"
	}
	return fmt.Sprintf("%s!%s:%s", sheet, first, last), nil
}
