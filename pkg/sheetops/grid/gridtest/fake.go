// Package gridtest provides an in-memory grid host for tests, with hooks to
// inject collaborator failures.
package gridtest

import (
	"fmt"

	"github.com/sheetops/sheetops-go/pkg/sheetops/grid"
	"github.com/sheetops/sheetops-go/pkg/sheetops/models"
)

type cellKey struct {
	row, col int
}

// ValidationOp records one SetColumnValidation call.
type ValidationOp struct {
	Sheet    string
	Col      int
	FirstRow int
	LastRow  int
	ListName string // empty means the constraint was cleared
}

// Render records one RenderFixed call.
type Render struct {
	Sheet  string
	Path   string
	Layout models.Layout
}

// Fake is an in-memory grid.Host, grid.LayoutConfigurer, grid.Renderer and
// grid.UpdateSuspender.
type Fake struct {
	sheets  map[string]map[cellKey]models.Value
	layouts map[string]models.Layout

	// Names holds defined names registered via DefineName.
	Names map[string]string
	// ValidationOps holds every SetColumnValidation call in order.
	ValidationOps []ValidationOp
	// Renders holds every RenderFixed call in order.
	Renders []Render

	// FailSetCellAfter makes SetCell fail once this many calls have
	// succeeded. Zero disables the hook.
	FailSetCellAfter int
	setCellCalls     int
	// FailValidationCols makes SetColumnValidation fail for these columns.
	FailValidationCols map[int]bool
	// RenderErr makes RenderFixed fail.
	RenderErr error

	quietDepth  int
	quietEnters int
	quietExits  int
}

// NewFake creates a fake host with the named (blank) sheets.
func NewFake(sheets ...string) *Fake {
	f := &Fake{
		sheets:             make(map[string]map[cellKey]models.Value),
		layouts:            make(map[string]models.Layout),
		Names:              make(map[string]string),
		FailValidationCols: make(map[int]bool),
	}
	for _, s := range sheets {
		f.sheets[s] = make(map[cellKey]models.Value)
	}
	return f
}

// Seed writes rows of values starting at (row, col), bypassing the
// FailSetCellAfter hook. Strings, numbers and bools get their natural
// kinds; nil leaves the cell empty.
func (f *Fake) Seed(sheet string, row, col int, rows [][]interface{}) {
	for i, r := range rows {
		for j, v := range r {
			if err := f.setRaw(sheet, row+i, col+j, v); err != nil {
				panic(err)
			}
		}
	}
}

func (f *Fake) cells(sheet string) (map[cellKey]models.Value, error) {
	c, ok := f.sheets[sheet]
	if !ok {
		return nil, fmt.Errorf("%w: %q", grid.ErrSheetNotFound, sheet)
	}
	return c, nil
}

// UsedBounds scans the sheet for its last non-empty row and column.
func (f *Fake) UsedBounds(sheet string) (models.Bounds, error) {
	cells, err := f.cells(sheet)
	if err != nil {
		return models.Bounds{}, err
	}
	lastRow, lastCol := 0, 0
	for k, v := range cells {
		if v.Kind == models.KindEmpty {
			continue
		}
		if k.row > lastRow {
			lastRow = k.row
		}
		if k.col > lastCol {
			lastCol = k.col
		}
	}
	return models.Bounds{R1: 1, C1: 1, R2: lastRow, C2: lastCol}, nil
}

// CellText returns the cell's display text.
func (f *Fake) CellText(sheet string, row, col int) (string, error) {
	v, err := f.CellValue(sheet, row, col)
	if err != nil {
		return "", err
	}
	return v.Text, nil
}

// CellValue returns the cell's typed value.
func (f *Fake) CellValue(sheet string, row, col int) (models.Value, error) {
	cells, err := f.cells(sheet)
	if err != nil {
		return models.Value{}, err
	}
	v, ok := cells[cellKey{row, col}]
	if !ok {
		return models.Value{Kind: models.KindEmpty}, nil
	}
	return v, nil
}

// SetCell writes a value, honoring the FailSetCellAfter hook.
func (f *Fake) SetCell(sheet string, row, col int, value interface{}) error {
	if f.FailSetCellAfter > 0 && f.setCellCalls >= f.FailSetCellAfter {
		return fmt.Errorf("injected write failure at (%d,%d)", row, col)
	}
	f.setCellCalls++
	return f.setRaw(sheet, row, col, value)
}

func (f *Fake) setRaw(sheet string, row, col int, value interface{}) error {
	cells, err := f.cells(sheet)
	if err != nil {
		return err
	}

	key := cellKey{row, col}
	switch v := value.(type) {
	case nil:
		delete(cells, key)
	case string:
		if v == "" {
			delete(cells, key)
		} else {
			cells[key] = models.Value{Kind: models.KindText, Text: v}
		}
	case bool:
		text := "FALSE"
		if v {
			text = "TRUE"
		}
		cells[key] = models.Value{Kind: models.KindBool, Text: text, Bool: v}
	case int:
		cells[key] = models.Value{Kind: models.KindNumber, Text: fmt.Sprintf("%d", v), Number: float64(v)}
	case float64:
		cells[key] = models.Value{Kind: models.KindNumber, Text: fmt.Sprintf("%g", v), Number: v}
	default:
		cells[key] = models.Value{Kind: models.KindText, Text: fmt.Sprintf("%v", v)}
	}
	return nil
}

// ClearRows blanks every cell within the bounds.
func (f *Fake) ClearRows(sheet string, b models.Bounds) error {
	cells, err := f.cells(sheet)
	if err != nil {
		return err
	}
	for row := b.R1; row <= b.R2; row++ {
		for col := b.C1; col <= b.C2; col++ {
			delete(cells, cellKey{row, col})
		}
	}
	return nil
}

// DefineName registers a defined name, last write wins.
func (f *Fake) DefineName(name, refersTo string) error {
	f.Names[name] = refersTo
	return nil
}

// SetColumnValidation records the call, honoring FailValidationCols.
func (f *Fake) SetColumnValidation(sheet string, col, firstRow, lastRow int, listName string) error {
	if _, err := f.cells(sheet); err != nil {
		return err
	}
	if f.FailValidationCols[col] {
		return fmt.Errorf("injected validation failure on column %d", col)
	}
	f.ValidationOps = append(f.ValidationOps, ValidationOp{
		Sheet:    sheet,
		Col:      col,
		FirstRow: firstRow,
		LastRow:  lastRow,
		ListName: listName,
	})
	return nil
}

// PageLayout returns the sheet's layout.
func (f *Fake) PageLayout(sheet string) (models.Layout, error) {
	if _, err := f.cells(sheet); err != nil {
		return models.Layout{}, err
	}
	return f.layouts[sheet], nil
}

// SetPageLayout stores the sheet's layout.
func (f *Fake) SetPageLayout(sheet string, layout models.Layout) error {
	if _, err := f.cells(sheet); err != nil {
		return err
	}
	f.layouts[sheet] = layout
	return nil
}

// RenderFixed records the render request, honoring RenderErr.
func (f *Fake) RenderFixed(sheet, path string, layout models.Layout) error {
	if f.RenderErr != nil {
		return f.RenderErr
	}
	f.Renders = append(f.Renders, Render{Sheet: sheet, Path: path, Layout: layout})
	return nil
}

// SuspendUpdates tracks quiet-mode nesting.
func (f *Fake) SuspendUpdates() (resume func()) {
	f.quietDepth++
	f.quietEnters++
	return func() {
		f.quietDepth--
		f.quietExits++
	}
}

// QuietBalanced reports whether every quiet scope was released.
func (f *Fake) QuietBalanced() bool {
	return f.quietDepth == 0 && f.quietEnters == f.quietExits
}

// QuietEntered reports how many quiet scopes were acquired.
func (f *Fake) QuietEntered() int {
	return f.quietEnters
}

// TextRow returns the display text of cells (row, col..col+n-1).
func (f *Fake) TextRow(sheet string, row, col, n int) []string {
	out := make([]string, n)
	for j := 0; j < n; j++ {
		s, err := f.CellText(sheet, row, col+j)
		if err != nil {
			panic(err)
		}
		out[j] = s
	}
	return out
}
