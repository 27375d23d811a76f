package grid

import "github.com/sheetops/sheetops-go/pkg/sheetops/models"

// Snapshot is an immutable rectangular view over a sheet region, captured
// from the used range at a point in time. Row 0 of the snapshot is the
// region's header row.
type Snapshot struct {
	sheet  string
	bounds models.Bounds
	text   [][]string
}

// Capture reads the region's cells from the host grid. The extent is the
// intersection of the region anchor with the sheet's used range; a region
// anchored below or right of all content yields an empty snapshot.
func Capture(r Reader, region models.Region) (*Snapshot, error) {
	used, err := r.UsedBounds(region.Sheet)
	if err != nil {
		return nil, err
	}

	b := models.Bounds{R1: region.Row, C1: region.Col, R2: used.R2, C2: used.C2}
	if used.Empty() || b.Empty() {
		return &Snapshot{sheet: region.Sheet}, nil
	}

	text := make([][]string, b.Rows())
	for i := 0; i < b.Rows(); i++ {
		text[i] = make([]string, b.Cols())
		for j := 0; j < b.Cols(); j++ {
			s, err := r.CellText(region.Sheet, b.R1+i, b.C1+j)
			if err != nil {
				return nil, err
			}
			text[i][j] = s
		}
	}

	return &Snapshot{sheet: region.Sheet, bounds: b, text: text}, nil
}

// Sheet returns the name of the backing sheet.
func (s *Snapshot) Sheet() string {
	return s.sheet
}

// Bounds returns the captured extent (1-based sheet coordinates).
func (s *Snapshot) Bounds() models.Bounds {
	return s.bounds
}

// Empty reports whether the snapshot holds no cells.
func (s *Snapshot) Empty() bool {
	return len(s.text) == 0
}

// Rows returns the number of captured rows, including the header row.
func (s *Snapshot) Rows() int {
	return len(s.text)
}

// Cols returns the number of captured columns.
func (s *Snapshot) Cols() int {
	if len(s.text) == 0 {
		return 0
	}
	return len(s.text[0])
}

// Text returns the displayed text at (row, col), 0-based within the snapshot.
func (s *Snapshot) Text(row, col int) string {
	return s.text[row][col]
}

// Row returns a copy of the displayed text of one snapshot row.
func (s *Snapshot) Row(row int) []string {
	out := make([]string, len(s.text[row]))
	copy(out, s.text[row])
	return out
}

// Header returns a copy of the header row, or nil for an empty snapshot.
func (s *Snapshot) Header() []string {
	if s.Empty() {
		return nil
	}
	return s.Row(0)
}

// DataRows returns the number of rows beneath the header.
func (s *Snapshot) DataRows() int {
	if s.Rows() <= 1 {
		return 0
	}
	return s.Rows() - 1
}
