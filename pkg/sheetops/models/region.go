// Package models defines data structures shared by the sheetops packages.
package models

// Region identifies a sheet area by its top-left anchor cell.
// The anchor row is the header row; data rows follow beneath it.
// The extent of the region is resolved against the sheet's used range.
type Region struct {
	// Sheet is the sheet name.
	Sheet string `json:"sheet"`
	// Row is the header row index (1-based).
	Row int `json:"row"`
	// Col is the first column index (1-based).
	Col int `json:"col"`
}

// Bounds holds the resolved rectangular extent of a region (1-based, inclusive).
type Bounds struct {
	// R1 is the first row.
	R1 int `json:"r1"`
	// C1 is the first column.
	C1 int `json:"c1"`
	// R2 is the last row.
	R2 int `json:"r2"`
	// C2 is the last column.
	C2 int `json:"c2"`
}

// Empty reports whether the bounds contain no cells.
func (b Bounds) Empty() bool {
	return b.R2 < b.R1 || b.C2 < b.C1
}

// Rows returns the number of rows covered, or 0 when empty.
func (b Bounds) Rows() int {
	if b.Empty() {
		return 0
	}
	return b.R2 - b.R1 + 1
}

// Cols returns the number of columns covered, or 0 when empty.
func (b Bounds) Cols() int {
	if b.Empty() {
		return 0
	}
	return b.C2 - b.C1 + 1
}
