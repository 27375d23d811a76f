package models

// Orientation is a page orientation for paginated export.
type Orientation string

const (
	// Portrait renders pages upright.
	Portrait Orientation = "portrait"
	// Landscape renders pages sideways.
	Landscape Orientation = "landscape"
)

// Common paper size codes (ECMA-376 paper size enumeration).
const (
	// PaperLetter is US Letter (8.5 x 11 in).
	PaperLetter = 1
	// PaperA4 is ISO A4 (210 x 297 mm).
	PaperA4 = 9
)

// Layout holds page setup options applied to a sheet before paginated export.
// Zero-valued fields fall back to the host defaults (portrait, Letter paper,
// no fit).
type Layout struct {
	// Orientation is the page orientation.
	Orientation Orientation `json:"orientation,omitempty"`
	// PaperSize is the paper size code (see PaperLetter, PaperA4).
	PaperSize int `json:"paper_size,omitempty"`
	// FitToWidth scales the sheet to span this many pages wide (0 = no fit).
	FitToWidth int `json:"fit_to_width,omitempty"`
	// FitToHeight scales the sheet to span this many pages tall (0 = no fit).
	FitToHeight int `json:"fit_to_height,omitempty"`
}

// DefaultLayout returns the layout used when a job does not specify one:
// landscape A4 scaled to one page wide.
func DefaultLayout() Layout {
	return Layout{
		Orientation: Landscape,
		PaperSize:   PaperA4,
		FitToWidth:  1,
	}
}
