// Package export serializes grid snapshots to delimited text and delegates
// paginated fixed-format output to the host's rendering engine.
package export

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/sheetops/sheetops-go/pkg/sheetops/grid"
)

// ErrEmptyRegion indicates a snapshot has no cells to serialize. It is
// distinct from a successful empty-body export: the caller is told nothing
// was produced rather than handed a zero-length result.
var ErrEmptyRegion = errors.New("empty region: nothing to export")

// Line terminators for serialized output.
const (
	// CRLF is the Windows-style terminator, the default for CSV artifacts.
	CRLF = "\r\n"
	// LF is the Unix-style terminator.
	LF = "\n"
)

// Delimited serializes snapshots to delimited text. Fields use the cells'
// displayed text; serialization is total and deterministic for any field
// value.
type Delimited struct {
	// Delimiter separates fields. Defaults to ','.
	Delimiter rune
	// Terminator joins rows. Defaults to CRLF.
	Terminator string
}

// DefaultDelimited returns the comma-separated, CRLF-terminated serializer.
func DefaultDelimited() Delimited {
	return Delimited{Delimiter: ',', Terminator: CRLF}
}

func (d Delimited) delimiter() rune {
	if d.Delimiter == 0 {
		return ','
	}
	return d.Delimiter
}

func (d Delimited) terminator() string {
	if d.Terminator == "" {
		return CRLF
	}
	return d.Terminator
}

// Serialize renders the snapshot top to bottom, left to right. An empty
// snapshot returns ErrEmptyRegion.
func (d Delimited) Serialize(snap *grid.Snapshot) (string, error) {
	if snap.Empty() {
		return "", ErrEmptyRegion
	}

	delim := d.delimiter()
	var sb strings.Builder
	for i := 0; i < snap.Rows(); i++ {
		for j := 0; j < snap.Cols(); j++ {
			if j > 0 {
				sb.WriteRune(delim)
			}
			sb.WriteString(escapeField(snap.Text(i, j), delim))
		}
		sb.WriteString(d.terminator())
	}
	return sb.String(), nil
}

// WriteFile serializes the snapshot to path, creating the parent directory
// if missing.
func (d Delimited) WriteFile(snap *grid.Snapshot, path string) error {
	text, err := d.Serialize(snap)
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return &grid.IOError{Op: "create", Path: dir, Err: err}
	}
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		return &grid.IOError{Op: "write", Path: path, Err: err}
	}
	return nil
}

// escapeField applies the quoting rule: a field containing the delimiter,
// a quote, or a line break is wrapped in quotes with embedded quotes
// doubled; any other field is emitted verbatim.
func escapeField(field string, delim rune) string {
	if !strings.ContainsAny(field, string(delim)+"\"\r\n") {
		return field
	}
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}
