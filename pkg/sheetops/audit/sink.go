package audit

import (
	"os"
	"path/filepath"

	"github.com/sheetops/sheetops-go/pkg/sheetops/grid"
)

// FileSink appends audit lines to a plain-text file, creating the parent
// directory on first write.
type FileSink struct {
	path string
}

// NewFileSink creates a sink writing to path.
func NewFileSink(path string) *FileSink {
	return &FileSink{path: path}
}

// Path returns the log file path.
func (s *FileSink) Path() string {
	return s.path
}

// WriteLine appends one line to the log file.
func (s *FileSink) WriteLine(line string) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return &grid.IOError{Op: "create", Path: dir, Err: err}
	}
	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return &grid.IOError{Op: "append", Path: s.path, Err: err}
	}
	defer f.Close()

	if _, err := f.WriteString(line + "\n"); err != nil {
		return &grid.IOError{Op: "append", Path: s.path, Err: err}
	}
	return nil
}
