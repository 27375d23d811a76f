package grid

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/sheetops/sheetops-go/pkg/sheetops/models"
)

// SofficeRenderer renders a workbook to PDF by delegating to a LibreOffice
// binary in headless mode. The page layout applied to the sheet beforehand
// is carried inside the workbook, so the layout argument is not re-applied
// here.
type SofficeRenderer struct {
	// Bin is the LibreOffice binary. Defaults to "soffice".
	Bin string
	// Workbook is the source workbook to render.
	Workbook *Excel
}

// RenderFixed saves a temporary copy of the workbook and converts it to PDF
// at path.
func (r *SofficeRenderer) RenderFixed(sheet, path string, _ models.Layout) error {
	bin := r.Bin
	if bin == "" {
		bin = "soffice"
	}

	tmpDir, err := os.MkdirTemp("", "sheetops-render-")
	if err != nil {
		return err
	}
	defer os.RemoveAll(tmpDir)

	src := filepath.Join(tmpDir, "render.xlsx")
	if err := r.Workbook.SaveAs(src); err != nil {
		return err
	}

	cmd := exec.Command(bin, "--headless", "--convert-to", "pdf", "--outdir", tmpDir, src)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %v: %s", bin, err, strings.TrimSpace(string(out)))
	}

	produced := filepath.Join(tmpDir, "render.pdf")
	data, err := os.ReadFile(produced)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return &IOError{Op: "create", Path: filepath.Dir(path), Err: err}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return &IOError{Op: "write", Path: path, Err: err}
	}
	return nil
}
