package export

import (
	"github.com/sheetops/sheetops-go/pkg/sheetops/grid"
	"github.com/sheetops/sheetops-go/pkg/sheetops/models"
	"go.uber.org/zap"
)

// Paginated exports a sheet to a fixed-layout document through the host's
// rendering engine. Its only responsibility is scoped page setup: the layout
// is applied immediately before the render and rolled back if the render
// fails, so an error never leaves the sheet's layout mutated.
type Paginated struct {
	// Renderer is the rendering engine collaborator.
	Renderer grid.Renderer
	// Logger may be nil.
	Logger *zap.Logger
}

// Export applies the layout to the sheet and requests a render to path.
// On render failure the previous layout is restored and a RenderError is
// returned.
func (p Paginated) Export(host grid.LayoutConfigurer, sheet, path string, layout models.Layout) error {
	logger := p.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	prev, err := host.PageLayout(sheet)
	if err != nil {
		return err
	}
	if err := host.SetPageLayout(sheet, layout); err != nil {
		return err
	}

	if err := p.Renderer.RenderFixed(sheet, path, layout); err != nil {
		if restoreErr := host.SetPageLayout(sheet, prev); restoreErr != nil {
			logger.Warn("failed to restore page layout after render error",
				zap.String("sheet", sheet), zap.Error(restoreErr))
		}
		return &grid.RenderError{Sheet: sheet, Path: path, Err: err}
	}

	logger.Debug("rendered sheet",
		zap.String("sheet", sheet), zap.String("path", path))
	return nil
}
