// Package validation derives named dropdown lists from a lookup sheet and
// binds them to same-named columns of a target sheet.
package validation

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/sheetops/sheetops-go/pkg/sheetops/audit"
	"github.com/sheetops/sheetops-go/pkg/sheetops/grid"
	"github.com/sheetops/sheetops-go/pkg/sheetops/models"
	"go.uber.org/zap"
)

// DefaultSuffix is appended to normalized header labels to form list names.
const DefaultSuffix = "_list"

// BindingError indicates a single column's validation could not be applied.
// Failures are isolated per column; later columns are still processed.
type BindingError struct {
	Sheet  string
	Header string
	Err    error
}

func (e *BindingError) Error() string {
	return fmt.Sprintf("binding failed for column %q on sheet %q: %v", e.Header, e.Sheet, e.Err)
}

func (e *BindingError) Unwrap() error {
	return e.Err
}

// Builder builds and applies validation lists. Lists are recomputed from
// the lookup region on every Build call; nothing is cached across runs.
type Builder struct {
	Grid   grid.Host
	Audit  *audit.Log
	Logger *zap.Logger
	// Suffix is appended to normalized headers to form list names.
	// Defaults to DefaultSuffix.
	Suffix string
}

// NewBuilder wires a Builder; logger may be nil.
func NewBuilder(g grid.Host, log *audit.Log, logger *zap.Logger) *Builder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Builder{Grid: g, Audit: log, Logger: logger, Suffix: DefaultSuffix}
}

func (b *Builder) suffix() string {
	if b.Suffix == "" {
		return DefaultSuffix
	}
	return b.Suffix
}

// ListName derives a defined-name from a header label: characters that are
// not letters or digits become underscores, then the suffix is appended.
// Distinct headers can normalize to the same name; registration is last
// write wins.
func ListName(header, suffix string) string {
	var sb strings.Builder
	for _, r := range header {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			sb.WriteRune(r)
		} else {
			sb.WriteRune('_')
		}
	}
	name := sb.String()
	if name == "" {
		name = "_"
	}
	if unicode.IsDigit(rune(name[0])) {
		name = "_" + name
	}
	return name + suffix
}

// Build derives one list per non-empty header cell in the lookup region's
// first row. Each list is the maximal contiguous run of non-empty cells
// directly beneath its header: the run stops at the first empty cell, and
// interior blanks are never skipped. Headers whose run is empty produce no
// list. The result maps list name to list; name collisions silently keep
// the later column.
func (b *Builder) Build(lookup models.Region) (map[string]models.ValidationList, error) {
	snap, err := grid.Capture(b.Grid, lookup)
	if err != nil {
		return nil, err
	}

	lists := make(map[string]models.ValidationList)
	if snap.Empty() {
		return lists, nil
	}

	for j := 0; j < snap.Cols(); j++ {
		header := snap.Text(0, j)
		if header == "" {
			continue
		}

		var values []string
		for i := 1; i < snap.Rows(); i++ {
			v := snap.Text(i, j)
			if v == "" {
				break
			}
			values = append(values, v)
		}
		if len(values) == 0 {
			b.Logger.Debug("lookup header has no values, skipping",
				zap.String("header", header))
			continue
		}

		bounds := models.Bounds{
			R1: lookup.Row + 1,
			C1: lookup.Col + j,
			R2: lookup.Row + len(values),
			C2: lookup.Col + j,
		}
		ref, err := grid.RangeRef(lookup.Sheet, bounds)
		if err != nil {
			return nil, err
		}

		name := ListName(header, b.suffix())
		lists[name] = models.ValidationList{
			Name:     name,
			Header:   header,
			Values:   values,
			RefersTo: ref,
		}
	}
	return lists, nil
}

// Apply walks the target region's header row. Every header column first has
// its existing constraint cleared; when a built list matches the header, a
// defined name is registered and a new dropdown constraint is bound to it.
// Columns without a match stay cleared. Per-column failures are collected
// and do not abort the remaining columns; one audit record summarizes the
// run.
func (b *Builder) Apply(target models.Region, lists map[string]models.ValidationList) ([]models.Binding, error) {
	defer grid.Quiet(b.Grid)()

	snap, err := grid.Capture(b.Grid, target)
	if err != nil {
		return nil, err
	}
	if snap.Empty() {
		b.Audit.Append("Apply Validations", models.OutcomeSkipped, "No target headers")
		return nil, nil
	}

	firstData := target.Row + 1
	lastData := snap.Bounds().R2
	if lastData < firstData {
		lastData = firstData
	}

	var bindings []models.Binding
	var errs []error
	bound := 0
	for j := 0; j < snap.Cols(); j++ {
		header := snap.Text(0, j)
		if header == "" {
			continue
		}
		col := target.Col + j
		binding := models.Binding{Header: header}

		if err := b.bindColumn(target.Sheet, col, firstData, lastData, lists, header, &binding); err != nil {
			bErr := &BindingError{Sheet: target.Sheet, Header: header, Err: err}
			binding.Err = bErr.Error()
			errs = append(errs, bErr)
			b.Logger.Warn("validation binding failed",
				zap.String("header", header), zap.Error(err))
		} else if binding.ListName != "" {
			bound++
		}
		bindings = append(bindings, binding)
	}

	detail := fmt.Sprintf("%d columns bound, %d failed", bound, len(errs))
	outcome := models.OutcomeSuccess
	if len(errs) > 0 {
		outcome = models.OutcomeError
	}
	b.Audit.Append("Apply Validations", outcome, detail)
	return bindings, errors.Join(errs...)
}

func (b *Builder) bindColumn(sheet string, col, firstRow, lastRow int, lists map[string]models.ValidationList, header string, binding *models.Binding) error {
	// Clear first: unmatched columns end up unconstrained regardless.
	if err := b.Grid.SetColumnValidation(sheet, col, firstRow, lastRow, ""); err != nil {
		return err
	}

	list, ok := lists[ListName(header, b.suffix())]
	if !ok {
		return nil
	}
	if err := b.Grid.DefineName(list.Name, list.RefersTo); err != nil {
		return err
	}
	if err := b.Grid.SetColumnValidation(sheet, col, firstRow, lastRow, list.Name); err != nil {
		return err
	}
	binding.ListName = list.Name
	return nil
}
