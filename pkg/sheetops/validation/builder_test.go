package validation

import (
	"errors"
	"testing"

	"github.com/sheetops/sheetops-go/pkg/sheetops/audit"
	"github.com/sheetops/sheetops-go/pkg/sheetops/clock"
	"github.com/sheetops/sheetops-go/pkg/sheetops/grid/gridtest"
	"github.com/sheetops/sheetops-go/pkg/sheetops/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	lookupRegion = models.Region{Sheet: "Lookup", Row: 1, Col: 1}
	targetRegion = models.Region{Sheet: "Form", Row: 1, Col: 1}
)

func newBuilder(f *gridtest.Fake) (*Builder, *audit.Log) {
	log := audit.New(clock.System{}, nil, nil)
	return NewBuilder(f, log, nil), log
}

func TestListName(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{"Status", "Status_list"},
		{"Assigned To", "Assigned_To_list"},
		{"Status One", "Status_One_list"},
		{"Status_One", "Status_One_list"},
		{"2nd Level", "_2nd_Level_list"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ListName(tt.header, DefaultSuffix), "header %q", tt.header)
	}
}

func TestBuild_StopsAtFirstBlank(t *testing.T) {
	f := gridtest.NewFake("Lookup")
	f.Seed("Lookup", 1, 1, [][]interface{}{
		{"Status"},
		{"Open"},
		{"Closed"},
		{nil},
		{"Pending"},
	})
	b, _ := newBuilder(f)

	lists, err := b.Build(lookupRegion)
	require.NoError(t, err)
	require.Len(t, lists, 1)

	list := lists["Status_list"]
	assert.Equal(t, "Status", list.Header)
	// The run stops at the first blank: "Pending" is not picked up.
	assert.Equal(t, []string{"Open", "Closed"}, list.Values)
	assert.Equal(t, "Lookup!$A$2:$A$3", list.RefersTo)
}

func TestBuild_MultipleColumns(t *testing.T) {
	f := gridtest.NewFake("Lookup")
	f.Seed("Lookup", 1, 1, [][]interface{}{
		{"Status", "Priority"},
		{"Open", "High"},
		{"Closed", "Low"},
		{nil, "None"},
	})
	b, _ := newBuilder(f)

	lists, err := b.Build(lookupRegion)
	require.NoError(t, err)
	require.Len(t, lists, 2)
	assert.Equal(t, []string{"Open", "Closed"}, lists["Status_list"].Values)
	assert.Equal(t, []string{"High", "Low", "None"}, lists["Priority_list"].Values)
	assert.Equal(t, "Lookup!$B$2:$B$4", lists["Priority_list"].RefersTo)
}

func TestBuild_NameCollisionLastWriteWins(t *testing.T) {
	// "Status One" and "Status_One" normalize to the same list name; the
	// later column silently replaces the earlier registration.
	f := gridtest.NewFake("Lookup")
	f.Seed("Lookup", 1, 1, [][]interface{}{
		{"Status One", "Status_One"},
		{"First", "Second"},
	})
	b, _ := newBuilder(f)

	lists, err := b.Build(lookupRegion)
	require.NoError(t, err)
	require.Len(t, lists, 1)
	assert.Equal(t, "Status_One", lists["Status_One_list"].Header)
	assert.Equal(t, []string{"Second"}, lists["Status_One_list"].Values)
}

func TestBuild_EmptyLookup(t *testing.T) {
	f := gridtest.NewFake("Lookup")
	b, _ := newBuilder(f)

	lists, err := b.Build(lookupRegion)
	require.NoError(t, err)
	assert.Empty(t, lists)
}

func TestBuild_HeaderWithoutValuesIsSkipped(t *testing.T) {
	f := gridtest.NewFake("Lookup")
	f.Seed("Lookup", 1, 1, [][]interface{}{
		{"Status", "Orphan"},
		{"Open", nil},
	})
	b, _ := newBuilder(f)

	lists, err := b.Build(lookupRegion)
	require.NoError(t, err)
	require.Len(t, lists, 1)
	assert.Contains(t, lists, "Status_list")
}

func TestBuild_RecomputesEveryCall(t *testing.T) {
	f := gridtest.NewFake("Lookup")
	f.Seed("Lookup", 1, 1, [][]interface{}{
		{"Status"},
		{"Open"},
	})
	b, _ := newBuilder(f)

	first, err := b.Build(lookupRegion)
	require.NoError(t, err)
	assert.Equal(t, []string{"Open"}, first["Status_list"].Values)

	// Grow the run; the next build must see the new value, not a cache.
	f.Seed("Lookup", 3, 1, [][]interface{}{{"Closed"}})
	second, err := b.Build(lookupRegion)
	require.NoError(t, err)
	assert.Equal(t, []string{"Open", "Closed"}, second["Status_list"].Values)
}

func TestApply_BindsMatchingColumns(t *testing.T) {
	f := gridtest.NewFake("Lookup", "Form")
	f.Seed("Lookup", 1, 1, [][]interface{}{
		{"Status"},
		{"Open"},
		{"Closed"},
	})
	f.Seed("Form", 1, 1, [][]interface{}{
		{"Name", "Status"},
		{"ticket-1", "Open"},
		{"ticket-2", "Open"},
	})
	b, log := newBuilder(f)

	lists, err := b.Build(lookupRegion)
	require.NoError(t, err)
	bindings, err := b.Apply(targetRegion, lists)
	require.NoError(t, err)

	require.Len(t, bindings, 2)
	assert.Equal(t, "Name", bindings[0].Header)
	assert.Empty(t, bindings[0].ListName)
	assert.Equal(t, "Status", bindings[1].Header)
	assert.Equal(t, "Status_list", bindings[1].ListName)

	// The defined name is registered against the lookup run.
	assert.Equal(t, "Lookup!$A$2:$A$3", f.Names["Status_list"])

	// Column 1 (Name): cleared only. Column 2 (Status): cleared, then
	// bound over rows 2..3.
	require.Len(t, f.ValidationOps, 3)
	assert.Equal(t, gridtest.ValidationOp{Sheet: "Form", Col: 1, FirstRow: 2, LastRow: 3}, f.ValidationOps[0])
	assert.Equal(t, gridtest.ValidationOp{Sheet: "Form", Col: 2, FirstRow: 2, LastRow: 3}, f.ValidationOps[1])
	assert.Equal(t, gridtest.ValidationOp{Sheet: "Form", Col: 2, FirstRow: 2, LastRow: 3, ListName: "Status_list"}, f.ValidationOps[2])

	records := log.All()
	require.Len(t, records, 1)
	assert.Equal(t, "Apply Validations", records[0].Action)
	assert.Equal(t, models.OutcomeSuccess, records[0].Outcome)
	assert.Equal(t, "1 columns bound, 0 failed", records[0].Detail)
}

func TestApply_UnmatchedColumnIsClearedNotRebound(t *testing.T) {
	// Clear-then-maybe-rebind policy: a target header with no built list
	// still has its existing constraint removed.
	f := gridtest.NewFake("Form")
	f.Seed("Form", 1, 1, [][]interface{}{
		{"Unmatched"},
		{"x"},
	})
	b, _ := newBuilder(f)

	bindings, err := b.Apply(targetRegion, map[string]models.ValidationList{})
	require.NoError(t, err)
	require.Len(t, bindings, 1)
	assert.Empty(t, bindings[0].ListName)

	require.Len(t, f.ValidationOps, 1)
	assert.Equal(t, "", f.ValidationOps[0].ListName)
}

func TestApply_ColumnFailureIsIsolated(t *testing.T) {
	f := gridtest.NewFake("Lookup", "Form")
	f.Seed("Lookup", 1, 1, [][]interface{}{
		{"Status", "Priority"},
		{"Open", "High"},
	})
	f.Seed("Form", 1, 1, [][]interface{}{
		{"Status", "Priority"},
		{"Open", "High"},
	})
	f.FailValidationCols[1] = true
	b, log := newBuilder(f)

	lists, err := b.Build(lookupRegion)
	require.NoError(t, err)
	bindings, err := b.Apply(targetRegion, lists)
	require.Error(t, err)

	var bindErr *BindingError
	require.True(t, errors.As(err, &bindErr))
	assert.Equal(t, "Status", bindErr.Header)

	// The second column is still processed and bound.
	require.Len(t, bindings, 2)
	assert.NotEmpty(t, bindings[0].Err)
	assert.Equal(t, "Priority_list", bindings[1].ListName)

	records := log.All()
	require.Len(t, records, 1)
	assert.Equal(t, models.OutcomeError, records[0].Outcome)
	assert.Equal(t, "1 columns bound, 1 failed", records[0].Detail)
}

func TestApply_QuietScopeReleased(t *testing.T) {
	f := gridtest.NewFake("Form")
	f.Seed("Form", 1, 1, [][]interface{}{{"Status"}})
	f.FailValidationCols[1] = true
	b, _ := newBuilder(f)

	_, err := b.Apply(targetRegion, map[string]models.ValidationList{})
	require.Error(t, err)
	assert.True(t, f.QuietBalanced())
}
