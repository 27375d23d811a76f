package export

import (
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/sheetops/sheetops-go/pkg/sheetops/grid"
	"github.com/sheetops/sheetops-go/pkg/sheetops/grid/gridtest"
	"github.com/sheetops/sheetops-go/pkg/sheetops/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureLive(t *testing.T, rows [][]interface{}) *grid.Snapshot {
	t.Helper()
	f := gridtest.NewFake("Live")
	f.Seed("Live", 1, 1, rows)
	snap, err := grid.Capture(f, models.Region{Sheet: "Live", Row: 1, Col: 1})
	require.NoError(t, err)
	return snap
}

func TestEscapeField(t *testing.T) {
	tests := []struct {
		name  string
		field string
		want  string
	}{
		{"plain", "hello", "hello"},
		{"leading space stays unquoted", " hello", " hello"},
		{"embedded delimiter", "a,b", `"a,b"`},
		{"embedded quote", `say "hi"`, `"say ""hi"""`},
		{"embedded newline", "two\nlines", "\"two\nlines\""},
		{"embedded carriage return", "two\rlines", "\"two\rlines\""},
		{"quote and delimiter", `He said "hi", ok`, `"He said ""hi"", ok"`},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, escapeField(tt.field, ','))
		})
	}
}

func TestSerialize_EmptyRegion(t *testing.T) {
	f := gridtest.NewFake("Live")
	snap, err := grid.Capture(f, models.Region{Sheet: "Live", Row: 1, Col: 1})
	require.NoError(t, err)

	_, err = DefaultDelimited().Serialize(snap)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrEmptyRegion))
}

func TestSerialize_Golden(t *testing.T) {
	snap := captureLive(t, [][]interface{}{
		{"Name", "Qty", "Note"},
		{"Widget", 3, "plain"},
		{`He said "hi", ok`, 2.5, "multi\nline"},
	})

	out, err := DefaultDelimited().Serialize(snap)
	require.NoError(t, err)

	g := goldie.New(t)
	g.Assert(t, "delimited_basic", []byte(out))
}

func TestSerialize_RoundTrip(t *testing.T) {
	rows := [][]interface{}{
		{"Name", "Qty", "Note"},
		{"Widget", 3, "plain"},
		{`He said "hi", ok`, 2.5, "multi\nline"},
		{"trailing,comma", "with \"quotes\"", ""},
	}
	snap := captureLive(t, rows)

	out, err := DefaultDelimited().Serialize(snap)
	require.NoError(t, err)

	r := csv.NewReader(strings.NewReader(out))
	parsed, err := r.ReadAll()
	require.NoError(t, err)
	require.Len(t, parsed, snap.Rows())

	for i := 0; i < snap.Rows(); i++ {
		assert.Equal(t, snap.Row(i), parsed[i], "row %d", i)
	}
}

func TestSerialize_LFTerminator(t *testing.T) {
	snap := captureLive(t, [][]interface{}{
		{"A", "B"},
		{"1", "2"},
	})

	d := Delimited{Terminator: LF}
	out, err := d.Serialize(snap)
	require.NoError(t, err)
	assert.Equal(t, "A,B\n1,2\n", out)
	assert.NotContains(t, out, "\r")
}

func TestSerialize_QuotingLaw(t *testing.T) {
	// A field containing a delimiter, quote, or line break is always
	// quoted; a field containing none of these is never quoted.
	snap := captureLive(t, [][]interface{}{
		{"plain", "with,comma"},
	})
	out, err := Delimited{Terminator: LF}.Serialize(snap)
	require.NoError(t, err)
	assert.Equal(t, "plain,\"with,comma\"\n", out)
}

func TestWriteFile(t *testing.T) {
	snap := captureLive(t, [][]interface{}{
		{"Name", "Qty"},
		{"A", 1},
	})

	path := filepath.Join(t.TempDir(), "nested", "live.csv")
	require.NoError(t, DefaultDelimited().WriteFile(snap, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Name,Qty\r\nA,1\r\n", string(data))
}

func TestWriteFile_EmptyRegion(t *testing.T) {
	f := gridtest.NewFake("Live")
	snap, err := grid.Capture(f, models.Region{Sheet: "Live", Row: 1, Col: 1})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "live.csv")
	err = DefaultDelimited().WriteFile(snap, path)
	assert.True(t, errors.Is(err, ErrEmptyRegion))

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "no file should be created for an empty region")
}
