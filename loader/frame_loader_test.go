package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func writeWorkbook(t *testing.T, dir string, sheets map[string][][]interface{}, order []string) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for i, name := range order {
		if i == 0 {
			require.NoError(t, f.SetSheetName("Sheet1", name))
		} else {
			_, err := f.NewSheet(name)
			require.NoError(t, err)
		}
		for r, row := range sheets[name] {
			cell, err := excelize.CoordinatesToCellName(1, r+1)
			require.NoError(t, err)
			values := row
			require.NoError(t, f.SetSheetRow(name, cell, &values))
		}
	}

	path := filepath.Join(dir, "book.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestLoadCSV(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "people.csv", "id,name,city\n1,Alice,Oslo\n2,,Bergen\n\n3,\"Smith, J\",\n")

	frame, err := LoadCSV(path, 0)
	require.NoError(t, err)

	assert.Equal(t, []string{"id", "name", "city"}, frame.Columns)
	require.Equal(t, 3, frame.Len(), "blank lines are skipped")
	assert.Equal(t, []any{"1", "Alice", "Oslo"}, frame.Rows[0])
	assert.Equal(t, []any{"2", nil, "Bergen"}, frame.Rows[1], "empty cells become NULL")
	assert.Equal(t, []any{"3", "Smith, J", nil}, frame.Rows[2])
}

func TestLoadCSV_HeaderCleanup(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "messy.csv", "\ufeffid,,ID,extra\n1,2,3,4,5\n")

	frame, err := LoadCSV(path, 0)
	require.NoError(t, err)

	assert.Equal(t, []string{"id", "column_2", "column_3", "extra", "column_5"}, frame.Columns)
	assert.Equal(t, []any{"1", "2", "3", "4", "5"}, frame.Rows[0])
}

func TestLoadCSV_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadCSV(filepath.Join(dir, "missing.csv"), 0)
	assert.Error(t, err)

	empty := writeFile(t, dir, "empty.csv", "")
	_, err = LoadCSV(empty, 0)
	assert.Error(t, err)
}

func TestLoad_Dispatch(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name        string
		file        string
		content     string
		opts        Options
		columns     []string
		expectError error
	}{
		{name: "csv", file: "a.csv", content: "a,b\n1,2\n", columns: []string{"a", "b"}},
		{name: "tsv", file: "a.tsv", content: "a\tb\n1\t2\n", columns: []string{"a", "b"}},
		{name: "txt with delimiter", file: "a.txt", content: "a|b\n1|2\n", opts: Options{Delimiter: '|'}, columns: []string{"a", "b"}},
		{name: "unsupported", file: "a.parquet", content: "x", expectError: ErrUnsupportedFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, dir, tt.file, tt.content)

			frame, err := Load(path, tt.opts)
			if tt.expectError != nil {
				assert.ErrorIs(t, err, tt.expectError)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.columns, frame.Columns)
			assert.Equal(t, []any{"1", "2"}, frame.Rows[0])
		})
	}
}

func TestWorkbook(t *testing.T) {
	dir := t.TempDir()
	path := writeWorkbook(t, dir, map[string][][]interface{}{
		"orders": {
			{"order_id", "customer", "amount"},
			{1001, "acme", 12.5},
			{1002, "globex"},
		},
		"customers": {
			{"name", "country"},
			{"acme", "NO"},
		},
	}, []string{"orders", "customers"})

	t.Run("sheet names", func(t *testing.T) {
		names, err := SheetNames(path)
		require.NoError(t, err)
		assert.Equal(t, []string{"orders", "customers"}, names)
	})

	t.Run("first sheet by default", func(t *testing.T) {
		frame, err := LoadSheet(path, "")
		require.NoError(t, err)

		assert.Equal(t, []string{"order_id", "customer", "amount"}, frame.Columns)
		require.Equal(t, 2, frame.Len())
		assert.Equal(t, []any{"1001", "acme", "12.5"}, frame.Rows[0])
		assert.Equal(t, []any{"1002", "globex", nil}, frame.Rows[1], "short rows are padded")
	})

	t.Run("named sheet through Load", func(t *testing.T) {
		frame, err := Load(path, Options{Sheet: "customers"})
		require.NoError(t, err)
		assert.Equal(t, []string{"name", "country"}, frame.Columns)
		assert.Equal(t, 1, frame.Len())
	})

	t.Run("missing sheet", func(t *testing.T) {
		_, err := LoadSheet(path, "nope")
		assert.Error(t, err)
	})

	t.Run("all sheets", func(t *testing.T) {
		frames, err := LoadWorkbook(path)
		require.NoError(t, err)

		require.Len(t, frames, 2)
		assert.Equal(t, 2, frames["orders"].Len())
		assert.Equal(t, 1, frames["customers"].Len())
	})
}
