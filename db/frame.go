package db

import (
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
)

// Frame is an in-memory table: ordered column names and rows of values
type Frame struct {
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
}

func NewFrame(columns ...string) *Frame {
	return &Frame{Columns: columns, Rows: [][]any{}}
}

// Append adds a row; the row must have one value per column
func (f *Frame) Append(values ...any) error {
	if len(values) != len(f.Columns) {
		return fmt.Errorf("row has %d values, frame has %d columns", len(values), len(f.Columns))
	}
	f.Rows = append(f.Rows, values)
	return nil
}

func (f *Frame) Len() int {
	if f == nil {
		return 0
	}
	return len(f.Rows)
}

// Validate checks every row against the column count
func (f *Frame) Validate() error {
	if len(f.Columns) == 0 {
		return fmt.Errorf("frame has no columns")
	}
	for i, row := range f.Rows {
		if len(row) != len(f.Columns) {
			return fmt.Errorf("row %d has %d values, frame has %d columns", i, len(row), len(f.Columns))
		}
	}
	return nil
}

// Column returns the values of a column, matching the name case-insensitively
func (f *Frame) Column(name string) ([]any, bool) {
	idx := -1
	for i, c := range f.Columns {
		if strings.EqualFold(c, name) {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, false
	}
	out := make([]any, len(f.Rows))
	for i, row := range f.Rows {
		out[i] = row[idx]
	}
	return out, true
}

// Head returns a frame sharing the first n rows
func (f *Frame) Head(n int) *Frame {
	if n < 0 || n > len(f.Rows) {
		n = len(f.Rows)
	}
	return &Frame{Columns: f.Columns, Rows: f.Rows[:n]}
}

// MaxLengths returns, per column, the longest rendered value.
// Useful for sizing VARCHAR columns before creating a table for an insert.
func (f *Frame) MaxLengths() map[string]int {
	out := make(map[string]int, len(f.Columns))
	for i, c := range f.Columns {
		longest := 0
		for _, row := range f.Rows {
			if row[i] == nil {
				continue
			}
			if l := len([]rune(FormatValue(row[i]))); l > longest {
				longest = l
			}
		}
		out[c] = longest
	}
	return out
}

// FormatValue renders a cell for display
func FormatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []byte:
		return string(t)
	case time.Time:
		if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
			return t.Format("2006-01-02")
		}
		return t.Format("2006-01-02 15:04:05")
	default:
		return fmt.Sprint(t)
	}
}

func normalizeValue(v any) any {
	switch t := v.(type) {
	case []byte:
		return string(t)
	default:
		return t
	}
}

// scanFrame reads at most maxRows rows (all rows when maxRows < 0)
func scanFrame(rows *sqlx.Rows, maxRows int) (*Frame, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read result columns: %w", err)
	}

	frame := NewFrame(cols...)
	for rows.Next() {
		if maxRows >= 0 && len(frame.Rows) >= maxRows {
			break
		}
		values, err := rows.SliceScan()
		if err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		for i := range values {
			values[i] = normalizeValue(values[i])
		}
		frame.Rows = append(frame.Rows, values)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rows: %w", err)
	}
	return frame, nil
}
