package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"sqlwrapper/db"
	"sqlwrapper/logger"

	"github.com/xuri/excelize/v2"
)

var ErrUnsupportedFormat = errors.New("unsupported file format")

// Options tune how a tabular file becomes a frame
type Options struct {
	// Sheet selects the worksheet of a workbook; empty means the first one
	Sheet string
	// Delimiter overrides the CSV separator
	Delimiter rune
}

// Load reads a .csv, .tsv, .txt or .xlsx file into a frame. The first row
// holds the column names; empty cells become NULL.
func Load(path string, opts Options) (*db.Frame, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".txt":
		return LoadCSV(path, opts.Delimiter)
	case ".tsv":
		delim := opts.Delimiter
		if delim == 0 {
			delim = '\t'
		}
		return LoadCSV(path, delim)
	case ".xlsx", ".xlsm":
		return LoadSheet(path, opts.Sheet)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Base(path))
	}
}

// LoadCSV reads a delimited text file; a zero delimiter means comma
func LoadCSV(path string, delimiter rune) (*db.Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	if delimiter != 0 {
		r.Comma = delimiter
	}
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	var records [][]string
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		records = append(records, record)
	}

	frame, err := recordsToFrame(records)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	logger.Debugf("Loaded %d rows and %d columns from %s", frame.Len(), len(frame.Columns), path)
	return frame, nil
}

// LoadWorkbook reads every worksheet of an xlsx file, keyed by sheet name
func LoadWorkbook(path string) (map[string]*db.Frame, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", path, err)
	}
	defer f.Close()

	out := make(map[string]*db.Frame)
	for _, sheet := range f.GetSheetList() {
		frame, err := sheetToFrame(f, sheet)
		if err != nil {
			return nil, fmt.Errorf("%s[%s]: %w", path, sheet, err)
		}
		out[sheet] = frame
	}
	return out, nil
}

// SheetNames lists the worksheets of an xlsx file in workbook order
func SheetNames(path string) ([]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", path, err)
	}
	defer f.Close()
	return f.GetSheetList(), nil
}

// LoadSheet reads one worksheet; an empty name selects the first sheet
func LoadSheet(path, sheet string) (*db.Frame, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", path, err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook %s has no sheets", path)
		}
		sheet = sheets[0]
	}

	frame, err := sheetToFrame(f, sheet)
	if err != nil {
		return nil, fmt.Errorf("%s[%s]: %w", path, sheet, err)
	}
	logger.Debugf("Loaded %d rows from sheet %s of %s", frame.Len(), sheet, path)
	return frame, nil
}

func sheetToFrame(f *excelize.File, sheet string) (*db.Frame, error) {
	idx, err := f.GetSheetIndex(sheet)
	if err != nil {
		return nil, err
	}
	if idx < 0 {
		return nil, fmt.Errorf("sheet %q does not exist", sheet)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	return recordsToFrame(rows)
}

// recordsToFrame uses the first record as the header. Short rows are padded
// with NULLs; blank or repeated header names get a positional name.
func recordsToFrame(records [][]string) (*db.Frame, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("no header row")
	}

	header := records[0]
	width := len(header)
	for _, rec := range records[1:] {
		width = max(width, len(rec))
	}

	seen := make(map[string]bool, width)
	columns := make([]string, width)
	for i := range columns {
		name := ""
		if i < len(header) {
			name = strings.TrimSpace(strings.TrimPrefix(header[i], "\ufeff"))
		}
		if name == "" || seen[strings.ToLower(name)] {
			name = fmt.Sprintf("column_%d", i+1)
		}
		seen[strings.ToLower(name)] = true
		columns[i] = name
	}

	frame := db.NewFrame(columns...)
	for _, rec := range records[1:] {
		if isBlank(rec) {
			continue
		}
		values := make([]any, width)
		for i := range values {
			if i < len(rec) && rec[i] != "" {
				values[i] = rec[i]
			}
		}
		if err := frame.Append(values...); err != nil {
			return nil, err
		}
	}
	return frame, nil
}

func isBlank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
