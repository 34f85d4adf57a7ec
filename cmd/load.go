package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"

	"sqlwrapper/db"
	"sqlwrapper/loader"
)

// InsertCommand loads a file into an existing table
type InsertCommand struct {
	File      string
	Table     string
	Sheet     string
	Delimiter string
}

func (i *InsertCommand) Run(ctx context.Context) error {
	frame, err := loadFrame(i.File, i.Sheet, i.Delimiter)
	if err != nil {
		return err
	}
	PrintInfo("Loaded %d rows and %d columns from %s", frame.Len(), len(frame.Columns), i.File)

	return withConnector(ctx, func(conn db.Connector) error {
		n, err := conn.Insert(ctx, frame, i.Table)
		if err != nil {
			return err
		}
		PrintSuccess("Inserted %d rows into %s", n, i.Table)
		return nil
	})
}

// PreviewCommand shows a file without touching a database
type PreviewCommand struct {
	File      string
	Sheet     string
	Delimiter string
	Rows      int
}

func (p *PreviewCommand) Run() error {
	frame, err := loadFrame(p.File, p.Sheet, p.Delimiter)
	if err != nil {
		return err
	}

	PrintSeparator(filepath.Base(p.File))
	PrintInfo("%d rows, %d columns", frame.Len(), len(frame.Columns))
	DisplayFrame(filepath.Base(p.File), frame.Head(p.Rows))

	lengths := frame.MaxLengths()
	values := make(map[string]string, len(lengths))
	for column, n := range lengths {
		values[column] = strconv.Itoa(n)
	}
	DisplayValues("max lengths", values)

	if filepath.Ext(p.File) == ".xlsx" && p.Sheet == "" {
		if sheets, err := loader.SheetNames(p.File); err == nil && len(sheets) > 1 {
			PrintInfo("Other sheets: %v", sheets[1:])
		}
	}
	return nil
}

func loadFrame(path, sheet, delimiter string) (*db.Frame, error) {
	delim, err := parseDelimiter(delimiter)
	if err != nil {
		return nil, err
	}
	return loader.Load(path, loader.Options{Sheet: sheet, Delimiter: delim})
}

// parseDelimiter accepts a single character, or "tab" / `\t`
func parseDelimiter(s string) (rune, error) {
	switch s {
	case "":
		return 0, nil
	case "tab", `\t`:
		return '\t', nil
	}
	runes := []rune(s)
	if len(runes) != 1 {
		return 0, fmt.Errorf("delimiter must be a single character, got %q", s)
	}
	return runes[0], nil
}
