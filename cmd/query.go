package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"sqlwrapper/db"
	"sqlwrapper/loader"
	"sqlwrapper/logger"
)

type SelectCommand struct {
	Table   string
	Columns []string
	Where   string
	OrderBy string
	Desc    bool
	Limit   int
}

func (s *SelectCommand) Run(ctx context.Context) error {
	return withConnector(ctx, func(conn db.Connector) error {
		frame, err := conn.Select(ctx, db.SelectOptions{
			Table:   s.Table,
			Columns: s.Columns,
			Where:   s.Where,
			OrderBy: s.OrderBy,
			Desc:    s.Desc,
			Limit:   s.Limit,
		})
		if err != nil {
			return err
		}
		DisplayFrame(s.Table, frame)
		return nil
	})
}

type QueryCommand struct {
	SQL string
}

func (q *QueryCommand) Run(ctx context.Context) error {
	return withConnector(ctx, func(conn db.Connector) error {
		frame, err := conn.Query(ctx, q.SQL)
		if err != nil {
			return err
		}
		DisplayFrame("query", frame)
		return nil
	})
}

// ExecCommand runs inline SQL or a script file, not both
type ExecCommand struct {
	SQL  string
	File string
}

func (e *ExecCommand) statements() (string, []string, error) {
	switch {
	case e.SQL != "" && e.File != "":
		return "", nil, errors.New("give either inline SQL or --file, not both")
	case e.File != "":
		script, err := loader.LoadScript(e.File)
		if err != nil {
			return "", nil, err
		}
		logger.Infof("Loaded %s (fingerprint %s, %d statements)", script.Path, script.Fingerprint, len(script.Statements))
		return script.Path, script.Statements, nil
	case strings.TrimSpace(e.SQL) != "":
		statements := db.ParseSQLStatements(e.SQL)
		if len(statements) == 0 {
			return "", nil, errors.New("no statements to execute")
		}
		return "inline", statements, nil
	default:
		return "", nil, errors.New("nothing to execute: give SQL or --file")
	}
}

func (e *ExecCommand) Run(ctx context.Context) error {
	source, statements, err := e.statements()
	if err != nil {
		return err
	}

	return withConnector(ctx, func(conn db.Connector) error {
		PrintSection(source)
		for _, stmt := range statements {
			PrintCommand(stmt)
		}

		affected, err := conn.Exec(ctx, strings.Join(statements, ";\n"))
		if err != nil {
			return err
		}
		PrintSectionEnd()
		PrintSuccess("%d statements executed, %d rows affected", len(statements), affected)
		return nil
	})
}

type TablesCommand struct{}

func (t *TablesCommand) Run(ctx context.Context) error {
	return withConnector(ctx, func(conn db.Connector) error {
		tables, err := conn.Tables(ctx)
		if err != nil {
			return err
		}
		DisplayFrame(conn.Schema(), listFrame("table", tables))
		return nil
	})
}

type ColumnsCommand struct {
	Table string
}

func (c *ColumnsCommand) Run(ctx context.Context) error {
	return withConnector(ctx, func(conn db.Connector) error {
		columns, err := conn.Columns(ctx, c.Table)
		if err != nil {
			return err
		}
		if len(columns) == 0 {
			PrintWarning("Table %s does not exist or has no columns", c.Table)
			return nil
		}
		DisplayFrame(c.Table, listFrame("column", columns))
		return nil
	})
}

// SchemasCommand lists schemas on backends with more than one per database
type SchemasCommand struct{}

func (s *SchemasCommand) Run(ctx context.Context) error {
	return withConnector(ctx, func(conn db.Connector) error {
		lister, ok := conn.(db.SchemaLister)
		if !ok {
			return unsupported("schemas", conn)
		}
		schemas, err := lister.Schemas(ctx)
		if err != nil {
			return err
		}
		DisplayFrame(conn.Entry().Name, listFrame("schema", schemas))
		return nil
	})
}

type DatabasesCommand struct{}

func (d *DatabasesCommand) Run(ctx context.Context) error {
	return withConnector(ctx, func(conn db.Connector) error {
		lister, ok := conn.(db.DatabaseLister)
		if !ok {
			return unsupported("databases", conn)
		}
		databases, err := lister.Databases(ctx)
		if err != nil {
			return err
		}
		DisplayFrame(conn.Entry().Name, listFrame("database", databases))
		return nil
	})
}

type ViewsCommand struct{}

func (v *ViewsCommand) Run(ctx context.Context) error {
	return withConnector(ctx, func(conn db.Connector) error {
		lister, ok := conn.(db.ViewLister)
		if !ok {
			return unsupported("views", conn)
		}
		views, err := lister.Views(ctx)
		if err != nil {
			return err
		}
		DisplayFrame(conn.Schema(), listFrame("view", views))
		return nil
	})
}

func unsupported(listing string, conn db.Connector) error {
	return fmt.Errorf("listing %s: %w: %s", listing, db.ErrUnsupported, conn.Backend())
}

// listFrame turns a name listing into a one-column frame
func listFrame(column string, names []string) *db.Frame {
	frame := db.NewFrame(column)
	for _, name := range names {
		frame.Rows = append(frame.Rows, []any{name})
	}
	return frame
}
