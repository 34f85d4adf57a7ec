package cmd

import (
	"context"

	"sqlwrapper/db"
)

type TruncateCommand struct {
	Table string
	Yes   bool
}

func (t *TruncateCommand) Run(ctx context.Context) error {
	PrintWarning("Truncate removes every row of %s - this operation cannot be undone", t.Table)

	return withConnector(ctx, func(conn db.Connector) error {
		return runDestructive(conn, "truncate", t.Table, func() error {
			return conn.Truncate(ctx, t.Table, db.DestructiveOptions{SkipPrompt: t.Yes})
		})
	})
}

type DropCommand struct {
	Table string
	Yes   bool
}

func (d *DropCommand) Run(ctx context.Context) error {
	PrintWarning("Drop removes %s and all of its data - this operation cannot be undone", d.Table)

	return withConnector(ctx, func(conn db.Connector) error {
		return runDestructive(conn, "drop", d.Table, func() error {
			return conn.Drop(ctx, d.Table, db.DestructiveOptions{SkipPrompt: d.Yes})
		})
	})
}

// runDestructive reports whether the statement actually ran. Declined or
// no-op operations return nil from the connector and leave the history untouched.
func runDestructive(conn db.Connector, action, table string, fn func() error) error {
	before := conn.History().Len()
	if err := fn(); err != nil {
		return err
	}

	if conn.History().Len() == before {
		PrintWarning("Nothing done: %s of %s was declined or the table does not exist", action, table)
		return nil
	}
	last, _ := conn.History().Last()
	PrintCommand(last)
	PrintObject("table", table)
	PrintSuccess("%s of %s completed", action, table)
	return nil
}
