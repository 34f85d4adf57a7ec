package db

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"sqlwrapper/config"
	"sqlwrapper/prompt"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
)

// sqliteConnector runs the shared connector code against an in-process engine
type sqliteConnector struct {
	baseConnector
	path string
}

func newSQLiteConnector(t *testing.T, prompter prompt.Prompter) *sqliteConnector {
	t.Helper()

	entry := config.Entry{Name: "test_sqlite", Params: map[string]string{"type": "sqlite"}}
	c := &sqliteConnector{
		baseConnector: newBaseConnector("sqlite", entry, Options{Prompter: prompter}),
		path:          filepath.Join(t.TempDir(), "test.db"),
	}
	c.dialect = c

	require.NoError(t, c.Connect(context.Background()))
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func (c *sqliteConnector) Connect(ctx context.Context) error {
	if c.db != nil {
		return nil
	}
	return c.open("sqlite3", c.path)
}

func (c *sqliteConnector) qualify(schema, table string) string {
	return table
}

func (c *sqliteConnector) selectSQL(target string, opts SelectOptions, limit int) string {
	query := fmt.Sprintf("SELECT %s FROM %s%s", opts.columnList(), target, whereOrder(opts))
	if limit >= 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}
	return query
}

func (c *sqliteConnector) truncateSQL(target string) string {
	return "DELETE FROM " + target
}

func (c *sqliteConnector) tablesSQL() (string, []any) {
	return "SELECT name FROM sqlite_master WHERE type = 'table' ORDER BY name", nil
}

func (c *sqliteConnector) columnsSQL(schema, table string) (string, []any) {
	return "SELECT name FROM pragma_table_info(?) ORDER BY cid", []any{table}
}

func (c *sqliteConnector) bulkInsert(ctx context.Context, tx *sqlx.Tx, target string, frame *Frame) (string, int64, error) {
	return multiRowInsert(ctx, tx, target, frame, insertChunkSize, func(s string) string {
		return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
	})
}

// seedPeople creates a people table holding n rows with ids 1..n
func seedPeople(t *testing.T, c *sqliteConnector, n int) {
	t.Helper()

	var sb strings.Builder
	sb.WriteString("CREATE TABLE people (id INTEGER PRIMARY KEY, name TEXT, age INTEGER);\n")
	for i := 1; i <= n; i++ {
		fmt.Fprintf(&sb, "INSERT INTO people (id, name, age) VALUES (%d, 'person_%02d', %d);\n", i, i, 20+i)
	}
	_, err := c.Exec(context.Background(), sb.String())
	require.NoError(t, err)
}

func countRows(t *testing.T, c *sqliteConnector, table string) int {
	t.Helper()

	var n int
	require.NoError(t, c.db.Get(&n, "SELECT COUNT(*) FROM "+table))
	return n
}

func tableExistsRaw(t *testing.T, c *sqliteConnector, table string) bool {
	t.Helper()

	var n int
	require.NoError(t, c.db.Get(&n, "SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?", table))
	return n > 0
}
