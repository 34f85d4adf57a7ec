package db

import (
	"context"
	"fmt"
	"net"
	"runtime"
	"strings"

	"sqlwrapper/config"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
)

const defaultMariaDBPort = "3306"

type MariaDBConnector struct {
	baseConnector
	cfg *mysql.Config
}

func NewMariaDBConnector(entry config.Entry, opts Options) (*MariaDBConnector, error) {
	server, err := entry.Get(config.Server)
	if err != nil {
		return nil, err
	}
	database, err := entry.Get(config.Database)
	if err != nil {
		return nil, err
	}
	user, err := entry.Get(config.Username)
	if err != nil {
		return nil, err
	}

	cfg := mysql.NewConfig()
	cfg.User = user
	cfg.Passwd = entry.GetOr(config.Password, "")
	cfg.Net = "tcp"
	cfg.Addr = net.JoinHostPort(server, entry.GetOr(config.Port, defaultMariaDBPort))
	cfg.DBName = database
	cfg.ParseTime = true

	c := &MariaDBConnector{
		baseConnector: newBaseConnector(MariaDB, entry, opts),
		cfg:           cfg,
	}
	c.dialect = c
	c.SetSchema(firstNonEmpty(opts.Schema, entry.GetOr(config.Schema, ""), database))
	runtime.SetFinalizer(c, func(c *MariaDBConnector) { _ = c.Close() })
	return c, nil
}

// DSN returns the driver connection string
func (c *MariaDBConnector) DSN() string {
	return c.cfg.FormatDSN()
}

func (c *MariaDBConnector) Connect(ctx context.Context) error {
	if c.db != nil {
		return nil
	}
	if err := c.open("mysql", c.DSN()); err != nil {
		return err
	}
	c.log.Debugf("Opened MariaDB connection to %s/%s", c.cfg.Addr, c.cfg.DBName)
	return nil
}

func (c *MariaDBConnector) qualify(schema, table string) string {
	if schema == "" {
		return table
	}
	return schema + "." + table
}

func (c *MariaDBConnector) selectSQL(target string, opts SelectOptions, limit int) string {
	query := fmt.Sprintf("SELECT %s FROM %s%s", opts.columnList(), target, whereOrder(opts))
	if limit >= 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}
	return query
}

func (c *MariaDBConnector) truncateSQL(target string) string {
	return "TRUNCATE TABLE " + target
}

func (c *MariaDBConnector) tablesSQL() (string, []any) {
	return "SELECT table_name FROM information_schema.tables WHERE table_schema = ? AND table_type = 'BASE TABLE' ORDER BY table_name",
		[]any{c.schema}
}

func (c *MariaDBConnector) columnsSQL(schema, table string) (string, []any) {
	return "SELECT column_name FROM information_schema.columns WHERE table_schema = ? AND table_name = ? ORDER BY ordinal_position",
		[]any{schema, table}
}

func (c *MariaDBConnector) bulkInsert(ctx context.Context, tx *sqlx.Tx, target string, frame *Frame) (string, int64, error) {
	return multiRowInsert(ctx, tx, target, frame, insertChunkSize, quoteBacktick)
}

func quoteBacktick(ident string) string {
	return "`" + strings.ReplaceAll(ident, "`", "``") + "`"
}
