package db

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"runtime"
	"strconv"
	"strings"
	"time"

	"sqlwrapper/config"

	"github.com/jmoiron/sqlx"
	go_ora "github.com/sijms/go-ora/v2"
	"github.com/sijms/go-ora/v2/network"
)

const (
	oracleDateFormat = "YYYY-MM-DD HH24:MI:SS"
	oracleViewsSQL   = "SELECT view_name FROM user_views ORDER BY view_name"
)

func init() {
	// go-ora binds by position with :name placeholders
	sqlx.BindDriver("oracle", sqlx.NAMED)
}

type OracleConnector struct {
	baseConnector
	user     string
	password string
	server   string
	port     int
	service  string
	tnsAlias string
}

func NewOracleConnector(entry config.Entry, opts Options) (*OracleConnector, error) {
	user, err := entry.Get(config.Username)
	if err != nil {
		return nil, err
	}
	password, err := entry.Get(config.Password)
	if err != nil {
		return nil, err
	}

	c := &OracleConnector{
		baseConnector: newBaseConnector(Oracle, entry, opts),
		user:          user,
		password:      password,
		server:        entry.GetOr(config.Server, ""),
		service:       entry.GetOr(config.ServiceName, ""),
		tnsAlias:      entry.GetOr(config.TNSAlias, ""),
	}
	if p, ok := entry.Lookup(config.Port); ok {
		port, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("invalid port %q for %s: %w", p, entry.Name, err)
		}
		c.port = port
	}

	if !c.hasDirect() && c.tnsAlias == "" {
		for _, field := range []config.Field{config.Server, config.Port, config.ServiceName} {
			if _, ok := entry.Lookup(field); !ok {
				return nil, &config.MissingParameterError{Entry: entry.Name, Field: field}
			}
		}
	}

	c.dialect = c
	c.SetSchema(firstNonEmpty(opts.Schema, entry.GetOr(config.Schema, ""), user))
	runtime.SetFinalizer(c, func(c *OracleConnector) { _ = c.Close() })
	return c, nil
}

// hasDirect reports whether server, port and service name are all configured
func (c *OracleConnector) hasDirect() bool {
	return c.server != "" && c.port > 0 && c.service != ""
}

func (c *OracleConnector) directURL() string {
	return go_ora.BuildUrl(c.server, c.port, c.service, c.user, c.password, nil)
}

func (c *OracleConnector) tnsURL() string {
	return go_ora.BuildJDBC(c.user, c.password, c.tnsAlias, nil)
}

// Connect opens and pings the direct connection. On a connectivity failure
// it retries once through the TNS alias when one is configured.
func (c *OracleConnector) Connect(ctx context.Context) error {
	if c.db != nil {
		return nil
	}

	if !c.hasDirect() {
		c.log.Infof("Connecting through TNS alias %s", c.tnsAlias)
		return c.connectWith(ctx, c.tnsURL())
	}

	err := c.connectWith(ctx, c.directURL())
	if err == nil {
		return nil
	}
	if c.tnsAlias == "" || !isConnectivityError(err) {
		return err
	}

	c.log.WithError(err).Warnf("Direct connection failed, retrying with TNS alias %s", c.tnsAlias)
	return c.connectWith(ctx, c.tnsURL())
}

func (c *OracleConnector) connectWith(ctx context.Context, dsn string) error {
	if err := c.open("oracle", dsn); err != nil {
		return err
	}
	if err := c.Ping(ctx); err != nil {
		_ = c.Close()
		return err
	}
	return nil
}

// isConnectivityError reports whether err came from the network or the listener
func isConnectivityError(err error) bool {
	var oraErr *network.OracleError
	if errors.As(err, &oraErr) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	return errors.Is(err, driver.ErrBadConn)
}

// Views lists the views owned by the connected user
func (c *OracleConnector) Views(ctx context.Context) ([]string, error) {
	if err := c.ready(); err != nil {
		return nil, err
	}
	return c.stringColumn(ctx, oracleViewsSQL)
}

func (c *OracleConnector) qualify(schema, table string) string {
	if schema == "" {
		return table
	}
	return schema + "." + table
}

func (c *OracleConnector) selectSQL(target string, opts SelectOptions, limit int) string {
	inner := fmt.Sprintf("SELECT %s FROM %s%s", opts.columnList(), target, whereOrder(opts))
	if limit < 0 {
		return inner
	}
	return fmt.Sprintf("SELECT * FROM (%s) WHERE ROWNUM <= %d", inner, limit)
}

func (c *OracleConnector) truncateSQL(target string) string {
	return "TRUNCATE TABLE " + target
}

func (c *OracleConnector) tablesSQL() (string, []any) {
	return "SELECT table_name FROM user_tables ORDER BY table_name", nil
}

func (c *OracleConnector) columnsSQL(schema, table string) (string, []any) {
	return "SELECT column_name FROM all_tab_columns WHERE owner = UPPER(?) AND table_name = UPPER(?) ORDER BY column_id",
		[]any{schema, table}
}

// bulkInsert binds one string slice per column so the whole frame goes in a single round trip
func (c *OracleConnector) bulkInsert(ctx context.Context, tx *sqlx.Tx, target string, frame *Frame) (string, int64, error) {
	alter := fmt.Sprintf("ALTER SESSION SET NLS_DATE_FORMAT = '%s'", oracleDateFormat)
	logSQL(c.log, alter)
	if _, err := tx.ExecContext(ctx, alter); err != nil {
		return "", 0, fmt.Errorf("failed to set date format: %w", err)
	}

	binds := make([]string, len(frame.Columns))
	for i := range frame.Columns {
		binds[i] = ":" + strconv.Itoa(i+1)
	}
	stmt := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", target, strings.Join(frame.Columns, ", "), strings.Join(binds, ", "))

	args := make([]any, len(frame.Columns))
	for i := range frame.Columns {
		column := make([]string, len(frame.Rows))
		for r, row := range frame.Rows {
			column[r] = oracleValue(row[i])
		}
		args[i] = column
	}

	logSQL(c.log, stmt)
	res, err := tx.ExecContext(ctx, stmt, args...)
	if err != nil {
		return "", 0, err
	}
	n, err := res.RowsAffected()
	if err != nil || n == 0 {
		n = int64(frame.Len())
	}
	return stmt, n, nil
}

// oracleValue renders a cell as the string bound for an array insert
func oracleValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		if t == "None" {
			return ""
		}
		return t
	case bool:
		if t {
			return "1"
		}
		return "0"
	case time.Time:
		return t.Format("2006-01-02 15:04:05")
	default:
		return FormatValue(t)
	}
}
