package db

import (
	"context"
	"fmt"
	"net/url"
	"runtime"
	"strings"

	"sqlwrapper/config"

	"github.com/jmoiron/sqlx"
	mssql "github.com/microsoft/go-mssqldb"
)

const (
	defaultSQLServerPort   = "1433"
	defaultSQLServerSchema = "dbo"
)

var (
	systemSchemas = []string{
		"db_accessadmin", "db_backupoperator", "db_datareader", "db_datawriter",
		"db_ddladmin", "db_denydatareader", "db_denydatawriter", "db_owner",
		"db_securityadmin", "sys", "INFORMATION_SCHEMA", "guest",
	}
	systemDatabases = []string{"master", "tempdb", "model", "msdb"}
)

type SQLServerConnector struct {
	baseConnector
	server   string
	port     string
	database string
	driver   string
}

func NewSQLServerConnector(entry config.Entry, opts Options) (*SQLServerConnector, error) {
	server, err := entry.Get(config.Server)
	if err != nil {
		return nil, err
	}
	database, err := entry.Get(config.Database)
	if err != nil {
		return nil, err
	}

	c := &SQLServerConnector{
		baseConnector: newBaseConnector(SQLServer, entry, opts),
		server:        server,
		port:          entry.GetOr(config.Port, defaultSQLServerPort),
		database:      database,
		driver:        entry.GetOr(config.Driver, ""),
	}
	c.dialect = c
	c.SetSchema(firstNonEmpty(opts.Schema, entry.GetOr(config.Schema, ""), defaultSQLServerSchema))
	runtime.SetFinalizer(c, func(c *SQLServerConnector) { _ = c.Close() })
	return c, nil
}

// usesFreeTDS reports whether the entry asks for the FreeTDS style URL connection
func (c *SQLServerConnector) usesFreeTDS() bool {
	return strings.Contains(strings.ToLower(c.driver), "freetds")
}

// connectionString builds the go-mssqldb URL DSN so credentials may carry
// any character. Without credentials the driver falls back to integrated
// (Windows) authentication.
func (c *SQLServerConnector) connectionString() (string, error) {
	user, hasUser := c.entry.Lookup(config.Username)
	password, hasPassword := c.entry.Lookup(config.Password)

	if c.usesFreeTDS() {
		if !hasUser {
			return "", &config.MissingParameterError{Entry: c.entry.Name, Field: config.Username}
		}
		if !hasPassword {
			if c.prompter == nil {
				return "", &config.MissingParameterError{Entry: c.entry.Name, Field: config.Password}
			}
			secret, err := c.prompter.Secret(fmt.Sprintf("Password for %s@%s", user, c.server))
			if err != nil {
				return "", fmt.Errorf("failed to read password: %w", err)
			}
			password = secret
		}
		return c.serverURL(url.UserPassword(user, password), nil).String(), nil
	}

	query := url.Values{"app name": {"sqlwrapper"}}
	if hasUser && hasPassword {
		return c.serverURL(url.UserPassword(user, password), query).String(), nil
	}
	c.log.Warn("Attempting to connect with Windows Auth")
	return c.serverURL(nil, query).String(), nil
}

// serverURL maps a host\instance server name onto the URL path
func (c *SQLServerConnector) serverURL(user *url.Userinfo, query url.Values) *url.URL {
	if query == nil {
		query = url.Values{}
	}
	query.Set("database", c.database)

	host, instance, _ := strings.Cut(c.server, `\`)
	u := &url.URL{
		Scheme:   "sqlserver",
		User:     user,
		Host:     host + ":" + c.port,
		RawQuery: query.Encode(),
	}
	if instance != "" {
		u.Path = "/" + instance
	}
	return u
}

func (c *SQLServerConnector) Connect(ctx context.Context) error {
	if c.db != nil {
		return nil
	}
	dsn, err := c.connectionString()
	if err != nil {
		return err
	}
	if err := c.open("sqlserver", dsn); err != nil {
		return err
	}
	c.log.Debugf("Opened SQL Server connection to %s/%s", c.server, c.database)
	return nil
}

// Schemas lists user schemas of the current database
func (c *SQLServerConnector) Schemas(ctx context.Context) ([]string, error) {
	if err := c.ready(); err != nil {
		return nil, err
	}
	query, args := c.schemasSQL()
	return c.stringColumn(ctx, query, args...)
}

// Databases lists the non-system databases on the server
func (c *SQLServerConnector) Databases(ctx context.Context) ([]string, error) {
	if err := c.ready(); err != nil {
		return nil, err
	}
	query, args := c.databasesSQL()
	return c.stringColumn(ctx, query, args...)
}

func (c *SQLServerConnector) schemasSQL() (string, []any) {
	return fmt.Sprintf("SELECT name FROM sys.schemas WHERE name NOT IN (%s) AND name NOT LIKE 'HS\\%%' ORDER BY name",
		placeholders(len(systemSchemas))), toArgs(systemSchemas)
}

func (c *SQLServerConnector) databasesSQL() (string, []any) {
	return fmt.Sprintf("SELECT name FROM sys.databases WHERE name NOT IN (%s) ORDER BY name",
		placeholders(len(systemDatabases))), toArgs(systemDatabases)
}

func (c *SQLServerConnector) qualify(schema, table string) string {
	if schema == "" {
		schema = defaultSQLServerSchema
	}
	return fmt.Sprintf("%s.%s.%s", c.database, schema, table)
}

func (c *SQLServerConnector) selectSQL(target string, opts SelectOptions, limit int) string {
	top := ""
	if limit >= 0 {
		top = fmt.Sprintf("TOP (%d) ", limit)
	}
	return fmt.Sprintf("SELECT %s%s FROM %s%s", top, opts.columnList(), target, whereOrder(opts))
}

func (c *SQLServerConnector) truncateSQL(target string) string {
	return "TRUNCATE TABLE " + target
}

func (c *SQLServerConnector) tablesSQL() (string, []any) {
	return "SELECT name FROM sys.tables ORDER BY name", nil
}

func (c *SQLServerConnector) columnsSQL(schema, table string) (string, []any) {
	return "SELECT COLUMN_NAME FROM INFORMATION_SCHEMA.COLUMNS WHERE TABLE_SCHEMA = ? AND TABLE_NAME = ? ORDER BY ORDINAL_POSITION",
		[]any{schema, table}
}

// bulkInsert streams the frame through the TDS bulk copy protocol
func (c *SQLServerConnector) bulkInsert(ctx context.Context, tx *sqlx.Tx, target string, frame *Frame) (string, int64, error) {
	copyIn := mssql.CopyIn(target, mssql.BulkOptions{}, frame.Columns...)
	stmt, err := tx.PrepareContext(ctx, copyIn)
	if err != nil {
		return "", 0, fmt.Errorf("failed to prepare bulk copy: %w", err)
	}
	defer stmt.Close()

	for i, row := range frame.Rows {
		if _, err := stmt.ExecContext(ctx, row...); err != nil {
			return "", 0, fmt.Errorf("failed to queue row %d: %w", i, err)
		}
	}
	res, err := stmt.ExecContext(ctx)
	if err != nil {
		return "", 0, fmt.Errorf("failed to flush bulk copy: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		n = int64(frame.Len())
	}
	return fmt.Sprintf("INSERT BULK %s (%s)", target, strings.Join(frame.Columns, ", ")), n, nil
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

func toArgs(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}
