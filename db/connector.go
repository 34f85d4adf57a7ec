package db

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"sqlwrapper/config"
	"sqlwrapper/logger"
	"sqlwrapper/prompt"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

// dialect holds the backend specific SQL of a connector
type dialect interface {
	// qualify builds the target of an unqualified table name
	qualify(schema, table string) string
	selectSQL(target string, opts SelectOptions, limit int) string
	truncateSQL(target string) string
	// tablesSQL and columnsSQL use ? placeholders, rebound per driver
	tablesSQL() (string, []any)
	columnsSQL(schema, table string) (string, []any)
	// bulkInsert loads frame into target and returns the statement to record
	bulkInsert(ctx context.Context, tx *sqlx.Tx, target string, frame *Frame) (string, int64, error)
}

// baseConnector implements everything but Connect on top of a dialect
type baseConnector struct {
	kind     BackendType
	entry    config.Entry
	schema   string
	db       *sqlx.DB
	history  *QueryHistory
	prompter prompt.Prompter
	dialect  dialect
	log      *logrus.Entry
}

func newBaseConnector(kind BackendType, entry config.Entry, opts Options) baseConnector {
	return baseConnector{
		kind:     kind,
		entry:    entry,
		history:  NewQueryHistory(),
		prompter: opts.Prompter,
		log:      logger.ForEntry(entry.Name, string(kind)),
	}
}

func (b *baseConnector) Backend() BackendType {
	return b.kind
}

func (b *baseConnector) Entry() config.Entry {
	return b.entry
}

func (b *baseConnector) Schema() string {
	return b.schema
}

func (b *baseConnector) SetSchema(schema string) {
	b.schema = strings.TrimSpace(schema)
}

func (b *baseConnector) History() *QueryHistory {
	return b.history
}

// open replaces the handle with a new pool for driverName
func (b *baseConnector) open(driverName, dsn string) error {
	handle, err := sqlx.Open(driverName, dsn)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrConnection, b.entry.Name, err)
	}
	b.db = handle
	return nil
}

func (b *baseConnector) Ping(ctx context.Context) error {
	if b.db == nil {
		return ErrNotConnected
	}
	if err := b.db.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrConnection, b.entry.Name, err)
	}
	return nil
}

// Close releases the handle; closing twice is a no-op
func (b *baseConnector) Close() error {
	if b.db == nil {
		return nil
	}
	err := b.db.Close()
	b.db = nil
	if err != nil {
		return fmt.Errorf("failed to close %s: %w", b.entry.Name, err)
	}
	b.log.Debug("Connection closed")
	return nil
}

func (b *baseConnector) ready() error {
	if b.db == nil {
		return ErrNotConnected
	}
	return nil
}

// target resolves the table name used in generated SQL. A dotted name is
// taken as already qualified.
func (b *baseConnector) target(schema, table string) (string, error) {
	parts, err := splitTableName(table)
	if err != nil {
		return "", err
	}
	if len(parts) > 1 {
		return strings.Join(parts, "."), nil
	}
	if schema == "" {
		schema = b.schema
	}
	return b.dialect.qualify(schema, parts[0]), nil
}

func (b *baseConnector) queryFrame(ctx context.Context, maxRows int, query string, args ...any) (*Frame, error) {
	logSQL(b.log, query, args...)
	rows, err := b.db.QueryxContext(ctx, query, args...)
	if err != nil {
		b.log.WithError(err).Error("Query failed")
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()
	return scanFrame(rows, maxRows)
}

func (b *baseConnector) Select(ctx context.Context, opts SelectOptions) (*Frame, error) {
	if err := b.ready(); err != nil {
		return nil, err
	}
	target, err := b.target(opts.Schema, opts.Table)
	if err != nil {
		return nil, err
	}

	limit := opts.limit()
	query := b.dialect.selectSQL(target, opts, limit)
	frame, err := b.queryFrame(ctx, limit, query)
	if err != nil {
		return nil, err
	}
	b.history.Append(query)
	return frame, nil
}

// Query runs free-form SQL and returns every row
func (b *baseConnector) Query(ctx context.Context, query string, args ...any) (*Frame, error) {
	if err := b.ready(); err != nil {
		return nil, err
	}
	frame, err := b.queryFrame(ctx, NoLimit, query, args...)
	if err != nil {
		return nil, err
	}
	b.history.Append(query)
	return frame, nil
}

func (b *baseConnector) Exec(ctx context.Context, script string) (int64, error) {
	if err := b.ready(); err != nil {
		return 0, err
	}

	var total int64
	for i, stmt := range ParseSQLStatements(script) {
		logSQL(b.log, stmt)
		res, err := b.db.ExecContext(ctx, stmt)
		if err != nil {
			b.log.WithError(err).Errorf("Statement %d failed", i+1)
			return total, fmt.Errorf("statement %d failed: %w", i+1, err)
		}
		b.history.Append(stmt)
		if n, err := res.RowsAffected(); err == nil && n > 0 {
			total += n
		}
	}
	return total, nil
}

func (b *baseConnector) Tables(ctx context.Context) ([]string, error) {
	if err := b.ready(); err != nil {
		return nil, err
	}
	query, args := b.dialect.tablesSQL()
	return b.stringColumn(ctx, query, args...)
}

// Columns lists the column names of table in ordinal order; a missing
// table yields an empty list
func (b *baseConnector) Columns(ctx context.Context, table string) ([]string, error) {
	if err := b.ready(); err != nil {
		return nil, err
	}
	parts, err := splitTableName(table)
	if err != nil {
		return nil, err
	}
	schema := b.schema
	if len(parts) > 1 {
		schema = parts[len(parts)-2]
	}
	query, args := b.dialect.columnsSQL(schema, parts[len(parts)-1])
	return b.stringColumn(ctx, query, args...)
}

func (b *baseConnector) stringColumn(ctx context.Context, query string, args ...any) ([]string, error) {
	query = b.db.Rebind(query)
	logSQL(b.log, query, args...)

	var out []string
	if err := b.db.SelectContext(ctx, &out, query, args...); err != nil {
		b.log.WithError(err).Error("Catalog query failed")
		return nil, fmt.Errorf("catalog query failed: %w", err)
	}
	return out, nil
}

func (b *baseConnector) tableExists(ctx context.Context, table string) (bool, error) {
	cols, err := b.Columns(ctx, table)
	if err != nil {
		return false, err
	}
	return len(cols) > 0, nil
}

// Insert appends the rows of frame to an existing table inside one transaction
func (b *baseConnector) Insert(ctx context.Context, frame *Frame, table string) (int64, error) {
	if err := b.ready(); err != nil {
		return 0, err
	}
	if err := frame.Validate(); err != nil {
		return 0, fmt.Errorf("invalid frame: %w", err)
	}
	target, err := b.target("", table)
	if err != nil {
		return 0, err
	}

	exists, err := b.tableExists(ctx, table)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, fmt.Errorf("%w: %s", ErrTableNotFound, target)
	}
	if frame.Len() == 0 {
		b.log.Infof("Nothing to insert into %s", target)
		return 0, nil
	}

	tx, err := b.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	stmt, n, err := b.dialect.bulkInsert(ctx, tx, target, frame)
	if err != nil {
		_ = tx.Rollback()
		b.log.WithError(err).Errorf("Insert into %s failed", target)
		return 0, fmt.Errorf("insert into %s failed: %w", target, err)
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit insert into %s: %w", target, err)
	}

	b.history.Append(stmt)
	b.log.Infof("Inserted %d rows into %s", n, target)
	return n, nil
}

// confirm returns ErrDeclined unless the caller skipped the prompt or said yes.
// Without a prompter and without an answer the operation is declined.
func (b *baseConnector) confirm(action, target string, opts DestructiveOptions) error {
	if opts.SkipPrompt {
		return nil
	}

	var (
		ok  bool
		err error
	)
	message := fmt.Sprintf("Are you sure you want to %s %s?", action, target)
	switch {
	case strings.TrimSpace(opts.Answer) != "":
		ok, err = prompt.ParseYesNo(opts.Answer)
	case b.prompter != nil:
		ok, err = b.prompter.Confirm(message)
	default:
		b.log.Warnf("No prompt available to confirm %s of %s", action, target)
	}
	if err != nil {
		return err
	}
	if !ok {
		return ErrDeclined
	}
	return nil
}

func (b *baseConnector) Truncate(ctx context.Context, table string, opts DestructiveOptions) error {
	if err := b.ready(); err != nil {
		return err
	}
	target, err := b.target("", table)
	if err != nil {
		return err
	}

	if err := b.confirm("truncate", target, opts); err != nil {
		if errors.Is(err, ErrDeclined) {
			b.log.Infof("Truncate of %s declined", target)
			return nil
		}
		return err
	}

	stmt := b.dialect.truncateSQL(target)
	if err := b.execDDL(ctx, stmt); err != nil {
		return err
	}
	b.log.Infof("Truncated %s", target)
	return nil
}

func (b *baseConnector) Drop(ctx context.Context, table string, opts DestructiveOptions) error {
	if err := b.ready(); err != nil {
		return err
	}
	target, err := b.target("", table)
	if err != nil {
		return err
	}

	exists, err := b.tableExists(ctx, table)
	if err != nil {
		return err
	}
	if !exists {
		b.log.Infof("Table %s does not exist, nothing to drop", target)
		return nil
	}

	if err := b.confirm("drop", target, opts); err != nil {
		if errors.Is(err, ErrDeclined) {
			b.log.Infof("Drop of %s declined", target)
			return nil
		}
		return err
	}

	if err := b.execDDL(ctx, "DROP TABLE "+target); err != nil {
		return err
	}
	b.log.Infof("Dropped %s", target)
	return nil
}

func (b *baseConnector) execDDL(ctx context.Context, stmt string) error {
	logSQL(b.log, stmt)
	if _, err := b.db.ExecContext(ctx, stmt); err != nil {
		b.log.WithError(err).Error("Statement failed")
		return fmt.Errorf("failed to execute %q: %w", stmt, err)
	}
	b.history.Append(stmt)
	return nil
}

// whereOrder renders the optional WHERE and ORDER BY clauses of a select
func whereOrder(opts SelectOptions) string {
	var sb strings.Builder
	if w := strings.TrimSpace(opts.Where); w != "" {
		sb.WriteString(" WHERE ")
		sb.WriteString(w)
	}
	if o := strings.TrimSpace(opts.OrderBy); o != "" {
		sb.WriteString(" ORDER BY ")
		sb.WriteString(o)
		if opts.Desc {
			sb.WriteString(" DESC")
		}
	}
	return sb.String()
}

const insertChunkSize = 1000

// multiRowInsert writes frame with INSERT ... VALUES (...),(...) statements
// of at most chunk rows each, using ? placeholders rebound for the driver
func multiRowInsert(ctx context.Context, tx *sqlx.Tx, target string, frame *Frame, chunk int, quote func(string) string) (string, int64, error) {
	cols := make([]string, len(frame.Columns))
	for i, c := range frame.Columns {
		cols[i] = quote(c)
	}
	head := fmt.Sprintf("INSERT INTO %s (%s) VALUES ", target, strings.Join(cols, ", "))
	tuple := "(" + strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", ") + ")"

	var total int64
	for start := 0; start < len(frame.Rows); start += chunk {
		end := min(start+chunk, len(frame.Rows))
		tuples := make([]string, 0, end-start)
		args := make([]any, 0, (end-start)*len(cols))
		for _, row := range frame.Rows[start:end] {
			tuples = append(tuples, tuple)
			args = append(args, row...)
		}

		res, err := tx.ExecContext(ctx, tx.Rebind(head+strings.Join(tuples, ", ")), args...)
		if err != nil {
			return "", total, err
		}
		if n, err := res.RowsAffected(); err == nil {
			total += n
		}
	}
	return head + tuple, total, nil
}
