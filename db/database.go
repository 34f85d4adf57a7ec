package db

import (
	"context"
	"errors"
	"strings"

	"sqlwrapper/config"
	"sqlwrapper/prompt"

	"github.com/sirupsen/logrus"
)

type BackendType string

const (
	SQLServer BackendType = "sqlserver"
	Oracle    BackendType = "oracle"
	MariaDB   BackendType = "mariadb"
)

// DefaultLimit is the row limit used by Select when none is given
const DefaultLimit = 10

// NoLimit disables the row limit in SelectOptions
const NoLimit = -1

var (
	ErrUnknownBackend = errors.New("unknown backend type")
	ErrConnection     = errors.New("backend connection failure")
	ErrDeclined       = errors.New("destructive operation declined")
	ErrTableNotFound  = errors.New("table does not exist")
	ErrNotConnected   = errors.New("database not connected")
	ErrInvalidName    = errors.New("invalid identifier")
	ErrUnsupported    = errors.New("not supported by this backend")
)

// Connector is an open connection to one configured database
type Connector interface {
	Backend() BackendType
	Entry() config.Entry
	// Schema is the default schema used to qualify unqualified table names
	Schema() string
	SetSchema(schema string)

	Connect(ctx context.Context) error
	Ping(ctx context.Context) error
	Close() error

	Select(ctx context.Context, opts SelectOptions) (*Frame, error)
	Query(ctx context.Context, query string, args ...any) (*Frame, error)
	// Exec runs one or more ;-separated statements and returns the rows affected
	Exec(ctx context.Context, script string) (int64, error)
	Insert(ctx context.Context, frame *Frame, table string) (int64, error)

	Tables(ctx context.Context) ([]string, error)
	Columns(ctx context.Context, table string) ([]string, error)

	Truncate(ctx context.Context, table string, opts DestructiveOptions) error
	Drop(ctx context.Context, table string, opts DestructiveOptions) error

	History() *QueryHistory
}

// SchemaLister is implemented by backends that expose several schemas per database
type SchemaLister interface {
	Schemas(ctx context.Context) ([]string, error)
}

// DatabaseLister is implemented by backends that host several databases per server
type DatabaseLister interface {
	Databases(ctx context.Context) ([]string, error)
}

type ViewLister interface {
	Views(ctx context.Context) ([]string, error)
}

// SelectOptions describes a single-table SELECT
type SelectOptions struct {
	Table   string
	Columns []string
	// Schema overrides the connector's default schema
	Schema  string
	Where   string
	OrderBy string
	Desc    bool
	// Limit of 0 means DefaultLimit, negative means unlimited
	Limit int
}

func (o SelectOptions) columnList() string {
	if len(o.Columns) == 0 {
		return "*"
	}
	return strings.Join(o.Columns, ", ")
}

func (o SelectOptions) limit() int {
	switch {
	case o.Limit == 0:
		return DefaultLimit
	case o.Limit < 0:
		return NoLimit
	default:
		return o.Limit
	}
}

// DestructiveOptions controls the confirmation gate of Truncate and Drop
type DestructiveOptions struct {
	// SkipPrompt runs the statement without asking
	SkipPrompt bool
	// Answer pre-supplies the yes/no reply instead of prompting
	Answer string
}

// Options tune connector construction
type Options struct {
	Prompter prompt.Prompter
	// Schema overrides the entry's default schema
	Schema string
}

// logSQL logs SQL statements at debug level
func logSQL(log *logrus.Entry, query string, args ...interface{}) {
	displayQuery := strings.TrimSpace(query)
	if len(args) > 0 {
		log.Debugf("[SQL] %s [ARGS] %v", displayQuery, args)
	} else {
		log.Debugf("[SQL] %s", displayQuery)
	}
}
