package db

import (
	"fmt"

	"sqlwrapper/config"
)

// Build constructs the connector declared by the entry's type field.
// Required parameters are checked here; no connection is made.
func Build(entry config.Entry, opts Options) (Connector, error) {
	value, err := entry.Get(config.Type)
	if err != nil {
		return nil, err
	}
	kind, err := ParseBackendType(value)
	if err != nil {
		return nil, fmt.Errorf("entry %s: %w", entry.Name, err)
	}

	var (
		conn Connector
		berr error
	)
	switch kind {
	case SQLServer:
		var c *SQLServerConnector
		c, berr = NewSQLServerConnector(entry, opts)
		conn = c
	case Oracle:
		var c *OracleConnector
		c, berr = NewOracleConnector(entry, opts)
		conn = c
	case MariaDB:
		var c *MariaDBConnector
		c, berr = NewMariaDBConnector(entry, opts)
		conn = c
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownBackend, kind)
	}
	// constructors return a typed nil alongside an error
	if berr != nil {
		return nil, berr
	}
	return conn, nil
}
