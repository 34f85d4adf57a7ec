package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBackendType(t *testing.T) {
	tests := []struct {
		name         string
		value        string
		expectedType BackendType
		expectError  bool
	}{
		{name: "sqlserver", value: "sqlserver", expectedType: SQLServer},
		{name: "mssql alias", value: "MSSQL", expectedType: SQLServer},
		{name: "oracle", value: "oracle", expectedType: Oracle},
		{name: "oracle with whitespace", value: "  Oracle ", expectedType: Oracle},
		{name: "mariadb", value: "mariadb", expectedType: MariaDB},
		{name: "mysql alias", value: "mysql", expectedType: MariaDB},
		{name: "postgres is not supported", value: "postgres", expectError: true},
		{name: "empty value", value: "", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, err := ParseBackendType(tt.value)

			if tt.expectError {
				assert.ErrorIs(t, err, ErrUnknownBackend, "Expected error for type '%s'", tt.value)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expectedType, kind)
		})
	}
}

func TestSplitTableName(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expected    []string
		expectError bool
	}{
		{name: "plain table", input: "customers", expected: []string{"customers"}},
		{name: "schema qualified", input: "dbo.customers", expected: []string{"dbo", "customers"}},
		{name: "database qualified", input: "sales.dbo.customers", expected: []string{"sales", "dbo", "customers"}},
		{name: "oracle style name", input: "HR.EMP$HIST", expected: []string{"HR", "EMP$HIST"}},
		{name: "surrounding whitespace", input: "  orders ", expected: []string{"orders"}},
		{name: "empty", input: "", expectError: true},
		{name: "too many segments", input: "a.b.c.d", expectError: true},
		{name: "empty segment", input: "dbo..customers", expectError: true},
		{name: "injection attempt", input: "customers; DROP TABLE x", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parts, err := splitTableName(tt.input)

			if tt.expectError {
				assert.ErrorIs(t, err, ErrInvalidName)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, parts)
		})
	}
}

func TestParseSQLStatements(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:  "single statement with semicolon",
			input: "SELECT 1;",
			expected: []string{
				"SELECT 1",
			},
		},
		{
			name:  "multiple statements",
			input: "CREATE TABLE users (id INT); INSERT INTO users VALUES (1);",
			expected: []string{
				"CREATE TABLE users (id INT)",
				"INSERT INTO users VALUES (1)",
			},
		},
		{
			name: "statements with newlines",
			input: `CREATE TABLE users (
    id INT,
    name VARCHAR(100)
);

INSERT INTO users (id, name) VALUES (1, 'Alice');`,
			expected: []string{
				"CREATE TABLE users (\n    id INT,\n    name VARCHAR(100)\n)",
				"INSERT INTO users (id, name) VALUES (1, 'Alice')",
			},
		},
		{
			name: "statements with comments",
			input: `-- Create users table
CREATE TABLE users (id INT);

-- Insert test data
INSERT INTO users VALUES (1);`,
			expected: []string{
				"CREATE TABLE users (id INT)",
				"INSERT INTO users VALUES (1)",
			},
		},
		{
			name:     "empty content",
			input:    "",
			expected: []string{},
		},
		{
			name:     "only comments",
			input:    "-- Just a comment\n-- Another comment",
			expected: []string{},
		},
		{
			name:     "only whitespace",
			input:    "   \n\n\t\t  ",
			expected: []string{},
		},
		{
			name:  "statement without trailing semicolon",
			input: "SELECT 1",
			expected: []string{
				"SELECT 1",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ParseSQLStatements(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestRemoveLeadingComments(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "no comments", input: "SELECT 1", expected: "SELECT 1"},
		{name: "comment then SQL", input: "-- note\nSELECT 1", expected: "SELECT 1"},
		{name: "indented comment", input: "   -- note\n\nSELECT 1", expected: "SELECT 1"},
		{name: "trailing comment kept", input: "SELECT 1\n-- done", expected: "SELECT 1\n-- done"},
		{name: "comment only", input: "-- a\n-- b", expected: ""},
		{name: "empty", input: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, removeLeadingComments(tt.input))
		})
	}
}
