package db

import (
	"fmt"
	"regexp"
	"strings"
)

// ParseBackendType maps a config "type" value onto the closed set of backends
func ParseBackendType(value string) (BackendType, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "sqlserver", "mssql":
		return SQLServer, nil
	case "oracle":
		return Oracle, nil
	case "mariadb", "mysql":
		return MariaDB, nil
	default:
		return "", fmt.Errorf("%w: %q (expected sqlserver, oracle or mariadb)", ErrUnknownBackend, value)
	}
}

var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_$#]*$`)

// splitTableName validates a possibly qualified table name (up to db.schema.table)
func splitTableName(name string) ([]string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, fmt.Errorf("%w: table name is empty", ErrInvalidName)
	}
	parts := strings.Split(trimmed, ".")
	if len(parts) > 3 {
		return nil, fmt.Errorf("%w: %q has too many segments", ErrInvalidName, name)
	}
	for _, part := range parts {
		if !identPattern.MatchString(part) {
			return nil, fmt.Errorf("%w: segment %q of %q", ErrInvalidName, part, name)
		}
	}
	return parts, nil
}

// ParseSQLStatements splits SQL content into individual statements
// Each statement is separated by a semicolon (;)
// Empty and comment-only statements are filtered out
func ParseSQLStatements(content string) []string {
	parts := strings.Split(content, ";")

	statements := []string{}
	for _, part := range parts {
		trimmed := removeLeadingComments(strings.TrimSpace(part))
		if trimmed == "" {
			continue
		}
		statements = append(statements, trimmed)
	}

	return statements
}

// removeLeadingComments drops "--" comment lines and blank lines before the first SQL line
func removeLeadingComments(statement string) string {
	lines := strings.Split(statement, "\n")
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed != "" && !strings.HasPrefix(trimmed, "--") {
			return strings.TrimSpace(strings.Join(lines[i:], "\n"))
		}
	}
	return ""
}
