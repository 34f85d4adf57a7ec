package loader

import (
	"fmt"
	"os"

	"sqlwrapper/db"
)

// Script is a SQL file split into statements
type Script struct {
	Path        string
	Content     string
	Fingerprint string
	Statements  []string
}

// LoadScript reads a SQL file; comment-only and empty statements are dropped
func LoadScript(path string) (*Script, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script %s: %w", path, err)
	}

	statements := db.ParseSQLStatements(string(content))
	if len(statements) == 0 {
		return nil, fmt.Errorf("script %s contains no statements", path)
	}

	return &Script{
		Path:        path,
		Content:     string(content),
		Fingerprint: Fingerprint(content),
		Statements:  statements,
	}, nil
}
