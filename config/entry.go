package config

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrConfigNotFound   = errors.New("configuration file not found")
	ErrEntryNotFound    = errors.New("entry not found in configuration file")
	ErrMissingParameter = errors.New("missing required parameter")
)

// Field is the canonical name of a connection parameter
type Field string

const (
	Username    Field = "username"
	Password    Field = "password"
	Server      Field = "server"
	Database    Field = "database"
	Port        Field = "port"
	Driver      Field = "driver"
	ServiceName Field = "service_name"
	TNSAlias    Field = "tns_alias"
	Type        Field = "type"
	Schema      Field = "schema"
)

// synonyms maps each canonical field to the keys accepted for it, canonical first.
// Older config files used obfuscated keys (hello/world) for credentials.
var synonyms = map[Field][]string{
	Username:    {"username", "hello", "user", "uid"},
	Password:    {"password", "world", "pw", "pwd"},
	Server:      {"server", "hostname", "host"},
	Database:    {"database", "db_name", "dbname"},
	Port:        {"port"},
	Driver:      {"driver"},
	ServiceName: {"service_name", "servicename"},
	TNSAlias:    {"tns_alias"},
	Type:        {"type", "db_type", "backend"},
	Schema:      {"schema", "schema_name"},
}

// Synonyms returns the keys that resolve to field, in lookup order
func Synonyms(field Field) []string {
	keys, ok := synonyms[field]
	if !ok {
		return []string{string(field)}
	}
	out := make([]string, len(keys))
	copy(out, keys)
	return out
}

// MissingParameterError reports a field absent under every accepted spelling
type MissingParameterError struct {
	Entry string
	Field Field
}

func (e *MissingParameterError) Error() string {
	return fmt.Sprintf("entry [%s]: %s (accepted keys: %s)",
		e.Entry, ErrMissingParameter, strings.Join(Synonyms(e.Field), ", "))
}

func (e *MissingParameterError) Unwrap() error {
	return ErrMissingParameter
}

// Entry is one named section of the configuration file
type Entry struct {
	Name   string
	Params map[string]string
}

// Lookup resolves field through the synonym table and reports whether a non-empty value exists
func (e Entry) Lookup(field Field) (string, bool) {
	for _, key := range Synonyms(field) {
		if v, ok := e.Params[key]; ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v), true
		}
	}
	return "", false
}

// Get resolves field through the synonym table
func (e Entry) Get(field Field) (string, error) {
	if v, ok := e.Lookup(field); ok {
		return v, nil
	}
	return "", &MissingParameterError{Entry: e.Name, Field: field}
}

// GetOr resolves field, falling back to def
func (e Entry) GetOr(field Field, def string) string {
	if v, ok := e.Lookup(field); ok {
		return v
	}
	return def
}

// Redacted returns a copy of the parameters with every password spelling masked
func (e Entry) Redacted() map[string]string {
	secret := make(map[string]bool)
	for _, key := range Synonyms(Password) {
		secret[key] = true
	}
	out := make(map[string]string, len(e.Params))
	for k, v := range e.Params {
		if secret[k] {
			out[k] = "********"
			continue
		}
		out[k] = v
	}
	return out
}

// Keys returns the raw parameter keys sorted
func (e Entry) Keys() []string {
	keys := make([]string, 0, len(e.Params))
	for k := range e.Params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
