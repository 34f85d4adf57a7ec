package db

import "strings"

// QueryHistory is the append-only log of SQL issued through a connector
type QueryHistory struct {
	entries []string
}

func NewQueryHistory() *QueryHistory {
	return &QueryHistory{}
}

// Append records a statement with its whitespace collapsed
func (h *QueryHistory) Append(statement string) {
	h.entries = append(h.entries, strings.Join(strings.Fields(statement), " "))
}

func (h *QueryHistory) Len() int {
	return len(h.entries)
}

// Entries returns a copy of the recorded statements, oldest first
func (h *QueryHistory) Entries() []string {
	out := make([]string, len(h.entries))
	copy(out, h.entries)
	return out
}

// Last returns the most recent statement
func (h *QueryHistory) Last() (string, bool) {
	if len(h.entries) == 0 {
		return "", false
	}
	return h.entries[len(h.entries)-1], true
}
