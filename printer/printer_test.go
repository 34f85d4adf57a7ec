package printer

import (
	"testing"

	"sqlwrapper/config"

	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	tests := []struct {
		name     string
		entry    config.Entry
		expected EntrySummary
	}{
		{
			name:     "database entry",
			entry:    config.Entry{Name: "shop", Params: map[string]string{"db_type": "mariadb", "host": "maria01", "dbname": "shop"}},
			expected: EntrySummary{Name: "shop", Backend: "mariadb", Server: "maria01", Database: "shop"},
		},
		{
			name:     "oracle service",
			entry:    config.Entry{Name: "ledger", Params: map[string]string{"type": "oracle", "server": "ora01", "servicename": "LEDGER"}},
			expected: EntrySummary{Name: "ledger", Backend: "oracle", Server: "ora01", Database: "LEDGER"},
		},
		{
			name:     "oracle tns only",
			entry:    config.Entry{Name: "tns", Params: map[string]string{"type": "oracle", "tns_alias": "LEDGER_TNS"}},
			expected: EntrySummary{Name: "tns", Backend: "oracle", Database: "LEDGER_TNS"},
		},
		{
			name:     "no type",
			entry:    config.Entry{Name: "bare", Params: map[string]string{}},
			expected: EntrySummary{Name: "bare", Backend: "?"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Summarize(tt.entry))
		})
	}
}
