package loader

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadScript(t *testing.T) {
	dir := t.TempDir()
	content := `-- nightly cleanup
DELETE FROM staging.orders WHERE loaded = 1;

-- reset counters
UPDATE staging.counters SET n = 0;
`
	path := writeFile(t, dir, "cleanup.sql", content)

	script, err := LoadScript(path)
	require.NoError(t, err)

	assert.Equal(t, path, script.Path)
	assert.Equal(t, content, script.Content)
	assert.Equal(t, Fingerprint([]byte(content)), script.Fingerprint)
	assert.Equal(t, []string{
		"DELETE FROM staging.orders WHERE loaded = 1",
		"UPDATE staging.counters SET n = 0",
	}, script.Statements)
}

func TestLoadScript_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadScript(filepath.Join(dir, "absent.sql"))
	assert.Error(t, err)

	path := writeFile(t, dir, "comments.sql", "-- nothing to run\n;\n")
	_, err = LoadScript(path)
	assert.Error(t, err)
}
