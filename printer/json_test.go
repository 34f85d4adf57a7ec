package printer

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"
	"time"

	"sqlwrapper/db"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
)

// captureJSONOutput captures stdout and parses JSON output
func captureJSONOutput(t *testing.T, f func()) JSONOutput {
	t.Helper()
	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	f()

	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	io.Copy(&buf, r)

	var output JSONOutput
	err := json.Unmarshal(buf.Bytes(), &output)
	if err != nil {
		t.Fatalf("Failed to parse JSON output: %v\nOutput: %s", err, buf.String())
	}

	return output
}

func TestNewJSONPrinter(t *testing.T) {
	printer := NewJSONPrinter(true)
	assert.NotNil(t, printer)
	assert.True(t, printer.verbose)

	printer = NewJSONPrinter(false)
	assert.NotNil(t, printer)
	assert.False(t, printer.verbose)
}

func TestJSONPrinter_PrintOutput_Success(t *testing.T) {
	printer := NewJSONPrinter(false)
	output := captureJSONOutput(t, func() {
		printer.PrintOutput(LevelSuccess, "Test success message")
	})

	assert.Equal(t, "success", output.Level)
	assert.Equal(t, "Test success message", output.Message)
	assert.NotEmpty(t, output.Timestamp)

	// Verify timestamp is valid RFC3339
	_, err := time.Parse(time.RFC3339, output.Timestamp)
	assert.NoError(t, err)
}

func TestJSONPrinter_PrintOutput_Warning(t *testing.T) {
	printer := NewJSONPrinter(false)
	output := captureJSONOutput(t, func() {
		printer.PrintOutput(LevelWarning, "Test warning message")
	})

	assert.Equal(t, "warning", output.Level)
	assert.Equal(t, "Test warning message", output.Message)
}

func TestJSONPrinter_PrintOutput_Error(t *testing.T) {
	printer := NewJSONPrinter(false)
	output := captureJSONOutput(t, func() {
		printer.PrintOutput(LevelError, "Test error message")
	})

	assert.Equal(t, "error", output.Level)
	assert.Equal(t, "Test error message", output.Message)
}

func TestJSONPrinter_PrintOutput_Info_Verbose(t *testing.T) {
	printer := NewJSONPrinter(true)
	output := captureJSONOutput(t, func() {
		printer.PrintOutput(LevelInfo, "Test info message")
	})

	assert.Equal(t, "info", output.Level)
	assert.Equal(t, "Test info message", output.Message)
}

func TestJSONPrinter_PrintOutput_Info_NonVerbose(t *testing.T) {
	printer := NewJSONPrinter(false)

	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	printer.PrintOutput(LevelInfo, "This should not appear")

	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	io.Copy(&buf, r)

	// Should produce no output in non-verbose mode
	assert.Empty(t, buf.String())
}

func TestJSONPrinter_PrintOutput_WithFormatting(t *testing.T) {
	printer := NewJSONPrinter(false)
	output := captureJSONOutput(t, func() {
		printer.PrintOutput(LevelSuccess, "User %s has %d items", "John", 42)
	})

	assert.Equal(t, "success", output.Level)
	assert.Equal(t, "User John has 42 items", output.Message)
}

func TestJSONPrinter_PrintSuccess(t *testing.T) {
	printer := NewJSONPrinter(false)
	output := captureJSONOutput(t, func() {
		printer.PrintSuccess("Operation completed")
	})

	assert.Equal(t, "success", output.Level)
	assert.Equal(t, "Operation completed", output.Message)
}

func TestJSONPrinter_PrintWarning(t *testing.T) {
	printer := NewJSONPrinter(false)
	output := captureJSONOutput(t, func() {
		printer.PrintWarning("Proceeding with caution")
	})

	assert.Equal(t, "warning", output.Level)
	assert.Equal(t, "Proceeding with caution", output.Message)
}

func TestJSONPrinter_PrintError(t *testing.T) {
	printer := NewJSONPrinter(false)
	output := captureJSONOutput(t, func() {
		printer.PrintError("Something went wrong")
	})

	assert.Equal(t, "error", output.Level)
	assert.Equal(t, "Something went wrong", output.Message)
}

func TestJSONPrinter_PrintInfo(t *testing.T) {
	printer := NewJSONPrinter(true)
	output := captureJSONOutput(t, func() {
		printer.PrintInfo("Additional information")
	})

	assert.Equal(t, "info", output.Level)
	assert.Equal(t, "Additional information", output.Message)
}

func TestJSONPrinter_PrintSeparator_WithTitle(t *testing.T) {
	printer := NewJSONPrinter(false)
	output := captureJSONOutput(t, func() {
		printer.PrintSeparator("Section Break")
	})

	assert.Equal(t, "info", output.Level)
	assert.Equal(t, "separator", output.Message)
	assert.NotNil(t, output.Data)
	assert.Equal(t, "separator", output.Data["type"])
	assert.Equal(t, "Section Break", output.Data["title"])
}

func TestJSONPrinter_PrintSeparator_WithoutTitle(t *testing.T) {
	printer := NewJSONPrinter(false)
	output := captureJSONOutput(t, func() {
		printer.PrintSeparator("")
	})

	assert.Equal(t, "info", output.Level)
	assert.Equal(t, "separator", output.Message)
	assert.NotNil(t, output.Data)
	assert.Equal(t, "separator", output.Data["type"])
	assert.Nil(t, output.Data["title"])
}

func TestJSONPrinter_PrintCommand(t *testing.T) {
	printer := NewJSONPrinter(false)
	output := captureJSONOutput(t, func() {
		printer.PrintCommand("TRUNCATE TABLE shop.orders")
	})

	assert.Equal(t, "info", output.Level)
	assert.Equal(t, "executing command", output.Message)
	assert.NotNil(t, output.Data)
	assert.Equal(t, "TRUNCATE TABLE shop.orders", output.Data["command"])
}

func TestJSONPrinter_PrintSection(t *testing.T) {
	printer := NewJSONPrinter(false)
	output := captureJSONOutput(t, func() {
		printer.PrintSection("Tables")
	})

	assert.Equal(t, "info", output.Level)
	assert.Equal(t, "section start", output.Message)
	assert.NotNil(t, output.Data)
	assert.Equal(t, "Tables", output.Data["title"])
}

func TestJSONPrinter_PrintSectionEnd(t *testing.T) {
	printer := NewJSONPrinter(false)
	output := captureJSONOutput(t, func() {
		printer.PrintSectionEnd()
	})

	assert.Equal(t, "info", output.Level)
	assert.Equal(t, "section end", output.Message)
	assert.Nil(t, output.Data)
}

func TestJSONPrinter_PrintObject(t *testing.T) {
	printer := NewJSONPrinter(false)
	output := captureJSONOutput(t, func() {
		printer.PrintObject("table", "users")
	})

	assert.Equal(t, "info", output.Level)
	assert.Equal(t, "object", output.Message)
	assert.NotNil(t, output.Data)
	assert.Equal(t, "table", output.Data["type"])
	assert.Equal(t, "users", output.Data["name"])
}

func TestJSONPrinter_DisplayFrame(t *testing.T) {
	printer := NewJSONPrinter(false)

	frame := db.NewFrame("id", "name", "created", "active")
	frame.Append(int64(1), "alice", time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), true)
	frame.Append(int64(2), nil, time.Date(2024, 5, 2, 9, 30, 0, 0, time.UTC), false)

	output := captureJSONOutput(t, func() {
		printer.DisplayFrame("shop.customers", frame)
	})

	assert.Equal(t, "info", output.Level)
	assert.Equal(t, "frame", output.Message)
	assert.NotNil(t, output.Data)
	assert.Equal(t, "shop.customers", output.Data["title"])
	assert.Equal(t, float64(2), output.Data["count"])
	assert.Equal(t, []interface{}{"id", "name", "created", "active"}, output.Data["columns"])

	rows, ok := output.Data["rows"].([]interface{})
	assert.True(t, ok, "rows should be an array")
	assert.Len(t, rows, 2)

	first, ok := rows[0].([]interface{})
	assert.True(t, ok)
	assert.Equal(t, []interface{}{float64(1), "alice", "2024-05-01", true}, first)

	second, ok := rows[1].([]interface{})
	assert.True(t, ok)
	assert.Nil(t, second[1])
	assert.Equal(t, "2024-05-02 09:30:00", second[2])
}

func TestJSONPrinter_DisplayFrame_Nil(t *testing.T) {
	printer := NewJSONPrinter(false)

	output := captureJSONOutput(t, func() {
		printer.DisplayFrame("nothing", nil)
	})

	assert.Equal(t, "frame", output.Message)
	assert.Equal(t, float64(0), output.Data["count"])
}

func TestJSONPrinter_DisplayEntries(t *testing.T) {
	printer := NewJSONPrinter(false)
	entries := []EntrySummary{
		{Name: "warehouse", Backend: "sqlserver", Server: "sql01", Database: "sales"},
		{Name: "tns_only", Backend: "oracle"},
	}

	output := captureJSONOutput(t, func() {
		printer.DisplayEntries("/etc/db_config.ini", entries)
	})

	assert.Equal(t, "entries", output.Message)
	assert.Equal(t, "/etc/db_config.ini", output.Data["location"])

	list, ok := output.Data["entries"].([]interface{})
	assert.True(t, ok)
	assert.Len(t, list, 2)

	first, ok := list[0].(map[string]interface{})
	assert.True(t, ok)
	assert.Equal(t, "warehouse", first["name"])
	assert.Equal(t, "sqlserver", first["backend"])

	second, ok := list[1].(map[string]interface{})
	assert.True(t, ok)
	assert.NotContains(t, second, "server", "empty fields are omitted")
}

func TestJSONPrinter_DisplayValues(t *testing.T) {
	printer := NewJSONPrinter(false)

	output := captureJSONOutput(t, func() {
		printer.DisplayValues("warehouse", map[string]string{"server": "sql01"})
	})

	assert.Equal(t, "values", output.Message)
	assert.Equal(t, "warehouse", output.Data["title"])
	assert.Equal(t, map[string]interface{}{"server": "sql01"}, output.Data["values"])
}

func TestJSONPrinter_OutputFormat_ValidJSON(t *testing.T) {
	printer := NewJSONPrinter(false)

	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	printer.PrintSuccess("Test message")

	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	io.Copy(&buf, r)

	// Verify output is valid JSON
	var result map[string]interface{}
	err := json.Unmarshal(buf.Bytes(), &result)
	assert.NoError(t, err, "Output should be valid JSON")

	// Verify required fields exist
	assert.Contains(t, result, "timestamp")
	assert.Contains(t, result, "level")
	assert.Contains(t, result, "message")
}

func TestJSONPrinter_MultipleOutputs(t *testing.T) {
	printer := NewJSONPrinter(true)

	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	printer.PrintSuccess("First message")
	printer.PrintWarning("Second message")
	printer.PrintInfo("Third message")

	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	io.Copy(&buf, r)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 3, "Should have 3 JSON objects")

	// Verify each line is valid JSON
	for i, line := range lines {
		var output JSONOutput
		err := json.Unmarshal([]byte(line), &output)
		assert.NoError(t, err, "Line %d should be valid JSON", i+1)
	}
}
