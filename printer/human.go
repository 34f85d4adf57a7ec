package printer

import (
	"fmt"
	"os"
	"strings"

	"sqlwrapper/db"

	"github.com/jedib0t/go-pretty/v6/table"
	"gopkg.in/yaml.v3"
)

// Color codes for terminal output
const (
	ColorReset  = "\033[0m"
	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorBlue   = "\033[34m"
	ColorPurple = "\033[35m"
	ColorCyan   = "\033[36m"
	ColorWhite  = "\033[37m"
	ColorGray   = "\033[90m"
	ColorBold   = "\033[1m"
)

// HumanPrinter implements Printer for human-readable terminal output
type HumanPrinter struct {
	verbose bool
}

// NewHumanPrinter creates a new human-readable console printer
func NewHumanPrinter(verbose bool) *HumanPrinter {
	return &HumanPrinter{
		verbose: verbose,
	}
}

// PrintOutput prints formatted output with colors and icons
func (p *HumanPrinter) PrintOutput(level OutputLevel, message string, args ...interface{}) {
	if len(args) > 0 {
		message = fmt.Sprintf(message, args...)
	}

	var icon, color string
	switch level {
	case LevelSuccess:
		icon = "✓"
		color = ColorGreen
	case LevelWarning:
		icon = "⚠"
		color = ColorYellow
	case LevelError:
		icon = "✗"
		color = ColorRed
	case LevelInfo:
		icon = "ℹ"
		color = ColorBlue
	default:
		icon = "•"
		color = ColorWhite
	}

	// Only print if not info level or if verbose mode is enabled
	if level != LevelInfo || p.verbose {
		fmt.Printf("%s%s%s%s%s %s\n", ColorBold, color, icon, ColorReset, ColorReset, message)
	}
}

// PrintSuccess prints a success message
func (p *HumanPrinter) PrintSuccess(message string, args ...interface{}) {
	p.PrintOutput(LevelSuccess, message, args...)
}

// PrintWarning prints a warning message
func (p *HumanPrinter) PrintWarning(message string, args ...interface{}) {
	p.PrintOutput(LevelWarning, message, args...)
}

// PrintError prints an error message
func (p *HumanPrinter) PrintError(message string, args ...interface{}) {
	p.PrintOutput(LevelError, message, args...)
}

// PrintInfo prints an info message (only in verbose mode)
func (p *HumanPrinter) PrintInfo(message string, args ...interface{}) {
	p.PrintOutput(LevelInfo, message, args...)
}

// PrintSeparator prints a beautiful separator line
func (p *HumanPrinter) PrintSeparator(title string) {
	if title != "" {
		title = fmt.Sprintf(" %s ", title)
	}
	line := strings.Repeat("═", 50)
	titleLen := len(title)
	if titleLen > 0 {
		half := (50 - titleLen) / 2
		line = strings.Repeat("═", half) + title + strings.Repeat("═", 50-titleLen-half)
	}
	fmt.Printf("%s%s%s%s\n", ColorCyan, ColorBold, line, ColorReset)
}

// PrintCommand prints a command being executed
func (p *HumanPrinter) PrintCommand(cmd string) {
	fmt.Printf("%s%s➜%s Executing: %s%s\n", ColorPurple, ColorBold, ColorReset, cmd, ColorReset)
}

// PrintSection prints a section header
func (p *HumanPrinter) PrintSection(title string) {
	fmt.Printf("\n%s%s┌─ %s%s\n", ColorBlue, ColorBold, title, ColorReset)
	fmt.Printf("%s%s│%s\n", ColorBlue, ColorBold, ColorReset)
}

// PrintSectionEnd prints a section footer
func (p *HumanPrinter) PrintSectionEnd() {
	fmt.Printf("%s%s└─%s\n", ColorBlue, ColorBold, ColorReset)
}

// PrintObject prints database object information
func (p *HumanPrinter) PrintObject(objType, name string) {
	fmt.Printf("    %s%s•%s %s%s: %s%s\n",
		ColorGreen, ColorBold, ColorReset,
		ColorCyan, objType, ColorReset,
		name)
}

func tableStyle() table.Style {
	style := table.StyleRounded
	style.Options.SeparateRows = false
	style.Options.SeparateColumns = true
	style.Options.SeparateHeader = true

	style.Box.MiddleSeparator = "─"
	style.Box.PaddingLeft = " "
	style.Box.PaddingRight = " "
	return style
}

// DisplayFrame prints a query result as a table
func (p *HumanPrinter) DisplayFrame(title string, frame *db.Frame) {
	if frame == nil || len(frame.Columns) == 0 {
		p.PrintWarning("%s: no columns returned", title)
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(tableStyle())
	if title != "" {
		t.SetTitle(colorize(title, "bold+cyan"))
	}

	header := make(table.Row, len(frame.Columns))
	for i, c := range frame.Columns {
		header[i] = colorize(c, "bold+blue")
	}
	t.AppendHeader(header)

	for _, values := range frame.Rows {
		row := make(table.Row, len(values))
		for i, v := range values {
			row[i] = formatCell(v)
		}
		t.AppendRow(row)
	}
	t.AppendFooter(table.Row{fmt.Sprintf("%d rows", frame.Len())})

	t.Render()
}

// DisplayEntries prints the configured databases
func (p *HumanPrinter) DisplayEntries(location string, entries []EntrySummary) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(tableStyle())
	t.SetTitle(colorize(location, "dim"))

	t.AppendHeader(table.Row{
		colorize("#", "bold+blue"),
		colorize("ENTRY", "bold+blue"),
		colorize("TYPE", "bold+blue"),
		colorize("SERVER", "bold+blue"),
		colorize("DATABASE", "bold+blue"),
	})
	for i, e := range entries {
		t.AppendRow(table.Row{
			i + 1,
			colorize(e.Name, "cyan"),
			colorizeBackend(e.Backend),
			orDash(e.Server),
			orDash(e.Database),
		})
	}

	t.Render()
}

// DisplayValues prints a key/value document as YAML
func (p *HumanPrinter) DisplayValues(title string, values map[string]string) {
	out, err := yaml.Marshal(map[string]map[string]string{title: values})
	if err != nil {
		p.PrintError("failed to render %s: %v", title, err)
		return
	}
	fmt.Print(string(out))
}

// Helper functions for colorization

// colorize adds ANSI color codes to text for terminal output
func colorize(text, colorType string) string {
	colors := map[string]string{
		"reset":        "\033[0m",
		"bold":         "\033[1m",
		"dim":          "\033[2m",
		"red":          "\033[31m",
		"green":        "\033[32m",
		"yellow":       "\033[33m",
		"blue":         "\033[34m",
		"magenta":      "\033[35m",
		"cyan":         "\033[36m",
		"white":        "\033[37m",
		"bold+red":     "\033[1;31m",
		"bold+green":   "\033[1;32m",
		"bold+yellow":  "\033[1;33m",
		"bold+blue":    "\033[1;34m",
		"bold+magenta": "\033[1;35m",
		"bold+cyan":    "\033[1;36m",
		"bold+white":   "\033[1;37m",
	}

	// Check if the exact color type exists first (e.g., "bold+blue")
	if code, exists := colors[colorType]; exists {
		return code + text + colors["reset"]
	}

	// Handle multiple color types by splitting (e.g., "bold+blue")
	parts := strings.Split(colorType, "+")
	var codes []string
	for _, part := range parts {
		if code, exists := colors[part]; exists {
			codes = append(codes, code)
		}
	}

	if len(codes) == 0 {
		return text
	}

	return strings.Join(codes, "") + text + colors["reset"]
}

// colorizeBackend adds colors based on the configured backend type
func colorizeBackend(backend string) string {
	kind, err := db.ParseBackendType(backend)
	if err != nil {
		return colorize(backend, "bold+red")
	}
	switch kind {
	case db.SQLServer:
		return colorize(string(kind), "blue")
	case db.Oracle:
		return colorize(string(kind), "red")
	case db.MariaDB:
		return colorize(string(kind), "magenta")
	default:
		return string(kind)
	}
}

// formatCell renders a value, dimming NULLs
func formatCell(v any) string {
	if v == nil {
		return colorize("NULL", "dim")
	}
	return db.FormatValue(v)
}

func orDash(s string) string {
	if s == "" {
		return colorize("─", "dim")
	}
	return s
}
