package printer

import (
	"sqlwrapper/config"
	"sqlwrapper/db"
)

// OutputLevel represents the severity level of output messages
type OutputLevel int

const (
	LevelSuccess OutputLevel = iota
	LevelWarning
	LevelError
	LevelInfo
)

// EntrySummary is one line of the configured database listing
type EntrySummary struct {
	Name     string `json:"name" yaml:"name"`
	Backend  string `json:"backend" yaml:"backend"`
	Server   string `json:"server,omitempty" yaml:"server,omitempty"`
	Database string `json:"database,omitempty" yaml:"database,omitempty"`
}

// Summarize extracts the listing fields from a configuration entry
func Summarize(entry config.Entry) EntrySummary {
	database := entry.GetOr(config.Database, "")
	if database == "" {
		database = entry.GetOr(config.ServiceName, entry.GetOr(config.TNSAlias, ""))
	}
	return EntrySummary{
		Name:     entry.Name,
		Backend:  entry.GetOr(config.Type, "?"),
		Server:   entry.GetOr(config.Server, ""),
		Database: database,
	}
}

// Printer interface defines all output methods for the sqlwrapper CLI
type Printer interface {
	PrintOutput(level OutputLevel, message string, args ...interface{})
	PrintSuccess(message string, args ...interface{})
	PrintWarning(message string, args ...interface{})
	PrintError(message string, args ...interface{})
	PrintInfo(message string, args ...interface{})
	PrintSeparator(title string)
	PrintCommand(cmd string)
	PrintSection(title string)
	PrintSectionEnd()
	PrintObject(objType, name string)
	DisplayFrame(title string, frame *db.Frame)
	DisplayEntries(location string, entries []EntrySummary)
	DisplayValues(title string, values map[string]string)
}
