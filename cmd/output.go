package cmd

import (
	"sqlwrapper/db"
	"sqlwrapper/printer"
)

type OutputLevel = printer.OutputLevel
type EntrySummary = printer.EntrySummary
type Printer = printer.Printer

const (
	LevelSuccess = printer.LevelSuccess
	LevelWarning = printer.LevelWarning
	LevelError   = printer.LevelError
	LevelInfo    = printer.LevelInfo
)

// Global printer instance
var printerInstance printer.Printer

// InitPrinter initializes the global printer based on environment variables
func InitPrinter() {
	printerInstance = printer.New()
}

func current() printer.Printer {
	if printerInstance == nil {
		InitPrinter()
	}
	return printerInstance
}

// PrintOutput prints formatted output using the global printer
func PrintOutput(level OutputLevel, message string, args ...interface{}) {
	current().PrintOutput(level, message, args...)
}

// PrintSuccess prints a success message
func PrintSuccess(message string, args ...interface{}) {
	current().PrintSuccess(message, args...)
}

// PrintWarning prints a warning message
func PrintWarning(message string, args ...interface{}) {
	current().PrintWarning(message, args...)
}

// PrintError prints an error message
func PrintError(message string, args ...interface{}) {
	current().PrintError(message, args...)
}

// PrintInfo prints an info message (only in verbose mode)
func PrintInfo(message string, args ...interface{}) {
	current().PrintInfo(message, args...)
}

func PrintSeparator(title string) {
	current().PrintSeparator(title)
}

func PrintCommand(cmd string) {
	current().PrintCommand(cmd)
}

func PrintSection(title string) {
	current().PrintSection(title)
}

func PrintSectionEnd() {
	current().PrintSectionEnd()
}

// PrintObject prints database object information
func PrintObject(objType, name string) {
	current().PrintObject(objType, name)
}

// DisplayFrame prints a result set
func DisplayFrame(title string, frame *db.Frame) {
	current().DisplayFrame(title, frame)
}

// DisplayEntries prints the configured databases
func DisplayEntries(location string, entries []EntrySummary) {
	current().DisplayEntries(location, entries)
}

// DisplayValues prints a key/value listing
func DisplayValues(title string, values map[string]string) {
	current().DisplayValues(title, values)
}
