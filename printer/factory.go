package printer

import "os"

const (
	PrinterEnvVar = "SQLWRAPPER_PRINTER"
	VerboseEnvVar = "SQLWRAPPER_VERBOSE"
)

// New creates a new Printer based on environment variables
// Reads SQLWRAPPER_PRINTER for printer type (test/json/human, default: human)
// Reads SQLWRAPPER_VERBOSE for verbose mode
func New() Printer {
	return NewWithType(os.Getenv(PrinterEnvVar), os.Getenv(VerboseEnvVar) != "")
}

// NewWithType creates a new Printer of the specified type
func NewWithType(printerType string, verbose bool) Printer {
	switch printerType {
	case "test":
		return NewTestPrinter(verbose)
	case "json":
		return NewJSONPrinter(verbose)
	default:
		return NewHumanPrinter(verbose)
	}
}
