package cmd

import (
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"sqlwrapper/config"
	"sqlwrapper/db"
	"sqlwrapper/logger"
	"sqlwrapper/printer"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Settings are the global options resolved flag -> env -> default
type Settings struct {
	Entry     string
	Schema    string
	ConfigDir string
	LogLevel  string
	Printer   string
	Verbose   bool
}

var v = viper.New()

var (
	settings   Settings
	active     db.Connector
	activeMu   sync.Mutex
	signalOnce sync.Once
)

var rootCmd = &cobra.Command{
	Use:           "sqlwrapper",
	Short:         "sqlwrapper CLI tool",
	Long:          "Query and load SQL Server, Oracle and MariaDB databases described in an INI file",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		settings = loadSettings()

		// Printer selection is read from the environment by printer.New
		if settings.Printer != "" {
			os.Setenv(printer.PrinterEnvVar, settings.Printer)
		}
		if settings.Verbose {
			os.Setenv(printer.VerboseEnvVar, "true")
		}
		InitPrinter()

		logger.Init(logger.LogLevel(settings.LogLevel))

		if settings.ConfigDir != "" {
			os.Setenv(config.ConfigDirEnvVar, settings.ConfigDir)
		}

		setupGlobalCleanup()
	},
}

// Execute runs the CLI and reports a failing command through the printer
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		PrintError(err.Error())
	}
	cleanupActiveConnector()
	return err
}

func loadSettings() Settings {
	return Settings{
		Entry:     v.GetString("entry"),
		Schema:    v.GetString("schema"),
		ConfigDir: v.GetString("config-dir"),
		LogLevel:  v.GetString("log-level"),
		Printer:   v.GetString("printer"),
		Verbose:   v.GetBool("verbose"),
	}
}

// SetActiveConnector registers the open connector for cleanup on exit or signal
func SetActiveConnector(conn db.Connector) {
	activeMu.Lock()
	defer activeMu.Unlock()

	if active != nil && active != conn {
		if err := active.Close(); err != nil {
			logger.Warnf("Failed to close previous connector: %v", err)
		}
	}
	active = conn
}

// GetActiveConnector returns the connector registered for cleanup
func GetActiveConnector() db.Connector {
	activeMu.Lock()
	defer activeMu.Unlock()
	return active
}

// setupGlobalCleanup closes the active connector on SIGINT or SIGTERM
func setupGlobalCleanup() {
	signalOnce.Do(func() {
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)

		go func() {
			sig := <-c
			PrintInfo("Received signal %v, shutting down gracefully...", sig)
			cleanupActiveConnector()
			os.Exit(130)
		}()
	})
}

func cleanupActiveConnector() {
	activeMu.Lock()
	defer activeMu.Unlock()

	if active != nil {
		if err := active.Close(); err != nil {
			logger.Warnf("Error closing connection: %v", err)
		}
		active = nil
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringP("entry", "e", "", "Configuration entry to connect to; a menu is shown when empty (env: SQLWRAPPER_ENTRY)")
	flags.String("schema", "", "Default schema for unqualified table names (env: SQLWRAPPER_SCHEMA)")
	flags.String("config-dir", "", "Directory searched first for db_config.ini (env: SQLWRAPPER_CONFIG_DIR)")
	flags.String("log-level", "warn", "Log level (debug, info, warn, error) (env: SQLWRAPPER_LOG_LEVEL)")
	flags.String("printer", "", "Output format: human, json or test (env: SQLWRAPPER_PRINTER)")
	flags.BoolP("verbose", "v", false, "Enable verbose output (env: SQLWRAPPER_VERBOSE)")

	v.SetEnvPrefix("SQLWRAPPER")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(flags); err != nil {
		panic(err)
	}

	rootCmd.AddCommand(lsCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(selectCmd)
	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(execCmd)
	rootCmd.AddCommand(tablesCmd)
	rootCmd.AddCommand(columnsCmd)
	rootCmd.AddCommand(schemasCmd)
	rootCmd.AddCommand(databasesCmd)
	rootCmd.AddCommand(viewsCmd)
	rootCmd.AddCommand(insertCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(truncateCmd)
	rootCmd.AddCommand(dropCmd)
}
