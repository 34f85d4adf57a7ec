package cmd

import (
	"github.com/spf13/cobra"
)

var (
	selectFlags   SelectCommand
	execFlags     ExecCommand
	insertFlags   InsertCommand
	previewFlags  PreviewCommand
	truncateFlags TruncateCommand
	dropFlags     DropCommand
)

var lsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List configured databases",
	Long:  "List every entry of the configuration file with its backend, server and database",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ls := &LsCommand{}
		return ls.Run()
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect the configuration file",
	Long:  "Show where the configuration file lives, create it from the template or show one entry",
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file path",
	Long:  "Print the path of the configuration file that would be used",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := &ConfigPathCommand{}
		return path.Run()
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Create a configuration file from the template",
	Long:  "Write the packaged db_config.ini template into dir (default: the working directory)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		initCfg := &ConfigInitCommand{}
		if len(args) == 1 {
			initCfg.Dir = args[0]
		}
		return initCfg.Run()
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show <entry>",
	Short: "Show one configuration entry",
	Long:  "Print the parameters of an entry with passwords masked",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		show := &ConfigShowCommand{Entry: args[0]}
		return show.Run()
	},
}

var selectCmd = &cobra.Command{
	Use:   "select <table>",
	Short: "Select rows from a table",
	Long:  "Run a single-table SELECT; 10 rows are returned unless --limit says otherwise (-1 for all)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sel := selectFlags
		sel.Table = args[0]
		return sel.Run(cmd.Context())
	},
}

var queryCmd = &cobra.Command{
	Use:   "query <sql>",
	Short: "Run a query and print the result",
	Long:  "Run a free-form query and print every returned row",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := &QueryCommand{SQL: args[0]}
		return query.Run(cmd.Context())
	},
}

var execCmd = &cobra.Command{
	Use:   "exec [sql]",
	Short: "Execute statements",
	Long:  "Execute one or more ;-separated statements given inline or with --file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		exec := execFlags
		if len(args) == 1 {
			exec.SQL = args[0]
		}
		return exec.Run(cmd.Context())
	},
}

var tablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "List tables",
	Long:  "List the tables of the default schema",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		tables := &TablesCommand{}
		return tables.Run(cmd.Context())
	},
}

var columnsCmd = &cobra.Command{
	Use:   "columns <table>",
	Short: "List the columns of a table",
	Long:  "List the column names of a table in ordinal order",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		columns := &ColumnsCommand{Table: args[0]}
		return columns.Run(cmd.Context())
	},
}

var schemasCmd = &cobra.Command{
	Use:   "schemas",
	Short: "List schemas (SQL Server)",
	Long:  "List the user schemas of the connected database, leaving out system schemas",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		schemas := &SchemasCommand{}
		return schemas.Run(cmd.Context())
	},
}

var databasesCmd = &cobra.Command{
	Use:   "databases",
	Short: "List databases (SQL Server)",
	Long:  "List the non-system databases hosted on the server",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		databases := &DatabasesCommand{}
		return databases.Run(cmd.Context())
	},
}

var viewsCmd = &cobra.Command{
	Use:   "views",
	Short: "List views (Oracle)",
	Long:  "List the views owned by the connected user",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		views := &ViewsCommand{}
		return views.Run(cmd.Context())
	},
}

var insertCmd = &cobra.Command{
	Use:   "insert <file> <table>",
	Short: "Insert a CSV or XLSX file into a table",
	Long:  "Load a .csv, .tsv, .txt or .xlsx file and insert its rows into an existing table",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		insert := insertFlags
		insert.File = args[0]
		insert.Table = args[1]
		return insert.Run(cmd.Context())
	},
}

var previewCmd = &cobra.Command{
	Use:   "preview <file>",
	Short: "Preview a CSV or XLSX file",
	Long:  "Print the first rows of a file and the longest value of every column",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		preview := previewFlags
		preview.File = args[0]
		return preview.Run()
	},
}

var truncateCmd = &cobra.Command{
	Use:   "truncate <table>",
	Short: "Remove every row of a table",
	Long:  "Truncate a table after confirmation - DESTRUCTIVE OPERATION",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		truncate := truncateFlags
		truncate.Table = args[0]
		return truncate.Run(cmd.Context())
	},
}

var dropCmd = &cobra.Command{
	Use:   "drop <table>",
	Short: "Drop a table",
	Long:  "Drop a table after confirmation - DESTRUCTIVE OPERATION",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		drop := dropFlags
		drop.Table = args[0]
		return drop.Run(cmd.Context())
	},
}

func init() {
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)

	selectCmd.Flags().StringSliceVar(&selectFlags.Columns, "columns", nil, "Columns to return (default: all)")
	selectCmd.Flags().StringVar(&selectFlags.Where, "where", "", "WHERE clause without the keyword")
	selectCmd.Flags().StringVar(&selectFlags.OrderBy, "order-by", "", "ORDER BY column")
	selectCmd.Flags().BoolVar(&selectFlags.Desc, "desc", false, "Sort descending")
	selectCmd.Flags().IntVar(&selectFlags.Limit, "limit", 0, "Maximum rows; 0 means 10, -1 means no limit")

	execCmd.Flags().StringVarP(&execFlags.File, "file", "f", "", "SQL script to execute")

	insertCmd.Flags().StringVar(&insertFlags.Sheet, "sheet", "", "Worksheet to load from an xlsx file (default: the first)")
	insertCmd.Flags().StringVar(&insertFlags.Delimiter, "delimiter", "", "Field separator for delimited text files")

	previewCmd.Flags().StringVar(&previewFlags.Sheet, "sheet", "", "Worksheet to load from an xlsx file (default: the first)")
	previewCmd.Flags().StringVar(&previewFlags.Delimiter, "delimiter", "", "Field separator for delimited text files")
	previewCmd.Flags().IntVarP(&previewFlags.Rows, "rows", "n", 10, "Rows to show")

	truncateCmd.Flags().BoolVarP(&truncateFlags.Yes, "yes", "y", false, "Do not ask for confirmation")
	dropCmd.Flags().BoolVarP(&dropFlags.Yes, "yes", "y", false, "Do not ask for confirmation")
}
