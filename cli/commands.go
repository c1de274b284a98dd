package cli

var (
	Version   = ""
	CommitSHA = ""
)

// Globals defines global flags available to all commands. Every flag can
// also be set from the environment or a .env file.
type Globals struct {
	Telemetry  bool   `help:"Show timing telemetry for operations."`
	LogLevel   string `help:"Log level (${enum})." enum:"debug,info,warn,error" default:"warn" env:"LOG_LEVEL"`
	File       string `help:"Transaction file." short:"f" type:"path" default:"financial_transactions.csv" env:"FINANCE_FILE"`
	ReportFile string `help:"Report file written by the report command and session." type:"path" default:"report.txt" env:"FINANCE_REPORT"`
}

type Commands struct {
	Globals

	Session SessionCmd `cmd:"" default:"withargs" help:"Start the interactive menu (default)."`
	View    ViewCmd    `cmd:"" help:"Print the transactions as a table."`
	Analyze AnalyzeCmd `cmd:"" help:"Print totals and the balance by customer."`
	Report  ReportCmd  `cmd:"" help:"Write the financial report."`
	Add     AddCmd     `cmd:"" help:"Add a transaction and save the file."`
	Check   CheckCmd   `cmd:"" help:"Report rows of the transaction file that cannot be loaded."`
	Doctor  DoctorCmd  `cmd:"" help:"Doctor utilities for debugging transaction files."`
}
