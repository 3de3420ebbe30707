package cli

var (
	Version   = ""
	CommitSHA = ""
)

// Globals defines global flags available to all commands.
type Globals struct {
	Telemetry bool `help:"Show timing telemetry for operations."`
}

type Commands struct {
	Globals

	Derive     DeriveCmd     `cmd:"" help:"Derive the cash-flow statement for a period file."`
	Categories CategoriesCmd `cmd:"" help:"Print the account category taxonomy."`
	Web        WebCmd        `cmd:"" help:"Start the derivation web server."`
}
