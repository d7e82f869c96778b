package cli

import (
	"github.com/spf13/cobra"
)

func version() string {
	return "v0.1.0"
}

// NewVersionCmd builds the `version` command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Println(version())
		},
	}
}

// NewRootCmd builds the top–level `pgframe` command.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "pgframe",
		Short: "pgframe — run queries and statements against PostgreSQL",
	}
	root.AddCommand(NewPingCmd())
	root.AddCommand(NewQueryCmd())
	root.AddCommand(NewExecCmd())
	root.AddCommand(NewVersionCmd())
	return root
}
