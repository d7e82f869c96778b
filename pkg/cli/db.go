package cli

import (
	"github.com/spf13/cobra"

	"github.com/hwangq/pgframe"
	"github.com/hwangq/pgframe/pkg/config"
)

func open(settingsPath string) (*pgframe.DB, error) {
	cfg, err := config.Load(settingsPath)
	if err != nil {
		return nil, err
	}
	return pgframe.Open(*cfg)
}

// NewPingCmd builds the `ping` command: open a connection, verify the
// server responds, close.
func NewPingCmd() *cobra.Command {
	var settings string

	cmd := &cobra.Command{
		Use:   "ping",
		Short: "Verify the database responds",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := open(settings)
			if err != nil {
				return err
			}
			defer db.Close()
			cmd.Println("OK")
			return nil
		},
	}
	cmd.Flags().StringVar(&settings, "config", "config.yaml", "Settings file path")
	return cmd
}

// NewQueryCmd builds the `query` command: run a SELECT and print the
// result as an aligned table.
func NewQueryCmd() *cobra.Command {
	var (
		settings string
		count    int
	)

	cmd := &cobra.Command{
		Use:   "query <select-statement>",
		Short: "Run a SELECT query and print the result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := open(settings)
			if err != nil {
				return err
			}
			defer db.Close()

			f, err := db.SelectFrame(cmd.Context(), args[0], count)
			if err != nil {
				return err
			}
			cmd.Println(f.String())
			return nil
		},
	}
	cmd.Flags().StringVar(&settings, "config", "config.yaml", "Settings file path")
	cmd.Flags().IntVarP(&count, "count", "n", pgframe.All, "Maximum rows to fetch (-1 for all)")
	return cmd
}

// NewExecCmd builds the `exec` command: run a mutating statement with
// optional positional values and commit it.
func NewExecCmd() *cobra.Command {
	var settings string

	cmd := &cobra.Command{
		Use:   "exec <statement> [value...]",
		Short: "Run a mutating statement and commit",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := open(settings)
			if err != nil {
				return err
			}
			defer db.Close()

			values := make([]interface{}, 0, len(args)-1)
			for _, v := range args[1:] {
				values = append(values, v)
			}
			return db.Exec(cmd.Context(), args[0], values...)
		},
	}
	cmd.Flags().StringVar(&settings, "config", "config.yaml", "Settings file path")
	return cmd
}
