package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newUpdateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "update [packages...]",
		Short: "Update the named packages and reconcile the lock files",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				// Display command usage help without returning an error.
				_ = cmd.Help()
				return nil
			}
			return c.app.Update(cmd.Context(), args, optionsFrom(cmd))
		},
	}
}
