package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newResetCmd(a *app) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete all data",
		Long:  "Reset empties every collection: course types, courses, offerings and\nregistrations. This action cannot be undone.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, done, err := a.open(cmd)
			if err != nil {
				return err
			}
			defer done()

			ok, err := confirmed(cmd, yes, "Are you sure you want to delete all data? This action cannot be undone.")
			if err != nil || !ok {
				return err
			}
			if err := reg.Reset(cmd.Context()); err != nil {
				return classify(err)
			}

			if a.flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), map[string]string{"status": "reset"})
			}
			fmt.Fprintln(cmd.OutOrStdout(), "All data cleared")
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}
