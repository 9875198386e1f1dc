package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/coursebook/pkg/types"
)

func newStatsCmd(a *app) *cobra.Command {
	var prom bool
	cmd := &cobra.Command{
		Use:   "stats [kind]",
		Short: "Show how many records of each kind are stored",
		Long: `Show how many records of each kind are stored. With a kind argument
(courseTypes, course-type, courses, course, offerings, offering,
registrations, registration) only that kind is shown.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kinds := types.Kinds
			if len(args) == 1 {
				kind, err := types.ParseKind(args[0])
				if err != nil {
					return fmt.Errorf("%q: %w", args[0], err)
				}
				kinds = []types.Kind{kind}
			}

			reg, done, err := a.open(cmd)
			if err != nil {
				return err
			}
			defer done()

			stats, err := reg.Stats(cmd.Context())
			if err != nil {
				return classify(err)
			}

			switch {
			case prom:
				if err := a.metrics.WriteText(cmd.OutOrStdout()); err != nil {
					return system(err)
				}
				return nil
			case a.flags.jsonMode && len(kinds) == 1:
				return printJSON(cmd.OutOrStdout(), map[types.Kind]int{kinds[0]: stats.Count(kinds[0])})
			case a.flags.jsonMode:
				return printJSON(cmd.OutOrStdout(), stats)
			}

			rows := make([][]string, len(kinds))
			for i, kind := range kinds {
				rows[i] = []string{string(kind), strconv.Itoa(stats.Count(kind))}
			}
			printTable(cmd.OutOrStdout(), "kind", []string{"KIND", "RECORDS"}, rows)
			return nil
		},
	}
	cmd.Flags().BoolVar(&prom, "prometheus", false, "print counts in the Prometheus text format")
	return cmd
}
