package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/coursebook/internal/config"
	"github.com/mesh-intelligence/coursebook/internal/paths"
)

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize coursebook storage",
		Long: "Create the configuration directory and config.yaml, then create an empty\n" +
			"collection for every entity kind that has never been stored. Existing\n" +
			"data is left untouched.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			configDir, err := paths.ResolveConfigDir(a.flags.configDir)
			if err != nil {
				return system(fmt.Errorf("resolve config directory: %w", err))
			}
			if err := os.MkdirAll(configDir, 0o755); err != nil {
				return system(fmt.Errorf("create config directory: %w", err))
			}
			// Record an explicit --data-dir in a fresh config.yaml.
			if err := config.WriteDefault(configDir, a.flags.dataDir); err != nil {
				return system(err)
			}

			reg, done, err := a.open(cmd)
			if err != nil {
				return err
			}
			defer done()

			if err := reg.Init(cmd.Context()); err != nil {
				return system(fmt.Errorf("initialize storage: %w", err))
			}

			if a.flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), map[string]string{
					"config_dir": configDir,
					"status":     "initialized",
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Coursebook initialized successfully")
			fmt.Fprintf(cmd.OutOrStdout(), "Config: %s\n", paths.ConfigFile(configDir))
			return nil
		},
	}
}
