package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/spliceplot/pkg/config"
)

// configCommand creates the config command.
func (c *CLI) configCommand() *cobra.Command {
	var effective bool
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the configuration as TOML",
		Long: `Print the configuration as TOML.

Without flags the built-in defaults are printed, ready to be saved as a
starting point:

  spliceplot config > "$(spliceplot config path)"

With --effective the loaded file merged over the defaults is printed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default()
			if effective {
				loaded, err := c.loadConfig()
				if err != nil {
					return err
				}
				cfg = loaded
			}
			return cfg.Encode(cmd.OutOrStdout())
		},
	}
	cmd.Flags().BoolVar(&effective, "effective", false, "print the loaded configuration")

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the default config file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.DefaultPath()
			if err != nil {
				return fmt.Errorf("get config dir: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	})
	return cmd
}
