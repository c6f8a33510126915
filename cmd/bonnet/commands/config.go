package commands

import (
	"fmt"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/bonnetkb/bonnet/config"
	"github.com/bonnetkb/bonnet/errors"
)

// ConfigCmd represents the config command
var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Show configuration",
	Long: `Show the effective configuration.

Configuration merges, in order: built-in defaults, ~/.bonnet/bonnet.toml,
a project-local bonnet.toml found by walking up from the working
directory, and BONNET_* environment variables.

Examples:
  bonnet config show`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration as TOML",
	RunE:  runConfigShow,
}

func init() {
	ConfigCmd.AddCommand(configShowCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return errors.Wrap(err, "failed to load configuration")
	}

	rendered, err := toml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "failed to render configuration")
	}

	fmt.Fprint(cmd.OutOrStdout(), string(rendered))
	return nil
}
