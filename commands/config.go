package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"binimg/config"
)

func newConfigCmd(g *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
		Long: `Manage binimg configuration files.

Subcommands:
  init      Write a configuration file with the defaults
  validate  Validate a configuration file`,
	}

	cmd.AddCommand(newConfigInitCmd(g), newConfigValidateCmd(g))
	return cmd
}

func newConfigInitCmd(g *globalOptions) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default configuration file",
		Long: `Write a configuration file holding every default.

Examples:
  # Write $XDG_CONFIG_HOME/binimg/config.yaml
  binimg config init

  # Write a specific file, replacing it if present
  binimg config init --config ./binimg.yaml --force`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := g.configFile
			if path == "" {
				path = config.GetDefaultConfigPath()
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("config file already exists at %s (use --force to overwrite)", path)
			}
			if err := config.SaveConfig(config.GetDefaultConfig(), path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Configuration written to %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")
	return cmd
}

func newConfigValidateCmd(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		Long: `Validate the binimg configuration file.

Checks for syntax errors, missing required fields, and invalid values.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(g.configFile)
			if err != nil {
				return err
			}

			displayPath := g.configFile
			if displayPath == "" {
				displayPath = config.GetDefaultConfigPath()
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Configuration file: %s\n", displayPath)
			fmt.Fprintln(out, "Validation: OK")
			fmt.Fprintln(out)
			printTable(out, [][2]string{
				{"API port", fmt.Sprintf("%d", cfg.Server.Port)},
				{"Max upload size", cfg.Server.MaxUploadSize.String()},
				{"Default name", cfg.Encode.DefaultName},
				{"Compress", fmt.Sprintf("%t", cfg.Encode.Compress)},
				{"Metrics", fmt.Sprintf("%t", cfg.Metrics.Enabled)},
				{"Log level", cfg.Logging.Level},
			})
			return nil
		},
	}
}
