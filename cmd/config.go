package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/mrdiff/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and edit the configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the commented default configuration",
	Long: `Write the default configuration to --config, or to .mrdiff/config.yaml
when no config file is given. Existing files are left alone.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		path := configPath()
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists", path)
		}
		if err := config.WriteDefaultConfig(path); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set KEY VALUE",
	Short: "Set a configuration value, keeping comments and layout",
	Long: `Set a dotted configuration key in the active config file.

Examples:
  mrdiff config set ui.scroll_step 5
  mrdiff config set theme.preset gruvbox-light
  mrdiff config set highlight.enabled false`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configPath()
		if err := config.SetValue(path, args[0], args[1]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s = %s (%s)\n", args[0], args[1], path)
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file in use",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintln(cmd.OutOrStdout(), configPath())
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd, configSetCmd, configPathCmd)
}

// configPath returns the file config commands act on: --config, else the
// file viper loaded, else the project-local default.
func configPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	if used := viper.ConfigFileUsed(); used != "" {
		return used
	}
	return filepath.Clean(localConfigPath)
}
