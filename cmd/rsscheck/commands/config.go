package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/rsscheck/internal/config"
	"github.com/thoreinstein/rsscheck/internal/editor"
	"github.com/thoreinstein/rsscheck/internal/errors"
	"github.com/thoreinstein/rsscheck/internal/paths"
	"github.com/thoreinstein/rsscheck/pkg/fileutil"
)

var configInitForce bool

func init() {
	configInitCmd.Flags().BoolVarP(&configInitForce, "force", "f", false,
		"overwrite an existing config file")

	configCmd.AddCommand(configListCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configEditCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and manage rsscheck configuration",
	Long: `Inspect and manage the rsscheck configuration file.

Settings are resolved from flags, RSSCHECK_* environment variables (also read
from a .env file), the config file and built-in defaults, in that order.

Without a subcommand, prints the effective configuration.`,
	Example: `  # Show the effective configuration
  rsscheck config

  # Create a config file with the defaults
  rsscheck config init

See Also: rsscheck config get, rsscheck config edit`,
	RunE: runConfigList,
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the effective configuration as YAML",
	Args:  cobra.NoArgs,
	RunE:  runConfigList,
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print a single configuration value",
	Example: `  rsscheck config get timeout
  RSSCHECK_WORKERS=4 rsscheck config get workers`,
	Args: cobra.ExactArgs(1),
	RunE: runConfigGet,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file in use and the search path",
	Args:  cobra.NoArgs,
	RunE:  runConfigPath,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file containing the defaults",
	Long: `Write a config file containing the default settings.

The file is written to --config when given, otherwise to
$XDG_CONFIG_HOME/rsscheck/config.yaml.`,
	Args: cobra.NoArgs,
	RunE: runConfigInit,
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open the config file in $VISUAL or $EDITOR",
	Args:  cobra.NoArgs,
	RunE:  runConfigEdit,
}

// isConfigCommand reports whether cmd belongs to the config command tree,
// which must keep working while the configuration is broken.
func isConfigCommand(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c == configCmd {
			return true
		}
	}
	return false
}

func runConfigList(cmd *cobra.Command, _ []string) error {
	if configLoadErr != nil {
		return errors.NewConfigError(configLoadErr)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "marshaling config")
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	key := args[0]
	if !viper.IsSet(key) {
		return errors.NewUserError(errors.Newf("unknown config key %q", key),
			"Run 'rsscheck config list' to see the available keys")
	}
	fmt.Fprintln(cmd.OutOrStdout(), viper.GetString(key))
	return nil
}

func runConfigPath(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	used := viper.ConfigFileUsed()
	if used == "" {
		used = "(none)"
	}
	fmt.Fprintf(out, "config file: %s\n", used)
	fmt.Fprintln(out, "search path:")
	for _, dir := range paths.ConfigSearchPaths() {
		fmt.Fprintf(out, "  %s\n", dir)
	}
	return nil
}

// targetConfigPath is where init and edit operate.
func targetConfigPath() string {
	if configFile != "" {
		return configFile
	}
	if used := viper.ConfigFileUsed(); used != "" {
		return used
	}
	return filepath.Join(paths.ConfigDir(), "config.yaml")
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	path := targetConfigPath()
	if _, err := os.Stat(path); err == nil && !configInitForce {
		return errors.NewUserError(errors.Newf("config file already exists at %s", path),
			"Use --force to overwrite it")
	}

	data, err := yaml.Marshal(config.Defaults())
	if err != nil {
		return errors.Wrap(err, "marshaling defaults")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.NewSystemError(errors.Wrap(err, "creating config directory"), "")
	}
	if err := fileutil.AtomicWriteFile(path, data, 0o644); err != nil {
		return errors.NewSystemError(errors.Wrap(err, "writing config file"), "")
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}

func runConfigEdit(cmd *cobra.Command, _ []string) error {
	path := targetConfigPath()
	if _, err := os.Stat(path); err != nil {
		return errors.NewUserError(errors.Newf("config file not found at %s", path),
			"Run 'rsscheck config init' to create it")
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "Location: %s\n", path)
	return editor.Open(cmd.Context(), path, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
}
