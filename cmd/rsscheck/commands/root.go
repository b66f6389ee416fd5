// Package commands implements the CLI commands for rsscheck.
package commands

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/thoreinstein/rsscheck/cmd"
	"github.com/thoreinstein/rsscheck/internal/config"
	"github.com/thoreinstein/rsscheck/internal/errors"
	"github.com/thoreinstein/rsscheck/internal/logging"
)

// verbosity holds the count of -v flags.
var verbosity int

// quiet holds the value of the -q/--quiet flag.
var quiet bool

// logFormat holds the value of the --log-format flag.
var logFormat string

// logFile holds the path to the log file.
var logFile string

// configFile holds the value of the --config flag.
var configFile string

// cfg is the effective configuration, set by initConfig.
var cfg *config.Config

// configLoadErr holds any error that occurred during config loading.
var configLoadErr error

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"increase verbosity level (e.g., -v, -vv)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false,
		"suppress non-error output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text",
		"log format: text, json")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		"write logs to file in JSON format")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "",
		"config file (default: ./config.yaml or $XDG_CONFIG_HOME/rsscheck/config.yaml)")

	rootCmd.PersistentFlags().Duration("timeout", config.DefaultTimeout,
		"HTTP request timeout (0 disables)")
	rootCmd.PersistentFlags().Int("workers", config.DefaultWorkers,
		"number of feeds validated concurrently")
	rootCmd.PersistentFlags().Bool("discover", false,
		"fall back to HTML <link rel=\"alternate\"> autodiscovery for site URLs")
	registerValidateFlags(rootCmd)

	rootCmd.Version = cmd.Version
	rootCmd.SetVersionTemplate("rsscheck version {{.Version}}\n")

	// Silence errors and usage so we can control error output
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}

// initConfig rebuilds the viper state on every execution so that a
// previous --config does not leak into the next run.
func initConfig() {
	viper.Reset()
	config.Init()
	viper.SetDefault("user_agent", cmd.UserAgent())
	bindFlags()
	cfg, configLoadErr = config.Load(configFile)
}

// bindFlags lets command-line flags override config file and environment
// values.
func bindFlags() {
	for _, name := range []string{"timeout", "workers", "discover"} {
		_ = viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name))
	}
	_ = viper.BindPFlag("format", rootCmd.Flags().Lookup("format"))
}

var rootCmd = &cobra.Command{
	Use:   "rsscheck <file|directory|url>",
	Short: "Validate RSS 2.0 feeds",
	Long: `rsscheck validates RSS 2.0 feeds for XML syntax and RSS 2.0 compliance.

The target is one of:
  - a feed file
  - a directory, searched recursively for index.xml, rss.xml, feed.xml
    and atom.xml
  - a feed URL ending in .xml, .rss or .atom
  - a site URL, probed at /index.xml, /feed.xml, /rss.xml and /atom.xml

Exit codes:
  0 - All feeds are valid
  1 - A feed failed validation, no feeds were found, or bad usage
  2 - System error (report or log file could not be written)`,
	Example: `  # Validate a single feed file
  rsscheck public/index.xml

  # Validate every feed of a generated site
  rsscheck public/

  # Probe a site for its feeds
  rsscheck https://example.com

  # Machine-readable report
  rsscheck public/ --format json --output report.json

  See Also: rsscheck serve, rsscheck config, rsscheck version`,
	Args: cobra.MaximumNArgs(1),
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if err := setupLogging(cmd); err != nil {
			return err
		}
		return checkConfig(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			_ = cmd.Help()
			return errors.NewUserError(errors.ErrMissingTarget, "Run 'rsscheck <file|directory|url>'")
		}
		return runValidate(cmd, args[0])
	},
}

// setupLogging configures the default logger based on verbosity flags.
func setupLogging(cmd *cobra.Command) error {
	if quiet && verbosity > 0 {
		return errors.NewUserError(errors.New("--quiet and --verbose are mutually exclusive"), "Pass only one of them")
	}

	level := slog.LevelError
	if !quiet {
		v := verbosity
		// Flags win over RSSCHECK_DEBUG.
		if v == 0 {
			v = logging.VerbosityFromEnv(os.Getenv("RSSCHECK_DEBUG"))
		}
		level = logging.LevelFromVerbosity(v)
	}

	logCfg := logging.Config{
		Level:  level,
		Format: logging.Format(logFormat),
		Output: cmd.ErrOrStderr(),
	}
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			return errors.NewSystemError(err, "failed to open log file")
		}
		logCfg.Mirrors = append(logCfg.Mirrors, f)
	}

	logger := logging.New(logCfg)
	slog.SetDefault(logger)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logging.NewContext(ctx, logger))

	return nil
}

// checkConfig reports config load and validation errors.
func checkConfig(cmd *cobra.Command) error {
	// Skip validation for help and version commands
	if cmd.Name() == "help" || cmd.Name() == "version" || isConfigCommand(cmd) {
		return nil
	}

	if configLoadErr != nil {
		return errors.NewConfigError(configLoadErr)
	}
	if cfg == nil {
		return errors.NewConfigError(errors.New("configuration not loaded"))
	}
	if errs := config.Validate(cfg); len(errs) > 0 {
		msgs := make([]string, 0, len(errs))
		for _, e := range errs {
			msgs = append(msgs, e.Error())
		}
		return errors.NewConfigError(errors.Wrapf(errors.ErrInvalidConfig, "%s", strings.Join(msgs, "; ")))
	}
	return nil
}

// Reported reports whether err was already explained on stdout, so main
// only has to set the exit code.
func Reported(err error) bool {
	return errors.Is(err, errors.ErrNoSources) || errors.Is(err, errors.ErrValidationFailed)
}

// Execute runs the root command. The context is cancelled on SIGINT or
// SIGTERM.
func Execute() error {
	ctx, stop := signalContext()
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}
