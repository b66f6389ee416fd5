// Package config provides configuration management for rsscheck using Viper.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/thoreinstein/rsscheck/internal/paths"
)

// EnvPrefix is the prefix of environment variables read by rsscheck.
const EnvPrefix = "RSSCHECK"

// Defaults.
const (
	DefaultTimeout   = 30 * time.Second
	DefaultWorkers   = 1
	DefaultFormat    = "text"
	DefaultMaxSize   = 10 * 1024 * 1024
	DefaultUserAgent = "rsscheck (+https://github.com/thoreinstein/rsscheck)"
)

// Config represents the top-level configuration structure.
type Config struct {
	// Timeout bounds every HTTP request. Zero disables the timeout.
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`
	// UserAgent is sent with every HTTP request.
	UserAgent string `mapstructure:"user_agent" yaml:"user_agent,omitempty"`
	// Workers is the number of feeds validated concurrently.
	Workers int `mapstructure:"workers" yaml:"workers"`
	// Format selects the report format: text, json, yaml or toml.
	Format string `mapstructure:"format" yaml:"format"`
	// MaxSize caps the number of bytes read from a single feed.
	MaxSize int64 `mapstructure:"max_size" yaml:"max_size"`
	// Discover enables HTML autodiscovery when base URL probing finds nothing.
	Discover bool `mapstructure:"discover" yaml:"discover"`
}

// Defaults returns the built-in configuration. UserAgent is left empty so
// a config file written from it keeps following the binary's version.
func Defaults() *Config {
	return &Config{
		Timeout: DefaultTimeout,
		Workers: DefaultWorkers,
		Format:  DefaultFormat,
		MaxSize: DefaultMaxSize,
	}
}

// Init initializes Viper with default configuration.
// Call this once at application startup before accessing config values.
func Init() {
	// Config file settings
	viper.SetConfigName("config")

	for _, dir := range paths.ConfigSearchPaths() {
		viper.AddConfigPath(dir)
	}

	loadDotEnv(".env")

	// Environment variable support
	viper.SetEnvPrefix(EnvPrefix)
	viper.AutomaticEnv()

	// Defaults
	viper.SetDefault("timeout", DefaultTimeout)
	viper.SetDefault("user_agent", DefaultUserAgent)
	viper.SetDefault("workers", DefaultWorkers)
	viper.SetDefault("format", DefaultFormat)
	viper.SetDefault("max_size", DefaultMaxSize)
	viper.SetDefault("discover", false)
}

// loadDotEnv exports the variables of a .env file into the process
// environment. Existing variables are not overridden and a missing file is
// not an error.
func loadDotEnv(path string) {
	if _, err := os.Stat(path); err != nil {
		return
	}
	_ = godotenv.Load(path)
}

// Load reads the configuration file.
// If path is provided, it reads from that specific file.
// If path is empty, it searches in the default locations.
// Returns the loaded configuration or default values if no file is found (when path is empty).
func Load(path string) (*Config, error) {
	if path != "" {
		viper.SetConfigFile(path)
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// If user specified a path, this is an error
			if path != "" {
				return nil, fmt.Errorf("config file not found at %s: %w", path, err)
			}
			// Otherwise (implicit load), it's fine to use defaults
		} else {
			// Real read error (parsing, permissions, etc)
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}
