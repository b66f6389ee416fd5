package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
)

func TestInit(t *testing.T) {
	viper.Reset()

	Init()

	if got := viper.GetDuration("timeout"); got != DefaultTimeout {
		t.Errorf("timeout default = %v, want %v", got, DefaultTimeout)
	}
	if got := viper.GetInt("workers"); got != DefaultWorkers {
		t.Errorf("workers default = %d, want %d", got, DefaultWorkers)
	}
	if got := viper.GetString("format"); got != DefaultFormat {
		t.Errorf("format default = %q, want %q", got, DefaultFormat)
	}
}

func TestLoad_NoConfigFile(t *testing.T) {
	viper.Reset()

	Init()

	cfg, err := Load("")
	if err != nil {
		t.Errorf("Load() with no config file should not error: %v", err)
	}
	if cfg == nil {
		t.Fatal("expected config to be returned")
	}
	if cfg.UserAgent != DefaultUserAgent {
		t.Errorf("UserAgent = %q, want default", cfg.UserAgent)
	}
	if cfg.MaxSize != DefaultMaxSize {
		t.Errorf("MaxSize = %d, want %d", cfg.MaxSize, DefaultMaxSize)
	}
}

func TestLoad_WithConfigFile(t *testing.T) {
	viper.Reset()

	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	content := []byte("timeout: 5s\nworkers: 4\nformat: json\n")
	if err := os.WriteFile(configPath, content, 0600); err != nil {
		t.Fatal(err)
	}

	Init()

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Timeout != 5*time.Second {
		t.Errorf("Timeout = %v, want 5s", cfg.Timeout)
	}
	if cfg.Workers != 4 {
		t.Errorf("Workers = %d, want 4", cfg.Workers)
	}
	if cfg.Format != "json" {
		t.Errorf("Format = %q, want json", cfg.Format)
	}
}

func TestLoad_TOMLConfigFile(t *testing.T) {
	viper.Reset()

	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.toml")
	content := []byte("workers = 2\ndiscover = true\n")
	if err := os.WriteFile(configPath, content, 0600); err != nil {
		t.Fatal(err)
	}

	Init()

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Workers != 2 {
		t.Errorf("Workers = %d, want 2", cfg.Workers)
	}
	if !cfg.Discover {
		t.Error("Discover = false, want true")
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	viper.Reset()
	t.Setenv("RSSCHECK_WORKERS", "8")

	Init()

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Workers != 8 {
		t.Errorf("Workers = %d, want 8 from RSSCHECK_WORKERS", cfg.Workers)
	}
}

func TestLoad_ExplicitPathNotFound(t *testing.T) {
	viper.Reset()
	Init()

	_, err := Load("/non/existent/path/config.yaml")
	if err == nil {
		t.Error("Load() with non-existent explicit path should error")
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Timeout: DefaultTimeout,
			Workers: 1,
			Format:  "text",
			MaxSize: DefaultMaxSize,
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"valid", func(*Config) {}, nil},
		{"negative timeout", func(c *Config) { c.Timeout = -time.Second }, ErrNegativeTimeout},
		{"zero workers", func(c *Config) { c.Workers = 0 }, ErrWorkersTooLow},
		{"unknown format", func(c *Config) { c.Format = "xml" }, ErrInvalidFormat},
		{"zero max size", func(c *Config) { c.MaxSize = 0 }, ErrMaxSizeTooLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			errs := Validate(cfg)

			if tt.wantErr == nil {
				if len(errs) != 0 {
					t.Errorf("Validate() = %v, want no errors", errs)
				}
				return
			}
			if len(errs) != 1 {
				t.Fatalf("Validate() returned %d errors, want 1: %v", len(errs), errs)
			}
			if !errors.Is(errs[0], tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", errs[0], tt.wantErr)
			}
		})
	}
}

func TestValidate_Nil(t *testing.T) {
	if errs := Validate(nil); len(errs) != 1 {
		t.Errorf("Validate(nil) returned %d errors, want 1", len(errs))
	}
}

func TestDefaults(t *testing.T) {
	d := Defaults()
	d.UserAgent = DefaultUserAgent
	if errs := Validate(d); len(errs) != 0 {
		t.Errorf("Defaults() should validate, got %v", errs)
	}
	if Defaults().UserAgent != "" {
		t.Error("Defaults() should leave UserAgent unset")
	}
}
