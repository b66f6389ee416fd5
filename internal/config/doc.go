// Package config provides configuration management for the rsscheck CLI.
//
// rsscheck runs without any configuration; everything here only tunes the
// plumbing around validation (timeouts, worker count, output format). Values
// come from, in increasing order of precedence:
//
//   - built-in defaults
//   - a config file named config.yaml (or config.toml) in the working
//     directory or in ~/.config/rsscheck
//   - a .env file in the working directory and RSSCHECK_* environment variables
//   - command-line flags bound by the CLI
//
// # Configuration File
//
//	timeout: 30s
//	user_agent: my-ci/1.0
//	workers: 4
//	format: text
//	max_size: 10485760
//	discover: false
//
// # Loading Configuration
//
//	config.Init()
//	cfg, err := config.Load("")
//	if err != nil {
//	    return err
//	}
//	if errs := config.Validate(cfg); len(errs) > 0 {
//	    // report
//	}
package config
