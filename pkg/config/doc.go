// Package config loads and validates the magazine service configuration.
//
// Configuration is read from a YAML file, overlaid with MAGAZINE_*
// environment variables, and validated. Unset fields take defaults.
//
//	cfg, err := config.Load("magazine.yaml")
//
// A Watcher can reload the file on change for long-running processes.
package config
