package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ioncannon/magazine/pkg/config"
	"ioncannon/magazine/pkg/logging"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "magazine",
	Short: "Magazine - persistence for captured network requests",
	Long: `Magazine stores captured network requests ("bullets") for later
inspection and replay.

Each bullet holds the request metadata (method, URI, headers) plus an
optional payload blob, stamped with a monotonic capture clock so the
original request ordering survives storage round trips.

Metadata lives in a SQLite or in-memory collection; payloads live in a
filesystem, SQLite or in-memory blob store.`,
	Version: Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := ""
		if verbose {
			level = "debug"
		}
		_, err := logging.Setup(logging.Config{Level: level, Format: "text"})
		return err
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// loadConfig loads the config file named by --config, or defaults when the
// flag is unset.
func loadConfig() (*config.Config, error) {
	if cfgFile == "" {
		return config.Default(), nil
	}
	return config.Load(cfgFile)
}
