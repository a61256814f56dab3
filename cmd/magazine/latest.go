package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ioncannon/magazine/pkg/bullet"
	"ioncannon/magazine/pkg/cli"
)

var latestFlags struct {
	format string
}

var latestCmd = &cobra.Command{
	Use:   "latest",
	Short: "Show the most recently captured bullet",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return cli.NewCommandError("latest", err)
		}

		store, closeStore, err := openStore(cfg)
		if err != nil {
			return cli.NewCommandError("latest", err)
		}
		defer closeStore()

		b, err := store.Latest(cli.SetupSignalHandler())
		if err != nil {
			if bullet.IsNotFound(err) {
				return fmt.Errorf("no bullets stored")
			}
			return cli.NewCommandError("latest", err)
		}

		if latestFlags.format == "json" {
			formatter := &cli.JSONFormatter{Indent: true}
			return formatter.FormatTo(os.Stdout, b)
		}
		printBullet(b)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(latestCmd)

	latestCmd.Flags().StringVar(&latestFlags.format, "format", "text", "output format: text, json")
}
