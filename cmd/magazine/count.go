package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"ioncannon/magazine/pkg/cli"
)

var countCmd = &cobra.Command{
	Use:   "count",
	Short: "Count stored bullets",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return cli.NewCommandError("count", err)
		}

		store, closeStore, err := openStore(cfg)
		if err != nil {
			return cli.NewCommandError("count", err)
		}
		defer closeStore()

		count, err := store.Count(cli.SetupSignalHandler())
		if err != nil {
			return cli.NewCommandError("count", err)
		}

		fmt.Println(count)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(countCmd)
}
