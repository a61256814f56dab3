package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"ioncannon/magazine/pkg/cli"
	"ioncannon/magazine/pkg/clock"
	"ioncannon/magazine/pkg/retention"
)

var purgeFlags struct {
	all bool
}

var purgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Prune bullets per the retention policy, or delete everything",
	Long: `Apply the configured retention policy once, deleting bullets that
fall outside it. With --all, delete every stored bullet instead.

Examples:
  # Prune per the retention config
  magazine purge

  # Delete everything
  magazine purge --all`,
	RunE: runPurge,
}

func init() {
	rootCmd.AddCommand(purgeCmd)

	purgeCmd.Flags().BoolVar(&purgeFlags.all, "all", false, "delete every stored bullet")
}

func runPurge(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return cli.NewCommandError("purge", err)
	}

	store, closeStore, err := openStore(cfg)
	if err != nil {
		return cli.NewCommandError("purge", err)
	}
	defer closeStore()

	ctx := cli.SetupSignalHandler()

	if purgeFlags.all {
		count, err := store.Count(ctx)
		if err != nil {
			return cli.NewCommandError("purge", err)
		}
		if err := store.RemoveAll(ctx); err != nil {
			return cli.NewCommandError("purge", err)
		}
		fmt.Printf("Deleted %d bullets.\n", count)
		return nil
	}

	pruner := retention.NewPruner(store, clock.NewMillis(cfg.Clock.Offset.Std()), &retention.Config{
		MaxAge:     cfg.Retention.MaxAge.Std(),
		MaxRecords: cfg.Retention.MaxRecords,
	})

	deleted, err := pruner.Prune(ctx)
	if err != nil {
		return cli.NewCommandError("purge", err)
	}
	fmt.Printf("Pruned %d bullets.\n", deleted)
	return nil
}
