package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"ioncannon/magazine/pkg/cli"
	"ioncannon/magazine/pkg/clock"
	"ioncannon/magazine/pkg/config"
	"ioncannon/magazine/pkg/retention"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the retention scheduler",
	Long: `Run as a long-lived process applying the retention policy on the
configured cron schedule.

The config file is watched for changes; edits to the retention section
take effect on the next restart (a reload is logged so drift is visible).

Examples:
  magazine run --config magazine.yaml`,
	RunE: runService,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runService(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return cli.NewCommandError("run", err)
	}
	if cfg.Retention.Schedule == "" {
		return fmt.Errorf("retention.schedule is not configured")
	}

	store, closeStore, err := openStore(cfg)
	if err != nil {
		return cli.NewCommandError("run", err)
	}
	defer closeStore()

	clk := clock.NewMillis(cfg.Clock.Offset.Std())
	clock.Initialize(clk)
	defer clock.Cleanup()

	ctx := cli.SetupSignalHandler()

	pruner := retention.NewPruner(store, clk, &retention.Config{
		MaxAge:        cfg.Retention.MaxAge.Std(),
		MaxRecords:    cfg.Retention.MaxRecords,
		PruneSchedule: cfg.Retention.Schedule,
	})

	sched := retention.NewScheduler(pruner)
	if err := sched.Start(ctx); err != nil {
		return cli.NewCommandError("run", err)
	}
	defer sched.Stop()

	if cfgFile != "" {
		watcher, err := config.NewWatcher(cfgFile, 200*time.Millisecond)
		if err != nil {
			return cli.NewCommandError("run", err)
		}
		go watcher.Watch(ctx, func(*config.Config) {})
		defer watcher.Stop()
	}

	<-ctx.Done()
	return nil
}
