// Package retention prunes old bullets from the store.
//
// Retention is measured against the capture clock, not wall time: a bullet
// is "too old" when its capture reading falls more than MaxAge behind the
// clock's current reading. An optional MaxRecords cap trims the oldest
// bullets beyond a fixed count.
//
// Pruning deletes through the bullet store, so payload blobs are removed
// together with their metadata entries.
//
//	pruner := retention.NewPruner(store, clk, &retention.Config{
//	    MaxAge:        24 * time.Hour,
//	    PruneSchedule: "0 3 * * *",
//	})
//	sched := retention.NewScheduler(pruner)
//	sched.Start(ctx)
//	defer sched.Stop()
package retention
