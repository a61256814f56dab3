package retention

import (
	"context"
	"log/slog"
	"time"

	"ioncannon/magazine/pkg/bullet"
	"ioncannon/magazine/pkg/clock"
)

// Config contains retention policy configuration.
type Config struct {
	// MaxAge is the oldest a bullet may be, measured against the current
	// capture clock reading. Zero disables age-based pruning.
	MaxAge time.Duration

	// MaxRecords caps the number of stored bullets; the oldest are
	// pruned first when the cap is exceeded. Zero disables the cap.
	MaxRecords int64

	// PruneSchedule is the cron expression for scheduled pruning.
	// Empty disables the scheduler.
	PruneSchedule string
}

// Pruner removes bullets that fall outside the retention policy. Each
// pruned bullet is deleted through the store, so blobs are removed together
// with their metadata entries.
type Pruner struct {
	store  *bullet.Store
	clk    clock.Clock
	config *Config
	logger *slog.Logger
}

// NewPruner creates a pruner over the given store and capture clock.
func NewPruner(store *bullet.Store, clk clock.Clock, config *Config) *Pruner {
	if config == nil {
		config = &Config{}
	}
	return &Pruner{
		store:  store,
		clk:    clk,
		config: config,
		logger: slog.Default().With("component", "retention.pruner"),
	}
}

// Prune applies the retention policy once and returns the number of bullets
// deleted. Deletion is per-record and not atomic: a failure partway leaves
// the store partially pruned.
func (p *Pruner) Prune(ctx context.Context) (int64, error) {
	if p.config.MaxAge <= 0 && p.config.MaxRecords <= 0 {
		return 0, nil
	}

	bullets, err := p.store.AllChronological(ctx)
	if err != nil {
		return 0, err
	}

	var deleted int64

	if p.config.MaxAge > 0 {
		cutoff := p.clk.Check() - p.config.MaxAge.Milliseconds()
		for len(bullets) > 0 && bullets[0].Time < cutoff {
			if err := p.store.Delete(ctx, bullets[0]); err != nil {
				return deleted, err
			}
			bullets = bullets[1:]
			deleted++
		}
	}

	if p.config.MaxRecords > 0 {
		for int64(len(bullets)) > p.config.MaxRecords {
			if err := p.store.Delete(ctx, bullets[0]); err != nil {
				return deleted, err
			}
			bullets = bullets[1:]
			deleted++
		}
	}

	if deleted > 0 {
		p.logger.Info("retention pruning completed",
			"deleted_count", deleted,
			"remaining", len(bullets),
		)
	}

	return deleted, nil
}
