package artifacts

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"

	"intake-backend/internal/shared/metrics"
	"intake-backend/internal/shared/telemetry"
)

// Sweeper periodically deletes artifacts left behind by requests that never
// reached their cleanup, e.g. after a crash.
type Sweeper struct {
	store     *Store
	maxAge    time.Duration
	interval  time.Duration
	now       func() time.Time
	scheduler *gocron.Scheduler
}

func NewSweeper(store *Store, maxAge, interval time.Duration) *Sweeper {
	if interval <= 0 {
		interval = 15 * time.Minute
	}
	if maxAge <= 0 {
		maxAge = time.Hour
	}
	return &Sweeper{store: store, maxAge: maxAge, interval: interval, now: time.Now}
}

// Start schedules RunOnce every interval, first run immediately.
func (sw *Sweeper) Start() error {
	scheduler := gocron.NewScheduler(time.UTC)
	if _, err := scheduler.Every(sw.interval).Do(func() {
		sw.RunOnce(context.Background())
	}); err != nil {
		return err
	}
	scheduler.StartAsync()
	sw.scheduler = scheduler
	telemetry.Info("artifacts.sweeper.started", map[string]any{
		"interval_ms": sw.interval.Milliseconds(),
		"max_age_ms":  sw.maxAge.Milliseconds(),
	})
	return nil
}

func (sw *Sweeper) Stop() {
	if sw.scheduler != nil {
		sw.scheduler.Stop()
	}
}

// RunOnce performs a single sweep and returns the number of files removed.
func (sw *Sweeper) RunOnce(ctx context.Context) int {
	removed, err := sw.store.Sweep(ctx, sw.now(), sw.maxAge)
	for i := 0; i < removed; i++ {
		metrics.ArtifactsSwept.Inc()
	}
	if err != nil {
		telemetry.Warn("artifacts.sweep.failed", map[string]any{"error": err.Error(), "removed": removed})
		return removed
	}
	if removed > 0 {
		telemetry.Info("artifacts.sweep.removed", map[string]any{"removed": removed})
	}
	return removed
}
