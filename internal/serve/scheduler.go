package serve

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// startScheduler runs trigger at the configured interval. Interval rebuilds
// go through the same debounced request channel as watcher events, so they
// serialize with them.
func startScheduler(interval time.Duration, trigger func()) (gocron.Scheduler, error) {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create gocron scheduler: %w", err)
	}

	_, err = sched.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(trigger),
		gocron.WithName("interval-rebuild"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create rebuild job: %w", err)
	}

	sched.Start()
	slog.Info("Periodic rebuilds scheduled", slog.Duration("interval", interval))
	return sched, nil
}
