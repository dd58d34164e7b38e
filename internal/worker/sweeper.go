package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Job is one unit of periodic cleanup.
type Job struct {
	Name string
	Run  func(ctx context.Context) (int64, error)
}

// Sweeper runs its jobs on every tick until the context ends.
type Sweeper struct {
	jobs     []Job
	interval time.Duration
}

func NewSweeper(interval time.Duration, jobs ...Job) *Sweeper {
	return &Sweeper{
		jobs:     jobs,
		interval: interval,
	}
}

func (s *Sweeper) Start(ctx context.Context) {
	if s.interval <= 0 || len(s.jobs) == 0 {
		return
	}

	slog.Info("starting sweeper", "interval", s.interval, "jobs", len(s.jobs))
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("sweeper stopped")
			return
		case <-ticker.C:
			s.runOnce(ctx)
		}
	}
}

func (s *Sweeper) runOnce(ctx context.Context) {
	for _, job := range s.jobs {
		n, err := job.Run(ctx)
		if err != nil {
			slog.Error("sweep job failed", "job", job.Name, "error", err)
			continue
		}
		if n > 0 {
			slog.Info("sweep job removed entries", "job", job.Name, "count", n)
		}
	}
}

type sessionSweeper interface {
	Sweep(ctx context.Context, olderThan time.Duration) (int64, error)
}

// SessionJob deletes stored sessions idle for longer than ttl.
func SessionJob(store sessionSweeper, ttl time.Duration) Job {
	return Job{
		Name: "sessions",
		Run: func(ctx context.Context) (int64, error) {
			n, err := store.Sweep(ctx, ttl)
			if err != nil {
				return 0, fmt.Errorf("sweep sessions: %w", err)
			}
			return n, nil
		},
	}
}

type controllerPruner interface {
	Prune(idle time.Duration) int
}

// ControllerJob drops order view controllers idle for longer than idle.
func ControllerJob(registry controllerPruner, idle time.Duration) Job {
	return Job{
		Name: "order controllers",
		Run: func(context.Context) (int64, error) {
			return int64(registry.Prune(idle)), nil
		},
	}
}
