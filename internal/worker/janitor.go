package worker

import (
	"context"
	"log/slog"
	"time"

	"fieldpro.app/relay/common/logger"
)

// BucketPruner deletes rate-limit buckets idle since before.
type BucketPruner interface {
	Prune(ctx context.Context, before time.Time) (int64, error)
}

// Janitor runs periodic cleanup: idle rate-limit buckets and expired sessions.
type Janitor struct {
	buckets   BucketPruner
	sessions  func(ctx context.Context) error
	interval  time.Duration
	retention time.Duration
	now       func() time.Time

	stopCh    chan struct{}
	stoppedCh chan struct{}
}

func NewJanitor(buckets BucketPruner, sessions func(ctx context.Context) error, interval, retention time.Duration) *Janitor {
	return &Janitor{
		buckets:   buckets,
		sessions:  sessions,
		interval:  interval,
		retention: retention,
		now:       time.Now,
		stopCh:    make(chan struct{}),
		stoppedCh: make(chan struct{}),
	}
}

func (j *Janitor) Run(ctx context.Context) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		Component: "relay.worker.janitor",
	})

	defer close(j.stoppedCh)

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-j.stopCh:
			return
		case <-ticker.C:
			j.RunOnce(ctx)
		}
	}
}

func (j *Janitor) Stop() {
	close(j.stopCh)
	<-j.stoppedCh
}

// RunOnce performs one cleanup pass. Failures are logged and retried next tick.
func (j *Janitor) RunOnce(ctx context.Context) {
	if j.buckets != nil {
		n, err := j.buckets.Prune(ctx, j.now().Add(-j.retention))
		if err != nil {
			slog.ErrorContext(ctx, "pruning rate limit buckets failed", "error", err)
		} else if n > 0 {
			slog.InfoContext(ctx, "pruned rate limit buckets", "count", n)
		}
	}

	if j.sessions != nil {
		if err := j.sessions(ctx); err != nil {
			slog.ErrorContext(ctx, "deleting expired sessions failed", "error", err)
		}
	}
}
