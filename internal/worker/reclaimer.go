package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"fieldpro.app/relay/common/logger"
	"fieldpro.app/relay/internal/queue"
)

type ReclaimerConfig struct {
	Stream    string
	Group     string
	Consumer  string
	MinIdle   time.Duration
	Interval  time.Duration
	BatchSize int64
	// MaxClaims bounds how often a message may be handed out before it is
	// treated as poison and dead-lettered without another send. Zero disables.
	MaxClaims int64
}

// Abandoner settles a delivery that will not be attempted again.
type Abandoner func(ctx context.Context, msg queue.Message, reason string) error

// Reclaimer periodically claims deliveries left pending by a worker that died
// after XREADGROUP but before XACK.
type Reclaimer struct {
	client    *redis.Client
	cfg       ReclaimerConfig
	consumer  Consumer
	processor queue.MessageProcessor
	abandon   Abandoner

	stopCh    chan struct{}
	stoppedCh chan struct{}
}

func NewReclaimer(client *redis.Client, cfg ReclaimerConfig, consumer Consumer, processor queue.MessageProcessor, abandon Abandoner) *Reclaimer {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 10
	}
	return &Reclaimer{
		client:    client,
		cfg:       cfg,
		consumer:  consumer,
		processor: processor,
		abandon:   abandon,
		stopCh:    make(chan struct{}),
		stoppedCh: make(chan struct{}),
	}
}

// Run blocks until Stop is called or ctx is done.
func (r *Reclaimer) Run(ctx context.Context) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		Component: "relay.worker.reclaimer",
	})

	defer close(r.stoppedCh)

	ticker := time.NewTicker(r.cfg.Interval)
	defer ticker.Stop()

	slog.InfoContext(ctx, "reclaimer started",
		"interval", r.cfg.Interval,
		"min_idle", r.cfg.MinIdle,
		"max_claims", r.cfg.MaxClaims,
		"stream", r.cfg.Stream)

	for {
		select {
		case <-ctx.Done():
			return
		case <-r.stopCh:
			slog.InfoContext(ctx, "reclaimer stopping")
			return
		case <-ticker.C:
			n, err := r.reclaimOnce(ctx)
			if err != nil {
				slog.ErrorContext(ctx, "reclaim cycle failed", "error", err)
				continue
			}
			if n > 0 {
				slog.InfoContext(ctx, "reclaim cycle finished", "reclaimed", n)
			}
		}
	}
}

func (r *Reclaimer) Stop() {
	close(r.stopCh)
	<-r.stoppedCh
}

// reclaimOnce returns how many stale deliveries it took over.
func (r *Reclaimer) reclaimOnce(ctx context.Context) (int, error) {
	pending, err := r.client.XPendingExt(ctx, &redis.XPendingExtArgs{
		Stream: r.cfg.Stream,
		Group:  r.cfg.Group,
		Idle:   r.cfg.MinIdle,
		Start:  "-",
		End:    "+",
		Count:  r.cfg.BatchSize,
	}).Result()
	if err != nil {
		return 0, fmt.Errorf("xpending: %w", err)
	}

	reclaimed := 0
	for _, p := range pending {
		ok, err := r.reclaimDelivery(ctx, p)
		if err != nil {
			slog.ErrorContext(ctx, "reclaiming delivery failed",
				"error", err,
				"message_id", p.ID,
				"previous_consumer", p.Consumer,
				"idle", p.Idle)
			continue
		}
		if ok {
			reclaimed++
		}
	}
	return reclaimed, nil
}

// reclaimDelivery reports false when another consumer claimed the message first.
func (r *Reclaimer) reclaimDelivery(ctx context.Context, pending redis.XPendingExt) (bool, error) {
	msgID := pending.ID
	ctx = logger.WithLogFields(ctx, logger.LogFields{MessageID: &msgID})

	claimed, err := r.client.XClaim(ctx, &redis.XClaimArgs{
		Stream:   r.cfg.Stream,
		Group:    r.cfg.Group,
		Consumer: r.cfg.Consumer,
		MinIdle:  r.cfg.MinIdle,
		Messages: []string{pending.ID},
	}).Result()
	if err != nil {
		return false, fmt.Errorf("xclaim: %w", err)
	}
	if len(claimed) == 0 {
		return false, nil
	}

	msg, err := queue.ParseMessage(claimed[0])
	if err != nil {
		// Unparseable entries can never succeed; ack so they stop cycling.
		slog.ErrorContext(ctx, "dropping malformed stream entry", "error", err)
		_ = r.consumer.Ack(ctx, queue.Message{ID: claimed[0].ID, Raw: claimed[0]})
		return true, nil
	}

	ctx = logger.WithLogFields(ctx, logger.LogFields{
		DeliveryID:     &msg.DeliveryID,
		OrganizationID: &msg.OrganizationID,
	})

	if r.cfg.MaxClaims > 0 && pending.RetryCount >= r.cfg.MaxClaims {
		slog.WarnContext(ctx, "delivery claimed too often, dead-lettering",
			"claims", pending.RetryCount,
			"previous_consumer", pending.Consumer)
		reason := fmt.Sprintf("abandoned after %d claims", pending.RetryCount)
		if err := r.abandon(ctx, msg, reason); err != nil {
			return true, fmt.Errorf("abandoning delivery: %w", err)
		}
		return true, nil
	}

	slog.InfoContext(ctx, "retrying stale delivery",
		"previous_consumer", pending.Consumer,
		"idle", pending.Idle,
		"claims", pending.RetryCount)

	// The processor settles the message itself (ack, requeue or DLQ).
	_ = r.processor(ctx, msg)
	return true, nil
}
