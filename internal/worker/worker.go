package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"fieldpro.app/relay/common/logger"
	"fieldpro.app/relay/internal/model"
	"fieldpro.app/relay/internal/queue"
	"fieldpro.app/relay/internal/store"
)

type Config struct {
	MaxAttempts int
}

// Worker drains the webhook delivery stream.
type Worker struct {
	consumer Consumer
	stores   StoreProvider
	sender   Sender
	cfg      Config

	stopCh    chan struct{}
	stoppedCh chan struct{}
}

func New(consumer Consumer, stores StoreProvider, sender Sender, cfg Config) *Worker {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 1
	}
	return &Worker{
		consumer:  consumer,
		stores:    stores,
		sender:    sender,
		cfg:       cfg,
		stopCh:    make(chan struct{}),
		stoppedCh: make(chan struct{}),
	}
}

func (w *Worker) Run(ctx context.Context) error {
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		Component: "relay.worker.webhooks",
	})

	defer close(w.stoppedCh)

	slog.InfoContext(ctx, "worker started", "max_attempts", w.cfg.MaxAttempts)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-w.stopCh:
			slog.InfoContext(ctx, "worker stopping")
			return nil
		default:
			if err := w.processOneBatch(ctx); err != nil {
				slog.ErrorContext(ctx, "batch processing error", "error", err)
				// Brief backoff on error
				select {
				case <-ctx.Done():
				case <-w.stopCh:
				case <-time.After(time.Second):
				}
			}
		}
	}
}

func (w *Worker) Stop() {
	close(w.stopCh)
	<-w.stoppedCh
}

func (w *Worker) processOneBatch(ctx context.Context) error {
	if _, err := w.consumer.PromoteDue(ctx); err != nil {
		// Due retries stay in the delayed set until the next batch.
		slog.WarnContext(ctx, "promoting due retries failed", "error", err)
	}

	messages, err := w.consumer.Read(ctx)
	if err != nil {
		return fmt.Errorf("reading from stream: %w", err)
	}

	for _, msg := range messages {
		_ = w.Handle(ctx, msg)
	}

	return nil
}

// Handle processes msg and routes failures to requeue or the DLQ. It is shared
// with the reclaimer, and returns the processing error for logging only.
func (w *Worker) Handle(ctx context.Context, msg queue.Message) error {
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		MessageID:      &msg.ID,
		DeliveryID:     &msg.DeliveryID,
		OrganizationID: &msg.OrganizationID,
	})

	if err := w.processMessageSafe(ctx, msg); err != nil {
		slog.ErrorContext(ctx, "message processing failed",
			"error", err,
			"attempt", msg.Attempt)
		w.handleFailedMessage(ctx, msg, err)
		return err
	}
	return nil
}

func (w *Worker) processMessageSafe(ctx context.Context, msg queue.Message) (err error) {
	defer func() {
		if r := recover(); r != nil {
			slog.ErrorContext(ctx, "panic recovered in message processing", "panic", r)
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return w.ProcessMessage(ctx, msg)
}

// ProcessMessage makes one delivery attempt. A nil return means the message was
// settled and acked; an error means the caller should retry it.
func (w *Worker) ProcessMessage(ctx context.Context, msg queue.Message) error {
	sp := logger.StartLinkedSpan(ctx, msg.TraceID, "webhooks.deliver")
	defer sp.End()
	ctx = sp.Context()

	slog.InfoContext(ctx, "processing delivery",
		"endpoint_id", msg.EndpointID,
		"event_type", msg.EventType,
		"attempt", msg.Attempt)

	delivery, err := w.stores.WebhookDeliveries().GetByID(ctx, msg.DeliveryID)
	if errors.Is(err, store.ErrNotFound) {
		slog.WarnContext(ctx, "delivery row gone, dropping message")
		w.ack(ctx, msg)
		return nil
	}
	if err != nil {
		sp.Fail(err)
		return fmt.Errorf("loading delivery: %w", err)
	}

	if delivery.Status == model.DeliveryStatusDelivered {
		slog.InfoContext(ctx, "delivery already completed, skipping")
		w.ack(ctx, msg)
		return nil
	}

	endpoint, err := w.stores.WebhookEndpoints().Lookup(ctx, delivery.EndpointID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		sp.Fail(err)
		return fmt.Errorf("loading endpoint: %w", err)
	}
	if endpoint == nil || !endpoint.Active {
		reason := "endpoint deleted or inactive"
		if recErr := w.stores.WebhookDeliveries().RecordAttempt(ctx, delivery.ID, model.DeliveryStatusFailed, nil, &reason); recErr != nil {
			return fmt.Errorf("recording skipped delivery: %w", recErr)
		}
		slog.InfoContext(ctx, "endpoint unavailable, delivery abandoned")
		w.ack(ctx, msg)
		return nil
	}

	start := time.Now()
	code, sendErr := w.sender.Send(ctx, endpoint, delivery)

	var statusCode *int32
	if code > 0 {
		c := int32(code)
		statusCode = &c
	}

	if sendErr == nil {
		if err := w.stores.WebhookDeliveries().RecordAttempt(ctx, delivery.ID, model.DeliveryStatusDelivered, statusCode, nil); err != nil {
			// The endpoint already has it; a retry would double-deliver.
			slog.ErrorContext(ctx, "failed to record successful delivery", "error", err)
		}
		w.ack(ctx, msg)
		slog.InfoContext(ctx, "webhook delivered",
			"status_code", code,
			"duration_ms", time.Since(start).Milliseconds())
		return nil
	}

	sp.Fail(sendErr)
	status := model.DeliveryStatusPending
	if msg.Attempt >= w.cfg.MaxAttempts {
		status = model.DeliveryStatusFailed
	}
	errText := logger.Truncate(sendErr.Error(), 1000)
	if err := w.stores.WebhookDeliveries().RecordAttempt(ctx, delivery.ID, status, statusCode, &errText); err != nil {
		slog.ErrorContext(ctx, "failed to record delivery attempt", "error", err)
	}

	return fmt.Errorf("delivering webhook: %w", sendErr)
}

func (w *Worker) ack(ctx context.Context, msg queue.Message) {
	if err := w.consumer.Ack(ctx, msg); err != nil {
		// Reclaimer will pick it up; delivered rows are skipped on replay.
		slog.WarnContext(ctx, "failed to ACK message", "error", err)
	}
}

func (w *Worker) handleFailedMessage(ctx context.Context, msg queue.Message, err error) {
	if msg.Attempt >= w.cfg.MaxAttempts {
		slog.ErrorContext(ctx, "max attempts reached, sending to DLQ", "attempts", msg.Attempt)
		if dlqErr := w.consumer.SendDLQ(ctx, msg, err.Error()); dlqErr != nil {
			slog.ErrorContext(ctx, "failed to send to DLQ", "error", dlqErr)
		}
		return
	}

	slog.WarnContext(ctx, "requeuing failed message", "attempt", msg.Attempt)
	if requeueErr := w.consumer.Requeue(ctx, msg, err.Error()); requeueErr != nil {
		slog.ErrorContext(ctx, "failed to requeue message", "error", requeueErr)
	}
}

// Abandon marks the delivery failed and moves msg to the DLQ without another
// send attempt.
func (w *Worker) Abandon(ctx context.Context, msg queue.Message, reason string) error {
	if err := w.stores.WebhookDeliveries().RecordAttempt(ctx, msg.DeliveryID, model.DeliveryStatusFailed, nil, &reason); err != nil && !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("recording abandoned delivery: %w", err)
	}
	if err := w.consumer.SendDLQ(ctx, msg, reason); err != nil {
		return fmt.Errorf("sending to dlq: %w", err)
	}
	return nil
}
