package worker

import (
	"context"

	"fieldpro.app/relay/internal/model"
	"fieldpro.app/relay/internal/queue"
	"fieldpro.app/relay/internal/store"
)

// Consumer abstracts the message queue for testability.
type Consumer interface {
	// PromoteDue moves retries whose delay has elapsed back onto the stream.
	PromoteDue(ctx context.Context) (int, error)
	Read(ctx context.Context) ([]queue.Message, error)
	Ack(ctx context.Context, msg queue.Message) error
	Requeue(ctx context.Context, msg queue.Message, errMsg string) error
	SendDLQ(ctx context.Context, msg queue.Message, errMsg string) error
}

// Sender performs one outbound delivery attempt. It returns the HTTP status
// code (0 when no response arrived) and a non-nil error unless the endpoint
// answered 2xx.
type Sender interface {
	Send(ctx context.Context, endpoint *model.WebhookEndpoint, delivery *model.WebhookDelivery) (int, error)
}

// StoreProvider is the subset of store.Stores the worker reads and writes.
type StoreProvider interface {
	WebhookEndpoints() store.WebhookEndpointStore
	WebhookDeliveries() store.WebhookDeliveryStore
}
