package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"fieldpro.app/relay/common/id"
	"fieldpro.app/relay/common/logger"
	"fieldpro.app/relay/internal/model"
	"fieldpro.app/relay/internal/queue"
	"fieldpro.app/relay/internal/store"
)

// Publisher fans domain events out to subscribed webhook endpoints.
type Publisher interface {
	// Publish never fails the caller; problems are logged.
	Publish(ctx context.Context, orgID int64, eventType string, data any)
	// Deliver queues one event to one endpoint and returns the delivery row.
	Deliver(ctx context.Context, endpoint *model.WebhookEndpoint, eventType string, data any) (*model.WebhookDelivery, error)
}

// Envelope is the JSON body POSTed to webhook endpoints.
type Envelope struct {
	ID             int64     `json:"id,string"`
	Type           string    `json:"type"`
	OrganizationID int64     `json:"organization_id,string"`
	CreatedAt      time.Time `json:"created_at"`
	Data           any       `json:"data"`
}

type publisher struct {
	endpoints  store.WebhookEndpointStore
	deliveries store.WebhookDeliveryStore
	producer   queue.Producer
}

func NewPublisher(endpoints store.WebhookEndpointStore, deliveries store.WebhookDeliveryStore, producer queue.Producer) Publisher {
	return &publisher{endpoints: endpoints, deliveries: deliveries, producer: producer}
}

func (p *publisher) Publish(ctx context.Context, orgID int64, eventType string, data any) {
	endpoints, err := p.endpoints.ListSubscribed(ctx, orgID, eventType)
	if err != nil {
		slog.ErrorContext(ctx, "listing webhook subscribers failed",
			"error", err,
			"event_type", eventType)
		return
	}

	for i := range endpoints {
		if _, err := p.Deliver(ctx, &endpoints[i], eventType, data); err != nil {
			slog.ErrorContext(ctx, "queueing webhook delivery failed",
				"error", err,
				"endpoint_id", endpoints[i].ID,
				"event_type", eventType)
		}
	}
}

func (p *publisher) Deliver(ctx context.Context, endpoint *model.WebhookEndpoint, eventType string, data any) (*model.WebhookDelivery, error) {
	deliveryID := id.New()
	payload, err := json.Marshal(Envelope{
		ID:             deliveryID,
		Type:           eventType,
		OrganizationID: endpoint.OrganizationID,
		CreatedAt:      time.Now().UTC(),
		Data:           data,
	})
	if err != nil {
		return nil, fmt.Errorf("encoding payload: %w", err)
	}

	delivery := &model.WebhookDelivery{
		ID:             deliveryID,
		OrganizationID: endpoint.OrganizationID,
		EndpointID:     endpoint.ID,
		EventType:      eventType,
		Payload:        payload,
	}
	if err := p.deliveries.Create(ctx, delivery); err != nil {
		return nil, fmt.Errorf("creating delivery: %w", err)
	}

	if p.producer == nil {
		return delivery, nil
	}

	// The row stays pending if the enqueue fails; it is visible in the delivery log.
	if err := p.producer.Enqueue(ctx, queue.DeliveryMessage{
		DeliveryID:     delivery.ID,
		OrganizationID: delivery.OrganizationID,
		EndpointID:     delivery.EndpointID,
		EventType:      eventType,
		TraceID:        logger.TraceID(ctx),
	}); err != nil {
		return delivery, fmt.Errorf("enqueueing delivery: %w", err)
	}

	return delivery, nil
}

// deletedRef is the event payload for a removed row.
func deletedRef(id int64) map[string]string {
	return map[string]string{"id": strconv.FormatInt(id, 10)}
}
