package queue

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

type Producer interface {
	Enqueue(ctx context.Context, msg DeliveryMessage) error
	Close() error
}

type redisProducer struct {
	client *redis.Client
	stream string
	logger *slog.Logger
}

func NewRedisProducer(client *redis.Client, stream string, logger *slog.Logger) Producer {
	if logger == nil {
		logger = slog.Default()
	}
	return &redisProducer{
		client: client,
		stream: stream,
		logger: logger,
	}
}

func (p *redisProducer) Enqueue(ctx context.Context, msg DeliveryMessage) error {
	values := deliveryValues(msg)

	if err := p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: p.stream,
		Values: values,
	}).Err(); err != nil {
		return fmt.Errorf("enqueue delivery: %w", err)
	}

	p.logger.InfoContext(ctx, "enqueued webhook delivery",
		"delivery_id", msg.DeliveryID,
		"endpoint_id", msg.EndpointID,
		"event_type", msg.EventType,
		"attempt", values["attempt"])
	return nil
}

func (p *redisProducer) Close() error {
	return p.client.Close()
}
