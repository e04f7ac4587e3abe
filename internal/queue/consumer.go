package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/redis/go-redis/v9"

	"fieldpro.app/relay/common/logger"
)

type ConsumerConfig struct {
	Stream       string        // Redis stream name
	Group        string        // Redis consumer group name
	Consumer     string        // Redis consumer name
	DLQStream    string        // Dead letter queue stream for failed deliveries
	BatchSize    int64         // Number of messages to read per batch
	Block        time.Duration // How long to block/poll for new messages
	RequeueDelay time.Duration // Delay before the first retry; doubles per attempt
	MaxDelay     time.Duration // Upper bound on the retry delay
	DelayedSet   string        // Sorted set holding retries until due; defaults to Stream + ":delayed"
}

// MessageProcessor processes a queue message.
type MessageProcessor func(ctx context.Context, msg Message) error

type RedisConsumer struct {
	client redis.Cmdable
	cfg    ConsumerConfig
	now    func() time.Time
}

func NewRedisConsumer(ctx context.Context, client redis.Cmdable, cfg ConsumerConfig) (*RedisConsumer, error) {
	if cfg.DelayedSet == "" {
		cfg.DelayedSet = cfg.Stream + ":delayed"
	}
	consumer := &RedisConsumer{
		client: client,
		cfg:    cfg,
		now:    time.Now,
	}

	if err := consumer.ensureGroup(ctx); err != nil {
		return nil, err
	}

	return consumer, nil
}

func (c *RedisConsumer) ensureGroup(ctx context.Context) error {
	// Start from "0" so a recreated group still sees deliveries already in the stream.
	if err := c.client.XGroupCreateMkStream(ctx, c.cfg.Stream, c.cfg.Group, "0").Err(); err != nil && err.Error() != "BUSYGROUP Consumer Group name already exists" {
		return fmt.Errorf("creating consumer group: %w", err)
	}
	return nil
}

func (c *RedisConsumer) Read(ctx context.Context) ([]Message, error) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		Component: "relay.queue.consumer",
	})

	streams, err := c.client.XReadGroup(ctx, &redis.XReadGroupArgs{
		Group:    c.cfg.Group,
		Consumer: c.cfg.Consumer,
		// ">" reads only messages never delivered to this group; stale pending
		// entries are the reclaimer's job.
		Streams: []string{c.cfg.Stream, ">"},
		Count:   c.cfg.BatchSize,
		Block:   c.cfg.Block,
	}).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []Message{}, nil
		}
		return nil, fmt.Errorf("reading from stream: %w", err)
	}

	var messages []Message
	for _, stream := range streams {
		for _, msg := range stream.Messages {
			parsed, parseErr := ParseMessage(msg)
			if parseErr != nil {
				slog.ErrorContext(ctx, "failed to parse message",
					"error", parseErr,
					"raw_message_id", msg.ID,
					"stream", c.cfg.Stream)
				_ = c.Ack(ctx, Message{ID: msg.ID, Raw: msg})
				continue
			}
			messages = append(messages, parsed)
		}
	}

	if len(messages) > 0 {
		slog.DebugContext(ctx, "read messages from stream",
			"count", len(messages),
			"stream", c.cfg.Stream,
			"consumer", c.cfg.Consumer)
	}

	return messages, nil
}

func (c *RedisConsumer) Ack(ctx context.Context, msg Message) error {
	if err := c.client.XAck(ctx, c.cfg.Stream, c.cfg.Group, msg.ID).Err(); err != nil {
		return fmt.Errorf("xack (stream=%s): %w", c.cfg.Stream, err)
	}

	slog.DebugContext(ctx, "message acknowledged", "stream", c.cfg.Stream)
	return nil
}

// Requeue schedules a copy of msg with attempt+1 in the delayed set and then
// acks the original. A failure before the ack leaves msg pending for the
// reclaimer, so a retry is never dropped.
func (c *RedisConsumer) Requeue(ctx context.Context, msg Message, errMsg string) error {
	attempt := msg.Attempt + 1
	dueAt := c.now().Add(RetryDelay(c.cfg.RequeueDelay, c.cfg.MaxDelay, msg.Attempt))

	member, err := delayedMember(msg, attempt, errMsg)
	if err != nil {
		return err
	}
	if err := c.client.ZAdd(ctx, c.cfg.DelayedSet, redis.Z{
		Score:  float64(dueAt.UnixMilli()),
		Member: member,
	}).Err(); err != nil {
		return fmt.Errorf("scheduling retry: %w", err)
	}

	if err := c.Ack(ctx, msg); err != nil {
		return fmt.Errorf("acking requeued message: %w", err)
	}

	slog.InfoContext(ctx, "message scheduled for retry",
		"next_attempt", attempt,
		"due_at", dueAt,
		"reason", errMsg)
	return nil
}

// promoteDue moves up to ARGV[2] members of the delayed set (KEYS[1]) whose
// score is at most ARGV[1] onto the stream (KEYS[2]) in one step.
var promoteDue = redis.NewScript(`
local due = redis.call('ZRANGEBYSCORE', KEYS[1], '-inf', ARGV[1], 'LIMIT', 0, tonumber(ARGV[2]))
for _, member in ipairs(due) do
  local fields = cjson.decode(member)
  local args = {}
  for k, v in pairs(fields) do
    table.insert(args, k)
    table.insert(args, v)
  end
  redis.call('XADD', KEYS[2], '*', unpack(args))
  redis.call('ZREM', KEYS[1], member)
end
return #due
`)

// PromoteDue appends retries whose delay has elapsed back onto the stream and
// reports how many were moved.
func (c *RedisConsumer) PromoteDue(ctx context.Context) (int, error) {
	limit := c.cfg.BatchSize
	if limit <= 0 {
		limit = 10
	}
	n, err := promoteDue.Run(ctx, c.client,
		[]string{c.cfg.DelayedSet, c.cfg.Stream},
		c.now().UnixMilli(), limit,
	).Int()
	if err != nil {
		return 0, fmt.Errorf("promoting due retries: %w", err)
	}
	if n > 0 {
		slog.DebugContext(ctx, "promoted due retries", "count", n, "stream", c.cfg.Stream)
	}
	return n, nil
}

// delayedMember encodes the retry as a flat JSON object of string fields. The
// original message id keeps members unique.
func delayedMember(msg Message, attempt int, errMsg string) (string, error) {
	fields := make(map[string]string)
	for k, v := range messageValues(msg, attempt) {
		fields[k] = fmt.Sprint(v)
	}
	fields["requeued_from"] = msg.ID
	if errMsg != "" {
		fields["last_error"] = errMsg
	}

	raw, err := json.Marshal(fields)
	if err != nil {
		return "", fmt.Errorf("encoding retry: %w", err)
	}
	return string(raw), nil
}

// SendDLQ copies msg to the dead letter stream, then acks it.
func (c *RedisConsumer) SendDLQ(ctx context.Context, msg Message, errMsg string) error {
	values := messageValues(msg, msg.Attempt)
	values["error"] = errMsg

	if err := c.client.XAdd(ctx, &redis.XAddArgs{
		Stream: c.cfg.DLQStream,
		Values: values,
	}).Err(); err != nil {
		return fmt.Errorf("xadd dlq (stream=%s): %w", c.cfg.DLQStream, err)
	}

	if err := c.Ack(ctx, msg); err != nil {
		return fmt.Errorf("acking dead-lettered message: %w", err)
	}

	slog.ErrorContext(ctx, "message sent to DLQ",
		"final_error", errMsg,
		"dlq_stream", c.cfg.DLQStream)
	return nil
}

// RetryDelay is the exponential delay before retrying a message that failed
// on the given attempt: base, 2*base, 4*base... capped at limit.
func RetryDelay(base, limit time.Duration, attempt int) time.Duration {
	if base <= 0 {
		return 0
	}
	if limit < base {
		limit = base
	}
	b := &backoff.ExponentialBackOff{
		InitialInterval:     base,
		RandomizationFactor: 0,
		Multiplier:          2,
		MaxInterval:         limit,
	}
	b.Reset()

	delay := base
	for range max(attempt, 1) {
		delay = b.NextBackOff()
	}
	return delay
}
