package queue

import (
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// Message is one webhook delivery read back from the stream.
type Message struct {
	ID             string
	DeliveryID     int64
	OrganizationID int64
	EndpointID     int64
	EventType      string
	Attempt        int
	TraceID        string
	LastError      string
	Raw            redis.XMessage
}

// DeliveryMessage is what publishers enqueue for each pending delivery row.
type DeliveryMessage struct {
	DeliveryID     int64
	OrganizationID int64
	EndpointID     int64
	EventType      string
	TraceID        string
	Attempt        int
}

func ParseMessage(msg redis.XMessage) (Message, error) {
	deliveryID, err := parseInt64(msg.Values, "delivery_id")
	if err != nil {
		return Message{}, err
	}
	organizationID, err := parseInt64(msg.Values, "organization_id")
	if err != nil {
		return Message{}, err
	}
	endpointID, err := parseInt64(msg.Values, "endpoint_id")
	if err != nil {
		return Message{}, err
	}

	eventType := parseOptionalString(msg.Values, "event_type")
	if eventType == "" {
		return Message{}, fmt.Errorf("missing event_type")
	}

	attempt, err := parseOptionalInt(msg.Values, "attempt")
	if err != nil {
		return Message{}, err
	}
	if attempt <= 0 {
		attempt = 1
	}

	return Message{
		ID:             msg.ID,
		DeliveryID:     deliveryID,
		OrganizationID: organizationID,
		EndpointID:     endpointID,
		EventType:      eventType,
		Attempt:        attempt,
		TraceID:        parseOptionalString(msg.Values, "trace_id"),
		LastError:      parseOptionalString(msg.Values, "last_error"),
		Raw:            msg,
	}, nil
}

func parseInt64(values map[string]any, key string) (int64, error) {
	raw, ok := values[key]
	if !ok {
		return 0, fmt.Errorf("missing %s", key)
	}
	num, err := strconv.ParseInt(fmt.Sprint(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing %s: %w", key, err)
	}
	return num, nil
}

func parseOptionalInt(values map[string]any, key string) (int, error) {
	raw, ok := values[key]
	if !ok {
		return 0, nil
	}
	num, err := strconv.Atoi(fmt.Sprint(raw))
	if err != nil {
		return 0, fmt.Errorf("parsing %s: %w", key, err)
	}
	return num, nil
}

func parseOptionalString(values map[string]any, key string) string {
	raw, ok := values[key]
	if !ok {
		return ""
	}
	return fmt.Sprint(raw)
}

func deliveryValues(msg DeliveryMessage) map[string]any {
	attempt := msg.Attempt
	if attempt <= 0 {
		attempt = 1
	}

	values := map[string]any{
		"delivery_id":     msg.DeliveryID,
		"organization_id": msg.OrganizationID,
		"endpoint_id":     msg.EndpointID,
		"event_type":      msg.EventType,
		"attempt":         attempt,
	}
	if msg.TraceID != "" {
		values["trace_id"] = msg.TraceID
	}
	return values
}

func messageValues(msg Message, attempt int) map[string]any {
	return deliveryValues(DeliveryMessage{
		DeliveryID:     msg.DeliveryID,
		OrganizationID: msg.OrganizationID,
		EndpointID:     msg.EndpointID,
		EventType:      msg.EventType,
		TraceID:        msg.TraceID,
		Attempt:        attempt,
	})
}
