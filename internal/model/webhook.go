package model

import (
	"encoding/json"
	"slices"
	"time"
)

type WebhookEndpoint struct {
	ID             int64     `json:"id,string"`
	OrganizationID int64     `json:"organization_id,string"`
	URL            string    `json:"url"`
	Description    *string   `json:"description,omitempty"`
	Secret         string    `json:"-"`
	EventTypes     []string  `json:"event_types"`
	Active         bool      `json:"active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Subscribes reports whether the endpoint wants eventType. "*" matches all.
func (e WebhookEndpoint) Subscribes(eventType string) bool {
	return slices.Contains(e.EventTypes, "*") || slices.Contains(e.EventTypes, eventType)
}

type DeliveryStatus string

const (
	DeliveryStatusPending   DeliveryStatus = "pending"
	DeliveryStatusDelivered DeliveryStatus = "delivered"
	DeliveryStatusFailed    DeliveryStatus = "failed"
)

type WebhookDelivery struct {
	ID             int64           `json:"id,string"`
	OrganizationID int64           `json:"organization_id,string"`
	EndpointID     int64           `json:"endpoint_id,string"`
	EventType      string          `json:"event_type"`
	Payload        json.RawMessage `json:"payload"`
	Status         DeliveryStatus  `json:"status"`
	Attempts       int32           `json:"attempts"`
	LastStatusCode *int32          `json:"last_status_code,omitempty"`
	LastError      *string         `json:"last_error,omitempty"`
	DeliveredAt    *time.Time      `json:"delivered_at,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// Domain event types published to webhook endpoints.
const (
	EventContactCreated = "contact.created"
	EventContactUpdated = "contact.updated"
	EventContactDeleted = "contact.deleted"
	EventEventCreated   = "event.created"
	EventEventUpdated   = "event.updated"
	EventEventDeleted   = "event.deleted"
	EventLeadCreated    = "lead.created"
	EventLeadConverted  = "lead.converted"
	EventJobCreated     = "job.created"
	EventQuoteConverted = "quote.converted"
	EventInvoicePaid    = "invoice.paid"
	EventWebhookTest    = "webhook.test"
)

var KnownEventTypes = []string{
	EventContactCreated, EventContactUpdated, EventContactDeleted,
	EventEventCreated, EventEventUpdated, EventEventDeleted,
	EventLeadCreated, EventLeadConverted, EventJobCreated,
	EventQuoteConverted, EventInvoicePaid, EventWebhookTest,
}
