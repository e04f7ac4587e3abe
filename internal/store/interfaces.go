package store

import (
	"context"
	"errors"
	"time"

	"fieldpro.app/relay/internal/model"
)

// ErrNotFound is returned when a requested entity does not exist
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when an insert violates a unique constraint
var ErrDuplicate = errors.New("duplicate")

// Page bounds list queries.
type Page struct {
	Limit  int32
	Offset int32
}

// UserStore defines the contract for user data access
type UserStore interface {
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	Upsert(ctx context.Context, user *model.User) error
}

// MembershipStore defines the contract for organization membership access
type MembershipStore interface {
	Get(ctx context.Context, orgID, userID int64) (*model.Membership, error)
	Create(ctx context.Context, m *model.Membership) error
	Delete(ctx context.Context, orgID, userID int64) error
	ListByOrganization(ctx context.Context, orgID int64) ([]model.Membership, error)
}

// OrganizationStore defines the contract for organization data access
type OrganizationStore interface {
	GetByID(ctx context.Context, id int64) (*model.Organization, error)
	GetBySlug(ctx context.Context, slug string) (*model.Organization, error)
	Create(ctx context.Context, org *model.Organization) error
	Update(ctx context.Context, org *model.Organization) error
	SetStatus(ctx context.Context, id int64, status model.OrganizationStatus) (*model.Organization, error)
	List(ctx context.Context, page Page) ([]model.Organization, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Organization, error)
}

// SessionStore defines the contract for session data access
type SessionStore interface {
	GetValid(ctx context.Context, tokenHash []byte) (*model.Session, error) // checks expiry
	Create(ctx context.Context, session *model.Session) error
	Delete(ctx context.Context, tokenHash []byte) error
	DeleteExpired(ctx context.Context) error
}

// ContactStore defines the contract for contact data access
type ContactStore interface {
	GetByID(ctx context.Context, orgID, id int64) (*model.Contact, error)
	FindByEmail(ctx context.Context, orgID int64, email string) (*model.Contact, error)
	Create(ctx context.Context, contact *model.Contact) error
	Update(ctx context.Context, contact *model.Contact) error
	Delete(ctx context.Context, orgID, id int64) error
	List(ctx context.Context, orgID int64, search string, page Page) ([]model.Contact, error)
}

// LeadStore defines the contract for lead data access
type LeadStore interface {
	GetByID(ctx context.Context, orgID, id int64) (*model.Lead, error)
	Create(ctx context.Context, lead *model.Lead) error
	Update(ctx context.Context, lead *model.Lead) error
	MarkConverted(ctx context.Context, orgID, id, contactID int64) (*model.Lead, error)
	Delete(ctx context.Context, orgID, id int64) error
	List(ctx context.Context, orgID int64, status string, page Page) ([]model.Lead, error)
}

// JobStore defines the contract for job data access
type JobStore interface {
	GetByID(ctx context.Context, orgID, id int64) (*model.Job, error)
	Create(ctx context.Context, job *model.Job) error
	Update(ctx context.Context, job *model.Job) error
	Delete(ctx context.Context, orgID, id int64) error
	List(ctx context.Context, orgID int64, status string, page Page) ([]model.Job, error)
}

// QuoteStore defines the contract for quote data access
type QuoteStore interface {
	GetByID(ctx context.Context, orgID, id int64) (*model.Quote, error)
	Create(ctx context.Context, quote *model.Quote) error
	Update(ctx context.Context, quote *model.Quote) error
	SetStatus(ctx context.Context, orgID, id int64, status model.QuoteStatus) (*model.Quote, error)
	Delete(ctx context.Context, orgID, id int64) error
	List(ctx context.Context, orgID int64, status string, page Page) ([]model.Quote, error)
	Count(ctx context.Context, orgID int64) (int64, error)
}

// InvoiceStore defines the contract for invoice data access
type InvoiceStore interface {
	GetByID(ctx context.Context, orgID, id int64) (*model.Invoice, error)
	Create(ctx context.Context, invoice *model.Invoice) error
	Update(ctx context.Context, invoice *model.Invoice) error
	MarkPaid(ctx context.Context, orgID, id int64, paidAt time.Time) (*model.Invoice, error)
	Delete(ctx context.Context, orgID, id int64) error
	List(ctx context.Context, orgID int64, status string, page Page) ([]model.Invoice, error)
	Count(ctx context.Context, orgID int64) (int64, error)
}

// TaskStore defines the contract for task data access
type TaskStore interface {
	GetByID(ctx context.Context, orgID, id int64) (*model.Task, error)
	Create(ctx context.Context, task *model.Task) error
	Update(ctx context.Context, task *model.Task) error
	SetCompleted(ctx context.Context, orgID, id int64, completedAt *time.Time) (*model.Task, error)
	Delete(ctx context.Context, orgID, id int64) error
	List(ctx context.Context, orgID int64, includeCompleted bool, page Page) ([]model.Task, error)
}

// EventStore defines the contract for calendar event data access
type EventStore interface {
	GetByID(ctx context.Context, orgID, id int64) (*model.Event, error)
	Create(ctx context.Context, event *model.Event) error
	Update(ctx context.Context, event *model.Event) error
	Delete(ctx context.Context, orgID, id int64) error
	// ListInRange returns events overlapping the half-open range [start, end).
	ListInRange(ctx context.Context, orgID int64, start, end time.Time) ([]model.Event, error)
}

// APIKeyStore defines the contract for integration API key access
type APIKeyStore interface {
	GetByID(ctx context.Context, orgID, id int64) (*model.APIKey, error)
	GetByPrefix(ctx context.Context, prefix string) (*model.APIKey, error)
	Create(ctx context.Context, key *model.APIKey) error
	Revoke(ctx context.Context, orgID, id int64) (*model.APIKey, error)
	Touch(ctx context.Context, id int64) error
	ListByOrganization(ctx context.Context, orgID int64) ([]model.APIKey, error)
}

// FeatureFlagStore defines the contract for per-organization flag overrides
type FeatureFlagStore interface {
	Get(ctx context.Context, orgID int64, key string) (*model.FeatureFlag, error)
	Set(ctx context.Context, orgID int64, key string, enabled bool) (*model.FeatureFlag, error)
	Delete(ctx context.Context, orgID int64, key string) error
	ListByOrganization(ctx context.Context, orgID int64) ([]model.FeatureFlag, error)
}

// ChatWidgetStore defines the contract for chat widget configuration access
type ChatWidgetStore interface {
	GetByOrganization(ctx context.Context, orgID int64) (*model.ChatWidgetConfig, error)
	GetByPublicID(ctx context.Context, publicID string) (*model.ChatWidgetConfig, error)
	Upsert(ctx context.Context, cfg *model.ChatWidgetConfig) error
}

// WebhookEndpointStore defines the contract for outbound webhook endpoints
type WebhookEndpointStore interface {
	GetByID(ctx context.Context, orgID, id int64) (*model.WebhookEndpoint, error)
	// Lookup fetches an endpoint without tenant scoping; used by the delivery worker.
	Lookup(ctx context.Context, id int64) (*model.WebhookEndpoint, error)
	Create(ctx context.Context, endpoint *model.WebhookEndpoint) error
	Update(ctx context.Context, endpoint *model.WebhookEndpoint) error
	Delete(ctx context.Context, orgID, id int64) error
	ListByOrganization(ctx context.Context, orgID int64) ([]model.WebhookEndpoint, error)
	ListSubscribed(ctx context.Context, orgID int64, eventType string) ([]model.WebhookEndpoint, error)
}

// WebhookDeliveryStore defines the contract for the delivery log
type WebhookDeliveryStore interface {
	GetByID(ctx context.Context, id int64) (*model.WebhookDelivery, error)
	Create(ctx context.Context, delivery *model.WebhookDelivery) error
	RecordAttempt(ctx context.Context, id int64, status model.DeliveryStatus, statusCode *int32, lastErr *string) error
	ListByEndpoint(ctx context.Context, orgID, endpointID int64, limit int32) ([]model.WebhookDelivery, error)
}
