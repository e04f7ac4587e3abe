package store

import (
	"fieldpro.app/relay/core/db/sqlc"
)

type Stores struct {
	queries *sqlc.Queries
}

func NewStores(queries *sqlc.Queries) *Stores {
	return &Stores{queries: queries}
}

func (s *Stores) Users() UserStore {
	return newUserStore(s.queries)
}

func (s *Stores) Memberships() MembershipStore {
	return newMembershipStore(s.queries)
}

func (s *Stores) Organizations() OrganizationStore {
	return newOrganizationStore(s.queries)
}

func (s *Stores) Sessions() SessionStore {
	return newSessionStore(s.queries)
}

func (s *Stores) Contacts() ContactStore {
	return newContactStore(s.queries)
}

func (s *Stores) Leads() LeadStore {
	return newLeadStore(s.queries)
}

func (s *Stores) Jobs() JobStore {
	return newJobStore(s.queries)
}

func (s *Stores) Quotes() QuoteStore {
	return newQuoteStore(s.queries)
}

func (s *Stores) Invoices() InvoiceStore {
	return newInvoiceStore(s.queries)
}

func (s *Stores) Tasks() TaskStore {
	return newTaskStore(s.queries)
}

func (s *Stores) Events() EventStore {
	return newEventStore(s.queries)
}

func (s *Stores) APIKeys() APIKeyStore {
	return newAPIKeyStore(s.queries)
}

func (s *Stores) FeatureFlags() FeatureFlagStore {
	return newFeatureFlagStore(s.queries)
}

func (s *Stores) ChatWidgets() ChatWidgetStore {
	return newChatWidgetStore(s.queries)
}

func (s *Stores) WebhookEndpoints() WebhookEndpointStore {
	return newWebhookEndpointStore(s.queries)
}

func (s *Stores) WebhookDeliveries() WebhookDeliveryStore {
	return newWebhookDeliveryStore(s.queries)
}

// Queries exposes the raw query set for components that call database
// functions directly, such as the rate limiter.
func (s *Stores) Queries() *sqlc.Queries {
	return s.queries
}
