package service_test

import (
	"context"
	"time"

	"fieldpro.app/relay/internal/model"
	"fieldpro.app/relay/internal/queue"
	"fieldpro.app/relay/internal/ratelimit"
	"fieldpro.app/relay/internal/service"
	"fieldpro.app/relay/internal/store"
)

type mockOrganizationStore struct {
	getByIDFn   func(ctx context.Context, id int64) (*model.Organization, error)
	getBySlugFn func(ctx context.Context, slug string) (*model.Organization, error)
	createFn    func(ctx context.Context, org *model.Organization) error
	setStatusFn func(ctx context.Context, id int64, status model.OrganizationStatus) (*model.Organization, error)
	listByUser  []model.Organization
}

func (m *mockOrganizationStore) GetByID(ctx context.Context, id int64) (*model.Organization, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return &model.Organization{ID: id, Name: "Acme Plumbing", Status: model.OrganizationStatusActive}, nil
}

func (m *mockOrganizationStore) GetBySlug(ctx context.Context, slug string) (*model.Organization, error) {
	if m.getBySlugFn != nil {
		return m.getBySlugFn(ctx, slug)
	}
	return nil, store.ErrNotFound
}

func (m *mockOrganizationStore) Create(ctx context.Context, org *model.Organization) error {
	if m.createFn != nil {
		return m.createFn(ctx, org)
	}
	return nil
}

func (m *mockOrganizationStore) Update(_ context.Context, _ *model.Organization) error {
	return nil
}

func (m *mockOrganizationStore) SetStatus(ctx context.Context, id int64, status model.OrganizationStatus) (*model.Organization, error) {
	if m.setStatusFn != nil {
		return m.setStatusFn(ctx, id, status)
	}
	return &model.Organization{ID: id, Status: status}, nil
}

func (m *mockOrganizationStore) List(_ context.Context, _ store.Page) ([]model.Organization, error) {
	return []model.Organization{}, nil
}

func (m *mockOrganizationStore) ListByUser(_ context.Context, _ int64) ([]model.Organization, error) {
	if m.listByUser != nil {
		return m.listByUser, nil
	}
	return []model.Organization{}, nil
}

type mockFeatureFlagStore struct {
	flags map[string]bool
}

func (m *mockFeatureFlagStore) Get(_ context.Context, orgID int64, key string) (*model.FeatureFlag, error) {
	enabled, ok := m.flags[key]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &model.FeatureFlag{OrganizationID: orgID, Key: key, Enabled: enabled}, nil
}

func (m *mockFeatureFlagStore) Set(_ context.Context, orgID int64, key string, enabled bool) (*model.FeatureFlag, error) {
	if m.flags == nil {
		m.flags = map[string]bool{}
	}
	m.flags[key] = enabled
	return &model.FeatureFlag{OrganizationID: orgID, Key: key, Enabled: enabled}, nil
}

func (m *mockFeatureFlagStore) Delete(_ context.Context, _ int64, key string) error {
	if _, ok := m.flags[key]; !ok {
		return store.ErrNotFound
	}
	delete(m.flags, key)
	return nil
}

func (m *mockFeatureFlagStore) ListByOrganization(_ context.Context, orgID int64) ([]model.FeatureFlag, error) {
	out := []model.FeatureFlag{}
	for key, enabled := range m.flags {
		out = append(out, model.FeatureFlag{OrganizationID: orgID, Key: key, Enabled: enabled})
	}
	return out, nil
}

type mockAPIKeyStore struct {
	getByIDFn     func(ctx context.Context, orgID, id int64) (*model.APIKey, error)
	getByPrefixFn func(ctx context.Context, prefix string) (*model.APIKey, error)
	createFn      func(ctx context.Context, key *model.APIKey) error
	revokeFn      func(ctx context.Context, orgID, id int64) (*model.APIKey, error)
	touchFn       func(ctx context.Context, id int64) error
	created       []*model.APIKey
	touched       []int64
}

func (m *mockAPIKeyStore) GetByID(ctx context.Context, orgID, id int64) (*model.APIKey, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, orgID, id)
	}
	return nil, store.ErrNotFound
}

func (m *mockAPIKeyStore) GetByPrefix(ctx context.Context, prefix string) (*model.APIKey, error) {
	if m.getByPrefixFn != nil {
		return m.getByPrefixFn(ctx, prefix)
	}
	return nil, store.ErrNotFound
}

func (m *mockAPIKeyStore) Create(ctx context.Context, key *model.APIKey) error {
	m.created = append(m.created, key)
	if m.createFn != nil {
		return m.createFn(ctx, key)
	}
	return nil
}

func (m *mockAPIKeyStore) Revoke(ctx context.Context, orgID, id int64) (*model.APIKey, error) {
	if m.revokeFn != nil {
		return m.revokeFn(ctx, orgID, id)
	}
	now := time.Now()
	return &model.APIKey{ID: id, OrganizationID: orgID, RevokedAt: &now}, nil
}

func (m *mockAPIKeyStore) Touch(ctx context.Context, id int64) error {
	m.touched = append(m.touched, id)
	if m.touchFn != nil {
		return m.touchFn(ctx, id)
	}
	return nil
}

func (m *mockAPIKeyStore) ListByOrganization(_ context.Context, _ int64) ([]model.APIKey, error) {
	return []model.APIKey{}, nil
}

type mockContactStore struct {
	getByIDFn     func(ctx context.Context, orgID, id int64) (*model.Contact, error)
	findByEmailFn func(ctx context.Context, orgID int64, email string) (*model.Contact, error)
	createFn      func(ctx context.Context, contact *model.Contact) error
	updateFn      func(ctx context.Context, contact *model.Contact) error
	deleteFn      func(ctx context.Context, orgID, id int64) error
	created       []*model.Contact
}

func (m *mockContactStore) GetByID(ctx context.Context, orgID, id int64) (*model.Contact, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, orgID, id)
	}
	return nil, store.ErrNotFound
}

func (m *mockContactStore) FindByEmail(ctx context.Context, orgID int64, email string) (*model.Contact, error) {
	if m.findByEmailFn != nil {
		return m.findByEmailFn(ctx, orgID, email)
	}
	return nil, store.ErrNotFound
}

func (m *mockContactStore) Create(ctx context.Context, contact *model.Contact) error {
	m.created = append(m.created, contact)
	if m.createFn != nil {
		return m.createFn(ctx, contact)
	}
	return nil
}

func (m *mockContactStore) Update(ctx context.Context, contact *model.Contact) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, contact)
	}
	return nil
}

func (m *mockContactStore) Delete(ctx context.Context, orgID, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, orgID, id)
	}
	return nil
}

func (m *mockContactStore) List(_ context.Context, _ int64, _ string, _ store.Page) ([]model.Contact, error) {
	return []model.Contact{}, nil
}

type mockEventStore struct {
	events   []model.Event
	createFn func(ctx context.Context, event *model.Event) error
	created  []*model.Event
}

func (m *mockEventStore) GetByID(_ context.Context, orgID, id int64) (*model.Event, error) {
	for i := range m.events {
		if m.events[i].ID == id && m.events[i].OrganizationID == orgID {
			e := m.events[i]
			return &e, nil
		}
	}
	return nil, store.ErrNotFound
}

func (m *mockEventStore) Create(ctx context.Context, event *model.Event) error {
	m.created = append(m.created, event)
	if m.createFn != nil {
		return m.createFn(ctx, event)
	}
	return nil
}

func (m *mockEventStore) Update(_ context.Context, _ *model.Event) error {
	return nil
}

func (m *mockEventStore) Delete(ctx context.Context, orgID, id int64) error {
	if _, err := m.GetByID(ctx, orgID, id); err != nil {
		return err
	}
	return nil
}

func (m *mockEventStore) ListInRange(_ context.Context, orgID int64, start, end time.Time) ([]model.Event, error) {
	out := []model.Event{}
	for _, e := range m.events {
		if e.OrganizationID == orgID && e.Overlaps(start, end) {
			out = append(out, e)
		}
	}
	return out, nil
}

type mockLeadStore struct {
	getByIDFn       func(ctx context.Context, orgID, id int64) (*model.Lead, error)
	markConvertedFn func(ctx context.Context, orgID, id, contactID int64) (*model.Lead, error)
}

func (m *mockLeadStore) GetByID(ctx context.Context, orgID, id int64) (*model.Lead, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, orgID, id)
	}
	return nil, store.ErrNotFound
}

func (m *mockLeadStore) Create(_ context.Context, _ *model.Lead) error { return nil }
func (m *mockLeadStore) Update(_ context.Context, _ *model.Lead) error { return nil }

func (m *mockLeadStore) MarkConverted(ctx context.Context, orgID, id, contactID int64) (*model.Lead, error) {
	if m.markConvertedFn != nil {
		return m.markConvertedFn(ctx, orgID, id, contactID)
	}
	return &model.Lead{ID: id, OrganizationID: orgID, ContactID: &contactID, Status: model.LeadStatusWon}, nil
}

func (m *mockLeadStore) Delete(_ context.Context, _, _ int64) error { return nil }

func (m *mockLeadStore) List(_ context.Context, _ int64, _ string, _ store.Page) ([]model.Lead, error) {
	return []model.Lead{}, nil
}

type mockChatWidgetStore struct {
	byPublicID map[string]*model.ChatWidgetConfig
	upserted   *model.ChatWidgetConfig
}

func (m *mockChatWidgetStore) GetByOrganization(_ context.Context, orgID int64) (*model.ChatWidgetConfig, error) {
	if m.upserted != nil && m.upserted.OrganizationID == orgID {
		return m.upserted, nil
	}
	return nil, store.ErrNotFound
}

func (m *mockChatWidgetStore) GetByPublicID(_ context.Context, publicID string) (*model.ChatWidgetConfig, error) {
	if cfg, ok := m.byPublicID[publicID]; ok {
		return cfg, nil
	}
	return nil, store.ErrNotFound
}

func (m *mockChatWidgetStore) Upsert(_ context.Context, cfg *model.ChatWidgetConfig) error {
	m.upserted = cfg
	return nil
}

type mockWebhookEndpointStore struct {
	endpoints []model.WebhookEndpoint
	created   *model.WebhookEndpoint
}

func (m *mockWebhookEndpointStore) GetByID(_ context.Context, orgID, id int64) (*model.WebhookEndpoint, error) {
	for i := range m.endpoints {
		if m.endpoints[i].ID == id && m.endpoints[i].OrganizationID == orgID {
			return &m.endpoints[i], nil
		}
	}
	return nil, store.ErrNotFound
}

func (m *mockWebhookEndpointStore) Lookup(_ context.Context, id int64) (*model.WebhookEndpoint, error) {
	for i := range m.endpoints {
		if m.endpoints[i].ID == id {
			return &m.endpoints[i], nil
		}
	}
	return nil, store.ErrNotFound
}

func (m *mockWebhookEndpointStore) Create(_ context.Context, endpoint *model.WebhookEndpoint) error {
	m.created = endpoint
	m.endpoints = append(m.endpoints, *endpoint)
	return nil
}

func (m *mockWebhookEndpointStore) Update(_ context.Context, _ *model.WebhookEndpoint) error {
	return nil
}

func (m *mockWebhookEndpointStore) Delete(_ context.Context, _, _ int64) error {
	return nil
}

func (m *mockWebhookEndpointStore) ListByOrganization(_ context.Context, _ int64) ([]model.WebhookEndpoint, error) {
	return m.endpoints, nil
}

func (m *mockWebhookEndpointStore) ListSubscribed(_ context.Context, orgID int64, eventType string) ([]model.WebhookEndpoint, error) {
	out := []model.WebhookEndpoint{}
	for _, e := range m.endpoints {
		if e.OrganizationID == orgID && e.Active && e.Subscribes(eventType) {
			out = append(out, e)
		}
	}
	return out, nil
}

type mockWebhookDeliveryStore struct {
	created []*model.WebhookDelivery
}

func (m *mockWebhookDeliveryStore) GetByID(_ context.Context, id int64) (*model.WebhookDelivery, error) {
	for _, d := range m.created {
		if d.ID == id {
			return d, nil
		}
	}
	return nil, store.ErrNotFound
}

func (m *mockWebhookDeliveryStore) Create(_ context.Context, delivery *model.WebhookDelivery) error {
	m.created = append(m.created, delivery)
	return nil
}

func (m *mockWebhookDeliveryStore) RecordAttempt(_ context.Context, _ int64, _ model.DeliveryStatus, _ *int32, _ *string) error {
	return nil
}

func (m *mockWebhookDeliveryStore) ListByEndpoint(_ context.Context, _, _ int64, _ int32) ([]model.WebhookDelivery, error) {
	return []model.WebhookDelivery{}, nil
}

type mockProducer struct {
	messages []queue.DeliveryMessage
	err      error
}

func (m *mockProducer) Enqueue(_ context.Context, msg queue.DeliveryMessage) error {
	if m.err != nil {
		return m.err
	}
	m.messages = append(m.messages, msg)
	return nil
}

func (m *mockProducer) Close() error { return nil }

type published struct {
	orgID     int64
	eventType string
	data      any
}

type mockPublisher struct {
	events []published
}

func (m *mockPublisher) Publish(_ context.Context, orgID int64, eventType string, data any) {
	m.events = append(m.events, published{orgID: orgID, eventType: eventType, data: data})
}

func (m *mockPublisher) Deliver(_ context.Context, endpoint *model.WebhookEndpoint, eventType string, _ any) (*model.WebhookDelivery, error) {
	return &model.WebhookDelivery{
		ID:             1,
		OrganizationID: endpoint.OrganizationID,
		EndpointID:     endpoint.ID,
		EventType:      eventType,
		Status:         model.DeliveryStatusPending,
	}, nil
}

func (m *mockPublisher) types() []string {
	out := make([]string, 0, len(m.events))
	for _, e := range m.events {
		out = append(out, e.eventType)
	}
	return out
}

type mockLimiter struct {
	decision ratelimit.Decision
	err      error
	keys     []string
}

func (m *mockLimiter) Allow(_ context.Context, key string) (ratelimit.Decision, error) {
	m.keys = append(m.keys, key)
	return m.decision, m.err
}

type mockStoreProvider struct {
	orgs        store.OrganizationStore
	memberships store.MembershipStore
	contacts    store.ContactStore
	leads       store.LeadStore
	quotes      store.QuoteStore
	invoices    store.InvoiceStore
	apiKeys     store.APIKeyStore
}

func (m *mockStoreProvider) Organizations() store.OrganizationStore { return m.orgs }
func (m *mockStoreProvider) Memberships() store.MembershipStore     { return m.memberships }
func (m *mockStoreProvider) Contacts() store.ContactStore           { return m.contacts }
func (m *mockStoreProvider) Leads() store.LeadStore                 { return m.leads }
func (m *mockStoreProvider) Quotes() store.QuoteStore               { return m.quotes }
func (m *mockStoreProvider) Invoices() store.InvoiceStore           { return m.invoices }
func (m *mockStoreProvider) APIKeys() store.APIKeyStore             { return m.apiKeys }

type mockTxRunner struct {
	provider *mockStoreProvider
	calls    int
}

func (m *mockTxRunner) WithTx(_ context.Context, fn func(stores service.StoreProvider) error) error {
	m.calls++
	return fn(m.provider)
}

func strPtr(s string) *string {
	return &s
}
