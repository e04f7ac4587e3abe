package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/url"
	"slices"
	"strings"

	"fieldpro.app/relay/common/id"
	"fieldpro.app/relay/internal/model"
	"fieldpro.app/relay/internal/store"
)

const (
	webhookSecretPrefix = "whsec_"
	defaultDeliveryLog  = 50
)

type WebhookInput struct {
	URL         string
	Description *string
	EventTypes  []string
	Active      *bool
}

type WebhookPatch struct {
	URL         *string
	Description *string
	EventTypes  []string // nil keeps the current subscription
	Active      *bool
}

// CreatedWebhook carries the signing secret, shown only on creation.
type CreatedWebhook struct {
	Endpoint *model.WebhookEndpoint
	Secret   string
}

type WebhookService interface {
	Create(ctx context.Context, orgID int64, input WebhookInput) (*CreatedWebhook, error)
	Get(ctx context.Context, orgID, id int64) (*model.WebhookEndpoint, error)
	List(ctx context.Context, orgID int64) ([]model.WebhookEndpoint, error)
	Update(ctx context.Context, orgID, id int64, patch WebhookPatch) (*model.WebhookEndpoint, error)
	Delete(ctx context.Context, orgID, id int64) error
	// SendTest queues a webhook.test event to one endpoint, even if it is not
	// subscribed to it.
	SendTest(ctx context.Context, orgID, id int64) (*model.WebhookDelivery, error)
	Deliveries(ctx context.Context, orgID, id int64, limit int) ([]model.WebhookDelivery, error)
}

type webhookService struct {
	endpoints  store.WebhookEndpointStore
	deliveries store.WebhookDeliveryStore
	publisher  Publisher
}

func NewWebhookService(endpoints store.WebhookEndpointStore, deliveries store.WebhookDeliveryStore, publisher Publisher) WebhookService {
	return &webhookService{endpoints: endpoints, deliveries: deliveries, publisher: publisher}
}

func (s *webhookService) Create(ctx context.Context, orgID int64, input WebhookInput) (*CreatedWebhook, error) {
	target, err := validateWebhookURL(input.URL)
	if err != nil {
		return nil, err
	}
	events, err := validateEventTypes(input.EventTypes)
	if err != nil {
		return nil, err
	}
	secret, err := generateWebhookSecret()
	if err != nil {
		return nil, fmt.Errorf("generating webhook secret: %w", err)
	}

	endpoint := &model.WebhookEndpoint{
		ID:             id.New(),
		OrganizationID: orgID,
		URL:            target,
		Description:    trimmed(input.Description),
		Secret:         secret,
		EventTypes:     events,
		Active:         input.Active == nil || *input.Active,
	}
	if err := s.endpoints.Create(ctx, endpoint); err != nil {
		return nil, fmt.Errorf("creating webhook endpoint: %w", err)
	}

	slog.InfoContext(ctx, "webhook endpoint created", "endpoint_id", endpoint.ID, "event_types", events)
	return &CreatedWebhook{Endpoint: endpoint, Secret: secret}, nil
}

func (s *webhookService) Get(ctx context.Context, orgID, id int64) (*model.WebhookEndpoint, error) {
	endpoint, err := s.endpoints.GetByID(ctx, orgID, id)
	if err != nil {
		return nil, lookupErr("webhook endpoint", err)
	}
	return endpoint, nil
}

func (s *webhookService) List(ctx context.Context, orgID int64) ([]model.WebhookEndpoint, error) {
	endpoints, err := s.endpoints.ListByOrganization(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("listing webhook endpoints: %w", err)
	}
	return endpoints, nil
}

func (s *webhookService) Update(ctx context.Context, orgID, id int64, patch WebhookPatch) (*model.WebhookEndpoint, error) {
	endpoint, err := s.Get(ctx, orgID, id)
	if err != nil {
		return nil, err
	}

	if patch.URL != nil {
		target, err := validateWebhookURL(*patch.URL)
		if err != nil {
			return nil, err
		}
		endpoint.URL = target
	}
	if patch.Description != nil {
		endpoint.Description = trimmed(patch.Description)
	}
	if patch.EventTypes != nil {
		events, err := validateEventTypes(patch.EventTypes)
		if err != nil {
			return nil, err
		}
		endpoint.EventTypes = events
	}
	if patch.Active != nil {
		endpoint.Active = *patch.Active
	}

	if err := s.endpoints.Update(ctx, endpoint); err != nil {
		return nil, lookupErr("webhook endpoint", err)
	}
	return endpoint, nil
}

func (s *webhookService) Delete(ctx context.Context, orgID, id int64) error {
	if err := s.endpoints.Delete(ctx, orgID, id); err != nil {
		return lookupErr("webhook endpoint", err)
	}
	return nil
}

func (s *webhookService) SendTest(ctx context.Context, orgID, id int64) (*model.WebhookDelivery, error) {
	endpoint, err := s.Get(ctx, orgID, id)
	if err != nil {
		return nil, err
	}
	if !endpoint.Active {
		return nil, fmt.Errorf("webhook endpoint is inactive: %w", ErrConflict)
	}

	delivery, err := s.publisher.Deliver(ctx, endpoint, model.EventWebhookTest, map[string]string{
		"message": "This is a test event.",
	})
	if err != nil {
		return nil, fmt.Errorf("queueing test delivery: %w", err)
	}
	return delivery, nil
}

func (s *webhookService) Deliveries(ctx context.Context, orgID, id int64, limit int) ([]model.WebhookDelivery, error) {
	if _, err := s.Get(ctx, orgID, id); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > maxPageSize {
		limit = defaultDeliveryLog
	}
	deliveries, err := s.deliveries.ListByEndpoint(ctx, orgID, id, int32(limit))
	if err != nil {
		return nil, fmt.Errorf("listing deliveries: %w", err)
	}
	return deliveries, nil
}

func validateWebhookURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || (u.Scheme != "https" && u.Scheme != "http") {
		return "", invalid("webhook url must be an absolute http(s) url")
	}
	return raw, nil
}

func validateEventTypes(types []string) ([]string, error) {
	if len(types) == 0 {
		return []string{"*"}, nil
	}
	out := make([]string, 0, len(types))
	for _, t := range types {
		t = strings.TrimSpace(t)
		if t != "*" && !slices.Contains(model.KnownEventTypes, t) {
			return nil, invalid(fmt.Sprintf("unknown event type %q", t))
		}
		out = append(out, t)
	}
	slices.Sort(out)
	return slices.Compact(out), nil
}

func generateWebhookSecret() (string, error) {
	buf := make([]byte, 24)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return webhookSecretPrefix + hex.EncodeToString(buf), nil
}
