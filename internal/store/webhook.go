package store

import (
	"context"

	"fieldpro.app/relay/core/db/sqlc"
	"fieldpro.app/relay/internal/model"
)

type webhookEndpointStore struct {
	queries *sqlc.Queries
}

func newWebhookEndpointStore(queries *sqlc.Queries) WebhookEndpointStore {
	return &webhookEndpointStore{queries: queries}
}

func (s *webhookEndpointStore) GetByID(ctx context.Context, orgID, id int64) (*model.WebhookEndpoint, error) {
	row, err := s.queries.GetWebhookEndpoint(ctx, sqlc.GetWebhookEndpointParams{ID: id, OrganizationID: orgID})
	if err != nil {
		return nil, mapErr(err)
	}
	return toWebhookEndpointModel(row), nil
}

func (s *webhookEndpointStore) Lookup(ctx context.Context, id int64) (*model.WebhookEndpoint, error) {
	row, err := s.queries.GetWebhookEndpointByID(ctx, id)
	if err != nil {
		return nil, mapErr(err)
	}
	return toWebhookEndpointModel(row), nil
}

func (s *webhookEndpointStore) Create(ctx context.Context, endpoint *model.WebhookEndpoint) error {
	row, err := s.queries.CreateWebhookEndpoint(ctx, sqlc.CreateWebhookEndpointParams{
		ID:             endpoint.ID,
		OrganizationID: endpoint.OrganizationID,
		Url:            endpoint.URL,
		Description:    endpoint.Description,
		Secret:         endpoint.Secret,
		EventTypes:     endpoint.EventTypes,
		Active:         endpoint.Active,
	})
	if err != nil {
		return mapErr(err)
	}
	*endpoint = *toWebhookEndpointModel(row)
	return nil
}

func (s *webhookEndpointStore) Update(ctx context.Context, endpoint *model.WebhookEndpoint) error {
	row, err := s.queries.UpdateWebhookEndpoint(ctx, sqlc.UpdateWebhookEndpointParams{
		ID:             endpoint.ID,
		OrganizationID: endpoint.OrganizationID,
		Url:            endpoint.URL,
		Description:    endpoint.Description,
		EventTypes:     endpoint.EventTypes,
		Active:         endpoint.Active,
	})
	if err != nil {
		return mapErr(err)
	}
	*endpoint = *toWebhookEndpointModel(row)
	return nil
}

func (s *webhookEndpointStore) Delete(ctx context.Context, orgID, id int64) error {
	return rowsAffected(s.queries.DeleteWebhookEndpoint(ctx, sqlc.DeleteWebhookEndpointParams{ID: id, OrganizationID: orgID}))
}

func (s *webhookEndpointStore) ListByOrganization(ctx context.Context, orgID int64) ([]model.WebhookEndpoint, error) {
	rows, err := s.queries.ListWebhookEndpoints(ctx, orgID)
	if err != nil {
		return nil, err
	}
	return toWebhookEndpointModels(rows), nil
}

func (s *webhookEndpointStore) ListSubscribed(ctx context.Context, orgID int64, eventType string) ([]model.WebhookEndpoint, error) {
	rows, err := s.queries.ListActiveWebhookEndpointsForEvent(ctx, sqlc.ListActiveWebhookEndpointsForEventParams{
		OrganizationID: orgID,
		EventType:      eventType,
	})
	if err != nil {
		return nil, err
	}
	return toWebhookEndpointModels(rows), nil
}

func toWebhookEndpointModels(rows []sqlc.WebhookEndpoint) []model.WebhookEndpoint {
	result := make([]model.WebhookEndpoint, len(rows))
	for i, row := range rows {
		result[i] = *toWebhookEndpointModel(row)
	}
	return result
}

func toWebhookEndpointModel(row sqlc.WebhookEndpoint) *model.WebhookEndpoint {
	return &model.WebhookEndpoint{
		ID:             row.ID,
		OrganizationID: row.OrganizationID,
		URL:            row.Url,
		Description:    row.Description,
		Secret:         row.Secret,
		EventTypes:     row.EventTypes,
		Active:         row.Active,
		CreatedAt:      row.CreatedAt.Time,
		UpdatedAt:      row.UpdatedAt.Time,
	}
}

type webhookDeliveryStore struct {
	queries *sqlc.Queries
}

func newWebhookDeliveryStore(queries *sqlc.Queries) WebhookDeliveryStore {
	return &webhookDeliveryStore{queries: queries}
}

func (s *webhookDeliveryStore) GetByID(ctx context.Context, id int64) (*model.WebhookDelivery, error) {
	row, err := s.queries.GetWebhookDelivery(ctx, id)
	if err != nil {
		return nil, mapErr(err)
	}
	return toWebhookDeliveryModel(row), nil
}

func (s *webhookDeliveryStore) Create(ctx context.Context, delivery *model.WebhookDelivery) error {
	row, err := s.queries.CreateWebhookDelivery(ctx, sqlc.CreateWebhookDeliveryParams{
		ID:             delivery.ID,
		OrganizationID: delivery.OrganizationID,
		EndpointID:     delivery.EndpointID,
		EventType:      delivery.EventType,
		Payload:        delivery.Payload,
	})
	if err != nil {
		return mapErr(err)
	}
	*delivery = *toWebhookDeliveryModel(row)
	return nil
}

func (s *webhookDeliveryStore) RecordAttempt(ctx context.Context, id int64, status model.DeliveryStatus, statusCode *int32, lastErr *string) error {
	return s.queries.RecordWebhookAttempt(ctx, sqlc.RecordWebhookAttemptParams{
		ID:             id,
		Status:         string(status),
		LastStatusCode: statusCode,
		LastError:      lastErr,
	})
}

func (s *webhookDeliveryStore) ListByEndpoint(ctx context.Context, orgID, endpointID int64, limit int32) ([]model.WebhookDelivery, error) {
	rows, err := s.queries.ListWebhookDeliveries(ctx, sqlc.ListWebhookDeliveriesParams{
		EndpointID:     endpointID,
		OrganizationID: orgID,
		Limit:          limit,
	})
	if err != nil {
		return nil, err
	}
	result := make([]model.WebhookDelivery, len(rows))
	for i, row := range rows {
		result[i] = *toWebhookDeliveryModel(row)
	}
	return result, nil
}

func toWebhookDeliveryModel(row sqlc.WebhookDelivery) *model.WebhookDelivery {
	return &model.WebhookDelivery{
		ID:             row.ID,
		OrganizationID: row.OrganizationID,
		EndpointID:     row.EndpointID,
		EventType:      row.EventType,
		Payload:        row.Payload,
		Status:         model.DeliveryStatus(row.Status),
		Attempts:       row.Attempts,
		LastStatusCode: row.LastStatusCode,
		LastError:      row.LastError,
		DeliveredAt:    pgTimestamptzToTime(row.DeliveredAt),
		CreatedAt:      row.CreatedAt.Time,
		UpdatedAt:      row.UpdatedAt.Time,
	}
}
