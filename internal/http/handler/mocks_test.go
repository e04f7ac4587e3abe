package handler_test

import (
	"context"
	"time"

	"fieldpro.app/relay/internal/model"
	"fieldpro.app/relay/internal/service"
)

type mockGatewayService struct {
	handleFn func(ctx context.Context, req service.GatewayRequest) (*service.GatewayResult, error)
	requests []service.GatewayRequest
}

func (m *mockGatewayService) Handle(ctx context.Context, req service.GatewayRequest) (*service.GatewayResult, error) {
	m.requests = append(m.requests, req)
	if m.handleFn != nil {
		return m.handleFn(ctx, req)
	}
	return &service.GatewayResult{}, nil
}

func (m *mockGatewayService) Schemas() []service.ActionSchema {
	return service.ActionSchemas()
}

type mockContactService struct {
	createFn func(ctx context.Context, orgID int64, input service.ContactInput) (*model.Contact, error)
	getFn    func(ctx context.Context, orgID, id int64) (*model.Contact, error)
	updateFn func(ctx context.Context, orgID, id int64, patch service.ContactPatch) (*model.Contact, error)
	deleteFn func(ctx context.Context, orgID, id int64) error
	listFn   func(ctx context.Context, orgID int64, search string, page service.PageRequest) ([]model.Contact, error)
}

func (m *mockContactService) Create(ctx context.Context, orgID int64, input service.ContactInput) (*model.Contact, error) {
	if m.createFn != nil {
		return m.createFn(ctx, orgID, input)
	}
	return &model.Contact{ID: 1, OrganizationID: orgID, FirstName: input.FirstName}, nil
}

func (m *mockContactService) Get(ctx context.Context, orgID, id int64) (*model.Contact, error) {
	if m.getFn != nil {
		return m.getFn(ctx, orgID, id)
	}
	return nil, service.ErrNotFound
}

func (m *mockContactService) Update(ctx context.Context, orgID, id int64, patch service.ContactPatch) (*model.Contact, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, orgID, id, patch)
	}
	return nil, service.ErrNotFound
}

func (m *mockContactService) Delete(ctx context.Context, orgID, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, orgID, id)
	}
	return nil
}

func (m *mockContactService) List(ctx context.Context, orgID int64, search string, page service.PageRequest) ([]model.Contact, error) {
	if m.listFn != nil {
		return m.listFn(ctx, orgID, search, page)
	}
	return nil, nil
}

type mockEventService struct {
	createFn       func(ctx context.Context, orgID int64, input service.EventInput) (*model.Event, error)
	availabilityFn func(ctx context.Context, orgID int64, start, end time.Time, slot time.Duration) (*service.Availability, error)
}

func (m *mockEventService) Create(ctx context.Context, orgID int64, input service.EventInput) (*model.Event, error) {
	if m.createFn != nil {
		return m.createFn(ctx, orgID, input)
	}
	return &model.Event{ID: 1, OrganizationID: orgID, Title: input.Title, StartsAt: input.StartsAt, EndsAt: input.EndsAt}, nil
}

func (m *mockEventService) Get(_ context.Context, _, _ int64) (*model.Event, error) {
	return nil, service.ErrNotFound
}

func (m *mockEventService) Update(_ context.Context, _, _ int64, _ service.EventPatch) (*model.Event, error) {
	return nil, service.ErrNotFound
}

func (m *mockEventService) Delete(_ context.Context, _, _ int64) error {
	return nil
}

func (m *mockEventService) List(_ context.Context, _ int64, _, _ time.Time) ([]model.Event, error) {
	return nil, nil
}

func (m *mockEventService) Availability(ctx context.Context, orgID int64, start, end time.Time, slot time.Duration) (*service.Availability, error) {
	if m.availabilityFn != nil {
		return m.availabilityFn(ctx, orgID, start, end, slot)
	}
	return &service.Availability{Start: start, End: end, Available: true}, nil
}

type mockAPIKeyService struct {
	createFn func(ctx context.Context, orgID, userID int64, input service.APIKeyInput) (*service.IssuedKey, error)
	rotateFn func(ctx context.Context, orgID, userID, id int64) (*service.IssuedKey, error)
	revokeFn func(ctx context.Context, orgID, id int64) (*model.APIKey, error)
}

func (m *mockAPIKeyService) Create(ctx context.Context, orgID, userID int64, input service.APIKeyInput) (*service.IssuedKey, error) {
	if m.createFn != nil {
		return m.createFn(ctx, orgID, userID, input)
	}
	return nil, service.ErrInvalidInput
}

func (m *mockAPIKeyService) Get(_ context.Context, _, _ int64) (*model.APIKey, error) {
	return nil, service.ErrNotFound
}

func (m *mockAPIKeyService) List(_ context.Context, _ int64) ([]model.APIKey, error) {
	return nil, nil
}

func (m *mockAPIKeyService) Rotate(ctx context.Context, orgID, userID, id int64) (*service.IssuedKey, error) {
	if m.rotateFn != nil {
		return m.rotateFn(ctx, orgID, userID, id)
	}
	return nil, service.ErrNotFound
}

func (m *mockAPIKeyService) Revoke(ctx context.Context, orgID, id int64) (*model.APIKey, error) {
	if m.revokeFn != nil {
		return m.revokeFn(ctx, orgID, id)
	}
	return nil, service.ErrNotFound
}

type mockWidgetService struct {
	publicConfigFn func(ctx context.Context, publicID string) (*model.ChatWidgetConfig, error)
}

func (m *mockWidgetService) Get(_ context.Context, orgID int64) (*model.ChatWidgetConfig, error) {
	return &model.ChatWidgetConfig{OrganizationID: orgID}, nil
}

func (m *mockWidgetService) Update(_ context.Context, orgID int64, _ service.WidgetInput) (*model.ChatWidgetConfig, error) {
	return &model.ChatWidgetConfig{OrganizationID: orgID}, nil
}

func (m *mockWidgetService) PublicConfig(ctx context.Context, publicID string) (*model.ChatWidgetConfig, error) {
	if m.publicConfigFn != nil {
		return m.publicConfigFn(ctx, publicID)
	}
	return nil, service.ErrNotFound
}
