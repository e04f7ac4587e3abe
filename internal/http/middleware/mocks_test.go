package middleware_test

import (
	"context"

	"fieldpro.app/relay/internal/model"
	"fieldpro.app/relay/internal/service"
)

type mockAuthService struct {
	validateSessionFn func(ctx context.Context, token string) (*model.User, *model.Session, error)
}

func (m *mockAuthService) GetAuthorizationURL(_ string) (string, error) {
	return "", nil
}

func (m *mockAuthService) HandleCallback(_ context.Context, _ string) (*model.User, *service.IssuedSession, error) {
	return nil, nil, service.ErrInvalidCode
}

func (m *mockAuthService) ValidateSession(ctx context.Context, token string) (*model.User, *model.Session, error) {
	if m.validateSessionFn != nil {
		return m.validateSessionFn(ctx, token)
	}
	return nil, nil, service.ErrSessionExpired
}

func (m *mockAuthService) Logout(_ context.Context, _ string) error {
	return nil
}

type mockUserService struct {
	resolveTenantFn func(ctx context.Context, userID int64, orgID *int64) (*service.Tenant, error)
}

func (m *mockUserService) GetProfile(_ context.Context, _ int64) (*model.User, []model.Organization, error) {
	return nil, nil, service.ErrNotFound
}

func (m *mockUserService) ResolveTenant(ctx context.Context, userID int64, orgID *int64) (*service.Tenant, error) {
	if m.resolveTenantFn != nil {
		return m.resolveTenantFn(ctx, userID, orgID)
	}
	return nil, service.ErrNotFound
}
