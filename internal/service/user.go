package service

import (
	"context"
	"fmt"

	"fieldpro.app/relay/internal/model"
	"fieldpro.app/relay/internal/store"
)

// Tenant is the organization a dashboard request acts on, with the caller's
// membership in it.
type Tenant struct {
	Organization *model.Organization
	Membership   *model.Membership
}

type UserService interface {
	GetProfile(ctx context.Context, userID int64) (*model.User, []model.Organization, error)
	// ResolveTenant picks the requested organization, or the user's first one
	// when orgID is nil.
	ResolveTenant(ctx context.Context, userID int64, orgID *int64) (*Tenant, error)
}

type userService struct {
	users       store.UserStore
	orgs        store.OrganizationStore
	memberships store.MembershipStore
}

func NewUserService(users store.UserStore, orgs store.OrganizationStore, memberships store.MembershipStore) UserService {
	return &userService{users: users, orgs: orgs, memberships: memberships}
}

func (s *userService) GetProfile(ctx context.Context, userID int64) (*model.User, []model.Organization, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, nil, lookupErr("user", err)
	}

	orgs, err := s.orgs.ListByUser(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("listing organizations: %w", err)
	}

	return user, orgs, nil
}

func (s *userService) ResolveTenant(ctx context.Context, userID int64, orgID *int64) (*Tenant, error) {
	var org *model.Organization
	if orgID != nil {
		o, err := s.orgs.GetByID(ctx, *orgID)
		if err != nil {
			if isNotFound(err) {
				return nil, fmt.Errorf("not a member of organization %d: %w", *orgID, ErrForbidden)
			}
			return nil, fmt.Errorf("loading organization: %w", err)
		}
		org = o
	} else {
		orgs, err := s.orgs.ListByUser(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("listing organizations: %w", err)
		}
		if len(orgs) == 0 {
			return nil, fmt.Errorf("user has no organization: %w", ErrForbidden)
		}
		org = &orgs[0]
	}

	membership, err := s.memberships.Get(ctx, org.ID, userID)
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("not a member of organization %d: %w", org.ID, ErrForbidden)
		}
		return nil, fmt.Errorf("loading membership: %w", err)
	}

	if org.IsSuspended() {
		return nil, ErrOrganizationSuspended
	}

	return &Tenant{Organization: org, Membership: membership}, nil
}
