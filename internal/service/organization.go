package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"fieldpro.app/relay/common"
	"fieldpro.app/relay/common/id"
	"fieldpro.app/relay/internal/model"
	"fieldpro.app/relay/internal/store"
)

const defaultPlan = "starter"

type OrganizationInput struct {
	Name       string
	Slug       *string
	Plan       string
	OwnerEmail *string // existing user to make owner, optional
}

type OrganizationPatch struct {
	Name *string
	Plan *string
}

// OrganizationService backs the admin back-office and first-login onboarding.
type OrganizationService interface {
	Create(ctx context.Context, input OrganizationInput) (*model.Organization, error)
	// CreateForOwner creates an organization with ownerID as its owner.
	CreateForOwner(ctx context.Context, name string, ownerID int64) (*model.Organization, error)
	Get(ctx context.Context, id int64) (*model.Organization, error)
	List(ctx context.Context, page PageRequest) ([]model.Organization, error)
	Update(ctx context.Context, id int64, patch OrganizationPatch) (*model.Organization, error)
	SetSuspended(ctx context.Context, id int64, suspended bool) (*model.Organization, error)
	Members(ctx context.Context, id int64) ([]model.Membership, error)
}

type organizationService struct {
	orgs        store.OrganizationStore
	users       store.UserStore
	memberships store.MembershipStore
	txRunner    TxRunner
}

func NewOrganizationService(orgs store.OrganizationStore, users store.UserStore, memberships store.MembershipStore, txRunner TxRunner) OrganizationService {
	return &organizationService{orgs: orgs, users: users, memberships: memberships, txRunner: txRunner}
}

func (s *organizationService) Create(ctx context.Context, input OrganizationInput) (*model.Organization, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, invalid("organization name is required")
	}

	var owner *model.User
	if input.OwnerEmail != nil && *input.OwnerEmail != "" {
		u, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(*input.OwnerEmail)))
		if err != nil {
			if isNotFound(err) {
				return nil, invalid("owner must sign in once before being assigned")
			}
			return nil, fmt.Errorf("loading owner: %w", err)
		}
		owner = u
	}

	plan := input.Plan
	if plan == "" {
		plan = defaultPlan
	}

	var org *model.Organization
	err := s.txRunner.WithTx(ctx, func(sp StoreProvider) error {
		slug, err := ensureSlug(ctx, sp.Organizations(), name, input.Slug)
		if err != nil {
			return err
		}

		org = &model.Organization{
			ID:   id.New(),
			Name: name,
			Slug: slug,
			Plan: plan,
		}
		if err := sp.Organizations().Create(ctx, org); err != nil {
			if errors.Is(err, store.ErrDuplicate) {
				return fmt.Errorf("slug %q is taken: %w", slug, ErrConflict)
			}
			return fmt.Errorf("creating organization: %w", err)
		}

		if owner == nil {
			return nil
		}
		return sp.Memberships().Create(ctx, &model.Membership{
			OrganizationID: org.ID,
			UserID:         owner.ID,
			Role:           model.RoleOwner,
		})
	})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "organization created", "organization_id", org.ID, "slug", org.Slug)
	return org, nil
}

func (s *organizationService) CreateForOwner(ctx context.Context, name string, ownerID int64) (*model.Organization, error) {
	var org *model.Organization
	err := s.txRunner.WithTx(ctx, func(sp StoreProvider) error {
		slug, err := ensureSlug(ctx, sp.Organizations(), name, nil)
		if err != nil {
			return err
		}
		org = &model.Organization{ID: id.New(), Name: name, Slug: slug, Plan: defaultPlan}
		if err := sp.Organizations().Create(ctx, org); err != nil {
			return fmt.Errorf("creating organization: %w", err)
		}
		return sp.Memberships().Create(ctx, &model.Membership{
			OrganizationID: org.ID,
			UserID:         ownerID,
			Role:           model.RoleOwner,
		})
	})
	if err != nil {
		return nil, err
	}
	return org, nil
}

func (s *organizationService) Get(ctx context.Context, id int64) (*model.Organization, error) {
	org, err := s.orgs.GetByID(ctx, id)
	if err != nil {
		return nil, lookupErr("organization", err)
	}
	return org, nil
}

func (s *organizationService) List(ctx context.Context, page PageRequest) ([]model.Organization, error) {
	orgs, err := s.orgs.List(ctx, page.toStore())
	if err != nil {
		return nil, fmt.Errorf("listing organizations: %w", err)
	}
	return orgs, nil
}

func (s *organizationService) Update(ctx context.Context, id int64, patch OrganizationPatch) (*model.Organization, error) {
	org, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.Name != nil {
		org.Name = strings.TrimSpace(*patch.Name)
		if org.Name == "" {
			return nil, invalid("organization name is required")
		}
	}
	if patch.Plan != nil && *patch.Plan != "" {
		org.Plan = *patch.Plan
	}
	if err := s.orgs.Update(ctx, org); err != nil {
		return nil, lookupErr("organization", err)
	}
	return org, nil
}

func (s *organizationService) SetSuspended(ctx context.Context, id int64, suspended bool) (*model.Organization, error) {
	status := model.OrganizationStatusActive
	if suspended {
		status = model.OrganizationStatusSuspended
	}
	org, err := s.orgs.SetStatus(ctx, id, status)
	if err != nil {
		return nil, lookupErr("organization", err)
	}
	slog.InfoContext(ctx, "organization status changed", "organization_id", id, "status", status)
	return org, nil
}

func (s *organizationService) Members(ctx context.Context, id int64) ([]model.Membership, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	members, err := s.memberships.ListByOrganization(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("listing members: %w", err)
	}
	return members, nil
}

func ensureSlug(ctx context.Context, orgs store.OrganizationStore, name string, slug *string) (string, error) {
	input := name
	if slug != nil && *slug != "" {
		input = *slug
	}

	base, err := common.Slugify(input, "org")
	if err != nil {
		return "", fmt.Errorf("generating slug: %w", err)
	}

	if _, err := orgs.GetBySlug(ctx, base); err != nil {
		if isNotFound(err) {
			return base, nil
		}
		return "", fmt.Errorf("checking slug availability: %w", err)
	}

	for i := 1; i <= 20; i++ {
		candidate := fmt.Sprintf("%s-%d", base, i)
		_, err := orgs.GetBySlug(ctx, candidate)
		if isNotFound(err) {
			return candidate, nil
		}
		if err != nil {
			return "", fmt.Errorf("checking slug availability: %w", err)
		}
	}

	return "", fmt.Errorf("no available slug for %q: %w", base, ErrConflict)
}
