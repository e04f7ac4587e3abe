package store

import (
	"context"

	"fieldpro.app/relay/core/db/sqlc"
	"fieldpro.app/relay/internal/model"
)

type userStore struct {
	queries *sqlc.Queries
}

func newUserStore(queries *sqlc.Queries) UserStore {
	return &userStore{queries: queries}
}

func (s *userStore) GetByID(ctx context.Context, id int64) (*model.User, error) {
	row, err := s.queries.GetUser(ctx, id)
	if err != nil {
		return nil, mapErr(err)
	}
	return toUserModel(row), nil
}

func (s *userStore) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	row, err := s.queries.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, mapErr(err)
	}
	return toUserModel(row), nil
}

// Upsert inserts the user or refreshes name, avatar and WorkOS id of the
// existing row with the same email. user.ID is only used on insert.
func (s *userStore) Upsert(ctx context.Context, user *model.User) error {
	row, err := s.queries.UpsertUserByEmail(ctx, sqlc.UpsertUserByEmailParams{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		AvatarUrl: user.AvatarURL,
		WorkosID:  user.WorkOSID,
	})
	if err != nil {
		return mapErr(err)
	}
	*user = *toUserModel(row)
	return nil
}

func toUserModel(row sqlc.User) *model.User {
	return &model.User{
		ID:        row.ID,
		Name:      row.Name,
		Email:     row.Email,
		AvatarURL: row.AvatarUrl,
		WorkOSID:  row.WorkosID,
		CreatedAt: row.CreatedAt.Time,
		UpdatedAt: row.UpdatedAt.Time,
	}
}

type membershipStore struct {
	queries *sqlc.Queries
}

func newMembershipStore(queries *sqlc.Queries) MembershipStore {
	return &membershipStore{queries: queries}
}

func (s *membershipStore) Get(ctx context.Context, orgID, userID int64) (*model.Membership, error) {
	row, err := s.queries.GetMembership(ctx, sqlc.GetMembershipParams{
		OrganizationID: orgID,
		UserID:         userID,
	})
	if err != nil {
		return nil, mapErr(err)
	}
	return toMembershipModel(row), nil
}

func (s *membershipStore) Create(ctx context.Context, m *model.Membership) error {
	row, err := s.queries.CreateMembership(ctx, sqlc.CreateMembershipParams{
		OrganizationID: m.OrganizationID,
		UserID:         m.UserID,
		Role:           string(m.Role),
	})
	if err != nil {
		return mapErr(err)
	}
	*m = *toMembershipModel(row)
	return nil
}

func (s *membershipStore) Delete(ctx context.Context, orgID, userID int64) error {
	return s.queries.DeleteMembership(ctx, sqlc.DeleteMembershipParams{
		OrganizationID: orgID,
		UserID:         userID,
	})
}

func (s *membershipStore) ListByOrganization(ctx context.Context, orgID int64) ([]model.Membership, error) {
	rows, err := s.queries.ListMembershipsByOrganization(ctx, orgID)
	if err != nil {
		return nil, err
	}
	result := make([]model.Membership, len(rows))
	for i, row := range rows {
		result[i] = *toMembershipModel(row)
	}
	return result, nil
}

func toMembershipModel(row sqlc.Membership) *model.Membership {
	return &model.Membership{
		OrganizationID: row.OrganizationID,
		UserID:         row.UserID,
		Role:           model.Role(row.Role),
		CreatedAt:      row.CreatedAt.Time,
	}
}
