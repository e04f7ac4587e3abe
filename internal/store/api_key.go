package store

import (
	"context"

	"fieldpro.app/relay/core/db/sqlc"
	"fieldpro.app/relay/internal/model"
)

type apiKeyStore struct {
	queries *sqlc.Queries
}

func newAPIKeyStore(queries *sqlc.Queries) APIKeyStore {
	return &apiKeyStore{queries: queries}
}

func (s *apiKeyStore) GetByID(ctx context.Context, orgID, id int64) (*model.APIKey, error) {
	row, err := s.queries.GetAPIKey(ctx, sqlc.GetAPIKeyParams{ID: id, OrganizationID: orgID})
	if err != nil {
		return nil, mapErr(err)
	}
	return toAPIKeyModel(row), nil
}

func (s *apiKeyStore) GetByPrefix(ctx context.Context, prefix string) (*model.APIKey, error) {
	row, err := s.queries.GetAPIKeyByPrefix(ctx, prefix)
	if err != nil {
		return nil, mapErr(err)
	}
	return toAPIKeyModel(row), nil
}

func (s *apiKeyStore) Create(ctx context.Context, key *model.APIKey) error {
	row, err := s.queries.CreateAPIKey(ctx, sqlc.CreateAPIKeyParams{
		ID:             key.ID,
		OrganizationID: key.OrganizationID,
		UserID:         key.UserID,
		Name:           key.Name,
		Prefix:         key.Prefix,
		Salt:           key.Salt,
		SecretHash:     key.SecretHash,
		Scopes:         key.Scopes,
		ExpiresAt:      timeToPgTimestamptz(key.ExpiresAt),
	})
	if err != nil {
		return mapErr(err)
	}
	*key = *toAPIKeyModel(row)
	return nil
}

// Revoke returns ErrNotFound when the key does not exist or is already revoked.
func (s *apiKeyStore) Revoke(ctx context.Context, orgID, id int64) (*model.APIKey, error) {
	row, err := s.queries.RevokeAPIKey(ctx, sqlc.RevokeAPIKeyParams{ID: id, OrganizationID: orgID})
	if err != nil {
		return nil, mapErr(err)
	}
	return toAPIKeyModel(row), nil
}

func (s *apiKeyStore) Touch(ctx context.Context, id int64) error {
	return s.queries.TouchAPIKey(ctx, id)
}

func (s *apiKeyStore) ListByOrganization(ctx context.Context, orgID int64) ([]model.APIKey, error) {
	rows, err := s.queries.ListAPIKeys(ctx, orgID)
	if err != nil {
		return nil, err
	}
	result := make([]model.APIKey, len(rows))
	for i, row := range rows {
		result[i] = *toAPIKeyModel(row)
	}
	return result, nil
}

func toAPIKeyModel(row sqlc.ApiKey) *model.APIKey {
	scopes := row.Scopes
	if scopes == nil {
		scopes = []string{}
	}
	return &model.APIKey{
		ID:             row.ID,
		OrganizationID: row.OrganizationID,
		UserID:         row.UserID,
		Name:           row.Name,
		Prefix:         row.Prefix,
		Salt:           row.Salt,
		SecretHash:     row.SecretHash,
		Scopes:         scopes,
		ExpiresAt:      pgTimestamptzToTime(row.ExpiresAt),
		LastUsedAt:     pgTimestamptzToTime(row.LastUsedAt),
		RevokedAt:      pgTimestamptzToTime(row.RevokedAt),
		CreatedAt:      row.CreatedAt.Time,
	}
}
