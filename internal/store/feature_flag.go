package store

import (
	"context"

	"fieldpro.app/relay/core/db/sqlc"
	"fieldpro.app/relay/internal/model"
)

type featureFlagStore struct {
	queries *sqlc.Queries
}

func newFeatureFlagStore(queries *sqlc.Queries) FeatureFlagStore {
	return &featureFlagStore{queries: queries}
}

func (s *featureFlagStore) Get(ctx context.Context, orgID int64, key string) (*model.FeatureFlag, error) {
	row, err := s.queries.GetFeatureFlag(ctx, sqlc.GetFeatureFlagParams{OrganizationID: orgID, Key: key})
	if err != nil {
		return nil, mapErr(err)
	}
	return toFeatureFlagModel(row), nil
}

func (s *featureFlagStore) Set(ctx context.Context, orgID int64, key string, enabled bool) (*model.FeatureFlag, error) {
	row, err := s.queries.SetFeatureFlag(ctx, sqlc.SetFeatureFlagParams{
		OrganizationID: orgID,
		Key:            key,
		Enabled:        enabled,
	})
	if err != nil {
		return nil, mapErr(err)
	}
	return toFeatureFlagModel(row), nil
}

func (s *featureFlagStore) Delete(ctx context.Context, orgID int64, key string) error {
	return rowsAffected(s.queries.DeleteFeatureFlag(ctx, sqlc.DeleteFeatureFlagParams{OrganizationID: orgID, Key: key}))
}

func (s *featureFlagStore) ListByOrganization(ctx context.Context, orgID int64) ([]model.FeatureFlag, error) {
	rows, err := s.queries.ListFeatureFlags(ctx, orgID)
	if err != nil {
		return nil, err
	}
	result := make([]model.FeatureFlag, len(rows))
	for i, row := range rows {
		result[i] = *toFeatureFlagModel(row)
	}
	return result, nil
}

func toFeatureFlagModel(row sqlc.FeatureFlag) *model.FeatureFlag {
	return &model.FeatureFlag{
		OrganizationID: row.OrganizationID,
		Key:            row.Key,
		Enabled:        row.Enabled,
		UpdatedAt:      row.UpdatedAt.Time,
	}
}
