package store

import (
	"context"

	"fieldpro.app/relay/core/db/sqlc"
	"fieldpro.app/relay/internal/model"
)

type organizationStore struct {
	queries *sqlc.Queries
}

func newOrganizationStore(queries *sqlc.Queries) OrganizationStore {
	return &organizationStore{queries: queries}
}

func (s *organizationStore) GetByID(ctx context.Context, id int64) (*model.Organization, error) {
	row, err := s.queries.GetOrganization(ctx, id)
	if err != nil {
		return nil, mapErr(err)
	}
	return toOrganizationModel(row), nil
}

func (s *organizationStore) GetBySlug(ctx context.Context, slug string) (*model.Organization, error) {
	row, err := s.queries.GetOrganizationBySlug(ctx, slug)
	if err != nil {
		return nil, mapErr(err)
	}
	return toOrganizationModel(row), nil
}

func (s *organizationStore) Create(ctx context.Context, org *model.Organization) error {
	row, err := s.queries.CreateOrganization(ctx, sqlc.CreateOrganizationParams{
		ID:   org.ID,
		Name: org.Name,
		Slug: org.Slug,
		Plan: org.Plan,
	})
	if err != nil {
		return mapErr(err)
	}
	*org = *toOrganizationModel(row)
	return nil
}

func (s *organizationStore) Update(ctx context.Context, org *model.Organization) error {
	row, err := s.queries.UpdateOrganization(ctx, sqlc.UpdateOrganizationParams{
		ID:   org.ID,
		Name: org.Name,
		Plan: org.Plan,
	})
	if err != nil {
		return mapErr(err)
	}
	*org = *toOrganizationModel(row)
	return nil
}

func (s *organizationStore) SetStatus(ctx context.Context, id int64, status model.OrganizationStatus) (*model.Organization, error) {
	row, err := s.queries.SetOrganizationStatus(ctx, sqlc.SetOrganizationStatusParams{
		ID:     id,
		Status: string(status),
	})
	if err != nil {
		return nil, mapErr(err)
	}
	return toOrganizationModel(row), nil
}

func (s *organizationStore) List(ctx context.Context, page Page) ([]model.Organization, error) {
	rows, err := s.queries.ListOrganizations(ctx, sqlc.ListOrganizationsParams{
		Limit:  page.Limit,
		Offset: page.Offset,
	})
	if err != nil {
		return nil, err
	}
	return toOrganizationModels(rows), nil
}

func (s *organizationStore) ListByUser(ctx context.Context, userID int64) ([]model.Organization, error) {
	rows, err := s.queries.ListOrganizationsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toOrganizationModels(rows), nil
}

func toOrganizationModels(rows []sqlc.Organization) []model.Organization {
	result := make([]model.Organization, len(rows))
	for i, row := range rows {
		result[i] = *toOrganizationModel(row)
	}
	return result
}

func toOrganizationModel(row sqlc.Organization) *model.Organization {
	return &model.Organization{
		ID:        row.ID,
		Name:      row.Name,
		Slug:      row.Slug,
		Status:    model.OrganizationStatus(row.Status),
		Plan:      row.Plan,
		CreatedAt: row.CreatedAt.Time,
		UpdatedAt: row.UpdatedAt.Time,
	}
}
