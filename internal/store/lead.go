package store

import (
	"context"

	"fieldpro.app/relay/core/db/sqlc"
	"fieldpro.app/relay/internal/model"
)

type leadStore struct {
	queries *sqlc.Queries
}

func newLeadStore(queries *sqlc.Queries) LeadStore {
	return &leadStore{queries: queries}
}

func (s *leadStore) GetByID(ctx context.Context, orgID, id int64) (*model.Lead, error) {
	row, err := s.queries.GetLead(ctx, sqlc.GetLeadParams{ID: id, OrganizationID: orgID})
	if err != nil {
		return nil, mapErr(err)
	}
	return toLeadModel(row), nil
}

func (s *leadStore) Create(ctx context.Context, lead *model.Lead) error {
	row, err := s.queries.CreateLead(ctx, sqlc.CreateLeadParams{
		ID:                  lead.ID,
		OrganizationID:      lead.OrganizationID,
		ContactID:           lead.ContactID,
		Name:                lead.Name,
		Email:               lead.Email,
		Phone:               lead.Phone,
		Service:             lead.Service,
		Status:              string(lead.Status),
		EstimatedValueCents: lead.EstimatedValueCents,
		Source:              lead.Source,
		Notes:               lead.Notes,
	})
	if err != nil {
		return mapErr(err)
	}
	*lead = *toLeadModel(row)
	return nil
}

func (s *leadStore) Update(ctx context.Context, lead *model.Lead) error {
	row, err := s.queries.UpdateLead(ctx, sqlc.UpdateLeadParams{
		ID:                  lead.ID,
		OrganizationID:      lead.OrganizationID,
		Name:                lead.Name,
		Email:               lead.Email,
		Phone:               lead.Phone,
		Service:             lead.Service,
		Status:              string(lead.Status),
		EstimatedValueCents: lead.EstimatedValueCents,
		Notes:               lead.Notes,
	})
	if err != nil {
		return mapErr(err)
	}
	*lead = *toLeadModel(row)
	return nil
}

func (s *leadStore) MarkConverted(ctx context.Context, orgID, id, contactID int64) (*model.Lead, error) {
	row, err := s.queries.SetLeadContact(ctx, sqlc.SetLeadContactParams{
		ID:             id,
		OrganizationID: orgID,
		ContactID:      &contactID,
	})
	if err != nil {
		return nil, mapErr(err)
	}
	return toLeadModel(row), nil
}

func (s *leadStore) Delete(ctx context.Context, orgID, id int64) error {
	return rowsAffected(s.queries.DeleteLead(ctx, sqlc.DeleteLeadParams{ID: id, OrganizationID: orgID}))
}

func (s *leadStore) List(ctx context.Context, orgID int64, status string, page Page) ([]model.Lead, error) {
	rows, err := s.queries.ListLeads(ctx, sqlc.ListLeadsParams{
		OrganizationID: orgID,
		Status:         status,
		Limit:          page.Limit,
		Offset:         page.Offset,
	})
	if err != nil {
		return nil, err
	}
	result := make([]model.Lead, len(rows))
	for i, row := range rows {
		result[i] = *toLeadModel(row)
	}
	return result, nil
}

func toLeadModel(row sqlc.Lead) *model.Lead {
	return &model.Lead{
		ID:                  row.ID,
		OrganizationID:      row.OrganizationID,
		ContactID:           row.ContactID,
		Name:                row.Name,
		Email:               row.Email,
		Phone:               row.Phone,
		Service:             row.Service,
		Status:              model.LeadStatus(row.Status),
		EstimatedValueCents: row.EstimatedValueCents,
		Source:              row.Source,
		Notes:               row.Notes,
		CreatedAt:           row.CreatedAt.Time,
		UpdatedAt:           row.UpdatedAt.Time,
	}
}
