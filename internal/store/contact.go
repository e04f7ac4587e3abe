package store

import (
	"context"

	"fieldpro.app/relay/core/db/sqlc"
	"fieldpro.app/relay/internal/model"
)

type contactStore struct {
	queries *sqlc.Queries
}

func newContactStore(queries *sqlc.Queries) ContactStore {
	return &contactStore{queries: queries}
}

func (s *contactStore) GetByID(ctx context.Context, orgID, id int64) (*model.Contact, error) {
	row, err := s.queries.GetContact(ctx, sqlc.GetContactParams{ID: id, OrganizationID: orgID})
	if err != nil {
		return nil, mapErr(err)
	}
	return toContactModel(row), nil
}

func (s *contactStore) FindByEmail(ctx context.Context, orgID int64, email string) (*model.Contact, error) {
	row, err := s.queries.FindContactByEmail(ctx, sqlc.FindContactByEmailParams{
		OrganizationID: orgID,
		Email:          email,
	})
	if err != nil {
		return nil, mapErr(err)
	}
	return toContactModel(row), nil
}

func (s *contactStore) Create(ctx context.Context, contact *model.Contact) error {
	row, err := s.queries.CreateContact(ctx, sqlc.CreateContactParams{
		ID:             contact.ID,
		OrganizationID: contact.OrganizationID,
		FirstName:      contact.FirstName,
		LastName:       contact.LastName,
		Email:          contact.Email,
		Phone:          contact.Phone,
		Company:        contact.Company,
		Address:        contact.Address,
		Notes:          contact.Notes,
		Source:         contact.Source,
	})
	if err != nil {
		return mapErr(err)
	}
	*contact = *toContactModel(row)
	return nil
}

func (s *contactStore) Update(ctx context.Context, contact *model.Contact) error {
	row, err := s.queries.UpdateContact(ctx, sqlc.UpdateContactParams{
		ID:             contact.ID,
		OrganizationID: contact.OrganizationID,
		FirstName:      contact.FirstName,
		LastName:       contact.LastName,
		Email:          contact.Email,
		Phone:          contact.Phone,
		Company:        contact.Company,
		Address:        contact.Address,
		Notes:          contact.Notes,
	})
	if err != nil {
		return mapErr(err)
	}
	*contact = *toContactModel(row)
	return nil
}

func (s *contactStore) Delete(ctx context.Context, orgID, id int64) error {
	return rowsAffected(s.queries.DeleteContact(ctx, sqlc.DeleteContactParams{ID: id, OrganizationID: orgID}))
}

func (s *contactStore) List(ctx context.Context, orgID int64, search string, page Page) ([]model.Contact, error) {
	rows, err := s.queries.ListContacts(ctx, sqlc.ListContactsParams{
		OrganizationID: orgID,
		Search:         search,
		Limit:          page.Limit,
		Offset:         page.Offset,
	})
	if err != nil {
		return nil, err
	}
	result := make([]model.Contact, len(rows))
	for i, row := range rows {
		result[i] = *toContactModel(row)
	}
	return result, nil
}

func toContactModel(row sqlc.Contact) *model.Contact {
	return &model.Contact{
		ID:             row.ID,
		OrganizationID: row.OrganizationID,
		FirstName:      row.FirstName,
		LastName:       row.LastName,
		Email:          row.Email,
		Phone:          row.Phone,
		Company:        row.Company,
		Address:        row.Address,
		Notes:          row.Notes,
		Source:         row.Source,
		CreatedAt:      row.CreatedAt.Time,
		UpdatedAt:      row.UpdatedAt.Time,
	}
}
