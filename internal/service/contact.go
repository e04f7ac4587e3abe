package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"fieldpro.app/relay/common/id"
	"fieldpro.app/relay/internal/model"
	"fieldpro.app/relay/internal/store"
)

type ContactInput struct {
	FirstName string
	LastName  string
	Email     *string
	Phone     *string
	Company   *string
	Address   *string
	Notes     *string
	Source    string
}

// ContactPatch updates only the non-nil fields.
type ContactPatch struct {
	FirstName *string
	LastName  *string
	Email     *string
	Phone     *string
	Company   *string
	Address   *string
	Notes     *string
}

type ContactService interface {
	Create(ctx context.Context, orgID int64, input ContactInput) (*model.Contact, error)
	Get(ctx context.Context, orgID, id int64) (*model.Contact, error)
	Update(ctx context.Context, orgID, id int64, patch ContactPatch) (*model.Contact, error)
	Delete(ctx context.Context, orgID, id int64) error
	List(ctx context.Context, orgID int64, search string, page PageRequest) ([]model.Contact, error)
}

type contactService struct {
	contacts  store.ContactStore
	publisher Publisher
}

func NewContactService(contacts store.ContactStore, publisher Publisher) ContactService {
	return &contactService{contacts: contacts, publisher: publisher}
}

func (s *contactService) Create(ctx context.Context, orgID int64, input ContactInput) (*model.Contact, error) {
	contact := &model.Contact{
		ID:             id.New(),
		OrganizationID: orgID,
		FirstName:      strings.TrimSpace(input.FirstName),
		LastName:       strings.TrimSpace(input.LastName),
		Email:          normalizeEmail(input.Email),
		Phone:          trimmed(input.Phone),
		Company:        trimmed(input.Company),
		Address:        trimmed(input.Address),
		Notes:          input.Notes,
		Source:         input.Source,
	}
	if contact.Source == "" {
		contact.Source = "manual"
	}
	if err := validateContact(contact); err != nil {
		return nil, err
	}

	if err := s.contacts.Create(ctx, contact); err != nil {
		return nil, fmt.Errorf("creating contact: %w", err)
	}

	slog.InfoContext(ctx, "contact created", "contact_id", contact.ID, "source", contact.Source)
	s.publisher.Publish(ctx, orgID, model.EventContactCreated, contact)
	return contact, nil
}

func (s *contactService) Get(ctx context.Context, orgID, id int64) (*model.Contact, error) {
	contact, err := s.contacts.GetByID(ctx, orgID, id)
	if err != nil {
		return nil, lookupErr("contact", err)
	}
	return contact, nil
}

func (s *contactService) Update(ctx context.Context, orgID, id int64, patch ContactPatch) (*model.Contact, error) {
	contact, err := s.Get(ctx, orgID, id)
	if err != nil {
		return nil, err
	}

	if patch.FirstName != nil {
		contact.FirstName = strings.TrimSpace(*patch.FirstName)
	}
	if patch.LastName != nil {
		contact.LastName = strings.TrimSpace(*patch.LastName)
	}
	if patch.Email != nil {
		contact.Email = normalizeEmail(patch.Email)
	}
	if patch.Phone != nil {
		contact.Phone = trimmed(patch.Phone)
	}
	if patch.Company != nil {
		contact.Company = trimmed(patch.Company)
	}
	if patch.Address != nil {
		contact.Address = trimmed(patch.Address)
	}
	if patch.Notes != nil {
		contact.Notes = patch.Notes
	}
	if err := validateContact(contact); err != nil {
		return nil, err
	}

	if err := s.contacts.Update(ctx, contact); err != nil {
		return nil, lookupErr("contact", err)
	}

	s.publisher.Publish(ctx, orgID, model.EventContactUpdated, contact)
	return contact, nil
}

func (s *contactService) Delete(ctx context.Context, orgID, id int64) error {
	if err := s.contacts.Delete(ctx, orgID, id); err != nil {
		return lookupErr("contact", err)
	}
	s.publisher.Publish(ctx, orgID, model.EventContactDeleted, deletedRef(id))
	return nil
}

func (s *contactService) List(ctx context.Context, orgID int64, search string, page PageRequest) ([]model.Contact, error) {
	contacts, err := s.contacts.List(ctx, orgID, strings.TrimSpace(search), page.toStore())
	if err != nil {
		return nil, fmt.Errorf("listing contacts: %w", err)
	}
	return contacts, nil
}

func validateContact(c *model.Contact) error {
	if c.FirstName == "" && c.LastName == "" && c.Email == nil {
		return invalid("contact needs a name or an email")
	}
	return nil
}

// trimmed returns nil for nil or blank input.
func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func normalizeEmail(s *string) *string {
	v := trimmed(s)
	if v == nil {
		return nil
	}
	lower := strings.ToLower(*v)
	return &lower
}
