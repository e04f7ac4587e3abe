package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"fieldpro.app/relay/common/id"
	"fieldpro.app/relay/internal/model"
	"fieldpro.app/relay/internal/store"
)

type LeadInput struct {
	Name                string
	Email               *string
	Phone               *string
	Service             *string
	Status              model.LeadStatus
	EstimatedValueCents int64
	Source              string
	Notes               *string
}

type LeadPatch struct {
	Name                *string
	Email               *string
	Phone               *string
	Service             *string
	Status              *model.LeadStatus
	EstimatedValueCents *int64
	Notes               *string
}

type LeadService interface {
	Create(ctx context.Context, orgID int64, input LeadInput) (*model.Lead, error)
	Get(ctx context.Context, orgID, id int64) (*model.Lead, error)
	Update(ctx context.Context, orgID, id int64, patch LeadPatch) (*model.Lead, error)
	Delete(ctx context.Context, orgID, id int64) error
	List(ctx context.Context, orgID int64, status string, page PageRequest) ([]model.Lead, error)
	// Convert links the lead to a contact, reusing one with the same email,
	// and marks it won.
	Convert(ctx context.Context, orgID, id int64) (*model.Lead, *model.Contact, error)
}

type leadService struct {
	leads     store.LeadStore
	txRunner  TxRunner
	publisher Publisher
}

func NewLeadService(leads store.LeadStore, txRunner TxRunner, publisher Publisher) LeadService {
	return &leadService{leads: leads, txRunner: txRunner, publisher: publisher}
}

func (s *leadService) Create(ctx context.Context, orgID int64, input LeadInput) (*model.Lead, error) {
	lead := &model.Lead{
		ID:                  id.New(),
		OrganizationID:      orgID,
		Name:                strings.TrimSpace(input.Name),
		Email:               normalizeEmail(input.Email),
		Phone:               trimmed(input.Phone),
		Service:             trimmed(input.Service),
		Status:              input.Status,
		EstimatedValueCents: input.EstimatedValueCents,
		Source:              input.Source,
		Notes:               input.Notes,
	}
	if lead.Status == "" {
		lead.Status = model.LeadStatusNew
	}
	if lead.Source == "" {
		lead.Source = "manual"
	}
	if err := validateLead(lead); err != nil {
		return nil, err
	}

	if err := s.leads.Create(ctx, lead); err != nil {
		return nil, fmt.Errorf("creating lead: %w", err)
	}

	s.publisher.Publish(ctx, orgID, model.EventLeadCreated, lead)
	return lead, nil
}

func (s *leadService) Get(ctx context.Context, orgID, id int64) (*model.Lead, error) {
	lead, err := s.leads.GetByID(ctx, orgID, id)
	if err != nil {
		return nil, lookupErr("lead", err)
	}
	return lead, nil
}

func (s *leadService) Update(ctx context.Context, orgID, id int64, patch LeadPatch) (*model.Lead, error) {
	lead, err := s.Get(ctx, orgID, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		lead.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Email != nil {
		lead.Email = normalizeEmail(patch.Email)
	}
	if patch.Phone != nil {
		lead.Phone = trimmed(patch.Phone)
	}
	if patch.Service != nil {
		lead.Service = trimmed(patch.Service)
	}
	if patch.Status != nil {
		lead.Status = *patch.Status
	}
	if patch.EstimatedValueCents != nil {
		lead.EstimatedValueCents = *patch.EstimatedValueCents
	}
	if patch.Notes != nil {
		lead.Notes = patch.Notes
	}
	if err := validateLead(lead); err != nil {
		return nil, err
	}

	if err := s.leads.Update(ctx, lead); err != nil {
		return nil, lookupErr("lead", err)
	}
	return lead, nil
}

func (s *leadService) Delete(ctx context.Context, orgID, id int64) error {
	if err := s.leads.Delete(ctx, orgID, id); err != nil {
		return lookupErr("lead", err)
	}
	return nil
}

func (s *leadService) List(ctx context.Context, orgID int64, status string, page PageRequest) ([]model.Lead, error) {
	if status != "" && !model.LeadStatus(status).Valid() {
		return nil, invalid(fmt.Sprintf("unknown lead status %q", status))
	}
	leads, err := s.leads.List(ctx, orgID, status, page.toStore())
	if err != nil {
		return nil, fmt.Errorf("listing leads: %w", err)
	}
	return leads, nil
}

func (s *leadService) Convert(ctx context.Context, orgID, leadID int64) (*model.Lead, *model.Contact, error) {
	var (
		lead    *model.Lead
		contact *model.Contact
	)

	err := s.txRunner.WithTx(ctx, func(sp StoreProvider) error {
		current, err := sp.Leads().GetByID(ctx, orgID, leadID)
		if err != nil {
			return lookupErr("lead", err)
		}
		if current.ContactID != nil {
			return fmt.Errorf("lead already converted: %w", ErrConflict)
		}

		if current.Email != nil {
			existing, err := sp.Contacts().FindByEmail(ctx, orgID, *current.Email)
			switch {
			case err == nil:
				contact = existing
			case !errors.Is(err, store.ErrNotFound):
				return fmt.Errorf("finding contact by email: %w", err)
			}
		}

		if contact == nil {
			first, last := splitName(current.Name)
			contact = &model.Contact{
				ID:             id.New(),
				OrganizationID: orgID,
				FirstName:      first,
				LastName:       last,
				Email:          current.Email,
				Phone:          current.Phone,
				Notes:          current.Notes,
				Source:         "lead",
			}
			if err := sp.Contacts().Create(ctx, contact); err != nil {
				return fmt.Errorf("creating contact: %w", err)
			}
		}

		lead, err = sp.Leads().MarkConverted(ctx, orgID, leadID, contact.ID)
		if err != nil {
			return fmt.Errorf("marking lead converted: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	slog.InfoContext(ctx, "lead converted", "lead_id", lead.ID, "contact_id", contact.ID)
	s.publisher.Publish(ctx, orgID, model.EventLeadConverted, map[string]any{
		"lead":    lead,
		"contact": contact,
	})
	return lead, contact, nil
}

func validateLead(l *model.Lead) error {
	if l.Name == "" {
		return invalid("lead name is required")
	}
	if !l.Status.Valid() {
		return invalid(fmt.Sprintf("unknown lead status %q", l.Status))
	}
	if l.EstimatedValueCents < 0 {
		return invalid("estimated value cannot be negative")
	}
	return nil
}

func splitName(name string) (string, string) {
	first, last, _ := strings.Cut(strings.TrimSpace(name), " ")
	return first, strings.TrimSpace(last)
}
