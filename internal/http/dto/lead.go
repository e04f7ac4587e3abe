package dto

import (
	"fieldpro.app/relay/internal/model"
	"fieldpro.app/relay/internal/service"
)

type CreateLeadRequest struct {
	Name                string           `json:"name" binding:"required,min=1,max=255"`
	Email               *string          `json:"email,omitempty" binding:"omitempty,email,max=320"`
	Phone               *string          `json:"phone,omitempty" binding:"omitempty,max=64"`
	Service             *string          `json:"service,omitempty" binding:"omitempty,max=255"`
	Status              model.LeadStatus `json:"status"`
	EstimatedValueCents int64            `json:"estimated_value_cents" binding:"min=0"`
	Source              string           `json:"source" binding:"omitempty,max=64"`
	Notes               *string          `json:"notes,omitempty"`
}

func (r CreateLeadRequest) ToInput() service.LeadInput {
	return service.LeadInput{
		Name:                r.Name,
		Email:               r.Email,
		Phone:               r.Phone,
		Service:             r.Service,
		Status:              r.Status,
		EstimatedValueCents: r.EstimatedValueCents,
		Source:              r.Source,
		Notes:               r.Notes,
	}
}

type UpdateLeadRequest struct {
	Name                *string           `json:"name,omitempty" binding:"omitempty,min=1,max=255"`
	Email               *string           `json:"email,omitempty" binding:"omitempty,email,max=320"`
	Phone               *string           `json:"phone,omitempty" binding:"omitempty,max=64"`
	Service             *string           `json:"service,omitempty" binding:"omitempty,max=255"`
	Status              *model.LeadStatus `json:"status,omitempty"`
	EstimatedValueCents *int64            `json:"estimated_value_cents,omitempty" binding:"omitempty,min=0"`
	Notes               *string           `json:"notes,omitempty"`
}

func (r UpdateLeadRequest) ToPatch() service.LeadPatch {
	return service.LeadPatch{
		Name:                r.Name,
		Email:               r.Email,
		Phone:               r.Phone,
		Service:             r.Service,
		Status:              r.Status,
		EstimatedValueCents: r.EstimatedValueCents,
		Notes:               r.Notes,
	}
}

type ConvertLeadResponse struct {
	Lead    *model.Lead    `json:"lead"`
	Contact *model.Contact `json:"contact"`
}
