package dto

import (
	"fieldpro.app/relay/internal/model"
	"fieldpro.app/relay/internal/service"
)

type CreateOrganizationRequest struct {
	Name       string  `json:"name" binding:"required,min=1,max=255"`
	Slug       *string `json:"slug,omitempty" binding:"omitempty,min=1,max=255"`
	Plan       string  `json:"plan" binding:"omitempty,max=64"`
	OwnerEmail *string `json:"owner_email,omitempty" binding:"omitempty,email"`
}

func (r CreateOrganizationRequest) ToInput() service.OrganizationInput {
	return service.OrganizationInput{
		Name:       r.Name,
		Slug:       r.Slug,
		Plan:       r.Plan,
		OwnerEmail: r.OwnerEmail,
	}
}

type UpdateOrganizationRequest struct {
	Name *string `json:"name,omitempty" binding:"omitempty,min=1,max=255"`
	Plan *string `json:"plan,omitempty" binding:"omitempty,min=1,max=64"`
}

func (r UpdateOrganizationRequest) ToPatch() service.OrganizationPatch {
	return service.OrganizationPatch{Name: r.Name, Plan: r.Plan}
}

type SuspendOrganizationRequest struct {
	Suspended *bool `json:"suspended" binding:"required"`
}

type OrganizationDetailResponse struct {
	*model.Organization
	Members  []model.Membership `json:"members"`
	Features []service.Feature  `json:"features"`
}

type SetFeatureRequest struct {
	Enabled *bool `json:"enabled" binding:"required"`
}
