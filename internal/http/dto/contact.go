package dto

import "fieldpro.app/relay/internal/service"

type CreateContactRequest struct {
	FirstName string  `json:"first_name" binding:"required,min=1,max=255"`
	LastName  string  `json:"last_name" binding:"max=255"`
	Email     *string `json:"email,omitempty" binding:"omitempty,email,max=320"`
	Phone     *string `json:"phone,omitempty" binding:"omitempty,max=64"`
	Company   *string `json:"company,omitempty" binding:"omitempty,max=255"`
	Address   *string `json:"address,omitempty" binding:"omitempty,max=1000"`
	Notes     *string `json:"notes,omitempty"`
	Source    string  `json:"source" binding:"omitempty,max=64"`
}

func (r CreateContactRequest) ToInput() service.ContactInput {
	return service.ContactInput{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
		Phone:     r.Phone,
		Company:   r.Company,
		Address:   r.Address,
		Notes:     r.Notes,
		Source:    r.Source,
	}
}

type UpdateContactRequest struct {
	FirstName *string `json:"first_name,omitempty" binding:"omitempty,min=1,max=255"`
	LastName  *string `json:"last_name,omitempty" binding:"omitempty,max=255"`
	Email     *string `json:"email,omitempty" binding:"omitempty,email,max=320"`
	Phone     *string `json:"phone,omitempty" binding:"omitempty,max=64"`
	Company   *string `json:"company,omitempty" binding:"omitempty,max=255"`
	Address   *string `json:"address,omitempty" binding:"omitempty,max=1000"`
	Notes     *string `json:"notes,omitempty"`
}

func (r UpdateContactRequest) ToPatch() service.ContactPatch {
	return service.ContactPatch{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
		Phone:     r.Phone,
		Company:   r.Company,
		Address:   r.Address,
		Notes:     r.Notes,
	}
}

type ListQuery struct {
	Limit  int    `form:"limit" binding:"omitempty,min=1,max=200"`
	Offset int    `form:"offset" binding:"omitempty,min=0"`
	Search string `form:"q" binding:"omitempty,max=255"`
	Status string `form:"status" binding:"omitempty,max=32"`
}

func (q ListQuery) Page() service.PageRequest {
	return service.PageRequest{Limit: q.Limit, Offset: q.Offset}
}
