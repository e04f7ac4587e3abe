package model

import "time"

type Contact struct {
	ID             int64     `json:"id,string"`
	OrganizationID int64     `json:"organization_id,string"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	Email          *string   `json:"email,omitempty"`
	Phone          *string   `json:"phone,omitempty"`
	Company        *string   `json:"company,omitempty"`
	Address        *string   `json:"address,omitempty"`
	Notes          *string   `json:"notes,omitempty"`
	Source         string    `json:"source"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
