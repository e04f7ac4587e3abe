package model

import "time"

type LeadStatus string

const (
	LeadStatusNew       LeadStatus = "new"
	LeadStatusContacted LeadStatus = "contacted"
	LeadStatusQualified LeadStatus = "qualified"
	LeadStatusWon       LeadStatus = "won"
	LeadStatusLost      LeadStatus = "lost"
)

func (s LeadStatus) Valid() bool {
	switch s {
	case LeadStatusNew, LeadStatusContacted, LeadStatusQualified, LeadStatusWon, LeadStatusLost:
		return true
	}
	return false
}

type Lead struct {
	ID                  int64      `json:"id,string"`
	OrganizationID      int64      `json:"organization_id,string"`
	ContactID           *int64     `json:"contact_id,string,omitempty"`
	Name                string     `json:"name"`
	Email               *string    `json:"email,omitempty"`
	Phone               *string    `json:"phone,omitempty"`
	Service             *string    `json:"service,omitempty"`
	Status              LeadStatus `json:"status"`
	EstimatedValueCents int64      `json:"estimated_value_cents"`
	Source              string     `json:"source"`
	Notes               *string    `json:"notes,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}
