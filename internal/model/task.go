package model

import "time"

type Task struct {
	ID             int64      `json:"id,string"`
	OrganizationID int64      `json:"organization_id,string"`
	AssigneeID     *int64     `json:"assignee_id,string,omitempty"`
	ContactID      *int64     `json:"contact_id,string,omitempty"`
	JobID          *int64     `json:"job_id,string,omitempty"`
	Title          string     `json:"title"`
	Description    *string    `json:"description,omitempty"`
	DueAt          *time.Time `json:"due_at,omitempty"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func (t Task) Completed() bool {
	return t.CompletedAt != nil
}
