package model

import "time"

type Event struct {
	ID             int64     `json:"id,string"`
	OrganizationID int64     `json:"organization_id,string"`
	ContactID      *int64    `json:"contact_id,string,omitempty"`
	JobID          *int64    `json:"job_id,string,omitempty"`
	Title          string    `json:"title"`
	Description    *string   `json:"description,omitempty"`
	Location       *string   `json:"location,omitempty"`
	StartsAt       time.Time `json:"starts_at"`
	EndsAt         time.Time `json:"ends_at"`
	Source         string    `json:"source"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Overlaps reports whether the half-open ranges [StartsAt, EndsAt) and
// [start, end) intersect.
func (e Event) Overlaps(start, end time.Time) bool {
	return e.StartsAt.Before(end) && e.EndsAt.After(start)
}

// Slot is a half-open free interval on the calendar.
type Slot struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}
