package dto

import (
	"time"

	"fieldpro.app/relay/internal/service"
)

type CreateEventRequest struct {
	ContactID    *int64    `json:"contact_id,string,omitempty"`
	JobID        *int64    `json:"job_id,string,omitempty"`
	Title        string    `json:"title" binding:"required,min=1,max=255"`
	Description  *string   `json:"description,omitempty"`
	Location     *string   `json:"location,omitempty" binding:"omitempty,max=1000"`
	StartsAt     time.Time `json:"starts_at" binding:"required"`
	EndsAt       time.Time `json:"ends_at" binding:"required"`
	AllowOverlap bool      `json:"allow_overlap"`
}

func (r CreateEventRequest) ToInput() service.EventInput {
	return service.EventInput{
		ContactID:    r.ContactID,
		JobID:        r.JobID,
		Title:        r.Title,
		Description:  r.Description,
		Location:     r.Location,
		StartsAt:     r.StartsAt,
		EndsAt:       r.EndsAt,
		Source:       "manual",
		AllowOverlap: r.AllowOverlap,
	}
}

type UpdateEventRequest struct {
	ContactID     *int64     `json:"contact_id,string,omitempty"`
	JobID         *int64     `json:"job_id,string,omitempty"`
	UnlinkContact bool       `json:"unlink_contact"`
	UnlinkJob     bool       `json:"unlink_job"`
	Title         *string    `json:"title,omitempty" binding:"omitempty,min=1,max=255"`
	Description   *string    `json:"description,omitempty"`
	Location      *string    `json:"location,omitempty" binding:"omitempty,max=1000"`
	StartsAt      *time.Time `json:"starts_at,omitempty"`
	EndsAt        *time.Time `json:"ends_at,omitempty"`
	AllowOverlap  bool       `json:"allow_overlap"`
}

func (r UpdateEventRequest) ToPatch() service.EventPatch {
	return service.EventPatch{
		ContactID:     r.ContactID,
		JobID:         r.JobID,
		UnlinkContact: r.UnlinkContact,
		UnlinkJob:     r.UnlinkJob,
		Title:         r.Title,
		Description:   r.Description,
		Location:      r.Location,
		StartsAt:      r.StartsAt,
		EndsAt:        r.EndsAt,
		AllowOverlap:  r.AllowOverlap,
	}
}

type EventRangeQuery struct {
	Start time.Time `form:"start" time_format:"2006-01-02T15:04:05Z07:00" binding:"required"`
	End   time.Time `form:"end" time_format:"2006-01-02T15:04:05Z07:00" binding:"required"`
}

type AvailabilityQuery struct {
	EventRangeQuery
	SlotMinutes int `form:"slot_minutes" binding:"omitempty,min=5,max=1440"`
}
