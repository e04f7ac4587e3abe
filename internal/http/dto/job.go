package dto

import (
	"time"

	"fieldpro.app/relay/internal/model"
	"fieldpro.app/relay/internal/service"
)

type CreateJobRequest struct {
	ContactID      *int64          `json:"contact_id,string,omitempty"`
	Title          string          `json:"title" binding:"required,min=1,max=255"`
	Description    *string         `json:"description,omitempty"`
	Status         model.JobStatus `json:"status"`
	Address        *string         `json:"address,omitempty" binding:"omitempty,max=1000"`
	ScheduledStart *time.Time      `json:"scheduled_start,omitempty"`
	ScheduledEnd   *time.Time      `json:"scheduled_end,omitempty"`
	ValueCents     int64           `json:"value_cents" binding:"min=0"`
}

func (r CreateJobRequest) ToInput() service.JobInput {
	return service.JobInput{
		ContactID:      r.ContactID,
		Title:          r.Title,
		Description:    r.Description,
		Status:         r.Status,
		Address:        r.Address,
		ScheduledStart: r.ScheduledStart,
		ScheduledEnd:   r.ScheduledEnd,
		ValueCents:     r.ValueCents,
	}
}

type UpdateJobRequest struct {
	ContactID      *int64           `json:"contact_id,string,omitempty"`
	Title          *string          `json:"title,omitempty" binding:"omitempty,min=1,max=255"`
	Description    *string          `json:"description,omitempty"`
	Status         *model.JobStatus `json:"status,omitempty"`
	Address        *string          `json:"address,omitempty" binding:"omitempty,max=1000"`
	ScheduledStart *time.Time       `json:"scheduled_start,omitempty"`
	ScheduledEnd   *time.Time       `json:"scheduled_end,omitempty"`
	ValueCents     *int64           `json:"value_cents,omitempty" binding:"omitempty,min=0"`
}

func (r UpdateJobRequest) ToPatch() service.JobPatch {
	return service.JobPatch{
		ContactID:      r.ContactID,
		Title:          r.Title,
		Description:    r.Description,
		Status:         r.Status,
		Address:        r.Address,
		ScheduledStart: r.ScheduledStart,
		ScheduledEnd:   r.ScheduledEnd,
		ValueCents:     r.ValueCents,
	}
}
