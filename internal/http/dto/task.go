package dto

import (
	"time"

	"fieldpro.app/relay/internal/service"
)

type CreateTaskRequest struct {
	AssigneeID  *int64     `json:"assignee_id,string,omitempty"`
	ContactID   *int64     `json:"contact_id,string,omitempty"`
	JobID       *int64     `json:"job_id,string,omitempty"`
	Title       string     `json:"title" binding:"required,min=1,max=255"`
	Description *string    `json:"description,omitempty"`
	DueAt       *time.Time `json:"due_at,omitempty"`
}

func (r CreateTaskRequest) ToInput() service.TaskInput {
	return service.TaskInput{
		AssigneeID:  r.AssigneeID,
		ContactID:   r.ContactID,
		JobID:       r.JobID,
		Title:       r.Title,
		Description: r.Description,
		DueAt:       r.DueAt,
	}
}

type UpdateTaskRequest struct {
	AssigneeID  *int64     `json:"assignee_id,string,omitempty"`
	ContactID   *int64     `json:"contact_id,string,omitempty"`
	JobID       *int64     `json:"job_id,string,omitempty"`
	Title       *string    `json:"title,omitempty" binding:"omitempty,min=1,max=255"`
	Description *string    `json:"description,omitempty"`
	DueAt       *time.Time `json:"due_at,omitempty"`
}

func (r UpdateTaskRequest) ToPatch() service.TaskPatch {
	return service.TaskPatch{
		AssigneeID:  r.AssigneeID,
		ContactID:   r.ContactID,
		JobID:       r.JobID,
		Title:       r.Title,
		Description: r.Description,
		DueAt:       r.DueAt,
	}
}

// CompleteTaskRequest reopens the task when completed is false.
type CompleteTaskRequest struct {
	Completed *bool `json:"completed,omitempty"`
}

type ListTasksQuery struct {
	ListQuery
	IncludeCompleted bool `form:"include_completed"`
}
