package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"fieldpro.app/relay/common/id"
	"fieldpro.app/relay/internal/model"
	"fieldpro.app/relay/internal/store"
)

type TaskInput struct {
	AssigneeID  *int64
	ContactID   *int64
	JobID       *int64
	Title       string
	Description *string
	DueAt       *time.Time
}

type TaskPatch struct {
	AssigneeID  *int64
	ContactID   *int64
	JobID       *int64
	Title       *string
	Description *string
	DueAt       *time.Time
}

type TaskService interface {
	Create(ctx context.Context, orgID int64, input TaskInput) (*model.Task, error)
	Get(ctx context.Context, orgID, id int64) (*model.Task, error)
	Update(ctx context.Context, orgID, id int64, patch TaskPatch) (*model.Task, error)
	// SetCompleted marks the task done (completed=true) or reopens it.
	SetCompleted(ctx context.Context, orgID, id int64, completed bool) (*model.Task, error)
	Delete(ctx context.Context, orgID, id int64) error
	List(ctx context.Context, orgID int64, includeCompleted bool, page PageRequest) ([]model.Task, error)
}

type taskService struct {
	tasks       store.TaskStore
	memberships store.MembershipStore
	now         func() time.Time
}

func NewTaskService(tasks store.TaskStore, memberships store.MembershipStore) TaskService {
	return &taskService{tasks: tasks, memberships: memberships, now: time.Now}
}

func (s *taskService) Create(ctx context.Context, orgID int64, input TaskInput) (*model.Task, error) {
	task := &model.Task{
		ID:             id.New(),
		OrganizationID: orgID,
		AssigneeID:     input.AssigneeID,
		ContactID:      input.ContactID,
		JobID:          input.JobID,
		Title:          strings.TrimSpace(input.Title),
		Description:    input.Description,
		DueAt:          input.DueAt,
	}
	if err := s.validate(ctx, task); err != nil {
		return nil, err
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("creating task: %w", err)
	}
	return task, nil
}

func (s *taskService) Get(ctx context.Context, orgID, id int64) (*model.Task, error) {
	task, err := s.tasks.GetByID(ctx, orgID, id)
	if err != nil {
		return nil, lookupErr("task", err)
	}
	return task, nil
}

func (s *taskService) Update(ctx context.Context, orgID, id int64, patch TaskPatch) (*model.Task, error) {
	task, err := s.Get(ctx, orgID, id)
	if err != nil {
		return nil, err
	}

	if patch.AssigneeID != nil {
		task.AssigneeID = patch.AssigneeID
	}
	if patch.ContactID != nil {
		task.ContactID = patch.ContactID
	}
	if patch.JobID != nil {
		task.JobID = patch.JobID
	}
	if patch.Title != nil {
		task.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Description != nil {
		task.Description = patch.Description
	}
	if patch.DueAt != nil {
		task.DueAt = patch.DueAt
	}
	if err := s.validate(ctx, task); err != nil {
		return nil, err
	}

	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, lookupErr("task", err)
	}
	return task, nil
}

func (s *taskService) SetCompleted(ctx context.Context, orgID, id int64, completed bool) (*model.Task, error) {
	var at *time.Time
	if completed {
		now := s.now()
		at = &now
	}
	task, err := s.tasks.SetCompleted(ctx, orgID, id, at)
	if err != nil {
		return nil, lookupErr("task", err)
	}
	return task, nil
}

func (s *taskService) Delete(ctx context.Context, orgID, id int64) error {
	if err := s.tasks.Delete(ctx, orgID, id); err != nil {
		return lookupErr("task", err)
	}
	return nil
}

func (s *taskService) List(ctx context.Context, orgID int64, includeCompleted bool, page PageRequest) ([]model.Task, error) {
	tasks, err := s.tasks.List(ctx, orgID, includeCompleted, page.toStore())
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	return tasks, nil
}

func (s *taskService) validate(ctx context.Context, task *model.Task) error {
	if task.Title == "" {
		return invalid("task title is required")
	}
	if task.AssigneeID == nil {
		return nil
	}
	if _, err := s.memberships.Get(ctx, task.OrganizationID, *task.AssigneeID); err != nil {
		if isNotFound(err) {
			return invalid("assignee is not a member of this organization")
		}
		return fmt.Errorf("checking assignee: %w", err)
	}
	return nil
}
