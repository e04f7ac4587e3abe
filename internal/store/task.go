package store

import (
	"context"
	"time"

	"fieldpro.app/relay/core/db/sqlc"
	"fieldpro.app/relay/internal/model"
)

type taskStore struct {
	queries *sqlc.Queries
}

func newTaskStore(queries *sqlc.Queries) TaskStore {
	return &taskStore{queries: queries}
}

func (s *taskStore) GetByID(ctx context.Context, orgID, id int64) (*model.Task, error) {
	row, err := s.queries.GetTask(ctx, sqlc.GetTaskParams{ID: id, OrganizationID: orgID})
	if err != nil {
		return nil, mapErr(err)
	}
	return toTaskModel(row), nil
}

func (s *taskStore) Create(ctx context.Context, task *model.Task) error {
	row, err := s.queries.CreateTask(ctx, sqlc.CreateTaskParams{
		ID:             task.ID,
		OrganizationID: task.OrganizationID,
		AssigneeID:     task.AssigneeID,
		ContactID:      task.ContactID,
		JobID:          task.JobID,
		Title:          task.Title,
		Description:    task.Description,
		DueAt:          timeToPgTimestamptz(task.DueAt),
	})
	if err != nil {
		return mapErr(err)
	}
	*task = *toTaskModel(row)
	return nil
}

func (s *taskStore) Update(ctx context.Context, task *model.Task) error {
	row, err := s.queries.UpdateTask(ctx, sqlc.UpdateTaskParams{
		ID:             task.ID,
		OrganizationID: task.OrganizationID,
		AssigneeID:     task.AssigneeID,
		ContactID:      task.ContactID,
		JobID:          task.JobID,
		Title:          task.Title,
		Description:    task.Description,
		DueAt:          timeToPgTimestamptz(task.DueAt),
	})
	if err != nil {
		return mapErr(err)
	}
	*task = *toTaskModel(row)
	return nil
}

// SetCompleted stamps completion; a nil completedAt reopens the task.
func (s *taskStore) SetCompleted(ctx context.Context, orgID, id int64, completedAt *time.Time) (*model.Task, error) {
	row, err := s.queries.SetTaskCompleted(ctx, sqlc.SetTaskCompletedParams{
		ID:             id,
		OrganizationID: orgID,
		CompletedAt:    timeToPgTimestamptz(completedAt),
	})
	if err != nil {
		return nil, mapErr(err)
	}
	return toTaskModel(row), nil
}

func (s *taskStore) Delete(ctx context.Context, orgID, id int64) error {
	return rowsAffected(s.queries.DeleteTask(ctx, sqlc.DeleteTaskParams{ID: id, OrganizationID: orgID}))
}

func (s *taskStore) List(ctx context.Context, orgID int64, includeCompleted bool, page Page) ([]model.Task, error) {
	rows, err := s.queries.ListTasks(ctx, sqlc.ListTasksParams{
		OrganizationID:   orgID,
		IncludeCompleted: includeCompleted,
		Limit:            page.Limit,
		Offset:           page.Offset,
	})
	if err != nil {
		return nil, err
	}
	result := make([]model.Task, len(rows))
	for i, row := range rows {
		result[i] = *toTaskModel(row)
	}
	return result, nil
}

func toTaskModel(row sqlc.Task) *model.Task {
	return &model.Task{
		ID:             row.ID,
		OrganizationID: row.OrganizationID,
		AssigneeID:     row.AssigneeID,
		ContactID:      row.ContactID,
		JobID:          row.JobID,
		Title:          row.Title,
		Description:    row.Description,
		DueAt:          pgTimestamptzToTime(row.DueAt),
		CompletedAt:    pgTimestamptzToTime(row.CompletedAt),
		CreatedAt:      row.CreatedAt.Time,
		UpdatedAt:      row.UpdatedAt.Time,
	}
}
