package store

import (
	"context"

	"fieldpro.app/relay/core/db/sqlc"
	"fieldpro.app/relay/internal/model"
)

type jobStore struct {
	queries *sqlc.Queries
}

func newJobStore(queries *sqlc.Queries) JobStore {
	return &jobStore{queries: queries}
}

func (s *jobStore) GetByID(ctx context.Context, orgID, id int64) (*model.Job, error) {
	row, err := s.queries.GetJob(ctx, sqlc.GetJobParams{ID: id, OrganizationID: orgID})
	if err != nil {
		return nil, mapErr(err)
	}
	return toJobModel(row), nil
}

func (s *jobStore) Create(ctx context.Context, job *model.Job) error {
	row, err := s.queries.CreateJob(ctx, sqlc.CreateJobParams{
		ID:             job.ID,
		OrganizationID: job.OrganizationID,
		ContactID:      job.ContactID,
		Title:          job.Title,
		Description:    job.Description,
		Status:         string(job.Status),
		Address:        job.Address,
		ScheduledStart: timeToPgTimestamptz(job.ScheduledStart),
		ScheduledEnd:   timeToPgTimestamptz(job.ScheduledEnd),
		ValueCents:     job.ValueCents,
	})
	if err != nil {
		return mapErr(err)
	}
	*job = *toJobModel(row)
	return nil
}

func (s *jobStore) Update(ctx context.Context, job *model.Job) error {
	row, err := s.queries.UpdateJob(ctx, sqlc.UpdateJobParams{
		ID:             job.ID,
		OrganizationID: job.OrganizationID,
		ContactID:      job.ContactID,
		Title:          job.Title,
		Description:    job.Description,
		Status:         string(job.Status),
		Address:        job.Address,
		ScheduledStart: timeToPgTimestamptz(job.ScheduledStart),
		ScheduledEnd:   timeToPgTimestamptz(job.ScheduledEnd),
		ValueCents:     job.ValueCents,
	})
	if err != nil {
		return mapErr(err)
	}
	*job = *toJobModel(row)
	return nil
}

func (s *jobStore) Delete(ctx context.Context, orgID, id int64) error {
	return rowsAffected(s.queries.DeleteJob(ctx, sqlc.DeleteJobParams{ID: id, OrganizationID: orgID}))
}

func (s *jobStore) List(ctx context.Context, orgID int64, status string, page Page) ([]model.Job, error) {
	rows, err := s.queries.ListJobs(ctx, sqlc.ListJobsParams{
		OrganizationID: orgID,
		Status:         status,
		Limit:          page.Limit,
		Offset:         page.Offset,
	})
	if err != nil {
		return nil, err
	}
	result := make([]model.Job, len(rows))
	for i, row := range rows {
		result[i] = *toJobModel(row)
	}
	return result, nil
}

func toJobModel(row sqlc.Job) *model.Job {
	return &model.Job{
		ID:             row.ID,
		OrganizationID: row.OrganizationID,
		ContactID:      row.ContactID,
		Title:          row.Title,
		Description:    row.Description,
		Status:         model.JobStatus(row.Status),
		Address:        row.Address,
		ScheduledStart: pgTimestamptzToTime(row.ScheduledStart),
		ScheduledEnd:   pgTimestamptzToTime(row.ScheduledEnd),
		ValueCents:     row.ValueCents,
		CreatedAt:      row.CreatedAt.Time,
		UpdatedAt:      row.UpdatedAt.Time,
	}
}
