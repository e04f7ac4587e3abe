package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"fieldpro.app/relay/common/id"
	"fieldpro.app/relay/internal/model"
	"fieldpro.app/relay/internal/store"
)

type JobInput struct {
	ContactID      *int64
	Title          string
	Description    *string
	Status         model.JobStatus
	Address        *string
	ScheduledStart *time.Time
	ScheduledEnd   *time.Time
	ValueCents     int64
}

type JobPatch struct {
	ContactID      *int64
	Title          *string
	Description    *string
	Status         *model.JobStatus
	Address        *string
	ScheduledStart *time.Time
	ScheduledEnd   *time.Time
	ValueCents     *int64
}

type JobService interface {
	Create(ctx context.Context, orgID int64, input JobInput) (*model.Job, error)
	Get(ctx context.Context, orgID, id int64) (*model.Job, error)
	Update(ctx context.Context, orgID, id int64, patch JobPatch) (*model.Job, error)
	Delete(ctx context.Context, orgID, id int64) error
	List(ctx context.Context, orgID int64, status string, page PageRequest) ([]model.Job, error)
}

type jobService struct {
	jobs      store.JobStore
	contacts  store.ContactStore
	publisher Publisher
}

func NewJobService(jobs store.JobStore, contacts store.ContactStore, publisher Publisher) JobService {
	return &jobService{jobs: jobs, contacts: contacts, publisher: publisher}
}

func (s *jobService) Create(ctx context.Context, orgID int64, input JobInput) (*model.Job, error) {
	job := &model.Job{
		ID:             id.New(),
		OrganizationID: orgID,
		ContactID:      input.ContactID,
		Title:          strings.TrimSpace(input.Title),
		Description:    input.Description,
		Status:         input.Status,
		Address:        trimmed(input.Address),
		ScheduledStart: input.ScheduledStart,
		ScheduledEnd:   input.ScheduledEnd,
		ValueCents:     input.ValueCents,
	}
	if job.Status == "" {
		job.Status = model.JobStatusScheduled
	}
	if err := s.validate(ctx, job); err != nil {
		return nil, err
	}

	if err := s.jobs.Create(ctx, job); err != nil {
		return nil, fmt.Errorf("creating job: %w", err)
	}

	s.publisher.Publish(ctx, orgID, model.EventJobCreated, job)
	return job, nil
}

func (s *jobService) Get(ctx context.Context, orgID, id int64) (*model.Job, error) {
	job, err := s.jobs.GetByID(ctx, orgID, id)
	if err != nil {
		return nil, lookupErr("job", err)
	}
	return job, nil
}

func (s *jobService) Update(ctx context.Context, orgID, id int64, patch JobPatch) (*model.Job, error) {
	job, err := s.Get(ctx, orgID, id)
	if err != nil {
		return nil, err
	}

	if patch.ContactID != nil {
		job.ContactID = patch.ContactID
	}
	if patch.Title != nil {
		job.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Description != nil {
		job.Description = patch.Description
	}
	if patch.Status != nil {
		job.Status = *patch.Status
	}
	if patch.Address != nil {
		job.Address = trimmed(patch.Address)
	}
	if patch.ScheduledStart != nil {
		job.ScheduledStart = patch.ScheduledStart
	}
	if patch.ScheduledEnd != nil {
		job.ScheduledEnd = patch.ScheduledEnd
	}
	if patch.ValueCents != nil {
		job.ValueCents = *patch.ValueCents
	}
	if err := s.validate(ctx, job); err != nil {
		return nil, err
	}

	if err := s.jobs.Update(ctx, job); err != nil {
		return nil, lookupErr("job", err)
	}
	return job, nil
}

func (s *jobService) Delete(ctx context.Context, orgID, id int64) error {
	if err := s.jobs.Delete(ctx, orgID, id); err != nil {
		return lookupErr("job", err)
	}
	return nil
}

func (s *jobService) List(ctx context.Context, orgID int64, status string, page PageRequest) ([]model.Job, error) {
	if status != "" && !model.JobStatus(status).Valid() {
		return nil, invalid(fmt.Sprintf("unknown job status %q", status))
	}
	jobs, err := s.jobs.List(ctx, orgID, status, page.toStore())
	if err != nil {
		return nil, fmt.Errorf("listing jobs: %w", err)
	}
	return jobs, nil
}

func (s *jobService) validate(ctx context.Context, job *model.Job) error {
	if job.Title == "" {
		return invalid("job title is required")
	}
	if !job.Status.Valid() {
		return invalid(fmt.Sprintf("unknown job status %q", job.Status))
	}
	if job.ValueCents < 0 {
		return invalid("job value cannot be negative")
	}
	if job.ScheduledStart != nil && job.ScheduledEnd != nil && !job.ScheduledEnd.After(*job.ScheduledStart) {
		return invalid("scheduled end must be after start")
	}
	return ensureContact(ctx, s.contacts, job.OrganizationID, job.ContactID)
}

// ensureContact rejects references to contacts outside the organization.
func ensureContact(ctx context.Context, contacts store.ContactStore, orgID int64, contactID *int64) error {
	if contactID == nil {
		return nil
	}
	if _, err := contacts.GetByID(ctx, orgID, *contactID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return invalid(fmt.Sprintf("contact %d does not exist", *contactID))
		}
		return fmt.Errorf("loading contact: %w", err)
	}
	return nil
}
