package store

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"fieldpro.app/relay/core/db/sqlc"
	"fieldpro.app/relay/internal/model"
)

type eventStore struct {
	queries *sqlc.Queries
}

func newEventStore(queries *sqlc.Queries) EventStore {
	return &eventStore{queries: queries}
}

func (s *eventStore) GetByID(ctx context.Context, orgID, id int64) (*model.Event, error) {
	row, err := s.queries.GetEvent(ctx, sqlc.GetEventParams{ID: id, OrganizationID: orgID})
	if err != nil {
		return nil, mapErr(err)
	}
	return toEventModel(row), nil
}

func (s *eventStore) Create(ctx context.Context, event *model.Event) error {
	row, err := s.queries.CreateEvent(ctx, sqlc.CreateEventParams{
		ID:             event.ID,
		OrganizationID: event.OrganizationID,
		ContactID:      event.ContactID,
		JobID:          event.JobID,
		Title:          event.Title,
		Description:    event.Description,
		Location:       event.Location,
		StartsAt:       pgtype.Timestamptz{Time: event.StartsAt, Valid: true},
		EndsAt:         pgtype.Timestamptz{Time: event.EndsAt, Valid: true},
		Source:         event.Source,
	})
	if err != nil {
		return mapErr(err)
	}
	*event = *toEventModel(row)
	return nil
}

func (s *eventStore) Update(ctx context.Context, event *model.Event) error {
	row, err := s.queries.UpdateEvent(ctx, sqlc.UpdateEventParams{
		ID:             event.ID,
		OrganizationID: event.OrganizationID,
		ContactID:      event.ContactID,
		JobID:          event.JobID,
		Title:          event.Title,
		Description:    event.Description,
		Location:       event.Location,
		StartsAt:       pgtype.Timestamptz{Time: event.StartsAt, Valid: true},
		EndsAt:         pgtype.Timestamptz{Time: event.EndsAt, Valid: true},
	})
	if err != nil {
		return mapErr(err)
	}
	*event = *toEventModel(row)
	return nil
}

func (s *eventStore) Delete(ctx context.Context, orgID, id int64) error {
	return rowsAffected(s.queries.DeleteEvent(ctx, sqlc.DeleteEventParams{ID: id, OrganizationID: orgID}))
}

func (s *eventStore) ListInRange(ctx context.Context, orgID int64, start, end time.Time) ([]model.Event, error) {
	rows, err := s.queries.ListEventsInRange(ctx, sqlc.ListEventsInRangeParams{
		OrganizationID: orgID,
		RangeStart:     pgtype.Timestamptz{Time: start, Valid: true},
		RangeEnd:       pgtype.Timestamptz{Time: end, Valid: true},
	})
	if err != nil {
		return nil, err
	}
	result := make([]model.Event, len(rows))
	for i, row := range rows {
		result[i] = *toEventModel(row)
	}
	return result, nil
}

func toEventModel(row sqlc.Event) *model.Event {
	return &model.Event{
		ID:             row.ID,
		OrganizationID: row.OrganizationID,
		ContactID:      row.ContactID,
		JobID:          row.JobID,
		Title:          row.Title,
		Description:    row.Description,
		Location:       row.Location,
		StartsAt:       row.StartsAt.Time,
		EndsAt:         row.EndsAt.Time,
		Source:         row.Source,
		CreatedAt:      row.CreatedAt.Time,
		UpdatedAt:      row.UpdatedAt.Time,
	}
}
