package service

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"fieldpro.app/relay/common/id"
	"fieldpro.app/relay/internal/model"
	"fieldpro.app/relay/internal/store"
)

const (
	defaultSlotDuration = 30 * time.Minute
	maxAvailabilitySpan = 31 * 24 * time.Hour
)

type EventInput struct {
	ContactID    *int64
	JobID        *int64
	Title        string
	Description  *string
	Location     *string
	StartsAt     time.Time
	EndsAt       time.Time
	Source       string
	AllowOverlap bool
}

// EventPatch changes the non-nil fields. A nil link leaves it as is;
// UnlinkContact and UnlinkJob clear it.
type EventPatch struct {
	ContactID     *int64
	JobID         *int64
	UnlinkContact bool
	UnlinkJob     bool
	Title        *string
	Description  *string
	Location     *string
	StartsAt     *time.Time
	EndsAt       *time.Time
	AllowOverlap bool
}

// Availability describes a calendar window: the events that intersect it and
// the free gaps long enough for the requested slot.
type Availability struct {
	Start     time.Time     `json:"start"`
	End       time.Time     `json:"end"`
	Available bool          `json:"available"`
	Conflicts []model.Event `json:"conflicts"`
	FreeSlots []model.Slot  `json:"free_slots"`
}

// ConflictError reports the events a new or moved event would overlap.
type ConflictError struct {
	Conflicts []model.Event
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("overlaps %d existing event(s)", len(e.Conflicts))
}

func (e *ConflictError) Unwrap() error { return ErrConflict }

type EventService interface {
	Create(ctx context.Context, orgID int64, input EventInput) (*model.Event, error)
	Get(ctx context.Context, orgID, id int64) (*model.Event, error)
	Update(ctx context.Context, orgID, id int64, patch EventPatch) (*model.Event, error)
	Delete(ctx context.Context, orgID, id int64) error
	List(ctx context.Context, orgID int64, start, end time.Time) ([]model.Event, error)
	Availability(ctx context.Context, orgID int64, start, end time.Time, slot time.Duration) (*Availability, error)
}

type eventService struct {
	events    store.EventStore
	publisher Publisher
}

func NewEventService(events store.EventStore, publisher Publisher) EventService {
	return &eventService{events: events, publisher: publisher}
}

func (s *eventService) Create(ctx context.Context, orgID int64, input EventInput) (*model.Event, error) {
	event := &model.Event{
		ID:             id.New(),
		OrganizationID: orgID,
		ContactID:      input.ContactID,
		JobID:          input.JobID,
		Title:          strings.TrimSpace(input.Title),
		Description:    input.Description,
		Location:       trimmed(input.Location),
		StartsAt:       input.StartsAt.UTC(),
		EndsAt:         input.EndsAt.UTC(),
		Source:         input.Source,
	}
	if event.Source == "" {
		event.Source = "manual"
	}
	if err := validateEvent(event); err != nil {
		return nil, err
	}
	if !input.AllowOverlap {
		if err := s.checkConflicts(ctx, event); err != nil {
			return nil, err
		}
	}

	if err := s.events.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("creating event: %w", err)
	}

	s.publisher.Publish(ctx, orgID, model.EventEventCreated, event)
	return event, nil
}

func (s *eventService) Get(ctx context.Context, orgID, id int64) (*model.Event, error) {
	event, err := s.events.GetByID(ctx, orgID, id)
	if err != nil {
		return nil, lookupErr("event", err)
	}
	return event, nil
}

func (s *eventService) Update(ctx context.Context, orgID, id int64, patch EventPatch) (*model.Event, error) {
	event, err := s.Get(ctx, orgID, id)
	if err != nil {
		return nil, err
	}

	if patch.UnlinkContact && patch.ContactID != nil {
		return nil, invalid("contact_id and unlink_contact are mutually exclusive")
	}
	if patch.UnlinkJob && patch.JobID != nil {
		return nil, invalid("job_id and unlink_job are mutually exclusive")
	}

	moved := false
	switch {
	case patch.UnlinkContact:
		event.ContactID = nil
	case patch.ContactID != nil:
		event.ContactID = patch.ContactID
	}
	switch {
	case patch.UnlinkJob:
		event.JobID = nil
	case patch.JobID != nil:
		event.JobID = patch.JobID
	}
	if patch.Title != nil {
		event.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Description != nil {
		event.Description = patch.Description
	}
	if patch.Location != nil {
		event.Location = trimmed(patch.Location)
	}
	if patch.StartsAt != nil {
		event.StartsAt = patch.StartsAt.UTC()
		moved = true
	}
	if patch.EndsAt != nil {
		event.EndsAt = patch.EndsAt.UTC()
		moved = true
	}
	if err := validateEvent(event); err != nil {
		return nil, err
	}
	if moved && !patch.AllowOverlap {
		if err := s.checkConflicts(ctx, event); err != nil {
			return nil, err
		}
	}

	if err := s.events.Update(ctx, event); err != nil {
		return nil, lookupErr("event", err)
	}

	s.publisher.Publish(ctx, orgID, model.EventEventUpdated, event)
	return event, nil
}

func (s *eventService) Delete(ctx context.Context, orgID, id int64) error {
	if err := s.events.Delete(ctx, orgID, id); err != nil {
		return lookupErr("event", err)
	}
	s.publisher.Publish(ctx, orgID, model.EventEventDeleted, deletedRef(id))
	return nil
}

func (s *eventService) List(ctx context.Context, orgID int64, start, end time.Time) ([]model.Event, error) {
	if !end.After(start) {
		return nil, invalid("end must be after start")
	}
	events, err := s.events.ListInRange(ctx, orgID, start, end)
	if err != nil {
		return nil, fmt.Errorf("listing events: %w", err)
	}
	return events, nil
}

func (s *eventService) Availability(ctx context.Context, orgID int64, start, end time.Time, slot time.Duration) (*Availability, error) {
	if !end.After(start) {
		return nil, invalid("end must be after start")
	}
	if end.Sub(start) > maxAvailabilitySpan {
		return nil, invalid("availability window cannot exceed 31 days")
	}
	if slot <= 0 {
		slot = defaultSlotDuration
	}

	events, err := s.events.ListInRange(ctx, orgID, start, end)
	if err != nil {
		return nil, fmt.Errorf("listing events: %w", err)
	}

	return &Availability{
		Start:     start,
		End:       end,
		Available: len(events) == 0,
		Conflicts: events,
		FreeSlots: FreeSlots(events, start, end, slot),
	}, nil
}

func (s *eventService) checkConflicts(ctx context.Context, event *model.Event) error {
	existing, err := s.events.ListInRange(ctx, event.OrganizationID, event.StartsAt, event.EndsAt)
	if err != nil {
		return fmt.Errorf("checking conflicts: %w", err)
	}
	conflicts := slices.DeleteFunc(existing, func(e model.Event) bool {
		return e.ID == event.ID || !e.Overlaps(event.StartsAt, event.EndsAt)
	})
	if len(conflicts) > 0 {
		return &ConflictError{Conflicts: conflicts}
	}
	return nil
}

// FreeSlots returns the gaps of at least minLen inside [start, end) that no
// busy event covers. Events may overlap each other and the window edges.
func FreeSlots(busy []model.Event, start, end time.Time, minLen time.Duration) []model.Slot {
	sorted := slices.Clone(busy)
	slices.SortFunc(sorted, func(a, b model.Event) int {
		return a.StartsAt.Compare(b.StartsAt)
	})

	slots := []model.Slot{}
	cursor := start
	for _, e := range sorted {
		if !e.Overlaps(start, end) {
			continue
		}
		if e.StartsAt.After(cursor) && e.StartsAt.Sub(cursor) >= minLen {
			slots = append(slots, model.Slot{Start: cursor, End: e.StartsAt})
		}
		if e.EndsAt.After(cursor) {
			cursor = e.EndsAt
		}
		if !cursor.Before(end) {
			return slots
		}
	}
	if end.Sub(cursor) >= minLen {
		slots = append(slots, model.Slot{Start: cursor, End: end})
	}
	return slots
}

func validateEvent(e *model.Event) error {
	if e.Title == "" {
		return invalid("event title is required")
	}
	if e.StartsAt.IsZero() || e.EndsAt.IsZero() {
		return invalid("event start and end are required")
	}
	if !e.EndsAt.After(e.StartsAt) {
		return invalid("event end must be after start")
	}
	return nil
}
