package service_test

import (
	"context"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"fieldpro.app/relay/internal/model"
	"fieldpro.app/relay/internal/service"
)

func at(hour, minute int) time.Time {
	return time.Date(2026, 3, 2, hour, minute, 0, 0, time.UTC)
}

func busy(start, end time.Time) model.Event {
	return model.Event{OrganizationID: 1, StartsAt: start, EndsAt: end}
}

var _ = Describe("FreeSlots", func() {
	It("returns the whole window when nothing is booked", func() {
		slots := service.FreeSlots(nil, at(9, 0), at(17, 0), 30*time.Minute)
		Expect(slots).To(Equal([]model.Slot{{Start: at(9, 0), End: at(17, 0)}}))
	})

	It("returns the gaps between bookings", func() {
		slots := service.FreeSlots([]model.Event{
			busy(at(13, 0), at(14, 0)),
			busy(at(10, 0), at(11, 0)),
		}, at(9, 0), at(17, 0), 30*time.Minute)

		Expect(slots).To(Equal([]model.Slot{
			{Start: at(9, 0), End: at(10, 0)},
			{Start: at(11, 0), End: at(13, 0)},
			{Start: at(14, 0), End: at(17, 0)},
		}))
	})

	It("merges overlapping bookings and clips to the window", func() {
		slots := service.FreeSlots([]model.Event{
			busy(at(8, 0), at(10, 0)),
			busy(at(9, 30), at(11, 0)),
			busy(at(10, 30), at(10, 45)),
			busy(at(16, 0), at(18, 0)),
		}, at(9, 0), at(17, 0), 30*time.Minute)

		Expect(slots).To(Equal([]model.Slot{{Start: at(11, 0), End: at(16, 0)}}))
	})

	It("drops gaps shorter than the minimum", func() {
		slots := service.FreeSlots([]model.Event{
			busy(at(9, 20), at(12, 0)),
			busy(at(12, 15), at(17, 0)),
		}, at(9, 0), at(17, 0), 30*time.Minute)

		Expect(slots).To(BeEmpty())
	})

	It("treats back to back bookings as touching, not overlapping", func() {
		slots := service.FreeSlots([]model.Event{
			busy(at(9, 0), at(10, 0)),
			busy(at(10, 0), at(11, 0)),
		}, at(9, 0), at(12, 0), time.Hour)

		Expect(slots).To(Equal([]model.Slot{{Start: at(11, 0), End: at(12, 0)}}))
	})
})

var _ = Describe("EventService", func() {
	var (
		ctx       context.Context
		events    *mockEventStore
		publisher *mockPublisher
		svc       service.EventService
	)

	BeforeEach(func() {
		ctx = context.Background()
		events = &mockEventStore{events: []model.Event{{
			ID:             5,
			OrganizationID: 1,
			Title:          "Leak repair",
			StartsAt:       at(10, 0),
			EndsAt:         at(11, 0),
		}}}
		publisher = &mockPublisher{}
		svc = service.NewEventService(events, publisher)
	})

	It("allows an event that starts when another ends", func() {
		event, err := svc.Create(ctx, 1, service.EventInput{Title: "Follow-up", StartsAt: at(11, 0), EndsAt: at(12, 0)})
		Expect(err).NotTo(HaveOccurred())
		Expect(event.Source).To(Equal("manual"))
		Expect(publisher.types()).To(Equal([]string{model.EventEventCreated}))
	})

	It("ignores other organizations' bookings", func() {
		_, err := svc.Create(ctx, 2, service.EventInput{Title: "Survey", StartsAt: at(10, 0), EndsAt: at(11, 0)})
		Expect(err).NotTo(HaveOccurred())
	})

	It("rejects an end before the start", func() {
		_, err := svc.Create(ctx, 1, service.EventInput{Title: "Backwards", StartsAt: at(12, 0), EndsAt: at(11, 0)})
		Expect(errors.Is(err, service.ErrInvalidInput)).To(BeTrue())
	})

	It("does not report an event as conflicting with itself when moved", func() {
		newEnd := at(11, 30)
		_, err := svc.Update(ctx, 1, 5, service.EventPatch{EndsAt: &newEnd})
		Expect(err).NotTo(HaveOccurred())
	})

	It("unlinks the contact while leaving the job in place", func() {
		contactID, jobID := int64(70), int64(80)
		events.events[0].ContactID = &contactID
		events.events[0].JobID = &jobID

		event, err := svc.Update(ctx, 1, 5, service.EventPatch{UnlinkContact: true})
		Expect(err).NotTo(HaveOccurred())
		Expect(event.ContactID).To(BeNil())
		Expect(event.JobID).To(Equal(&jobID))

		event, err = svc.Update(ctx, 1, 5, service.EventPatch{UnlinkJob: true})
		Expect(err).NotTo(HaveOccurred())
		Expect(event.JobID).To(BeNil())
	})

	It("rejects setting and unlinking the same link at once", func() {
		contactID := int64(70)
		_, err := svc.Update(ctx, 1, 5, service.EventPatch{ContactID: &contactID, UnlinkContact: true})
		Expect(errors.Is(err, service.ErrInvalidInput)).To(BeTrue())
	})

	It("reports availability with conflicts and free slots", func() {
		availability, err := svc.Availability(ctx, 1, at(9, 0), at(12, 0), 0)
		Expect(err).NotTo(HaveOccurred())
		Expect(availability.Available).To(BeFalse())
		Expect(availability.Conflicts).To(HaveLen(1))
		Expect(availability.FreeSlots).To(Equal([]model.Slot{
			{Start: at(9, 0), End: at(10, 0)},
			{Start: at(11, 0), End: at(12, 0)},
		}))
	})

	It("caps the availability window", func() {
		_, err := svc.Availability(ctx, 1, at(9, 0), at(9, 0).Add(40*24*time.Hour), time.Hour)
		Expect(errors.Is(err, service.ErrInvalidInput)).To(BeTrue())
	})
})
