package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"fieldpro.app/relay/internal/http/handler"
	"fieldpro.app/relay/internal/model"
	"fieldpro.app/relay/internal/service"
)

var _ = Describe("EventHandler", func() {
	var (
		router *gin.Engine
		events *mockEventService
	)

	do := func(method, path, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	BeforeEach(func() {
		router = gin.New()
		events = &mockEventService{}
		h := handler.NewEventHandler(events)
		rg := router.Group("/events", withTenant(100, model.RoleMember))
		rg.POST("", h.Create)
		rg.GET("/availability", h.Availability)
	})

	It("marks dashboard events as manual", func() {
		var got service.EventInput
		events.createFn = func(_ context.Context, orgID int64, input service.EventInput) (*model.Event, error) {
			got = input
			return &model.Event{ID: 3, OrganizationID: orgID}, nil
		}

		w := do(http.MethodPost, "/events", `{"title":"Survey","starts_at":"2026-03-02T09:00:00Z","ends_at":"2026-03-02T10:00:00Z"}`)
		Expect(w.Code).To(Equal(http.StatusCreated))
		Expect(got.Source).To(Equal("manual"))
		Expect(got.EndsAt.Sub(got.StartsAt)).To(Equal(time.Hour))
	})

	It("returns 409 with the conflicting events", func() {
		events.createFn = func(_ context.Context, _ int64, _ service.EventInput) (*model.Event, error) {
			return nil, &service.ConflictError{Conflicts: []model.Event{{ID: 8}}}
		}

		w := do(http.MethodPost, "/events", `{"title":"Survey","starts_at":"2026-03-02T09:00:00Z","ends_at":"2026-03-02T10:00:00Z"}`)
		Expect(w.Code).To(Equal(http.StatusConflict))
		Expect(w.Body.String()).To(ContainSubstring(`"conflicts":[{"id":"8"`))
	})

	It("parses the availability window and slot length", func() {
		var gotSlot time.Duration
		var gotStart time.Time
		events.availabilityFn = func(_ context.Context, _ int64, start, end time.Time, slot time.Duration) (*service.Availability, error) {
			gotStart, gotSlot = start, slot
			return &service.Availability{Start: start, End: end, Available: true}, nil
		}

		w := do(http.MethodGet, "/events/availability?start=2026-03-02T09:00:00Z&end=2026-03-02T17:00:00Z&slot_minutes=45", "")
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(gotSlot).To(Equal(45 * time.Minute))
		Expect(gotStart.Equal(time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC))).To(BeTrue())
	})

	It("requires a window", func() {
		w := do(http.MethodGet, "/events/availability?start=2026-03-02T09:00:00Z", "")
		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})
})
