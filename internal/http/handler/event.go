package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"fieldpro.app/relay/internal/http/dto"
	"fieldpro.app/relay/internal/service"
)

type EventHandler struct {
	events service.EventService
}

func NewEventHandler(events service.EventService) *EventHandler {
	return &EventHandler{events: events}
}

func (h *EventHandler) Create(c *gin.Context) {
	var req dto.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	event, err := h.events.Create(c.Request.Context(), tenantID(c), req.ToInput())
	if err != nil {
		respondError(c, err, "failed to create event")
		return
	}
	c.JSON(http.StatusCreated, event)
}

func (h *EventHandler) Get(c *gin.Context) {
	eventID, ok := pathID(c)
	if !ok {
		return
	}

	event, err := h.events.Get(c.Request.Context(), tenantID(c), eventID)
	if err != nil {
		respondError(c, err, "failed to get event")
		return
	}
	c.JSON(http.StatusOK, event)
}

// List returns the events intersecting [start, end).
func (h *EventHandler) List(c *gin.Context) {
	var q dto.EventRangeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}

	events, err := h.events.List(c.Request.Context(), tenantID(c), q.Start, q.End)
	if err != nil {
		respondError(c, err, "failed to list events")
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": emptyIfNil(events)})
}

func (h *EventHandler) Availability(c *gin.Context) {
	var q dto.AvailabilityQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}

	slot := time.Duration(q.SlotMinutes) * time.Minute
	availability, err := h.events.Availability(c.Request.Context(), tenantID(c), q.Start, q.End, slot)
	if err != nil {
		respondError(c, err, "failed to check availability")
		return
	}
	c.JSON(http.StatusOK, availability)
}

func (h *EventHandler) Update(c *gin.Context) {
	eventID, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	event, err := h.events.Update(c.Request.Context(), tenantID(c), eventID, req.ToPatch())
	if err != nil {
		respondError(c, err, "failed to update event")
		return
	}
	c.JSON(http.StatusOK, event)
}

func (h *EventHandler) Delete(c *gin.Context) {
	eventID, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.events.Delete(c.Request.Context(), tenantID(c), eventID); err != nil {
		respondError(c, err, "failed to delete event")
		return
	}
	c.Status(http.StatusNoContent)
}
