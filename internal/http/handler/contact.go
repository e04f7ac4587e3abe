package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fieldpro.app/relay/internal/http/dto"
	"fieldpro.app/relay/internal/service"
)

type ContactHandler struct {
	contacts service.ContactService
}

func NewContactHandler(contacts service.ContactService) *ContactHandler {
	return &ContactHandler{contacts: contacts}
}

func (h *ContactHandler) Create(c *gin.Context) {
	var req dto.CreateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	contact, err := h.contacts.Create(c.Request.Context(), tenantID(c), req.ToInput())
	if err != nil {
		respondError(c, err, "failed to create contact")
		return
	}
	c.JSON(http.StatusCreated, contact)
}

func (h *ContactHandler) Get(c *gin.Context) {
	contactID, ok := pathID(c)
	if !ok {
		return
	}

	contact, err := h.contacts.Get(c.Request.Context(), tenantID(c), contactID)
	if err != nil {
		respondError(c, err, "failed to get contact")
		return
	}
	c.JSON(http.StatusOK, contact)
}

func (h *ContactHandler) List(c *gin.Context) {
	var q dto.ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}

	contacts, err := h.contacts.List(c.Request.Context(), tenantID(c), q.Search, q.Page())
	if err != nil {
		respondError(c, err, "failed to list contacts")
		return
	}
	c.JSON(http.StatusOK, gin.H{"contacts": emptyIfNil(contacts)})
}

func (h *ContactHandler) Update(c *gin.Context) {
	contactID, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.UpdateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	contact, err := h.contacts.Update(c.Request.Context(), tenantID(c), contactID, req.ToPatch())
	if err != nil {
		respondError(c, err, "failed to update contact")
		return
	}
	c.JSON(http.StatusOK, contact)
}

func (h *ContactHandler) Delete(c *gin.Context) {
	contactID, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.contacts.Delete(c.Request.Context(), tenantID(c), contactID); err != nil {
		respondError(c, err, "failed to delete contact")
		return
	}
	c.Status(http.StatusNoContent)
}
