package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fieldpro.app/relay/internal/http/dto"
	"fieldpro.app/relay/internal/service"
)

type LeadHandler struct {
	leads service.LeadService
}

func NewLeadHandler(leads service.LeadService) *LeadHandler {
	return &LeadHandler{leads: leads}
}

func (h *LeadHandler) Create(c *gin.Context) {
	var req dto.CreateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	lead, err := h.leads.Create(c.Request.Context(), tenantID(c), req.ToInput())
	if err != nil {
		respondError(c, err, "failed to create lead")
		return
	}
	c.JSON(http.StatusCreated, lead)
}

func (h *LeadHandler) Get(c *gin.Context) {
	leadID, ok := pathID(c)
	if !ok {
		return
	}

	lead, err := h.leads.Get(c.Request.Context(), tenantID(c), leadID)
	if err != nil {
		respondError(c, err, "failed to get lead")
		return
	}
	c.JSON(http.StatusOK, lead)
}

func (h *LeadHandler) List(c *gin.Context) {
	var q dto.ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}

	leads, err := h.leads.List(c.Request.Context(), tenantID(c), q.Status, q.Page())
	if err != nil {
		respondError(c, err, "failed to list leads")
		return
	}
	c.JSON(http.StatusOK, gin.H{"leads": emptyIfNil(leads)})
}

func (h *LeadHandler) Update(c *gin.Context) {
	leadID, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.UpdateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	lead, err := h.leads.Update(c.Request.Context(), tenantID(c), leadID, req.ToPatch())
	if err != nil {
		respondError(c, err, "failed to update lead")
		return
	}
	c.JSON(http.StatusOK, lead)
}

func (h *LeadHandler) Delete(c *gin.Context) {
	leadID, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.leads.Delete(c.Request.Context(), tenantID(c), leadID); err != nil {
		respondError(c, err, "failed to delete lead")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *LeadHandler) Convert(c *gin.Context) {
	leadID, ok := pathID(c)
	if !ok {
		return
	}

	lead, contact, err := h.leads.Convert(c.Request.Context(), tenantID(c), leadID)
	if err != nil {
		respondError(c, err, "failed to convert lead")
		return
	}
	c.JSON(http.StatusOK, dto.ConvertLeadResponse{Lead: lead, Contact: contact})
}
