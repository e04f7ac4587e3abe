package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fieldpro.app/relay/internal/http/dto"
	"fieldpro.app/relay/internal/service"
)

const defaultDeliveryLimit = 50

type WebhookHandler struct {
	webhooks service.WebhookService
}

func NewWebhookHandler(webhooks service.WebhookService) *WebhookHandler {
	return &WebhookHandler{webhooks: webhooks}
}

func (h *WebhookHandler) Create(c *gin.Context) {
	var req dto.CreateWebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	created, err := h.webhooks.Create(c.Request.Context(), tenantID(c), req.ToInput())
	if err != nil {
		respondError(c, err, "failed to create webhook")
		return
	}
	c.JSON(http.StatusCreated, dto.ToCreatedWebhookResponse(created))
}

func (h *WebhookHandler) List(c *gin.Context) {
	endpoints, err := h.webhooks.List(c.Request.Context(), tenantID(c))
	if err != nil {
		respondError(c, err, "failed to list webhooks")
		return
	}
	c.JSON(http.StatusOK, gin.H{"webhooks": emptyIfNil(endpoints)})
}

func (h *WebhookHandler) Get(c *gin.Context) {
	endpointID, ok := pathID(c)
	if !ok {
		return
	}

	endpoint, err := h.webhooks.Get(c.Request.Context(), tenantID(c), endpointID)
	if err != nil {
		respondError(c, err, "failed to get webhook")
		return
	}
	c.JSON(http.StatusOK, endpoint)
}

func (h *WebhookHandler) Update(c *gin.Context) {
	endpointID, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.UpdateWebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	endpoint, err := h.webhooks.Update(c.Request.Context(), tenantID(c), endpointID, req.ToPatch())
	if err != nil {
		respondError(c, err, "failed to update webhook")
		return
	}
	c.JSON(http.StatusOK, endpoint)
}

func (h *WebhookHandler) Delete(c *gin.Context) {
	endpointID, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.webhooks.Delete(c.Request.Context(), tenantID(c), endpointID); err != nil {
		respondError(c, err, "failed to delete webhook")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *WebhookHandler) Test(c *gin.Context) {
	endpointID, ok := pathID(c)
	if !ok {
		return
	}

	delivery, err := h.webhooks.SendTest(c.Request.Context(), tenantID(c), endpointID)
	if err != nil {
		respondError(c, err, "failed to send test event")
		return
	}
	c.JSON(http.StatusAccepted, delivery)
}

func (h *WebhookHandler) Deliveries(c *gin.Context) {
	endpointID, ok := pathID(c)
	if !ok {
		return
	}
	var q dto.DeliveriesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}
	limit := q.Limit
	if limit == 0 {
		limit = defaultDeliveryLimit
	}

	deliveries, err := h.webhooks.Deliveries(c.Request.Context(), tenantID(c), endpointID, limit)
	if err != nil {
		respondError(c, err, "failed to list deliveries")
		return
	}
	c.JSON(http.StatusOK, gin.H{"deliveries": emptyIfNil(deliveries)})
}
