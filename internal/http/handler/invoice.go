package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fieldpro.app/relay/internal/http/dto"
	"fieldpro.app/relay/internal/service"
)

type InvoiceHandler struct {
	invoices service.InvoiceService
}

func NewInvoiceHandler(invoices service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoices: invoices}
}

func (h *InvoiceHandler) Create(c *gin.Context) {
	var req dto.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	invoice, err := h.invoices.Create(c.Request.Context(), tenantID(c), req.ToInput())
	if err != nil {
		respondError(c, err, "failed to create invoice")
		return
	}
	c.JSON(http.StatusCreated, invoice)
}

func (h *InvoiceHandler) Get(c *gin.Context) {
	invoiceID, ok := pathID(c)
	if !ok {
		return
	}

	invoice, err := h.invoices.Get(c.Request.Context(), tenantID(c), invoiceID)
	if err != nil {
		respondError(c, err, "failed to get invoice")
		return
	}
	c.JSON(http.StatusOK, invoice)
}

func (h *InvoiceHandler) List(c *gin.Context) {
	var q dto.ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}

	invoices, err := h.invoices.List(c.Request.Context(), tenantID(c), q.Status, q.Page())
	if err != nil {
		respondError(c, err, "failed to list invoices")
		return
	}
	c.JSON(http.StatusOK, gin.H{"invoices": emptyIfNil(invoices)})
}

func (h *InvoiceHandler) Update(c *gin.Context) {
	invoiceID, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.UpdateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	invoice, err := h.invoices.Update(c.Request.Context(), tenantID(c), invoiceID, req.ToPatch())
	if err != nil {
		respondError(c, err, "failed to update invoice")
		return
	}
	c.JSON(http.StatusOK, invoice)
}

func (h *InvoiceHandler) Delete(c *gin.Context) {
	invoiceID, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.invoices.Delete(c.Request.Context(), tenantID(c), invoiceID); err != nil {
		respondError(c, err, "failed to delete invoice")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *InvoiceHandler) Pay(c *gin.Context) {
	invoiceID, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.PayInvoiceRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
	}

	invoice, err := h.invoices.MarkPaid(c.Request.Context(), tenantID(c), invoiceID, req.PaidAt)
	if err != nil {
		respondError(c, err, "failed to mark invoice paid")
		return
	}
	c.JSON(http.StatusOK, invoice)
}
