package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fieldpro.app/relay/internal/http/dto"
	"fieldpro.app/relay/internal/service"
)

type QuoteHandler struct {
	quotes service.QuoteService
}

func NewQuoteHandler(quotes service.QuoteService) *QuoteHandler {
	return &QuoteHandler{quotes: quotes}
}

func (h *QuoteHandler) Create(c *gin.Context) {
	var req dto.CreateQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	quote, err := h.quotes.Create(c.Request.Context(), tenantID(c), req.ToInput())
	if err != nil {
		respondError(c, err, "failed to create quote")
		return
	}
	c.JSON(http.StatusCreated, quote)
}

func (h *QuoteHandler) Get(c *gin.Context) {
	quoteID, ok := pathID(c)
	if !ok {
		return
	}

	quote, err := h.quotes.Get(c.Request.Context(), tenantID(c), quoteID)
	if err != nil {
		respondError(c, err, "failed to get quote")
		return
	}
	c.JSON(http.StatusOK, quote)
}

func (h *QuoteHandler) List(c *gin.Context) {
	var q dto.ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}

	quotes, err := h.quotes.List(c.Request.Context(), tenantID(c), q.Status, q.Page())
	if err != nil {
		respondError(c, err, "failed to list quotes")
		return
	}
	c.JSON(http.StatusOK, gin.H{"quotes": emptyIfNil(quotes)})
}

func (h *QuoteHandler) Update(c *gin.Context) {
	quoteID, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.UpdateQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	quote, err := h.quotes.Update(c.Request.Context(), tenantID(c), quoteID, req.ToPatch())
	if err != nil {
		respondError(c, err, "failed to update quote")
		return
	}
	c.JSON(http.StatusOK, quote)
}

func (h *QuoteHandler) Delete(c *gin.Context) {
	quoteID, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.quotes.Delete(c.Request.Context(), tenantID(c), quoteID); err != nil {
		respondError(c, err, "failed to delete quote")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *QuoteHandler) Convert(c *gin.Context) {
	quoteID, ok := pathID(c)
	if !ok {
		return
	}

	invoice, err := h.quotes.ConvertToInvoice(c.Request.Context(), tenantID(c), quoteID)
	if err != nil {
		respondError(c, err, "failed to convert quote")
		return
	}
	c.JSON(http.StatusCreated, invoice)
}
