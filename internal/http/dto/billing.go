package dto

import (
	"time"

	"fieldpro.app/relay/internal/model"
	"fieldpro.app/relay/internal/service"
)

type LineItemRequest struct {
	Description    string  `json:"description" binding:"required,max=1000"`
	Quantity       float64 `json:"quantity" binding:"gt=0"`
	UnitPriceCents int64   `json:"unit_price_cents" binding:"min=0"`
}

func toLineItems(items []LineItemRequest) []model.LineItem {
	if items == nil {
		return nil
	}
	out := make([]model.LineItem, len(items))
	for i, item := range items {
		out[i] = model.LineItem{
			Description:    item.Description,
			Quantity:       item.Quantity,
			UnitPriceCents: item.UnitPriceCents,
		}
	}
	return out
}

type CreateQuoteRequest struct {
	ContactID  *int64            `json:"contact_id,string,omitempty"`
	JobID      *int64            `json:"job_id,string,omitempty"`
	LineItems  []LineItemRequest `json:"line_items" binding:"required,min=1,dive"`
	TaxRateBps int32             `json:"tax_rate_bps" binding:"min=0,max=10000"`
	ValidUntil *time.Time        `json:"valid_until,omitempty"`
	Notes      *string           `json:"notes,omitempty"`
}

func (r CreateQuoteRequest) ToInput() service.QuoteInput {
	return service.QuoteInput{
		ContactID:  r.ContactID,
		JobID:      r.JobID,
		LineItems:  toLineItems(r.LineItems),
		TaxRateBps: r.TaxRateBps,
		ValidUntil: r.ValidUntil,
		Notes:      r.Notes,
	}
}

type UpdateQuoteRequest struct {
	ContactID  *int64             `json:"contact_id,string,omitempty"`
	JobID      *int64             `json:"job_id,string,omitempty"`
	Status     *model.QuoteStatus `json:"status,omitempty"`
	LineItems  []LineItemRequest  `json:"line_items,omitempty" binding:"omitempty,min=1,dive"`
	TaxRateBps *int32             `json:"tax_rate_bps,omitempty" binding:"omitempty,min=0,max=10000"`
	ValidUntil *time.Time         `json:"valid_until,omitempty"`
	Notes      *string            `json:"notes,omitempty"`
}

func (r UpdateQuoteRequest) ToPatch() service.QuotePatch {
	return service.QuotePatch{
		ContactID:  r.ContactID,
		JobID:      r.JobID,
		Status:     r.Status,
		LineItems:  toLineItems(r.LineItems),
		TaxRateBps: r.TaxRateBps,
		ValidUntil: r.ValidUntil,
		Notes:      r.Notes,
	}
}

type CreateInvoiceRequest struct {
	ContactID  *int64            `json:"contact_id,string,omitempty"`
	JobID      *int64            `json:"job_id,string,omitempty"`
	LineItems  []LineItemRequest `json:"line_items" binding:"required,min=1,dive"`
	TaxRateBps int32             `json:"tax_rate_bps" binding:"min=0,max=10000"`
	DueAt      *time.Time        `json:"due_at,omitempty"`
	Notes      *string           `json:"notes,omitempty"`
}

func (r CreateInvoiceRequest) ToInput() service.InvoiceInput {
	return service.InvoiceInput{
		ContactID:  r.ContactID,
		JobID:      r.JobID,
		LineItems:  toLineItems(r.LineItems),
		TaxRateBps: r.TaxRateBps,
		DueAt:      r.DueAt,
		Notes:      r.Notes,
	}
}

type UpdateInvoiceRequest struct {
	ContactID  *int64               `json:"contact_id,string,omitempty"`
	JobID      *int64               `json:"job_id,string,omitempty"`
	Status     *model.InvoiceStatus `json:"status,omitempty"`
	LineItems  []LineItemRequest    `json:"line_items,omitempty" binding:"omitempty,min=1,dive"`
	TaxRateBps *int32               `json:"tax_rate_bps,omitempty" binding:"omitempty,min=0,max=10000"`
	DueAt      *time.Time           `json:"due_at,omitempty"`
	Notes      *string              `json:"notes,omitempty"`
}

func (r UpdateInvoiceRequest) ToPatch() service.InvoicePatch {
	return service.InvoicePatch{
		ContactID:  r.ContactID,
		JobID:      r.JobID,
		Status:     r.Status,
		LineItems:  toLineItems(r.LineItems),
		TaxRateBps: r.TaxRateBps,
		DueAt:      r.DueAt,
		Notes:      r.Notes,
	}
}

type PayInvoiceRequest struct {
	PaidAt *time.Time `json:"paid_at,omitempty"`
}
