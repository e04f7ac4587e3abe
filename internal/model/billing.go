package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// LineItem is one priced row on a quote or invoice. Quantity may be fractional
// (hours of labour).
type LineItem struct {
	Description    string  `json:"description"`
	Quantity       float64 `json:"quantity"`
	UnitPriceCents int64   `json:"unit_price_cents"`
}

// TotalCents is quantity times unit price, rounded half away from zero to the
// nearest cent.
func (l LineItem) TotalCents() int64 {
	return l.total().IntPart()
}

func (l LineItem) total() decimal.Decimal {
	return decimal.NewFromFloat(l.Quantity).Mul(decimal.NewFromInt(l.UnitPriceCents)).Round(0)
}

var bpsPerUnit = decimal.NewFromInt(10000)

// Totals holds the derived money columns of a quote or invoice.
type Totals struct {
	SubtotalCents int64 `json:"subtotal_cents"`
	TaxRateBps    int32 `json:"tax_rate_bps"`
	TaxCents      int64 `json:"tax_cents"`
	TotalCents    int64 `json:"total_cents"`
}

// ComputeTotals sums the line items and applies a tax rate in basis points
// (825 = 8.25%). Tax is rounded half away from zero.
func ComputeTotals(items []LineItem, taxRateBps int32) Totals {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.total())
	}
	tax := subtotal.Mul(decimal.NewFromInt32(taxRateBps)).Div(bpsPerUnit).Round(0)
	return Totals{
		SubtotalCents: subtotal.IntPart(),
		TaxRateBps:    taxRateBps,
		TaxCents:      tax.IntPart(),
		TotalCents:    subtotal.Add(tax).IntPart(),
	}
}

type QuoteStatus string

const (
	QuoteStatusDraft     QuoteStatus = "draft"
	QuoteStatusSent      QuoteStatus = "sent"
	QuoteStatusAccepted  QuoteStatus = "accepted"
	QuoteStatusDeclined  QuoteStatus = "declined"
	QuoteStatusConverted QuoteStatus = "converted"
)

func (s QuoteStatus) Valid() bool {
	switch s {
	case QuoteStatusDraft, QuoteStatusSent, QuoteStatusAccepted, QuoteStatusDeclined, QuoteStatusConverted:
		return true
	}
	return false
}

type Quote struct {
	ID             int64       `json:"id,string"`
	OrganizationID int64       `json:"organization_id,string"`
	ContactID      *int64      `json:"contact_id,string,omitempty"`
	JobID          *int64      `json:"job_id,string,omitempty"`
	Number         string      `json:"number"`
	Status         QuoteStatus `json:"status"`
	LineItems      []LineItem  `json:"line_items"`
	Totals
	ValidUntil *time.Time `json:"valid_until,omitempty"`
	Notes      *string    `json:"notes,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

type InvoiceStatus string

const (
	InvoiceStatusDraft InvoiceStatus = "draft"
	InvoiceStatusSent  InvoiceStatus = "sent"
	InvoiceStatusPaid  InvoiceStatus = "paid"
	InvoiceStatusVoid  InvoiceStatus = "void"
)

func (s InvoiceStatus) Valid() bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusSent, InvoiceStatusPaid, InvoiceStatusVoid:
		return true
	}
	return false
}

type Invoice struct {
	ID             int64         `json:"id,string"`
	OrganizationID int64         `json:"organization_id,string"`
	ContactID      *int64        `json:"contact_id,string,omitempty"`
	JobID          *int64        `json:"job_id,string,omitempty"`
	QuoteID        *int64        `json:"quote_id,string,omitempty"`
	Number         string        `json:"number"`
	Status         InvoiceStatus `json:"status"`
	LineItems      []LineItem    `json:"line_items"`
	Totals
	DueAt     *time.Time `json:"due_at,omitempty"`
	PaidAt    *time.Time `json:"paid_at,omitempty"`
	Notes     *string    `json:"notes,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
