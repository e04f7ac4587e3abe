package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"fieldpro.app/relay/common/id"
	"fieldpro.app/relay/internal/model"
	"fieldpro.app/relay/internal/store"
)

const (
	quoteNumberPrefix   = "Q"
	invoiceNumberPrefix = "INV"
	numberAttempts      = 5
	maxTaxRateBps       = 10000
	defaultInvoiceTerms = 30 * 24 * time.Hour
)

type QuoteInput struct {
	ContactID  *int64
	JobID      *int64
	LineItems  []model.LineItem
	TaxRateBps int32
	ValidUntil *time.Time
	Notes      *string
}

type QuotePatch struct {
	ContactID  *int64
	JobID      *int64
	Status     *model.QuoteStatus
	LineItems  []model.LineItem // nil keeps the current items
	TaxRateBps *int32
	ValidUntil *time.Time
	Notes      *string
}

type QuoteService interface {
	Create(ctx context.Context, orgID int64, input QuoteInput) (*model.Quote, error)
	Get(ctx context.Context, orgID, id int64) (*model.Quote, error)
	Update(ctx context.Context, orgID, id int64, patch QuotePatch) (*model.Quote, error)
	Delete(ctx context.Context, orgID, id int64) error
	List(ctx context.Context, orgID int64, status string, page PageRequest) ([]model.Quote, error)
	// ConvertToInvoice copies the quote into a new draft invoice and marks the
	// quote converted, atomically.
	ConvertToInvoice(ctx context.Context, orgID, id int64) (*model.Invoice, error)
}

type quoteService struct {
	quotes    store.QuoteStore
	contacts  store.ContactStore
	txRunner  TxRunner
	publisher Publisher
}

func NewQuoteService(quotes store.QuoteStore, contacts store.ContactStore, txRunner TxRunner, publisher Publisher) QuoteService {
	return &quoteService{quotes: quotes, contacts: contacts, txRunner: txRunner, publisher: publisher}
}

func (s *quoteService) Create(ctx context.Context, orgID int64, input QuoteInput) (*model.Quote, error) {
	if err := validateBilling(input.LineItems, input.TaxRateBps); err != nil {
		return nil, err
	}
	if err := ensureContact(ctx, s.contacts, orgID, input.ContactID); err != nil {
		return nil, err
	}

	quote := &model.Quote{
		OrganizationID: orgID,
		ContactID:      input.ContactID,
		JobID:          input.JobID,
		Status:         model.QuoteStatusDraft,
		LineItems:      input.LineItems,
		Totals:         model.ComputeTotals(input.LineItems, input.TaxRateBps),
		ValidUntil:     input.ValidUntil,
		Notes:          input.Notes,
	}

	err := withNextNumber(ctx, quoteNumberPrefix, s.quotes.Count, orgID, func(number string) error {
		quote.ID = id.New()
		quote.Number = number
		return s.quotes.Create(ctx, quote)
	})
	if err != nil {
		return nil, fmt.Errorf("creating quote: %w", err)
	}

	slog.InfoContext(ctx, "quote created", "quote_id", quote.ID, "number", quote.Number, "total_cents", quote.TotalCents)
	return quote, nil
}

func (s *quoteService) Get(ctx context.Context, orgID, id int64) (*model.Quote, error) {
	quote, err := s.quotes.GetByID(ctx, orgID, id)
	if err != nil {
		return nil, lookupErr("quote", err)
	}
	return quote, nil
}

func (s *quoteService) Update(ctx context.Context, orgID, id int64, patch QuotePatch) (*model.Quote, error) {
	quote, err := s.Get(ctx, orgID, id)
	if err != nil {
		return nil, err
	}
	if quote.Status == model.QuoteStatusConverted {
		return nil, fmt.Errorf("quote already converted: %w", ErrConflict)
	}

	if patch.ContactID != nil {
		if err := ensureContact(ctx, s.contacts, orgID, patch.ContactID); err != nil {
			return nil, err
		}
		quote.ContactID = patch.ContactID
	}
	if patch.JobID != nil {
		quote.JobID = patch.JobID
	}
	if patch.Status != nil {
		if !patch.Status.Valid() || *patch.Status == model.QuoteStatusConverted {
			return nil, invalid(fmt.Sprintf("cannot set quote status %q", *patch.Status))
		}
		quote.Status = *patch.Status
	}
	if patch.LineItems != nil {
		quote.LineItems = patch.LineItems
	}
	taxRate := quote.TaxRateBps
	if patch.TaxRateBps != nil {
		taxRate = *patch.TaxRateBps
	}
	if patch.ValidUntil != nil {
		quote.ValidUntil = patch.ValidUntil
	}
	if patch.Notes != nil {
		quote.Notes = patch.Notes
	}

	if err := validateBilling(quote.LineItems, taxRate); err != nil {
		return nil, err
	}
	quote.Totals = model.ComputeTotals(quote.LineItems, taxRate)

	if err := s.quotes.Update(ctx, quote); err != nil {
		return nil, lookupErr("quote", err)
	}
	return quote, nil
}

func (s *quoteService) Delete(ctx context.Context, orgID, id int64) error {
	if err := s.quotes.Delete(ctx, orgID, id); err != nil {
		return lookupErr("quote", err)
	}
	return nil
}

func (s *quoteService) List(ctx context.Context, orgID int64, status string, page PageRequest) ([]model.Quote, error) {
	if status != "" && !model.QuoteStatus(status).Valid() {
		return nil, invalid(fmt.Sprintf("unknown quote status %q", status))
	}
	quotes, err := s.quotes.List(ctx, orgID, status, page.toStore())
	if err != nil {
		return nil, fmt.Errorf("listing quotes: %w", err)
	}
	return quotes, nil
}

func (s *quoteService) ConvertToInvoice(ctx context.Context, orgID, quoteID int64) (*model.Invoice, error) {
	var invoice *model.Invoice

	err := s.txRunner.WithTx(ctx, func(sp StoreProvider) error {
		quote, err := sp.Quotes().GetByID(ctx, orgID, quoteID)
		if err != nil {
			return lookupErr("quote", err)
		}
		switch quote.Status {
		case model.QuoteStatusConverted:
			return fmt.Errorf("quote already converted: %w", ErrConflict)
		case model.QuoteStatusDeclined:
			return fmt.Errorf("declined quotes cannot be invoiced: %w", ErrConflict)
		}

		count, err := sp.Invoices().Count(ctx, orgID)
		if err != nil {
			return fmt.Errorf("counting invoices: %w", err)
		}
		due := time.Now().Add(defaultInvoiceTerms)
		invoice = &model.Invoice{
			ID:             id.New(),
			OrganizationID: orgID,
			ContactID:      quote.ContactID,
			JobID:          quote.JobID,
			QuoteID:        &quote.ID,
			Number:         formatNumber(invoiceNumberPrefix, count+1),
			Status:         model.InvoiceStatusDraft,
			LineItems:      quote.LineItems,
			Totals:         quote.Totals,
			DueAt:          &due,
			Notes:          quote.Notes,
		}
		if err := sp.Invoices().Create(ctx, invoice); err != nil {
			if errors.Is(err, store.ErrDuplicate) {
				return fmt.Errorf("invoice number taken, retry: %w", ErrConflict)
			}
			return fmt.Errorf("creating invoice: %w", err)
		}

		if _, err := sp.Quotes().SetStatus(ctx, orgID, quoteID, model.QuoteStatusConverted); err != nil {
			return fmt.Errorf("marking quote converted: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "quote converted to invoice", "quote_id", quoteID, "invoice_id", invoice.ID)
	s.publisher.Publish(ctx, orgID, model.EventQuoteConverted, map[string]any{
		"quote_id": strconv.FormatInt(quoteID, 10),
		"invoice":  invoice,
	})
	return invoice, nil
}

type InvoiceInput struct {
	ContactID  *int64
	JobID      *int64
	LineItems  []model.LineItem
	TaxRateBps int32
	DueAt      *time.Time
	Notes      *string
}

type InvoicePatch struct {
	ContactID  *int64
	JobID      *int64
	Status     *model.InvoiceStatus
	LineItems  []model.LineItem // nil keeps the current items
	TaxRateBps *int32
	DueAt      *time.Time
	Notes      *string
}

type InvoiceService interface {
	Create(ctx context.Context, orgID int64, input InvoiceInput) (*model.Invoice, error)
	Get(ctx context.Context, orgID, id int64) (*model.Invoice, error)
	Update(ctx context.Context, orgID, id int64, patch InvoicePatch) (*model.Invoice, error)
	Delete(ctx context.Context, orgID, id int64) error
	List(ctx context.Context, orgID int64, status string, page PageRequest) ([]model.Invoice, error)
	MarkPaid(ctx context.Context, orgID, id int64, paidAt *time.Time) (*model.Invoice, error)
}

type invoiceService struct {
	invoices  store.InvoiceStore
	contacts  store.ContactStore
	publisher Publisher
	now       func() time.Time
}

func NewInvoiceService(invoices store.InvoiceStore, contacts store.ContactStore, publisher Publisher) InvoiceService {
	return &invoiceService{invoices: invoices, contacts: contacts, publisher: publisher, now: time.Now}
}

func (s *invoiceService) Create(ctx context.Context, orgID int64, input InvoiceInput) (*model.Invoice, error) {
	if err := validateBilling(input.LineItems, input.TaxRateBps); err != nil {
		return nil, err
	}
	if err := ensureContact(ctx, s.contacts, orgID, input.ContactID); err != nil {
		return nil, err
	}

	invoice := &model.Invoice{
		OrganizationID: orgID,
		ContactID:      input.ContactID,
		JobID:          input.JobID,
		Status:         model.InvoiceStatusDraft,
		LineItems:      input.LineItems,
		Totals:         model.ComputeTotals(input.LineItems, input.TaxRateBps),
		DueAt:          input.DueAt,
		Notes:          input.Notes,
	}
	if invoice.DueAt == nil {
		due := s.now().Add(defaultInvoiceTerms)
		invoice.DueAt = &due
	}

	err := withNextNumber(ctx, invoiceNumberPrefix, s.invoices.Count, orgID, func(number string) error {
		invoice.ID = id.New()
		invoice.Number = number
		return s.invoices.Create(ctx, invoice)
	})
	if err != nil {
		return nil, fmt.Errorf("creating invoice: %w", err)
	}
	return invoice, nil
}

func (s *invoiceService) Get(ctx context.Context, orgID, id int64) (*model.Invoice, error) {
	invoice, err := s.invoices.GetByID(ctx, orgID, id)
	if err != nil {
		return nil, lookupErr("invoice", err)
	}
	return invoice, nil
}

func (s *invoiceService) Update(ctx context.Context, orgID, id int64, patch InvoicePatch) (*model.Invoice, error) {
	invoice, err := s.Get(ctx, orgID, id)
	if err != nil {
		return nil, err
	}
	if invoice.Status == model.InvoiceStatusPaid || invoice.Status == model.InvoiceStatusVoid {
		return nil, fmt.Errorf("%s invoices are read-only: %w", invoice.Status, ErrConflict)
	}

	if patch.ContactID != nil {
		if err := ensureContact(ctx, s.contacts, orgID, patch.ContactID); err != nil {
			return nil, err
		}
		invoice.ContactID = patch.ContactID
	}
	if patch.JobID != nil {
		invoice.JobID = patch.JobID
	}
	if patch.Status != nil {
		// Paid goes through MarkPaid so paid_at is set.
		if !patch.Status.Valid() || *patch.Status == model.InvoiceStatusPaid {
			return nil, invalid(fmt.Sprintf("cannot set invoice status %q", *patch.Status))
		}
		invoice.Status = *patch.Status
	}
	if patch.LineItems != nil {
		invoice.LineItems = patch.LineItems
	}
	taxRate := invoice.TaxRateBps
	if patch.TaxRateBps != nil {
		taxRate = *patch.TaxRateBps
	}
	if patch.DueAt != nil {
		invoice.DueAt = patch.DueAt
	}
	if patch.Notes != nil {
		invoice.Notes = patch.Notes
	}

	if err := validateBilling(invoice.LineItems, taxRate); err != nil {
		return nil, err
	}
	invoice.Totals = model.ComputeTotals(invoice.LineItems, taxRate)

	if err := s.invoices.Update(ctx, invoice); err != nil {
		return nil, lookupErr("invoice", err)
	}
	return invoice, nil
}

func (s *invoiceService) Delete(ctx context.Context, orgID, id int64) error {
	if err := s.invoices.Delete(ctx, orgID, id); err != nil {
		return lookupErr("invoice", err)
	}
	return nil
}

func (s *invoiceService) List(ctx context.Context, orgID int64, status string, page PageRequest) ([]model.Invoice, error) {
	if status != "" && !model.InvoiceStatus(status).Valid() {
		return nil, invalid(fmt.Sprintf("unknown invoice status %q", status))
	}
	invoices, err := s.invoices.List(ctx, orgID, status, page.toStore())
	if err != nil {
		return nil, fmt.Errorf("listing invoices: %w", err)
	}
	return invoices, nil
}

func (s *invoiceService) MarkPaid(ctx context.Context, orgID, id int64, paidAt *time.Time) (*model.Invoice, error) {
	invoice, err := s.Get(ctx, orgID, id)
	if err != nil {
		return nil, err
	}
	switch invoice.Status {
	case model.InvoiceStatusPaid:
		return nil, fmt.Errorf("invoice already paid: %w", ErrConflict)
	case model.InvoiceStatusVoid:
		return nil, fmt.Errorf("void invoices cannot be paid: %w", ErrConflict)
	}

	at := s.now()
	if paidAt != nil {
		at = *paidAt
	}
	paid, err := s.invoices.MarkPaid(ctx, orgID, id, at)
	if err != nil {
		return nil, lookupErr("invoice", err)
	}

	slog.InfoContext(ctx, "invoice paid", "invoice_id", id, "total_cents", paid.TotalCents)
	s.publisher.Publish(ctx, orgID, model.EventInvoicePaid, paid)
	return paid, nil
}

func validateBilling(items []model.LineItem, taxRateBps int32) error {
	if taxRateBps < 0 || taxRateBps > maxTaxRateBps {
		return invalid("tax rate must be between 0 and 10000 basis points")
	}
	for i, item := range items {
		if strings.TrimSpace(item.Description) == "" {
			return invalid(fmt.Sprintf("line item %d needs a description", i+1))
		}
		if item.Quantity <= 0 {
			return invalid(fmt.Sprintf("line item %d quantity must be positive", i+1))
		}
		if item.UnitPriceCents < 0 {
			return invalid(fmt.Sprintf("line item %d price cannot be negative", i+1))
		}
	}
	return nil
}

// withNextNumber assigns sequential per-organization document numbers,
// retrying past numbers taken by concurrent writers.
func withNextNumber(ctx context.Context, prefix string, count func(context.Context, int64) (int64, error), orgID int64, create func(number string) error) error {
	n, err := count(ctx, orgID)
	if err != nil {
		return fmt.Errorf("counting documents: %w", err)
	}
	for attempt := int64(1); attempt <= numberAttempts; attempt++ {
		err = create(formatNumber(prefix, n+attempt))
		if !errors.Is(err, store.ErrDuplicate) {
			return err
		}
	}
	return fmt.Errorf("no free %s number after %d attempts: %w", prefix, numberAttempts, ErrConflict)
}

func formatNumber(prefix string, n int64) string {
	return fmt.Sprintf("%s-%06d", prefix, n)
}
