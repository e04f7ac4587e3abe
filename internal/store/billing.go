package store

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"fieldpro.app/relay/core/db/sqlc"
	"fieldpro.app/relay/internal/model"
)

type quoteStore struct {
	queries *sqlc.Queries
}

func newQuoteStore(queries *sqlc.Queries) QuoteStore {
	return &quoteStore{queries: queries}
}

func (s *quoteStore) GetByID(ctx context.Context, orgID, id int64) (*model.Quote, error) {
	row, err := s.queries.GetQuote(ctx, sqlc.GetQuoteParams{ID: id, OrganizationID: orgID})
	if err != nil {
		return nil, mapErr(err)
	}
	return toQuoteModel(row), nil
}

func (s *quoteStore) Create(ctx context.Context, quote *model.Quote) error {
	items, err := encodeLineItems(quote.LineItems)
	if err != nil {
		return err
	}
	row, err := s.queries.CreateQuote(ctx, sqlc.CreateQuoteParams{
		ID:             quote.ID,
		OrganizationID: quote.OrganizationID,
		ContactID:      quote.ContactID,
		JobID:          quote.JobID,
		Number:         quote.Number,
		Status:         string(quote.Status),
		LineItems:      items,
		SubtotalCents:  quote.SubtotalCents,
		TaxRateBps:     quote.TaxRateBps,
		TaxCents:       quote.TaxCents,
		TotalCents:     quote.TotalCents,
		ValidUntil:     timeToPgTimestamptz(quote.ValidUntil),
		Notes:          quote.Notes,
	})
	if err != nil {
		return mapErr(err)
	}
	*quote = *toQuoteModel(row)
	return nil
}

func (s *quoteStore) Update(ctx context.Context, quote *model.Quote) error {
	items, err := encodeLineItems(quote.LineItems)
	if err != nil {
		return err
	}
	row, err := s.queries.UpdateQuote(ctx, sqlc.UpdateQuoteParams{
		ID:             quote.ID,
		OrganizationID: quote.OrganizationID,
		ContactID:      quote.ContactID,
		JobID:          quote.JobID,
		Status:         string(quote.Status),
		LineItems:      items,
		SubtotalCents:  quote.SubtotalCents,
		TaxRateBps:     quote.TaxRateBps,
		TaxCents:       quote.TaxCents,
		TotalCents:     quote.TotalCents,
		ValidUntil:     timeToPgTimestamptz(quote.ValidUntil),
		Notes:          quote.Notes,
	})
	if err != nil {
		return mapErr(err)
	}
	*quote = *toQuoteModel(row)
	return nil
}

func (s *quoteStore) SetStatus(ctx context.Context, orgID, id int64, status model.QuoteStatus) (*model.Quote, error) {
	row, err := s.queries.SetQuoteStatus(ctx, sqlc.SetQuoteStatusParams{
		ID:             id,
		OrganizationID: orgID,
		Status:         string(status),
	})
	if err != nil {
		return nil, mapErr(err)
	}
	return toQuoteModel(row), nil
}

func (s *quoteStore) Delete(ctx context.Context, orgID, id int64) error {
	return rowsAffected(s.queries.DeleteQuote(ctx, sqlc.DeleteQuoteParams{ID: id, OrganizationID: orgID}))
}

func (s *quoteStore) List(ctx context.Context, orgID int64, status string, page Page) ([]model.Quote, error) {
	rows, err := s.queries.ListQuotes(ctx, sqlc.ListQuotesParams{
		OrganizationID: orgID,
		Status:         status,
		Limit:          page.Limit,
		Offset:         page.Offset,
	})
	if err != nil {
		return nil, err
	}
	result := make([]model.Quote, len(rows))
	for i, row := range rows {
		result[i] = *toQuoteModel(row)
	}
	return result, nil
}

func (s *quoteStore) Count(ctx context.Context, orgID int64) (int64, error) {
	return s.queries.CountQuotes(ctx, orgID)
}

func toQuoteModel(row sqlc.Quote) *model.Quote {
	return &model.Quote{
		ID:             row.ID,
		OrganizationID: row.OrganizationID,
		ContactID:      row.ContactID,
		JobID:          row.JobID,
		Number:         row.Number,
		Status:         model.QuoteStatus(row.Status),
		LineItems:      decodeLineItems(row.LineItems),
		Totals: model.Totals{
			SubtotalCents: row.SubtotalCents,
			TaxRateBps:    row.TaxRateBps,
			TaxCents:      row.TaxCents,
			TotalCents:    row.TotalCents,
		},
		ValidUntil: pgTimestamptzToTime(row.ValidUntil),
		Notes:      row.Notes,
		CreatedAt:  row.CreatedAt.Time,
		UpdatedAt:  row.UpdatedAt.Time,
	}
}

type invoiceStore struct {
	queries *sqlc.Queries
}

func newInvoiceStore(queries *sqlc.Queries) InvoiceStore {
	return &invoiceStore{queries: queries}
}

func (s *invoiceStore) GetByID(ctx context.Context, orgID, id int64) (*model.Invoice, error) {
	row, err := s.queries.GetInvoice(ctx, sqlc.GetInvoiceParams{ID: id, OrganizationID: orgID})
	if err != nil {
		return nil, mapErr(err)
	}
	return toInvoiceModel(row), nil
}

func (s *invoiceStore) Create(ctx context.Context, invoice *model.Invoice) error {
	items, err := encodeLineItems(invoice.LineItems)
	if err != nil {
		return err
	}
	row, err := s.queries.CreateInvoice(ctx, sqlc.CreateInvoiceParams{
		ID:             invoice.ID,
		OrganizationID: invoice.OrganizationID,
		ContactID:      invoice.ContactID,
		JobID:          invoice.JobID,
		QuoteID:        invoice.QuoteID,
		Number:         invoice.Number,
		Status:         string(invoice.Status),
		LineItems:      items,
		SubtotalCents:  invoice.SubtotalCents,
		TaxRateBps:     invoice.TaxRateBps,
		TaxCents:       invoice.TaxCents,
		TotalCents:     invoice.TotalCents,
		DueAt:          timeToPgTimestamptz(invoice.DueAt),
		Notes:          invoice.Notes,
	})
	if err != nil {
		return mapErr(err)
	}
	*invoice = *toInvoiceModel(row)
	return nil
}

func (s *invoiceStore) Update(ctx context.Context, invoice *model.Invoice) error {
	items, err := encodeLineItems(invoice.LineItems)
	if err != nil {
		return err
	}
	row, err := s.queries.UpdateInvoice(ctx, sqlc.UpdateInvoiceParams{
		ID:             invoice.ID,
		OrganizationID: invoice.OrganizationID,
		ContactID:      invoice.ContactID,
		JobID:          invoice.JobID,
		Status:         string(invoice.Status),
		LineItems:      items,
		SubtotalCents:  invoice.SubtotalCents,
		TaxRateBps:     invoice.TaxRateBps,
		TaxCents:       invoice.TaxCents,
		TotalCents:     invoice.TotalCents,
		DueAt:          timeToPgTimestamptz(invoice.DueAt),
		Notes:          invoice.Notes,
	})
	if err != nil {
		return mapErr(err)
	}
	*invoice = *toInvoiceModel(row)
	return nil
}

func (s *invoiceStore) MarkPaid(ctx context.Context, orgID, id int64, paidAt time.Time) (*model.Invoice, error) {
	row, err := s.queries.MarkInvoicePaid(ctx, sqlc.MarkInvoicePaidParams{
		ID:             id,
		OrganizationID: orgID,
		PaidAt:         pgtype.Timestamptz{Time: paidAt, Valid: true},
	})
	if err != nil {
		return nil, mapErr(err)
	}
	return toInvoiceModel(row), nil
}

func (s *invoiceStore) Delete(ctx context.Context, orgID, id int64) error {
	return rowsAffected(s.queries.DeleteInvoice(ctx, sqlc.DeleteInvoiceParams{ID: id, OrganizationID: orgID}))
}

func (s *invoiceStore) List(ctx context.Context, orgID int64, status string, page Page) ([]model.Invoice, error) {
	rows, err := s.queries.ListInvoices(ctx, sqlc.ListInvoicesParams{
		OrganizationID: orgID,
		Status:         status,
		Limit:          page.Limit,
		Offset:         page.Offset,
	})
	if err != nil {
		return nil, err
	}
	result := make([]model.Invoice, len(rows))
	for i, row := range rows {
		result[i] = *toInvoiceModel(row)
	}
	return result, nil
}

func (s *invoiceStore) Count(ctx context.Context, orgID int64) (int64, error) {
	return s.queries.CountInvoices(ctx, orgID)
}

func toInvoiceModel(row sqlc.Invoice) *model.Invoice {
	return &model.Invoice{
		ID:             row.ID,
		OrganizationID: row.OrganizationID,
		ContactID:      row.ContactID,
		JobID:          row.JobID,
		QuoteID:        row.QuoteID,
		Number:         row.Number,
		Status:         model.InvoiceStatus(row.Status),
		LineItems:      decodeLineItems(row.LineItems),
		Totals: model.Totals{
			SubtotalCents: row.SubtotalCents,
			TaxRateBps:    row.TaxRateBps,
			TaxCents:      row.TaxCents,
			TotalCents:    row.TotalCents,
		},
		DueAt:     pgTimestamptzToTime(row.DueAt),
		PaidAt:    pgTimestamptzToTime(row.PaidAt),
		Notes:     row.Notes,
		CreatedAt: row.CreatedAt.Time,
		UpdatedAt: row.UpdatedAt.Time,
	}
}
