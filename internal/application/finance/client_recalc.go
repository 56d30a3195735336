package finance

import (
	"context"

	"github.com/backoffice/backend/internal/domain/finance"
	"github.com/backoffice/backend/internal/domain/partner"
	"github.com/backoffice/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ClientTotalsRecalculator rebuilds a client's cached billing aggregates
// from a full scan of the client's non-deleted invoices. Every invoice
// mutation funnels through Recalculate, so the cache converges to the
// stored invoice state regardless of the order concurrent mutations land
// in.
type ClientTotalsRecalculator struct {
	invoiceRepo finance.InvoiceRepository
	clientRepo  partner.ClientRepository
	logger      *zap.Logger
}

// NewClientTotalsRecalculator creates a new ClientTotalsRecalculator
func NewClientTotalsRecalculator(
	invoiceRepo finance.InvoiceRepository,
	clientRepo partner.ClientRepository,
	logger *zap.Logger,
) *ClientTotalsRecalculator {
	return &ClientTotalsRecalculator{
		invoiceRepo: invoiceRepo,
		clientRepo:  clientRepo,
		logger:      logger,
	}
}

// Recalculate rescans the client's non-deleted invoices and replaces the
// cached totals wholesale. A client with no invoices left gets zero totals.
func (r *ClientTotalsRecalculator) Recalculate(ctx context.Context, tenantID, clientID uuid.UUID) error {
	client, err := r.clientRepo.FindByIDForTenant(ctx, tenantID, clientID)
	if err != nil {
		return err
	}
	if client == nil {
		return shared.NewDomainError("NOT_FOUND", "Client not found")
	}

	invoices, err := r.invoiceRepo.FindByClient(ctx, tenantID, clientID)
	if err != nil {
		return err
	}

	totals := partner.ZeroTotals()
	for i := range invoices {
		inv := &invoices[i]
		totals.TotalInvoice = totals.TotalInvoice.Add(inv.FeePlusVatNGN)
		totals.AmountPaid = totals.AmountPaid.Add(inv.AmountPaid)
	}
	totals.TotalInvoice = finance.Round2(totals.TotalInvoice)
	totals.AmountPaid = finance.Round2(totals.AmountPaid)
	// Outstanding balance is derived from the sums, not from the
	// per-invoice due fields, which lag behind manual edits.
	totals.AmountDue = finance.Round2(totals.TotalInvoice.Sub(totals.AmountPaid))

	client.ApplyTotals(totals)
	if err := r.clientRepo.Save(ctx, client); err != nil {
		return err
	}

	r.logger.Debug("client totals recalculated",
		zap.String("client_id", clientID.String()),
		zap.Int("invoice_count", len(invoices)),
		zap.String("total_invoice", totals.TotalInvoice.String()),
	)
	return nil
}
