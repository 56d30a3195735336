package finance

import (
	"context"
	"time"

	"github.com/backoffice/backend/internal/domain/finance"
	"github.com/backoffice/backend/internal/domain/partner"
	"github.com/backoffice/backend/internal/domain/shared"
	"github.com/backoffice/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// InvoiceService provides application-level invoice operations. Every
// mutation ends with a full recalculation of the owning client's cached
// totals.
type InvoiceService struct {
	invoiceRepo finance.InvoiceRepository
	taxRepo     finance.TaxRecordRepository
	clientRepo  partner.ClientRepository
	recalc      *ClientTotalsRecalculator
	logger      *zap.Logger
}

// NewInvoiceService creates a new InvoiceService
func NewInvoiceService(
	invoiceRepo finance.InvoiceRepository,
	taxRepo finance.TaxRecordRepository,
	clientRepo partner.ClientRepository,
	recalc *ClientTotalsRecalculator,
	logger *zap.Logger,
) *InvoiceService {
	return &InvoiceService{
		invoiceRepo: invoiceRepo,
		taxRepo:     taxRepo,
		clientRepo:  clientRepo,
		recalc:      recalc,
		logger:      logger,
	}
}

// InvoiceResponse represents an invoice in API responses
type InvoiceResponse struct {
	ID              uuid.UUID              `json:"id"`
	TenantID        uuid.UUID              `json:"tenant_id"`
	InvoiceNumber   string                 `json:"invoice_number"`
	ReferenceNumber string                 `json:"reference_number"`
	ClientID        uuid.UUID              `json:"client_id"`
	ClientName      string                 `json:"client_name"`
	InvoiceType     string                 `json:"invoice_type"`
	Details         finance.InvoiceDetails `json:"details"`
	FeeNGN          decimal.Decimal        `json:"fee_ngn"`
	FeePlusVatNGN   decimal.Decimal        `json:"fee_plus_vat_ngn"`
	FeeUSD          decimal.Decimal        `json:"fee_usd"`
	FeePlusVatUSD   decimal.Decimal        `json:"fee_plus_vat_usd"`
	VATPercent      decimal.Decimal        `json:"vat_percent"`
	AmountPaid      decimal.Decimal        `json:"amount_paid"`
	AmountDue       decimal.Decimal        `json:"amount_due"`
	Status          string                 `json:"status"`
	TransactionDate time.Time              `json:"transaction_date"`
	DueDate         *time.Time             `json:"due_date,omitempty"`
	Period          valueobject.Period     `json:"period"`
	CreatedAt       time.Time              `json:"created_at"`
	UpdatedAt       time.Time              `json:"updated_at"`
	Version         int                    `json:"version"`
}

// CreateInvoiceRequest represents a request to create an invoice
type CreateInvoiceRequest struct {
	ClientID        uuid.UUID              `json:"client_id" binding:"required"`
	InvoiceType     string                 `json:"invoice_type" binding:"required"`
	Details         finance.InvoiceDetails `json:"details"`
	FeeNGN          decimal.Decimal        `json:"fee_ngn"`
	FeeUSD          decimal.Decimal        `json:"fee_usd"`
	VATPercent      decimal.Decimal        `json:"vat_percent"`
	TransactionDate time.Time              `json:"transaction_date" binding:"required"`
	DueDate         *time.Time             `json:"due_date"`
	CreatedBy       *uuid.UUID             `json:"-"` // Set from JWT context, not from request body
}

// UpdateInvoiceRequest represents a request to update an invoice. Only the
// supplied fields are applied; derived totals are never recomputed here.
type UpdateInvoiceRequest struct {
	Details         *finance.InvoiceDetails `json:"details"`
	FeeNGN          *decimal.Decimal        `json:"fee_ngn"`
	FeePlusVatNGN   *decimal.Decimal        `json:"fee_plus_vat_ngn"`
	FeeUSD          *decimal.Decimal        `json:"fee_usd"`
	FeePlusVatUSD   *decimal.Decimal        `json:"fee_plus_vat_usd"`
	AmountPaid      *decimal.Decimal        `json:"amount_paid"`
	AmountDue       *decimal.Decimal        `json:"amount_due"`
	Status          *string                 `json:"status"`
	TransactionDate *time.Time              `json:"transaction_date"`
	DueDate         *time.Time              `json:"due_date"`
}

// InvoiceListFilter defines filtering options for invoice list queries
type InvoiceListFilter struct {
	Search      string     `form:"search"`
	ClientID    *uuid.UUID `form:"client_id"`
	Status      string     `form:"status"`
	InvoiceType string     `form:"invoice_type"`
	MonthNumber *int       `form:"month"`
	Quarter     string     `form:"quarter"`
	Year        *int       `form:"year"`
	FromDate    *time.Time `form:"from_date"`
	ToDate      *time.Time `form:"to_date"`
	Page        int        `form:"page"`
	PageSize    int        `form:"page_size"`
}

func (f InvoiceListFilter) toDomain() finance.InvoiceFilter {
	domainFilter := finance.InvoiceFilter{
		Filter: shared.Filter{
			Page:     f.Page,
			PageSize: f.PageSize,
			Search:   f.Search,
		},
		ClientID: f.ClientID,
	}
	domainFilter.MonthNumber = f.MonthNumber
	domainFilter.Year = f.Year
	domainFilter.FromDate = f.FromDate
	domainFilter.ToDate = f.ToDate
	if f.Quarter != "" {
		q := valueobject.Quarter(f.Quarter)
		domainFilter.Quarter = &q
	}
	if f.Status != "" {
		status := finance.InvoiceStatus(f.Status)
		domainFilter.Status = &status
	}
	if f.InvoiceType != "" {
		invoiceType := finance.InvoiceType(f.InvoiceType)
		domainFilter.InvoiceType = &invoiceType
	}
	return domainFilter
}

// CreateInvoice creates an invoice together with its tax record. The tax
// record is written in the same operation so the two never drift apart.
func (s *InvoiceService) CreateInvoice(ctx context.Context, tenantID uuid.UUID, req CreateInvoiceRequest) (*InvoiceResponse, error) {
	client, err := s.clientRepo.FindByIDForTenant(ctx, tenantID, req.ClientID)
	if err != nil {
		return nil, err
	}
	if client == nil || client.IsDeleted() {
		return nil, shared.NewDomainError("NOT_FOUND", "Client not found")
	}

	invoiceNumber, err := s.invoiceRepo.GenerateInvoiceNumber(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	referenceNumber, err := s.invoiceRepo.GenerateReferenceNumber(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	invoice, err := finance.NewInvoice(
		tenantID,
		invoiceNumber,
		referenceNumber,
		client.ID,
		client.Name,
		finance.InvoiceType(req.InvoiceType),
		req.Details,
		req.FeeNGN,
		req.FeeUSD,
		req.VATPercent,
		req.TransactionDate,
		req.DueDate,
	)
	if err != nil {
		return nil, err
	}
	if req.CreatedBy != nil {
		invoice.CreatedBy = req.CreatedBy
	}

	if err := s.invoiceRepo.Save(ctx, invoice); err != nil {
		return nil, err
	}

	// The tax record tracks the statutory deduction on the invoice fee, at
	// the fixed statutory rate rather than the rate billed on the invoice.
	taxRecord, err := finance.NewTaxRecord(
		tenantID,
		invoice.ID,
		invoice.InvoiceNumber,
		invoice.ClientName,
		invoice.FeeNGN,
		finance.DefaultVATRate,
		invoice.TransactionDate,
	)
	if err != nil {
		return nil, err
	}
	if err := s.taxRepo.Save(ctx, taxRecord); err != nil {
		return nil, err
	}

	// The invoice and tax record are already committed; a stale totals
	// cache heals on the next recalculation and must not fail the write.
	if err := s.recalc.Recalculate(ctx, tenantID, client.ID); err != nil {
		s.logger.Error("failed to recalculate client totals after invoice create",
			zap.String("client_id", client.ID.String()),
			zap.Error(err),
		)
	}

	s.logger.Info("invoice created",
		zap.String("invoice_number", invoice.InvoiceNumber),
		zap.String("client_id", client.ID.String()),
	)
	return toInvoiceResponse(invoice), nil
}

// GetInvoiceByID gets an invoice by ID
func (s *InvoiceService) GetInvoiceByID(ctx context.Context, tenantID, id uuid.UUID) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Invoice not found")
	}
	return toInvoiceResponse(invoice), nil
}

// ListInvoices lists invoices with filtering
func (s *InvoiceService) ListInvoices(ctx context.Context, tenantID uuid.UUID, filter InvoiceListFilter) ([]InvoiceResponse, int64, error) {
	domainFilter := filter.toDomain()

	invoices, err := s.invoiceRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.invoiceRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]InvoiceResponse, 0, len(invoices))
	for i := range invoices {
		responses = append(responses, *toInvoiceResponse(&invoices[i]))
	}
	return responses, total, nil
}

// GetInvoiceTotals sums invoice amounts over a filtered set
func (s *InvoiceService) GetInvoiceTotals(ctx context.Context, tenantID uuid.UUID, filter InvoiceListFilter) (finance.InvoiceTotals, error) {
	return s.invoiceRepo.SumForTenant(ctx, tenantID, filter.toDomain())
}

// UpdateInvoice applies a partial update to an invoice
func (s *InvoiceService) UpdateInvoice(ctx context.Context, tenantID, id uuid.UUID, req UpdateInvoiceRequest) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Invoice not found")
	}

	update := finance.InvoiceUpdate{
		Details:         req.Details,
		FeeNGN:          req.FeeNGN,
		FeePlusVatNGN:   req.FeePlusVatNGN,
		FeeUSD:          req.FeeUSD,
		FeePlusVatUSD:   req.FeePlusVatUSD,
		AmountPaid:      req.AmountPaid,
		AmountDue:       req.AmountDue,
		TransactionDate: req.TransactionDate,
		DueDate:         req.DueDate,
	}
	if req.Status != nil {
		status := finance.InvoiceStatus(*req.Status)
		update.Status = &status
	}

	if err := invoice.ApplyUpdate(update); err != nil {
		return nil, err
	}
	if err := s.invoiceRepo.Save(ctx, invoice); err != nil {
		return nil, err
	}

	if err := s.recalc.Recalculate(ctx, tenantID, invoice.ClientID); err != nil {
		s.logger.Error("failed to recalculate client totals after invoice update",
			zap.String("client_id", invoice.ClientID.String()),
			zap.Error(err),
		)
	}
	return toInvoiceResponse(invoice), nil
}

// SoftDeleteInvoice soft-deletes an invoice, cascades the soft delete to
// its tax records, and refreshes the client's totals so the invoice no
// longer counts toward them.
func (s *InvoiceService) SoftDeleteInvoice(ctx context.Context, tenantID, id uuid.UUID) error {
	invoice, err := s.invoiceRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if invoice == nil {
		return shared.NewDomainError("NOT_FOUND", "Invoice not found")
	}

	if err := invoice.SoftDelete(); err != nil {
		return err
	}
	if err := s.invoiceRepo.Save(ctx, invoice); err != nil {
		return err
	}

	if err := s.taxRepo.DeleteByInvoiceNumber(ctx, tenantID, invoice.InvoiceNumber); err != nil {
		return err
	}

	if err := s.recalc.Recalculate(ctx, tenantID, invoice.ClientID); err != nil {
		s.logger.Error("failed to recalculate client totals after invoice delete",
			zap.String("client_id", invoice.ClientID.String()),
			zap.Error(err),
		)
	}

	s.logger.Info("invoice soft-deleted", zap.String("invoice_number", invoice.InvoiceNumber))
	return nil
}

// HardDeleteInvoice physically removes an invoice. The dependent tax
// records are soft-deleted first so they stop counting toward sums, and
// the client's totals are refreshed afterwards.
func (s *InvoiceService) HardDeleteInvoice(ctx context.Context, tenantID, id uuid.UUID) error {
	invoice, err := s.invoiceRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if invoice == nil {
		return shared.NewDomainError("NOT_FOUND", "Invoice not found")
	}

	if err := s.taxRepo.DeleteByInvoiceNumber(ctx, tenantID, invoice.InvoiceNumber); err != nil {
		return err
	}
	if err := s.invoiceRepo.HardDelete(ctx, tenantID, id); err != nil {
		return err
	}

	if err := s.recalc.Recalculate(ctx, tenantID, invoice.ClientID); err != nil {
		s.logger.Error("failed to recalculate client totals after invoice delete",
			zap.String("client_id", invoice.ClientID.String()),
			zap.Error(err),
		)
	}

	s.logger.Info("invoice hard-deleted", zap.String("invoice_number", invoice.InvoiceNumber))
	return nil
}

func toInvoiceResponse(invoice *finance.Invoice) *InvoiceResponse {
	return &InvoiceResponse{
		ID:              invoice.ID,
		TenantID:        invoice.TenantID,
		InvoiceNumber:   invoice.InvoiceNumber,
		ReferenceNumber: invoice.ReferenceNumber,
		ClientID:        invoice.ClientID,
		ClientName:      invoice.ClientName,
		InvoiceType:     string(invoice.InvoiceType),
		Details:         invoice.Details,
		FeeNGN:          invoice.FeeNGN,
		FeePlusVatNGN:   invoice.FeePlusVatNGN,
		FeeUSD:          invoice.FeeUSD,
		FeePlusVatUSD:   invoice.FeePlusVatUSD,
		VATPercent:      invoice.VATPercent,
		AmountPaid:      invoice.AmountPaid,
		AmountDue:       invoice.AmountDue,
		Status:          string(invoice.Status),
		TransactionDate: invoice.TransactionDate,
		DueDate:         invoice.DueDate,
		Period:          invoice.Period,
		CreatedAt:       invoice.CreatedAt,
		UpdatedAt:       invoice.UpdatedAt,
		Version:         invoice.Version,
	}
}
