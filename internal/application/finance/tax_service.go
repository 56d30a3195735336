package finance

import (
	"context"
	"time"

	"github.com/backoffice/backend/internal/domain/finance"
	"github.com/backoffice/backend/internal/domain/shared"
	"github.com/backoffice/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// TaxService provides application-level tax record operations
type TaxService struct {
	taxRepo finance.TaxRecordRepository
	logger  *zap.Logger
}

// NewTaxService creates a new TaxService
func NewTaxService(taxRepo finance.TaxRecordRepository, logger *zap.Logger) *TaxService {
	return &TaxService{taxRepo: taxRepo, logger: logger}
}

// TaxRecordResponse represents a tax record in API responses
type TaxRecordResponse struct {
	ID                uuid.UUID          `json:"id"`
	TenantID          uuid.UUID          `json:"tenant_id"`
	InvoiceID         uuid.UUID          `json:"invoice_id"`
	InvoiceNumber     string             `json:"invoice_number"`
	ClientName        string             `json:"client_name"`
	TotalFee          decimal.Decimal    `json:"total_fee"`
	RatePercent       decimal.Decimal    `json:"rate_percent"`
	TaxAmountDeducted decimal.Decimal    `json:"tax_amount_deducted"`
	NetAmount         decimal.Decimal    `json:"net_amount"`
	Status            string             `json:"status"`
	TransactionDate   time.Time          `json:"transaction_date"`
	Period            valueobject.Period `json:"period"`
	CreatedAt         time.Time          `json:"created_at"`
	UpdatedAt         time.Time          `json:"updated_at"`
}

// TaxRecordListFilter defines filtering options for tax record list queries
type TaxRecordListFilter struct {
	Search        string     `form:"search"`
	Status        string     `form:"status"`
	InvoiceNumber string     `form:"invoice_number"`
	MonthNumber   *int       `form:"month"`
	Quarter       string     `form:"quarter"`
	Year          *int       `form:"year"`
	FromDate      *time.Time `form:"from_date"`
	ToDate        *time.Time `form:"to_date"`
	Page          int        `form:"page"`
	PageSize      int        `form:"page_size"`
}

func (f TaxRecordListFilter) toDomain() finance.TaxRecordFilter {
	domainFilter := finance.TaxRecordFilter{
		Filter: shared.Filter{
			Page:     f.Page,
			PageSize: f.PageSize,
			Search:   f.Search,
		},
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
		status := finance.TaxStatus(f.Status)
		domainFilter.Status = &status
	}
	if f.InvoiceNumber != "" {
		domainFilter.InvoiceNumber = &f.InvoiceNumber
	}
	return domainFilter
}

// GetTaxRecordByID gets a tax record by ID
func (s *TaxService) GetTaxRecordByID(ctx context.Context, tenantID, id uuid.UUID) (*TaxRecordResponse, error) {
	record, err := s.taxRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Tax record not found")
	}
	return toTaxRecordResponse(record), nil
}

// ListTaxRecords lists tax records with filtering
func (s *TaxService) ListTaxRecords(ctx context.Context, tenantID uuid.UUID, filter TaxRecordListFilter) ([]TaxRecordResponse, error) {
	records, err := s.taxRepo.FindAllForTenant(ctx, tenantID, filter.toDomain())
	if err != nil {
		return nil, err
	}
	responses := make([]TaxRecordResponse, 0, len(records))
	for i := range records {
		responses = append(responses, *toTaxRecordResponse(&records[i]))
	}
	return responses, nil
}

// SumTaxDeducted sums the tax deducted over a filtered set
func (s *TaxService) SumTaxDeducted(ctx context.Context, tenantID uuid.UUID, filter TaxRecordListFilter) (decimal.Decimal, error) {
	return s.taxRepo.SumDeductedForTenant(ctx, tenantID, filter.toDomain())
}

// PayTaxRecords marks a batch of tax records as paid. The batch is all or
// nothing: every record is validated before any is mutated, and if any of
// them is already paid the whole batch is rejected with the offending IDs.
func (s *TaxService) PayTaxRecords(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return shared.NewDomainError("VALIDATION", "No tax record IDs supplied")
	}

	records, err := s.taxRepo.FindByIDsForTenant(ctx, tenantID, ids)
	if err != nil {
		return err
	}
	if len(records) != len(ids) {
		return shared.NewDomainError("NOT_FOUND", "One or more tax records not found")
	}

	var alreadyPaid []string
	for i := range records {
		if records[i].IsPaid() {
			alreadyPaid = append(alreadyPaid, records[i].ID.String())
		}
	}
	if len(alreadyPaid) > 0 {
		return shared.NewAlreadyPaidError(alreadyPaid)
	}

	for i := range records {
		if err := records[i].MarkPaid(); err != nil {
			return err
		}
	}
	if err := s.taxRepo.SaveAll(ctx, records); err != nil {
		return err
	}

	s.logger.Info("tax records paid", zap.Int("count", len(records)))
	return nil
}

func toTaxRecordResponse(record *finance.TaxRecord) *TaxRecordResponse {
	return &TaxRecordResponse{
		ID:                record.ID,
		TenantID:          record.TenantID,
		InvoiceID:         record.InvoiceID,
		InvoiceNumber:     record.InvoiceNumber,
		ClientName:        record.ClientName,
		TotalFee:          record.TotalFee,
		RatePercent:       record.RatePercent,
		TaxAmountDeducted: record.TaxAmountDeducted,
		NetAmount:         record.NetAmount,
		Status:            record.Status.String(),
		TransactionDate:   record.TransactionDate,
		Period:            record.Period,
		CreatedAt:         record.CreatedAt,
		UpdatedAt:         record.UpdatedAt,
	}
}
