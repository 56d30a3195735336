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

// WHTService provides application-level withholding record operations
type WHTService struct {
	whtRepo finance.WHTRecordRepository
	logger  *zap.Logger
}

// NewWHTService creates a new WHTService
func NewWHTService(whtRepo finance.WHTRecordRepository, logger *zap.Logger) *WHTService {
	return &WHTService{whtRepo: whtRepo, logger: logger}
}

// WHTRecordResponse represents a withholding record in API responses
type WHTRecordResponse struct {
	ID                uuid.UUID          `json:"id"`
	TenantID          uuid.UUID          `json:"tenant_id"`
	Source            finance.WHTSource  `json:"source"`
	CompanyName       string             `json:"company_name"`
	TransactionAmount decimal.Decimal    `json:"transaction_amount"`
	WHTRate           decimal.Decimal    `json:"wht_rate"`
	VATRate           decimal.Decimal    `json:"vat_rate"`
	WHTAmount         decimal.Decimal    `json:"wht_amount"`
	VATAmount         decimal.Decimal    `json:"vat_amount"`
	AmountDue         decimal.Decimal    `json:"amount_due"`
	Status            string             `json:"status"`
	TransactionDate   time.Time          `json:"transaction_date"`
	Period            valueobject.Period `json:"period"`
	CreatedAt         time.Time          `json:"created_at"`
	UpdatedAt         time.Time          `json:"updated_at"`
}

// CreateWHTRecordRequest represents a request to create a withholding
// record. Rates are pointers so an explicit zero survives binding; omitted
// rates take the statutory defaults.
type CreateWHTRecordRequest struct {
	SourceKind        string           `json:"source_kind" binding:"required"`
	SourceID          uuid.UUID        `json:"source_id" binding:"required"`
	CompanyName       string           `json:"company_name" binding:"required"`
	TransactionAmount decimal.Decimal  `json:"transaction_amount"`
	WHTRate           *decimal.Decimal `json:"wht_rate"`
	VATRate           *decimal.Decimal `json:"vat_rate"`
	TransactionDate   time.Time        `json:"transaction_date" binding:"required"`
}

// UpdateWHTRecordRequest represents a partial update to a withholding record
type UpdateWHTRecordRequest struct {
	CompanyName       *string          `json:"company_name"`
	TransactionAmount *decimal.Decimal `json:"transaction_amount"`
	WHTRate           *decimal.Decimal `json:"wht_rate"`
	VATRate           *decimal.Decimal `json:"vat_rate"`
	TransactionDate   *time.Time       `json:"transaction_date"`
}

// WHTRecordListFilter defines filtering options for withholding list queries
type WHTRecordListFilter struct {
	Search      string     `form:"search"`
	Status      string     `form:"status"`
	SourceKind  string     `form:"source_kind"`
	MonthNumber *int       `form:"month"`
	Quarter     string     `form:"quarter"`
	Year        *int       `form:"year"`
	FromDate    *time.Time `form:"from_date"`
	ToDate      *time.Time `form:"to_date"`
	Page        int        `form:"page"`
	PageSize    int        `form:"page_size"`
}

func (f WHTRecordListFilter) toDomain() finance.WHTRecordFilter {
	domainFilter := finance.WHTRecordFilter{
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
		status := finance.WHTStatus(f.Status)
		domainFilter.Status = &status
	}
	if f.SourceKind != "" {
		kind := finance.WHTSourceKind(f.SourceKind)
		domainFilter.SourceKind = &kind
	}
	return domainFilter
}

// CreateWHTRecord creates a withholding record
func (s *WHTService) CreateWHTRecord(ctx context.Context, tenantID uuid.UUID, req CreateWHTRecordRequest) (*WHTRecordResponse, error) {
	source := finance.WHTSource{Kind: finance.WHTSourceKind(req.SourceKind), ID: req.SourceID}
	record, err := finance.NewWHTRecord(
		tenantID,
		source,
		req.CompanyName,
		req.TransactionAmount,
		req.WHTRate,
		req.VATRate,
		req.TransactionDate,
	)
	if err != nil {
		return nil, err
	}
	if err := s.whtRepo.Save(ctx, record); err != nil {
		return nil, err
	}
	return toWHTRecordResponse(record), nil
}

// GetWHTRecordByID gets a withholding record by ID
func (s *WHTService) GetWHTRecordByID(ctx context.Context, tenantID, id uuid.UUID) (*WHTRecordResponse, error) {
	record, err := s.whtRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "WHT record not found")
	}
	return toWHTRecordResponse(record), nil
}

// ListWHTRecords lists withholding records with filtering
func (s *WHTService) ListWHTRecords(ctx context.Context, tenantID uuid.UUID, filter WHTRecordListFilter) ([]WHTRecordResponse, error) {
	records, err := s.whtRepo.FindAllForTenant(ctx, tenantID, filter.toDomain())
	if err != nil {
		return nil, err
	}
	responses := make([]WHTRecordResponse, 0, len(records))
	for i := range records {
		responses = append(responses, *toWHTRecordResponse(&records[i]))
	}
	return responses, nil
}

// GetWHTTotals computes withholding totals over a filtered set
func (s *WHTService) GetWHTTotals(ctx context.Context, tenantID uuid.UUID, filter WHTRecordListFilter) (finance.WHTTotals, error) {
	return s.whtRepo.SumForTenant(ctx, tenantID, filter.toDomain())
}

// UpdateWHTRecord applies a partial update to a withholding record
func (s *WHTService) UpdateWHTRecord(ctx context.Context, tenantID, id uuid.UUID, req UpdateWHTRecordRequest) (*WHTRecordResponse, error) {
	record, err := s.whtRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "WHT record not found")
	}

	update := finance.WHTRecordUpdate{
		CompanyName:       req.CompanyName,
		TransactionAmount: req.TransactionAmount,
		WHTRate:           req.WHTRate,
		VATRate:           req.VATRate,
		TransactionDate:   req.TransactionDate,
	}
	if err := record.ApplyUpdate(update); err != nil {
		return nil, err
	}
	if err := s.whtRepo.Save(ctx, record); err != nil {
		return nil, err
	}
	return toWHTRecordResponse(record), nil
}

// SoftDeleteWHTRecord soft-deletes a withholding record
func (s *WHTService) SoftDeleteWHTRecord(ctx context.Context, tenantID, id uuid.UUID) error {
	record, err := s.whtRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if record == nil {
		return shared.NewDomainError("NOT_FOUND", "WHT record not found")
	}
	record.SoftDelete()
	return s.whtRepo.Save(ctx, record)
}

// PayWHTRecords marks a batch of withholding records as paid. Validation
// happens before any mutation; an already-paid record rejects the whole
// batch with the offending IDs and nothing is written.
func (s *WHTService) PayWHTRecords(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return shared.NewDomainError("VALIDATION", "No WHT record IDs supplied")
	}

	records, err := s.whtRepo.FindByIDsForTenant(ctx, tenantID, ids)
	if err != nil {
		return err
	}
	if len(records) != len(ids) {
		return shared.NewDomainError("NOT_FOUND", "One or more WHT records not found")
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
	if err := s.whtRepo.SaveAll(ctx, records); err != nil {
		return err
	}

	s.logger.Info("wht records paid", zap.Int("count", len(records)))
	return nil
}

func toWHTRecordResponse(record *finance.WHTRecord) *WHTRecordResponse {
	return &WHTRecordResponse{
		ID:                record.ID,
		TenantID:          record.TenantID,
		Source:            record.Source,
		CompanyName:       record.CompanyName,
		TransactionAmount: record.TransactionAmount,
		WHTRate:           record.WHTRate,
		VATRate:           record.VATRate,
		WHTAmount:         record.WHTAmount,
		VATAmount:         record.VATAmount,
		AmountDue:         record.AmountDue,
		Status:            string(record.Status),
		TransactionDate:   record.TransactionDate,
		Period:            record.Period,
		CreatedAt:         record.CreatedAt,
		UpdatedAt:         record.UpdatedAt,
	}
}
