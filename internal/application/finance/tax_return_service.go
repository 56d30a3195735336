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

// TaxReturnService provides application-level tax return operations
type TaxReturnService struct {
	taxReturnRepo finance.TaxReturnRepository
	logger        *zap.Logger
}

// NewTaxReturnService creates a new TaxReturnService
func NewTaxReturnService(taxReturnRepo finance.TaxReturnRepository, logger *zap.Logger) *TaxReturnService {
	return &TaxReturnService{taxReturnRepo: taxReturnRepo, logger: logger}
}

// TaxReturnResponse represents a tax return in API responses
type TaxReturnResponse struct {
	ID                uuid.UUID          `json:"id"`
	TenantID          uuid.UUID          `json:"tenant_id"`
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

// CreateTaxReturnRequest represents a request to create a tax return.
// The VAT rate is not accepted; it is always the fixed statutory rate.
type CreateTaxReturnRequest struct {
	CompanyName       string           `json:"company_name" binding:"required"`
	TransactionAmount decimal.Decimal  `json:"transaction_amount"`
	WHTRate           *decimal.Decimal `json:"wht_rate"`
	TransactionDate   time.Time        `json:"transaction_date" binding:"required"`
}

// UpdateTaxReturnRequest represents a partial update to a tax return
type UpdateTaxReturnRequest struct {
	CompanyName       *string          `json:"company_name"`
	TransactionAmount *decimal.Decimal `json:"transaction_amount"`
	WHTRate           *decimal.Decimal `json:"wht_rate"`
	TransactionDate   *time.Time       `json:"transaction_date"`
}

// TaxReturnListFilter defines filtering options for tax return list queries
type TaxReturnListFilter struct {
	Search      string     `form:"search"`
	Status      string     `form:"status"`
	MonthNumber *int       `form:"month"`
	Quarter     string     `form:"quarter"`
	Year        *int       `form:"year"`
	FromDate    *time.Time `form:"from_date"`
	ToDate      *time.Time `form:"to_date"`
	Page        int        `form:"page"`
	PageSize    int        `form:"page_size"`
}

func (f TaxReturnListFilter) toDomain() finance.TaxReturnFilter {
	domainFilter := finance.TaxReturnFilter{
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
	return domainFilter
}

// CreateTaxReturn creates a tax return line
func (s *TaxReturnService) CreateTaxReturn(ctx context.Context, tenantID uuid.UUID, req CreateTaxReturnRequest) (*TaxReturnResponse, error) {
	taxReturn, err := finance.NewTaxReturn(
		tenantID,
		req.CompanyName,
		req.TransactionAmount,
		req.WHTRate,
		req.TransactionDate,
	)
	if err != nil {
		return nil, err
	}
	if err := s.taxReturnRepo.Save(ctx, taxReturn); err != nil {
		return nil, err
	}
	return toTaxReturnResponse(taxReturn), nil
}

// GetTaxReturnByID gets a tax return by ID
func (s *TaxReturnService) GetTaxReturnByID(ctx context.Context, tenantID, id uuid.UUID) (*TaxReturnResponse, error) {
	taxReturn, err := s.taxReturnRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if taxReturn == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Tax return not found")
	}
	return toTaxReturnResponse(taxReturn), nil
}

// ListTaxReturns lists tax returns with filtering
func (s *TaxReturnService) ListTaxReturns(ctx context.Context, tenantID uuid.UUID, filter TaxReturnListFilter) ([]TaxReturnResponse, error) {
	returns, err := s.taxReturnRepo.FindAllForTenant(ctx, tenantID, filter.toDomain())
	if err != nil {
		return nil, err
	}
	responses := make([]TaxReturnResponse, 0, len(returns))
	for i := range returns {
		responses = append(responses, *toTaxReturnResponse(&returns[i]))
	}
	return responses, nil
}

// UpdateTaxReturn applies a partial update to a tax return
func (s *TaxReturnService) UpdateTaxReturn(ctx context.Context, tenantID, id uuid.UUID, req UpdateTaxReturnRequest) (*TaxReturnResponse, error) {
	taxReturn, err := s.taxReturnRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if taxReturn == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Tax return not found")
	}

	update := finance.TaxReturnUpdate{
		CompanyName:       req.CompanyName,
		TransactionAmount: req.TransactionAmount,
		WHTRate:           req.WHTRate,
		TransactionDate:   req.TransactionDate,
	}
	if err := taxReturn.ApplyUpdate(update); err != nil {
		return nil, err
	}
	if err := s.taxReturnRepo.Save(ctx, taxReturn); err != nil {
		return nil, err
	}
	return toTaxReturnResponse(taxReturn), nil
}

// SoftDeleteTaxReturn soft-deletes a tax return
func (s *TaxReturnService) SoftDeleteTaxReturn(ctx context.Context, tenantID, id uuid.UUID) error {
	taxReturn, err := s.taxReturnRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if taxReturn == nil {
		return shared.NewDomainError("NOT_FOUND", "Tax return not found")
	}
	taxReturn.SoftDelete()
	return s.taxReturnRepo.Save(ctx, taxReturn)
}

func toTaxReturnResponse(taxReturn *finance.TaxReturn) *TaxReturnResponse {
	return &TaxReturnResponse{
		ID:                taxReturn.ID,
		TenantID:          taxReturn.TenantID,
		CompanyName:       taxReturn.CompanyName,
		TransactionAmount: taxReturn.TransactionAmount,
		WHTRate:           taxReturn.WHTRate,
		VATRate:           taxReturn.VATRate,
		WHTAmount:         taxReturn.WHTAmount,
		VATAmount:         taxReturn.VATAmount,
		AmountDue:         taxReturn.AmountDue,
		Status:            string(taxReturn.Status),
		TransactionDate:   taxReturn.TransactionDate,
		Period:            taxReturn.Period,
		CreatedAt:         taxReturn.CreatedAt,
		UpdatedAt:         taxReturn.UpdatedAt,
	}
}
