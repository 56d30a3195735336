package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/backoffice/backend/internal/domain/finance"
	"github.com/backoffice/backend/internal/domain/shared"
	"github.com/backoffice/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormInvoiceRepository implements InvoiceRepository using GORM
type GormInvoiceRepository struct {
	db *gorm.DB
}

// NewGormInvoiceRepository creates a new GormInvoiceRepository
func NewGormInvoiceRepository(db *gorm.DB) *GormInvoiceRepository {
	return &GormInvoiceRepository{db: db}
}

// FindByIDForTenant finds an invoice by ID for a specific tenant
func (r *GormInvoiceRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*finance.Invoice, error) {
	var model models.InvoiceModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByInvoiceNumber finds by invoice number for a tenant
func (r *GormInvoiceRepository) FindByInvoiceNumber(ctx context.Context, tenantID uuid.UUID, invoiceNumber string) (*finance.Invoice, error) {
	var model models.InvoiceModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND invoice_number = ?", tenantID, invoiceNumber).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForTenant finds all invoices for a tenant with filtering
func (r *GormInvoiceRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter finance.InvoiceFilter) ([]finance.Invoice, error) {
	var invoiceModels []models.InvoiceModel
	query := r.db.WithContext(ctx).Model(&models.InvoiceModel{}).
		Where("tenant_id = ?", tenantID)
	query = r.applyInvoiceFilter(query, filter)
	query = applyPagination(query, filter.Filter)

	if err := query.Find(&invoiceModels).Error; err != nil {
		return nil, err
	}
	invoices := make([]finance.Invoice, len(invoiceModels))
	for i, model := range invoiceModels {
		invoices[i] = *model.ToDomain()
	}
	return invoices, nil
}

// FindByClient finds all non-deleted invoices for a client. This is the
// set the client totals recalculation scans, so it must never be paginated
// or otherwise truncated.
func (r *GormInvoiceRepository) FindByClient(ctx context.Context, tenantID, clientID uuid.UUID) ([]finance.Invoice, error) {
	var invoiceModels []models.InvoiceModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND client_id = ? AND status <> ?", tenantID, clientID, finance.InvoiceStatusDeleted).
		Order("created_at ASC").
		Find(&invoiceModels).Error; err != nil {
		return nil, err
	}
	invoices := make([]finance.Invoice, len(invoiceModels))
	for i, model := range invoiceModels {
		invoices[i] = *model.ToDomain()
	}
	return invoices, nil
}

// FindOverdueCandidates finds unpaid invoices across all tenants last
// touched at or before the cutoff. Invoices already overdue are excluded.
func (r *GormInvoiceRepository) FindOverdueCandidates(ctx context.Context, cutoff time.Time) ([]finance.Invoice, error) {
	var invoiceModels []models.InvoiceModel
	if err := r.db.WithContext(ctx).
		Where("status IN ? AND updated_at <= ?",
			[]finance.InvoiceStatus{finance.InvoiceStatusPending, finance.InvoiceStatusUnpaid}, cutoff).
		Order("updated_at ASC").
		Find(&invoiceModels).Error; err != nil {
		return nil, err
	}
	invoices := make([]finance.Invoice, len(invoiceModels))
	for i, model := range invoiceModels {
		invoices[i] = *model.ToDomain()
	}
	return invoices, nil
}

// Save creates or updates an invoice
func (r *GormInvoiceRepository) Save(ctx context.Context, invoice *finance.Invoice) error {
	model := models.InvoiceModelFromDomain(invoice)
	return r.db.WithContext(ctx).Save(model).Error
}

// HardDelete physically removes an invoice for a tenant
func (r *GormInvoiceRepository) HardDelete(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.InvoiceModel{}, "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountForTenant counts invoices for a tenant with filtering
func (r *GormInvoiceRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter finance.InvoiceFilter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.InvoiceModel{}).
		Where("tenant_id = ?", tenantID)
	query = r.applyInvoiceFilter(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// SumForTenant computes invoice totals over a filtered set
func (r *GormInvoiceRepository) SumForTenant(ctx context.Context, tenantID uuid.UUID, filter finance.InvoiceFilter) (finance.InvoiceTotals, error) {
	var row struct {
		TotalFeePlusVatNGN string
		TotalFeePlusVatUSD string
		TotalPaid          string
		TotalDue           string
	}
	query := r.db.WithContext(ctx).Model(&models.InvoiceModel{}).
		Where("tenant_id = ?", tenantID)
	query = r.applyInvoiceFilter(query, filter)

	if err := query.Select(
		"COALESCE(SUM(fee_plus_vat_ngn), 0) AS total_fee_plus_vat_ngn, " +
			"COALESCE(SUM(fee_plus_vat_usd), 0) AS total_fee_plus_vat_usd, " +
			"COALESCE(SUM(amount_paid), 0) AS total_paid, " +
			"COALESCE(SUM(amount_due), 0) AS total_due",
	).Scan(&row).Error; err != nil {
		return finance.InvoiceTotals{}, err
	}

	totals := finance.InvoiceTotals{}
	var err error
	if totals.TotalFeePlusVatNGN, err = parseDecimal(row.TotalFeePlusVatNGN); err != nil {
		return finance.InvoiceTotals{}, err
	}
	if totals.TotalFeePlusVatUSD, err = parseDecimal(row.TotalFeePlusVatUSD); err != nil {
		return finance.InvoiceTotals{}, err
	}
	if totals.TotalPaid, err = parseDecimal(row.TotalPaid); err != nil {
		return finance.InvoiceTotals{}, err
	}
	if totals.TotalDue, err = parseDecimal(row.TotalDue); err != nil {
		return finance.InvoiceTotals{}, err
	}
	return totals, nil
}

// GenerateInvoiceNumber generates a unique invoice number for a tenant.
// Format: INV-YYYYMMDD-XXXXX
func (r *GormInvoiceRepository) GenerateInvoiceNumber(ctx context.Context, tenantID uuid.UUID) (string, error) {
	return r.generateNumber(ctx, tenantID, "INV", "invoice_number")
}

// GenerateReferenceNumber generates a reference number for a tenant.
// Format: REF-YYYYMMDD-XXXXX
func (r *GormInvoiceRepository) GenerateReferenceNumber(ctx context.Context, tenantID uuid.UUID) (string, error) {
	return r.generateNumber(ctx, tenantID, "REF", "reference_number")
}

func (r *GormInvoiceRepository) generateNumber(ctx context.Context, tenantID uuid.UUID, kind, column string) (string, error) {
	date := time.Now().Format("20060102")
	prefix := fmt.Sprintf("%s-%s-", kind, date)

	var maxNumber string
	if err := r.db.WithContext(ctx).
		Model(&models.InvoiceModel{}).
		Select(column).
		Where("tenant_id = ? AND "+column+" LIKE ?", tenantID, prefix+"%").
		Order(column + " DESC").
		Limit(1).
		Pluck(column, &maxNumber).Error; err != nil {
		return "", err
	}

	var nextNum int
	if maxNumber != "" {
		parts := strings.Split(maxNumber, "-")
		if len(parts) == 3 {
			fmt.Sscanf(parts[2], "%d", &nextNum)
		}
	}
	nextNum++

	return fmt.Sprintf("%s%05d", prefix, nextNum), nil
}

func (r *GormInvoiceRepository) applyInvoiceFilter(query *gorm.DB, filter finance.InvoiceFilter) *gorm.DB {
	if !filter.IncludeDeleted {
		query = query.Where("status <> ?", finance.InvoiceStatusDeleted)
	}
	if filter.ClientID != nil {
		query = query.Where("client_id = ?", *filter.ClientID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.InvoiceType != nil {
		query = query.Where("invoice_type = ?", *filter.InvoiceType)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("invoice_number LIKE ? OR client_name LIKE ?", like, like)
	}
	return applyPeriodFilter(query, filter.PeriodFilter)
}
