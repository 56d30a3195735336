package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/backoffice/backend/internal/domain/finance"
	"github.com/backoffice/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormTaxRecordRepository implements TaxRecordRepository using GORM
type GormTaxRecordRepository struct {
	db *gorm.DB
}

// NewGormTaxRecordRepository creates a new GormTaxRecordRepository
func NewGormTaxRecordRepository(db *gorm.DB) *GormTaxRecordRepository {
	return &GormTaxRecordRepository{db: db}
}

// FindByIDForTenant finds a tax record by ID for a tenant
func (r *GormTaxRecordRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*finance.TaxRecord, error) {
	var model models.TaxRecordModel
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

// FindByIDsForTenant finds tax records by ID list for a tenant
func (r *GormTaxRecordRepository) FindByIDsForTenant(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]finance.TaxRecord, error) {
	var recordModels []models.TaxRecordModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id IN ?", tenantID, ids).
		Find(&recordModels).Error; err != nil {
		return nil, err
	}
	records := make([]finance.TaxRecord, len(recordModels))
	for i, model := range recordModels {
		records[i] = *model.ToDomain()
	}
	return records, nil
}

// FindAllForTenant finds tax records for a tenant with filtering
func (r *GormTaxRecordRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter finance.TaxRecordFilter) ([]finance.TaxRecord, error) {
	var recordModels []models.TaxRecordModel
	query := r.db.WithContext(ctx).Model(&models.TaxRecordModel{}).
		Where("tenant_id = ?", tenantID)
	query = r.applyTaxRecordFilter(query, filter)
	query = applyPagination(query, filter.Filter)

	if err := query.Find(&recordModels).Error; err != nil {
		return nil, err
	}
	records := make([]finance.TaxRecord, len(recordModels))
	for i, model := range recordModels {
		records[i] = *model.ToDomain()
	}
	return records, nil
}

// Save creates or updates a tax record
func (r *GormTaxRecordRepository) Save(ctx context.Context, record *finance.TaxRecord) error {
	model := models.TaxRecordModelFromDomain(record)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveAll persists a batch of tax records in one transaction so a batch
// pay either lands fully or not at all
func (r *GormTaxRecordRepository) SaveAll(ctx context.Context, records []finance.TaxRecord) error {
	if len(records) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range records {
			model := models.TaxRecordModelFromDomain(&records[i])
			if err := tx.Save(model).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// DeleteByInvoiceNumber bulk soft-deletes all tax records for an invoice
func (r *GormTaxRecordRepository) DeleteByInvoiceNumber(ctx context.Context, tenantID uuid.UUID, invoiceNumber string) error {
	return r.db.WithContext(ctx).
		Model(&models.TaxRecordModel{}).
		Where("tenant_id = ? AND invoice_number = ? AND status <> ?", tenantID, invoiceNumber, finance.TaxStatusDeleted).
		Updates(map[string]interface{}{
			"status":     string(finance.TaxStatusDeleted),
			"updated_at": time.Now(),
		}).Error
}

// SumDeductedForTenant sums tax deducted over a filtered set
func (r *GormTaxRecordRepository) SumDeductedForTenant(ctx context.Context, tenantID uuid.UUID, filter finance.TaxRecordFilter) (decimal.Decimal, error) {
	var sum string
	query := r.db.WithContext(ctx).Model(&models.TaxRecordModel{}).
		Where("tenant_id = ?", tenantID)
	query = r.applyTaxRecordFilter(query, filter)

	if err := query.Select("COALESCE(SUM(tax_amount_deducted), 0)").Scan(&sum).Error; err != nil {
		return decimal.Zero, err
	}
	return parseDecimal(sum)
}

func (r *GormTaxRecordRepository) applyTaxRecordFilter(query *gorm.DB, filter finance.TaxRecordFilter) *gorm.DB {
	if !filter.IncludeDeleted {
		query = query.Where("status <> ?", finance.TaxStatusDeleted)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.InvoiceNumber != nil {
		query = query.Where("invoice_number = ?", *filter.InvoiceNumber)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("invoice_number LIKE ? OR client_name LIKE ?", like, like)
	}
	return applyPeriodFilter(query, filter.PeriodFilter)
}
