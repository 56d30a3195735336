package persistence

import (
	"context"
	"errors"

	"github.com/backoffice/backend/internal/domain/finance"
	"github.com/backoffice/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormWHTRecordRepository implements WHTRecordRepository using GORM
type GormWHTRecordRepository struct {
	db *gorm.DB
}

// NewGormWHTRecordRepository creates a new GormWHTRecordRepository
func NewGormWHTRecordRepository(db *gorm.DB) *GormWHTRecordRepository {
	return &GormWHTRecordRepository{db: db}
}

// FindByIDForTenant finds a withholding record by ID for a tenant
func (r *GormWHTRecordRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*finance.WHTRecord, error) {
	var model models.WHTRecordModel
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

// FindByIDsForTenant finds withholding records by ID list for a tenant
func (r *GormWHTRecordRepository) FindByIDsForTenant(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]finance.WHTRecord, error) {
	var recordModels []models.WHTRecordModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id IN ?", tenantID, ids).
		Find(&recordModels).Error; err != nil {
		return nil, err
	}
	records := make([]finance.WHTRecord, len(recordModels))
	for i, model := range recordModels {
		records[i] = *model.ToDomain()
	}
	return records, nil
}

// FindBySource finds the non-deleted withholding record for a source document
func (r *GormWHTRecordRepository) FindBySource(ctx context.Context, tenantID uuid.UUID, source finance.WHTSource) (*finance.WHTRecord, error) {
	var model models.WHTRecordModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND source_kind = ? AND source_id = ? AND status <> ?",
			tenantID, string(source.Kind), source.ID, finance.WHTStatusDeleted).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForTenant finds withholding records for a tenant with filtering
func (r *GormWHTRecordRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter finance.WHTRecordFilter) ([]finance.WHTRecord, error) {
	var recordModels []models.WHTRecordModel
	query := r.db.WithContext(ctx).Model(&models.WHTRecordModel{}).
		Where("tenant_id = ?", tenantID)
	query = r.applyWHTRecordFilter(query, filter)
	query = applyPagination(query, filter.Filter)

	if err := query.Find(&recordModels).Error; err != nil {
		return nil, err
	}
	records := make([]finance.WHTRecord, len(recordModels))
	for i, model := range recordModels {
		records[i] = *model.ToDomain()
	}
	return records, nil
}

// Save creates or updates a withholding record
func (r *GormWHTRecordRepository) Save(ctx context.Context, record *finance.WHTRecord) error {
	model := models.WHTRecordModelFromDomain(record)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveAll persists a batch of withholding records in one transaction
func (r *GormWHTRecordRepository) SaveAll(ctx context.Context, records []finance.WHTRecord) error {
	if len(records) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range records {
			model := models.WHTRecordModelFromDomain(&records[i])
			if err := tx.Save(model).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// SumForTenant computes withholding totals over a filtered set
func (r *GormWHTRecordRepository) SumForTenant(ctx context.Context, tenantID uuid.UUID, filter finance.WHTRecordFilter) (finance.WHTTotals, error) {
	var row struct {
		TotalTransaction string
		TotalWHT         string
		TotalVAT         string
		TotalDue         string
	}
	query := r.db.WithContext(ctx).Model(&models.WHTRecordModel{}).
		Where("tenant_id = ?", tenantID)
	query = r.applyWHTRecordFilter(query, filter)

	if err := query.Select(
		"COALESCE(SUM(transaction_amount), 0) AS total_transaction, " +
			"COALESCE(SUM(wht_amount), 0) AS total_wht, " +
			"COALESCE(SUM(vat_amount), 0) AS total_vat, " +
			"COALESCE(SUM(amount_due), 0) AS total_due",
	).Scan(&row).Error; err != nil {
		return finance.WHTTotals{}, err
	}

	totals := finance.WHTTotals{}
	var err error
	if totals.TotalTransaction, err = parseDecimal(row.TotalTransaction); err != nil {
		return finance.WHTTotals{}, err
	}
	if totals.TotalWHT, err = parseDecimal(row.TotalWHT); err != nil {
		return finance.WHTTotals{}, err
	}
	if totals.TotalVAT, err = parseDecimal(row.TotalVAT); err != nil {
		return finance.WHTTotals{}, err
	}
	if totals.TotalDue, err = parseDecimal(row.TotalDue); err != nil {
		return finance.WHTTotals{}, err
	}
	return totals, nil
}

func (r *GormWHTRecordRepository) applyWHTRecordFilter(query *gorm.DB, filter finance.WHTRecordFilter) *gorm.DB {
	if !filter.IncludeDeleted {
		query = query.Where("status <> ?", finance.WHTStatusDeleted)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.SourceKind != nil {
		query = query.Where("source_kind = ?", string(*filter.SourceKind))
	}
	if filter.Search != "" {
		query = query.Where("company_name LIKE ?", "%"+filter.Search+"%")
	}
	return applyPeriodFilter(query, filter.PeriodFilter)
}
