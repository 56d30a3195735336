package persistence

import (
	"context"
	"errors"

	"github.com/backoffice/backend/internal/domain/finance"
	"github.com/backoffice/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormTaxReturnRepository implements TaxReturnRepository using GORM
type GormTaxReturnRepository struct {
	db *gorm.DB
}

// NewGormTaxReturnRepository creates a new GormTaxReturnRepository
func NewGormTaxReturnRepository(db *gorm.DB) *GormTaxReturnRepository {
	return &GormTaxReturnRepository{db: db}
}

// FindByIDForTenant finds a tax return by ID for a tenant
func (r *GormTaxReturnRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*finance.TaxReturn, error) {
	var model models.TaxReturnModel
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

// FindAllForTenant finds tax returns for a tenant with filtering
func (r *GormTaxReturnRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter finance.TaxReturnFilter) ([]finance.TaxReturn, error) {
	var returnModels []models.TaxReturnModel
	query := r.db.WithContext(ctx).Model(&models.TaxReturnModel{}).
		Where("tenant_id = ?", tenantID)
	if !filter.IncludeDeleted {
		query = query.Where("status <> ?", finance.WHTStatusDeleted)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Search != "" {
		query = query.Where("company_name LIKE ?", "%"+filter.Search+"%")
	}
	query = applyPeriodFilter(query, filter.PeriodFilter)
	query = applyPagination(query, filter.Filter)

	if err := query.Find(&returnModels).Error; err != nil {
		return nil, err
	}
	returns := make([]finance.TaxReturn, len(returnModels))
	for i, model := range returnModels {
		returns[i] = *model.ToDomain()
	}
	return returns, nil
}

// Save creates or updates a tax return
func (r *GormTaxReturnRepository) Save(ctx context.Context, taxReturn *finance.TaxReturn) error {
	model := models.TaxReturnModelFromDomain(taxReturn)
	return r.db.WithContext(ctx).Save(model).Error
}
