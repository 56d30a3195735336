package persistence

import (
	"context"
	"errors"

	"github.com/backoffice/backend/internal/domain/partner"
	"github.com/backoffice/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormClientRepository implements ClientRepository using GORM
type GormClientRepository struct {
	db *gorm.DB
}

// NewGormClientRepository creates a new GormClientRepository
func NewGormClientRepository(db *gorm.DB) *GormClientRepository {
	return &GormClientRepository{db: db}
}

// FindByIDForTenant finds a client by ID for a specific tenant
func (r *GormClientRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*partner.Client, error) {
	var model models.ClientModel
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

// FindByName finds a non-deleted client by exact name for a tenant
func (r *GormClientRepository) FindByName(ctx context.Context, tenantID uuid.UUID, name string) (*partner.Client, error) {
	var model models.ClientModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND name = ? AND status <> ?", tenantID, name, partner.ClientStatusDeleted).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForTenant finds all clients for a tenant with filtering
func (r *GormClientRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter partner.ClientFilter) ([]partner.Client, error) {
	var clientModels []models.ClientModel
	query := r.db.WithContext(ctx).Model(&models.ClientModel{}).
		Where("tenant_id = ?", tenantID)
	query = r.applyClientFilter(query, filter)
	query = applyPagination(query, filter.Filter)

	if err := query.Find(&clientModels).Error; err != nil {
		return nil, err
	}
	clients := make([]partner.Client, len(clientModels))
	for i, model := range clientModels {
		clients[i] = *model.ToDomain()
	}
	return clients, nil
}

// Save creates or updates a client
func (r *GormClientRepository) Save(ctx context.Context, client *partner.Client) error {
	model := models.ClientModelFromDomain(client)
	return r.db.WithContext(ctx).Save(model).Error
}

// CountForTenant counts clients for a tenant with filtering
func (r *GormClientRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter partner.ClientFilter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.ClientModel{}).
		Where("tenant_id = ?", tenantID)
	query = r.applyClientFilter(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormClientRepository) applyClientFilter(query *gorm.DB, filter partner.ClientFilter) *gorm.DB {
	if !filter.IncludeDeleted {
		query = query.Where("status <> ?", partner.ClientStatusDeleted)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Industry != nil {
		query = query.Where("industry = ?", *filter.Industry)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("name LIKE ? OR email LIKE ?", like, like)
	}
	return query
}
