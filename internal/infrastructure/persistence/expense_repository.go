package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/backoffice/backend/internal/domain/finance"
	"github.com/backoffice/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormExpenseRepository implements ExpenseRepository using GORM
type GormExpenseRepository struct {
	db *gorm.DB
}

// NewGormExpenseRepository creates a new GormExpenseRepository
func NewGormExpenseRepository(db *gorm.DB) *GormExpenseRepository {
	return &GormExpenseRepository{db: db}
}

// FindByIDForTenant finds an expense by ID for a tenant
func (r *GormExpenseRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*finance.Expense, error) {
	var model models.ExpenseModel
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

// FindAllForTenant finds expenses for a tenant with filtering
func (r *GormExpenseRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter finance.ExpenseFilter) ([]finance.Expense, error) {
	var expenseModels []models.ExpenseModel
	query := r.db.WithContext(ctx).Model(&models.ExpenseModel{}).
		Where("tenant_id = ?", tenantID)
	if !filter.IncludeDeleted {
		query = query.Where("status <> ?", finance.ExpenseStatusDeleted)
	}
	if filter.WHTEnabled != nil {
		query = query.Where("wht_enabled = ?", *filter.WHTEnabled)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("expense_number LIKE ? OR payee LIKE ?", like, like)
	}
	query = applyPeriodFilter(query, filter.PeriodFilter)
	query = applyPagination(query, filter.Filter)

	if err := query.Find(&expenseModels).Error; err != nil {
		return nil, err
	}
	expenses := make([]finance.Expense, len(expenseModels))
	for i, model := range expenseModels {
		expenses[i] = *model.ToDomain()
	}
	return expenses, nil
}

// Save creates or updates an expense
func (r *GormExpenseRepository) Save(ctx context.Context, expense *finance.Expense) error {
	model := models.ExpenseModelFromDomain(expense)
	return r.db.WithContext(ctx).Save(model).Error
}

// GenerateExpenseNumber generates a unique expense number for a tenant.
// Format: EXP-YYYYMMDD-XXXXX
func (r *GormExpenseRepository) GenerateExpenseNumber(ctx context.Context, tenantID uuid.UUID) (string, error) {
	date := time.Now().Format("20060102")
	prefix := fmt.Sprintf("EXP-%s-", date)

	var maxNumber string
	if err := r.db.WithContext(ctx).
		Model(&models.ExpenseModel{}).
		Select("expense_number").
		Where("tenant_id = ? AND expense_number LIKE ?", tenantID, prefix+"%").
		Order("expense_number DESC").
		Limit(1).
		Pluck("expense_number", &maxNumber).Error; err != nil {
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
