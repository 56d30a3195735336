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

// ExpenseService provides application-level expense operations. An expense
// with withholding enabled owns exactly one live WHT record; the service
// keeps the two in sync through every mutation.
type ExpenseService struct {
	expenseRepo finance.ExpenseRepository
	whtRepo     finance.WHTRecordRepository
	logger      *zap.Logger
}

// NewExpenseService creates a new ExpenseService
func NewExpenseService(
	expenseRepo finance.ExpenseRepository,
	whtRepo finance.WHTRecordRepository,
	logger *zap.Logger,
) *ExpenseService {
	return &ExpenseService{
		expenseRepo: expenseRepo,
		whtRepo:     whtRepo,
		logger:      logger,
	}
}

// ExpenseResponse represents an expense in API responses
type ExpenseResponse struct {
	ID            uuid.UUID          `json:"id"`
	TenantID      uuid.UUID          `json:"tenant_id"`
	ExpenseNumber string             `json:"expense_number"`
	Payee         string             `json:"payee"`
	Description   string             `json:"description"`
	Amount        decimal.Decimal    `json:"amount"`
	WHTEnabled    bool               `json:"wht_enabled"`
	Status        string             `json:"status"`
	IncurredAt    time.Time          `json:"incurred_at"`
	Period        valueobject.Period `json:"period"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

// CreateExpenseRequest represents a request to create an expense
type CreateExpenseRequest struct {
	Payee       string          `json:"payee" binding:"required"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	WHTEnabled  bool            `json:"wht_enabled"`
	IncurredAt  time.Time       `json:"incurred_at" binding:"required"`
}

// UpdateExpenseRequest represents a request to update an expense
type UpdateExpenseRequest struct {
	Payee       string          `json:"payee"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	IncurredAt  time.Time       `json:"incurred_at"`
}

// ExpenseListFilter defines filtering options for expense list queries
type ExpenseListFilter struct {
	Search      string     `form:"search"`
	WHTEnabled  *bool      `form:"wht_enabled"`
	MonthNumber *int       `form:"month"`
	Quarter     string     `form:"quarter"`
	Year        *int       `form:"year"`
	FromDate    *time.Time `form:"from_date"`
	ToDate      *time.Time `form:"to_date"`
	Page        int        `form:"page"`
	PageSize    int        `form:"page_size"`
}

func (f ExpenseListFilter) toDomain() finance.ExpenseFilter {
	domainFilter := finance.ExpenseFilter{
		Filter: shared.Filter{
			Page:     f.Page,
			PageSize: f.PageSize,
			Search:   f.Search,
		},
		WHTEnabled: f.WHTEnabled,
	}
	domainFilter.MonthNumber = f.MonthNumber
	domainFilter.Year = f.Year
	domainFilter.FromDate = f.FromDate
	domainFilter.ToDate = f.ToDate
	if f.Quarter != "" {
		q := valueobject.Quarter(f.Quarter)
		domainFilter.Quarter = &q
	}
	return domainFilter
}

// CreateExpense creates an expense. When withholding is enabled a WHT
// record is created alongside it at the default statutory rates.
func (s *ExpenseService) CreateExpense(ctx context.Context, tenantID uuid.UUID, req CreateExpenseRequest) (*ExpenseResponse, error) {
	expenseNumber, err := s.expenseRepo.GenerateExpenseNumber(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	expense, err := finance.NewExpense(
		tenantID,
		expenseNumber,
		req.Payee,
		req.Description,
		req.Amount,
		req.WHTEnabled,
		req.IncurredAt,
	)
	if err != nil {
		return nil, err
	}
	if err := s.expenseRepo.Save(ctx, expense); err != nil {
		return nil, err
	}

	if expense.WHTEnabled {
		if err := s.createLinkedWHTRecord(ctx, expense); err != nil {
			return nil, err
		}
	}

	s.logger.Info("expense created", zap.String("expense_number", expense.ExpenseNumber))
	return toExpenseResponse(expense), nil
}

// GetExpenseByID gets an expense by ID
func (s *ExpenseService) GetExpenseByID(ctx context.Context, tenantID, id uuid.UUID) (*ExpenseResponse, error) {
	expense, err := s.expenseRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if expense == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Expense not found")
	}
	return toExpenseResponse(expense), nil
}

// ListExpenses lists expenses with filtering
func (s *ExpenseService) ListExpenses(ctx context.Context, tenantID uuid.UUID, filter ExpenseListFilter) ([]ExpenseResponse, error) {
	expenses, err := s.expenseRepo.FindAllForTenant(ctx, tenantID, filter.toDomain())
	if err != nil {
		return nil, err
	}
	responses := make([]ExpenseResponse, 0, len(expenses))
	for i := range expenses {
		responses = append(responses, *toExpenseResponse(&expenses[i]))
	}
	return responses, nil
}

// UpdateExpense updates an expense. An amount change propagates to the
// linked WHT record so its derived fields are recomputed.
func (s *ExpenseService) UpdateExpense(ctx context.Context, tenantID, id uuid.UUID, req UpdateExpenseRequest) (*ExpenseResponse, error) {
	expense, err := s.expenseRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if expense == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Expense not found")
	}

	amountChanged, err := expense.Update(req.Payee, req.Description, req.Amount, req.IncurredAt)
	if err != nil {
		return nil, err
	}
	if err := s.expenseRepo.Save(ctx, expense); err != nil {
		return nil, err
	}

	if amountChanged && expense.WHTEnabled {
		record, err := s.whtRepo.FindBySource(ctx, tenantID, finance.ExpenseSource(expense.ID))
		if err != nil {
			return nil, err
		}
		if record != nil {
			amount := expense.Amount
			if err := record.ApplyUpdate(finance.WHTRecordUpdate{TransactionAmount: &amount}); err != nil {
				return nil, err
			}
			if err := s.whtRepo.Save(ctx, record); err != nil {
				return nil, err
			}
		}
	}

	return toExpenseResponse(expense), nil
}

// SetExpenseWHT flips withholding on or off for an expense. Enabling
// creates the linked WHT record; disabling soft-deletes it.
func (s *ExpenseService) SetExpenseWHT(ctx context.Context, tenantID, id uuid.UUID, enabled bool) (*ExpenseResponse, error) {
	expense, err := s.expenseRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if expense == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Expense not found")
	}

	if !expense.SetWHTEnabled(enabled) {
		return toExpenseResponse(expense), nil
	}
	if err := s.expenseRepo.Save(ctx, expense); err != nil {
		return nil, err
	}

	if enabled {
		if err := s.createLinkedWHTRecord(ctx, expense); err != nil {
			return nil, err
		}
	} else {
		record, err := s.whtRepo.FindBySource(ctx, tenantID, finance.ExpenseSource(expense.ID))
		if err != nil {
			return nil, err
		}
		if record != nil {
			record.SoftDelete()
			if err := s.whtRepo.Save(ctx, record); err != nil {
				return nil, err
			}
		}
	}

	return toExpenseResponse(expense), nil
}

// SoftDeleteExpense soft-deletes an expense and its linked WHT record
func (s *ExpenseService) SoftDeleteExpense(ctx context.Context, tenantID, id uuid.UUID) error {
	expense, err := s.expenseRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if expense == nil {
		return shared.NewDomainError("NOT_FOUND", "Expense not found")
	}

	if err := expense.SoftDelete(); err != nil {
		return err
	}
	if err := s.expenseRepo.Save(ctx, expense); err != nil {
		return err
	}

	record, err := s.whtRepo.FindBySource(ctx, tenantID, finance.ExpenseSource(expense.ID))
	if err != nil {
		return err
	}
	if record != nil {
		record.SoftDelete()
		if err := s.whtRepo.Save(ctx, record); err != nil {
			return err
		}
	}

	s.logger.Info("expense soft-deleted", zap.String("expense_number", expense.ExpenseNumber))
	return nil
}

func (s *ExpenseService) createLinkedWHTRecord(ctx context.Context, expense *finance.Expense) error {
	record, err := finance.NewWHTRecord(
		expense.TenantID,
		finance.ExpenseSource(expense.ID),
		expense.Payee,
		expense.Amount,
		nil, // statutory defaults
		nil,
		expense.IncurredAt,
	)
	if err != nil {
		return err
	}
	return s.whtRepo.Save(ctx, record)
}

func toExpenseResponse(expense *finance.Expense) *ExpenseResponse {
	return &ExpenseResponse{
		ID:            expense.ID,
		TenantID:      expense.TenantID,
		ExpenseNumber: expense.ExpenseNumber,
		Payee:         expense.Payee,
		Description:   expense.Description,
		Amount:        expense.Amount,
		WHTEnabled:    expense.WHTEnabled,
		Status:        string(expense.Status),
		IncurredAt:    expense.IncurredAt,
		Period:        expense.Period,
		CreatedAt:     expense.CreatedAt,
		UpdatedAt:     expense.UpdatedAt,
	}
}
