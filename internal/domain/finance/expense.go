package finance

import (
	"time"

	"github.com/backoffice/backend/internal/domain/shared"
	"github.com/backoffice/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExpenseStatus represents the status of an expense
type ExpenseStatus string

const (
	ExpenseStatusActive  ExpenseStatus = "ACTIVE"
	ExpenseStatusDeleted ExpenseStatus = "DELETED"
)

// Expense is a company expense. When withholding applies, a WHTRecord is
// kept in sync with it: enabling WHT creates the record, disabling it
// soft-deletes the record, and amount changes propagate to it.
type Expense struct {
	shared.TenantAggregateRoot
	ExpenseNumber string             `json:"expense_number"`
	Payee         string             `json:"payee"`
	Description   string             `json:"description"`
	Amount        decimal.Decimal    `json:"amount"`
	WHTEnabled    bool               `json:"wht_enabled"`
	Status        ExpenseStatus      `json:"status"`
	IncurredAt    time.Time          `json:"incurred_at"`
	Period        valueobject.Period `json:"period"`
}

// NewExpense creates an expense record
func NewExpense(
	tenantID uuid.UUID,
	expenseNumber string,
	payee string,
	description string,
	amount decimal.Decimal,
	whtEnabled bool,
	incurredAt time.Time,
) (*Expense, error) {
	if expenseNumber == "" {
		return nil, shared.NewDomainError("INVALID_EXPENSE_NUMBER", "Expense number cannot be empty")
	}
	if payee == "" {
		return nil, shared.NewDomainError("INVALID_PAYEE", "Payee cannot be empty")
	}
	if amount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Expense amount cannot be negative")
	}
	if incurredAt.IsZero() {
		return nil, shared.NewDomainError("INVALID_DATE", "Incurred date is required")
	}

	return &Expense{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		ExpenseNumber:       expenseNumber,
		Payee:               payee,
		Description:         description,
		Amount:              amount,
		WHTEnabled:          whtEnabled,
		Status:              ExpenseStatusActive,
		IncurredAt:          incurredAt,
		Period:              valueobject.PeriodOf(incurredAt),
	}, nil
}

// Update applies new expense details, restamping the period when the date
// changes. Returns true if the amount changed, so callers know to propagate
// to a linked WHT record.
func (e *Expense) Update(payee, description string, amount decimal.Decimal, incurredAt time.Time) (amountChanged bool, err error) {
	if e.Status == ExpenseStatusDeleted {
		return false, shared.NewDomainError("INVALID_STATE", "Cannot update a deleted expense")
	}
	if amount.IsNegative() {
		return false, shared.NewDomainError("INVALID_AMOUNT", "Expense amount cannot be negative")
	}

	amountChanged = !e.Amount.Equal(amount)
	if payee != "" {
		e.Payee = payee
	}
	e.Description = description
	e.Amount = amount
	if !incurredAt.IsZero() && !incurredAt.Equal(e.IncurredAt) {
		e.IncurredAt = incurredAt
		e.Period = valueobject.PeriodOf(incurredAt)
	}

	e.UpdatedAt = time.Now()
	e.IncrementVersion()
	return amountChanged, nil
}

// SetWHTEnabled flips the withholding toggle. Returns true if the value
// changed.
func (e *Expense) SetWHTEnabled(enabled bool) bool {
	if e.WHTEnabled == enabled {
		return false
	}
	e.WHTEnabled = enabled
	e.UpdatedAt = time.Now()
	e.IncrementVersion()
	return true
}

// SoftDelete marks the expense as deleted
func (e *Expense) SoftDelete() error {
	if e.Status == ExpenseStatusDeleted {
		return shared.NewDomainError("INVALID_STATE", "Expense is already deleted")
	}
	e.Status = ExpenseStatusDeleted
	e.UpdatedAt = time.Now()
	e.IncrementVersion()
	return nil
}
