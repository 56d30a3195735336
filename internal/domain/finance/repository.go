package finance

import (
	"context"
	"time"

	"github.com/backoffice/backend/internal/domain/shared"
	"github.com/backoffice/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PeriodFilter narrows a query to a reporting bucket. Fields combine with
// AND; nil fields are ignored.
type PeriodFilter struct {
	MonthNumber *int
	Quarter     *valueobject.Quarter
	Year        *int
	FromDate    *time.Time
	ToDate      *time.Time
}

// InvoiceFilter defines filtering options for invoice queries
type InvoiceFilter struct {
	shared.Filter
	PeriodFilter
	ClientID       *uuid.UUID
	Status         *InvoiceStatus
	InvoiceType    *InvoiceType
	IncludeDeleted bool // Deleted invoices are hidden from listings by default
}

// InvoiceTotals are the summed amounts over an invoice query, used by the
// report endpoints.
type InvoiceTotals struct {
	TotalFeePlusVatNGN decimal.Decimal
	TotalFeePlusVatUSD decimal.Decimal
	TotalPaid          decimal.Decimal
	TotalDue           decimal.Decimal
}

// InvoiceRepository defines the interface for invoice persistence
type InvoiceRepository interface {
	// FindByIDForTenant finds an invoice by ID for a specific tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Invoice, error)

	// FindByInvoiceNumber finds by invoice number for a tenant
	FindByInvoiceNumber(ctx context.Context, tenantID uuid.UUID, invoiceNumber string) (*Invoice, error)

	// FindAllForTenant finds all invoices for a tenant with filtering
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter InvoiceFilter) ([]Invoice, error)

	// FindByClient finds all non-deleted invoices for a client. This is the
	// authoritative set the client aggregate recalculator scans.
	FindByClient(ctx context.Context, tenantID, clientID uuid.UUID) ([]Invoice, error)

	// FindOverdueCandidates finds unpaid invoices across all tenants whose
	// last update is at or before the cutoff. Already-overdue invoices are
	// excluded, which makes the sweep idempotent within a run.
	FindOverdueCandidates(ctx context.Context, cutoff time.Time) ([]Invoice, error)

	// Save creates or updates an invoice
	Save(ctx context.Context, invoice *Invoice) error

	// HardDelete physically removes an invoice for a tenant
	HardDelete(ctx context.Context, tenantID, id uuid.UUID) error

	// CountForTenant counts invoices for a tenant with filtering
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter InvoiceFilter) (int64, error)

	// SumForTenant computes invoice totals over a filtered set
	SumForTenant(ctx context.Context, tenantID uuid.UUID, filter InvoiceFilter) (InvoiceTotals, error)

	// GenerateInvoiceNumber generates a unique invoice number for a tenant
	GenerateInvoiceNumber(ctx context.Context, tenantID uuid.UUID) (string, error)

	// GenerateReferenceNumber generates a reference number for a tenant
	GenerateReferenceNumber(ctx context.Context, tenantID uuid.UUID) (string, error)
}

// TaxRecordFilter defines filtering options for tax record queries
type TaxRecordFilter struct {
	shared.Filter
	PeriodFilter
	Status         *TaxStatus
	InvoiceNumber  *string
	IncludeDeleted bool
}

// TaxRecordRepository defines the interface for tax record persistence
type TaxRecordRepository interface {
	// FindByIDForTenant finds a tax record by ID for a tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*TaxRecord, error)

	// FindByIDsForTenant finds tax records by ID list for a tenant
	FindByIDsForTenant(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]TaxRecord, error)

	// FindAllForTenant finds tax records for a tenant with filtering
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter TaxRecordFilter) ([]TaxRecord, error)

	// Save creates or updates a tax record
	Save(ctx context.Context, record *TaxRecord) error

	// SaveAll persists a batch of tax records
	SaveAll(ctx context.Context, records []TaxRecord) error

	// DeleteByInvoiceNumber bulk soft-deletes all tax records for an
	// invoice, used when the parent invoice is soft-deleted
	DeleteByInvoiceNumber(ctx context.Context, tenantID uuid.UUID, invoiceNumber string) error

	// SumDeductedForTenant sums tax deducted over a filtered set
	SumDeductedForTenant(ctx context.Context, tenantID uuid.UUID, filter TaxRecordFilter) (decimal.Decimal, error)
}

// WHTRecordFilter defines filtering options for withholding record queries
type WHTRecordFilter struct {
	shared.Filter
	PeriodFilter
	Status         *WHTStatus
	SourceKind     *WHTSourceKind
	IncludeDeleted bool
}

// WHTTotals are the summed derived amounts over a withholding query
type WHTTotals struct {
	TotalTransaction decimal.Decimal
	TotalWHT         decimal.Decimal
	TotalVAT         decimal.Decimal
	TotalDue         decimal.Decimal
}

// WHTRecordRepository defines the interface for withholding record persistence
type WHTRecordRepository interface {
	// FindByIDForTenant finds a withholding record by ID for a tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*WHTRecord, error)

	// FindByIDsForTenant finds withholding records by ID list for a tenant
	FindByIDsForTenant(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]WHTRecord, error)

	// FindBySource finds the non-deleted withholding record for a source document
	FindBySource(ctx context.Context, tenantID uuid.UUID, source WHTSource) (*WHTRecord, error)

	// FindAllForTenant finds withholding records for a tenant with filtering
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter WHTRecordFilter) ([]WHTRecord, error)

	// Save creates or updates a withholding record
	Save(ctx context.Context, record *WHTRecord) error

	// SaveAll persists a batch of withholding records
	SaveAll(ctx context.Context, records []WHTRecord) error

	// SumForTenant computes withholding totals over a filtered set
	SumForTenant(ctx context.Context, tenantID uuid.UUID, filter WHTRecordFilter) (WHTTotals, error)
}

// TaxReturnFilter defines filtering options for tax return queries
type TaxReturnFilter struct {
	shared.Filter
	PeriodFilter
	Status         *WHTStatus
	IncludeDeleted bool
}

// TaxReturnRepository defines the interface for tax return persistence
type TaxReturnRepository interface {
	// FindByIDForTenant finds a tax return by ID for a tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*TaxReturn, error)

	// FindAllForTenant finds tax returns for a tenant with filtering
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter TaxReturnFilter) ([]TaxReturn, error)

	// Save creates or updates a tax return
	Save(ctx context.Context, taxReturn *TaxReturn) error
}

// ExpenseFilter defines filtering options for expense queries
type ExpenseFilter struct {
	shared.Filter
	PeriodFilter
	WHTEnabled     *bool
	IncludeDeleted bool
}

// ExpenseRepository defines the interface for expense persistence
type ExpenseRepository interface {
	// FindByIDForTenant finds an expense by ID for a tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Expense, error)

	// FindAllForTenant finds expenses for a tenant with filtering
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter ExpenseFilter) ([]Expense, error)

	// Save creates or updates an expense
	Save(ctx context.Context, expense *Expense) error

	// GenerateExpenseNumber generates a unique expense number for a tenant
	GenerateExpenseNumber(ctx context.Context, tenantID uuid.UUID) (string, error)
}
