package finance

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/backoffice/backend/internal/domain/shared"
	"github.com/backoffice/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceStatus represents the status of an invoice
type InvoiceStatus string

const (
	InvoiceStatusPending InvoiceStatus = "PENDING" // Initial state after creation
	InvoiceStatusUnpaid  InvoiceStatus = "UNPAID"  // Approved, awaiting payment
	InvoiceStatusPaid    InvoiceStatus = "PAID"    // Fully settled
	InvoiceStatusOverdue InvoiceStatus = "OVERDUE" // Unpaid past the overdue threshold
	InvoiceStatusDeleted InvoiceStatus = "DELETED" // Soft-deleted, hidden from listings but kept for audit
)

// IsValid checks if the status is a valid InvoiceStatus
func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoiceStatusPending, InvoiceStatusUnpaid, InvoiceStatusPaid,
		InvoiceStatusOverdue, InvoiceStatusDeleted:
		return true
	}
	return false
}

// String returns the string representation of InvoiceStatus
func (s InvoiceStatus) String() string {
	return string(s)
}

// CanBecomeOverdue returns true if the overdue sweep may transition this status
func (s InvoiceStatus) CanBecomeOverdue() bool {
	return s == InvoiceStatusPending || s == InvoiceStatusUnpaid
}

// InvoiceType identifies which detail document an invoice carries
type InvoiceType string

const (
	InvoiceTypeACSRBA        InvoiceType = "ACS_RBA"        // Service breakdown lines
	InvoiceTypeOutsourcing   InvoiceType = "OUTSOURCING"    // Outsourced role placements
	InvoiceTypeOtherServices InvoiceType = "OTHER_SERVICES" // Free-form service list
)

// IsValid checks if the invoice type is valid
func (t InvoiceType) IsValid() bool {
	switch t {
	case InvoiceTypeACSRBA, InvoiceTypeOutsourcing, InvoiceTypeOtherServices:
		return true
	}
	return false
}

// ServiceLine is one line of an ACS_RBA service breakdown
type ServiceLine struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

// OutsourcingRole is one placed role on an outsourcing invoice
type OutsourcingRole struct {
	Role      string          `json:"role"`
	Headcount int             `json:"headcount"`
	UnitFee   decimal.Decimal `json:"unit_fee"`
}

// InvoiceDetails is the type-specific sub-document of an invoice.
// Exactly one of the slices is populated, matching the invoice type.
// Stored as JSONB.
type InvoiceDetails struct {
	ServiceLines     []ServiceLine     `json:"service_lines,omitempty"`
	OutsourcingRoles []OutsourcingRole `json:"outsourcing_roles,omitempty"`
	OtherServices    []string          `json:"other_services,omitempty"`
}

// Value implements driver.Valuer for JSONB storage
func (d InvoiceDetails) Value() (driver.Value, error) {
	return json.Marshal(d)
}

// Scan implements sql.Scanner for JSONB retrieval
func (d *InvoiceDetails) Scan(value interface{}) error {
	if value == nil {
		*d = InvoiceDetails{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("failed to scan InvoiceDetails: unsupported type")
	}

	if len(bytes) == 0 {
		*d = InvoiceDetails{}
		return nil
	}

	return json.Unmarshal(bytes, d)
}

// Invoice represents an invoice ("revenue") aggregate root. Amounts are kept
// independently in NGN and USD; the two are never derived from one another.
// Gross totals are computed once at creation and deliberately not recomputed
// on update: an update reapplies only the fields it explicitly supplies.
type Invoice struct {
	shared.TenantAggregateRoot
	InvoiceNumber   string             `json:"invoice_number"`
	ReferenceNumber string             `json:"reference_number"`
	ClientID        uuid.UUID          `json:"client_id"`
	ClientName      string             `json:"client_name"`
	InvoiceType     InvoiceType        `json:"invoice_type"`
	Details         InvoiceDetails     `json:"details"`
	FeeNGN          decimal.Decimal    `json:"fee_ngn"`
	FeePlusVatNGN   decimal.Decimal    `json:"fee_plus_vat_ngn"`
	FeeUSD          decimal.Decimal    `json:"fee_usd"`
	FeePlusVatUSD   decimal.Decimal    `json:"fee_plus_vat_usd"`
	VATPercent      decimal.Decimal    `json:"vat_percent"`
	AmountPaid      decimal.Decimal    `json:"amount_paid"`
	AmountDue       decimal.Decimal    `json:"amount_due"`
	Status          InvoiceStatus      `json:"status"`
	TransactionDate time.Time          `json:"transaction_date"`
	DueDate         *time.Time         `json:"due_date"`
	Period          valueobject.Period `json:"period"`
}

// NewInvoice creates a new invoice. Gross totals are derived per currency via
// ComputeInvoiceTotal and the reporting period is stamped from the
// transaction date.
func NewInvoice(
	tenantID uuid.UUID,
	invoiceNumber string,
	referenceNumber string,
	clientID uuid.UUID,
	clientName string,
	invoiceType InvoiceType,
	details InvoiceDetails,
	feeNGN decimal.Decimal,
	feeUSD decimal.Decimal,
	vatPercent decimal.Decimal,
	transactionDate time.Time,
	dueDate *time.Time,
) (*Invoice, error) {
	if invoiceNumber == "" {
		return nil, shared.NewDomainError("INVALID_INVOICE_NUMBER", "Invoice number cannot be empty")
	}
	if clientID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CLIENT", "Client ID cannot be empty")
	}
	if clientName == "" {
		return nil, shared.NewDomainError("INVALID_CLIENT_NAME", "Client name cannot be empty")
	}
	if !invoiceType.IsValid() {
		return nil, shared.NewDomainError("INVALID_INVOICE_TYPE", "Invoice type is not valid")
	}
	if feeNGN.IsNegative() || feeUSD.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Invoice fee cannot be negative")
	}
	if vatPercent.IsNegative() {
		return nil, shared.NewDomainError("INVALID_RATE", "VAT percentage cannot be negative")
	}
	if transactionDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_DATE", "Transaction date is required")
	}

	totalNGN := ComputeInvoiceTotal(feeNGN, vatPercent)
	totalUSD := ComputeInvoiceTotal(feeUSD, vatPercent)

	inv := &Invoice{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		InvoiceNumber:       invoiceNumber,
		ReferenceNumber:     referenceNumber,
		ClientID:            clientID,
		ClientName:          clientName,
		InvoiceType:         invoiceType,
		Details:             details,
		FeeNGN:              feeNGN,
		FeePlusVatNGN:       totalNGN,
		FeeUSD:              feeUSD,
		FeePlusVatUSD:       totalUSD,
		VATPercent:          vatPercent,
		AmountPaid:          decimal.Zero,
		AmountDue:           totalNGN,
		Status:              InvoiceStatusPending,
		TransactionDate:     transactionDate,
		DueDate:             dueDate,
		Period:              valueobject.PeriodOf(transactionDate),
	}

	return inv, nil
}

// InvoiceUpdate carries the fields an update call explicitly supplies.
// Nil fields are left untouched. Totals are not recomputed from fees here;
// a caller that wants consistent totals supplies them.
type InvoiceUpdate struct {
	ClientName      *string
	Details         *InvoiceDetails
	FeeNGN          *decimal.Decimal
	FeePlusVatNGN   *decimal.Decimal
	FeeUSD          *decimal.Decimal
	FeePlusVatUSD   *decimal.Decimal
	VATPercent      *decimal.Decimal
	AmountPaid      *decimal.Decimal
	AmountDue       *decimal.Decimal
	Status          *InvoiceStatus
	TransactionDate *time.Time
	DueDate         *time.Time
}

// ApplyUpdate applies the supplied fields to the invoice. The reporting
// period is restamped whenever the transaction date changes, so period
// fields can never disagree with the date. Deleted invoices cannot be
// updated.
func (inv *Invoice) ApplyUpdate(update InvoiceUpdate) error {
	if inv.Status == InvoiceStatusDeleted {
		return shared.NewDomainError("INVALID_STATE", "Cannot update a deleted invoice")
	}

	if update.Status != nil {
		if !update.Status.IsValid() {
			return shared.NewDomainError("INVALID_STATUS", fmt.Sprintf("Unknown invoice status %q", *update.Status))
		}
		inv.Status = *update.Status
	}
	if update.ClientName != nil {
		inv.ClientName = *update.ClientName
	}
	if update.Details != nil {
		inv.Details = *update.Details
	}
	if update.FeeNGN != nil {
		if update.FeeNGN.IsNegative() {
			return shared.NewDomainError("INVALID_AMOUNT", "Invoice fee cannot be negative")
		}
		inv.FeeNGN = *update.FeeNGN
	}
	if update.FeePlusVatNGN != nil {
		inv.FeePlusVatNGN = Round2(*update.FeePlusVatNGN)
	}
	if update.FeeUSD != nil {
		if update.FeeUSD.IsNegative() {
			return shared.NewDomainError("INVALID_AMOUNT", "Invoice fee cannot be negative")
		}
		inv.FeeUSD = *update.FeeUSD
	}
	if update.FeePlusVatUSD != nil {
		inv.FeePlusVatUSD = Round2(*update.FeePlusVatUSD)
	}
	if update.VATPercent != nil {
		if update.VATPercent.IsNegative() {
			return shared.NewDomainError("INVALID_RATE", "VAT percentage cannot be negative")
		}
		inv.VATPercent = *update.VATPercent
	}
	if update.AmountPaid != nil {
		if update.AmountPaid.IsNegative() {
			return shared.NewDomainError("INVALID_AMOUNT", "Amount paid cannot be negative")
		}
		inv.AmountPaid = Round2(*update.AmountPaid)
	}
	if update.AmountDue != nil {
		inv.AmountDue = Round2(*update.AmountDue)
	}
	if update.TransactionDate != nil {
		inv.TransactionDate = *update.TransactionDate
		inv.Period = valueobject.PeriodOf(*update.TransactionDate)
	}
	if update.DueDate != nil {
		inv.DueDate = update.DueDate
	}

	inv.UpdatedAt = time.Now()
	inv.IncrementVersion()
	return nil
}

// MarkOverdue transitions an unpaid invoice into OVERDUE. Used by the
// scheduled sweep; invoices already overdue, paid or deleted are rejected.
func (inv *Invoice) MarkOverdue() error {
	if !inv.Status.CanBecomeOverdue() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot mark %s invoice overdue", inv.Status))
	}
	inv.Status = InvoiceStatusOverdue
	inv.UpdatedAt = time.Now()
	inv.IncrementVersion()
	return nil
}

// SoftDelete marks the invoice as deleted. The record stays persisted for
// audit; deleted is terminal.
func (inv *Invoice) SoftDelete() error {
	if inv.Status == InvoiceStatusDeleted {
		return shared.NewDomainError("INVALID_STATE", "Invoice is already deleted")
	}
	inv.Status = InvoiceStatusDeleted
	inv.UpdatedAt = time.Now()
	inv.IncrementVersion()
	return nil
}

// IsDeleted returns true if the invoice is soft-deleted
func (inv *Invoice) IsDeleted() bool {
	return inv.Status == InvoiceStatusDeleted
}

// IsPaid returns true if the invoice is fully settled
func (inv *Invoice) IsPaid() bool {
	return inv.Status == InvoiceStatusPaid
}

// GetFeePlusVatNGNMoney returns the NGN gross total as Money
func (inv *Invoice) GetFeePlusVatNGNMoney() valueobject.Money {
	return valueobject.NewMoneyNGN(inv.FeePlusVatNGN)
}

// GetFeePlusVatUSDMoney returns the USD gross total as Money
func (inv *Invoice) GetFeePlusVatUSDMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(inv.FeePlusVatUSD)
}
