package finance

import (
	"time"

	"github.com/backoffice/backend/internal/domain/shared"
	"github.com/backoffice/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TaxStatus represents the status of a tax record
type TaxStatus string

const (
	TaxStatusUnpaid  TaxStatus = "UNPAID"
	TaxStatusPaid    TaxStatus = "PAID"
	TaxStatusDeleted TaxStatus = "DELETED"
)

// IsValid checks if the status is a valid TaxStatus
func (s TaxStatus) IsValid() bool {
	switch s {
	case TaxStatusUnpaid, TaxStatusPaid, TaxStatusDeleted:
		return true
	}
	return false
}

// String returns the string representation of TaxStatus
func (s TaxStatus) String() string {
	return string(s)
}

// TaxRecord is the VAT row created alongside each invoice. It records the
// amount deducted from the invoice fee at the rate the creation path chose
// (the fixed policy rate, which may legitimately differ from the VAT
// percentage stored on the invoice itself - the caller's choice is kept).
// Tax records are paid in bulk and bulk-deleted by invoice number when the
// parent invoice is soft-deleted.
type TaxRecord struct {
	shared.TenantAggregateRoot
	InvoiceID         uuid.UUID          `json:"invoice_id"`
	InvoiceNumber     string             `json:"invoice_number"`
	ClientName        string             `json:"client_name"`
	TotalFee          decimal.Decimal    `json:"total_fee"`
	RatePercent       decimal.Decimal    `json:"rate_percent"`
	TaxAmountDeducted decimal.Decimal    `json:"tax_amount_deducted"`
	NetAmount         decimal.Decimal    `json:"net_amount"`
	Status            TaxStatus          `json:"status"`
	TransactionDate   time.Time          `json:"transaction_date"`
	Period            valueobject.Period `json:"period"`
}

// NewTaxRecord creates a tax record for an invoice. Derived amounts are
// computed here and rounded as the final step.
func NewTaxRecord(
	tenantID uuid.UUID,
	invoiceID uuid.UUID,
	invoiceNumber string,
	clientName string,
	totalFee decimal.Decimal,
	ratePercent decimal.Decimal,
	transactionDate time.Time,
) (*TaxRecord, error) {
	if invoiceID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INVOICE", "Invoice ID cannot be empty")
	}
	if invoiceNumber == "" {
		return nil, shared.NewDomainError("INVALID_INVOICE_NUMBER", "Invoice number cannot be empty")
	}
	if totalFee.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Total fee cannot be negative")
	}
	if ratePercent.IsNegative() {
		return nil, shared.NewDomainError("INVALID_RATE", "Tax rate cannot be negative")
	}

	deducted := ComputeVAT(totalFee, ratePercent)

	return &TaxRecord{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		InvoiceID:           invoiceID,
		InvoiceNumber:       invoiceNumber,
		ClientName:          clientName,
		TotalFee:            totalFee,
		RatePercent:         ratePercent,
		TaxAmountDeducted:   deducted,
		NetAmount:           Round2(totalFee.Sub(deducted)),
		Status:              TaxStatusUnpaid,
		TransactionDate:     transactionDate,
		Period:              valueobject.PeriodOf(transactionDate),
	}, nil
}

// MarkPaid transitions the record to PAID. Already-paid records are
// rejected; the batch pay operation relies on this to fail atomically.
func (tr *TaxRecord) MarkPaid() error {
	if tr.Status == TaxStatusPaid {
		return shared.NewAlreadyPaidError([]string{tr.ID.String()})
	}
	if tr.Status == TaxStatusDeleted {
		return shared.NewDomainError("INVALID_STATE", "Cannot pay a deleted tax record")
	}
	tr.Status = TaxStatusPaid
	tr.UpdatedAt = time.Now()
	tr.IncrementVersion()
	return nil
}

// SoftDelete marks the record as deleted
func (tr *TaxRecord) SoftDelete() {
	tr.Status = TaxStatusDeleted
	tr.UpdatedAt = time.Now()
	tr.IncrementVersion()
}

// IsPaid returns true if the record is paid
func (tr *TaxRecord) IsPaid() bool {
	return tr.Status == TaxStatusPaid
}
