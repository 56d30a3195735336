package finance

import (
	"fmt"
	"time"

	"github.com/backoffice/backend/internal/domain/shared"
	"github.com/backoffice/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// WHTSourceKind identifies which document a withholding record derives from
type WHTSourceKind string

const (
	WHTSourceInvoice WHTSourceKind = "INVOICE"
	WHTSourceExpense WHTSourceKind = "EXPENSE"
)

// IsValid checks if the source kind is valid
func (k WHTSourceKind) IsValid() bool {
	return k == WHTSourceInvoice || k == WHTSourceExpense
}

// WHTSource is an explicit sum over the two possible source documents of a
// withholding record. Construct via InvoiceSource or ExpenseSource.
type WHTSource struct {
	Kind WHTSourceKind `json:"kind"`
	ID   uuid.UUID     `json:"id"`
}

// InvoiceSource references an invoice as the withholding source
func InvoiceSource(id uuid.UUID) WHTSource {
	return WHTSource{Kind: WHTSourceInvoice, ID: id}
}

// ExpenseSource references an expense as the withholding source
func ExpenseSource(id uuid.UUID) WHTSource {
	return WHTSource{Kind: WHTSourceExpense, ID: id}
}

// IsZero returns true if no source is set
func (s WHTSource) IsZero() bool {
	return s.Kind == "" && s.ID == uuid.Nil
}

func (s WHTSource) validate() error {
	if !s.Kind.IsValid() {
		return shared.NewDomainError("INVALID_SOURCE_TYPE", fmt.Sprintf("Unknown WHT source kind %q", s.Kind))
	}
	if s.ID == uuid.Nil {
		return shared.NewDomainError("INVALID_SOURCE_ID", "WHT source ID cannot be empty")
	}
	return nil
}

// WHTStatus represents the status of a withholding record
type WHTStatus string

const (
	WHTStatusUnpaid  WHTStatus = "UNPAID"
	WHTStatusPaid    WHTStatus = "PAID"
	WHTStatusDeleted WHTStatus = "DELETED"
)

// IsValid checks if the status is a valid WHTStatus
func (s WHTStatus) IsValid() bool {
	switch s {
	case WHTStatusUnpaid, WHTStatusPaid, WHTStatusDeleted:
		return true
	}
	return false
}

// WHTRecord is a withholding tax record over an invoice or expense.
// Its derived fields (wht amount, vat amount, amount due) are recomputed on
// every create or update that touches the transaction amount or either
// rate - they are never left stale.
type WHTRecord struct {
	shared.TenantAggregateRoot
	Source            WHTSource          `json:"source"`
	CompanyName       string             `json:"company_name"`
	TransactionAmount decimal.Decimal    `json:"transaction_amount"`
	WHTRate           decimal.Decimal    `json:"wht_rate"`
	VATRate           decimal.Decimal    `json:"vat_rate"`
	WHTAmount         decimal.Decimal    `json:"wht_amount"`
	VATAmount         decimal.Decimal    `json:"vat_amount"`
	AmountDue         decimal.Decimal    `json:"amount_due"`
	Status            WHTStatus          `json:"status"`
	TransactionDate   time.Time          `json:"transaction_date"`
	Period            valueobject.Period `json:"period"`
}

// NewWHTRecord creates a withholding record. Nil rates fall back to the
// statutory defaults (5% WHT, 7.5% VAT); a supplied rate is honored as
// given, including an explicit zero.
func NewWHTRecord(
	tenantID uuid.UUID,
	source WHTSource,
	companyName string,
	transactionAmount decimal.Decimal,
	whtRate *decimal.Decimal,
	vatRate *decimal.Decimal,
	transactionDate time.Time,
) (*WHTRecord, error) {
	if err := source.validate(); err != nil {
		return nil, err
	}
	if transactionAmount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Transaction amount cannot be negative")
	}
	if transactionDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_DATE", "Transaction date is required")
	}

	wht := DefaultWHTRate
	if whtRate != nil {
		wht = *whtRate
	}
	vat := DefaultVATRate
	if vatRate != nil {
		vat = *vatRate
	}
	if wht.IsNegative() || vat.IsNegative() {
		return nil, shared.NewDomainError("INVALID_RATE", "Tax rates cannot be negative")
	}

	w := &WHTRecord{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Source:              source,
		CompanyName:         companyName,
		TransactionAmount:   transactionAmount,
		WHTRate:             wht,
		VATRate:             vat,
		Status:              WHTStatusUnpaid,
		TransactionDate:     transactionDate,
		Period:              valueobject.PeriodOf(transactionDate),
	}
	w.recompute()

	return w, nil
}

// recompute re-derives the withholding amount, VAT amount and amount due
// from the current inputs. Rounding is the last step of each derivation.
func (w *WHTRecord) recompute() {
	w.WHTAmount = ComputeWHT(w.TransactionAmount, w.WHTRate)
	w.VATAmount = ComputeVAT(w.TransactionAmount, w.VATRate)
	w.AmountDue = ComputeAmountDue(w.TransactionAmount, w.WHTAmount, w.VATAmount)
}

// WHTRecordUpdate carries the fields an update explicitly supplies
type WHTRecordUpdate struct {
	CompanyName       *string
	TransactionAmount *decimal.Decimal
	WHTRate           *decimal.Decimal
	VATRate           *decimal.Decimal
	TransactionDate   *time.Time
}

// ApplyUpdate applies the supplied fields. Touching the amount or either
// rate triggers recomputation of all derived fields; changing the date
// restamps the period.
func (w *WHTRecord) ApplyUpdate(update WHTRecordUpdate) error {
	if w.Status == WHTStatusDeleted {
		return shared.NewDomainError("INVALID_STATE", "Cannot update a deleted WHT record")
	}

	touched := false
	if update.CompanyName != nil {
		w.CompanyName = *update.CompanyName
	}
	if update.TransactionAmount != nil {
		if update.TransactionAmount.IsNegative() {
			return shared.NewDomainError("INVALID_AMOUNT", "Transaction amount cannot be negative")
		}
		w.TransactionAmount = *update.TransactionAmount
		touched = true
	}
	if update.WHTRate != nil {
		if update.WHTRate.IsNegative() {
			return shared.NewDomainError("INVALID_RATE", "WHT rate cannot be negative")
		}
		w.WHTRate = *update.WHTRate
		touched = true
	}
	if update.VATRate != nil {
		if update.VATRate.IsNegative() {
			return shared.NewDomainError("INVALID_RATE", "VAT rate cannot be negative")
		}
		w.VATRate = *update.VATRate
		touched = true
	}
	if update.TransactionDate != nil {
		w.TransactionDate = *update.TransactionDate
		w.Period = valueobject.PeriodOf(*update.TransactionDate)
	}

	if touched {
		w.recompute()
	}

	w.UpdatedAt = time.Now()
	w.IncrementVersion()
	return nil
}

// MarkPaid transitions the record to PAID. Already-paid records are
// rejected so that batch pay can fail atomically.
func (w *WHTRecord) MarkPaid() error {
	if w.Status == WHTStatusPaid {
		return shared.NewAlreadyPaidError([]string{w.ID.String()})
	}
	if w.Status == WHTStatusDeleted {
		return shared.NewDomainError("INVALID_STATE", "Cannot pay a deleted WHT record")
	}
	w.Status = WHTStatusPaid
	w.UpdatedAt = time.Now()
	w.IncrementVersion()
	return nil
}

// SoftDelete marks the record as deleted. Used directly and when WHT is
// disabled on the source document.
func (w *WHTRecord) SoftDelete() {
	w.Status = WHTStatusDeleted
	w.UpdatedAt = time.Now()
	w.IncrementVersion()
}

// IsPaid returns true if the record is paid
func (w *WHTRecord) IsPaid() bool {
	return w.Status == WHTStatusPaid
}

// IsDeleted returns true if the record is soft-deleted
func (w *WHTRecord) IsDeleted() bool {
	return w.Status == WHTStatusDeleted
}
