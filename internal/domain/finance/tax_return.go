package finance

import (
	"time"

	"github.com/backoffice/backend/internal/domain/shared"
	"github.com/backoffice/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TaxReturn is a standalone withholding-style filing line. Unlike a
// WHTRecord it references no source document, and its VAT rate is fixed at
// the statutory default. Derived fields follow the same recomputation and
// period-stamping rules as WHTRecord.
type TaxReturn struct {
	shared.TenantAggregateRoot
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

// NewTaxReturn creates a tax return line. The VAT rate is always the fixed
// statutory rate; a nil WHT rate falls back to the default, an explicit
// zero is honored.
func NewTaxReturn(
	tenantID uuid.UUID,
	companyName string,
	transactionAmount decimal.Decimal,
	whtRate *decimal.Decimal,
	transactionDate time.Time,
) (*TaxReturn, error) {
	if companyName == "" {
		return nil, shared.NewDomainError("INVALID_COMPANY_NAME", "Company name cannot be empty")
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
	if wht.IsNegative() {
		return nil, shared.NewDomainError("INVALID_RATE", "WHT rate cannot be negative")
	}

	tr := &TaxReturn{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		CompanyName:         companyName,
		TransactionAmount:   transactionAmount,
		WHTRate:             wht,
		VATRate:             DefaultVATRate,
		Status:              WHTStatusUnpaid,
		TransactionDate:     transactionDate,
		Period:              valueobject.PeriodOf(transactionDate),
	}
	tr.recompute()

	return tr, nil
}

func (tr *TaxReturn) recompute() {
	tr.WHTAmount = ComputeWHT(tr.TransactionAmount, tr.WHTRate)
	tr.VATAmount = ComputeVAT(tr.TransactionAmount, tr.VATRate)
	tr.AmountDue = ComputeAmountDue(tr.TransactionAmount, tr.WHTAmount, tr.VATAmount)
}

// TaxReturnUpdate carries the fields an update explicitly supplies.
// The VAT rate is not updatable; it stays at the fixed statutory rate.
type TaxReturnUpdate struct {
	CompanyName       *string
	TransactionAmount *decimal.Decimal
	WHTRate           *decimal.Decimal
	TransactionDate   *time.Time
}

// ApplyUpdate applies the supplied fields, recomputing derived amounts when
// the amount or WHT rate changes and restamping the period when the date
// changes.
func (tr *TaxReturn) ApplyUpdate(update TaxReturnUpdate) error {
	if tr.Status == WHTStatusDeleted {
		return shared.NewDomainError("INVALID_STATE", "Cannot update a deleted tax return")
	}

	touched := false
	if update.CompanyName != nil {
		if *update.CompanyName == "" {
			return shared.NewDomainError("INVALID_COMPANY_NAME", "Company name cannot be empty")
		}
		tr.CompanyName = *update.CompanyName
	}
	if update.TransactionAmount != nil {
		if update.TransactionAmount.IsNegative() {
			return shared.NewDomainError("INVALID_AMOUNT", "Transaction amount cannot be negative")
		}
		tr.TransactionAmount = *update.TransactionAmount
		touched = true
	}
	if update.WHTRate != nil {
		if update.WHTRate.IsNegative() {
			return shared.NewDomainError("INVALID_RATE", "WHT rate cannot be negative")
		}
		tr.WHTRate = *update.WHTRate
		touched = true
	}
	if update.TransactionDate != nil {
		tr.TransactionDate = *update.TransactionDate
		tr.Period = valueobject.PeriodOf(*update.TransactionDate)
	}

	if touched {
		tr.recompute()
	}

	tr.UpdatedAt = time.Now()
	tr.IncrementVersion()
	return nil
}

// SoftDelete marks the tax return as deleted
func (tr *TaxReturn) SoftDelete() {
	tr.Status = WHTStatusDeleted
	tr.UpdatedAt = time.Now()
	tr.IncrementVersion()
}
