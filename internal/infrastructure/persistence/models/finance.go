package models

import (
	"time"

	"github.com/backoffice/backend/internal/domain/finance"
	"github.com/backoffice/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PeriodColumns are the denormalized reporting-period fields stamped on
// every dated financial row. They exist so period queries stay on indexed
// integer columns instead of date arithmetic.
type PeriodColumns struct {
	PeriodMonth       string `gorm:"type:varchar(10);not null"`
	PeriodMonthNumber int    `gorm:"not null;index"`
	PeriodYear        int    `gorm:"not null;index"`
	PeriodQuarter     string `gorm:"type:varchar(2);not null;index"`
}

func periodColumnsFromDomain(p valueobject.Period) PeriodColumns {
	return PeriodColumns{
		PeriodMonth:       p.Month,
		PeriodMonthNumber: p.MonthNumber,
		PeriodYear:        p.Year,
		PeriodQuarter:     string(p.Quarter),
	}
}

func (c PeriodColumns) toDomain() valueobject.Period {
	return valueobject.Period{
		Month:       c.PeriodMonth,
		MonthNumber: c.PeriodMonthNumber,
		Year:        c.PeriodYear,
		Quarter:     valueobject.Quarter(c.PeriodQuarter),
	}
}

// InvoiceModel is the persistence model for Invoice
type InvoiceModel struct {
	TenantAggregateModel
	InvoiceNumber   string                 `gorm:"type:varchar(50);not null;uniqueIndex:idx_invoice_tenant_number,priority:2"`
	ReferenceNumber string                 `gorm:"type:varchar(50);not null"`
	ClientID        uuid.UUID              `gorm:"type:uuid;not null;index"`
	ClientName      string                 `gorm:"type:varchar(200);not null"`
	InvoiceType     string                 `gorm:"type:varchar(20);not null"`
	Details         finance.InvoiceDetails `gorm:"type:jsonb"`
	FeeNGN          decimal.Decimal        `gorm:"type:decimal(18,2);not null;default:0"`
	FeePlusVatNGN   decimal.Decimal        `gorm:"type:decimal(18,2);not null;default:0"`
	FeeUSD          decimal.Decimal        `gorm:"type:decimal(18,2);not null;default:0"`
	FeePlusVatUSD   decimal.Decimal        `gorm:"type:decimal(18,2);not null;default:0"`
	VATPercent      decimal.Decimal        `gorm:"type:decimal(8,4);not null;default:0"`
	AmountPaid      decimal.Decimal        `gorm:"type:decimal(18,2);not null;default:0"`
	AmountDue       decimal.Decimal        `gorm:"type:decimal(18,2);not null;default:0"`
	Status          string                 `gorm:"type:varchar(20);not null;index"`
	TransactionDate time.Time              `gorm:"not null;index"`
	DueDate         *time.Time
	PeriodColumns
}

// TableName returns the table name for GORM
func (InvoiceModel) TableName() string {
	return "invoices"
}

// ToDomain converts the model to a domain Invoice
func (m *InvoiceModel) ToDomain() *finance.Invoice {
	invoice := &finance.Invoice{
		InvoiceNumber:   m.InvoiceNumber,
		ReferenceNumber: m.ReferenceNumber,
		ClientID:        m.ClientID,
		ClientName:      m.ClientName,
		InvoiceType:     finance.InvoiceType(m.InvoiceType),
		Details:         m.Details,
		FeeNGN:          m.FeeNGN,
		FeePlusVatNGN:   m.FeePlusVatNGN,
		FeeUSD:          m.FeeUSD,
		FeePlusVatUSD:   m.FeePlusVatUSD,
		VATPercent:      m.VATPercent,
		AmountPaid:      m.AmountPaid,
		AmountDue:       m.AmountDue,
		Status:          finance.InvoiceStatus(m.Status),
		TransactionDate: m.TransactionDate,
		DueDate:         m.DueDate,
		Period:          m.PeriodColumns.toDomain(),
	}
	m.PopulateTenantAggregateRoot(&invoice.TenantAggregateRoot)
	return invoice
}

// InvoiceModelFromDomain converts a domain Invoice to the model
func InvoiceModelFromDomain(invoice *finance.Invoice) *InvoiceModel {
	m := &InvoiceModel{
		InvoiceNumber:   invoice.InvoiceNumber,
		ReferenceNumber: invoice.ReferenceNumber,
		ClientID:        invoice.ClientID,
		ClientName:      invoice.ClientName,
		InvoiceType:     string(invoice.InvoiceType),
		Details:         invoice.Details,
		FeeNGN:          invoice.FeeNGN,
		FeePlusVatNGN:   invoice.FeePlusVatNGN,
		FeeUSD:          invoice.FeeUSD,
		FeePlusVatUSD:   invoice.FeePlusVatUSD,
		VATPercent:      invoice.VATPercent,
		AmountPaid:      invoice.AmountPaid,
		AmountDue:       invoice.AmountDue,
		Status:          string(invoice.Status),
		TransactionDate: invoice.TransactionDate,
		DueDate:         invoice.DueDate,
		PeriodColumns:   periodColumnsFromDomain(invoice.Period),
	}
	m.FromDomainTenantAggregateRoot(invoice.TenantAggregateRoot)
	return m
}

// TaxRecordModel is the persistence model for TaxRecord
type TaxRecordModel struct {
	TenantAggregateModel
	InvoiceID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	InvoiceNumber     string          `gorm:"type:varchar(50);not null;index"`
	ClientName        string          `gorm:"type:varchar(200);not null"`
	TotalFee          decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	RatePercent       decimal.Decimal `gorm:"type:decimal(8,4);not null;default:0"`
	TaxAmountDeducted decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	NetAmount         decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Status            string          `gorm:"type:varchar(20);not null;index"`
	TransactionDate   time.Time       `gorm:"not null;index"`
	PeriodColumns
}

// TableName returns the table name for GORM
func (TaxRecordModel) TableName() string {
	return "tax_records"
}

// ToDomain converts the model to a domain TaxRecord
func (m *TaxRecordModel) ToDomain() *finance.TaxRecord {
	record := &finance.TaxRecord{
		InvoiceID:         m.InvoiceID,
		InvoiceNumber:     m.InvoiceNumber,
		ClientName:        m.ClientName,
		TotalFee:          m.TotalFee,
		RatePercent:       m.RatePercent,
		TaxAmountDeducted: m.TaxAmountDeducted,
		NetAmount:         m.NetAmount,
		Status:            finance.TaxStatus(m.Status),
		TransactionDate:   m.TransactionDate,
		Period:            m.PeriodColumns.toDomain(),
	}
	m.PopulateTenantAggregateRoot(&record.TenantAggregateRoot)
	return record
}

// TaxRecordModelFromDomain converts a domain TaxRecord to the model
func TaxRecordModelFromDomain(record *finance.TaxRecord) *TaxRecordModel {
	m := &TaxRecordModel{
		InvoiceID:         record.InvoiceID,
		InvoiceNumber:     record.InvoiceNumber,
		ClientName:        record.ClientName,
		TotalFee:          record.TotalFee,
		RatePercent:       record.RatePercent,
		TaxAmountDeducted: record.TaxAmountDeducted,
		NetAmount:         record.NetAmount,
		Status:            string(record.Status),
		TransactionDate:   record.TransactionDate,
		PeriodColumns:     periodColumnsFromDomain(record.Period),
	}
	m.FromDomainTenantAggregateRoot(record.TenantAggregateRoot)
	return m
}

// WHTRecordModel is the persistence model for WHTRecord
type WHTRecordModel struct {
	TenantAggregateModel
	SourceKind        string          `gorm:"type:varchar(20);not null;index:idx_wht_source"`
	SourceID          uuid.UUID       `gorm:"type:uuid;not null;index:idx_wht_source"`
	CompanyName       string          `gorm:"type:varchar(200);not null"`
	TransactionAmount decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	WHTRate           decimal.Decimal `gorm:"type:decimal(8,4);not null;default:0"`
	VATRate           decimal.Decimal `gorm:"type:decimal(8,4);not null;default:0"`
	WHTAmount         decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	VATAmount         decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	AmountDue         decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Status            string          `gorm:"type:varchar(20);not null;index"`
	TransactionDate   time.Time       `gorm:"not null;index"`
	PeriodColumns
}

// TableName returns the table name for GORM
func (WHTRecordModel) TableName() string {
	return "wht_records"
}

// ToDomain converts the model to a domain WHTRecord
func (m *WHTRecordModel) ToDomain() *finance.WHTRecord {
	record := &finance.WHTRecord{
		Source: finance.WHTSource{
			Kind: finance.WHTSourceKind(m.SourceKind),
			ID:   m.SourceID,
		},
		CompanyName:       m.CompanyName,
		TransactionAmount: m.TransactionAmount,
		WHTRate:           m.WHTRate,
		VATRate:           m.VATRate,
		WHTAmount:         m.WHTAmount,
		VATAmount:         m.VATAmount,
		AmountDue:         m.AmountDue,
		Status:            finance.WHTStatus(m.Status),
		TransactionDate:   m.TransactionDate,
		Period:            m.PeriodColumns.toDomain(),
	}
	m.PopulateTenantAggregateRoot(&record.TenantAggregateRoot)
	return record
}

// WHTRecordModelFromDomain converts a domain WHTRecord to the model
func WHTRecordModelFromDomain(record *finance.WHTRecord) *WHTRecordModel {
	m := &WHTRecordModel{
		SourceKind:        string(record.Source.Kind),
		SourceID:          record.Source.ID,
		CompanyName:       record.CompanyName,
		TransactionAmount: record.TransactionAmount,
		WHTRate:           record.WHTRate,
		VATRate:           record.VATRate,
		WHTAmount:         record.WHTAmount,
		VATAmount:         record.VATAmount,
		AmountDue:         record.AmountDue,
		Status:            string(record.Status),
		TransactionDate:   record.TransactionDate,
		PeriodColumns:     periodColumnsFromDomain(record.Period),
	}
	m.FromDomainTenantAggregateRoot(record.TenantAggregateRoot)
	return m
}

// TaxReturnModel is the persistence model for TaxReturn
type TaxReturnModel struct {
	TenantAggregateModel
	CompanyName       string          `gorm:"type:varchar(200);not null"`
	TransactionAmount decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	WHTRate           decimal.Decimal `gorm:"type:decimal(8,4);not null;default:0"`
	VATRate           decimal.Decimal `gorm:"type:decimal(8,4);not null;default:0"`
	WHTAmount         decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	VATAmount         decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	AmountDue         decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Status            string          `gorm:"type:varchar(20);not null;index"`
	TransactionDate   time.Time       `gorm:"not null;index"`
	PeriodColumns
}

// TableName returns the table name for GORM
func (TaxReturnModel) TableName() string {
	return "tax_returns"
}

// ToDomain converts the model to a domain TaxReturn
func (m *TaxReturnModel) ToDomain() *finance.TaxReturn {
	taxReturn := &finance.TaxReturn{
		CompanyName:       m.CompanyName,
		TransactionAmount: m.TransactionAmount,
		WHTRate:           m.WHTRate,
		VATRate:           m.VATRate,
		WHTAmount:         m.WHTAmount,
		VATAmount:         m.VATAmount,
		AmountDue:         m.AmountDue,
		Status:            finance.WHTStatus(m.Status),
		TransactionDate:   m.TransactionDate,
		Period:            m.PeriodColumns.toDomain(),
	}
	m.PopulateTenantAggregateRoot(&taxReturn.TenantAggregateRoot)
	return taxReturn
}

// TaxReturnModelFromDomain converts a domain TaxReturn to the model
func TaxReturnModelFromDomain(taxReturn *finance.TaxReturn) *TaxReturnModel {
	m := &TaxReturnModel{
		CompanyName:       taxReturn.CompanyName,
		TransactionAmount: taxReturn.TransactionAmount,
		WHTRate:           taxReturn.WHTRate,
		VATRate:           taxReturn.VATRate,
		WHTAmount:         taxReturn.WHTAmount,
		VATAmount:         taxReturn.VATAmount,
		AmountDue:         taxReturn.AmountDue,
		Status:            string(taxReturn.Status),
		TransactionDate:   taxReturn.TransactionDate,
		PeriodColumns:     periodColumnsFromDomain(taxReturn.Period),
	}
	m.FromDomainTenantAggregateRoot(taxReturn.TenantAggregateRoot)
	return m
}

// ExpenseModel is the persistence model for Expense
type ExpenseModel struct {
	TenantAggregateModel
	ExpenseNumber string          `gorm:"type:varchar(50);not null;uniqueIndex:idx_expense_tenant_number,priority:2"`
	Payee         string          `gorm:"type:varchar(200);not null"`
	Description   string          `gorm:"type:text"`
	Amount        decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	WHTEnabled    bool            `gorm:"not null;default:false"`
	Status        string          `gorm:"type:varchar(20);not null;index"`
	IncurredAt    time.Time       `gorm:"not null;index"`
	PeriodColumns
}

// TableName returns the table name for GORM
func (ExpenseModel) TableName() string {
	return "expenses"
}

// ToDomain converts the model to a domain Expense
func (m *ExpenseModel) ToDomain() *finance.Expense {
	expense := &finance.Expense{
		ExpenseNumber: m.ExpenseNumber,
		Payee:         m.Payee,
		Description:   m.Description,
		Amount:        m.Amount,
		WHTEnabled:    m.WHTEnabled,
		Status:        finance.ExpenseStatus(m.Status),
		IncurredAt:    m.IncurredAt,
		Period:        m.PeriodColumns.toDomain(),
	}
	m.PopulateTenantAggregateRoot(&expense.TenantAggregateRoot)
	return expense
}

// ExpenseModelFromDomain converts a domain Expense to the model
func ExpenseModelFromDomain(expense *finance.Expense) *ExpenseModel {
	m := &ExpenseModel{
		ExpenseNumber: expense.ExpenseNumber,
		Payee:         expense.Payee,
		Description:   expense.Description,
		Amount:        expense.Amount,
		WHTEnabled:    expense.WHTEnabled,
		Status:        string(expense.Status),
		IncurredAt:    expense.IncurredAt,
		PeriodColumns: periodColumnsFromDomain(expense.Period),
	}
	m.FromDomainTenantAggregateRoot(expense.TenantAggregateRoot)
	return m
}
