package finance

import (
	"context"
	"time"

	"github.com/backoffice/backend/internal/domain/finance"
	"github.com/backoffice/backend/internal/domain/partner"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// =============================================================================
// Mock Repositories
// =============================================================================

// MockInvoiceRepository is a mock implementation of InvoiceRepository
type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*finance.Invoice, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindByInvoiceNumber(ctx context.Context, tenantID uuid.UUID, invoiceNumber string) (*finance.Invoice, error) {
	args := m.Called(ctx, tenantID, invoiceNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter finance.InvoiceFilter) ([]finance.Invoice, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]finance.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindByClient(ctx context.Context, tenantID, clientID uuid.UUID) ([]finance.Invoice, error) {
	args := m.Called(ctx, tenantID, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]finance.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindOverdueCandidates(ctx context.Context, cutoff time.Time) ([]finance.Invoice, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).([]finance.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) Save(ctx context.Context, invoice *finance.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepository) HardDelete(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockInvoiceRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter finance.InvoiceFilter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockInvoiceRepository) SumForTenant(ctx context.Context, tenantID uuid.UUID, filter finance.InvoiceFilter) (finance.InvoiceTotals, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(finance.InvoiceTotals), args.Error(1)
}

func (m *MockInvoiceRepository) GenerateInvoiceNumber(ctx context.Context, tenantID uuid.UUID) (string, error) {
	args := m.Called(ctx, tenantID)
	return args.String(0), args.Error(1)
}

func (m *MockInvoiceRepository) GenerateReferenceNumber(ctx context.Context, tenantID uuid.UUID) (string, error) {
	args := m.Called(ctx, tenantID)
	return args.String(0), args.Error(1)
}

// MockTaxRecordRepository is a mock implementation of TaxRecordRepository
type MockTaxRecordRepository struct {
	mock.Mock
}

func (m *MockTaxRecordRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*finance.TaxRecord, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.TaxRecord), args.Error(1)
}

func (m *MockTaxRecordRepository) FindByIDsForTenant(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]finance.TaxRecord, error) {
	args := m.Called(ctx, tenantID, ids)
	return args.Get(0).([]finance.TaxRecord), args.Error(1)
}

func (m *MockTaxRecordRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter finance.TaxRecordFilter) ([]finance.TaxRecord, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]finance.TaxRecord), args.Error(1)
}

func (m *MockTaxRecordRepository) Save(ctx context.Context, record *finance.TaxRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockTaxRecordRepository) SaveAll(ctx context.Context, records []finance.TaxRecord) error {
	args := m.Called(ctx, records)
	return args.Error(0)
}

func (m *MockTaxRecordRepository) DeleteByInvoiceNumber(ctx context.Context, tenantID uuid.UUID, invoiceNumber string) error {
	args := m.Called(ctx, tenantID, invoiceNumber)
	return args.Error(0)
}

func (m *MockTaxRecordRepository) SumDeductedForTenant(ctx context.Context, tenantID uuid.UUID, filter finance.TaxRecordFilter) (decimal.Decimal, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// MockWHTRecordRepository is a mock implementation of WHTRecordRepository
type MockWHTRecordRepository struct {
	mock.Mock
}

func (m *MockWHTRecordRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*finance.WHTRecord, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.WHTRecord), args.Error(1)
}

func (m *MockWHTRecordRepository) FindByIDsForTenant(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]finance.WHTRecord, error) {
	args := m.Called(ctx, tenantID, ids)
	return args.Get(0).([]finance.WHTRecord), args.Error(1)
}

func (m *MockWHTRecordRepository) FindBySource(ctx context.Context, tenantID uuid.UUID, source finance.WHTSource) (*finance.WHTRecord, error) {
	args := m.Called(ctx, tenantID, source)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.WHTRecord), args.Error(1)
}

func (m *MockWHTRecordRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter finance.WHTRecordFilter) ([]finance.WHTRecord, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]finance.WHTRecord), args.Error(1)
}

func (m *MockWHTRecordRepository) Save(ctx context.Context, record *finance.WHTRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockWHTRecordRepository) SaveAll(ctx context.Context, records []finance.WHTRecord) error {
	args := m.Called(ctx, records)
	return args.Error(0)
}

func (m *MockWHTRecordRepository) SumForTenant(ctx context.Context, tenantID uuid.UUID, filter finance.WHTRecordFilter) (finance.WHTTotals, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(finance.WHTTotals), args.Error(1)
}

// MockExpenseRepository is a mock implementation of ExpenseRepository
type MockExpenseRepository struct {
	mock.Mock
}

func (m *MockExpenseRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*finance.Expense, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.Expense), args.Error(1)
}

func (m *MockExpenseRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter finance.ExpenseFilter) ([]finance.Expense, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]finance.Expense), args.Error(1)
}

func (m *MockExpenseRepository) Save(ctx context.Context, expense *finance.Expense) error {
	args := m.Called(ctx, expense)
	return args.Error(0)
}

func (m *MockExpenseRepository) GenerateExpenseNumber(ctx context.Context, tenantID uuid.UUID) (string, error) {
	args := m.Called(ctx, tenantID)
	return args.String(0), args.Error(1)
}

// MockClientRepository is a mock implementation of partner.ClientRepository
type MockClientRepository struct {
	mock.Mock
}

func (m *MockClientRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*partner.Client, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Client), args.Error(1)
}

func (m *MockClientRepository) FindByName(ctx context.Context, tenantID uuid.UUID, name string) (*partner.Client, error) {
	args := m.Called(ctx, tenantID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Client), args.Error(1)
}

func (m *MockClientRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter partner.ClientFilter) ([]partner.Client, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]partner.Client), args.Error(1)
}

func (m *MockClientRepository) Save(ctx context.Context, client *partner.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *MockClientRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter partner.ClientFilter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

// =============================================================================
// Mock Sweep Collaborators
// =============================================================================

// MockSweepGuard is a mock implementation of SweepGuard
type MockSweepGuard struct {
	mock.Mock
}

func (m *MockSweepGuard) TryAcquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	args := m.Called(ctx, key, ttl)
	return args.Bool(0), args.Error(1)
}

func (m *MockSweepGuard) Release(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

// MockNoticeRenderer is a mock implementation of NoticeRenderer
type MockNoticeRenderer struct {
	mock.Mock
}

func (m *MockNoticeRenderer) RenderOverdueNotice(ctx context.Context, invoice *finance.Invoice) ([]byte, error) {
	args := m.Called(ctx, invoice)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// MockNotifier is a mock implementation of Notifier
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) SendOverdueNotice(ctx context.Context, client *partner.Client, invoice *finance.Invoice, notice []byte) error {
	args := m.Called(ctx, client, invoice, notice)
	return args.Error(0)
}
