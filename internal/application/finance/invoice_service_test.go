package finance

import (
	"context"
	"testing"
	"time"

	"github.com/backoffice/backend/internal/domain/finance"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newInvoiceService(
	invoiceRepo *MockInvoiceRepository,
	taxRepo *MockTaxRecordRepository,
	clientRepo *MockClientRepository,
) *InvoiceService {
	recalc := NewClientTotalsRecalculator(invoiceRepo, clientRepo, zap.NewNop())
	return NewInvoiceService(invoiceRepo, taxRepo, clientRepo, recalc, zap.NewNop())
}

func TestCreateInvoice(t *testing.T) {
	tenantID := uuid.New()

	t.Run("creates the invoice with its tax record and refreshes totals", func(t *testing.T) {
		invoiceRepo := new(MockInvoiceRepository)
		taxRepo := new(MockTaxRecordRepository)
		clientRepo := new(MockClientRepository)
		service := newInvoiceService(invoiceRepo, taxRepo, clientRepo)

		client := newTestClient(t, tenantID)

		clientRepo.On("FindByIDForTenant", mock.Anything, tenantID, client.ID).Return(client, nil)
		invoiceRepo.On("GenerateInvoiceNumber", mock.Anything, tenantID).Return("INV-20260315-00001", nil)
		invoiceRepo.On("GenerateReferenceNumber", mock.Anything, tenantID).Return("REF-20260315-00001", nil)
		invoiceRepo.On("Save", mock.Anything, mock.Anything).Return(nil)
		taxRepo.On("Save", mock.Anything, mock.MatchedBy(func(record *finance.TaxRecord) bool {
			// Deduction applies to the invoice fee, not the VAT-inclusive total.
			return record.InvoiceNumber == "INV-20260315-00001" &&
				record.RatePercent.Equal(finance.DefaultVATRate) &&
				record.TotalFee.StringFixed(2) == "10000.00" &&
				record.TaxAmountDeducted.StringFixed(2) == "750.00" &&
				record.NetAmount.StringFixed(2) == "9250.00"
		})).Return(nil)
		invoiceRepo.On("FindByClient", mock.Anything, tenantID, client.ID).Return([]finance.Invoice{}, nil)
		clientRepo.On("Save", mock.Anything, client).Return(nil)

		resp, err := service.CreateInvoice(context.Background(), tenantID, CreateInvoiceRequest{
			ClientID:        client.ID,
			InvoiceType:     string(finance.InvoiceTypeACSRBA),
			FeeNGN:          decimal.RequireFromString("10000"),
			VATPercent:      decimal.RequireFromString("7.5"),
			TransactionDate: time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC),
		})
		require.NoError(t, err)
		assert.Equal(t, "10750.00", resp.FeePlusVatNGN.StringFixed(2))
		assert.Equal(t, client.Name, resp.ClientName)
		taxRepo.AssertExpectations(t)
	})

	t.Run("recalculation failure does not fail the committed write", func(t *testing.T) {
		invoiceRepo := new(MockInvoiceRepository)
		taxRepo := new(MockTaxRecordRepository)
		clientRepo := new(MockClientRepository)
		service := newInvoiceService(invoiceRepo, taxRepo, clientRepo)

		client := newTestClient(t, tenantID)

		clientRepo.On("FindByIDForTenant", mock.Anything, tenantID, client.ID).Return(client, nil)
		invoiceRepo.On("GenerateInvoiceNumber", mock.Anything, tenantID).Return("INV-20260315-00002", nil)
		invoiceRepo.On("GenerateReferenceNumber", mock.Anything, tenantID).Return("REF-20260315-00002", nil)
		invoiceRepo.On("Save", mock.Anything, mock.Anything).Return(nil)
		taxRepo.On("Save", mock.Anything, mock.Anything).Return(nil)
		// The totals rescan breaking must not surface to the caller.
		invoiceRepo.On("FindByClient", mock.Anything, tenantID, client.ID).
			Return(nil, assert.AnError)

		resp, err := service.CreateInvoice(context.Background(), tenantID, CreateInvoiceRequest{
			ClientID:        client.ID,
			InvoiceType:     string(finance.InvoiceTypeACSRBA),
			FeeNGN:          decimal.RequireFromString("10000"),
			VATPercent:      decimal.RequireFromString("7.5"),
			TransactionDate: time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC),
		})
		require.NoError(t, err)
		assert.Equal(t, "INV-20260315-00002", resp.InvoiceNumber)
	})

	t.Run("unknown client is rejected", func(t *testing.T) {
		invoiceRepo := new(MockInvoiceRepository)
		taxRepo := new(MockTaxRecordRepository)
		clientRepo := new(MockClientRepository)
		service := newInvoiceService(invoiceRepo, taxRepo, clientRepo)

		missing := uuid.New()
		clientRepo.On("FindByIDForTenant", mock.Anything, tenantID, missing).Return(nil, nil)

		_, err := service.CreateInvoice(context.Background(), tenantID, CreateInvoiceRequest{
			ClientID:        missing,
			InvoiceType:     string(finance.InvoiceTypeACSRBA),
			FeeNGN:          decimal.RequireFromString("100"),
			TransactionDate: time.Now(),
		})
		require.Error(t, err)
		invoiceRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestSoftDeleteInvoice(t *testing.T) {
	tenantID := uuid.New()
	invoiceRepo := new(MockInvoiceRepository)
	taxRepo := new(MockTaxRecordRepository)
	clientRepo := new(MockClientRepository)
	service := newInvoiceService(invoiceRepo, taxRepo, clientRepo)

	client := newTestClient(t, tenantID)
	invoice := newTestInvoice(t, tenantID, client.ID, "10000")

	invoiceRepo.On("FindByIDForTenant", mock.Anything, tenantID, invoice.ID).Return(invoice, nil)
	invoiceRepo.On("Save", mock.Anything, mock.MatchedBy(func(inv *finance.Invoice) bool {
		return inv.IsDeleted()
	})).Return(nil)
	taxRepo.On("DeleteByInvoiceNumber", mock.Anything, tenantID, invoice.InvoiceNumber).Return(nil)
	clientRepo.On("FindByIDForTenant", mock.Anything, tenantID, client.ID).Return(client, nil)
	invoiceRepo.On("FindByClient", mock.Anything, tenantID, client.ID).Return([]finance.Invoice{}, nil)
	clientRepo.On("Save", mock.Anything, client).Return(nil)

	require.NoError(t, service.SoftDeleteInvoice(context.Background(), tenantID, invoice.ID))

	// The deleted invoice no longer counts toward the client.
	assert.True(t, client.TotalInvoice.IsZero())
	taxRepo.AssertExpectations(t)
}
