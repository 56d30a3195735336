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

func TestCreateWHTRecord(t *testing.T) {
	tenantID := uuid.New()

	baseRequest := func() CreateWHTRecordRequest {
		return CreateWHTRecordRequest{
			SourceKind:        string(finance.WHTSourceInvoice),
			SourceID:          uuid.New(),
			CompanyName:       "Acme Services Ltd",
			TransactionAmount: decimal.RequireFromString("1000"),
			TransactionDate:   time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC),
		}
	}

	t.Run("omitted rates take the statutory defaults", func(t *testing.T) {
		whtRepo := new(MockWHTRecordRepository)
		service := NewWHTService(whtRepo, zap.NewNop())
		whtRepo.On("Save", mock.Anything, mock.Anything).Return(nil)

		resp, err := service.CreateWHTRecord(context.Background(), tenantID, baseRequest())
		require.NoError(t, err)
		assert.True(t, resp.WHTRate.Equal(finance.DefaultWHTRate))
		assert.True(t, resp.VATRate.Equal(finance.DefaultVATRate))
		assert.Equal(t, "1025.00", resp.AmountDue.StringFixed(2))
	})

	t.Run("explicit zero rates are honored", func(t *testing.T) {
		whtRepo := new(MockWHTRecordRepository)
		service := NewWHTService(whtRepo, zap.NewNop())
		whtRepo.On("Save", mock.Anything, mock.Anything).Return(nil)

		zero := decimal.Zero
		req := baseRequest()
		req.WHTRate = &zero
		req.VATRate = &zero

		resp, err := service.CreateWHTRecord(context.Background(), tenantID, req)
		require.NoError(t, err)
		assert.True(t, resp.WHTAmount.IsZero())
		assert.True(t, resp.VATAmount.IsZero())
		// With both rates at zero the amount due equals the amount.
		assert.True(t, resp.AmountDue.Equal(req.TransactionAmount))
	})
}
