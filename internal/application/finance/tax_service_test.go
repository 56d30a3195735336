package finance

import (
	"context"
	"testing"
	"time"

	"github.com/backoffice/backend/internal/domain/finance"
	"github.com/backoffice/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestTaxRecord(t *testing.T, tenantID uuid.UUID) *finance.TaxRecord {
	t.Helper()
	record, err := finance.NewTaxRecord(
		tenantID,
		uuid.New(),
		"INV-20260315-00001",
		"Acme Services Ltd",
		decimal.RequireFromString("10000"),
		finance.DefaultVATRate,
		time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	return record
}

func TestPayTaxRecords(t *testing.T) {
	tenantID := uuid.New()

	t.Run("marks every record paid", func(t *testing.T) {
		taxRepo := new(MockTaxRecordRepository)
		service := NewTaxService(taxRepo, zap.NewNop())

		r1 := newTestTaxRecord(t, tenantID)
		r2 := newTestTaxRecord(t, tenantID)
		ids := []uuid.UUID{r1.ID, r2.ID}

		taxRepo.On("FindByIDsForTenant", mock.Anything, tenantID, ids).Return([]finance.TaxRecord{*r1, *r2}, nil)
		taxRepo.On("SaveAll", mock.Anything, mock.MatchedBy(func(records []finance.TaxRecord) bool {
			for i := range records {
				if !records[i].IsPaid() {
					return false
				}
			}
			return len(records) == 2
		})).Return(nil)

		require.NoError(t, service.PayTaxRecords(context.Background(), tenantID, ids))
		taxRepo.AssertExpectations(t)
	})

	t.Run("already paid record rejects the whole batch", func(t *testing.T) {
		taxRepo := new(MockTaxRecordRepository)
		service := NewTaxService(taxRepo, zap.NewNop())

		r1 := newTestTaxRecord(t, tenantID)
		r2 := newTestTaxRecord(t, tenantID)
		require.NoError(t, r2.MarkPaid())
		ids := []uuid.UUID{r1.ID, r2.ID}

		taxRepo.On("FindByIDsForTenant", mock.Anything, tenantID, ids).Return([]finance.TaxRecord{*r1, *r2}, nil)

		err := service.PayTaxRecords(context.Background(), tenantID, ids)
		require.Error(t, err)

		var alreadyPaid *shared.AlreadyPaidError
		require.ErrorAs(t, err, &alreadyPaid)
		assert.Equal(t, []string{r2.ID.String()}, alreadyPaid.IDs)

		// Nothing may be written on rejection.
		taxRepo.AssertNotCalled(t, "SaveAll", mock.Anything, mock.Anything)
		taxRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("reports all offending IDs", func(t *testing.T) {
		taxRepo := new(MockTaxRecordRepository)
		service := NewTaxService(taxRepo, zap.NewNop())

		r1 := newTestTaxRecord(t, tenantID)
		r2 := newTestTaxRecord(t, tenantID)
		require.NoError(t, r1.MarkPaid())
		require.NoError(t, r2.MarkPaid())
		ids := []uuid.UUID{r1.ID, r2.ID}

		taxRepo.On("FindByIDsForTenant", mock.Anything, tenantID, ids).Return([]finance.TaxRecord{*r1, *r2}, nil)

		var alreadyPaid *shared.AlreadyPaidError
		err := service.PayTaxRecords(context.Background(), tenantID, ids)
		require.ErrorAs(t, err, &alreadyPaid)
		assert.Len(t, alreadyPaid.IDs, 2)
	})

	t.Run("missing record fails the batch", func(t *testing.T) {
		taxRepo := new(MockTaxRecordRepository)
		service := NewTaxService(taxRepo, zap.NewNop())

		r1 := newTestTaxRecord(t, tenantID)
		ids := []uuid.UUID{r1.ID, uuid.New()}

		taxRepo.On("FindByIDsForTenant", mock.Anything, tenantID, ids).Return([]finance.TaxRecord{*r1}, nil)

		err := service.PayTaxRecords(context.Background(), tenantID, ids)
		require.Error(t, err)
		taxRepo.AssertNotCalled(t, "SaveAll", mock.Anything, mock.Anything)
	})

	t.Run("empty batch is rejected", func(t *testing.T) {
		taxRepo := new(MockTaxRecordRepository)
		service := NewTaxService(taxRepo, zap.NewNop())

		require.Error(t, service.PayTaxRecords(context.Background(), tenantID, nil))
	})
}

func TestPayWHTRecords(t *testing.T) {
	tenantID := uuid.New()

	newRecord := func(t *testing.T) *finance.WHTRecord {
		t.Helper()
		record, err := finance.NewWHTRecord(
			tenantID,
			finance.ExpenseSource(uuid.New()),
			"Acme Services Ltd",
			decimal.RequireFromString("1000"),
			nil,
			nil,
			time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC),
		)
		require.NoError(t, err)
		return record
	}

	t.Run("marks every record paid", func(t *testing.T) {
		whtRepo := new(MockWHTRecordRepository)
		service := NewWHTService(whtRepo, zap.NewNop())

		r1 := newRecord(t)
		r2 := newRecord(t)
		ids := []uuid.UUID{r1.ID, r2.ID}

		whtRepo.On("FindByIDsForTenant", mock.Anything, tenantID, ids).Return([]finance.WHTRecord{*r1, *r2}, nil)
		whtRepo.On("SaveAll", mock.Anything, mock.MatchedBy(func(records []finance.WHTRecord) bool {
			for i := range records {
				if !records[i].IsPaid() {
					return false
				}
			}
			return len(records) == 2
		})).Return(nil)

		require.NoError(t, service.PayWHTRecords(context.Background(), tenantID, ids))
		whtRepo.AssertExpectations(t)
	})

	t.Run("already paid record rejects the whole batch", func(t *testing.T) {
		whtRepo := new(MockWHTRecordRepository)
		service := NewWHTService(whtRepo, zap.NewNop())

		r1 := newRecord(t)
		r2 := newRecord(t)
		require.NoError(t, r1.MarkPaid())
		ids := []uuid.UUID{r1.ID, r2.ID}

		whtRepo.On("FindByIDsForTenant", mock.Anything, tenantID, ids).Return([]finance.WHTRecord{*r1, *r2}, nil)

		var alreadyPaid *shared.AlreadyPaidError
		err := service.PayWHTRecords(context.Background(), tenantID, ids)
		require.ErrorAs(t, err, &alreadyPaid)
		assert.Equal(t, []string{r1.ID.String()}, alreadyPaid.IDs)
		whtRepo.AssertNotCalled(t, "SaveAll", mock.Anything, mock.Anything)
	})
}
