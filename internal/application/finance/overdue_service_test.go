package finance

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/backoffice/backend/internal/domain/finance"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newSweepService(
	invoiceRepo *MockInvoiceRepository,
	clientRepo *MockClientRepository,
	guard *MockSweepGuard,
	renderer *MockNoticeRenderer,
	notifier *MockNotifier,
) *OverdueSweepService {
	recalc := NewClientTotalsRecalculator(invoiceRepo, clientRepo, zap.NewNop())
	return NewOverdueSweepService(invoiceRepo, clientRepo, recalc, guard, renderer, notifier, zap.NewNop())
}

func TestOverdueSweep(t *testing.T) {
	tenantID := uuid.New()

	t.Run("skips when the lock is held elsewhere", func(t *testing.T) {
		invoiceRepo := new(MockInvoiceRepository)
		clientRepo := new(MockClientRepository)
		guard := new(MockSweepGuard)
		renderer := new(MockNoticeRenderer)
		notifier := new(MockNotifier)
		service := newSweepService(invoiceRepo, clientRepo, guard, renderer, notifier)

		guard.On("TryAcquire", mock.Anything, mock.Anything, mock.Anything).Return(false, nil)

		result, err := service.Run(context.Background())
		require.NoError(t, err)
		assert.True(t, result.Skipped)
		invoiceRepo.AssertNotCalled(t, "FindOverdueCandidates", mock.Anything, mock.Anything)
	})

	t.Run("marks candidates overdue and notifies", func(t *testing.T) {
		invoiceRepo := new(MockInvoiceRepository)
		clientRepo := new(MockClientRepository)
		guard := new(MockSweepGuard)
		renderer := new(MockNoticeRenderer)
		notifier := new(MockNotifier)
		service := newSweepService(invoiceRepo, clientRepo, guard, renderer, notifier)

		now := time.Date(2026, time.April, 20, 6, 0, 0, 0, time.UTC)
		service.now = func() time.Time { return now }

		client := newTestClient(t, tenantID)
		invoice := newTestInvoice(t, tenantID, client.ID, "10000")

		guard.On("TryAcquire", mock.Anything, "overdue-sweep:2026-04-20", time.Hour).Return(true, nil)
		guard.On("Release", mock.Anything, "overdue-sweep:2026-04-20").Return(nil)
		invoiceRepo.On("FindOverdueCandidates", mock.Anything, now.Add(-OverdueThreshold)).Return([]finance.Invoice{*invoice}, nil)
		invoiceRepo.On("Save", mock.Anything, mock.MatchedBy(func(inv *finance.Invoice) bool {
			return inv.Status == finance.InvoiceStatusOverdue
		})).Return(nil)
		clientRepo.On("FindByIDForTenant", mock.Anything, tenantID, client.ID).Return(client, nil)
		renderer.On("RenderOverdueNotice", mock.Anything, mock.Anything).Return([]byte("%PDF"), nil)
		notifier.On("SendOverdueNotice", mock.Anything, client, mock.Anything, []byte("%PDF")).Return(nil)
		invoiceRepo.On("FindByClient", mock.Anything, tenantID, client.ID).Return([]finance.Invoice{}, nil)
		clientRepo.On("Save", mock.Anything, client).Return(nil)

		result, err := service.Run(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 1, result.MarkedCount)
		assert.Equal(t, 0, result.NotifyFails)
		notifier.AssertExpectations(t)
	})

	t.Run("notification failure does not undo the status change", func(t *testing.T) {
		invoiceRepo := new(MockInvoiceRepository)
		clientRepo := new(MockClientRepository)
		guard := new(MockSweepGuard)
		renderer := new(MockNoticeRenderer)
		notifier := new(MockNotifier)
		service := newSweepService(invoiceRepo, clientRepo, guard, renderer, notifier)

		client := newTestClient(t, tenantID)
		invoice := newTestInvoice(t, tenantID, client.ID, "10000")

		guard.On("TryAcquire", mock.Anything, mock.Anything, mock.Anything).Return(true, nil)
		guard.On("Release", mock.Anything, mock.Anything).Return(nil)
		invoiceRepo.On("FindOverdueCandidates", mock.Anything, mock.Anything).Return([]finance.Invoice{*invoice}, nil)
		invoiceRepo.On("Save", mock.Anything, mock.Anything).Return(nil)
		clientRepo.On("FindByIDForTenant", mock.Anything, tenantID, client.ID).Return(client, nil)
		renderer.On("RenderOverdueNotice", mock.Anything, mock.Anything).Return(nil, errors.New("browser crashed"))
		invoiceRepo.On("FindByClient", mock.Anything, tenantID, client.ID).Return([]finance.Invoice{}, nil)
		clientRepo.On("Save", mock.Anything, client).Return(nil)

		result, err := service.Run(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 1, result.MarkedCount)
		assert.Equal(t, 1, result.NotifyFails)
	})

	t.Run("paid invoice slipping into the candidate set is skipped", func(t *testing.T) {
		invoiceRepo := new(MockInvoiceRepository)
		clientRepo := new(MockClientRepository)
		guard := new(MockSweepGuard)
		renderer := new(MockNoticeRenderer)
		notifier := new(MockNotifier)
		service := newSweepService(invoiceRepo, clientRepo, guard, renderer, notifier)

		client := newTestClient(t, tenantID)
		invoice := newTestInvoice(t, tenantID, client.ID, "10000")
		paid := finance.InvoiceStatusPaid
		require.NoError(t, invoice.ApplyUpdate(finance.InvoiceUpdate{Status: &paid}))

		guard.On("TryAcquire", mock.Anything, mock.Anything, mock.Anything).Return(true, nil)
		guard.On("Release", mock.Anything, mock.Anything).Return(nil)
		invoiceRepo.On("FindOverdueCandidates", mock.Anything, mock.Anything).Return([]finance.Invoice{*invoice}, nil)

		result, err := service.Run(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 1, result.Examined)
		assert.Equal(t, 0, result.MarkedCount)
		invoiceRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}
