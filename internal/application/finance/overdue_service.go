package finance

import (
	"context"
	"fmt"
	"time"

	"github.com/backoffice/backend/internal/domain/finance"
	"github.com/backoffice/backend/internal/domain/partner"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// OverdueThreshold is how long an invoice may stay unpaid before the sweep
// marks it overdue.
const OverdueThreshold = 30 * 24 * time.Hour

// SweepGuard serializes sweep runs across processes. TryAcquire returns
// false when another process already holds the named lock.
type SweepGuard interface {
	TryAcquire(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, key string) error
}

// NoticeRenderer renders an overdue notice document for an invoice
type NoticeRenderer interface {
	RenderOverdueNotice(ctx context.Context, invoice *finance.Invoice) ([]byte, error)
}

// Notifier delivers an overdue notice to the billing contact
type Notifier interface {
	SendOverdueNotice(ctx context.Context, client *partner.Client, invoice *finance.Invoice, notice []byte) error
}

// OverdueSweepResult summarizes one sweep run
type OverdueSweepResult struct {
	Skipped     bool // another process held the sweep lock
	Examined    int
	MarkedCount int
	NotifyFails int
}

// OverdueSweepService runs the scheduled overdue sweep. A single-flight
// guard keeps concurrent schedulers from double-running; within a run the
// candidate query already excludes invoices marked overdue, so re-running
// after a crash only picks up the remainder. Notices are sent after the
// status change is persisted, so delivery is at-least-once: a crash
// between the write and the send means the next day's notice repeats.
type OverdueSweepService struct {
	invoiceRepo finance.InvoiceRepository
	clientRepo  partner.ClientRepository
	recalc      *ClientTotalsRecalculator
	guard       SweepGuard
	renderer    NoticeRenderer
	notifier    Notifier
	now         func() time.Time
	logger      *zap.Logger
}

// NewOverdueSweepService creates a new OverdueSweepService
func NewOverdueSweepService(
	invoiceRepo finance.InvoiceRepository,
	clientRepo partner.ClientRepository,
	recalc *ClientTotalsRecalculator,
	guard SweepGuard,
	renderer NoticeRenderer,
	notifier Notifier,
	logger *zap.Logger,
) *OverdueSweepService {
	return &OverdueSweepService{
		invoiceRepo: invoiceRepo,
		clientRepo:  clientRepo,
		recalc:      recalc,
		guard:       guard,
		renderer:    renderer,
		notifier:    notifier,
		now:         time.Now,
		logger:      logger,
	}
}

// Run executes one sweep. Invoices unpaid for longer than the threshold
// are marked overdue, a notice is rendered and sent, and each affected
// client's totals are refreshed.
func (s *OverdueSweepService) Run(ctx context.Context) (OverdueSweepResult, error) {
	now := s.now()
	lockKey := fmt.Sprintf("overdue-sweep:%s", now.Format("2006-01-02"))

	acquired, err := s.guard.TryAcquire(ctx, lockKey, time.Hour)
	if err != nil {
		return OverdueSweepResult{}, err
	}
	if !acquired {
		s.logger.Info("overdue sweep already running elsewhere", zap.String("lock", lockKey))
		return OverdueSweepResult{Skipped: true}, nil
	}
	defer func() {
		if err := s.guard.Release(ctx, lockKey); err != nil {
			s.logger.Warn("failed to release sweep lock", zap.Error(err))
		}
	}()

	cutoff := now.Add(-OverdueThreshold)
	candidates, err := s.invoiceRepo.FindOverdueCandidates(ctx, cutoff)
	if err != nil {
		return OverdueSweepResult{}, err
	}

	result := OverdueSweepResult{Examined: len(candidates)}
	affectedClients := make(map[uuid.UUID]uuid.UUID) // clientID -> tenantID

	for i := range candidates {
		invoice := &candidates[i]
		if err := invoice.MarkOverdue(); err != nil {
			// Raced with a payment or another sweep; skip it.
			s.logger.Debug("skipping overdue candidate",
				zap.String("invoice_number", invoice.InvoiceNumber),
				zap.Error(err),
			)
			continue
		}
		if err := s.invoiceRepo.Save(ctx, invoice); err != nil {
			return result, err
		}
		result.MarkedCount++
		affectedClients[invoice.ClientID] = invoice.TenantID

		// The status change is already durable. Notification failures are
		// logged and the sweep moves on.
		if err := s.notify(ctx, invoice); err != nil {
			result.NotifyFails++
			s.logger.Error("failed to send overdue notice",
				zap.String("invoice_number", invoice.InvoiceNumber),
				zap.Error(err),
			)
		}
	}

	for clientID, tenantID := range affectedClients {
		if err := s.recalc.Recalculate(ctx, tenantID, clientID); err != nil {
			s.logger.Error("failed to recalculate client totals after sweep",
				zap.String("client_id", clientID.String()),
				zap.Error(err),
			)
		}
	}

	s.logger.Info("overdue sweep finished",
		zap.Int("examined", result.Examined),
		zap.Int("marked", result.MarkedCount),
		zap.Int("notify_failures", result.NotifyFails),
	)
	return result, nil
}

func (s *OverdueSweepService) notify(ctx context.Context, invoice *finance.Invoice) error {
	client, err := s.clientRepo.FindByIDForTenant(ctx, invoice.TenantID, invoice.ClientID)
	if err != nil {
		return err
	}
	if client == nil {
		return fmt.Errorf("client %s not found for invoice %s", invoice.ClientID, invoice.InvoiceNumber)
	}

	notice, err := s.renderer.RenderOverdueNotice(ctx, invoice)
	if err != nil {
		return fmt.Errorf("render overdue notice: %w", err)
	}
	return s.notifier.SendOverdueNotice(ctx, client, invoice, notice)
}
