package notification

import (
	"context"

	appfinance "github.com/backoffice/backend/internal/application/finance"
	"github.com/backoffice/backend/internal/domain/finance"
	"github.com/backoffice/backend/internal/domain/partner"
	"go.uber.org/zap"
)

// LogNotifier records overdue notices in the log instead of sending them.
// Used when outbound notifications are disabled, so the sweep still runs end
// to end in development.
type LogNotifier struct {
	logger *zap.Logger
}

// NewLogNotifier creates a log-only notifier
func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// SendOverdueNotice logs the notice that would have been sent
func (n *LogNotifier) SendOverdueNotice(ctx context.Context, client *partner.Client, invoice *finance.Invoice, notice []byte) error {
	n.logger.Info("Overdue notice suppressed (notifications disabled)",
		zap.String("client", client.Name),
		zap.String("invoice_number", invoice.InvoiceNumber),
		zap.String("amount_due", invoice.AmountDue.StringFixed(2)),
		zap.Int("notice_bytes", len(notice)),
	)
	return nil
}

// Ensure LogNotifier implements Notifier
var _ appfinance.Notifier = (*LogNotifier)(nil)
