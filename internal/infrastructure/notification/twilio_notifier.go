package notification

import (
	"context"
	"fmt"
	"strings"

	appfinance "github.com/backoffice/backend/internal/application/finance"
	"github.com/backoffice/backend/internal/domain/finance"
	"github.com/backoffice/backend/internal/domain/partner"
	"github.com/backoffice/backend/internal/infrastructure/config"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"go.uber.org/zap"
)

// TwilioNotifier delivers overdue notices over Twilio messaging. Clients with
// an E.164 phone number get the message over WhatsApp, everyone else over SMS.
// The rendered PDF stays with the caller; the message channel cannot carry it.
type TwilioNotifier struct {
	client     *twilio.RestClient
	fromNumber string
	logger     *zap.Logger
}

// NewTwilioNotifier creates a Twilio-backed notifier
func NewTwilioNotifier(cfg config.NotificationConfig, logger *zap.Logger) *TwilioNotifier {
	return &TwilioNotifier{
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: cfg.AccountSID,
			Password: cfg.AuthToken,
		}),
		fromNumber: cfg.FromNumber,
		logger:     logger,
	}
}

// SendOverdueNotice sends an overdue payment message for the invoice to the
// client's phone number
func (n *TwilioNotifier) SendOverdueNotice(ctx context.Context, client *partner.Client, invoice *finance.Invoice, notice []byte) error {
	if client.Phone == "" {
		return fmt.Errorf("client %s has no phone number on file", client.Name)
	}

	body := fmt.Sprintf(
		"Dear %s, invoice %s for NGN %s is now overdue. Please arrange payment. A formal notice has been prepared for your records.",
		client.Name, invoice.InvoiceNumber, invoice.AmountDue.StringFixed(2),
	)

	params := &twilioApi.CreateMessageParams{}
	params.SetBody(body)

	if strings.HasPrefix(client.Phone, "+") {
		params.SetTo("whatsapp:" + client.Phone)
		params.SetFrom("whatsapp:" + n.fromNumber)
	} else {
		params.SetTo(client.Phone)
		params.SetFrom(n.fromNumber)
	}

	resp, err := n.client.Api.CreateMessage(params)
	if err != nil {
		return fmt.Errorf("failed to send overdue notice to %s: %w", client.Phone, err)
	}

	fields := []zap.Field{
		zap.String("client", client.Name),
		zap.String("invoice_number", invoice.InvoiceNumber),
		zap.Int("notice_bytes", len(notice)),
	}
	if resp.Sid != nil {
		fields = append(fields, zap.String("message_sid", *resp.Sid))
	}
	n.logger.Info("Overdue notice sent", fields...)

	return nil
}

// Ensure TwilioNotifier implements Notifier
var _ appfinance.Notifier = (*TwilioNotifier)(nil)
