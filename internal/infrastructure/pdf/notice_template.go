package pdf

import (
	"bytes"
	"html/template"
	"time"

	"github.com/backoffice/backend/internal/domain/finance"
	"github.com/backoffice/backend/internal/domain/shared/valueobject"
)

// overdueNoticeTemplate is the built-in overdue notice layout. Kept inline so
// the renderer works without any template files on disk.
const overdueNoticeTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<title>Overdue Notice {{.InvoiceNumber}}</title>
<style>
  body { font-family: Helvetica, Arial, sans-serif; color: #1a1a1a; font-size: 13px; }
  h1 { font-size: 20px; border-bottom: 2px solid #b91c1c; padding-bottom: 8px; }
  table { width: 100%; border-collapse: collapse; margin-top: 16px; }
  th { text-align: left; background: #f3f4f6; padding: 6px 10px; }
  td { padding: 6px 10px; border-bottom: 1px solid #e5e7eb; }
  .amount { font-weight: bold; }
  .footer { margin-top: 32px; font-size: 11px; color: #6b7280; }
</style>
</head>
<body>
<h1>Payment Overdue Notice</h1>
<p>Dear {{.ClientName}},</p>
<p>Our records show that the following invoice remains unpaid past its due date.
Please arrange payment at your earliest convenience.</p>
<table>
  <tr><th>Invoice Number</th><td>{{.InvoiceNumber}}</td></tr>
  <tr><th>Reference</th><td>{{.ReferenceNumber}}</td></tr>
  <tr><th>Invoice Date</th><td>{{.TransactionDate}}</td></tr>
  {{if .DueDate}}<tr><th>Due Date</th><td>{{.DueDate}}</td></tr>{{end}}
  <tr><th>Total</th><td class="amount">{{.Total}}</td></tr>
  {{if .TotalUSD}}<tr><th>Total (USD)</th><td class="amount">{{.TotalUSD}}</td></tr>{{end}}
  <tr><th>Amount Due</th><td class="amount">{{.AmountDue}}</td></tr>
</table>
<p class="footer">This notice was generated automatically on {{.GeneratedAt}}.
If payment has already been made, please disregard this notice.</p>
</body>
</html>`

var noticeTmpl = template.Must(template.New("overdue_notice").Parse(overdueNoticeTemplate))

type noticeData struct {
	InvoiceNumber   string
	ReferenceNumber string
	ClientName      string
	TransactionDate string
	DueDate         string
	Total           string
	TotalUSD        string
	AmountDue       string
	GeneratedAt     string
}

// BuildOverdueNoticeHTML renders the overdue notice HTML for an invoice.
// Amounts are printed with their currency codes; the USD total row only
// appears on invoices that carry a USD fee.
func BuildOverdueNoticeHTML(invoice *finance.Invoice) (string, error) {
	data := noticeData{
		InvoiceNumber:   invoice.InvoiceNumber,
		ReferenceNumber: invoice.ReferenceNumber,
		ClientName:      invoice.ClientName,
		TransactionDate: invoice.TransactionDate.Format("2 January 2006"),
		Total:           invoice.GetFeePlusVatNGNMoney().String(),
		AmountDue:       valueobject.NewMoneyNGN(invoice.AmountDue).String(),
		GeneratedAt:     time.Now().Format("2 January 2006"),
	}
	if usd := invoice.GetFeePlusVatUSDMoney(); !usd.IsZero() {
		data.TotalUSD = usd.String()
	}
	if invoice.DueDate != nil {
		data.DueDate = invoice.DueDate.Format("2 January 2006")
	}

	var buf bytes.Buffer
	if err := noticeTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
