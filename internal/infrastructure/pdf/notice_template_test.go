package pdf

import (
	"testing"
	"time"

	"github.com/backoffice/backend/internal/domain/finance"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildOverdueNoticeHTML(t *testing.T) {
	dueDate := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)
	invoice, err := finance.NewInvoice(
		uuid.New(), "INV-20260301-00001", "REF-20260301-00001",
		uuid.New(), "Acme Holdings", finance.InvoiceTypeACSRBA,
		finance.InvoiceDetails{},
		decimal.NewFromInt(10000), decimal.Zero, decimal.RequireFromString("7.5"),
		time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), &dueDate,
	)
	require.NoError(t, err)

	html, err := BuildOverdueNoticeHTML(invoice)
	require.NoError(t, err)

	assert.Contains(t, html, "INV-20260301-00001")
	assert.Contains(t, html, "Acme Holdings")
	assert.Contains(t, html, "10750.00 NGN")
	assert.Contains(t, html, "1 March 2026")
	assert.Contains(t, html, "31 March 2026")
	assert.Contains(t, html, "Payment Overdue Notice")
	// No USD fee, no USD row.
	assert.NotContains(t, html, "Total (USD)")
}

func TestBuildOverdueNoticeHTML_USDTotal(t *testing.T) {
	invoice, err := finance.NewInvoice(
		uuid.New(), "INV-20260301-00003", "REF-20260301-00003",
		uuid.New(), "Acme Holdings", finance.InvoiceTypeACSRBA,
		finance.InvoiceDetails{},
		decimal.NewFromInt(10000), decimal.NewFromInt(100), decimal.RequireFromString("7.5"),
		time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), nil,
	)
	require.NoError(t, err)

	html, err := BuildOverdueNoticeHTML(invoice)
	require.NoError(t, err)

	assert.Contains(t, html, "Total (USD)")
	assert.Contains(t, html, "107.50 USD")
}

func TestBuildOverdueNoticeHTML_EscapesClientName(t *testing.T) {
	invoice, err := finance.NewInvoice(
		uuid.New(), "INV-20260301-00002", "REF-20260301-00002",
		uuid.New(), "Smith <script>alert(1)</script> Ltd", finance.InvoiceTypeOtherServices,
		finance.InvoiceDetails{},
		decimal.NewFromInt(500), decimal.Zero, decimal.RequireFromString("7.5"),
		time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC), nil,
	)
	require.NoError(t, err)

	html, err := BuildOverdueNoticeHTML(invoice)
	require.NoError(t, err)

	assert.NotContains(t, html, "<script>")
	assert.Contains(t, html, "&lt;script&gt;")
}
