package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/backoffice/backend/internal/domain/finance"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockDB opens a GORM connection backed by sqlmock
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return gormDB, mock, mockDB
}

func newMockInvoiceRepository(t *testing.T) (*GormInvoiceRepository, sqlmock.Sqlmock, *sql.DB) {
	gormDB, mock, mockDB := newMockDB(t)
	return NewGormInvoiceRepository(gormDB), mock, mockDB
}

func invoiceRows(id, tenantID, clientID uuid.UUID, number, status string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "tenant_id", "invoice_number", "reference_number", "client_id", "client_name",
		"invoice_type", "fee_ngn", "fee_plus_vat_ngn", "vat_percent", "amount_paid", "amount_due",
		"status", "transaction_date", "period_month", "period_month_number", "period_year", "period_quarter",
	}).AddRow(
		id, tenantID, number, "REF-20260301-00001", clientID, "Acme Holdings",
		"ACS_RBA", decimal.NewFromInt(10000), decimal.RequireFromString("10750.00"),
		decimal.RequireFromString("7.5"), decimal.Zero, decimal.RequireFromString("10750.00"),
		status, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), "March", 3, 2026, "Q1",
	)
}

func TestGormInvoiceRepository_FindByIDForTenant(t *testing.T) {
	t.Run("finds invoice within tenant", func(t *testing.T) {
		repo, mock, mockDB := newMockInvoiceRepository(t)
		defer mockDB.Close()

		invoiceID := uuid.New()
		tenantID := uuid.New()
		clientID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "invoices" WHERE tenant_id = \$1 AND id = \$2 ORDER BY .* LIMIT .*`).
			WithArgs(tenantID, invoiceID, 1).
			WillReturnRows(invoiceRows(invoiceID, tenantID, clientID, "INV-20260301-00001", "UNPAID"))

		invoice, err := repo.FindByIDForTenant(context.Background(), tenantID, invoiceID)

		assert.NoError(t, err)
		require.NotNil(t, invoice)
		assert.Equal(t, tenantID, invoice.TenantID)
		assert.Equal(t, "INV-20260301-00001", invoice.InvoiceNumber)
		assert.Equal(t, finance.InvoiceStatusUnpaid, invoice.Status)
		assert.Equal(t, 3, invoice.Period.MonthNumber)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns nil without error when missing", func(t *testing.T) {
		repo, mock, mockDB := newMockInvoiceRepository(t)
		defer mockDB.Close()

		invoiceID := uuid.New()
		tenantID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "invoices" WHERE tenant_id = \$1 AND id = \$2 ORDER BY .* LIMIT .*`).
			WithArgs(tenantID, invoiceID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		invoice, err := repo.FindByIDForTenant(context.Background(), tenantID, invoiceID)

		assert.NoError(t, err)
		assert.Nil(t, invoice)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormInvoiceRepository_FindByClient(t *testing.T) {
	t.Run("excludes deleted invoices", func(t *testing.T) {
		repo, mock, mockDB := newMockInvoiceRepository(t)
		defer mockDB.Close()

		tenantID := uuid.New()
		clientID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "invoices" WHERE tenant_id = \$1 AND client_id = \$2 AND status <> \$3`).
			WithArgs(tenantID, clientID, string(finance.InvoiceStatusDeleted)).
			WillReturnRows(invoiceRows(uuid.New(), tenantID, clientID, "INV-20260301-00002", "PAID"))

		invoices, err := repo.FindByClient(context.Background(), tenantID, clientID)

		assert.NoError(t, err)
		assert.Len(t, invoices, 1)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormInvoiceRepository_FindOverdueCandidates(t *testing.T) {
	t.Run("selects unpaid invoices past the cutoff", func(t *testing.T) {
		repo, mock, mockDB := newMockInvoiceRepository(t)
		defer mockDB.Close()

		tenantID := uuid.New()
		cutoff := time.Date(2026, 3, 21, 0, 0, 0, 0, time.UTC)

		mock.ExpectQuery(`SELECT \* FROM "invoices" WHERE status IN \(\$1,\$2\) AND updated_at <= \$3`).
			WithArgs(string(finance.InvoiceStatusPending), string(finance.InvoiceStatusUnpaid), cutoff).
			WillReturnRows(invoiceRows(uuid.New(), tenantID, uuid.New(), "INV-20260201-00001", "UNPAID"))

		invoices, err := repo.FindOverdueCandidates(context.Background(), cutoff)

		assert.NoError(t, err)
		assert.Len(t, invoices, 1)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormInvoiceRepository_Save(t *testing.T) {
	t.Run("saves invoice", func(t *testing.T) {
		repo, mock, mockDB := newMockInvoiceRepository(t)
		defer mockDB.Close()

		tenantID := uuid.New()
		invoice, err := finance.NewInvoice(
			tenantID, "INV-20260301-00001", "REF-20260301-00001",
			uuid.New(), "Acme Holdings", finance.InvoiceTypeACSRBA,
			finance.InvoiceDetails{},
			decimal.NewFromInt(10000), decimal.Zero, decimal.RequireFromString("7.5"),
			time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), nil,
		)
		require.NoError(t, err)

		mock.ExpectExec(`UPDATE "invoices" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err = repo.Save(context.Background(), invoice)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormInvoiceRepository_InterfaceCompliance(t *testing.T) {
	t.Run("implements InvoiceRepository interface", func(t *testing.T) {
		repo, _, mockDB := newMockInvoiceRepository(t)
		defer mockDB.Close()

		var _ finance.InvoiceRepository = repo
	})
}
