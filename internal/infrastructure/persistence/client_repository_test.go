package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/backoffice/backend/internal/domain/partner"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newMockClientRepository(t *testing.T) (*GormClientRepository, sqlmock.Sqlmock, *sql.DB) {
	gormDB, mock, mockDB := newMockDB(t)
	return NewGormClientRepository(gormDB), mock, mockDB
}

func clientRows(id, tenantID uuid.UUID, name, status string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "tenant_id", "name", "email", "phone", "status",
		"total_invoice", "amount_paid", "amount_due",
	}).AddRow(
		id, tenantID, name, "billing@acme.example", "+2348012345678", status,
		decimal.RequireFromString("10750.00"), decimal.Zero, decimal.RequireFromString("10750.00"),
	)
}

func TestGormClientRepository_FindByIDForTenant(t *testing.T) {
	t.Run("finds client within tenant", func(t *testing.T) {
		repo, mock, mockDB := newMockClientRepository(t)
		defer mockDB.Close()

		clientID := uuid.New()
		tenantID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "clients" WHERE tenant_id = \$1 AND id = \$2 ORDER BY .* LIMIT .*`).
			WithArgs(tenantID, clientID, 1).
			WillReturnRows(clientRows(clientID, tenantID, "Acme Holdings", "ACTIVE"))

		client, err := repo.FindByIDForTenant(context.Background(), tenantID, clientID)

		assert.NoError(t, err)
		require.NotNil(t, client)
		assert.Equal(t, tenantID, client.TenantID)
		assert.Equal(t, "Acme Holdings", client.Name)
		assert.True(t, client.TotalInvoice.Equal(decimal.RequireFromString("10750.00")))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns nil without error when missing", func(t *testing.T) {
		repo, mock, mockDB := newMockClientRepository(t)
		defer mockDB.Close()

		clientID := uuid.New()
		tenantID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "clients" WHERE tenant_id = \$1 AND id = \$2 ORDER BY .* LIMIT .*`).
			WithArgs(tenantID, clientID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		client, err := repo.FindByIDForTenant(context.Background(), tenantID, clientID)

		assert.NoError(t, err)
		assert.Nil(t, client)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormClientRepository_FindByName(t *testing.T) {
	t.Run("skips deleted clients", func(t *testing.T) {
		repo, mock, mockDB := newMockClientRepository(t)
		defer mockDB.Close()

		tenantID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "clients" WHERE tenant_id = \$1 AND name = \$2 AND status <> \$3 ORDER BY .* LIMIT .*`).
			WithArgs(tenantID, "Acme Holdings", string(partner.ClientStatusDeleted), 1).
			WillReturnError(gorm.ErrRecordNotFound)

		client, err := repo.FindByName(context.Background(), tenantID, "Acme Holdings")

		assert.NoError(t, err)
		assert.Nil(t, client)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormClientRepository_CountForTenant(t *testing.T) {
	t.Run("counts non-deleted clients for tenant", func(t *testing.T) {
		repo, mock, mockDB := newMockClientRepository(t)
		defer mockDB.Close()

		tenantID := uuid.New()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "clients" WHERE tenant_id = \$1 AND status <> \$2`).
			WithArgs(tenantID, string(partner.ClientStatusDeleted)).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))

		count, err := repo.CountForTenant(context.Background(), tenantID, partner.ClientFilter{})

		assert.NoError(t, err)
		assert.Equal(t, int64(4), count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormClientRepository_Save(t *testing.T) {
	t.Run("saves client", func(t *testing.T) {
		repo, mock, mockDB := newMockClientRepository(t)
		defer mockDB.Close()

		tenantID := uuid.New()
		client, err := partner.NewClient(tenantID, "Acme Holdings", "billing@acme.example", "+2348012345678")
		require.NoError(t, err)

		mock.ExpectExec(`UPDATE "clients" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err = repo.Save(context.Background(), client)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormClientRepository_InterfaceCompliance(t *testing.T) {
	t.Run("implements ClientRepository interface", func(t *testing.T) {
		repo, _, mockDB := newMockClientRepository(t)
		defer mockDB.Close()

		var _ partner.ClientRepository = repo
	})
}
