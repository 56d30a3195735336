package partner

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestClient(t *testing.T) *Client {
	t.Helper()
	client, err := NewClient(uuid.New(), "Acme Services Ltd", "billing@acme.example", "+234 801 234 5678")
	require.NoError(t, err)
	return client
}

func TestNewClient(t *testing.T) {
	t.Run("starts active with zero totals", func(t *testing.T) {
		client := createTestClient(t)

		assert.Equal(t, ClientStatusActive, client.Status)
		assert.True(t, client.TotalInvoice.IsZero())
		assert.True(t, client.AmountPaid.IsZero())
		assert.True(t, client.AmountDue.IsZero())
	})

	t.Run("fails with empty name", func(t *testing.T) {
		_, err := NewClient(uuid.New(), "", "", "")
		require.Error(t, err)
	})

	t.Run("fails with invalid email", func(t *testing.T) {
		_, err := NewClient(uuid.New(), "Acme", "not-an-email", "")
		require.Error(t, err)
	})

	t.Run("fails with invalid phone", func(t *testing.T) {
		_, err := NewClient(uuid.New(), "Acme", "", "call me maybe")
		require.Error(t, err)
	})
}

func TestClientApplyTotals(t *testing.T) {
	client := createTestClient(t)
	version := client.Version

	client.ApplyTotals(ClientTotals{
		TotalInvoice: decimal.RequireFromString("10750.00"),
		AmountPaid:   decimal.RequireFromString("5000.00"),
		AmountDue:    decimal.RequireFromString("5750.00"),
	})

	assert.Equal(t, "10750.00", client.TotalInvoice.StringFixed(2))
	assert.Equal(t, "5000.00", client.AmountPaid.StringFixed(2))
	assert.Equal(t, "5750.00", client.AmountDue.StringFixed(2))
	assert.Equal(t, version+1, client.Version)

	// A later recalculation replaces the cache outright.
	client.ApplyTotals(ZeroTotals())
	assert.True(t, client.TotalInvoice.IsZero())
	assert.True(t, client.AmountDue.IsZero())
}

func TestClientLifecycle(t *testing.T) {
	t.Run("deactivate then reactivate", func(t *testing.T) {
		client := createTestClient(t)
		require.NoError(t, client.Deactivate())
		assert.False(t, client.IsActive())
		require.NoError(t, client.Activate())
		assert.True(t, client.IsActive())
	})

	t.Run("activate fails when already active", func(t *testing.T) {
		client := createTestClient(t)
		require.Error(t, client.Activate())
	})

	t.Run("delete is terminal", func(t *testing.T) {
		client := createTestClient(t)
		require.NoError(t, client.SoftDelete())
		assert.True(t, client.IsDeleted())

		require.Error(t, client.SoftDelete())
		require.Error(t, client.Activate())
		require.Error(t, client.Update("New Name", "", "", "", "", ""))
	})
}

func TestClientUpdate(t *testing.T) {
	client := createTestClient(t)
	require.NoError(t, client.Update("Acme Holdings", "Jane Doe", "jane@acme.example", "08012345678", "12 Marina, Lagos", "Financial Services"))

	assert.Equal(t, "Acme Holdings", client.Name)
	assert.Equal(t, "Jane Doe", client.ContactPerson)
	assert.Equal(t, "Financial Services", client.Industry)

	require.Error(t, client.Update("", "", "", "", "", ""))
}
