package finance

import (
	"testing"
	"time"

	"github.com/backoffice/backend/internal/domain/shared"
	"github.com/backoffice/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestWHTRecord(t *testing.T) *WHTRecord {
	t.Helper()
	w, err := NewWHTRecord(
		uuid.New(),
		ExpenseSource(uuid.New()),
		"Acme Services Ltd",
		dec("1000"),
		nil, // defaults to 5%
		nil, // defaults to 7.5%
		time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	return w
}

func TestNewWHTRecord(t *testing.T) {
	t.Run("derives amounts with default rates", func(t *testing.T) {
		w := createTestWHTRecord(t)

		assert.Equal(t, "50.00", w.WHTAmount.StringFixed(2))
		assert.Equal(t, "75.00", w.VATAmount.StringFixed(2))
		assert.Equal(t, "1025.00", w.AmountDue.StringFixed(2))
		assert.Equal(t, WHTStatusUnpaid, w.Status)
		assert.Equal(t, valueobject.Q1, w.Period.Quarter)
	})

	t.Run("accepts explicit rates", func(t *testing.T) {
		w, err := NewWHTRecord(uuid.New(), InvoiceSource(uuid.New()), "Acme",
			dec("2000"), decPtr("10"), decPtr("5"), time.Now())
		require.NoError(t, err)
		assert.Equal(t, "200.00", w.WHTAmount.StringFixed(2))
		assert.Equal(t, "100.00", w.VATAmount.StringFixed(2))
		assert.Equal(t, "1900.00", w.AmountDue.StringFixed(2))
	})

	t.Run("explicit zero rates are honored, not defaulted", func(t *testing.T) {
		w, err := NewWHTRecord(uuid.New(), InvoiceSource(uuid.New()), "Acme",
			dec("2000"), decPtr("0"), decPtr("0"), time.Now())
		require.NoError(t, err)
		assert.True(t, w.WHTAmount.IsZero())
		assert.True(t, w.VATAmount.IsZero())
		assert.True(t, w.AmountDue.Equal(w.TransactionAmount))
	})

	t.Run("rejects missing source", func(t *testing.T) {
		_, err := NewWHTRecord(uuid.New(), WHTSource{}, "Acme", dec("100"),
			nil, nil, time.Now())
		require.Error(t, err)
	})

	t.Run("rejects negative amount", func(t *testing.T) {
		_, err := NewWHTRecord(uuid.New(), ExpenseSource(uuid.New()), "Acme", dec("-100"),
			nil, nil, time.Now())
		require.Error(t, err)
	})

	t.Run("rejects negative rate", func(t *testing.T) {
		_, err := NewWHTRecord(uuid.New(), ExpenseSource(uuid.New()), "Acme", dec("100"),
			decPtr("-5"), nil, time.Now())
		require.Error(t, err)
	})
}

func TestWHTRecordApplyUpdate(t *testing.T) {
	t.Run("recomputes when amount changes", func(t *testing.T) {
		w := createTestWHTRecord(t)
		amount := dec("2000")
		require.NoError(t, w.ApplyUpdate(WHTRecordUpdate{TransactionAmount: &amount}))

		assert.Equal(t, "100.00", w.WHTAmount.StringFixed(2))
		assert.Equal(t, "150.00", w.VATAmount.StringFixed(2))
		assert.Equal(t, "2050.00", w.AmountDue.StringFixed(2))
	})

	t.Run("recomputes when a rate changes", func(t *testing.T) {
		w := createTestWHTRecord(t)
		rate := dec("10")
		require.NoError(t, w.ApplyUpdate(WHTRecordUpdate{WHTRate: &rate}))

		assert.Equal(t, "100.00", w.WHTAmount.StringFixed(2))
		assert.Equal(t, "975.00", w.AmountDue.StringFixed(2))
	})

	t.Run("leaves derived fields alone when only name changes", func(t *testing.T) {
		w := createTestWHTRecord(t)
		name := "Other Ltd"
		require.NoError(t, w.ApplyUpdate(WHTRecordUpdate{CompanyName: &name}))
		assert.Equal(t, "1025.00", w.AmountDue.StringFixed(2))
	})

	t.Run("restamps period when date changes", func(t *testing.T) {
		w := createTestWHTRecord(t)
		date := time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC)
		require.NoError(t, w.ApplyUpdate(WHTRecordUpdate{TransactionDate: &date}))
		assert.Equal(t, valueobject.Q3, w.Period.Quarter)
		assert.Equal(t, 8, w.Period.MonthNumber)
	})

	t.Run("rejects update on deleted record", func(t *testing.T) {
		w := createTestWHTRecord(t)
		w.SoftDelete()
		amount := dec("1")
		require.Error(t, w.ApplyUpdate(WHTRecordUpdate{TransactionAmount: &amount}))
	})
}

func TestWHTRecordMarkPaid(t *testing.T) {
	w := createTestWHTRecord(t)
	require.NoError(t, w.MarkPaid())
	assert.True(t, w.IsPaid())

	err := w.MarkPaid()
	require.Error(t, err)
	var alreadyPaid *shared.AlreadyPaidError
	require.ErrorAs(t, err, &alreadyPaid)
	assert.Contains(t, alreadyPaid.IDs, w.ID.String())
}

func TestTaxReturnDerivation(t *testing.T) {
	tr, err := NewTaxReturn(uuid.New(), "Acme Services Ltd", dec("1000"), nil,
		time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	// VAT rate is pinned to the statutory default.
	assert.True(t, tr.VATRate.Equal(DefaultVATRate))
	assert.Equal(t, "50.00", tr.WHTAmount.StringFixed(2))
	assert.Equal(t, "75.00", tr.VATAmount.StringFixed(2))
	assert.Equal(t, "1025.00", tr.AmountDue.StringFixed(2))
	assert.Equal(t, valueobject.Q1, tr.Period.Quarter)

	amount := dec("500")
	require.NoError(t, tr.ApplyUpdate(TaxReturnUpdate{TransactionAmount: &amount}))
	assert.Equal(t, "25.00", tr.WHTAmount.StringFixed(2))
	assert.Equal(t, "512.50", tr.AmountDue.StringFixed(2))
}

func TestTaxRecordDerivation(t *testing.T) {
	rec, err := NewTaxRecord(uuid.New(), uuid.New(), "INV-20260315-00001", "Acme",
		dec("10000"), DefaultVATRate, time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.Equal(t, "750.00", rec.TaxAmountDeducted.StringFixed(2))
	assert.Equal(t, "9250.00", rec.NetAmount.StringFixed(2))
	assert.Equal(t, TaxStatusUnpaid, rec.Status)

	require.NoError(t, rec.MarkPaid())
	err = rec.MarkPaid()
	var alreadyPaid *shared.AlreadyPaidError
	require.ErrorAs(t, err, &alreadyPaid)
}
