package valueobject

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("creates money with valid currency", func(t *testing.T) {
		m, err := NewMoney(decimal.NewFromInt(100), NGN)
		require.NoError(t, err)
		assert.Equal(t, NGN, m.Currency())
		assert.True(t, m.Amount().Equal(decimal.NewFromInt(100)))
	})

	t.Run("fails with empty currency", func(t *testing.T) {
		_, err := NewMoney(decimal.NewFromInt(100), "")
		require.Error(t, err)
	})
}

func TestMoneyString(t *testing.T) {
	assert.Equal(t, "10750.00 NGN", NewMoneyNGN(decimal.RequireFromString("10750")).String())
	assert.Equal(t, "12.50 USD", NewMoneyUSD(decimal.RequireFromString("12.5")).String())
	assert.Equal(t, "0.00 NGN", NewMoneyNGN(decimal.Zero).String())
}

func TestMoneyRound2(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"rounds half up", "10.005", "10.01"},
		{"rounds half away from zero when negative", "-10.005", "-10.01"},
		{"rounds down below half", "10.004", "10.00"},
		{"leaves two places untouched", "10.01", "10.01"},
		{"zero", "0", "0.00"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := NewMoneyNGN(decimal.RequireFromString(tc.in)).Round2()
			assert.Equal(t, tc.want, got.StringFixed(2))
		})
	}
}

func TestMoneyRound2Idempotent(t *testing.T) {
	values := []string{"0", "0.005", "1.2345", "99.999", "1025.004", "-50.555", "123456.789"}
	for _, v := range values {
		once := NewMoneyNGN(decimal.RequireFromString(v)).Round2()
		twice := once.Round2()
		assert.True(t, once.Equals(twice), "round2(round2(%s)) != round2(%s)", v, v)
	}
}

func TestMoneyEquals(t *testing.T) {
	ngn := NewMoneyNGN(decimal.NewFromInt(10))
	usd := NewMoneyUSD(decimal.NewFromInt(10))

	assert.True(t, ngn.Equals(NewMoneyNGN(decimal.NewFromInt(10))))
	// Same amount in a different currency is a different value.
	assert.False(t, ngn.Equals(usd))
	assert.False(t, usd.IsZero())
}
