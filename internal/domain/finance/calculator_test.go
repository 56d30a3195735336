package finance

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestRound2(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"10.005", "10.01"},
		{"-10.005", "-10.01"},
		{"10.004", "10.00"},
		{"0", "0.00"},
		{"1025", "1025.00"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Round2(dec(tc.in)).StringFixed(2), "Round2(%s)", tc.in)
	}
}

func TestRound2Idempotent(t *testing.T) {
	values := []string{"0", "0.005", "1.2345", "99.999", "1025.004", "-50.555", "123456.789"}
	for _, v := range values {
		once := Round2(dec(v))
		assert.True(t, once.Equal(Round2(once)), "Round2 not idempotent for %s", v)
	}
}

func TestComputeWHT(t *testing.T) {
	assert.Equal(t, "50.00", ComputeWHT(dec("1000"), DefaultWHTRate).StringFixed(2))
	assert.Equal(t, "0.00", ComputeWHT(dec("1000"), decimal.Zero).StringFixed(2))
	assert.Equal(t, "12.35", ComputeWHT(dec("246.99"), DefaultWHTRate).StringFixed(2))
}

func TestComputeVAT(t *testing.T) {
	assert.Equal(t, "75.00", ComputeVAT(dec("1000"), DefaultVATRate).StringFixed(2))
	assert.Equal(t, "0.00", ComputeVAT(dec("1000"), decimal.Zero).StringFixed(2))
}

func TestComputeAmountDue(t *testing.T) {
	// WHT reduces, VAT increases.
	amount := dec("1000")
	wht := ComputeWHT(amount, DefaultWHTRate)
	vat := ComputeVAT(amount, DefaultVATRate)
	assert.Equal(t, "1025.00", ComputeAmountDue(amount, wht, vat).StringFixed(2))
}

func TestComputeAmountDueIdentity(t *testing.T) {
	// amountDue == round2(amount - wht + vat) for a spread of inputs.
	amounts := []string{"0", "1", "999.99", "1000", "123456.78"}
	rates := []string{"0", "5", "7.5", "10"}
	for _, a := range amounts {
		for _, wr := range rates {
			for _, vr := range rates {
				amount := dec(a)
				wht := ComputeWHT(amount, dec(wr))
				vat := ComputeVAT(amount, dec(vr))
				want := Round2(amount.Sub(wht).Add(vat))
				assert.True(t, want.Equal(ComputeAmountDue(amount, wht, vat)),
					"amount=%s wht=%s vat=%s", a, wr, vr)
			}
		}
	}
}

func TestComputeAmountDueZeroRates(t *testing.T) {
	amount := dec("500")
	due := ComputeAmountDue(amount, decimal.Zero, decimal.Zero)
	assert.True(t, Round2(amount).Equal(due))
}

func TestComputeInvoiceTotal(t *testing.T) {
	assert.Equal(t, "10750.00", ComputeInvoiceTotal(dec("10000"), dec("7.5")).StringFixed(2))
	assert.Equal(t, "10000.00", ComputeInvoiceTotal(dec("10000"), decimal.Zero).StringFixed(2))
	assert.Equal(t, "107.50", ComputeInvoiceTotal(dec("100"), dec("7.5")).StringFixed(2))
}
