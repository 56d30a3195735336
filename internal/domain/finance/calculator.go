package finance

import (
	"github.com/shopspring/decimal"
)

// Default statutory rates, in percent. WHT records default to 5% withholding
// and 7.5% VAT; tax returns always use the fixed VAT rate.
var (
	DefaultWHTRate = decimal.NewFromInt(5)
	DefaultVATRate = decimal.RequireFromString("7.5")
)

var oneHundred = decimal.NewFromInt(100)

// Round2 rounds a monetary amount to 2 decimal places, half away from zero.
// It is applied as the last step of every derived-amount computation and is
// idempotent: Round2(Round2(x)) == Round2(x).
func Round2(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(2)
}

// ComputeWHT returns the withholding tax on an amount at the given
// percentage rate.
func ComputeWHT(amount, whtRate decimal.Decimal) decimal.Decimal {
	return Round2(amount.Mul(whtRate).Div(oneHundred))
}

// ComputeVAT returns the value-added tax on an amount at the given
// percentage rate.
func ComputeVAT(amount, vatRate decimal.Decimal) decimal.Decimal {
	return Round2(amount.Mul(vatRate).Div(oneHundred))
}

// ComputeAmountDue returns the net payable for a WHT-bearing record.
// Withholding reduces the amount due while VAT increases it; this is the
// domain's tax treatment, not a generic formula.
func ComputeAmountDue(amount, whtAmount, vatAmount decimal.Decimal) decimal.Decimal {
	return Round2(amount.Sub(whtAmount).Add(vatAmount))
}

// ComputeInvoiceTotal grosses up an invoice fee by its VAT percentage.
// Invoices carry no withholding component.
func ComputeInvoiceTotal(fee, vatPercent decimal.Decimal) decimal.Decimal {
	return Round2(fee.Add(fee.Mul(vatPercent).Div(oneHundred)))
}
