package invoices

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Totals is the materialized arithmetic of an invoice's lines. All sums use
// exact decimal arithmetic so repeated summation never drifts.
type Totals struct {
	Subtotal  decimal.Decimal
	TaxAmount decimal.Decimal
	Total     decimal.Decimal
	Items     []Item
}

// ComputeTotals materializes each line and the invoice aggregates.
// item_subtotal = qty x unit_price, item_tax = item_subtotal x tax_rate/100,
// item_total = item_subtotal + item_tax.
func ComputeTotals(inputs []ItemInput) Totals {
	t := Totals{Items: make([]Item, 0, len(inputs))}
	for _, in := range inputs {
		subtotal := in.UnitPrice.Mul(decimal.NewFromInt(in.Quantity))
		tax := subtotal.Mul(in.TaxRate).Div(hundred)
		t.Items = append(t.Items, Item{
			ProductID: in.ProductID,
			Quantity:  in.Quantity,
			UnitPrice: in.UnitPrice,
			TaxRate:   in.TaxRate,
			TaxAmount: tax,
			Total:     subtotal.Add(tax),
		})
		t.Subtotal = t.Subtotal.Add(subtotal)
		t.TaxAmount = t.TaxAmount.Add(tax)
	}
	t.Total = t.Subtotal.Add(t.TaxAmount)
	return t
}

// ResolveStatus derives the payment status from the paid amount, falling
// back to the caller-supplied status only when nothing has been paid.
// A zero-total invoice has nothing outstanding and counts as paid, the same
// comparison Reconcile applies when payments arrive later.
func ResolveStatus(paid, total decimal.Decimal, requested *PaymentStatus) PaymentStatus {
	switch {
	case paid.GreaterThanOrEqual(total):
		return StatusPaid
	case paid.IsPositive():
		return StatusPartiallyPaid
	case requested != nil:
		return *requested
	default:
		return StatusUnpaid
	}
}

// FormatNumber renders an invoice number as INV-<YYYYMMDD>-<seq>.
func FormatNumber(date time.Time, seq int64) string {
	return fmt.Sprintf("INV-%s-%04d", date.Format("20060102"), seq)
}
