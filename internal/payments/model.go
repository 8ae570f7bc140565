package payments

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/khata-app/khata-server/internal/invoices"
)

// Method is how a payment was made.
type Method string

const (
	MethodCash         Method = "cash"
	MethodUPI          Method = "upi"
	MethodBankTransfer Method = "bank_transfer"
	MethodCheque       Method = "cheque"
	MethodOther        Method = "other"
)

// Payment settles (part of) what a party owes. Recording one appends a
// debit ledger transaction and, when tied to an invoice, advances that
// invoice's paid amount.
type Payment struct {
	ID          int64           `json:"id"`
	OwnerID     int64           `json:"-"`
	PartyID     int64           `json:"party_id"`
	InvoiceID   *int64          `json:"invoice_id,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	PaymentDate time.Time       `json:"payment_date"`
	Method      Method          `json:"payment_method"`
	Reference   *string         `json:"reference,omitempty"`
	Notes       *string         `json:"notes,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// Reconcile folds a payment amount into an invoice's paid state. Overpayment
// is silently clamped at the total; the ledger still records the full amount.
func Reconcile(paid, total, amount decimal.Decimal) (decimal.Decimal, invoices.PaymentStatus) {
	newPaid := paid.Add(amount)
	if newPaid.GreaterThanOrEqual(total) {
		return total, invoices.StatusPaid
	}
	if newPaid.IsPositive() {
		return newPaid, invoices.StatusPartiallyPaid
	}
	return paid, invoices.StatusUnpaid
}
