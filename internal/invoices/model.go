package invoices

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus tracks how much of an invoice has been settled.
type PaymentStatus string

const (
	StatusUnpaid        PaymentStatus = "unpaid"
	StatusPartiallyPaid PaymentStatus = "partially_paid"
	StatusPaid          PaymentStatus = "paid"
)

// Invoice is a sale document. Created atomically with its items, one credit
// ledger transaction for the total, and one outbound stock movement per item.
type Invoice struct {
	ID            int64           `json:"id"`
	OwnerID       int64           `json:"-"`
	PartyID       int64           `json:"party_id"`
	InvoiceNumber string          `json:"invoice_number"`
	InvoiceDate   time.Time       `json:"invoice_date"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	TaxAmount     decimal.Decimal `json:"tax_amount"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	PaidAmount    decimal.Decimal `json:"paid_amount"`
	PaymentStatus PaymentStatus   `json:"payment_status"`
	Notes         *string         `json:"notes,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// Item is one invoice line. Immutable after creation.
type Item struct {
	ID          int64           `json:"id"`
	InvoiceID   int64           `json:"invoice_id"`
	ProductID   int64           `json:"product_id"`
	ProductName string          `json:"product_name,omitempty"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TaxRate     decimal.Decimal `json:"tax_rate"`
	TaxAmount   decimal.Decimal `json:"tax_amount"`
	Total       decimal.Decimal `json:"total"`
}

// PaymentRecord is the payment view attached to an invoice detail.
type PaymentRecord struct {
	ID          int64           `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	PaymentDate time.Time       `json:"payment_date"`
	Method      string          `json:"payment_method"`
	Reference   *string         `json:"reference,omitempty"`
}

// InvoiceDetail is the eager-loaded read model for list/show.
type InvoiceDetail struct {
	Invoice
	PartyName string          `json:"party_name"`
	Items     []Item          `json:"items"`
	Payments  []PaymentRecord `json:"payments,omitempty"`
}
