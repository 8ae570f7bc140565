package invoices

import (
	"time"

	"github.com/shopspring/decimal"
)

type ItemInput struct {
	ProductID int64           `json:"product_id" validate:"required,gt=0"`
	Quantity  int64           `json:"quantity" validate:"required,gt=0"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	TaxRate   decimal.Decimal `json:"tax_rate"`
}

type CreateInvoiceRequest struct {
	PartyID       int64            `json:"party_id" validate:"required,gt=0"`
	InvoiceDate   time.Time        `json:"invoice_date" validate:"required"`
	Items         []ItemInput      `json:"items" validate:"required,min=1,dive"`
	PaymentStatus *PaymentStatus   `json:"payment_status,omitempty" validate:"omitempty,oneof=unpaid partially_paid paid"`
	PaidAmount    *decimal.Decimal `json:"paid_amount,omitempty"`
	Notes         *string          `json:"notes,omitempty"`
}

type ListInvoicesRequest struct {
	OwnerID       int64
	PartyID       *int64
	PaymentStatus *PaymentStatus
	DateFrom      *time.Time
	DateTo        *time.Time
}
