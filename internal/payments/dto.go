package payments

import (
	"time"

	"github.com/shopspring/decimal"
)

type RecordPaymentRequest struct {
	PartyID     int64           `json:"party_id" validate:"required,gt=0"`
	InvoiceID   *int64          `json:"invoice_id,omitempty" validate:"omitempty,gt=0"`
	Amount      decimal.Decimal `json:"amount"`
	PaymentDate time.Time       `json:"payment_date" validate:"required"`
	Method      Method          `json:"payment_method" validate:"required,oneof=cash upi bank_transfer cheque other"`
	Reference   *string         `json:"reference,omitempty" validate:"omitempty,max=100"`
	Notes       *string         `json:"notes,omitempty"`
}

type ListPaymentsRequest struct {
	OwnerID   int64
	PartyID   *int64
	InvoiceID *int64
	DateFrom  *time.Time
	DateTo    *time.Time
}
