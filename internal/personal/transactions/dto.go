package transactions

import (
	"time"

	"github.com/shopspring/decimal"
)

type CreateTransactionRequest struct {
	ContactID       int64           `json:"personal_contact_id" validate:"required,gt=0"`
	Type            EntryType       `json:"type" validate:"required,oneof=given received"`
	Amount          decimal.Decimal `json:"amount"`
	TransactionDate time.Time       `json:"transaction_date" validate:"required"`
	PaymentMethod   *string         `json:"payment_method,omitempty" validate:"omitempty,max=50"`
	Reference       *string         `json:"reference,omitempty" validate:"omitempty,max=100"`
	Notes           *string         `json:"notes,omitempty"`
}

type UpdateTransactionRequest struct {
	Type            *EntryType       `json:"type,omitempty" validate:"omitempty,oneof=given received"`
	Amount          *decimal.Decimal `json:"amount,omitempty"`
	TransactionDate *time.Time       `json:"transaction_date,omitempty"`
	PaymentMethod   *string          `json:"payment_method,omitempty" validate:"omitempty,max=50"`
	Reference       *string          `json:"reference,omitempty" validate:"omitempty,max=100"`
	Notes           *string          `json:"notes,omitempty"`
}

type ListTransactionsRequest struct {
	OwnerID   int64
	ContactID *int64
	Type      *EntryType
	DateFrom  *time.Time
	DateTo    *time.Time
}
