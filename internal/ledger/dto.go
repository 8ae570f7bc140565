package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

type CreateTransactionRequest struct {
	PartyID         int64           `json:"party_id" validate:"required,gt=0"`
	Type            TransactionType `json:"type" validate:"required,oneof=debit credit"`
	Amount          decimal.Decimal `json:"amount"`
	TransactionDate time.Time       `json:"transaction_date" validate:"required"`
	Note            *string         `json:"note,omitempty" validate:"omitempty,max=1000"`
}

type UpdateTransactionRequest struct {
	PartyID         *int64           `json:"party_id,omitempty" validate:"omitempty,gt=0"`
	Type            *TransactionType `json:"type,omitempty" validate:"omitempty,oneof=debit credit"`
	Amount          *decimal.Decimal `json:"amount,omitempty"`
	TransactionDate *time.Time       `json:"transaction_date,omitempty"`
	Note            *string          `json:"note,omitempty" validate:"omitempty,max=1000"`
}

type ListTransactionsRequest struct {
	OwnerID  int64
	PartyID  *int64
	Type     *TransactionType
	DateFrom *time.Time
	DateTo   *time.Time
	Page     int
	PerPage  int
}
