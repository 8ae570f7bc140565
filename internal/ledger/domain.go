package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType enumerates ledger entry directions. Direction is carried
// by the type, never by the sign of the amount.
type TransactionType string

const (
	// TypeDebit records value received by the owner; it increases the
	// party's balance towards the owner.
	TypeDebit TransactionType = "debit"
	// TypeCredit records value extended by the owner; it decreases the
	// party's balance.
	TypeCredit TransactionType = "credit"
)

// ReferenceType tags the document a ledger entry originated from.
type ReferenceType string

const (
	ReferenceInvoice ReferenceType = "invoice"
	ReferencePayment ReferenceType = "payment"
	ReferenceManual  ReferenceType = "manual"
)

// Transaction is an append-only signed movement against a party.
type Transaction struct {
	ID              int64           `json:"id"`
	OwnerID         int64           `json:"-"`
	PartyID         int64           `json:"party_id"`
	Type            TransactionType `json:"type"`
	Amount          decimal.Decimal `json:"amount"`
	TransactionDate time.Time       `json:"transaction_date"`
	Note            *string         `json:"note,omitempty"`
	ReferenceType   ReferenceType   `json:"reference_type,omitempty"`
	ReferenceID     *int64          `json:"reference_id,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// TransactionWithParty attaches the party name for listings.
type TransactionWithParty struct {
	Transaction
	PartyName string `json:"party_name"`
}
